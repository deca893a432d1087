package schemagen

import (
	"testing"

	"github.com/exip-go/exip/core"
	"github.com/exip-go/exip/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testNS = "urn:schemagen:test"

func qn(local string) utils.QName {
	return utils.QName{Space: testNS, Local: local}
}

func xsd(local string) utils.QName {
	return utils.QName{Space: core.XMLSchemaNS_URI, Local: local}
}

// simpleStringElement builds a one-element schema: <name> of type xs:string.
func simpleStringElement() *Schema {
	s := NewSchema(testNS)
	s.AddElement(&GlobalElement{Name: qn("name"), Type: xsd("string")})
	return s
}

func TestBuilderSimpleStringElement(t *testing.T) {
	s := simpleStringElement()
	grammars, err := NewBuilder(s).Build()
	require.NoError(t, err)
	require.NotNil(t, grammars)
	assert.True(t, grammars.IsSchemaInformed())
}

// personSchema builds a repeated-child complex type exercising bounded and
// unbounded particles, a choice, an attribute, and an enumeration facet.
func personSchema() *Schema {
	s := NewSchema(testNS)

	s.SimpleTypes[qn("colorType")] = &SimpleTypeDef{
		Name:    qn("colorType"),
		Variety: VarietyAtomic,
		Base:    ptrQN(xsd("string")),
		Facets: []Facet{
			{Kind: FacetEnumeration, Value: "red"},
			{Kind: FacetEnumeration, Value: "blue"},
		},
	}

	s.ComplexTypes[qn("personType")] = &ComplexTypeDef{
		Name:    qn("personType"),
		Content: ContentElementOnly,
		Group: &ModelGroup{
			Kind: GroupSequence,
			Particles: []Particle{
				{Kind: ParticleElement, Occurs: Occurs{Min: 1, Max: 1}, Element: ptrQN(qn("name"))},
				{Kind: ParticleElement, Occurs: Occurs{Min: 0, Max: MaxUnbounded}, Element: ptrQN(qn("nickname"))},
				{
					Kind:   ParticleGroup,
					Occurs: Occurs{Min: 1, Max: 1},
					Group: &ModelGroup{
						Kind: GroupChoice,
						Particles: []Particle{
							{Kind: ParticleElement, Occurs: Occurs{Min: 1, Max: 1}, Element: ptrQN(qn("email"))},
							{Kind: ParticleElement, Occurs: Occurs{Min: 1, Max: 1}, Element: ptrQN(qn("phone"))},
						},
					},
				},
			},
		},
		Attributes: []AttributeUse{
			{Name: qn("favoriteColor"), Type: qn("colorType"), Required: false},
		},
	}

	s.AddElement(&GlobalElement{Name: qn("name"), Type: xsd("string")})
	s.AddElement(&GlobalElement{Name: qn("nickname"), Type: xsd("string")})
	s.AddElement(&GlobalElement{Name: qn("email"), Type: xsd("string")})
	s.AddElement(&GlobalElement{Name: qn("phone"), Type: xsd("string")})
	s.AddElement(&GlobalElement{Name: qn("person"), Type: qn("personType")})

	return s
}

func ptrQN(q utils.QName) *utils.QName { return &q }

func TestBuilderComplexTypeWithParticlesAndChoice(t *testing.T) {
	s := personSchema()
	grammars, err := NewBuilder(s).Build()
	require.NoError(t, err)
	require.NotNil(t, grammars)

	personQnc := grammars.GetGrammarContext()
	require.NotNil(t, personQnc)
}

func TestBuilderEnumerationFacet(t *testing.T) {
	s := personSchema()
	b := NewBuilder(s)
	_, err := b.Build()
	require.NoError(t, err)

	fsst, err := b.typeGrammar(qn("personType"), false)
	require.NoError(t, err)
	require.NotNil(t, fsst)

	found := false
	for i := 0; i < fsst.GetNumberOfEvents(); i++ {
		prod := fsst.GetProductionByEventCode(i)
		if prod.GetEvent().GetEventType() == core.EventTypeAttributeGeneric ||
			prod.GetEvent().GetEventType() == core.EventTypeAttribute {
			found = true
		}
	}
	assert.True(t, found, "expected favoriteColor attribute production on personType")
}

func TestBuilderNillabilityIsPerElementNotPerType(t *testing.T) {
	s := NewSchema(testNS)
	s.AddElement(&GlobalElement{Name: qn("a"), Type: xsd("string"), Nillable: false})
	s.AddElement(&GlobalElement{Name: qn("b"), Type: xsd("string"), Nillable: true})

	b := NewBuilder(s)
	_, err := b.Build()
	require.NoError(t, err)

	aQnc, err := b.qnameContext(qn("a"))
	require.NoError(t, err)
	bQnc, err := b.qnameContext(qn("b"))
	require.NoError(t, err)

	aSe := aQnc.GetGlobalStartElement()
	bSe := bQnc.GetGlobalStartElement()
	require.NotNil(t, aSe)
	require.NotNil(t, bSe)

	aFsst := aSe.GetGrammar().(core.SchemaInformedFirstStartTagGrammar)
	bFsst := bSe.GetGrammar().(core.SchemaInformedFirstStartTagGrammar)

	assert.False(t, aFsst.IsNillable())
	assert.True(t, bFsst.IsNillable())
}

func TestBuilderUnknownTypeFails(t *testing.T) {
	s := NewSchema(testNS)
	s.AddElement(&GlobalElement{Name: qn("x"), Type: qn("doesNotExist")})

	_, err := NewBuilder(s).Build()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestBuilderAllGroupNotImplemented(t *testing.T) {
	s := NewSchema(testNS)
	s.ComplexTypes[qn("allType")] = &ComplexTypeDef{
		Name:    qn("allType"),
		Content: ContentElementOnly,
		Group: &ModelGroup{
			Kind: GroupAll,
			Particles: []Particle{
				{Kind: ParticleElement, Occurs: Occurs{Min: 1, Max: 1}, Element: ptrQN(qn("name"))},
			},
		},
	}
	s.AddElement(&GlobalElement{Name: qn("name"), Type: xsd("string")})
	s.AddElement(&GlobalElement{Name: qn("root"), Type: qn("allType")})

	_, err := NewBuilder(s).Build()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAllGroupNotImplemented)
}

func TestBuilderListVarietyNotImplemented(t *testing.T) {
	s := NewSchema(testNS)
	s.SimpleTypes[qn("listType")] = &SimpleTypeDef{
		Name:     qn("listType"),
		Variety:  VarietyList,
		ItemType: ptrQN(xsd("integer")),
	}
	s.AddElement(&GlobalElement{Name: qn("root"), Type: qn("listType")})

	_, err := NewBuilder(s).Build()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrListFacetNotImplemented)
}

func TestBuilderDecimalEnumerationNotImplemented(t *testing.T) {
	s := NewSchema(testNS)
	s.SimpleTypes[qn("priceType")] = &SimpleTypeDef{
		Name:    qn("priceType"),
		Variety: VarietyAtomic,
		Base:    ptrQN(xsd("decimal")),
		Facets: []Facet{
			{Kind: FacetEnumeration, Value: "9.99"},
			{Kind: FacetEnumeration, Value: "19.99"},
		},
	}
	s.AddElement(&GlobalElement{Name: qn("root"), Type: qn("priceType")})

	_, err := NewBuilder(s).Build()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEnumerationValueNotImplemented)
}
