// Package schemagen builds EXI schema-informed grammars from an XML Schema.
//
// The package is organized the way the EXIP grammar generator is: a neutral
// "tree-table" intermediate representation of the declarations found in a
// schema (model.go), a set of proto-grammar operators that turn pieces of
// that representation into core.Grammar graphs (content.go, datatype.go),
// and a Builder that walks the tree-table top to bottom and wires the
// result into a core.Grammars instance together with its core.GrammarContext
// (builder.go). A minimal XSD reader (xsdreader.go) populates the tree-table
// from an actual schema document.
package schemagen

import "github.com/exip-go/exip/utils"

// Occurs captures a particle's minOccurs/maxOccurs pair. MaxUnbounded marks
// "unbounded".
type Occurs struct {
	Min int
	Max int
}

const MaxUnbounded = -1

// VarietyKind classifies a SimpleTypeDef the way XSD does: atomic types wrap
// a single built-in primitive, list types repeat an item type, union types
// pick among member types at validation time.
type VarietyKind int

const (
	VarietyAtomic VarietyKind = iota
	VarietyList
	VarietyUnion
)

// FacetKind enumerates the constraining facets this builder understands.
// Facets outside this set (pattern, totalDigits, fractionDigits, whiteSpace
// beyond its WhiteSpace-table role) are accepted by the reader but do not
// change the grammar/datatype shape; they are schema-validation concerns,
// which is explicitly out of scope here.
type FacetKind int

const (
	FacetEnumeration FacetKind = iota
	FacetMinInclusive
	FacetMaxInclusive
	FacetMinExclusive
	FacetMaxExclusive
	FacetMaxLength
)

type Facet struct {
	Kind  FacetKind
	Value string
}

// SimpleTypeDef mirrors a <xs:simpleType>. XSD built-in types are not
// represented as SimpleTypeDef values: Builder resolves xs:-namespace names
// directly against the EXI built-in datatype table. An atomic SimpleTypeDef
// with a nil Base is rejected by Builder.
type SimpleTypeDef struct {
	Name     utils.QName
	Variety  VarietyKind
	Base     *utils.QName // restriction base, atomic/list variety
	ItemType *utils.QName // list variety
	Members  []utils.QName // union variety
	Facets   []Facet
	// NamedSubtypeOrUnion is true when a value of this type could, at
	// runtime, be substituted by a value of a different, more specific
	// type (union variety, or a type known to have subtypes). It drives
	// SchemaInformedFirstStartTagGrammar.SetTypeCastable.
	NamedSubtypeOrUnion bool
}

// AttributeUse mirrors a <xs:attribute> use inside a complex type, whether
// declared locally or referenced from a global attribute.
type AttributeUse struct {
	Name     utils.QName
	Type     utils.QName
	Required bool
}

// NamespaceConstraintKind mirrors the XSD wildcard "namespace" attribute.
type NamespaceConstraintKind int

const (
	NSAny NamespaceConstraintKind = iota
	NSOther
	NSEnumerated
)

type NamespaceConstraint struct {
	Kind NamespaceConstraintKind
	URIs []string // meaningful only for NSEnumerated
}

// WildcardUse is either an <xs:any> particle or an <xs:anyAttribute> use.
type WildcardUse struct {
	Namespace NamespaceConstraint
}

// ParticleKind distinguishes what a Particle actually holds.
type ParticleKind int

const (
	ParticleElement ParticleKind = iota
	ParticleWildcard
	ParticleGroup
)

// ModelGroupKind mirrors XSD's compositors. All is accepted by the reader
// but rejected by the builder (see ErrAllGroupNotImplemented); sequence and
// choice are fully supported.
type ModelGroupKind int

const (
	GroupSequence ModelGroupKind = iota
	GroupChoice
	GroupAll
)

// Particle is one entry in a model group's content: a child element
// reference, a wildcard, or a nested group.
type Particle struct {
	Kind     ParticleKind
	Occurs   Occurs
	Element  *utils.QName // ParticleElement: the referenced global element
	Wildcard *WildcardUse // ParticleWildcard
	Group    *ModelGroup  // ParticleGroup
}

// ModelGroup is a <xs:sequence>, <xs:choice> or <xs:all> content model.
type ModelGroup struct {
	Kind      ModelGroupKind
	Particles []Particle
}

// ContentKind classifies what a complex type's content actually is.
type ContentKind int

const (
	ContentEmpty ContentKind = iota
	ContentSimple
	ContentElementOnly
	ContentMixed
)

// ComplexTypeDef mirrors a <xs:complexType>, already flattened: Attributes
// includes attribute uses copied from a base complex type named by
// xs:extension or xs:restriction, and a simple-content base is carried into
// SimpleContent. The base type's model group is not copied, and a
// compositor inside xs:complexContent is not read: Group holds only a
// compositor that appears directly under the xs:complexType.
type ComplexTypeDef struct {
	Name           utils.QName
	Content        ContentKind
	SimpleContent  *utils.QName // ContentSimple: the base/restricted simple type
	Group          *ModelGroup  // ContentElementOnly, ContentMixed
	Attributes     []AttributeUse
	AttributeWild  *WildcardUse
	Nillable       bool // per using element declaration, not the type itself; see GlobalElement
}

// GlobalElement mirrors a top-level <xs:element> declaration.
type GlobalElement struct {
	Name     utils.QName
	Type     utils.QName
	Nillable bool
}

// GlobalAttribute mirrors a top-level <xs:attribute> declaration.
type GlobalAttribute struct {
	Name utils.QName
	Type utils.QName
}

// Schema is the fully-populated tree-table: every global declaration the
// builder needs, keyed by qualified name for the memoized Builder walk.
type Schema struct {
	TargetNamespace string
	Elements        map[utils.QName]*GlobalElement
	Attributes      map[utils.QName]*GlobalAttribute
	ComplexTypes    map[utils.QName]*ComplexTypeDef
	SimpleTypes     map[utils.QName]*SimpleTypeDef
	// ElementOrder preserves declaration order so generated grammars are
	// deterministic across runs (map iteration is not).
	ElementOrder []utils.QName
}

func NewSchema(targetNamespace string) *Schema {
	return &Schema{
		TargetNamespace: targetNamespace,
		Elements:        map[utils.QName]*GlobalElement{},
		Attributes:      map[utils.QName]*GlobalAttribute{},
		ComplexTypes:    map[utils.QName]*ComplexTypeDef{},
		SimpleTypes:     map[utils.QName]*SimpleTypeDef{},
	}
}

func (s *Schema) AddElement(e *GlobalElement) {
	if _, exists := s.Elements[e.Name]; !exists {
		s.ElementOrder = append(s.ElementOrder, e.Name)
	}
	s.Elements[e.Name] = e
}
