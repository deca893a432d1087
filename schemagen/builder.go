package schemagen

import (
	"fmt"

	"github.com/exip-go/exip/core"
	"github.com/exip-go/exip/utils"
)

// qnameKey adapts utils.QName to utils.ComparableType so it can key a
// utils.ComparableMap.
type qnameKey struct {
	utils.QName
}

func (q qnameKey) Equals(other utils.ComparableType) bool {
	o, ok := other.(qnameKey)
	return ok && o.QName == q.QName
}

// Builder walks a Schema and produces the core.Grammars + core.GrammarContext
// pair a core.EXIFactory needs to run in schema-informed mode. Each named
// type is memoized so recursive/cyclic type graphs (an element whose
// content refers back to its own type, directly or through a chain of
// other types) terminate instead of looping forever.
type Builder struct {
	schema         *Schema
	grammarContext *core.GrammarContext
	qncByQName     map[utils.QName]*core.QNameContext
	uriIDs         map[string]int
	uriLocalNames  map[string][]*core.QNameContext

	// typeGrammars memoizes the FirstStartTag grammar built for a named
	// complex type, keyed by its QName. Wired as a utils.ComparableMap
	// rather than a plain map -- it is the "type grammar pool" the EXI
	// grammar model calls for, independent of the per-QNameContext
	// SetTypeGrammar/GetTypeGrammar slot that also holds the same value.
	typeGrammars *utils.ComparableMap[qnameKey, core.SchemaInformedFirstStartTagGrammar]
	building     map[utils.QName]bool
}

// NewBuilder prepares a Builder for schema. Call Build to produce the
// resulting core.Grammars.
func NewBuilder(schema *Schema) *Builder {
	return &Builder{
		schema:        schema,
		qncByQName:    map[utils.QName]*core.QNameContext{},
		uriIDs:        map[string]int{},
		uriLocalNames: map[string][]*core.QNameContext{},
		typeGrammars:  utils.NewComparableMap[qnameKey, core.SchemaInformedFirstStartTagGrammar](),
		building:      map[utils.QName]bool{},
	}
}

// Build produces schema-informed grammars for the whole schema: every
// global element gets its own FirstStartTag grammar reachable from the
// document/fragment grammars, following the same shape
// core.SchemaLessGrammars uses for the built-in case.
func (b *Builder) Build() (*core.SchemaInformedGrammars, error) {
	if err := b.assignGrammarContext(); err != nil {
		return nil, err
	}

	for _, name := range b.schema.ElementOrder {
		ge := b.schema.Elements[name]
		qnc, err := b.qnameContext(name)
		if err != nil {
			return nil, err
		}
		if _, err := b.globalElementEvent(ge, qnc); err != nil {
			return nil, err
		}
	}

	docEnd := core.NewDocEndWithLabel("DocEnd")
	docEnd.AddTerminalProduction(core.NewEndDocument())

	docContent := core.NewSchemaInformedDocContentWithLabel("DocContent")
	for _, name := range b.schema.ElementOrder {
		qnc := b.qncByQName[name]
		se := qnc.GetGlobalStartElement()
		if err := docContent.AddProduction(se, docEnd); err != nil {
			return nil, err
		}
	}

	document := core.NewDocumentWithLabel("Document")
	if err := document.AddProduction(core.NewStartDocument(), docContent); err != nil {
		return nil, err
	}

	fragmentContent := core.NewSchemaInformedFragmentContentWithLabel("FragmentContent")
	for _, name := range b.schema.ElementOrder {
		qnc := b.qncByQName[name]
		se := qnc.GetGlobalStartElement()
		if err := fragmentContent.AddProduction(se, fragmentContent); err != nil {
			return nil, err
		}
	}
	fragmentContent.AddTerminalProduction(core.NewEndDocument())

	fragment := core.NewFragmentWithLabel("Fragment")
	if err := fragment.AddProduction(core.NewStartDocument(), fragmentContent); err != nil {
		return nil, err
	}

	elementFragmentGrammar := core.NewSchemaInformedFirstStartTag()
	elementFragmentGrammar.SetElementContentGrammar(buildTailContent())

	return core.NewSchemaInformedGrammars(b.grammarContext, document, fragment, elementFragmentGrammar), nil
}

// assignGrammarContext walks every declaration once to collect the set of
// (namespace, local name) pairs the schema touches, then builds the
// GrammarContext from them. Uri ids 0/1/2 are reserved for the empty,
// xml and xsi namespaces exactly like core.SchemaLessGrammars, since
// core/coders.go indexes into those three slots unconditionally.
func (b *Builder) assignGrammarContext() error {
	b.uriIDs[""] = 0
	b.uriIDs[core.XML_NS_URI] = 1
	b.uriIDs[core.XMLSchemaInstanceNS_URI] = 2

	qncs := make([]*core.QNameContext, len(core.LocalNamesEmpty))
	b.uriLocalNames[""] = qncs

	xmlQncs := make([]*core.QNameContext, len(core.LocalNamesXML))
	for i, ln := range core.LocalNamesXML {
		xmlQncs[i] = core.NewQNameContext(1, i, utils.QName{Space: core.XML_NS_URI, Local: ln})
	}
	b.uriLocalNames[core.XML_NS_URI] = xmlQncs

	xsiQncs := make([]*core.QNameContext, len(core.LocalNamesXSI))
	for i, ln := range core.LocalNamesXSI {
		xsiQncs[i] = core.NewQNameContext(2, i, utils.QName{Space: core.XMLSchemaInstanceNS_URI, Local: ln})
	}
	b.uriLocalNames[core.XMLSchemaInstanceNS_URI] = xsiQncs

	names := map[utils.QName]bool{}
	for _, e := range b.schema.Elements {
		names[e.Name] = true
		names[e.Type] = true
	}
	for _, a := range b.schema.Attributes {
		names[a.Name] = true
		names[a.Type] = true
	}
	for name, ct := range b.schema.ComplexTypes {
		names[name] = true
		for _, au := range ct.Attributes {
			names[au.Name] = true
			names[au.Type] = true
		}
		collectGroupNames(ct.Group, names)
	}
	for name, st := range b.schema.SimpleTypes {
		names[name] = true
		if st.Base != nil {
			names[*st.Base] = true
		}
	}

	// The no-namespace and reserved xml/xsi slots are already seeded above;
	// only names in other namespaces need a fresh uri slot assigned, in
	// stable order so repeated builds over the same schema are
	// deterministic.
	uriOrder := []string{}
	for name := range names {
		if name.Space == "" || name.Space == core.XML_NS_URI || name.Space == core.XMLSchemaInstanceNS_URI || name.Space == core.XMLSchemaNS_URI {
			continue
		}
		if _, seen := b.uriIDs[name.Space]; !seen {
			b.uriIDs[name.Space] = -1 // placeholder, ids assigned below
			uriOrder = append(uriOrder, name.Space)
		}
	}
	nextID := 3
	for _, uri := range uriOrder {
		b.uriIDs[uri] = nextID
		nextID++
	}

	for name := range names {
		if _, exists := b.qncByQName[name]; exists {
			continue
		}
		uriID, ok := b.uriIDs[name.Space]
		if !ok {
			// XSD builtin types (xs: namespace) are never part of the
			// grammar context: they never appear on the wire as element
			// or attribute names, only as datatypes.
			continue
		}
		localNameID := len(b.uriLocalNames[name.Space])
		qnc := core.NewQNameContext(uriID, localNameID, name)
		b.uriLocalNames[name.Space] = append(b.uriLocalNames[name.Space], qnc)
		b.qncByQName[name] = qnc
	}

	totalQNames := 0
	grammarUris := make([]*core.GrammarUriContext, nextID)
	grammarUris[0] = core.NewGrammarUriContext(0, "", b.uriLocalNames[""], core.PrefixesEmpty)
	grammarUris[1] = core.NewGrammarUriContext(1, core.XML_NS_URI, b.uriLocalNames[core.XML_NS_URI], core.PrefixesXML)
	grammarUris[2] = core.NewGrammarUriContext(2, core.XMLSchemaInstanceNS_URI, b.uriLocalNames[core.XMLSchemaInstanceNS_URI], core.PrefixesXSI)
	for _, id := range []int{0, 1, 2} {
		totalQNames += grammarUris[id].GetNumberOfQNames()
	}
	for _, uri := range uriOrder {
		id := b.uriIDs[uri]
		grammarUris[id] = core.NewGrammarUriContextWithEmptyPrefixes(id, uri, b.uriLocalNames[uri])
		totalQNames += grammarUris[id].GetNumberOfQNames()
	}

	b.grammarContext = core.NewGrammarContext(grammarUris, totalQNames)
	return nil
}

func collectGroupNames(g *ModelGroup, names map[utils.QName]bool) {
	if g == nil {
		return
	}
	for _, p := range g.Particles {
		switch p.Kind {
		case ParticleElement:
			names[*p.Element] = true
		case ParticleGroup:
			collectGroupNames(p.Group, names)
		}
	}
}

func (b *Builder) qnameContext(name utils.QName) (*core.QNameContext, error) {
	qnc, ok := b.qncByQName[name]
	if !ok {
		return nil, fmt.Errorf("schemagen: %s was not registered in the grammar context", name)
	}
	return qnc, nil
}

// globalElementEvent builds (and memoizes onto qnc) the StartElement event
// carrying ge's FirstStartTag grammar, the EXI model's "global element
// grammar pool" entry.
func (b *Builder) globalElementEvent(ge *GlobalElement, qnc *core.QNameContext) (*core.StartElement, error) {
	if se := qnc.GetGlobalStartElement(); se != nil {
		return se, nil
	}

	fsst, err := b.typeGrammar(ge.Type, ge.Nillable)
	if err != nil {
		return nil, err
	}

	se := core.NewStartElementWithGrammar(qnc, fsst)
	qnc.SetGlobalStartElement(se)
	return se, nil
}

// typeGrammar returns the memoized FirstStartTag grammar for a named type,
// building it on first reference. nillable is folded in per reference
// since the same type can be used by a nillable element declaration in one
// place and a non-nillable one in another -- xsi:nil eligibility belongs to
// the element declaration, not the type itself.
func (b *Builder) typeGrammar(typeName utils.QName, nillable bool) (core.SchemaInformedFirstStartTagGrammar, error) {
	key := qnameKey{typeName}
	if cached, ok := b.typeGrammars.Get(key); ok {
		fsst := *cached
		if nillable != fsst.IsNillable() {
			// Two elements share this type but disagree on nillability;
			// nillability is a first-start-tag-level flag, so give this
			// caller its own top-level copy instead of mutating the shared
			// cached grammar.
			clone := core.NewSchemaInformedFirstStartTagWithStartTag(fsst)
			clone.SetNillable(nillable)
			return clone, nil
		}
		return fsst, nil
	}

	if b.building[typeName] {
		return nil, fmt.Errorf("schemagen: cyclic type reference through %s", typeName)
	}
	b.building[typeName] = true
	defer delete(b.building, typeName)

	var fsst core.SchemaInformedFirstStartTagGrammar
	var err error

	if ct, ok := b.schema.ComplexTypes[typeName]; ok {
		fsst, err = b.buildComplexTypeGrammar(typeName, ct)
	} else if _, ok := b.schema.SimpleTypes[typeName]; ok {
		fsst, err = b.buildSimpleTypeGrammar(typeName)
	} else if _, ok := datatypeForBuiltin(typeName, nil); ok {
		fsst, err = b.buildBuiltinTypeGrammar(typeName)
	} else {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, typeName)
	}
	if err != nil {
		return nil, err
	}

	fsst.SetNillable(nillable)
	b.typeGrammars.Put(key, &fsst)
	return fsst, nil
}

// buildBuiltinTypeGrammar builds the trivial FirstStartTag grammar for an
// element whose declared type is an XSD built-in primitive: one production,
// CH(datatype), leading straight to the terminal content state.
func (b *Builder) buildBuiltinTypeGrammar(typeName utils.QName) (core.SchemaInformedFirstStartTagGrammar, error) {
	qnc := core.NewQNameContext(-1, -1, typeName)
	dt, _ := datatypeForBuiltin(typeName, qnc)
	return b.simpleContentGrammar(dt)
}

func (b *Builder) buildSimpleTypeGrammar(typeName utils.QName) (core.SchemaInformedFirstStartTagGrammar, error) {
	qnc, err := b.qnameContext(typeName)
	if err != nil {
		qnc = core.NewQNameContext(-1, -1, typeName)
	}
	def := b.schema.SimpleTypes[typeName]
	dt, err := b.buildSimpleDatatype(def, qnc)
	if err != nil {
		return nil, err
	}
	fsst, err := b.simpleContentGrammar(dt)
	if err != nil {
		return nil, err
	}
	if def.NamedSubtypeOrUnion {
		fsst.SetTypeCastable(true)
	}
	return fsst, nil
}

// simpleContentGrammar builds a FirstStartTag grammar whose only content
// event is CH(datatype) -> EE, with no attributes (no-attribute simple
// types and xs:simpleContent with no extension attributes share this
// shape).
func (b *Builder) simpleContentGrammar(dt core.Datatype) (core.SchemaInformedFirstStartTagGrammar, error) {
	tail := buildTailContent()
	content := core.NewSchemaInformedElement()
	if err := content.AddProduction(core.NewCharacters(dt), tail); err != nil {
		return nil, err
	}

	fsst := core.NewSchemaInformedFirstStartTagWithEC2(content)
	if err := unionInto(fsst, content); err != nil {
		return nil, err
	}
	return fsst, nil
}

// buildComplexTypeGrammar is the equivalent of the original grammar
// generator's createComplexTypeGrammar: build the content model (or the
// simple-content datatype), wrap it in a FirstStartTag, then concatenate
// each attribute use's production onto the FirstStartTag (self-looping, so
// attributes may appear in any order before content begins).
func (b *Builder) buildComplexTypeGrammar(name utils.QName, ct *ComplexTypeDef) (core.SchemaInformedFirstStartTagGrammar, error) {
	var content core.SchemaInformedGrammar
	var err error

	switch ct.Content {
	case ContentEmpty:
		content = buildTailContent()
	case ContentSimple:
		qnc, qerr := b.qnameContext(*ct.SimpleContent)
		if qerr != nil {
			qnc = core.NewQNameContext(-1, -1, *ct.SimpleContent)
		}
		dt, derr := b.resolveDatatype(*ct.SimpleContent, qnc)
		if derr != nil {
			return nil, derr
		}
		tail := buildTailContent()
		content = core.NewSchemaInformedElement()
		if err := content.AddProduction(core.NewCharacters(dt), tail); err != nil {
			return nil, err
		}
	case ContentElementOnly:
		content, err = b.buildContentModel(ct.Group, false, buildTailContent())
	case ContentMixed:
		content, err = b.buildContentModel(ct.Group, true, buildTailContent())
	default:
		return nil, fmt.Errorf("schemagen: unknown content kind %d for %s", ct.Content, name)
	}
	if err != nil {
		return nil, err
	}

	fsst := core.NewSchemaInformedFirstStartTagWithEC2(content)
	if err := unionInto(fsst, content); err != nil {
		return nil, err
	}

	for i := range ct.Attributes {
		au := ct.Attributes[i]
		qnc, qerr := b.qnameContext(au.Name)
		if qerr != nil {
			qnc = core.NewQNameContext(-1, -1, au.Name)
		}
		atQnc, aerr := b.qnameContext(au.Type)
		if aerr != nil {
			atQnc = core.NewQNameContext(-1, -1, au.Type)
		}
		dt, derr := b.resolveDatatype(au.Type, atQnc)
		if derr != nil {
			return nil, derr
		}
		at := core.NewAttributeWithDatatype(qnc, dt)
		if err := fsst.AddProduction(at, fsst); err != nil {
			return nil, err
		}
	}

	if ct.AttributeWild != nil {
		ev := wildcardAttributeEvent(ct.AttributeWild.Namespace)
		if err := fsst.AddProduction(ev, fsst); err != nil {
			return nil, err
		}
	}

	if b.schemaHasSubtypesOf(name) {
		fsst.SetTypeCastable(true)
	}

	return fsst, nil
}

// schemaHasSubtypesOf reports whether another complex type in the schema
// has simple content whose recorded base is name, which is when a value
// declared with type name could, at runtime, carry a more specific
// xsi:type. Derivations through xs:complexContent are not detected.
func (b *Builder) schemaHasSubtypesOf(name utils.QName) bool {
	for other, ct := range b.schema.ComplexTypes {
		if other == name {
			continue
		}
		if ct.Content == ContentSimple && ct.SimpleContent != nil && *ct.SimpleContent == name {
			return true
		}
	}
	return false
}
