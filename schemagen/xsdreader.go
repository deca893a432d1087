package schemagen

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/exip-go/exip/utils"
)

const xsdNS = "http://www.w3.org/2001/XMLSchema"

// ReadXSD parses a single XML Schema document into a Schema tree-table.
// It covers the subset of XSD actually exercised by the grammar builder:
// top-level element/attribute/complexType/simpleType declarations, sequence
// and choice content models (nested arbitrarily), simpleContent extension,
// attribute uses (including anyAttribute), element wildcards (xs:any), and
// simpleType restriction/list/union. xs:include, xs:import and xs:redefine
// are not followed -- multi-document schema assembly is left to the
// caller, which can parse each document with ReadXSD and merge the
// resulting Schema values.
func ReadXSD(r io.Reader) (*Schema, error) {
	dec := xml.NewDecoder(r)
	rd := &xsdReader{dec: dec}
	return rd.read()
}

type xsdReader struct {
	dec    *xml.Decoder
	schema *Schema
}

func (rd *xsdReader) read() (*Schema, error) {
	for {
		tok, err := rd.dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if se, ok := tok.(xml.StartElement); ok && se.Name.Space == xsdNS && se.Name.Local == "schema" {
			return rd.readSchema(se)
		}
	}
	return nil, fmt.Errorf("schemagen: no xs:schema root element found")
}

func (rd *xsdReader) readSchema(root xml.StartElement) (*Schema, error) {
	targetNS := attrVal(root.Attr, "targetNamespace")
	rd.schema = NewSchema(targetNS)

	for {
		tok, err := rd.dec.Token()
		if err == io.EOF {
			return rd.schema, nil
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != xsdNS {
				if err := rd.dec.Skip(); err != nil {
					return nil, err
				}
				continue
			}
			switch t.Local {
			case "element":
				if err := rd.readGlobalElement(t); err != nil {
					return nil, err
				}
			case "attribute":
				if err := rd.readGlobalAttribute(t); err != nil {
					return nil, err
				}
			case "complexType":
				if err := rd.readGlobalComplexType(t); err != nil {
					return nil, err
				}
			case "simpleType":
				if err := rd.readGlobalSimpleType(t); err != nil {
					return nil, err
				}
			default:
				if err := rd.dec.Skip(); err != nil {
					return nil, err
				}
			}
		case xml.EndElement:
			if t.Name.Space == xsdNS && t.Name.Local == "schema" {
				return rd.schema, nil
			}
		}
	}
}

func (rd *xsdReader) qn(local string) utils.QName {
	return utils.QName{Space: rd.schema.TargetNamespace, Local: local}
}

// resolveQName resolves an XSD QName-valued attribute value ("xs:string",
// "tns:Foo", "Foo") against the reader's prefix table. It only needs to
// distinguish the XSD namespace from the schema's own target namespace,
// since this builder has no notion of importing other schemas' types.
func (rd *xsdReader) resolveQName(value string, nsByPrefix map[string]string) utils.QName {
	if i := strings.IndexByte(value, ':'); i >= 0 {
		prefix, local := value[:i], value[i+1:]
		if ns, ok := nsByPrefix[prefix]; ok {
			return utils.QName{Space: ns, Local: local}
		}
		return utils.QName{Space: xsdNS, Local: local}
	}
	return rd.qn(value)
}

func prefixMap(attrs []xml.Attr) map[string]string {
	m := map[string]string{}
	for _, a := range attrs {
		if a.Name.Space == "xmlns" {
			m[a.Name.Local] = a.Value
		} else if a.Name.Space == "" && a.Name.Local == "xmlns" {
			m[""] = a.Value
		}
	}
	return m
}

func attrVal(attrs []xml.Attr, local string) string {
	for _, a := range attrs {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

func parseOccurs(attrs []xml.Attr) Occurs {
	occ := Occurs{Min: 1, Max: 1}
	if v := attrVal(attrs, "minOccurs"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			occ.Min = n
		}
	}
	if v := attrVal(attrs, "maxOccurs"); v != "" {
		if v == "unbounded" {
			occ.Max = MaxUnbounded
		} else if n, err := strconv.Atoi(v); err == nil {
			occ.Max = n
		}
	}
	return occ
}

func (rd *xsdReader) readGlobalElement(se xml.StartElement) error {
	name := attrVal(se.Attr, "name")
	typeAttr := attrVal(se.Attr, "type")
	nillable := attrVal(se.Attr, "nillable") == "true"
	nsByPrefix := prefixMap(se.Attr)

	ge := &GlobalElement{Name: rd.qn(name), Nillable: nillable}

	if typeAttr != "" {
		ge.Type = rd.resolveQName(typeAttr, nsByPrefix)
		rd.schema.AddElement(ge)
		return rd.dec.Skip()
	}

	// Anonymous inline type: synthesize a type name scoped to the element.
	anon := utils.QName{Space: rd.schema.TargetNamespace, Local: name + "#anonType"}
	ge.Type = anon
	rd.schema.AddElement(ge)

	for {
		tok, err := rd.dec.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space == xsdNS && t.Name.Local == "complexType" {
				if err := rd.readComplexType(anon, t); err != nil {
					return err
				}
			} else if t.Name.Space == xsdNS && t.Name.Local == "simpleType" {
				if err := rd.readSimpleType(anon, t); err != nil {
					return err
				}
			} else if err := rd.dec.Skip(); err != nil {
				return err
			}
		case xml.EndElement:
			if t.Name.Space == xsdNS && t.Name.Local == "element" {
				return nil
			}
		}
	}
}

func (rd *xsdReader) readGlobalAttribute(se xml.StartElement) error {
	name := attrVal(se.Attr, "name")
	typeAttr := attrVal(se.Attr, "type")
	nsByPrefix := prefixMap(se.Attr)
	ga := &GlobalAttribute{Name: rd.qn(name)}
	if typeAttr != "" {
		ga.Type = rd.resolveQName(typeAttr, nsByPrefix)
	} else {
		ga.Type = utils.QName{Space: xsdNS, Local: "string"}
	}
	rd.schema.Attributes[ga.Name] = ga
	return rd.dec.Skip()
}

func (rd *xsdReader) readGlobalComplexType(se xml.StartElement) error {
	name := rd.qn(attrVal(se.Attr, "name"))
	return rd.readComplexType(name, se)
}

func (rd *xsdReader) readGlobalSimpleType(se xml.StartElement) error {
	name := rd.qn(attrVal(se.Attr, "name"))
	return rd.readSimpleType(name, se)
}

func (rd *xsdReader) readComplexType(name utils.QName, open xml.StartElement) error {
	ct := &ComplexTypeDef{Name: name, Content: ContentEmpty}
	if attrVal(open.Attr, "mixed") == "true" {
		ct.Content = ContentMixed
	}
	rd.schema.ComplexTypes[name] = ct

	depth := 0
	for {
		tok, err := rd.dec.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != xsdNS {
				if err := rd.dec.Skip(); err != nil {
					return err
				}
				continue
			}
			switch t.Name.Local {
			case "sequence", "choice", "all":
				if depth == 0 {
					group, err := rd.readModelGroup(t)
					if err != nil {
						return err
					}
					ct.Group = group
					if ct.Content == ContentEmpty {
						ct.Content = ContentElementOnly
					} else if ct.Content == ContentMixed {
						// already set
					}
				} else if err := rd.dec.Skip(); err != nil {
					return err
				}
			case "attribute":
				au, err := rd.readAttributeUse(t)
				if err != nil {
					return err
				}
				ct.Attributes = append(ct.Attributes, au)
			case "anyAttribute":
				ct.AttributeWild = &WildcardUse{Namespace: readNamespaceConstraint(t.Attr)}
				if err := rd.dec.Skip(); err != nil {
					return err
				}
			case "simpleContent", "complexContent":
				depth++
			case "extension", "restriction":
				base := attrVal(t.Attr, "base")
				if base != "" {
					nsByPrefix := prefixMap(t.Attr)
					baseName := rd.resolveQName(base, nsByPrefix)
					if baseCT, ok := rd.schema.ComplexTypes[baseName]; ok {
						ct.Attributes = append(ct.Attributes, baseCT.Attributes...)
						if baseCT.Content == ContentSimple {
							ct.SimpleContent = baseCT.SimpleContent
							ct.Content = ContentSimple
						}
					} else {
						ct.SimpleContent = &baseName
						ct.Content = ContentSimple
					}
				}
			default:
				if err := rd.dec.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			if t.Name.Space != xsdNS {
				continue
			}
			switch t.Name.Local {
			case "simpleContent", "complexContent":
				depth--
			case "complexType":
				return nil
			}
		}
	}
}

func (rd *xsdReader) readAttributeUse(se xml.StartElement) (AttributeUse, error) {
	name := attrVal(se.Attr, "name")
	typeAttr := attrVal(se.Attr, "type")
	use := attrVal(se.Attr, "use")
	nsByPrefix := prefixMap(se.Attr)

	au := AttributeUse{Name: rd.qn(name), Required: use == "required"}
	if typeAttr != "" {
		au.Type = rd.resolveQName(typeAttr, nsByPrefix)
	} else {
		au.Type = utils.QName{Space: xsdNS, Local: "string"}
	}
	return au, rd.dec.Skip()
}

func readNamespaceConstraint(attrs []xml.Attr) NamespaceConstraint {
	v := attrVal(attrs, "namespace")
	switch v {
	case "", "##any":
		return NamespaceConstraint{Kind: NSAny}
	case "##other":
		return NamespaceConstraint{Kind: NSOther}
	default:
		return NamespaceConstraint{Kind: NSEnumerated, URIs: strings.Fields(v)}
	}
}

func (rd *xsdReader) readModelGroup(open xml.StartElement) (*ModelGroup, error) {
	kind := GroupSequence
	switch open.Name.Local {
	case "choice":
		kind = GroupChoice
	case "all":
		kind = GroupAll
	}
	group := &ModelGroup{Kind: kind}

	for {
		tok, err := rd.dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != xsdNS {
				if err := rd.dec.Skip(); err != nil {
					return nil, err
				}
				continue
			}
			switch t.Name.Local {
			case "element":
				p, err := rd.readElementParticle(t)
				if err != nil {
					return nil, err
				}
				group.Particles = append(group.Particles, p)
			case "any":
				group.Particles = append(group.Particles, Particle{
					Kind:     ParticleWildcard,
					Occurs:   parseOccurs(t.Attr),
					Wildcard: &WildcardUse{Namespace: readNamespaceConstraint(t.Attr)},
				})
				if err := rd.dec.Skip(); err != nil {
					return nil, err
				}
			case "sequence", "choice", "all":
				nested, err := rd.readModelGroup(t)
				if err != nil {
					return nil, err
				}
				group.Particles = append(group.Particles, Particle{
					Kind:   ParticleGroup,
					Occurs: parseOccurs(t.Attr),
					Group:  nested,
				})
			default:
				if err := rd.dec.Skip(); err != nil {
					return nil, err
				}
			}
		case xml.EndElement:
			if t.Name.Space == xsdNS {
				return group, nil
			}
		}
	}
}

func (rd *xsdReader) readElementParticle(se xml.StartElement) (Particle, error) {
	ref := attrVal(se.Attr, "ref")
	occ := parseOccurs(se.Attr)
	nsByPrefix := prefixMap(se.Attr)

	if ref != "" {
		name := rd.resolveQName(ref, nsByPrefix)
		if err := rd.dec.Skip(); err != nil {
			return Particle{}, err
		}
		return Particle{Kind: ParticleElement, Occurs: occ, Element: &name}, nil
	}

	name := attrVal(se.Attr, "name")
	typeAttr := attrVal(se.Attr, "type")
	qname := rd.qn(name)

	if typeAttr != "" {
		ge := &GlobalElement{Name: qname, Type: rd.resolveQName(typeAttr, nsByPrefix), Nillable: attrVal(se.Attr, "nillable") == "true"}
		rd.schema.AddElement(ge)
		if err := rd.dec.Skip(); err != nil {
			return Particle{}, err
		}
		return Particle{Kind: ParticleElement, Occurs: occ, Element: &qname}, nil
	}

	anon := utils.QName{Space: rd.schema.TargetNamespace, Local: name + "#anonType"}
	ge := &GlobalElement{Name: qname, Type: anon, Nillable: attrVal(se.Attr, "nillable") == "true"}
	rd.schema.AddElement(ge)

	for {
		tok, err := rd.dec.Token()
		if err != nil {
			return Particle{}, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space == xsdNS && t.Name.Local == "complexType" {
				if err := rd.readComplexType(anon, t); err != nil {
					return Particle{}, err
				}
			} else if t.Name.Space == xsdNS && t.Name.Local == "simpleType" {
				if err := rd.readSimpleType(anon, t); err != nil {
					return Particle{}, err
				}
			} else if err := rd.dec.Skip(); err != nil {
				return Particle{}, err
			}
		case xml.EndElement:
			if t.Name.Space == xsdNS && t.Name.Local == "element" {
				return Particle{Kind: ParticleElement, Occurs: occ, Element: &qname}, nil
			}
		}
	}
}

func (rd *xsdReader) readSimpleType(name utils.QName, open xml.StartElement) error {
	def := &SimpleTypeDef{Name: name, Variety: VarietyAtomic}
	rd.schema.SimpleTypes[name] = def

	for {
		tok, err := rd.dec.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != xsdNS {
				if err := rd.dec.Skip(); err != nil {
					return err
				}
				continue
			}
			nsByPrefix := prefixMap(t.Attr)
			switch t.Name.Local {
			case "restriction":
				base := attrVal(t.Attr, "base")
				if base != "" {
					bn := rd.resolveQName(base, nsByPrefix)
					def.Base = &bn
				}
			case "list":
				def.Variety = VarietyList
				if itemType := attrVal(t.Attr, "itemType"); itemType != "" {
					it := rd.resolveQName(itemType, nsByPrefix)
					def.ItemType = &it
				}
				if err := rd.dec.Skip(); err != nil {
					return err
				}
			case "union":
				def.Variety = VarietyUnion
				def.NamedSubtypeOrUnion = true
				if members := attrVal(t.Attr, "memberTypes"); members != "" {
					for _, m := range strings.Fields(members) {
						mn := rd.resolveQName(m, nsByPrefix)
						def.Members = append(def.Members, mn)
					}
				}
				if err := rd.dec.Skip(); err != nil {
					return err
				}
			case "enumeration":
				def.Facets = append(def.Facets, Facet{Kind: FacetEnumeration, Value: attrVal(t.Attr, "value")})
				if err := rd.dec.Skip(); err != nil {
					return err
				}
			case "minInclusive":
				def.Facets = append(def.Facets, Facet{Kind: FacetMinInclusive, Value: attrVal(t.Attr, "value")})
				if err := rd.dec.Skip(); err != nil {
					return err
				}
			case "maxInclusive":
				def.Facets = append(def.Facets, Facet{Kind: FacetMaxInclusive, Value: attrVal(t.Attr, "value")})
				if err := rd.dec.Skip(); err != nil {
					return err
				}
			case "minExclusive":
				def.Facets = append(def.Facets, Facet{Kind: FacetMinExclusive, Value: attrVal(t.Attr, "value")})
				if err := rd.dec.Skip(); err != nil {
					return err
				}
			case "maxExclusive":
				def.Facets = append(def.Facets, Facet{Kind: FacetMaxExclusive, Value: attrVal(t.Attr, "value")})
				if err := rd.dec.Skip(); err != nil {
					return err
				}
			case "maxLength":
				def.Facets = append(def.Facets, Facet{Kind: FacetMaxLength, Value: attrVal(t.Attr, "value")})
				if err := rd.dec.Skip(); err != nil {
					return err
				}
			default:
				if err := rd.dec.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			if t.Name.Space == xsdNS && t.Name.Local == "simpleType" {
				return nil
			}
		}
	}
}
