package schemagen

import (
	"fmt"

	"github.com/exip-go/exip/core"
	"github.com/exip-go/exip/utils"
)

// xsdBuiltins maps every XSD built-in primitive and the commonly-used
// integer-derived built-ins to the core.Datatype constructor it maps onto,
// following the table in http://www.w3.org/TR/exi/#builtInEXITypes.
var xsdBuiltins = map[string]func(*core.QNameContext) core.Datatype{
	"string":             func(s *core.QNameContext) core.Datatype { return core.NewStringDatatype(s) },
	"boolean":            func(s *core.QNameContext) core.Datatype { return core.NewBooleanDatatype(s) },
	"decimal":            func(s *core.QNameContext) core.Datatype { return core.NewDecimalDatatype(s) },
	"float":              func(s *core.QNameContext) core.Datatype { return core.NewFloatDatatype(s) },
	"double":             func(s *core.QNameContext) core.Datatype { return core.NewFloatDatatype(s) },
	"duration":           func(s *core.QNameContext) core.Datatype { return core.NewStringDatatype(s) },
	"dateTime":           func(s *core.QNameContext) core.Datatype { return core.NewDatetimeDatatype(core.DateTimeDateTime, s) },
	"time":               func(s *core.QNameContext) core.Datatype { return core.NewDatetimeDatatype(core.DateTimeTime, s) },
	"date":               func(s *core.QNameContext) core.Datatype { return core.NewDatetimeDatatype(core.DateTimeDate, s) },
	"gYearMonth":         func(s *core.QNameContext) core.Datatype { return core.NewDatetimeDatatype(core.DateTimeGYearMonth, s) },
	"gYear":              func(s *core.QNameContext) core.Datatype { return core.NewDatetimeDatatype(core.DateTimeGYear, s) },
	"gMonthDay":          func(s *core.QNameContext) core.Datatype { return core.NewDatetimeDatatype(core.DateTimeGMonthDay, s) },
	"gDay":               func(s *core.QNameContext) core.Datatype { return core.NewDatetimeDatatype(core.DateTimeGDay, s) },
	"gMonth":             func(s *core.QNameContext) core.Datatype { return core.NewDatetimeDatatype(core.DateTimeGMonth, s) },
	"hexBinary":          func(s *core.QNameContext) core.Datatype { return core.NewBinaryHexDatatype(s) },
	"base64Binary":       func(s *core.QNameContext) core.Datatype { return core.NewBinaryBase64Datatype(s) },
	"anyURI":             func(s *core.QNameContext) core.Datatype { return core.NewStringDatatype(s) },
	"QName":              func(s *core.QNameContext) core.Datatype { return core.NewStringDatatype(s) },
	"NOTATION":           func(s *core.QNameContext) core.Datatype { return core.NewStringDatatype(s) },
	"integer":            func(s *core.QNameContext) core.Datatype { return core.NewIntegerDatatype(s) },
	"nonPositiveInteger": func(s *core.QNameContext) core.Datatype { return core.NewIntegerDatatype(s) },
	"negativeInteger":    func(s *core.QNameContext) core.Datatype { return core.NewIntegerDatatype(s) },
	"long":               func(s *core.QNameContext) core.Datatype { return core.NewIntegerDatatype(s) },
	"int":                func(s *core.QNameContext) core.Datatype { return core.NewIntegerDatatype(s) },
	"short":              func(s *core.QNameContext) core.Datatype { return core.NewIntegerDatatype(s) },
	"byte":                func(s *core.QNameContext) core.Datatype { return core.NewIntegerDatatype(s) },
	"nonNegativeInteger": func(s *core.QNameContext) core.Datatype { return core.NewUnsignedIntegerDatatype(s) },
	"unsignedLong":       func(s *core.QNameContext) core.Datatype { return core.NewUnsignedIntegerDatatype(s) },
	"unsignedInt":        func(s *core.QNameContext) core.Datatype { return core.NewUnsignedIntegerDatatype(s) },
	"unsignedShort":      func(s *core.QNameContext) core.Datatype { return core.NewUnsignedIntegerDatatype(s) },
	"unsignedByte":       func(s *core.QNameContext) core.Datatype { return core.NewUnsignedIntegerDatatype(s) },
	"positiveInteger":    func(s *core.QNameContext) core.Datatype { return core.NewUnsignedIntegerDatatype(s) },
	"normalizedString":   func(s *core.QNameContext) core.Datatype { return core.NewStringDatatype(s) },
	"token":              func(s *core.QNameContext) core.Datatype { return core.NewStringDatatype(s) },
	"language":           func(s *core.QNameContext) core.Datatype { return core.NewStringDatatype(s) },
	"Name":               func(s *core.QNameContext) core.Datatype { return core.NewStringDatatype(s) },
	"NCName":             func(s *core.QNameContext) core.Datatype { return core.NewStringDatatype(s) },
	"NMTOKEN":            func(s *core.QNameContext) core.Datatype { return core.NewStringDatatype(s) },
	"ID":                 func(s *core.QNameContext) core.Datatype { return core.NewStringDatatype(s) },
	"IDREF":              func(s *core.QNameContext) core.Datatype { return core.NewStringDatatype(s) },
	"ENTITY":             func(s *core.QNameContext) core.Datatype { return core.NewStringDatatype(s) },
	"anySimpleType":      func(s *core.QNameContext) core.Datatype { return core.NewStringDatatype(s) },
	"anyType":            func(s *core.QNameContext) core.Datatype { return core.NewStringDatatype(s) },
}

func isIntegerFamily(localName string) bool {
	switch localName {
	case "integer", "nonPositiveInteger", "negativeInteger", "long", "int", "short", "byte",
		"nonNegativeInteger", "unsignedLong", "unsignedInt", "unsignedShort", "unsignedByte", "positiveInteger":
		return true
	}
	return false
}

func facet(facets []Facet, kind FacetKind) (Facet, bool) {
	for _, f := range facets {
		if f.Kind == kind {
			return f, true
		}
	}
	return Facet{}, false
}

func enumFacets(facets []Facet) []Facet {
	var out []Facet
	for _, f := range facets {
		if f.Kind == FacetEnumeration {
			out = append(out, f)
		}
	}
	return out
}

// datatypeForBuiltin resolves an XSD built-in primitive (or one of its
// standard derivations by name) directly, without consulting the schema's
// own SimpleTypes table.
func datatypeForBuiltin(name utils.QName, schemaType *core.QNameContext) (core.Datatype, bool) {
	if name.Space != core.XMLSchemaNS_URI {
		return nil, false
	}
	ctor, ok := xsdBuiltins[name.Local]
	if !ok {
		return nil, false
	}
	return ctor(schemaType), true
}

// buildSimpleDatatype turns a SimpleTypeDef into the core.Datatype the
// builder wires into element/attribute productions. schemaType carries the
// QNameContext identifying the simple type itself (used by the datatype's
// GetSchemaType(), and as the simple-type-grammar's key).
func (b *Builder) buildSimpleDatatype(def *SimpleTypeDef, schemaType *core.QNameContext) (core.Datatype, error) {
	switch def.Variety {
	case VarietyList:
		return nil, ErrListFacetNotImplemented
	case VarietyUnion:
		// Union content is encoded as plain String; the actual member-type
		// disambiguation is a schema-validation concern, out of scope here.
		// NamedSubtypeOrUnion (always true for a union) is what lets the
		// runtime fall back to xsi:type for the member types instead.
		return core.NewStringDatatypeWithDerive(schemaType, true), nil
	}

	if def.Base == nil {
		return nil, fmt.Errorf("schemagen: atomic simple type %s has no base", def.Name)
	}

	base, err := b.resolveDatatype(*def.Base, schemaType)
	if err != nil {
		return nil, err
	}

	if enums := enumFacets(def.Facets); len(enums) > 0 {
		return b.buildEnumeration(def, base, enums, schemaType)
	}

	minI, hasMin := facet(def.Facets, FacetMinInclusive)
	maxI, hasMax := facet(def.Facets, FacetMaxInclusive)
	if hasMin && hasMax && isIntegerFamily(def.Base.Local) && def.Base.Space == core.XMLSchemaNS_URI {
		lower, err := core.IntegerValueParse(minI.Value)
		if err != nil {
			return nil, fmt.Errorf("schemagen: bad minInclusive %q on %s: %w", minI.Value, def.Name, err)
		}
		upper, err := core.IntegerValueParse(maxI.Value)
		if err != nil {
			return nil, fmt.Errorf("schemagen: bad maxInclusive %q on %s: %w", maxI.Value, def.Name, err)
		}
		return core.NewNBitUnsignedIntegerDatatype(lower, upper, schemaType), nil
	}

	// maxLength, minExclusive/maxExclusive and any other facet narrow the
	// value space but not its EXI representation; general schema validation
	// beyond grammar shape is out of scope, so the base representation is
	// reused as-is.
	return base, nil
}

func (b *Builder) buildEnumeration(def *SimpleTypeDef, base core.Datatype, enums []Facet, schemaType *core.QNameContext) (core.Datatype, error) {
	switch base.GetBuiltInType() {
	case core.BuiltInTypeDecimal, core.BuiltInTypeFloat, core.BuiltInTypeDateTime:
		return nil, ErrEnumerationValueNotImplemented
	}

	values := make([]core.Value, 0, len(enums))
	for _, e := range enums {
		v, err := parseEnumValue(base, e.Value)
		if err != nil {
			return nil, fmt.Errorf("schemagen: enumeration value %q on %s: %w", e.Value, def.Name, err)
		}
		values = append(values, v)
	}

	return core.NewEnumerationDatatypeChecked(values, base, schemaType)
}

func parseEnumValue(base core.Datatype, literal string) (core.Value, error) {
	switch base.GetBuiltInType() {
	case core.BuiltInTypeBoolean, core.BuiltInTypeBooleanFacet:
		return core.BooleanValueParse(literal), nil
	case core.BuiltInTypeInteger, core.BuiltInTypeUnsignedInteger, core.BuiltInTypeNBitUnsignedInteger:
		return core.IntegerValueParse(literal)
	default:
		return core.NewStringValueFromString(literal), nil
	}
}

// resolveDatatype resolves a type name to a core.Datatype, checking XSD
// built-ins first and then the schema's own (already-built, memoized)
// simple types.
func (b *Builder) resolveDatatype(name utils.QName, schemaType *core.QNameContext) (core.Datatype, error) {
	if dt, ok := datatypeForBuiltin(name, schemaType); ok {
		return dt, nil
	}

	def, ok := b.schema.SimpleTypes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, name)
	}

	return b.buildSimpleDatatype(def, schemaType)
}
