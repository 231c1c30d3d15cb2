package xsdvalue

import "fmt"

var (
	builtins     map[string]*Type
	builtinOrder []*Type
)

func init() {
	registerBuiltins()
}

// Builtin returns the XSD builtin type with the given local name, such as
// "int" or "NOTATION", or nil when there is none.
func Builtin(name string) *Type {
	return builtins[name]
}

// Builtins returns every builtin type, primitives first and each derived
// type after its base.
func Builtins() []*Type {
	out := make([]*Type, len(builtinOrder))
	copy(out, builtinOrder)
	return out
}

func addBuiltin(t *Type) *Type {
	t.builtin = true
	builtins[t.name] = t
	builtinOrder = append(builtinOrder, t)
	return t
}

func primitive(name string, base *Type, f Family, w Width, ws WhiteSpace) *Type {
	return addBuiltin(&Type{name: name, base: base, family: f, width: w, whiteSpace: ws})
}

func derive(name string, base *Type, w Width, opts ...FacetOption) *Type {
	t, err := Restrict(name, base, opts...)
	if err != nil {
		panic(fmt.Sprintf("xsdvalue: builtin %s: %v", name, err))
	}
	if w != WidthNone {
		t.width = w
	}
	return addBuiltin(t)
}

func registerBuiltins() {
	builtins = make(map[string]*Type)

	anySimple := primitive("anySimpleType", nil, FamilyAnySimple, WidthNone, WhiteSpacePreserve)

	str := primitive("string", anySimple, FamilyString, WidthNone, WhiteSpacePreserve)
	normalized := derive("normalizedString", str, WidthNone, WhiteSpaceRule(WhiteSpaceReplace))
	token := derive("token", normalized, WidthNone, WhiteSpaceRule(WhiteSpaceCollapse))
	derive("language", token, WidthNone, PatternFacet(`[a-zA-Z]{1,8}(-[a-zA-Z0-9]{1,8})*`))
	derive("NMTOKEN", token, WidthNone, PatternFacet(`\c+`))
	name := derive("Name", token, WidthNone, PatternFacet(`\i\c*`))
	derive("NCName", name, WidthNone, PatternFacet(`[^:]*`))
	primitive("anyURI", anySimple, FamilyString, WidthNone, WhiteSpaceCollapse)

	primitive("boolean", anySimple, FamilyBoolean, WidthNone, WhiteSpaceCollapse)

	dec := primitive("decimal", anySimple, FamilyDecimal, WidthDecimal, WhiteSpaceCollapse)
	integer := derive("integer", dec, WidthInteger)
	nonPositive := derive("nonPositiveInteger", integer, WidthInteger, MaxInclusive("0"))
	derive("negativeInteger", nonPositive, WidthInteger, MaxInclusive("-1"))
	long := derive("long", integer, WidthLong,
		MinInclusive("-9223372036854775808"), MaxInclusive("9223372036854775807"))
	intType := derive("int", long, WidthInt, MinInclusive("-2147483648"), MaxInclusive("2147483647"))
	short := derive("short", intType, WidthInt, MinInclusive("-32768"), MaxInclusive("32767"))
	derive("byte", short, WidthInt, MinInclusive("-128"), MaxInclusive("127"))
	nonNegative := derive("nonNegativeInteger", integer, WidthInteger, MinInclusive("0"))
	unsignedLong := derive("unsignedLong", nonNegative, WidthInteger, MaxInclusive("18446744073709551615"))
	unsignedInt := derive("unsignedInt", unsignedLong, WidthLong, MaxInclusive("4294967295"))
	unsignedShort := derive("unsignedShort", unsignedInt, WidthInt, MaxInclusive("65535"))
	derive("unsignedByte", unsignedShort, WidthInt, MaxInclusive("255"))
	derive("positiveInteger", nonNegative, WidthInteger, MinInclusive("1"))

	primitive("float", anySimple, FamilyFloat, WidthNone, WhiteSpaceCollapse)
	primitive("double", anySimple, FamilyDouble, WidthNone, WhiteSpaceCollapse)
	primitive("duration", anySimple, FamilyDuration, WidthNone, WhiteSpaceCollapse)
	primitive("hexBinary", anySimple, FamilyHexBinary, WidthNone, WhiteSpaceCollapse)
	primitive("QName", anySimple, FamilyQName, WidthNone, WhiteSpaceCollapse)
	primitive("NOTATION", anySimple, FamilyNotation, WidthNone, WhiteSpaceCollapse)
}
