package xsdvalue

import (
	"regexp"
	"slices"
	"strings"

	"github.com/jacoelho/xsdvalue/internal/value"
)

// Family is the primitive datatype family a Type belongs to.
type Family uint8

const (
	FamilyAnySimple Family = iota
	FamilyString
	FamilyBoolean
	FamilyDecimal
	FamilyFloat
	FamilyDouble
	FamilyDuration
	FamilyHexBinary
	FamilyQName
	FamilyNotation
	FamilyUnion
)

// String returns the XSD name of the primitive family.
func (f Family) String() string {
	switch f {
	case FamilyString:
		return "string"
	case FamilyBoolean:
		return "boolean"
	case FamilyDecimal:
		return "decimal"
	case FamilyFloat:
		return "float"
	case FamilyDouble:
		return "double"
	case FamilyDuration:
		return "duration"
	case FamilyHexBinary:
		return "hexBinary"
	case FamilyQName:
		return "QName"
	case FamilyNotation:
		return "NOTATION"
	case FamilyUnion:
		return "union"
	default:
		return "anySimpleType"
	}
}

// Width is the representation a numeric type needs to hold every value of
// its value space without precision loss. Widths are ordered from narrow to
// wide.
type Width uint8

const (
	WidthNone Width = iota
	// WidthInt fits a 32-bit machine integer.
	WidthInt
	// WidthLong fits a 64-bit machine integer.
	WidthLong
	// WidthInteger needs an arbitrary-precision integer.
	WidthInteger
	// WidthDecimal needs an arbitrary-precision decimal.
	WidthDecimal
)

// WhiteSpace is the whiteSpace facet rule. Rules are ordered by strength.
type WhiteSpace uint8

const (
	WhiteSpacePreserve WhiteSpace = WhiteSpace(value.WhitespacePreserve)
	WhiteSpaceReplace  WhiteSpace = WhiteSpace(value.WhitespaceReplace)
	WhiteSpaceCollapse WhiteSpace = WhiteSpace(value.WhitespaceCollapse)
)

// String returns the facet keyword.
func (w WhiteSpace) String() string {
	return value.WhitespaceMode(w).String()
}

// FacetKind identifies a constraining facet.
type FacetKind uint8

const (
	FacetLength FacetKind = iota
	FacetMinLength
	FacetMaxLength
	FacetPattern
	FacetEnumeration
	FacetWhiteSpace
	FacetTotalDigits
	FacetFractionDigits
	FacetMinInclusive
	FacetMinExclusive
	FacetMaxInclusive
	FacetMaxExclusive
	facetKindCount
)

var facetNames = [facetKindCount]string{
	FacetLength:         "length",
	FacetMinLength:      "minLength",
	FacetMaxLength:      "maxLength",
	FacetPattern:        "pattern",
	FacetEnumeration:    "enumeration",
	FacetWhiteSpace:     "whiteSpace",
	FacetTotalDigits:    "totalDigits",
	FacetFractionDigits: "fractionDigits",
	FacetMinInclusive:   "minInclusive",
	FacetMinExclusive:   "minExclusive",
	FacetMaxInclusive:   "maxInclusive",
	FacetMaxExclusive:   "maxExclusive",
}

// String returns the schema keyword of the facet.
func (k FacetKind) String() string {
	if k < facetKindCount {
		return facetNames[k]
	}
	return "unknown"
}

// FacetKindByName looks a facet kind up by its schema keyword.
func FacetKindByName(name string) (FacetKind, bool) {
	for k, n := range facetNames {
		if n == name {
			return FacetKind(k), true
		}
	}
	return 0, false
}

// Pattern is the pattern facet contributed by one derivation step.
// The step's sources are alternatives.
type Pattern struct {
	re      *regexp.Regexp
	Sources []string
}

// MatchString reports whether s matches any of the step's sources.
func (p *Pattern) MatchString(s string) bool {
	return p.re.MatchString(s)
}

// String returns the sources joined as alternatives.
func (p *Pattern) String() string {
	return strings.Join(p.Sources, "|")
}

// Symbol is one entry of a string enumeration. Int values start at 1 and
// follow declaration order.
type Symbol struct {
	Name string
	Int  int
}

// Type describes one declared simple type: its primitive family, width
// class, facet table and, for unions, its member types.
// A Type is immutable once built and safe for concurrent use.
type Type struct {
	base        *Type
	symbolIndex map[string]int
	name        string
	facets      [facetKindCount]Value
	enumeration []Value
	patterns    []*Pattern
	members     []*Type
	symbols     []Symbol
	family      Family
	width       Width
	whiteSpace  WhiteSpace
	builtin     bool
}

// Name returns the declared name, empty for anonymous types.
func (t *Type) Name() string { return t.name }

// String returns a display name for messages.
func (t *Type) String() string {
	switch {
	case t == nil:
		return "<nil type>"
	case t.builtin:
		return "xs:" + t.name
	case t.name != "":
		return t.name
	case t.family == FamilyUnion:
		return "anonymous union"
	default:
		return "anonymous restriction of " + t.base.String()
	}
}

// Family returns the primitive family.
func (t *Type) Family() Family { return t.family }

// Width returns the numeric width class, WidthNone for non-numeric types.
func (t *Type) Width() Width { return t.width }

// WhiteSpace returns the effective whiteSpace rule.
func (t *Type) WhiteSpace() WhiteSpace { return t.whiteSpace }

// Base returns the base type, nil for primitives.
func (t *Type) Base() *Type { return t.base }

// IsBuiltin reports whether the type is one of the XSD builtins.
func (t *Type) IsBuiltin() bool { return t.builtin }

// Facet returns a copy of the typed value of a value-carrying facet.
// Pattern, enumeration and whiteSpace have dedicated accessors.
func (t *Type) Facet(kind FacetKind) (Value, bool) {
	if kind >= facetKindCount || t.facets[kind] == nil {
		return nil, false
	}
	return cloneValue(t.facets[kind]), true
}

// Enumeration returns copies of the enumerated values in declaration order.
func (t *Type) Enumeration() []Value {
	if t.enumeration == nil {
		return nil
	}
	out := make([]Value, len(t.enumeration))
	for i, v := range t.enumeration {
		out[i] = cloneValue(v)
	}
	return out
}

// Patterns returns the pattern facets of every derivation step; a value
// must match all of them.
func (t *Type) Patterns() []*Pattern {
	out := make([]*Pattern, len(t.patterns))
	for i, p := range t.patterns {
		out[i] = &Pattern{re: p.re, Sources: slices.Clone(p.Sources)}
	}
	return out
}

// Members returns the member types of a union in declaration order.
func (t *Type) Members() []*Type { return slices.Clone(t.members) }

// Symbols returns the symbol table of an enumerated string type.
func (t *Type) Symbols() []Symbol { return slices.Clone(t.symbols) }

// Symbol looks a string enumeration token up.
func (t *Type) Symbol(name string) (Symbol, bool) {
	i, ok := t.symbolIndex[name]
	if !ok {
		return Symbol{}, false
	}
	return t.symbols[i-1], true
}

// IsEnumeratedString reports whether values of t are held as enumeration
// symbols.
func (t *Type) IsEnumeratedString() bool { return t.symbols != nil }

func (t *Type) normalize(s string) string {
	return value.NormalizeWhitespace(value.WhitespaceMode(t.whiteSpace), s)
}

// DerivesFrom reports whether t is other or restricts it, directly or not.
func (t *Type) DerivesFrom(other *Type) bool {
	for cur := t; cur != nil; cur = cur.base {
		if cur == other {
			return true
		}
	}
	return false
}
