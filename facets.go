package xsdvalue

import (
	"unicode/utf8"

	xsderrors "github.com/jacoelho/xsdvalue/errors"
	"github.com/jacoelho/xsdvalue/internal/num"
)

// checkFacets runs the facet table of v's type against v and reports the
// first violation to sink. lexical is the whitespace-normalized input, or
// the canonical text for values set directly.
func checkFacets(v Value, lexical string, sink Sink) bool {
	switch v.Type().family {
	case FamilyDecimal, FamilyFloat, FamilyDouble, FamilyDuration, FamilyBoolean:
		return checkPatterns(v, lexical, sink) &&
			checkDigits(v, sink) &&
			checkRange(v, sink) &&
			checkEnumeration(v, sink)
	case FamilyUnion:
		return checkPatterns(v, lexical, sink) && checkEnumeration(v, sink)
	default:
		return checkLength(v, sink) &&
			checkPatterns(v, lexical, sink) &&
			checkEnumeration(v, sink)
	}
}

func invalid(sink Sink, code xsderrors.ErrorCode, actual, expected, format string, args ...any) bool {
	val := xsderrors.NewValidationf(code, xsderrors.KindFacet, format, args...)
	val.Actual = actual
	if expected != "" {
		val.Expected = []string{expected}
	}
	sink.Invalid(*val)
	return false
}

// label names the value category in facet messages.
func label(t *Type) string {
	switch t.family {
	case FamilyDecimal:
		switch t.width {
		case WidthInt:
			return "Int"
		case WidthLong:
			return "Long"
		case WidthInteger:
			return "Integer"
		default:
			return "Decimal"
		}
	case FamilyFloat:
		return "Float"
	case FamilyDouble:
		return "Double"
	case FamilyDuration:
		return "Duration"
	case FamilyBoolean:
		return "Boolean"
	case FamilyHexBinary:
		return "Hex binary"
	case FamilyQName:
		return "QName"
	case FamilyNotation:
		return "NOTATION"
	case FamilyUnion:
		return "Union value"
	case FamilyString:
		return "String"
	default:
		return "Value"
	}
}

func checkPatterns(v Value, lexical string, sink Sink) bool {
	t := v.Type()
	for _, p := range t.patterns {
		if !p.MatchString(lexical) {
			return invalid(sink, xsderrors.ErrFacetPattern, lexical, p.String(),
				"%s (%s) does not match pattern for %s", label(t), lexical, t)
		}
	}
	return true
}

func checkDigits(v Value, sink Sink) bool {
	d, ok := v.(*Decimal)
	if !ok {
		return true
	}
	t := d.typ
	totalFacet, fractionFacet := t.facets[FacetTotalDigits], t.facets[FacetFractionDigits]
	if totalFacet == nil && fractionFacet == nil {
		return true
	}
	text := d.Text()
	parsed, perr := num.ParseDec([]byte(text))
	if perr != nil {
		return true
	}
	if totalFacet != nil {
		limit := facetLimit(totalFacet)
		if total := parsed.TotalDigits(); total > limit {
			return invalid(sink, xsderrors.ErrFacetTotalDigits, text, totalFacet.Text(),
				"%s (%s) has %d total digits, more than total digits facet (%d) for %s",
				label(t), text, total, limit, t)
		}
	}
	if fractionFacet != nil && t.width == WidthDecimal {
		limit := facetLimit(fractionFacet)
		if scale := int(parsed.Scale); scale > limit {
			return invalid(sink, xsderrors.ErrFacetFractionDigits, text, fractionFacet.Text(),
				"%s (%s) has %d fraction digits, more than fraction digits facet (%d) for %s",
				label(t), text, scale, limit, t)
		}
	}
	return true
}

func checkRange(v Value, sink Sink) bool {
	t := v.Type()
	if f := t.facets[FacetMinExclusive]; f != nil {
		if c, ok := Compare(v, f); !ok || c <= 0 {
			return invalid(sink, xsderrors.ErrFacetMinExclusive, v.Text(), f.Text(),
				"%s (%s) is less than or equal to min exclusive facet (%s) for %s",
				label(t), v.Text(), f.Text(), t)
		}
	}
	if f := t.facets[FacetMinInclusive]; f != nil {
		if c, ok := Compare(v, f); !ok || c < 0 {
			return invalid(sink, xsderrors.ErrFacetMinInclusive, v.Text(), f.Text(),
				"%s (%s) is less than min inclusive facet (%s) for %s",
				label(t), v.Text(), f.Text(), t)
		}
	}
	if f := t.facets[FacetMaxInclusive]; f != nil {
		if c, ok := Compare(v, f); !ok || c > 0 {
			return invalid(sink, xsderrors.ErrFacetMaxInclusive, v.Text(), f.Text(),
				"%s (%s) is greater than max inclusive facet (%s) for %s",
				label(t), v.Text(), f.Text(), t)
		}
	}
	if f := t.facets[FacetMaxExclusive]; f != nil {
		if c, ok := Compare(v, f); !ok || c >= 0 {
			return invalid(sink, xsderrors.ErrFacetMaxExclusive, v.Text(), f.Text(),
				"%s (%s) is greater than or equal to max exclusive facet (%s) for %s",
				label(t), v.Text(), f.Text(), t)
		}
	}
	return true
}

func checkEnumeration(v Value, sink Sink) bool {
	t := v.Type()
	if len(t.enumeration) == 0 {
		return true
	}
	for _, e := range t.enumeration {
		if Equal(v, e) {
			return true
		}
	}
	return invalid(sink, xsderrors.ErrFacetEnumeration, v.Text(), "",
		"%s (%s) is not a valid enumeration value for %s", label(t), v.Text(), t)
}

// measured is implemented by holders subject to length facets.
type measured interface {
	length() int
}

func checkLength(v Value, sink Sink) bool {
	m, ok := v.(measured)
	if !ok {
		return true
	}
	t := v.Type()
	n := m.length()
	unit := "characters"
	if t.family == FamilyHexBinary {
		unit = "bytes"
	}
	if f := t.facets[FacetLength]; f != nil {
		if limit := facetLimit(f); n != limit {
			return invalid(sink, xsderrors.ErrFacetLength, v.Text(), f.Text(),
				"%s (%s) has %d %s, expected length facet (%d) for %s",
				label(t), v.Text(), n, unit, limit, t)
		}
	}
	if f := t.facets[FacetMinLength]; f != nil {
		if limit := facetLimit(f); n < limit {
			return invalid(sink, xsderrors.ErrFacetMinLength, v.Text(), f.Text(),
				"%s (%s) has %d %s, fewer than min length facet (%d) for %s",
				label(t), v.Text(), n, unit, limit, t)
		}
	}
	if f := t.facets[FacetMaxLength]; f != nil {
		if limit := facetLimit(f); n > limit {
			return invalid(sink, xsderrors.ErrFacetMaxLength, v.Text(), f.Text(),
				"%s (%s) has %d %s, more than max length facet (%d) for %s",
				label(t), v.Text(), n, unit, limit, t)
		}
	}
	return true
}

// facetLimit reads a nonNegativeInteger facet value.
func facetLimit(v Value) int {
	d, ok := v.(*Decimal)
	if !ok {
		return 0
	}
	n, err := d.LongValue()
	if err != nil {
		return int(^uint(0) >> 1)
	}
	return int(n)
}

func runeLength(s string) int { return utf8.RuneCountInString(s) }
