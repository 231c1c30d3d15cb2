package num

import (
	"errors"
	"math"
	"strconv"
)

// special holds the non-numeric float lexicals. "+INF" is not one of them.
var special = map[string]float64{
	"INF":  math.Inf(1),
	"-INF": math.Inf(-1),
	"NaN":  math.NaN(),
}

// ParseFloat parses a float or double lexical value, rounding to the
// precision of bits (32 or 64). Magnitudes beyond the range of the
// precision become infinities rather than errors.
func ParseFloat(b []byte, bits int) (float64, *ParseError) {
	if len(b) == 0 {
		return 0, &ParseError{Kind: ParseEmpty}
	}
	if f, ok := special[string(b)]; ok {
		return f, nil
	}
	if kind := scanFloat(b); kind != ParseInvalid {
		return 0, &ParseError{Kind: kind}
	}
	f, err := strconv.ParseFloat(string(b), bits)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, &ParseError{Kind: ParseBadChar}
	}
	return f, nil
}

// scanFloat checks the mantissa/exponent grammar, returning ParseInvalid
// when b is well formed and the failure kind otherwise.
func scanFloat(b []byte) ParseErrKind {
	i := skipSign(b, 0)
	mantissa, i := countDigits(b, i)
	if i < len(b) && b[i] == '.' {
		var frac int
		frac, i = countDigits(b, i+1)
		mantissa += frac
	}
	if mantissa == 0 {
		return ParseNoDigits
	}
	if i < len(b) && (b[i] == 'e' || b[i] == 'E') {
		var exp int
		exp, i = countDigits(b, skipSign(b, i+1))
		if exp == 0 {
			return ParseNoDigits
		}
	}
	if i != len(b) {
		return ParseBadChar
	}
	return ParseInvalid
}

func skipSign(b []byte, i int) int {
	if i < len(b) && (b[i] == '+' || b[i] == '-') {
		return i + 1
	}
	return i
}

func countDigits(b []byte, i int) (int, int) {
	start := i
	for i < len(b) && isDigit(b[i]) {
		i++
	}
	return i - start, i
}

// CompareTotal orders two floating values by a strict total order.
// Identical bit patterns compare equal, so NaN equals NaN; otherwise the
// numeric order applies and ties (signed zeros, NaN payloads) fall back to
// the signed bit pattern, placing -0 before +0 and NaN after +Inf.
func CompareTotal(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	ab := int64(math.Float64bits(a))
	bb := int64(math.Float64bits(b))
	switch {
	case ab == bb:
		return 0
	case ab < bb:
		return -1
	default:
		return 1
	}
}
