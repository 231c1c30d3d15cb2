package num

import "golang.org/x/exp/constraints"

var (
	// IntZero is the canonical zero.
	IntZero = Int{Sign: 0, Digits: zeroDigits}

	// MinInt32 and MaxInt32 bound xs:int.
	MinInt32 = Int{Sign: -1, Digits: []byte("2147483648")}
	MaxInt32 = Int{Sign: 1, Digits: []byte("2147483647")}
	// MinInt64 and MaxInt64 bound xs:long.
	MinInt64 = Int{Sign: -1, Digits: []byte("9223372036854775808")}
	MaxInt64 = Int{Sign: 1, Digits: []byte("9223372036854775807")}
	// MaxUint64 is the largest xs:unsignedLong.
	MaxUint64 = Int{Sign: 1, Digits: []byte("18446744073709551615")}
)

// Narrow converts v to a smaller signed integer type, reporting whether the
// value fits.
func Narrow[T constraints.Signed](v int64) (T, bool) {
	out := T(v)
	if int64(out) != v {
		return 0, false
	}
	return out, true
}
