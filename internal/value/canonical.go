package value

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseBoolean parses a collapsed boolean lexical value.
func ParseBoolean(lexical string) (bool, error) {
	switch lexical {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean: %s", lexical)
	}
}

// CanonicalBoolean returns the canonical lexical form for a boolean.
func CanonicalBoolean(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

// CanonicalDecimal turns a plain decimal rendering (as produced by
// big-number libraries, without exponent) into the canonical lexical form:
// optional '-', at least one digit on each side of the point, no redundant
// zeros.
func CanonicalDecimal(plain string) string {
	sign := ""
	if strings.HasPrefix(plain, "-") {
		sign = "-"
		plain = plain[1:]
	}
	intPart, fracPart, _ := strings.Cut(plain, ".")
	intPart = strings.TrimLeft(intPart, "0")
	if intPart == "" {
		intPart = "0"
	}
	fracPart = strings.TrimRight(fracPart, "0")
	if fracPart == "" {
		fracPart = "0"
	}
	if intPart == "0" && fracPart == "0" {
		sign = ""
	}
	return sign + intPart + "." + fracPart
}

// CanonicalFloat returns the canonical lexical form for float/double values.
func CanonicalFloat(value float64, bits int) string {
	if math.IsNaN(value) {
		return "NaN"
	}
	if math.IsInf(value, 1) {
		return "INF"
	}
	if math.IsInf(value, -1) {
		return "-INF"
	}
	if value == 0 {
		if math.Signbit(value) {
			return "-0.0E0"
		}
		return "0.0E0"
	}
	raw := strconv.FormatFloat(value, 'E', -1, bits)
	exponent := "0"
	mantissa := raw
	if e := strings.IndexByte(raw, 'E'); e >= 0 {
		mantissa = raw[:e]
		exponent = raw[e+1:]
	}
	if dot := strings.IndexByte(mantissa, '.'); dot == -1 {
		mantissa += ".0"
	} else {
		i := len(mantissa) - 1
		for i > dot+1 && mantissa[i] == '0' {
			i--
		}
		mantissa = mantissa[:i+1]
	}
	expVal, err := strconv.Atoi(exponent)
	if err != nil {
		return mantissa + "E" + exponent
	}
	return mantissa + "E" + strconv.Itoa(expVal)
}
