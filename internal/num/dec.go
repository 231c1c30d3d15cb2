package num

import "math/big"

// Dec represents an arbitrary-precision decimal as Coef * 10^-Scale.
// Coef has no leading zeros and the fraction has no trailing zeros,
// so Scale is the number of significant fraction digits.
type Dec struct {
	Sign  int8
	Coef  []byte
	Scale uint32
}

// ParseDec parses a decimal lexical value: optional sign, digits, optional
// '.' followed by digits, with at least one digit overall.
func ParseDec(b []byte) (Dec, *ParseError) {
	if len(b) == 0 {
		return Dec{}, &ParseError{Kind: ParseEmpty}
	}
	sign := int8(1)
	i := 0
	switch b[0] {
	case '+':
		i++
	case '-':
		sign = -1
		i++
	}
	dot := -1
	digits := 0
	for j := i; j < len(b); j++ {
		c := b[j]
		switch {
		case isDigit(c):
			digits++
		case c == '.':
			if dot >= 0 {
				return Dec{}, &ParseError{Kind: ParseMultipleDots}
			}
			dot = j
		case c == '+' || c == '-':
			return Dec{}, &ParseError{Kind: ParseMultipleSigns}
		default:
			return Dec{}, &ParseError{Kind: ParseBadChar}
		}
	}
	if digits == 0 {
		return Dec{}, &ParseError{Kind: ParseNoDigits}
	}

	intPart := b[i:]
	var fracPart []byte
	if dot >= 0 {
		intPart = b[i:dot]
		fracPart = b[dot+1:]
	}
	fracPart = trimTrailingZeros(fracPart)
	coef := make([]byte, 0, len(intPart)+len(fracPart))
	coef = append(coef, intPart...)
	coef = append(coef, fracPart...)
	coef = trimLeadingZeros(coef)
	if len(coef) == 0 {
		return Dec{Sign: 0, Coef: zeroDigits}, nil
	}
	return Dec{Sign: sign, Coef: coef, Scale: uint32(len(fracPart))}, nil
}

// TotalDigits returns the number of significant digits of the value.
func (d Dec) TotalDigits() int {
	if d.Sign == 0 {
		return 1
	}
	return len(d.Coef)
}

// Unscaled returns the signed coefficient as a big.Int.
func (d Dec) Unscaled() *big.Int {
	out := new(big.Int)
	out.SetString(string(d.Coef), 10)
	if d.Sign < 0 {
		out.Neg(out)
	}
	return out
}
