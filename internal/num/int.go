package num

import (
	"bytes"
	"math/big"
	"strconv"
)

var zeroDigits = []byte{'0'}

// Int is an integer lexical value in sign/magnitude form. Digits carry no
// leading zeros; zero has Sign 0 and Digits "0".
type Int struct {
	Sign   int8
	Digits []byte
}

// ParseInt parses the integer grammar: an optional sign followed by at
// least one decimal digit.
func ParseInt(b []byte) (Int, *ParseError) {
	if len(b) == 0 {
		return Int{}, &ParseError{Kind: ParseEmpty}
	}
	sign, body := splitSign(b)
	if len(body) == 0 {
		return Int{}, &ParseError{Kind: ParseNoDigits}
	}
	if i := bytes.IndexFunc(body, func(r rune) bool { return r < '0' || r > '9' }); i >= 0 {
		if body[i] == '+' || body[i] == '-' {
			return Int{}, &ParseError{Kind: ParseMultipleSigns}
		}
		return Int{}, &ParseError{Kind: ParseBadChar}
	}
	digits := trimLeadingZeros(body)
	if len(digits) == 0 {
		return IntZero, nil
	}
	return Int{Sign: sign, Digits: digits}, nil
}

func splitSign(b []byte) (int8, []byte) {
	switch b[0] {
	case '-':
		return -1, b[1:]
	case '+':
		return 1, b[1:]
	}
	return 1, b
}

// FromInt64 converts v to an Int.
func FromInt64(v int64) Int {
	switch {
	case v == 0:
		return IntZero
	case v < 0:
		return Int{Sign: -1, Digits: strconv.AppendInt(nil, v, 10)[1:]}
	default:
		return Int{Sign: 1, Digits: strconv.AppendInt(nil, v, 10)}
	}
}

// Compare orders a against b.
func (a Int) Compare(b Int) int {
	if a.Sign != b.Sign {
		if a.Sign < b.Sign {
			return -1
		}
		return 1
	}
	// longer magnitude is larger; equal lengths compare bytewise
	c := len(a.Digits) - len(b.Digits)
	if c == 0 {
		c = bytes.Compare(a.Digits, b.Digits)
	}
	switch {
	case c == 0:
		return 0
	case (c > 0) == (a.Sign > 0):
		return 1
	default:
		return -1
	}
}

// Within reports whether lo <= a <= hi.
func (a Int) Within(lo, hi Int) bool {
	return a.Compare(lo) >= 0 && a.Compare(hi) <= 0
}

// Int64 returns a as int64, or ParseOutOfRange when it does not fit.
func (a Int) Int64() (int64, *ParseError) {
	v, err := strconv.ParseInt(a.String(), 10, 64)
	if err != nil {
		return 0, &ParseError{Kind: ParseOutOfRange}
	}
	return v, nil
}

// BigInt returns a as a new big.Int.
func (a Int) BigInt() *big.Int {
	out, _ := new(big.Int).SetString(a.String(), 10)
	return out
}

// String returns the canonical lexical form.
func (a Int) String() string {
	if a.Sign < 0 {
		return "-" + string(a.Digits)
	}
	if a.Sign == 0 {
		return "0"
	}
	return string(a.Digits)
}
