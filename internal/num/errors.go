package num

import "bytes"

// ParseErrKind identifies why a numeric lexical failed to parse.
type ParseErrKind uint8

const (
	ParseInvalid ParseErrKind = iota
	ParseEmpty
	ParseBadChar
	ParseMultipleSigns
	ParseMultipleDots
	ParseNoDigits
	ParseOutOfRange
)

var parseErrText = [...]string{
	ParseInvalid:       "invalid",
	ParseEmpty:         "empty",
	ParseBadChar:       "bad character",
	ParseMultipleSigns: "multiple signs",
	ParseMultipleDots:  "multiple dots",
	ParseNoDigits:      "no digits",
	ParseOutOfRange:    "out of range",
}

func (k ParseErrKind) String() string {
	if int(k) < len(parseErrText) {
		return parseErrText[k]
	}
	return parseErrText[ParseInvalid]
}

// ParseError is returned by the parsers of this package.
type ParseError struct {
	Kind ParseErrKind
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	return e.Kind.String()
}

func isDigit(b byte) bool { return '0' <= b && b <= '9' }

func trimLeadingZeros(b []byte) []byte { return bytes.TrimLeft(b, "0") }

func trimTrailingZeros(b []byte) []byte { return bytes.TrimRight(b, "0") }
