package value

import "strings"

// WhitespaceMode is the whiteSpace facet rule applied before parsing.
type WhitespaceMode uint8

const (
	WhitespacePreserve WhitespaceMode = iota
	WhitespaceReplace
	WhitespaceCollapse
)

// String returns the facet keyword for the mode.
func (m WhitespaceMode) String() string {
	switch m {
	case WhitespaceReplace:
		return "replace"
	case WhitespaceCollapse:
		return "collapse"
	default:
		return "preserve"
	}
}

// NormalizeWhitespace applies the whitespace mode.
// It returns the input unchanged when no rewriting is needed.
func NormalizeWhitespace(mode WhitespaceMode, in string) string {
	switch mode {
	case WhitespaceReplace:
		return replaceWhitespace(in)
	case WhitespaceCollapse:
		return collapseWhitespace(in)
	default:
		return in
	}
}

// TrimXMLWhitespace removes leading and trailing XML whitespace.
// It returns the original string when no trimming is needed.
func TrimXMLWhitespace(in string) string {
	start := 0
	end := len(in)
	for start < end && IsXMLWhitespaceByte(in[start]) {
		start++
	}
	for end > start && IsXMLWhitespaceByte(in[end-1]) {
		end--
	}
	if start == 0 && end == len(in) {
		return in
	}
	return in[start:end]
}

// ContainsXMLWhitespace reports whether s has any XML whitespace byte.
func ContainsXMLWhitespace(s string) bool {
	return strings.ContainsAny(s, " \t\n\r")
}

// IsXMLWhitespaceByte reports whether the byte is XML whitespace.
func IsXMLWhitespaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func replaceWhitespace(in string) string {
	if !strings.ContainsAny(in, "\t\n\r") {
		return in
	}
	out := []byte(in)
	for i, b := range out {
		if IsXMLWhitespaceByte(b) {
			out[i] = ' '
		}
	}
	return string(out)
}

func collapseWhitespace(in string) string {
	if !needsCollapse(in) {
		return in
	}
	var b strings.Builder
	b.Grow(len(in))
	i := 0
	for i < len(in) && IsXMLWhitespaceByte(in[i]) {
		i++
	}
	pendingSpace := false
	for ; i < len(in); i++ {
		c := in[i]
		if IsXMLWhitespaceByte(c) {
			pendingSpace = true
			continue
		}
		if pendingSpace && b.Len() > 0 {
			b.WriteByte(' ')
		}
		pendingSpace = false
		b.WriteByte(c)
	}
	return b.String()
}

func needsCollapse(in string) bool {
	if in == "" {
		return false
	}
	if IsXMLWhitespaceByte(in[0]) || IsXMLWhitespaceByte(in[len(in)-1]) {
		return true
	}
	return strings.ContainsAny(in, "\t\n\r") || strings.Contains(in, "  ")
}
