// Package pattern translates XSD 1.0 regular expressions to RE2 syntax and
// keeps a shared cache of compiled pattern facets.
package pattern

import (
	"fmt"
	"regexp"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	// DefaultCacheSize bounds the number of compiled patterns kept in memory.
	DefaultCacheSize = 512

	// Use Unicode decimal digits (Nd) for XSD \d semantics.
	xsdDigitClassContent = `\p{Nd}`
	xsdDigitClass        = "[" + xsdDigitClassContent + "]"
	xsdNotDigitClass     = "[^" + xsdDigitClassContent + "]"
	xsdSpaceClassContent = `\x20\t\n\r`
	xsdWordClass         = `[^\p{P}\p{Z}\p{C}]`
	xsdNotWordClass      = `[\p{P}\p{Z}\p{C}]`
	// XML 1.0 NameStartChar and NameChar ranges (XSD \i and \c).
	nameStartCharClassContent = `:A-Z_a-z` +
		`\x{C0}-\x{D6}\x{D8}-\x{F6}\x{F8}-\x{2FF}\x{370}-\x{37D}\x{37F}-\x{1FFF}` +
		`\x{200C}-\x{200D}\x{2070}-\x{218F}\x{2C00}-\x{2FEF}\x{3001}-\x{D7FF}` +
		`\x{F900}-\x{FDCF}\x{FDF0}-\x{FFFD}\x{10000}-\x{EFFFF}`
	nameCharClassContent = nameStartCharClassContent +
		`\-.\x30-\x39\x{B7}\x{0300}-\x{036F}\x{203F}-\x{2040}`
)

var cache = mustCache(DefaultCacheSize)

func mustCache(size int) *lru.Cache[string, *regexp.Regexp] {
	c, err := lru.New[string, *regexp.Regexp](size)
	if err != nil {
		panic("pattern: failed to create LRU cache: " + err.Error())
	}
	return c
}

// Compile translates one derivation step's patterns and compiles them into a
// single anchored regular expression. Patterns of the same step are
// alternatives, so the result matches when any of them does.
// Compiled expressions are shared through an LRU cache and are safe for
// concurrent use.
func Compile(sources ...string) (*regexp.Regexp, error) {
	key := strings.Join(sources, "\x00")
	if re, ok := cache.Get(key); ok {
		return re, nil
	}
	parts := make([]string, 0, len(sources))
	for _, src := range sources {
		translated, err := Translate(src)
		if err != nil {
			return nil, err
		}
		parts = append(parts, "(?:"+translated+")")
	}
	expr := "^(?:" + strings.Join(parts, "|") + ")$"
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("pattern %q: %w", strings.Join(sources, "|"), err)
	}
	cache.Add(key, re)
	return re, nil
}

// Translate converts an XSD 1.0 pattern body to an unanchored RE2 body.
// It fails closed on constructs RE2 cannot express.
func Translate(xsd string) (string, error) {
	var out strings.Builder
	out.Grow(len(xsd) * 2)

	inClass := false
	for i := 0; i < len(xsd); i++ {
		c := xsd[i]
		switch {
		case c == '\\':
			if i+1 >= len(xsd) {
				return "", fmt.Errorf("pattern-syntax-error: escape sequence at end of pattern")
			}
			i++
			esc, err := translateEscape(xsd[i], inClass)
			if err != nil {
				return "", err
			}
			if esc == "" {
				// pass through \p{..}, \P{..} and single-character escapes
				out.WriteByte('\\')
				out.WriteByte(xsd[i])
				continue
			}
			out.WriteString(esc)
		case inClass:
			if c == '-' && i+1 < len(xsd) && xsd[i+1] == '[' {
				return "", fmt.Errorf("pattern-unsupported: character class subtraction")
			}
			if c == ']' {
				inClass = false
			}
			out.WriteByte(c)
		case c == '[':
			inClass = true
			out.WriteByte(c)
			if i+1 < len(xsd) && xsd[i+1] == '^' {
				out.WriteByte('^')
				i++
			}
		case c == '^' || c == '$':
			// anchors do not exist in XSD patterns
			out.WriteByte('\\')
			out.WriteByte(c)
		case c == '.':
			out.WriteString(`[^\n\r]`)
		default:
			out.WriteByte(c)
		}
	}
	if inClass {
		return "", fmt.Errorf("pattern-syntax-error: unterminated character class")
	}
	return out.String(), nil
}

func translateEscape(c byte, inClass bool) (string, error) {
	switch c {
	case 'd':
		if inClass {
			return xsdDigitClassContent, nil
		}
		return xsdDigitClass, nil
	case 's':
		if inClass {
			return xsdSpaceClassContent, nil
		}
		return "[" + xsdSpaceClassContent + "]", nil
	case 'i':
		if inClass {
			return nameStartCharClassContent, nil
		}
		return "[" + nameStartCharClassContent + "]", nil
	case 'c':
		if inClass {
			return nameCharClassContent, nil
		}
		return "[" + nameCharClassContent + "]", nil
	case 'D', 'S', 'I', 'C', 'W', 'w':
		if inClass {
			return "", fmt.Errorf("pattern-unsupported: \\%c inside character class", c)
		}
		switch c {
		case 'D':
			return xsdNotDigitClass, nil
		case 'S':
			return "[^" + xsdSpaceClassContent + "]", nil
		case 'I':
			return "[^" + nameStartCharClassContent + "]", nil
		case 'C':
			return "[^" + nameCharClassContent + "]", nil
		case 'w':
			return xsdWordClass, nil
		default:
			return xsdNotWordClass, nil
		}
	case 'u':
		return "", fmt.Errorf("pattern-syntax-error: \\u escape is not valid XSD 1.0 syntax")
	}
	return "", nil
}
