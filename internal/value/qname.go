package value

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	errEmptyName   = errors.New("name is empty")
	errColonInName = errors.New("name contains a colon")
)

// SplitQName checks a lexical QName and returns its prefix and local part.
// Unprefixed names have an empty prefix.
func SplitQName(s string) (prefix, local string, err error) {
	if ContainsXMLWhitespace(s) {
		return "", "", fmt.Errorf("QName %q contains whitespace", s)
	}
	prefix, local, found := strings.Cut(s, ":")
	if !found {
		local, prefix = prefix, ""
	} else if prefix == "xmlns" {
		return "", "", fmt.Errorf("prefix xmlns is reserved")
	}
	if found {
		if err := ValidateNCName(prefix); err != nil {
			return "", "", fmt.Errorf("prefix: %w", err)
		}
	}
	if err := ValidateNCName(local); err != nil {
		return "", "", fmt.Errorf("local name: %w", err)
	}
	return prefix, local, nil
}

// ValidateNCName checks s against the NCName production of Namespaces in
// XML: a Name without colons.
func ValidateNCName(s string) error {
	if s == "" {
		return errEmptyName
	}
	first := true
	for _, r := range s {
		switch {
		case r == ':':
			return errColonInName
		case r == utf8.RuneError:
			return fmt.Errorf("name %q is not valid UTF-8", s)
		case first && !nameStart(r), !first && !nameStart(r) && !inRanges(r, nameRest):
			return fmt.Errorf("character %q is not allowed in name %q", r, s)
		}
		first = false
	}
	return nil
}

type runeRange struct{ lo, hi rune }

var nameStartRanges = []runeRange{
	{'A', 'Z'}, {'_', '_'}, {'a', 'z'},
	{0xC0, 0xD6}, {0xD8, 0xF6}, {0xF8, 0x2FF}, {0x370, 0x37D},
	{0x37F, 0x1FFF}, {0x200C, 0x200D}, {0x2070, 0x218F}, {0x2C00, 0x2FEF},
	{0x3001, 0xD7FF}, {0xF900, 0xFDCF}, {0xFDF0, 0xFFFD}, {0x10000, 0xEFFFF},
}

var nameRest = []runeRange{
	{'-', '.'}, {'0', '9'}, {0xB7, 0xB7}, {0x300, 0x36F}, {0x203F, 0x2040},
}

func nameStart(r rune) bool { return inRanges(r, nameStartRanges) }

func inRanges(r rune, ranges []runeRange) bool {
	for _, rr := range ranges {
		if r < rr.lo {
			return false
		}
		if r <= rr.hi {
			return true
		}
	}
	return false
}
