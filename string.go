package xsdvalue

import (
	"github.com/cespare/xxhash/v2"

	xsderrors "github.com/jacoelho/xsdvalue/errors"
)

// String holds xs:anySimpleType, xs:string and the string-derived builtins
// that carry no enumeration.
type String struct {
	holder
	s string
}

func (s *String) parse(lexical string, _ NamespaceResolver) *xsderrors.Validation {
	s.s = lexical
	s.isNil = false
	return nil
}

// SetText implements Value.
func (s *String) SetText(v string) error { return setText(s, v, nil) }

// SetTextNS implements Value.
func (s *String) SetTextNS(v string, ns NamespaceResolver) error { return setText(s, v, ns) }

// ValidateText implements Value.
func (s *String) ValidateText(v string, ns NamespaceResolver, sink Sink) {
	validateText(s, v, ns, sink)
}

// SetNil implements Value.
func (s *String) SetNil() {
	s.isNil = true
	s.s = ""
}

// SetString stores v after whiteSpace normalization.
func (s *String) SetString(v string) error { return s.SetText(v) }

// SetValue accepts strings and byte slices holding text.
func (s *String) SetValue(v any) error {
	switch x := v.(type) {
	case string:
		return s.SetText(x)
	case []byte:
		return s.SetText(string(x))
	}
	return wrongKind(s.typ, v)
}

// StringValue returns the value.
func (s *String) StringValue() (string, error) {
	if s.isNil {
		return "", ErrNil
	}
	return s.s, nil
}

// Text implements Value.
func (s *String) Text() string { return s.s }

// Compare implements Value.
func (s *String) Compare(other Value) (int, bool) { return Compare(s, other) }

// Equal implements Value.
func (s *String) Equal(other Value) bool { return Equal(s, other) }

// Hash implements Value.
func (s *String) Hash() uint64 {
	if s.isNil {
		return 0
	}
	return xxhash.Sum64String(s.s)
}

func (s *String) length() int { return runeLength(s.s) }
