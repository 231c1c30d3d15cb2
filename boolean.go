package xsdvalue

import (
	"github.com/cespare/xxhash/v2"

	xsderrors "github.com/jacoelho/xsdvalue/errors"
	"github.com/jacoelho/xsdvalue/internal/value"
)

// Boolean holds xs:boolean values.
type Boolean struct {
	holder
	v bool
}

func (b *Boolean) parse(lexical string, _ NamespaceResolver) *xsderrors.Validation {
	v, err := value.ParseBoolean(lexical)
	if err != nil {
		return lexicalError(b.typ, lexical, nil)
	}
	b.v = v
	b.isNil = false
	return nil
}

// SetText implements Value.
func (b *Boolean) SetText(s string) error { return setText(b, s, nil) }

// SetTextNS implements Value.
func (b *Boolean) SetTextNS(s string, ns NamespaceResolver) error { return setText(b, s, ns) }

// ValidateText implements Value.
func (b *Boolean) ValidateText(s string, ns NamespaceResolver, sink Sink) {
	validateText(b, s, ns, sink)
}

// SetNil implements Value.
func (b *Boolean) SetNil() {
	b.isNil = true
	b.v = false
}

// SetBool stores v.
func (b *Boolean) SetBool(v bool) error {
	next := *b
	next.v = v
	return commitValue(b, &next)
}

// SetValue accepts bool and boolean lexical strings.
func (b *Boolean) SetValue(v any) error {
	switch x := v.(type) {
	case bool:
		return b.SetBool(x)
	case string:
		return b.SetText(x)
	}
	return wrongKind(b.typ, v)
}

// BoolValue returns the value.
func (b *Boolean) BoolValue() (bool, error) {
	if b.isNil {
		return false, ErrNil
	}
	return b.v, nil
}

// Text implements Value.
func (b *Boolean) Text() string {
	if b.isNil {
		return ""
	}
	return value.CanonicalBoolean(b.v)
}

// Compare implements Value.
func (b *Boolean) Compare(other Value) (int, bool) { return Compare(b, other) }

// Equal implements Value.
func (b *Boolean) Equal(other Value) bool { return Equal(b, other) }

// Hash implements Value.
func (b *Boolean) Hash() uint64 {
	if b.isNil {
		return 0
	}
	return xxhash.Sum64String(b.Text())
}
