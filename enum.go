package xsdvalue

import (
	"fmt"

	"github.com/cespare/xxhash/v2"

	xsderrors "github.com/jacoelho/xsdvalue/errors"
)

// Enum holds values of a string type restricted by enumeration. Every
// value maps to a Symbol of the type; text outside the symbol table is
// rejected even when facet validation is off.
type Enum struct {
	holder
	s   string
	sym int
}

func (e *Enum) parse(lexical string, _ NamespaceResolver) *xsderrors.Validation {
	e.s = lexical
	e.sym = e.typ.symbolIndex[lexical]
	e.isNil = false
	return nil
}

func (e *Enum) finish() *xsderrors.Validation {
	if e.sym != 0 {
		return nil
	}
	v := xsderrors.NewValidationf(xsderrors.ErrFacetEnumeration, xsderrors.KindFacet,
		"String (%s) is not a valid enumeration value for %s", e.s, e.typ)
	v.Actual = e.s
	return v
}

// SetText implements Value.
func (e *Enum) SetText(s string) error { return setText(e, s, nil) }

// SetTextNS implements Value.
func (e *Enum) SetTextNS(s string, ns NamespaceResolver) error { return setText(e, s, ns) }

// ValidateText implements Value.
func (e *Enum) ValidateText(s string, ns NamespaceResolver, sink Sink) {
	validateText(e, s, ns, sink)
}

// SetNil implements Value.
func (e *Enum) SetNil() {
	e.isNil = true
	e.s = ""
	e.sym = 0
}

// SetSymbol stores the symbol with the given Int.
func (e *Enum) SetSymbol(i int) error {
	if i < 1 || i > len(e.typ.symbols) {
		return fmt.Errorf("%w: symbol %d not in %s", ErrRange, i, e.typ)
	}
	next := *e
	next.s = e.typ.symbols[i-1].Name
	next.sym = i
	return commitValue(e, &next)
}

// SetValue accepts a token string or a symbol Int.
func (e *Enum) SetValue(v any) error {
	switch x := v.(type) {
	case string:
		return e.SetText(x)
	case int:
		return e.SetSymbol(x)
	case Symbol:
		return e.SetSymbol(x.Int)
	}
	return wrongKind(e.typ, v)
}

// EnumValue returns the current symbol.
func (e *Enum) EnumValue() (Symbol, error) {
	if e.isNil {
		return Symbol{}, ErrNil
	}
	return e.typ.symbols[e.sym-1], nil
}

// StringValue returns the token.
func (e *Enum) StringValue() (string, error) {
	if e.isNil {
		return "", ErrNil
	}
	return e.s, nil
}

// Text implements Value.
func (e *Enum) Text() string { return e.s }

// Compare implements Value.
func (e *Enum) Compare(other Value) (int, bool) { return Compare(e, other) }

// Equal implements Value.
func (e *Enum) Equal(other Value) bool { return Equal(e, other) }

// Hash implements Value.
func (e *Enum) Hash() uint64 {
	if e.isNil {
		return 0
	}
	return xxhash.Sum64String(e.s)
}

func (e *Enum) length() int { return runeLength(e.s) }
