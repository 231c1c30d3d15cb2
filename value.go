package xsdvalue

import (
	"errors"
	"fmt"

	xsderrors "github.com/jacoelho/xsdvalue/errors"
)

var (
	// ErrNil is returned by typed accessors of a nil holder.
	ErrNil = errors.New("value is nil")
	// ErrWrongKind is returned when a host value or accessor does not match
	// the holder's family.
	ErrWrongKind = errors.New("value kind mismatch")
	// ErrRange is returned when a value does not fit the requested host type.
	ErrRange = errors.New("value out of range")
)

// Value is a typed holder for one simple-type value. Every holder carries
// its Type, a nil flag and the parsed value in the representation its
// family and width call for.
//
// Holders are not safe for concurrent mutation.
type Value interface {
	// Type returns the declared type of the holder.
	Type() *Type
	// IsNil reports whether the holder is nil.
	IsNil() bool
	// SetNil marks the holder nil and drops its value.
	SetNil()
	// SetText parses s with no namespace context.
	SetText(s string) error
	// SetTextNS parses s, resolving QName prefixes through ns.
	SetTextNS(s string, ns NamespaceResolver) error
	// SetValue stores a host value; the accepted host types depend on the
	// family.
	SetValue(v any) error
	// Text returns the canonical lexical form, empty when nil.
	Text() string
	// Compare orders the holder against other; ok is false when the two
	// are not comparable.
	Compare(other Value) (c int, ok bool)
	// Equal reports value-space equality.
	Equal(other Value) bool
	// Hash returns a hash consistent with Equal.
	Hash() uint64
	// ValidateText reports whether s is valid for the holder's type to
	// sink without changing the holder.
	ValidateText(s string, ns NamespaceResolver, sink Sink)

	core() *holder
	parse(lexical string, ns NamespaceResolver) *xsderrors.Validation
}

type holder struct {
	typ      *Type
	isNil    bool
	validate bool
}

func (h *holder) Type() *Type   { return h.typ }
func (h *holder) IsNil() bool   { return h.isNil }
func (h *holder) core() *holder { return h }

// Option configures a holder.
type Option func(*holder)

// WithoutValidation skips facet checks on set. Lexical parsing still
// applies.
func WithoutValidation() Option {
	return func(h *holder) { h.validate = false }
}

// New returns a nil holder for t. Holders validate facets on every set
// unless WithoutValidation is given.
func New(t *Type, opts ...Option) Value {
	h := holder{typ: t, isNil: true, validate: true}
	for _, opt := range opts {
		opt(&h)
	}
	switch t.family {
	case FamilyBoolean:
		return &Boolean{holder: h}
	case FamilyDecimal:
		return &Decimal{holder: h}
	case FamilyFloat, FamilyDouble:
		return &Float{holder: h}
	case FamilyDuration:
		return &Duration{holder: h}
	case FamilyHexBinary:
		return &HexBinary{holder: h}
	case FamilyQName, FamilyNotation:
		return &QName{holder: h}
	case FamilyUnion:
		return &Union{holder: h}
	default:
		if t.IsEnumeratedString() {
			return &Enum{holder: h}
		}
		return &String{holder: h}
	}
}

// Parse returns a validating holder of t set from s.
func Parse(t *Type, s string, ns NamespaceResolver) (Value, error) {
	v := New(t)
	if err := v.SetTextNS(s, ns); err != nil {
		return nil, err
	}
	return v, nil
}

type holderPtr[H any] interface {
	*H
	Value
}

// finisher is implemented by holders with a post-parse commit check that
// applies even without validation.
type finisher interface {
	finish() *xsderrors.Validation
}

// setText parses into a copy of dst and commits only on success, so a
// failed set leaves dst untouched.
func setText[H any, P holderPtr[H]](dst P, s string, ns NamespaceResolver) error {
	next := P(new(H))
	*next = *dst
	lexical := dst.Type().normalize(s)
	if err := next.parse(lexical, ns); err != nil {
		return err
	}
	return commit(dst, next, lexical)
}

// commitValue commits a holder whose value was assigned directly; facets
// see the canonical text.
func commitValue[H any, P holderPtr[H]](dst, next P) error {
	next.core().isNil = false
	return commit(dst, next, next.Text())
}

func commit[H any, P holderPtr[H]](dst, next P, lexical string) error {
	next.core().isNil = false
	if dst.core().validate {
		var ff FailFast
		if !checkFacets(next, lexical, &ff) {
			return ff.Err()
		}
	}
	if f, ok := any(next).(finisher); ok {
		if err := f.finish(); err != nil {
			return err
		}
	}
	*dst = *next
	return nil
}

func validateText[H any, P holderPtr[H]](src P, s string, ns NamespaceResolver, sink Sink) {
	next := P(new(H))
	*next = *src
	lexical := src.Type().normalize(s)
	if err := next.parse(lexical, ns); err != nil {
		sink.Invalid(*err)
		return
	}
	next.core().isNil = false
	checkFacets(next, lexical, sink)
}

// cloneValue copies a holder so that setters on the copy leave v alone.
// Setters replace rather than modify big.Int, byte slice and member
// values, so a shallow copy suffices except for union members.
func cloneValue(v Value) Value {
	switch x := v.(type) {
	case *Boolean:
		c := *x
		return &c
	case *Decimal:
		c := *x
		return &c
	case *Float:
		c := *x
		return &c
	case *Duration:
		c := *x
		return &c
	case *HexBinary:
		c := *x
		return &c
	case *QName:
		c := *x
		return &c
	case *String:
		c := *x
		return &c
	case *Enum:
		c := *x
		return &c
	case *Union:
		c := *x
		if c.member != nil {
			c.member = cloneValue(c.member)
		}
		return &c
	}
	return v
}

func lexicalError(t *Type, lexical string, cause error) *xsderrors.Validation {
	var v *xsderrors.Validation
	if cause != nil {
		v = xsderrors.NewValidationf(xsderrors.ErrDatatypeInvalid, xsderrors.KindLexical,
			"'%s' is not a valid value for %s: %v", lexical, t, cause)
	} else {
		v = xsderrors.NewValidationf(xsderrors.ErrDatatypeInvalid, xsderrors.KindLexical,
			"'%s' is not a valid value for %s", lexical, t)
	}
	v.Actual = lexical
	return v
}

func wrongKind(t *Type, v any) error {
	return fmt.Errorf("%w: cannot store %T in %s", ErrWrongKind, v, t)
}

// unwrap follows union holders down to the member holding the value; nil
// when a union is unset.
func unwrap(v Value) Value {
	for {
		u, ok := v.(*Union)
		if !ok {
			return v
		}
		if u.member == nil {
			return nil
		}
		v = u.member
	}
}

func isNilValue(v Value) bool {
	return v == nil || v.IsNil()
}

// Compare orders a against b in their shared value space. ok is false when
// either is nil or the two are not comparable.
func Compare(a, b Value) (int, bool) {
	a, b = unwrap(a), unwrap(b)
	if isNilValue(a) || isNilValue(b) {
		return 0, false
	}
	switch x := a.(type) {
	case *Decimal:
		y, ok := b.(*Decimal)
		if !ok {
			return 0, false
		}
		return x.compare(y), true
	case *Float:
		y, ok := b.(*Float)
		if !ok || x.typ.family != y.typ.family {
			return 0, false
		}
		return x.compare(y), true
	case *Duration:
		y, ok := b.(*Duration)
		if !ok {
			return 0, false
		}
		return x.compare(y)
	case *Boolean:
		y, ok := b.(*Boolean)
		return 0, ok && x.v == y.v
	case *HexBinary:
		y, ok := b.(*HexBinary)
		return 0, ok && x.equal(y)
	case *QName:
		y, ok := b.(*QName)
		return 0, ok && x.typ.family == y.typ.family && x.name == y.name
	case *String, *Enum:
		xs, _ := stringOf(a)
		ys, ok := stringOf(b)
		return 0, ok && xs == ys
	}
	return 0, false
}

// Equal reports value-space equality. Two nil holders are equal.
func Equal(a, b Value) bool {
	a, b = unwrap(a), unwrap(b)
	an, bn := isNilValue(a), isNilValue(b)
	if an || bn {
		return an && bn
	}
	c, ok := Compare(a, b)
	return ok && c == 0
}

func stringOf(v Value) (string, bool) {
	switch x := v.(type) {
	case *String:
		return x.s, true
	case *Enum:
		return x.s, true
	}
	return "", false
}
