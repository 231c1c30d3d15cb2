package xsdvalue

import (
	"encoding/xml"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jacoelho/xsdvalue/duration"
	xsderrors "github.com/jacoelho/xsdvalue/errors"
)

// Union holds a value of a union type. The value lives in a holder of the
// first member type, in declaration order, that accepts it; the union only
// remembers that member holder and the accepted text.
type Union struct {
	holder
	member Value
	text   string
}

func (u *Union) parse(lexical string, ns NamespaceResolver) *xsderrors.Validation {
	for _, mt := range u.typ.members {
		m := New(mt)
		if err := m.SetTextNS(lexical, ns); err != nil {
			continue
		}
		if !u.inEnumeration(m) {
			continue
		}
		u.member = m
		u.text = lexical
		u.isNil = false
		return nil
	}
	return u.exhausted(lexical)
}

func (u *Union) inEnumeration(m Value) bool {
	if len(u.typ.enumeration) == 0 {
		return true
	}
	for _, e := range u.typ.enumeration {
		if Equal(m, e) {
			return true
		}
	}
	return false
}

func (u *Union) exhausted(actual string) *xsderrors.Validation {
	names := make([]string, len(u.typ.members))
	for i, mt := range u.typ.members {
		names[i] = mt.String()
	}
	v := xsderrors.NewValidationf(xsderrors.ErrUnionNoMember, xsderrors.KindUnion,
		"'%s' is not valid for any member of %s (%s)", actual, u.typ, strings.Join(names, ", "))
	v.Actual = actual
	v.Expected = names
	return v
}

// SetText implements Value. Members are tried in declaration order; on
// failure the holder keeps its previous value.
func (u *Union) SetText(s string) error { return setText(u, s, nil) }

// SetTextNS implements Value.
func (u *Union) SetTextNS(s string, ns NamespaceResolver) error { return setText(u, s, ns) }

// ValidateText implements Value.
func (u *Union) ValidateText(s string, ns NamespaceResolver, sink Sink) {
	validateText(u, s, ns, sink)
}

// SetNil implements Value.
func (u *Union) SetNil() {
	u.isNil = true
	u.member = nil
	u.text = ""
}

// category is the kind of a host value handed to SetValue.
type category uint8

const (
	categoryText category = iota
	categoryBoolean
	categoryNumber
	categoryBinary
	categoryQName
	categoryDuration
	categoryDateTime
	categoryList
	categoryUnknown
)

func classify(v any) category {
	switch v.(type) {
	case string:
		return categoryText
	case bool:
		return categoryBoolean
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64,
		float32, float64, *big.Int, decimal.Decimal:
		return categoryNumber
	case []byte:
		return categoryBinary
	case xml.Name:
		return categoryQName
	case duration.Duration:
		return categoryDuration
	case time.Time:
		return categoryDateTime
	case []any, []string:
		return categoryList
	}
	return categoryUnknown
}

// accepts reports whether members of type t can hold a host value of
// category c.
func accepts(t *Type, c category) bool {
	switch t.family {
	case FamilyUnion:
		for _, mt := range t.members {
			if accepts(mt, c) {
				return true
			}
		}
		return false
	case FamilyBoolean:
		return c == categoryBoolean
	case FamilyDecimal, FamilyFloat, FamilyDouble:
		return c == categoryNumber
	case FamilyHexBinary:
		return c == categoryBinary
	case FamilyQName, FamilyNotation:
		return c == categoryQName
	case FamilyDuration:
		return c == categoryDuration
	}
	return false
}

// SetValue stores a host value in the first member whose family accepts
// the value's category and whose facets the value satisfies. Strings go
// through SetText.
func (u *Union) SetValue(v any) error {
	c := classify(v)
	if c == categoryText {
		return u.SetText(v.(string))
	}
	for _, mt := range u.typ.members {
		if !accepts(mt, c) {
			continue
		}
		m := New(mt)
		if err := m.SetValue(v); err != nil {
			continue
		}
		if !u.inEnumeration(m) {
			continue
		}
		next := *u
		next.member = m
		next.text = m.Text()
		return commitValue(u, &next)
	}
	return u.exhausted(fmt.Sprint(v))
}

// Member returns a copy of the holder of the member type that accepted the
// value, nil when the union is nil.
func (u *Union) Member() Value {
	if u.isNil || u.member == nil {
		return nil
	}
	return cloneValue(u.member)
}

// MemberType returns the member type that accepted the value.
func (u *Union) MemberType() *Type {
	if u.isNil || u.member == nil {
		return nil
	}
	return u.member.Type()
}

// RawText returns the text accepted by the last SetText, or the canonical
// text of the last SetValue.
func (u *Union) RawText() string { return u.text }

// Text implements Value. It is the member's canonical text.
func (u *Union) Text() string {
	if u.isNil || u.member == nil {
		return ""
	}
	return u.member.Text()
}

// Compare implements Value.
func (u *Union) Compare(other Value) (int, bool) { return Compare(u, other) }

// Equal implements Value.
func (u *Union) Equal(other Value) bool { return Equal(u, other) }

// Hash implements Value.
func (u *Union) Hash() uint64 {
	if u.isNil || u.member == nil {
		return 0
	}
	return u.member.Hash()
}

// viaMember applies a typed accessor to the member holder.
func viaMember[H any, T any](u *Union, get func(H) (T, error)) (T, error) {
	var zero T
	if u.isNil || u.member == nil {
		return zero, ErrNil
	}
	m := unwrap(u.member)
	h, ok := m.(H)
	if !ok {
		return zero, fmt.Errorf("%w: member %s holds %s", ErrWrongKind, m.Type(), m.Type().Family())
	}
	return get(h)
}

// BoolValue returns the member's boolean.
func (u *Union) BoolValue() (bool, error) {
	return viaMember(u, (*Boolean).BoolValue)
}

// IntValue returns the member's value as int32.
func (u *Union) IntValue() (int32, error) {
	return viaMember(u, (*Decimal).IntValue)
}

// LongValue returns the member's value as int64.
func (u *Union) LongValue() (int64, error) {
	return viaMember(u, (*Decimal).LongValue)
}

// BigIntValue returns the member's value as big.Int.
func (u *Union) BigIntValue() (*big.Int, error) {
	return viaMember(u, (*Decimal).BigIntValue)
}

// DecimalValue returns the member's value as decimal.Decimal.
func (u *Union) DecimalValue() (decimal.Decimal, error) {
	return viaMember(u, (*Decimal).DecimalValue)
}

// FloatValue returns the member's value as float32.
func (u *Union) FloatValue() (float32, error) {
	return viaMember(u, (*Float).FloatValue)
}

// DoubleValue returns the member's value as float64.
func (u *Union) DoubleValue() (float64, error) {
	return viaMember(u, (*Float).DoubleValue)
}

// BytesValue returns the member's bytes.
func (u *Union) BytesValue() ([]byte, error) {
	return viaMember(u, (*HexBinary).BytesValue)
}

// QNameValue returns the member's QName.
func (u *Union) QNameValue() (xml.Name, error) {
	return viaMember(u, (*QName).QNameValue)
}

// DurationValue returns the member's duration.
func (u *Union) DurationValue() (duration.Duration, error) {
	return viaMember(u, (*Duration).DurationValue)
}

// StringValue returns the canonical text of the member value, whatever its
// family.
func (u *Union) StringValue() (string, error) {
	if u.isNil || u.member == nil {
		return "", ErrNil
	}
	return u.member.Text(), nil
}

// EnumValue returns the member's enumeration symbol.
func (u *Union) EnumValue() (Symbol, error) {
	return viaMember(u, (*Enum).EnumValue)
}
