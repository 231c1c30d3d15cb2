package xsdvalue

import (
	"encoding/binary"
	"math"
	"math/big"

	"github.com/cespare/xxhash/v2"
	"github.com/shopspring/decimal"

	xsderrors "github.com/jacoelho/xsdvalue/errors"
	"github.com/jacoelho/xsdvalue/internal/num"
	"github.com/jacoelho/xsdvalue/internal/value"
)

// Float holds xs:float and xs:double values. Float values are rounded to
// single precision on every set. Values are ordered by num.CompareTotal,
// so NaN equals NaN and -0 sorts before +0.
type Float struct {
	holder
	v float64
}

func (f *Float) bits() int {
	if f.typ.family == FamilyFloat {
		return 32
	}
	return 64
}

func (f *Float) assign(v float64) {
	switch {
	case math.IsNaN(v):
		v = math.NaN()
	case f.bits() == 32:
		v = float64(float32(v))
	}
	f.v = v
	f.isNil = false
}

func (f *Float) parse(lexical string, _ NamespaceResolver) *xsderrors.Validation {
	v, perr := num.ParseFloat([]byte(lexical), f.bits())
	if perr != nil {
		return lexicalError(f.typ, lexical, perr)
	}
	f.assign(v)
	return nil
}

// SetText implements Value.
func (f *Float) SetText(s string) error { return setText(f, s, nil) }

// SetTextNS implements Value.
func (f *Float) SetTextNS(s string, ns NamespaceResolver) error { return setText(f, s, ns) }

// ValidateText implements Value.
func (f *Float) ValidateText(s string, ns NamespaceResolver, sink Sink) {
	validateText(f, s, ns, sink)
}

// SetNil implements Value.
func (f *Float) SetNil() {
	f.isNil = true
	f.v = 0
}

// SetFloat64 stores v, rounding to single precision for xs:float.
func (f *Float) SetFloat64(v float64) error {
	next := *f
	next.assign(v)
	return commitValue(f, &next)
}

// SetFloat32 stores v.
func (f *Float) SetFloat32(v float32) error { return f.SetFloat64(float64(v)) }

// SetValue accepts Go floats and integers, *big.Int, decimal.Decimal and
// numeric strings. Integers and decimals are rounded to the nearest
// representable value.
func (f *Float) SetValue(v any) error {
	switch x := v.(type) {
	case float32:
		return f.SetFloat32(x)
	case float64:
		return f.SetFloat64(x)
	case int:
		return f.SetFloat64(float64(x))
	case int8:
		return f.SetFloat64(float64(x))
	case int16:
		return f.SetFloat64(float64(x))
	case int32:
		return f.SetFloat64(float64(x))
	case int64:
		return f.SetFloat64(float64(x))
	case uint:
		return f.SetFloat64(float64(x))
	case uint8:
		return f.SetFloat64(float64(x))
	case uint16:
		return f.SetFloat64(float64(x))
	case uint32:
		return f.SetFloat64(float64(x))
	case uint64:
		return f.SetFloat64(float64(x))
	case *big.Int:
		if x == nil {
			return wrongKind(f.typ, v)
		}
		n, _ := new(big.Float).SetInt(x).Float64()
		return f.SetFloat64(n)
	case decimal.Decimal:
		n, _ := x.Float64()
		return f.SetFloat64(n)
	case string:
		return f.SetText(x)
	}
	return wrongKind(f.typ, v)
}

// FloatValue returns the value as float32.
func (f *Float) FloatValue() (float32, error) {
	if f.isNil {
		return 0, ErrNil
	}
	return float32(f.v), nil
}

// DoubleValue returns the value as float64.
func (f *Float) DoubleValue() (float64, error) {
	if f.isNil {
		return 0, ErrNil
	}
	return f.v, nil
}

// Text implements Value.
func (f *Float) Text() string {
	if f.isNil {
		return ""
	}
	return value.CanonicalFloat(f.v, f.bits())
}

// Compare implements Value.
func (f *Float) Compare(other Value) (int, bool) { return Compare(f, other) }

// Equal implements Value.
func (f *Float) Equal(other Value) bool { return Equal(f, other) }

// Hash implements Value.
func (f *Float) Hash() uint64 {
	if f.isNil {
		return 0
	}
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f.v))
	return xxhash.Sum64(buf[:])
}

func (f *Float) compare(o *Float) int { return num.CompareTotal(f.v, o.v) }
