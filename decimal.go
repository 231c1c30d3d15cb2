package xsdvalue

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/shopspring/decimal"

	xsderrors "github.com/jacoelho/xsdvalue/errors"
	"github.com/jacoelho/xsdvalue/internal/num"
	"github.com/jacoelho/xsdvalue/internal/value"
)

// Decimal holds xs:decimal and every integer type derived from it. The
// representation follows the type's width: machine integers for WidthInt
// and WidthLong, big.Int for WidthInteger and decimal.Decimal for
// WidthDecimal.
type Decimal struct {
	big *big.Int
	dec decimal.Decimal
	holder
	small int64
}

func (d *Decimal) parse(lexical string, _ NamespaceResolver) *xsderrors.Validation {
	if d.typ.width == WidthDecimal {
		p, perr := num.ParseDec([]byte(lexical))
		if perr != nil {
			return lexicalError(d.typ, lexical, perr)
		}
		d.dec = decimal.NewFromBigInt(p.Unscaled(), -int32(p.Scale))
		d.isNil = false
		return nil
	}
	p, perr := num.ParseInt([]byte(lexical))
	if perr != nil {
		return lexicalError(d.typ, lexical, perr)
	}
	switch d.typ.width {
	case WidthInt:
		if !p.Within(num.MinInt32, num.MaxInt32) {
			return rangeError(d.typ, lexical)
		}
		d.small, _ = p.Int64()
	case WidthLong:
		n, perr := p.Int64()
		if perr != nil {
			return rangeError(d.typ, lexical)
		}
		d.small = n
	default:
		d.big = p.BigInt()
	}
	d.isNil = false
	return nil
}

// rangeError reports an integer that parses but does not fit the machine
// width of its type.
func rangeError(t *Type, lexical string) *xsderrors.Validation {
	v := xsderrors.NewValidationf(xsderrors.ErrValueOutOfRange, xsderrors.KindFacet,
		"%s (%s) is out of range for %s", label(t), lexical, t)
	v.Actual = lexical
	return v
}

func (d *Decimal) assignBigInt(v *big.Int) *xsderrors.Validation {
	switch d.typ.width {
	case WidthDecimal:
		d.dec = decimal.NewFromBigInt(v, 0)
	case WidthInteger:
		d.big = new(big.Int).Set(v)
	default:
		if !v.IsInt64() {
			return rangeError(d.typ, v.String())
		}
		n := v.Int64()
		if d.typ.width == WidthInt {
			if _, ok := num.Narrow[int32](n); !ok {
				return rangeError(d.typ, v.String())
			}
		}
		d.small = n
	}
	d.isNil = false
	return nil
}

// SetText implements Value.
func (d *Decimal) SetText(s string) error { return setText(d, s, nil) }

// SetTextNS implements Value.
func (d *Decimal) SetTextNS(s string, ns NamespaceResolver) error { return setText(d, s, ns) }

// ValidateText implements Value.
func (d *Decimal) ValidateText(s string, ns NamespaceResolver, sink Sink) {
	validateText(d, s, ns, sink)
}

// SetNil implements Value.
func (d *Decimal) SetNil() {
	d.isNil = true
	d.small, d.big, d.dec = 0, nil, decimal.Decimal{}
}

// SetInt64 stores a machine integer.
func (d *Decimal) SetInt64(v int64) error {
	return d.SetBigInt(big.NewInt(v))
}

// SetBigInt stores an arbitrary-precision integer.
func (d *Decimal) SetBigInt(v *big.Int) error {
	if v == nil {
		return fmt.Errorf("%w: nil big.Int", ErrWrongKind)
	}
	next := *d
	if err := next.assignBigInt(v); err != nil {
		return err
	}
	return commitValue(d, &next)
}

// SetDecimal stores an arbitrary-precision decimal. Integer widths accept
// only integral values.
func (d *Decimal) SetDecimal(v decimal.Decimal) error {
	if d.typ.width != WidthDecimal {
		if !v.IsInteger() {
			return lexicalError(d.typ, v.String(), fmt.Errorf("fractional value for an integer type"))
		}
		return d.SetBigInt(v.BigInt())
	}
	next := *d
	next.dec = v
	return commitValue(d, &next)
}

// SetValue accepts Go integers, *big.Int, decimal.Decimal, float64 and
// numeric strings.
func (d *Decimal) SetValue(v any) error {
	switch x := v.(type) {
	case int:
		return d.SetInt64(int64(x))
	case int8:
		return d.SetInt64(int64(x))
	case int16:
		return d.SetInt64(int64(x))
	case int32:
		return d.SetInt64(int64(x))
	case int64:
		return d.SetInt64(x)
	case uint:
		return d.SetBigInt(new(big.Int).SetUint64(uint64(x)))
	case uint8:
		return d.SetInt64(int64(x))
	case uint16:
		return d.SetInt64(int64(x))
	case uint32:
		return d.SetInt64(int64(x))
	case uint64:
		return d.SetBigInt(new(big.Int).SetUint64(x))
	case *big.Int:
		return d.SetBigInt(x)
	case decimal.Decimal:
		return d.SetDecimal(x)
	case float32:
		return d.setFloat(float64(x), func() decimal.Decimal { return decimal.NewFromFloat32(x) })
	case float64:
		return d.setFloat(x, func() decimal.Decimal { return decimal.NewFromFloat(x) })
	case string:
		return d.SetText(x)
	}
	return wrongKind(d.typ, v)
}

// setFloat rejects INF and NaN, which have no decimal value, before
// converting.
func (d *Decimal) setFloat(f float64, conv func() decimal.Decimal) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return lexicalError(d.typ, value.CanonicalFloat(f, 64), errNotFinite)
	}
	return d.SetDecimal(conv())
}

var errNotFinite = errors.New("INF and NaN are not decimal values")

// Text implements Value.
func (d *Decimal) Text() string {
	if d.isNil {
		return ""
	}
	switch d.typ.width {
	case WidthInt, WidthLong:
		return strconv.FormatInt(d.small, 10)
	case WidthInteger:
		return d.big.String()
	default:
		return value.CanonicalDecimal(d.dec.String())
	}
}

// Compare implements Value.
func (d *Decimal) Compare(other Value) (int, bool) { return Compare(d, other) }

// Equal implements Value.
func (d *Decimal) Equal(other Value) bool { return Equal(d, other) }

// Hash implements Value. Integral values hash alike whatever the width, so
// decimal 4.0 and int 4 collide.
func (d *Decimal) Hash() uint64 {
	if d.isNil {
		return 0
	}
	return xxhash.Sum64String(d.hashKey())
}

func (d *Decimal) hashKey() string {
	if d.typ.width != WidthDecimal {
		return d.Text()
	}
	return strings.TrimSuffix(value.CanonicalDecimal(d.dec.String()), ".0")
}

// compare orders two non-nil decimal-family holders, widening to the wider
// of the two representations.
func (d *Decimal) compare(o *Decimal) int {
	if o.typ.width > d.typ.width {
		return -o.compare(d)
	}
	switch d.typ.width {
	case WidthInt, WidthLong:
		return cmp.Compare(d.small, o.small)
	case WidthInteger:
		return d.big.Cmp(o.bigInt())
	default:
		return d.dec.Cmp(o.decimal())
	}
}

func (d *Decimal) bigInt() *big.Int {
	switch d.typ.width {
	case WidthInt, WidthLong:
		return big.NewInt(d.small)
	case WidthInteger:
		return d.big
	default:
		return d.dec.BigInt()
	}
}

func (d *Decimal) decimal() decimal.Decimal {
	switch d.typ.width {
	case WidthInt, WidthLong:
		return decimal.NewFromInt(d.small)
	case WidthInteger:
		return decimal.NewFromBigInt(d.big, 0)
	default:
		return d.dec
	}
}

// LongValue returns the value as int64.
func (d *Decimal) LongValue() (int64, error) {
	if d.isNil {
		return 0, ErrNil
	}
	switch d.typ.width {
	case WidthInt, WidthLong:
		return d.small, nil
	case WidthDecimal:
		if !d.dec.IsInteger() {
			return 0, fmt.Errorf("%w: %s is not integral", ErrRange, d.Text())
		}
	}
	b := d.bigInt()
	if !b.IsInt64() {
		return 0, fmt.Errorf("%w: %s does not fit int64", ErrRange, d.Text())
	}
	return b.Int64(), nil
}

// IntValue returns the value as int32.
func (d *Decimal) IntValue() (int32, error) { return narrow[int32](d) }

// ShortValue returns the value as int16.
func (d *Decimal) ShortValue() (int16, error) { return narrow[int16](d) }

// ByteValue returns the value as int8.
func (d *Decimal) ByteValue() (int8, error) { return narrow[int8](d) }

func narrow[T int8 | int16 | int32](d *Decimal) (T, error) {
	n, err := d.LongValue()
	if err != nil {
		return 0, err
	}
	out, ok := num.Narrow[T](n)
	if !ok {
		return 0, fmt.Errorf("%w: %d does not fit %T", ErrRange, n, out)
	}
	return out, nil
}

// BigIntValue returns the value as a fresh big.Int.
func (d *Decimal) BigIntValue() (*big.Int, error) {
	if d.isNil {
		return nil, ErrNil
	}
	if d.typ.width == WidthDecimal && !d.dec.IsInteger() {
		return nil, fmt.Errorf("%w: %s is not integral", ErrRange, d.Text())
	}
	return new(big.Int).Set(d.bigInt()), nil
}

// DecimalValue returns the value as decimal.Decimal.
func (d *Decimal) DecimalValue() (decimal.Decimal, error) {
	if d.isNil {
		return decimal.Decimal{}, ErrNil
	}
	return d.decimal(), nil
}
