package xsdvalue_test

import (
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jacoelho/xsdvalue"
	xsderrors "github.com/jacoelho/xsdvalue/errors"
)

func builtin(t *testing.T, name string) *xsdvalue.Type {
	t.Helper()
	typ := xsdvalue.Builtin(name)
	require.NotNil(t, typ, "builtin %s", name)
	return typ
}

func TestTextRoundTrip(t *testing.T) {
	tests := []struct {
		typ   string
		input string
		want  string
	}{
		{"int", "  42 ", "42"},
		{"int", "+007", "7"},
		{"integer", "-000123456789012345678901234567890", "-123456789012345678901234567890"},
		{"decimal", "4.50", "4.5"},
		{"decimal", "4", "4.0"},
		{"decimal", "-0.0", "0.0"},
		{"decimal", ".5", "0.5"},
		{"boolean", "1", "true"},
		{"boolean", " false ", "false"},
		{"float", "1.5", "1.5E0"},
		{"double", "100", "1.0E2"},
		{"double", "-0", "-0.0E0"},
		{"double", "NaN", "NaN"},
		{"double", "-INF", "-INF"},
		{"hexBinary", "0fa1", "0FA1"},
		{"hexBinary", "", ""},
		{"duration", "P1Y2MT3.50S", "P1Y2MT3.5S"},
		{"duration", "-P0D", "PT0S"},
		{"string", " a  b ", " a  b "},
		{"normalizedString", "a\tb", "a b"},
		{"token", " a  b ", "a b"},
		{"NOTATION", "png", "png"},
	}
	for _, tc := range tests {
		t.Run(tc.typ+"/"+tc.input, func(t *testing.T) {
			v := xsdvalue.New(builtin(t, tc.typ))
			require.True(t, v.IsNil())
			require.NoError(t, v.SetText(tc.input))
			require.False(t, v.IsNil())
			require.Equal(t, tc.want, v.Text())

			again := xsdvalue.New(v.Type())
			require.NoError(t, again.SetText(v.Text()))
			require.Equal(t, v.Text(), again.Text())
			require.True(t, v.Equal(again))
			require.Equal(t, v.Hash(), again.Hash())
		})
	}
}

func TestLexicalErrors(t *testing.T) {
	tests := []struct {
		typ   string
		input string
	}{
		{"int", "abc"},
		{"integer", "1.5"},
		{"decimal", "1e3"},
		{"decimal", ""},
		{"boolean", "yes"},
		{"float", "1.0e"},
		{"hexBinary", "ABC"},
		{"hexBinary", "zz"},
		{"duration", "P"},
		{"duration", "PT"},
		{"QName", "a:b:c"},
		{"QName", "1abc"},
	}
	for _, tc := range tests {
		t.Run(tc.typ+"/"+tc.input, func(t *testing.T) {
			v := xsdvalue.New(builtin(t, tc.typ))
			err := v.SetText(tc.input)
			require.Error(t, err)
			kind, ok := xsderrors.KindOf(err)
			require.True(t, ok)
			require.Equal(t, xsderrors.KindLexical, kind)
			require.True(t, v.IsNil())
		})
	}
}

func TestWidthOverflowIsRangeError(t *testing.T) {
	tests := []struct {
		typ   string
		input string
		want  string
	}{
		{"int", "3000000000", "Int (3000000000) is out of range for xs:int"},
		{"int", "-2147483649", "Int (-2147483649) is out of range for xs:int"},
		{"long", "9223372036854775808", "Long (9223372036854775808) is out of range for xs:long"},
		{"unsignedShort", "99999999999", "Int (99999999999) is out of range for xs:unsignedShort"},
	}
	for _, tc := range tests {
		t.Run(tc.typ+"/"+tc.input, func(t *testing.T) {
			for _, opts := range [][]xsdvalue.Option{nil, {xsdvalue.WithoutValidation()}} {
				v := xsdvalue.New(builtin(t, tc.typ), opts...)
				err := v.SetText(tc.input)
				var val *xsderrors.Validation
				require.ErrorAs(t, err, &val)
				require.Equal(t, string(xsderrors.ErrValueOutOfRange), val.Code)
				require.Equal(t, xsderrors.KindFacet, val.Kind)
				require.Equal(t, tc.want, val.Message)
				require.True(t, v.IsNil())
			}
		})
	}

	d := xsdvalue.New(builtin(t, "int")).(*xsdvalue.Decimal)
	require.NoError(t, d.SetInt64(7))
	err := d.SetInt64(1 << 40)
	kind, ok := xsderrors.KindOf(err)
	require.True(t, ok)
	require.Equal(t, xsderrors.KindFacet, kind)
	got, err := d.IntValue()
	require.NoError(t, err)
	require.Equal(t, int32(7), got)
}

func TestBuiltinBounds(t *testing.T) {
	tests := []struct {
		typ   string
		input string
		code  xsderrors.ErrorCode
	}{
		{"byte", "128", xsderrors.ErrFacetMaxInclusive},
		{"byte", "-129", xsderrors.ErrFacetMinInclusive},
		{"unsignedByte", "256", xsderrors.ErrFacetMaxInclusive},
		{"unsignedLong", "-1", xsderrors.ErrFacetMinInclusive},
		{"positiveInteger", "0", xsderrors.ErrFacetMinInclusive},
		{"negativeInteger", "0", xsderrors.ErrFacetMaxInclusive},
		{"language", "en_US", xsderrors.ErrFacetPattern},
		{"NCName", "a:b", xsderrors.ErrFacetPattern},
	}
	for _, tc := range tests {
		t.Run(tc.typ+"/"+tc.input, func(t *testing.T) {
			err := xsdvalue.New(builtin(t, tc.typ)).SetText(tc.input)
			require.Error(t, err)
			list, ok := xsderrors.AsValidations(err)
			require.True(t, ok)
			require.Len(t, list, 1)
			require.Equal(t, string(tc.code), list[0].Code)
			require.Equal(t, xsderrors.KindFacet, list[0].Kind)
		})
	}

	v := xsdvalue.New(builtin(t, "unsignedLong"))
	require.NoError(t, v.SetText("18446744073709551615"))
	require.Equal(t, "18446744073709551615", v.Text())
}

func TestBuiltinWidths(t *testing.T) {
	widths := map[string]xsdvalue.Width{
		"decimal":            xsdvalue.WidthDecimal,
		"integer":            xsdvalue.WidthInteger,
		"nonNegativeInteger": xsdvalue.WidthInteger,
		"unsignedLong":       xsdvalue.WidthInteger,
		"long":               xsdvalue.WidthLong,
		"unsignedInt":        xsdvalue.WidthLong,
		"int":                xsdvalue.WidthInt,
		"short":              xsdvalue.WidthInt,
		"byte":               xsdvalue.WidthInt,
		"unsignedShort":      xsdvalue.WidthInt,
		"unsignedByte":       xsdvalue.WidthInt,
		"string":             xsdvalue.WidthNone,
	}
	for name, want := range widths {
		require.Equal(t, want, builtin(t, name).Width(), name)
	}
	require.True(t, builtin(t, "short").DerivesFrom(builtin(t, "decimal")))
	require.False(t, builtin(t, "decimal").DerivesFrom(builtin(t, "short")))
	require.Equal(t, "xs:short", builtin(t, "short").String())
	require.Nil(t, xsdvalue.Builtin("dateTime"))

	seen := map[*xsdvalue.Type]bool{}
	for _, typ := range xsdvalue.Builtins() {
		if base := typ.Base(); base != nil {
			require.True(t, seen[base], "%s listed before its base", typ)
		}
		seen[typ] = true
	}
}

func TestDecimalHashAcrossWidths(t *testing.T) {
	dec := xsdvalue.New(builtin(t, "decimal"))
	require.NoError(t, dec.SetText("4.0"))
	i := xsdvalue.New(builtin(t, "int"))
	require.NoError(t, i.SetText("4"))
	big := xsdvalue.New(builtin(t, "integer"))
	require.NoError(t, big.SetText("4"))

	require.True(t, dec.Equal(i))
	require.True(t, i.Equal(big))
	require.Equal(t, dec.Hash(), i.Hash())
	require.Equal(t, i.Hash(), big.Hash())

	require.NoError(t, dec.SetText("4.5"))
	require.False(t, dec.Equal(i))
	c, ok := i.Compare(dec)
	require.True(t, ok)
	require.Equal(t, -1, c)
	c, ok = dec.Compare(i)
	require.True(t, ok)
	require.Equal(t, 1, c)
}

func TestCompareAcrossFamilies(t *testing.T) {
	i := xsdvalue.New(builtin(t, "int"))
	require.NoError(t, i.SetText("1"))
	s := xsdvalue.New(builtin(t, "string"))
	require.NoError(t, s.SetText("1"))
	d := xsdvalue.New(builtin(t, "double"))
	require.NoError(t, d.SetText("1"))

	_, ok := i.Compare(s)
	require.False(t, ok)
	_, ok = i.Compare(d)
	require.False(t, ok)
	require.False(t, i.Equal(s))

	nilInt := xsdvalue.New(builtin(t, "int"))
	_, ok = i.Compare(nilInt)
	require.False(t, ok)
	require.True(t, nilInt.Equal(xsdvalue.New(builtin(t, "string"))))
	require.Equal(t, uint64(0), nilInt.Hash())
}

func TestDecimalAccessors(t *testing.T) {
	v := xsdvalue.New(builtin(t, "long")).(*xsdvalue.Decimal)
	_, err := v.LongValue()
	require.ErrorIs(t, err, xsdvalue.ErrNil)

	require.NoError(t, v.SetInt64(3_000_000_000))
	n, err := v.LongValue()
	require.NoError(t, err)
	require.Equal(t, int64(3_000_000_000), n)
	_, err = v.IntValue()
	require.ErrorIs(t, err, xsdvalue.ErrRange)

	require.NoError(t, v.SetText("-12"))
	b, err := v.ByteValue()
	require.NoError(t, err)
	require.Equal(t, int8(-12), b)
	s, err := v.ShortValue()
	require.NoError(t, err)
	require.Equal(t, int16(-12), s)

	d := xsdvalue.New(builtin(t, "decimal")).(*xsdvalue.Decimal)
	require.NoError(t, d.SetDecimal(decimal.RequireFromString("2.50")))
	require.Equal(t, "2.5", d.Text())
	_, err = d.LongValue()
	require.ErrorIs(t, err, xsdvalue.ErrRange)
	got, err := d.DecimalValue()
	require.NoError(t, err)
	require.True(t, got.Equal(decimal.RequireFromString("2.5")))

	i := xsdvalue.New(builtin(t, "int")).(*xsdvalue.Decimal)
	require.Error(t, i.SetDecimal(decimal.RequireFromString("2.5")))
	require.Error(t, i.SetBigInt(new(big.Int).Lsh(big.NewInt(1), 40)))
	require.True(t, i.IsNil())
	require.NoError(t, i.SetValue(uint16(7)))
	require.Equal(t, "7", i.Text())
	require.ErrorIs(t, i.SetValue(true), xsdvalue.ErrWrongKind)

	huge := xsdvalue.New(builtin(t, "integer")).(*xsdvalue.Decimal)
	require.NoError(t, huge.SetValue(uint64(18446744073709551615)))
	bi, err := huge.BigIntValue()
	require.NoError(t, err)
	require.Equal(t, "18446744073709551615", bi.String())
	_, err = huge.LongValue()
	require.ErrorIs(t, err, xsdvalue.ErrRange)
}

func TestSetNilClearsValue(t *testing.T) {
	v := xsdvalue.New(builtin(t, "hexBinary"))
	require.NoError(t, v.SetText("CAFE"))
	v.SetNil()
	require.True(t, v.IsNil())
	require.Empty(t, v.Text())
	_, err := v.(*xsdvalue.HexBinary).BytesValue()
	require.ErrorIs(t, err, xsdvalue.ErrNil)
}

func TestParse(t *testing.T) {
	v, err := xsdvalue.Parse(builtin(t, "short"), "12", nil)
	require.NoError(t, err)
	require.Equal(t, "12", v.Text())

	_, err = xsdvalue.Parse(builtin(t, "short"), "40000", nil)
	require.Error(t, err)
}
