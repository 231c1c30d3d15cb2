package xsdvalue_test

import (
	"math"
	"math/big"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jacoelho/xsdvalue"
	xsderrors "github.com/jacoelho/xsdvalue/errors"
)

func union(t *testing.T, name string, members []*xsdvalue.Type, opts ...xsdvalue.FacetOption) *xsdvalue.Type {
	t.Helper()
	typ, err := xsdvalue.NewUnion(name, members, opts...)
	require.NoError(t, err)
	return typ
}

func TestUnionMemberOrder(t *testing.T) {
	decFirst := union(t, "decOrString", []*xsdvalue.Type{builtin(t, "decimal"), builtin(t, "string")})
	v := xsdvalue.New(decFirst).(*xsdvalue.Union)
	require.NoError(t, v.SetText("3.14"))
	require.Same(t, builtin(t, "decimal"), v.MemberType())
	require.Equal(t, "3.14", v.Text())
	require.IsType(t, &xsdvalue.Decimal{}, v.Member())

	require.NoError(t, v.SetText("pi"))
	require.Same(t, builtin(t, "string"), v.MemberType())

	strFirst := union(t, "stringOrDec", []*xsdvalue.Type{builtin(t, "string"), builtin(t, "decimal")})
	w := xsdvalue.New(strFirst).(*xsdvalue.Union)
	require.NoError(t, w.SetText("3.14"))
	require.Same(t, builtin(t, "string"), w.MemberType())
}

func TestUnionRollbackOnFailure(t *testing.T) {
	typ := union(t, "intOrBool", []*xsdvalue.Type{builtin(t, "int"), builtin(t, "boolean")})
	v := xsdvalue.New(typ).(*xsdvalue.Union)
	require.NoError(t, v.SetText(" 7 "))
	require.Equal(t, "7", v.Text())

	err := v.SetText("abc")
	require.Error(t, err)
	kind, ok := xsderrors.KindOf(err)
	require.True(t, ok)
	require.Equal(t, xsderrors.KindUnion, kind)
	list, _ := xsderrors.AsValidations(err)
	require.Equal(t, string(xsderrors.ErrUnionNoMember), list[0].Code)
	require.Contains(t, list[0].Message, "xs:int, xs:boolean")

	require.Equal(t, "7", v.Text())
	require.Equal(t, " 7 ", v.RawText())
	n, err := v.IntValue()
	require.NoError(t, err)
	require.Equal(t, int32(7), n)
	s, err := v.StringValue()
	require.NoError(t, err)
	require.Equal(t, "7", s)

	byteUnion := xsdvalue.New(union(t, "byteOnly", []*xsdvalue.Type{builtin(t, "byte")})).(*xsdvalue.Union)
	require.NoError(t, byteUnion.SetText("+12"))
	require.Error(t, byteUnion.SetText("1000"))
	s, err = byteUnion.StringValue()
	require.NoError(t, err)
	require.Equal(t, "12", s)
}

func TestUnionStringValue(t *testing.T) {
	typ := union(t, "intOrString", []*xsdvalue.Type{builtin(t, "int"), builtin(t, "string")})
	v := xsdvalue.New(typ).(*xsdvalue.Union)

	_, err := v.StringValue()
	require.ErrorIs(t, err, xsdvalue.ErrNil)

	require.NoError(t, v.SetText("042"))
	require.Same(t, builtin(t, "int"), v.MemberType())
	s, err := v.StringValue()
	require.NoError(t, err)
	require.Equal(t, "42", s)

	require.NoError(t, v.SetText("forty-two"))
	s, err = v.StringValue()
	require.NoError(t, err)
	require.Equal(t, "forty-two", s)

	v.SetNil()
	_, err = v.StringValue()
	require.ErrorIs(t, err, xsdvalue.ErrNil)
}

func TestUnionMemberFacetsSelectMember(t *testing.T) {
	small := restrict(t, "small", builtin(t, "int"), xsdvalue.MaxInclusive("10"))
	typ := union(t, "smallOrDecimal", []*xsdvalue.Type{small, builtin(t, "decimal")})
	v := xsdvalue.New(typ).(*xsdvalue.Union)

	require.NoError(t, v.SetText("5"))
	require.Same(t, small, v.MemberType())
	require.NoError(t, v.SetText("50"))
	require.Same(t, builtin(t, "decimal"), v.MemberType())
	require.Equal(t, "50.0", v.Text())
}

func TestUnionEnumerationUsesValueEquality(t *testing.T) {
	typ := union(t, "choice", []*xsdvalue.Type{builtin(t, "int"), builtin(t, "string")},
		xsdvalue.Enumeration("1", "x"))
	v := xsdvalue.New(typ).(*xsdvalue.Union)

	require.NoError(t, v.SetText("01"))
	require.Same(t, builtin(t, "int"), v.MemberType())
	require.Equal(t, "1", v.Text())

	require.NoError(t, v.SetText("x"))
	require.Same(t, builtin(t, "string"), v.MemberType())

	require.Error(t, v.SetText("2"))
	require.Equal(t, "x", v.Text())
}

func TestUnionPattern(t *testing.T) {
	typ := union(t, "shortCode", []*xsdvalue.Type{builtin(t, "int"), builtin(t, "token")},
		xsdvalue.PatternFacet(`[A-Z0-9]{1,3}`))
	v := xsdvalue.New(typ)
	require.NoError(t, v.SetText("AB"))
	err := v.SetText("ABCD")
	list, _ := xsderrors.AsValidations(err)
	require.Equal(t, string(xsderrors.ErrFacetPattern), list[0].Code)

	_, err = xsdvalue.NewUnion("bad", []*xsdvalue.Type{builtin(t, "int")}, xsdvalue.MaxLength(2))
	require.ErrorIs(t, err, xsdvalue.ErrInvalidFacet)
	_, err = xsdvalue.NewUnion("empty", nil)
	require.Error(t, err)
}

func TestUnionSetValueByCategory(t *testing.T) {
	typ := union(t, "mixed", []*xsdvalue.Type{
		builtin(t, "boolean"),
		builtin(t, "byte"),
		builtin(t, "double"),
		builtin(t, "string"),
	})
	v := xsdvalue.New(typ).(*xsdvalue.Union)

	require.NoError(t, v.SetValue(true))
	require.Same(t, builtin(t, "boolean"), v.MemberType())
	b, err := v.BoolValue()
	require.NoError(t, err)
	require.True(t, b)

	require.NoError(t, v.SetValue(42))
	require.Same(t, builtin(t, "byte"), v.MemberType())

	require.NoError(t, v.SetValue(1000))
	require.Same(t, builtin(t, "double"), v.MemberType())
	d, err := v.DoubleValue()
	require.NoError(t, err)
	require.InDelta(t, 1000.0, d, 0)

	require.NoError(t, v.SetValue("hello"))
	require.Same(t, builtin(t, "string"), v.MemberType())
	s, err := v.StringValue()
	require.NoError(t, err)
	require.Equal(t, "hello", s)
	_, err = v.IntValue()
	require.ErrorIs(t, err, xsdvalue.ErrWrongKind)

	err = v.SetValue([]byte{1, 2})
	kind, ok := xsderrors.KindOf(err)
	require.True(t, ok)
	require.Equal(t, xsderrors.KindUnion, kind)
	require.Error(t, v.SetValue(time.Now()))
	require.Equal(t, "hello", v.Text())
}

func TestNestedUnion(t *testing.T) {
	inner := union(t, "inner", []*xsdvalue.Type{builtin(t, "boolean"), builtin(t, "int")})
	outer := union(t, "outer", []*xsdvalue.Type{inner, builtin(t, "hexBinary")})
	v := xsdvalue.New(outer).(*xsdvalue.Union)

	require.NoError(t, v.SetText("12"))
	require.Same(t, inner, v.MemberType())
	n, err := v.LongValue()
	require.NoError(t, err)
	require.Equal(t, int64(12), n)

	require.NoError(t, v.SetValue(false))
	require.NoError(t, v.SetText("ABCD"))
	require.Same(t, builtin(t, "hexBinary"), v.MemberType())

	i := xsdvalue.New(builtin(t, "int"))
	require.NoError(t, i.SetText("12"))
	require.NoError(t, v.SetText("12"))
	require.True(t, v.Equal(i))
	require.Equal(t, i.Hash(), v.Hash())
}

func TestUnionNil(t *testing.T) {
	typ := union(t, "u", []*xsdvalue.Type{builtin(t, "int")})
	v := xsdvalue.New(typ).(*xsdvalue.Union)
	require.Nil(t, v.Member())
	_, err := v.IntValue()
	require.ErrorIs(t, err, xsdvalue.ErrNil)
	require.NoError(t, v.SetText("3"))
	v.SetNil()
	require.True(t, v.IsNil())
	require.Empty(t, v.Text())
	require.Nil(t, v.MemberType())
}

func TestUnionSetValueNonFiniteFallsThrough(t *testing.T) {
	typ := union(t, "decimalOrDouble", []*xsdvalue.Type{builtin(t, "decimal"), builtin(t, "double")})
	v := xsdvalue.New(typ).(*xsdvalue.Union)

	require.NoError(t, v.SetValue(2.5))
	require.Same(t, builtin(t, "decimal"), v.MemberType())

	for _, f := range []float64{math.Inf(1), math.Inf(-1), math.NaN()} {
		require.NoError(t, v.SetValue(f))
		require.Same(t, builtin(t, "double"), v.MemberType())
	}
	require.Equal(t, "NaN", v.Text())

	require.NoError(t, v.SetValue(float32(math.Inf(1))))
	require.Equal(t, "INF", v.Text())
}

func TestDecimalRejectsNonFinite(t *testing.T) {
	for _, f := range []any{math.NaN(), math.Inf(1), float32(math.Inf(-1))} {
		d := xsdvalue.New(builtin(t, "decimal"))
		require.NoError(t, d.SetValue(1.5))
		err := d.SetValue(f)
		kind, ok := xsderrors.KindOf(err)
		require.True(t, ok)
		require.Equal(t, xsderrors.KindLexical, kind)
		require.Equal(t, "1.5", d.Text())
	}
}

func TestUnionNumberHostTypes(t *testing.T) {
	typ := union(t, "doubleOnly", []*xsdvalue.Type{builtin(t, "double")})
	tests := []struct {
		in   any
		want string
	}{
		{int(3), "3.0E0"},
		{int8(3), "3.0E0"},
		{int16(-3), "-3.0E0"},
		{int32(3), "3.0E0"},
		{int64(3), "3.0E0"},
		{uint(3), "3.0E0"},
		{uint8(3), "3.0E0"},
		{uint16(3), "3.0E0"},
		{uint32(3), "3.0E0"},
		{uint64(3), "3.0E0"},
		{float32(0.5), "5.0E-1"},
		{0.5, "5.0E-1"},
		{big.NewInt(3), "3.0E0"},
		{decimal.RequireFromString("2.5"), "2.5E0"},
	}
	for _, tc := range tests {
		v := xsdvalue.New(typ).(*xsdvalue.Union)
		require.NoError(t, v.SetValue(tc.in), "%T", tc.in)
		require.Equal(t, tc.want, v.Text(), "%T", tc.in)
	}
}
