package num

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseInt(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		sign    int8
		digits  string
		errKind ParseErrKind
		wantErr bool
	}{
		{name: "zero", input: "0", sign: 0, digits: "0"},
		{name: "neg zero", input: "-0", sign: 0, digits: "0"},
		{name: "pos sign zero", input: "+000", sign: 0, digits: "0"},
		{name: "positive", input: "123", sign: 1, digits: "123"},
		{name: "plus", input: "+42", sign: 1, digits: "42"},
		{name: "negative", input: "-456", sign: -1, digits: "456"},
		{name: "leading zeros", input: "0007", sign: 1, digits: "7"},
		{name: "empty", input: "", wantErr: true, errKind: ParseEmpty},
		{name: "sign only", input: "+", wantErr: true, errKind: ParseNoDigits},
		{name: "double sign", input: "+-1", wantErr: true, errKind: ParseMultipleSigns},
		{name: "bad char", input: "12a", wantErr: true, errKind: ParseBadChar},
		{name: "fraction", input: "1.0", wantErr: true, errKind: ParseBadChar},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseInt([]byte(tc.input))
			if tc.wantErr {
				require.NotNil(t, err)
				require.Equal(t, tc.errKind, err.Kind)
				return
			}
			require.Nil(t, err)
			require.Equal(t, tc.sign, got.Sign)
			require.Equal(t, tc.digits, string(got.Digits))
		})
	}
}

func TestIntCompareAndBounds(t *testing.T) {
	require.Equal(t, 1, FromInt64(10).Compare(FromInt64(2)))
	require.Equal(t, 1, FromInt64(-2).Compare(FromInt64(-3)))
	require.Equal(t, -1, FromInt64(-1).Compare(IntZero))
	require.Equal(t, 0, IntZero.Compare(FromInt64(0)))

	require.True(t, FromInt64(math.MaxInt32).Within(MinInt32, MaxInt32))
	require.False(t, FromInt64(math.MaxInt32+1).Within(MinInt32, MaxInt32))

	v, err := MinInt64.Int64()
	require.Nil(t, err)
	require.Equal(t, int64(math.MinInt64), v)

	_, err = MaxUint64.Int64()
	require.NotNil(t, err)
	require.Equal(t, ParseOutOfRange, err.Kind)

	require.Equal(t, "18446744073709551615", MaxUint64.BigInt().String())
}

func TestParseDec(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		sign    int8
		coef    string
		scale   uint32
		errKind ParseErrKind
		wantErr bool
	}{
		{name: "zero", input: "0", sign: 0, coef: "0"},
		{name: "neg zero", input: "-0.0", sign: 0, coef: "0"},
		{name: "integer", input: "12", sign: 1, coef: "12"},
		{name: "leading zero decimal", input: "0.1", sign: 1, coef: "1", scale: 1},
		{name: "trailing zero decimal", input: "1.0", sign: 1, coef: "1"},
		{name: "trim trailing zeros", input: "12.3400", sign: 1, coef: "1234", scale: 2},
		{name: "leading dot", input: ".5", sign: 1, coef: "5", scale: 1},
		{name: "trailing dot", input: "5.", sign: 1, coef: "5"},
		{name: "leading zeros", input: "-001.2300", sign: -1, coef: "123", scale: 2},
		{name: "small", input: "0.005", sign: 1, coef: "5", scale: 3},
		{name: "empty", input: "", wantErr: true, errKind: ParseEmpty},
		{name: "sign only", input: "+", wantErr: true, errKind: ParseNoDigits},
		{name: "dot only", input: ".", wantErr: true, errKind: ParseNoDigits},
		{name: "double dot", input: "1..2", wantErr: true, errKind: ParseMultipleDots},
		{name: "exponent", input: "1e5", wantErr: true, errKind: ParseBadChar},
		{name: "bad char", input: "1a", wantErr: true, errKind: ParseBadChar},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseDec([]byte(tc.input))
			if tc.wantErr {
				require.NotNil(t, err)
				require.Equal(t, tc.errKind, err.Kind)
				return
			}
			require.Nil(t, err)
			require.Equal(t, tc.sign, got.Sign)
			require.Equal(t, tc.coef, string(got.Coef))
			require.Equal(t, tc.scale, got.Scale)
		})
	}
}

func TestDecTotalDigits(t *testing.T) {
	for input, want := range map[string]int{"0": 1, "100": 3, "-12.340": 4, "0.005": 1} {
		d, err := ParseDec([]byte(input))
		require.Nil(t, err)
		require.Equal(t, want, d.TotalDigits(), input)
	}
	d, err := ParseDec([]byte("-1.25"))
	require.Nil(t, err)
	require.Equal(t, "-125", d.Unscaled().String())
}

func TestParseFloat(t *testing.T) {
	tests := []struct {
		input   string
		bits    int
		want    float64
		wantErr ParseErrKind
	}{
		{input: "INF", bits: 64, want: math.Inf(1)},
		{input: "-INF", bits: 64, want: math.Inf(-1)},
		{input: "1.25", bits: 64, want: 1.25},
		{input: "-1.5E-3", bits: 64, want: -0.0015},
		{input: ".5", bits: 64, want: 0.5},
		{input: "1e400", bits: 64, want: math.Inf(1)},
		{input: "1e39", bits: 32, want: math.Inf(1)},
		{input: "+INF", wantErr: ParseNoDigits},
		{input: "inf", wantErr: ParseNoDigits},
		{input: "1e", wantErr: ParseNoDigits},
		{input: ".", wantErr: ParseNoDigits},
		{input: "1.2.3", wantErr: ParseBadChar},
		{input: "0x10", wantErr: ParseBadChar},
		{input: "", wantErr: ParseEmpty},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseFloat([]byte(tc.input), max(tc.bits, 32))
			if tc.wantErr != ParseInvalid {
				require.NotNil(t, err)
				require.Equal(t, tc.wantErr, err.Kind)
				return
			}
			require.Nil(t, err)
			require.Equal(t, tc.want, got)
		})
	}

	nan, err := ParseFloat([]byte("NaN"), 64)
	require.Nil(t, err)
	require.True(t, math.IsNaN(nan))
}

func TestCompareTotal(t *testing.T) {
	negZero := math.Copysign(0, -1)
	nan := math.NaN()

	require.Equal(t, 0, CompareTotal(nan, nan))
	require.Equal(t, -1, CompareTotal(negZero, 0))
	require.Equal(t, 1, CompareTotal(0, negZero))
	require.Equal(t, 1, CompareTotal(nan, math.Inf(1)))
	require.Equal(t, -1, CompareTotal(math.Inf(-1), -1))
	require.Equal(t, -1, CompareTotal(1, 2))
}

func TestNarrow(t *testing.T) {
	v, ok := Narrow[int32](50)
	require.True(t, ok)
	require.Equal(t, int32(50), v)

	_, ok = Narrow[int8](200)
	require.False(t, ok)

	s, ok := Narrow[int16](-32768)
	require.True(t, ok)
	require.Equal(t, int16(-32768), s)
}
