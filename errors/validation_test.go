package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidationErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		want string
		v    Validation
	}{
		{
			name: "message only",
			v:    Validation{Code: "cvc-pattern-valid", Message: "no match"},
			want: "[cvc-pattern-valid] no match",
		},
		{
			name: "with path",
			v:    Validation{Code: "cvc-pattern-valid", Message: "no match", Path: "/root/@code"},
			want: "[cvc-pattern-valid] no match at /root/@code",
		},
		{
			name: "with all",
			v: Validation{
				Code:     "cvc-maxInclusive-valid",
				Message:  "too big",
				Path:     "/root",
				Expected: []string{"100"},
				Actual:   "150",
			},
			want: "[cvc-maxInclusive-valid] too big at /root (expected: 100) (actual: 150)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.v.Error())
		})
	}
}

func TestNewValidationf(t *testing.T) {
	v := NewValidationf(ErrFacetMaxLength, KindFacet, "length %d exceeds %d", 5, 3)
	require.Equal(t, string(ErrFacetMaxLength), v.Code)
	require.Equal(t, KindFacet, v.Kind)
	require.Equal(t, "length 5 exceeds 3", v.Message)
}

func TestValidationListError(t *testing.T) {
	require.Equal(t, "no validation errors", ValidationList(nil).Error())

	list := ValidationList{
		{Code: "a", Message: "first"},
		{Code: "b", Message: "second"},
	}
	require.Equal(t, "[a] first (and 1 more)", list.Error())
}

func TestAsValidationsAndKind(t *testing.T) {
	single := NewValidation(ErrDatatypeInvalid, KindLexical, "bad")
	wrapped := fmt.Errorf("set: %w", single)

	got, ok := AsValidations(wrapped)
	require.True(t, ok)
	require.Len(t, got, 1)
	require.Equal(t, "bad", got[0].Message)

	kind, ok := KindOf(wrapped)
	require.True(t, ok)
	require.Equal(t, KindLexical, kind)

	list := ValidationList{{Code: "x", Kind: KindUnion}}
	kind, ok = KindOf(fmt.Errorf("wrap: %w", list))
	require.True(t, ok)
	require.Equal(t, KindUnion, kind)

	_, ok = AsValidations(fmt.Errorf("plain"))
	require.False(t, ok)
}
