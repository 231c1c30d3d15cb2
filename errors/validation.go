package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents a W3C XSD error code.
// See: https://www.w3.org/TR/xmlschema-2/#validation-rules
type ErrorCode string

const (
	// ErrDatatypeInvalid indicates a lexical value is invalid for its datatype.
	ErrDatatypeInvalid ErrorCode = "cvc-datatype-valid.1.2.1"
	// ErrUnionNoMember indicates no member type of a union accepted the value.
	ErrUnionNoMember ErrorCode = "cvc-datatype-valid.1.2.3"
	// ErrValueOutOfRange indicates an integer outside the range of its
	// type's machine width.
	ErrValueOutOfRange ErrorCode = "xsd-value-out-of-range"
	// ErrQNamePrefixUnresolved indicates a QName prefix has no namespace binding.
	ErrQNamePrefixUnresolved ErrorCode = "xsd-qname-prefix-unresolved"

	// ErrFacetLength indicates a length facet violation.
	ErrFacetLength ErrorCode = "cvc-length-valid"
	// ErrFacetMinLength indicates a minLength facet violation.
	ErrFacetMinLength ErrorCode = "cvc-minLength-valid"
	// ErrFacetMaxLength indicates a maxLength facet violation.
	ErrFacetMaxLength ErrorCode = "cvc-maxLength-valid"
	// ErrFacetPattern indicates a pattern facet violation.
	ErrFacetPattern ErrorCode = "cvc-pattern-valid"
	// ErrFacetEnumeration indicates an enumeration facet violation.
	ErrFacetEnumeration ErrorCode = "cvc-enumeration-valid"
	// ErrFacetTotalDigits indicates a totalDigits facet violation.
	ErrFacetTotalDigits ErrorCode = "cvc-totalDigits-valid"
	// ErrFacetFractionDigits indicates a fractionDigits facet violation.
	ErrFacetFractionDigits ErrorCode = "cvc-fractionDigits-valid"
	// ErrFacetMinInclusive indicates a minInclusive facet violation.
	ErrFacetMinInclusive ErrorCode = "cvc-minInclusive-valid"
	// ErrFacetMinExclusive indicates a minExclusive facet violation.
	ErrFacetMinExclusive ErrorCode = "cvc-minExclusive-valid"
	// ErrFacetMaxInclusive indicates a maxInclusive facet violation.
	ErrFacetMaxInclusive ErrorCode = "cvc-maxInclusive-valid"
	// ErrFacetMaxExclusive indicates a maxExclusive facet violation.
	ErrFacetMaxExclusive ErrorCode = "cvc-maxExclusive-valid"
)

// Kind classifies a validation failure.
type Kind uint8

const (
	// KindLexical means the text does not match the datatype grammar or width.
	KindLexical Kind = iota
	// KindFacet means the value parsed but violates a declared constraint.
	KindFacet
	// KindUnion means no member type of a union accepted the value.
	KindUnion
	// KindResolution means a QName prefix could not be resolved.
	KindResolution
)

// String returns a stable label for the kind.
func (k Kind) String() string {
	switch k {
	case KindFacet:
		return "facet"
	case KindUnion:
		return "union"
	case KindResolution:
		return "resolution"
	default:
		return "lexical"
	}
}

// Validation describes a simple-type validation failure with a W3C or local
// error code, the offending value and the violated bound.
//
//nolint:errname // public API name uses XSD domain term.
type Validation struct {
	Code     string
	Message  string
	Path     string
	Actual   string
	Expected []string
	Kind     Kind
}

// ValidationList is an error that wraps one or more validation errors.
type ValidationList []Validation //nolint:errname // public API name, keep for compatibility.

// Error returns a compact summary of the validation errors.
func (v ValidationList) Error() string {
	switch len(v) {
	case 0:
		return "no validation errors"
	case 1:
		return v[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more)", v[0].Error(), len(v)-1)
	}
}

// Error formats the validation for display, including code, message, and context.
func (v *Validation) Error() string {
	if v == nil {
		return "validation <nil>"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("[%s] %s", v.Code, v.Message))
	if v.Path != "" {
		b.WriteString(fmt.Sprintf(" at %s", v.Path))
	}
	if len(v.Expected) > 0 {
		b.WriteString(fmt.Sprintf(" (expected: %s)", strings.Join(v.Expected, ", ")))
	}
	if v.Actual != "" {
		b.WriteString(fmt.Sprintf(" (actual: %s)", v.Actual))
	}
	return b.String()
}

// NewValidation builds a Validation with a code, kind, and message.
func NewValidation(code ErrorCode, kind Kind, msg string) *Validation {
	return &Validation{Code: string(code), Kind: kind, Message: msg}
}

// NewValidationf formats a message and builds a Validation.
func NewValidationf(code ErrorCode, kind Kind, format string, args ...any) *Validation {
	return NewValidation(code, kind, fmt.Sprintf(format, args...))
}

// KindOf reports the kind of the first validation carried by err.
func KindOf(err error) (Kind, bool) {
	var v *Validation
	if errors.As(err, &v) && v != nil {
		return v.Kind, true
	}
	if list, ok := asValidationList(err); ok && len(list) > 0 {
		return list[0].Kind, true
	}
	return 0, false
}

// AsValidations extracts validation errors from an error returned by validation helpers.
func AsValidations(err error) ([]Validation, bool) {
	var v *Validation
	if errors.As(err, &v) && v != nil {
		return []Validation{*v}, true
	}
	list, ok := asValidationList(err)
	if !ok {
		return nil, false
	}
	return []Validation(list), true
}

func asValidationList(err error) (ValidationList, bool) {
	if err == nil {
		return nil, false
	}
	var list ValidationList
	if errors.As(err, &list) {
		return list, true
	}

	var listPtr *ValidationList
	if errors.As(err, &listPtr) && listPtr != nil {
		return *listPtr, true
	}

	return nil, false
}
