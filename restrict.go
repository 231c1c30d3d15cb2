package xsdvalue

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/jacoelho/xsdvalue/internal/pattern"
)

// ErrInvalidFacet is wrapped by every facet declaration error returned
// from Restrict and NewUnion.
var ErrInvalidFacet = errors.New("invalid facet")

// FacetOption declares one constraining facet of a restriction.
type FacetOption func(*restriction) error

type restriction struct {
	lengths     map[FacetKind]int
	bounds      map[FacetKind]string
	whiteSpace  *WhiteSpace
	ns          NamespaceResolver
	enumeration []string
	patterns    []string
	hasEnum     bool
}

func setLength(kind FacetKind, n int) FacetOption {
	return func(r *restriction) error {
		if n < 0 {
			return fmt.Errorf("%w: %s must be non-negative, got %d", ErrInvalidFacet, kind, n)
		}
		r.lengths[kind] = n
		return nil
	}
}

func setBound(kind FacetKind, lexical string) FacetOption {
	return func(r *restriction) error {
		r.bounds[kind] = lexical
		return nil
	}
}

// Length declares the length facet.
func Length(n int) FacetOption { return setLength(FacetLength, n) }

// MinLength declares the minLength facet.
func MinLength(n int) FacetOption { return setLength(FacetMinLength, n) }

// MaxLength declares the maxLength facet.
func MaxLength(n int) FacetOption { return setLength(FacetMaxLength, n) }

// TotalDigits declares the totalDigits facet.
func TotalDigits(n int) FacetOption {
	return func(r *restriction) error {
		if n < 1 {
			return fmt.Errorf("%w: totalDigits must be positive, got %d", ErrInvalidFacet, n)
		}
		r.lengths[FacetTotalDigits] = n
		return nil
	}
}

// FractionDigits declares the fractionDigits facet.
func FractionDigits(n int) FacetOption { return setLength(FacetFractionDigits, n) }

// MinInclusive declares the minInclusive facet from its lexical value.
func MinInclusive(lexical string) FacetOption { return setBound(FacetMinInclusive, lexical) }

// MinExclusive declares the minExclusive facet from its lexical value.
func MinExclusive(lexical string) FacetOption { return setBound(FacetMinExclusive, lexical) }

// MaxInclusive declares the maxInclusive facet from its lexical value.
func MaxInclusive(lexical string) FacetOption { return setBound(FacetMaxInclusive, lexical) }

// MaxExclusive declares the maxExclusive facet from its lexical value.
func MaxExclusive(lexical string) FacetOption { return setBound(FacetMaxExclusive, lexical) }

// Enumeration declares enumeration values. Repeated options accumulate.
func Enumeration(values ...string) FacetOption {
	return func(r *restriction) error {
		r.enumeration = append(r.enumeration, values...)
		r.hasEnum = true
		return nil
	}
}

// PatternFacet declares the pattern facet of this step. Sources given to one
// step are alternatives. Text set with SetText is matched in its
// whitespace-normalized input form ("+01" for an integer), values set from
// host types in their canonical form.
func PatternFacet(sources ...string) FacetOption {
	return func(r *restriction) error {
		r.patterns = append(r.patterns, sources...)
		return nil
	}
}

// FacetNamespaces sets the namespace context used to parse QName and
// NOTATION facet values.
func FacetNamespaces(ns NamespaceResolver) FacetOption {
	return func(r *restriction) error {
		r.ns = ns
		return nil
	}
}

// WhiteSpaceRule declares the whiteSpace facet.
func WhiteSpaceRule(ws WhiteSpace) FacetOption {
	return func(r *restriction) error {
		if ws > WhiteSpaceCollapse {
			return fmt.Errorf("%w: unknown whiteSpace rule %d", ErrInvalidFacet, ws)
		}
		r.whiteSpace = &ws
		return nil
	}
}

// applicable lists the facets each family accepts.
func applicable(f Family, kind FacetKind) bool {
	switch kind {
	case FacetPattern, FacetEnumeration:
		return true
	case FacetWhiteSpace:
		return f != FamilyUnion
	case FacetLength, FacetMinLength, FacetMaxLength:
		switch f {
		case FamilyAnySimple, FamilyString, FamilyHexBinary, FamilyQName, FamilyNotation:
			return true
		}
	case FacetTotalDigits, FacetFractionDigits:
		return f == FamilyDecimal
	case FacetMinInclusive, FacetMinExclusive, FacetMaxInclusive, FacetMaxExclusive:
		switch f {
		case FamilyDecimal, FamilyFloat, FamilyDouble, FamilyDuration:
			return true
		}
	}
	return false
}

// Restrict derives a named type from base. An empty name makes the type
// anonymous. Facets not redeclared are inherited from base; pattern facets
// of every step are kept and all must match, against the input text rather
// than the canonical form (see PatternFacet).
func Restrict(name string, base *Type, opts ...FacetOption) (*Type, error) {
	if base == nil {
		return nil, fmt.Errorf("restrict %q: nil base type", name)
	}
	r := restriction{
		lengths: make(map[FacetKind]int),
		bounds:  make(map[FacetKind]string),
	}
	for _, opt := range opts {
		if err := opt(&r); err != nil {
			return nil, fmt.Errorf("restrict %q: %w", name, err)
		}
	}
	t := &Type{
		name:        name,
		family:      base.family,
		width:       base.width,
		whiteSpace:  base.whiteSpace,
		base:        base,
		facets:      base.facets,
		enumeration: base.enumeration,
		patterns:    slices.Clone(base.patterns),
		members:     base.members,
		symbols:     base.symbols,
		symbolIndex: base.symbolIndex,
	}
	if err := t.apply(&r); err != nil {
		return nil, fmt.Errorf("restrict %q from %s: %w", name, base, err)
	}
	return t, nil
}

func (t *Type) apply(r *restriction) error {
	if r.whiteSpace != nil {
		if !applicable(t.family, FacetWhiteSpace) {
			return fmt.Errorf("%w: whiteSpace does not apply to %s", ErrInvalidFacet, t.family)
		}
		if *r.whiteSpace < t.whiteSpace {
			return fmt.Errorf("%w: whiteSpace %s is weaker than inherited %s", ErrInvalidFacet, *r.whiteSpace, t.whiteSpace)
		}
		t.whiteSpace = *r.whiteSpace
	}
	for _, kind := range slices.Sorted(maps.Keys(r.lengths)) {
		if !applicable(t.family, kind) {
			return fmt.Errorf("%w: %s does not apply to %s", ErrInvalidFacet, kind, t.family)
		}
		v, err := facetInteger(r.lengths[kind])
		if err != nil {
			return err
		}
		t.facets[kind] = v
	}
	for _, kind := range slices.Sorted(maps.Keys(r.bounds)) {
		if !applicable(t.family, kind) {
			return fmt.Errorf("%w: %s does not apply to %s", ErrInvalidFacet, kind, t.family)
		}
		v, err := Parse(t.base, r.bounds[kind], r.ns)
		if err != nil {
			return fmt.Errorf("%w: %s value: %w", ErrInvalidFacet, kind, err)
		}
		t.facets[kind] = v
	}
	// A declared inclusive bound replaces an inherited exclusive one and
	// the other way round.
	clearInherited(t, r, FacetMinInclusive, FacetMinExclusive)
	clearInherited(t, r, FacetMaxInclusive, FacetMaxExclusive)
	if len(r.patterns) > 0 {
		re, err := pattern.Compile(r.patterns...)
		if err != nil {
			return fmt.Errorf("%w: pattern: %w", ErrInvalidFacet, err)
		}
		t.patterns = append(t.patterns, &Pattern{re: re, Sources: slices.Clone(r.patterns)})
	}
	if r.hasEnum {
		if err := t.setEnumeration(r.enumeration, r.ns); err != nil {
			return err
		}
	}
	return t.checkConsistency()
}

func clearInherited(t *Type, r *restriction, inclusive, exclusive FacetKind) {
	_, inc := r.bounds[inclusive]
	_, exc := r.bounds[exclusive]
	switch {
	case inc && !exc:
		t.facets[exclusive] = nil
	case exc && !inc:
		t.facets[inclusive] = nil
	}
}

func facetInteger(n int) (Value, error) {
	d, ok := New(Builtin("nonNegativeInteger"), WithoutValidation()).(*Decimal)
	if !ok {
		return nil, fmt.Errorf("nonNegativeInteger holder unavailable")
	}
	if err := d.SetInt64(int64(n)); err != nil {
		return nil, err
	}
	return d, nil
}

func (t *Type) setEnumeration(lexicals []string, ns NamespaceResolver) error {
	if len(lexicals) == 0 {
		return fmt.Errorf("%w: empty enumeration", ErrInvalidFacet)
	}
	values := make([]Value, 0, len(lexicals))
	for _, lex := range lexicals {
		v, err := Parse(t.base, lex, ns)
		if err != nil {
			return fmt.Errorf("%w: enumeration value: %w", ErrInvalidFacet, err)
		}
		values = append(values, v)
	}
	t.enumeration = values
	t.symbols, t.symbolIndex = nil, nil
	if t.family != FamilyString {
		return nil
	}
	t.symbols = make([]Symbol, 0, len(values))
	t.symbolIndex = make(map[string]int, len(values))
	for _, v := range values {
		text := v.Text()
		if _, dup := t.symbolIndex[text]; dup {
			continue
		}
		t.symbols = append(t.symbols, Symbol{Name: text, Int: len(t.symbols) + 1})
		t.symbolIndex[text] = len(t.symbols)
	}
	return nil
}

func (t *Type) checkConsistency() error {
	if t.facets[FacetMinInclusive] != nil && t.facets[FacetMinExclusive] != nil {
		return fmt.Errorf("%w: minInclusive and minExclusive both declared", ErrInvalidFacet)
	}
	if t.facets[FacetMaxInclusive] != nil && t.facets[FacetMaxExclusive] != nil {
		return fmt.Errorf("%w: maxInclusive and maxExclusive both declared", ErrInvalidFacet)
	}
	lower := firstSet(t, FacetMinInclusive, FacetMinExclusive)
	upper := firstSet(t, FacetMaxInclusive, FacetMaxExclusive)
	if lower != nil && upper != nil {
		if c, ok := Compare(lower, upper); ok && c > 0 {
			return fmt.Errorf("%w: lower bound %s exceeds upper bound %s", ErrInvalidFacet, lower.Text(), upper.Text())
		}
	}
	minLen, maxLen := t.facets[FacetMinLength], t.facets[FacetMaxLength]
	if minLen != nil && maxLen != nil && facetLimit(minLen) > facetLimit(maxLen) {
		return fmt.Errorf("%w: minLength %s exceeds maxLength %s", ErrInvalidFacet, minLen.Text(), maxLen.Text())
	}
	total, fraction := t.facets[FacetTotalDigits], t.facets[FacetFractionDigits]
	if total != nil && fraction != nil && facetLimit(fraction) > facetLimit(total) {
		return fmt.Errorf("%w: fractionDigits %s exceeds totalDigits %s", ErrInvalidFacet, fraction.Text(), total.Text())
	}
	return nil
}

func firstSet(t *Type, kinds ...FacetKind) Value {
	for _, k := range kinds {
		if v := t.facets[k]; v != nil {
			return v
		}
	}
	return nil
}

// NewUnion builds a union type over members, tried in the given order.
// Only pattern and enumeration facets apply to unions.
func NewUnion(name string, members []*Type, opts ...FacetOption) (*Type, error) {
	if len(members) == 0 {
		return nil, fmt.Errorf("union %q: no member types", name)
	}
	for i, m := range members {
		if m == nil {
			return nil, fmt.Errorf("union %q: member %d is nil", name, i)
		}
	}
	anySimple := Builtin("anySimpleType")
	t := &Type{
		name:       name,
		family:     FamilyUnion,
		whiteSpace: WhiteSpacePreserve,
		base:       anySimple,
		members:    slices.Clone(members),
	}
	r := restriction{
		lengths: make(map[FacetKind]int),
		bounds:  make(map[FacetKind]string),
	}
	for _, opt := range opts {
		if err := opt(&r); err != nil {
			return nil, fmt.Errorf("union %q: %w", name, err)
		}
	}
	if len(r.lengths) > 0 || len(r.bounds) > 0 || r.whiteSpace != nil {
		return nil, fmt.Errorf("union %q: %w: only pattern and enumeration apply to unions", name, ErrInvalidFacet)
	}
	if len(r.patterns) > 0 {
		re, err := pattern.Compile(r.patterns...)
		if err != nil {
			return nil, fmt.Errorf("union %q: %w: pattern: %w", name, ErrInvalidFacet, err)
		}
		t.patterns = []*Pattern{{re: re, Sources: slices.Clone(r.patterns)}}
	}
	if r.hasEnum {
		// Enumeration values are parsed by the union itself, before the
		// type carries them.
		values := make([]Value, 0, len(r.enumeration))
		for _, lex := range r.enumeration {
			v, err := Parse(t, lex, r.ns)
			if err != nil {
				return nil, fmt.Errorf("union %q: %w: enumeration value: %w", name, ErrInvalidFacet, err)
			}
			values = append(values, v)
		}
		t.enumeration = values
	}
	return t, nil
}
