package xsdvalue

import (
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/jacoelho/xsdvalue/duration"
	xsderrors "github.com/jacoelho/xsdvalue/errors"
)

// Duration holds xs:duration values. Durations are partially ordered:
// Compare fails for pairs such as P1M and P30D whose order depends on the
// starting instant.
type Duration struct {
	holder
	d duration.Duration
}

func (d *Duration) parse(lexical string, _ NamespaceResolver) *xsderrors.Validation {
	v, err := duration.Parse(lexical)
	if err != nil {
		return lexicalError(d.typ, lexical, err)
	}
	d.d = v
	d.isNil = false
	return nil
}

// SetText implements Value.
func (d *Duration) SetText(s string) error { return setText(d, s, nil) }

// SetTextNS implements Value.
func (d *Duration) SetTextNS(s string, ns NamespaceResolver) error { return setText(d, s, ns) }

// ValidateText implements Value.
func (d *Duration) ValidateText(s string, ns NamespaceResolver, sink Sink) {
	validateText(d, s, ns, sink)
}

// SetNil implements Value.
func (d *Duration) SetNil() {
	d.isNil = true
	d.d = duration.Duration{}
}

// SetDuration stores v.
func (d *Duration) SetDuration(v duration.Duration) error {
	if err := v.Validate(); err != nil {
		return lexicalError(d.typ, v.String(), err)
	}
	next := *d
	next.d = v
	return commitValue(d, &next)
}

// SetValue accepts duration.Duration and duration lexical strings.
func (d *Duration) SetValue(v any) error {
	switch x := v.(type) {
	case duration.Duration:
		return d.SetDuration(x)
	case string:
		return d.SetText(x)
	}
	return wrongKind(d.typ, v)
}

// DurationValue returns the value.
func (d *Duration) DurationValue() (duration.Duration, error) {
	if d.isNil {
		return duration.Duration{}, ErrNil
	}
	return d.d, nil
}

// Text implements Value.
func (d *Duration) Text() string {
	if d.isNil {
		return ""
	}
	return d.d.String()
}

// Compare implements Value.
func (d *Duration) Compare(other Value) (int, bool) { return Compare(d, other) }

// Equal implements Value.
func (d *Duration) Equal(other Value) bool { return Equal(d, other) }

// Hash implements Value.
func (d *Duration) Hash() uint64 {
	if d.isNil {
		return 0
	}
	k := duration.KeyOf(d.d)
	return xxhash.Sum64String(strconv.FormatInt(k.Months, 10) + "|" + k.Seconds.String())
}

func (d *Duration) compare(o *Duration) (int, bool) {
	if duration.Equal(d.d, o.d) {
		return 0, true
	}
	c, err := duration.Compare(d.d, o.d)
	if err != nil {
		return 0, false
	}
	return c, true
}
