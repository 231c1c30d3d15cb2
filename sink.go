package xsdvalue

import (
	xsderrors "github.com/jacoelho/xsdvalue/errors"
)

// Sink receives validation findings. The facet engine reports at most one
// finding per validation call.
type Sink interface {
	Invalid(v xsderrors.Validation)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(xsderrors.Validation)

// Invalid calls f.
func (f SinkFunc) Invalid(v xsderrors.Validation) { f(v) }

// FailFast keeps the first finding and ignores the rest.
type FailFast struct {
	first *xsderrors.Validation
}

// Invalid records v if nothing was recorded yet.
func (f *FailFast) Invalid(v xsderrors.Validation) {
	if f.first == nil {
		f.first = &v
	}
}

// Err returns the recorded finding, or nil.
func (f *FailFast) Err() error {
	if f.first == nil {
		return nil
	}
	return f.first
}

// Collector accumulates every finding in arrival order.
type Collector struct {
	list xsderrors.ValidationList
}

// Invalid appends v.
func (c *Collector) Invalid(v xsderrors.Validation) {
	c.list = append(c.list, v)
}

// Findings returns the accumulated findings.
func (c *Collector) Findings() xsderrors.ValidationList { return c.list }

// Len returns the number of findings.
func (c *Collector) Len() int { return len(c.list) }

// Err returns the findings as an error, or nil when there are none.
func (c *Collector) Err() error {
	if len(c.list) == 0 {
		return nil
	}
	return c.list
}

// Reset drops the accumulated findings.
func (c *Collector) Reset() { c.list = c.list[:0] }

// WithPath returns a sink that stamps path on findings lacking one before
// forwarding them to next.
func WithPath(next Sink, path string) Sink {
	return SinkFunc(func(v xsderrors.Validation) {
		if v.Path == "" {
			v.Path = path
		}
		next.Invalid(v)
	})
}
