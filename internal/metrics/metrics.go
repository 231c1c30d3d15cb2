// Package metrics counts value checks and validation findings with
// Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jacoelho/xsdvalue"
	xsderrors "github.com/jacoelho/xsdvalue/errors"
)

const namespace = "xsdvalue"

// Recorder holds the collectors of one registry.
type Recorder struct {
	checked  *prometheus.CounterVec
	findings *prometheus.CounterVec
	types    prometheus.Gauge
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		checked: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "values_checked_total",
			Help:      "Total number of lexical values checked, by type and outcome",
		}, []string{"type", "outcome"}),
		findings: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "findings_total",
			Help:      "Total number of validation findings, by error code and kind",
		}, []string{"code", "kind"}),
		types: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_types",
			Help:      "Number of types in the loaded catalog",
		}),
	}
}

// Checked records one checked value of type t.
func (r *Recorder) Checked(t *xsdvalue.Type, valid bool) {
	outcome := "valid"
	if !valid {
		outcome = "invalid"
	}
	r.checked.WithLabelValues(t.String(), outcome).Inc()
}

// CatalogTypes records the size of the loaded catalog.
func (r *Recorder) CatalogTypes(n int) {
	r.types.Set(float64(n))
}

// Sink counts every finding before forwarding it to next.
func (r *Recorder) Sink(next xsdvalue.Sink) xsdvalue.Sink {
	return xsdvalue.SinkFunc(func(v xsderrors.Validation) {
		r.findings.WithLabelValues(v.Code, v.Kind.String()).Inc()
		next.Invalid(v)
	})
}
