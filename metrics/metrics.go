// Package metrics exposes Prometheus counters for schema decoding and Thing
// Description reading.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "wotschema"

// Metrics groups the decoder collectors. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	Decodes     *prometheus.CounterVec // by kind ("none" for unrecognized nodes)
	Nodes       prometheus.Counter     // schema nodes visited, nested ones included
	Issues      *prometheus.CounterVec // by code
	Affordances *prometheus.CounterVec // by affordance type
}

// New creates the collectors and registers them on reg. A nil reg skips
// registration. Collectors already registered on reg are reused.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Decodes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "decoder",
			Name:      "decodes_total",
			Help:      "Root decode calls by resulting schema kind.",
		}, []string{"kind"}),
		Nodes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "decoder",
			Name:      "nodes_total",
			Help:      "Schema nodes decoded, nested nodes included.",
		}),
		Issues: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "decoder",
			Name:      "issues_total",
			Help:      "Diagnostics raised while decoding, by code.",
		}, []string{"code"}),
		Affordances: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "td",
			Name:      "affordances_total",
			Help:      "Interaction affordances read from Thing Descriptions.",
		}, []string{"type"}),
	}
	if reg == nil {
		return m, nil
	}
	var err error
	if m.Decodes, err = register(reg, m.Decodes); err != nil {
		return nil, err
	}
	if m.Nodes, err = register(reg, m.Nodes); err != nil {
		return nil, err
	}
	if m.Issues, err = register(reg, m.Issues); err != nil {
		return nil, err
	}
	if m.Affordances, err = register(reg, m.Affordances); err != nil {
		return nil, err
	}
	return m, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// ObserveDecode records a root decode result. kind is "none" when the node
// was not a schema.
func (m *Metrics) ObserveDecode(kind string) {
	if m == nil {
		return
	}
	m.Decodes.WithLabelValues(kind).Inc()
}

// ObserveNode records one visited schema node.
func (m *Metrics) ObserveNode() {
	if m == nil {
		return
	}
	m.Nodes.Inc()
}

// ObserveIssue records one diagnostic.
func (m *Metrics) ObserveIssue(code string) {
	if m == nil {
		return
	}
	m.Issues.WithLabelValues(code).Inc()
}

// ObserveAffordance records one affordance of the given type
// ("property", "action", "event").
func (m *Metrics) ObserveAffordance(typ string) {
	if m == nil {
		return
	}
	m.Affordances.WithLabelValues(typ).Inc()
}
