package core

import (
	"expvar"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRecorder receives store-level events. Implementations must be safe
// for concurrent use; recording must never fail a mutation.
type MetricsRecorder interface {
	MutationApplied(entity EntityType, action AuditAction)
	PersistFailure(key string)
}

// NopMetrics discards every event.
type NopMetrics struct{}

func (NopMetrics) MutationApplied(EntityType, AuditAction) {}
func (NopMetrics) PersistFailure(string)                   {}

// ExpvarMetrics publishes counters on the process-wide expvar map, keyed
// mutations.<entity>.<action> and persist_failures.<key>.
type ExpvarMetrics struct {
	vars *expvar.Map
}

// NewExpvarMetrics publishes (or reuses) the named expvar map.
func NewExpvarMetrics(name string) *ExpvarMetrics {
	if existing := expvar.Get(name); existing != nil {
		if m, ok := existing.(*expvar.Map); ok {
			return &ExpvarMetrics{vars: m}
		}
	}
	return &ExpvarMetrics{vars: expvar.NewMap(name)}
}

func (e *ExpvarMetrics) MutationApplied(entity EntityType, action AuditAction) {
	e.vars.Add(fmt.Sprintf("mutations.%s.%s", entity, action), 1)
}

func (e *ExpvarMetrics) PersistFailure(key string) {
	e.vars.Add("persist_failures."+key, 1)
}

// PromMetrics records store events on a private prometheus registry so the
// collectors never collide with another registrar in the same process.
type PromMetrics struct {
	registry        *prometheus.Registry
	mutationsTotal  *prometheus.CounterVec
	persistFailures *prometheus.CounterVec
}

// NewPromMetrics builds the collectors on a fresh registry.
func NewPromMetrics() *PromMetrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &PromMetrics{
		registry: reg,
		mutationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "supplycore",
			Name:      "mutations_total",
			Help:      "Committed entity mutations by entity type and action.",
		}, []string{"entity", "action"}),
		persistFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "supplycore",
			Name:      "persist_failures_total",
			Help:      "Best-effort persistence writes that failed, by storage key.",
		}, []string{"key"}),
	}
}

// Registry exposes the private registry for the /metrics handler.
func (p *PromMetrics) Registry() *prometheus.Registry { return p.registry }

func (p *PromMetrics) MutationApplied(entity EntityType, action AuditAction) {
	p.mutationsTotal.WithLabelValues(string(entity), string(action)).Inc()
}

func (p *PromMetrics) PersistFailure(key string) {
	p.persistFailures.WithLabelValues(key).Inc()
}
