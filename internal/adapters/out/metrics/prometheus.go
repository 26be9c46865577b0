// Package metrics records assignment engine activity in Prometheus.
package metrics

import (
	"errors"
	"time"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/prometheus/client_golang/prometheus"
)

// PromAssignmentRecorder counts assignment attempts by outcome and keeps a
// latency histogram.
type PromAssignmentRecorder struct {
	attempts *prometheus.CounterVec
	latency  prometheus.Histogram
}

var _ commands.AssignmentRecorder = (*PromAssignmentRecorder)(nil)

// NewPromAssignmentRecorder registers the collectors on reg. A nil
// registerer defaults to the global Prometheus registerer. Collectors that
// are already registered are reused.
func NewPromAssignmentRecorder(reg prometheus.Registerer) (*PromAssignmentRecorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	attempts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dispatch_assignments_total",
		Help: "Total number of route assignment attempts by outcome",
	}, []string{"outcome"})
	latency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "dispatch_assign_duration_seconds",
		Help:    "Duration of one route assignment attempt",
		Buckets: prometheus.DefBuckets,
	})

	if err := reg.Register(attempts); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return nil, err
		}
		attempts = are.ExistingCollector.(*prometheus.CounterVec)
	}
	if err := reg.Register(latency); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return nil, err
		}
		latency = are.ExistingCollector.(prometheus.Histogram)
	}

	return &PromAssignmentRecorder{attempts: attempts, latency: latency}, nil
}

func (r *PromAssignmentRecorder) ObserveAssignment(outcome commands.AssignOutcome, elapsed time.Duration) {
	r.attempts.WithLabelValues(string(outcome)).Inc()
	r.latency.Observe(elapsed.Seconds())
}
