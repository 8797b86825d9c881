package roundmetrics

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type prometheusMetrics struct {
	operationAttempts *prometheus.CounterVec
	operationSuccess  *prometheus.CounterVec
	operationFailure  *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	roundsCreated     prometheus.Counter
	roundsCompleted   prometheus.Counter
	roundTaps         prometheus.Histogram
	tapsAccepted      *prometheus.CounterVec
	tapsRejected      *prometheus.CounterVec
}

// NewPrometheus registers the round collectors on reg.
func NewPrometheus(reg prometheus.Registerer) RoundMetrics {
	m := &prometheusMetrics{
		operationAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "guss",
			Subsystem: "round",
			Name:      "operation_attempts_total",
			Help:      "Round operations started.",
		}, []string{"operation", "service"}),
		operationSuccess: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "guss",
			Subsystem: "round",
			Name:      "operation_success_total",
			Help:      "Round operations that completed without an infrastructure error.",
		}, []string{"operation", "service"}),
		operationFailure: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "guss",
			Subsystem: "round",
			Name:      "operation_failure_total",
			Help:      "Round operations that failed.",
		}, []string{"operation", "service"}),
		operationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "guss",
			Subsystem: "round",
			Name:      "operation_duration_seconds",
			Help:      "Round operation latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation", "service"}),
		roundsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "guss",
			Subsystem: "round",
			Name:      "created_total",
			Help:      "Rounds created.",
		}),
		roundsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "guss",
			Subsystem: "round",
			Name:      "completed_total",
			Help:      "Rounds whose completion was announced.",
		}),
		roundTaps: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "guss",
			Subsystem: "round",
			Name:      "taps_per_round",
			Help:      "Taps recorded per completed round.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		tapsAccepted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "guss",
			Subsystem: "tap",
			Name:      "accepted_total",
			Help:      "Taps accepted, by awarded score.",
		}, []string{"score"}),
		tapsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "guss",
			Subsystem: "tap",
			Name:      "rejected_total",
			Help:      "Taps rejected, by reason.",
		}, []string{"reason"}),
	}

	reg.MustRegister(
		m.operationAttempts,
		m.operationSuccess,
		m.operationFailure,
		m.operationDuration,
		m.roundsCreated,
		m.roundsCompleted,
		m.roundTaps,
		m.tapsAccepted,
		m.tapsRejected,
	)
	return m
}

func (m *prometheusMetrics) RecordOperationAttempt(_ context.Context, operationName, serviceName string) {
	m.operationAttempts.WithLabelValues(operationName, serviceName).Inc()
}

func (m *prometheusMetrics) RecordOperationSuccess(_ context.Context, operationName, serviceName string) {
	m.operationSuccess.WithLabelValues(operationName, serviceName).Inc()
}

func (m *prometheusMetrics) RecordOperationFailure(_ context.Context, operationName, serviceName string) {
	m.operationFailure.WithLabelValues(operationName, serviceName).Inc()
}

func (m *prometheusMetrics) RecordOperationDuration(_ context.Context, operationName, serviceName string, duration time.Duration) {
	m.operationDuration.WithLabelValues(operationName, serviceName).Observe(duration.Seconds())
}

func (m *prometheusMetrics) RecordRoundCreated(_ context.Context) {
	m.roundsCreated.Inc()
}

func (m *prometheusMetrics) RecordTapAccepted(_ context.Context, score int) {
	m.tapsAccepted.WithLabelValues(strconv.Itoa(score)).Inc()
}

func (m *prometheusMetrics) RecordTapRejected(_ context.Context, reason string) {
	m.tapsRejected.WithLabelValues(reason).Inc()
}

func (m *prometheusMetrics) RecordRoundCompleted(_ context.Context, totalTaps int) {
	m.roundsCompleted.Inc()
	m.roundTaps.Observe(float64(totalTaps))
}
