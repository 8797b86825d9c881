package usermetrics

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
	usersCreated      *prometheus.CounterVec
	logins            *prometheus.CounterVec
}

// NewPrometheus registers the user collectors on reg.
func NewPrometheus(reg prometheus.Registerer) UserMetrics {
	m := &prometheusMetrics{
		operationAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "guss",
			Subsystem: "user",
			Name:      "operation_attempts_total",
			Help:      "User operations started.",
		}, []string{"operation", "service"}),
		operationSuccess: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "guss",
			Subsystem: "user",
			Name:      "operation_success_total",
			Help:      "User operations that completed without an infrastructure error.",
		}, []string{"operation", "service"}),
		operationFailure: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "guss",
			Subsystem: "user",
			Name:      "operation_failure_total",
			Help:      "User operations that failed.",
		}, []string{"operation", "service"}),
		operationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "guss",
			Subsystem: "user",
			Name:      "operation_duration_seconds",
			Help:      "User operation latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation", "service"}),
		usersCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "guss",
			Subsystem: "user",
			Name:      "created_total",
			Help:      "Accounts created, by role.",
		}, []string{"role"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "guss",
			Subsystem: "auth",
			Name:      "logins_total",
			Help:      "Login attempts, by outcome.",
		}, []string{"success"}),
	}

	reg.MustRegister(
		m.operationAttempts,
		m.operationSuccess,
		m.operationFailure,
		m.operationDuration,
		m.usersCreated,
		m.logins,
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

func (m *prometheusMetrics) RecordUserCreated(_ context.Context, role string) {
	m.usersCreated.WithLabelValues(role).Inc()
}

func (m *prometheusMetrics) RecordLogin(_ context.Context, success bool) {
	m.logins.WithLabelValues(strconv.FormatBool(success)).Inc()
}
