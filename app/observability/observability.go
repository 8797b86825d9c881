// Package observability wires the logger, tracer and Prometheus registry
// shared by every module.
package observability

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// ServiceName identifies this service in traces and metrics.
const ServiceName = "guss-backend"

// Config holds the observability settings.
type Config struct {
	Environment    string
	LogLevel       string
	MetricsAddress string
}

// Provider carries the logging side.
type Provider struct {
	Logger *slog.Logger
}

// Registry carries the tracing and metrics side.
type Registry struct {
	Tracer     trace.Tracer
	Prometheus *prometheus.Registry
}

// Observability bundles everything a module needs to report on itself.
type Observability struct {
	Provider Provider
	Registry Registry

	metricsServer *http.Server
}

// Init builds the logger, tracer and registry from cfg.
func Init(cfg Config) Observability {
	logger := NewLogger(os.Stdout, cfg.Environment, cfg.LogLevel).With(
		slog.String("service", ServiceName),
	)
	slog.SetDefault(logger)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	obs := Observability{
		Provider: Provider{Logger: logger},
		Registry: Registry{
			Tracer:     otel.Tracer(ServiceName),
			Prometheus: reg,
		},
	}

	if cfg.MetricsAddress != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		obs.metricsServer = &http.Server{
			Addr:              cfg.MetricsAddress,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
	}

	return obs
}

// NewNoop returns an Observability that discards everything.
func NewNoop() Observability {
	return Observability{
		Provider: Provider{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))},
		Registry: Registry{
			Tracer:     noop.NewTracerProvider().Tracer("noop"),
			Prometheus: prometheus.NewRegistry(),
		},
	}
}

// NewLogger returns a JSON logger, or a text logger in development.
func NewLogger(w io.Writer, environment, level string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	if strings.EqualFold(environment, "development") {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// MetricsHandler exposes the registry for mounting on another router.
func (o Observability) MetricsHandler() http.Handler {
	return promhttp.HandlerFor(o.Registry.Prometheus, promhttp.HandlerOpts{})
}

// StartMetricsServer serves /metrics on the dedicated address, if one is set.
func (o Observability) StartMetricsServer() {
	if o.metricsServer == nil {
		return
	}
	logger := o.Provider.Logger
	go func() {
		logger.Info("Metrics server listening", slog.String("address", o.metricsServer.Addr))
		if err := o.metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Metrics server failed", slog.String("error", err.Error()))
		}
	}()
}

// Shutdown stops the metrics server.
func (o Observability) Shutdown(ctx context.Context) error {
	if o.metricsServer == nil {
		return nil
	}
	if err := o.metricsServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down metrics server: %w", err)
	}
	return nil
}
