package app

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Black-And-White-Club/guss-backend/app/observability"
	"github.com/Black-And-White-Club/guss-backend/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRouter_Health(t *testing.T) {
	r := NewRouter(config.Default(), observability.NewNoop())

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "healthy", rr.Body.String())
}

func TestNewRouter_Metrics(t *testing.T) {
	obs := observability.NewNoop()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "guss_test_total", Help: "test"})
	obs.Registry.Prometheus.MustRegister(counter)
	counter.Inc()

	r := NewRouter(config.Default(), obs)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "guss_test_total 1")
}

func TestNewRouter_CORSPreflight(t *testing.T) {
	cfg := config.Default()
	r := NewRouter(cfg, observability.NewNoop())

	req := httptest.NewRequest(http.MethodOptions, "/health", nil)
	req.Header.Set("Origin", cfg.HTTP.AllowedOrigins[0])
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, cfg.HTTP.AllowedOrigins[0], rr.Header().Get("Access-Control-Allow-Origin"))
}
