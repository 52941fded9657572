// Package metrics defines the Prometheus metrics of the banking client.
//
// Metrics are registered on the Registerer handed to New, so tests and
// embedders can keep them off the default registry.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrijs2005/bankclient/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "bankclient"

type Metrics struct {
	// RequestsTotal counts API exchanges by method and status ("0" when the
	// server was unreachable).
	RequestsTotal *prometheus.CounterVec

	// RequestDuration measures API round trips.
	RequestDuration *prometheus.HistogramVec

	// RequestFailuresTotal counts normalized failures by status and kind.
	RequestFailuresTotal *prometheus.CounterVec

	// SessionTransitionsTotal counts published session states.
	// Labels:
	//   - cause: login, register, logout, terminate, refresh
	//   - state: authenticated or anonymous
	SessionTransitionsTotal *prometheus.CounterVec

	// GuardDenialsTotal counts navigations refused by a guard.
	GuardDenialsTotal *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_requests_total",
			Help:      "Total number of backend API requests.",
		}, []string{"method", "status"}),
		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "api_request_duration_seconds",
			Help:      "Backend API round-trip latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
		RequestFailuresTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_request_failures_total",
			Help:      "Total number of normalized API failures.",
		}, []string{"status", "kind"}),
		SessionTransitionsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "session_transitions_total",
			Help:      "Total number of session state publications.",
		}, []string{"cause", "state"}),
		GuardDenialsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "guard_denials_total",
			Help:      "Total number of navigations denied by a route guard.",
		}, []string{"guard", "route"}),
	}
}

// ObserveRequest records one completed exchange. Status 0 means no response.
func (m *Metrics) ObserveRequest(method string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(method, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(method).Observe(d.Seconds())
}

func (m *Metrics) RequestFailed(status int, kind string) {
	if m == nil {
		return
	}
	m.RequestFailuresTotal.WithLabelValues(strconv.Itoa(status), kind).Inc()
}

func (m *Metrics) SessionTransition(cause string, authenticated bool) {
	if m == nil {
		return
	}
	state := "anonymous"
	if authenticated {
		state = "authenticated"
	}
	m.SessionTransitionsTotal.WithLabelValues(cause, state).Inc()
}

func (m *Metrics) GuardDenied(guard, route string) {
	if m == nil {
		return
	}
	m.GuardDenialsTotal.WithLabelValues(guard, route).Inc()
}

// Handler exposes the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// Serve runs a /metrics listener on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, g prometheus.Gatherer, log logging.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(g))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info(ctx, "metrics listener started", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
