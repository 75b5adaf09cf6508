// Package metrics records panel activity as Prometheus metrics.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rovshanmuradov/botpanel/internal/command"
	"go.uber.org/zap"
)

const namespace = "botpanel"

// Metrics holds the panel's collectors.
type Metrics struct {
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	refreshes       *prometheus.CounterVec
	commands        *prometheus.CounterVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "api_requests_total",
				Help:      "Bot API requests by method, path and status code",
			},
			[]string{"method", "path", "code"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "api_request_duration_seconds",
				Help:      "Bot API request latency",
				Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10),
			},
			[]string{"path"},
		),
		refreshes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "refreshes_total",
				Help:      "View refreshes by kind and result",
			},
			[]string{"kind", "result"},
		),
		commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "commands_total",
				Help:      "Operator commands by action and result",
			},
			[]string{"action", "result"},
		),
	}
	reg.MustRegister(m.requests, m.requestDuration, m.refreshes, m.commands)
	return m
}

// ObserveRequest implements api.Observer. The query string is dropped from
// the path label to keep cardinality bounded.
func (m *Metrics) ObserveRequest(method, path string, status int, elapsed time.Duration, _ error) {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	code := "none"
	if status != 0 {
		code = strconv.Itoa(status)
	}
	m.requests.WithLabelValues(method, path, code).Inc()
	m.requestDuration.WithLabelValues(path).Observe(elapsed.Seconds())
}

// ObserveRefresh is the poller observer hook.
func (m *Metrics) ObserveRefresh(kind string, err error) {
	m.refreshes.WithLabelValues(kind, result(err)).Inc()
}

// ObserveCommand is the command table observer hook.
func (m *Metrics) ObserveCommand(action command.Action, _ time.Duration, err error) {
	m.commands.WithLabelValues(string(action), result(err)).Inc()
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// Serve exposes gatherer on addr under /metrics until ctx is done.
func Serve(ctx context.Context, addr string, gatherer prometheus.Gatherer, logger *zap.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("Serving metrics", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
