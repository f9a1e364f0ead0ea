// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	GamesStarted   *prometheus.CounterVec
	GamesFinished  *prometheus.CounterVec
	BestScores     *prometheus.CounterVec
	ActiveSessions prometheus.Gauge
	ContactSent    *prometheus.CounterVec
	RLRequests     *prometheus.CounterVec
	RLBlocked      *prometheus.CounterVec
	HTTPRequests   *prometheus.CounterVec
	HTTPDuration   *prometheus.HistogramVec
}

// New builds the collectors on a private registry, alongside the Go and
// process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		GamesStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "funzone_games_started_total",
			Help: "Game sessions started, by game",
		}, []string{"game"}),
		GamesFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "funzone_games_finished_total",
			Help: "Game sessions finished, by game and outcome",
		}, []string{"game", "outcome"}),
		BestScores: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "funzone_best_scores_total",
			Help: "Finished sessions that set a new best score",
		}, []string{"game"}),
		ActiveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "funzone_active_sessions",
			Help: "Visitors with a game session in memory",
		}),
		ContactSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "funzone_contact_messages_total",
			Help: "Contact form submissions, by result",
		}, []string{"result"}),
		RLRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rate_limiter_requests_total",
			Help: "Total requests seen by the rate limiter",
		}, []string{"endpoint"}),
		RLBlocked: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rate_limiter_blocked_total",
			Help: "Total requests blocked by the rate limiter",
		}, []string{"endpoint"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by route pattern and status",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.GamesStarted,
		m.GamesFinished,
		m.BestScores,
		m.ActiveSessions,
		m.ContactSent,
		m.RLRequests,
		m.RLBlocked,
		m.HTTPRequests,
		m.HTTPDuration,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one served request.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// FinishOutcome labels a finished session for GamesFinished.
func FinishOutcome(won bool) string {
	if won {
		return "won"
	}
	return "lost"
}
