// Package observability provides metrics and tracing.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Result labels shared by the counters below.
const (
	ResultOK      = "ok"
	ResultError   = "error"
	ResultSkipped = "skipped"
)

var (
	// MutationsTotal counts gateway mutations by action and outcome.
	MutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aura_mutations_total",
		Help: "Total number of indexed social mutations by action and result",
	}, []string{"action", "result"})

	// NotificationFanoutTotal counts fan-out attempts by notification type and outcome.
	NotificationFanoutTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aura_notification_fanout_total",
		Help: "Total number of notification fan-out attempts",
	}, []string{"type", "result"})

	// RealtimePublishTotal counts best-effort realtime publishes.
	RealtimePublishTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aura_realtime_publish_total",
		Help: "Total number of realtime notification publishes",
	}, []string{"result"})

	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aura_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records read-layer query latency by operation.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "aura_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	// WebSocketConnectionsTotal is the gauge of live notification streams.
	WebSocketConnectionsTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "aura_websocket_connections_total",
		Help: "Total number of active notification WebSocket connections",
	})

	// LedgerCallsTotal counts ledger RPC lookups by method and outcome.
	LedgerCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aura_ledger_calls_total",
		Help: "Total number of ledger RPC calls",
	}, []string{"method", "result"})
)

// ResultLabel converts an error into a result label.
func ResultLabel(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultOK
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}
}
