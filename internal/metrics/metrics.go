// Package metrics expõe as métricas Prometheus da API e da sincronização
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "mediation_stats"

var (
	// SourceRequests conta as chamadas à API da rede de anúncios por operação e status
	SourceRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "source_requests_total",
			Help:      "Total number of requests sent to the ad network API",
		},
		[]string{"operation", "status"},
	)

	// SyncUsers conta o resultado da sincronização por usuário
	SyncUsers = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sync_users_total",
			Help:      "Total number of per-user syncs by outcome",
		},
		[]string{"trigger", "outcome"},
	)

	PartitionsWritten = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "partitions_written_total",
			Help:      "Total number of day partitions upserted",
		},
	)

	SyncRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sync_run_duration_seconds",
			Help:      "Duration of a full sync run over all users",
			Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600},
		},
	)

	QueryDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "query_duration_seconds",
			Help:      "Duration of stats queries",
			Buckets:   prometheus.DefBuckets,
		},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "status"},
	)

	HTTPLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method"},
	)
)

// ObserveHTTP registra uma requisição HTTP finalizada
func ObserveHTTP(method string, statusCode int, duration time.Duration) {
	HTTPRequests.WithLabelValues(method, strconv.Itoa(statusCode)).Inc()
	HTTPLatency.WithLabelValues(method).Observe(duration.Seconds())
}

// Handler retorna o handler HTTP do endpoint /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}
