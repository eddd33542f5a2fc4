// Package observability exposes Prometheus metrics for application internals.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quitemap_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// CacheHits counts cache-aside hits and misses by key prefix.
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quitemap_cache_requests_total",
		Help: "Cache-aside lookups by key prefix and outcome",
	}, []string{"prefix", "outcome"})

	// RegistrationsCompleted counts registrations completed through the bot.
	RegistrationsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quitemap_registrations_completed_total",
		Help: "Total number of registrations completed via the Telegram bot",
	})

	// PageRenderLatency records SSR template render latency by page.
	PageRenderLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "quitemap_page_render_latency_seconds",
		Help:    "Server-side render latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"page"})
)

// ObserveRender records the latency of an SSR page render.
func ObserveRender(page string, start time.Time) {
	PageRenderLatency.WithLabelValues(page).Observe(time.Since(start).Seconds())
}
