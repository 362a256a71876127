package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by command.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blogsite_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "blogsite_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// PostsCreated counts created posts.
	PostsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "blogsite_posts_created_total",
		Help: "Total number of posts created",
	})

	// Likes counts like attempts by result (liked, already_liked).
	Likes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blogsite_likes_total",
		Help: "Total number of like attempts by result",
	}, []string{"result"})

	// Comments counts comment events by action (created, approved, disapproved).
	Comments = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blogsite_comments_total",
		Help: "Total number of comment events by action",
	}, []string{"action"})

	// AuthAttempts counts register and login attempts by result.
	AuthAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blogsite_auth_attempts_total",
		Help: "Total number of authentication attempts",
	}, []string{"action", "result"})

	// CacheLookups counts cache-aside lookups by result (hit, miss).
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blogsite_cache_lookups_total",
		Help: "Total number of cache lookups by result",
	}, []string{"result"})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
