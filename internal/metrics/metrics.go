// Package metrics defines and registers the Prometheus metrics of the movie
// catalog.  All metrics are registered with the default registry through
// promauto when the package is imported and exposed on GET /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "catalog"

// ── HTTP metrics ──────────────────────────────────────────────────────────────

// HTTPRequestsTotal counts served requests.
// Labels:
//   - method: HTTP method
//   - route:  the registered route pattern (e.g. "/movies/:id"), never the raw path
//   - status: response status code
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests, by method, route and status.",
	},
	[]string{"method", "route", "status"},
)

// HTTPRequestDuration measures handler latency.
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests, by method and route.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)

// ── Catalog metrics ───────────────────────────────────────────────────────────

// CatalogWritesTotal counts committed writes.
// Labels:
//   - resource: movie, actor, rating, user
//   - action:   created, updated, deleted
var CatalogWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "writes_total",
		Help:      "Total number of committed catalog writes, by resource and action.",
	},
	[]string{"resource", "action"},
)

// EventsPublishFailedTotal counts change events that could not be published.
var EventsPublishFailedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_publish_failed_total",
		Help:      "Total number of catalog change events that failed to publish.",
	},
	[]string{"resource"},
)

// ── Edge metrics ──────────────────────────────────────────────────────────────

// CacheLookupsTotal counts response cache lookups.
// Label:
//   - result: "hit", "miss" or "bypass"
var CacheLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_lookups_total",
		Help:      "Total number of response cache lookups, by result.",
	},
	[]string{"result"},
)

// RateLimitedTotal counts requests rejected by the token bucket.
var RateLimitedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of requests rejected with 429.",
	},
)
