// Package metrics provides Prometheus metrics for the url-tree service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP request metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "urltree_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "urltree_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Tree cache metrics
	cacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "urltree_cache_lookups_total",
			Help: "Tree cache lookups by result (hit, miss)",
		},
		[]string{"result"},
	)

	treeRebuildsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "urltree_tree_rebuilds_total",
			Help: "Tree rebuilds by trigger and result code",
		},
		[]string{"trigger", "result"},
	)

	treeRebuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "urltree_tree_rebuild_duration_seconds",
			Help:    "Time to fetch the source list and rebuild the tree",
			Buckets: prometheus.DefBuckets,
		},
	)

	treeEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "urltree_tree_entries",
			Help: "Number of hosts, directories and files in the published tree",
		},
		[]string{"kind"},
	)

	snapshotBuiltAt = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "urltree_snapshot_built_at_seconds",
			Help: "Unix time at which the published snapshot was built",
		},
	)
)

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordHTTPRequest records an HTTP request metric.
func RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordCacheLookup records whether GetTree was served from the snapshot.
func RecordCacheLookup(hit bool) {
	if hit {
		cacheLookupsTotal.WithLabelValues("hit").Inc()
		return
	}
	cacheLookupsTotal.WithLabelValues("miss").Inc()
}

// RecordRebuild records one rebuild attempt. result is "ok" or an error code.
func RecordRebuild(trigger, result string, duration time.Duration) {
	treeRebuildsTotal.WithLabelValues(trigger, result).Inc()
	treeRebuildDuration.Observe(duration.Seconds())
}

// SetSnapshot records the shape and age of the newly published tree.
func SetSnapshot(hosts, directories, files int, builtAt time.Time) {
	treeEntries.WithLabelValues("host").Set(float64(hosts))
	treeEntries.WithLabelValues("directory").Set(float64(directories))
	treeEntries.WithLabelValues("file").Set(float64(files))
	snapshotBuiltAt.Set(float64(builtAt.Unix()))
}
