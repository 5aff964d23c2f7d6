// Package metrics exposes Prometheus collectors for the API.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "roommait",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "roommait",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "roommait",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "path"},
	)

	scansProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "roommait",
			Subsystem: "ar",
			Name:      "scans_processed_total",
			Help:      "Room scans stored, by quality band.",
		},
		[]string{"quality"},
	)

	placementItems = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "roommait",
			Subsystem: "ar",
			Name:      "placement_items_total",
			Help:      "Furniture items saved across all placement batches.",
		},
	)

	recommendations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "roommait",
			Subsystem: "ai",
			Name:      "recommendations_total",
			Help:      "Product recommendations returned, by category.",
		},
		[]string{"category"},
	)

	authFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "roommait",
			Subsystem: "auth",
			Name:      "failures_total",
			Help:      "Bearer tokens that failed verification.",
		},
		[]string{"reason"},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		scansProcessed,
		placementItems,
		recommendations,
		authFailures,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler exposes the registered collectors.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// InstrumentHandler wraps next with HTTP request metrics.
func InstrumentHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		httpInFlight.Inc()
		defer httpInFlight.Dec()

		next.ServeHTTP(rec, r)

		path := CanonicalPath(r.URL.Path)
		if !knownPaths[path] {
			path = "unmatched"
		}
		method := strings.ToUpper(r.Method)
		httpRequests.WithLabelValues(method, path, strconv.Itoa(rec.status)).Inc()
		httpDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	})
}

func RecordScan(quality float64, lowThreshold float64) {
	band := "ok"
	if quality < lowThreshold {
		band = "low"
	}
	scansProcessed.WithLabelValues(band).Inc()
}

func RecordPlacementItems(n int) {
	placementItems.Add(float64(n))
}

func RecordRecommendations(category string, n int) {
	if category == "" {
		category = "unknown"
	}
	recommendations.WithLabelValues(strings.ToLower(category)).Add(float64(n))
}

func RecordAuthFailure(reason string) {
	authFailures.WithLabelValues(reason).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

const placementPrefix = "/api/v1/ar/placement/"

// CanonicalPath collapses placement ids so the path label stays bounded.
func CanonicalPath(raw string) string {
	if raw == "" || raw == "/" {
		return "/"
	}
	if rest, ok := strings.CutPrefix(raw, placementPrefix); ok && rest != "" && rest != "save" {
		if strings.HasSuffix(rest, "/export") {
			return placementPrefix + ":id/export"
		}
		return placementPrefix + ":id"
	}
	return strings.TrimSuffix(raw, "/")
}

var knownPaths = map[string]bool{
	"/":                               true,
	"/api/v1/health":                  true,
	"/api/v1/models":                  true,
	"/api/v1/ar/scan/process":         true,
	"/api/v1/ar/placement/save":       true,
	"/api/v1/ar/placement/:id":        true,
	"/api/v1/ar/placement/:id/export": true,
	"/api/v1/ar/user/scans":           true,
	"/api/v1/ar/validate-placement":   true,
	"/api/v1/ai/product-search":       true,
	"/api/v1/ai/room-analysis":        true,
	"/api/v1/ai/style-suggestions":    true,
	"/api/v1/user/profile":            true,
	"/api/v1/user/designs":            true,
}
