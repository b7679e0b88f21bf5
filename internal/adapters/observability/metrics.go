package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ExternalRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "appstore", Name: "external_requests_total", Help: "Outbound storefront requests."},
		[]string{"endpoint", "status"},
	)
	ExternalLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "appstore", Name: "external_request_duration_seconds",
			Help:    "Outbound request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)
	PagesScanned = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "appstore", Name: "pages_scanned_total", Help: "Review pages fetched and decoded."},
	)
	PagesFailed = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "appstore", Name: "pages_failed_total", Help: "Review pages dropped after a fetch or decode failure."},
	)
	ReviewsCollected = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "appstore", Name: "reviews_collected_total", Help: "Reviews accumulated across scanned pages."},
	)
	CacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "appstore", Name: "cache_events_total", Help: "Cache hits/misses/sets/dels."},
		[]string{"cache", "event"}, // event: hit|miss|set|del
	)
)

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(ExternalRequests, ExternalLatency, PagesScanned, PagesFailed, ReviewsCollected, CacheEvents)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveExternal(endpoint string, status int, dur time.Duration) {
	ExternalRequests.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
	ExternalLatency.WithLabelValues(endpoint).Observe(dur.Seconds())
}

func ObservePage(reviews int, failed bool) {
	if failed {
		PagesFailed.Inc()
		return
	}
	PagesScanned.Inc()
	ReviewsCollected.Add(float64(reviews))
}

func ObserveCache(cache, event string) { // event: hit|miss|set|del
	CacheEvents.WithLabelValues(cache, event).Inc()
}
