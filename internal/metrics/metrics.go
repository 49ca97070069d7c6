// file: internal/metrics/metrics.go
// version: 1.0.0
// guid: 1c2d3e4f-5a6b-4c7d-8e9f-0a1b2c3d4e5f

package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	computeStarted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pokematch",
		Name:      "computes_started_total",
		Help:      "Total number of match computations started by dataset",
	}, []string{"dataset"})
	computeCompleted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pokematch",
		Name:      "computes_completed_total",
		Help:      "Total number of match computations successfully completed by dataset",
	}, []string{"dataset"})
	computeFailed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pokematch",
		Name:      "computes_failed_total",
		Help:      "Total number of match computations failed by dataset",
	}, []string{"dataset"})
	computeDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "pokematch",
		Name:      "compute_duration_seconds",
		Help:      "Histogram of match computation durations in seconds by dataset",
		Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // ~1ms up to a few seconds
	}, []string{"dataset"})

	cacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "pokematch",
		Name:      "result_cache_hits_total",
		Help:      "Total number of match results served from the cache",
	})
	cacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "pokematch",
		Name:      "result_cache_misses_total",
		Help:      "Total number of match results computed on a cache miss",
	})

	datasetsGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "pokematch",
		Name:      "datasets_total",
		Help:      "Current number of loaded datasets",
	})
	reloadsCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "pokematch",
		Name:      "catalog_reloads_total",
		Help:      "Total number of catalog reloads",
	})

	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pokematch",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests by route and status code",
	}, []string{"route", "status"})
)

// Register initializes metrics with the global Prometheus registry (idempotent)
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(computeStarted, computeCompleted, computeFailed, computeDuration,
			cacheHits, cacheMisses, datasetsGauge, reloadsCounter, httpRequests)
	})
}

// Computation lifecycle helpers
func IncComputeStarted(dataset string)   { computeStarted.WithLabelValues(dataset).Inc() }
func IncComputeCompleted(dataset string) { computeCompleted.WithLabelValues(dataset).Inc() }
func IncComputeFailed(dataset string)    { computeFailed.WithLabelValues(dataset).Inc() }
func ObserveComputeDuration(dataset string, d time.Duration) {
	computeDuration.WithLabelValues(dataset).Observe(d.Seconds())
}

func IncCacheHit()  { cacheHits.Inc() }
func IncCacheMiss() { cacheMisses.Inc() }

func SetDatasets(n int)  { datasetsGauge.Set(float64(n)) }
func IncCatalogReloads() { reloadsCounter.Inc() }

func IncHTTPRequest(route, status string) { httpRequests.WithLabelValues(route, status).Inc() }
