package service

import (
	"fmt"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Reference data reload outcomes.
const (
	ReloadCommitted  = "committed"
	ReloadSuperseded = "superseded"
	ReloadFailed     = "failed"
)

// MetricsSnapshot is a lightweight view of the counters for the summary endpoint.
type MetricsSnapshot struct {
	RequestsTotal            uint64    `json:"requests_total"`
	AverageRequestDurationMs float64   `json:"average_request_duration_ms"`
	CacheHits                uint64    `json:"cache_hits"`
	CacheMisses              uint64    `json:"cache_misses"`
	CacheHitRatio            float64   `json:"cache_hit_ratio"`
	EnrollmentMutations      uint64    `json:"enrollment_mutations"`
	CapacityConflicts        uint64    `json:"capacity_conflicts"`
	ActiveYearSwitches       uint64    `json:"active_year_switches"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generated_at"`
}

// MetricsService wraps the Prometheus collectors of the enrollment engine.
type MetricsService struct {
	registry            *prometheus.Registry
	handler             http.Handler
	requestDuration     *prometheus.HistogramVec
	requestTotal        *prometheus.CounterVec
	cacheLatency        prometheus.Observer
	cacheWrite          prometheus.Observer
	cacheHitRatio       prometheus.Gauge
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	enrollmentMutations *prometheus.CounterVec
	capacityConflicts   prometheus.Counter
	referenceReloads    *prometheus.CounterVec
	activeYearSwitches  prometheus.Counter

	cacheHitCount        uint64
	cacheMissCount       uint64
	requestCount         uint64
	requestDurationTotal uint64
	mutationCount        uint64
	conflictCount        uint64
	switchCount          uint64
}

// NewMetricsService registers the collectors on a private registry.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	cacheLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cache_latency_seconds",
		Help:    "Latency for cache lookups",
		Buckets: prometheus.DefBuckets,
	})

	cacheWrite := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cache_write_seconds",
		Help:    "Latency for cache writes",
		Buckets: prometheus.DefBuckets,
	})

	cacheHitRatio := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "cache_hit_ratio",
		Help: "Ratio of cache hits to total cache lookups",
	})

	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_hits_total",
		Help: "Total cache hits",
	})

	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_misses_total",
		Help: "Total cache misses",
	})

	enrollmentMutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "enrollment_mutations_total",
		Help: "Enrollment mutations by operation and outcome",
	}, []string{"operation", "outcome"})

	capacityConflicts := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "enrollment_capacity_conflicts_total",
		Help: "Enrollment writes rejected because the class was full at commit time",
	})

	referenceReloads := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "reference_data_reloads_total",
		Help: "Reference data reloads by outcome",
	}, []string{"outcome"})

	activeYearSwitches := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "active_academic_year_switches_total",
		Help: "Number of times the active academic year changed",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, cacheLatency, cacheWrite, cacheHitRatio, cacheHits, cacheMisses,
		enrollmentMutations, capacityConflicts, referenceReloads, activeYearSwitches, goroutines)

	return &MetricsService{
		registry:            registry,
		handler:             promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration:     requestDuration,
		requestTotal:        requestTotal,
		cacheLatency:        cacheLatency,
		cacheWrite:          cacheWrite,
		cacheHitRatio:       cacheHitRatio,
		cacheHits:           cacheHits,
		cacheMisses:         cacheMisses,
		enrollmentMutations: enrollmentMutations,
		capacityConflicts:   capacityConflicts,
		referenceReloads:    referenceReloads,
		activeYearSwitches:  activeYearSwitches,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
	atomic.AddUint64(&m.requestCount, 1)
	atomic.AddUint64(&m.requestDurationTotal, uint64(duration.Nanoseconds()))
}

// RecordCacheOperation records cache hit/miss metrics and updates hit ratio.
func (m *MetricsService) RecordCacheOperation(hit bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheLatency.Observe(duration.Seconds())
	if hit {
		m.cacheHits.Inc()
		atomic.AddUint64(&m.cacheHitCount, 1)
	} else {
		m.cacheMisses.Inc()
		atomic.AddUint64(&m.cacheMissCount, 1)
	}
	hits := atomic.LoadUint64(&m.cacheHitCount)
	total := hits + atomic.LoadUint64(&m.cacheMissCount)
	if total > 0 {
		m.cacheHitRatio.Set(float64(hits) / float64(total))
	}
}

// ObserveCacheWrite tracks the duration for cache writes.
func (m *MetricsService) ObserveCacheWrite(duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheWrite.Observe(duration.Seconds())
}

// RecordEnrollmentMutation counts a create/edit/renew/cancel/transfer outcome.
func (m *MetricsService) RecordEnrollmentMutation(operation, outcome string) {
	if m == nil {
		return
	}
	m.enrollmentMutations.WithLabelValues(operation, outcome).Inc()
	atomic.AddUint64(&m.mutationCount, 1)
}

// RecordCapacityConflict counts a seat race lost at commit time.
func (m *MetricsService) RecordCapacityConflict() {
	if m == nil {
		return
	}
	m.capacityConflicts.Inc()
	atomic.AddUint64(&m.conflictCount, 1)
}

// RecordReferenceReload counts a reference data reload outcome.
func (m *MetricsService) RecordReferenceReload(outcome string) {
	if m == nil {
		return
	}
	m.referenceReloads.WithLabelValues(outcome).Inc()
}

// RecordActiveYearSwitch counts a change of the active academic year.
func (m *MetricsService) RecordActiveYearSwitch() {
	if m == nil {
		return
	}
	m.activeYearSwitches.Inc()
	atomic.AddUint64(&m.switchCount, 1)
}

// Snapshot returns aggregated counters.
func (m *MetricsService) Snapshot() MetricsSnapshot {
	if m == nil {
		return MetricsSnapshot{}
	}
	hits := atomic.LoadUint64(&m.cacheHitCount)
	misses := atomic.LoadUint64(&m.cacheMissCount)
	requests := atomic.LoadUint64(&m.requestCount)
	reqDuration := atomic.LoadUint64(&m.requestDurationTotal)

	var cacheRatio float64
	if hits+misses > 0 {
		cacheRatio = float64(hits) / float64(hits+misses)
	}
	var avgRequestMs float64
	if requests > 0 {
		avgRequestMs = float64(reqDuration) / float64(requests) / float64(time.Millisecond)
	}

	return MetricsSnapshot{
		RequestsTotal:            requests,
		AverageRequestDurationMs: avgRequestMs,
		CacheHits:                hits,
		CacheMisses:              misses,
		CacheHitRatio:            cacheRatio,
		EnrollmentMutations:      atomic.LoadUint64(&m.mutationCount),
		CapacityConflicts:        atomic.LoadUint64(&m.conflictCount),
		ActiveYearSwitches:       atomic.LoadUint64(&m.switchCount),
		Goroutines:               runtime.NumGoroutine(),
		GeneratedAt:              time.Now().UTC(),
	}
}
