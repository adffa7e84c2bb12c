package observability

import (
	"slices"
	"sync"
	"sync/atomic"
	"time"
)

// Metrics collects request and resolution counters for the HTTP API.
type Metrics struct {
	mu sync.Mutex

	requestTotal  atomic.Int64
	requestFailed atomic.Int64
	rateLimited   atomic.Int64

	// resolutions by base kind ("now", "epoch", "calendar")
	resolutions map[string]*atomic.Int64
	// failures by resolve error code
	failures map[string]*atomic.Int64

	// Recent durations, oldest first.
	durations    []time.Duration
	maxDurations int
}

// NewMetrics creates a new metrics collector keeping the last maxDurations samples.
func NewMetrics(maxDurations int) *Metrics {
	if maxDurations <= 0 {
		maxDurations = 1000
	}
	return &Metrics{
		resolutions:  make(map[string]*atomic.Int64),
		failures:     make(map[string]*atomic.Int64),
		durations:    make([]time.Duration, 0, maxDurations),
		maxDurations: maxDurations,
	}
}

// RecordRequest records a served request and its duration.
func (m *Metrics) RecordRequest(duration time.Duration, failed bool) {
	m.requestTotal.Add(1)
	if failed {
		m.requestFailed.Add(1)
	}

	m.mu.Lock()
	if len(m.durations) >= m.maxDurations {
		m.durations = m.durations[1:]
	}
	m.durations = append(m.durations, duration)
	m.mu.Unlock()
}

// RecordRateLimited records a request rejected by the rate limiter.
func (m *Metrics) RecordRateLimited() {
	m.rateLimited.Add(1)
}

// RecordResolution records a successful resolution by base kind.
func (m *Metrics) RecordResolution(base string) {
	m.counter(m.resolutions, base).Add(1)
}

// RecordFailure records a failed resolution by error code.
func (m *Metrics) RecordFailure(code string) {
	m.counter(m.failures, code).Add(1)
}

func (m *Metrics) counter(counters map[string]*atomic.Int64, key string) *atomic.Int64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := counters[key]
	if !ok {
		c = &atomic.Int64{}
		counters[key] = c
	}
	return c
}

// Reset resets all metrics (useful for testing).
func (m *Metrics) Reset() {
	m.requestTotal.Store(0)
	m.requestFailed.Store(0)
	m.rateLimited.Store(0)

	m.mu.Lock()
	m.resolutions = make(map[string]*atomic.Int64)
	m.failures = make(map[string]*atomic.Int64)
	m.durations = make([]time.Duration, 0, m.maxDurations)
	m.mu.Unlock()
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() *MetricsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := &MetricsSnapshot{
		RequestTotal:  m.requestTotal.Load(),
		RequestFailed: m.requestFailed.Load(),
		RateLimited:   m.rateLimited.Load(),
		Resolutions:   make(map[string]int64, len(m.resolutions)),
		Failures:      make(map[string]int64, len(m.failures)),
		DurationCount: len(m.durations),
	}
	for k, v := range m.resolutions {
		snapshot.Resolutions[k] = v.Load()
	}
	for k, v := range m.failures {
		snapshot.Failures[k] = v.Load()
	}

	if len(m.durations) > 0 {
		sorted := slices.Clone(m.durations)
		slices.Sort(sorted)
		var total time.Duration
		for _, d := range sorted {
			total += d
		}
		snapshot.AvgLatencyMs = (total / time.Duration(len(sorted))).Milliseconds()
		snapshot.P50LatencyMs = percentile(sorted, 50).Milliseconds()
		snapshot.P95LatencyMs = percentile(sorted, 95).Milliseconds()
	}
	return snapshot
}

// percentile uses the nearest-rank method on sorted samples.
func percentile(sorted []time.Duration, p int) time.Duration {
	rank := (p*len(sorted) + 99) / 100
	if rank < 1 {
		rank = 1
	}
	return sorted[rank-1]
}

// MetricsSnapshot represents a point-in-time snapshot of metrics.
type MetricsSnapshot struct {
	RequestTotal  int64            `json:"request_total"`
	RequestFailed int64            `json:"request_failed"`
	RateLimited   int64            `json:"rate_limited"`
	Resolutions   map[string]int64 `json:"resolutions"`
	Failures      map[string]int64 `json:"failures"`
	DurationCount int              `json:"duration_count"`
	AvgLatencyMs  int64            `json:"avg_latency_ms"`
	P50LatencyMs  int64            `json:"p50_latency_ms"`
	P95LatencyMs  int64            `json:"p95_latency_ms"`
}

// SuccessRate returns the success rate as a percentage (0-100).
func (s *MetricsSnapshot) SuccessRate() float64 {
	if s.RequestTotal == 0 {
		return 100.0
	}
	return float64(s.RequestTotal-s.RequestFailed) / float64(s.RequestTotal) * 100.0
}
