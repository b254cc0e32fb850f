package stats

import (
	"sync/atomic"
	"time"
)

// Tracker aggregates what a server under test observed: request counts and
// a latency histogram. Safe for concurrent handlers.
type Tracker struct {
	Requests uint64
	Failures uint64

	// Latencies in microseconds
	Latency *SafeHistogram
}

func NewTracker() *Tracker {
	return &Tracker{Latency: NewSafeHistogram()}
}

func (t *Tracker) Observe(success bool, latency time.Duration) {
	atomic.AddUint64(&t.Requests, 1)
	if !success {
		atomic.AddUint64(&t.Failures, 1)
	}
	t.Latency.RecordValue(latency.Microseconds())
}

// Snapshot is a point-in-time copy cheap enough to serialize.
type Snapshot struct {
	Requests uint64  `json:"requests"`
	Failures uint64  `json:"failures"`
	P50Ms    float64 `json:"p50_ms"`
	P90Ms    float64 `json:"p90_ms"`
	P99Ms    float64 `json:"p99_ms"`
	MaxMs    float64 `json:"max_ms"`
	MeanMs   float64 `json:"mean_ms"`
}

func (t *Tracker) Snapshot() Snapshot {
	return Snapshot{
		Requests: atomic.LoadUint64(&t.Requests),
		Failures: atomic.LoadUint64(&t.Failures),
		P50Ms:    float64(t.Latency.ValueAtQuantile(50)) / 1000.0,
		P90Ms:    float64(t.Latency.ValueAtQuantile(90)) / 1000.0,
		P99Ms:    float64(t.Latency.ValueAtQuantile(99)) / 1000.0,
		MaxMs:    float64(t.Latency.Max()) / 1000.0,
		MeanMs:   t.Latency.Mean() / 1000.0,
	}
}
