package stats_test

import (
	"testing"
	"time"

	"breakcheck/internal/stats"
)

func TestTrackerCountsAndPercentiles(t *testing.T) {
	tr := stats.NewTracker()

	tr.Observe(true, 10*time.Millisecond)
	tr.Observe(true, 20*time.Millisecond)
	tr.Observe(false, 200*time.Millisecond)

	snap := tr.Snapshot()
	if snap.Requests != 3 {
		t.Errorf("requests = %d, want 3", snap.Requests)
	}
	if snap.Failures != 1 {
		t.Errorf("failures = %d, want 1", snap.Failures)
	}
	if snap.P50Ms <= 0 {
		t.Errorf("p50 should be positive, got %f", snap.P50Ms)
	}
	if snap.MaxMs < snap.P50Ms {
		t.Errorf("max %f below p50 %f", snap.MaxMs, snap.P50Ms)
	}
	// hdrhistogram is approximate at 3 significant figures
	if snap.MaxMs < 190 || snap.MaxMs > 210 {
		t.Errorf("max %f not near 200ms", snap.MaxMs)
	}
}

func TestSafeHistogramConcurrent(t *testing.T) {
	h := stats.NewSafeHistogram()

	done := make(chan struct{})
	for i := 0; i < 4; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := int64(1); j <= 1000; j++ {
				h.RecordValue(j)
			}
		}()
	}
	for i := 0; i < 4; i++ {
		<-done
	}

	if max := h.Max(); max < 990 || max > 1010 {
		t.Errorf("max = %d, want ~1000", max)
	}
}
