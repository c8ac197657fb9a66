package history

import (
	"math"
	"testing"
	"time"
)

func record(h *History, scores ...float64) {
	at := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	for _, s := range scores {
		h.Record(Entry{At: at, Score: s})
		at = at.Add(30 * time.Second)
	}
}

func TestWindowEviction(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WindowSize = 5
	h := New(cfg)
	record(h, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7)

	if h.Len() != 5 {
		t.Fatalf("len = %d, want 5", h.Len())
	}
	entries := h.Entries()
	if entries[0].Score != 0.3 || entries[4].Score != 0.7 {
		t.Fatalf("eviction kept wrong entries: %+v", entries)
	}
}

func TestEntriesChronological(t *testing.T) {
	h := New(DefaultConfig())
	record(h, 0.5, 0.6, 0.7)
	entries := h.Entries()
	for i := 1; i < len(entries); i++ {
		if entries[i].At.Before(entries[i-1].At) {
			t.Fatal("entries out of chronological order")
		}
	}
}

func TestMetricsAverageVariance(t *testing.T) {
	h := New(DefaultConfig())
	record(h, 0.4, 0.5, 0.6)
	m := h.Metrics()

	if math.Abs(m.Average-0.5) > 1e-9 {
		t.Fatalf("average = %f", m.Average)
	}
	// Sample variance of {0.4, 0.5, 0.6} is 0.01.
	if math.Abs(m.Variance-0.01) > 1e-9 {
		t.Fatalf("variance = %f", m.Variance)
	}
}

func TestTrendSlope(t *testing.T) {
	h := New(DefaultConfig())
	record(h, 0.1, 0.2, 0.3, 0.4)
	m := h.Metrics()
	if math.Abs(m.Trend-0.1) > 1e-9 {
		t.Fatalf("trend = %f, want 0.1 per round", m.Trend)
	}
}

func TestTrendBelowMinimum(t *testing.T) {
	h := New(DefaultConfig())
	record(h, 0.1, 0.9)
	if m := h.Metrics(); m.Trend != 0 {
		t.Fatalf("trend with 2 samples = %f, want 0", m.Trend)
	}
}

func TestAdaptiveScoreBlend(t *testing.T) {
	h := New(DefaultConfig())
	record(h, 0.5, 0.5, 0.5)
	got := h.AdaptiveScore(0.9)
	// 0.9*0.7 + 0.5*0.3 + 0*0.1 = 0.78
	if math.Abs(got-0.78) > 1e-9 {
		t.Fatalf("adaptive score = %f, want 0.78", got)
	}
}

func TestAdaptiveScoreGuards(t *testing.T) {
	h := New(DefaultConfig())
	record(h, 0.5, 0.5)
	if got := h.AdaptiveScore(0.9); got != 0.9 {
		t.Fatalf("short history should pass current through, got %f", got)
	}

	cfg := DefaultConfig()
	cfg.Enabled = false
	h2 := New(cfg)
	record(h2, 0.5, 0.5, 0.5, 0.5)
	if got := h2.AdaptiveScore(0.9); got != 0.9 {
		t.Fatalf("disabled history should pass current through, got %f", got)
	}
}

func TestAdaptiveScoreClamped(t *testing.T) {
	h := New(DefaultConfig())
	record(h, 1, 1, 1, 1)
	if got := h.AdaptiveScore(1); got != 1 {
		t.Fatalf("blend above 1 must clamp, got %f", got)
	}
}
