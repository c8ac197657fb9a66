package profile

import (
	"math"
	"testing"
	"time"

	"github.com/danielpatrickdp/adaptive-difficulty/internal/axis"
)

var base = time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)

func TestCapacityEviction(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Capacity = 3
	p := New(cfg)
	for i := 0; i < 5; i++ {
		p.Record(Sample{Value: float64(i), Performance: 0.5, At: base.Add(time.Duration(i) * time.Minute)})
	}
	if p.Len() != 3 {
		t.Fatalf("len = %d, want 3", p.Len())
	}
	if got := p.Samples()[0].Value; got != 2 {
		t.Fatalf("oldest surviving value = %f, want 2", got)
	}
}

func TestWeightedAverageUniform(t *testing.T) {
	p := New(DefaultConfig())
	for i := 0; i < 20; i++ {
		p.Record(Sample{Value: 0.5, Performance: 0.95, At: base.Add(time.Duration(i) * time.Minute)})
	}
	got := p.WeightedAverage(base.Add(time.Hour))
	if math.Abs(got-0.95) > 1e-9 {
		t.Fatalf("weighted average = %f, want 0.95", got)
	}
}

func TestWeightedAverageFavorsRecent(t *testing.T) {
	p := New(DefaultConfig())
	// Old poor performance, recent strong performance.
	p.Record(Sample{Performance: 0.2, At: base.Add(-48 * time.Hour)})
	p.Record(Sample{Performance: 0.9, At: base})
	got := p.WeightedAverage(base)
	if got < 0.7 {
		t.Fatalf("weighted average = %f, should lean toward recent 0.9", got)
	}
}

func TestHalfLifeWeighting(t *testing.T) {
	p := New(DefaultConfig())
	p.Record(Sample{Performance: 1.0, At: base.Add(-24 * time.Hour)})
	p.Record(Sample{Performance: 0.0, At: base})
	// The 24h-old sample carries exactly half the weight of the fresh one:
	// (0.5*1.0 + 1.0*0.0) / 1.5 = 1/3.
	got := p.WeightedAverage(base)
	if math.Abs(got-1.0/3.0) > 1e-9 {
		t.Fatalf("weighted average = %f, want 1/3", got)
	}
}

func TestWeightedSlopeSign(t *testing.T) {
	p := New(DefaultConfig())
	for i := 0; i < 10; i++ {
		p.Record(Sample{
			Performance: 0.5 + 0.04*float64(i),
			At:          base.Add(time.Duration(i) * time.Hour),
		})
	}
	if got := p.WeightedSlope(base.Add(10 * time.Hour)); got <= 0 {
		t.Fatalf("improving performance should give positive slope, got %f", got)
	}

	q := New(DefaultConfig())
	for i := 0; i < 10; i++ {
		q.Record(Sample{
			Performance: 0.9 - 0.04*float64(i),
			At:          base.Add(time.Duration(i) * time.Hour),
		})
	}
	if got := q.WeightedSlope(base.Add(10 * time.Hour)); got >= 0 {
		t.Fatalf("declining performance should give negative slope, got %f", got)
	}
}

func TestWeightedSlopeFlat(t *testing.T) {
	p := New(DefaultConfig())
	for i := 0; i < 5; i++ {
		p.Record(Sample{Performance: 0.7, At: base.Add(time.Duration(i) * time.Hour)})
	}
	if got := p.WeightedSlope(base.Add(5 * time.Hour)); math.Abs(got) > 1e-9 {
		t.Fatalf("flat performance slope = %f, want 0", got)
	}
}

func TestPerformanceVariance(t *testing.T) {
	p := New(DefaultConfig())
	for _, perf := range []float64{0.4, 0.5, 0.6} {
		p.Record(Sample{Performance: perf, At: base})
	}
	if got := p.PerformanceVariance(); math.Abs(got-0.01) > 1e-9 {
		t.Fatalf("variance = %f, want 0.01", got)
	}
}

func TestSetHasEveryAxis(t *testing.T) {
	s := NewSet(DefaultConfig())
	for _, a := range axis.All() {
		if s.Axis(a) == nil {
			t.Fatalf("axis %s missing profile", a)
		}
	}
	s.Record(axis.BallSpeed, Sample{Performance: 0.8, At: base})
	if s.Axis(axis.BallSpeed).Len() != 1 {
		t.Fatal("record did not reach the axis profile")
	}
	if s.Axis(axis.TargetCount).Len() != 0 {
		t.Fatal("record leaked into another axis")
	}
}
