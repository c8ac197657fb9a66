package confidence

import (
	"math"
	"testing"
)

func TestEmptyHistoryNeutral(t *testing.T) {
	s := Global(0, 0, 0, DefaultConfig())
	if s.Total != 0.5 {
		t.Fatalf("empty history total = %f, want 0.5", s.Total)
	}
}

func TestGlobalComponents(t *testing.T) {
	cfg := DefaultConfig()
	s := Global(0.25, 5, 10, cfg)

	// variance 0.25 against scale 0.5 leaves 0.5 variance-confidence.
	if math.Abs(s.Variance-0.5) > 1e-9 {
		t.Fatalf("variance component = %f", s.Variance)
	}
	if s.Direction != 1 {
		t.Fatalf("direction component = %f, want saturated", s.Direction)
	}
	if s.History != 1 {
		t.Fatalf("history component = %f, want saturated", s.History)
	}
	want := (0.5 + 1 + 1) / 3
	if math.Abs(s.Total-want) > 1e-9 {
		t.Fatalf("total = %f, want %f", s.Total, want)
	}
}

func TestHistoryBaselineDecoupledFromWindow(t *testing.T) {
	// 10 samples saturate history-confidence regardless of how large the
	// history window is configured elsewhere.
	s := Global(0, 5, 10, DefaultConfig())
	if s.History != 1 {
		t.Fatalf("history component at baseline = %f, want 1", s.History)
	}
	s = Global(0, 5, 5, DefaultConfig())
	if math.Abs(s.History-0.5) > 1e-9 {
		t.Fatalf("history component at half baseline = %f, want 0.5", s.History)
	}
}

func TestHighVarianceZeroesComponent(t *testing.T) {
	s := Global(1.0, 0, 5, DefaultConfig())
	if s.Variance != 0 {
		t.Fatalf("variance component = %f, want 0", s.Variance)
	}
}

func TestLocalUsesProfileBaseline(t *testing.T) {
	cfg := DefaultConfig()
	s := Local(0, 0, 15, cfg)
	if s.History != 1 {
		t.Fatalf("local history component at min-data = %f, want 1", s.History)
	}
	s = Local(0, 0, 3, cfg)
	if math.Abs(s.History-0.2) > 1e-9 {
		t.Fatalf("local history component = %f, want 0.2", s.History)
	}
}

func TestLocalArgumentOrderMatchesGlobal(t *testing.T) {
	// Both constructors take stable rounds then sample count. With distinct
	// values per slot, the direction and history components pin which
	// argument fed which component.
	cfg := DefaultConfig()
	g := Global(0, 5, 5, cfg)
	l := Local(0, 5, 3, cfg)

	if g.Direction != 1 || l.Direction != 1 {
		t.Fatalf("direction components = %f / %f, want both saturated", g.Direction, l.Direction)
	}
	if math.Abs(g.History-0.5) > 1e-9 {
		t.Fatalf("global history component = %f, want 0.5", g.History)
	}
	if math.Abs(l.History-0.2) > 1e-9 {
		t.Fatalf("local history component = %f, want 0.2", l.History)
	}
}

func TestLocalEmptyNeutral(t *testing.T) {
	if s := Local(0, 0, 0, DefaultConfig()); s.Total != 0.5 {
		t.Fatalf("empty profile total = %f, want 0.5", s.Total)
	}
}

func TestScoresBounded(t *testing.T) {
	cfg := DefaultConfig()
	for _, variance := range []float64{-1, 0, 0.3, 10, math.Inf(1)} {
		for _, stable := range []int{0, 3, 100} {
			for _, n := range []int{0, 1, 15, 500} {
				for _, s := range []Score{Global(variance, stable, n, cfg), Local(variance, stable, n, cfg)} {
					for _, v := range []float64{s.Total, s.Variance, s.Direction, s.History} {
						if v < 0 || v > 1 || math.IsNaN(v) {
							t.Fatalf("component out of range: %+v (variance=%f stable=%d n=%d)", s, variance, stable, n)
						}
					}
				}
			}
		}
	}
}
