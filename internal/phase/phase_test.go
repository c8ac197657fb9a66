package phase

import "testing"

func TestWarmupSpan(t *testing.T) {
	m := NewManager(DefaultConfig())
	if got := m.WarmupRounds(); got != 5 {
		t.Fatalf("warmup rounds = %d, want 5", got)
	}

	s := m.At(0)
	if s.Phase != Warmup {
		t.Fatalf("round 0 phase = %s", s.Phase)
	}
	if s.Target != 0.60 || s.RateMultiplier != 1.7 {
		t.Fatalf("warmup params = %+v", s)
	}

	s = m.At(5)
	if s.Phase != Standard {
		t.Fatalf("round 5 phase = %s, want standard", s.Phase)
	}
	if s.Target != 0.50 || s.RateMultiplier != 1 {
		t.Fatalf("standard params = %+v", s)
	}
}

func TestProgressFraction(t *testing.T) {
	m := NewManager(DefaultConfig())
	if got := m.At(0).Progress; got != 0 {
		t.Fatalf("progress at round 0 = %f", got)
	}
	if got := m.At(4).Progress; got != 0.8 {
		t.Fatalf("progress at round 4 = %f", got)
	}
	if got := m.At(100).Progress; got != 1 {
		t.Fatalf("progress past warmup = %f", got)
	}
}

func TestZeroWarmupProportion(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WarmupProportion = 0
	m := NewManager(cfg)
	if m.At(0).Phase != Standard {
		t.Fatal("zero proportion should start in standard phase")
	}
	if m.PositionScale() != 1 {
		t.Fatal("zero proportion should not scale positions")
	}
}

func TestPositionScale(t *testing.T) {
	m := NewManager(DefaultConfig())
	if got := m.PositionScale(); got != 0.85 {
		t.Fatalf("position scale = %f", got)
	}
}
