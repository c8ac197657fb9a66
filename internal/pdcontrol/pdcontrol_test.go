package pdcontrol

import (
	"math"
	"testing"

	"github.com/danielpatrickdp/adaptive-difficulty/internal/axis"
)

func baseInput() Input {
	return Input{
		Axis:           axis.BallSpeed,
		Rate:           0.1,
		RateMultiplier: 1,
		WeightedAvg:    0.95,
		WeightedSlope:  0,
		Variance:       0,
		Samples:        20,
		Position:       0.5,
	}
}

func TestSkipBelowMinData(t *testing.T) {
	c := New(DefaultConfig())
	in := baseInput()
	in.Samples = 14
	res := c.Evaluate(in)
	if !res.Skipped {
		t.Fatal("expected skip below min data points")
	}
	if c.Convergence(in.Axis) != 0 {
		t.Fatal("skip must not touch convergence state")
	}
}

func TestHardeningSignalPositive(t *testing.T) {
	c := New(DefaultConfig())
	res := c.Evaluate(baseInput())
	if res.Skipped {
		t.Fatal("unexpected skip")
	}
	if math.Abs(res.Gap-0.15) > 1e-9 {
		t.Fatalf("gap = %f, want 0.15", res.Gap)
	}
	if res.Signal <= 0 {
		t.Fatalf("exceeding target must harden, signal = %f", res.Signal)
	}
}

func TestHardenAttenuatedVersusEase(t *testing.T) {
	cfg := DefaultConfig()

	harden := New(cfg).Evaluate(baseInput())

	easeIn := baseInput()
	easeIn.WeightedAvg = 0.65 // gap -0.15, symmetric to the hardening case
	ease := New(cfg).Evaluate(easeIn)

	if ease.Signal >= 0 {
		t.Fatalf("below target must ease, signal = %f", ease.Signal)
	}
	// Same gap magnitude, so the asymmetry is exactly the 0.6 vs 1.0 rate
	// multiplier.
	ratio := harden.Signal / -ease.Signal
	if math.Abs(ratio-cfg.HardenMultiplier/cfg.EaseMultiplier) > 1e-9 {
		t.Fatalf("harden/ease ratio = %f, want %f", ratio, cfg.HardenMultiplier)
	}
}

func TestSlopeDampensSignal(t *testing.T) {
	cfg := DefaultConfig()
	flat := New(cfg).Evaluate(baseInput())

	steep := baseInput()
	steep.WeightedSlope = 0.2
	damped := New(cfg).Evaluate(steep)

	if math.Abs(damped.Signal) >= math.Abs(flat.Signal) {
		t.Fatalf("steep slope must dampen: %f vs %f", damped.Signal, flat.Signal)
	}
	wantGain := 1 / (1 + 0.2*cfg.SlopeDampening)
	if math.Abs(damped.GainModifier-wantGain) > 1e-9 {
		t.Fatalf("gain modifier = %f, want %f", damped.GainModifier, wantGain)
	}
}

func TestSignalClampedToMaxPerRound(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxSignalPerRound = 0.002
	c := New(cfg)
	res := c.Evaluate(baseInput())
	if math.Abs(res.Signal) > cfg.MaxSignalPerRound {
		t.Fatalf("|signal| = %f exceeds cap %f", math.Abs(res.Signal), cfg.MaxSignalPerRound)
	}
}

func TestForcedExplorationFiresOnceAndResets(t *testing.T) {
	cfg := DefaultConfig()
	c := New(cfg)
	in := baseInput()
	in.WeightedAvg = cfg.Target // zero gap: converged from the start
	in.Position = 0.3

	nudges := 0
	for round := 1; round <= cfg.ConvergenceDuration; round++ {
		res := c.Evaluate(in)
		if res.Explored {
			nudges++
			if round != cfg.ConvergenceDuration {
				t.Fatalf("nudge fired early at round %d", round)
			}
			if res.Signal != cfg.ExplorationNudge {
				t.Fatalf("nudge = %f, want +%f away from low boundary", res.Signal, cfg.ExplorationNudge)
			}
			if c.Convergence(in.Axis) != 0 {
				t.Fatalf("counter = %d after nudge, want 0", c.Convergence(in.Axis))
			}
		}
	}
	if nudges != 1 {
		t.Fatalf("nudges = %d, want exactly 1", nudges)
	}
}

func TestExplorationNudgeDirection(t *testing.T) {
	cfg := DefaultConfig()
	c := New(cfg)
	in := baseInput()
	in.WeightedAvg = cfg.Target
	in.Position = 0.9

	var last Result
	for i := 0; i < cfg.ConvergenceDuration; i++ {
		last = c.Evaluate(in)
	}
	if !last.Explored {
		t.Fatal("expected exploration nudge")
	}
	if last.Signal != -cfg.ExplorationNudge {
		t.Fatalf("nudge at high position = %f, want %f", last.Signal, -cfg.ExplorationNudge)
	}
}

func TestActiveSignalResetsConvergence(t *testing.T) {
	cfg := DefaultConfig()
	c := New(cfg)

	converged := baseInput()
	converged.WeightedAvg = cfg.Target
	c.Evaluate(converged)
	c.Evaluate(converged)
	if c.Convergence(converged.Axis) != 2 {
		t.Fatalf("counter = %d, want 2", c.Convergence(converged.Axis))
	}

	active := baseInput()
	active.Rate = 1 // large gap at a high rate: active signal
	c.Evaluate(active)
	if c.Convergence(converged.Axis) != 0 {
		t.Fatalf("active signal must reset counter, got %d", c.Convergence(converged.Axis))
	}
}

func TestRestoreConvergence(t *testing.T) {
	c := New(DefaultConfig())
	var counters [axis.NumAxes]int
	counters[axis.TargetCount] = 3
	c.RestoreConvergence(counters)
	if c.Convergence(axis.TargetCount) != 3 {
		t.Fatal("restore failed")
	}
	if c.ConvergenceCounters() != counters {
		t.Fatal("counters copy mismatch")
	}
}
