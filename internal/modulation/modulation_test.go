package modulation

import (
	"math"
	"testing"

	"github.com/danielpatrickdp/adaptive-difficulty/internal/axis"
)

func TestDirectionalSmoothing(t *testing.T) {
	ap := NewApplier(DefaultConfig())

	up := ap.Apply(axis.BallSpeed, 0.5, 0.2, false)
	if math.Abs(up-0.6) > 1e-9 { // 0.2 * harden 0.5
		t.Fatalf("hardened position = %f, want 0.6", up)
	}

	down := ap.Apply(axis.BallSpeed, 0.5, -0.2, false)
	if math.Abs(down-0.36) > 1e-9 { // -0.2 * ease 0.7
		t.Fatalf("eased position = %f, want 0.36", down)
	}
}

func TestBypassSkipsSmoothing(t *testing.T) {
	ap := NewApplier(DefaultConfig())
	got := ap.Apply(axis.BallSpeed, 0.5, 0.2, true)
	if math.Abs(got-0.7) > 1e-9 {
		t.Fatalf("bypassed position = %f, want 0.7", got)
	}
}

func TestPositionAlwaysClamped(t *testing.T) {
	ap := NewApplier(DefaultConfig())
	for _, tc := range []struct{ pos, delta float64 }{
		{0.9, 5}, {0.1, -5}, {0.5, math.Inf(1)}, {0.5, math.Inf(-1)}, {0.5, math.NaN()},
	} {
		for _, bypass := range []bool{true, false} {
			got := ap.Apply(axis.TargetCount, tc.pos, tc.delta, bypass)
			if got < 0 || got > 1 || math.IsNaN(got) {
				t.Fatalf("position out of range: %f (pos=%f delta=%f bypass=%v)", got, tc.pos, tc.delta, bypass)
			}
		}
	}
}
