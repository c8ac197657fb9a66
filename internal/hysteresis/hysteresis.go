// Package hysteresis implements the direction-memory gate that keeps the
// global adaptation signal from flapping around the performance target.
package hysteresis

import (
	"fmt"

	"github.com/danielpatrickdp/adaptive-difficulty/internal/interp"
)

// #region direction

// Direction is the remembered sense of the global adaptation signal.
type Direction int

const (
	Stable Direction = iota
	Increasing
	Decreasing
)

// String returns the canonical direction name.
func (d Direction) String() string {
	switch d {
	case Increasing:
		return "increasing"
	case Decreasing:
		return "decreasing"
	case Stable:
		return "stable"
	}
	return fmt.Sprintf("direction(%d)", int(d))
}

// ParseDirection maps a canonical name back to its Direction.
func ParseDirection(name string) (Direction, error) {
	switch name {
	case "increasing":
		return Increasing, nil
	case "decreasing":
		return Decreasing, nil
	case "stable":
		return Stable, nil
	}
	return Stable, fmt.Errorf("unknown direction %q", name)
}

// #endregion direction

// #region config

// Config holds the gate thresholds.
type Config struct {
	Target            float64 `yaml:"target"`
	IncreaseThreshold float64 `yaml:"increase_threshold"`
	DecreaseThreshold float64 `yaml:"decrease_threshold"`
	MinStableRounds   int     `yaml:"min_stable_rounds"`
}

// DefaultConfig returns the standard gate thresholds.
func DefaultConfig() Config {
	return Config{
		Target:            0.5,
		IncreaseThreshold: 0.55,
		DecreaseThreshold: 0.45,
		MinStableRounds:   2,
	}
}

// #endregion config

// #region gate

// Gate suppresses adaptation-signal reversals until the current direction
// has held for a minimum number of rounds.
type Gate struct {
	cfg          Config
	last         Direction
	stableRounds int
	suppressed   bool
}

// NewGate creates a gate with the given configuration.
func NewGate(cfg Config) *Gate {
	return &Gate{cfg: cfg}
}

// Direction returns the remembered signal direction.
func (g *Gate) Direction() Direction {
	return g.last
}

// StableRounds returns how many rounds the current direction has held.
func (g *Gate) StableRounds() int {
	return g.stableRounds
}

// Suppressed reports whether the most recent evaluation suppressed a
// reversal.
func (g *Gate) Suppressed() bool {
	return g.suppressed
}

// Restore reinstates persisted direction memory.
func (g *Gate) Restore(d Direction, stableRounds int) {
	g.last = d
	if stableRounds < 0 {
		stableRounds = 0
	}
	g.stableRounds = stableRounds
}

// Evaluate gates an adaptive score against the configured target. See
// EvaluateAt.
func (g *Gate) Evaluate(score float64) float64 {
	return g.EvaluateAt(score, g.cfg.Target)
}

// EvaluateAt gates an adaptive score against an overridden target (the
// warmup phase raises it), shifting both thresholds by the same offset.
// The emitted signal is (score-target)*2 clamped to [-1,1]; a reversal
// attempted before the minimum stable rounds have elapsed emits 0 and keeps
// the direction memory intact. The stable count resets only on a genuine,
// non-suppressed reversal, never on suppression or dead-zone rounds.
func (g *Gate) EvaluateAt(score, target float64) float64 {
	offset := target - g.cfg.Target
	inc := g.cfg.IncreaseThreshold + offset
	dec := g.cfg.DecreaseThreshold + offset
	g.suppressed = false

	// Suppressed reversals: crossing a threshold against the remembered
	// direction before it has held long enough.
	if score > inc && g.last == Decreasing && g.stableRounds < g.cfg.MinStableRounds {
		g.stableRounds++
		g.suppressed = true
		return 0
	}
	if score < dec && g.last == Increasing && g.stableRounds < g.cfg.MinStableRounds {
		g.stableRounds++
		g.suppressed = true
		return 0
	}

	signal := interp.Clamp((score-target)*2, -1, 1)

	switch {
	case score > inc:
		g.advance(Increasing)
	case score < dec:
		g.advance(Decreasing)
	default:
		// Dead zone: direction memory holds.
		g.stableRounds++
	}

	return signal
}

// advance commits a threshold crossing to the direction memory.
func (g *Gate) advance(d Direction) {
	if g.last == d {
		g.stableRounds++
		return
	}
	g.last = d
	g.stableRounds = 0
}

// #endregion gate
