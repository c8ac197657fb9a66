// Package pdcontrol implements the per-axis PD adaptation path: a
// proportional term from the performance gap, a derivative-like dampening
// term from the profile slope, and deterministic forced exploration once an
// axis converges.
package pdcontrol

import (
	"math"

	"github.com/danielpatrickdp/adaptive-difficulty/internal/axis"
	"github.com/danielpatrickdp/adaptive-difficulty/internal/confidence"
	"github.com/danielpatrickdp/adaptive-difficulty/internal/interp"
)

// #region config

// Config holds the PD-path parameters.
type Config struct {
	// Target is the desired per-axis performance level.
	Target float64 `yaml:"target"`
	// MinDataPoints is the profile size below which an axis is skipped.
	MinDataPoints int `yaml:"min_data_points"`
	// SlopeDampening scales the derivative term: steeper recent trends
	// shrink the step.
	SlopeDampening float64 `yaml:"slope_dampening"`
	// MaxSignalPerRound bounds any single round's difficulty jump.
	MaxSignalPerRound float64 `yaml:"max_signal_per_round"`
	// HardenMultiplier and EaseMultiplier make adaptation asymmetric:
	// ease fast, harden cautiously.
	HardenMultiplier float64 `yaml:"harden_multiplier"`
	EaseMultiplier   float64 `yaml:"ease_multiplier"`
	// ConvergenceThreshold and ConvergenceDuration detect a converged
	// axis; ExplorationNudge is the fixed signal injected to keep its
	// data varying.
	ConvergenceThreshold float64 `yaml:"convergence_threshold"`
	ConvergenceDuration  int     `yaml:"convergence_duration"`
	ExplorationNudge     float64 `yaml:"exploration_nudge"`

	Confidence confidence.Config `yaml:"confidence"`
}

// DefaultConfig returns the standard PD parameters.
func DefaultConfig() Config {
	return Config{
		Target:               0.8,
		MinDataPoints:        15,
		SlopeDampening:       10,
		MaxSignalPerRound:    0.15,
		HardenMultiplier:     0.6,
		EaseMultiplier:       1.0,
		ConvergenceThreshold: 0.01,
		ConvergenceDuration:  5,
		ExplorationNudge:     0.03,
		Confidence:           confidence.DefaultConfig(),
	}
}

// #endregion config

// #region types

// Input carries one axis's round data into the controller.
type Input struct {
	Axis axis.Axis
	// Rate is the arousal-gated base rate for this axis.
	Rate float64
	// RateMultiplier is the session-phase scaling (warmup > 1).
	RateMultiplier float64
	// WeightedAvg, WeightedSlope, and Variance come from the axis profile.
	WeightedAvg   float64
	WeightedSlope float64
	Variance      float64
	// Samples is the profile size, checked against MinDataPoints.
	Samples int
	// Position is the axis's current normalized position, used to choose
	// the exploration nudge direction.
	Position float64
}

// Result is one axis's evaluated round.
type Result struct {
	Signal   float64
	Skipped  bool
	Explored bool

	Gap          float64
	GainModifier float64
	Confidence   confidence.Score
}

// #endregion types

// #region controller

// Controller holds the per-axis convergence and direction-stability state
// of the PD path.
type Controller struct {
	cfg         Config
	convergence [axis.NumAxes]int
	stable      [axis.NumAxes]int
	lastSign    [axis.NumAxes]int
}

// New creates a PD controller.
func New(cfg Config) *Controller {
	return &Controller{cfg: cfg}
}

// Convergence returns one axis's convergence counter.
func (c *Controller) Convergence(a axis.Axis) int {
	return c.convergence[a]
}

// RestoreConvergence reinstates persisted convergence counters.
func (c *Controller) RestoreConvergence(counters [axis.NumAxes]int) {
	for i, n := range counters {
		if n < 0 {
			n = 0
		}
		c.convergence[i] = n
	}
}

// ConvergenceCounters returns a copy of all convergence counters.
func (c *Controller) ConvergenceCounters() [axis.NumAxes]int {
	return c.convergence
}

// #endregion controller

// #region evaluate

// Evaluate computes one axis's adaptation signal for the round. An axis
// without enough profile data is skipped with no state change; the caller
// falls back to the global path when every axis is skipped.
func (c *Controller) Evaluate(in Input) Result {
	if in.Samples < c.cfg.MinDataPoints {
		return Result{Skipped: true}
	}

	a := in.Axis
	conf := confidence.Local(in.Variance, c.stable[a], in.Samples, c.cfg.Confidence)

	gap := in.WeightedAvg - c.cfg.Target

	// Direction-specific rate: harden cautiously, ease fast.
	mult := c.cfg.EaseMultiplier
	if gap > 0 {
		mult = c.cfg.HardenMultiplier
	}
	rate := in.Rate * conf.Total * mult * in.RateMultiplier

	gain := 1 / (1 + math.Abs(in.WeightedSlope)*c.cfg.SlopeDampening)

	raw := gap * rate * gain
	signal := interp.Clamp(raw, -c.cfg.MaxSignalPerRound, c.cfg.MaxSignalPerRound)

	c.trackDirection(a, signal)

	res := Result{
		Signal:       signal,
		Gap:          gap,
		GainModifier: gain,
		Confidence:   conf,
	}

	// Forced exploration: a converged axis gets one deterministic nudge
	// away from the nearer position boundary, then the counter resets.
	if math.Abs(signal) < c.cfg.ConvergenceThreshold {
		c.convergence[a]++
		if c.convergence[a] >= c.cfg.ConvergenceDuration {
			c.convergence[a] = 0
			nudge := c.cfg.ExplorationNudge
			if in.Position >= 0.5 {
				nudge = -nudge
			}
			res.Signal = nudge
			res.Explored = true
		}
	} else {
		c.convergence[a] = 0
	}

	return res
}

// trackDirection maintains the per-axis stable-round counter feeding local
// confidence.
func (c *Controller) trackDirection(a axis.Axis, signal float64) {
	sign := 0
	if signal > 0 {
		sign = 1
	} else if signal < 0 {
		sign = -1
	}
	if sign == 0 || sign == c.lastSign[a] {
		c.stable[a]++
		return
	}
	c.lastSign[a] = sign
	c.stable[a] = 0
}

// #endregion evaluate
