// Package controller implements the round-driven adaptive difficulty
// engine: it consumes one round outcome at a time, updates the history and
// per-axis profiles, runs the selected adaptation path, and commits new
// normalized positions through the modulation applier.
package controller

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/danielpatrickdp/adaptive-difficulty/internal/axis"
	"github.com/danielpatrickdp/adaptive-difficulty/internal/budget"
	"github.com/danielpatrickdp/adaptive-difficulty/internal/confidence"
	"github.com/danielpatrickdp/adaptive-difficulty/internal/config"
	"github.com/danielpatrickdp/adaptive-difficulty/internal/history"
	"github.com/danielpatrickdp/adaptive-difficulty/internal/hysteresis"
	"github.com/danielpatrickdp/adaptive-difficulty/internal/interp"
	"github.com/danielpatrickdp/adaptive-difficulty/internal/metrics"
	"github.com/danielpatrickdp/adaptive-difficulty/internal/modulation"
	"github.com/danielpatrickdp/adaptive-difficulty/internal/pdcontrol"
	"github.com/danielpatrickdp/adaptive-difficulty/internal/persist"
	"github.com/danielpatrickdp/adaptive-difficulty/internal/phase"
	"github.com/danielpatrickdp/adaptive-difficulty/internal/profile"
)

// #region types

// Outcome is one round's worth of input from the game loop.
type Outcome struct {
	// At is the round timestamp; zero means now.
	At time.Time
	// Components are the raw performance sub-scores, each in [0,1].
	Components history.ComponentScores
	// Arousal is the externally estimated state value in [0,1].
	Arousal float64
	// AxisValues are the absolute gameplay parameter values in play this
	// round, recorded into the per-axis profiles.
	AxisValues axis.Vector
}

// AxisResult is one axis's outcome for the round.
type AxisResult struct {
	Signal   float64
	Explored bool
	Skipped  bool
	Position float64
}

// RoundResult reports everything the round computed.
type RoundResult struct {
	RoundID       string
	Round         int
	Score         float64
	AdaptiveScore float64
	Confidence    confidence.Score
	Phase         phase.State

	// Path is the adaptation path taken: "pd", "budget", or "fallback"
	// (profiling strategy with no axis ready).
	Path string
	// GlobalSignal is the hysteresis-gated signal; zero on pure PD rounds.
	GlobalSignal float64
	Suppressed   bool
	Explored     bool

	Axes      [axis.NumAxes]AxisResult
	Positions axis.Vector
}

// #endregion types

// #region controller

// Controller owns all mutable adaptation state. It is a single-threaded,
// synchronous computation: exactly one round is processed to completion
// before the next is accepted, and no blocking I/O happens inside a round.
type Controller struct {
	cfg config.Config
	log *slog.Logger

	hist     *history.History
	profiles *profile.Set
	gate     *hysteresis.Gate
	pd       *pdcontrol.Controller
	dist     *budget.Distributor
	mod      *modulation.Applier
	phases   *phase.Manager

	positions axis.Vector
	round     int
}

// Option customizes controller construction.
type Option func(*Controller)

// WithLogger sets the structured logger; the default discards.
func WithLogger(log *slog.Logger) Option {
	return func(c *Controller) {
		if log != nil {
			c.log = log
		}
	}
}

// WithSnapshot restores persisted state. A nil snapshot is ignored, so the
// load path can pass its result through unconditionally.
func WithSnapshot(snap *persist.Snapshot) Option {
	return func(c *Controller) {
		c.restore(snap)
	}
}

// New validates the configuration and builds a controller. An invalid
// configuration is the only fatal condition in the manager.
func New(cfg config.Config, opts ...Option) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	c := &Controller{
		cfg:      cfg,
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		hist:     history.New(cfg.History),
		profiles: profile.NewSet(cfg.Profile),
		gate:     hysteresis.NewGate(cfg.Hysteresis),
		pd:       pdcontrol.New(cfg.PD),
		dist:     budget.NewDistributor(cfg.Priority),
		mod:      modulation.NewApplier(cfg.Modulation),
		phases:   phase.NewManager(cfg.Phase),
	}

	// Fresh sessions start from the configured positions, pulled down by
	// the warmup scale. Restored snapshots keep their positions verbatim.
	scale := c.phases.PositionScale()
	for i, p := range cfg.InitialPositions {
		c.positions[i] = interp.Clamp01(p * scale)
	}

	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Positions returns the current normalized position per axis.
func (c *Controller) Positions() axis.Vector {
	return c.positions
}

// Position returns one axis's normalized position.
func (c *Controller) Position(a axis.Axis) float64 {
	return c.positions[a]
}

// Round returns the number of rounds processed this session.
func (c *Controller) Round() int {
	return c.round
}

// Strategy returns the adaptation path this instance was built with.
func (c *Controller) Strategy() config.Strategy {
	return c.cfg.Strategy
}

// #endregion controller

// #region report-round

// ReportRound processes one round outcome and returns the committed result.
func (c *Controller) ReportRound(out Outcome) RoundResult {
	now := out.At
	if now.IsZero() {
		now = time.Now().UTC()
	}
	arousal := interp.Clamp01(out.Arousal)
	ph := c.phases.At(c.round)

	score := c.cfg.Priority.KPIWeightsAt(arousal).Blend(out.Components)
	c.hist.Record(history.Entry{At: now, Score: score, Components: out.Components, Arousal: arousal})
	for _, a := range axis.All() {
		c.profiles.Record(a, profile.Sample{Value: out.AxisValues[a], Performance: score, At: now})
	}

	m := c.hist.Metrics()
	adaptive := c.hist.AdaptiveScore(score)
	conf := confidence.Global(m.Variance, c.gate.StableRounds(), c.hist.Len(), c.cfg.Confidence)

	res := RoundResult{
		RoundID:       uuid.New().String(),
		Round:         c.round,
		Score:         score,
		AdaptiveScore: adaptive,
		Confidence:    conf,
		Phase:         ph,
	}

	switch c.cfg.Strategy {
	case config.StrategyProfiling:
		if c.profilingRound(now, arousal, ph, &res) {
			res.Path = "pd"
		} else {
			// Adaptation must never sit idle: with no axis ready, the
			// round runs the global path instead.
			c.budgetRound(adaptive, arousal, conf, ph, &res)
			res.Path = "fallback"
			metrics.FallbackRounds.Inc()
		}
	default:
		c.budgetRound(adaptive, arousal, conf, ph, &res)
		res.Path = "budget"
	}

	res.Positions = c.positions
	for _, a := range axis.All() {
		metrics.AxisPosition.WithLabelValues(a.String()).Set(c.positions[a])
	}
	metrics.RoundsTotal.WithLabelValues(res.Path).Inc()
	metrics.RoundScore.Observe(score)

	c.log.Debug("round processed",
		"round", res.Round,
		"path", res.Path,
		"phase", ph.Phase.String(),
		"score", score,
		"adaptive", adaptive,
		"arousal", arousal,
	)

	c.round++
	return res
}

// profilingRound runs the per-axis PD path. It reports whether any axis had
// enough data to evaluate.
func (c *Controller) profilingRound(now time.Time, arousal float64, ph phase.State, res *RoundResult) bool {
	rates := c.cfg.Priority.RatesAt(arousal)
	applied := false

	for _, a := range axis.All() {
		p := c.profiles.Axis(a)
		r := c.pd.Evaluate(pdcontrol.Input{
			Axis:           a,
			Rate:           rates[a],
			RateMultiplier: ph.RateMultiplier,
			WeightedAvg:    p.WeightedAverage(now),
			WeightedSlope:  p.WeightedSlope(now),
			Variance:       p.PerformanceVariance(),
			Samples:        p.Len(),
			Position:       c.positions[a],
		})
		if r.Skipped {
			metrics.SkippedAxes.WithLabelValues(a.String()).Inc()
			res.Axes[a] = AxisResult{Skipped: true, Position: c.positions[a]}
			continue
		}
		applied = true

		// The PD terms already damp the step; modulation smoothing on top
		// would over-smooth.
		c.positions[a] = c.mod.Apply(a, c.positions[a], r.Signal, true)
		if r.Explored {
			res.Explored = true
			metrics.ExplorationNudges.WithLabelValues(a.String()).Inc()
		}
		res.Axes[a] = AxisResult{Signal: r.Signal, Explored: r.Explored, Position: c.positions[a]}
	}
	return applied
}

// budgetRound runs the legacy global path: hysteresis-gated signal, scaled
// into a budget, distributed across axes, smoothed per axis.
func (c *Controller) budgetRound(adaptive, arousal float64, conf confidence.Score, ph phase.State, res *RoundResult) {
	signal := c.gate.EvaluateAt(adaptive, ph.Target)
	if c.gate.Suppressed() {
		res.Suppressed = true
		metrics.SuppressedReversals.Inc()
	}
	res.GlobalSignal = signal

	total := signal * c.cfg.BudgetScale * conf.Total * ph.RateMultiplier
	shares := c.dist.Distribute(total, arousal, c.positions)
	for _, a := range axis.All() {
		c.positions[a] = c.mod.Apply(a, c.positions[a], shares[a], false)
		res.Axes[a] = AxisResult{Signal: shares[a], Position: c.positions[a]}
	}
}

// #endregion report-round

// #region snapshot

// Snapshot produces the persistable cross-session state. It is taken
// between rounds, never during one.
func (c *Controller) Snapshot() persist.Snapshot {
	positions := make(map[string]float64, axis.NumAxes)
	profiles := make(map[string][]profile.Sample, axis.NumAxes)
	conv := make(map[string]int, axis.NumAxes)
	for _, a := range axis.All() {
		positions[a.String()] = c.positions[a]
		profiles[a.String()] = c.profiles.Axis(a).Samples()
		conv[a.String()] = c.pd.Convergence(a)
	}

	return persist.Snapshot{
		SchemaVersion: persist.SchemaVersion,
		Positions:     positions,
		Direction:     c.gate.Direction().String(),
		StableRounds:  c.gate.StableRounds(),
		History:       c.hist.Entries(),
		Profiles:      profiles,
		Convergence:   conv,
	}
}

// restore replays a migrated snapshot into the freshly built components.
// Unknown axis names are skipped so snapshots survive axis set changes.
func (c *Controller) restore(snap *persist.Snapshot) {
	if snap == nil {
		return
	}

	for name, pos := range snap.Positions {
		if a, err := axis.Parse(name); err == nil {
			c.positions[a] = interp.Clamp01(pos)
		}
	}

	dir, err := hysteresis.ParseDirection(snap.Direction)
	if err != nil {
		dir = hysteresis.Stable
	}
	c.gate.Restore(dir, snap.StableRounds)

	for _, e := range snap.History {
		c.hist.Record(e)
	}
	for name, samples := range snap.Profiles {
		a, err := axis.Parse(name)
		if err != nil {
			continue
		}
		for _, s := range samples {
			c.profiles.Record(a, s)
		}
	}

	var counters [axis.NumAxes]int
	for name, n := range snap.Convergence {
		if a, err := axis.Parse(name); err == nil {
			counters[a] = n
		}
	}
	c.pd.RestoreConvergence(counters)
}

// #endregion snapshot
