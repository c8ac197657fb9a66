// Package phase derives the warmup-vs-standard session phase and the
// parameter scaling that comes with it.
package phase

import (
	"math"

	"github.com/danielpatrickdp/adaptive-difficulty/internal/interp"
)

// #region types

// Phase names the session portion.
type Phase int

const (
	Warmup Phase = iota
	Standard
)

// String returns the canonical phase name.
func (p Phase) String() string {
	if p == Warmup {
		return "warmup"
	}
	return "standard"
}

// State is the per-round phase output: which phase, how far through warmup,
// and the parameters the controller should use this round.
type State struct {
	Phase          Phase
	Progress       float64
	Target         float64
	RateMultiplier float64
}

// #endregion types

// #region config

// Config holds the warmup parameters.
type Config struct {
	// WarmupProportion is the fraction of expected session rounds spent
	// warming up.
	WarmupProportion float64 `yaml:"warmup_proportion"`
	// ExpectedRounds is the nominal session length in rounds.
	ExpectedRounds int `yaml:"expected_rounds"`
	// WarmupTarget and StandardTarget are the performance set-points per
	// phase; warmup relaxes difficulty by demanding more success.
	WarmupTarget   float64 `yaml:"warmup_target"`
	StandardTarget float64 `yaml:"standard_target"`
	// WarmupRateMultiplier speeds adaptation while warming up.
	WarmupRateMultiplier float64 `yaml:"warmup_rate_multiplier"`
	// WarmupPositionScale shrinks the starting positions of a fresh
	// session.
	WarmupPositionScale float64 `yaml:"warmup_position_scale"`
}

// DefaultConfig returns the standard phase parameters.
func DefaultConfig() Config {
	return Config{
		WarmupProportion:     0.25,
		ExpectedRounds:       20,
		WarmupTarget:         0.60,
		StandardTarget:       0.50,
		WarmupRateMultiplier: 1.7,
		WarmupPositionScale:  0.85,
	}
}

// #endregion config

// #region manager

// Manager selects the phase for each round. Warmup is scoped to a single
// session and is never persisted; the phase only swaps targets and rates,
// positions carry across the transition untouched.
type Manager struct {
	cfg Config
}

// NewManager creates a phase manager.
func NewManager(cfg Config) *Manager {
	return &Manager{cfg: cfg}
}

// WarmupRounds returns the number of rounds in the warmup phase.
func (m *Manager) WarmupRounds() int {
	return int(math.Ceil(m.cfg.WarmupProportion * float64(m.cfg.ExpectedRounds)))
}

// At returns the phase state for a zero-based round index.
func (m *Manager) At(round int) State {
	warmup := m.WarmupRounds()
	if warmup <= 0 || round >= warmup {
		return State{
			Phase:          Standard,
			Progress:       1,
			Target:         m.cfg.StandardTarget,
			RateMultiplier: 1,
		}
	}
	return State{
		Phase:          Warmup,
		Progress:       interp.Clamp01(float64(round) / float64(warmup)),
		Target:         m.cfg.WarmupTarget,
		RateMultiplier: m.cfg.WarmupRateMultiplier,
	}
}

// PositionScale returns the multiplier applied to fresh-session starting
// positions.
func (m *Manager) PositionScale() float64 {
	if m.WarmupRounds() <= 0 {
		return 1
	}
	return m.cfg.WarmupPositionScale
}

// #endregion manager
