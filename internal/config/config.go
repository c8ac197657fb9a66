// Package config carries the full externally supplied tuning surface of the
// difficulty manager, with defaults, YAML overrides, and construction-time
// validation.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/danielpatrickdp/adaptive-difficulty/internal/axis"
	"github.com/danielpatrickdp/adaptive-difficulty/internal/confidence"
	"github.com/danielpatrickdp/adaptive-difficulty/internal/history"
	"github.com/danielpatrickdp/adaptive-difficulty/internal/hysteresis"
	"github.com/danielpatrickdp/adaptive-difficulty/internal/modulation"
	"github.com/danielpatrickdp/adaptive-difficulty/internal/pdcontrol"
	"github.com/danielpatrickdp/adaptive-difficulty/internal/phase"
	"github.com/danielpatrickdp/adaptive-difficulty/internal/priority"
	"github.com/danielpatrickdp/adaptive-difficulty/internal/profile"
)

// #region strategy

// Strategy selects the adaptation path. It is fixed per controller
// instance; the paths never run concurrently for different axes within one
// session.
type Strategy string

const (
	// StrategyBudget is the legacy global path: hysteresis-gated signal
	// distributed across axes by weighted budget.
	StrategyBudget Strategy = "budget"
	// StrategyProfiling is the per-axis PD path with forced exploration.
	StrategyProfiling Strategy = "profiling"
)

// #endregion strategy

// #region config

// Config aggregates every tunable of the difficulty manager.
type Config struct {
	Strategy Strategy `yaml:"strategy"`

	History    history.Config    `yaml:"history"`
	Profile    profile.Config    `yaml:"profile"`
	Confidence confidence.Config `yaml:"confidence"`
	Hysteresis hysteresis.Config `yaml:"hysteresis"`
	Priority   priority.Config   `yaml:"priority"`
	PD         pdcontrol.Config  `yaml:"pd"`
	Modulation modulation.Config `yaml:"modulation"`
	Phase      phase.Config      `yaml:"phase"`

	// InitialPositions seeds a fresh session's normalized positions.
	InitialPositions axis.Vector `yaml:"initial_positions"`
	// BudgetScale converts the gated [-1,1] signal into the global
	// adaptation budget on the legacy path.
	BudgetScale float64 `yaml:"budget_scale"`
}

// Default returns the complete default configuration.
func Default() Config {
	return Config{
		Strategy:         StrategyProfiling,
		History:          history.DefaultConfig(),
		Profile:          profile.DefaultConfig(),
		Confidence:       confidence.DefaultConfig(),
		Hysteresis:       hysteresis.DefaultConfig(),
		Priority:         priority.DefaultConfig(),
		PD:               pdcontrol.DefaultConfig(),
		Modulation:       modulation.DefaultConfig(),
		Phase:            phase.DefaultConfig(),
		InitialPositions: axis.Splat(0.5),
		BudgetScale:      0.1,
	}
}

// #endregion config

// #region validate

// Validate rejects a configuration the controller could not run safely.
// This is the only fatal error path in the manager: every runtime
// insufficiency degrades to a guarded default instead.
func (c Config) Validate() error {
	switch c.Strategy {
	case StrategyBudget, StrategyProfiling:
	default:
		return fmt.Errorf("unknown strategy %q", c.Strategy)
	}

	if c.History.WindowSize <= 0 {
		return fmt.Errorf("history window size must be positive, got %d", c.History.WindowSize)
	}
	if c.History.MinSamplesForTrend < 1 {
		return fmt.Errorf("min samples for trend must be at least 1, got %d", c.History.MinSamplesForTrend)
	}
	if c.Profile.Capacity <= 0 {
		return fmt.Errorf("profile capacity must be positive, got %d", c.Profile.Capacity)
	}

	if c.Priority.TransitionEnd <= c.Priority.TransitionStart {
		return fmt.Errorf("priority transition end %.2f must exceed start %.2f",
			c.Priority.TransitionEnd, c.Priority.TransitionStart)
	}
	if c.Priority.KPITransitionEnd <= c.Priority.KPITransitionStart {
		return fmt.Errorf("kpi transition end %.2f must exceed start %.2f",
			c.Priority.KPITransitionEnd, c.Priority.KPITransitionStart)
	}

	if c.Hysteresis.DecreaseThreshold >= c.Hysteresis.IncreaseThreshold {
		return fmt.Errorf("decrease threshold %.2f must be below increase threshold %.2f",
			c.Hysteresis.DecreaseThreshold, c.Hysteresis.IncreaseThreshold)
	}
	if c.Hysteresis.Target <= c.Hysteresis.DecreaseThreshold || c.Hysteresis.Target >= c.Hysteresis.IncreaseThreshold {
		return fmt.Errorf("hysteresis target %.2f must lie between thresholds %.2f and %.2f",
			c.Hysteresis.Target, c.Hysteresis.DecreaseThreshold, c.Hysteresis.IncreaseThreshold)
	}
	if c.Hysteresis.MinStableRounds < 0 {
		return fmt.Errorf("min stable rounds must not be negative, got %d", c.Hysteresis.MinStableRounds)
	}

	if c.PD.MaxSignalPerRound <= 0 {
		return fmt.Errorf("max signal per round must be positive, got %f", c.PD.MaxSignalPerRound)
	}
	if c.PD.MinDataPoints < 1 {
		return fmt.Errorf("pd min data points must be at least 1, got %d", c.PD.MinDataPoints)
	}
	if c.PD.ConvergenceDuration < 1 {
		return fmt.Errorf("convergence duration must be at least 1, got %d", c.PD.ConvergenceDuration)
	}

	if c.Phase.WarmupProportion < 0 || c.Phase.WarmupProportion > 1 {
		return fmt.Errorf("warmup proportion must be in [0,1], got %f", c.Phase.WarmupProportion)
	}
	if c.Phase.ExpectedRounds < 1 {
		return fmt.Errorf("expected rounds must be at least 1, got %d", c.Phase.ExpectedRounds)
	}

	for i, p := range c.InitialPositions {
		if p < 0 || p > 1 {
			return fmt.Errorf("initial position for %s must be in [0,1], got %f", axis.Axis(i), p)
		}
	}

	return nil
}

// #endregion validate

// #region load

// LoadFile reads a YAML overlay on top of the defaults and validates the
// result. Fields absent from the file keep their default values.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// #endregion load
