package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/danielpatrickdp/adaptive-difficulty/internal/config"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a replay run: a recorded
// round sequence plus optional expected per-round decisions.
type Fixture struct {
	Description string          `json:"description"`
	Strategy    string          `json:"strategy,omitempty"`
	Rounds      []Round         `json:"rounds"`
	Expected    []ExpectedRound `json:"expected,omitempty"`
}

// ExpectedRound pins the decision a round must produce.
type ExpectedRound struct {
	RoundID  string `json:"round_id"`
	Decision string `json:"decision"`
}

// #endregion fixture-types

// #region load

// LoadFixture reads and validates a fixture file.
func LoadFixture(path string) (Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("read fixture: %w", err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return Fixture{}, fmt.Errorf("parse fixture: %w", err)
	}
	if len(f.Rounds) == 0 {
		return Fixture{}, fmt.Errorf("fixture %s has no rounds", path)
	}
	if f.Strategy != "" {
		switch config.Strategy(f.Strategy) {
		case config.StrategyBudget, config.StrategyProfiling:
		default:
			return Fixture{}, fmt.Errorf("fixture strategy %q unknown", f.Strategy)
		}
	}
	return f, nil
}

// Config returns the controller configuration a fixture selects: defaults,
// with the strategy overridden when the fixture names one.
func (f Fixture) Config() config.Config {
	cfg := config.Default()
	if f.Strategy != "" {
		cfg.Strategy = config.Strategy(f.Strategy)
	}
	return cfg
}

// #endregion load
