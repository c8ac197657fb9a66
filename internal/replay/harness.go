package replay

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/danielpatrickdp/adaptive-difficulty/internal/axis"
	"github.com/danielpatrickdp/adaptive-difficulty/internal/config"
	"github.com/danielpatrickdp/adaptive-difficulty/internal/controller"
	"github.com/danielpatrickdp/adaptive-difficulty/internal/history"
)

// #region round

// Round is one recorded gameplay round in fixture form.
type Round struct {
	RoundID    string                  `json:"round_id"`
	At         time.Time               `json:"at"`
	Components history.ComponentScores `json:"components"`
	Arousal    float64                 `json:"arousal"`
	AxisValues map[string]float64      `json:"axis_values,omitempty"`
}

func (r Round) outcome() (controller.Outcome, error) {
	out := controller.Outcome{
		At:         r.At,
		Components: r.Components,
		Arousal:    r.Arousal,
	}
	for name, v := range r.AxisValues {
		a, err := axis.Parse(name)
		if err != nil {
			return controller.Outcome{}, fmt.Errorf("round %s: %w", r.RoundID, err)
		}
		out.AxisValues[a] = v
	}
	return out, nil
}

// #endregion round

// #region harness

// PathExplore marks rounds where at least one axis took a convergence
// nudge, overriding the controller's own path label.
const PathExplore = "explore"

// Decision summarizes one replayed round.
type Decision struct {
	RoundID   string
	Round     int
	Score     float64
	Adaptive  float64
	Path      string
	Signal    float64
	Positions axis.Vector
}

func (d Decision) String() string {
	return fmt.Sprintf("round=%d score=%.3f adaptive=%.3f path=%s signal=%+.4f",
		d.Round, d.Score, d.Adaptive, d.Path, d.Signal)
}

// Summary aggregates a full replay run.
type Summary struct {
	Rounds     int
	Fallbacks  int
	Explored   int
	Suppressed int
	Final      axis.Vector
	Decisions  []Decision
	Mismatches []string
}

// Harness replays a recorded round sequence through a fresh controller and
// checks decisions against the fixture's expectations.
type Harness struct {
	cfg config.Config
	log *slog.Logger
}

// NewHarness builds a harness; a nil logger discards output.
func NewHarness(cfg config.Config, log *slog.Logger) *Harness {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Harness{cfg: cfg, log: log}
}

// Run replays every round of the fixture in order.
func (h *Harness) Run(f Fixture) (Summary, error) {
	ctrl, err := controller.New(h.cfg, controller.WithLogger(h.log))
	if err != nil {
		return Summary{}, fmt.Errorf("build controller: %w", err)
	}

	expected := make(map[string]string, len(f.Expected))
	for _, e := range f.Expected {
		expected[e.RoundID] = e.Decision
	}

	var sum Summary
	for i, r := range f.Rounds {
		out, err := r.outcome()
		if err != nil {
			return sum, err
		}
		res := ctrl.ReportRound(out)

		path := res.Path
		if res.Explored {
			path = PathExplore
		}
		d := Decision{
			RoundID:   r.RoundID,
			Round:     res.Round,
			Score:     res.Score,
			Adaptive:  res.AdaptiveScore,
			Path:      path,
			Signal:    res.GlobalSignal,
			Positions: res.Positions,
		}
		sum.Decisions = append(sum.Decisions, d)
		sum.Rounds++
		if res.Path == "fallback" {
			sum.Fallbacks++
		}
		if res.Explored {
			sum.Explored++
		}
		if res.Suppressed {
			sum.Suppressed++
		}

		if want, ok := expected[r.RoundID]; ok && want != path {
			sum.Mismatches = append(sum.Mismatches,
				fmt.Sprintf("round %d (%s): got %s, want %s", i, r.RoundID, path, want))
		}
		h.log.Debug("replayed round", "round", i, "path", path, "score", res.Score)
	}
	sum.Final = ctrl.Positions()
	return sum, nil
}

// #endregion harness
