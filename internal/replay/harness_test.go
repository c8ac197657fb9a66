package replay

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/danielpatrickdp/adaptive-difficulty/internal/config"
	"github.com/danielpatrickdp/adaptive-difficulty/internal/history"
)

func steadyRounds(n int, score float64) []Round {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rounds := make([]Round, n)
	for i := range rounds {
		rounds[i] = Round{
			RoundID: fmt.Sprintf("r%03d", i),
			At:      base.Add(time.Duration(i) * 30 * time.Second),
			Components: history.ComponentScores{
				TaskSuccess:      score,
				TargetRatio:      score,
				ReactionTime:     score,
				ResponseDuration: score,
				TapAccuracy:      score,
			},
			Arousal: 0.5,
		}
	}
	return rounds
}

func TestHarnessRunsAllRounds(t *testing.T) {
	h := NewHarness(config.Default(), nil)
	sum, err := h.Run(Fixture{Rounds: steadyRounds(30, 0.9)})
	require.NoError(t, err)
	require.Equal(t, 30, sum.Rounds)
	require.Len(t, sum.Decisions, 30)
	for _, d := range sum.Decisions {
		require.NotEmpty(t, d.Path)
	}
}

func TestHarnessDeterministic(t *testing.T) {
	f := Fixture{Rounds: steadyRounds(40, 0.85)}
	h := NewHarness(config.Default(), nil)

	first, err := h.Run(f)
	require.NoError(t, err)
	second, err := h.Run(f)
	require.NoError(t, err)

	require.Equal(t, first.Final, second.Final)
	require.Equal(t, first.Decisions, second.Decisions)
}

func TestHarnessReportsMismatches(t *testing.T) {
	f := Fixture{
		Rounds: steadyRounds(3, 0.9),
		Expected: []ExpectedRound{
			{RoundID: "r000", Decision: "pd"},
		},
	}
	// Default strategy is budget, so round r000 cannot take the pd path.
	h := NewHarness(config.Default(), nil)
	sum, err := h.Run(f)
	require.NoError(t, err)
	require.Len(t, sum.Mismatches, 1)
	require.Contains(t, sum.Mismatches[0], "r000")
}

func TestHarnessRejectsUnknownAxisName(t *testing.T) {
	rounds := steadyRounds(1, 0.5)
	rounds[0].AxisValues = map[string]float64{"gravity": 9.8}
	h := NewHarness(config.Default(), nil)
	_, err := h.Run(Fixture{Rounds: rounds})
	require.Error(t, err)
}

func TestHarnessProfilingFallbackCount(t *testing.T) {
	cfg := config.Default()
	cfg.Strategy = config.StrategyProfiling
	h := NewHarness(cfg, nil)

	sum, err := h.Run(Fixture{Rounds: steadyRounds(10, 0.7)})
	require.NoError(t, err)
	// Below the per-axis minimum sample count every round falls back.
	require.Equal(t, 10, sum.Fallbacks)
}
