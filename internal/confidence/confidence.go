// Package confidence converts variance, direction stability, and sample
// count into bounded [0,1] trust scores for the adaptation paths.
package confidence

import "github.com/danielpatrickdp/adaptive-difficulty/internal/interp"

// #region types

// Score is a confidence estimate with its three components, each in [0,1].
// Total is the unweighted mean of the components.
type Score struct {
	Total     float64
	Variance  float64
	Direction float64
	History   float64
}

// Config holds the confidence component baselines.
type Config struct {
	// VarianceScale is the variance at which variance-confidence bottoms
	// out at 0.
	VarianceScale float64 `yaml:"variance_scale"`
	// DirectionBaseline is the stable-round count at which
	// direction-confidence saturates at 1.
	DirectionBaseline int `yaml:"direction_baseline"`
	// HistoryBaseline is the sample count at which global
	// history-confidence saturates. Fixed at 10 independent of the history
	// window size: enlarging the window for better trend estimation must
	// not slow confidence growth.
	HistoryBaseline int `yaml:"history_baseline"`
	// MinProfileSamples is the per-axis sample count at which local
	// history-confidence saturates.
	MinProfileSamples int `yaml:"min_profile_samples"`
}

// DefaultConfig returns the standard confidence baselines.
func DefaultConfig() Config {
	return Config{
		VarianceScale:     0.5,
		DirectionBaseline: 5,
		HistoryBaseline:   10,
		MinProfileSamples: 15,
	}
}

// #endregion types

// #region global

// Global estimates confidence from the global performance history: its
// variance, the hysteresis gate's stable-round count, and the history size.
// An empty history returns the neutral default of 0.5.
func Global(variance float64, stableRounds, historySize int, cfg Config) Score {
	if historySize == 0 {
		return neutral()
	}
	return compose(variance, stableRounds, historySize, cfg.HistoryBaseline, cfg)
}

// #endregion global

// #region local

// Local estimates per-axis confidence from that axis's profile alone: the
// variance of its recorded performances, its own direction stability, and
// its sample count against the minimum-data threshold. It deliberately
// never reads the global history, keeping the two adaptation paths
// independent. Arguments follow Global's ordering, sample count last.
func Local(variance float64, stableRounds, samples int, cfg Config) Score {
	if samples == 0 {
		return neutral()
	}
	return compose(variance, stableRounds, samples, cfg.MinProfileSamples, cfg)
}

// #endregion local

// #region helpers

func compose(variance float64, stableRounds, samples, sampleBaseline int, cfg Config) Score {
	s := Score{
		Variance:  varianceConfidence(variance, cfg.VarianceScale),
		Direction: ratioConfidence(stableRounds, cfg.DirectionBaseline),
		History:   ratioConfidence(samples, sampleBaseline),
	}
	s.Total = (s.Variance + s.Direction + s.History) / 3
	return s
}

func varianceConfidence(variance, scale float64) float64 {
	if scale <= 0 {
		return 1
	}
	return interp.Clamp01(1 - interp.Clamp01(variance/scale))
}

func ratioConfidence(count, baseline int) float64 {
	if baseline <= 0 {
		return 1
	}
	return interp.Clamp01(float64(count) / float64(baseline))
}

func neutral() Score {
	return Score{Total: 0.5, Variance: 0.5, Direction: 0.5, History: 0.5}
}

// #endregion helpers
