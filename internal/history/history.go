// Package history keeps the bounded, time-ordered buffer of round outcomes
// and derives the rolling statistics the adaptation paths consume.
package history

import (
	"time"

	"github.com/danielpatrickdp/adaptive-difficulty/internal/interp"
)

// #region types

// ComponentScores holds the raw per-round performance sub-scores supplied by
// the game loop, each in [0,1].
type ComponentScores struct {
	TaskSuccess      float64 `json:"task_success" yaml:"task_success"`
	TargetRatio      float64 `json:"target_ratio" yaml:"target_ratio"`
	ReactionTime     float64 `json:"reaction_time" yaml:"reaction_time"`
	ResponseDuration float64 `json:"response_duration" yaml:"response_duration"`
	TapAccuracy      float64 `json:"tap_accuracy" yaml:"tap_accuracy"`
}

// Entry is one recorded round outcome. Entries are immutable once recorded
// and appended in arrival order.
type Entry struct {
	At         time.Time       `json:"at"`
	Score      float64         `json:"score"`
	Components ComponentScores `json:"components"`
	Arousal    float64         `json:"arousal"`
}

// Metrics bundles the rolling statistics of the current window.
type Metrics struct {
	Average  float64
	Trend    float64
	Variance float64
}

// #endregion types

// #region config

// Config holds the history window and score-blend parameters.
type Config struct {
	Enabled            bool    `yaml:"enabled"`
	WindowSize         int     `yaml:"window_size"`
	MinSamplesForTrend int     `yaml:"min_samples_for_trend"`
	CurrentWeight      float64 `yaml:"current_weight"`
	HistoryWeight      float64 `yaml:"history_weight"`
	TrendWeight        float64 `yaml:"trend_weight"`
}

// DefaultConfig returns the standard history parameters.
func DefaultConfig() Config {
	return Config{
		Enabled:            true,
		WindowSize:         40,
		MinSamplesForTrend: 3,
		CurrentWeight:      0.7,
		HistoryWeight:      0.3,
		TrendWeight:        0.1,
	}
}

// #endregion config

// #region history

// History is the bounded FIFO buffer of round outcomes.
type History struct {
	cfg     Config
	entries []Entry
}

// New creates an empty history with the given configuration.
func New(cfg Config) *History {
	return &History{cfg: cfg}
}

// Record appends an entry, evicting the oldest once the window is full.
func (h *History) Record(e Entry) {
	h.entries = append(h.entries, e)
	if h.cfg.WindowSize > 0 && len(h.entries) > h.cfg.WindowSize {
		h.entries = h.entries[len(h.entries)-h.cfg.WindowSize:]
	}
}

// Len returns the number of entries currently held.
func (h *History) Len() int {
	return len(h.entries)
}

// Entries returns a copy of the window in chronological order.
func (h *History) Entries() []Entry {
	out := make([]Entry, len(h.entries))
	copy(out, h.entries)
	return out
}

// #endregion history

// #region metrics

// Metrics computes the rolling average, trend slope, and sample variance of
// the window. Trend is 0 below the configured minimum sample count.
func (h *History) Metrics() Metrics {
	n := len(h.entries)
	if n == 0 {
		return Metrics{}
	}

	var sum float64
	for _, e := range h.entries {
		sum += e.Score
	}
	avg := sum / float64(n)

	var variance float64
	if n > 1 {
		var sq float64
		for _, e := range h.entries {
			d := e.Score - avg
			sq += d * d
		}
		variance = sq / float64(n-1)
	}

	return Metrics{
		Average:  avg,
		Trend:    h.trend(avg),
		Variance: variance,
	}
}

// trend fits an ordinary least-squares line of score against entry index.
// Index-based fitting keeps the slope invariant to irregular round pacing.
func (h *History) trend(avg float64) float64 {
	n := len(h.entries)
	if n < h.cfg.MinSamplesForTrend {
		return 0
	}

	meanIdx := float64(n-1) / 2
	var num, den float64
	for i, e := range h.entries {
		di := float64(i) - meanIdx
		num += di * (e.Score - avg)
		den += di * di
	}
	if den == 0 {
		return 0
	}
	return num / den
}

// #endregion metrics

// #region adaptive-score

// AdaptiveScore blends the latest round score with the historical average
// and trend into a single stabilized score in [0,1]. With history disabled
// or below the minimum sample count, the current score passes through
// unchanged.
func (h *History) AdaptiveScore(current float64) float64 {
	if !h.cfg.Enabled || len(h.entries) < h.cfg.MinSamplesForTrend {
		return current
	}
	m := h.Metrics()
	blended := current*h.cfg.CurrentWeight + m.Average*h.cfg.HistoryWeight + m.Trend*h.cfg.TrendWeight
	return interp.Clamp01(blended)
}

// #endregion adaptive-score
