// Package priority interpolates the arousal-gated weight and rate tables:
// per-axis adaptation priorities and rates, and the KPI weights that blend
// raw sub-scores into one round score.
package priority

import (
	"github.com/danielpatrickdp/adaptive-difficulty/internal/axis"
	"github.com/danielpatrickdp/adaptive-difficulty/internal/history"
	"github.com/danielpatrickdp/adaptive-difficulty/internal/interp"
)

// #region kpi-weights

// KPIWeights weighs the five performance sub-scores into a composite round
// score.
type KPIWeights struct {
	TaskSuccess      float64 `yaml:"task_success"`
	TargetRatio      float64 `yaml:"target_ratio"`
	ReactionTime     float64 `yaml:"reaction_time"`
	ResponseDuration float64 `yaml:"response_duration"`
	TapAccuracy      float64 `yaml:"tap_accuracy"`
}

// Blend computes the weighted composite of the sub-scores, normalized by
// the weight sum and clamped to [0,1].
func (w KPIWeights) Blend(c history.ComponentScores) float64 {
	sum := w.TaskSuccess + w.TargetRatio + w.ReactionTime + w.ResponseDuration + w.TapAccuracy
	if sum <= 0 {
		return 0
	}
	total := c.TaskSuccess*w.TaskSuccess +
		c.TargetRatio*w.TargetRatio +
		c.ReactionTime*w.ReactionTime +
		c.ResponseDuration*w.ResponseDuration +
		c.TapAccuracy*w.TapAccuracy
	return interp.Clamp01(total / sum)
}

func lerpWeights(lo, hi KPIWeights, t float64) KPIWeights {
	return KPIWeights{
		TaskSuccess:      interp.Lerp(lo.TaskSuccess, hi.TaskSuccess, t),
		TargetRatio:      interp.Lerp(lo.TargetRatio, hi.TargetRatio, t),
		ReactionTime:     interp.Lerp(lo.ReactionTime, hi.ReactionTime, t),
		ResponseDuration: interp.Lerp(lo.ResponseDuration, hi.ResponseDuration, t),
		TapAccuracy:      interp.Lerp(lo.TapAccuracy, hi.TapAccuracy, t),
	}
}

// #endregion kpi-weights

// #region config

// Config holds the low-arousal and high-arousal tables plus the smoothstep
// transition bands between them.
type Config struct {
	TransitionStart    float64 `yaml:"transition_start"`
	TransitionEnd      float64 `yaml:"transition_end"`
	KPITransitionStart float64 `yaml:"kpi_transition_start"`
	KPITransitionEnd   float64 `yaml:"kpi_transition_end"`

	LowPriorities  axis.Vector `yaml:"low_priorities"`
	HighPriorities axis.Vector `yaml:"high_priorities"`
	LowRates       axis.Vector `yaml:"low_rates"`
	HighRates      axis.Vector `yaml:"high_rates"`

	LowKPIWeights  KPIWeights `yaml:"low_kpi_weights"`
	HighKPIWeights KPIWeights `yaml:"high_kpi_weights"`
}

// DefaultConfig returns the standard tables. Low arousal favors cognitive
// load (target count, distractors); high arousal shifts emphasis toward
// temporal pressure (response window, ball speed) and weighs reaction time
// more heavily.
func DefaultConfig() Config {
	cfg := Config{
		TransitionStart:    0.55,
		TransitionEnd:      0.85,
		KPITransitionStart: 0.6,
		KPITransitionEnd:   0.8,
		LowKPIWeights: KPIWeights{
			TaskSuccess:      0.35,
			TargetRatio:      0.25,
			ReactionTime:     0.10,
			ResponseDuration: 0.10,
			TapAccuracy:      0.20,
		},
		HighKPIWeights: KPIWeights{
			TaskSuccess:      0.25,
			TargetRatio:      0.15,
			ReactionTime:     0.25,
			ResponseDuration: 0.15,
			TapAccuracy:      0.20,
		},
	}
	cfg.LowPriorities[axis.TargetCount] = 3
	cfg.LowPriorities[axis.ResponseWindow] = 2
	cfg.LowPriorities[axis.BallSpeed] = 1
	cfg.LowPriorities[axis.DistractorLoad] = 2

	cfg.HighPriorities[axis.TargetCount] = 1
	cfg.HighPriorities[axis.ResponseWindow] = 3
	cfg.HighPriorities[axis.BallSpeed] = 3
	cfg.HighPriorities[axis.DistractorLoad] = 1

	cfg.LowRates[axis.TargetCount] = 0.40
	cfg.LowRates[axis.ResponseWindow] = 0.32
	cfg.LowRates[axis.BallSpeed] = 0.25
	cfg.LowRates[axis.DistractorLoad] = 0.32

	cfg.HighRates[axis.TargetCount] = 0.20
	cfg.HighRates[axis.ResponseWindow] = 0.40
	cfg.HighRates[axis.BallSpeed] = 0.40
	cfg.HighRates[axis.DistractorLoad] = 0.20

	return cfg
}

// #endregion config

// #region interpolation

// PrioritiesAt returns the per-axis priorities at the given arousal,
// smooth-stepped between the low and high tables.
func (c Config) PrioritiesAt(arousal float64) axis.Vector {
	return lerpVector(c.LowPriorities, c.HighPriorities, interp.Smoothstep(c.TransitionStart, c.TransitionEnd, arousal))
}

// RatesAt returns the per-axis base adaptation rates at the given arousal.
func (c Config) RatesAt(arousal float64) axis.Vector {
	return lerpVector(c.LowRates, c.HighRates, interp.Smoothstep(c.TransitionStart, c.TransitionEnd, arousal))
}

// KPIWeightsAt returns the sub-score weights at the given arousal. The KPI
// band is narrower than the priority band.
func (c Config) KPIWeightsAt(arousal float64) KPIWeights {
	return lerpWeights(c.LowKPIWeights, c.HighKPIWeights, interp.Smoothstep(c.KPITransitionStart, c.KPITransitionEnd, arousal))
}

// Inverted flips a priority vector against its maximum for easing passes.
// Every inverted priority is strictly positive.
func Inverted(p axis.Vector) axis.Vector {
	max := p.Max()
	var out axis.Vector
	for i, v := range p {
		out[i] = interp.InvertPriority(v, max)
	}
	return out
}

func lerpVector(lo, hi axis.Vector, t float64) axis.Vector {
	var out axis.Vector
	for i := range out {
		out[i] = interp.Lerp(lo[i], hi[i], t)
	}
	return out
}

// #endregion interpolation
