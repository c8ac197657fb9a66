// Package modulation applies directional smoothing and final clamping to
// every proposed position change, regardless of which path produced it.
package modulation

import (
	"github.com/danielpatrickdp/adaptive-difficulty/internal/axis"
	"github.com/danielpatrickdp/adaptive-difficulty/internal/interp"
)

// #region config

// Config holds the per-axis smoothing factors. Hardening and easing smooth
// independently so a designer can make an axis quick to relax but slow to
// tighten.
type Config struct {
	HardenFactor axis.Vector `yaml:"harden_factor"`
	EaseFactor   axis.Vector `yaml:"ease_factor"`
}

// DefaultConfig returns the standard smoothing factors.
func DefaultConfig() Config {
	return Config{
		HardenFactor: axis.Splat(0.5),
		EaseFactor:   axis.Splat(0.7),
	}
}

// #endregion config

// #region applier

// Applier smooths and clamps proposed position deltas.
type Applier struct {
	cfg Config
}

// NewApplier creates an applier.
func NewApplier(cfg Config) *Applier {
	return &Applier{cfg: cfg}
}

// Apply commits a proposed change to one axis's normalized position. Unless
// bypassed, the delta is scaled by the direction-specific smoothing factor;
// the PD path bypasses because its confidence and gain terms already damp
// the step, and smoothing twice would over-smooth. The result is always
// clamped to [0,1].
func (ap *Applier) Apply(a axis.Axis, position, delta float64, bypassSmoothing bool) float64 {
	if !bypassSmoothing {
		factor := ap.cfg.EaseFactor[a]
		if delta > 0 {
			factor = ap.cfg.HardenFactor[a]
		}
		delta *= factor
	}
	return interp.Clamp01(position + delta)
}

// #endregion applier
