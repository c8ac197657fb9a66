// Package budget allocates the global adaptation budget across axes in
// proportion to their arousal-gated priorities.
package budget

import (
	"github.com/danielpatrickdp/adaptive-difficulty/internal/axis"
	"github.com/danielpatrickdp/adaptive-difficulty/internal/priority"
)

// #region distributor

// Distributor splits a signed global budget into per-axis shares.
type Distributor struct {
	cfg priority.Config
}

// NewDistributor creates a distributor over the given priority tables.
func NewDistributor(cfg priority.Config) *Distributor {
	return &Distributor{cfg: cfg}
}

// Distribute allocates the total budget across axes. A positive budget
// (hardening) splits proportionally to interpolated priorities. A negative
// budget (easing) uses inverted priorities so the hardest-driven axes roll
// back first, in two passes: pass 1 eases only axes above the 0.5 midpoint;
// pass 2 engages every axis once none exceed the midpoint. Shares always
// sum to the total budget.
func (d *Distributor) Distribute(total, arousal float64, positions axis.Vector) axis.Vector {
	var shares axis.Vector
	if total == 0 {
		return shares
	}

	if total > 0 {
		var all [axis.NumAxes]bool
		for i := range all {
			all[i] = true
		}
		return apportion(total, d.cfg.PrioritiesAt(arousal), all)
	}

	inverted := priority.Inverted(d.cfg.PrioritiesAt(arousal))

	// Pass 1: only over-hardened axes.
	var mask [axis.NumAxes]bool
	anyAbove := false
	for i, pos := range positions {
		if pos > 0.5 {
			mask[i] = true
			anyAbove = true
		}
	}
	// Pass 2: nothing above the midpoint, ease everywhere.
	if !anyAbove {
		for i := range mask {
			mask[i] = true
		}
	}
	return apportion(total, inverted, mask)
}

// apportion splits total over the masked axes proportionally to weights.
func apportion(total float64, weights axis.Vector, mask [axis.NumAxes]bool) axis.Vector {
	var sum float64
	for i, w := range weights {
		if mask[i] {
			sum += w
		}
	}
	var out axis.Vector
	if sum <= 0 {
		return out
	}
	for i, w := range weights {
		if mask[i] {
			out[i] = w / sum * total
		}
	}
	return out
}

// #endregion distributor
