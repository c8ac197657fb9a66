// Package interp holds the pure interpolation helpers shared by every
// arousal-gated computation in the difficulty manager.
package interp

import "math"

// #region clamp

// Clamp bounds x to [lo, hi]. NaN maps to lo so a poisoned upstream value
// can never propagate past a clamp.
func Clamp(x, lo, hi float64) float64 {
	if math.IsNaN(x) || x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Clamp01 bounds x to the unit interval.
func Clamp01(x float64) float64 {
	return Clamp(x, 0, 1)
}

// #endregion clamp

// #region lerp

// Lerp linearly interpolates between a and b by t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Smoothstep returns the cubic Hermite ease of x between edge0 and edge1,
// 0 at or below edge0 and 1 at or above edge1.
func Smoothstep(edge0, edge1, x float64) float64 {
	t := Clamp((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}

// #endregion lerp

// #region invert

// InvertPriority flips a priority against the table maximum for easing
// passes. The +1 keeps the inverted value strictly positive even for the
// highest-priority axis.
func InvertPriority(priority, maxPriority float64) float64 {
	return maxPriority + 1 - priority
}

// #endregion invert
