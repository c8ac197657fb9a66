package axis

import "fmt"

// #region axis

// Axis identifies one tunable difficulty parameter (DOM target) of the
// cognitive-training game.
type Axis int

const (
	// TargetCount is the number of true targets presented per round.
	TargetCount Axis = iota
	// ResponseWindow is the time budget allowed for a response.
	ResponseWindow
	// BallSpeed is the movement speed of round objects.
	BallSpeed
	// DistractorLoad is the ratio of false targets mixed into a round.
	DistractorLoad

	numAxes
)

// NumAxes is the size of the closed axis enumeration.
const NumAxes = int(numAxes)

// String returns the canonical axis name.
func (a Axis) String() string {
	switch a {
	case TargetCount:
		return "target_count"
	case ResponseWindow:
		return "response_window"
	case BallSpeed:
		return "ball_speed"
	case DistractorLoad:
		return "distractor_load"
	}
	return fmt.Sprintf("axis(%d)", int(a))
}

// Parse maps a canonical axis name back to its Axis value.
func Parse(name string) (Axis, error) {
	for _, a := range All() {
		if a.String() == name {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown axis %q", name)
}

// All returns every axis in ordinal order.
func All() []Axis {
	axes := make([]Axis, NumAxes)
	for i := range axes {
		axes[i] = Axis(i)
	}
	return axes
}

// #endregion axis

// #region vector

// Vector holds one float per axis, indexed by ordinal. Using a fixed-size
// array keeps per-axis lookups allocation-free in the round hot path.
type Vector [NumAxes]float64

// Splat returns a Vector with every element set to v.
func Splat(v float64) Vector {
	var vec Vector
	for i := range vec {
		vec[i] = v
	}
	return vec
}

// Sum returns the sum of all elements.
func (v Vector) Sum() float64 {
	var total float64
	for _, x := range v {
		total += x
	}
	return total
}

// Max returns the largest element.
func (v Vector) Max() float64 {
	max := v[0]
	for _, x := range v[1:] {
		if x > max {
			max = x
		}
	}
	return max
}

// #endregion vector
