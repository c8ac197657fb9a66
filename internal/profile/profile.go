// Package profile keeps one bounded buffer of (axis value, performance,
// timestamp) samples per difficulty axis and derives the recency-weighted
// statistics the per-axis controller consumes.
package profile

import (
	"math"
	"time"

	"github.com/danielpatrickdp/adaptive-difficulty/internal/axis"
)

// #region types

// Sample is one recorded observation for a single axis.
type Sample struct {
	Value       float64   `json:"value"`
	Performance float64   `json:"performance"`
	At          time.Time `json:"at"`
}

// Config holds the per-axis buffer parameters.
type Config struct {
	Capacity int           `yaml:"capacity"`
	HalfLife time.Duration `yaml:"half_life"`
}

// DefaultConfig returns the standard profile parameters: roughly 20 sessions
// of data with a 24-hour recency half-life.
func DefaultConfig() Config {
	return Config{
		Capacity: 200,
		HalfLife: 24 * time.Hour,
	}
}

// #endregion types

// #region profile

// Profile is the capacity-bounded FIFO sample buffer for one axis.
type Profile struct {
	cfg     Config
	samples []Sample
}

// New creates an empty profile.
func New(cfg Config) *Profile {
	return &Profile{cfg: cfg}
}

// Record appends a sample, evicting the oldest once capacity is reached.
func (p *Profile) Record(s Sample) {
	p.samples = append(p.samples, s)
	if p.cfg.Capacity > 0 && len(p.samples) > p.cfg.Capacity {
		p.samples = p.samples[len(p.samples)-p.cfg.Capacity:]
	}
}

// Len returns the number of samples currently held.
func (p *Profile) Len() int {
	return len(p.samples)
}

// Samples returns a copy of the buffer in arrival order.
func (p *Profile) Samples() []Sample {
	out := make([]Sample, len(p.samples))
	copy(out, p.samples)
	return out
}

// #endregion profile

// #region weighted-stats

// weight computes the exponential recency weight of a sample at the given
// evaluation time: 0.5^(age/halfLife).
func (p *Profile) weight(s Sample, now time.Time) float64 {
	if p.cfg.HalfLife <= 0 {
		return 1
	}
	age := now.Sub(s.At)
	if age < 0 {
		age = 0
	}
	return math.Exp2(-age.Hours() / p.cfg.HalfLife.Hours())
}

// WeightedAverage returns the recency-weighted mean performance, or 0 with
// no samples.
func (p *Profile) WeightedAverage(now time.Time) float64 {
	var sum, wsum float64
	for _, s := range p.samples {
		w := p.weight(s, now)
		sum += w * s.Performance
		wsum += w
	}
	if wsum == 0 {
		return 0
	}
	return sum / wsum
}

// WeightedSlope returns the recency-weighted least-squares slope of
// performance against sample age in hours. A positive slope means
// performance has been improving toward the present.
func (p *Profile) WeightedSlope(now time.Time) float64 {
	if len(p.samples) < 2 {
		return 0
	}

	// Time coordinate: hours before now, negated so later samples sort
	// higher and an improving player yields a positive slope.
	var wsum, tMean, yMean float64
	weights := make([]float64, len(p.samples))
	times := make([]float64, len(p.samples))
	for i, s := range p.samples {
		w := p.weight(s, now)
		t := -now.Sub(s.At).Hours()
		weights[i] = w
		times[i] = t
		wsum += w
		tMean += w * t
		yMean += w * s.Performance
	}
	if wsum == 0 {
		return 0
	}
	tMean /= wsum
	yMean /= wsum

	var num, den float64
	for i, s := range p.samples {
		dt := times[i] - tMean
		num += weights[i] * dt * (s.Performance - yMean)
		den += weights[i] * dt * dt
	}
	if den == 0 {
		return 0
	}
	return num / den
}

// PerformanceVariance returns the sample variance of recorded performances,
// unweighted, for the local confidence estimate.
func (p *Profile) PerformanceVariance() float64 {
	n := len(p.samples)
	if n < 2 {
		return 0
	}
	var sum float64
	for _, s := range p.samples {
		sum += s.Performance
	}
	mean := sum / float64(n)
	var sq float64
	for _, s := range p.samples {
		d := s.Performance - mean
		sq += d * d
	}
	return sq / float64(n-1)
}

// #endregion weighted-stats

// #region set

// Set holds one profile per axis, populated for every axis at construction
// so the hot path never sees an absent key.
type Set struct {
	profiles [axis.NumAxes]*Profile
}

// NewSet creates a Set with an empty profile per axis.
func NewSet(cfg Config) *Set {
	s := &Set{}
	for i := range s.profiles {
		s.profiles[i] = New(cfg)
	}
	return s
}

// Axis returns the profile for one axis.
func (s *Set) Axis(a axis.Axis) *Profile {
	return s.profiles[a]
}

// Record appends a sample to one axis's profile.
func (s *Set) Record(a axis.Axis, smp Sample) {
	s.profiles[a].Record(smp)
}

// #endregion set
