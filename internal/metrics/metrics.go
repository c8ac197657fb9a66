// Package metrics exposes the controller's Prometheus instruments. Nothing
// in this module serves them; the embedding application decides whether to
// register an HTTP handler.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RoundsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "adm",
		Subsystem: "controller",
		Name:      "rounds_total",
		Help:      "Rounds processed, partitioned by adaptation path taken",
	}, []string{"path"})

	ExplorationNudges = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "adm",
		Subsystem: "pd",
		Name:      "exploration_nudges_total",
		Help:      "Forced exploration nudges emitted per axis",
	}, []string{"axis"})

	SkippedAxes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "adm",
		Subsystem: "pd",
		Name:      "skipped_axes_total",
		Help:      "Axis evaluations skipped for insufficient profile data",
	}, []string{"axis"})

	FallbackRounds = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "adm",
		Subsystem: "controller",
		Name:      "fallback_rounds_total",
		Help:      "Profiling rounds that fell back to the global budget path",
	})

	SuppressedReversals = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "adm",
		Subsystem: "hysteresis",
		Name:      "suppressed_reversals_total",
		Help:      "Direction reversals suppressed by the hysteresis gate",
	})

	AxisPosition = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "adm",
		Subsystem: "controller",
		Name:      "axis_position",
		Help:      "Current normalized position per difficulty axis",
	}, []string{"axis"})

	RoundScore = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "adm",
		Subsystem: "controller",
		Name:      "round_score",
		Help:      "Composite round performance score distribution",
		Buckets:   prometheus.LinearBuckets(0, 0.1, 11),
	})
)
