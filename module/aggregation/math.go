package aggregation

import (
	"math"

	"github.com/montanaflynn/stats"

	"github.com/compilerbench/perfsite/model/bench"
)

const (
	// StatWallTime is the metric the version dashboards summarize.
	StatWallTime = "wall-time"

	// statCPUClock is recorded by the profiler in milliseconds and converted
	// to seconds before any aggregation.
	statCPUClock = "cpu-clock"
)

// round keeps one decimal place, the display precision used throughout the
// dashboard. Halves round away from zero.
func round(v float64) float64 {
	return math.Round(v*10) / 10
}

// average is the rounded mean of values. ok is false for an empty set, which
// callers surface as missing data rather than zero.
func average(values []float64) (float64, bool) {
	mean, err := stats.Mean(values)
	if err != nil {
		return 0, false
	}
	return round(mean), true
}

func averageOrNil(values []float64) *float64 {
	avg, ok := average(values)
	if !ok {
		return nil
	}
	return &avg
}

// statValue extracts one metric from a run, normalizing cpu-clock to
// seconds.
func statValue(run bench.Run, stat string) (float64, bool) {
	v, ok := run.Stat(stat)
	if !ok {
		return 0, false
	}
	if stat == statCPUClock {
		v /= 1000
	}
	return v, true
}
