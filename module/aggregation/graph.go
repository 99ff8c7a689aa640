package aggregation

import (
	"fmt"
	"strings"

	"github.com/montanaflynn/stats"

	"github.com/compilerbench/perfsite/model/bench"
)

// GraphRequest selects a commit range and metric for plotting. Absolute
// switches the plotted Y value from percent-change-since-first to the raw
// measurement.
type GraphRequest struct {
	Start    string `json:"start" msgpack:"start"`
	End      string `json:"end" msgpack:"end"`
	Stat     string `json:"stat" msgpack:"stat"`
	Absolute bool   `json:"absolute" msgpack:"absolute"`
}

// GraphData is one plotted point. X is the commit date in milliseconds
// since the epoch.
type GraphData struct {
	Benchmark  string  `json:"benchmark" msgpack:"benchmark"`
	Commit     string  `json:"commit" msgpack:"commit"`
	PrevCommit *string `json:"prev_commit" msgpack:"prev_commit"`
	Absolute   float64 `json:"absolute" msgpack:"absolute"`
	Percent    float64 `json:"percent" msgpack:"percent"`
	Y          float64 `json:"y" msgpack:"y"`
	X          uint64  `json:"x" msgpack:"x"`
}

// GraphResponse maps benchmark-tier keys to per-scenario point series, plus
// the maximum plotted value per benchmark for axis scaling. Synthetic
// "Summary-check", "Summary-debug" and "Summary-opt" keys hold cross-crate
// series normalized against the first observed clean build of each tier.
type GraphResponse struct {
	Max        map[string]float64                `json:"max" msgpack:"max"`
	Benchmarks map[string]map[string][]GraphData `json:"benchmarks" msgpack:"benchmarks"`
}

// summaryKey groups one day's values by tier and scenario for the summary
// series.
type summaryKey struct {
	release     bool
	check       bool
	label       string
	baseCompile bool
}

func (k summaryKey) appendix() string {
	switch {
	case k.release:
		return "-opt"
	case k.check:
		return "-check"
	default:
		return "-debug"
	}
}

// Graph builds the full plot: one series per benchmark-tier and scenario,
// plus the normalized summary series.
func (e *Engine) Graph(snapshot *bench.Snapshot, req GraphRequest) (*GraphResponse, error) {
	days, err := e.Data(snapshot, DataRequest{Start: req.Start, End: req.End, Stat: req.Stat})
	if err != nil {
		return nil, err
	}

	benchmarks := make(map[string]map[string][]GraphData)
	series := func(name string) map[string][]GraphData {
		s, ok := benchmarks[name]
		if !ok {
			s = make(map[string][]GraphData)
			benchmarks[name] = s
		}
		return s
	}

	// First observed per-tier clean-build means, the denominators for every
	// summary point.
	var initialBase [tierCount]*float64
	var lastCommit *string

	for _, day := range days {
		commit := day.Commit
		x := uint64(day.Date.Unix()) * 1000

		summaryPoints := make(map[summaryKey][]float64)
		for name, runs := range day.Data {
			entry := series(name)
			baseCompile := false
			printlnIncr := false
			for _, sample := range runs {
				if sample.Run.IsClean() {
					baseCompile = true
				} else if sample.Run.IsPrintlnIncr() {
					printlnIncr = true
				}
				points := entry[sample.Label]
				percent := 0.0
				if len(points) > 0 {
					first := points[0].Absolute
					percent = (sample.Value - first) / first * 100
				}
				y := percent
				if req.Absolute {
					y = sample.Value
				}
				entry[sample.Label] = append(points, GraphData{
					Benchmark:  sample.Label,
					Commit:     commit,
					PrevCommit: lastCommit,
					Absolute:   sample.Value,
					Percent:    percent,
					Y:          y,
					X:          x,
				})
			}

			// The summary only admits days that measured both a clean build
			// and the println patch, so its series stay comparable.
			if baseCompile && printlnIncr {
				for _, sample := range runs {
					if sample.Run.Scenario.IsPatch() && !sample.Run.IsPrintlnIncr() {
						continue
					}
					key := summaryKey{
						release:     sample.Run.Release,
						check:       sample.Run.Check,
						label:       sample.Label,
						baseCompile: sample.Run.IsClean(),
					}
					summaryPoints[key] = append(summaryPoints[key], sample.Value)
				}
			}
		}

		for key, values := range summaryPoints {
			if !key.baseCompile {
				continue
			}
			tier := keyTier(key)
			if initialBase[tier] == nil {
				mean, err := stats.Mean(values)
				if err != nil {
					return nil, fmt.Errorf("could not average clean builds for commit %s: %w", commit, err)
				}
				initialBase[tier] = &mean
			}
		}

		for key, values := range summaryPoints {
			mean, err := stats.Mean(values)
			if err != nil {
				return nil, fmt.Errorf("could not average %s runs for commit %s: %w", key.label, commit, err)
			}
			base := initialBase[keyTier(key)]
			if base == nil {
				return nil, fmt.Errorf("no clean build mean known before commit %s for tier %s", commit, key.appendix()[1:])
			}
			value := mean / *base

			entry := series("Summary" + key.appendix())
			points := entry[key.label]
			percent := 0.0
			if len(points) > 0 {
				first := points[0].Absolute
				percent = (value - first) / first * 100
			}
			y := percent
			if req.Absolute {
				y = value
			}
			entry[key.label] = append(points, GraphData{
				Benchmark:  key.label,
				Commit:     commit,
				PrevCommit: lastCommit,
				Absolute:   value,
				Percent:    percent,
				Y:          y,
				X:          x,
			})
		}

		prev := commit
		lastCommit = &prev
	}

	maxes := make(map[string]float64, len(benchmarks))
	for name, entry := range benchmarks {
		max := 0.0
		for _, points := range entry {
			for _, p := range points {
				if p.Y > max {
					max = p.Y
				}
			}
		}
		base := strings.NewReplacer("-check", "", "-debug", "", "-opt", "").Replace(name)
		if existing, ok := maxes[base]; !ok || max > existing {
			maxes[base] = max
		}
	}

	return &GraphResponse{Max: maxes, Benchmarks: benchmarks}, nil
}

func keyTier(key summaryKey) int {
	switch {
	case key.release:
		return tierOpt
	case key.check:
		return tierCheck
	default:
		return tierDebug
	}
}
