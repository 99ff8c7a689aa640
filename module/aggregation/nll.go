package aggregation

import (
	"sort"

	"github.com/compilerbench/perfsite/model/bench"
)

// NLLRequest selects the commit and metric to compare borrow-check
// implementations on. An empty commit selector picks the latest commit.
type NLLRequest struct {
	Commit string `json:"commit" msgpack:"commit"`
	Stat   string `json:"stat" msgpack:"stat"`
}

// NLLPoint compares one benchmark's standard and NLL type-check builds.
// Either side may be missing when the commit did not measure it.
type NLLPoint struct {
	Case  string   `json:"case" msgpack:"case"`
	Clean *float64 `json:"clean" msgpack:"clean"`
	NLL   *float64 `json:"nll" msgpack:"nll"`
}

// Pct is the percent change of the standard build over the NLL build, when
// both sides are present.
func (p NLLPoint) Pct() *float64 {
	if p.Clean == nil || p.NLL == nil {
		return nil
	}
	pct := (*p.Clean - *p.NLL) / *p.NLL * 100
	return &pct
}

// NLLResponse lists one comparison per benchmark, largest regression first.
type NLLResponse struct {
	Commit string     `json:"commit" msgpack:"commit"`
	Points []NLLPoint `json:"points" msgpack:"points"`
}

// NLLDashboard compares clean type-check builds against their NLL
// counterparts for a single commit. Points with a defined percent change
// sort before those without, descending; ties and undefined points fall
// back to benchmark name.
func (e *Engine) NLLDashboard(snapshot *bench.Snapshot, req NLLRequest) (*NLLResponse, error) {
	commit, err := e.resolver.FindCommit(snapshot, req.Commit, false)
	if err != nil {
		return nil, err
	}

	points := make([]NLLPoint, 0, len(commit.Benchmarks))
	for name, result := range commit.Benchmarks {
		if !result.Ok() {
			continue
		}
		points = append(points, NLLPoint{
			Case:  name,
			Clean: checkStat(result.Runs, req.Stat, bench.Run.IsClean),
			NLL:   checkStat(result.Runs, req.Stat, bench.Run.IsNLL),
		})
	}

	sort.SliceStable(points, func(i, j int) bool {
		a, b := points[i].Pct(), points[j].Pct()
		switch {
		case a != nil && b != nil:
			if *a != *b {
				return *a > *b
			}
			return points[i].Case < points[j].Case
		case a != nil:
			return true
		case b != nil:
			return false
		default:
			return points[i].Case < points[j].Case
		}
	})

	return &NLLResponse{Commit: commit.Commit.SHA, Points: points}, nil
}

// checkStat reads the metric from the first type-check run matching the
// scenario. A matching run without the metric yields nothing rather than
// falling through to later runs.
func checkStat(runs []bench.Run, stat string, matches func(bench.Run) bool) *float64 {
	for _, run := range runs {
		if !run.Check || !matches(run) {
			continue
		}
		v, ok := statValue(run, stat)
		if !ok {
			return nil
		}
		rounded := round(v)
		return &rounded
	}
	return nil
}
