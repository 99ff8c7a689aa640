package aggregation

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/compilerbench/perfsite/model/bench"
)

// TimedRun is one sample inside a day's tier bucket, encoded as a
// three-element (label, run, value) array on the wire.
type TimedRun struct {
	_msgpack struct{} `msgpack:",asArray"`

	Label string
	Run   bench.Run
	Value float64
}

func (t TimedRun) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{t.Label, t.Run, t.Value})
}

// DateData summarizes one commit's sweep for a single metric. Data maps
// benchmark-tier keys ("<name>-check", "<name>-debug", "<name>-opt") to the
// runs that recorded the metric. It is rebuilt from the snapshot per query,
// never persisted.
type DateData struct {
	Date   time.Time             `json:"date" msgpack:"date"`
	Commit string                `json:"commit" msgpack:"commit"`
	Data   map[string][]TimedRun `json:"data" msgpack:"data"`
}

// DateDataForDay buckets a commit's runs by benchmark and tier, keeping only
// runs that recorded the requested metric. Failed benchmarks are skipped,
// and only non-empty buckets appear, so a commit with no matching runs
// yields an empty map.
func DateDataForDay(commit *bench.CommitData, stat string) DateData {
	data := make(map[string][]TimedRun, len(commit.Benchmarks))
	for name, result := range commit.Benchmarks {
		if !result.Ok() {
			continue
		}
		var check, debug, opt []TimedRun
		for _, run := range result.Runs {
			value, ok := statValue(run, stat)
			if !ok {
				continue
			}
			sample := TimedRun{Label: run.Name(), Run: run, Value: value}
			switch {
			case run.Release:
				opt = append(opt, sample)
			case run.Check:
				check = append(check, sample)
			default:
				debug = append(debug, sample)
			}
		}
		if len(check) > 0 {
			data[name+"-check"] = check
		}
		if len(debug) > 0 {
			data[name+"-debug"] = debug
		}
		if len(opt) > 0 {
			data[name+"-opt"] = opt
		}
	}
	return DateData{
		Date:   commit.Commit.Date,
		Commit: commit.Commit.SHA,
		Data:   data,
	}
}

// DataRequest selects a commit range and a metric. Empty selectors default
// to the dataset edges.
type DataRequest struct {
	Start string `json:"start" msgpack:"start"`
	End   string `json:"end" msgpack:"end"`
	Stat  string `json:"stat" msgpack:"stat"`
}

// DataResponse holds one DateData per commit, oldest first, trimmed of
// leading and trailing days with no samples. Interior gaps are preserved.
type DataResponse []DateData

// Data resolves the request's range and aggregates each commit in it. It
// fails when the range contains no commits, or when every resolved commit
// is empty for the requested metric.
func (e *Engine) Data(snapshot *bench.Snapshot, req DataRequest) (DataResponse, error) {
	commits, err := e.resolver.DataRange(snapshot, req.Start, req.End)
	if err != nil {
		return nil, err
	}

	days := make(DataResponse, 0, len(commits))
	for _, commit := range commits {
		days = append(days, DateDataForDay(commit, req.Stat))
	}

	first, last := -1, -1
	for i, day := range days {
		if len(day.Data) == 0 {
			continue
		}
		if first == -1 {
			first = i
		}
		last = i
	}
	if first == -1 {
		return nil, fmt.Errorf("empty range: %q to %q contained no commits", req.Start, req.End)
	}
	return days[first : last+1], nil
}

// DaysRequest selects two individual commits and a metric.
type DaysRequest struct {
	Start string `json:"start" msgpack:"start"`
	End   string `json:"end" msgpack:"end"`
	Stat  string `json:"stat" msgpack:"stat"`
}

// DaysResponse pairs the two resolved endpoints for side-by-side
// comparison.
type DaysResponse struct {
	A DateData `json:"a" msgpack:"a"`
	B DateData `json:"b" msgpack:"b"`
}

// Days aggregates exactly the two endpoint commits of the requested range.
func (e *Engine) Days(snapshot *bench.Snapshot, req DaysRequest) (*DaysResponse, error) {
	start, err := e.resolver.FindCommit(snapshot, req.Start, true)
	if err != nil {
		return nil, err
	}
	end, err := e.resolver.FindCommit(snapshot, req.End, false)
	if err != nil {
		return nil, err
	}
	return &DaysResponse{
		A: DateDataForDay(start, req.Stat),
		B: DateDataForDay(end, req.Stat),
	}, nil
}
