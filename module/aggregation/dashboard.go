package aggregation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/coreos/go-semver/semver"

	"github.com/compilerbench/perfsite/model/bench"
)

// DashboardResponse holds mean wall-times per tracked version for each of
// the twelve tier and scenario buckets. Bucket entries align with Versions;
// a nil entry means the version has no data for that bucket.
type DashboardResponse struct {
	Versions []string       `json:"versions" msgpack:"versions"`
	Check    DashboardCases `json:"check" msgpack:"check"`
	Debug    DashboardCases `json:"debug" msgpack:"debug"`
	Opt      DashboardCases `json:"opt" msgpack:"opt"`
}

// DashboardCases carries one bucket per build scenario within a tier.
type DashboardCases struct {
	CleanAverages       []*float64 `json:"clean_averages" msgpack:"clean_averages"`
	BaseIncrAverages    []*float64 `json:"base_incr_averages" msgpack:"base_incr_averages"`
	CleanIncrAverages   []*float64 `json:"clean_incr_averages" msgpack:"clean_incr_averages"`
	PrintlnIncrAverages []*float64 `json:"println_incr_averages" msgpack:"println_incr_averages"`
}

const (
	tierCheck = iota
	tierDebug
	tierOpt
	tierCount
)

var dashboardTiers = [tierCount]func(bench.Run) bool{
	tierCheck: func(r bench.Run) bool { return r.Check },
	tierDebug: func(r bench.Run) bool { return !r.Check && !r.Release },
	tierOpt:   func(r bench.Run) bool { return r.Release },
}

// dashboardScenarios drive the bucket sweep; incremental scenarios only
// apply to toolchains that support incremental builds.
var dashboardScenarios = [...]struct {
	matches     func(bench.Run) bool
	incremental bool
}{
	{bench.Run.IsClean, false},
	{bench.Run.IsBaseIncr, true},
	{bench.Run.IsCleanIncr, true},
	{bench.Run.IsPrintlnIncr, true},
}

// Dashboard aggregates every artifact version plus the latest master commit
// into per-bucket mean wall-times.
func (e *Engine) Dashboard(snapshot *bench.Snapshot) (*DashboardResponse, error) {
	versions, err := sortedVersions(snapshot)
	if err != nil {
		return nil, err
	}

	last := snapshot.LastCommit()
	versions = append(versions, "master: "+shortSHA(last.Commit.SHA))

	benchmarkNames, err := releaseBenchmarkNames(snapshot)
	if err != nil {
		return nil, err
	}

	var buckets [tierCount][len(dashboardScenarios)][]*float64
	for _, version := range versions {
		results, err := versionBenchmarks(snapshot, version, benchmarkNames)
		if err != nil {
			return nil, err
		}

		supported := e.supportsIncremental(version)
		var points [tierCount][len(dashboardScenarios)][]float64
		for _, result := range results {
			if !result.Ok() {
				continue
			}
			for tier, inTier := range dashboardTiers {
				for i, scenario := range dashboardScenarios {
					if scenario.incremental && !supported {
						continue
					}
					run, ok := findRun(result.Runs, inTier, scenario.matches)
					if !ok {
						continue
					}
					if v, ok := run.Stat(StatWallTime); ok {
						points[tier][i] = append(points[tier][i], v)
					}
				}
			}
		}
		for tier := range buckets {
			for i := range buckets[tier] {
				buckets[tier][i] = append(buckets[tier][i], averageOrNil(points[tier][i]))
			}
		}
	}

	return &DashboardResponse{
		Versions: versions,
		Check:    casesFor(buckets[tierCheck]),
		Debug:    casesFor(buckets[tierDebug]),
		Opt:      casesFor(buckets[tierOpt]),
	}, nil
}

func casesFor(buckets [len(dashboardScenarios)][]*float64) DashboardCases {
	return DashboardCases{
		CleanAverages:       buckets[0],
		BaseIncrAverages:    buckets[1],
		CleanIncrAverages:   buckets[2],
		PrintlnIncrAverages: buckets[3],
	}
}

func findRun(runs []bench.Run, inTier, matches func(bench.Run) bool) (bench.Run, bool) {
	for _, run := range runs {
		if inTier(run) && matches(run) {
			return run, true
		}
	}
	return bench.Run{}, false
}

// sortedVersions orders artifact versions ascending by semantic version,
// with beta after every numbered release.
func sortedVersions(snapshot *bench.Snapshot) ([]string, error) {
	versions := make([]string, 0, len(snapshot.ArtifactData))
	parsed := make(map[string]*semver.Version, len(snapshot.ArtifactData))
	for raw := range snapshot.ArtifactData {
		if raw != "beta" {
			v, err := semver.NewVersion(raw)
			if err != nil {
				return nil, fmt.Errorf("unexpected version %q in artifact data: %w", raw, err)
			}
			parsed[raw] = v
		}
		versions = append(versions, raw)
	}
	sort.SliceStable(versions, func(i, j int) bool {
		a, b := parsed[versions[i]], parsed[versions[j]]
		switch {
		case a != nil && b != nil:
			return a.LessThan(*b)
		case a != nil:
			return true
		default:
			return false
		}
	})
	return versions, nil
}

// releaseBenchmarkNames fixes the benchmark set compared across versions:
// every benchmark that succeeded against the beta artifact.
func releaseBenchmarkNames(snapshot *bench.Snapshot) ([]string, error) {
	beta, ok := snapshot.ArtifactData["beta"]
	if !ok {
		return nil, fmt.Errorf("artifact data has no beta entry")
	}
	names := make([]string, 0, len(beta.Benchmarks))
	for name, result := range beta.Benchmarks {
		if result.Ok() {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// versionBenchmarks selects the runs backing one dashboard column: the
// artifact's own sweep for released versions, or the latest master commit
// restricted to the release benchmark set.
func versionBenchmarks(snapshot *bench.Snapshot, version string, benchmarkNames []string) ([]bench.BenchmarkResult, error) {
	if strings.HasPrefix(version, "master") {
		last := snapshot.LastCommit()
		results := make([]bench.BenchmarkResult, 0, len(benchmarkNames))
		for _, name := range benchmarkNames {
			result, ok := last.Benchmarks[name]
			if !ok {
				return nil, fmt.Errorf("master commit %s is missing benchmark %q", last.Commit.SHA, name)
			}
			results = append(results, result)
		}
		return results, nil
	}

	artifact, ok := snapshot.ArtifactData[version]
	if !ok {
		return nil, fmt.Errorf("artifact data has no %s entry", version)
	}
	results := make([]bench.BenchmarkResult, 0, len(artifact.Benchmarks))
	for _, result := range artifact.Benchmarks {
		if result.Ok() {
			results = append(results, result)
		}
	}
	return results, nil
}

func shortSHA(sha string) string {
	if len(sha) > 8 {
		return sha[:8]
	}
	return sha
}
