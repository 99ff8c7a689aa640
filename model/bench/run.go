package bench

// ScenarioKind enumerates the incremental-compilation scenarios a benchmark
// is measured under.
type ScenarioKind string

const (
	// ScenarioClean is a full non-incremental build from scratch.
	ScenarioClean ScenarioKind = "clean"
	// ScenarioBaselineIncremental is a from-scratch build with incremental
	// compilation enabled (populates the incremental cache).
	ScenarioBaselineIncremental ScenarioKind = "baseline-incremental"
	// ScenarioCleanIncremental is a rebuild against a warm incremental cache
	// with no source changes.
	ScenarioCleanIncremental ScenarioKind = "clean-incremental"
	// ScenarioPatchedIncremental is a rebuild against a warm incremental
	// cache after applying a source patch, identified by Patch.
	ScenarioPatchedIncremental ScenarioKind = "patched-incremental"
)

// PatchPrintln is the patch label for the canonical one-line change used by
// trend summaries.
const PatchPrintln = "println"

// Scenario identifies the incremental-compilation state a Run was measured
// under. Patch is only set for ScenarioPatchedIncremental.
type Scenario struct {
	Kind  ScenarioKind `json:"kind" msgpack:"kind"`
	Patch string       `json:"patch,omitempty" msgpack:"patch,omitempty"`
}

// Label returns the human-readable run label used as a series key in graph
// and day responses.
func (s Scenario) Label() string {
	switch s.Kind {
	case ScenarioClean:
		return "clean"
	case ScenarioBaselineIncremental:
		return "baseline incremental"
	case ScenarioCleanIncremental:
		return "clean incremental"
	case ScenarioPatchedIncremental:
		return "patched incremental: " + s.Patch
	}
	return string(s.Kind)
}

// IsBaseCompile reports whether the scenario is the non-incremental baseline
// that trend summaries normalize against.
func (s Scenario) IsBaseCompile() bool {
	return s.Kind == ScenarioClean
}

// IsPatch reports whether the scenario rebuilds after an arbitrary source
// patch.
func (s Scenario) IsPatch() bool {
	return s.Kind == ScenarioPatchedIncremental
}

// Run is one measurement of a benchmark under a specific build tier
// (Release/Check flags, neither meaning a debug build), analysis mode and
// incremental scenario. Stats maps metric names to raw recorded values.
type Run struct {
	Release  bool               `json:"release" msgpack:"release"`
	Check    bool               `json:"check" msgpack:"check"`
	NLL      bool               `json:"nll,omitempty" msgpack:"nll,omitempty"`
	Scenario Scenario           `json:"state" msgpack:"state"`
	Stats    map[string]float64 `json:"stats" msgpack:"stats"`
}

// Name returns the run's series label. Alternate-analysis (NLL) runs are
// prefixed so they never collide with their standard counterparts.
func (r Run) Name() string {
	name := r.Scenario.Label()
	if r.NLL {
		name = "nll: " + name
	}
	return name
}

// Stat looks up a raw metric value by name.
func (r Run) Stat(name string) (float64, bool) {
	v, ok := r.Stats[name]
	return v, ok
}

// IsClean reports whether this is the standard full-build measurement.
// Alternate-analysis runs are tracked separately and never match.
func (r Run) IsClean() bool {
	return r.Scenario.Kind == ScenarioClean && !r.NLL
}

func (r Run) IsBaseIncr() bool {
	return r.Scenario.Kind == ScenarioBaselineIncremental && !r.NLL
}

func (r Run) IsCleanIncr() bool {
	return r.Scenario.Kind == ScenarioCleanIncremental && !r.NLL
}

// IsPrintlnIncr reports whether this run rebuilt after the canonical
// println patch, the sample trend summaries are built from.
func (r Run) IsPrintlnIncr() bool {
	return r.Scenario.Kind == ScenarioPatchedIncremental &&
		r.Scenario.Patch == PatchPrintln && !r.NLL
}

func (r Run) IsNLL() bool {
	return r.NLL
}
