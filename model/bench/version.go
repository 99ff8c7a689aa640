package bench

import (
	"strings"

	"github.com/coreos/go-semver/semver"
)

// incrementalSince is the first toolchain release that shipped incremental
// compilation.
var incrementalSince = semver.New("1.24.0")

// VersionSupportsIncremental reports whether the toolchain identified by the
// given version label can produce incremental measurements. Numbered releases
// qualify from 1.24.0 on; "beta" and master builds always do.
func VersionSupportsIncremental(version string) bool {
	if version == "beta" || strings.HasPrefix(version, "master") {
		return true
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return false
	}
	return !v.LessThan(*incrementalSince)
}
