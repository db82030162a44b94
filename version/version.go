// Package version reports the engine's own module version from the host
// binary's embedded build information.
package version

import "runtime/debug"

const modulePath = "github.com/anoideaopen/dynobj"

// fallback is reported when build information is unavailable or does not
// record this module, e.g. under `go run` from the working tree.
const fallback = "devel"

// Version returns the engine's module version as recorded in the running
// binary.
func Version() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return fallback
	}

	if bi.Main.Path == modulePath && bi.Main.Version != "" {
		return bi.Main.Version
	}

	for _, dep := range bi.Deps {
		if dep.Path == modulePath {
			return dep.Version
		}
	}

	return fallback
}
