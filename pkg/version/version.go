// Package version exposes build-time version metadata for the flowmap binary.
package version

import "runtime/debug"

const unknown = "<unknown>"

// These are overridden at build time via -ldflags.
var (
	// Version is the semantic version of the binary.
	Version = unknown

	// Commit is the Git hash the binary was built from.
	Commit = unknown

	// Date is the build timestamp.
	Date = unknown
)

// InitBinaryVersion fills in missing fields from the embedded module
// build info when the binary was built without ldflags.
func InitBinaryVersion() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	if Version == unknown && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}

	if Commit != unknown {
		return
	}

	for _, setting := range info.Settings {
		if setting.Key == "vcs.revision" {
			Commit = setting.Value

			break
		}
	}
}
