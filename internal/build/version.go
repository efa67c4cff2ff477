// Package build holds the identifiers stamped into the termdeck binary
// at link time via -ldflags. A plain source build reports the defaults.
package build

var (
	// Version is the release tag, or "dev" for unstamped builds.
	Version = "dev"
	// Commit is the short hash of the built revision.
	Commit = "none"
	// BuildTime is when the binary was produced.
	BuildTime = "unknown"
)

// FullVersion combines the release tag and commit hash into the string
// reported by the --version flag, e.g. "1.2.0+4f9c1d2".
func FullVersion() string {
	return Version + "+" + Commit
}
