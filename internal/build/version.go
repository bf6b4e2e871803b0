// Package build provides version and build information for go2opsin.
// This package intentionally has no dependencies on other internal packages
// to avoid import cycles.
package build

var (
	// Version information - set via ldflags during build
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// OpsinVersion is the OPSIN release whose jar go2opsin expects by default.
const OpsinVersion = "2.7.0"

// IsDevBuild returns true if running a development build (not a release).
func IsDevBuild() bool {
	return Version == "dev"
}
