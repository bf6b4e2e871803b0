package cli

import (
	"github.com/go2opsin/go2opsin/internal/cli/shared"
)

// Exit codes for the go2opsin CLI (re-exported from shared)
// These codes support programmatic composition and CI/CD integration
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = shared.ExitSuccess

	// ExitConversionFailed indicates OPSIN could not be run or its output used
	ExitConversionFailed = shared.ExitConversionFailed

	// ExitInvalidArguments indicates invalid command arguments or configuration
	ExitInvalidArguments = shared.ExitInvalidArguments

	// ExitMissingDependencies indicates Java or the OPSIN jar is missing
	ExitMissingDependencies = shared.ExitMissingDependency

	// ExitTimeout indicates OPSIN was killed after the configured timeout
	ExitTimeout = shared.ExitTimeout
)

// ExitCode returns the exit code from an error (re-exported from shared).
func ExitCode(err error) int {
	return shared.ExitCode(err)
}
