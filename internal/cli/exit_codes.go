package cli

import (
	"github.com/tellydone/tellydone/internal/cli/shared"
)

// Exit codes for the tellydone CLI (re-exported from shared)
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = shared.ExitSuccess

	// ExitFailure indicates a runtime failure
	ExitFailure = shared.ExitFailure

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = shared.ExitInvalidArguments

	// ExitInvalidConfig indicates the configuration could not be loaded
	ExitInvalidConfig = shared.ExitInvalidConfig

	// ExitMissingDependencies indicates something required is missing
	ExitMissingDependencies = shared.ExitMissingDependency

	// ExitSpawnFailed indicates exec could not start the command
	ExitSpawnFailed = shared.ExitSpawnFailed

	// ExitInterrupted indicates a watch was stopped by a signal
	ExitInterrupted = shared.ExitInterrupted
)

// NewExitError creates a new exit error with the given code (re-exported from shared).
func NewExitError(code int) error {
	return shared.NewExitError(code)
}

// ExitCode returns the exit code from an error (re-exported from shared).
func ExitCode(err error) int {
	return shared.ExitCode(err)
}
