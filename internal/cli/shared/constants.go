// Package shared provides constants and helpers used across CLI subpackages.
// This package has no dependencies on other CLI packages to avoid circular imports.
package shared

import (
	"errors"
	"fmt"

	apperrors "github.com/tellydone/tellydone/internal/errors"
)

// Command group IDs for organizing help output
const (
	GroupGettingStarted = "getting-started"
	GroupMonitoring     = "monitoring"
	GroupConfiguration  = "configuration"
)

// Exit codes for CLI commands
const (
	ExitSuccess           = 0
	ExitFailure           = 1
	ExitInvalidArguments  = 2
	ExitInvalidConfig     = 3
	ExitMissingDependency = 4
	ExitSpawnFailed       = 127
	ExitInterrupted       = 130
)

// exitError is a custom error type that carries an exit code and,
// optionally, the error that caused it.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return fmt.Sprintf("exit code %d", e.code)
}

func (e *exitError) Unwrap() error {
	return e.err
}

// NewExitError creates a new exit error with the given code.
func NewExitError(code int) error {
	return &exitError{code: code}
}

// WithExitCode attaches an exit code to err. The error is still printed.
func WithExitCode(err error, code int) error {
	return &exitError{code: code, err: err}
}

// IsSilent reports whether err only carries an exit code and has nothing
// to print.
func IsSilent(err error) bool {
	var e *exitError
	return errors.As(err, &e) && e.err == nil
}

// ExitCode returns the exit code from an error. CLI errors map to a code
// by category; anything else is a generic failure.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var e *exitError
	if errors.As(err, &e) {
		return e.code
	}
	if cliErr := apperrors.AsCLIError(err); cliErr != nil {
		switch cliErr.Category {
		case apperrors.Argument:
			return ExitInvalidArguments
		case apperrors.Configuration:
			return ExitInvalidConfig
		case apperrors.Prerequisite:
			return ExitMissingDependency
		}
	}
	return ExitFailure
}
