// Package progress renders a live status line for a watch session: a spinner
// with the elapsed time on a terminal, plain lines otherwise.
package progress

import (
	"time"

	apperrors "github.com/tellydone/tellydone/internal/errors"
)

// SessionStatus represents the state of a watch session
type SessionStatus int

const (
	// SessionPending indicates the session has not started yet
	SessionPending SessionStatus = iota
	// SessionWatching indicates the process is being polled
	SessionWatching
	// SessionFinished indicates the process exited
	SessionFinished
	// SessionInterrupted indicates the watch was cancelled first
	SessionInterrupted
)

// String returns the string representation of SessionStatus
func (s SessionStatus) String() string {
	switch s {
	case SessionPending:
		return "pending"
	case SessionWatching:
		return "watching"
	case SessionFinished:
		return "finished"
	case SessionInterrupted:
		return "interrupted"
	default:
		return "unknown"
	}
}

// SessionInfo describes the watched process for display
type SessionInfo struct {
	// PID is the watched process id
	PID int
	// Label is the process command line, empty when labels are disabled
	Label string
	// Continuous indicates progress notifications are sent while running
	Continuous bool
	// Interval is the time between progress notifications
	Interval time.Duration
}

// Validate checks that all SessionInfo fields meet validation requirements
func (s SessionInfo) Validate() error {
	if s.PID <= 0 {
		return apperrors.NewArgumentError("pid must be > 0")
	}
	if s.Continuous && s.Interval <= 0 {
		return apperrors.NewArgumentError("interval must be > 0 in continuous mode")
	}
	return nil
}

// TerminalCapabilities encapsulates detected terminal features
type TerminalCapabilities struct {
	// IsTTY indicates whether stderr is a terminal (vs pipe/redirect)
	IsTTY bool
	// SupportsColor indicates whether terminal supports ANSI color codes
	SupportsColor bool
	// SupportsUnicode indicates whether terminal supports Unicode characters
	SupportsUnicode bool
	// Width is the terminal width in columns (0 if unknown/pipe)
	Width int
}

// ProgressSymbols defines the character set for visual indicators
type ProgressSymbols struct {
	// Checkmark is the success indicator ("✓" or "[OK]")
	Checkmark string
	// Failure is the failure indicator ("✗" or "[FAIL]")
	Failure string
	// SpinnerSet is the index into spinner.CharSets
	SpinnerSet int
}
