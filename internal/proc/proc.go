// Package proc probes whether an OS process exists and resolves a display
// label for it.
//
// Liveness is probed without touching the target: on Unix by sending signal 0,
// on Windows by opening a query handle. Only a definitive "no such process"
// answer counts as gone. Permission errors and anything unexpected are reported
// as alive so that a watcher keeps watching rather than announcing a
// completion that did not happen.
package proc

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidPID is returned for process IDs that can never name a single process.
var ErrInvalidPID = errors.New("invalid process id")

// Status is the outcome of a liveness check.
type Status int

const (
	// StatusAlive means the process exists and could be signalled.
	StatusAlive Status = iota
	// StatusGone means the OS reported that no such process exists.
	StatusGone
	// StatusUnauthorized means the process exists but we may not signal it.
	StatusUnauthorized
	// StatusUnknown means the check failed for another reason.
	StatusUnknown
)

func (s Status) String() string {
	switch s {
	case StatusAlive:
		return "alive"
	case StatusGone:
		return "gone"
	case StatusUnauthorized:
		return "unauthorized"
	case StatusUnknown:
		return "unknown"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Alive reports whether the status should be treated as a running process.
// Everything except StatusGone counts as alive.
func (s Status) Alive() bool {
	return s != StatusGone
}

// Handle identifies the watched process. Label is resolved once when the
// session starts and is never refreshed.
type Handle struct {
	PID   int
	Label string
}

// Display returns the label, or the fallback label when none was resolved.
func (h Handle) Display() string {
	if h.Label != "" {
		return h.Label
	}
	return FallbackLabel(h.PID)
}

// Check probes pid and returns the classified outcome. The error is non-nil
// for StatusUnauthorized and StatusUnknown and carries the OS detail.
func Check(pid int) (Status, error) {
	if pid <= 0 {
		return StatusGone, fmt.Errorf("%w: %d", ErrInvalidPID, pid)
	}
	return check(pid)
}

// IsAlive reports whether pid should be considered running.
func IsAlive(pid int) bool {
	st, _ := Check(pid)
	return st.Alive()
}

// FallbackLabel is the label used when a process command line is unavailable.
func FallbackLabel(pid int) string {
	return fmt.Sprintf("PID %d", pid)
}

// ResolveLabel returns the command line the process was started with, or
// FallbackLabel(pid) when it cannot be read.
func ResolveLabel(pid int) string {
	if pid <= 0 {
		return FallbackLabel(pid)
	}
	cmdline, err := readCmdline(pid)
	if err != nil {
		return FallbackLabel(pid)
	}
	cmdline = strings.TrimSpace(cmdline)
	if cmdline == "" {
		return FallbackLabel(pid)
	}
	return cmdline
}

// Prober is the liveness and label collaborator used by the watch loop.
type Prober interface {
	Check(pid int) (Status, error)
	ResolveLabel(pid int) string
}

// System probes the running operating system.
type System struct{}

// Check implements Prober.
func (System) Check(pid int) (Status, error) { return Check(pid) }

// ResolveLabel implements Prober.
func (System) ResolveLabel(pid int) string { return ResolveLabel(pid) }
