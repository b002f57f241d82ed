// Package lifecycle runs a command to completion, measures it and sends a
// single notification describing the outcome.
//
// The package is intentionally minimal: no goroutines and no retries. The
// child is waited on directly; the caller blocks until it exits, however long
// that takes.
package lifecycle

import (
	"context"

	"github.com/tellydone/tellydone/internal/notify"
)

// Notifier defines the interface for notification dispatch.
// This interface is satisfied by *notify.Dispatcher.
//
// A nil Notifier is allowed; the command still runs but nothing is sent.
type Notifier interface {
	// Dispatch delivers n to every endpoint. Delivery failures are reported,
	// never returned as errors.
	Dispatch(ctx context.Context, n notify.Notification) notify.Report
}

// Spawner starts a command and blocks until it exits.
type Spawner interface {
	// Spawn runs argv and returns its exit code. A non-nil error means the
	// command could not be run at all; a non-zero exit code is not an error.
	Spawn(argv []string) (int, error)
}
