package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tellydone/tellydone/internal/notify"
)

const (
	// TitleSucceeded is the title for a command that exited with status 0.
	TitleSucceeded = "Execution SUCCEED"
	// TitleFailed is the title for a command that exited with a non-zero status.
	TitleFailed = "Execution FAIL"
)

// ErrNoCommand is returned when Execute is called without a command.
var ErrNoCommand = errors.New("no command given")

// SpawnError reports that the command could not be started. It is distinct
// from a command that ran and exited non-zero.
type SpawnError struct {
	Argv []string
	Err  error
}

func (e *SpawnError) Error() string {
	if len(e.Argv) == 0 {
		return fmt.Sprintf("spawn: %v", e.Err)
	}
	return fmt.Sprintf("spawn %s: %v", e.Argv[0], e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// Result describes a finished command.
type Result struct {
	Command  string
	ExitCode int
	Duration time.Duration
}

// Succeeded reports whether the command exited with status 0.
func (r Result) Succeeded() bool {
	return r.ExitCode == 0
}

// Notification builds the single notification describing r.
func (r Result) Notification() notify.Notification {
	title, kind := TitleSucceeded, notify.TypeSuccess
	if !r.Succeeded() {
		title, kind = TitleFailed, notify.TypeFailure
	}
	body := fmt.Sprintf("Command: %s\nExecution time: % .2f seconds\nReturn Value: %d",
		r.Command, r.Duration.Seconds(), r.ExitCode)
	return notify.NewNotification(title, body, kind)
}

// Execute runs argv through spawner, waits for it, and dispatches exactly one
// notification with the command, its duration and its exit code. The exit
// code is returned unchanged. If the command cannot be started, Execute
// returns a *SpawnError and sends nothing.
//
// If notifier is nil, the command still runs but no notification is sent.
// Notifier panics are recovered so the result is always returned.
func Execute(ctx context.Context, notifier Notifier, spawner Spawner, argv []string) (Result, error) {
	if len(argv) == 0 {
		return Result{}, &SpawnError{Err: ErrNoCommand}
	}

	start := time.Now()
	code, err := spawner.Spawn(argv)
	duration := time.Since(start)
	if err != nil {
		var spawnErr *SpawnError
		if !errors.As(err, &spawnErr) {
			err = &SpawnError{Argv: argv, Err: err}
		}
		return Result{}, err
	}

	res := Result{
		Command:  strings.Join(argv, " "),
		ExitCode: code,
		Duration: duration,
	}
	notifyComplete(ctx, notifier, res.Notification())
	return res, nil
}

// notifyComplete safely calls Dispatch with panic recovery.
func notifyComplete(ctx context.Context, notifier Notifier, n notify.Notification) {
	if notifier == nil {
		return
	}
	defer func() { _ = recover() }()
	notifier.Dispatch(ctx, n)
}
