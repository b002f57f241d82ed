package lifecycle

import (
	"errors"
	"io"
	"os"
	"os/exec"
	"syscall"
)

// ExecSpawner runs commands as child processes with the given streams.
// The zero value is not usable; use NewExecSpawner.
type ExecSpawner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecSpawner returns a spawner whose children inherit the standard
// streams of this process, unmodified.
func NewExecSpawner() *ExecSpawner {
	return &ExecSpawner{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Spawn starts argv, waits for it and returns its exit status. A child
// terminated by a signal reports 128 plus the signal number, as shells do.
func (s *ExecSpawner) Spawn(argv []string) (int, error) {
	if len(argv) == 0 {
		return -1, &SpawnError{Err: ErrNoCommand}
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = s.Stdin
	cmd.Stdout = s.Stdout
	cmd.Stderr = s.Stderr

	if err := cmd.Start(); err != nil {
		return -1, &SpawnError{Argv: argv, Err: err}
	}
	err := cmd.Wait()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitStatus(exitErr.ProcessState), nil
	}
	// Wait failed for a reason other than the exit status, e.g. copying a
	// non-file stream; the process did run, so report what it returned.
	if cmd.ProcessState != nil {
		return exitStatus(cmd.ProcessState), nil
	}
	return -1, &SpawnError{Argv: argv, Err: err}
}

func exitStatus(ps *os.ProcessState) int {
	if code := ps.ExitCode(); code >= 0 {
		return code
	}
	if ws, ok := ps.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return 128 + int(ws.Signal())
	}
	return -1
}
