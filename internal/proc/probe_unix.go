//go:build unix

package proc

import (
	"errors"

	"golang.org/x/sys/unix"
)

// check sends signal 0, which performs the existence and permission checks
// of kill(2) without delivering anything.
func check(pid int) (Status, error) {
	err := unix.Kill(pid, 0)
	switch {
	case err == nil:
		return StatusAlive, nil
	case errors.Is(err, unix.ESRCH):
		return StatusGone, nil
	case errors.Is(err, unix.EPERM):
		return StatusUnauthorized, err
	default:
		return StatusUnknown, err
	}
}
