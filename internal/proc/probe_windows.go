//go:build windows

package proc

import (
	"errors"

	"golang.org/x/sys/windows"
)

// stillActive is the exit code GetExitCodeProcess reports for a running process.
const stillActive = 259

func check(pid int) (Status, error) {
	h, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, uint32(pid))
	if err != nil {
		switch {
		case errors.Is(err, windows.ERROR_INVALID_PARAMETER):
			return StatusGone, nil
		case errors.Is(err, windows.ERROR_ACCESS_DENIED):
			return StatusUnauthorized, err
		default:
			return StatusUnknown, err
		}
	}
	defer windows.CloseHandle(h)

	var code uint32
	if err := windows.GetExitCodeProcess(h, &code); err != nil {
		return StatusUnknown, err
	}
	if code == stillActive {
		return StatusAlive, nil
	}
	return StatusGone, nil
}
