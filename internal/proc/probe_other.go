//go:build !unix && !windows

package proc

import "errors"

func check(pid int) (Status, error) {
	return StatusUnknown, errors.ErrUnsupported
}
