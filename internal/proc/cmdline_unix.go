//go:build unix && !linux

package proc

import (
	"os/exec"
	"strconv"
)

// readCmdline asks ps for the full argument list; there is no procfs here.
func readCmdline(pid int) (string, error) {
	out, err := exec.Command("ps", "-o", "args=", "-p", strconv.Itoa(pid)).Output()
	if err != nil {
		return "", err
	}
	return string(out), nil
}
