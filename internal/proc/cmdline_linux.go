//go:build linux

package proc

import (
	"os"
	"strconv"
	"strings"
)

// readCmdline reads the argument vector the kernel recorded at exec time.
func readCmdline(pid int) (string, error) {
	data, err := os.ReadFile("/proc/" + strconv.Itoa(pid) + "/cmdline")
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(string(data), "\x00", " "), nil
}
