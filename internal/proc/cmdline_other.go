//go:build !unix

package proc

import "errors"

func readCmdline(int) (string, error) {
	return "", errors.ErrUnsupported
}
