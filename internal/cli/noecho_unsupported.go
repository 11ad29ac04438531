//go:build !windows && !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly

package cli

import (
	"errors"
	"os"
)

func readLineNoEcho(_ *os.File) ([]byte, error) {
	return nil, errors.New("no-echo input is not supported on this platform")
}
