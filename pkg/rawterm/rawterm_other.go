//go:build !linux && !darwin

package rawterm

import (
	"errors"
	"time"
)

// Raw sessions need termios and select(2). Elsewhere no descriptor is
// treated as a terminal, so Open fails with ErrNotATerminal.

var errUnsupported = errors.New("raw terminal sessions are not supported on this platform")

type termios struct{}

func isTerminal(fd int) bool { return false }

func getTermios(fd int) (termios, error) { return termios{}, errUnsupported }

func setTermios(fd int, t *termios) error { return errUnsupported }

func makeRaw(t *termios) {}

func waitReadable(fd int, timeout time.Duration) error { return errUnsupported }

func readRetry(fd int, p []byte) (int, error) { return 0, errUnsupported }

func writeRetry(fd int, p []byte) (int, error) { return 0, errUnsupported }

func drain(fd int) error { return errUnsupported }
