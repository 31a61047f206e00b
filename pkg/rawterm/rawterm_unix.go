//go:build linux || darwin

package rawterm

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

type termios = unix.Termios

// select(2) cannot watch descriptors at or above FD_SETSIZE.
const maxSelectFd = 1024

func isTerminal(fd int) bool {
	return term.IsTerminal(fd)
}

func getTermios(fd int) (termios, error) {
	t, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return termios{}, err
	}
	return *t, nil
}

func setTermios(fd int, t *termios) error {
	return unix.IoctlSetTermios(fd, ioctlSetTermios, t)
}

// makeRaw turns off canonical input, echo, signal characters and output
// post-processing, and selects 8 data bits without parity.
func makeRaw(t *termios) {
	t.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.PARMRK | unix.ISTRIP |
		unix.INLCR | unix.IGNCR | unix.ICRNL | unix.IXON
	t.Oflag &^= unix.OPOST
	t.Lflag &^= unix.ICANON | unix.ECHO | unix.ISIG | unix.IEXTEN
	t.Cflag &^= unix.CSIZE | unix.PARENB
	t.Cflag |= unix.CS8
	t.Cc[unix.VMIN] = 1
	t.Cc[unix.VTIME] = 0
}

// waitReadable blocks in select(2) until fd is readable or timeout elapses.
// Interrupted waits resume with the remaining time.
func waitReadable(fd int, timeout time.Duration) error {
	if fd >= maxSelectFd {
		return fmt.Errorf("%w: descriptor %d exceeds FD_SETSIZE", ErrRead, fd)
	}

	deadline := time.Now().Add(timeout)
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return ErrTimeout
		}

		var rfds unix.FdSet
		rfds.Zero()
		rfds.Set(fd)
		tv := unix.NsecToTimeval(remaining.Nanoseconds())

		n, err := unix.Select(fd+1, &rfds, nil, nil, &tv)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil {
			return fmt.Errorf("%w: select: %w", ErrRead, err)
		}
		if n == 0 || !rfds.IsSet(fd) {
			return ErrTimeout
		}
		return nil
	}
}

func readRetry(fd int, p []byte) (int, error) {
	for {
		n, err := unix.Read(fd, p)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		return n, err
	}
}

func writeRetry(fd int, p []byte) (int, error) {
	written := 0
	for written < len(p) {
		n, err := unix.Write(fd, p[written:])
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil {
			return written, err
		}
		if n == 0 {
			break
		}
		written += n
	}
	return written, nil
}
