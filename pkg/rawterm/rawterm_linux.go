//go:build linux

package rawterm

import "golang.org/x/sys/unix"

const (
	ioctlGetTermios = unix.TCGETS
	ioctlSetTermios = unix.TCSETS
)

// drain is tcdrain(3): TCSBRK with a non-zero argument waits for output
// to be transmitted without sending a break.
func drain(fd int) error {
	return unix.IoctlSetInt(fd, unix.TCSBRK, 1)
}
