package shared

import (
	"os"
	"os/signal"
	"runtime"
	"sync"
	"syscall"
)

// RestoreOnSignal calls restore and exits if a termination signal arrives
// before stop is called. The exit code is 128+sig where the signal maps to
// a POSIX number.
func RestoreOnSignal(restore func()) (stop func()) {
	sigCh := make(chan os.Signal, 1)

	// always handle Interrupt (portable)
	sigs := []os.Signal{os.Interrupt}

	// add Unix-only signals
	if runtime.GOOS != "windows" {
		sigs = append(sigs, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGQUIT)
	}

	signal.Notify(sigCh, sigs...)

	done := make(chan struct{})
	go func() {
		select {
		case s := <-sigCh:
			restore()
			if ss, ok := s.(syscall.Signal); ok {
				os.Exit(128 + int(ss))
			}
			os.Exit(1)
		case <-done:
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			signal.Stop(sigCh)
			close(done)
		})
	}
}
