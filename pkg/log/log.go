// Package log provides colored console logging to stderr.
package log

import (
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
)

var red = color.New(color.FgRed).FprintfFunc()
var blue = color.New(color.FgBlue).FprintfFunc()
var yellow = color.New(color.FgYellow).FprintfFunc()

var (
	mu  sync.Mutex
	out io.Writer = os.Stderr
)

// SetOutput redirects all messages to w and returns the previous writer.
func SetOutput(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()

	prev := out
	out = w
	return prev
}

func writer() io.Writer {
	mu.Lock()
	defer mu.Unlock()
	return out
}

// ErrorMsg prints an error message in red.
func ErrorMsg(format string, a ...interface{}) {
	red(writer(), "[!] Error: "+format, a...)
}

// WarnMsg prints a warning in yellow.
func WarnMsg(format string, a ...interface{}) {
	yellow(writer(), "[*] Warning: "+format, a...)
}

// InfoMsg prints an informational message in blue.
func InfoMsg(format string, a ...interface{}) {
	blue(writer(), "[+] "+format, a...)
}
