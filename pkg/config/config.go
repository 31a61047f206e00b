// Package config holds the validated settings of a terminal size query.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Format selects how a discovered size is printed.
type Format string

const (
	FormatNone  Format = "none"  // print nothing
	FormatPlain Format = "plain" // "ROWS COLS"
	FormatSh    Format = "sh"    // Bourne shell assignments
	FormatCsh   Format = "csh"   // C shell setenv commands
)

// Formats lists every valid Format.
var Formats = []Format{FormatNone, FormatPlain, FormatSh, FormatCsh}

const (
	MinTimeout = 1 * time.Millisecond
	MaxTimeout = 60 * time.Second
)

// Query configures one size query.
type Query struct {
	Device  string        // terminal device path, empty for stdin
	Timeout time.Duration // deadline for each byte of the reply
	Verbose bool
	Format  Format
}

func (c *Query) Validate() []error {
	var errors []error

	if err := validateTimeout(c.Timeout); err != nil {
		errors = append(errors, fmt.Errorf("'--timeout': %s", err))
	}

	if err := validateFormat(c.Format); err != nil {
		errors = append(errors, fmt.Errorf("'--format': %s", err))
	}

	return errors
}

// UsesStdin reports whether the query runs on the process's stdin.
func (c *Query) UsesStdin() bool {
	return c.Device == ""
}

func formatNames() string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return strings.Join(names, "|")
}
