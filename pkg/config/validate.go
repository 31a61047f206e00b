package config

import (
	"fmt"
	"slices"
	"time"
)

// ValidatableConfig ...
type ValidatableConfig interface {
	Validate() []error
}

// Validate ...
func Validate(cfgs ...ValidatableConfig) []error {
	var out []error

	for _, cfg := range cfgs {
		out = append(out, cfg.Validate()...)
	}

	return out
}

func validateTimeout(d time.Duration) error {
	if d < MinTimeout || d > MaxTimeout {
		return fmt.Errorf("%s not in [%s, %s]", d, MinTimeout, MaxTimeout)
	}

	return nil
}

func validateFormat(f Format) error {
	if !slices.Contains(Formats, f) {
		return fmt.Errorf("%q is not one of %s", f, formatNames())
	}

	return nil
}
