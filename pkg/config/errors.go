package config

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyMerged is returned when overrides are merged into a
	// Configuration that already received a merge.
	ErrAlreadyMerged = errors.New("configuration already received overrides")
	// ErrNotScalar is returned when an override targets a mapping or list.
	ErrNotScalar = errors.New("override target is not a scalar field")
)

// ValidationError reports a document that failed to load or validate.
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid configuration: %v", e.Err)
	}
	return fmt.Sprintf("invalid configuration %s: %v", e.Path, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// OverrideError reports an override key that cannot be applied.
type OverrideError struct {
	Key string
	Err error
}

func (e *OverrideError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("override: %v", e.Err)
	}
	return fmt.Sprintf("override %q: %v", e.Key, e.Err)
}

func (e *OverrideError) Unwrap() error {
	return e.Err
}
