package atomdata

import (
	"errors"
	"fmt"
)

var (
	// ErrConsumed is returned when Prepare is called on a dataset that has
	// already handed its contents to a prepared dataset.
	ErrConsumed = errors.New("atom data already consumed by a previous prepare")

	// ErrMissingElement is returned when a requested atomic number is not in
	// the dataset.
	ErrMissingElement = errors.New("element missing from atom data")

	// ErrDuplicateElement is returned when a source lists an atomic number twice.
	ErrDuplicateElement = errors.New("duplicate element")

	// ErrEmptyDataset is returned when a source holds no elements.
	ErrEmptyDataset = errors.New("atom data has no elements")

	// ErrNoDirectorySource is returned when a directory is given but no
	// directory opener was configured.
	ErrNoDirectorySource = errors.New("no directory source configured")
)

// LoadError reports atom data that could not be read or validated.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load atom data %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// PrepareError reports a restriction request that the dataset cannot honor.
type PrepareError struct {
	Reason string
	Err    error
}

func (e *PrepareError) Error() string {
	if e.Err == nil {
		return "prepare atom data: " + e.Reason
	}
	return fmt.Sprintf("prepare atom data: %s: %v", e.Reason, e.Err)
}

func (e *PrepareError) Unwrap() error {
	return e.Err
}
