package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedModelType is wrapped by UnsupportedModelTypeError.
	ErrUnsupportedModelType = errors.New("unsupported model type")

	// ErrInvalidTruncation is wrapped by InvalidTruncationError.
	ErrInvalidTruncation = errors.New("invalid truncation")

	// ErrModelParse is wrapped by ModelParseError.
	ErrModelParse = errors.New("model parse error")

	// ErrInvalidComposition is wrapped by CompositionError.
	ErrInvalidComposition = errors.New("invalid composition")

	// ErrShapeMismatch is returned when depth-indexed arrays disagree in length.
	ErrShapeMismatch = errors.New("depth arrays differ in length")

	// ErrUnknownNuclide is returned when a nuclide identifier cannot be parsed.
	ErrUnknownNuclide = errors.New("unknown nuclide")

	// ErrInvalidElement is returned for element records that fail validation.
	ErrInvalidElement = errors.New("invalid element")

	// ErrCacheMiss is returned by atom data caches for absent keys.
	ErrCacheMiss = errors.New("atom data not cached")
)

// NoTruncation is the truncate_to_shell sentinel meaning "keep every shell".
const NoTruncation = -99

// UnsupportedModelTypeError is returned for an input_model.type other than
// "marcs" or "mesa".
type UnsupportedModelTypeError struct {
	Type string
}

func (e *UnsupportedModelTypeError) Error() string {
	return fmt.Sprintf("model type %q not recognized: must be either 'marcs' or 'mesa'", e.Type)
}

func (e *UnsupportedModelTypeError) Unwrap() error { return ErrUnsupportedModelType }

// InvalidTruncationError is returned for a negative shell count other than
// NoTruncation.
type InvalidTruncationError struct {
	Requested int
}

func (e *InvalidTruncationError) Error() string {
	return fmt.Sprintf("%d shells were requested for mesa model truncation: %d is the default for no truncation",
		e.Requested, NoTruncation)
}

func (e *InvalidTruncationError) Unwrap() error { return ErrInvalidTruncation }

// ModelParseError reports a malformed model file.
type ModelParseError struct {
	Format ModelFormat
	Path   string
	Line   int // 1-based; 0 when not tied to a line
	Err    error
}

func (e *ModelParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s model %s:%d: %v", e.Format, e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("%s model %s: %v", e.Format, e.Path, e.Err)
}

func (e *ModelParseError) Unwrap() []error { return []error{ErrModelParse, e.Err} }

// CompositionError reports mass fractions that cannot be derived consistently.
type CompositionError struct {
	Reason string
}

func (e *CompositionError) Error() string {
	return "composition: " + e.Reason
}

func (e *CompositionError) Unwrap() error { return ErrInvalidComposition }
