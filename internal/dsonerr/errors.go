package dsonerr

import (
	"errors"
	"fmt"
)

var (
	// Codec errors
	ErrUnsupportedType = errors.New("unsupported type")
	ErrDepthExceeded   = errors.New("maximum depth exceeded")
	ErrMalformedRecord = errors.New("malformed record")

	// Setup errors
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrInvalidEnvelope      = errors.New("invalid envelope")
)

// NewClassificationError reports a value outside the built-in catalogue found in strict mode.
func NewClassificationError(path string, typeName string, op Operation) error {
	return fmt.Errorf("%w: value at %s has unsupported type %s for %s operation",
		ErrUnsupportedType, path, typeName, op)
}

// NewDepthError reports a graph nested deeper than the configured bound.
func NewDepthError(path string, limit int, op Operation) error {
	return fmt.Errorf("%w: value at %s is nested deeper than %d for %s operation",
		ErrDepthExceeded, path, limit, op)
}

func NewMalformedRecordError(index int, details string) error {
	if index < 0 {
		return fmt.Errorf("%w: %s", ErrMalformedRecord, details)
	}
	return fmt.Errorf("%w: record %d: %s", ErrMalformedRecord, index, details)
}

func NewIndexOutOfRangeError(index int, target int, size int) error {
	return fmt.Errorf("%w: record %d references index %d outside table of %d records",
		ErrMalformedRecord, index, target, size)
}

func NewPayloadMismatchError(index int, tag string, expected string) error {
	return fmt.Errorf("%w: record %d tagged %s must carry %s",
		ErrMalformedRecord, index, tag, expected)
}

func NewInvalidEnvelopeError(name string) error {
	return fmt.Errorf("%w: '%s' is not a known envelope", ErrInvalidEnvelope, name)
}
