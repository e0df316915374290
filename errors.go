package dson

import (
	"errors"

	"github.com/kyr0/dson/internal/dsonerr"
)

var (
	// ErrUnsupportedType reports a value outside the catalogue met by a strict
	// operation.
	ErrUnsupportedType = dsonerr.ErrUnsupportedType

	// ErrDepthExceeded reports a graph nested deeper than the codec's limit.
	ErrDepthExceeded = dsonerr.ErrDepthExceeded

	// ErrMalformedRecord reports a corrupt or hand-crafted record table.
	ErrMalformedRecord = dsonerr.ErrMalformedRecord

	ErrInvalidConfiguration = dsonerr.ErrInvalidConfiguration
	ErrInvalidEnvelope      = dsonerr.ErrInvalidEnvelope
)

// IsClassificationError reports whether err was caused by an unsupported value.
func IsClassificationError(err error) bool {
	return errors.Is(err, ErrUnsupportedType)
}

// IsDepthError reports whether err was caused by exceeding the nesting limit.
func IsDepthError(err error) bool {
	return errors.Is(err, ErrDepthExceeded)
}

// IsMalformedRecordError reports whether err was caused by an invalid record table.
func IsMalformedRecordError(err error) bool {
	return errors.Is(err, ErrMalformedRecord)
}

// IsConfigurationError reports whether err was caused by invalid codec options
// or configuration.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrInvalidConfiguration) || errors.Is(err, ErrInvalidEnvelope)
}
