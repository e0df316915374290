// Package envelope encodes record tables for transport. Every envelope
// carries the same wire form (see record.ToWire); they differ only in the
// bytes they produce.
package envelope

import (
	"fmt"
	"strings"

	"github.com/kyr0/dson/internal/dsonerr"
	"github.com/kyr0/dson/internal/record"
)

// Codec converts a record table to bytes and back.
type Codec interface {
	// Encode validates records and returns their encoded form.
	Encode(records []record.Record) ([]byte, error)

	// Decode parses data and returns the validated records it carries.
	Decode(data []byte) ([]record.Record, error)

	// Type reports which envelope this codec implements.
	Type() Type
}

// Type names an envelope.
type Type string

const (
	// JSON is the textual envelope behind Stringify and Parse.
	JSON Type = "json"
	// CBOR is a compact binary envelope using deterministic encoding.
	CBOR Type = "cbor"
)

// IsValid checks if the envelope type is supported
func (t Type) IsValid() bool {
	switch t {
	case JSON, CBOR:
		return true
	default:
		return false
	}
}

// Create returns a codec for the envelope type, or nil for unknown types.
func (t Type) Create() Codec {
	switch t {
	case JSON:
		return JSONCodec{}
	case CBOR:
		return CBORCodec{}
	default:
		return nil
	}
}

func (t Type) String() string {
	return string(t)
}

// ParseType parses a string into a Type and validates it
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", fmt.Errorf("%w: must be one of [%s, %s]",
			dsonerr.NewInvalidEnvelopeError(s), JSON, CBOR)
	}
	return t, nil
}

// AllTypes returns all supported envelope types
func AllTypes() []Type {
	return []Type{JSON, CBOR}
}
