package dson

import (
	"github.com/kyr0/dson/internal/envelope"
	"github.com/kyr0/dson/internal/serialization"
)

// Envelope names the byte encoding used by Marshal and Unmarshal.
type Envelope = envelope.Type

const (
	// EnvelopeJSON is the textual envelope. Stringify and Parse always use it.
	EnvelopeJSON = envelope.JSON

	// EnvelopeCBOR is a compact binary envelope with deterministic encoding.
	EnvelopeCBOR = envelope.CBOR
)

// ParseEnvelope parses an envelope name such as "json" or "cbor".
func ParseEnvelope(s string) (Envelope, error) {
	return envelope.ParseType(s)
}

// Environment variable names read by LoadConfigFromEnvironment and
// LoadConfigFromDotEnv.
const (
	// EnvMaxDepth bounds composite nesting. Example: "2000"
	EnvMaxDepth = "DSON_MAX_DEPTH"

	// EnvEnvelope selects the Marshal/Unmarshal envelope: "json" or "cbor".
	EnvEnvelope = "DSON_ENVELOPE"

	// EnvLossyClone makes Clone drop unsupported values instead of failing.
	EnvLossyClone = "DSON_LOSSY_CLONE"

	// EnvLogLevel enables logging at the given level: debug, info, warn or error.
	EnvLogLevel = "DSON_LOG_LEVEL"

	// EnvLogFormat selects the log format: json, text or console.
	EnvLogFormat = "DSON_LOG_FORMAT"
)

// Default values
const (
	// DefaultMaxDepth is the nesting limit of a codec built without WithMaxDepth.
	DefaultMaxDepth = serialization.DefaultMaxDepth

	// DefaultEnvelope is the Marshal/Unmarshal envelope of a codec built
	// without WithEnvelope.
	DefaultEnvelope = EnvelopeJSON

	// DefaultLogFormat applies when a log level is configured without a format.
	DefaultLogFormat = "json"
)

// MaxDepthLimit is the largest accepted nesting limit.
const MaxDepthLimit = 100_000
