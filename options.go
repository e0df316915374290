package dson

import (
	"fmt"

	"github.com/kyr0/dson/internal/dsonerr"
	"github.com/kyr0/dson/internal/monitoring"
)

// Option configures a Codec built by New.
type Option func(c *Codec) error

// WithMaxDepth sets how many composite levels may nest, the root included.
// WithMaxDepth(1) accepts []any{1} and rejects []any{[]any{1}}.
func WithMaxDepth(depth int) Option {
	return func(c *Codec) error {
		if depth < 1 || depth > MaxDepthLimit {
			return fmt.Errorf("%w: max depth must be between 1 and %d, got %d", ErrInvalidConfiguration, MaxDepthLimit, depth)
		}
		c.maxDepth = depth
		return nil
	}
}

// WithEnvelope selects the envelope used by Marshal and Unmarshal.
func WithEnvelope(t Envelope) Option {
	return func(c *Codec) error {
		codec := t.Create()
		if codec == nil {
			return dsonerr.NewInvalidEnvelopeError(string(t))
		}
		c.envelope = codec
		return nil
	}
}

// WithLossyClone makes Clone and Serialize drop unsupported values instead
// of failing.
func WithLossyClone(lossy bool) Option {
	return func(c *Codec) error {
		c.lossyClone = lossy
		return nil
	}
}

// WithLogger logs every operation through logger.
func WithLogger(logger *StructuredLogger) Option {
	return func(c *Codec) error {
		if logger == nil {
			return fmt.Errorf("%w: logger cannot be nil", ErrInvalidConfiguration)
		}
		c.logger = logger
		return nil
	}
}

// WithObservabilityHook adds hook to the hooks notified of every operation.
// It may be given more than once.
func WithObservabilityHook(hook ObservabilityHook) Option {
	return func(c *Codec) error {
		if hook == nil {
			return fmt.Errorf("%w: observability hook cannot be nil", ErrInvalidConfiguration)
		}
		c.hooks = append(c.hooks, hook)
		return nil
	}
}

// WithMetricsCollector reports operation counters, timings, record counts and
// dropped values to collector.
func WithMetricsCollector(collector MetricsCollector) Option {
	return func(c *Codec) error {
		if collector == nil {
			return fmt.Errorf("%w: metrics collector cannot be nil", ErrInvalidConfiguration)
		}
		c.hooks = append(c.hooks, monitoring.NewMetricsObservabilityHook(collector))
		return nil
	}
}

// WithConfig applies a Config. It is validated first; a configured log level
// installs a logger writing to stderr.
func WithConfig(cfg Config) Option {
	return func(c *Codec) error {
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
		}
		t, err := ParseEnvelope(cfg.Envelope)
		if err != nil {
			return err
		}
		c.maxDepth = cfg.MaxDepth
		c.envelope = t.Create()
		c.lossyClone = cfg.LossyClone
		if logger := cfg.logger(); logger != nil {
			c.logger = logger
		}
		return nil
	}
}
