package dson

import (
	"fmt"
	"strings"

	"github.com/hengadev/errsx"

	"github.com/kyr0/dson/internal/envelope"
	"github.com/kyr0/dson/internal/monitoring"
)

// Config holds the settings of a Codec in a form that can be loaded from the
// environment, a .env file or YAML.
//
// Every field is optional:
//   - MaxDepth: nesting limit (default: DefaultMaxDepth)
//   - Envelope: "json" or "cbor" for Marshal/Unmarshal (default: "json")
//   - LossyClone: make Clone drop unsupported values (default: false)
//   - LogLevel: enables logging to stderr when set
//   - LogFormat: "json", "text" or "console" (default: "json")
//
// Example usage:
//
//	cfg, err := dson.LoadConfigFile("dson.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	codec, err := dson.New(dson.WithConfig(cfg))
type Config struct {
	MaxDepth   int    `yaml:"max_depth"`
	Envelope   string `yaml:"envelope"`
	LossyClone bool   `yaml:"lossy_clone"`
	LogLevel   string `yaml:"log_level"`
	LogFormat  string `yaml:"log_format"`
}

// Validate checks every field, collecting all problems, and applies defaults.
// The returned error is an errsx.Map keyed by field name.
func (c *Config) Validate() error {
	errs := errsx.Map{}

	switch {
	case c.MaxDepth == 0:
		c.MaxDepth = DefaultMaxDepth
	case c.MaxDepth < 0 || c.MaxDepth > MaxDepthLimit:
		errs.Set("max_depth", fmt.Errorf("max depth must be between 1 and %d, got %d", MaxDepthLimit, c.MaxDepth))
	}

	if c.Envelope == "" {
		c.Envelope = DefaultEnvelope.String()
	} else if t, err := envelope.ParseType(c.Envelope); err != nil {
		errs.Set("envelope", err)
	} else {
		c.Envelope = t.String()
	}

	if c.LogLevel != "" {
		if _, err := monitoring.ParseLogLevel(c.LogLevel); err != nil {
			errs.Set("log_level", err)
		}
		if c.LogFormat == "" {
			c.LogFormat = DefaultLogFormat
		}
	}
	if c.LogFormat != "" {
		if _, err := monitoring.ParseLogFormat(c.LogFormat); err != nil {
			errs.Set("log_format", err)
		}
	}

	return errs.AsError()
}

// logger builds the logger the configuration asks for, or nil when logging
// is not configured. The configuration must be valid.
func (c Config) logger() *monitoring.StructuredLogger {
	if strings.TrimSpace(c.LogLevel) == "" {
		return nil
	}
	level, _ := monitoring.ParseLogLevel(c.LogLevel)
	format, _ := monitoring.ParseLogFormat(c.LogFormat)
	return monitoring.NewStructuredLogger(monitoring.LoggerConfig{
		Level:     level,
		Format:    format,
		Component: "codec",
	})
}
