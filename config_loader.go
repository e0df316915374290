package dson

import (
	"fmt"
	"os"
	"strconv"

	"github.com/hengadev/errsx"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// LoadConfigFromEnvironment reads the DSON_* environment variables and
// returns a validated Config. Unset variables keep their defaults.
//
// Recognised variables:
//   - DSON_MAX_DEPTH: nesting limit
//   - DSON_ENVELOPE: "json" or "cbor"
//   - DSON_LOSSY_CLONE: boolean
//   - DSON_LOG_LEVEL: debug, info, warn or error
//   - DSON_LOG_FORMAT: json, text or console
//
// Example usage (12-factor app):
//
//	cfg, err := dson.LoadConfigFromEnvironment()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	codec, err := dson.New(dson.WithConfig(cfg))
func LoadConfigFromEnvironment() (Config, error) {
	return loadConfig(os.LookupEnv)
}

// LoadConfigFromDotEnv reads the DSON_* variables from .env files (".env"
// when no path is given). The process environment is neither read nor
// modified.
func LoadConfigFromDotEnv(paths ...string) (Config, error) {
	values, err := godotenv.Read(paths...)
	if err != nil {
		return Config{}, fmt.Errorf("%w: failed to read env file: %v", ErrInvalidConfiguration, err)
	}
	return loadConfig(func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	})
}

// LoadConfigFile reads a YAML configuration file:
//
//	max_depth: 2000
//	envelope: cbor
//	lossy_clone: false
//	log_level: debug
//	log_format: console
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes and validates a YAML configuration document.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfiguration, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	return cfg, nil
}

func loadConfig(lookup func(string) (string, bool)) (Config, error) {
	var cfg Config
	errs := errsx.Map{}

	if v, ok := lookup(EnvMaxDepth); ok && v != "" {
		depth, err := strconv.Atoi(v)
		if err != nil {
			errs.Set(EnvMaxDepth, fmt.Errorf("must be an integer, got %q", v))
		}
		cfg.MaxDepth = depth
	}
	if v, ok := lookup(EnvLossyClone); ok && v != "" {
		lossy, err := strconv.ParseBool(v)
		if err != nil {
			errs.Set(EnvLossyClone, fmt.Errorf("must be a boolean, got %q", v))
		}
		cfg.LossyClone = lossy
	}
	cfg.Envelope, _ = lookup(EnvEnvelope)
	cfg.LogLevel, _ = lookup(EnvLogLevel)
	cfg.LogFormat, _ = lookup(EnvLogFormat)

	if err := errs.AsError(); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%w: configuration validation failed: %w", ErrInvalidConfiguration, err)
	}
	return cfg, nil
}
