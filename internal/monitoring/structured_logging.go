package monitoring

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// LogLevel represents the severity level of a log message
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of the log level
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

func (l LogLevel) slog() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseLogLevel accepts debug, info, warn (or warning) and error.
func ParseLogLevel(s string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// LogFormat represents the output format for logs
type LogFormat int

const (
	FormatJSON LogFormat = iota
	FormatText
	FormatConsole
)

func (f LogFormat) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatText:
		return "text"
	case FormatConsole:
		return "console"
	default:
		return "unknown"
	}
}

// ParseLogFormat accepts json, text and console.
func ParseLogFormat(s string) (LogFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json", "":
		return FormatJSON, nil
	case "text":
		return FormatText, nil
	case "console":
		return FormatConsole, nil
	}
	return FormatJSON, fmt.Errorf("unknown log format %q", s)
}

type contextKey string

// OperationIDKey is the context key under which codec operations carry their id.
const OperationIDKey contextKey = "operation_id"

// ContextWithOperationID returns a copy of ctx carrying id.
func ContextWithOperationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, OperationIDKey, id)
}

// OperationIDFromContext returns the id stored by ContextWithOperationID.
func OperationIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(OperationIDKey).(string)
	return id, ok
}

// StructuredLogger writes leveled key/value logs through log/slog.
type StructuredLogger struct {
	logger *slog.Logger
	level  LogLevel
}

// LoggerConfig configures the structured logger
type LoggerConfig struct {
	Level     LogLevel
	Format    LogFormat
	Output    io.Writer
	Component string
	Fields    map[string]any
}

// NewStructuredLogger creates a new structured logger with the given configuration
func NewStructuredLogger(config LoggerConfig) *StructuredLogger {
	if config.Output == nil {
		config.Output = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level: config.Level.slog(),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				a.Value = slog.StringValue(a.Value.Time().Format(time.RFC3339Nano))
			}
			return a
		},
	}

	var handler slog.Handler
	switch config.Format {
	case FormatText:
		handler = slog.NewTextHandler(config.Output, opts)
	case FormatConsole:
		handler = NewConsoleHandler(config.Output, config.Level)
	default:
		handler = slog.NewJSONHandler(config.Output, opts)
	}

	logger := slog.New(handler).With("service", "dson")
	if config.Component != "" {
		logger = logger.With("component", config.Component)
	}
	for k, v := range config.Fields {
		logger = logger.With(k, v)
	}

	return &StructuredLogger{logger: logger, level: config.Level}
}

// NewConsoleHandler returns a colorized human readable handler.
func NewConsoleHandler(output io.Writer, level LogLevel) slog.Handler {
	return log.NewWithOptions(output, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.000",
		Level:           log.Level(level.slog()),
	})
}

// DiscardLogger drops everything; it is the default for codecs built without
// a logger.
func DiscardLogger() *StructuredLogger {
	return &StructuredLogger{
		logger: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1})),
		level:  LevelError + 1,
	}
}

// With returns a logger that adds args to every record.
func (l *StructuredLogger) With(args ...any) *StructuredLogger {
	return &StructuredLogger{logger: l.logger.With(args...), level: l.level}
}

// WithContext adds the operation id carried by ctx, if any.
func (l *StructuredLogger) WithContext(ctx context.Context) *StructuredLogger {
	if id, ok := OperationIDFromContext(ctx); ok {
		return l.With(string(OperationIDKey), id)
	}
	return l
}

// Enabled reports whether records at level are written.
func (l *StructuredLogger) Enabled(level LogLevel) bool {
	return level >= l.level
}

func (l *StructuredLogger) Debug(msg string, args ...any) { l.logger.Debug(msg, args...) }
func (l *StructuredLogger) Info(msg string, args ...any)  { l.logger.Info(msg, args...) }
func (l *StructuredLogger) Warn(msg string, args ...any)  { l.logger.Warn(msg, args...) }
func (l *StructuredLogger) Error(msg string, args ...any) { l.logger.Error(msg, args...) }

// LogCodecOperation logs the outcome of one codec operation with standard fields.
func (l *StructuredLogger) LogCodecOperation(ctx context.Context, operation string, duration time.Duration, err error, metadata map[string]any) {
	args := []any{
		"operation", operation,
		"duration", duration.String(),
		"duration_ms", duration.Milliseconds(),
	}
	for _, k := range sortedKeys(metadata) {
		args = append(args, k, metadata[k])
	}

	logger := l.WithContext(ctx)
	if err != nil {
		args = append(args, "error", err.Error(), "error_type", fmt.Sprintf("%T", err))
		logger.Error("codec operation failed", args...)
		return
	}
	logger.Debug("codec operation completed", args...)
}

// LogValueDropped logs a value that lossy mode left out of the output.
func (l *StructuredLogger) LogValueDropped(ctx context.Context, operation, path, typeName string) {
	l.WithContext(ctx).Debug("unsupported value dropped",
		"operation", operation,
		"path", path,
		"type", typeName,
	)
}
