package dson

import "github.com/kyr0/dson/internal/monitoring"

type (
	// ObservabilityHook receives a notification for every codec operation
	// and every value lossy mode drops.
	ObservabilityHook = monitoring.ObservabilityHook

	// MetricsCollector receives counters, timings and values.
	MetricsCollector = monitoring.MetricsCollector

	StructuredLogger         = monitoring.StructuredLogger
	LoggerConfig             = monitoring.LoggerConfig
	LogLevel                 = monitoring.LogLevel
	LogFormat                = monitoring.LogFormat
	InMemoryMetricsCollector = monitoring.InMemoryMetricsCollector
	NoOpMetricsCollector     = monitoring.NoOpMetricsCollector
	NoOpObservabilityHook    = monitoring.NoOpObservabilityHook
)

const (
	LevelDebug = monitoring.LevelDebug
	LevelInfo  = monitoring.LevelInfo
	LevelWarn  = monitoring.LevelWarn
	LevelError = monitoring.LevelError

	FormatJSON    = monitoring.FormatJSON
	FormatText    = monitoring.FormatText
	FormatConsole = monitoring.FormatConsole
)

// Metric names reported when a MetricsCollector is configured.
const (
	MetricOperationStarted   = monitoring.MetricOperationStarted
	MetricOperationSucceeded = monitoring.MetricOperationSucceeded
	MetricOperationFailed    = monitoring.MetricOperationFailed
	MetricOperationDuration  = monitoring.MetricOperationDuration
	MetricErrors             = monitoring.MetricErrors
	MetricRecords            = monitoring.MetricRecords
	MetricValuesDropped      = monitoring.MetricValuesDropped
)

func NewStructuredLogger(config LoggerConfig) *StructuredLogger {
	return monitoring.NewStructuredLogger(config)
}

func NewInMemoryMetricsCollector() *InMemoryMetricsCollector {
	return monitoring.NewInMemoryMetricsCollector()
}

// NewLoggingObservabilityHook returns a hook that logs every operation
// through logger.
func NewLoggingObservabilityHook(logger *StructuredLogger) ObservabilityHook {
	if logger == nil {
		return monitoring.NewLoggingObservabilityHook(nil)
	}
	return monitoring.NewLoggingObservabilityHook(logger)
}

// NewCompositeObservabilityHook fans notifications out to every hook.
func NewCompositeObservabilityHook(hooks ...ObservabilityHook) ObservabilityHook {
	return monitoring.NewCompositeObservabilityHook(hooks...)
}
