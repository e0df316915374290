package monitoring

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// ObservabilityHook receives notifications for every codec operation.
type ObservabilityHook interface {
	// Called before the operation starts
	OnOperationStart(ctx context.Context, operation string, metadata map[string]any)

	// Called after the operation completes (success or failure)
	OnOperationComplete(ctx context.Context, operation string, duration time.Duration, err error, metadata map[string]any)

	// Called when the operation fails
	OnError(ctx context.Context, operation string, err error, metadata map[string]any)

	// Called for each unsupported value lossy mode leaves out
	OnValueDropped(ctx context.Context, operation string, path string, typeName string)
}

// NoOpObservabilityHook is a no-op implementation of ObservabilityHook
type NoOpObservabilityHook struct{}

func (n *NoOpObservabilityHook) OnOperationStart(ctx context.Context, operation string, metadata map[string]any) {
}
func (n *NoOpObservabilityHook) OnOperationComplete(ctx context.Context, operation string, duration time.Duration, err error, metadata map[string]any) {
}
func (n *NoOpObservabilityHook) OnError(ctx context.Context, operation string, err error, metadata map[string]any) {
}
func (n *NoOpObservabilityHook) OnValueDropped(ctx context.Context, operation string, path string, typeName string) {
}

// Logger is the subset of StructuredLogger the logging hook needs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// LoggingObservabilityHook logs all operations
type LoggingObservabilityHook struct {
	logger Logger
}

// NewLoggingObservabilityHook creates a new logging observability hook
func NewLoggingObservabilityHook(logger Logger) *LoggingObservabilityHook {
	if logger == nil {
		logger = NewStructuredLogger(LoggerConfig{Level: LevelInfo, Component: "observability"})
	}
	return &LoggingObservabilityHook{
		logger: logger,
	}
}

func (l *LoggingObservabilityHook) OnOperationStart(ctx context.Context, operation string, metadata map[string]any) {
	l.logger.Debug("operation started", fields(ctx, operation, metadata)...)
}

func (l *LoggingObservabilityHook) OnOperationComplete(ctx context.Context, operation string, duration time.Duration, err error, metadata map[string]any) {
	args := append(fields(ctx, operation, metadata), "duration", duration)
	if err != nil {
		l.logger.Error("operation failed", append(args, "error", err)...)
		return
	}
	l.logger.Info("operation completed", args...)
}

func (l *LoggingObservabilityHook) OnError(ctx context.Context, operation string, err error, metadata map[string]any) {
	l.logger.Error("operation error", append(fields(ctx, operation, metadata), "error", err)...)
}

func (l *LoggingObservabilityHook) OnValueDropped(ctx context.Context, operation string, path string, typeName string) {
	l.logger.Warn("value dropped", append(fields(ctx, operation, nil), "path", path, "type", typeName)...)
}

func fields(ctx context.Context, operation string, metadata map[string]any) []any {
	args := []any{"operation", operation}
	if id, ok := OperationIDFromContext(ctx); ok {
		args = append(args, string(OperationIDKey), id)
	}
	for _, k := range sortedKeys(metadata) {
		args = append(args, k, metadata[k])
	}
	return args
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// MetricsObservabilityHook collects metrics for operations
type MetricsObservabilityHook struct {
	collector MetricsCollector
}

// NewMetricsObservabilityHook creates a new metrics observability hook
func NewMetricsObservabilityHook(collector MetricsCollector) *MetricsObservabilityHook {
	if collector == nil {
		collector = NoOpMetricsCollector{}
	}
	return &MetricsObservabilityHook{
		collector: collector,
	}
}

func (m *MetricsObservabilityHook) OnOperationStart(ctx context.Context, operation string, metadata map[string]any) {
	m.collector.IncrementCounter(MetricOperationStarted, operationTags(operation, metadata))
}

func (m *MetricsObservabilityHook) OnOperationComplete(ctx context.Context, operation string, duration time.Duration, err error, metadata map[string]any) {
	tags := operationTags(operation, metadata)
	if err != nil {
		tags["status"] = "error"
		m.collector.IncrementCounter(MetricOperationFailed, tags)
	} else {
		tags["status"] = "success"
		m.collector.IncrementCounter(MetricOperationSucceeded, tags)
	}

	m.collector.RecordTiming(MetricOperationDuration, duration, tags)

	if n, ok := metadata["records"].(int); ok {
		m.collector.RecordValue(MetricRecords, float64(n), map[string]string{"operation": operation})
	}
}

func (m *MetricsObservabilityHook) OnError(ctx context.Context, operation string, err error, metadata map[string]any) {
	tags := map[string]string{
		"operation": operation,
		"error":     fmt.Sprintf("%T", err),
	}
	m.collector.IncrementCounter(MetricErrors, tags)
}

func (m *MetricsObservabilityHook) OnValueDropped(ctx context.Context, operation string, path string, typeName string) {
	m.collector.IncrementCounter(MetricValuesDropped, map[string]string{
		"operation": operation,
		"type":      typeName,
	})
}

func operationTags(operation string, metadata map[string]any) map[string]string {
	tags := map[string]string{"operation": operation}
	if envelope, ok := metadata["envelope"].(string); ok {
		tags["envelope"] = envelope
	}
	return tags
}

// CompositeObservabilityHook combines multiple hooks
type CompositeObservabilityHook struct {
	hooks []ObservabilityHook
}

// NewCompositeObservabilityHook creates a new composite hook. Nil hooks are skipped.
func NewCompositeObservabilityHook(hooks ...ObservabilityHook) *CompositeObservabilityHook {
	c := &CompositeObservabilityHook{}
	for _, hook := range hooks {
		if hook != nil {
			c.hooks = append(c.hooks, hook)
		}
	}
	return c
}

func (c *CompositeObservabilityHook) OnOperationStart(ctx context.Context, operation string, metadata map[string]any) {
	for _, hook := range c.hooks {
		hook.OnOperationStart(ctx, operation, metadata)
	}
}

func (c *CompositeObservabilityHook) OnOperationComplete(ctx context.Context, operation string, duration time.Duration, err error, metadata map[string]any) {
	for _, hook := range c.hooks {
		hook.OnOperationComplete(ctx, operation, duration, err, metadata)
	}
}

func (c *CompositeObservabilityHook) OnError(ctx context.Context, operation string, err error, metadata map[string]any) {
	for _, hook := range c.hooks {
		hook.OnError(ctx, operation, err, metadata)
	}
}

func (c *CompositeObservabilityHook) OnValueDropped(ctx context.Context, operation string, path string, typeName string) {
	for _, hook := range c.hooks {
		hook.OnValueDropped(ctx, operation, path, typeName)
	}
}
