package monitoring

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// Metric names reported by MetricsObservabilityHook.
const (
	MetricOperationStarted   = "dson.operation.started"
	MetricOperationSucceeded = "dson.operation.succeeded"
	MetricOperationFailed    = "dson.operation.failed"
	MetricOperationDuration  = "dson.operation.duration"
	MetricErrors             = "dson.errors"
	MetricRecords            = "dson.records"
	MetricValuesDropped      = "dson.values.dropped"
)

// MetricsCollector receives the series a MetricsObservabilityHook reports:
// operation and drop counters, operation durations and record counts.
type MetricsCollector interface {
	IncrementCounter(name string, tags map[string]string)
	RecordTiming(name string, duration time.Duration, tags map[string]string)
	RecordValue(name string, value float64, tags map[string]string)
}

// NoOpMetricsCollector discards everything.
type NoOpMetricsCollector struct{}

func (NoOpMetricsCollector) IncrementCounter(string, map[string]string)            {}
func (NoOpMetricsCollector) RecordTiming(string, time.Duration, map[string]string) {}
func (NoOpMetricsCollector) RecordValue(string, float64, map[string]string)        {}

// series holds everything recorded under one name and tag set.
type series struct {
	count   int64
	timings []time.Duration
	values  []float64
}

// InMemoryMetricsCollector keeps every series in memory. It is meant for
// tests and for callers that export snapshots themselves.
type InMemoryMetricsCollector struct {
	mu     sync.Mutex
	series map[string]*series
}

func NewInMemoryMetricsCollector() *InMemoryMetricsCollector {
	return &InMemoryMetricsCollector{series: make(map[string]*series)}
}

// at returns the series for name and tags, creating it. m.mu must be held.
func (m *InMemoryMetricsCollector) at(name string, tags map[string]string) *series {
	key := seriesKey(name, tags)
	s, ok := m.series[key]
	if !ok {
		s = &series{}
		m.series[key] = s
	}
	return s
}

func (m *InMemoryMetricsCollector) IncrementCounter(name string, tags map[string]string) {
	m.mu.Lock()
	m.at(name, tags).count++
	m.mu.Unlock()
}

func (m *InMemoryMetricsCollector) RecordTiming(name string, duration time.Duration, tags map[string]string) {
	m.mu.Lock()
	s := m.at(name, tags)
	s.timings = append(s.timings, duration)
	m.mu.Unlock()
}

func (m *InMemoryMetricsCollector) RecordValue(name string, value float64, tags map[string]string) {
	m.mu.Lock()
	s := m.at(name, tags)
	s.values = append(s.values, value)
	m.mu.Unlock()
}

// Counter returns the counter recorded under exactly name and tags.
func (m *InMemoryMetricsCollector) Counter(name string, tags map[string]string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.series[seriesKey(name, tags)]; ok {
		return s.count
	}
	return 0
}

// CounterTotal sums a counter across every tag set.
func (m *InMemoryMetricsCollector) CounterTotal(name string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	var total int64
	for key, s := range m.series {
		if key == name || strings.HasPrefix(key, name+",") {
			total += s.count
		}
	}
	return total
}

func (m *InMemoryMetricsCollector) Timings(name string, tags map[string]string) []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.series[seriesKey(name, tags)]; ok {
		return append([]time.Duration(nil), s.timings...)
	}
	return nil
}

func (m *InMemoryMetricsCollector) Values(name string, tags map[string]string) []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.series[seriesKey(name, tags)]; ok {
		return append([]float64(nil), s.values...)
	}
	return nil
}

func (m *InMemoryMetricsCollector) Reset() {
	m.mu.Lock()
	m.series = make(map[string]*series)
	m.mu.Unlock()
}

// seriesKey renders name followed by its tags in key order:
// "dson.records,envelope=cbor,operation=parse".
func seriesKey(name string, tags map[string]string) string {
	if len(tags) == 0 {
		return name
	}
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(name)
	for _, k := range keys {
		b.WriteString(",")
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(tags[k])
	}
	return b.String()
}
