package monitoring

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNoOpMetricsCollector(t *testing.T) {
	var collector MetricsCollector = NoOpMetricsCollector{}
	tags := map[string]string{"operation": "clone"}

	assert.NotPanics(t, func() {
		collector.IncrementCounter(MetricOperationStarted, tags)
		collector.RecordTiming(MetricOperationDuration, time.Millisecond, tags)
		collector.RecordValue(MetricRecords, 3, tags)
	})
}

func TestInMemoryMetricsCollector_Counters(t *testing.T) {
	collector := NewInMemoryMetricsCollector()
	tags := map[string]string{"operation": "stringify"}

	collector.IncrementCounter(MetricOperationStarted, tags)
	collector.IncrementCounter(MetricOperationStarted, tags)
	collector.IncrementCounter(MetricValuesDropped, tags)

	assert.Equal(t, int64(2), collector.Counter(MetricOperationStarted, tags))
	assert.Equal(t, int64(1), collector.Counter(MetricValuesDropped, tags))
	assert.Equal(t, int64(0), collector.Counter(MetricOperationStarted, map[string]string{"operation": "parse"}))
}

func TestInMemoryMetricsCollector_CounterTotal(t *testing.T) {
	collector := NewInMemoryMetricsCollector()
	collector.IncrementCounter(MetricOperationFailed, map[string]string{"operation": "clone"})
	collector.IncrementCounter(MetricOperationFailed, map[string]string{"operation": "parse"})
	collector.IncrementCounter(MetricOperationFailed, nil)
	collector.IncrementCounter(MetricOperationFailed+"x", nil)

	assert.Equal(t, int64(3), collector.CounterTotal(MetricOperationFailed))
}

func TestInMemoryMetricsCollector_TimingsAndValues(t *testing.T) {
	collector := NewInMemoryMetricsCollector()
	tags := map[string]string{"operation": "clone"}

	collector.RecordTiming(MetricOperationDuration, time.Millisecond, tags)
	collector.RecordTiming(MetricOperationDuration, 2*time.Millisecond, tags)
	collector.RecordValue(MetricRecords, 7, tags)

	assert.Equal(t, []time.Duration{time.Millisecond, 2 * time.Millisecond}, collector.Timings(MetricOperationDuration, tags))
	assert.Equal(t, []float64{7}, collector.Values(MetricRecords, tags))
	assert.Nil(t, collector.Values(MetricRecords, nil))

	collector.Reset()
	assert.Empty(t, collector.Timings(MetricOperationDuration, tags))
	assert.Equal(t, int64(0), collector.CounterTotal(MetricOperationDuration))
}

func TestSeriesKey(t *testing.T) {
	tests := []struct {
		name string
		tags map[string]string
		want string
	}{
		{"no tags", nil, "dson.records"},
		{"single tag", map[string]string{"operation": "parse"}, "dson.records,operation=parse"},
		{"sorted tags", map[string]string{"status": "ok", "envelope": "cbor"}, "dson.records,envelope=cbor,status=ok"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, seriesKey("dson.records", tt.tags))
		})
	}
}

func TestInMemoryMetricsCollector_ConcurrentAccess(t *testing.T) {
	collector := NewInMemoryMetricsCollector()
	tags := map[string]string{"operation": "clone"}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				collector.IncrementCounter(MetricOperationStarted, tags)
				collector.RecordTiming(MetricOperationDuration, time.Microsecond, tags)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1000), collector.Counter(MetricOperationStarted, tags))
	assert.Len(t, collector.Timings(MetricOperationDuration, tags), 1000)
}
