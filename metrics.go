package qforge

import (
	"slices"
	"sync"
	"time"
)

/*
Metrics tracks what the engine has been asked to do: how many operations of
each kind ran, how many measurements were taken, and how long operations took
over a sliding window of recent samples.
*/
type Metrics struct {
	mu sync.RWMutex

	OperationCounts   map[string]int64
	TotalOperations   int64
	TotalMeasurements int64
	TotalDuration     time.Duration

	AverageLatency time.Duration
	P95Latency     time.Duration
	P99Latency     time.Duration

	latencyWindow []time.Duration
	windowSize    int
}

func NewMetrics() *Metrics {
	return &Metrics{
		OperationCounts: make(map[string]int64),
		latencyWindow:   make([]time.Duration, 0, 1000),
		windowSize:      1000,
	}
}

func (m *Metrics) recordOperation(operation string, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.OperationCounts[operation]++
	m.TotalOperations++
	m.TotalDuration += duration

	m.updateLatencyPercentiles(duration)
}

func (m *Metrics) recordMeasurements(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.TotalMeasurements += int64(count)
}

func (m *Metrics) updateLatencyPercentiles(duration time.Duration) {
	m.AverageLatency = m.TotalDuration / time.Duration(m.TotalOperations)

	m.latencyWindow = append(m.latencyWindow, duration)
	if len(m.latencyWindow) > m.windowSize {
		m.latencyWindow = m.latencyWindow[1:]
	}

	sorted := slices.Clone(m.latencyWindow)
	slices.Sort(sorted)

	p95Index := min(int(float64(len(sorted))*0.95), len(sorted)-1)
	p99Index := min(int(float64(len(sorted))*0.99), len(sorted)-1)

	m.P95Latency = sorted[p95Index]
	m.P99Latency = sorted[p99Index]
}

// Count returns how many times an operation ran.
func (m *Metrics) Count(operation string) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.OperationCounts[operation]
}

func (m *Metrics) ExportMetrics() map[string]any {
	m.mu.RLock()
	defer m.mu.RUnlock()

	counts := make(map[string]any, len(m.OperationCounts))
	for op, n := range m.OperationCounts {
		counts[op] = n
	}

	return map[string]any{
		"total_operations":   m.TotalOperations,
		"total_measurements": m.TotalMeasurements,
		"operation_counts":   counts,
		"avg_latency_ns":     m.AverageLatency.Nanoseconds(),
		"p95_latency_ns":     m.P95Latency.Nanoseconds(),
		"p99_latency_ns":     m.P99Latency.Nanoseconds(),
	}
}
