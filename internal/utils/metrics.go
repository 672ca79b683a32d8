package utils

import (
	"sync"
	"time"
)

// Tracks performance metrics across the system
type MetricsCollector struct {
	mu           sync.RWMutex
	requestCount uint64
	errorCount   uint64

	// Maps operation name to list of latencies in nanoseconds
	operationTimes map[string][]int64

	systemStartTime time.Time
}

func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{
		operationTimes:  make(map[string][]int64),
		systemStartTime: time.Now(),
	}
}

func (mc *MetricsCollector) IncrementRequests() {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.requestCount++
}

func (mc *MetricsCollector) IncrementErrors() {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.errorCount++
}

func (mc *MetricsCollector) AddOperationLatency(operationName string, duration time.Duration) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	if _, exists := mc.operationTimes[operationName]; !exists {
		mc.operationTimes[operationName] = make([]int64, 0)
	}
	mc.operationTimes[operationName] = append(
		mc.operationTimes[operationName],
		duration.Nanoseconds(),
	)
}

// Snapshot returns current counters and uptime for the health endpoint.
func (mc *MetricsCollector) Snapshot() (requests uint64, errors uint64, uptime time.Duration) {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return mc.requestCount, mc.errorCount, time.Since(mc.systemStartTime)
}

// AverageLatency reports the mean latency recorded for an operation, or zero
// when the operation has not been observed yet.
func (mc *MetricsCollector) AverageLatency(operationName string) time.Duration {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	samples := mc.operationTimes[operationName]
	if len(samples) == 0 {
		return 0
	}
	var total int64
	for _, ns := range samples {
		total += ns
	}
	return time.Duration(total / int64(len(samples)))
}
