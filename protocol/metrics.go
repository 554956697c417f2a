package protocol

import (
	"sync"
	"time"

	"github.com/datazip-inc/tap-mongodb/utils/logger"
)

// Metrics accumulates per-stream sync counters. Injected into the driver
// instead of living as package globals so tests can assert on it directly.
type Metrics struct {
	mu      sync.Mutex
	streams map[string]*StreamMetrics
}

type StreamMetrics struct {
	Records       int64
	SchemaChanges int64
	Elapsed       time.Duration
}

func NewMetrics() *Metrics {
	return &Metrics{
		streams: map[string]*StreamMetrics{},
	}
}

func (m *Metrics) stream(streamID string) *StreamMetrics {
	metrics, found := m.streams[streamID]
	if !found {
		metrics = &StreamMetrics{}
		m.streams[streamID] = metrics
	}

	return metrics
}

func (m *Metrics) AddRecords(streamID string, count int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stream(streamID).Records += count
}

func (m *Metrics) AddSchemaChange(streamID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stream(streamID).SchemaChanges++
}

func (m *Metrics) AddElapsed(streamID string, elapsed time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stream(streamID).Elapsed += elapsed
}

func (m *Metrics) Stream(streamID string) StreamMetrics {
	m.mu.Lock()
	defer m.mu.Unlock()

	return *m.stream(streamID)
}

func (m *Metrics) LogSummary() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for streamID, metrics := range m.streams {
		logger.Infof("stream[%s]: %d records, %d schema changes, took %s",
			streamID, metrics.Records, metrics.SchemaChanges, metrics.Elapsed)
	}
}
