package metrics

import "sync/atomic"

// Snapshot captures current in-memory counters.
type Snapshot struct {
	RecognitionsCreated uint64
	RecognitionsUpdated uint64
	RecognitionsDeleted uint64
	NotificationsSent   uint64
	NotificationsFailed uint64
	UpstreamSuccess     uint64
	UpstreamFailed      uint64
}

// InMemoryRecorder stores counters in process memory.
type InMemoryRecorder struct {
	recognitionsCreated uint64
	recognitionsUpdated uint64
	recognitionsDeleted uint64
	notificationsSent   uint64
	notificationsFailed uint64
	upstreamSuccess     uint64
	upstreamFailed      uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		RecognitionsCreated: atomic.LoadUint64(&m.recognitionsCreated),
		RecognitionsUpdated: atomic.LoadUint64(&m.recognitionsUpdated),
		RecognitionsDeleted: atomic.LoadUint64(&m.recognitionsDeleted),
		NotificationsSent:   atomic.LoadUint64(&m.notificationsSent),
		NotificationsFailed: atomic.LoadUint64(&m.notificationsFailed),
		UpstreamSuccess:     atomic.LoadUint64(&m.upstreamSuccess),
		UpstreamFailed:      atomic.LoadUint64(&m.upstreamFailed),
	}
}

// IncRecognitionCreated increments the created counter.
func (m *InMemoryRecorder) IncRecognitionCreated() {
	atomic.AddUint64(&m.recognitionsCreated, 1)
}

// IncRecognitionUpdated increments the updated counter.
func (m *InMemoryRecorder) IncRecognitionUpdated() {
	atomic.AddUint64(&m.recognitionsUpdated, 1)
}

// IncRecognitionDeleted increments the deleted counter.
func (m *InMemoryRecorder) IncRecognitionDeleted() {
	atomic.AddUint64(&m.recognitionsDeleted, 1)
}

// IncNotificationSent increments the sent counter.
func (m *InMemoryRecorder) IncNotificationSent() {
	atomic.AddUint64(&m.notificationsSent, 1)
}

// IncNotificationFailed increments the failed counter.
func (m *InMemoryRecorder) IncNotificationFailed() {
	atomic.AddUint64(&m.notificationsFailed, 1)
}

// IncUpstreamCall increments the counter for the given outcome.
func (m *InMemoryRecorder) IncUpstreamCall(status string) {
	if status == "success" {
		atomic.AddUint64(&m.upstreamSuccess, 1)
		return
	}
	atomic.AddUint64(&m.upstreamFailed, 1)
}
