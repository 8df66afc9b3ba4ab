// Package metrics provides lightweight hooks for instrumentation.
package metrics

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Recognition lifecycle metrics
	IncRecognitionCreated()
	IncRecognitionUpdated()
	IncRecognitionDeleted()

	// Notification dispatch metrics
	IncNotificationSent()
	IncNotificationFailed()

	// Upstream proxy metrics
	IncUpstreamCall(status string) // status: "success" or "failed"
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
