package metrics

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncRecognitionCreated is a no-op.
func (n *NoopRecorder) IncRecognitionCreated() {}

// IncRecognitionUpdated is a no-op.
func (n *NoopRecorder) IncRecognitionUpdated() {}

// IncRecognitionDeleted is a no-op.
func (n *NoopRecorder) IncRecognitionDeleted() {}

// IncNotificationSent is a no-op.
func (n *NoopRecorder) IncNotificationSent() {}

// IncNotificationFailed is a no-op.
func (n *NoopRecorder) IncNotificationFailed() {}

// IncUpstreamCall is a no-op.
func (n *NoopRecorder) IncUpstreamCall(status string) {}
