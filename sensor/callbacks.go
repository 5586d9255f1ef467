package sensor

// Workflow phases reported through the progress callback.
const (
	// PhaseCapturing covers the bounded-retry image capture
	PhaseCapturing = "capturing"

	// PhaseConverting covers feature extraction into a character buffer
	PhaseConverting = "converting"

	// PhaseUploading covers streaming the template to the host
	PhaseUploading = "uploading"

	// PhaseLoadingStored covers streaming a stored template into the sensor
	PhaseLoadingStored = "loading-stored"

	// PhaseMatching covers the on-device comparison of the two buffers
	PhaseMatching = "matching"

	// PhaseDone is reported once when a workflow reaches its terminal
	// success state
	PhaseDone = "done"
)

// Progress describes a workflow phase transition.
// Passed to ProgressCallback as capture and match workflows advance.
type Progress struct {
	// Phase is the phase being entered
	Phase string
}

// ProgressCallback is called on every workflow phase transition.
// Implementations should return quickly; they run on the workflow's
// goroutine between frame exchanges.
type ProgressCallback func(Progress)

// Logger is an optional logging interface that can be provided to the
// device. This allows integration with any logging framework.
//
// Example with zerolog:
//
//	type zl struct{ log zerolog.Logger }
//	func (l zl) Debug(msg string, kv ...interface{}) { l.log.Debug().Fields(kv).Msg(msg) }
//	func (l zl) Info(msg string, kv ...interface{})  { l.log.Info().Fields(kv).Msg(msg) }
//	func (l zl) Error(msg string, kv ...interface{}) { l.log.Error().Fields(kv).Msg(msg) }
type Logger interface {
	// Debug logs a debug message with optional key-value pairs
	Debug(msg string, keysAndValues ...interface{})

	// Info logs an info message with optional key-value pairs
	Info(msg string, keysAndValues ...interface{})

	// Error logs an error message with optional key-value pairs
	Error(msg string, keysAndValues ...interface{})
}
