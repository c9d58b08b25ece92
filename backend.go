package polytone

// Backend opens audio outputs. The speaker package provides a Backend playing through the
// default sound device, the render package one rendering to files.
type Backend interface {
	// OpenDefaultOutput opens the backend's default output.
	OpenDefaultOutput() (Output, error)
}

// Output is an opened audio output. Every Sink created from it is mixed into it.
type Output interface {
	// NewSink creates a new, empty Sink mixed into the output.
	NewSink() (Sink, error)

	// Close releases the output. Sinks created from it must be closed first.
	Close() error
}

// Sink is an audio channel of an Output.
//
// Play, Pause and SetGain are called from the control goroutine while the output renders on its
// own goroutine. They must return immediately and take effect on the next render cycle.
type Sink interface {
	// AppendContinuousWave queues an endless wave of the given frequency. The frequency of a
	// queued wave cannot be changed.
	AppendContinuousWave(freq float64) error

	Play()
	Pause()

	// SetGain sets the linear gain of the sink. g is expected in [0, 1].
	SetGain(g float64)

	// Close removes the sink from its output.
	Close() error
}
