package polytone

import "time"

// Streamer is able to stream a finite or infinite sequence of audio samples.
//
// Stream copies at most len(samples) next audio samples to the samples slice. The sample rate of
// the samples is unspecified in general, but should be specified for each concrete Streamer.
//
// The value at samples[i][0] is the value of the left channel of the i-th sample. Similarly,
// samples[i][1] is the value of the right channel of the i-th sample.
//
// Stream returns the number of streamed samples. If the Streamer is drained and no more samples
// will be produced, it returns 0 and false. Stream must not touch any samples outside
// samples[:n].
//
// The tone voices driven by VoiceMixer are infinite Streamers: they always fill the whole slice
// and return true.
type Streamer interface {
	Stream(samples [][2]float64) (n int, ok bool)

	// Err returns an error which occurred during streaming. If no error occurred, nil is
	// returned.
	Err() error
}

// StreamerFunc is a Streamer created by simply wrapping a streaming function (usually a closure,
// which encloses a time tracking variable). This sometimes simplifies creating new streamers.
type StreamerFunc func(samples [][2]float64) (n int, ok bool)

// Stream calls the wrapped streaming function.
func (sf StreamerFunc) Stream(samples [][2]float64) (n int, ok bool) {
	return sf(samples)
}

// Err always returns nil.
func (sf StreamerFunc) Err() error {
	return nil
}

// SampleRate is the number of samples per second.
type SampleRate int

// D returns the duration of n samples.
func (sr SampleRate) D(n int) time.Duration {
	return time.Second * time.Duration(n) / time.Duration(sr)
}

// N returns the number of samples that last for d duration.
func (sr SampleRate) N(d time.Duration) int {
	return int(d * time.Duration(sr) / time.Second)
}

// Nyquist returns the highest frequency representable at this sample rate.
func (sr SampleRate) Nyquist() float64 {
	return float64(sr) / 2
}
