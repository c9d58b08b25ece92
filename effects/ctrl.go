package effects

import (
	"sync/atomic"

	"github.com/polytone/polytone"
)

// Ctrl pauses and resumes the wrapped Streamer.
//
// While paused, Ctrl streams silence and does not pull samples from the wrapped Streamer, so a
// paused tone resumes where it stopped. SetPaused may be called from any goroutine while Stream
// runs.
type Ctrl struct {
	Streamer polytone.Streamer

	paused atomic.Bool
}

// SetPaused pauses or resumes the wrapped Streamer.
func (c *Ctrl) SetPaused(paused bool) {
	c.paused.Store(paused)
}

// Paused reports whether the Ctrl is paused.
func (c *Ctrl) Paused() bool {
	return c.paused.Load()
}

// Stream streams the wrapped Streamer, or silence when paused. A nil Streamer is drained.
func (c *Ctrl) Stream(samples [][2]float64) (n int, ok bool) {
	if c.Streamer == nil {
		return 0, false
	}
	if c.paused.Load() {
		for i := range samples {
			samples[i] = [2]float64{}
		}
		return len(samples), true
	}
	return c.Streamer.Stream(samples)
}

// Err propagates the wrapped Streamer's errors.
func (c *Ctrl) Err() error {
	if c.Streamer == nil {
		return nil
	}
	return c.Streamer.Err()
}
