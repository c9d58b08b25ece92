// Package effects implements Streamer wrappers which can be controlled while the wrapped Streamer
// is being rendered on another goroutine.
package effects

import (
	"math"
	"sync/atomic"

	"github.com/polytone/polytone"
)

// Gain amplifies the wrapped Streamer by a linear factor.
//
// SetGain may be called from any goroutine while Stream runs. The new gain applies from the next
// call to Stream.
type Gain struct {
	Streamer polytone.Streamer

	bits atomic.Uint64
}

// NewGain wraps s with the gain g.
func NewGain(s polytone.Streamer, g float64) *Gain {
	gain := &Gain{Streamer: s}
	gain.SetGain(g)
	return gain
}

// SetGain sets the linear gain.
func (g *Gain) SetGain(gain float64) {
	g.bits.Store(math.Float64bits(gain))
}

// Gain returns the current linear gain.
func (g *Gain) Gain() float64 {
	return math.Float64frombits(g.bits.Load())
}

// Stream streams the wrapped Streamer amplified by the gain.
func (g *Gain) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = g.Streamer.Stream(samples)
	gain := g.Gain()
	for i := range samples[:n] {
		samples[i][0] *= gain
		samples[i][1] *= gain
	}
	return n, ok
}

// Err propagates the wrapped Streamer's errors.
func (g *Gain) Err() error {
	return g.Streamer.Err()
}
