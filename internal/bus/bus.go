// Package bus mixes the sinks of an audio output. It is shared by the speaker and render
// backends.
package bus

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/polytone/polytone"
	"github.com/polytone/polytone/effects"
	"github.com/polytone/polytone/generators"
)

// Bus is a Streamer mixing all of its Sinks. It is streamed by the render goroutine of an output.
//
// The list of sinks and their queued waves are guarded by a mutex, which the render goroutine
// holds for one Stream call. Play, Pause and SetGain on a Sink never take it.
type Bus struct {
	sampleRate polytone.SampleRate
	waveform   generators.Waveform

	mu    sync.Mutex
	mixer polytone.Mixer
}

// New creates an empty Bus. Waves appended to its sinks are generated with waveform w at sample
// rate sr.
func New(sr polytone.SampleRate, w generators.Waveform) *Bus {
	return &Bus{
		sampleRate: sr,
		waveform:   w,
	}
}

// SampleRate returns the sample rate of the Bus.
func (b *Bus) SampleRate() polytone.SampleRate {
	return b.sampleRate
}

// Len returns the number of sinks on the Bus.
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.mixer.Len()
}

// NewSink adds a new paused Sink with unity gain to the Bus.
func (b *Bus) NewSink() *Sink {
	s := &Sink{bus: b}
	s.ctrl.Streamer = &s.queue
	s.ctrl.SetPaused(true)
	s.gain = effects.NewGain(&s.ctrl, 1)

	b.mu.Lock()
	b.mixer.Add(s)
	b.mu.Unlock()
	return s
}

// Clear removes all sinks from the Bus.
func (b *Bus) Clear() {
	b.mu.Lock()
	b.mixer.Clear()
	b.mu.Unlock()
}

// Stream streams all sinks mixed together. It never drains.
func (b *Bus) Stream(samples [][2]float64) (n int, ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.mixer.Stream(samples)
}

// Err always returns nil.
func (b *Bus) Err() error {
	return nil
}

var _ polytone.Sink = (*Sink)(nil)

// Sink is one channel of a Bus: a queue of waves, paused or resumed by a Ctrl and scaled by a
// Gain. It implements polytone.Sink.
type Sink struct {
	bus    *Bus
	queue  queue
	ctrl   effects.Ctrl
	gain   *effects.Gain
	closed bool
}

// AppendContinuousWave queues an endless wave of frequency freq, generated with the waveform of
// the Bus.
func (s *Sink) AppendContinuousWave(freq float64) error {
	wave, err := generators.New(s.bus.waveform, s.bus.sampleRate, freq)
	if err != nil {
		return err
	}

	s.bus.mu.Lock()
	defer s.bus.mu.Unlock()
	if s.closed {
		return errors.New("bus: append to closed sink")
	}
	s.queue.streamers = append(s.queue.streamers, wave)
	return nil
}

// Play resumes the sink.
func (s *Sink) Play() {
	s.ctrl.SetPaused(false)
}

// Pause pauses the sink. The queued wave keeps its phase.
func (s *Sink) Pause() {
	s.ctrl.SetPaused(true)
}

// Paused reports whether the sink is paused.
func (s *Sink) Paused() bool {
	return s.ctrl.Paused()
}

// SetGain sets the linear gain of the sink.
func (s *Sink) SetGain(g float64) {
	s.gain.SetGain(g)
}

// Gain returns the linear gain of the sink.
func (s *Sink) Gain() float64 {
	return s.gain.Gain()
}

// Close removes the sink from the Bus. Closing a closed sink does nothing.
func (s *Sink) Close() error {
	s.bus.mu.Lock()
	defer s.bus.mu.Unlock()
	if !s.closed {
		s.closed = true
		s.bus.mixer.Remove(s)
	}
	return nil
}

// Stream streams the sink. It is called by the Bus with the Bus mutex held.
func (s *Sink) Stream(samples [][2]float64) (n int, ok bool) {
	return s.gain.Stream(samples)
}

// Err propagates the errors of the queued waves.
func (s *Sink) Err() error {
	return s.gain.Err()
}

// queue streams its Streamers one by one and silence once they are drained, so a sink never
// leaves the Bus mixer on its own.
type queue struct {
	streamers []polytone.Streamer
}

func (q *queue) Stream(samples [][2]float64) (n int, ok bool) {
	for len(q.streamers) > 0 && len(samples) > 0 {
		sn, sok := q.streamers[0].Stream(samples)
		samples = samples[sn:]
		n += sn
		if !sok {
			q.streamers = q.streamers[1:]
		} else if sn == 0 {
			break
		}
	}
	for i := range samples {
		samples[i] = [2]float64{}
	}
	return n + len(samples), true
}

func (q *queue) Err() error {
	for _, s := range q.streamers {
		if err := s.Err(); err != nil {
			return err
		}
	}
	return nil
}
