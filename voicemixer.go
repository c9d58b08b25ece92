package polytone

import (
	"math"

	"github.com/pkg/errors"
)

// VoiceMixer owns a fixed set of ToneVoices and keeps their sum from clipping.
//
// Every time a voice is toggled, each playing voice gets the gain 1/k, k being the number of
// playing voices. Since all voices share the same waveform and amplitude, the mixed signal stays
// within [-1, 1].
//
// VoiceMixer is not safe for concurrent use. Toggle and the accessors are meant to be called from
// a single control goroutine, while the Output renders the voices on its own.
type VoiceMixer struct {
	out    Output
	voices []*ToneVoice
	active int
	closed bool
}

// VoiceState is a snapshot of a single voice.
type VoiceState struct {
	Index     int
	Frequency float64
	Playing   bool
	Gain      float64
}

// New opens the default output of b and creates one paused voice per frequency, in order. The
// index of a frequency in frequencies is the index of its voice.
//
// If the output or any of the sinks cannot be created, everything created so far is released and
// an error wrapping ErrBackendUnavailable is returned.
func New(b Backend, frequencies []float64) (*VoiceMixer, error) {
	for i, freq := range frequencies {
		if !(freq > 0) || math.IsInf(freq, 0) {
			return nil, errors.Wrapf(ErrInvalidFrequency, "voice %d: %v Hz", i, freq)
		}
	}

	out, err := b.OpenDefaultOutput()
	if err != nil {
		return nil, errors.Wrapf(ErrBackendUnavailable, "open output: %v", err)
	}

	m := &VoiceMixer{
		out:    out,
		voices: make([]*ToneVoice, 0, len(frequencies)),
	}
	for i, freq := range frequencies {
		v, err := newToneVoice(out, freq)
		if err != nil {
			m.Close()
			return nil, errors.WithMessagef(err, "voice %d", i)
		}
		m.voices = append(m.voices, v)
	}
	return m, nil
}

// Len returns the number of voices.
func (m *VoiceMixer) Len() int {
	return len(m.voices)
}

// ActiveCount returns the number of playing voices.
func (m *VoiceMixer) ActiveCount() int {
	return m.active
}

// Toggle flips the voice at index between paused and playing and renormalizes the gain of all
// playing voices.
func (m *VoiceMixer) Toggle(index int) error {
	if m.closed {
		return ErrClosed
	}
	if err := m.checkIndex(index); err != nil {
		return err
	}

	v := m.voices[index]
	v.playing = !v.playing
	if v.playing {
		m.active++
		// gain first, so that no render cycle hears the old gains with one more voice
		m.renormalize()
		v.setActive(true)
	} else {
		m.active--
		v.setActive(false)
		m.renormalize()
	}
	return nil
}

// renormalize applies 1/active to every playing voice. Nothing is audible with no playing voice,
// so no gain is written then.
func (m *VoiceMixer) renormalize() {
	if m.active <= 0 {
		return
	}
	gain := 1 / float64(m.active)
	for _, v := range m.voices {
		if v.playing {
			v.setGain(gain)
		}
	}
}

// Status reports whether the voice at index is playing.
func (m *VoiceMixer) Status(index int) (bool, error) {
	if err := m.checkIndex(index); err != nil {
		return false, err
	}
	return m.voices[index].playing, nil
}

// Voice returns the voice at index.
func (m *VoiceMixer) Voice(index int) (*ToneVoice, error) {
	if err := m.checkIndex(index); err != nil {
		return nil, err
	}
	return m.voices[index], nil
}

// Playing returns the playing flags of all voices. The returned slice is a copy.
func (m *VoiceMixer) Playing() []bool {
	playing := make([]bool, len(m.voices))
	for i, v := range m.voices {
		playing[i] = v.playing
	}
	return playing
}

// Voices returns a snapshot of all voices.
func (m *VoiceMixer) Voices() []VoiceState {
	states := make([]VoiceState, len(m.voices))
	for i, v := range m.voices {
		states[i] = VoiceState{
			Index:     i,
			Frequency: v.freq,
			Playing:   v.playing,
			Gain:      v.gain,
		}
	}
	return states
}

// Close closes all voice sinks and then the output. It returns the first error encountered.
// Closing an already closed mixer does nothing.
func (m *VoiceMixer) Close() error {
	if m.closed {
		return nil
	}
	m.closed = true

	var first error
	for i, v := range m.voices {
		if err := v.close(); err != nil && first == nil {
			first = errors.Wrapf(err, "close voice %d", i)
		}
	}
	if err := m.out.Close(); err != nil && first == nil {
		first = errors.Wrap(err, "close output")
	}
	return first
}

func (m *VoiceMixer) checkIndex(index int) error {
	if index < 0 || index >= len(m.voices) {
		return errors.Wrapf(ErrIndexOutOfRange, "voice %d of %d", index, len(m.voices))
	}
	return nil
}
