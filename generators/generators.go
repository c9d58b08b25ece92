// Package generators implements endless periodic waveforms used as tone voices.
package generators

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/polytone/polytone"
)

// Waveform is the shape of a generated tone.
type Waveform int

const (
	Sine Waveform = iota
	Square
	Triangle
	Sawtooth
)

var waveformNames = [...]string{
	Sine:     "sine",
	Square:   "square",
	Triangle: "triangle",
	Sawtooth: "sawtooth",
}

func (w Waveform) String() string {
	if w < 0 || int(w) >= len(waveformNames) {
		return "unknown"
	}
	return waveformNames[w]
}

// ParseWaveform returns the Waveform called name. Case is ignored.
func ParseWaveform(name string) (Waveform, error) {
	for w, n := range waveformNames {
		if strings.EqualFold(name, n) {
			return Waveform(w), nil
		}
	}
	return 0, errors.Errorf("generators: unknown waveform %q", name)
}

// UnmarshalText implements encoding.TextUnmarshaler, so a Waveform can be read from config files.
func (w *Waveform) UnmarshalText(text []byte) error {
	parsed, err := ParseWaveform(string(text))
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (w Waveform) MarshalText() ([]byte, error) {
	return []byte(w.String()), nil
}

// New creates an endless tone of waveform w with the given frequency. All waveforms have an
// amplitude of 1.
func New(w Waveform, sr polytone.SampleRate, freq float64) (polytone.Streamer, error) {
	switch w {
	case Sine:
		return SineTone(sr, freq)
	case Square:
		return SquareTone(sr, freq)
	case Triangle:
		return TriangleTone(sr, freq)
	case Sawtooth:
		return SawtoothTone(sr, freq)
	}
	return nil, errors.Errorf("generators: unknown waveform %d", int(w))
}

// phaseStep returns the phase increment per sample of a tone of frequency freq. A tone is only
// representable between 0 Hz and the Nyquist frequency of sr.
func phaseStep(name string, sr polytone.SampleRate, freq float64) (float64, error) {
	dt := freq / float64(sr)
	if !(dt > 0) || dt >= 1.0/2.0 {
		return 0, errors.Wrapf(polytone.ErrInvalidFrequency,
			"%s tone of %v Hz needs a frequency between 0 and %v Hz", name, freq, sr.Nyquist())
	}
	return dt, nil
}
