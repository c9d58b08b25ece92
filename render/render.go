// Package render implements a polytone.Backend which renders its output to files instead of a
// sound device.
//
// The output is rendered on the goroutine calling one of the Output's render methods. Toggle the
// mixer between renders to render a sequence of chords.
package render

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/polytone/polytone"
	"github.com/polytone/polytone/generators"
	"github.com/polytone/polytone/internal/bus"
	"github.com/polytone/polytone/pcm"
	"github.com/polytone/polytone/wav"
)

// Precision is the number of bytes per sample and channel of rendered audio.
const Precision = 2

// Backend opens render Outputs.
type Backend struct {
	SampleRate polytone.SampleRate
	Waveform   generators.Waveform

	out *Output
}

// OpenDefaultOutput implements polytone.Backend.
func (b *Backend) OpenDefaultOutput() (polytone.Output, error) {
	out, err := Open(b.SampleRate, b.Waveform)
	if err != nil {
		return nil, err
	}
	b.out = out
	return out, nil
}

// Output returns the Output opened last by b, or nil.
func (b *Backend) Output() *Output {
	return b.out
}

// Output mixes its sinks into 16-bit stereo audio on demand.
type Output struct {
	bus    *bus.Bus
	closed bool
}

// Open creates an empty Output.
func Open(sr polytone.SampleRate, w generators.Waveform) (*Output, error) {
	if sr <= 0 {
		return nil, errors.Errorf("render: invalid sample rate %d", sr)
	}
	return &Output{bus: bus.New(sr, w)}, nil
}

// NewSink implements polytone.Output. The new sink is paused.
func (o *Output) NewSink() (polytone.Sink, error) {
	if o.closed {
		return nil, errors.New("render: output closed")
	}
	return o.bus.NewSink(), nil
}

// Close removes all sinks.
func (o *Output) Close() error {
	o.closed = true
	o.bus.Clear()
	return nil
}

// Format returns the format of rendered audio.
func (o *Output) Format() polytone.Format {
	return polytone.Format{
		SampleRate:  o.bus.SampleRate(),
		NumChannels: 2,
		Precision:   Precision,
	}
}

// Stream returns a Streamer rendering the next d of the output.
func (o *Output) Stream(d time.Duration) polytone.Streamer {
	return polytone.Take(o.bus.SampleRate().N(d), o.bus)
}

// WAV renders the next d of the output to w in WAVE format.
func (o *Output) WAV(w io.WriteSeeker, d time.Duration) error {
	return wav.Encode(w, o.Stream(d), o.Format())
}

// PCM renders the next d of the output to w as raw signed PCM.
func (o *Output) PCM(w io.Writer, d time.Duration) error {
	return pcm.Encode(w, o.Stream(d), o.Format())
}

// File renders the next d of the output to the file at path, as raw PCM if its extension is
// .raw and in WAVE format otherwise.
func (o *Output) File(path string, d time.Duration) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "render")
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "render")
		}
	}()

	if strings.EqualFold(filepath.Ext(path), ".raw") {
		return o.PCM(f, d)
	}
	return o.WAV(f, d)
}
