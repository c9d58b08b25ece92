// Package speaker implements a polytone.Backend playing through the default audio device.
package speaker

import (
	"io"
	"sync"

	"github.com/ebitengine/oto/v3"
	"github.com/pkg/errors"

	"github.com/polytone/polytone"
	"github.com/polytone/polytone/generators"
	"github.com/polytone/polytone/internal/bus"
)

const channelCount = 2
const bitDepthInBytes = 2
const bytesPerSample = bitDepthInBytes * channelCount

// oto allows a single context per process, so every Output shares it.
var (
	mu          sync.Mutex
	context     *oto.Context
	contextRate polytone.SampleRate
)

// Backend opens Outputs on the default audio device.
type Backend struct {
	SampleRate polytone.SampleRate

	// BufferSize is the number of samples of the speaker's buffer. Bigger BufferSize means lower
	// CPU usage and more reliable playback. Lower BufferSize means better responsiveness and
	// less delay between a toggle and its effect.
	BufferSize int

	// Waveform of the waves appended to the sinks.
	Waveform generators.Waveform
}

// OpenDefaultOutput implements polytone.Backend.
func (b Backend) OpenDefaultOutput() (polytone.Output, error) {
	out, err := Open(b.SampleRate, b.BufferSize, b.Waveform)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Output plays all of its sinks mixed through the speaker.
type Output struct {
	bus    *bus.Bus
	player *oto.Player
	closed bool
}

// Open initializes audio playback through the speaker and starts playing an empty Output.
//
// The audio device is opened on the first call. Later calls must use the same sample rate.
func Open(sampleRate polytone.SampleRate, bufferSize int, w generators.Waveform) (*Output, error) {
	if sampleRate <= 0 || bufferSize <= 0 {
		return nil, errors.Errorf("speaker: invalid sample rate %d or buffer size %d", sampleRate, bufferSize)
	}

	mu.Lock()
	defer mu.Unlock()

	if context == nil {
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   int(sampleRate),
			ChannelCount: channelCount,
			Format:       oto.FormatSignedInt16LE,
			BufferSize:   sampleRate.D(bufferSize),
		})
		if err != nil {
			return nil, errors.Wrap(err, "failed to initialize speaker")
		}
		<-ready
		context, contextRate = ctx, sampleRate
	} else if contextRate != sampleRate {
		return nil, errors.Errorf("speaker already initialized at %d Hz, cannot play at %d Hz", contextRate, sampleRate)
	}

	out := &Output{bus: bus.New(sampleRate, w)}
	format := polytone.Format{SampleRate: sampleRate, NumChannels: channelCount, Precision: bitDepthInBytes}
	out.player = context.NewPlayer(newReaderFromStreamer(out.bus, format))
	out.player.SetBufferSize(bufferSize * bytesPerSample)
	out.player.Play()
	return out, nil
}

// NewSink implements polytone.Output. The new sink is paused.
func (o *Output) NewSink() (polytone.Sink, error) {
	if o.closed {
		return nil, errors.New("speaker: output closed")
	}
	return o.bus.NewSink(), nil
}

// Err returns the playback error of the output, if any.
func (o *Output) Err() error {
	return o.player.Err()
}

// Close stops the playback and removes all sinks. The audio device itself stays open, oto cannot
// release it.
func (o *Output) Close() error {
	if o.closed {
		return nil
	}
	o.closed = true
	o.bus.Clear()
	if err := o.player.Close(); err != nil {
		return errors.Wrap(err, "failed to close speaker")
	}
	return nil
}

// sampleReader is a wrapper for polytone.Streamer to implement io.Reader. It runs on the oto
// player's goroutine.
type sampleReader struct {
	s      polytone.Streamer
	format polytone.Format
	buf    [][2]float64
}

func newReaderFromStreamer(s polytone.Streamer, format polytone.Format) *sampleReader {
	return &sampleReader{
		s:      s,
		format: format,
	}
}

// Read pulls samples from the reader and fills buf with the encoded
// samples. Read expects the size of buf be divisible by the length
// of a sample (= channel count * bit depth in bytes).
func (s *sampleReader) Read(buf []byte) (n int, err error) {
	if len(buf)%bytesPerSample != 0 {
		return 0, errors.New("requested number of bytes do not align with the samples")
	}
	ns := len(buf) / bytesPerSample
	if len(s.buf) < ns {
		s.buf = make([][2]float64, ns)
	}
	ns, ok := s.s.Stream(s.buf[:ns])
	if !ok {
		if s.s.Err() != nil {
			return 0, errors.Wrap(s.s.Err(), "streamer returned error when requesting samples")
		}
		if ns == 0 {
			return 0, io.EOF
		}
	}

	// Convert samples to bytes, clipping anything outside [-1, 1]
	for i := range s.buf[:ns] {
		s.format.EncodeSigned(buf[i*bytesPerSample:], s.buf[i])
	}

	return ns * bytesPerSample, nil
}
