package pcm

import (
	"io"

	"github.com/pkg/errors"

	"github.com/polytone/polytone"
)

// Decode takes a Reader containing audio data in raw signed PCM format and returns a Streamer,
// which streams that audio.
func Decode(r io.Reader, format polytone.Format) polytone.Streamer {
	return &stream{
		r:   r,
		f:   format,
		buf: make([]byte, 512*format.Width()),
	}
}

type stream struct {
	r   io.Reader
	f   polytone.Format
	buf []byte
	len int
	pos int
	err error
}

func (s *stream) Err() error { return s.err }

func (s *stream) Stream(samples [][2]float64) (n int, ok bool) {
	width := s.f.Width()
	// if there's not enough data for a full sample, get more
	if size := s.len - s.pos; size < width {
		// if there's a partial sample, move it to the beginning of the buffer
		if size != 0 {
			copy(s.buf, s.buf[s.pos:s.len])
		}
		s.len = size
		s.pos = 0
		// refill the buffer
		nbytes, err := s.r.Read(s.buf[s.len:])
		s.len += nbytes
		if err != nil && nbytes == 0 {
			if err != io.EOF {
				s.err = errors.Wrap(err, "pcm")
			}
			return 0, false
		}
	}
	// decode as many samples as we can
	for n < len(samples) && s.len-s.pos >= width {
		samples[n], _ = s.f.DecodeSigned(s.buf[s.pos:])
		n++
		s.pos += width
	}
	return n, true
}
