// Package pcm reads and writes raw interleaved signed PCM audio.
package pcm

import (
	"bufio"
	"io"

	"github.com/pkg/errors"

	"github.com/polytone/polytone"
)

// Encode writes all audio streamed from s to w in raw signed PCM format. s must drain.
func Encode(w io.Writer, s polytone.Streamer, format polytone.Format) error {
	if format.Width() <= 0 {
		return errors.Errorf("pcm: invalid format %+v", format)
	}
	var (
		bw      = bufio.NewWriter(w)
		samples = make([][2]float64, 512)
		buffer  = make([]byte, len(samples)*format.Width())
	)
	for {
		n, ok := s.Stream(samples)
		if !ok {
			if err := s.Err(); err != nil {
				return errors.Wrap(err, "pcm")
			}
			return errors.Wrap(bw.Flush(), "pcm")
		}
		var offset int
		for _, sample := range samples[:n] {
			offset += format.EncodeSigned(buffer[offset:], sample)
		}
		if _, err := bw.Write(buffer[:offset]); err != nil {
			return errors.Wrap(err, "pcm")
		}
	}
}
