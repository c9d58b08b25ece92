package generators

import (
	"math"

	"github.com/polytone/polytone"
)

type sineGenerator struct {
	dt float64
	t  float64
}

// SineTone creates a streamer which will produce an infinite sine wave with the given frequency.
// freq must be below the Nyquist frequency of sr, otherwise an error wrapping
// polytone.ErrInvalidFrequency is returned.
func SineTone(sr polytone.SampleRate, freq float64) (polytone.Streamer, error) {
	dt, err := phaseStep("sine", sr, freq)
	if err != nil {
		return nil, err
	}
	return &sineGenerator{dt, 0}, nil
}

func (g *sineGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		v := math.Sin(g.t * 2.0 * math.Pi)
		samples[i][0] = v
		samples[i][1] = v
		_, g.t = math.Modf(g.t + g.dt)
	}

	return len(samples), true
}

func (*sineGenerator) Err() error {
	return nil
}
