package generators

import (
	"math"

	"github.com/polytone/polytone"
)

type squareGenerator struct {
	dt float64
	t  float64
}

// SquareTone creates a streamer which will produce an infinite square wave with the given
// frequency.
func SquareTone(sr polytone.SampleRate, freq float64) (polytone.Streamer, error) {
	dt, err := phaseStep("square", sr, freq)
	if err != nil {
		return nil, err
	}
	return &squareGenerator{dt, 0}, nil
}

func (g *squareGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		v := -1.0
		if g.t < 0.5 {
			v = 1.0
		}
		samples[i][0] = v
		samples[i][1] = v
		_, g.t = math.Modf(g.t + g.dt)
	}

	return len(samples), true
}

func (*squareGenerator) Err() error {
	return nil
}
