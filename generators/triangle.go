package generators

import (
	"math"

	"github.com/polytone/polytone"
)

type triangleGenerator struct {
	dt float64
	t  float64
}

// TriangleTone creates a streamer which will produce an infinite triangle wave with the given
// frequency, rising from -1 to 1 over the first half of each period.
func TriangleTone(sr polytone.SampleRate, freq float64) (polytone.Streamer, error) {
	dt, err := phaseStep("triangle", sr, freq)
	if err != nil {
		return nil, err
	}
	return &triangleGenerator{dt, 0}, nil
}

func (g *triangleGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		var v float64
		if g.t < 0.5 {
			v = 4.0*g.t - 1.0
		} else {
			v = 3.0 - 4.0*g.t
		}
		samples[i][0] = v
		samples[i][1] = v
		_, g.t = math.Modf(g.t + g.dt)
	}

	return len(samples), true
}

func (*triangleGenerator) Err() error {
	return nil
}
