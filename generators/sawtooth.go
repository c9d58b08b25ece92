package generators

import (
	"math"

	"github.com/polytone/polytone"
)

type sawGenerator struct {
	dt float64
	t  float64
}

// SawtoothTone creates a streamer which will produce an infinite rising sawtooth wave with the
// given frequency.
func SawtoothTone(sr polytone.SampleRate, freq float64) (polytone.Streamer, error) {
	dt, err := phaseStep("sawtooth", sr, freq)
	if err != nil {
		return nil, err
	}
	return &sawGenerator{dt, 0}, nil
}

func (g *sawGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		v := 2.0*g.t - 1.0
		samples[i][0] = v
		samples[i][1] = v
		_, g.t = math.Modf(g.t + g.dt)
	}

	return len(samples), true
}

func (*sawGenerator) Err() error {
	return nil
}
