package polytone_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/polytone/polytone"
)

func TestFormatEncodeDecode(t *testing.T) {
	formats := make(chan polytone.Format)
	go func() {
		defer close(formats)
		for _, sampleRate := range []polytone.SampleRate{100, 44100, 48000} {
			for _, numChannels := range []int{1, 2, 3} {
				for _, precision := range []int{1, 2, 3, 4, 6} {
					formats <- polytone.Format{
						SampleRate:  sampleRate,
						NumChannels: numChannels,
						Precision:   precision,
					}
				}
			}
		}
	}()

	for format := range formats {
		for i := 0; i < 20; i++ {
			deviation := 2.0 / (math.Pow(2, float64(format.Precision)*8) - 2)
			sample := [2]float64{rand.Float64()*2 - 1, rand.Float64()*2 - 1}

			tmp := make([]byte, format.Width())
			format.EncodeSigned(tmp, sample)
			decoded, _ := format.DecodeSigned(tmp)

			if format.NumChannels == 1 {
				if math.Abs((sample[0]+sample[1])/2-decoded[0]) > deviation || decoded[0] != decoded[1] {
					t.Fatalf("signed decoded sample is too different: %v -> %v (deviation: %v)", sample, decoded, deviation)
				}
			} else {
				if math.Abs(sample[0]-decoded[0]) > deviation || math.Abs(sample[1]-decoded[1]) > deviation {
					t.Fatalf("signed decoded sample is too different: %v -> %v (deviation: %v)", sample, decoded, deviation)
				}
			}

			format.EncodeUnsigned(tmp, sample)
			decoded, _ = format.DecodeUnsigned(tmp)

			if format.NumChannels == 1 {
				if math.Abs((sample[0]+sample[1])/2-decoded[0]) > deviation || decoded[0] != decoded[1] {
					t.Fatalf("unsigned decoded sample is too different: %v -> %v (deviation: %v)", sample, decoded, deviation)
				}
			} else {
				if math.Abs(sample[0]-decoded[0]) > deviation || math.Abs(sample[1]-decoded[1]) > deviation {
					t.Fatalf("unsigned decoded sample is too different: %v -> %v (deviation: %v)", sample, decoded, deviation)
				}
			}
		}
	}
}

func TestFormatEncodeClips(t *testing.T) {
	format := polytone.Format{SampleRate: 48000, NumChannels: 2, Precision: 2}
	tmp := make([]byte, format.Width())

	format.EncodeSigned(tmp, [2]float64{1.7, -3})
	decoded, n := format.DecodeSigned(tmp)
	if n != format.Width() {
		t.Fatalf("decoded width: expected %d, actual %d", format.Width(), n)
	}
	if decoded != [2]float64{1, -1} {
		t.Errorf("out of range sample not clipped: %v", decoded)
	}

	format.EncodeUnsigned(tmp, [2]float64{2, -2})
	decoded, _ = format.DecodeUnsigned(tmp)
	if decoded != [2]float64{1, -1} {
		t.Errorf("out of range unsigned sample not clipped: %v", decoded)
	}
}
