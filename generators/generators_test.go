package generators_test

import (
	"math"
	"testing"

	"github.com/pkg/errors"

	"github.com/polytone/polytone"
	"github.com/polytone/polytone/generators"
)

func TestSineTone(t *testing.T) {
	s, err := generators.SineTone(8, 1)
	if err != nil {
		t.Fatalf("SineTone: %v", err)
	}

	samples := make([][2]float64, 16)
	if n, ok := s.Stream(samples); n != len(samples) || !ok {
		t.Fatalf("Stream: n=%d ok=%v", n, ok)
	}
	for i := range samples {
		want := math.Sin(2 * math.Pi * float64(i%8) / 8)
		if math.Abs(samples[i][0]-want) > 1e-9 || samples[i][0] != samples[i][1] {
			t.Fatalf("sample %d: expected %v on both channels, got %v", i, want, samples[i])
		}
	}
}

func TestWaveformsStayWithinUnity(t *testing.T) {
	for _, w := range []generators.Waveform{generators.Sine, generators.Square, generators.Triangle, generators.Sawtooth} {
		s, err := generators.New(w, 48000, 659.25)
		if err != nil {
			t.Fatalf("%v: %v", w, err)
		}
		samples := make([][2]float64, 48000)
		s.Stream(samples)

		peak := 0.0
		for i := range samples {
			peak = math.Max(peak, math.Abs(samples[i][0]))
		}
		if peak > 1 || peak < 0.95 {
			t.Errorf("%v: peak amplitude %v, expected 1", w, peak)
		}
	}
}

func TestToneRejectsFrequency(t *testing.T) {
	sr := polytone.SampleRate(44100)
	for _, freq := range []float64{0, -1, sr.Nyquist(), 30000, math.NaN()} {
		for _, w := range []generators.Waveform{generators.Sine, generators.Square, generators.Triangle, generators.Sawtooth} {
			_, err := generators.New(w, sr, freq)
			if !errors.Is(err, polytone.ErrInvalidFrequency) {
				t.Errorf("%v at %v Hz: expected ErrInvalidFrequency, got %v", w, freq, err)
			}
		}
	}
}

func TestParseWaveform(t *testing.T) {
	tests := []struct {
		name string
		want generators.Waveform
	}{
		{"sine", generators.Sine},
		{"Square", generators.Square},
		{"TRIANGLE", generators.Triangle},
		{"sawtooth", generators.Sawtooth},
	}
	for _, tt := range tests {
		got, err := generators.ParseWaveform(tt.name)
		if err != nil || got != tt.want {
			t.Errorf("ParseWaveform(%q) = %v, %v; expected %v", tt.name, got, err, tt.want)
		}
		if tt.want.String() != got.String() {
			t.Errorf("String of %q: %q", tt.name, got.String())
		}
	}

	if _, err := generators.ParseWaveform("noise"); err == nil {
		t.Error("ParseWaveform accepted an unknown waveform")
	}

	var w generators.Waveform
	if err := w.UnmarshalText([]byte("triangle")); err != nil || w != generators.Triangle {
		t.Errorf("UnmarshalText: %v, %v", w, err)
	}
}
