package effects_test

import (
	"testing"

	"github.com/polytone/polytone"
	"github.com/polytone/polytone/effects"
)

// rampStreamer streams 1, 2, 3, ... on both channels and never drains.
type rampStreamer struct {
	next float64
}

func (r *rampStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		r.next++
		samples[i] = [2]float64{r.next, r.next}
	}
	return len(samples), true
}

func (r *rampStreamer) Err() error {
	return nil
}

func TestGain(t *testing.T) {
	g := effects.NewGain(&rampStreamer{}, 0.5)
	samples := make([][2]float64, 4)

	g.Stream(samples)
	for i, want := range []float64{0.5, 1, 1.5, 2} {
		if samples[i] != [2]float64{want, want} {
			t.Fatalf("sample %d at gain 0.5: expected %v, got %v", i, want, samples[i])
		}
	}

	g.SetGain(0.25)
	if g.Gain() != 0.25 {
		t.Fatalf("Gain: expected 0.25, got %v", g.Gain())
	}
	g.Stream(samples[:1])
	if samples[0] != [2]float64{1.25, 1.25} {
		t.Errorf("sample after SetGain(0.25): expected 1.25, got %v", samples[0])
	}
}

func TestCtrlPauseHoldsPosition(t *testing.T) {
	ctrl := &effects.Ctrl{Streamer: &rampStreamer{}}
	samples := make([][2]float64, 3)

	ctrl.Stream(samples)
	ctrl.SetPaused(true)
	if !ctrl.Paused() {
		t.Fatal("Paused: expected true")
	}
	n, ok := ctrl.Stream(samples)
	if n != len(samples) || !ok {
		t.Fatalf("paused Stream: n=%d ok=%v", n, ok)
	}
	for i := range samples {
		if samples[i] != [2]float64{} {
			t.Fatalf("paused sample %d not silent: %v", i, samples[i])
		}
	}

	ctrl.SetPaused(false)
	ctrl.Stream(samples[:1])
	if samples[0] != [2]float64{4, 4} {
		t.Errorf("resumed at %v, expected 4", samples[0])
	}
}

func TestCtrlWithoutStreamer(t *testing.T) {
	var ctrl effects.Ctrl
	if n, ok := ctrl.Stream(make([][2]float64, 8)); n != 0 || ok {
		t.Errorf("empty Ctrl: n=%d ok=%v, expected drained", n, ok)
	}
	var _ polytone.Streamer = &ctrl
}
