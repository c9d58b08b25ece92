package polytone

import "github.com/pkg/errors"

// ToneVoice is one continuous tone at a fixed frequency, carried by its own Sink.
//
// A voice is created paused and lives as long as the VoiceMixer owning it. Its sink is never
// recreated, only paused and resumed, because the frequency of a queued wave cannot change.
type ToneVoice struct {
	freq    float64
	sink    Sink
	playing bool
	gain    float64
}

func newToneVoice(out Output, freq float64) (*ToneVoice, error) {
	sink, err := out.NewSink()
	if err != nil {
		return nil, errors.Wrapf(ErrBackendUnavailable, "sink for %.2f Hz: %v", freq, err)
	}
	if err := sink.AppendContinuousWave(freq); err != nil {
		sink.Close()
		if errors.Is(err, ErrInvalidFrequency) {
			return nil, err
		}
		return nil, errors.Wrapf(ErrBackendUnavailable, "wave of %.2f Hz: %v", freq, err)
	}
	sink.Pause()
	return &ToneVoice{
		freq: freq,
		sink: sink,
		gain: 1,
	}, nil
}

// Frequency returns the frequency of the voice in Hz.
func (v *ToneVoice) Frequency() float64 {
	return v.freq
}

// IsPlaying reports whether the voice is playing.
func (v *ToneVoice) IsPlaying() bool {
	return v.playing
}

// Gain returns the gain last applied to the voice's sink.
func (v *ToneVoice) Gain() float64 {
	return v.gain
}

func (v *ToneVoice) setActive(active bool) {
	if active {
		v.sink.Play()
	} else {
		v.sink.Pause()
	}
}

func (v *ToneVoice) setGain(g float64) {
	v.sink.SetGain(g)
	v.gain = g
}

func (v *ToneVoice) close() error {
	return v.sink.Close()
}
