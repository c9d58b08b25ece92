package polytone

import "github.com/pkg/errors"

var (
	// ErrBackendUnavailable is returned by New when the audio output or one of the voice sinks
	// cannot be created. No mixer is returned in that case.
	ErrBackendUnavailable = errors.New("polytone: audio backend unavailable")

	// ErrIndexOutOfRange is returned when a voice index is outside [0, Len()). Mixer state is
	// left unchanged.
	ErrIndexOutOfRange = errors.New("polytone: voice index out of range")

	// ErrInvalidFrequency is returned when a voice frequency is not a positive finite number,
	// or when the backend cannot generate it at its sample rate.
	ErrInvalidFrequency = errors.New("polytone: invalid voice frequency")

	// ErrClosed is returned by operations on a closed mixer.
	ErrClosed = errors.New("polytone: mixer closed")
)
