package main

import (
	"math"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/polytone/polytone"
	"github.com/polytone/polytone/generators"
)

// Config is the startup configuration. It is read from a YAML file and overridden by flags.
type Config struct {
	SampleRate  polytone.SampleRate `yaml:"sample_rate"`
	Buffer      time.Duration       `yaml:"buffer"`
	Waveform    generators.Waveform `yaml:"waveform"`
	Frequencies []float64           `yaml:"frequencies"`
	Keys        string              `yaml:"keys"`
	Label       string              `yaml:"label"`
}

const defaultLabel = `{{ if .Playing }}Pause{{ else }}Play{{ end }} {{ printf "%.2f" .Frequency }} Hz`

// DefaultConfig plays an A major triad: A4, C#5 and E5.
func DefaultConfig() Config {
	return Config{
		SampleRate:  48000,
		Buffer:      100 * time.Millisecond,
		Waveform:    generators.Sine,
		Frequencies: []float64{440.00, 554.37, 659.25},
		Keys:        "1234567890",
		Label:       defaultLabel,
	}
}

// LoadConfig reads the YAML file at path over the defaults. An empty path returns the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "read config")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}
	return cfg, nil
}

// BufferSize returns the buffer duration in samples.
func (c Config) BufferSize() int {
	return c.SampleRate.N(c.Buffer)
}

// Validate checks the configuration before any audio device is opened.
func (c Config) Validate() error {
	if c.SampleRate <= 0 {
		return errors.Errorf("sample_rate must be positive, got %d", c.SampleRate)
	}
	if c.BufferSize() <= 0 {
		return errors.Errorf("buffer of %v holds no sample at %d Hz", c.Buffer, c.SampleRate)
	}
	if len(c.Frequencies) == 0 {
		return errors.New("at least one frequency is required")
	}
	for i, freq := range c.Frequencies {
		if !(freq > 0) || math.IsInf(freq, 0) || freq >= c.SampleRate.Nyquist() {
			return errors.Wrapf(polytone.ErrInvalidFrequency,
				"frequency %d is %v Hz, must be between 0 and %v Hz", i, freq, c.SampleRate.Nyquist())
		}
	}
	if n := len([]rune(c.Keys)); len(c.Frequencies) > n {
		return errors.Errorf("%d frequencies but only %d keys to toggle them", len(c.Frequencies), n)
	}
	seen := make(map[rune]int)
	for i, r := range lowerKeys(c.Keys)[:len(c.Frequencies)] {
		if j, ok := seen[r]; ok {
			return errors.Errorf("voices %d and %d share the key %q", j, i, r)
		}
		seen[r] = i
	}
	if _, err := newLabeler(c.Label); err != nil {
		return err
	}
	return nil
}

// lowerKeys returns the keys of s, one per voice, in lower case.
func lowerKeys(s string) []rune {
	keys := []rune(s)
	for i, r := range keys {
		keys[i] = unicode.ToLower(r)
	}
	return keys
}

// parseFrequencies parses a comma separated list of frequencies in Hz.
func parseFrequencies(s string) ([]float64, error) {
	var freqs []float64
	for _, field := range strings.Split(s, ",") {
		freq, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "frequency %q", field)
		}
		freqs = append(freqs, freq)
	}
	return freqs, nil
}

// parseIndexes parses a comma separated list of voice indexes. An empty string is an empty list.
func parseIndexes(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var indexes []int
	for _, field := range strings.Split(s, ",") {
		i, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, errors.Wrapf(err, "voice index %q", field)
		}
		indexes = append(indexes, i)
	}
	return indexes, nil
}
