package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/polytone/polytone"
	"github.com/polytone/polytone/generators"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default configuration invalid: %v", err)
	}
	if cfg.BufferSize() != 4800 {
		t.Errorf("BufferSize: expected 4800, got %d", cfg.BufferSize())
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "polytone.yml")
	data := `
sample_rate: 44100
buffer: 50ms
waveform: triangle
frequencies: [261.63, 329.63, 392.00, 523.25]
keys: asdf
label: '{{ upper .State }} {{ .Key }}'
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	want := Config{
		SampleRate:  44100,
		Buffer:      50 * time.Millisecond,
		Waveform:    generators.Triangle,
		Frequencies: []float64{261.63, 329.63, 392.00, 523.25},
		Keys:        "asdf",
		Label:       "{{ upper .State }} {{ .Key }}",
	}
	if !reflect.DeepEqual(cfg, want) {
		t.Errorf("LoadConfig:\nexpected %+v\nactual   %+v", want, cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Error("missing file accepted")
	}

	path := filepath.Join(t.TempDir(), "bad.yml")
	if err := os.WriteFile(path, []byte("waveform: noise\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("unknown waveform accepted")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero sample rate", func(c *Config) { c.SampleRate = 0 }},
		{"empty buffer", func(c *Config) { c.Buffer = time.Nanosecond }},
		{"no frequencies", func(c *Config) { c.Frequencies = nil }},
		{"negative frequency", func(c *Config) { c.Frequencies = []float64{440, -1} }},
		{"above nyquist", func(c *Config) { c.Frequencies = []float64{24000} }},
		{"too few keys", func(c *Config) { c.Keys = "12" }},
		{"duplicate keys", func(c *Config) { c.Keys = "112" }},
		{"duplicate keys in other case", func(c *Config) { c.Keys = "aBb" }},
		{"bad label", func(c *Config) { c.Label = "{{ .Playing " }},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.modify(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: accepted", tt.name)
		}
	}

	cfg := DefaultConfig()
	cfg.Keys = "QWE"
	if err := cfg.Validate(); err != nil {
		t.Errorf("upper case keys: %v", err)
	}

	cfg = DefaultConfig()
	cfg.Frequencies = []float64{0}
	if err := cfg.Validate(); !errors.Is(err, polytone.ErrInvalidFrequency) {
		t.Errorf("zero frequency: expected ErrInvalidFrequency, got %v", err)
	}
}

func TestParseLists(t *testing.T) {
	freqs, err := parseFrequencies("440, 554.37,659.25")
	if err != nil || !reflect.DeepEqual(freqs, []float64{440, 554.37, 659.25}) {
		t.Errorf("parseFrequencies: %v, %v", freqs, err)
	}
	if _, err := parseFrequencies("440,a"); err == nil {
		t.Error("parseFrequencies accepted a non-number")
	}

	indexes, err := parseIndexes("0, 2,1")
	if err != nil || !reflect.DeepEqual(indexes, []int{0, 2, 1}) {
		t.Errorf("parseIndexes: %v, %v", indexes, err)
	}
	if indexes, err := parseIndexes(" "); err != nil || indexes != nil {
		t.Errorf("parseIndexes of blank: %v, %v", indexes, err)
	}
	if _, err := parseIndexes("1,x"); err == nil {
		t.Error("parseIndexes accepted a non-number")
	}
}
