// Command polytone plays a set of tones, each toggled on and off by a key, without ever clipping
// their mix.
//
// Without -render it opens the default audio device and shows a terminal panel. With -render it
// applies the -toggle list and writes -duration of audio to a .wav or .raw file instead.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/polytone/polytone"
	"github.com/polytone/polytone/generators"
	"github.com/polytone/polytone/render"
	"github.com/polytone/polytone/speaker"
)

func main() {
	configPath := flag.String("config", "", "YAML configuration file.")
	waveform := flag.String("waveform", "", "Waveform of all voices: sine, square, triangle or sawtooth.")
	frequencies := flag.String("frequencies", "", "Comma separated voice frequencies in Hz, overriding the configuration.")
	logPath := flag.String("log", "", "Log file. By default nothing is logged in interactive mode and stderr is used with -render.")
	renderPath := flag.String("render", "", "Render to this .wav or .raw file instead of playing.")
	duration := flag.Duration("duration", 2*time.Second, "Length of the rendered audio.")
	toggles := flag.String("toggle", "", "Comma separated voice indexes to toggle before rendering.")
	flag.Usage = printUsage
	flag.Parse()

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		report(err)
	}
	if *waveform != "" {
		if cfg.Waveform, err = generators.ParseWaveform(*waveform); err != nil {
			report(err)
		}
	}
	if *frequencies != "" {
		if cfg.Frequencies, err = parseFrequencies(*frequencies); err != nil {
			report(err)
		}
	}
	if err := cfg.Validate(); err != nil {
		report(errors.Wrap(err, "invalid configuration"))
	}

	if err := setupLog(*logPath, *renderPath != ""); err != nil {
		report(err)
	}

	if *renderPath != "" {
		indexes, err := parseIndexes(*toggles)
		if err != nil {
			report(err)
		}
		err = renderFile(cfg, *renderPath, *duration, indexes)
		if err != nil {
			report(err)
		}
		return
	}

	if err := play(cfg); err != nil {
		report(err)
	}
}

func play(cfg Config) error {
	m, err := polytone.New(speaker.Backend{
		SampleRate: cfg.SampleRate,
		BufferSize: cfg.BufferSize(),
		Waveform:   cfg.Waveform,
	}, cfg.Frequencies)
	if err != nil {
		return err
	}
	defer m.Close()
	log.Printf("playing %d %v voices at %d Hz, buffer %v", m.Len(), cfg.Waveform, cfg.SampleRate, cfg.Buffer)

	return runPanel(m, cfg)
}

func renderFile(cfg Config, path string, d time.Duration, toggles []int) error {
	b := &render.Backend{SampleRate: cfg.SampleRate, Waveform: cfg.Waveform}
	m, err := polytone.New(b, cfg.Frequencies)
	if err != nil {
		return err
	}
	defer m.Close()

	for _, i := range toggles {
		if err := m.Toggle(i); err != nil {
			return err
		}
		logToggle(m, i)
	}
	if err := b.Output().File(path, d); err != nil {
		return err
	}
	log.Printf("rendered %v of %d playing voices to %s", d, m.ActiveCount(), path)
	return nil
}

func logToggle(m *polytone.VoiceMixer, i int) {
	v, err := m.Voice(i)
	if err != nil {
		return
	}
	state := "paused"
	if v.IsPlaying() {
		state = "playing"
	}
	gain := 0.0
	if m.ActiveCount() > 0 {
		gain = 1 / float64(m.ActiveCount())
	}
	log.Printf("voice %d (%.2f Hz) %s, %d active, gain %.3f", i, v.Frequency(), state, m.ActiveCount(), gain)
}

// setupLog sends the log to path, or keeps it off the terminal panel when path is empty.
func setupLog(path string, toStderr bool) error {
	switch {
	case path != "":
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return errors.Wrap(err, "open log")
		}
		log.SetOutput(f)
	case toStderr:
		log.SetOutput(os.Stderr)
	default:
		log.SetOutput(io.Discard)
	}
	return nil
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "polytone plays tones toggled by keys, keeping their mix from clipping.\nUsage: %s [flags]\n", os.Args[0])
	flag.PrintDefaults()
}

func report(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
