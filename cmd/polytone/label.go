package main

import (
	"strings"
	"text/template"

	"github.com/Masterminds/sprig"
	"github.com/pkg/errors"

	"github.com/polytone/polytone"
)

// labelData is what a label template sees for one voice.
type labelData struct {
	Index     int
	Key       string
	Frequency float64
	Playing   bool
	State     string
	Gain      float64
}

// labeler renders the label of a voice from a text/template with the sprig functions.
type labeler struct {
	tmpl *template.Template
}

func newLabeler(text string) (*labeler, error) {
	tmpl, err := template.New("label").Funcs(sprig.TxtFuncMap()).Parse(text)
	if err != nil {
		return nil, errors.Wrap(err, "label template")
	}
	return &labeler{tmpl}, nil
}

func (l *labeler) label(v polytone.VoiceState, key rune) (string, error) {
	state := "paused"
	if v.Playing {
		state = "playing"
	}
	var sb strings.Builder
	err := l.tmpl.Execute(&sb, labelData{
		Index:     v.Index,
		Key:       string(key),
		Frequency: v.Frequency,
		Playing:   v.Playing,
		State:     state,
		Gain:      v.Gain,
	})
	if err != nil {
		return "", errors.Wrapf(err, "label of voice %d", v.Index)
	}
	return sb.String(), nil
}
