package main

import (
	"fmt"
	"log"
	"strings"
	"unicode"

	"github.com/gdamore/tcell"

	"github.com/polytone/polytone"
)

func drawTextLine(screen tcell.Screen, x, y int, s string, style tcell.Style) {
	for _, r := range s {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// voicePanel shows one line per voice and toggles voices on key presses. Everything it draws is
// read from the mixer. Keys are matched case-insensitively.
type voicePanel struct {
	mixer   *polytone.VoiceMixer
	keys    []rune
	labeler *labeler
}

func newVoicePanel(m *polytone.VoiceMixer, keys string, l *labeler) *voicePanel {
	return &voicePanel{
		mixer:   m,
		keys:    lowerKeys(keys)[:m.Len()],
		labeler: l,
	}
}

func (vp *voicePanel) draw(screen tcell.Screen) {
	mainStyle := tcell.StyleDefault.
		Background(tcell.NewHexColor(0x473437)).
		Foreground(tcell.NewHexColor(0xD7D8A2))
	playingStyle := mainStyle.
		Foreground(tcell.NewHexColor(0xDDC074)).
		Bold(true)

	screen.Fill(' ', mainStyle)

	drawTextLine(screen, 0, 0, "polytone", mainStyle)
	quitHelp := "Press [ESC] or [Q] to quit."
	if strings.ContainsRune(string(vp.keys), 'q') {
		quitHelp = "Press [ESC] to quit."
	}
	drawTextLine(screen, 0, 1, quitHelp, mainStyle)
	drawTextLine(screen, 0, 2, fmt.Sprintf("Press [%s] to play/pause a voice.", string(vp.keys)), mainStyle)

	for _, v := range vp.mixer.Voices() {
		style := mainStyle
		if v.Playing {
			style = playingStyle
		}
		label, err := vp.labeler.label(v, vp.keys[v.Index])
		if err != nil {
			label = err.Error()
		}
		drawTextLine(screen, 0, 4+v.Index, fmt.Sprintf("[%c] %s", vp.keys[v.Index], label), style)
	}

	status := fmt.Sprintf("%d of %d voices playing", vp.mixer.ActiveCount(), vp.mixer.Len())
	drawTextLine(screen, 0, 5+vp.mixer.Len(), status, mainStyle)
}

// handle toggles the voice bound to a pressed key.
func (vp *voicePanel) handle(event tcell.Event) (changed, quit bool) {
	switch event := event.(type) {
	case *tcell.EventResize:
		return true, false

	case *tcell.EventKey:
		if event.Key() == tcell.KeyESC || event.Key() == tcell.KeyCtrlC {
			return false, true
		}

		if event.Key() != tcell.KeyRune {
			return false, false
		}

		r := unicode.ToLower(event.Rune())
		if r == 'q' && !strings.ContainsRune(string(vp.keys), r) {
			return false, true
		}
		for i, key := range vp.keys {
			if key != r {
				continue
			}
			if err := vp.mixer.Toggle(i); err != nil {
				log.Printf("toggle voice %d: %v", i, err)
				return false, false
			}
			logToggle(vp.mixer, i)
			return true, false
		}
	}
	return false, false
}

// runPanel runs the terminal front end until the user quits.
func runPanel(m *polytone.VoiceMixer, cfg Config) error {
	l, err := newLabeler(cfg.Label)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	vp := newVoicePanel(m, cfg.Keys, l)

	screen.Clear()
	vp.draw(screen)
	screen.Show()

	// all toggles happen on this goroutine, the mixer is not safe for concurrent use
	events := make(chan tcell.Event)
	go func() {
		for {
			events <- screen.PollEvent()
		}
	}()

	for event := range events {
		changed, quit := vp.handle(event)
		if quit {
			return nil
		}
		if changed {
			screen.Clear()
			vp.draw(screen)
			screen.Show()
		}
	}
	return nil
}
