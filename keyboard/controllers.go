package keyboard

import (
	"go-keyfx/debug"
	"go-keyfx/keymap"
	"go-keyfx/midi"
)

// AttachLaunchpad routes c's pads into the matrix through w and makes it
// the LED output. Events stop when c is closed.
func (k *Keyboard) AttachLaunchpad(c midi.Controller, w PadWindow) {
	debug.Log("ctrl", "attach launchpad %s offset=%d", c.ID(), w.ColOffset)
	k.leds.attach(c, w)
	go func() {
		down := make(map[[2]int]keymap.Pos)
		for ev := range c.PadEvents() {
			k.handlePad(ev, down)
		}
	}()
}

// AttachKeyboard routes c's notes into the matrix through l.
func (k *Keyboard) AttachKeyboard(c midi.Controller, l NoteLayout) {
	debug.Log("ctrl", "attach keyboard %s base=%d", c.ID(), l.BaseNote)
	go func() {
		for ev := range c.NoteEvents() {
			if p, ok := l.Pos(ev.Note); ok {
				k.Submit(Input{Pos: p, Pressed: ev.Pressed})
			}
		}
	}()
}

// Detach stops LED output to the controller with the given id.
func (k *Keyboard) Detach(id string) {
	k.leds.detach(id)
}

// Controller returns the current LED output, nil when none.
func (k *Keyboard) Controller() midi.Controller {
	return k.leds.controller()
}

// Scroll moves the pad window by delta columns.
func (k *Keyboard) Scroll(delta int) PadWindow {
	return k.leds.scroll(delta)
}

// handlePad translates one pad event. down remembers where each held pad
// landed so a release after scrolling still reaches the pressed key.
func (k *Keyboard) handlePad(ev midi.PadEvent, down map[[2]int]keymap.Pos) {
	if ev.Row == midi.TopRow {
		if !ev.Pressed {
			return
		}
		switch ev.Col {
		case padLeft:
			k.Scroll(-midi.GridSize)
		case padRight:
			k.Scroll(midi.GridSize)
		}
		return
	}
	pad := [2]int{ev.Row, ev.Col}
	if !ev.Pressed {
		if p, ok := down[pad]; ok {
			delete(down, pad)
			k.Submit(Input{Pos: p})
		}
		return
	}
	if p, ok := k.leds.currentWindow().Pos(ev.Row, ev.Col); ok {
		down[pad] = p
		k.Submit(Input{Pos: p, Pressed: true})
	}
}
