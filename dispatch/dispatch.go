// Package dispatch routes key events either to the macro slot or back to
// the caller for normal key output.
package dispatch

import (
	"go-keyfx/keycode"
	"go-keyfx/keymap"
	"go-keyfx/macro"
)

// Class is how a trigger key drives the macro slot.
type Class uint8

const (
	ClassNone Class = iota
	ClassToggle
	ClassHold
	ClassOnce
)

func (c Class) String() string {
	switch c {
	case ClassNone:
		return "none"
	case ClassToggle:
		return "toggle"
	case ClassHold:
		return "hold"
	case ClassOnce:
		return "once"
	}
	return "unknown"
}

// Classes maps trigger keycodes to their class. Anything absent is
// ClassNone.
type Classes map[keycode.Keycode]Class

// DefaultClasses is the board's trigger table.
func DefaultClasses() Classes {
	return Classes{
		keycode.ReserveToggle: ClassToggle,
		keycode.MacroMouse1:   ClassToggle,
		keycode.MacroMouse2:   ClassToggle,
		keycode.MacroEquals:   ClassToggle,
		keycode.MacroNum3:     ClassToggle,
		keycode.MacroTest:     ClassToggle,
		keycode.ReserveHold:   ClassHold,
		keycode.ReserveOnce:   ClassOnce,
		keycode.MacroLove:     ClassOnce,
	}
}

type Dispatcher struct {
	classes Classes
	seeder  macro.Seeder
}

func New(classes Classes, seeder macro.Seeder) *Dispatcher {
	if classes == nil {
		classes = DefaultClasses()
	}
	return &Dispatcher{classes: classes, seeder: seeder}
}

// Class returns the class of k.
func (d *Dispatcher) Class(k keycode.Keycode) Class {
	return d.classes[k]
}

// Dispatch applies ev to st and reports whether the event was consumed as
// a macro trigger. Every press seeds a ripple, consumed or not.
func (d *Dispatcher) Dispatch(st *macro.State, ev keymap.Event) bool {
	if ev.Pressed && d.seeder != nil {
		d.seeder.Seed(ev.Pos)
	}

	switch d.classes[ev.Keycode] {
	case ClassToggle:
		if ev.Pressed {
			toggle(st, ev, macro.KindToggle)
		}
		return true
	case ClassOnce:
		if ev.Pressed {
			toggle(st, ev, macro.KindOnce)
		}
		return true
	case ClassHold:
		if ev.Pressed {
			st.Activate(ev.Keycode, macro.KindHold, ev.Pos, ev.Time)
		} else {
			st.Deactivate()
		}
		return true
	}
	return false
}

// toggle stops ev's macro if it is the one running, otherwise starts it
// over whatever else was active.
func toggle(st *macro.State, ev keymap.Event, kind macro.Kind) {
	if st.Running(ev.Keycode) {
		st.Deactivate()
		return
	}
	st.Activate(ev.Keycode, kind, ev.Pos, ev.Time)
}
