// Package macro runs scripted key sequences one step per tick. A macro
// never blocks: each step emits its actions and schedules the next one
// through a deadline on State.
package macro

import (
	"go-keyfx/keycode"
	"go-keyfx/keymap"
	"go-keyfx/timer"
)

// Kind decides what happens when a script wraps around.
type Kind uint8

const (
	KindToggle Kind = iota // loops until pressed again
	KindHold               // loops until released
	KindOnce               // stops after one full pass
)

func (k Kind) String() string {
	switch k {
	case KindToggle:
		return "toggle"
	case KindHold:
		return "hold"
	case KindOnce:
		return "once"
	}
	return "unknown"
}

// State is the single macro slot. The zero value is idle.
type State struct {
	Active    bool
	Kind      Kind
	Identity  keycode.Keycode
	Step      uint8
	Deadline  timer.Instant
	Origin    keymap.Pos
	LastPulse timer.Instant
}

// Activate starts id from step 0, replacing whatever was running. The
// first step is due immediately.
func (s *State) Activate(id keycode.Keycode, kind Kind, origin keymap.Pos, now timer.Instant) {
	*s = State{
		Active:    true,
		Kind:      kind,
		Identity:  id,
		Deadline:  now,
		Origin:    origin,
		LastPulse: now,
	}
}

// Deactivate stops the running macro.
func (s *State) Deactivate() {
	s.Active = false
	s.Identity = keycode.NoKey
	s.Step = 0
}

// Running reports whether id is the active macro.
func (s *State) Running(id keycode.Keycode) bool {
	return s.Active && s.Identity == id
}

// Ready reports whether the next step may run at now.
func (s *State) Ready(now timer.Instant) bool {
	return s.Active && timer.Reached(s.Deadline, now)
}

// Advance schedules the next step delay ms after now. With reset the
// script starts over at step 0, and a once-kind macro stops.
func (s *State) Advance(now timer.Instant, delay uint32, reset bool) {
	s.Deadline = now.Add(delay)
	s.Step++
	if reset {
		if s.Kind == KindOnce {
			s.Active = false
		}
		s.Step = 0
	}
}
