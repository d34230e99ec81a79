// Package hid collects the virtual key actions produced by the keyboard
// and hands them to whatever stands in for the USB HID endpoint.
package hid

import (
	"fmt"
	"sync"

	"go-keyfx/keycode"
)

// ActionKind says what an Action does.
type ActionKind uint8

const (
	ActionPress ActionKind = iota
	ActionRelease
	ActionType
)

// Action is one virtual key action.
type Action struct {
	Kind ActionKind
	Code keycode.Keycode
	Text string
}

func Press(k keycode.Keycode) Action   { return Action{Kind: ActionPress, Code: k} }
func Release(k keycode.Keycode) Action { return Action{Kind: ActionRelease, Code: k} }
func Type(text string) Action          { return Action{Kind: ActionType, Text: text} }

func (a Action) String() string {
	switch a.Kind {
	case ActionPress:
		return "+" + a.Code.String()
	case ActionRelease:
		return "-" + a.Code.String()
	case ActionType:
		return fmt.Sprintf("%q", a.Text)
	}
	return "?"
}

// Sink receives actions in order.
type Sink interface {
	Press(k keycode.Keycode)
	Release(k keycode.Keycode)
	Type(text string)
}

// Tee fans every action out to each sink in turn.
type Tee []Sink

func (t Tee) Press(k keycode.Keycode) {
	for _, s := range t {
		s.Press(k)
	}
}

func (t Tee) Release(k keycode.Keycode) {
	for _, s := range t {
		s.Release(k)
	}
}

func (t Tee) Type(text string) {
	for _, s := range t {
		s.Type(text)
	}
}

// Strokes expands literal text into the press/release sequence a US
// layout needs, wrapping shifted characters in LeftShift. Runes with no
// key are skipped.
func Strokes(text string, emit func(Action)) {
	for _, r := range text {
		st, ok := keycode.ForRune(r)
		if !ok {
			continue
		}
		if st.Shifted {
			emit(Press(keycode.LeftShift))
		}
		emit(Press(st.Code))
		emit(Release(st.Code))
		if st.Shifted {
			emit(Release(keycode.LeftShift))
		}
	}
}

// History keeps the most recent actions in a fixed ring.
type History struct {
	mu   sync.Mutex
	buf  []Action
	next int
	full bool
}

// NewHistory creates a ring holding up to size actions.
func NewHistory(size int) *History {
	if size < 1 {
		size = 1
	}
	return &History{buf: make([]Action, size)}
}

func (h *History) add(a Action) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.buf[h.next] = a
	h.next = (h.next + 1) % len(h.buf)
	if h.next == 0 {
		h.full = true
	}
}

func (h *History) Press(k keycode.Keycode)   { h.add(Press(k)) }
func (h *History) Release(k keycode.Keycode) { h.add(Release(k)) }
func (h *History) Type(text string)          { h.add(Type(text)) }

// Actions returns the retained actions, oldest first.
func (h *History) Actions() []Action {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.full {
		return append([]Action(nil), h.buf[:h.next]...)
	}
	out := make([]Action, 0, len(h.buf))
	out = append(out, h.buf[h.next:]...)
	return append(out, h.buf[:h.next]...)
}

// Reset forgets everything.
func (h *History) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.next = 0
	h.full = false
}
