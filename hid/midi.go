package hid

import (
	"fmt"

	"go-keyfx/debug"
	"go-keyfx/keycode"

	gomidi "gitlab.com/gomidi/midi/v2"
)

// MIDI plays actions on a MIDI output: a press is a note on, a release a
// note off. Keys up to 0x6F use their HID usage code as the note number,
// modifiers sit at notes 112-119, anything else is dropped. OpenMIDI
// needs a driver registered by the caller.
type MIDI struct {
	send     func(gomidi.Message) error
	channel  uint8
	velocity uint8
}

// NewMIDI wraps an already opened sender.
func NewMIDI(send func(gomidi.Message) error, channel uint8) *MIDI {
	return &MIDI{send: send, channel: channel, velocity: 100}
}

// OpenMIDI opens the output port called portName.
func OpenMIDI(portName string, channel uint8) (*MIDI, error) {
	for _, port := range gomidi.GetOutPorts() {
		if port.String() != portName {
			continue
		}
		send, err := gomidi.SendTo(port)
		if err != nil {
			return nil, fmt.Errorf("open output %q: %w", portName, err)
		}
		return NewMIDI(send, channel), nil
	}
	return nil, fmt.Errorf("output port %q not found", portName)
}

// lastKeyNote is the highest usage code played as itself; notes above it
// belong to modifiers.
const lastKeyNote = 0x6F

// Note maps a keycode to its note number.
func Note(k keycode.Keycode) (uint8, bool) {
	switch {
	case k.IsModifier():
		return 0x70 + uint8(k-keycode.LeftCtrl), true
	case k.IsBasic() && k <= lastKeyNote:
		return uint8(k), true
	}
	return 0, false
}

func (m *MIDI) Press(k keycode.Keycode) {
	note, ok := Note(k)
	if !ok {
		return
	}
	if err := m.send(gomidi.NoteOn(m.channel, note, m.velocity)); err != nil {
		debug.Log("hid", "midi press %v: %v", k, err)
	}
}

func (m *MIDI) Release(k keycode.Keycode) {
	note, ok := Note(k)
	if !ok {
		return
	}
	if err := m.send(gomidi.NoteOff(m.channel, note)); err != nil {
		debug.Log("hid", "midi release %v: %v", k, err)
	}
}

func (m *MIDI) Type(text string) {
	Strokes(text, func(a Action) {
		if a.Kind == ActionPress {
			m.Press(a.Code)
		} else {
			m.Release(a.Code)
		}
	})
}
