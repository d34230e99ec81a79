// Package keycode defines the 16-bit keycodes carried by matrix events:
// the HID keyboard usage range, modifiers, mouse buttons, momentary
// layer keys and the custom macro range.
package keycode

import "fmt"

// Keycode identifies what a key does on a given layer.
type Keycode uint16

const (
	NoKey       Keycode = 0x00
	Transparent Keycode = 0x01
)

// HID keyboard usage page
const (
	A Keycode = 0x04 + iota
	B
	C
	D
	E
	F
	G
	H
	I
	J
	K
	L
	M
	N
	O
	P
	Q
	R
	S
	T
	U
	V
	W
	X
	Y
	Z
	Num1
	Num2
	Num3
	Num4
	Num5
	Num6
	Num7
	Num8
	Num9
	Num0
	Enter
	Escape
	Backspace
	Tab
	Space
	Minus
	Equal
	LeftBracket
	RightBracket
	Backslash
	NonUSHash
	Semicolon
	Quote
	Grave
	Comma
	Dot
	Slash
	CapsLock
	F1
	F2
	F3
	F4
	F5
	F6
	F7
	F8
	F9
	F10
	F11
	F12
	PrintScreen
	ScrollLock
	Pause
	Insert
	Home
	PageUp
	Delete
	End
	PageDown
	Right
	Left
	Down
	Up
	NumLock
	KPSlash
	KPAsterisk
	KPMinus
	KPPlus
	KPEnter
	KP1
	KP2
	KP3
	KP4
	KP5
	KP6
	KP7
	KP8
	KP9
	KP0
	KPDot
)

// Consumer and system keys
const (
	AudioMute   Keycode = 0xA8
	VolumeUp    Keycode = 0xA9
	VolumeDown  Keycode = 0xAA
	MediaNext   Keycode = 0xAB
	MediaPrev   Keycode = 0xAC
	MediaStop   Keycode = 0xAD
	MediaPlay   Keycode = 0xAE
	BrightUp    Keycode = 0xBD
	BrightDown  Keycode = 0xBE
	MouseBtn1   Keycode = 0xD1
	MouseBtn2   Keycode = 0xD2
	MouseBtn3   Keycode = 0xD3
	LeftCtrl    Keycode = 0xE0
	LeftShift   Keycode = 0xE1
	LeftAlt     Keycode = 0xE2
	LeftGUI     Keycode = 0xE3
	RightCtrl   Keycode = 0xE4
	RightShift  Keycode = 0xE5
	RightAlt    Keycode = 0xE6
	RightGUI    Keycode = 0xE7
	momentary   Keycode = 0x5220
	momentaryHi Keycode = 0x523F
)

// Lighting control keys handled by the host, not sent over HID.
const (
	RGBToggle Keycode = 0x7820 + iota
	RGBValUp
	RGBValDown
)

// SafeRange is the first keycode free for user definitions.
const SafeRange Keycode = 0x7E40

// Macro triggers. The Reserve* codes anchor the three trigger classes and
// carry no script of their own.
const (
	ReserveHold Keycode = SafeRange + iota
	ReserveToggle
	ReserveOnce
	MacroMouse1
	MacroMouse2
	MacroNum3
	MacroEquals
	MacroTest
	MacroLove
)

// MO returns the momentary-layer keycode for layer.
func MO(layer uint8) Keycode {
	return momentary | Keycode(layer&0x1F)
}

// Layer reports the layer of a momentary-layer keycode.
func (k Keycode) Layer() (uint8, bool) {
	if k < momentary || k > momentaryHi {
		return 0, false
	}
	return uint8(k & 0x1F), true
}

// IsModifier reports whether k is one of the eight HID modifiers.
func (k Keycode) IsModifier() bool {
	return k >= LeftCtrl && k <= RightGUI
}

// IsBasic reports whether k is in the plain HID usage range.
func (k Keycode) IsBasic() bool {
	return k >= A && k <= 0xFF
}

// IsCustom reports whether k is a user-defined keycode.
func (k Keycode) IsCustom() bool {
	return k >= SafeRange
}

func (k Keycode) String() string {
	if name, ok := names[k]; ok {
		return name
	}
	if layer, ok := k.Layer(); ok {
		return fmt.Sprintf("MO(%d)", layer)
	}
	return fmt.Sprintf("0x%04X", uint16(k))
}
