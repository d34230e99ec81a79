package keycode

import (
	"fmt"
	"strings"
)

var names = map[Keycode]string{
	NoKey: "NO", Transparent: "TRNS",

	A: "A", B: "B", C: "C", D: "D", E: "E", F: "F", G: "G", H: "H", I: "I",
	J: "J", K: "K", L: "L", M: "M", N: "N", O: "O", P: "P", Q: "Q", R: "R",
	S: "S", T: "T", U: "U", V: "V", W: "W", X: "X", Y: "Y", Z: "Z",

	Num1: "1", Num2: "2", Num3: "3", Num4: "4", Num5: "5",
	Num6: "6", Num7: "7", Num8: "8", Num9: "9", Num0: "0",

	Enter: "ENT", Escape: "ESC", Backspace: "BSPC", Tab: "TAB", Space: "SPC",
	Minus: "MINS", Equal: "EQL", LeftBracket: "LBRC", RightBracket: "RBRC",
	Backslash: "BSLS", NonUSHash: "NUHS", Semicolon: "SCLN", Quote: "QUOT",
	Grave: "GRV", Comma: "COMM", Dot: "DOT", Slash: "SLSH", CapsLock: "CAPS",

	F1: "F1", F2: "F2", F3: "F3", F4: "F4", F5: "F5", F6: "F6",
	F7: "F7", F8: "F8", F9: "F9", F10: "F10", F11: "F11", F12: "F12",

	PrintScreen: "PSCR", ScrollLock: "SCRL", Pause: "PAUS", Insert: "INS",
	Home: "HOME", PageUp: "PGUP", Delete: "DEL", End: "END", PageDown: "PGDN",
	Right: "RGHT", Left: "LEFT", Down: "DOWN", Up: "UP",

	NumLock: "NUM", KPSlash: "PSLS", KPAsterisk: "PAST", KPMinus: "PMNS",
	KPPlus: "PPLS", KPEnter: "PENT", KP1: "P1", KP2: "P2", KP3: "P3",
	KP4: "P4", KP5: "P5", KP6: "P6", KP7: "P7", KP8: "P8", KP9: "P9",
	KP0: "P0", KPDot: "PDOT",

	AudioMute: "MUTE", VolumeUp: "VOLU", VolumeDown: "VOLD",
	MediaNext: "MNXT", MediaPrev: "MPRV", MediaStop: "MSTP", MediaPlay: "MPLY",
	BrightUp: "BRIU", BrightDown: "BRID",
	MouseBtn1: "BTN1", MouseBtn2: "BTN2", MouseBtn3: "BTN3",

	LeftCtrl: "LCTL", LeftShift: "LSFT", LeftAlt: "LALT", LeftGUI: "LGUI",
	RightCtrl: "RCTL", RightShift: "RSFT", RightAlt: "RALT", RightGUI: "RGUI",

	RGBToggle: "RGB_TOG", RGBValUp: "RGB_VAI", RGBValDown: "RGB_VAD",

	ReserveHold: "RESERVE_HOLD", ReserveToggle: "RESERVE_TOGGLE", ReserveOnce: "RESERVE_ONCE",
	MacroMouse1: "M_BTN1", MacroMouse2: "M_BTN2", MacroNum3: "M_NO3",
	MacroEquals: "M_EQLS", MacroTest: "M_TEST", MacroLove: "M_LOVE",
}

// Stroke is a keycode plus whether shift must be held to produce a rune.
type Stroke struct {
	Code    Keycode
	Shifted bool
}

var unshifted = map[rune]Keycode{
	' ': Space, '\n': Enter, '\t': Tab, '\b': Backspace, '\x1b': Escape,
	'-': Minus, '=': Equal, '[': LeftBracket, ']': RightBracket,
	'\\': Backslash, ';': Semicolon, '\'': Quote, '`': Grave,
	',': Comma, '.': Dot, '/': Slash,
}

var shifted = map[rune]Keycode{
	'!': Num1, '@': Num2, '#': Num3, '$': Num4, '%': Num5,
	'^': Num6, '&': Num7, '*': Num8, '(': Num9, ')': Num0,
	'_': Minus, '+': Equal, '{': LeftBracket, '}': RightBracket,
	'|': Backslash, ':': Semicolon, '"': Quote, '~': Grave,
	'<': Comma, '>': Dot, '?': Slash,
}

// ForRune returns the US-layout stroke that types r.
func ForRune(r rune) (Stroke, bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return Stroke{Code: A + Keycode(r-'a')}, true
	case r >= 'A' && r <= 'Z':
		return Stroke{Code: A + Keycode(r-'A'), Shifted: true}, true
	case r == '0':
		return Stroke{Code: Num0}, true
	case r >= '1' && r <= '9':
		return Stroke{Code: Num1 + Keycode(r-'1')}, true
	}
	if k, ok := unshifted[r]; ok {
		return Stroke{Code: k}, true
	}
	if k, ok := shifted[r]; ok {
		return Stroke{Code: k, Shifted: true}, true
	}
	return Stroke{}, false
}

var byName map[string]Keycode

func init() {
	byName = make(map[string]Keycode, len(names))
	for k, n := range names {
		byName[n] = k
	}
}

// Parse looks a keycode up by its short name ("A", "ESC", "M_LOVE") or
// momentary-layer form "MO(n)". Names are case-insensitive.
func Parse(name string) (Keycode, bool) {
	name = strings.ToUpper(strings.TrimSpace(name))
	if k, ok := byName[name]; ok {
		return k, true
	}
	var layer uint8
	if _, err := fmt.Sscanf(name, "MO(%d)", &layer); err == nil && layer < 32 {
		return MO(layer), true
	}
	return NoKey, false
}
