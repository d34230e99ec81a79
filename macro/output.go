package macro

import "go-keyfx/keycode"

// Output receives virtual key actions in emission order.
type Output interface {
	Press(k keycode.Keycode)
	Release(k keycode.Keycode)
	Type(text string)
}

// Tap presses and releases k.
func Tap(out Output, k keycode.Keycode) {
	out.Press(k)
	out.Release(k)
}

// Chord taps k while mod is held.
func Chord(out Output, mod, k keycode.Keycode) {
	out.Press(mod)
	Tap(out, k)
	out.Release(mod)
}
