package keymap

import (
	kc "go-keyfx/keycode"
)

// Board layers
const (
	MacBase uint8 = iota
	MacFn
	WinBase
	WinFn
)

const ____ = kc.Transparent

// row packs keys into the leftmost matrix columns; the rest stay NoKey.
func row(keys ...kc.Keycode) [Cols]kc.Keycode {
	var r [Cols]kc.Keycode
	copy(r[:], keys)
	return r
}

// DefaultLayers is the full-size 108-key layout with Mac and Windows
// base layers and a function layer for each.
var DefaultLayers = [Layers]Layer{
	MacBase: {
		row(kc.Escape, kc.F1, kc.F2, kc.F3, kc.F4, kc.F5, kc.F6, kc.F7, kc.F8, kc.F9, kc.F10, kc.F11, kc.F12, kc.PrintScreen, kc.MacroLove, kc.MacroTest, kc.MacroNum3, kc.MacroEquals, kc.MacroMouse2, kc.MacroMouse1),
		row(kc.Grave, kc.Num1, kc.Num2, kc.Num3, kc.Num4, kc.Num5, kc.Num6, kc.Num7, kc.Num8, kc.Num9, kc.Num0, kc.Minus, kc.Equal, kc.Backspace, kc.Insert, kc.Home, kc.PageUp, kc.NumLock, kc.KPSlash, kc.KPAsterisk, kc.KPMinus),
		row(kc.Tab, kc.Q, kc.W, kc.E, kc.R, kc.T, kc.Y, kc.U, kc.I, kc.O, kc.P, kc.LeftBracket, kc.RightBracket, kc.Backslash, kc.Delete, kc.End, kc.PageDown, kc.KP7, kc.KP8, kc.KP9),
		row(kc.CapsLock, kc.A, kc.S, kc.D, kc.F, kc.G, kc.H, kc.J, kc.K, kc.L, kc.Semicolon, kc.Quote, kc.Enter, kc.KP4, kc.KP5, kc.KP6, kc.KPPlus),
		row(kc.LeftShift, kc.Z, kc.X, kc.C, kc.V, kc.B, kc.N, kc.M, kc.Comma, kc.Dot, kc.Slash, kc.RightShift, kc.Up, kc.KP1, kc.KP2, kc.KP3),
		row(kc.LeftCtrl, kc.LeftAlt, kc.LeftGUI, kc.Space, kc.RightGUI, kc.RightAlt, kc.MO(MacFn), kc.RightCtrl, kc.Left, kc.Down, kc.Right, kc.KP0, kc.KPDot, kc.KPEnter),
	},
	MacFn: {
		row(____, kc.BrightDown, kc.BrightUp, ____, ____, kc.RGBValDown, kc.RGBValUp, kc.MediaPrev, kc.MediaPlay, kc.MediaNext, kc.AudioMute, kc.VolumeDown, kc.VolumeUp, ____, ____, kc.RGBToggle, ____, ____, ____, ____),
		row(____, ____, ____, ____, ____, ____, ____, ____, ____, ____, ____, ____, ____, ____, ____, ____, ____, ____, ____, ____, ____),
		row(kc.RGBToggle, ____, kc.RGBValUp, ____, ____, ____, ____, ____, ____, ____, ____, ____, ____, ____, ____, ____, ____, ____, ____, ____),
		row(____, ____, kc.RGBValDown, ____, ____, ____, ____, ____, ____, ____, ____, ____, ____, ____, ____, ____, ____),
		row(____, ____, ____, ____, ____, ____, ____, ____, ____, ____, ____, ____, ____, ____, ____, ____),
		row(____, ____, ____, ____, ____, ____, ____, ____, ____, ____, ____, ____, ____, ____),
	},
	WinBase: {
		row(kc.Escape, kc.F1, kc.F2, kc.F3, kc.F4, kc.F5, kc.F6, kc.F7, kc.F8, kc.F9, kc.F10, kc.F11, kc.F12, kc.PrintScreen, kc.ReserveOnce, ____, kc.MacroNum3, kc.MacroEquals, kc.ReserveToggle, kc.ReserveHold),
		row(kc.Grave, kc.Num1, kc.Num2, kc.Num3, kc.Num4, kc.Num5, kc.Num6, kc.Num7, kc.Num8, kc.Num9, kc.Num0, kc.Minus, kc.Equal, kc.Backspace, kc.Insert, kc.Home, kc.PageUp, kc.NumLock, kc.KPSlash, kc.KPAsterisk, kc.KPMinus),
		row(kc.Tab, kc.Q, kc.W, kc.E, kc.R, kc.T, kc.Y, kc.U, kc.I, kc.O, kc.P, kc.LeftBracket, kc.RightBracket, kc.Backslash, kc.Delete, kc.End, kc.PageDown, kc.KP7, kc.KP8, kc.KP9),
		row(kc.CapsLock, kc.A, kc.S, kc.D, kc.F, kc.G, kc.H, kc.J, kc.K, kc.L, kc.Semicolon, kc.Quote, kc.Enter, kc.KP4, kc.KP5, kc.KP6, kc.KPPlus),
		row(kc.LeftShift, kc.Z, kc.X, kc.C, kc.V, kc.B, kc.N, kc.M, kc.Comma, kc.Dot, kc.Slash, kc.RightShift, kc.Up, kc.KP1, kc.KP2, kc.KP3),
		row(kc.LeftGUI, kc.LeftAlt, kc.LeftCtrl, kc.Space, kc.RightAlt, kc.RightGUI, kc.MO(WinFn), kc.RightCtrl, kc.Left, kc.Down, kc.Right, kc.KP0, kc.KPDot, kc.KPEnter),
	},
	WinFn: {
		row(____, kc.BrightDown, kc.BrightUp, ____, ____, kc.RGBValDown, kc.RGBValUp, kc.MediaPrev, kc.MediaPlay, kc.MediaNext, kc.AudioMute, kc.VolumeDown, kc.VolumeUp, ____, ____, kc.RGBToggle, ____, ____, ____, ____),
		row(____, ____, ____, ____, ____, ____, ____, ____, ____, ____, ____, ____, ____, ____, ____, ____, ____, ____, ____, ____, ____),
		row(kc.RGBToggle, ____, kc.RGBValUp, ____, ____, ____, ____, ____, ____, ____, ____, ____, ____, ____, ____, ____, ____, ____, ____, ____),
		row(____, ____, kc.RGBValDown, ____, ____, ____, ____, ____, ____, ____, ____, ____, ____, ____, ____, ____, ____),
		row(____, ____, ____, ____, ____, ____, ____, ____, ____, ____, ____, ____, ____, ____, ____, ____),
		row(____, ____, ____, ____, ____, ____, ____, ____, ____, ____, ____, ____, ____, ____),
	},
}

// SequentialLEDs wires one LED per key present on the base layer,
// numbered row-major from 0.
func SequentialLEDs(base Layer) [Rows][Cols]uint8 {
	var leds [Rows][Cols]uint8
	next := uint8(0)
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			if base[r][c] == kc.NoKey {
				leds[r][c] = NoLED
				continue
			}
			leds[r][c] = next
			next++
		}
	}
	return leds
}

// Default returns the stock board keymap.
func Default() *Keymap {
	return New(DefaultLayers, SequentialLEDs(DefaultLayers[MacBase]))
}
