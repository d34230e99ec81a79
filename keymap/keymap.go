// Package keymap holds the layer tables of the board, the matrix position
// to LED index table and the lookups the lighting and dispatch code share.
package keymap

import (
	"go-keyfx/keycode"
	"go-keyfx/timer"
)

// Matrix dimensions
const (
	Layers = 4
	Rows   = 6
	Cols   = 21
)

const (
	// NoLED marks a matrix position without an LED.
	NoLED uint8 = 0xFF
	// FallbackLED is returned by LEDIndex for keycodes not on any layer.
	FallbackLED uint8 = 1
)

// Pos is a matrix coordinate.
type Pos struct {
	Row, Col uint8
}

// Layer is one keycode table over the whole matrix.
type Layer [Rows][Cols]keycode.Keycode

// Event is a debounced edge transition from the matrix scanner.
type Event struct {
	Pressed bool
	Pos     Pos
	Keycode keycode.Keycode
	Layer   uint8
	Time    timer.Instant
}

// Keymap is a read-only layout: keycodes per layer plus LED wiring.
type Keymap struct {
	layers  [Layers]Layer
	leds    [Rows][Cols]uint8
	numLEDs int
}

// New builds a keymap from layer tables and a position -> LED table.
func New(layers [Layers]Layer, leds [Rows][Cols]uint8) *Keymap {
	k := &Keymap{
		layers: layers,
		leds:   leds,
	}
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			idx := leds[row][col]
			if idx == NoLED {
				continue
			}
			if int(idx)+1 > k.numLEDs {
				k.numLEDs = int(idx) + 1
			}
		}
	}
	return k
}

// NumLEDs is one past the highest wired LED index.
func (k *Keymap) NumLEDs() int {
	return k.numLEDs
}

// Valid reports whether p lies inside the matrix.
func (k *Keymap) Valid(p Pos) bool {
	return p.Row < Rows && p.Col < Cols
}

// KeyAt returns the keycode at p on layer, NoKey when out of range.
func (k *Keymap) KeyAt(layer uint8, p Pos) keycode.Keycode {
	if int(layer) >= Layers || !k.Valid(p) {
		return keycode.NoKey
	}
	return k.layers[layer][p.Row][p.Col]
}

// Resolve finds the keycode a press at p produces: the highest active
// layer whose entry is not transparent wins.
func (k *Keymap) Resolve(state LayerState, p Pos) (keycode.Keycode, uint8) {
	for layer := Layers - 1; layer >= 0; layer-- {
		if !state.Has(uint8(layer)) {
			continue
		}
		kc := k.KeyAt(uint8(layer), p)
		if kc != keycode.Transparent {
			return kc, uint8(layer)
		}
	}
	return keycode.NoKey, 0
}

// LEDAt returns the LED wired under p.
func (k *Keymap) LEDAt(p Pos) (uint8, bool) {
	if !k.Valid(p) {
		return NoLED, false
	}
	idx := k.leds[p.Row][p.Col]
	return idx, idx != NoLED
}

// Find returns the first occurrence of kc, scanning layers, then rows,
// then columns.
func (k *Keymap) Find(kc keycode.Keycode) (uint8, Pos, bool) {
	for layer := 0; layer < Layers; layer++ {
		for row := 0; row < Rows; row++ {
			for col := 0; col < Cols; col++ {
				if k.layers[layer][row][col] == kc {
					return uint8(layer), Pos{Row: uint8(row), Col: uint8(col)}, true
				}
			}
		}
	}
	return 0, Pos{}, false
}

// LEDIndex maps a keycode to the LED of its first occurrence. Unknown or
// unwired keycodes get FallbackLED; lighting is cosmetic and never fails.
func (k *Keymap) LEDIndex(kc keycode.Keycode) uint8 {
	_, p, ok := k.Find(kc)
	if !ok {
		return FallbackLED
	}
	idx, ok := k.LEDAt(p)
	if !ok {
		return FallbackLED
	}
	return idx
}

// LEDForPos resolves the base-layer keycode at p and looks it up through
// LEDIndex, so a ripple lands where that keycode first appears.
func (k *Keymap) LEDForPos(p Pos) uint8 {
	return k.LEDIndex(k.KeyAt(0, p))
}

// LayerState is a bitmask of active layers.
type LayerState uint32

func (s LayerState) Has(layer uint8) bool {
	return s&(1<<layer) != 0
}

func (s LayerState) On(layer uint8) LayerState {
	return s | 1<<layer
}

func (s LayerState) Off(layer uint8) LayerState {
	return s &^ (1 << layer)
}

// Highest returns the highest active layer, 0 when none are.
func (s LayerState) Highest() uint8 {
	for layer := 31; layer > 0; layer-- {
		if s.Has(uint8(layer)) {
			return uint8(layer)
		}
	}
	return 0
}
