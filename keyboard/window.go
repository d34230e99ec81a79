package keyboard

import (
	"go-keyfx/keymap"
	"go-keyfx/midi"
)

// PadWindow maps the key matrix onto the Launchpad's 8x8 grid. Matrix
// row 0 sits on the top pad row; ColOffset is the first matrix column
// shown. The top-row left/right buttons scroll it.
type PadWindow struct {
	ColOffset int
}

// top row buttons, Launchpad X programmer layout
const (
	padLeft  = 2
	padRight = 3
)

// Pos returns the matrix position under a grid pad.
func (w PadWindow) Pos(row, col int) (keymap.Pos, bool) {
	if row < 0 || row >= midi.GridSize || col < 0 || col >= midi.GridSize {
		return keymap.Pos{}, false
	}
	r := midi.GridSize - 1 - row
	c := col + w.ColOffset
	if r >= keymap.Rows || c < 0 || c >= keymap.Cols {
		return keymap.Pos{}, false
	}
	return keymap.Pos{Row: uint8(r), Col: uint8(c)}, true
}

// Pad returns the grid pad showing p.
func (w PadWindow) Pad(p keymap.Pos) (row, col int, ok bool) {
	col = int(p.Col) - w.ColOffset
	row = midi.GridSize - 1 - int(p.Row)
	if col < 0 || col >= midi.GridSize || row < 0 || int(p.Row) >= keymap.Rows {
		return 0, 0, false
	}
	return row, col, true
}

// Scroll moves the window by delta columns, clamped to the matrix.
func (w PadWindow) Scroll(delta int) PadWindow {
	w.ColOffset += delta
	if maxOff := keymap.Cols - midi.GridSize; w.ColOffset > maxOff {
		w.ColOffset = maxOff
	}
	if w.ColOffset < 0 {
		w.ColOffset = 0
	}
	return w
}

// NoteLayout maps MIDI keyboard notes onto the matrix row-major,
// starting at BaseNote for (0,0).
type NoteLayout struct {
	BaseNote uint8
}

func (l NoteLayout) Pos(note uint8) (keymap.Pos, bool) {
	if note < l.BaseNote {
		return keymap.Pos{}, false
	}
	i := int(note - l.BaseNote)
	if i >= keymap.Rows*keymap.Cols {
		return keymap.Pos{}, false
	}
	return keymap.Pos{Row: uint8(i / keymap.Cols), Col: uint8(i % keymap.Cols)}, true
}
