package lighting

import "go-keyfx/theme"

// Buffer is a full LED frame. Unwritten LEDs stay dark.
type Buffer struct {
	colors []theme.RGB
	lit    []bool
}

func NewBuffer(n int) *Buffer {
	return &Buffer{
		colors: make([]theme.RGB, n),
		lit:    make([]bool, n),
	}
}

func (b *Buffer) SetColor(index uint8, c theme.RGB) {
	if int(index) >= len(b.colors) {
		return
	}
	b.colors[index] = c
	b.lit[index] = true
}

// Get returns the color at index and whether anything wrote it.
func (b *Buffer) Get(index uint8) (theme.RGB, bool) {
	if int(index) >= len(b.colors) {
		return theme.RGB{}, false
	}
	return b.colors[index], b.lit[index]
}

func (b *Buffer) Len() int {
	return len(b.colors)
}

// Colors returns a copy of the frame.
func (b *Buffer) Colors() []theme.RGB {
	return append([]theme.RGB(nil), b.colors...)
}

// Clear darkens every LED.
func (b *Buffer) Clear() {
	clear(b.colors)
	clear(b.lit)
}
