package widgets

import (
	"strings"
	"testing"

	"go-keyfx/keymap"
)

func TestMatrixHit(t *testing.T) {
	tests := []struct {
		x, y int
		want keymap.Pos
		ok   bool
	}{
		{0, 0, keymap.Pos{Row: 0, Col: 0}, true},
		{1, 0, keymap.Pos{Row: 0, Col: 0}, true},
		{2, 0, keymap.Pos{}, false}, // gap
		{3, 2, keymap.Pos{Row: 2, Col: 1}, true},
		{KeyWidth*keymap.Cols - 2, 5, keymap.Pos{Row: 5, Col: keymap.Cols - 1}, true},
		{KeyWidth * keymap.Cols, 0, keymap.Pos{}, false},
		{0, keymap.Rows, keymap.Pos{}, false},
		{-1, 0, keymap.Pos{}, false},
	}
	for _, tt := range tests {
		got, ok := MatrixHit(tt.x, tt.y)
		if ok != tt.ok || got != tt.want {
			t.Errorf("MatrixHit(%d,%d) = %v, %v, want %v, %v", tt.x, tt.y, got, ok, tt.want, tt.ok)
		}
	}
}

func TestRenderMatrixShape(t *testing.T) {
	out := RenderMatrix(func(p keymap.Pos) Cell {
		return Cell{Present: p.Col < 3}
	}, [3]uint8{40, 40, 40})

	lines := strings.Split(out, "\n")
	if len(lines) != keymap.Rows {
		t.Fatalf("got %d lines, want %d", len(lines), keymap.Rows)
	}
	for i, l := range lines {
		if n := strings.Count(l, "■■"); n != 3 {
			t.Errorf("line %d has %d keys, want 3", i, n)
		}
	}
}

func TestRenderKeyHelp(t *testing.T) {
	out := RenderKeyHelp([]KeySection{{
		Title: "Board",
		Keys:  []KeyBinding{{Key: "ctrl+c", Desc: "quit"}},
	}})
	if !strings.Contains(out, "Board") || !strings.Contains(out, "ctrl+c       quit") {
		t.Errorf("RenderKeyHelp() = %q", out)
	}
}
