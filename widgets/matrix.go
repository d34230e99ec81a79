package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"go-keyfx/keymap"
)

// KeyWidth is the terminal width of one key cell, gap included.
const KeyWidth = 3

// RenderPad renders a single colored key cap
func RenderPad(color [3]uint8) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(rgbToHex(color)))
	return style.Render("■■")
}

// Cell is one matrix position as the UI sees it.
type Cell struct {
	Present bool // a key sits here
	Color   [3]uint8
	Lit     bool
	Marked  bool // drawn with a bracket, e.g. inside the pad window
}

// RenderMatrix draws the key matrix row by row. Unlit keys take unlit;
// empty positions stay blank so the board outline shows.
func RenderMatrix(cell func(p keymap.Pos) Cell, unlit [3]uint8) string {
	mark := lipgloss.NewStyle().Foreground(lipgloss.Color(rgbToHex(unlit)))
	lines := make([]string, 0, keymap.Rows)
	for row := 0; row < keymap.Rows; row++ {
		var line strings.Builder
		for col := 0; col < keymap.Cols; col++ {
			c := cell(keymap.Pos{Row: uint8(row), Col: uint8(col)})
			switch {
			case !c.Present:
				line.WriteString("  ")
			case c.Lit:
				line.WriteString(RenderPad(c.Color))
			default:
				line.WriteString(RenderPad(unlit))
			}
			if c.Marked {
				line.WriteString(mark.Render("·"))
			} else {
				line.WriteString(" ")
			}
		}
		lines = append(lines, strings.TrimRight(line.String(), " "))
	}
	return strings.Join(lines, "\n")
}

// MatrixHit maps a mouse position relative to the matrix's top-left
// corner to a key position.
func MatrixHit(x, y int) (keymap.Pos, bool) {
	if x < 0 || y < 0 || y >= keymap.Rows {
		return keymap.Pos{}, false
	}
	col := x / KeyWidth
	if col >= keymap.Cols || x%KeyWidth == KeyWidth-1 {
		return keymap.Pos{}, false // off the board or in the gap
	}
	return keymap.Pos{Row: uint8(y), Col: uint8(col)}, true
}

// RenderLegendItem renders a single legend item: "■■ Name - description"
func RenderLegendItem(color [3]uint8, name, desc string) string {
	return fmt.Sprintf("  %s %s - %s", RenderPad(color), name, desc)
}

// RenderKeyHelp formats key bindings in a friendly way
func RenderKeyHelp(sections []KeySection) string {
	var lines []string
	for _, sec := range sections {
		if sec.Title != "" {
			lines = append(lines, sec.Title)
		}
		for _, k := range sec.Keys {
			lines = append(lines, fmt.Sprintf("  %-12s %s", k.Key, k.Desc))
		}
	}
	return strings.Join(lines, "\n")
}

// KeySection groups related key bindings
type KeySection struct {
	Title string
	Keys  []KeyBinding
}

// KeyBinding is a single key and its description
type KeyBinding struct {
	Key  string
	Desc string
}

func rgbToHex(c [3]uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
}
