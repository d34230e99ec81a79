package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Fixed indicator colors, before brightness scaling.
var (
	LayerColor = RGB{255, 0, 0}
	MacroColor = RGB{255, 0, 0}
	CapsColor  = RGB{255, 20, 5}

	// UnlitColor is how the UI draws a dark key.
	UnlitColor = RGB{50, 50, 60}
)

type Theme struct {
	Ripple  *Palette
	Symbols Symbols
}

type Symbols struct {
	Running rune // ▶ macro running
	Idle    rune // · no macro
}

func New(ripple *Palette) *Theme {
	if ripple == nil {
		ripple = DefaultPalette()
	}
	return &Theme{
		Ripple: ripple,
		Symbols: Symbols{
			Running: '▶',
			Idle:    '·',
		},
	}
}

// Terminal colors for the UI chrome
func (t *Theme) Accent() lipgloss.Color {
	return rgbToLipgloss(t.Ripple.Lookup(0.25))
}

func (t *Theme) Muted() lipgloss.Color {
	return rgbToLipgloss(RGB{90, 90, 110})
}

func (t *Theme) FG() lipgloss.Color {
	return rgbToLipgloss(RGB{220, 220, 230})
}

func (t *Theme) Warning() lipgloss.Color {
	return rgbToLipgloss(CapsColor)
}

func rgbToLipgloss(c RGB) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2]))
}
