// Package lighting composes one LED frame: ripples first, then the layer
// highlight, the running-macro indicator and finally caps lock. Later
// layers overwrite earlier ones, so an engaged caps lock covers the whole
// window on purpose.
package lighting

import (
	"go-keyfx/keycode"
	"go-keyfx/keymap"
	"go-keyfx/ripple"
	"go-keyfx/theme"
)

// Indicators is the keyboard state the overlays show for a frame.
type Indicators struct {
	Layers     keymap.LayerState // momentary layers, not the default one
	Caps       bool
	Macro      keycode.Keycode // running macro, NoKey when idle
	Brightness uint8
}

// Renderer paints frames for a keymap.
type Renderer struct {
	km   *keymap.Keymap
	pool *ripple.Pool
	ind  Indicators
}

func NewRenderer(km *keymap.Keymap, pool *ripple.Pool) *Renderer {
	return &Renderer{
		km:   km,
		pool: pool,
		ind:  Indicators{Brightness: 255},
	}
}

// Seed starts a ripple at p.
func (r *Renderer) Seed(p keymap.Pos) {
	r.pool.Seed(p)
}

// Pool exposes the ripple pool.
func (r *Renderer) Pool() *ripple.Pool {
	return r.pool
}

// SetIndicators sets the overlay state used by following Render calls.
func (r *Renderer) SetIndicators(ind Indicators) {
	r.ind = ind
}

// Render paints LEDs in [min, max) into sink without touching renderer
// state; a frame may be split into any number of windows.
func (r *Renderer) Render(min, max uint8, sink ripple.Sink) {
	r.pool.Paint(min, max, r.km, sink)
	r.paintLayer(min, max, sink)
	r.paintMacro(min, max, sink)
	r.paintCaps(min, max, sink)
}

// EndFrame ages the ripples. Call once per frame after all windows.
func (r *Renderer) EndFrame() {
	r.pool.Age()
}

func (r *Renderer) paintLayer(min, max uint8, sink ripple.Sink) {
	layer := r.ind.Layers.Highest()
	if layer == 0 {
		return
	}
	c := theme.LayerColor.Scale(r.ind.Brightness)
	for row := uint8(0); row < keymap.Rows; row++ {
		for col := uint8(0); col < keymap.Cols; col++ {
			p := keymap.Pos{Row: row, Col: col}
			idx, ok := r.km.LEDAt(p)
			if !ok || idx < min || idx >= max {
				continue
			}
			if r.km.KeyAt(layer, p) > keycode.Transparent {
				sink.SetColor(idx, c)
			}
		}
	}
}

func (r *Renderer) paintMacro(min, max uint8, sink ripple.Sink) {
	if r.ind.Macro == keycode.NoKey {
		return
	}
	idx := r.km.LEDIndex(r.ind.Macro)
	if idx >= min && idx < max {
		sink.SetColor(idx, theme.MacroColor)
	}
}

func (r *Renderer) paintCaps(min, max uint8, sink ripple.Sink) {
	if !r.ind.Caps {
		return
	}
	c := theme.CapsColor.Scale(r.ind.Brightness)
	for i := int(min); i < int(max); i++ {
		sink.SetColor(uint8(i), c)
	}
}
