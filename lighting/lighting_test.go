package lighting

import (
	"testing"

	"go-keyfx/keycode"
	"go-keyfx/keymap"
	"go-keyfx/ripple"
	"go-keyfx/theme"
)

func newTestRenderer() (*Renderer, *keymap.Keymap) {
	km := keymap.Default()
	return NewRenderer(km, ripple.New(ripple.DefaultHorizon, ripple.EvictOldest, nil)), km
}

func TestIdleFrameIsDark(t *testing.T) {
	r, km := newTestRenderer()
	buf := NewBuffer(km.NumLEDs())
	r.Render(0, uint8(km.NumLEDs()), buf)
	r.EndFrame()
	for i := 0; i < buf.Len(); i++ {
		if _, lit := buf.Get(uint8(i)); lit {
			t.Fatalf("LED %d lit on an idle frame", i)
		}
	}
}

func TestRippleLandsOnKey(t *testing.T) {
	r, km := newTestRenderer()
	r.Seed(keymap.Pos{Row: 2, Col: 3}) // E

	buf := NewBuffer(km.NumLEDs())
	r.Render(0, uint8(km.NumLEDs()), buf)
	c, lit := buf.Get(km.LEDIndex(keycode.E))
	if !lit || c != (theme.RGB{255, 255, 255}) {
		t.Errorf("ripple LED = %v, %v, want fresh white", c, lit)
	}
}

func TestLayerHighlight(t *testing.T) {
	r, km := newTestRenderer()
	r.SetIndicators(Indicators{
		Layers:     keymap.LayerState(0).On(keymap.MacFn),
		Brightness: 128,
	})

	buf := NewBuffer(km.NumLEDs())
	r.Render(0, uint8(km.NumLEDs()), buf)

	want := theme.RGB{128, 0, 0}
	// F6 position carries RGB_VAI on the fn layer
	if c, lit := buf.Get(6); !lit || c != want {
		t.Errorf("fn key LED = %v, %v, want %v", c, lit, want)
	}
	// Q is transparent on the fn layer
	if _, lit := buf.Get(km.LEDIndex(keycode.Q)); lit {
		t.Error("transparent key was highlighted")
	}
}

func TestBaseLayerHasNoHighlight(t *testing.T) {
	r, km := newTestRenderer()
	r.SetIndicators(Indicators{Layers: keymap.LayerState(0).On(keymap.MacBase), Brightness: 255})

	buf := NewBuffer(km.NumLEDs())
	r.Render(0, uint8(km.NumLEDs()), buf)
	for i := 0; i < buf.Len(); i++ {
		if _, lit := buf.Get(uint8(i)); lit {
			t.Fatalf("LED %d lit with only the base layer active", i)
		}
	}
}

func TestMacroIndicator(t *testing.T) {
	r, km := newTestRenderer()
	r.SetIndicators(Indicators{Macro: keycode.MacroLove, Brightness: 10})

	buf := NewBuffer(km.NumLEDs())
	r.Render(0, uint8(km.NumLEDs()), buf)
	if c, lit := buf.Get(14); !lit || c != theme.MacroColor {
		t.Errorf("macro LED = %v, %v, want %v", c, lit, theme.MacroColor)
	}
}

func TestMacroIndicatorOverridesRipple(t *testing.T) {
	r, km := newTestRenderer()
	r.Seed(keymap.Pos{Row: 0, Col: 14})
	r.SetIndicators(Indicators{Macro: keycode.MacroLove, Brightness: 255})

	buf := NewBuffer(km.NumLEDs())
	r.Render(0, uint8(km.NumLEDs()), buf)
	if c, _ := buf.Get(14); c != theme.MacroColor {
		t.Errorf("macro LED = %v, want indicator over ripple", c)
	}
}

func TestCapsOverridesEverything(t *testing.T) {
	r, km := newTestRenderer()
	r.Seed(keymap.Pos{Row: 2, Col: 3})
	r.SetIndicators(Indicators{
		Layers:     keymap.LayerState(0).On(keymap.MacFn),
		Macro:      keycode.MacroTest,
		Caps:       true,
		Brightness: 255,
	})

	buf := NewBuffer(km.NumLEDs())
	r.Render(10, 60, buf)

	for i := 0; i < buf.Len(); i++ {
		c, lit := buf.Get(uint8(i))
		inRange := i >= 10 && i < 60
		if inRange && (!lit || c != theme.CapsColor) {
			t.Errorf("LED %d = %v, %v, want caps color", i, c, lit)
		}
		if !inRange && lit && c == theme.CapsColor {
			t.Errorf("LED %d outside the window got caps color", i)
		}
	}
}

func TestChunkedFrameMatchesWhole(t *testing.T) {
	ind := Indicators{
		Layers:     keymap.LayerState(0).On(keymap.MacFn),
		Macro:      keycode.MacroLove,
		Brightness: 200,
	}

	whole, km := newTestRenderer()
	chunked, _ := newTestRenderer()
	for _, r := range []*Renderer{whole, chunked} {
		r.Seed(keymap.Pos{Row: 2, Col: 3})
		r.Seed(keymap.Pos{Row: 4, Col: 5})
		r.EndFrame()
		r.SetIndicators(ind)
	}

	n := uint8(km.NumLEDs())
	a := NewBuffer(km.NumLEDs())
	whole.Render(0, n, a)
	whole.EndFrame()

	b := NewBuffer(km.NumLEDs())
	for min := uint8(0); min < n; min += 16 {
		max := min + 16
		if max > n {
			max = n
		}
		chunked.Render(min, max, b)
	}
	chunked.EndFrame()

	for i := 0; i < a.Len(); i++ {
		ca, la := a.Get(uint8(i))
		cb, lb := b.Get(uint8(i))
		if ca != cb || la != lb {
			t.Errorf("LED %d: whole %v/%v, chunked %v/%v", i, ca, la, cb, lb)
		}
	}
	if whole.Pool().Slots() != chunked.Pool().Slots() {
		t.Error("chunked frame aged ripples differently")
	}
}

func TestBufferClear(t *testing.T) {
	b := NewBuffer(4)
	b.SetColor(2, theme.RGB{1, 2, 3})
	b.SetColor(9, theme.RGB{1, 2, 3}) // out of range, ignored
	if c, lit := b.Get(2); !lit || c != (theme.RGB{1, 2, 3}) {
		t.Fatalf("Get(2) = %v, %v", c, lit)
	}
	b.Clear()
	if _, lit := b.Get(2); lit {
		t.Error("Clear() left LED 2 lit")
	}
}
