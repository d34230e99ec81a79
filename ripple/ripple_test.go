package ripple

import (
	"testing"

	"go-keyfx/keymap"
	"go-keyfx/theme"
)

// gridLocator places LEDs row-major on a 10-wide grid.
type gridLocator struct{}

func (gridLocator) LEDForPos(p keymap.Pos) uint8 {
	return p.Row*10 + p.Col
}

type writes map[uint8]theme.RGB

func (w writes) SetColor(index uint8, c theme.RGB) {
	w[index] = c
}

func TestLifecycle(t *testing.T) {
	const horizon = 8
	p := New(horizon, EvictOldest, nil)
	p.Seed(keymap.Pos{Row: 2, Col: 3})

	last := 2.0
	for call := 1; call < horizon; call++ {
		slot := p.Slots()[0]
		level := p.Intensity(slot.Frame)
		if level > last {
			t.Errorf("intensity rose from %v to %v at call %d", last, level, call)
		}
		last = level

		p.Render(0, 100, gridLocator{}, writes{})
		if !p.Slots()[0].Active {
			t.Fatalf("ripple died after %d render calls, want %d", call, horizon)
		}
	}

	p.Render(0, 100, gridLocator{}, writes{})
	if p.Slots()[0].Active {
		t.Errorf("ripple still active after %d render calls", horizon)
	}
	if p.Active() != 0 {
		t.Errorf("Active() = %d, want 0", p.Active())
	}
}

func TestDarkRippleFreesSlot(t *testing.T) {
	p := New(2, DropNew, nil)
	for i := 0; i < Capacity; i++ {
		p.Seed(keymap.Pos{Row: 0, Col: uint8(i)})
	}
	p.Age()
	p.Age()
	if p.Active() != 0 {
		t.Fatalf("Active() = %d with every ripple at zero intensity", p.Active())
	}
	if !p.Seed(keymap.Pos{Row: 1, Col: 1}) {
		t.Error("Seed dropped while every slot was dark")
	}
}

func TestPaintFades(t *testing.T) {
	p := New(4, EvictOldest, nil)
	p.Seed(keymap.Pos{Row: 2, Col: 3})

	var prev uint8 = 255
	for frame := 0; frame < 4; frame++ {
		w := writes{}
		p.Render(0, 100, gridLocator{}, w)
		c, ok := w[23]
		if !ok {
			t.Fatalf("frame %d: no write at LED 23", frame)
		}
		if c[0] > prev {
			t.Errorf("frame %d: brightness %d rose above %d", frame, c[0], prev)
		}
		prev = c[0]
	}
	if prev == 255 {
		t.Error("ripple never faded")
	}

	// at the horizon the slot is freed and paints nothing
	if p.Active() != 0 {
		t.Errorf("Active() = %d at the horizon", p.Active())
	}
	w := writes{}
	p.Paint(0, 100, gridLocator{}, w)
	if len(w) != 0 {
		t.Errorf("dark ripple painted %v", w)
	}
}

func TestPaintRange(t *testing.T) {
	p := New(DefaultHorizon, EvictOldest, nil)
	p.Seed(keymap.Pos{Row: 0, Col: 5})
	p.Seed(keymap.Pos{Row: 5, Col: 0})

	tests := []struct {
		min, max uint8
		want     []uint8
	}{
		{0, 100, []uint8{5, 50}},
		{0, 50, []uint8{5}},
		{6, 51, []uint8{50}},
		{10, 20, nil},
	}

	for _, tt := range tests {
		w := writes{}
		p.Paint(tt.min, tt.max, gridLocator{}, w)
		if len(w) != len(tt.want) {
			t.Errorf("Paint(%d, %d) wrote %v, want %v", tt.min, tt.max, w, tt.want)
			continue
		}
		for _, idx := range tt.want {
			if _, ok := w[idx]; !ok {
				t.Errorf("Paint(%d, %d) missed LED %d", tt.min, tt.max, idx)
			}
		}
	}
}

func TestChunkedPaintMatchesWhole(t *testing.T) {
	p := New(DefaultHorizon, EvictOldest, nil)
	for col := uint8(0); col < 6; col++ {
		p.Seed(keymap.Pos{Row: col % 3, Col: col})
		p.Age()
	}

	whole := writes{}
	p.Paint(0, 100, gridLocator{}, whole)

	chunked := writes{}
	for min := uint8(0); min < 100; min += 7 {
		max := min + 7
		if max > 100 {
			max = 100
		}
		p.Paint(min, max, gridLocator{}, chunked)
	}

	if len(whole) != len(chunked) {
		t.Fatalf("chunked wrote %d LEDs, whole %d", len(chunked), len(whole))
	}
	for idx, c := range whole {
		if chunked[idx] != c {
			t.Errorf("LED %d: chunked %v, whole %v", idx, chunked[idx], c)
		}
	}
}

func TestSaturation(t *testing.T) {
	fill := func(p *Pool) {
		for i := 0; i < Capacity; i++ {
			p.Seed(keymap.Pos{Row: 0, Col: uint8(i)})
			if i == 3 {
				// slot 0..3 get older than the rest
				p.Age()
				p.Age()
			}
		}
	}

	t.Run("evict-oldest", func(t *testing.T) {
		p := New(DefaultHorizon, EvictOldest, nil)
		fill(p)
		if !p.Seed(keymap.Pos{Row: 4, Col: 4}) {
			t.Fatal("Seed on a full pool was dropped")
		}
		slots := p.Slots()
		if slots[0].Pos != (keymap.Pos{Row: 4, Col: 4}) || slots[0].Frame != 0 {
			t.Errorf("slot 0 = %+v, want the new ripple", slots[0])
		}
		if p.Active() != Capacity {
			t.Errorf("Active() = %d", p.Active())
		}
	})

	t.Run("drop-new", func(t *testing.T) {
		p := New(DefaultHorizon, DropNew, nil)
		fill(p)
		before := p.Slots()
		if p.Seed(keymap.Pos{Row: 4, Col: 4}) {
			t.Fatal("Seed on a full pool was placed")
		}
		if p.Slots() != before {
			t.Error("dropped Seed changed the pool")
		}
	})
}

func TestSeedReusesFreedSlot(t *testing.T) {
	p := New(1, DropNew, nil)
	p.Seed(keymap.Pos{Row: 1, Col: 1})
	p.Age()
	if p.Active() != 0 {
		t.Fatalf("Active() = %d after horizon", p.Active())
	}
	if !p.Seed(keymap.Pos{Row: 2, Col: 2}) || p.Slots()[0].Pos != (keymap.Pos{Row: 2, Col: 2}) {
		t.Errorf("freed slot not reused: %+v", p.Slots()[0])
	}
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    Policy
		wantErr bool
	}{
		{"", EvictOldest, false},
		{"evict-oldest", EvictOldest, false},
		{"drop-new", DropNew, false},
		{"evict", EvictOldest, true},
	}

	for _, tt := range tests {
		got, err := ParsePolicy(tt.in)
		if got != tt.want || (err != nil) != tt.wantErr {
			t.Errorf("ParsePolicy(%q) = %v, %v", tt.in, got, err)
		}
		if err == nil && tt.in != "" && got.String() != tt.in {
			t.Errorf("%v.String() = %q", got, got.String())
		}
	}
}
