package dispatch

import (
	"testing"

	"go-keyfx/keycode"
	"go-keyfx/keymap"
	"go-keyfx/macro"
	"go-keyfx/timer"
)

type seedRecorder struct {
	seeds []keymap.Pos
}

func (s *seedRecorder) Seed(p keymap.Pos) {
	s.seeds = append(s.seeds, p)
}

func press(k keycode.Keycode, row, col uint8, at timer.Instant) keymap.Event {
	return keymap.Event{Pressed: true, Pos: keymap.Pos{Row: row, Col: col}, Keycode: k, Time: at}
}

func release(k keycode.Keycode, row, col uint8, at timer.Instant) keymap.Event {
	ev := press(k, row, col, at)
	ev.Pressed = false
	return ev
}

func TestDefaultClasses(t *testing.T) {
	d := New(nil, nil)
	tests := []struct {
		code keycode.Keycode
		want Class
	}{
		{keycode.MacroTest, ClassToggle},
		{keycode.MacroMouse1, ClassToggle},
		{keycode.MacroNum3, ClassToggle},
		{keycode.ReserveToggle, ClassToggle},
		{keycode.ReserveHold, ClassHold},
		{keycode.ReserveOnce, ClassOnce},
		{keycode.MacroLove, ClassOnce},
		{keycode.A, ClassNone},
		{keycode.MO(1), ClassNone},
	}
	for _, tt := range tests {
		if got := d.Class(tt.code); got != tt.want {
			t.Errorf("Class(%v) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestPassThroughStillSeeds(t *testing.T) {
	seeds := &seedRecorder{}
	d := New(nil, seeds)
	var st macro.State

	if d.Dispatch(&st, press(keycode.A, 3, 1, 0)) {
		t.Error("plain key was consumed")
	}
	if d.Dispatch(&st, release(keycode.A, 3, 1, 5)) {
		t.Error("plain key release was consumed")
	}
	if len(seeds.seeds) != 1 || seeds.seeds[0] != (keymap.Pos{Row: 3, Col: 1}) {
		t.Errorf("seeds = %v, want one at (3,1)", seeds.seeds)
	}
	if st.Active {
		t.Error("plain key activated a macro")
	}
}

func TestToggle(t *testing.T) {
	d := New(nil, nil)
	var st macro.State

	if !d.Dispatch(&st, press(keycode.MacroTest, 0, 15, 100)) {
		t.Fatal("trigger not consumed")
	}
	if !st.Running(keycode.MacroTest) || st.Kind != macro.KindToggle {
		t.Fatalf("state = %+v, want toggle MacroTest running", st)
	}
	if st.Deadline != 100 || st.Step != 0 {
		t.Errorf("Deadline = %d, Step = %d, want 100, 0", st.Deadline, st.Step)
	}

	// release is consumed but changes nothing
	if !d.Dispatch(&st, release(keycode.MacroTest, 0, 15, 150)) {
		t.Error("trigger release not consumed")
	}
	if !st.Active {
		t.Fatal("release stopped a toggle macro")
	}

	d.Dispatch(&st, press(keycode.MacroTest, 0, 15, 200))
	if st.Active {
		t.Error("second press did not stop the macro")
	}
}

func TestLastWriterWins(t *testing.T) {
	d := New(nil, nil)
	var st macro.State

	d.Dispatch(&st, press(keycode.MacroMouse1, 0, 19, 0))
	st.Step = 3
	d.Dispatch(&st, press(keycode.MacroEquals, 0, 17, 50))

	if !st.Running(keycode.MacroEquals) {
		t.Fatalf("Identity = %v, want MacroEquals", st.Identity)
	}
	if st.Step != 0 || st.Origin != (keymap.Pos{Row: 0, Col: 17}) {
		t.Errorf("state = %+v, want fresh start at (0,17)", st)
	}
}

func TestHold(t *testing.T) {
	d := New(nil, nil)
	var st macro.State

	d.Dispatch(&st, press(keycode.ReserveHold, 0, 19, 0))
	if !st.Running(keycode.ReserveHold) || st.Kind != macro.KindHold {
		t.Fatalf("state = %+v, want hold running", st)
	}
	// pressing again restarts instead of toggling off
	d.Dispatch(&st, press(keycode.ReserveHold, 0, 19, 10))
	if !st.Active {
		t.Fatal("second hold press stopped the macro")
	}
	d.Dispatch(&st, release(keycode.ReserveHold, 0, 19, 20))
	if st.Active {
		t.Error("release did not stop the hold macro")
	}
}

func TestHoldReleaseStopsAnyMacro(t *testing.T) {
	d := New(nil, nil)
	var st macro.State

	d.Dispatch(&st, press(keycode.MacroTest, 0, 15, 0))
	d.Dispatch(&st, release(keycode.ReserveHold, 0, 19, 10))
	if st.Active {
		t.Error("hold release left another macro running")
	}
}

func TestOnce(t *testing.T) {
	d := New(nil, nil)
	var st macro.State

	d.Dispatch(&st, press(keycode.MacroLove, 0, 14, 0))
	if !st.Running(keycode.MacroLove) || st.Kind != macro.KindOnce {
		t.Fatalf("state = %+v, want once MacroLove running", st)
	}
	d.Dispatch(&st, press(keycode.MacroLove, 0, 14, 10))
	if st.Active {
		t.Error("second press did not interrupt the once macro")
	}
}
