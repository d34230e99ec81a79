package macro

import (
	"reflect"
	"testing"

	"go-keyfx/hid"
	"go-keyfx/keycode"
	"go-keyfx/keymap"
	"go-keyfx/timer"
)

type seedRecorder struct {
	seeds []keymap.Pos
}

func (s *seedRecorder) Seed(p keymap.Pos) {
	s.seeds = append(s.seeds, p)
}

func newTestSequencer() (*Sequencer, *hid.History, *seedRecorder) {
	out := hid.NewHistory(64)
	seeds := &seedRecorder{}
	return NewSequencer(DefaultScripts(), out, seeds), out, seeds
}

func TestActivateResetsSlot(t *testing.T) {
	var st State
	st.Activate(keycode.MacroTest, KindToggle, keymap.Pos{Row: 0, Col: 15}, 100)
	st.Step = 3

	st.Activate(keycode.MacroLove, KindOnce, keymap.Pos{Row: 0, Col: 14}, 200)
	want := State{
		Active:    true,
		Kind:      KindOnce,
		Identity:  keycode.MacroLove,
		Deadline:  200,
		Origin:    keymap.Pos{Row: 0, Col: 14},
		LastPulse: 200,
	}
	if st != want {
		t.Errorf("Activate() = %+v, want %+v", st, want)
	}
}

func TestTickNotReadyIsNoOp(t *testing.T) {
	seq, out, _ := newTestSequencer()

	var st State
	st.Activate(keycode.MacroLove, KindOnce, keymap.Pos{}, 0)
	seq.Tick(&st, 0)

	before := st
	for _, now := range []timer.Instant{1, 500, 999} {
		if seq.Tick(&st, now) {
			t.Errorf("Tick(%d) ran a step before the deadline", now)
		}
		if st != before {
			t.Errorf("Tick(%d) changed state: %+v -> %+v", now, before, st)
		}
	}
	if got := len(out.Actions()); got != 1 {
		t.Errorf("emitted %d actions, want 1", got)
	}
}

func TestLoveRunsOnce(t *testing.T) {
	seq, out, _ := newTestSequencer()

	var st State
	st.Activate(keycode.MacroLove, KindOnce, keymap.Pos{Row: 0, Col: 14}, 0)

	seq.Tick(&st, 0)
	if st.Deadline != 1000 || st.Step != 1 || !st.Active {
		t.Fatalf("after t=0: %+v", st)
	}

	seq.Tick(&st, 999)
	if st.Step != 1 {
		t.Fatalf("t=999 advanced the macro: %+v", st)
	}

	seq.Tick(&st, 1000)
	if st.Active {
		t.Errorf("once macro still active after its final step")
	}
	if st.Step != 0 {
		t.Errorf("Step = %d after reset, want 0", st.Step)
	}

	want := []hid.Action{hid.Type("love"), hid.Type(" you")}
	if got := out.Actions(); !reflect.DeepEqual(got, want) {
		t.Errorf("actions = %v, want %v", got, want)
	}

	// retrigger starts over
	st.Activate(keycode.MacroLove, KindOnce, keymap.Pos{Row: 0, Col: 14}, 5000)
	seq.Tick(&st, 5000)
	if st.Step != 1 || !st.Active {
		t.Errorf("retrigger: %+v", st)
	}
}

func TestLoopingResetKeepsActive(t *testing.T) {
	for _, kind := range []Kind{KindToggle, KindHold} {
		t.Run(kind.String(), func(t *testing.T) {
			var st State
			st.Activate(keycode.MacroTest, kind, keymap.Pos{}, 0)
			st.Step = 4
			st.Advance(10, 0, true)
			if !st.Active || st.Step != 0 || st.Deadline != 10 {
				t.Errorf("Advance(reset) = %+v", st)
			}
		})
	}
}

func TestTestDriveSequence(t *testing.T) {
	seq, out, _ := newTestSequencer()

	var st State
	st.Activate(keycode.MacroTest, KindToggle, keymap.Pos{Row: 0, Col: 15}, 0)

	for _, now := range []timer.Instant{0, 1000, 3000, 4000, 5000} {
		if !seq.Tick(&st, now) {
			t.Fatalf("Tick(%d) did not run", now)
		}
	}
	if !st.Active || st.Step != 0 {
		t.Fatalf("after full pass: %+v", st)
	}

	want := []hid.Action{
		hid.Press(keycode.LeftShift),
		hid.Press(keycode.T), hid.Release(keycode.T),
		hid.Release(keycode.LeftShift),
		hid.Press(keycode.E), hid.Release(keycode.E),
		hid.Type("st!"),
		hid.Type(" Wrap up!"),
		hid.Press(keycode.LeftGUI),
		hid.Press(keycode.A), hid.Release(keycode.A),
		hid.Release(keycode.LeftGUI),
		hid.Press(keycode.Delete), hid.Release(keycode.Delete),
	}
	if got := out.Actions(); !reflect.DeepEqual(got, want) {
		t.Errorf("actions =\n%v\nwant\n%v", got, want)
	}
}

func TestTestDriveWindowsLayer(t *testing.T) {
	seq, out, _ := newTestSequencer()
	seq.SetLayerSource(func() uint8 { return keymap.WinBase })

	var st State
	st.Activate(keycode.MacroTest, KindToggle, keymap.Pos{}, 0)
	st.Step = 3
	seq.Tick(&st, 0)

	got := out.Actions()
	if len(got) == 0 || got[0] != hid.Press(keycode.LeftCtrl) {
		t.Errorf("select-all on windows layer = %v, want ctrl chord", got)
	}
}

func TestRepeatTap(t *testing.T) {
	seq, out, _ := newTestSequencer()

	var st State
	st.Activate(keycode.MacroMouse1, KindToggle, keymap.Pos{}, 0)
	seq.Tick(&st, 0)
	seq.Tick(&st, 5)
	seq.Tick(&st, 10)

	want := []hid.Action{
		hid.Press(keycode.MouseBtn1), hid.Release(keycode.MouseBtn1),
		hid.Press(keycode.MouseBtn1), hid.Release(keycode.MouseBtn1),
	}
	if got := out.Actions(); !reflect.DeepEqual(got, want) {
		t.Errorf("actions = %v, want %v", got, want)
	}
	if !st.Active || st.Step != 0 {
		t.Errorf("repeat macro state = %+v", st)
	}
}

func TestMissingScriptStaysInert(t *testing.T) {
	seq, out, _ := newTestSequencer()

	var st State
	st.Activate(keycode.ReserveToggle, KindToggle, keymap.Pos{}, 0)
	before := st
	if seq.Tick(&st, 100) {
		t.Error("Tick ran a step for a macro without a script")
	}
	if st != before || len(out.Actions()) != 0 {
		t.Errorf("inert macro changed: %+v, actions %v", st, out.Actions())
	}
}

func TestInactiveTickDoesNothing(t *testing.T) {
	seq, out, seeds := newTestSequencer()
	var st State
	if seq.Tick(&st, 10000) || seq.Heartbeat(&st, 10000) {
		t.Error("idle slot did work")
	}
	if len(out.Actions()) != 0 || len(seeds.seeds) != 0 {
		t.Error("idle slot emitted output")
	}
}

func TestHeartbeat(t *testing.T) {
	seq, _, seeds := newTestSequencer()
	origin := keymap.Pos{Row: 0, Col: 19}

	var st State
	st.Activate(keycode.MacroMouse1, KindToggle, origin, 100)

	tests := []struct {
		now   timer.Instant
		pulse bool
	}{
		{100, false},
		{1599, false},
		{1600, true},
		{3000, false},
		{3100, true},
	}

	for _, tt := range tests {
		if got := seq.Heartbeat(&st, tt.now); got != tt.pulse {
			t.Errorf("Heartbeat(%d) = %v, want %v", tt.now, got, tt.pulse)
		}
	}
	if want := []keymap.Pos{origin, origin}; !reflect.DeepEqual(seeds.seeds, want) {
		t.Errorf("seeds = %v, want %v", seeds.seeds, want)
	}

	seq.SetHeartbeat(100)
	if !seq.Heartbeat(&st, 3200) {
		t.Error("Heartbeat did not honour SetHeartbeat")
	}
}
