package macro

import (
	"go-keyfx/keycode"
	"go-keyfx/keymap"
)

// AutoRepeat is the tap interval of the repeating single-key macros.
const AutoRepeat uint32 = 10

// DefaultScripts returns the board's macro scripts. The Reserve* trigger
// codes deliberately have none.
func DefaultScripts() Scripts {
	return Scripts{
		keycode.MacroTest:   testDrive,
		keycode.MacroLove:   love,
		keycode.MacroMouse1: repeatTap(keycode.MouseBtn1),
		keycode.MacroMouse2: repeatTap(keycode.MouseBtn2),
		keycode.MacroEquals: repeatTap(keycode.Equal),
		keycode.MacroNum3:   repeatTap(keycode.Num3),
	}
}

func testDrive(r *Run) {
	switch r.State.Step {
	case 0:
		r.Out.Press(keycode.LeftShift)
		Tap(r.Out, keycode.T)
		r.Out.Release(keycode.LeftShift)
		Tap(r.Out, keycode.E)
		r.Advance(1000, false)
	case 1:
		r.Out.Type("st!")
		r.Advance(2000, false)
	case 2:
		r.Out.Type(" Wrap up!")
		r.Advance(1000, false)
	case 3:
		// select-all differs between the Mac and Windows layers
		switch r.Layer {
		case keymap.WinBase, keymap.WinFn:
			Chord(r.Out, keycode.LeftCtrl, keycode.A)
		default:
			Chord(r.Out, keycode.LeftGUI, keycode.A)
		}
		Tap(r.Out, keycode.Delete)
		r.Advance(1000, false)
	default:
		r.Advance(0, true)
	}
}

func love(r *Run) {
	switch r.State.Step {
	case 0:
		r.Out.Type("love")
		r.Advance(1000, false)
	case 1:
		r.Out.Type(" you")
		r.Advance(0, true)
	default:
		r.Advance(0, true)
	}
}

func repeatTap(k keycode.Keycode) Script {
	return func(r *Run) {
		Tap(r.Out, k)
		r.Advance(AutoRepeat, true)
	}
}
