package keycode

import "testing"

func TestHIDValues(t *testing.T) {
	tests := []struct {
		code Keycode
		want uint16
	}{
		{A, 0x04},
		{Z, 0x1D},
		{Num1, 0x1E},
		{Num0, 0x27},
		{Enter, 0x28},
		{CapsLock, 0x39},
		{F1, 0x3A},
		{F12, 0x45},
		{Delete, 0x4C},
		{Up, 0x52},
		{KPDot, 0x63},
		{LeftShift, 0xE1},
	}

	for _, tt := range tests {
		if uint16(tt.code) != tt.want {
			t.Errorf("%v = 0x%02X, want 0x%02X", tt.code, uint16(tt.code), tt.want)
		}
	}
}

func TestMomentaryLayer(t *testing.T) {
	k := MO(3)
	layer, ok := k.Layer()
	if !ok || layer != 3 {
		t.Errorf("MO(3).Layer() = %d, %v, want 3, true", layer, ok)
	}
	if _, ok := A.Layer(); ok {
		t.Error("A.Layer() reported a layer")
	}
	if got := k.String(); got != "MO(3)" {
		t.Errorf("MO(3).String() = %q", got)
	}
}

func TestClassifiers(t *testing.T) {
	if !LeftGUI.IsModifier() || A.IsModifier() {
		t.Error("IsModifier misclassified")
	}
	if !MacroLove.IsCustom() || Z.IsCustom() {
		t.Error("IsCustom misclassified")
	}
	if !F5.IsBasic() || Transparent.IsBasic() {
		t.Error("IsBasic misclassified")
	}
}

func TestForRune(t *testing.T) {
	tests := []struct {
		r    rune
		want Stroke
		ok   bool
	}{
		{'l', Stroke{Code: L}, true},
		{'T', Stroke{Code: T, Shifted: true}, true},
		{'0', Stroke{Code: Num0}, true},
		{'3', Stroke{Code: Num3}, true},
		{' ', Stroke{Code: Space}, true},
		{'!', Stroke{Code: Num1, Shifted: true}, true},
		{'?', Stroke{Code: Slash, Shifted: true}, true},
		{'é', Stroke{}, false},
	}

	for _, tt := range tests {
		got, ok := ForRune(tt.r)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ForRune(%q) = %+v, %v, want %+v, %v", tt.r, got, ok, tt.want, tt.ok)
		}
	}
}

func TestString(t *testing.T) {
	if got := MacroLove.String(); got != "M_LOVE" {
		t.Errorf("MacroLove.String() = %q", got)
	}
	if got := Keycode(0x7F00).String(); got != "0x7F00" {
		t.Errorf("unknown keycode String() = %q", got)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		want Keycode
		ok   bool
	}{
		{"A", A, true},
		{"esc", Escape, true},
		{" M_LOVE ", MacroLove, true},
		{"rgb_vai", RGBValUp, true},
		{"MO(3)", MO(3), true},
		{"mo(1)", MO(1), true},
		{"HYPER", NoKey, false},
	}
	for _, tt := range tests {
		got, ok := Parse(tt.name)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Parse(%q) = %v, %v, want %v, %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}
