package timer

import "testing"

func TestReached(t *testing.T) {
	tests := []struct {
		deadline, now Instant
		want          bool
	}{
		{0, 0, true},
		{1000, 999, false},
		{1000, 1000, true},
		{1000, 1001, true},
		{0xFFFFFFF0, 0x00000010, true}, // wrapped past deadline
		{0x00000010, 0xFFFFFFF0, false},
	}

	for _, tt := range tests {
		got := Reached(tt.deadline, tt.now)
		if got != tt.want {
			t.Errorf("Reached(%d, %d) = %v, want %v", tt.deadline, tt.now, got, tt.want)
		}
	}
}

func TestElapsedWraps(t *testing.T) {
	if got := Elapsed(0xFFFFFFFF, 1); got != 2 {
		t.Errorf("Elapsed across wrap = %d, want 2", got)
	}
	if got := Elapsed(100, 1600); got != 1500 {
		t.Errorf("Elapsed(100, 1600) = %d, want 1500", got)
	}
}

func TestManual(t *testing.T) {
	c := NewManual(10)
	if c.Now() != 10 {
		t.Fatalf("Now() = %d, want 10", c.Now())
	}
	if got := c.Advance(990); got != 1000 {
		t.Errorf("Advance(990) = %d, want 1000", got)
	}
	c.Set(5)
	if c.Now() != 5 {
		t.Errorf("after Set(5), Now() = %d", c.Now())
	}
}
