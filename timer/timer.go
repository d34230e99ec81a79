package timer

import (
	"sync/atomic"
	"time"
)

// Instant is a monotonic millisecond counter. It wraps after ~49 days;
// all comparisons go through Elapsed/Reached so wraparound is harmless.
type Instant uint32

// Elapsed returns milliseconds from since to now.
func Elapsed(since, now Instant) uint32 {
	return uint32(now - since)
}

// Reached reports whether now is at or past deadline.
func Reached(deadline, now Instant) bool {
	return int32(now-deadline) >= 0
}

// Add returns i advanced by ms.
func (i Instant) Add(ms uint32) Instant {
	return i + Instant(ms)
}

// Clock is the millisecond source sampled once per tick.
type Clock interface {
	Now() Instant
}

// System reads the host monotonic clock relative to its creation.
type System struct {
	start time.Time
}

func NewSystem() *System {
	return &System{start: time.Now()}
}

func (s *System) Now() Instant {
	return Instant(time.Since(s.start).Milliseconds())
}

// Manual is a hand-driven clock for simulations and tests.
type Manual struct {
	now atomic.Uint32
}

func NewManual(start Instant) *Manual {
	m := &Manual{}
	m.now.Store(uint32(start))
	return m
}

func (m *Manual) Now() Instant {
	return Instant(m.now.Load())
}

// Set moves the clock to t.
func (m *Manual) Set(t Instant) {
	m.now.Store(uint32(t))
}

// Advance moves the clock forward by ms and returns the new time.
func (m *Manual) Advance(ms uint32) Instant {
	return Instant(m.now.Add(ms))
}
