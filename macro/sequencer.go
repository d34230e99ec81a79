package macro

import (
	"go-keyfx/keycode"
	"go-keyfx/keymap"
	"go-keyfx/timer"
)

// DefaultHeartbeat is how often a running macro re-seeds a ripple at its
// trigger key.
const DefaultHeartbeat uint32 = 1500

// Run is what a script sees while executing one step.
type Run struct {
	State *State
	Out   Output
	Now   timer.Instant
	Layer uint8 // highest active layer
}

// Advance ends the step; see State.Advance.
func (r *Run) Advance(delay uint32, reset bool) {
	r.State.Advance(r.Now, delay, reset)
}

// Script executes the step r.State.Step. Every script must end its last
// step with Advance(delay, true), otherwise it stalls on that step.
type Script func(r *Run)

// Scripts maps trigger keycodes to their scripts.
type Scripts map[keycode.Keycode]Script

// Seeder starts a ripple at a matrix position.
type Seeder interface {
	Seed(p keymap.Pos)
}

// Sequencer drives the active macro. It holds no macro state itself;
// the caller owns State and passes it in.
type Sequencer struct {
	scripts   Scripts
	out       Output
	seeder    Seeder
	layer     func() uint8
	heartbeat uint32
}

func NewSequencer(scripts Scripts, out Output, seeder Seeder) *Sequencer {
	return &Sequencer{
		scripts:   scripts,
		out:       out,
		seeder:    seeder,
		layer:     func() uint8 { return 0 },
		heartbeat: DefaultHeartbeat,
	}
}

// SetLayerSource sets where scripts read the highest active layer from.
func (q *Sequencer) SetLayerSource(fn func() uint8) {
	if fn != nil {
		q.layer = fn
	}
}

// SetHeartbeat changes the heartbeat interval in ms.
func (q *Sequencer) SetHeartbeat(ms uint32) {
	if ms > 0 {
		q.heartbeat = ms
	}
}

// Heartbeat re-seeds a ripple at the trigger key of a running macro once
// per heartbeat interval, independent of the step cadence.
func (q *Sequencer) Heartbeat(st *State, now timer.Instant) bool {
	if !st.Active || q.seeder == nil {
		return false
	}
	if timer.Elapsed(st.LastPulse, now) < q.heartbeat {
		return false
	}
	q.seeder.Seed(st.Origin)
	st.LastPulse = now
	return true
}

// Tick runs at most one step of the active macro and reports whether a
// step ran. A macro without a script stays active but does nothing.
func (q *Sequencer) Tick(st *State, now timer.Instant) bool {
	if !st.Ready(now) {
		return false
	}
	script, ok := q.scripts[st.Identity]
	if !ok {
		return false
	}

	script(&Run{State: st, Out: q.out, Now: now, Layer: q.layer()})
	return true
}
