// Package ripple is a fixed pool of short-lived point lights anchored to
// matrix positions. Each ripple fades out over a fixed number of frames.
package ripple

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"go-keyfx/keymap"
	"go-keyfx/theme"
)

// Capacity is the number of ripple slots.
const Capacity = 10

// DefaultHorizon is the fade-out length in frames (about 0.8s at 30 FPS).
const DefaultHorizon uint8 = 24

// Policy decides what Seed does when every slot is busy.
type Policy uint8

const (
	EvictOldest Policy = iota // reuse the slot with the oldest ripple
	DropNew                   // ignore the new ripple
)

func (p Policy) String() string {
	switch p {
	case EvictOldest:
		return "evict-oldest"
	case DropNew:
		return "drop-new"
	}
	return fmt.Sprintf("Policy(%d)", uint8(p))
}

// ParsePolicy reads a policy name as written in the config file.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "evict-oldest":
		return EvictOldest, nil
	case "drop-new":
		return DropNew, nil
	}
	return EvictOldest, fmt.Errorf("unknown ripple policy %q", s)
}

// Ripple is one slot of the pool.
type Ripple struct {
	Pos    keymap.Pos
	Frame  uint8
	Active bool
}

// Gradient gives the base color of a ripple by normalized age.
type Gradient interface {
	Lookup(norm float64) theme.RGB
}

// Locator maps a matrix position to its LED.
type Locator interface {
	LEDForPos(p keymap.Pos) uint8
}

// Sink receives LED color writes.
type Sink interface {
	SetColor(index uint8, c theme.RGB)
}

type white struct{}

func (white) Lookup(float64) theme.RGB { return theme.RGB{255, 255, 255} }

// Pool holds the ripple slots.
type Pool struct {
	slots    [Capacity]Ripple
	horizon  uint8
	policy   Policy
	gradient Gradient
}

// New creates an empty pool. A nil gradient paints white ripples.
func New(horizon uint8, policy Policy, g Gradient) *Pool {
	if horizon == 0 {
		horizon = DefaultHorizon
	}
	if g == nil {
		g = white{}
	}
	return &Pool{horizon: horizon, policy: policy, gradient: g}
}

// Horizon returns the fade-out length in frames.
func (p *Pool) Horizon() uint8 {
	return p.horizon
}

// Seed starts a ripple at pos in the first free slot. When the pool is
// full the policy decides; Seed reports whether the ripple was placed.
func (p *Pool) Seed(pos keymap.Pos) bool {
	slot := -1
	for i := range p.slots {
		if !p.slots[i].Active {
			slot = i
			break
		}
	}
	if slot < 0 {
		if p.policy == DropNew {
			return false
		}
		slot = p.oldest()
	}
	p.slots[slot] = Ripple{Pos: pos, Active: true}
	return true
}

func (p *Pool) oldest() int {
	idx := 0
	for i := 1; i < Capacity; i++ {
		if p.slots[i].Frame > p.slots[idx].Frame {
			idx = i
		}
	}
	return idx
}

// Intensity is the brightness of a ripple at frame, 1 when fresh and 0
// at the horizon.
func (p *Pool) Intensity(frame uint8) float64 {
	if frame >= p.horizon {
		return 0
	}
	return float64(p.horizon-frame) / float64(p.horizon)
}

// Color is the ripple's color for its current frame: the gradient color
// for its age with the HSV value scaled by Intensity.
func (p *Pool) Color(r Ripple) theme.RGB {
	base := p.gradient.Lookup(float64(r.Frame) / float64(p.horizon))
	c := colorful.Color{
		R: float64(base[0]) / 255,
		G: float64(base[1]) / 255,
		B: float64(base[2]) / 255,
	}
	h, s, v := c.Hsv()
	red, green, blue := colorful.Hsv(h, s, v*p.Intensity(r.Frame)).Clamped().RGB255()
	return theme.RGB{red, green, blue}
}

// Paint writes every visible ripple whose LED falls in [min, max). It
// does not change the pool, so a frame may be painted in chunks.
func (p *Pool) Paint(min, max uint8, loc Locator, sink Sink) {
	for _, r := range p.slots {
		if !r.Active || p.Intensity(r.Frame) == 0 {
			continue
		}
		idx := loc.LEDForPos(r.Pos)
		if idx < min || idx >= max {
			continue
		}
		sink.SetColor(idx, p.Color(r))
	}
}

// Age moves every ripple one frame on and frees slots that reach the
// horizon, where they would paint nothing.
func (p *Pool) Age() {
	for i := range p.slots {
		r := &p.slots[i]
		if !r.Active {
			continue
		}
		r.Frame++
		if r.Frame >= p.horizon {
			r.Active = false
		}
	}
}

// Render paints [min, max) and ends the frame.
func (p *Pool) Render(min, max uint8, loc Locator, sink Sink) {
	p.Paint(min, max, loc, sink)
	p.Age()
}

// Slots returns a copy of the pool.
func (p *Pool) Slots() [Capacity]Ripple {
	return p.slots
}

// Active counts live ripples.
func (p *Pool) Active() int {
	n := 0
	for _, r := range p.slots {
		if r.Active {
			n++
		}
	}
	return n
}
