// Package keyboard owns the running board: it resolves matrix input
// through the keymap, feeds the dispatcher and macro sequencer every
// tick, and renders LED frames out to a controller. All board state is
// touched by the Run goroutine only; readers get a Snapshot.
package keyboard

import (
	"context"
	"sync"
	"time"

	"go-keyfx/debug"
	"go-keyfx/dispatch"
	"go-keyfx/keycode"
	"go-keyfx/keymap"
	"go-keyfx/lighting"
	"go-keyfx/macro"
	"go-keyfx/theme"
	"go-keyfx/timer"
)

// BrightnessStep is how much RGB_VAI / RGB_VAD change brightness.
const BrightnessStep uint8 = 17

// renderChunk is how many LEDs are painted per Render call.
const renderChunk = 32

// Input is a raw matrix transition. Tap queues a press and its release
// as one input, with Mods held down around it.
type Input struct {
	Pos     keymap.Pos
	Pressed bool
	Tap     bool
	Mods    []keymap.Pos
}

type Options struct {
	Tick         time.Duration
	FPS          int
	Heartbeat    uint32
	DefaultLayer uint8
	Brightness   uint8
}

func DefaultOptions() Options {
	return Options{
		Tick:       10 * time.Millisecond,
		FPS:        30,
		Heartbeat:  macro.DefaultHeartbeat,
		Brightness: 255,
	}
}

// held remembers what a key resolved to when it went down, so the
// release reaches the same keycode even if layers changed meanwhile.
type held struct {
	code  keycode.Keycode
	layer uint8
	down  bool
}

// Snapshot is a read-only copy of the board for the UI.
type Snapshot struct {
	Now          timer.Instant
	Macro        macro.State
	Layers       keymap.LayerState
	DefaultLayer uint8
	Caps         bool
	LightsOn     bool
	Brightness   uint8
	Ripples      int
	Frame        []theme.RGB
	Window       PadWindow
	Events       uint64
}

// Keyboard is the board host.
type Keyboard struct {
	km     *keymap.Keymap
	clock  timer.Clock
	out    macro.Output
	disp   *dispatch.Dispatcher
	seq    *macro.Sequencer
	lights *lighting.Renderer
	opts   Options

	// loop-owned
	state        macro.State
	layers       keymap.LayerState
	defaultLayer uint8
	caps         bool
	lightsOn     bool
	brightness   uint8
	keys         [keymap.Rows][keymap.Cols]held
	frame        *lighting.Buffer
	events       uint64

	inputs chan Input
	leds   ledOutput

	mu   sync.RWMutex
	snap Snapshot

	// Notify TUI of updates
	UpdateChan chan struct{}
}

// New builds a keyboard around km. Output receives pass-through keys
// and macro output; lights draws the frames.
func New(km *keymap.Keymap, clock timer.Clock, out macro.Output, lights *lighting.Renderer, opts Options) *Keyboard {
	if opts.Tick <= 0 {
		opts.Tick = DefaultOptions().Tick
	}
	if opts.FPS <= 0 {
		opts.FPS = DefaultOptions().FPS
	}
	k := &Keyboard{
		km:           km,
		clock:        clock,
		out:          out,
		disp:         dispatch.New(dispatch.DefaultClasses(), lights),
		seq:          macro.NewSequencer(macro.DefaultScripts(), out, lights),
		lights:       lights,
		opts:         opts,
		defaultLayer: opts.DefaultLayer,
		lightsOn:     true,
		brightness:   opts.Brightness,
		frame:        lighting.NewBuffer(km.NumLEDs()),
		inputs:       make(chan Input, 64),
		UpdateChan:   make(chan struct{}, 1),
	}
	k.leds.reset()
	k.seq.SetHeartbeat(opts.Heartbeat)
	k.seq.SetLayerSource(func() uint8 { return k.activeLayers().Highest() })
	k.publish()
	return k
}

// Keymap returns the board keymap.
func (k *Keyboard) Keymap() *keymap.Keymap {
	return k.km
}

// Submit queues a matrix transition without blocking. It reports false
// when the queue is full and the input was dropped.
func (k *Keyboard) Submit(in Input) bool {
	select {
	case k.inputs <- in:
		return true
	default:
		debug.Log("kbd", "input queue full, dropped %+v", in)
		return false
	}
}

// Tap queues a press and release of p, holding mods around it. The
// whole chord goes in or none of it does.
func (k *Keyboard) Tap(p keymap.Pos, mods ...keymap.Pos) bool {
	return k.Submit(Input{Pos: p, Tap: true, Mods: mods})
}

// Run processes input, ticks and frames until ctx is done.
func (k *Keyboard) Run(ctx context.Context) {
	tick := time.NewTicker(k.opts.Tick)
	defer tick.Stop()
	frame := time.NewTicker(time.Second / time.Duration(k.opts.FPS))
	defer frame.Stop()

	debug.Log("kbd", "running: tick=%v fps=%d", k.opts.Tick, k.opts.FPS)
	for {
		select {
		case <-ctx.Done():
			k.leds.detach()
			return
		case in := <-k.inputs:
			k.handle(in, k.clock.Now())
		case <-tick.C:
			k.Step(k.clock.Now())
		case <-frame.C:
			k.RenderFrame()
		}
	}
}

// Step runs one scan tick: drains queued input, then the heartbeat and
// at most one macro step.
func (k *Keyboard) Step(now timer.Instant) {
	for drained := false; !drained; {
		select {
		case in := <-k.inputs:
			k.handle(in, now)
		default:
			drained = true
		}
	}

	changed := k.seq.Heartbeat(&k.state, now)
	wasActive := k.state.Active
	if k.seq.Tick(&k.state, now) {
		changed = true
		debug.LogEvery(100, "macro", "%v step -> %d", k.state.Identity, k.state.Step)
		if wasActive && !k.state.Active {
			debug.Log("macro", "%v finished", k.state.Identity)
		}
	}
	if changed {
		k.notifyUpdate(now)
	}
}

func (k *Keyboard) activeLayers() keymap.LayerState {
	return k.layers.On(k.defaultLayer)
}

func (k *Keyboard) handle(in Input, now timer.Instant) {
	if !k.km.Valid(in.Pos) {
		return
	}
	if in.Tap {
		for _, m := range in.Mods {
			k.handle(Input{Pos: m, Pressed: true}, now)
		}
		k.handle(Input{Pos: in.Pos, Pressed: true}, now)
		k.handle(Input{Pos: in.Pos}, now)
		for i := len(in.Mods) - 1; i >= 0; i-- {
			k.handle(Input{Pos: in.Mods[i]}, now)
		}
		return
	}
	slot := &k.keys[in.Pos.Row][in.Pos.Col]

	var code keycode.Keycode
	var layer uint8
	if in.Pressed {
		code, layer = k.km.Resolve(k.activeLayers(), in.Pos)
		*slot = held{code: code, layer: layer, down: true}
	} else {
		if !slot.down {
			return
		}
		code, layer = slot.code, slot.layer
		*slot = held{}
	}
	if code == keycode.NoKey {
		return
	}
	k.events++

	ev := keymap.Event{Pressed: in.Pressed, Pos: in.Pos, Keycode: code, Layer: layer, Time: now}
	if k.disp.Dispatch(&k.state, ev) {
		debug.Log("kbd", "trigger %v pressed=%v active=%v", code, in.Pressed, k.state.Active)
	} else {
		k.process(ev)
	}
	k.notifyUpdate(now)
}

// process handles keys the dispatcher passed through.
func (k *Keyboard) process(ev keymap.Event) {
	code := ev.Keycode
	if layer, ok := code.Layer(); ok {
		if ev.Pressed {
			k.layers = k.layers.On(layer)
		} else {
			k.layers = k.layers.Off(layer)
		}
		return
	}

	switch code {
	case keycode.RGBToggle:
		if ev.Pressed {
			k.lightsOn = !k.lightsOn
		}
		return
	case keycode.RGBValUp:
		if ev.Pressed {
			k.brightness = satAdd(k.brightness, BrightnessStep)
		}
		return
	case keycode.RGBValDown:
		if ev.Pressed {
			k.brightness = satSub(k.brightness, BrightnessStep)
		}
		return
	case keycode.CapsLock:
		if ev.Pressed {
			k.caps = !k.caps
		}
	}

	if !code.IsBasic() && !code.IsModifier() {
		debug.Log("kbd", "unhandled %v", code)
		return
	}
	if ev.Pressed {
		k.out.Press(code)
	} else {
		k.out.Release(code)
	}
}

// RenderFrame paints one LED frame, ages the ripples and sends the
// changes to the attached controller.
func (k *Keyboard) RenderFrame() {
	k.frame.Clear()
	if k.lightsOn {
		macroID := keycode.NoKey
		if k.state.Active {
			macroID = k.state.Identity
		}
		k.lights.SetIndicators(lighting.Indicators{
			Layers:     k.layers,
			Caps:       k.caps,
			Macro:      macroID,
			Brightness: k.brightness,
		})
		n := k.km.NumLEDs()
		for lo := 0; lo < n; lo += renderChunk {
			hi := min(lo+renderChunk, n)
			k.lights.Render(uint8(lo), uint8(hi), k.frame)
		}
	}
	k.lights.EndFrame()

	k.leds.flush(k.km, k.frame)
	k.publish()
}

// Snapshot returns the last published state.
func (k *Keyboard) Snapshot() Snapshot {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.snap
}

func (k *Keyboard) publish() {
	s := Snapshot{
		Now:          k.clock.Now(),
		Macro:        k.state,
		Layers:       k.layers,
		DefaultLayer: k.defaultLayer,
		Caps:         k.caps,
		LightsOn:     k.lightsOn,
		Brightness:   k.brightness,
		Ripples:      k.lights.Pool().Active(),
		Frame:        k.frame.Colors(),
		Window:       k.leds.currentWindow(),
		Events:       k.events,
	}
	k.mu.Lock()
	k.snap = s
	k.mu.Unlock()

	select {
	case k.UpdateChan <- struct{}{}:
	default:
	}
}

// notifyUpdate publishes state changed outside a frame.
func (k *Keyboard) notifyUpdate(now timer.Instant) {
	k.mu.Lock()
	k.snap.Now = now
	k.snap.Macro = k.state
	k.snap.Layers = k.layers
	k.snap.Caps = k.caps
	k.snap.LightsOn = k.lightsOn
	k.snap.Brightness = k.brightness
	k.snap.Events = k.events
	k.mu.Unlock()

	select {
	case k.UpdateChan <- struct{}{}:
	default:
	}
}

func satAdd(a, b uint8) uint8 {
	if a > 255-b {
		return 255
	}
	return a + b
}

func satSub(a, b uint8) uint8 {
	if a < b {
		return 0
	}
	return a - b
}
