package keyboard

import (
	"sync"

	"go-keyfx/debug"
	"go-keyfx/keymap"
	"go-keyfx/lighting"
	"go-keyfx/midi"
)

// ledOutput diffs frames against what the controller last showed and
// sends only changed pads.
type ledOutput struct {
	mu     sync.Mutex
	ctrl   midi.Controller
	window PadWindow
	prev   [midi.GridSize][midi.GridSize][3]uint8
	known  bool // prev reflects the device
}

func (o *ledOutput) reset() {
	o.known = false
}

func (o *ledOutput) attach(c midi.Controller, w PadWindow) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.ctrl = c
	o.window = w
	o.reset()
}

// detach forgets the controller if it is id, or any controller when id
// is empty.
func (o *ledOutput) detach(id ...string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.ctrl == nil {
		return
	}
	if len(id) > 0 && o.ctrl.ID() != id[0] {
		return
	}
	o.ctrl = nil
	o.reset()
}

func (o *ledOutput) scroll(delta int) PadWindow {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.window = o.window.Scroll(delta)
	o.reset()
	return o.window
}

func (o *ledOutput) currentWindow() PadWindow {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.window
}

func (o *ledOutput) controller() midi.Controller {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.ctrl
}

// flush sends the grid-visible part of frame to the controller.
func (o *ledOutput) flush(km *keymap.Keymap, frame *lighting.Buffer) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.ctrl == nil {
		return
	}

	var updates []midi.LEDUpdate
	for row := 0; row < midi.GridSize; row++ {
		for col := 0; col < midi.GridSize; col++ {
			var color [3]uint8
			if p, ok := o.window.Pos(row, col); ok {
				if idx, ok := km.LEDAt(p); ok {
					c, _ := frame.Get(idx)
					color = c
				}
			}
			if o.known && o.prev[row][col] == color {
				continue
			}
			o.prev[row][col] = color
			updates = append(updates, midi.LEDUpdate{
				Row:     row,
				Col:     col,
				Color:   color,
				Channel: midi.ChannelStatic,
			})
		}
	}
	o.known = true

	if len(updates) == 0 {
		return
	}
	debug.LogEvery(30, "led", "flush: batch=%d", len(updates))
	if err := o.ctrl.SetLEDBatch(updates); err != nil {
		debug.Log("led", "%s: %v", o.ctrl.ID(), err)
	}
}
