// keyfxsim pokes at MIDI hardware and replays key sequences against the
// board without a terminal UI.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"go-keyfx/hid"
	"go-keyfx/keyboard"
	"go-keyfx/keycode"
	"go-keyfx/keymap"
	"go-keyfx/lighting"
	"go-keyfx/ripple"
	"go-keyfx/theme"
	"go-keyfx/timer"
	"go-keyfx/widgets"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	var err error
	switch os.Args[1] {
	case "ports":
		err = listPorts()
	case "sim":
		err = simulate(os.Args[2:])
	case "monitor":
		err = monitor()
	default:
		usage()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("keyfxsim")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  ports                 - List all MIDI ports")
	fmt.Println("  sim [flags] KEY...    - Tap keys at t=0 and print the output timeline")
	fmt.Println("  monitor               - Print raw Launchpad pad events")
	fmt.Println("")
	fmt.Println("sim flags:")
	fmt.Println("  -ms N      how long to run (default 3000)")
	fmt.Println("  -layer N   default layer (default 0)")
	fmt.Println("  -type S    type S on the matrix after the keys")
	fmt.Println("  -frame     print the final LED frame")
}

func scanPorts() ([]drivers.In, []drivers.Out, error) {
	type result struct {
		ins  []drivers.In
		outs []drivers.Out
	}
	ch := make(chan result, 1)
	go func() {
		ch <- result{ins: midi.GetInPorts(), outs: midi.GetOutPorts()}
	}()

	select {
	case r := <-ch:
		return r.ins, r.outs, nil
	case <-time.After(3 * time.Second):
		return nil, nil, fmt.Errorf("port scan timed out; CoreMIDI may be hung (sudo killall coreaudiod midiserver)")
	}
}

func listPorts() error {
	ins, outs, err := scanPorts()
	if err != nil {
		return err
	}
	fmt.Println("=== MIDI Input Ports ===")
	for i, p := range ins {
		fmt.Printf("  %d: %s\n", i, p.String())
	}
	fmt.Println("\n=== MIDI Output Ports ===")
	for i, p := range outs {
		fmt.Printf("  %d: %s\n", i, p.String())
	}
	return nil
}

func monitor() error {
	ins, _, err := scanPorts()
	if err != nil {
		return err
	}
	var in drivers.In
	for _, p := range ins {
		name := strings.ToLower(p.String())
		if strings.Contains(name, "launchpad") && strings.Contains(name, "midi") {
			in = p
			break
		}
	}
	if in == nil {
		return fmt.Errorf("no Launchpad found")
	}

	fmt.Printf("Listening on %s. Ctrl+C to exit.\n", in.String())
	stop, err := midi.ListenTo(in, func(msg midi.Message, timestampms int32) {
		fmt.Printf("[%6dms] %s\n", timestampms, msg)
	})
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	defer stop()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	<-ctx.Done()
	return nil
}

// timeline prints each action with the simulated time it happened at.
type timeline struct {
	clock timer.Clock
}

func (t timeline) emit(a hid.Action) {
	fmt.Printf("%6dms  %s\n", t.clock.Now(), a)
}

func (t timeline) Press(k keycode.Keycode)   { t.emit(hid.Press(k)) }
func (t timeline) Release(k keycode.Keycode) { t.emit(hid.Release(k)) }
func (t timeline) Type(text string)          { t.emit(hid.Type(text)) }

func simulate(args []string) error {
	fs := flag.NewFlagSet("sim", flag.ContinueOnError)
	ms := fs.Int("ms", 3000, "how long to run in milliseconds")
	layer := fs.Int("layer", 0, "default layer")
	text := fs.String("type", "", "text to type after the keys")
	showFrame := fs.Bool("frame", false, "print the final LED frame")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *layer < 0 || *layer >= keymap.Layers {
		return fmt.Errorf("layer must be 0-%d", keymap.Layers-1)
	}

	km := keymap.Default()
	clock := timer.NewManual(0)
	lights := lighting.NewRenderer(km, ripple.New(ripple.DefaultHorizon, ripple.EvictOldest, theme.DefaultPalette()))
	opts := keyboard.DefaultOptions()
	opts.DefaultLayer = uint8(*layer)
	kb := keyboard.New(km, clock, timeline{clock: clock}, lights, opts)

	for _, name := range fs.Args() {
		code, ok := keycode.Parse(name)
		if !ok {
			return fmt.Errorf("unknown keycode %q", name)
		}
		_, p, ok := km.Find(code)
		if !ok {
			return fmt.Errorf("%v is not on the keymap", code)
		}
		kb.Tap(p)
		kb.Step(0) // keep the input queue short
	}
	if *text != "" {
		_, shift, _ := km.Find(keycode.LeftShift)
		for _, r := range *text {
			s, ok := keycode.ForRune(r)
			if !ok {
				return fmt.Errorf("cannot type %q", r)
			}
			_, p, _ := km.Find(s.Code)
			if s.Shifted {
				kb.Tap(p, shift)
			} else {
				kb.Tap(p)
			}
			kb.Step(0)
		}
	}

	tick := uint32(opts.Tick / time.Millisecond)
	frameEvery := uint32(1000 / opts.FPS)
	var nextFrame uint32
	for now := uint32(0); now <= uint32(*ms); now += tick {
		clock.Set(timer.Instant(now))
		kb.Step(timer.Instant(now))
		if now >= nextFrame {
			kb.RenderFrame()
			nextFrame += frameEvery
		}
	}

	snap := kb.Snapshot()
	fmt.Printf("\nt=%dms  events=%d  ripples=%d  macro=", snap.Now, snap.Events, snap.Ripples)
	if snap.Macro.Active {
		fmt.Printf("%v (%v, step %d)\n", snap.Macro.Identity, snap.Macro.Kind, snap.Macro.Step)
	} else {
		fmt.Println("idle")
	}

	if *showFrame {
		fmt.Println(widgets.RenderMatrix(func(p keymap.Pos) widgets.Cell {
			idx, ok := km.LEDAt(p)
			if !ok {
				return widgets.Cell{}
			}
			c := snap.Frame[idx]
			return widgets.Cell{Present: true, Color: c, Lit: c != (theme.RGB{})}
		}, theme.UnlitColor))
	}
	return nil
}
