package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"go-keyfx/config"
	"go-keyfx/debug"
	"go-keyfx/hid"
	"go-keyfx/keyboard"
	"go-keyfx/keymap"
	"go-keyfx/lighting"
	"go-keyfx/midi"
	"go-keyfx/ripple"
	"go-keyfx/theme"
	"go-keyfx/timer"
	"go-keyfx/tui"
)

func main() {
	cfgPath := flag.String("config", "", "config file (default ~/.config/go-keyfx/config.yaml)")
	debugFlag := flag.Bool("debug", false, "log to ~/.config/go-keyfx/debug.log")
	flag.Parse()

	if err := run(*cfgPath, *debugFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfgPath string, debugOn bool) error {
	var cfg *config.Config
	var err error
	if cfgPath != "" {
		cfg, err = config.LoadFrom(cfgPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if debugOn || cfg.Debug {
		if err := debug.Enable(); err != nil {
			return err
		}
		defer debug.Disable()
	}

	palette := theme.DefaultPalette()
	if cfg.Lighting.Palette != "" {
		palette, err = theme.LoadGPL(cfg.Lighting.Palette)
		if err != nil {
			return err
		}
	}
	th := theme.New(palette)

	// Key output: history for the UI, debug log, optional MIDI port
	history := hid.NewHistory(256)
	out := hid.Tee{history, hid.Log{}}
	if cfg.Output.PortName != "" {
		port, err := hid.OpenMIDI(cfg.Output.PortName, uint8(cfg.Output.Channel))
		if err != nil {
			return err
		}
		out = append(out, port)
	}

	km := keymap.Default()
	pool := ripple.New(uint8(cfg.Lighting.RippleHorizon), cfg.RipplePolicy(), palette)
	kb := keyboard.New(km, timer.NewSystem(), out, lighting.NewRenderer(km, pool), keyboard.Options{
		Tick:         time.Duration(cfg.Timing.TickMS) * time.Millisecond,
		FPS:          cfg.Timing.LEDFPS,
		Heartbeat:    uint32(cfg.Timing.HeartbeatMS),
		DefaultLayer: uint8(cfg.DefaultLayer),
		Brightness:   uint8(cfg.Lighting.Brightness),
	})

	// Create MIDI device manager (handles hot-plug)
	deviceMgr := midi.NewDeviceManager()
	deviceMgr.DetectKeyboards(cfg.DetectKeyboards)
	deviceMgr.Ignore(cfg.Output.PortName)
	for port, t := range cfg.Assignments() {
		kind, _ := midi.ParseControllerType(string(t))
		deviceMgr.Assign(port, kind)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go deviceMgr.Run(ctx)
	go kb.Run(ctx)

	debug.Log("main", "started: layer=%d policy=%v horizon=%d", cfg.DefaultLayer, cfg.RipplePolicy(), pool.Horizon())

	m := tui.NewModel(kb, deviceMgr, history, cfg, th)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
