package midi

import (
	"context"
	"strings"
	"sync"
	"time"

	"go-keyfx/debug"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver
)

// DeviceEvent is emitted when controllers connect/disconnect
type DeviceEvent struct {
	Type       DeviceEventType
	Controller Controller
	ID         string
}

type DeviceEventType int

const (
	DeviceConnected DeviceEventType = iota
	DeviceDisconnected
)

// DeviceManager handles hot-plug detection of MIDI controllers
type DeviceManager struct {
	controllers map[string]Controller
	mu          sync.RWMutex
	events      chan DeviceEvent
	pollRate    time.Duration
	rules       portRules
}

// portRules decide which ports the manager opens and as what.
type portRules struct {
	detectKeyboards bool
	ignored         []string
	assigned        map[string]ControllerType // keyed by lower-case port name
}

// NewDeviceManager creates a new device manager
func NewDeviceManager() *DeviceManager {
	return &DeviceManager{
		controllers: make(map[string]Controller),
		events:      make(chan DeviceEvent, 16),
		pollRate:    time.Second,
	}
}

// DetectKeyboards makes the manager open every non-Launchpad input as a
// keyboard. Call before Run.
func (dm *DeviceManager) DetectKeyboards(on bool) {
	dm.rules.detectKeyboards = on
}

// Ignore skips ports whose name contains name (case-insensitive), for
// example our own output port looped back. Call before Run.
func (dm *DeviceManager) Ignore(name string) {
	if name != "" {
		dm.rules.ignored = append(dm.rules.ignored, strings.ToLower(name))
	}
}

// Assign opens the port called name as kind whatever its name suggests.
// ControllerUnknown keeps the port closed. Call before Run.
func (dm *DeviceManager) Assign(name string, kind ControllerType) {
	if dm.rules.assigned == nil {
		dm.rules.assigned = make(map[string]ControllerType)
	}
	dm.rules.assigned[strings.ToLower(name)] = kind
}

// Events returns a channel of device connect/disconnect events
func (dm *DeviceManager) Events() <-chan DeviceEvent {
	return dm.events
}

// Run starts the polling loop (blocking - run in goroutine)
func (dm *DeviceManager) Run(ctx context.Context) {
	ticker := time.NewTicker(dm.pollRate)
	defer ticker.Stop()

	// Initial scan
	dm.scan()

	for {
		select {
		case <-ctx.Done():
			dm.closeAll()
			close(dm.events)
			return
		case <-ticker.C:
			dm.scan()
		}
	}
}

func (dm *DeviceManager) scan() {
	// Get current MIDI ports with timeout (CoreMIDI can hang)
	type portsResult struct {
		inPorts  []drivers.In
		outPorts []drivers.Out
	}

	ch := make(chan portsResult, 1)
	go func() {
		ch <- portsResult{inPorts: gomidi.GetInPorts(), outPorts: gomidi.GetOutPorts()}
	}()

	var inPorts []drivers.In
	var outPorts []drivers.Out

	select {
	case result := <-ch:
		inPorts = result.inPorts
		outPorts = result.outPorts
	case <-time.After(3 * time.Second):
		// CoreMIDI is hung - skip this scan
		// User needs to run: sudo killall coreaudiod midiserver
		debug.Log("devices", "port scan timed out")
		return
	}

	seenIDs := make(map[string]bool)

	for i, inPort := range inPorts {
		id := inPort.String()
		kind := dm.rules.classify(id)
		if kind == ControllerUnknown {
			continue
		}
		seenIDs[id] = true

		dm.mu.RLock()
		_, exists := dm.controllers[id]
		dm.mu.RUnlock()
		if exists {
			continue
		}

		var c Controller
		var err error
		switch kind {
		case ControllerLaunchpad:
			c, err = NewLaunchpadController(id, inPorts[i], matchOut(id, outPorts))
		case ControllerKeyboard:
			c, err = NewKeyboardController(id, inPorts[i])
		}
		if err != nil {
			debug.Log("devices", "open %s: %v", id, err)
			continue
		}
		debug.Log("devices", "connected %s (%v)", id, kind)

		dm.mu.Lock()
		dm.controllers[id] = c
		dm.mu.Unlock()

		dm.events <- DeviceEvent{
			Type:       DeviceConnected,
			Controller: c,
			ID:         id,
		}
	}

	// Check for disconnects
	dm.mu.Lock()
	var toRemove []string
	for id := range dm.controllers {
		if !seenIDs[id] {
			toRemove = append(toRemove, id)
		}
	}
	for _, id := range toRemove {
		c := dm.controllers[id]
		c.Close()
		delete(dm.controllers, id)
		debug.Log("devices", "disconnected %s", id)
		dm.events <- DeviceEvent{
			Type: DeviceDisconnected,
			ID:   id,
		}
	}
	dm.mu.Unlock()
}

// matchOut finds the output port with the same name as an input.
func matchOut(name string, outPorts []drivers.Out) drivers.Out {
	name = strings.ToLower(name)
	for _, op := range outPorts {
		if strings.ToLower(op.String()) == name {
			return op
		}
	}
	return nil
}

func (dm *DeviceManager) closeAll() {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	for _, c := range dm.controllers {
		c.Close()
	}
	dm.controllers = make(map[string]Controller)
}

// classify decides what a port name is. Launchpads expose a DAW port too;
// only the MIDI one is used.
func (r portRules) classify(name string) ControllerType {
	lower := strings.ToLower(name)
	for _, ig := range r.ignored {
		if strings.Contains(lower, ig) {
			return ControllerUnknown
		}
	}
	if kind, ok := r.assigned[lower]; ok {
		return kind
	}
	if strings.Contains(lower, "launchpad") {
		if isLaunchpad(lower) {
			return ControllerLaunchpad
		}
		return ControllerUnknown
	}
	if r.detectKeyboards && !strings.Contains(lower, "through") {
		return ControllerKeyboard
	}
	return ControllerUnknown
}

func isLaunchpad(name string) bool {
	name = strings.ToLower(name)
	return strings.Contains(name, "launchpad") && strings.Contains(name, "midi")
}
