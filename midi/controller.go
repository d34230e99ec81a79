package midi

// ControllerType identifies the kind of controller
type ControllerType int

const (
	ControllerUnknown ControllerType = iota
	ControllerLaunchpad
	ControllerKeyboard
)

func (t ControllerType) String() string {
	switch t {
	case ControllerLaunchpad:
		return "launchpad"
	case ControllerKeyboard:
		return "keyboard"
	}
	return "unknown"
}

// ParseControllerType reads a controller type as written in the config.
func ParseControllerType(s string) (ControllerType, bool) {
	switch s {
	case "launchpad", "launchpad-x":
		return ControllerLaunchpad, true
	case "keyboard":
		return ControllerKeyboard, true
	}
	return ControllerUnknown, false
}

// PadEvent is sent when a pad/button on a grid controller goes down or up
type PadEvent struct {
	Row, Col int
	Velocity uint8
	Pressed  bool
}

// NoteEvent is sent when a key on a MIDI keyboard goes down or up
type NoteEvent struct {
	Note     uint8
	Velocity uint8
	Channel  uint8
	Pressed  bool
}

// LEDUpdate is one pad color change in a batch.
type LEDUpdate struct {
	Row, Col int
	Color    [3]uint8
	Channel  uint8
}

// Controller is the interface for MIDI input devices
type Controller interface {
	ID() string
	Type() ControllerType

	// Input events from the controller
	PadEvents() <-chan PadEvent   // For grid controllers (Launchpad)
	NoteEvents() <-chan NoteEvent // For keyboards

	// Output to the controller
	SetLEDBatch(updates []LEDUpdate) error

	// Lifecycle
	Close() error
}

// Launchpad X LED channel modes (use as 'channel' parameter)
const (
	ChannelStatic uint8 = 0 // solid color
	ChannelFlash  uint8 = 1 // flashing A/B alternating
	ChannelPulse  uint8 = 2 // pulsing (fades)
)

// Grid geometry of the Launchpad X in programmer mode: an 8x8 grid, a
// side column at col 8 and a top row at row 8.
const (
	GridSize = 8
	TopRow   = 8
	SideCol  = 8
)
