package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go-keyfx/config"
	"go-keyfx/debug"
	"go-keyfx/hid"
	"go-keyfx/keyboard"
	"go-keyfx/keycode"
	"go-keyfx/keymap"
	"go-keyfx/midi"
	"go-keyfx/theme"
	"go-keyfx/widgets"
)

// historyLines is how many output actions the view shows.
const historyLines = 12

// layoutBounds holds cached layout info
type layoutBounds struct {
	matrixTop int
}

type Model struct {
	Keyboard  *keyboard.Keyboard
	DeviceMgr *midi.DeviceManager
	Theme     *theme.Theme
	History   *hid.History
	Config    *config.Config

	quitting   bool
	tooltip    string
	mouseDown  *keymap.Pos
	bounds     *layoutBounds
	controller midi.Controller // current launchpad (may be nil)
	keyboards  int
}

type UpdateMsg struct{}

type DeviceEventMsg midi.DeviceEvent

func NewModel(kb *keyboard.Keyboard, deviceMgr *midi.DeviceManager, history *hid.History, cfg *config.Config, th *theme.Theme) Model {
	return Model{
		Keyboard:  kb,
		DeviceMgr: deviceMgr,
		Theme:     th,
		History:   history,
		Config:    cfg,
		bounds:    &layoutBounds{},
	}
}

func ListenForUpdates(kb *keyboard.Keyboard) tea.Cmd {
	return func() tea.Msg {
		<-kb.UpdateChan
		return UpdateMsg{}
	}
}

func ListenForDevices(deviceMgr *midi.DeviceManager) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-deviceMgr.Events()
		if !ok {
			return nil
		}
		return DeviceEventMsg(event)
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{ListenForUpdates(m.Keyboard)}
	if m.DeviceMgr != nil {
		cmds = append(cmds, ListenForDevices(m.DeviceMgr))
	}
	return tea.Batch(cmds...)
}

// specialKeys maps terminal keys that are not plain runes.
var specialKeys = map[tea.KeyType]keycode.Keycode{
	tea.KeyEnter:     keycode.Enter,
	tea.KeyTab:       keycode.Tab,
	tea.KeyBackspace: keycode.Backspace,
	tea.KeyDelete:    keycode.Delete,
	tea.KeyEsc:       keycode.Escape,
	tea.KeySpace:     keycode.Space,
	tea.KeyUp:        keycode.Up,
	tea.KeyDown:      keycode.Down,
	tea.KeyLeft:      keycode.Left,
	tea.KeyRight:     keycode.Right,
	tea.KeyHome:      keycode.Home,
	tea.KeyEnd:       keycode.End,
	tea.KeyPgUp:      keycode.PageUp,
	tea.KeyPgDown:    keycode.PageDown,
	tea.KeyF1:        keycode.F1,
	tea.KeyF2:        keycode.F2,
	tea.KeyF3:        keycode.F3,
	tea.KeyF4:        keycode.F4,
	tea.KeyF5:        keycode.F5,
	tea.KeyF6:        keycode.F6,
	tea.KeyF7:        keycode.F7,
	tea.KeyF8:        keycode.F8,
	tea.KeyF9:        keycode.F9,
	tea.KeyF10:       keycode.F10,
	tea.KeyF11:       keycode.F11,
	tea.KeyF12:       keycode.F12,
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "ctrl+r":
			m.History.Reset()
			return m, nil
		case "ctrl+left":
			m.Keyboard.Scroll(-midi.GridSize)
			return m, nil
		case "ctrl+right":
			m.Keyboard.Scroll(midi.GridSize)
			return m, nil
		}
		m.typeKey(msg)

	case tea.MouseMsg:
		m.tooltip = m.hitTest(msg.X, msg.Y)
		m.handleMouse(msg)

	case UpdateMsg:
		return m, ListenForUpdates(m.Keyboard)

	case DeviceEventMsg:
		m.handleDevice(midi.DeviceEvent(msg))
		return m, ListenForDevices(m.DeviceMgr)
	}

	return m, nil
}

// typeKey turns a terminal key into taps on the matrix.
func (m *Model) typeKey(msg tea.KeyMsg) {
	if msg.Type == tea.KeyRunes {
		for _, r := range msg.Runes {
			if s, ok := keycode.ForRune(r); ok {
				m.tapCode(s.Code, s.Shifted)
			}
		}
		return
	}
	if code, ok := specialKeys[msg.Type]; ok {
		m.tapCode(code, false)
	}
}

func (m *Model) tapCode(code keycode.Keycode, shifted bool) {
	km := m.Keyboard.Keymap()
	_, p, ok := km.Find(code)
	if !ok {
		debug.Log("tui", "no key for %v", code)
		return
	}
	if !shifted {
		m.Keyboard.Tap(p)
		return
	}
	_, shift, ok := km.Find(keycode.LeftShift)
	if !ok {
		m.Keyboard.Tap(p)
		return
	}
	m.Keyboard.Tap(p, shift)
}

// handleMouse holds a key while the left button is down on it.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		p, ok := widgets.MatrixHit(msg.X, msg.Y-m.bounds.matrixTop)
		if !ok {
			return
		}
		m.mouseDown = &p
		m.Keyboard.Submit(keyboard.Input{Pos: p, Pressed: true})
	case tea.MouseActionRelease:
		if m.mouseDown != nil {
			m.Keyboard.Submit(keyboard.Input{Pos: *m.mouseDown})
			m.mouseDown = nil
		}
	}
}

func (m *Model) handleDevice(event midi.DeviceEvent) {
	switch event.Type {
	case midi.DeviceConnected:
		ctrl := m.Config.FindController(event.ID)
		switch event.Controller.Type() {
		case midi.ControllerLaunchpad:
			var w keyboard.PadWindow
			if ctrl != nil {
				w.ColOffset = ctrl.ColOffset
			}
			m.controller = event.Controller
			m.Keyboard.AttachLaunchpad(event.Controller, w)
		case midi.ControllerKeyboard:
			l := keyboard.NoteLayout{BaseNote: 36}
			if ctrl != nil && ctrl.BaseNote > 0 {
				l.BaseNote = uint8(ctrl.BaseNote)
			}
			m.keyboards++
			m.Keyboard.AttachKeyboard(event.Controller, l)
		}
	case midi.DeviceDisconnected:
		if m.controller != nil && m.controller.ID() == event.ID {
			m.controller = nil
			m.Keyboard.Detach(event.ID)
		} else if m.keyboards > 0 {
			m.keyboards--
		}
	}
}

func (m Model) hitTest(x, y int) string {
	p, ok := widgets.MatrixHit(x, y-m.bounds.matrixTop)
	if !ok {
		return ""
	}
	km := m.Keyboard.Keymap()
	code := km.KeyAt(0, p)
	if code == keycode.NoKey {
		return ""
	}
	led, _ := km.LEDAt(p)
	return fmt.Sprintf("%v  row %d col %d  led %d", code, p.Row, p.Col, led)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	snap := m.Keyboard.Snapshot()
	km := m.Keyboard.Keymap()

	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent())
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	warnStyle := lipgloss.NewStyle().Foreground(m.Theme.Warning())
	tooltipStyle := lipgloss.NewStyle().
		Foreground(m.Theme.FG()).
		Background(m.Theme.Muted()).
		Padding(0, 1)

	header := headerStyle.Render(fmt.Sprintf("go-keyfx  layer:%d  bright:%3d  ripples:%2d",
		snap.Layers.On(snap.DefaultLayer).Highest(), snap.Brightness, snap.Ripples))
	if snap.Caps {
		header += "  " + warnStyle.Render("CAPS")
	}
	if !snap.LightsOn {
		header += "  " + dimStyle.Render("lights off")
	}
	if m.controller != nil {
		header += dimStyle.Render(fmt.Sprintf("  LP:X @%d", snap.Window.ColOffset))
	}
	if m.keyboards > 0 {
		header += dimStyle.Render(fmt.Sprintf("  KB:%d", m.keyboards))
	}

	macroLine := dimStyle.Render(fmt.Sprintf("%c idle", m.Theme.Symbols.Idle))
	if snap.Macro.Active {
		macroLine = headerStyle.Render(fmt.Sprintf("%c %v  %v  step %d",
			m.Theme.Symbols.Running, snap.Macro.Identity, snap.Macro.Kind, snap.Macro.Step))
	}

	matrix := widgets.RenderMatrix(func(p keymap.Pos) widgets.Cell {
		idx, ok := km.LEDAt(p)
		if !ok {
			return widgets.Cell{}
		}
		c := widgets.Cell{Present: true}
		if int(idx) < len(snap.Frame) && snap.Frame[idx] != (theme.RGB{}) {
			c.Lit = true
			c.Color = snap.Frame[idx]
		}
		if m.controller != nil {
			_, _, c.Marked = snap.Window.Pad(p)
		}
		return c
	}, theme.UnlitColor)

	help := dimStyle.Render("type or click keys  ctrl+←/→:pad window  ctrl+r:clear output  ctrl+c:quit")

	// header, blank line, macro line, blank line, then the matrix
	m.bounds.matrixTop = 1 + lipgloss.Height(header) + 1 + lipgloss.Height(macroLine) + 1

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")
	out.WriteString(macroLine)
	out.WriteString("\n\n")
	out.WriteString(matrix)
	out.WriteString("\n\n")
	out.WriteString(m.renderHistory(dimStyle))
	out.WriteString("\n\n")
	out.WriteString(help)

	if m.tooltip != "" {
		out.WriteString("\n")
		out.WriteString(tooltipStyle.Render(m.tooltip))
	}

	return out.String()
}

func (m Model) renderHistory(dim lipgloss.Style) string {
	actions := m.History.Actions()
	if len(actions) > historyLines {
		actions = actions[len(actions)-historyLines:]
	}
	if len(actions) == 0 {
		return dim.Render("output: (none)")
	}
	parts := make([]string, len(actions))
	for i, a := range actions {
		parts[i] = a.String()
	}
	return "output: " + strings.Join(parts, " ")
}
