package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"go-keyfx/keymap"
	"go-keyfx/ripple"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// ControllerType identifies the kind of controller
type ControllerType string

const (
	ControllerLaunchpadX ControllerType = "launchpad-x"
	ControllerKeyboard   ControllerType = "keyboard"
)

// ControllerConfig defines a saved controller configuration
type ControllerConfig struct {
	PortName    string         `yaml:"portName"`
	Type        ControllerType `yaml:"type"`
	AutoConnect bool           `yaml:"autoConnect"`
	ColOffset   int            `yaml:"colOffset,omitempty"` // launchpad: first matrix column shown
	BaseNote    int            `yaml:"baseNote,omitempty"`  // keyboard: note mapped to matrix (0,0)
}

// OutputConfig is the MIDI port that receives virtual key output.
type OutputConfig struct {
	PortName string `yaml:"portName,omitempty"`
	Channel  int    `yaml:"channel,omitempty"`
}

// TimingConfig holds loop rates in milliseconds / frames per second.
type TimingConfig struct {
	TickMS      int `yaml:"tickMs"`
	LEDFPS      int `yaml:"ledFps"`
	HeartbeatMS int `yaml:"heartbeatMs"`
}

// LightingConfig controls ripples and indicators.
type LightingConfig struct {
	Brightness    int    `yaml:"brightness"`
	RippleHorizon int    `yaml:"rippleHorizon"`
	RipplePolicy  string `yaml:"ripplePolicy"`
	Palette       string `yaml:"palette,omitempty"` // GIMP .gpl; built-in gradient when empty
}

// Config is the main configuration structure
type Config struct {
	Controllers     []ControllerConfig `yaml:"controllers,omitempty"`
	DetectKeyboards bool               `yaml:"detectKeyboards"`
	Output          OutputConfig       `yaml:"output,omitempty"`
	Timing          TimingConfig       `yaml:"timing"`
	Lighting        LightingConfig     `yaml:"lighting"`
	DefaultLayer    int                `yaml:"defaultLayer"`
	Debug           bool               `yaml:"debug"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Controllers: []ControllerConfig{
			{
				PortName:    "Launchpad X LPX MIDI",
				Type:        ControllerLaunchpadX,
				AutoConnect: true,
			},
		},
		Timing: TimingConfig{
			TickMS:      10,
			LEDFPS:      30,
			HeartbeatMS: 1500,
		},
		Lighting: LightingConfig{
			Brightness:    255,
			RippleHorizon: int(ripple.DefaultHorizon),
			RipplePolicy:  ripple.EvictOldest.String(),
		},
		DefaultLayer: int(keymap.MacBase),
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate home dir: %w", err)
	}
	return filepath.Join(home, ".config", "go-keyfx"), nil
}

// ConfigPath returns the full path to config.yaml
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config from the default path, or returns defaults if
// there is no file.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads path over the defaults and validates the result. A
// missing file yields the defaults.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to the default path
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the config to path, creating its directory.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Validate checks ranges. Every error wraps ErrInvalid.
func (c *Config) Validate() error {
	switch {
	case c.Timing.TickMS <= 0:
		return fmt.Errorf("%w: tickMs must be positive, got %d", ErrInvalid, c.Timing.TickMS)
	case c.Timing.LEDFPS <= 0 || c.Timing.LEDFPS > 240:
		return fmt.Errorf("%w: ledFps must be 1-240, got %d", ErrInvalid, c.Timing.LEDFPS)
	case c.Timing.HeartbeatMS <= 0:
		return fmt.Errorf("%w: heartbeatMs must be positive, got %d", ErrInvalid, c.Timing.HeartbeatMS)
	case c.Lighting.Brightness < 0 || c.Lighting.Brightness > 255:
		return fmt.Errorf("%w: brightness must be 0-255, got %d", ErrInvalid, c.Lighting.Brightness)
	case c.Lighting.RippleHorizon < 1 || c.Lighting.RippleHorizon > 255:
		return fmt.Errorf("%w: rippleHorizon must be 1-255, got %d", ErrInvalid, c.Lighting.RippleHorizon)
	case c.DefaultLayer < 0 || c.DefaultLayer >= keymap.Layers:
		return fmt.Errorf("%w: defaultLayer must be 0-%d, got %d", ErrInvalid, keymap.Layers-1, c.DefaultLayer)
	case c.Output.Channel < 0 || c.Output.Channel > 15:
		return fmt.Errorf("%w: output channel must be 0-15, got %d", ErrInvalid, c.Output.Channel)
	}
	if _, err := ripple.ParsePolicy(c.Lighting.RipplePolicy); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	for _, ctrl := range c.Controllers {
		switch ctrl.Type {
		case ControllerLaunchpadX, ControllerKeyboard:
		default:
			return fmt.Errorf("%w: controller %q has unknown type %q", ErrInvalid, ctrl.PortName, ctrl.Type)
		}
		if ctrl.ColOffset < 0 || ctrl.ColOffset >= keymap.Cols {
			return fmt.Errorf("%w: controller %q colOffset out of range", ErrInvalid, ctrl.PortName)
		}
		if ctrl.BaseNote < 0 || ctrl.BaseNote > 127 {
			return fmt.Errorf("%w: controller %q baseNote out of range", ErrInvalid, ctrl.PortName)
		}
	}
	return nil
}

// RipplePolicy returns the parsed ripple saturation policy.
func (c *Config) RipplePolicy() ripple.Policy {
	p, _ := ripple.ParsePolicy(c.Lighting.RipplePolicy)
	return p
}

// FindController finds a controller config by port name
func (c *Config) FindController(portName string) *ControllerConfig {
	for i := range c.Controllers {
		if c.Controllers[i].PortName == portName {
			return &c.Controllers[i]
		}
	}
	return nil
}

// Assignments maps every listed port to the controller type it opens
// as. Ports with autoConnect off map to the empty type.
func (c *Config) Assignments() map[string]ControllerType {
	m := make(map[string]ControllerType, len(c.Controllers))
	for _, ctrl := range c.Controllers {
		if ctrl.AutoConnect {
			m[ctrl.PortName] = ctrl.Type
		} else {
			m[ctrl.PortName] = ""
		}
	}
	return m
}
