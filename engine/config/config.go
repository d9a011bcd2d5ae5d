package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/Carmen-Shannon/oxy-console/common"
	"github.com/Carmen-Shannon/oxy-console/engine/animator"
	"github.com/Carmen-Shannon/oxy-console/engine/camera"
	"github.com/Carmen-Shannon/oxy-console/engine/joystick"
	"github.com/Carmen-Shannon/oxy-console/engine/logger"
	"github.com/Carmen-Shannon/oxy-console/engine/resolver"
	"github.com/Carmen-Shannon/oxy-console/engine/scene"
	"github.com/Carmen-Shannon/oxy-console/engine/ui"
	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWindowWidth  = 1280
	DefaultWindowHeight = 800
	DefaultListen       = "127.0.0.1:8787"
	DefaultBridgePath   = "/bridge"
	DefaultQueueSize    = 64
)

// Bridge modes.
const (
	BridgeLocal     = "local"
	BridgeWebsocket = "websocket"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Window   WindowConfig      `yaml:"window"`
	Camera   CameraConfig      `yaml:"camera"`
	Model    ModelConfig       `yaml:"model"`
	Controls scene.NamePolicy  `yaml:"controls"`
	Tuning   TuningConfig      `yaml:"tuning"`
	Bridge   BridgeConfig      `yaml:"bridge"`
	UI       UIConfig          `yaml:"ui"`
	Keys     map[string]string `yaml:"keys"`
	Log      LogConfig         `yaml:"log"`
}

type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

type CameraConfig struct {
	Projection  string  `yaml:"projection"`
	WorldWidth  float32 `yaml:"world_width"`
	WorldHeight float32 `yaml:"world_height"`
	Height      float32 `yaml:"height"`
	Near        float32 `yaml:"near"`
	Far         float32 `yaml:"far"`
	FovDegrees  float32 `yaml:"fov"`
}

type ModelConfig struct {
	Path string `yaml:"path"`
}

type TuningConfig struct {
	ButtonPressDepth  float32          `yaml:"button_press_depth"`
	PadPressDepth     float32          `yaml:"pad_press_depth"`
	PadTilt           float32          `yaml:"pad_tilt"`
	JoystickMaxRadius float32          `yaml:"joystick_max_radius"`
	JoystickCooldown  time.Duration    `yaml:"joystick_cooldown"`
	Damping           animator.Damping `yaml:"damping"`
}

type BridgeConfig struct {
	Mode      string `yaml:"mode"`
	Listen    string `yaml:"listen"`
	Path      string `yaml:"path"`
	QueueSize int    `yaml:"queue_size"`
}

type UIConfig struct {
	VisibleCards int       `yaml:"visible_cards"`
	Cards        []ui.Card `yaml:"cards"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the stock console configuration.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "oxy console",
			Width:  DefaultWindowWidth,
			Height: DefaultWindowHeight,
		},
		Camera: CameraConfig{
			Projection:  "ortho",
			WorldWidth:  3.4,
			WorldHeight: 2.1,
			Height:      5,
			Near:        0.1,
			Far:         100,
			FovDegrees:  45,
		},
		Model: ModelConfig{
			Path: "assets/console.glb",
		},
		Controls: scene.DefaultNamePolicy(),
		Tuning: TuningConfig{
			ButtonPressDepth:  resolver.DefaultButtonPressDepth,
			PadPressDepth:     resolver.DefaultPadPressDepth,
			PadTilt:           resolver.DefaultPadTilt,
			JoystickMaxRadius: joystick.DefaultMaxRadius,
			JoystickCooldown:  joystick.DefaultCooldown,
			Damping:           animator.DefaultDamping(),
		},
		Bridge: BridgeConfig{
			Mode:      BridgeLocal,
			Listen:    DefaultListen,
			Path:      DefaultBridgePath,
			QueueSize: DefaultQueueSize,
		},
		UI: UIConfig{
			VisibleCards: 3,
			Cards: []ui.Card{
				{Title: "About", Link: "/about"},
				{Title: "Projects", Link: "/projects"},
				{Title: "Resume", Link: "/resume"},
				{Title: "Contact", Link: "/contact"},
			},
		},
		Keys: map[string]string{
			"enter":     "Button_A",
			"backspace": "Button_B",
			"h":         "Button_Home",
			"space":     "Button_Start",
			"left":      "dpad_left",
			"right":     "dpad_right",
			"up":        "dpad_up",
			"down":      "dpad_down",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads a YAML config file over the defaults. Missing keys keep their default values.
//
// Parameters:
//   - path: the config file path
//
// Returns:
//   - *Config: the loaded, validated config
//   - error: error if the file cannot be read, parsed or validated
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config as YAML.
//
// Parameters:
//   - path: the destination file path
//   - cfg: the config to write
//
// Returns:
//   - error: error if encoding or writing fails
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks ranges and names. Every returned error wraps ErrInvalidConfig.
func (c *Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return invalid("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	switch c.Camera.Projection {
	case "ortho", "perspective":
	default:
		return invalid("camera projection must be ortho or perspective, got %q", c.Camera.Projection)
	}
	if c.Camera.WorldWidth <= 0 || c.Camera.WorldHeight <= 0 {
		return invalid("camera world size must be positive")
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return invalid("camera clip planes must satisfy 0 < near < far")
	}

	if c.Controls.ButtonPrefix == "" || c.Controls.PadName == "" || c.Controls.JoystickName == "" {
		return invalid("control names must not be empty")
	}

	t := c.Tuning
	if t.ButtonPressDepth < 0 || t.PadPressDepth < 0 || t.PadTilt < 0 {
		return invalid("press depths and pad tilt must not be negative")
	}
	if t.JoystickMaxRadius <= 0 {
		return invalid("joystick max radius must be positive, got %v", t.JoystickMaxRadius)
	}
	if t.JoystickCooldown < 0 {
		return invalid("joystick cooldown must not be negative, got %v", t.JoystickCooldown)
	}
	d := t.Damping
	for name, k := range map[string]float32{
		"button":            d.Button,
		"button_rotation":   d.ButtonRotation,
		"pad_position":      d.PadPosition,
		"pad_rotation":      d.PadRotation,
		"joystick_return":   d.JoystickReturn,
		"joystick_drag":     d.JoystickDrag,
		"joystick_rotation": d.JoystickRotate,
	} {
		if k <= 0 || k > 1 {
			return invalid("damping %s must be in (0, 1], got %v", name, k)
		}
	}

	switch c.Bridge.Mode {
	case BridgeLocal:
	case BridgeWebsocket:
		if c.Bridge.Listen == "" || c.Bridge.Path == "" {
			return invalid("websocket bridge needs a listen address and path")
		}
	default:
		return invalid("bridge mode must be local or websocket, got %q", c.Bridge.Mode)
	}
	if c.Bridge.QueueSize <= 0 {
		return invalid("bridge queue size must be positive")
	}

	for key, target := range c.Keys {
		if _, ok := common.KeyByName(key); !ok {
			return invalid("unknown key %q", key)
		}
		if target == "" {
			return invalid("key %q has no target", key)
		}
	}

	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return invalid("%v", err)
	}
	return nil
}

// CameraOptions translates the camera section into camera builder options.
func (c *Config) CameraOptions() []camera.CameraBuilderOption {
	projection := camera.ProjectionOrthographic
	if c.Camera.Projection == "perspective" {
		projection = camera.ProjectionPerspective
	}
	return []camera.CameraBuilderOption{
		camera.WithProjection(projection),
		camera.WithEye(0, c.Camera.Height, 0),
		camera.WithWorldSize(c.Camera.WorldWidth, c.Camera.WorldHeight),
		camera.WithClip(c.Camera.Near, c.Camera.Far),
		camera.WithFov(mgl32.DegToRad(c.Camera.FovDegrees)),
		camera.WithViewport(float32(c.Window.Width), float32(c.Window.Height)),
	}
}

// ResolverOptions translates the tuning section into resolver builder options.
func (c *Config) ResolverOptions() []resolver.ResolverBuilderOption {
	return []resolver.ResolverBuilderOption{
		resolver.WithButtonPressDepth(c.Tuning.ButtonPressDepth),
		resolver.WithPadPressDepth(c.Tuning.PadPressDepth),
		resolver.WithPadTilt(c.Tuning.PadTilt),
	}
}

// TrackerOptions translates the tuning section into joystick tracker builder options.
func (c *Config) TrackerOptions() []joystick.TrackerBuilderOption {
	return []joystick.TrackerBuilderOption{
		joystick.WithMaxRadius(c.Tuning.JoystickMaxRadius),
		joystick.WithCooldown(c.Tuning.JoystickCooldown),
	}
}
