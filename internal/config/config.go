package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"os"
	"strings"
	"time"

	"github.com/iburimskiy/particle-network/internal/particles"
)

const (
	WindowWidth  = 1280
	WindowHeight = 720

	// Field population
	ParticleCount = 60
	RadiusMin     = 1.0
	RadiusMax     = 3.0
	SpeedMax      = 0.75
	OpacityMin    = 0.2
	OpacityMax    = 0.7

	// Connection pass
	ConnectionThreshold    = 100.0
	ConnectionAlphaBase    = 0.2
	ConnectionAlphaFalloff = 500.0
	LineWidth              = 1.0
	GridAbove              = 200

	ParticleColor   = "#00d9ff"
	BackgroundColor = "#0a0e1a"

	TicksPerSecond = 60
	ResizeDebounce = 150 * time.Millisecond

	// Terminal cell size in field units
	CellWidth  = 8.0
	CellHeight = 16.0
)

const (
	BackendWindow   = "window"
	BackendTerminal = "terminal"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Duration accepts either a Go duration string ("150ms") or integer nanoseconds in JSON.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		v, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("parse duration %q: %w", s, err)
		}
		*d = Duration(v)
		return nil
	}
	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("duration must be a string or integer: %w", err)
	}
	*d = Duration(n)
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

type Config struct {
	Backend    string `json:"backend"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Fullscreen bool   `json:"fullscreen,omitempty"`
	Debug      bool   `json:"debug,omitempty"`

	ParticleCount int     `json:"particle_count"`
	RadiusMin     float64 `json:"radius_min"`
	RadiusMax     float64 `json:"radius_max"`
	SpeedMax      float64 `json:"speed_max"`
	OpacityMin    float64 `json:"opacity_min"`
	OpacityMax    float64 `json:"opacity_max"`

	ConnectionThreshold    float64 `json:"connection_threshold"`
	ConnectionAlphaBase    float64 `json:"connection_alpha_base"`
	ConnectionAlphaFalloff float64 `json:"connection_alpha_falloff"`
	LineWidth              float64 `json:"line_width"`
	GridAbove              int     `json:"grid_above"`

	Color      string `json:"color"`
	Background string `json:"background"`

	TicksPerSecond int      `json:"ticks_per_second"`
	ResizeDebounce Duration `json:"resize_debounce"`

	CellWidth  float64 `json:"cell_width"`
	CellHeight float64 `json:"cell_height"`

	Soundtrack string `json:"soundtrack,omitempty"`
}

func Default() Config {
	return Config{
		Backend:                BackendWindow,
		Width:                  WindowWidth,
		Height:                 WindowHeight,
		ParticleCount:          ParticleCount,
		RadiusMin:              RadiusMin,
		RadiusMax:              RadiusMax,
		SpeedMax:               SpeedMax,
		OpacityMin:             OpacityMin,
		OpacityMax:             OpacityMax,
		ConnectionThreshold:    ConnectionThreshold,
		ConnectionAlphaBase:    ConnectionAlphaBase,
		ConnectionAlphaFalloff: ConnectionAlphaFalloff,
		LineWidth:              LineWidth,
		GridAbove:              GridAbove,
		Color:                  ParticleColor,
		Background:             BackgroundColor,
		TicksPerSecond:         TicksPerSecond,
		ResizeDebounce:         Duration(ResizeDebounce),
		CellWidth:              CellWidth,
		CellHeight:             CellHeight,
	}
}

// Load reads a JSON file on top of the defaults; keys missing from the file keep
// their default value.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
	}

	switch c.Backend {
	case BackendWindow, BackendTerminal:
	default:
		return invalid("backend %q (want %s or %s)", c.Backend, BackendWindow, BackendTerminal)
	}
	if c.Width < 0 || c.Height < 0 {
		return invalid("window size %dx%d", c.Width, c.Height)
	}
	// the terminal backend sizes itself from the terminal
	if c.Backend == BackendWindow && (c.Width == 0 || c.Height == 0) {
		return invalid("window size %dx%d", c.Width, c.Height)
	}
	if c.ParticleCount < 0 {
		return invalid("particle_count %d", c.ParticleCount)
	}
	if c.RadiusMin <= 0 || c.RadiusMax < c.RadiusMin {
		return invalid("radius range [%g, %g)", c.RadiusMin, c.RadiusMax)
	}
	if c.SpeedMax < 0 {
		return invalid("speed_max %g", c.SpeedMax)
	}
	if c.OpacityMin < 0 || c.OpacityMax > 1 || c.OpacityMax < c.OpacityMin {
		return invalid("opacity range [%g, %g)", c.OpacityMin, c.OpacityMax)
	}
	if c.ConnectionThreshold <= 0 {
		return invalid("connection_threshold %g", c.ConnectionThreshold)
	}
	if c.ConnectionAlphaFalloff <= 0 {
		return invalid("connection_alpha_falloff %g", c.ConnectionAlphaFalloff)
	}
	if c.LineWidth <= 0 {
		return invalid("line_width %g", c.LineWidth)
	}
	if c.TicksPerSecond <= 0 {
		return invalid("ticks_per_second %d", c.TicksPerSecond)
	}
	if c.ResizeDebounce < 0 {
		return invalid("resize_debounce %s", time.Duration(c.ResizeDebounce))
	}
	if c.CellWidth <= 0 || c.CellHeight <= 0 {
		return invalid("cell size %gx%g", c.CellWidth, c.CellHeight)
	}
	if _, err := ParseColor(c.Color); err != nil {
		return invalid("color: %v", err)
	}
	if _, err := ParseColor(c.Background); err != nil {
		return invalid("background: %v", err)
	}
	return nil
}

// FieldSettings converts the population and connection parameters for the particle field.
func (c Config) FieldSettings() (particles.Settings, error) {
	hue, err := ParseColor(c.Color)
	if err != nil {
		return particles.Settings{}, err
	}
	return particles.Settings{
		Count:                  c.ParticleCount,
		RadiusMin:              c.RadiusMin,
		RadiusMax:              c.RadiusMax,
		SpeedMax:               c.SpeedMax,
		OpacityMin:             c.OpacityMin,
		OpacityMax:             c.OpacityMax,
		ConnectionThreshold:    c.ConnectionThreshold,
		ConnectionAlphaBase:    c.ConnectionAlphaBase,
		ConnectionAlphaFalloff: c.ConnectionAlphaFalloff,
		LineWidth:              c.LineWidth,
		GridAbove:              c.GridAbove,
		Hue:                    hue,
	}, nil
}

// ParseColor parses "#rrggbb" into an opaque color.
func ParseColor(hex string) (color.RGBA, error) {
	var r, g, b uint8
	hex = strings.TrimSpace(hex)
	if len(hex) != 7 || hex[0] != '#' {
		return color.RGBA{}, fmt.Errorf("color %q is not #rrggbb", hex)
	}
	if _, err := fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", hex, err)
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}
