package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

const (
	WindowWidth  = 640
	WindowHeight = 240

	// Widget placement inside the window
	WidgetMarginX = 40
	WidgetHeight  = 80

	DefaultColor   = "#0000FF"
	DefaultCircles = 1
	DefaultStroke  = 15.0

	// Click played on every accepted change
	SoundSampleRate = 44100
	SoundFrequency  = 880.0

	// Terminal raster, in half-block pixels
	TerminalWidth  = 72
	TerminalHeight = 16
	TerminalStroke = 1.5
)

var ErrInvalidColor = errors.New("invalid color")

// Config holds application configuration.
type Config struct {
	Indicator IndicatorConfig
	Window    WindowConfig
	Sound     SoundConfig
	TUI       TUIConfig
}

// IndicatorConfig holds the widget settings fixed at construction.
type IndicatorConfig struct {
	Color   string
	Circles int
	Stroke  float64
}

// WindowConfig holds the ebiten window size.
type WindowConfig struct {
	Width  int
	Height int
}

type SoundConfig struct {
	Enabled   bool
	Frequency float64
}

// TUIConfig holds terminal settings. Stroke is in half-block pixels, so it
// is kept apart from the window stroke.
type TUIConfig struct {
	Stroke float64
}

// Load reads configuration from file and env. Env var overrides use prefix PAGE_INDICATOR_.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("indicator.color", DefaultColor)
	v.SetDefault("indicator.circles", DefaultCircles)
	v.SetDefault("indicator.stroke", DefaultStroke)
	v.SetDefault("window.width", WindowWidth)
	v.SetDefault("window.height", WindowHeight)
	v.SetDefault("sound.enabled", false)
	v.SetDefault("sound.frequency", SoundFrequency)
	v.SetDefault("tui.stroke", TerminalStroke)

	v.SetConfigType("yaml")

	cfgPath := os.Getenv("PAGE_INDICATOR_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "page-indicator"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("PAGE_INDICATOR")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks values that would otherwise produce a broken widget.
// Circle counts below one are not an error; the widget treats them as one.
func (c Config) Validate() error {
	if _, err := ParseColor(c.Indicator.Color); err != nil {
		return fmt.Errorf("indicator.color: %w", err)
	}
	if c.Indicator.Stroke < 0 {
		return fmt.Errorf("indicator.stroke: must not be negative, got %v", c.Indicator.Stroke)
	}
	if c.TUI.Stroke < 0 {
		return fmt.Errorf("tui.stroke: must not be negative, got %v", c.TUI.Stroke)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window: size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	return nil
}

// Color returns the parsed indicator tint.
func (c Config) Color() color.RGBA {
	clr, err := ParseColor(c.Indicator.Color)
	if err != nil {
		clr, _ = ParseColor(DefaultColor)
	}
	return clr
}

// ParseColor accepts #RGB, #RRGGBB and #RRGGBBAA.
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return color.RGBA{R: uint8(n >> 24), G: uint8(n >> 16), B: uint8(n >> 8), A: uint8(n)}, nil
}

// FormatColor is the inverse of ParseColor for opaque colors.
func FormatColor(c color.Color) string {
	r, g, b, a := c.RGBA()
	if a == 0xffff {
		return fmt.Sprintf("#%02X%02X%02X", r>>8, g>>8, b>>8)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", r>>8, g>>8, b>>8, a>>8)
}
