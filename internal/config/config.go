package config

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/1broseidon/keyviz/internal/keyboard"
)

// LayoutConfig selects the rows of keys shown by the overlay.
type LayoutConfig struct {
	Rows []string `yaml:"rows"`
}

// Geometry controls key and control sizes in pixels and the initial
// window origin on screen.
type Geometry struct {
	KeyWidth    int `yaml:"key_width"`
	KeyHeight   int `yaml:"key_height"`
	Padding     int `yaml:"padding"`      // space around every key
	ControlSize int `yaml:"control_size"` // square size of the handle and lock indicator
	OriginX     int `yaml:"origin_x"`
	OriginY     int `yaml:"origin_y"`
}

// Colors holds color specs as written in the config file. Use
// Config.Palette to resolve them to pixel values.
type Colors struct {
	Idle        string `yaml:"idle"`
	Active      string `yaml:"active"`
	Text        string `yaml:"text"`
	Transparent string `yaml:"transparent"`
	Control     string `yaml:"control"`
	ControlText string `yaml:"control_text"`
	Menu        string `yaml:"menu"`
	MenuText    string `yaml:"menu_text"`
}

// Glyphs are the short labels drawn on the control widgets.
type Glyphs struct {
	Handle   string `yaml:"handle"`
	Locked   string `yaml:"locked"`
	Unlocked string `yaml:"unlocked"`
}

// MenuConfig configures the right-click context menu.
type MenuConfig struct {
	CloseLabel string `yaml:"close_label"`
}

// Config holds the application configuration.
type Config struct {
	LogLevel string       `yaml:"log_level"`
	Display  string       `yaml:"display,omitempty"`
	Layout   LayoutConfig `yaml:"layout"`
	Geometry Geometry     `yaml:"geometry"`
	Colors   Colors       `yaml:"colors"`
	Glyphs   Glyphs       `yaml:"glyphs"`
	Menu     MenuConfig   `yaml:"menu"`
	Fonts    []string     `yaml:"fonts"`
}

// Palette is the resolved form of Colors.
type Palette struct {
	Idle        uint32
	Active      uint32
	Text        uint32
	Transparent uint32
	Control     uint32
	ControlText uint32
	Menu        uint32
	MenuText    uint32
}

// maxGlyphRunes bounds control glyphs so they fit a control cell.
const maxGlyphRunes = 3

func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Layout: LayoutConfig{
			Rows: keyboard.DefaultRows(),
		},
		Geometry: Geometry{
			KeyWidth:    40,
			KeyHeight:   36,
			Padding:     2,
			ControlSize: 20,
			OriginX:     100,
			OriginY:     100,
		},
		Colors: Colors{
			Idle:        "lightgray",
			Active:      "yellow",
			Text:        "black",
			Transparent: "magenta",
			Control:     "gray",
			ControlText: "white",
			Menu:        "#f0f0f0",
			MenuText:    "black",
		},
		Glyphs: Glyphs{
			Handle:   "=",
			Locked:   "L",
			Unlocked: "U",
		},
		Menu: MenuConfig{
			CloseLabel: "Close",
		},
		Fonts: []string{"fixed", "9x15", "8x13", "6x13"},
	}
}

// KeyLayout builds the key layout described by the config.
func (c *Config) KeyLayout() (*keyboard.Layout, error) {
	return keyboard.NewLayout(c.Layout.Rows)
}

// Palette resolves every configured color. The config must have passed
// Validate, otherwise unparsable colors resolve to black.
func (c *Config) Palette() Palette {
	resolve := func(spec string) uint32 {
		px, _ := ParseColor(spec)
		return px
	}
	return Palette{
		Idle:        resolve(c.Colors.Idle),
		Active:      resolve(c.Colors.Active),
		Text:        resolve(c.Colors.Text),
		Transparent: resolve(c.Colors.Transparent),
		Control:     resolve(c.Colors.Control),
		ControlText: resolve(c.Colors.ControlText),
		Menu:        resolve(c.Colors.Menu),
		MenuText:    resolve(c.Colors.MenuText),
	}
}

func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warn, error")}
	}

	if _, err := c.KeyLayout(); err != nil {
		return &ValidationError{Path: "layout.rows", Err: err}
	}
	for _, row := range c.Layout.Rows {
		if !isLatin1(row) {
			return &ValidationError{Path: "layout.rows", Err: fmt.Errorf("row %q contains characters outside Latin-1", row)}
		}
	}

	g := c.Geometry
	positive := []struct {
		path  string
		value int
	}{
		{"geometry.key_width", g.KeyWidth},
		{"geometry.key_height", g.KeyHeight},
		{"geometry.control_size", g.ControlSize},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return &ValidationError{Path: p.path, Err: fmt.Errorf("must be > 0")}
		}
	}
	if g.Padding < 0 {
		return &ValidationError{Path: "geometry.padding", Err: fmt.Errorf("must be >= 0")}
	}

	colors := []struct {
		path string
		spec string
	}{
		{"colors.idle", c.Colors.Idle},
		{"colors.active", c.Colors.Active},
		{"colors.text", c.Colors.Text},
		{"colors.transparent", c.Colors.Transparent},
		{"colors.control", c.Colors.Control},
		{"colors.control_text", c.Colors.ControlText},
		{"colors.menu", c.Colors.Menu},
		{"colors.menu_text", c.Colors.MenuText},
	}
	for _, col := range colors {
		if _, err := ParseColor(col.spec); err != nil {
			return &ValidationError{Path: col.path, Err: err}
		}
	}

	glyphs := []struct {
		path  string
		glyph string
	}{
		{"glyphs.handle", c.Glyphs.Handle},
		{"glyphs.locked", c.Glyphs.Locked},
		{"glyphs.unlocked", c.Glyphs.Unlocked},
	}
	for _, gl := range glyphs {
		n := utf8.RuneCountInString(gl.glyph)
		if n == 0 || n > maxGlyphRunes {
			return &ValidationError{Path: gl.path, Err: fmt.Errorf("glyph must be 1-%d characters", maxGlyphRunes)}
		}
		if !isLatin1(gl.glyph) {
			return &ValidationError{Path: gl.path, Err: fmt.Errorf("glyph %q contains characters outside Latin-1", gl.glyph)}
		}
	}
	if c.Glyphs.Locked == c.Glyphs.Unlocked {
		return &ValidationError{Path: "glyphs.unlocked", Err: fmt.Errorf("locked and unlocked glyphs must differ")}
	}

	if strings.TrimSpace(c.Menu.CloseLabel) == "" {
		return &ValidationError{Path: "menu.close_label", Err: fmt.Errorf("close_label is required")}
	}
	if !isLatin1(c.Menu.CloseLabel) {
		return &ValidationError{Path: "menu.close_label", Err: fmt.Errorf("close_label contains characters outside Latin-1")}
	}

	if len(c.Fonts) == 0 {
		return &ValidationError{Path: "fonts", Err: fmt.Errorf("fonts must not be empty")}
	}
	for _, f := range c.Fonts {
		if strings.TrimSpace(f) == "" {
			return &ValidationError{Path: "fonts", Err: fmt.Errorf("fonts contains an empty name")}
		}
	}
	return nil
}

// isLatin1 reports whether s can be drawn with 8-bit core X fonts.
func isLatin1(s string) bool {
	for _, r := range s {
		if r > 0xff {
			return false
		}
	}
	return true
}
