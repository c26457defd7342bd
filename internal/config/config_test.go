package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, data string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestDefaultConfig_Validates(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	layout, err := cfg.KeyLayout()
	if err != nil {
		t.Fatalf("default layout: %v", err)
	}
	if got := layout.Len(); got != 26 {
		t.Fatalf("expected 26 default keys, got %d", got)
	}
}

func TestDefaultConfig_Palette(t *testing.T) {
	p := DefaultConfig().Palette()
	if p.Active != 0xffff00 {
		t.Fatalf("expected active yellow, got %#06x", p.Active)
	}
	if p.Idle != 0xd3d3d3 {
		t.Fatalf("expected idle lightgray, got %#06x", p.Idle)
	}
	if p.Transparent != 0xff00ff {
		t.Fatalf("expected transparent magenta, got %#06x", p.Transparent)
	}
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	res, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.File != "" {
		t.Fatalf("expected no file, got %q", res.File)
	}
	if res.Config.Geometry.KeyWidth != DefaultConfig().Geometry.KeyWidth {
		t.Fatalf("expected default key width")
	}
}

func TestLoadFromPath_EmptyFileUsesDefaults(t *testing.T) {
	path := writeConfig(t, "# empty\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.LogLevel != "info" {
		t.Fatalf("expected log_level info, got %q", res.Config.LogLevel)
	}
	if res.File != path {
		t.Fatalf("expected file %q, got %q", path, res.File)
	}
}

func TestLoadFromPath_OverridesMergeOverDefaults(t *testing.T) {
	path := writeConfig(t, strings.Join([]string{
		"log_level: debug",
		"layout:",
		"  rows: [abc, def]",
		"geometry:",
		"  key_width: 50",
		"colors:",
		"  active: \"#ff8800\"",
		"menu:",
		"  close_label: Quit",
		"",
	}, "\n"))

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := res.Config
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected debug, got %q", cfg.LogLevel)
	}
	if got := strings.Join(cfg.Layout.Rows, ","); got != "abc,def" {
		t.Fatalf("expected rows abc,def, got %q", got)
	}
	if cfg.Geometry.KeyWidth != 50 {
		t.Fatalf("expected key_width 50, got %d", cfg.Geometry.KeyWidth)
	}
	if cfg.Geometry.KeyHeight != DefaultConfig().Geometry.KeyHeight {
		t.Fatalf("expected default key_height to survive, got %d", cfg.Geometry.KeyHeight)
	}
	if cfg.Palette().Active != 0xff8800 {
		t.Fatalf("expected active #ff8800, got %#06x", cfg.Palette().Active)
	}
	if cfg.Colors.Idle != "lightgray" {
		t.Fatalf("expected default idle color, got %q", cfg.Colors.Idle)
	}
	if cfg.Menu.CloseLabel != "Quit" {
		t.Fatalf("expected Quit, got %q", cfg.Menu.CloseLabel)
	}
}

func TestLoad_ReadsFromHomeConfigDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".config", "keyviz")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("log_level: warn\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	res, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.File != path {
		t.Fatalf("expected file %q, got %q", path, res.File)
	}
	if res.Config.LogLevel != "warn" {
		t.Fatalf("expected warn, got %q", res.Config.LogLevel)
	}
	if src := res.Sources["log_level"]; src.Kind != SourceFile || src.Line != 1 {
		t.Fatalf("expected log_level sourced from file line 1, got %+v", src)
	}
}

func TestLoadFromPath_UnknownFieldRejected(t *testing.T) {
	path := writeConfig(t, "hotkey: Mod4-t\n")
	if _, err := LoadFromPath(path); err == nil {
		t.Fatalf("expected unknown field to fail")
	}
}

func TestLoadFromPath_ValidationErrorCarriesSource(t *testing.T) {
	path := writeConfig(t, strings.Join([]string{
		"geometry:",
		"  key_width: 0",
		"",
	}, "\n"))

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
	if verr.Path != "geometry.key_width" {
		t.Fatalf("expected path geometry.key_width, got %q", verr.Path)
	}
	if verr.Source.Line != 2 {
		t.Fatalf("expected line 2, got %d", verr.Source.Line)
	}
	if !strings.Contains(err.Error(), path+":2:") {
		t.Fatalf("expected file position in error, got %q", err.Error())
	}
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		path   string
	}{
		{"log level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
		{"empty layout", func(c *Config) { c.Layout.Rows = nil }, "layout.rows"},
		{"duplicate key", func(c *Config) { c.Layout.Rows = []string{"ab", "Ba"} }, "layout.rows"},
		{"non latin1 key", func(c *Config) { c.Layout.Rows = []string{"aж"} }, "layout.rows"},
		{"negative padding", func(c *Config) { c.Geometry.Padding = -1 }, "geometry.padding"},
		{"zero control", func(c *Config) { c.Geometry.ControlSize = 0 }, "geometry.control_size"},
		{"bad color", func(c *Config) { c.Colors.Active = "sunset" }, "colors.active"},
		{"long glyph", func(c *Config) { c.Glyphs.Handle = "====" }, "glyphs.handle"},
		{"same lock glyphs", func(c *Config) { c.Glyphs.Unlocked = c.Glyphs.Locked }, "glyphs.unlocked"},
		{"blank close label", func(c *Config) { c.Menu.CloseLabel = "  " }, "menu.close_label"},
		{"no fonts", func(c *Config) { c.Fonts = nil }, "fonts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Path != tt.path {
				t.Fatalf("expected path %q, got %q (%v)", tt.path, verr.Path, err)
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want uint32
		ok   bool
	}{
		{"yellow", 0xffff00, true},
		{"LightGray", 0xd3d3d3, true},
		{"#102030", 0x102030, true},
		{"#abc", 0xaabbcc, true},
		{" #FFFFFF ", 0xffffff, true},
		{"", 0, false},
		{"#12345", 0, false},
		{"#zzzzzz", 0, false},
		{"chartreuse", 0, false},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if tt.ok && err != nil {
			t.Errorf("ParseColor(%q): unexpected error %v", tt.in, err)
			continue
		}
		if !tt.ok {
			if err == nil {
				t.Errorf("ParseColor(%q): expected error", tt.in)
			}
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %#06x, want %#06x", tt.in, got, tt.want)
		}
	}
}

func TestExplain_FileAndDefaultSources(t *testing.T) {
	path := writeConfig(t, "colors:\n  active: orange\n")
	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	val, src, err := Explain(res, "colors.active")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if val != "orange" {
		t.Fatalf("expected orange, got %v", val)
	}
	if src.Kind != SourceFile || src.File != path || src.Line != 2 {
		t.Fatalf("unexpected source %+v", src)
	}

	val, src, err = Explain(res, "geometry.key_width")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if val != 40 {
		t.Fatalf("expected 40, got %v", val)
	}
	if src.Kind != SourceDefault {
		t.Fatalf("expected default source, got %+v", src)
	}

	if _, _, err := Explain(res, "hotkey"); err == nil {
		t.Fatalf("expected unknown path error")
	}
}

func TestExplainPaths_Sorted(t *testing.T) {
	paths := ExplainPaths()
	for i := 1; i < len(paths); i++ {
		if paths[i-1] > paths[i] {
			t.Fatalf("paths not sorted: %q before %q", paths[i-1], paths[i])
		}
	}
}
