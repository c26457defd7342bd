package config

import (
	"fmt"
	"sort"
)

var explainPaths = map[string]func(*Config) any{
	"log_level":             func(c *Config) any { return c.LogLevel },
	"display":               func(c *Config) any { return c.Display },
	"layout.rows":           func(c *Config) any { return c.Layout.Rows },
	"geometry.key_width":    func(c *Config) any { return c.Geometry.KeyWidth },
	"geometry.key_height":   func(c *Config) any { return c.Geometry.KeyHeight },
	"geometry.padding":      func(c *Config) any { return c.Geometry.Padding },
	"geometry.control_size": func(c *Config) any { return c.Geometry.ControlSize },
	"geometry.origin_x":     func(c *Config) any { return c.Geometry.OriginX },
	"geometry.origin_y":     func(c *Config) any { return c.Geometry.OriginY },
	"colors.idle":           func(c *Config) any { return c.Colors.Idle },
	"colors.active":         func(c *Config) any { return c.Colors.Active },
	"colors.text":           func(c *Config) any { return c.Colors.Text },
	"colors.transparent":    func(c *Config) any { return c.Colors.Transparent },
	"colors.control":        func(c *Config) any { return c.Colors.Control },
	"colors.control_text":   func(c *Config) any { return c.Colors.ControlText },
	"colors.menu":           func(c *Config) any { return c.Colors.Menu },
	"colors.menu_text":      func(c *Config) any { return c.Colors.MenuText },
	"glyphs.handle":         func(c *Config) any { return c.Glyphs.Handle },
	"glyphs.locked":         func(c *Config) any { return c.Glyphs.Locked },
	"glyphs.unlocked":       func(c *Config) any { return c.Glyphs.Unlocked },
	"menu.close_label":      func(c *Config) any { return c.Menu.CloseLabel },
	"fonts":                 func(c *Config) any { return c.Fonts },
}

// ExplainPaths lists every path accepted by Explain, sorted.
func ExplainPaths() []string {
	out := make([]string, 0, len(explainPaths))
	for p := range explainPaths {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Explain returns the effective value at the given YAML path and where it
// came from.
func Explain(res *LoadResult, path string) (any, Source, error) {
	if res == nil || res.Config == nil {
		return nil, Source{}, fmt.Errorf("no config loaded")
	}
	if path == "" {
		return nil, Source{}, fmt.Errorf("path is empty")
	}

	get, ok := explainPaths[path]
	if !ok {
		return nil, Source{}, fmt.Errorf("unknown path: %s", path)
	}
	value := get(res.Config)

	if src, ok := res.Sources[path]; ok {
		return value, src, nil
	}
	return value, Source{Kind: SourceDefault}, nil
}
