package config

import "fmt"

// ValidationError ties a config problem to the YAML path that caused it
// and, when known, the file position of that value.
type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// BuildEffectiveConfig layers raw file values over the defaults.
func BuildEffectiveConfig(raw RawConfig) *Config {
	cfg := DefaultConfig()

	setString(&cfg.LogLevel, raw.LogLevel)
	setString(&cfg.Display, raw.Display)

	if raw.Layout != nil && raw.Layout.Rows != nil {
		cfg.Layout.Rows = append([]string(nil), raw.Layout.Rows...)
	}

	if g := raw.Geometry; g != nil {
		setInt(&cfg.Geometry.KeyWidth, g.KeyWidth)
		setInt(&cfg.Geometry.KeyHeight, g.KeyHeight)
		setInt(&cfg.Geometry.Padding, g.Padding)
		setInt(&cfg.Geometry.ControlSize, g.ControlSize)
		setInt(&cfg.Geometry.OriginX, g.OriginX)
		setInt(&cfg.Geometry.OriginY, g.OriginY)
	}

	if c := raw.Colors; c != nil {
		setString(&cfg.Colors.Idle, c.Idle)
		setString(&cfg.Colors.Active, c.Active)
		setString(&cfg.Colors.Text, c.Text)
		setString(&cfg.Colors.Transparent, c.Transparent)
		setString(&cfg.Colors.Control, c.Control)
		setString(&cfg.Colors.ControlText, c.ControlText)
		setString(&cfg.Colors.Menu, c.Menu)
		setString(&cfg.Colors.MenuText, c.MenuText)
	}

	if gl := raw.Glyphs; gl != nil {
		setString(&cfg.Glyphs.Handle, gl.Handle)
		setString(&cfg.Glyphs.Locked, gl.Locked)
		setString(&cfg.Glyphs.Unlocked, gl.Unlocked)
	}

	if m := raw.Menu; m != nil {
		setString(&cfg.Menu.CloseLabel, m.CloseLabel)
	}

	if raw.Fonts != nil {
		cfg.Fonts = append([]string(nil), raw.Fonts...)
	}

	return cfg
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
