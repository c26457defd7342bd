package config

// RawConfig mirrors Config with optional fields so that a value explicitly
// written in the file can be told apart from one that was left out.
type RawConfig struct {
	LogLevel *string          `yaml:"log_level"`
	Display  *string          `yaml:"display"`
	Layout   *RawLayoutConfig `yaml:"layout"`
	Geometry *RawGeometry     `yaml:"geometry"`
	Colors   *RawColors       `yaml:"colors"`
	Glyphs   *RawGlyphs       `yaml:"glyphs"`
	Menu     *RawMenuConfig   `yaml:"menu"`
	Fonts    []string         `yaml:"fonts"`
}

type RawLayoutConfig struct {
	Rows []string `yaml:"rows"`
}

type RawGeometry struct {
	KeyWidth    *int `yaml:"key_width"`
	KeyHeight   *int `yaml:"key_height"`
	Padding     *int `yaml:"padding"`
	ControlSize *int `yaml:"control_size"`
	OriginX     *int `yaml:"origin_x"`
	OriginY     *int `yaml:"origin_y"`
}

type RawColors struct {
	Idle        *string `yaml:"idle"`
	Active      *string `yaml:"active"`
	Text        *string `yaml:"text"`
	Transparent *string `yaml:"transparent"`
	Control     *string `yaml:"control"`
	ControlText *string `yaml:"control_text"`
	Menu        *string `yaml:"menu"`
	MenuText    *string `yaml:"menu_text"`
}

type RawGlyphs struct {
	Handle   *string `yaml:"handle"`
	Locked   *string `yaml:"locked"`
	Unlocked *string `yaml:"unlocked"`
}

type RawMenuConfig struct {
	CloseLabel *string `yaml:"close_label"`
}
