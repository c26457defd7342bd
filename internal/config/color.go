package config

import (
	"fmt"
	"strconv"
	"strings"
)

// namedColors covers the X11 color names the overlay ships with. Anything
// else must be written as #rrggbb.
var namedColors = map[string]uint32{
	"black":     0x000000,
	"white":     0xffffff,
	"gray":      0xbebebe,
	"grey":      0xbebebe,
	"lightgray": 0xd3d3d3,
	"lightgrey": 0xd3d3d3,
	"darkgray":  0xa9a9a9,
	"darkgrey":  0xa9a9a9,
	"yellow":    0xffff00,
	"magenta":   0xff00ff,
	"red":       0xff0000,
	"green":     0x00ff00,
	"blue":      0x0000ff,
	"orange":    0xffa500,
	"cyan":      0x00ffff,
}

// ParseColor converts "#rrggbb", "#rgb", or a known color name into a
// 24-bit TrueColor pixel value.
func ParseColor(spec string) (uint32, error) {
	s := strings.ToLower(strings.TrimSpace(spec))
	if s == "" {
		return 0, fmt.Errorf("color is empty")
	}
	if px, ok := namedColors[s]; ok {
		return px, nil
	}
	if !strings.HasPrefix(s, "#") {
		return 0, fmt.Errorf("unknown color %q (use #rrggbb)", spec)
	}

	hex := s[1:]
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6:
	default:
		return 0, fmt.Errorf("invalid color %q (use #rrggbb)", spec)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid color %q: %w", spec, err)
	}
	return uint32(v), nil
}
