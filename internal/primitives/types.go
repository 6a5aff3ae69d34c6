package primitives

import (
	"os"
	"strconv"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"
)

// HighlightStyle is the YAML definition for edge highlight cylinders
// (assets/viewer/highlight.yaml). Radius is the cylinder radius in world
// units. MinLength is the edge length below which the up-to-edge rotation
// falls back to identity.
type HighlightStyle struct {
	Radius    float32 `yaml:"radius"`
	Slices    int     `yaml:"slices"`
	Color     string  `yaml:"color"`
	MinLength float32 `yaml:"minLength"`
}

// DefaultHighlightStyle returns thin bright-red highlight cylinders.
func DefaultHighlightStyle() HighlightStyle {
	return HighlightStyle{
		Radius:    0.005,
		Slices:    8,
		Color:     "#ff0000",
		MinLength: 0.001,
	}
}

// LoadHighlightStyle reads a highlight style from a YAML file. A missing or
// invalid file returns the defaults; out-of-range fields are reset to theirs.
func LoadHighlightStyle(path string) HighlightStyle {
	style := DefaultHighlightStyle()
	data, err := os.ReadFile(path)
	if err != nil {
		return style
	}
	if err := yaml.Unmarshal(data, &style); err != nil {
		return DefaultHighlightStyle()
	}
	if style.Radius <= 0 {
		style.Radius = DefaultHighlightStyle().Radius
	}
	if style.Slices < 3 {
		style.Slices = DefaultHighlightStyle().Slices
	}
	if style.MinLength <= 0 {
		style.MinLength = DefaultHighlightStyle().MinLength
	}
	return style
}

// RGBA parses the style color ("#rrggbb" or "rrggbb"). Unparseable colors
// fall back to red.
func (s HighlightStyle) RGBA() rl.Color {
	return ParseHexColor(s.Color, rl.NewColor(255, 0, 0, 255))
}

// ParseHexColor parses an opaque "#rrggbb" (or "rrggbb") color string and
// returns fallback when the string does not parse.
func ParseHexColor(s string, fallback rl.Color) rl.Color {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return fallback
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return fallback
	}
	return rl.NewColor(uint8(v>>16), uint8(v>>8), uint8(v), 255)
}
