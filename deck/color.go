package deck

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is a 24-bit RGB color.
type Color struct {
	R, G, B uint8
}

// Common colors.
var (
	White = Color{255, 255, 255}
	Black = Color{0, 0, 0}
)

// RGB builds a Color from its components.
func RGB(r, g, b uint8) Color { return Color{R: r, G: g, B: b} }

// ParseColor parses "RRGGBB" or "#RRGGBB".
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("invalid color %q: want 6 hex digits", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// MustColor is ParseColor for literals; it panics on malformed input.
func MustColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex returns the color as upper-case "RRGGBB".
func (c Color) Hex() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

func (c Color) String() string { return "#" + c.Hex() }
