package debug

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Style is the render style the debug overlay paints a body or part with.
// It is derived from body state every tick and never persisted.
type Style struct {
	Fill      color.NRGBA
	Stroke    color.NRGBA
	LineWidth float64
	Opacity   float64
}

// Transparent is the fill used when shapes are drawn as outlines only.
var Transparent = color.NRGBA{}

// WithAlpha returns c with its alpha replaced by opacity (0..1).
func WithAlpha(c color.NRGBA, opacity float64) color.NRGBA {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	c.A = uint8(opacity*255 + 0.5)
	return c
}

// Hex renders c as #rrggbb, or #rrggbbaa when it is not fully opaque.
func Hex(c color.NRGBA) string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// ParseHex parses #rrggbb or #rrggbbaa (the leading # is optional).
func ParseHex(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("debug: invalid color format: %s", s)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(hex[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("debug: invalid color %s: %w", s, err)
	}
	g, err := parse(2)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("debug: invalid color %s: %w", s, err)
	}
	b, err := parse(4)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("debug: invalid color %s: %w", s, err)
	}

	a := uint8(0xff)
	if len(hex) == 8 {
		a, err = parse(6)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("debug: invalid color %s: %w", s, err)
		}
	}

	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}
