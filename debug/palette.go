package debug

import "image/color"

// Palette configures one debug overlay. Several overlays can run side by
// side with different palettes.
type Palette struct {
	Static   color.NRGBA
	Sensor   color.NRGBA
	Sleeping color.NRGBA
	Dynamic  color.NRGBA

	// FillShapes paints a translucent fill in the base color; otherwise
	// shapes are outlines only.
	FillShapes  bool
	FillOpacity float64
	LineWidth   float64

	// Opacity fades the whole overlay, fill and stroke alike. Zero means
	// fully opaque.
	Opacity float64
}

func DefaultPalette() Palette {
	return Palette{
		Static:      color.NRGBA{R: 0x13, G: 0x27, B: 0xe4, A: 0xff},
		Sensor:      color.NRGBA{R: 0xe8, G: 0xd2, B: 0x1d, A: 0xff},
		Sleeping:    color.NRGBA{R: 0x99, G: 0x9a, B: 0x99, A: 0xff},
		Dynamic:     color.NRGBA{R: 0x28, G: 0xde, B: 0x19, A: 0xff},
		FillShapes:  true,
		FillOpacity: 0.25,
		LineWidth:   1,
		Opacity:     1,
	}
}
