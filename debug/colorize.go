package debug

import "image/color"

// MaxDepth bounds how deep Colorize descends into a part tree. Well formed
// compound bodies are one level deep.
const MaxDepth = 5

// Node is a body or a body part that can be styled.
type Node interface {
	IsStatic() bool
	IsSensor() bool
	IsSleeping() bool
	Style() *Style
	Children() []Node
}

// Colorizer assigns debug styles from body state.
type Colorizer struct {
	palette Palette
}

func NewColorizer(p Palette) *Colorizer {
	return &Colorizer{palette: p}
}

// Palette returns the colorizer configuration.
func (c *Colorizer) Palette() Palette {
	if c == nil {
		return DefaultPalette()
	}
	return c.palette
}

// inherited carries the parent's computed colors down to its parts.
type inherited struct {
	fill   color.NRGBA
	stroke color.NRGBA
}

// Colorize styles n and every part below it with one color scheme.
func (c *Colorizer) Colorize(n Node) {
	if c == nil || n == nil {
		return
	}
	c.colorize(n, 0, nil)
}

// BaseColor picks the state color: static, then sensor, then sleeping,
// then dynamic.
func (c *Colorizer) BaseColor(n Node) color.NRGBA {
	switch {
	case n.IsStatic():
		return c.palette.Static
	case n.IsSensor():
		return c.palette.Sensor
	case n.IsSleeping():
		return c.palette.Sleeping
	default:
		return c.palette.Dynamic
	}
}

func (c *Colorizer) colorize(n Node, depth int, parent *inherited) {
	if n == nil || depth > MaxDepth {
		return
	}
	style := n.Style()
	if style == nil {
		return
	}

	base := c.BaseColor(n)

	var fill color.NRGBA
	switch {
	case parent != nil:
		fill = parent.fill
	case c.palette.FillShapes:
		fill = WithAlpha(base, c.palette.FillOpacity)
	default:
		fill = Transparent
	}
	// sleeping dynamic nodes get a solid fill so rest state stands out
	if n.IsSleeping() && !n.IsStatic() && !n.IsSensor() {
		fill = WithAlpha(c.palette.Dynamic, 1)
	}

	stroke := base
	if parent != nil {
		stroke = parent.stroke
	}

	style.Fill = fill
	style.Stroke = stroke
	style.LineWidth = c.palette.LineWidth
	style.Opacity = c.opacity()

	next := &inherited{fill: fill, stroke: stroke}
	for _, child := range n.Children() {
		c.colorize(child, depth+1, next)
	}
}

func (c *Colorizer) opacity() float64 {
	o := c.palette.Opacity
	if o <= 0 || o > 1 {
		return 1
	}
	return o
}
