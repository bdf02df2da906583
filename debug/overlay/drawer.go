package overlay

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/spritesync/debug"
	"github.com/milk9111/spritesync/physics"
)

var (
	constraintColor = color.NRGBA{R: 0xff, G: 0x80, B: 0x1a, A: 0xe6}
	contactColor    = color.NRGBA{R: 0xff, G: 0x33, B: 0x33, A: 0xe6}
	unstyledColor   = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// drawer implements cp.Drawer. cp asks for ShapeColor right before drawing
// each shape, so that is where the part's style is picked up.
type drawer struct {
	dst       *ebiten.Image
	shiftY    float64
	lineWidth float64

	style debug.Style
}

func (d *drawer) point(v cp.Vector) (float32, float32) {
	return float32(v.X), float32(v.Y + d.shiftY)
}

func (d *drawer) paint(p *vector.Path, fill, stroke color.NRGBA, width float64) {
	alpha := float32(1)
	if d.style.Opacity > 0 && d.style.Opacity < 1 {
		alpha = float32(d.style.Opacity)
	}
	if fill.A > 0 {
		op := &vector.DrawPathOptions{AntiAlias: true}
		op.ColorScale.ScaleWithColor(fill)
		op.ColorScale.ScaleAlpha(alpha)
		vector.FillPath(d.dst, p, &vector.FillOptions{}, op)
	}
	if stroke.A > 0 && width > 0 {
		op := &vector.DrawPathOptions{AntiAlias: true}
		op.ColorScale.ScaleWithColor(stroke)
		op.ColorScale.ScaleAlpha(alpha)
		vector.StrokePath(d.dst, p, &vector.StrokeOptions{Width: float32(width)}, op)
	}
}

func (d *drawer) width() float64 {
	if d.style.LineWidth > 0 {
		return d.style.LineWidth
	}
	return d.lineWidth
}

func (d *drawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	x, y := d.point(pos)
	var p vector.Path
	p.Arc(x, y, float32(radius), 0, 2*math.Pi, vector.Clockwise)
	p.Close()
	d.paint(&p, d.style.Fill, d.style.Stroke, d.width())

	// radius line shows the body's rotation
	var r vector.Path
	r.MoveTo(x, y)
	r.LineTo(x+float32(math.Cos(angle)*radius), y+float32(math.Sin(angle)*radius))
	d.paint(&r, debug.Transparent, d.style.Stroke, d.width())
}

func (d *drawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.line(a, b, constraintColor, 1)
}

func (d *drawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.line(a, b, d.style.Stroke, math.Max(2*radius, d.width()))
}

func (d *drawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count < 2 {
		return
	}
	var p vector.Path
	p.MoveTo(d.point(verts[0]))
	for _, v := range verts[1:count] {
		p.LineTo(d.point(v))
	}
	p.Close()
	d.paint(&p, d.style.Fill, d.style.Stroke, d.width())
}

func (d *drawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	x, y := d.point(pos)
	var p vector.Path
	p.Arc(x, y, float32(size/2), 0, 2*math.Pi, vector.Clockwise)
	p.Close()
	d.paint(&p, contactColor, debug.Transparent, 0)
}

func (d *drawer) line(a, b cp.Vector, c color.NRGBA, width float64) {
	var p vector.Path
	p.MoveTo(d.point(a))
	p.LineTo(d.point(b))
	d.paint(&p, debug.Transparent, c, width)
}

func (d *drawer) Flags() uint {
	return cp.DRAW_SHAPES | cp.DRAW_CONSTRAINTS
}

func (d *drawer) OutlineColor() cp.FColor {
	return toFColor(unstyledColor)
}

// ShapeColor loads the style of the part that owns shape. Shapes created
// outside the physics package are drawn as plain white outlines.
func (d *drawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	d.style = debug.Style{Stroke: unstyledColor, LineWidth: d.lineWidth, Opacity: 1}
	if part, ok := physics.PartOf(shape); ok {
		if s := part.Style(); s != nil && s.Stroke.A > 0 {
			d.style = *s
		}
	}
	return toFColor(d.style.Fill)
}

func (d *drawer) ConstraintColor() cp.FColor {
	d.style = debug.Style{Stroke: constraintColor, LineWidth: 1, Opacity: 1}
	return toFColor(constraintColor)
}

func (d *drawer) CollisionPointColor() cp.FColor {
	return toFColor(contactColor)
}

func (d *drawer) Data() interface{} {
	return nil
}

func toFColor(c color.NRGBA) cp.FColor {
	return cp.FColor{
		R: float32(c.R) / 255,
		G: float32(c.G) / 255,
		B: float32(c.B) / 255,
		A: float32(c.A) / 255,
	}
}
