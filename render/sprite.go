// Package render draws sprites that follow physics bodies.
package render

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/spritesync/physics"
)

// Sprite is an image positioned in render space, where Y grows upward.
// Its origin is the image center, which is where the body's bounds center
// lands after synchronization.
type Sprite struct {
	body  *physics.Body
	Image *ebiten.Image

	OriginX float64
	OriginY float64
	Hidden  bool

	x, y     float64
	rotation float64
}

func NewSprite(body *physics.Body, img *ebiten.Image) *Sprite {
	s := &Sprite{body: body, Image: img}
	if img != nil {
		b := img.Bounds()
		s.OriginX = float64(b.Dx()) / 2
		s.OriginY = float64(b.Dy()) / 2
	}
	return s
}

// NewShapeSprite paints the body's parts into an image the size of its
// bounds. The body should be unrotated.
func NewShapeSprite(body *physics.Body, fill color.NRGBA) *Sprite {
	return NewSprite(body, ShapeImage(body, fill))
}

func (s *Sprite) Body() *physics.Body { return s.body }

func (s *Sprite) SetPosition(x, y float64) {
	s.x, s.y = x, y
}

func (s *Sprite) SetRotation(radians float64) {
	s.rotation = radians
}

func (s *Sprite) Position() (float64, float64) {
	return s.x, s.y
}

func (s *Sprite) Rotation() float64 {
	return s.rotation
}

// Draw maps the sprite from render space onto a screen viewHeight pixels
// tall.
func (s *Sprite) Draw(screen *ebiten.Image, viewHeight float64) {
	if s == nil || s.Hidden || s.Image == nil || screen == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-s.OriginX, -s.OriginY)
	op.GeoM.Rotate(-s.rotation)
	op.GeoM.Translate(s.x, viewHeight-s.y)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(s.Image, op)
}

// ShapeImage rasterizes the outline of every part of body, relative to the
// top-left corner of its bounds.
func ShapeImage(body *physics.Body, fill color.NRGBA) *ebiten.Image {
	bb := body.Bounds()
	w := int(math.Ceil(bb.R - bb.L))
	h := int(math.Ceil(bb.T - bb.B))
	img := ebiten.NewImage(max(w, 1), max(h, 1))

	local := func(v cp.Vector) (float32, float32) {
		return float32(v.X - bb.L), float32(v.Y - bb.B)
	}

	op := &vector.DrawPathOptions{AntiAlias: true}
	op.ColorScale.ScaleWithColor(fill)
	for _, part := range body.Parts() {
		if part.Shape() == nil || part.IsSensor() {
			continue
		}
		var p vector.Path
		if part.IsCircle() {
			x, y := local(part.Position())
			p.Arc(x, y, float32(part.Radius()), 0, 2*math.Pi, vector.Clockwise)
		} else {
			verts := part.WorldVertices()
			if len(verts) < 3 {
				continue
			}
			p.MoveTo(local(verts[0]))
			for _, v := range verts[1:] {
				p.LineTo(local(v))
			}
		}
		p.Close()
		vector.FillPath(img, &p, &vector.FillOptions{}, op)
	}
	return img
}
