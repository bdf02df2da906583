package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/spritesync/debug"
)

// Part is one constituent of a body. Geometry is stored in the owning
// body's local frame, so parts move only with their body.
type Part struct {
	Label string

	owner  *Body
	shape  *cp.Shape
	verts  []cp.Vector
	center cp.Vector
	radius float64
	sensor bool
	style  debug.Style
	parts  []*Part
}

// NewGroupPart returns a geometry-less part that only groups children.
func NewGroupPart(label string, children ...*Part) *Part {
	p := &Part{Label: label}
	for _, c := range children {
		p.Add(c)
	}
	return p
}

// Add appends child below p and adopts it into p's body.
func (p *Part) Add(child *Part) {
	if p == nil || child == nil {
		return
	}
	child.adopt(p.owner)
	p.parts = append(p.parts, child)
}

func (p *Part) adopt(owner *Body) {
	p.owner = owner
	for _, c := range p.parts {
		if c != nil && c.owner != owner {
			c.adopt(owner)
		}
	}
}

func (p *Part) Owner() *Body {
	return p.owner
}

func (p *Part) Shape() *cp.Shape {
	return p.shape
}

func (p *Part) Parts() []*Part {
	return p.parts
}

func (p *Part) IsCircle() bool {
	return p.radius > 0 && len(p.verts) == 0
}

func (p *Part) Radius() float64 {
	return p.radius
}

func (p *Part) hasGeometry() bool {
	return len(p.verts) > 0 || p.radius > 0
}

// Position returns the world-space centroid of the part.
func (p *Part) Position() cp.Vector {
	if p.owner == nil || p.owner.body == nil {
		return p.center
	}
	return p.owner.body.LocalToWorld(p.center)
}

// WorldVertices returns the polygon vertices in world space, nil for circles.
func (p *Part) WorldVertices() []cp.Vector {
	if len(p.verts) == 0 {
		return nil
	}
	out := make([]cp.Vector, len(p.verts))
	for i, v := range p.verts {
		if p.owner == nil || p.owner.body == nil {
			out[i] = v
			continue
		}
		out[i] = p.owner.body.LocalToWorld(v)
	}
	return out
}

// Bounds returns the world-space bounding box of the part's own geometry.
func (p *Part) Bounds() cp.BB {
	if p.IsCircle() {
		return cp.NewBBForCircle(p.Position(), p.radius)
	}
	verts := p.WorldVertices()
	if len(verts) == 0 {
		c := p.Position()
		return cp.BB{L: c.X, B: c.Y, R: c.X, T: c.Y}
	}
	bb := cp.BB{L: verts[0].X, B: verts[0].Y, R: verts[0].X, T: verts[0].Y}
	for _, v := range verts[1:] {
		bb = bb.Merge(cp.BB{L: v.X, B: v.Y, R: v.X, T: v.Y})
	}
	return bb
}

func (p *Part) IsStatic() bool {
	return p.owner.IsStatic()
}

func (p *Part) IsSensor() bool {
	return p.sensor
}

func (p *Part) IsSleeping() bool {
	return p.owner.IsSleeping()
}

func (p *Part) Style() *debug.Style {
	return &p.style
}

func (p *Part) Children() []debug.Node {
	out := make([]debug.Node, 0, len(p.parts))
	for _, c := range p.parts {
		out = append(out, c)
	}
	return out
}

// PartOf returns the Part a Chipmunk shape was built for, if any.
func PartOf(shape *cp.Shape) (*Part, bool) {
	if shape == nil {
		return nil, false
	}
	p, ok := shape.UserData.(*Part)
	return p, ok
}
