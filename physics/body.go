package physics

import (
	"strconv"
	"sync/atomic"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/spritesync/debug"
)

// BodyID identifies a body for the lifetime of the process.
type BodyID uint64

func (id BodyID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

var nextBodyID atomic.Uint64

// Body is a possibly compound rigid body. Its position is the center of
// mass: the cp center of gravity is kept at the body-local origin and all
// part geometry is expressed relative to it.
type Body struct {
	id     BodyID
	label  string
	body   *cp.Body
	parts  []*Part
	static bool
	style  debug.Style
}

func newBody(label string, cpBody *cp.Body, static bool) *Body {
	b := &Body{
		id:     BodyID(nextBodyID.Add(1)),
		label:  label,
		body:   cpBody,
		static: static,
	}
	cpBody.UserData = b
	return b
}

func (b *Body) ID() BodyID {
	if b == nil {
		return 0
	}
	return b.id
}

func (b *Body) Label() string {
	if b == nil {
		return ""
	}
	return b.label
}

// CP returns the underlying Chipmunk body.
func (b *Body) CP() *cp.Body {
	if b == nil {
		return nil
	}
	return b.body
}

// Parts returns the top-level parts in construction order.
func (b *Body) Parts() []*Part {
	if b == nil {
		return nil
	}
	return b.parts
}

// Position returns the world-space center of mass.
func (b *Body) Position() cp.Vector {
	if b == nil || b.body == nil {
		return cp.Vector{}
	}
	return b.body.Position()
}

// SetPosition moves the body, and every part with it, so its center of
// mass sits at p.
func (b *Body) SetPosition(p cp.Vector) {
	if b == nil || b.body == nil {
		return
	}
	b.body.SetPosition(p)
}

func (b *Body) Angle() float64 {
	if b == nil || b.body == nil {
		return 0
	}
	return b.body.Angle()
}

func (b *Body) SetAngle(a float64) {
	if b == nil || b.body == nil {
		return
	}
	b.body.SetAngle(a)
}

func (b *Body) Mass() float64 {
	if b == nil || b.body == nil || b.static {
		return 0
	}
	return b.body.Mass()
}

func (b *Body) IsStatic() bool {
	return b != nil && b.static
}

// IsSensor reports whether every part of the body is a sensor.
func (b *Body) IsSensor() bool {
	if b == nil || len(b.parts) == 0 {
		return false
	}
	for _, p := range b.parts {
		if !p.sensor {
			return false
		}
	}
	return true
}

func (b *Body) IsSleeping() bool {
	if b == nil || b.body == nil || b.static {
		return false
	}
	return b.body.IsSleeping()
}

// Style returns the body's own debug style.
func (b *Body) Style() *debug.Style {
	if b == nil {
		return nil
	}
	return &b.style
}

func (b *Body) Children() []debug.Node {
	if b == nil {
		return nil
	}
	out := make([]debug.Node, 0, len(b.parts))
	for _, p := range b.parts {
		out = append(out, p)
	}
	return out
}

// Bounds returns the world-space bounding box of all parts at the body's
// current position and angle.
func (b *Body) Bounds() cp.BB {
	if b == nil {
		return cp.BB{}
	}
	var (
		bb    cp.BB
		found bool
	)
	b.eachPart(func(p *Part) {
		if !p.hasGeometry() {
			return
		}
		pb := p.Bounds()
		if !found {
			bb = pb
			found = true
			return
		}
		bb = bb.Merge(pb)
	})
	if !found {
		pos := b.Position()
		return cp.BB{L: pos.X, B: pos.Y, R: pos.X, T: pos.Y}
	}
	return bb
}

// eachPart walks the part tree depth first with an explicit stack.
func (b *Body) eachPart(fn func(*Part)) {
	stack := make([]*Part, 0, len(b.parts))
	for i := len(b.parts) - 1; i >= 0; i-- {
		stack = append(stack, b.parts[i])
	}
	seen := make(map[*Part]struct{}, len(b.parts))
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if p == nil {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		fn(p)
		for i := len(p.parts) - 1; i >= 0; i-- {
			stack = append(stack, p.parts[i])
		}
	}
}

// Shapes returns every Chipmunk shape owned by the body.
func (b *Body) Shapes() []*cp.Shape {
	if b == nil {
		return nil
	}
	var shapes []*cp.Shape
	b.eachPart(func(p *Part) {
		if p.shape != nil {
			shapes = append(shapes, p.shape)
		}
	})
	return shapes
}

// BodyOf returns the Body that owns a Chipmunk body, if any.
func BodyOf(cpBody *cp.Body) (*Body, bool) {
	if cpBody == nil {
		return nil, false
	}
	b, ok := cpBody.UserData.(*Body)
	return b, ok
}

// Attach appends p as a top-level part. Shapes of parts attached after the
// body joined a World are not simulated.
func (b *Body) Attach(p *Part) {
	if b == nil || p == nil {
		return
	}
	p.adopt(b)
	b.parts = append(b.parts, p)
}
