package physics

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/spritesync/common"
)

const (
	DefaultDensity  = 0.001
	DefaultFriction = 0.1
)

// Filter is a collision filter. Shapes sharing a non-zero Group never
// collide; otherwise two shapes collide when each one's Category is in
// the other's Mask.
type Filter struct {
	Group    uint
	Category uint
	Mask     uint
}

func DefaultFilter() Filter {
	return Filter{Category: 1, Mask: ^uint(0)}
}

func (f Filter) shapeFilter() cp.ShapeFilter {
	return cp.ShapeFilter{Group: f.Group, Categories: f.Category, Mask: f.Mask}
}

// Material holds the physical properties applied to every part of a body.
type Material struct {
	Density     float64
	Friction    float64
	Restitution float64
	// AirFriction is the fraction of velocity lost per 60Hz step, on top of
	// the space damping.
	AirFriction float64
	Filter      Filter
	Static      bool
}

func DefaultMaterial() Material {
	return Material{
		Density:  DefaultDensity,
		Friction: DefaultFriction,
		Filter:   DefaultFilter(),
	}
}

func (m Material) density() float64 {
	if m.Density <= 0 {
		return DefaultDensity
	}
	return m.Density
}

func (m Material) apply(shape *cp.Shape) {
	shape.SetFriction(m.Friction)
	shape.SetElasticity(m.Restitution)
	shape.SetFilter(m.Filter.shapeFilter())
}

// airDrag returns a velocity integrator that bleeds off the fraction f of
// velocity every common.StepDT, independent of the actual step size.
func airDrag(f float64) cp.BodyVelocityFunc {
	keep := 1 - math.Min(math.Max(f, 0), 1)
	return func(body *cp.Body, gravity cp.Vector, damping, dt float64) {
		cp.BodyUpdateVelocity(body, gravity, damping*math.Pow(keep, dt/common.StepDT), dt)
	}
}
