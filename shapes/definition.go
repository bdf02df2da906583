package shapes

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/spritesync/physics"
)

// Point is one vertex of a fixture outline.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type CircleDef struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
}

type PolygonDef struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
	Sides  int     `json:"sides"`
}

// FixtureDef is one fixture as written by the shape editor.
type FixtureDef struct {
	Label    string      `json:"label"`
	IsSensor bool        `json:"isSensor"`
	Circle   *CircleDef  `json:"circle,omitempty"`
	Polygon  *PolygonDef `json:"polygon,omitempty"`
	Vertices [][]Point   `json:"vertices,omitempty"`
}

// CollisionFilter follows the editor's group semantics: a negative group
// means members never collide with each other.
type CollisionFilter struct {
	Group    int     `json:"group"`
	Category *uint32 `json:"category,omitempty"`
	Mask     *uint32 `json:"mask,omitempty"`
}

// Definition is a named body template.
type Definition struct {
	Type            string           `json:"type"`
	Label           string           `json:"label"`
	IsStatic        bool             `json:"isStatic"`
	Density         float64          `json:"density"`
	Restitution     float64          `json:"restitution"`
	Friction        *float64         `json:"friction,omitempty"`
	FrictionAir     float64          `json:"frictionAir"`
	FrictionStatic  float64          `json:"frictionStatic"`
	CollisionFilter *CollisionFilter `json:"collisionFilter,omitempty"`
	Fixtures        []FixtureDef     `json:"fixtures"`
}

// Fixtures converts the definition's fixtures in order. Fixture kinds are
// not validated here; the body builder skips what it cannot build.
func (d *Definition) Fixtures() []physics.Fixture {
	if d == nil {
		return nil
	}
	out := make([]physics.Fixture, 0, len(d.Fixtures))
	for _, fd := range d.Fixtures {
		f := physics.Fixture{Label: fd.Label, IsSensor: fd.IsSensor}
		if fd.Circle != nil {
			f.Circle = &physics.CircleSpec{X: fd.Circle.X, Y: fd.Circle.Y, Radius: fd.Circle.Radius}
		}
		if fd.Polygon != nil {
			f.Polygon = &physics.PolygonSpec{
				X:      fd.Polygon.X,
				Y:      fd.Polygon.Y,
				Radius: fd.Polygon.Radius,
				Sides:  fd.Polygon.Sides,
			}
		}
		for _, set := range fd.Vertices {
			verts := make([]cp.Vector, len(set))
			for i, p := range set {
				verts[i] = cp.Vector{X: p.X, Y: p.Y}
			}
			f.Vertices = append(f.Vertices, verts)
		}
		out = append(out, f)
	}
	return out
}

// Material maps the definition's physical properties onto a physics
// material. Unset density and friction keep the physics defaults.
func (d *Definition) Material() physics.Material {
	m := physics.DefaultMaterial()
	if d == nil {
		return m
	}
	if d.Density > 0 {
		m.Density = d.Density
	}
	if d.Friction != nil {
		m.Friction = *d.Friction
	}
	m.Restitution = d.Restitution
	m.AirFriction = d.FrictionAir
	m.Static = d.IsStatic
	if cf := d.CollisionFilter; cf != nil {
		if cf.Group < 0 {
			m.Filter.Group = uint(-cf.Group)
		}
		if cf.Category != nil {
			m.Filter.Category = uint(*cf.Category)
		}
		if cf.Mask != nil {
			m.Filter.Mask = uint(*cf.Mask)
		}
	}
	return m
}
