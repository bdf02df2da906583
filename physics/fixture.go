package physics

import "github.com/jakecoffman/cp"

// FixtureKind tags which geometry a Fixture carries.
type FixtureKind int

const (
	KindUnknown FixtureKind = iota
	KindVertices
	KindCircle
	KindPolygon
)

func (k FixtureKind) String() string {
	switch k {
	case KindVertices:
		return "vertices"
	case KindCircle:
		return "circle"
	case KindPolygon:
		return "polygon"
	default:
		return "unknown"
	}
}

// CircleSpec is a circle centered at (X, Y) relative to the build origin.
type CircleSpec struct {
	X      float64
	Y      float64
	Radius float64
}

// PolygonSpec describes a regular polygon. It is informational only and is
// never used to rebuild geometry.
type PolygonSpec struct {
	X      float64
	Y      float64
	Radius float64
	Sides  int
}

// Fixture describes one part of a body to build. Exactly one of Vertices
// or Circle should be set; Polygon may accompany either.
type Fixture struct {
	Label    string
	IsSensor bool
	Vertices [][]cp.Vector
	Circle   *CircleSpec
	Polygon  *PolygonSpec
}

// Kind reports the populated geometry. Polygon is informational, so it
// only counts when neither vertices nor a circle are set. Vertices and a
// circle together are KindUnknown.
func (f Fixture) Kind() FixtureKind {
	hasVerts, hasCircle := len(f.Vertices) > 0, f.Circle != nil
	switch {
	case hasVerts && hasCircle:
		return KindUnknown
	case hasVerts:
		return KindVertices
	case hasCircle:
		return KindCircle
	case f.Polygon != nil:
		return KindPolygon
	default:
		return KindUnknown
	}
}

// VertexFixture is shorthand for a vertex-set fixture.
func VertexFixture(label string, sets ...[]cp.Vector) Fixture {
	return Fixture{Label: label, Vertices: sets}
}

// CircleFixture is shorthand for a circle fixture.
func CircleFixture(label string, x, y, radius float64) Fixture {
	return Fixture{Label: label, Circle: &CircleSpec{X: x, Y: y, Radius: radius}}
}
