package physics

import (
	"errors"
	"math"

	"github.com/jakecoffman/cp"
	"go.uber.org/zap"
)

var (
	ErrNoFixtures     = errors.New("physics: no recognized fixtures")
	ErrDegenerateBody = errors.New("physics: body has no area")
)

type buildConfig struct {
	material Material
	label    string
	logger   *zap.Logger
}

// BuildOption configures body construction.
type BuildOption func(*buildConfig)

func WithMaterial(m Material) BuildOption {
	return func(c *buildConfig) {
		static := c.material.Static
		c.material = m
		c.material.Static = m.Static || static
	}
}

func WithStatic() BuildOption {
	return func(c *buildConfig) {
		c.material.Static = true
	}
}

func WithLabel(label string) BuildOption {
	return func(c *buildConfig) {
		c.label = label
	}
}

// WithLogger routes construction warnings, such as skipped fixtures, to l.
func WithLogger(l *zap.Logger) BuildOption {
	return func(c *buildConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

func newBuildConfig(opts []BuildOption) *buildConfig {
	c := &buildConfig{
		material: DefaultMaterial(),
		label:    "body",
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// draft is a sub-body in world space before it is merged into a Body.
// verts are relative to position; circles have no verts.
type draft struct {
	label    string
	sensor   bool
	position cp.Vector
	verts    []cp.Vector
	radius   float64
}

func (d *draft) translate(delta cp.Vector) {
	d.position = d.position.Add(delta)
}

func (d *draft) area() float64 {
	if len(d.verts) > 0 {
		return math.Abs(cp.AreaForPoly(len(d.verts), d.verts, 0))
	}
	return cp.AreaForCircle(0, d.radius)
}

// BuildBody builds one body from fixtures placed relative to (x, y). Vertex
// and circle fixtures each yield one or more sub-bodies; unrecognized
// fixtures are skipped with a warning. Several sub-bodies are merged into
// a compound body. The result's center of mass is placed at (x, y).
func BuildBody(x, y float64, fixtures []Fixture, opts ...BuildOption) (*Body, error) {
	cfg := newBuildConfig(opts)

	var drafts []*draft
	for i, f := range fixtures {
		switch f.Kind() {
		case KindVertices:
			drafts = append(drafts, fromVertices(x, y, f.Vertices, f.Label, f.IsSensor, cfg.logger)...)
		case KindCircle:
			if f.Circle.Radius <= 0 {
				cfg.logger.Warn("physics: circle fixture without radius skipped",
					zap.String("body", cfg.label), zap.String("fixture", f.Label), zap.Int("index", i))
				continue
			}
			drafts = append(drafts, &draft{
				label:    f.Label,
				sensor:   f.IsSensor,
				position: cp.Vector{X: x + f.Circle.X, Y: y + f.Circle.Y},
				radius:   f.Circle.Radius,
			})
		default:
			cfg.logger.Warn("physics: fixture shape not recognized",
				zap.String("body", cfg.label), zap.String("fixture", f.Label),
				zap.Int("index", i), zap.Stringer("kind", f.Kind()))
		}
	}

	if len(drafts) == 0 {
		return nil, ErrNoFixtures
	}

	b, err := compose(drafts, cfg)
	if err != nil {
		return nil, err
	}
	b.SetPosition(cp.Vector{X: x, Y: y})
	return b, nil
}

// FromVertices builds a compound body with one polygon part per vertex
// set. Each set keeps its position relative to (x, y), as given by its raw
// coordinates.
func FromVertices(x, y float64, sets [][]cp.Vector, opts ...BuildOption) (*Body, error) {
	cfg := newBuildConfig(opts)
	drafts := fromVertices(x, y, sets, cfg.label, false, cfg.logger)
	if len(drafts) == 0 {
		return nil, ErrNoFixtures
	}
	return compose(drafts, cfg)
}

// fromVertices anchors each polygon at (x, y) with its vertices centred on
// their own centroid, then moves it by that centroid so the polygon lands
// where its raw coordinates put it.
func fromVertices(x, y float64, sets [][]cp.Vector, label string, sensor bool, logger *zap.Logger) []*draft {
	origin := cp.Vector{X: x, Y: y}
	drafts := make([]*draft, 0, len(sets))
	for i, set := range sets {
		if len(set) < 3 {
			logger.Warn("physics: vertex set needs at least 3 points",
				zap.String("fixture", label), zap.Int("set", i), zap.Int("points", len(set)))
			continue
		}
		if !isConvex(set) {
			logger.Warn("physics: concave vertex set simulated as its convex hull",
				zap.String("fixture", label), zap.Int("set", i), zap.Int("points", len(set)))
		}
		centroid := cp.CentroidForPoly(len(set), set)
		local := make([]cp.Vector, len(set))
		for j, v := range set {
			local[j] = v.Sub(centroid)
		}
		d := &draft{label: label, sensor: sensor, position: origin, verts: local}
		d.translate(centroid)
		drafts = append(drafts, d)
	}
	return drafts
}

// Rectangle builds a w x h box centered at (x, y).
func Rectangle(x, y, w, h float64, opts ...BuildOption) (*Body, error) {
	hw, hh := w/2, h/2
	box := []cp.Vector{{X: -hw, Y: -hh}, {X: hw, Y: -hh}, {X: hw, Y: hh}, {X: -hw, Y: hh}}
	return FromVertices(x, y, [][]cp.Vector{box}, opts...)
}

// Circle builds a circle of radius r centered at (x, y).
func Circle(x, y, r float64, opts ...BuildOption) (*Body, error) {
	cfg := newBuildConfig(opts)
	if r <= 0 {
		return nil, ErrDegenerateBody
	}
	return compose([]*draft{{label: cfg.label, position: cp.Vector{X: x, Y: y}, radius: r}}, cfg)
}

// compose merges drafts into one body whose center of mass is the area
// weighted mean of the drafts' centroids. Part geometry is stored relative
// to that center and the body is positioned on it, so nothing moves.
func compose(drafts []*draft, cfg *buildConfig) (*Body, error) {
	var (
		totalArea float64
		com       cp.Vector
	)
	areas := make([]float64, len(drafts))
	for i, d := range drafts {
		areas[i] = d.area()
		totalArea += areas[i]
		com = com.Add(d.position.Mult(areas[i]))
	}
	if totalArea <= 0 {
		return nil, ErrDegenerateBody
	}
	com = com.Mult(1 / totalArea)

	density := cfg.material.density()
	var mass, moment float64
	for i, d := range drafts {
		m := areas[i] * density
		offset := d.position.Sub(com)
		mass += m
		if len(d.verts) > 0 {
			moment += cp.MomentForPoly(m, len(d.verts), d.verts, offset, 0)
		} else {
			moment += cp.MomentForCircle(m, 0, d.radius, offset)
		}
	}

	var cpBody *cp.Body
	if cfg.material.Static {
		cpBody = cp.NewStaticBody()
	} else {
		cpBody = cp.NewBody(mass, moment)
		if cfg.material.AirFriction > 0 {
			cpBody.SetVelocityUpdateFunc(airDrag(cfg.material.AirFriction))
		}
	}
	cpBody.SetPosition(com)

	b := newBody(cfg.label, cpBody, cfg.material.Static)
	b.parts = make([]*Part, 0, len(drafts))
	for _, d := range drafts {
		b.parts = append(b.parts, newPart(b, d, com, cfg.material))
	}
	return b, nil
}

func newPart(owner *Body, d *draft, com cp.Vector, m Material) *Part {
	p := &Part{
		Label:  d.label,
		owner:  owner,
		center: d.position.Sub(com),
		sensor: d.sensor,
	}
	if len(d.verts) > 0 {
		p.verts = make([]cp.Vector, len(d.verts))
		for i, v := range d.verts {
			p.verts[i] = v.Add(p.center)
		}
		p.shape = cp.NewPolyShape(owner.body, len(p.verts), p.verts, cp.NewTransformIdentity(), 0)
	} else {
		p.radius = d.radius
		p.shape = cp.NewCircle(owner.body, d.radius, p.center)
	}
	m.apply(p.shape)
	p.shape.SetSensor(d.sensor)
	p.shape.UserData = p
	return p
}

// isConvex reports whether the turns along verts all bend the same way.
// Collinear runs are ignored.
func isConvex(verts []cp.Vector) bool {
	n := len(verts)
	sign := 0
	for i := range verts {
		a, b, c := verts[i], verts[(i+1)%n], verts[(i+2)%n]
		cross := b.Sub(a).Cross(c.Sub(b))
		if math.Abs(cross) < 1e-9 {
			continue
		}
		s := 1
		if cross < 0 {
			s = -1
		}
		if sign == 0 {
			sign = s
		} else if s != sign {
			return false
		}
	}
	return true
}
