package physics

import (
	"errors"
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/spritesync/common"
	"go.uber.org/zap"
)

var ErrUnsupportedObject = errors.New("physics: unsupported world object")

// World owns the Chipmunk space and the bodies added to it.
type World struct {
	space  *cp.Space
	logger *zap.Logger

	bodies      map[BodyID]*Body
	order       []*Body
	constraints []*cp.Constraint

	afterStep []func()
	onRemove  []func(*Body)
}

// WorldOption configures a World.
type WorldOption func(*World)

func WithGravity(x, y float64) WorldOption {
	return func(w *World) {
		w.space.SetGravity(cp.Vector{X: x, Y: y})
	}
}

func WithIterations(n uint) WorldOption {
	return func(w *World) {
		if n > 0 {
			w.space.Iterations = n
		}
	}
}

// WithDamping sets the fraction of velocity bodies keep each second.
func WithDamping(d float64) WorldOption {
	return func(w *World) {
		if d > 0 {
			w.space.SetDamping(d)
		}
	}
}

// WithSleepThreshold lets bodies idle for t seconds fall asleep. Zero
// disables sleeping.
func WithSleepThreshold(t float64) WorldOption {
	return func(w *World) {
		if t > 0 {
			w.space.SleepTimeThreshold = t
		}
	}
}

func WithWorldLogger(l *zap.Logger) WorldOption {
	return func(w *World) {
		w.logger = common.OrNop(l)
	}
}

func NewWorld(opts ...WorldOption) *World {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: common.Gravity})

	w := &World{
		space:  space,
		logger: zap.NewNop(),
		bodies: make(map[BodyID]*Body),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}
	return w
}

// Space returns the underlying Chipmunk space.
func (w *World) Space() *cp.Space {
	if w == nil {
		return nil
	}
	return w.space
}

// Add inserts a *Body, a []*Body or a *cp.Constraint.
func (w *World) Add(obj any) error {
	if w == nil {
		return nil
	}
	switch v := obj.(type) {
	case *Body:
		w.AddBody(v)
	case []*Body:
		for _, b := range v {
			w.AddBody(b)
		}
	case *cp.Constraint:
		w.AddConstraint(v)
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedObject, obj)
	}
	return nil
}

// AddBody inserts b and its shapes into the space. It reports false when b
// is nil or already present.
func (w *World) AddBody(b *Body) bool {
	if w == nil || b == nil || b.body == nil {
		return false
	}
	if _, ok := w.bodies[b.id]; ok {
		return false
	}
	w.space.AddBody(b.body)
	for _, shape := range b.Shapes() {
		w.space.AddShape(shape)
	}
	w.bodies[b.id] = b
	w.order = append(w.order, b)
	w.logger.Debug("physics: body added",
		zap.Stringer("id", b.id), zap.String("label", b.label), zap.Int("parts", len(b.parts)))
	return true
}

func (w *World) AddConstraint(c *cp.Constraint) {
	if w == nil || c == nil {
		return
	}
	w.space.AddConstraint(c)
	w.constraints = append(w.constraints, c)
}

func (w *World) RemoveConstraint(c *cp.Constraint) {
	if w == nil || c == nil {
		return
	}
	for i, existing := range w.constraints {
		if existing == c {
			w.space.RemoveConstraint(c)
			w.constraints = append(w.constraints[:i], w.constraints[i+1:]...)
			return
		}
	}
}

// RemoveBody takes b out of the space and notifies removal listeners.
func (w *World) RemoveBody(b *Body) bool {
	if w == nil || b == nil {
		return false
	}
	if _, ok := w.bodies[b.id]; !ok {
		return false
	}
	for _, shape := range b.Shapes() {
		w.space.RemoveShape(shape)
	}
	w.space.RemoveBody(b.body)
	delete(w.bodies, b.id)
	for i, existing := range w.order {
		if existing == b {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
	for _, fn := range w.onRemove {
		fn(b)
	}
	w.logger.Debug("physics: body removed", zap.Stringer("id", b.id), zap.String("label", b.label))
	return true
}

func (w *World) Has(id BodyID) bool {
	if w == nil {
		return false
	}
	_, ok := w.bodies[id]
	return ok
}

func (w *World) Body(id BodyID) (*Body, bool) {
	if w == nil {
		return nil, false
	}
	b, ok := w.bodies[id]
	return b, ok
}

// Bodies returns the bodies in insertion order.
func (w *World) Bodies() []*Body {
	if w == nil {
		return nil
	}
	out := make([]*Body, len(w.order))
	copy(out, w.order)
	return out
}

// OnAfterStep registers fn to run after every completed Step.
func (w *World) OnAfterStep(fn func()) {
	if w == nil || fn == nil {
		return
	}
	w.afterStep = append(w.afterStep, fn)
}

// OnRemove registers fn to run whenever a body leaves the world.
func (w *World) OnRemove(fn func(*Body)) {
	if w == nil || fn == nil {
		return
	}
	w.onRemove = append(w.onRemove, fn)
}

// Step advances the simulation by dt and then runs the after-step hooks
// in registration order.
func (w *World) Step(dt float64) {
	if w == nil || w.space == nil {
		return
	}
	w.space.Step(dt)
	for _, fn := range w.afterStep {
		fn()
	}
}
