package bodysync

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/spritesync/common"
	"github.com/milk9111/spritesync/debug"
	"github.com/milk9111/spritesync/physics"
)

// Synchronizer copies body transforms onto sprites once per physics step.
type Synchronizer struct {
	registry    *Registry
	worldHeight float64
	colorizer   *debug.Colorizer
}

// NewSynchronizer captures worldHeight, the render-space height the Y axis
// is flipped against. colorizer may be nil to skip debug styling.
func NewSynchronizer(registry *Registry, worldHeight float64, colorizer *debug.Colorizer) *Synchronizer {
	return &Synchronizer{
		registry:    registry,
		worldHeight: worldHeight,
		colorizer:   colorizer,
	}
}

// Attach runs Tick after every step of w.
func (s *Synchronizer) Attach(w *physics.World) {
	w.OnAfterStep(s.Tick)
}

func (s *Synchronizer) WorldHeight() float64 {
	return s.worldHeight
}

// Tick updates every registered sprite from its body, in registration
// order, then restyles the body for the debug overlay.
func (s *Synchronizer) Tick() {
	if s == nil || s.registry == nil {
		return
	}
	s.registry.each(func(_ string, e *entry) {
		pos := e.body.Position()
		angle := e.body.Angle()
		x, y := RenderTransform(pos, angle, e.offset, s.worldHeight)
		e.sprite.SetPosition(x, y)
		e.sprite.SetRotation(-angle)
		s.colorizer.Colorize(e.body)
	})
}

// RenderTransform maps a body position and angle plus its cached offset
// into render space, where Y grows upward from the bottom of worldHeight.
func RenderTransform(pos cp.Vector, angle float64, offset cp.Vector, worldHeight float64) (float64, float64) {
	rotated := offset.Rotate(cp.ForAngle(angle))
	return pos.X + rotated.X, common.FlipY(pos.Y+rotated.Y, worldHeight)
}

var _ debug.Node = (*physics.Body)(nil)
