// Package overlay paints the physics space over the game view, using the
// styles the debug colorizer left on each body part.
package overlay

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/spritesync/physics"
)

// Overlay is a full-viewport canvas composited on top of the main view.
// It only draws; input is never routed to it.
type Overlay struct {
	world       *physics.World
	canvas      *ebiten.Image
	worldHeight float64
	lineWidth   float64

	Visible bool
}

// New creates an overlay for a viewport of width x height pixels showing a
// world worldHeight units tall.
func New(world *physics.World, width, height int, worldHeight, lineWidth float64) *Overlay {
	o := &Overlay{
		world:       world,
		worldHeight: worldHeight,
		lineWidth:   lineWidth,
		Visible:     true,
	}
	o.Resize(width, height)
	return o
}

// Resize reallocates the canvas when the viewport changes size.
func (o *Overlay) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	if o.canvas != nil {
		b := o.canvas.Bounds()
		if b.Dx() == width && b.Dy() == height {
			return
		}
		o.canvas.Deallocate()
	}
	o.canvas = ebiten.NewImage(width, height)
}

func (o *Overlay) Toggle() {
	o.Visible = !o.Visible
}

// Draw clears the canvas, redraws every shape in the world and composites
// the result onto screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if o == nil || !o.Visible || o.canvas == nil || screen == nil {
		return
	}
	space := o.world.Space()
	if space == nil {
		return
	}

	o.canvas.Clear()
	viewHeight := float64(o.canvas.Bounds().Dy())
	cp.DrawSpace(space, &drawer{
		dst:       o.canvas,
		shiftY:    viewHeight - o.worldHeight,
		lineWidth: o.lineWidth,
	})
	screen.DrawImage(o.canvas, nil)
}
