package physics

import "github.com/jakecoffman/cp"

// ComputeOffset returns the vector from the body's center of mass to the
// center of its bounding box, measured at the body's current angle. Call it
// once when the body is registered and rotate the cached result by the
// body's angle afterwards.
func ComputeOffset(b *Body) cp.Vector {
	if b == nil {
		return cp.Vector{}
	}
	bounds := b.Bounds()
	width := bounds.R - bounds.L
	height := bounds.T - bounds.B

	topLeft := cp.Vector{X: bounds.L, Y: bounds.B}.Sub(b.Position())
	return cp.Vector{X: topLeft.X + width/2, Y: topLeft.Y + height/2}
}
