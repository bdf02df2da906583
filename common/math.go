package common

// FlipY maps a Y coordinate between the physics space (Y grows downward)
// and the render space (Y grows upward) anchored at height. The mapping is
// its own inverse.
func FlipY(y, height float64) float64 {
	return height - y
}
