package physics

// Bounds are the four static walls enclosing a rectangle.
type Bounds struct {
	Top    *Body
	Bottom *Body
	Left   *Body
	Right  *Body
}

// Bodies returns the walls as top, bottom, left, right.
func (b Bounds) Bodies() []*Body {
	return []*Body{b.Top, b.Bottom, b.Left, b.Right}
}

// AddBounds encloses the rectangle (x, y, width, height) with four static
// walls of the given thickness centered on its edges, and adds them to
// the world. The side walls reach past the corners by half a thickness.
func (w *World) AddBounds(x, y, width, height, thickness float64, opts ...BuildOption) (Bounds, error) {
	wall := func(label string, cx, cy, ww, wh float64) (*Body, error) {
		wallOpts := append(append([]BuildOption{}, opts...), WithStatic(), WithLabel("bounds-"+label))
		return Rectangle(cx, cy, ww, wh, wallOpts...)
	}

	var (
		bounds Bounds
		err    error
	)
	if bounds.Top, err = wall("top", x+width/2, y, width, thickness); err != nil {
		return Bounds{}, err
	}
	if bounds.Bottom, err = wall("bottom", x+width/2, y+height, width, thickness); err != nil {
		return Bounds{}, err
	}
	if bounds.Left, err = wall("left", x, y+height/2, thickness, height+thickness); err != nil {
		return Bounds{}, err
	}
	if bounds.Right, err = wall("right", x+width, y+height/2, thickness, height+thickness); err != nil {
		return Bounds{}, err
	}

	if err := w.Add(bounds.Bodies()); err != nil {
		return Bounds{}, err
	}
	return bounds, nil
}
