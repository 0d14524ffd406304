// Package physics provides collision detection utilities.
package physics

// Box is an axis-aligned bounding box anchored at its top-left corner.
type Box struct {
	X, Y          float64
	Width, Height float64
}

// BoxIntersection checks if two axis-aligned rectangles overlap.
// Touching edges count as an overlap.
func BoxIntersection(ax, ay, aw, ah, bx, by, bw, bh float64) bool {
	return Box{X: ax, Y: ay, Width: aw, Height: ah}.Intersects(Box{X: bx, Y: by, Width: bw, Height: bh})
}

// Intersects reports whether b and o overlap (edges inclusive).
func (b Box) Intersects(o Box) bool {
	return !(b.X > o.Right() || b.Right() < o.X || b.Y > o.Bottom() || b.Bottom() < o.Y)
}

// Right returns the x coordinate of the right edge.
func (b Box) Right() float64 {
	return b.X + b.Width
}

// Bottom returns the y coordinate of the bottom edge.
func (b Box) Bottom() float64 {
	return b.Y + b.Height
}
