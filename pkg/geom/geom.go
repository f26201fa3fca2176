// Package geom holds the small set of plane-geometry primitives shared by
// the camera, hit-test, store, and render packages: points and axis-aligned
// rectangles in either world or screen space.
package geom

// Point is a 2-D coordinate. Callers track which space (world or screen) it
// belongs to; the type itself doesn't distinguish.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside r, edges included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap. Rectangles that only
// share an edge are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Union returns the smallest rectangle containing both r and other. Union
// with a zero-value Rect is treated as "no prior rectangle" by callers
// building a running bounding box (see pkg/hittest's Index.UsableRect).
func (r Rect) Union(other Rect) Rect {
	minX := min(r.X, other.X)
	minY := min(r.Y, other.Y)
	maxX := max(r.X+r.Width, other.X+other.Width)
	maxY := max(r.Y+r.Height, other.Y+other.Height)
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Inset shrinks (or, with a negative amount, grows) r by amount on every
// side. Used to turn a bounding rect into a padded one for zoom-to-fit.
func (r Rect) Inset(amount float64) Rect {
	return Rect{
		X:      r.X + amount,
		Y:      r.Y + amount,
		Width:  r.Width - 2*amount,
		Height: r.Height - 2*amount,
	}
}

// Center returns the rectangle's midpoint.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}
