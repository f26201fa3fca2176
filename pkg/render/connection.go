package render

import (
	"math"

	"github.com/blockgraph/graphkit/pkg/geom"
)

// Geometry distinguishes a connection's interior path shape.
type Geometry int

const (
	Straight Geometry = iota
	Bezier
)

// Path is a connection's drawable geometry: two endpoints and, for Bezier,
// the cubic control points between them.
type Path struct {
	Geometry Geometry
	From, To geom.Point
	Control1 geom.Point
	Control2 geom.Point
}

// NewStraightPath builds a two-point straight connection path.
func NewStraightPath(from, to geom.Point) Path {
	return Path{Geometry: Straight, From: from, To: to}
}

// NewBezierPath builds a cubic-bezier connection path between from and to.
func NewBezierPath(from, control1, control2, to geom.Point) Path {
	return Path{Geometry: Bezier, From: from, Control1: control1, Control2: control2, To: to}
}

// PointAt evaluates the path at t in [0, 1].
func (p Path) PointAt(t float64) geom.Point {
	if p.Geometry == Straight {
		return lerp(p.From, p.To, t)
	}
	// Cubic bezier via De Casteljau.
	a := lerp(p.From, p.Control1, t)
	b := lerp(p.Control1, p.Control2, t)
	c := lerp(p.Control2, p.To, t)
	ab := lerp(a, b, t)
	bc := lerp(b, c, t)
	return lerp(ab, bc, t)
}

// Samples returns n+1 evenly spaced points along the path, from From to To
// inclusive. n must be at least 1.
func (p Path) Samples(n int) []geom.Point {
	if n < 1 {
		n = 1
	}
	pts := make([]geom.Point, n+1)
	for i := 0; i <= n; i++ {
		pts[i] = p.PointAt(float64(i) / float64(n))
	}
	return pts
}

// BoundingBox returns get_bbox(): the axis-aligned rect covering the path's
// visible extent, sampled finely enough for a bezier's curvature.
func (p Path) BoundingBox() geom.Rect {
	pts := p.Samples(32)
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := pts[0].X, pts[0].Y
	for _, pt := range pts[1:] {
		minX = math.Min(minX, pt.X)
		minY = math.Min(minY, pt.Y)
		maxX = math.Max(maxX, pt.X)
		maxY = math.Max(maxY, pt.Y)
	}
	return geom.Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// OnHitBox implements on_hit_box(point): a stroke-distance test against the
// path, accepting point if it falls within threshold of the nearest
// sampled segment. Callers scale threshold inversely by camera zoom so the
// hit corridor stays a constant number of screen pixels wide.
func (p Path) OnHitBox(point geom.Point, threshold float64) bool {
	pts := p.Samples(32)
	best := math.Inf(1)
	for i := 0; i+1 < len(pts); i++ {
		d := distanceToSegment(point, pts[i], pts[i+1])
		if d < best {
			best = d
		}
	}
	return best <= threshold
}

// ArrowHead is a small triangle drawn at the path's target endpoint.
type ArrowHead struct {
	Tip, Left, Right geom.Point
}

// ArrowHeadAt computes the arrow-head triangle for this path, length and
// width in the same units as the path's points (screen space, typically).
func (p Path) ArrowHeadAt(length, width float64) ArrowHead {
	tail := p.PointAt(0.999)
	tip := p.To
	dx, dy := tip.X-tail.X, tip.Y-tail.Y
	mag := math.Hypot(dx, dy)
	if mag == 0 {
		return ArrowHead{Tip: tip, Left: tip, Right: tip}
	}
	ux, uy := dx/mag, dy/mag // forward unit vector
	px, py := -uy, ux        // perpendicular unit vector

	base := geom.Point{X: tip.X - ux*length, Y: tip.Y - uy*length}
	return ArrowHead{
		Tip:   tip,
		Left:  geom.Point{X: base.X + px*width/2, Y: base.Y + py*width/2},
		Right: geom.Point{X: base.X - px*width/2, Y: base.Y - py*width/2},
	}
}

func lerp(a, b geom.Point, t float64) geom.Point {
	return geom.Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
}

func distanceToSegment(p, a, b geom.Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return math.Hypot(p.X-a.X, p.Y-a.Y)
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lenSq
	t = math.Max(0, math.Min(1, t))
	proj := geom.Point{X: a.X + t*dx, Y: a.Y + t*dy}
	return math.Hypot(p.X-proj.X, p.Y-proj.Y)
}
