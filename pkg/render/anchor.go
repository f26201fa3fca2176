package render

import (
	"github.com/blockgraph/graphkit/pkg/geom"
	"github.com/blockgraph/graphkit/pkg/store"
)

// AnchorWorldPos resolves an anchor's world-space position from its owning
// block's current rect and its PositionHint. Recognised hints are the four
// cardinal sides and "center"; any other hint (or an empty one) falls back
// to the block's center, which keeps port resolution total instead of
// partial.
func AnchorWorldPos(block store.Block, anchor store.Anchor) geom.Point {
	rect := geom.Rect{X: block.X, Y: block.Y, Width: block.W, Height: block.H}
	switch anchor.PositionHint {
	case "top":
		return geom.Point{X: rect.X + rect.Width/2, Y: rect.Y}
	case "bottom":
		return geom.Point{X: rect.X + rect.Width/2, Y: rect.Y + rect.Height}
	case "left":
		return geom.Point{X: rect.X, Y: rect.Y + rect.Height/2}
	case "right":
		return geom.Point{X: rect.X + rect.Width, Y: rect.Y + rect.Height/2}
	default:
		return rect.Center()
	}
}

// Port is a candidate connection endpoint: an anchor resolved to a world
// position, used by the port-snapping proximity query.
type Port struct {
	AnchorID   store.AnchorID
	OwnerBlock store.BlockID
	Direction  store.Direction
	Pos        geom.Point
}

// SnapCondition rejects an otherwise-proximate target port, e.g. to forbid
// connecting two out-ports or a block to itself.
type SnapCondition func(source, target Port) bool

// FindSnapTarget runs the port-snapping proximity query: among candidates
// within radius of point, it returns the nearest one for which cond (if
// non-nil) allows connecting from source. ok is false if nothing in range
// qualifies.
func FindSnapTarget(source Port, point geom.Point, candidates []Port, radius float64, cond SnapCondition) (Port, bool) {
	var best Port
	bestDistSq := radius * radius
	found := false

	for _, candidate := range candidates {
		dx, dy := candidate.Pos.X-point.X, candidate.Pos.Y-point.Y
		distSq := dx*dx + dy*dy
		if distSq > radius*radius {
			continue
		}
		if cond != nil && !cond(source, candidate) {
			continue
		}
		if !found || distSq < bestDistSq {
			best = candidate
			bestDistSq = distSq
			found = true
		}
	}
	return best, found
}
