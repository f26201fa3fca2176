package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/blockgraph/graphkit/pkg/geom"
)

func TestStraightPathMidpoint(t *testing.T) {
	p := NewStraightPath(geom.Point{X: 0, Y: 0}, geom.Point{X: 10, Y: 0})
	mid := p.PointAt(0.5)
	assert.Equal(t, 5.0, mid.X)
	assert.Equal(t, 0.0, mid.Y)
}

func TestStraightPathEndpoints(t *testing.T) {
	from, to := geom.Point{X: 1, Y: 2}, geom.Point{X: 9, Y: 4}
	p := NewStraightPath(from, to)
	assert.Equal(t, from, p.PointAt(0))
	assert.Equal(t, to, p.PointAt(1))
}

func TestBezierPathEndpointsMatchControlEndpoints(t *testing.T) {
	from, to := geom.Point{X: 0, Y: 0}, geom.Point{X: 10, Y: 10}
	p := NewBezierPath(from, geom.Point{X: 0, Y: 10}, geom.Point{X: 10, Y: 0}, to)
	assert.Equal(t, from, p.PointAt(0))
	assert.InDelta(t, to.X, p.PointAt(1).X, 1e-9)
	assert.InDelta(t, to.Y, p.PointAt(1).Y, 1e-9)
}

func TestBoundingBoxCoversStraightLine(t *testing.T) {
	p := NewStraightPath(geom.Point{X: 0, Y: 0}, geom.Point{X: 10, Y: 20})
	bbox := p.BoundingBox()
	assert.InDelta(t, 0, bbox.X, 1e-9)
	assert.InDelta(t, 0, bbox.Y, 1e-9)
	assert.InDelta(t, 10, bbox.Width, 1e-9)
	assert.InDelta(t, 20, bbox.Height, 1e-9)
}

func TestOnHitBoxAcceptsPointNearLine(t *testing.T) {
	p := NewStraightPath(geom.Point{X: 0, Y: 0}, geom.Point{X: 100, Y: 0})
	assert.True(t, p.OnHitBox(geom.Point{X: 50, Y: 1}, 2))
}

func TestOnHitBoxRejectsPointFarFromLine(t *testing.T) {
	p := NewStraightPath(geom.Point{X: 0, Y: 0}, geom.Point{X: 100, Y: 0})
	assert.False(t, p.OnHitBox(geom.Point{X: 50, Y: 20}, 2))
}

func TestArrowHeadTipMatchesPathEnd(t *testing.T) {
	p := NewStraightPath(geom.Point{X: 0, Y: 0}, geom.Point{X: 10, Y: 0})
	head := p.ArrowHeadAt(3, 2)
	assert.Equal(t, p.To, head.Tip)
	assert.Less(t, head.Left.X, head.Tip.X)
	assert.NotEqual(t, head.Left.Y, head.Right.Y)
}
