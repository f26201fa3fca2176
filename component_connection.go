package graphkit

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/blockgraph/graphkit/pkg/geom"
	"github.com/blockgraph/graphkit/pkg/hittest"
	"github.com/blockgraph/graphkit/pkg/kernel"
	"github.com/blockgraph/graphkit/pkg/render"
	"github.com/blockgraph/graphkit/pkg/store"
)

// connectionComponent is the default connection_components["connection"]
// renderer: a straight or bezier path (spec.md §4.J) sampled into the
// scene layer, with its screen-space bounding box kept in the hit-test
// index as a refined stroke-distance predicate rather than a plain box.
type connectionComponent struct {
	g     *Graph
	id    store.ConnectionID
	hitID hittest.ID
}

func defaultConnectionComponentFactory(g *Graph) kernel.Factory {
	return func() kernel.Component { return &connectionComponent{g: g} }
}

func (c *connectionComponent) OnMount(ctx *kernel.Context) {
	c.id = ctx.Props().(connectionProps).ID
	c.hitID = hittest.ID("conn:" + string(c.id))
}

func (c *connectionComponent) OnUnmount(ctx *kernel.Context) {
	c.g.HitTest.Remove(c.hitID)
}

func (c *connectionComponent) WillUpdate(ctx *kernel.Context) {
	c.id = ctx.Props().(connectionProps).ID
}

func (c *connectionComponent) Children(ctx *kernel.Context) []kernel.ChildSpec { return nil }
func (c *connectionComponent) DidIterate(ctx *kernel.Context)                  {}

func (c *connectionComponent) Visible() bool {
	conn, ok := c.g.Store.Connections.Get(c.id)
	if !ok {
		return false
	}
	return !c.g.Store.Connections.Broken(conn, c.g.Store.Blocks)
}

// endpoints resolves the world-space from/to points for conn, preferring a
// pinned anchor and falling back to the owning block's center.
func (c *connectionComponent) endpoints(conn store.Connection) (from, to geom.Point, ok bool) {
	source, sok := c.g.Store.Blocks.Get(conn.SourceBlock)
	target, tok := c.g.Store.Blocks.Get(conn.TargetBlock)
	if !sok || !tok {
		return geom.Point{}, geom.Point{}, false
	}

	from = geom.Rect{X: source.X, Y: source.Y, Width: source.W, Height: source.H}.Center()
	if conn.SourceAnchor != "" {
		if anchor, ok := c.g.Store.Anchors.Get(conn.SourceAnchor); ok {
			from = render.AnchorWorldPos(source, anchor)
		}
	}
	to = geom.Rect{X: target.X, Y: target.Y, Width: target.W, Height: target.H}.Center()
	if conn.TargetAnchor != "" {
		if anchor, ok := c.g.Store.Anchors.Get(conn.TargetAnchor); ok {
			to = render.AnchorWorldPos(target, anchor)
		}
	}
	return from, to, true
}

func (c *connectionComponent) Render(ctx *kernel.RenderContext) {
	conn, ok := c.g.Store.Connections.Get(c.id)
	if !ok || c.g.Store.Connections.Broken(conn, c.g.Store.Blocks) {
		return
	}
	from, to, ok := c.endpoints(conn)
	if !ok {
		return
	}

	sfx, sfy := c.g.Camera.WorldToScreen(from.X, from.Y)
	stx, sty := c.g.Camera.WorldToScreen(to.X, to.Y)
	sFrom, sTo := geom.Point{X: sfx, Y: sfy}, geom.Point{X: stx, Y: sty}

	var path render.Path
	if c.g.cfg.Settings.UseBezierConnections {
		dx := (sTo.X - sFrom.X) / 2
		path = render.NewBezierPath(sFrom,
			geom.Point{X: sFrom.X + dx, Y: sFrom.Y},
			geom.Point{X: sTo.X - dx, Y: sTo.Y},
			sTo)
	} else {
		path = render.NewStraightPath(sFrom, sTo)
	}

	bbox := path.BoundingBox()
	c.g.HitTest.Insert(c.hitID, bbox, ctx.Instance().ZIndex, true, false, func(p geom.Point) bool {
		return path.OnHitBox(p, c.g.Constants.HitTestCorridor)
	})

	lineStyle := lipgloss.NewStyle().Foreground(c.g.Palette.Connection)
	if conn.Selected {
		lineStyle = lineStyle.Bold(true)
	}
	surface := c.g.SceneSurface()
	for _, pt := range path.Samples(int(path.BoundingBox().Width + path.BoundingBox().Height + 4)) {
		surface.SetCell(int(pt.X), int(pt.Y), '·', lineStyle)
	}

	if c.g.cfg.Settings.ShowConnectionArrows {
		head := path.ArrowHeadAt(c.g.Constants.ArrowLength, c.g.Constants.ArrowWidth)
		surface.SetCell(int(head.Tip.X), int(head.Tip.Y), '>', lineStyle)
	}

	if c.g.cfg.Settings.ShowConnectionLabels && conn.Label != "" {
		mid := path.PointAt(0.5)
		labelStyle := lipgloss.NewStyle().Foreground(c.g.Palette.ConnectionLabel)
		for i, r := range conn.Label {
			surface.SetCell(int(mid.X)+i, int(mid.Y)-1, r, labelStyle)
		}
	}
}
