package graphkit

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/blockgraph/graphkit/pkg/geom"
	"github.com/blockgraph/graphkit/pkg/hittest"
	"github.com/blockgraph/graphkit/pkg/kernel"
	"github.com/blockgraph/graphkit/pkg/render"
	"github.com/blockgraph/graphkit/pkg/store"
)

// blockComponent is the default block_components["block"] renderer: a
// level-of-detail box painted into the graph's scene layer, with its
// current screen-space rect kept live in the hit-test index for the
// lifetime of the mount (spec.md §4.J).
type blockComponent struct {
	g     *Graph
	id    store.BlockID
	hitID hittest.ID
}

func defaultBlockComponentFactory(g *Graph) kernel.Factory {
	return func() kernel.Component { return &blockComponent{g: g} }
}

func (b *blockComponent) OnMount(ctx *kernel.Context) {
	props := ctx.Props().(blockProps)
	b.id = props.ID
	b.hitID = hittest.ID("block:" + string(b.id))
}

func (b *blockComponent) OnUnmount(ctx *kernel.Context) {
	b.g.HitTest.Remove(b.hitID)
}

func (b *blockComponent) WillUpdate(ctx *kernel.Context) {
	b.id = ctx.Props().(blockProps).ID
}

func (b *blockComponent) Children(ctx *kernel.Context) []kernel.ChildSpec { return nil }
func (b *blockComponent) DidIterate(ctx *kernel.Context)                  {}

func (b *blockComponent) Visible() bool {
	_, ok := b.g.Store.Blocks.Get(b.id)
	return ok
}

func (b *blockComponent) worldRect() (store.Block, geom.Rect, bool) {
	blk, ok := b.g.Store.Blocks.Get(b.id)
	if !ok {
		return store.Block{}, geom.Rect{}, false
	}
	return blk, geom.Rect{X: blk.X, Y: blk.Y, Width: blk.W, Height: blk.H}, true
}

func (b *blockComponent) Render(ctx *kernel.RenderContext) {
	blk, world, ok := b.worldRect()
	if !ok {
		return
	}

	sx0, sy0 := b.g.Camera.WorldToScreen(world.X, world.Y)
	sx1, sy1 := b.g.Camera.WorldToScreen(world.X+world.Width, world.Y+world.Height)
	screen := geom.Rect{X: sx0, Y: sy0, Width: sx1 - sx0, Height: sy1 - sy0}

	// Hit-test queries arrive in screen space (pkg/gesture/pointer.go),
	// so the index entry must be screen space too, not world space.
	b.g.HitTest.Insert(b.hitID, screen, ctx.Instance().ZIndex, true, true, nil)

	if !b.g.Camera.IsRectVisible(world) {
		return
	}

	plan := render.PlanBlock(b.g.Camera.Level(), screen, blk.Name)
	fill := b.g.Palette.Block
	if blk.Selected {
		fill = b.g.Palette.BlockSelected
	}
	paintBlockPlan(b.g.SceneSurface(), plan, fill, b.g.Palette.BlockBorder)

	if plan.ShowAnchors && b.g.cfg.Settings.UseBlocksAnchors {
		for _, anchorID := range blk.Anchors {
			anchor, ok := b.g.Store.Anchors.Get(anchorID)
			if !ok {
				continue
			}
			wp := render.AnchorWorldPos(blk, anchor)
			ax, ay := b.g.Camera.WorldToScreen(wp.X, wp.Y)
			b.g.SceneSurface().SetCell(int(ax), int(ay), '+', lipgloss.NewStyle().Foreground(b.g.Palette.Anchor))
		}
	}
}

func paintBlockPlan(surface interface {
	SetCell(x, y int, r rune, style lipgloss.Style)
}, plan render.BlockPlan, fill, border lipgloss.Color) {
	x0, y0 := int(plan.Rect.X), int(plan.Rect.Y)
	x1, y1 := int(plan.Rect.X+plan.Rect.Width), int(plan.Rect.Y+plan.Rect.Height)

	fillStyle := lipgloss.NewStyle().Background(fill)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			surface.SetCell(x, y, ' ', fillStyle)
		}
	}

	if plan.ShowBorder {
		borderStyle := lipgloss.NewStyle().Foreground(border)
		for x := x0; x < x1; x++ {
			surface.SetCell(x, y0, '─', borderStyle)
			surface.SetCell(x, y1-1, '─', borderStyle)
		}
		for y := y0; y < y1; y++ {
			surface.SetCell(x0, y, '│', borderStyle)
			surface.SetCell(x1-1, y, '│', borderStyle)
		}
		surface.SetCell(x0, y0, '┌', borderStyle)
		surface.SetCell(x1-1, y0, '┐', borderStyle)
		surface.SetCell(x0, y1-1, '└', borderStyle)
		surface.SetCell(x1-1, y1-1, '┘', borderStyle)
	}

	if plan.ShowLabel && plan.Label != "" {
		label := fmt.Sprintf(" %s ", plan.Label)
		labelStyle := lipgloss.NewStyle().Background(fill)
		startX := x0 + 1
		if n := len([]rune(label)); x1-x0-2 > n {
			startX += (x1 - x0 - 2 - n) / 2
		}
		labelY := y0 + (y1-y0)/2
		for i, r := range label {
			if startX+i >= x1-1 {
				break
			}
			surface.SetCell(startX+i, labelY, r, labelStyle)
		}
	}
}
