package graphkit

import (
	"github.com/blockgraph/graphkit/pkg/kernel"
	"github.com/blockgraph/graphkit/pkg/reactive"
	"github.com/blockgraph/graphkit/pkg/store"
)

const (
	rootComponentType       = "root"
	defaultBlockComponent   = "block"
	defaultConnComponent    = "connection"
)

type blockProps struct{ ID store.BlockID }
type connectionProps struct{ ID store.ConnectionID }

// rootComponent has no visual output of its own: its only job is to
// reconcile one child per live block and per non-broken connection,
// dispatching each through the kind_tag -> component-type registries
// (spec.md §6), and to mark itself dirty whenever the block or connection
// id sets change.
type rootComponent struct {
	g             *Graph
	unsubBlocks   reactive.Unsubscribe
	unsubConns    reactive.Unsubscribe
}

func newRootComponentFactory(g *Graph) kernel.Factory {
	return func() kernel.Component { return &rootComponent{g: g} }
}

func (r *rootComponent) OnMount(ctx *kernel.Context) {
	r.unsubBlocks = r.g.Store.Blocks.IDs().Subscribe(func([]store.BlockID) { ctx.Invalidate() })
	r.unsubConns = r.g.Store.Connections.IDs().Subscribe(func([]store.ConnectionID) { ctx.Invalidate() })
}

func (r *rootComponent) OnUnmount(ctx *kernel.Context) {
	if r.unsubBlocks != nil {
		r.unsubBlocks()
	}
	if r.unsubConns != nil {
		r.unsubConns()
	}
}

func (r *rootComponent) WillUpdate(ctx *kernel.Context) {}

func (r *rootComponent) Children(ctx *kernel.Context) []kernel.ChildSpec {
	specs := make([]kernel.ChildSpec, 0)
	for _, b := range r.g.Store.Blocks.List() {
		typ := defaultBlockComponent
		if _, ok := r.g.cfg.Settings.BlockComponents[b.KindTag]; ok {
			typ = b.KindTag
		}
		specs = append(specs, kernel.ChildSpec{Type: typ, Key: "block:" + string(b.ID), Props: blockProps{ID: b.ID}})
	}
	for _, c := range r.g.Store.Connections.List() {
		if r.g.Store.Connections.Broken(c, r.g.Store.Blocks) {
			continue
		}
		typ := defaultConnComponent
		if _, ok := r.g.cfg.Settings.ConnectionComponents[c.KindTag]; ok {
			typ = c.KindTag
		}
		specs = append(specs, kernel.ChildSpec{Type: typ, Key: "conn:" + string(c.ID), Props: connectionProps{ID: c.ID}})
	}
	return specs
}

func (r *rootComponent) DidIterate(ctx *kernel.Context) {}
func (r *rootComponent) Render(ctx *kernel.RenderContext) {}
func (r *rootComponent) Visible() bool { return true }
