package graphkit

import (
	"github.com/blockgraph/graphkit/pkg/reactive"
	"github.com/blockgraph/graphkit/pkg/store"
)

// anchorSync keeps Store.Anchors in sync with the live block set. An
// anchor's lifetime is bounded by its owner block's Anchors list
// (pkg/store/anchor_store.go), so the anchor table can't just be set once
// at construction: it must be re-derived whenever a block is added,
// removed, or has its Anchors list edited. pool holds every anchor record
// named anywhere in the original config, keyed by id, since blocks only
// carry anchor ids and a block partial update has no way to introduce a
// brand new anchor record of its own (spec.md §4.J).
type anchorSync struct {
	g    *Graph
	pool map[store.AnchorID]store.Anchor

	unsubIDs    reactive.Unsubscribe
	blockUnsubs map[store.BlockID]reactive.Unsubscribe
}

func newAnchorSync(g *Graph, pool []store.Anchor) *anchorSync {
	m := make(map[store.AnchorID]store.Anchor, len(pool))
	for _, a := range pool {
		m[a.ID] = a
	}

	as := &anchorSync{
		g:           g,
		pool:        m,
		blockUnsubs: make(map[store.BlockID]reactive.Unsubscribe),
	}
	as.unsubIDs = g.Store.Blocks.IDs().Subscribe(func([]store.BlockID) { as.resync() })
	as.resync()
	return as
}

// resync recomputes the live anchor set from the current blocks and
// reconciles per-block subscriptions so that an existing block's Anchors
// list edit (not just a block add/remove) also triggers a recompute.
func (as *anchorSync) resync() {
	ids := as.g.Store.Blocks.IDs().Peek()

	live := make(map[store.BlockID]bool, len(ids))
	for _, id := range ids {
		live[id] = true
		if _, ok := as.blockUnsubs[id]; !ok {
			as.blockUnsubs[id] = as.g.Store.Blocks.Entity(id).Subscribe(func(store.Block) { as.resync() })
		}
	}
	for id, unsub := range as.blockUnsubs {
		if !live[id] {
			unsub()
			delete(as.blockUnsubs, id)
		}
	}

	var anchors []store.Anchor
	for _, id := range ids {
		blk, ok := as.g.Store.Blocks.Get(id)
		if !ok {
			continue
		}
		for _, aid := range blk.Anchors {
			if a, ok := as.pool[aid]; ok {
				anchors = append(anchors, a)
			}
		}
	}
	as.g.Store.Anchors.SetAnchors(anchors)
}

// stop releases every subscription anchorSync holds, for symmetry with
// the rest of the graph's teardown path.
func (as *anchorSync) stop() {
	if as.unsubIDs != nil {
		as.unsubIDs()
	}
	for _, unsub := range as.blockUnsubs {
		unsub()
	}
	as.blockUnsubs = nil
}
