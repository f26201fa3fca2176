package graphkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blockgraph/graphkit/pkg/store"
)

func TestAnchorSyncSeedsFromInitialBlocks(t *testing.T) {
	g, err := New(
		WithBlocks(store.Block{ID: "a", X: 0, Y: 0, W: 4, H: 2, Name: "a", Anchors: []store.AnchorID{"a-top"}}),
		WithAnchors(
			store.Anchor{ID: "a-top", OwnerBlock: "a", Direction: store.Out, PositionHint: "top"},
			store.Anchor{ID: "orphan", OwnerBlock: "missing"},
		),
		WithViewport(40, 20),
	)
	require.NoError(t, err)

	_, ok := g.Store.Anchors.Get("a-top")
	assert.True(t, ok, "an anchor named by its owner block's Anchors list must be live")

	_, ok = g.Store.Anchors.Get("orphan")
	assert.False(t, ok, "an anchor no block's Anchors list names must not appear")
}

func TestAnchorSyncFollowsBlockAnchorsEdit(t *testing.T) {
	g, err := New(
		WithBlocks(store.Block{ID: "a", X: 0, Y: 0, W: 4, H: 2, Name: "a"}),
		WithAnchors(store.Anchor{ID: "a-top", OwnerBlock: "a", Direction: store.Out, PositionHint: "top"}),
		WithViewport(40, 20),
	)
	require.NoError(t, err)

	_, ok := g.Store.Anchors.Get("a-top")
	require.False(t, ok, "the anchor must start absent: block a doesn't name it yet")

	g.Store.Blocks.UpdateBlocks([]store.BlockPartial{{ID: "a", Anchors: []store.AnchorID{"a-top"}}})

	_, ok = g.Store.Anchors.Get("a-top")
	assert.True(t, ok, "editing a block's Anchors field must re-derive the anchor table")
}

func TestAnchorSyncDropsAnchorWhenOwnerBlockRemoved(t *testing.T) {
	g, err := New(
		WithBlocks(store.Block{ID: "a", X: 0, Y: 0, W: 4, H: 2, Name: "a", Anchors: []store.AnchorID{"a-top"}}),
		WithAnchors(store.Anchor{ID: "a-top", OwnerBlock: "a", Direction: store.Out, PositionHint: "top"}),
		WithViewport(40, 20),
	)
	require.NoError(t, err)
	require.NotEmpty(t, g.Store.Anchors.List())

	g.Store.Blocks.SetBlocks(nil)

	assert.Empty(t, g.Store.Anchors.List(), "removing a block must drop its anchors too")
}
