package store

import "github.com/blockgraph/graphkit/pkg/reactive"

// AnchorStore is the reactive table of Anchors. Anchors have no partial
// update path in the spec: they are created and removed with their owning
// block's Anchors list.
type AnchorStore struct {
	t *table[AnchorID, Anchor]
}

func newAnchorStore() *AnchorStore {
	return &AnchorStore{t: newTable(func(a Anchor) AnchorID { return a.ID })}
}

// IDs returns the signal over the current set of anchor ids.
func (s *AnchorStore) IDs() *reactive.Signal[[]AnchorID] { return s.t.IDs() }

// Entity returns the per-anchor signal for id, or nil if absent.
func (s *AnchorStore) Entity(id AnchorID) *reactive.Signal[Anchor] { return s.t.Entity(id) }

// Get returns the current value of anchor id.
func (s *AnchorStore) Get(id AnchorID) (Anchor, bool) { return s.t.Get(id) }

// List returns every current anchor.
func (s *AnchorStore) List() []Anchor { return s.t.List() }

// SetAnchors replaces the full anchor table. Graph drives this from the
// union of every block's Anchors list (an anchor's lifetime is bounded by
// its owner block).
func (s *AnchorStore) SetAnchors(anchors []Anchor) { s.t.Set(anchors) }
