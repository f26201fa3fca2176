package store

import "github.com/blockgraph/graphkit/pkg/reactive"

// BlockStore is the reactive table of Blocks.
type BlockStore struct {
	t *table[BlockID, Block]
}

func newBlockStore() *BlockStore {
	return &BlockStore{t: newTable(func(b Block) BlockID { return b.ID })}
}

// IDs returns the signal over the current set of block ids.
func (s *BlockStore) IDs() *reactive.Signal[[]BlockID] { return s.t.IDs() }

// Entity returns the per-block signal for id, or nil if absent.
func (s *BlockStore) Entity(id BlockID) *reactive.Signal[Block] { return s.t.Entity(id) }

// Get returns the current value of block id.
func (s *BlockStore) Get(id BlockID) (Block, bool) { return s.t.Get(id) }

// List returns every current block.
func (s *BlockStore) List() []Block { return s.t.List() }

// SetBlocks replaces the full block table.
func (s *BlockStore) SetBlocks(blocks []Block) { s.t.Set(blocks) }

// UpdateBlocks merges each partial onto its existing block. Partials whose
// ID has no matching row are ignored.
func (s *BlockStore) UpdateBlocks(partials []BlockPartial) {
	for _, p := range partials {
		s.t.UpdateOne(p.ID, func(b Block) Block { return applyBlockPartial(b, p) })
	}
}

// SetXY is the dedicated fast path for drag controllers: it writes only
// position, never touching the rest of the block.
func (s *BlockStore) SetXY(id BlockID, x, y float64) {
	s.t.UpdateOne(id, func(b Block) Block {
		b.X, b.Y = x, y
		return b
	})
}

func applyBlockPartial(b Block, p BlockPartial) Block {
	if p.KindTag != nil {
		b.KindTag = *p.KindTag
	}
	if p.X != nil {
		b.X = *p.X
	}
	if p.Y != nil {
		b.Y = *p.Y
	}
	if p.W != nil {
		b.W = *p.W
	}
	if p.H != nil {
		b.H = *p.H
	}
	if p.Name != nil {
		b.Name = *p.Name
	}
	if p.Group != nil {
		b.Group = *p.Group
	}
	if p.Selected != nil {
		b.Selected = *p.Selected
	}
	if p.Anchors != nil {
		b.Anchors = p.Anchors
	}
	if p.UserMeta != nil {
		b.UserMeta = mergeUserMeta(b.UserMeta, p.UserMeta)
	}
	return b
}

// mergeUserMeta overlays additions onto existing without discarding keys
// additions doesn't mention, matching the spec's "user_meta ... preserved
// verbatim through partial updates" requirement.
func mergeUserMeta(existing, additions map[string]any) map[string]any {
	merged := make(map[string]any, len(existing)+len(additions))
	for k, v := range existing {
		merged[k] = v
	}
	for k, v := range additions {
		merged[k] = v
	}
	return merged
}
