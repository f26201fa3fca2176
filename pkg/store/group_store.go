package store

import "github.com/blockgraph/graphkit/pkg/reactive"

// GroupStore is the reactive table of Groups.
type GroupStore struct {
	t *table[GroupID, Group]
}

func newGroupStore() *GroupStore {
	return &GroupStore{t: newTable(func(g Group) GroupID { return g.ID })}
}

// IDs returns the signal over the current set of group ids.
func (s *GroupStore) IDs() *reactive.Signal[[]GroupID] { return s.t.IDs() }

// Entity returns the per-group signal for id, or nil if absent.
func (s *GroupStore) Entity(id GroupID) *reactive.Signal[Group] { return s.t.Entity(id) }

// Get returns the current value of group id.
func (s *GroupStore) Get(id GroupID) (Group, bool) { return s.t.Get(id) }

// List returns every current group.
func (s *GroupStore) List() []Group { return s.t.List() }

// SetGroups replaces the full group table.
func (s *GroupStore) SetGroups(groups []Group) { s.t.Set(groups) }

// UpdateGroups merges each partial onto its existing group, added for
// symmetry with UpdateBlocks/UpdateConnections.
func (s *GroupStore) UpdateGroups(partials []GroupPartial) {
	for _, p := range partials {
		s.t.UpdateOne(p.ID, func(g Group) Group { return applyGroupPartial(g, p) })
	}
}

func applyGroupPartial(g Group, p GroupPartial) Group {
	if p.Rect != nil {
		g.Rect = *p.Rect
	}
	if p.Name != nil {
		g.Name = *p.Name
	}
	if p.MemberBlocks != nil {
		g.MemberBlocks = p.MemberBlocks
	}
	if p.UserMeta != nil {
		g.UserMeta = mergeUserMeta(g.UserMeta, p.UserMeta)
	}
	return g
}
