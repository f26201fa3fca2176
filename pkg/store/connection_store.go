package store

import "github.com/blockgraph/graphkit/pkg/reactive"

// ConnectionStore is the reactive table of Connections.
type ConnectionStore struct {
	t *table[ConnectionID, Connection]
}

func newConnectionStore() *ConnectionStore {
	return &ConnectionStore{t: newTable(func(c Connection) ConnectionID { return c.ID })}
}

// IDs returns the signal over the current set of connection ids.
func (s *ConnectionStore) IDs() *reactive.Signal[[]ConnectionID] { return s.t.IDs() }

// Entity returns the per-connection signal for id, or nil if absent.
func (s *ConnectionStore) Entity(id ConnectionID) *reactive.Signal[Connection] { return s.t.Entity(id) }

// Get returns the current value of connection id.
func (s *ConnectionStore) Get(id ConnectionID) (Connection, bool) { return s.t.Get(id) }

// List returns every current connection.
func (s *ConnectionStore) List() []Connection { return s.t.List() }

// SetConnections replaces the full connection table.
func (s *ConnectionStore) SetConnections(conns []Connection) { s.t.Set(conns) }

// UpdateConnections merges each partial onto its existing connection.
func (s *ConnectionStore) UpdateConnections(partials []ConnectionPartial) {
	for _, p := range partials {
		s.t.UpdateOne(p.ID, func(c Connection) Connection { return applyConnectionPartial(c, p) })
	}
}

// Broken reports whether either endpoint fails to resolve to a live block,
// in which case the connection must not be rendered (spec invariant).
func (s *ConnectionStore) Broken(c Connection, blocks *BlockStore) bool {
	if _, ok := blocks.Get(c.SourceBlock); !ok {
		return true
	}
	if _, ok := blocks.Get(c.TargetBlock); !ok {
		return true
	}
	return false
}

func applyConnectionPartial(c Connection, p ConnectionPartial) Connection {
	if p.KindTag != nil {
		c.KindTag = *p.KindTag
	}
	if p.SourceBlock != nil {
		c.SourceBlock = *p.SourceBlock
	}
	if p.TargetBlock != nil {
		c.TargetBlock = *p.TargetBlock
	}
	if p.SourceAnchor != nil {
		c.SourceAnchor = *p.SourceAnchor
	}
	if p.TargetAnchor != nil {
		c.TargetAnchor = *p.TargetAnchor
	}
	if p.Selected != nil {
		c.Selected = *p.Selected
	}
	if p.Label != nil {
		c.Label = *p.Label
	}
	if p.Dashed != nil {
		c.Dashed = *p.Dashed
	}
	if p.Styles != nil {
		c.Styles = p.Styles
	}
	if p.Points != nil {
		c.Points = p.Points
	}
	if p.UserMeta != nil {
		c.UserMeta = mergeUserMeta(c.UserMeta, p.UserMeta)
	}
	return c
}
