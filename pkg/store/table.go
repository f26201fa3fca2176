package store

import "github.com/blockgraph/graphkit/pkg/reactive"

// table is the generic shape shared by the four entity tables: a
// membership-fingerprinted id-list signal plus one per-entity signal per
// row. Components subscribe to the row they care about and, separately, to
// the id list when they need to know about additions/removals.
type table[ID comparable, E any] struct {
	ids      *reactive.Signal[[]ID]
	entities map[ID]*reactive.Signal[E]
	idOf     func(E) ID
}

func newTable[ID comparable, E any](idOf func(E) ID) *table[ID, E] {
	return &table[ID, E]{
		ids:      reactive.NewWithEqual[[]ID](nil, equalIDSets[ID]),
		entities: make(map[ID]*reactive.Signal[E]),
		idOf:     idOf,
	}
}

// IDs returns the id-list signal for subscribing to membership changes.
func (t *table[ID, E]) IDs() *reactive.Signal[[]ID] { return t.ids }

// Entity returns the per-row signal for id, or nil if id isn't present.
func (t *table[ID, E]) Entity(id ID) *reactive.Signal[E] { return t.entities[id] }

// Get returns the current value for id and whether it exists.
func (t *table[ID, E]) Get(id ID) (E, bool) {
	sig, ok := t.entities[id]
	if !ok {
		var zero E
		return zero, false
	}
	return sig.Peek(), true
}

// List returns every current row value in id-list order.
func (t *table[ID, E]) List() []E {
	ids := t.ids.Peek()
	out := make([]E, 0, len(ids))
	for _, id := range ids {
		if sig, ok := t.entities[id]; ok {
			out = append(out, sig.Peek())
		}
	}
	return out
}

// Set replaces the table's full contents: rows not present in rows are
// removed, rows still present keep their signal and receive the new value
// through it (so subscribers that reference it by pointer stay valid), and
// the id list is updated
// through the fingerprint equality check.
func (t *table[ID, E]) Set(rows []E) {
	next := make(map[ID]*reactive.Signal[E], len(rows))
	ids := make([]ID, 0, len(rows))
	for _, row := range rows {
		id := t.idOf(row)
		ids = append(ids, id)
		if sig, ok := t.entities[id]; ok {
			sig.Set(row)
			next[id] = sig
		} else {
			next[id] = reactive.New(row)
		}
	}
	t.entities = next
	t.ids.Set(ids)
}

// UpdateOne merges a single partial mutation into row id via merge. It is a
// no-op if id isn't present: update_blocks/update_connections never create
// new rows.
func (t *table[ID, E]) UpdateOne(id ID, merge func(current E) E) {
	sig, ok := t.entities[id]
	if !ok {
		return
	}
	sig.Set(merge(sig.Peek()))
}
