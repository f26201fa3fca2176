// Package hittest implements the spatial acceleration structure that maps a
// pointer position, or a query rectangle, to the topmost interactive
// component. No library anywhere in the retrieved pack specializes in
// spatial indexing (r-tree, quadtree, kd-tree); this is grounded on the
// standard library by necessity, not preference — see DESIGN.md.
package hittest

import (
	"sort"

	"github.com/blockgraph/graphkit/pkg/geom"
)

// Predicate refines a coarse grid hit into a precise one, e.g. a
// stroke-distance test for a connection's line rather than its bounding
// box. A nil predicate always passes.
type Predicate func(p geom.Point) bool

// ID identifies one hit-test entry. Callers typically use a component's
// instance pointer stringified, or their own entity id.
type ID string

type entry struct {
	id        ID
	rect      geom.Rect
	z         int
	insertion int
	hittable  bool
	boundingContributor bool
	predicate Predicate
	cells     []cellKey
}

type cellKey struct{ cx, cy int }

// Index is a mutable grid-bucketed spatial index over axis-aligned hit
// rectangles. CellSize should be chosen close to the median entry size;
// too small wastes bucket overhead, too large degrades toward a linear
// scan.
type Index struct {
	CellSize float64

	entries      map[ID]*entry
	buckets      map[cellKey][]ID
	nextInsertion int

	pendingUpdate bool
	onUpdate      []func()
}

// New creates an Index with the given grid cell size.
func New(cellSize float64) *Index {
	if cellSize <= 0 {
		cellSize = 64
	}
	return &Index{
		CellSize: cellSize,
		entries:  make(map[ID]*entry),
		buckets:  make(map[cellKey][]ID),
	}
}

func (ix *Index) cellsFor(r geom.Rect) []cellKey {
	x0 := int(floorDiv(r.X, ix.CellSize))
	y0 := int(floorDiv(r.Y, ix.CellSize))
	x1 := int(floorDiv(r.X+r.Width, ix.CellSize))
	y1 := int(floorDiv(r.Y+r.Height, ix.CellSize))

	cells := make([]cellKey, 0, (x1-x0+1)*(y1-y0+1))
	for cx := x0; cx <= x1; cx++ {
		for cy := y0; cy <= y1; cy++ {
			cells = append(cells, cellKey{cx, cy})
		}
	}
	return cells
}

func floorDiv(v, size float64) float64 {
	q := v / size
	if q < 0 {
		return q - 1
	}
	return q
}

// Insert adds id with the given rect, z-order, hittable, and
// bounding-contributor flags and an optional refinement predicate.
// Inserting an id that already exists replaces it.
func (ix *Index) Insert(id ID, rect geom.Rect, z int, hittable, boundingContributor bool, predicate Predicate) {
	if _, exists := ix.entries[id]; exists {
		ix.Remove(id)
	}
	e := &entry{
		id:                  id,
		rect:                rect,
		z:                   z,
		insertion:           ix.nextInsertion,
		hittable:            hittable,
		boundingContributor: boundingContributor,
		predicate:           predicate,
		cells:               ix.cellsFor(rect),
	}
	ix.nextInsertion++
	ix.entries[id] = e
	for _, c := range e.cells {
		ix.buckets[c] = append(ix.buckets[c], id)
	}
	ix.markDirty()
}

// Update replaces id's rect in place, re-bucketing only if its cell
// footprint changed.
func (ix *Index) Update(id ID, rect geom.Rect) {
	e, ok := ix.entries[id]
	if !ok {
		return
	}
	newCells := ix.cellsFor(rect)
	if !sameCells(e.cells, newCells) {
		ix.removeFromBuckets(e)
		e.cells = newCells
		for _, c := range newCells {
			ix.buckets[c] = append(ix.buckets[c], id)
		}
	}
	e.rect = rect
	ix.markDirty()
}

// Remove deletes id from the index.
func (ix *Index) Remove(id ID) {
	e, ok := ix.entries[id]
	if !ok {
		return
	}
	ix.removeFromBuckets(e)
	delete(ix.entries, id)
	ix.markDirty()
}

func (ix *Index) removeFromBuckets(e *entry) {
	for _, c := range e.cells {
		bucket := ix.buckets[c]
		for i, id := range bucket {
			if id == e.id {
				ix.buckets[c] = append(bucket[:i], bucket[i+1:]...)
				break
			}
		}
		if len(ix.buckets[c]) == 0 {
			delete(ix.buckets, c)
		}
	}
}

func sameCells(a, b []cellKey) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[cellKey]struct{}, len(a))
	for _, c := range a {
		set[c] = struct{}{}
	}
	for _, c := range b {
		if _, ok := set[c]; !ok {
			return false
		}
	}
	return true
}

// TestPoint returns the ids whose rect contains p and whose predicate (if
// any) accepts p, ordered (z desc, insertion desc) — topmost first.
func (ix *Index) TestPoint(p geom.Point) []ID {
	cell := cellKey{int(floorDiv(p.X, ix.CellSize)), int(floorDiv(p.Y, ix.CellSize))}
	candidates := ix.buckets[cell]

	var hits []*entry
	seen := make(map[ID]struct{}, len(candidates))
	for _, id := range candidates {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		e := ix.entries[id]
		if e == nil || !e.hittable {
			continue
		}
		if !e.rect.Contains(p.X, p.Y) {
			continue
		}
		if e.predicate != nil && !e.predicate(p) {
			continue
		}
		hits = append(hits, e)
	}
	sortTopmost(hits)

	out := make([]ID, len(hits))
	for i, e := range hits {
		out[i] = e.id
	}
	return out
}

// TestBox returns every hittable id whose rect intersects box, ordered
// (z desc, insertion desc). Predicates are not consulted for box queries:
// stroke-distance refinement only matters for single-point picking.
func (ix *Index) TestBox(box geom.Rect) []ID {
	cells := ix.cellsFor(box)
	seen := make(map[ID]struct{})
	var hits []*entry
	for _, c := range cells {
		for _, id := range ix.buckets[c] {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			e := ix.entries[id]
			if e == nil || !e.hittable {
				continue
			}
			if e.rect.Intersects(box) {
				hits = append(hits, e)
			}
		}
	}
	sortTopmost(hits)

	out := make([]ID, len(hits))
	for i, e := range hits {
		out[i] = e.id
	}
	return out
}

func sortTopmost(hits []*entry) {
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].z != hits[j].z {
			return hits[i].z > hits[j].z
		}
		return hits[i].insertion > hits[j].insertion
	})
}

// UsableRect returns the union of every bounding-contributor entry's rect,
// used to derive zoom_to("center")'s fit target. Returns ok=false if no
// entry contributes.
func (ix *Index) UsableRect() (rect geom.Rect, ok bool) {
	first := true
	for _, e := range ix.entries {
		if !e.boundingContributor {
			continue
		}
		if first {
			rect = e.rect
			first = false
			continue
		}
		rect = rect.Union(e.rect)
	}
	return rect, !first
}

func (ix *Index) markDirty() { ix.pendingUpdate = true }

// OnceUpdate registers cb to fire the next time Flush runs after at least
// one structural edit (insert/update/remove) since the prior flush.
func (ix *Index) OnceUpdate(cb func()) {
	ix.onUpdate = append(ix.onUpdate, cb)
}

// Flush fires and clears every OnceUpdate callback if the index has seen a
// structural edit since the last Flush. Callers run this once per
// scheduler tick after mutations for the frame are done.
func (ix *Index) Flush() {
	if !ix.pendingUpdate {
		return
	}
	ix.pendingUpdate = false
	cbs := ix.onUpdate
	ix.onUpdate = nil
	for _, cb := range cbs {
		cb()
	}
}
