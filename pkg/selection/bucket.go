package selection

import (
	"sort"

	"github.com/blockgraph/graphkit/pkg/reactive"
)

// Bucket holds the selected id set for one entity type. Multiple controls
// whether more than one id can be selected at once.
type Bucket struct {
	Multiple bool

	signal *reactive.Signal[[]string]
}

func newBucket(multiple bool) *Bucket {
	return &Bucket{
		Multiple: multiple,
		signal:   reactive.NewWithEqual[[]string](nil, equalStringSets),
	}
}

func equalStringSets(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Signal exposes the bucket's current selection for subscription.
func (b *Bucket) Signal() *reactive.Signal[[]string] { return b.signal }

// Current returns the bucket's current selection without tracking it as a
// computed dependency.
func (b *Bucket) Current() []string { return b.signal.Peek() }

// Update applies strategy to ids with the given select flag, previewing the
// change through handler unless handler is nil ("silent" update, per the
// spec's escape hatch for callers that don't want the preview/cancel dance).
// It returns true if the selection changed.
func (b *Bucket) Update(ids []string, selectFlag bool, strategy Strategy, handler ChangeHandler) bool {
	current := b.signal.Peek()
	next := b.apply(current, dedupe(ids), selectFlag, strategy)

	diff := diffOf(current, next)
	if len(diff.Added) == 0 && len(diff.Removed) == 0 {
		return false
	}

	if handler == nil {
		b.signal.Set(next)
		return true
	}

	applied := next
	called := false
	apply := func(explicit ...[]string) {
		called = true
		if len(explicit) > 0 {
			applied = dedupe(explicit[0])
		}
	}

	if ok := handler(diff, apply); !ok {
		return false
	}
	_ = called // calling apply is optional; not calling it still applies diff.List

	b.signal.Set(applied)
	return true
}

func (b *Bucket) apply(current, ids []string, selectFlag bool, strategy Strategy) []string {
	if b.Multiple {
		return applyMultiple(current, ids, selectFlag, strategy)
	}
	return applySingle(current, ids, selectFlag, strategy)
}

func applyMultiple(current, ids []string, selectFlag bool, strategy Strategy) []string {
	switch strategy {
	case Replace:
		if !selectFlag {
			return nil
		}
		return dedupe(ids)
	case Append:
		if !selectFlag {
			return current
		}
		return union(current, ids)
	case Subtract:
		return difference(current, ids)
	case Toggle:
		if !selectFlag {
			return difference(current, ids)
		}
		return symmetricDifference(current, ids)
	default:
		return current
	}
}

func applySingle(current, ids []string, selectFlag bool, strategy Strategy) []string {
	if !selectFlag || strategy == Subtract {
		set := toSet(ids)
		for _, id := range current {
			if _, hit := set[id]; hit {
				return nil
			}
		}
		return current
	}

	if len(ids) == 0 {
		return nil
	}
	return []string{ids[0]}
}

func union(a, b []string) []string {
	set := toSet(a)
	for _, id := range b {
		set[id] = struct{}{}
	}
	return sortedKeys(set)
}

func difference(a, b []string) []string {
	remove := toSet(b)
	var out []string
	for _, id := range a {
		if _, hit := remove[id]; !hit {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

func symmetricDifference(a, b []string) []string {
	set := toSet(a)
	for _, id := range b {
		if _, hit := set[id]; hit {
			delete(set, id)
		} else {
			set[id] = struct{}{}
		}
	}
	return sortedKeys(set)
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
