package selection

import (
	"sort"

	"github.com/blockgraph/graphkit/pkg/reactive"
)

// Service owns one Bucket per entity type and exposes their aggregate as a
// single computed view.
type Service struct {
	buckets    map[EntityType]*Bucket
	aggregated *reactive.Computed[map[EntityType][]string]
}

// New creates a Service. multiple maps each entity type this graph cares
// about to whether its bucket allows multi-selection; callers register
// every type up front (the service has no implicit bucket creation, so a
// typo in an entity type string surfaces immediately as a missing bucket
// rather than a silently-created empty one).
func New(multiple map[EntityType]bool) *Service {
	s := &Service{buckets: make(map[EntityType]*Bucket, len(multiple))}
	for t, m := range multiple {
		s.buckets[t] = newBucket(m)
	}
	s.aggregated = reactive.NewComputed(func() map[EntityType][]string {
		out := make(map[EntityType][]string, len(s.buckets))
		for t, b := range s.buckets {
			out[t] = b.signal.Get()
		}
		return out
	})
	return s
}

// Bucket returns the bucket for t, or nil if t wasn't registered.
func (s *Service) Bucket(t EntityType) *Bucket { return s.buckets[t] }

// Selection returns the aggregated $selection view: every bucket's current
// selection, keyed by entity type. Reading it inside a Computed records a
// dependency on every bucket.
func (s *Service) Selection() map[EntityType][]string { return s.aggregated.Get() }

// Select applies strategy to ids within bucket t. When strategy is
// Replace, every other registered bucket is cleared too (the cross-bucket
// reset policy); Append/Subtract/Toggle never touch other buckets.
func (s *Service) Select(t EntityType, ids []string, selectFlag bool, strategy Strategy, handler ChangeHandler) bool {
	bucket, ok := s.buckets[t]
	if !ok {
		return false
	}
	changed := bucket.Update(ids, selectFlag, strategy, handler)

	if strategy == Replace {
		for other, b := range s.buckets {
			if other == t {
				continue
			}
			if b.Update(nil, false, Replace, handler) {
				changed = true
			}
		}
	}
	return changed
}

// Types returns every registered entity type, sorted, mostly useful for
// tests and debugging.
func (s *Service) Types() []EntityType {
	out := make([]EntityType, 0, len(s.buckets))
	for t := range s.buckets {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
