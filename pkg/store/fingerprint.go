package store

// equalIDSets implements the identity-set membership-change algorithm that
// is the only permitted change-detection path for an id-list signal: two
// id lists are considered equal (no change, no notification) iff they have
// the same length and every id on one side is present on the other. Order
// and duplicate count don't matter; a genuine replacement of one id for
// another of the same total count still trips a change because some new id
// wouldn't be found in the old set.
func equalIDSets[ID comparable](a, b []ID) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[ID]struct{}, len(a))
	for _, id := range a {
		set[id] = struct{}{}
	}
	for _, id := range b {
		if _, ok := set[id]; !ok {
			return false
		}
	}
	return true
}
