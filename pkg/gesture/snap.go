package gesture

import "math"

// snapToGrid rounds v to the nearest multiple of size. A size of 1 or
// smaller is a no-op, matching the default "no snap" behaviour.
func snapToGrid(v, size float64) float64 {
	if size <= 1 {
		return v
	}
	return math.Round(v/size) * size
}
