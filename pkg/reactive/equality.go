package reactive

import "reflect"

// EqualFunc compares two values of type T for the purposes of a Signal's
// no-op write check, letting callers plug in a cheaper comparison than
// reflect.DeepEqual (e.g. comparing just an id) when one is known.
type EqualFunc[T any] func(a, b T) bool

func deepEqual[T any](a, b T) bool {
	return reflect.DeepEqual(a, b)
}
