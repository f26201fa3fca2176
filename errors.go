package graphkit

import "fmt"

// Validation errors (spec.md §7.1): surfaced synchronously from the
// offending API call, never queued onto the event bus.
var (
	ErrUnknownBlock      = fmt.Errorf("graphkit: unknown block id")
	ErrUnknownAnchor     = fmt.Errorf("graphkit: unknown anchor id")
	ErrUnknownConnection = fmt.Errorf("graphkit: unknown connection id")
	ErrDuplicateID       = fmt.Errorf("graphkit: duplicate id")
	ErrUnknownEntityType = fmt.Errorf("graphkit: unknown selection entity type")

	// ErrResourceUnavailable is the §7.1 "resource" failure: New returns it
	// (wrapped) when a LayerSpec names a layer type with no registered
	// constructor, so no drawing surface can be built. Layer.Attach itself
	// never fails.
	ErrResourceUnavailable = fmt.Errorf("graphkit: drawing context unavailable")
)

// InternalError is the §7.2 "consistency" failure: a component's
// update/render lifecycle method panicked. It is never returned from a
// public API call; the kernel recovers it and the graph forwards it as the
// payload of an "internal-error" bus event, then quarantines the failing
// instance until its props are next set.
type InternalError struct {
	// Path is the chain of component type tags from the root to the
	// failing instance, as reported by kernel.OnError.
	Path []string
	Err  error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("graphkit: internal error in %v: %v", e.Path, e.Err)
}

func (e *InternalError) Unwrap() error { return e.Err }

// QuarantineError wraps an InternalError with the instance's type tag, the
// shape callers see on the "internal-error" bus payload alongside the
// quarantined component's key so a devtools overlay can highlight it.
type QuarantineError struct {
	ComponentType string
	ComponentKey  string
	*InternalError
}
