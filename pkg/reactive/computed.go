package reactive

// Computed is a pull-based derivation over one or more Signals (or other
// Computed values). It is lazy: fn is not called until the first Get, and
// memoised: subsequent Gets return the cached value until a dependency
// changes. Cyclic dependency graphs are rejected with a panicked
// *CircularDependencyError.
type Computed[T any] struct {
	fn         func() T
	cache      T
	dirty      bool
	subscribed []dependency // signals/computeds this depends on right now
	dependents []dependency // computeds that depend on this one
}

// NewComputed creates a lazily-evaluated derivation. fn must not be nil.
func NewComputed[T any](fn func() T) *Computed[T] {
	if fn == nil {
		panic("reactive: NewComputed requires a non-nil function")
	}
	return &Computed[T]{fn: fn, dirty: true}
}

// Get returns the current derived value, recomputing it first if any
// dependency has changed since the last Get. Panics with a
// *CircularDependencyError (or ErrMaxDepthExceeded) if evaluating fn
// re-enters this Computed's own evaluation.
func (c *Computed[T]) Get() T {
	globalTracker.record(c)

	if !c.dirty {
		return c.cache
	}

	if err := globalTracker.begin(c); err != nil {
		panic(err)
	}
	var read []dependency
	func() {
		defer func() { read = globalTracker.end() }()
		c.cache = c.fn()
	}()

	c.resubscribe(read)
	c.dirty = false
	return c.cache
}

// resubscribe replaces c's dependency edges with exactly the set read
// during the most recent evaluation, so stale conditional dependencies
// (e.g. the losing branch of an if) stop triggering invalidation.
func (c *Computed[T]) resubscribe(read []dependency) {
	for _, old := range c.subscribed {
		removeDependent(old, c)
	}
	c.subscribed = read
	for _, dep := range read {
		addDependent(dep, c)
	}
}

// invalidate implements dependency: mark dirty and propagate to anything
// that in turn depends on this Computed.
func (c *Computed[T]) invalidate() {
	if c.dirty {
		return
	}
	c.dirty = true
	dependents := c.dependents
	c.dependents = nil
	for _, d := range dependents {
		d.invalidate()
	}
}

func addDependent(dep dependency, who dependency) {
	switch d := dep.(type) {
	case interface{ addDependentErased(dependency) }:
		d.addDependentErased(who)
	}
}

func removeDependent(dep dependency, who dependency) {
	switch d := dep.(type) {
	case interface{ removeDependentErased(dependency) }:
		d.removeDependentErased(who)
	}
}

// addDependentErased / removeDependentErased let Computed register itself
// against a dependency of unknown concrete element type (Signal[T] for any
// T, or another Computed[U]) without generic methods on the dependency
// interface.
func (c *Computed[T]) addDependentErased(who dependency) {
	for _, d := range c.dependents {
		if d == who {
			return
		}
	}
	c.dependents = append(c.dependents, who)
}

func (c *Computed[T]) removeDependentErased(who dependency) {
	for i, d := range c.dependents {
		if d == who {
			c.dependents = append(c.dependents[:i], c.dependents[i+1:]...)
			return
		}
	}
}
