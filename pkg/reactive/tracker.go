package reactive

import (
	"errors"
	"fmt"
	"strings"
)

// MaxDependencyDepth bounds how deep a chain of nested computed evaluations
// may go before the tracker assumes a programming error rather than a
// legitimately deep graph.
const MaxDependencyDepth = 100

// ErrCircularDependency identifies a cyclic-computed panic via errors.Is;
// the panic value itself is always a *CircularDependencyError carrying the
// offending dependency chain.
var ErrCircularDependency = errors.New("reactive: circular dependency detected")

// ErrMaxDepthExceeded is returned when a chain of nested computed
// evaluations exceeds MaxDependencyDepth.
var ErrMaxDepthExceeded = errors.New("reactive: max dependency depth exceeded")

// CircularDependencyError is panicked with when a computed value's
// evaluation re-enters its own evaluation, directly or through a chain of
// other computed values. Chain lists every frame from the re-entered
// computed back to the point of re-entry, in evaluation order, so the
// panic message names the actual cycle rather than just reporting that one
// exists.
type CircularDependencyError struct {
	Chain []string
}

func (e *CircularDependencyError) Error() string {
	return "reactive: circular dependency detected: " + strings.Join(e.Chain, " -> ")
}

func (e *CircularDependencyError) Unwrap() error { return ErrCircularDependency }

// frameLabel identifies a tracking frame's owner for a chain message. %p
// distinguishes same-typed computeds from each other in a longer cycle.
func frameLabel(dep dependency) string {
	return fmt.Sprintf("%T(%p)", dep, dep)
}

// dependency is anything that can be recorded as read during a tracked
// evaluation and later invalidated.
type dependency interface {
	invalidate()
}

// tracker records which signals/computeds are read during the evaluation of
// a Computed, so that the Computed can subscribe to exactly its current
// dependency set and nothing else. The engine runs update/render on a single
// scheduler thread (spec.md §5), so one shared stack is sufficient — no
// per-goroutine bookkeeping.
type tracker struct {
	stack []*trackingFrame
}

type trackingFrame struct {
	owner dependency
	read  []dependency
}

var globalTracker = &tracker{}

// begin pushes a new tracking frame for owner, detecting reentrancy
// (owner already present on the stack, i.e. a cycle) and excessive depth.
func (t *tracker) begin(owner dependency) error {
	for i, f := range t.stack {
		if f.owner == owner {
			chain := make([]string, 0, len(t.stack)-i+1)
			for _, frame := range t.stack[i:] {
				chain = append(chain, frameLabel(frame.owner))
			}
			chain = append(chain, frameLabel(owner))
			return &CircularDependencyError{Chain: chain}
		}
	}
	if len(t.stack) >= MaxDependencyDepth {
		return ErrMaxDepthExceeded
	}
	t.stack = append(t.stack, &trackingFrame{owner: owner})
	return nil
}

// end pops the current frame and returns the set of dependencies read
// during it.
func (t *tracker) end() []dependency {
	n := len(t.stack)
	frame := t.stack[n-1]
	t.stack = t.stack[:n-1]
	return frame.read
}

// record registers dep as read by the current tracking frame, if any.
func (t *tracker) record(dep dependency) {
	if len(t.stack) == 0 {
		return
	}
	frame := t.stack[len(t.stack)-1]
	for _, existing := range frame.read {
		if existing == dep {
			return
		}
	}
	frame.read = append(frame.read, dep)
}

// tracking reports whether an evaluation is currently in progress.
func (t *tracker) tracking() bool {
	return len(t.stack) > 0
}
