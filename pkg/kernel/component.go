// Package kernel implements the scene-graph component tree: a rooted,
// strictly owned hierarchy of component instances with keyed child
// reconciliation and a two-phase update/render protocol (spec.md §4.C).
//
// The source this engine was ported from models concrete kinds (block,
// connection, anchor, ...) as a deep class hierarchy rooted at a single
// "component" base class. Per spec.md §9 ("Replacing inheritance
// hierarchies") that is reimplemented here as a single Component trait
// plus whatever tagged-variant types concrete packages (pkg/render)
// choose to build on top of it.
package kernel

// ChildSpec describes one child a component wants mounted for the current
// update pass: (type tag, stable key, props). The kernel diffs a
// component's returned ChildSpecs against its current children by Key.
type ChildSpec struct {
	Type  string
	Key   string
	Props any
}

// Component is the behavioural contract every scene-graph node implements.
// Kernel owns lifecycle and tree bookkeeping (Instance); Component owns
// domain behaviour.
type Component interface {
	// WillUpdate runs at the start of the update phase for this instance,
	// before children are reconciled. It must not mutate sibling or parent
	// state (spec.md §4.C).
	WillUpdate(ctx *Context)

	// Children returns the desired child list for this update pass. The
	// kernel reconciles it against the existing children by Key.
	Children(ctx *Context) []ChildSpec

	// DidIterate runs after children have been reconciled.
	DidIterate(ctx *Context)

	// Render paints this instance. Render must not mutate sibling or
	// parent state, and may only request its own future re-render/update
	// via Context, never render synchronously.
	Render(ctx *RenderContext)

	// Visible gates the render phase: an invisible component is not
	// rendered, but its children are still visited and gated by their own
	// Visible.
	Visible() bool
}

// Mounter is an optional extension: components that hold resources (signal
// subscriptions, hit-index entries, event-bus registrations) implement it
// to release them deterministically.
type Mounter interface {
	OnMount(ctx *Context)
	OnUnmount(ctx *Context)
}

// Factory constructs a Component for a given type tag. Used by the
// block_components / connection_components dispatch tables (spec.md §6).
type Factory func() Component

// Registry maps type tags to factories, the "registry of factory
// functions" variant of spec.md §9's dispatch-table note (kept open for
// caller extension rather than a closed enum, since kind tags are
// caller-supplied strings).
type Registry map[string]Factory
