package kernel

// ProvideKey is a type-safe provide/inject key broadcast through component
// context, mirroring how view_configuration.colors/.constants reach every
// component regardless of depth (spec.md §6).
type ProvideKey[T any] struct{ name string }

// NewProvideKey creates a typed key. Keys are compared by name, so reuse
// the same key value (or an equal one) between Provide and Inject calls.
func NewProvideKey[T any](name string) ProvideKey[T] { return ProvideKey[T]{name: name} }

// node is implemented by Context and RenderContext so Provide/Inject work
// identically during the update and render phases.
type node interface {
	node() *Instance
}

// Provide stores value on ctx's instance, visible to it and every
// descendant that doesn't shadow it with its own Provide of the same key.
func Provide[T any](ctx node, key ProvideKey[T], value T) {
	inst := ctx.node()
	if inst.provides == nil {
		inst.provides = make(map[string]any)
	}
	inst.provides[key.name] = value
}

// Inject walks from ctx's instance up to the root looking for the nearest
// Provide of key, returning fallback if none is found.
func Inject[T any](ctx node, key ProvideKey[T], fallback T) T {
	for n := ctx.node(); n != nil; n = n.parent {
		if n.provides == nil {
			continue
		}
		if v, ok := n.provides[key.name]; ok {
			if typed, ok := v.(T); ok {
				return typed
			}
		}
	}
	return fallback
}

// Context is passed to Component.WillUpdate/Children/DidIterate. It exposes
// this instance's props and lets the component ask the kernel for another
// update or render pass without ever rendering synchronously (spec.md
// §4.C: "set_state and set_props never render synchronously").
type Context struct {
	inst *Instance
}

// Props returns the props most recently set on this instance.
func (c *Context) Props() any { return c.inst.Props }

// Key returns this instance's reconciliation key.
func (c *Context) Key() string { return c.inst.Key }

// Instance exposes the underlying Instance for code that needs tree
// position (e.g. a Mounter releasing a hit-index entry keyed by instance).
func (c *Context) Instance() *Instance { return c.inst }

func (c *Context) node() *Instance { return c.inst }

// Invalidate marks this instance dirty for the next update phase. It does
// not request a frame; the mark is picked up by the next UpdatePhase.
func (c *Context) Invalidate() { c.inst.tree.MarkNeedsUpdate(c.inst) }

// InvalidateRender marks this instance dirty for the next render phase
// without forcing a child reconciliation.
func (c *Context) InvalidateRender() { c.inst.tree.MarkNeedsRender(c.inst) }

// RenderContext is passed to Component.Render. It is read-only: render must
// not mutate sibling or parent state (spec.md §4.C).
type RenderContext struct {
	inst *Instance
}

// Props returns the props most recently set on this instance.
func (c *RenderContext) Props() any { return c.inst.Props }

// Instance exposes the underlying Instance (e.g. for ZIndex/Order).
func (c *RenderContext) Instance() *Instance { return c.inst }

func (c *RenderContext) node() *Instance { return c.inst }

// Invalidate requests another update pass for this instance from inside
// Render — queued for the next frame, never synchronous.
func (c *RenderContext) Invalidate() { c.inst.tree.MarkNeedsUpdate(c.inst) }
