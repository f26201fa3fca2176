package kernel

import (
	"fmt"
	"sort"
)

// OnError is called when a component's lifecycle method panics. path is the
// chain of type tags from the root to the failing instance. The kernel
// itself never panics past a Tree boundary; callers typically forward err
// to the event bus as an "internal-error" (spec.md §7.2).
type OnError func(path []string, err error)

// Tree owns one rooted component tree: registry, root instance, and the
// per-frame update/render passes. A Tree does not own a scheduler; callers
// drive UpdatePhase/RenderPhase from their own scheduler tick (pkg/scheduler)
// so that hit-index maintenance and other phases can be interleaved exactly
// as spec.md §5 orders them.
type Tree struct {
	registry       Registry
	root           *Instance
	nextInsertion  int
	onError        OnError
	dirtyComponent map[*Instance]bool
}

// NewTree mounts rootType (looked up in registry) with rootProps as the
// tree's root instance.
func NewTree(registry Registry, rootType string, rootProps any, onError OnError) (*Tree, error) {
	t := &Tree{registry: registry, onError: onError, dirtyComponent: make(map[*Instance]bool)}
	factory, ok := registry[rootType]
	if !ok {
		return nil, fmt.Errorf("kernel: unknown component type %q", rootType)
	}
	t.root = t.mount(nil, rootType, "root", rootProps, factory)
	return t, nil
}

// Root returns the tree's root instance.
func (t *Tree) Root() *Instance { return t.root }

func (t *Tree) mount(parent *Instance, typ, key string, props any, factory Factory) *Instance {
	inst := &Instance{
		Type:           typ,
		Key:            key,
		Component:      factory(),
		Props:          props,
		parent:         parent,
		tree:           t,
		insertionIndex: t.nextInsertion,
		needsUpdate:    true,
	}
	t.nextInsertion++
	if m, ok := inst.Component.(Mounter); ok {
		m.OnMount(&Context{inst: inst})
	}
	inst.mounted = true
	return inst
}

func (t *Tree) unmount(inst *Instance) {
	for _, child := range inst.children {
		t.unmount(child)
	}
	if m, ok := inst.Component.(Mounter); ok {
		m.OnUnmount(&Context{inst: inst})
	}
	inst.mounted = false
}

// MarkNeedsUpdate flags inst for the next UpdatePhase and clears any
// quarantine: a fresh set_props/set_state is how §7.2 says a quarantined
// component is revived.
func (t *Tree) MarkNeedsUpdate(inst *Instance) {
	inst.needsUpdate = true
	inst.errored = false
}

// MarkNeedsRender flags inst for the next RenderPhase.
func (t *Tree) MarkNeedsRender(inst *Instance) {
	inst.needsRender = true
}

// SetProps replaces inst's props and marks it for update, matching
// Component Context's "never renders synchronously" contract.
func (t *Tree) SetProps(inst *Instance, props any) {
	inst.Props = props
	t.MarkNeedsUpdate(inst)
}

// CountNeedsUpdate reports how many instances are flagged needsUpdate,
// for instrumentation taken just before UpdatePhase runs.
func (t *Tree) CountNeedsUpdate() int {
	return countNeedsUpdate(t.root)
}

func countNeedsUpdate(inst *Instance) int {
	n := 0
	if inst.needsUpdate {
		n++
	}
	for _, child := range inst.children {
		n += countNeedsUpdate(child)
	}
	return n
}

// UpdatePhase walks the tree top-down. Every instance whose needsUpdate
// flag is set gets WillUpdate -> reconcile children -> DidIterate; the walk
// continues into all children (reconciled or not) because a deeply nested
// component's own signal subscription can mark it dirty independent of its
// ancestors (spec.md §4.C).
func (t *Tree) UpdatePhase() {
	t.updateInstance(t.root, []string{})
}

func (t *Tree) updateInstance(inst *Instance, path []string) {
	path = append(path, inst.Type)

	if inst.needsUpdate {
		t.runGuarded(inst, path, func() {
			ctx := &Context{inst: inst}
			inst.Component.WillUpdate(ctx)
			specs := inst.Component.Children(ctx)
			t.reconcile(inst, specs)
			inst.Component.DidIterate(ctx)
		})
		inst.needsUpdate = false
		inst.needsRender = true
	}

	for _, child := range inst.children {
		t.updateInstance(child, path)
	}
}

// reconcile diffs specs against inst's current children by key: same
// key+type keeps the instance (SetProps); same key, different type unmounts
// then mounts; a key present only in specs mounts; a key present only in
// the old children unmounts (spec.md §4.C).
func (t *Tree) reconcile(inst *Instance, specs []ChildSpec) {
	existing := make(map[string]*Instance, len(inst.children))
	for _, c := range inst.children {
		existing[c.Key] = c
	}

	kept := make(map[string]bool, len(specs))
	next := make([]*Instance, 0, len(specs))
	for _, spec := range specs {
		kept[spec.Key] = true
		old, hasOld := existing[spec.Key]
		switch {
		case hasOld && old.Type == spec.Type:
			t.SetProps(old, spec.Props)
			next = append(next, old)
		case hasOld:
			t.unmount(old)
			fallthrough
		default:
			factory, ok := t.registry[spec.Type]
			if !ok {
				continue
			}
			next = append(next, t.mount(inst, spec.Type, spec.Key, spec.Props, factory))
		}
	}
	for key, old := range existing {
		if !kept[key] {
			t.unmount(old)
		}
	}
	inst.children = next
}

// runGuarded runs fn, recovering any panic into the quarantine behaviour of
// spec.md §7.2: the instance is marked errored (hiding its subtree until
// MarkNeedsUpdate clears it) and the error is reported via OnError.
func (t *Tree) runGuarded(inst *Instance, path []string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			inst.errored = true
			if t.onError != nil {
				err, ok := r.(error)
				if !ok {
					err = fmt.Errorf("%v", r)
				}
				t.onError(append([]string(nil), path...), err)
			}
		}
	}()
	fn()
}

// visible reports whether inst should participate in this frame's render,
// hit-test, and usable-rect computation: not quarantined (itself or an
// ancestor) and Component.Visible() true.
func (inst *Instance) visible() bool {
	if inst.hidden() {
		return false
	}
	return inst.Component.Visible()
}

// RenderPhase collects every instance with needsRender set whose Visible()
// (and non-quarantined ancestry) holds, stable-sorts them by
// (ZIndex, Order, insertion index) — insertion order is the canonical tie
// break per DESIGN.md Open Question (a) — and renders them in that order.
func (t *Tree) RenderPhase() {
	var queue []*Instance
	t.collectRenderable(t.root, &queue)

	sort.SliceStable(queue, func(i, j int) bool {
		a, b := queue[i], queue[j]
		if a.ZIndex != b.ZIndex {
			return a.ZIndex < b.ZIndex
		}
		if a.Order != b.Order {
			return a.Order < b.Order
		}
		return a.insertionIndex < b.insertionIndex
	})

	for _, inst := range queue {
		t.runGuarded(inst, []string{inst.Type}, func() {
			inst.Component.Render(&RenderContext{inst: inst})
		})
		inst.needsRender = false
	}
}

func (t *Tree) collectRenderable(inst *Instance, out *[]*Instance) {
	if inst.hidden() {
		return
	}
	if inst.needsRender && inst.Component.Visible() {
		*out = append(*out, inst)
	}
	for _, c := range inst.children {
		t.collectRenderable(c, out)
	}
}
