package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubComponent struct {
	childSpecs   []ChildSpec
	willUpdates  int
	didIterates  int
	renders      int
	visible      bool
	panicOnWill  bool
	panicOnRender bool
	mounted      int
	unmounted    int
	renderLog    *[]string
}

func newStub() *stubComponent { return &stubComponent{visible: true} }

func (s *stubComponent) WillUpdate(ctx *Context) {
	if s.panicOnWill {
		panic("boom")
	}
	s.willUpdates++
}
func (s *stubComponent) Children(ctx *Context) []ChildSpec { return s.childSpecs }
func (s *stubComponent) DidIterate(ctx *Context)           { s.didIterates++ }
func (s *stubComponent) Render(ctx *RenderContext) {
	if s.panicOnRender {
		panic("boom-render")
	}
	s.renders++
	if s.renderLog != nil {
		*s.renderLog = append(*s.renderLog, ctx.Instance().Key)
	}
}
func (s *stubComponent) Visible() bool { return s.visible }
func (s *stubComponent) OnMount(ctx *Context) { s.mounted++ }
func (s *stubComponent) OnUnmount(ctx *Context) { s.unmounted++ }

func registryWithStub(stubs map[string]*stubComponent) Registry {
	reg := make(Registry)
	for typ, st := range stubs {
		st := st
		reg[typ] = func() Component { return st }
	}
	return reg
}

func TestNewTreeMountsRoot(t *testing.T) {
	root := newStub()
	tree, err := NewTree(registryWithStub(map[string]*stubComponent{"root": root}), "root", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, root.mounted)
	assert.Equal(t, "root", tree.Root().Type)
}

func TestNewTreeUnknownTypeErrors(t *testing.T) {
	_, err := NewTree(Registry{}, "missing", nil, nil)
	assert.Error(t, err)
}

func TestUpdatePhaseRunsWillUpdateThenReconcileThenDidIterate(t *testing.T) {
	child := newStub()
	root := newStub()
	root.childSpecs = []ChildSpec{{Type: "child", Key: "c1", Props: 1}}

	tree, err := NewTree(registryWithStub(map[string]*stubComponent{
		"root": root, "child": child,
	}), "root", nil, nil)
	require.NoError(t, err)

	tree.UpdatePhase()

	assert.Equal(t, 1, root.willUpdates)
	assert.Equal(t, 1, root.didIterates)
	assert.Equal(t, 1, child.mounted)
	require.Len(t, tree.Root().children, 1)
	assert.Equal(t, "c1", tree.Root().children[0].Key)
}

func TestReconcileKeepsInstanceOnSameKeyAndType(t *testing.T) {
	child := newStub()
	root := newStub()
	root.childSpecs = []ChildSpec{{Type: "child", Key: "c1", Props: "a"}}

	tree, _ := NewTree(registryWithStub(map[string]*stubComponent{
		"root": root, "child": child,
	}), "root", nil, nil)
	tree.UpdatePhase()
	first := tree.Root().children[0]

	root.childSpecs = []ChildSpec{{Type: "child", Key: "c1", Props: "b"}}
	tree.MarkNeedsUpdate(tree.Root())
	tree.UpdatePhase()

	assert.Same(t, first, tree.Root().children[0])
	assert.Equal(t, "b", first.Props)
	assert.Equal(t, 1, child.mounted, "must not remount on props-only change")
}

func TestReconcileRemountsOnTypeChange(t *testing.T) {
	childA := newStub()
	childB := newStub()
	root := newStub()
	root.childSpecs = []ChildSpec{{Type: "a", Key: "c1"}}

	tree, _ := NewTree(registryWithStub(map[string]*stubComponent{
		"root": root, "a": childA, "b": childB,
	}), "root", nil, nil)
	tree.UpdatePhase()

	root.childSpecs = []ChildSpec{{Type: "b", Key: "c1"}}
	tree.MarkNeedsUpdate(tree.Root())
	tree.UpdatePhase()

	assert.Equal(t, 1, childA.unmounted)
	assert.Equal(t, 1, childB.mounted)
	assert.Equal(t, "b", tree.Root().children[0].Type)
}

func TestReconcileUnmountsDroppedKeys(t *testing.T) {
	child := newStub()
	root := newStub()
	root.childSpecs = []ChildSpec{{Type: "child", Key: "c1"}}

	tree, _ := NewTree(registryWithStub(map[string]*stubComponent{
		"root": root, "child": child,
	}), "root", nil, nil)
	tree.UpdatePhase()

	root.childSpecs = nil
	tree.MarkNeedsUpdate(tree.Root())
	tree.UpdatePhase()

	assert.Equal(t, 1, child.unmounted)
	assert.Empty(t, tree.Root().children)
}

func TestRenderPhaseOrdersByZIndexThenOrderThenInsertion(t *testing.T) {
	a := newStub()
	b := newStub()
	c := newStub()
	root := newStub()
	root.childSpecs = []ChildSpec{
		{Type: "a", Key: "a"},
		{Type: "b", Key: "b"},
		{Type: "c", Key: "c"},
	}

	tree, _ := NewTree(registryWithStub(map[string]*stubComponent{
		"root": root, "a": a, "b": b, "c": c,
	}), "root", nil, nil)
	tree.UpdatePhase()

	var rendered []string
	children := tree.Root().children
	children[0].ZIndex = 1 // a
	children[1].ZIndex = 0 // b
	children[2].ZIndex = 0 // c, inserted after b

	for _, inst := range children {
		key := inst.Key
		inst.Component.(*stubComponent).renders = 0
		_ = key
	}
	a.renderLog, b.renderLog, c.renderLog = &rendered, &rendered, &rendered

	tree.RenderPhase()

	order := make(map[string]int)
	for i, inst := range []*Instance{children[1], children[2], children[0]} {
		order[inst.Key] = i
	}
	// b and c share ZIndex 0 and were inserted before a (ZIndex 1), so
	// render order must be b, c, a.
	assert.Equal(t, 1, b.renders)
	assert.Equal(t, 1, c.renders)
	assert.Equal(t, 1, a.renders)
	assert.Equal(t, []string{"b", "c", "a"}, rendered)
}

func TestInvisibleComponentSkipsRender(t *testing.T) {
	child := newStub()
	child.visible = false
	root := newStub()
	root.childSpecs = []ChildSpec{{Type: "child", Key: "c1"}}

	tree, _ := NewTree(registryWithStub(map[string]*stubComponent{
		"root": root, "child": child,
	}), "root", nil, nil)
	tree.UpdatePhase()
	tree.RenderPhase()

	assert.Equal(t, 0, child.renders)
}

func TestPanicInWillUpdateQuarantinesInstanceAndReportsError(t *testing.T) {
	root := newStub()
	root.panicOnWill = true

	var reportedPath []string
	var reportedErr error
	tree, _ := NewTree(registryWithStub(map[string]*stubComponent{"root": root}), "root", nil,
		func(path []string, err error) { reportedPath = path; reportedErr = err })

	tree.UpdatePhase()

	assert.True(t, tree.Root().Errored())
	require.Error(t, reportedErr)
	assert.Equal(t, []string{"root"}, reportedPath)
}

func TestQuarantineHidesSubtreeFromRender(t *testing.T) {
	child := newStub()
	root := newStub()
	root.panicOnWill = true
	root.childSpecs = []ChildSpec{{Type: "child", Key: "c1"}}

	tree, _ := NewTree(registryWithStub(map[string]*stubComponent{
		"root": root, "child": child,
	}), "root", nil, nil)

	tree.UpdatePhase()
	tree.RenderPhase()

	assert.Equal(t, 0, root.renders)
	assert.Equal(t, 0, child.renders)
}

func TestMarkNeedsUpdateClearsQuarantine(t *testing.T) {
	root := newStub()
	root.panicOnWill = true

	tree, _ := NewTree(registryWithStub(map[string]*stubComponent{"root": root}), "root", nil, nil)
	tree.UpdatePhase()
	require.True(t, tree.Root().Errored())

	root.panicOnWill = false
	tree.MarkNeedsUpdate(tree.Root())
	assert.False(t, tree.Root().Errored())

	tree.UpdatePhase()
	assert.False(t, tree.Root().Errored())
	assert.Equal(t, 1, root.willUpdates)
}

func TestPanicInRenderIsQuarantinedAndDoesNotStopOtherSiblings(t *testing.T) {
	bad := newStub()
	bad.panicOnRender = true
	good := newStub()
	root := newStub()
	root.childSpecs = []ChildSpec{
		{Type: "bad", Key: "bad"},
		{Type: "good", Key: "good"},
	}

	var reports int
	tree, _ := NewTree(registryWithStub(map[string]*stubComponent{
		"root": root, "bad": bad, "good": good,
	}), "root", nil, func(path []string, err error) { reports++ })

	tree.UpdatePhase()
	tree.RenderPhase()

	assert.Equal(t, 1, reports)
	assert.Equal(t, 1, good.renders)
}

func TestProvideInjectFindsNearestAncestor(t *testing.T) {
	child := newStub()
	root := newStub()
	root.childSpecs = []ChildSpec{{Type: "child", Key: "c1"}}

	key := NewProvideKey[string]("theme")

	tree, _ := NewTree(registryWithStub(map[string]*stubComponent{
		"root": root, "child": child,
	}), "root", nil, nil)
	rootCtx := &Context{inst: tree.Root()}
	Provide(rootCtx, key, "dark")

	tree.UpdatePhase()
	childCtx := &Context{inst: tree.Root().children[0]}
	assert.Equal(t, "dark", Inject(childCtx, key, "light"))
}

func TestInjectReturnsFallbackWhenUnset(t *testing.T) {
	root := newStub()
	tree, _ := NewTree(registryWithStub(map[string]*stubComponent{"root": root}), "root", nil, nil)

	key := NewProvideKey[int]("missing")
	ctx := &Context{inst: tree.Root()}
	assert.Equal(t, 42, Inject(ctx, key, 42))
}

func TestInvalidateMarksNeedsUpdate(t *testing.T) {
	root := newStub()
	tree, _ := NewTree(registryWithStub(map[string]*stubComponent{"root": root}), "root", nil, nil)
	tree.UpdatePhase()
	assert.False(t, tree.Root().needsUpdate)

	ctx := &Context{inst: tree.Root()}
	ctx.Invalidate()
	assert.True(t, tree.Root().needsUpdate)
}
