package layers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blockgraph/graphkit/pkg/camera"
	"github.com/blockgraph/graphkit/pkg/eventbus"
)

type fakeOverlay struct {
	scale, x, y float64
	visible     bool
	transforms  int
}

func (o *fakeOverlay) SetTransform(scale, offsetX, offsetY float64) {
	o.scale, o.x, o.y = scale, offsetX, offsetY
	o.transforms++
}

func (o *fakeOverlay) SetVisible(v bool) { o.visible = v }

func TestAttachSyncsOverlayTransformImmediately(t *testing.T) {
	cam := camera.New(100, 100, 0.1, 4)
	cam.Pan(5, 7)
	overlay := &fakeOverlay{}
	l := New(0, nil, overlay)

	l.Attach(eventbus.New(), cam)

	assert.Equal(t, 1.0, overlay.scale)
	assert.Equal(t, 5.0, overlay.x)
	assert.Equal(t, 7.0, overlay.y)
}

func TestOverlayFollowsSubsequentCameraChanges(t *testing.T) {
	cam := camera.New(100, 100, 0.1, 4)
	overlay := &fakeOverlay{}
	l := New(0, nil, overlay)
	l.Attach(eventbus.New(), cam)

	cam.Pan(10, 0)

	assert.Equal(t, 10.0, overlay.x)
	assert.Equal(t, 2, overlay.transforms)
}

func TestDetachStopsOverlayFollowingCamera(t *testing.T) {
	cam := camera.New(100, 100, 0.1, 4)
	overlay := &fakeOverlay{}
	l := New(0, nil, overlay)
	l.Attach(eventbus.New(), cam)
	l.Detach()

	before := overlay.transforms
	cam.Pan(10, 0)

	assert.Equal(t, before, overlay.transforms)
	assert.False(t, overlay.visible)
}

func TestOnSubscriptionDetachesOnDetach(t *testing.T) {
	bus := eventbus.New()
	cam := camera.New(100, 100, 0.1, 4)
	l := New(0, nil, nil)
	l.Attach(bus, cam)

	calls := 0
	l.On("mouseenter", func(any) bool { calls++; return false })
	l.Detach()

	bus.Emit("mouseenter", nil)
	assert.Equal(t, 0, calls)
}

func TestReattachStartsFreshSubscriptionScope(t *testing.T) {
	bus := eventbus.New()
	cam := camera.New(100, 100, 0.1, 4)
	l := New(0, nil, nil)
	l.Attach(bus, cam)
	l.On("mouseenter", func(any) bool { return false })
	l.Detach()

	l.Attach(bus, cam)
	calls := 0
	l.On("mouseenter", func(any) bool { calls++; return false })

	bus.Emit("mouseenter", nil)
	assert.Equal(t, 1, calls)
}

func TestSetPropsMergesWithoutClearingExisting(t *testing.T) {
	l := New(0, nil, nil)
	l.SetProps(Props{"opacity": 0.5})
	l.SetProps(Props{"visible": true})

	require.Equal(t, 0.5, l.Props()["opacity"])
	require.Equal(t, true, l.Props()["visible"])
}

func TestUpdateSizeResizesOwnedSurface(t *testing.T) {
	surface := NewTextGridSurface(2, 2)
	l := New(0, surface, nil)

	l.UpdateSize(5, 3)

	assert.Equal(t, 5, surface.Width())
	assert.Equal(t, 3, surface.Height())
}
