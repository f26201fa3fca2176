package layers

import (
	"github.com/blockgraph/graphkit/pkg/camera"
	"github.com/blockgraph/graphkit/pkg/eventbus"
)

// Props carries a layer's caller-set configuration (e.g. opacity, visible
// block kinds); Layer treats it as an opaque bag it hands back via Props.
type Props map[string]any

// Layer stacks with other layers by ZIndex and owns an optional
// RasterSurface and HTMLOverlay. All subscriptions registered through On
// are released automatically on Detach, with no leaks across a
// detach/attach cycle.
type Layer struct {
	ZIndex int

	surface RasterSurface
	overlay HTMLOverlay
	props   Props

	bus      *eventbus.Bus
	abort    *eventbus.AbortSignal
	cam      *camera.Camera
	camUnsub func()
}

// New creates a Layer at zIndex. Either surface or overlay (or both) may be
// nil for a layer that only listens to events.
func New(zIndex int, surface RasterSurface, overlay HTMLOverlay) *Layer {
	return &Layer{ZIndex: zIndex, surface: surface, overlay: overlay, props: Props{}}
}

// Attach wires the layer into a running graph: bus subscriptions made via
// On from this point scope to this attach/detach cycle, and if the layer
// owns an HTMLOverlay, it starts following cam's transform.
func (l *Layer) Attach(bus *eventbus.Bus, cam *camera.Camera) {
	l.bus = bus
	l.abort = eventbus.NewAbortSignal()
	l.cam = cam

	if l.overlay != nil && cam != nil {
		sync := func() { l.overlay.SetTransform(cam.Scale, cam.X, cam.Y) }
		l.camUnsub = cam.OnChange(sync)
		sync()
	}
}

// Detach releases every subscription and signal listener registered since
// Attach, including the camera-follow listener, and un-sets the overlay's
// visibility.
func (l *Layer) Detach() {
	if l.abort != nil {
		l.abort.Abort()
	}
	if l.camUnsub != nil {
		l.camUnsub()
		l.camUnsub = nil
	}
	if l.overlay != nil {
		l.overlay.SetVisible(false)
	}
	l.bus = nil
	l.cam = nil
}

// UpdateSize resizes the owned raster surface, if any.
func (l *Layer) UpdateSize(width, height int) {
	if l.surface != nil {
		l.surface.Resize(width, height)
	}
}

// Canvas returns the owned raster surface, or nil.
func (l *Layer) Canvas() RasterSurface { return l.surface }

// HTML returns the owned HTML overlay, or nil.
func (l *Layer) HTML() HTMLOverlay { return l.overlay }

// SetProps merges updates into the layer's props bag.
func (l *Layer) SetProps(updates Props) {
	for k, v := range updates {
		l.props[k] = v
	}
}

// Props returns the layer's current props.
func (l *Layer) Props() Props { return l.props }

// On subscribes handler to name for the lifetime of this attach/detach
// cycle: calling Detach unsubscribes it automatically, and re-Attach
// starts a fresh scope.
func (l *Layer) On(name eventbus.Name, handler eventbus.Handler, opts ...eventbus.SubscribeOption) eventbus.Unsubscribe {
	if l.bus == nil {
		return func() {}
	}
	opts = append(opts, eventbus.WithAbort(l.abort))
	return l.bus.On(name, handler, opts...)
}
