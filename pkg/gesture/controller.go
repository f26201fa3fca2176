// Package gesture implements the pointer/drag state machine: a per-stream
// classifier that turns raw down/move/up/cancel samples into tap, pan,
// pinch, and drag gestures, emitting cancellable events on an event bus and
// applying built-in default actions (camera pan/zoom, block drag) when no
// handler suppresses them.
package gesture

import (
	"math"
	"time"

	"github.com/blockgraph/graphkit/pkg/camera"
	"github.com/blockgraph/graphkit/pkg/eventbus"
	"github.com/blockgraph/graphkit/pkg/geom"
)

// State is the controller's current classification of the active pointer
// stream(s).
type State int

const (
	Idle State = iota
	Pressed
	Panning
	Pinching
	Dragging
)

// Target is the result of hitting a point against the scene; Draggable
// decides whether a qualifying movement becomes a Dragging gesture (true)
// or a Panning gesture (false, e.g. empty canvas).
type Target struct {
	ID        string
	Draggable bool
}

// BlockMover applies the drag gesture's default action: writing a dragged
// block's new world position back into the store.
type BlockMover interface {
	MoveBlockTo(id string, worldX, worldY float64)
}

// Config tunes classification thresholds and wires in the collaborators the
// default actions need.
type Config struct {
	TapSlop      float64
	TapTimeout   time.Duration
	SnapGridSize float64

	// CanDragCamera and CanZoomCamera gate the pan/pinch default actions;
	// nil means always allowed.
	CanDragCamera func() bool
	CanZoomCamera func() bool

	// HitTest resolves a screen-space point to a target at pointer-down
	// time. A false ok means an empty hit (canvas pan).
	HitTest func(screen geom.Point) (Target, bool)
}

func (c *Config) applyDefaults() {
	if c.TapSlop <= 0 {
		c.TapSlop = 4
	}
	if c.TapTimeout <= 0 {
		c.TapTimeout = 300 * time.Millisecond
	}
	if c.SnapGridSize == 0 {
		c.SnapGridSize = 1
	}
}

type pointerTrack struct {
	start     geom.Point
	startTime time.Time
	last      geom.Point
	modifiers Modifiers
	target    Target
	hasTarget bool
}

// Controller is the gesture state machine. The zero value is not usable;
// construct with New.
type Controller struct {
	bus   *eventbus.Bus
	cam   *camera.Camera
	mover BlockMover
	cfg   Config

	state    State
	pointers map[PointerID]*pointerTrack

	pinchPrimary, pinchSecondary PointerID
	pinchStartDist               float64
	pinchStartScale              float64
}

// New creates a Controller. mover may be nil if block drag has no built-in
// default action (callers intercepting block-drag entirely).
func New(bus *eventbus.Bus, cam *camera.Camera, mover BlockMover, cfg Config) *Controller {
	cfg.applyDefaults()
	return &Controller{
		bus:      bus,
		cam:      cam,
		mover:    mover,
		cfg:      cfg,
		pointers: make(map[PointerID]*pointerTrack),
	}
}

// State reports the controller's current classification.
func (c *Controller) State() State { return c.state }

// Handle consumes one raw pointer sample.
func (c *Controller) Handle(ev PointerEvent) {
	switch ev.Phase {
	case Down:
		c.handleDown(ev)
	case Move:
		c.handleMove(ev)
	case Up:
		c.handleUp(ev)
	case Cancel:
		c.handleCancel(ev)
	}
}

func (c *Controller) handleDown(ev PointerEvent) {
	track := &pointerTrack{start: ev.Pos, startTime: ev.Time, last: ev.Pos, modifiers: ev.Modifiers}
	if c.cfg.HitTest != nil {
		track.target, track.hasTarget = c.cfg.HitTest(ev.Pos)
	}

	switch c.state {
	case Idle:
		c.pointers[ev.ID] = track
		c.state = Pressed
	case Pressed:
		c.pointers[ev.ID] = track
		c.beginPinch()
	default:
		// A third concurrent pointer during an active gesture is ignored;
		// only two-finger pinch is modelled.
	}
}

func (c *Controller) beginPinch() {
	var ids []PointerID
	for id := range c.pointers {
		ids = append(ids, id)
	}
	if len(ids) != 2 {
		return
	}
	c.pinchPrimary, c.pinchSecondary = ids[0], ids[1]
	c.pinchStartDist = distance(c.pointers[c.pinchPrimary].last, c.pointers[c.pinchSecondary].last)
	c.pinchStartScale = c.cam.Scale
	c.state = Pinching

	screenMid := midpoint(c.pointers[c.pinchPrimary].last, c.pointers[c.pinchSecondary].last)
	c.bus.Emit(EventPinchStart, PinchPayload{Anchor: screenToWorld(c.cam, screenMid), Scale: c.pinchStartScale})
}

func (c *Controller) handleMove(ev PointerEvent) {
	track, ok := c.pointers[ev.ID]
	if !ok {
		return
	}

	switch c.state {
	case Pressed:
		dist := distance(track.start, ev.Pos)
		elapsed := ev.Time.Sub(track.startTime)
		if elapsed <= c.cfg.TapTimeout && dist > c.cfg.TapSlop {
			track.last = ev.Pos
			if track.hasTarget && track.target.Draggable {
				c.state = Dragging
				c.bus.Emit(EventDragStart, DragPayload{TargetID: track.target.ID, WorldPos: screenToWorld(c.cam, ev.Pos)})
			} else {
				c.state = Panning
				c.bus.Emit(EventPanStart, PanPayload{Pos: ev.Pos})
			}
		}
	case Panning:
		delta := geom.Point{X: ev.Pos.X - track.last.X, Y: ev.Pos.Y - track.last.Y}
		track.last = ev.Pos
		c.bus.ExecuteDefaultAction(EventPanMove, PanPayload{ScreenDelta: delta, Pos: ev.Pos}, func() {
			if c.cfg.CanDragCamera == nil || c.cfg.CanDragCamera() {
				c.cam.Pan(delta.X, delta.Y)
			}
		})
	case Dragging:
		track.last = ev.Pos
		world := screenToWorld(c.cam, ev.Pos)
		c.bus.ExecuteDefaultAction(EventDragMove, DragPayload{TargetID: track.target.ID, WorldPos: world}, func() {
			if c.mover != nil {
				c.mover.MoveBlockTo(track.target.ID, snapToGrid(world.X, c.cfg.SnapGridSize), snapToGrid(world.Y, c.cfg.SnapGridSize))
			}
		})
	case Pinching:
		track.last = ev.Pos
		c.updatePinch()
	}
}

func (c *Controller) updatePinch() {
	p1, ok1 := c.pointers[c.pinchPrimary]
	p2, ok2 := c.pointers[c.pinchSecondary]
	if !ok1 || !ok2 || c.pinchStartDist == 0 {
		return
	}
	dist := distance(p1.last, p2.last)
	scale := c.pinchStartScale * (dist / c.pinchStartDist)
	screenMid := midpoint(p1.last, p2.last)

	c.bus.ExecuteDefaultAction(EventPinchMove, PinchPayload{Anchor: screenToWorld(c.cam, screenMid), Scale: scale}, func() {
		if c.cfg.CanZoomCamera == nil || c.cfg.CanZoomCamera() {
			c.cam.Zoom(scale, &screenMid)
		}
	})
}

func (c *Controller) handleUp(ev PointerEvent) {
	track, ok := c.pointers[ev.ID]
	if !ok {
		return
	}
	delete(c.pointers, ev.ID)

	switch c.state {
	case Pressed:
		dist := distance(track.start, ev.Pos)
		elapsed := ev.Time.Sub(track.startTime)
		if dist <= c.cfg.TapSlop && elapsed <= c.cfg.TapTimeout {
			c.bus.Emit(EventTap, TapPayload{Pos: ev.Pos, Modifiers: track.modifiers})
		}
		c.state = Idle
	case Panning:
		c.bus.Emit(EventPanEnd, PanPayload{Pos: ev.Pos})
		c.state = Idle
	case Dragging:
		c.bus.Emit(EventDragEnd, DragPayload{TargetID: track.target.ID, WorldPos: screenToWorld(c.cam, ev.Pos)})
		c.state = Idle
	case Pinching:
		c.bus.Emit(EventPinchEnd, PinchPayload{})
		for id := range c.pointers {
			delete(c.pointers, id)
		}
		c.state = Idle
	}
}

func (c *Controller) handleCancel(ev PointerEvent) {
	track := c.pointers[ev.ID]

	switch c.state {
	case Panning:
		c.bus.Emit(EventPanEnd, PanPayload{Cancelled: true})
	case Dragging:
		var world geom.Point
		var targetID string
		if track != nil {
			world = screenToWorld(c.cam, track.last)
			targetID = track.target.ID
		}
		c.bus.Emit(EventDragEnd, DragPayload{TargetID: targetID, WorldPos: world, Cancelled: true})
	case Pinching:
		c.bus.Emit(EventPinchEnd, PinchPayload{Cancelled: true})
	}

	c.pointers = make(map[PointerID]*pointerTrack)
	c.state = Idle
}

func distance(a, b geom.Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	return math.Sqrt(dx*dx + dy*dy)
}

func midpoint(a, b geom.Point) geom.Point {
	return geom.Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

func screenToWorld(cam *camera.Camera, p geom.Point) geom.Point {
	wx, wy := cam.ScreenToWorld(p.X, p.Y)
	return geom.Point{X: wx, Y: wy}
}
