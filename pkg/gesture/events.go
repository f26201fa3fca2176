package gesture

import "github.com/blockgraph/graphkit/pkg/geom"

// Event names emitted on the bus passed to New. These match the minimum
// event-name set: pan/pinch/drag life cycles plus tap.
const (
	EventPanStart   = "pan-start"
	EventPanMove    = "pan-move"
	EventPanEnd     = "pan-end"
	EventPinchStart = "pinch-start"
	EventPinchMove  = "pinch-move"
	EventPinchEnd   = "pinch-end"
	EventDragStart  = "block-drag-start"
	EventDragMove   = "block-drag"
	EventDragEnd    = "block-drag-end"
	EventTap        = "tap"
)

// PanPayload accompanies pan-start/move/end.
type PanPayload struct {
	ScreenDelta geom.Point
	Pos         geom.Point
	Cancelled   bool
}

// PinchPayload accompanies pinch-start/move/end. Anchor is the pinch
// midpoint in world space; Scale is the camera scale the default action
// would zoom to (ignored on pinch-end).
type PinchPayload struct {
	Anchor    geom.Point
	Scale     float64
	Cancelled bool
}

// DragPayload accompanies block-drag-start/move/end.
type DragPayload struct {
	TargetID  string
	WorldPos  geom.Point
	Cancelled bool
}

// TapPayload accompanies tap.
type TapPayload struct {
	Pos       geom.Point
	Modifiers Modifiers
}
