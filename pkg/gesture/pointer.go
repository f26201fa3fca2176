package gesture

import (
	"time"

	"github.com/blockgraph/graphkit/pkg/geom"
)

// PointerID distinguishes concurrent touch/mouse streams. Mouse input uses
// the single fixed ID MousePointer.
type PointerID int

// MousePointer is the PointerID used for ordinary single-button mouse input,
// which the host toolkit never multiplexes into multiple streams.
const MousePointer PointerID = 0

// Phase classifies one raw pointer sample.
type Phase int

const (
	Down Phase = iota
	Move
	Up
	Cancel
)

// Modifiers mirrors the held modifier keys at the time of a sample.
type Modifiers struct {
	Shift bool
	Ctrl  bool
	Alt   bool
}

// PointerEvent is the toolkit-independent input sample the controller
// consumes. Pos is in screen space, matching camera.Camera's ScreenToWorld
// input convention.
type PointerEvent struct {
	ID        PointerID
	Phase     Phase
	Pos       geom.Point
	Modifiers Modifiers
	Time      time.Time
}
