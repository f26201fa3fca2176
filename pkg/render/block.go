// Package render implements the level-of-detail block/connection/anchor
// renderers, connection path geometry (straight and bezier, with an
// optional arrow-head and a stroke-distance hit test), and the port-
// snapping proximity query used while drawing a new connection.
package render

import (
	"github.com/blockgraph/graphkit/pkg/camera"
	"github.com/blockgraph/graphkit/pkg/geom"
)

// BlockPlan is the level-appropriate visual description of one block,
// computed from its current camera.ScaleLevel. Layers paint it; this
// package never touches a RasterSurface directly.
type BlockPlan struct {
	Rect        geom.Rect
	FillOnly    bool
	ShowBorder  bool
	ShowLabel   bool
	ShowAnchors bool
	Label       string
}

// PlanBlock computes the render plan for a block's screen-space rect at
// the given scale level: Minimalistic is fill-only, Schematic adds a
// border and centred name, Detailed adds anchors.
func PlanBlock(level camera.ScaleLevel, screenRect geom.Rect, label string) BlockPlan {
	switch level {
	case camera.Minimalistic:
		return BlockPlan{Rect: screenRect, FillOnly: true}
	case camera.Schematic:
		return BlockPlan{Rect: screenRect, FillOnly: true, ShowBorder: true, ShowLabel: true, Label: label}
	default: // camera.Detailed
		return BlockPlan{Rect: screenRect, FillOnly: true, ShowBorder: true, ShowLabel: true, ShowAnchors: true, Label: label}
	}
}
