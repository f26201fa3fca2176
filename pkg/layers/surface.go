// Package layers implements the Scene Layer contract: layers stack by
// z-index, each optionally owning a raster surface and an HTML overlay,
// and expose attach/detach lifecycle plus auto-unsubscribing event
// wrappers. The shipped reference surface renders into a lipgloss-styled
// text grid; RasterSurface and HTMLOverlay are narrow interfaces so a host
// embedding this library can target a true pixel backend instead.
package layers

import "github.com/charmbracelet/lipgloss"

// RasterSurface is the narrow drawing contract a Layer paints into. The
// core never assumes a concrete backend; TextGridSurface is the shipped
// terminal-oriented reference implementation.
type RasterSurface interface {
	Resize(width, height int)
	SetCell(x, y int, r rune, style lipgloss.Style)
	Clear()
	Width() int
	Height() int
}

// HTMLOverlay is the narrow contract for a layer's optional DOM overlay.
// SetTransform mirrors the camera's screen-offset + uniform-scale model so
// an overlay can follow world space exactly via a CSS transform or
// equivalent.
type HTMLOverlay interface {
	SetTransform(scale, offsetX, offsetY float64)
	SetVisible(visible bool)
}
