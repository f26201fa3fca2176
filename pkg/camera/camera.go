// Package camera implements the world/screen transform: pan, zoom, zoom-to-
// rect, zoom-to-target, and the scale-level classification that drives
// level-of-detail rendering. Structurally it is the teacher's camera
// rewritten against a simpler, rotation-free transform and a spec-shaped
// coordinate model (screen-space offset + uniform scale, rather than a
// world-space center + zoom + rotation).
package camera

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/blockgraph/graphkit/pkg/geom"
)

// ScaleLevel classifies the current scale for level-of-detail selection.
type ScaleLevel int

const (
	Minimalistic ScaleLevel = iota
	Schematic
	Detailed
)

func (l ScaleLevel) String() string {
	switch l {
	case Minimalistic:
		return "minimalistic"
	case Schematic:
		return "schematic"
	case Detailed:
		return "detailed"
	default:
		return "unknown"
	}
}

// Thresholds holds the two scale breakpoints that separate the three
// ScaleLevels: below TauMinimalistic is Minimalistic, [TauMinimalistic,
// TauDetailed) is Schematic, and TauDetailed and above is Detailed.
type Thresholds struct {
	TauMinimalistic float64
	TauDetailed     float64
}

// DefaultThresholds mirrors the literal values implied by spec.md §8's
// worked LoD examples.
var DefaultThresholds = Thresholds{TauMinimalistic: 0.15, TauDetailed: 0.6}

// ChangeListener is notified once per camera mutation, after all of that
// mutation's field writes have been applied ("camera-change ... after
// batching").
type ChangeListener func()

// Camera owns the view into the scene: a screen-space offset and uniform
// scale, clamped to [ScaleMin, ScaleMax].
type Camera struct {
	X, Y       float64
	Scale      float64
	Width      float64
	Height     float64
	ScaleMin   float64
	ScaleMax   float64
	Thresholds Thresholds

	listeners   map[int]ChangeListener
	nextListener int

	tweenX, tweenY, tweenScale *gween.Tween
}

// New creates a Camera for the given viewport size with scale clamped to
// [scaleMin, scaleMax] and an initial scale of 1.
func New(width, height, scaleMin, scaleMax float64) *Camera {
	return &Camera{
		Scale:      1,
		Width:      width,
		Height:     height,
		ScaleMin:   scaleMin,
		ScaleMax:   scaleMax,
		Thresholds: DefaultThresholds,
	}
}

// OnChange registers a listener invoked after every transform mutation and
// returns a function that detaches it.
func (c *Camera) OnChange(fn ChangeListener) (unsubscribe func()) {
	if c.listeners == nil {
		c.listeners = make(map[int]ChangeListener)
	}
	id := c.nextListener
	c.nextListener++
	c.listeners[id] = fn
	return func() { delete(c.listeners, id) }
}

func (c *Camera) notify() {
	for _, l := range c.listeners {
		l()
	}
}

func (c *Camera) clampScale(s float64) float64 {
	return math.Max(c.ScaleMin, math.Min(s, c.ScaleMax))
}

// Pan translates the camera by (dx, dy) in screen space.
func (c *Camera) Pan(dx, dy float64) {
	c.cancelTweens()
	c.X += dx
	c.Y += dy
	c.notify()
}

// Zoom sets the scale, clamped to [ScaleMin, ScaleMax]. If anchor is
// non-nil, the screen point it names stays fixed in world space across the
// zoom (the classic "zoom under the cursor" behaviour).
func (c *Camera) Zoom(toScale float64, anchor *geom.Point) {
	c.cancelTweens()
	newScale := c.clampScale(toScale)

	if anchor != nil {
		wx, wy := c.ScreenToWorld(anchor.X, anchor.Y)
		c.Scale = newScale
		c.X = anchor.X - wx*c.Scale
		c.Y = anchor.Y - wy*c.Scale
	} else {
		c.Scale = newScale
	}
	c.notify()
}

// ZoomToRect fits worldRect into the viewport with padding world units of
// margin on every side, centering the result.
func (c *Camera) ZoomToRect(worldRect geom.Rect, padding float64) {
	c.cancelTweens()

	padded := geom.Rect{
		X:      worldRect.X - padding,
		Y:      worldRect.Y - padding,
		Width:  worldRect.Width + 2*padding,
		Height: worldRect.Height + 2*padding,
	}
	if padded.Width <= 0 || padded.Height <= 0 {
		return
	}

	scaleX := c.Width / padded.Width
	scaleY := c.Height / padded.Height
	c.Scale = c.clampScale(math.Min(scaleX, scaleY))

	center := padded.Center()
	c.X = c.Width/2 - center.X*c.Scale
	c.Y = c.Height/2 - center.Y*c.Scale
	c.notify()
}

// FitTarget describes what ZoomTo should frame: either the bounding rect of
// a set of world-space rectangles (the usable rect, when IDs is empty and
// Bounds is set directly) or a caller-resolved rect for named block ids.
type FitTarget struct {
	// Bounds is the world-space rect to fit. Callers resolve "center" or a
	// list of block ids into this rect before calling ZoomTo (the camera
	// has no entity knowledge).
	Bounds  geom.Rect
	Padding float64
}

// ZoomTo fits target.Bounds into the viewport, optionally animating the
// transition over duration seconds using easeFn. duration <= 0 is
// instantaneous.
func (c *Camera) ZoomTo(target FitTarget, duration float32, easeFn ease.TweenFunc) {
	if duration <= 0 {
		c.ZoomToRect(target.Bounds, target.Padding)
		return
	}

	padded := geom.Rect{
		X:      target.Bounds.X - target.Padding,
		Y:      target.Bounds.Y - target.Padding,
		Width:  target.Bounds.Width + 2*target.Padding,
		Height: target.Bounds.Height + 2*target.Padding,
	}
	if padded.Width <= 0 || padded.Height <= 0 {
		return
	}

	scaleX := c.Width / padded.Width
	scaleY := c.Height / padded.Height
	targetScale := c.clampScale(math.Min(scaleX, scaleY))
	center := padded.Center()
	targetX := c.Width/2 - center.X*targetScale
	targetY := c.Height/2 - center.Y*targetScale

	c.AnimateTo(targetX, targetY, targetScale, duration, easeFn)
}

// AnimateTo starts (or replaces) an animated transition of X, Y, and Scale
// to the given targets over duration seconds, grounded on willow.Camera's
// ScrollTo tween pattern.
func (c *Camera) AnimateTo(x, y, scale float64, duration float32, easeFn ease.TweenFunc) {
	c.tweenX = gween.New(float32(c.X), float32(x), duration, easeFn)
	c.tweenY = gween.New(float32(c.Y), float32(y), duration, easeFn)
	c.tweenScale = gween.New(float32(c.Scale), float32(scale), duration, easeFn)
}

func (c *Camera) cancelTweens() {
	c.tweenX, c.tweenY, c.tweenScale = nil, nil, nil
}

// Update advances any in-flight animated transition by dt seconds. Callers
// drive this from the Update priority band once per frame; it is a no-op
// when no transition is active.
func (c *Camera) Update(dt float32) bool {
	if c.tweenX == nil {
		return false
	}

	x, doneX := c.tweenX.Update(dt)
	y, doneY := c.tweenY.Update(dt)
	s, doneS := c.tweenScale.Update(dt)
	c.X, c.Y, c.Scale = float64(x), float64(y), float64(s)

	if doneX && doneY && doneS {
		c.cancelTweens()
	}
	c.notify()
	return true
}

// ScreenToWorld converts a screen-space point to world space
// ("apply_to_point(sx, sy) -> world").
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	return (sx - c.X) / c.Scale, (sy - c.Y) / c.Scale
}

// WorldToScreen converts a world-space point to screen space
// ("inverse(wx, wy) -> screen").
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	return wx*c.Scale + c.X, wy*c.Scale + c.Y
}

// Viewport returns the world-space rectangle currently visible on screen.
func (c *Camera) Viewport() geom.Rect {
	wx, wy := c.ScreenToWorld(0, 0)
	return geom.Rect{
		X:      wx,
		Y:      wy,
		Width:  c.Width / c.Scale,
		Height: c.Height / c.Scale,
	}
}

// IsRectVisible reports whether worldRect intersects the current viewport.
func (c *Camera) IsRectVisible(worldRect geom.Rect) bool {
	return c.Viewport().Intersects(worldRect)
}

// Level classifies the current scale into a ScaleLevel using c.Thresholds.
func (c *Camera) Level() ScaleLevel {
	switch {
	case c.Scale < c.Thresholds.TauMinimalistic:
		return Minimalistic
	case c.Scale < c.Thresholds.TauDetailed:
		return Schematic
	default:
		return Detailed
	}
}

// Resize updates the viewport dimensions, e.g. on terminal resize.
func (c *Camera) Resize(width, height float64) {
	c.Width, c.Height = width, height
	c.notify()
}
