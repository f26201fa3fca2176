// Package graphkit implements a 2-D interactive block-diagram graph
// engine: entity stores, camera, hit-testing, selection, gesture/drag
// handling, a scene-layer renderer, and the event bus and animation
// engine that tie them together. Graph is the facade a host program
// constructs and drives, mirroring the teacher's top-level Run/RunOption
// entry point (pkg/bubbly/runner.go) generalized from "one Bubbletea
// component" to "one interactive graph".
package graphkit

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/blockgraph/graphkit/pkg/animation"
	"github.com/blockgraph/graphkit/pkg/camera"
	"github.com/blockgraph/graphkit/pkg/eventbus"
	"github.com/blockgraph/graphkit/pkg/geom"
	"github.com/blockgraph/graphkit/pkg/gesture"
	"github.com/blockgraph/graphkit/pkg/hittest"
	"github.com/blockgraph/graphkit/pkg/kernel"
	"github.com/blockgraph/graphkit/pkg/layers"
	"github.com/blockgraph/graphkit/pkg/scheduler"
	"github.com/blockgraph/graphkit/pkg/selection"
	"github.com/blockgraph/graphkit/pkg/store"
)

// Entity types registered with the selection service (spec.md §4.G).
const (
	EntityBlock      selection.EntityType = "block"
	EntityConnection selection.EntityType = "connection"
	EntityGroup      selection.EntityType = "group"
)

// Event names (spec.md §6's minimum set, beyond what pkg/gesture already
// defines).
const (
	EventStateChange      eventbus.Name = "state-change"
	EventCameraChange     eventbus.Name = "camera-change"
	EventColorsChanged    eventbus.Name = "colors-changed"
	EventConstantsChanged eventbus.Name = "constants-changed"
	EventMouseEnter       eventbus.Name = "mouseenter"
	EventMouseLeave       eventbus.Name = "mouseleave"
	EventSelectionChange  eventbus.Name = "selection-change"
	EventInternalError    eventbus.Name = "internal-error"
)

const hitTestCellSize = 64

// Graph is the facade wiring every subsystem to one scene (spec.md §2).
type Graph struct {
	cfg *GraphConfig

	Store     *store.Store
	Camera    *camera.Camera
	HitTest   *hittest.Index
	Selection *selection.Service
	Bus       *eventbus.Bus
	Scheduler *scheduler.Scheduler
	Pump      *scheduler.Pump
	Gesture   *gesture.Controller
	Tree      *kernel.Tree
	Layers    []*layers.Layer

	Palette   Palette
	Constants Constants

	Animations map[string]*animation.Animation

	id         string
	metrics    *metrics
	reporter   *ErrorReporter
	hovered    hittest.ID
	anchorSync *anchorSync
}

// New constructs a Graph from opts and mounts its initial component tree.
// It never blocks and never starts the scheduler pump; call Run (or drive
// Graph.Scheduler/Graph.Pump yourself) to start ticking frames.
func New(opts ...GraphOption) (*Graph, error) {
	cfg := newGraphConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	g := &Graph{
		cfg:        cfg,
		Store:      store.New(),
		Bus:        eventbus.New(),
		HitTest:    hittest.New(hitTestCellSize),
		Scheduler:  scheduler.New(),
		Animations: make(map[string]*animation.Animation),
		Palette:    mergePalette(DefaultPalette, cfg.ViewConfiguration.Colors),
		Constants:  mergeConstants(DefaultConstants, cfg.ViewConfiguration.Constants),
		id:         uuid.NewString(),
	}
	g.Pump = scheduler.NewPump(g.Scheduler)
	g.Camera = camera.New(cfg.ViewportWidth, cfg.ViewportHeight, cfg.ScaleMin, cfg.ScaleMax)
	g.Camera.OnChange(func() { g.Bus.Emit(EventCameraChange, nil) })

	g.Store.Blocks.SetBlocks(cfg.Blocks)
	g.Store.Connections.SetConnections(cfg.Connections)
	g.anchorSync = newAnchorSync(g, cfg.Anchors)

	g.Selection = selection.New(map[selection.EntityType]bool{
		EntityBlock:      true,
		EntityConnection: true,
		EntityGroup:      false,
	})

	if err := g.wireLayers(); err != nil {
		return nil, err
	}
	g.wireGesture()
	if err := g.wireTree(); err != nil {
		return nil, err
	}
	g.wireSelectionOnTap()

	return g, nil
}

// SetMetricsRegistry attaches prometheus instrumentation to reg. Passing
// nil disables metrics (the default); this may be called at any point
// before Run.
func (g *Graph) SetMetricsRegistry(reg *prometheus.Registry) {
	g.metrics = newMetrics(reg)
}

// SetErrorReporter attaches a Sentry-backed reporter for quarantine
// failures (§7.2). Passing nil disables reporting (the default).
func (g *Graph) SetErrorReporter(r *ErrorReporter) { g.reporter = r }

// ID returns the graph instance's generated identifier.
func (g *Graph) ID() string { return g.id }

// SceneSurface returns the raster surface of the graph's primary scene
// layer (its first attached layer, by convention), the destination every
// default block/connection/anchor renderer paints into.
func (g *Graph) SceneSurface() layers.RasterSurface {
	if len(g.Layers) == 0 {
		return nil
	}
	return g.Layers[0].Canvas()
}

func (g *Graph) wireLayers() error {
	specs := g.cfg.Layers
	if len(specs) == 0 {
		specs = []LayerSpec{{Type: "scene"}}
	}
	registry := defaultLayerRegistry(g.cfg.ViewportWidth, g.cfg.ViewportHeight)
	for _, spec := range specs {
		factory, ok := registry[spec.Type]
		if !ok {
			return fmt.Errorf("graphkit: unknown layer type %q: %w", spec.Type, ErrResourceUnavailable)
		}
		layer := factory(spec.Props)
		layer.Attach(g.Bus, g.Camera)
		g.Layers = append(g.Layers, layer)
	}
	return nil
}

func defaultLayerRegistry(width, height float64) LayerRegistry {
	return LayerRegistry{
		"scene": func(props layers.Props) *layers.Layer {
			surface := layers.NewTextGridSurface(int(width), int(height))
			l := layers.New(0, surface, nopOverlay{})
			l.SetProps(props)
			return l
		},
	}
}

// nopOverlay is the HTML overlay used when a host doesn't embed one: every
// scene built purely as a text-grid surface has nothing to transform.
type nopOverlay struct{}

func (nopOverlay) SetTransform(scale, offsetX, offsetY float64) {}
func (nopOverlay) SetVisible(visible bool)                      {}

// storeBlockMover adapts pkg/store to gesture.BlockMover, honouring the
// settings.canChangeBlockGeometry permission (spec.md §6).
type storeBlockMover struct{ g *Graph }

func (m storeBlockMover) MoveBlockTo(id string, worldX, worldY float64) {
	if m.g.cfg.Settings.CanChangeBlockGeometry != GeometryAll {
		return
	}
	m.g.Store.Blocks.SetXY(store.BlockID(id), worldX, worldY)
}

func (g *Graph) wireGesture() {
	cfg := gesture.Config{
		SnapGridSize:  g.Constants.GridSize,
		CanDragCamera: func() bool { return g.cfg.Settings.CanDragCamera },
		CanZoomCamera: func() bool { return g.cfg.Settings.CanZoomCamera },
		HitTest: func(p geom.Point) (gesture.Target, bool) {
			hits := g.hitTestPoint(p)
			if len(hits) == 0 {
				return gesture.Target{}, false
			}
			id := string(hits[0])
			entityType, entityID := classifyHit(id)
			return gesture.Target{ID: entityID, Draggable: entityType == EntityBlock}, true
		},
	}
	g.Gesture = gesture.New(g.Bus, g.Camera, storeBlockMover{g: g}, cfg)
}

func (g *Graph) wireTree() error {
	registry := kernel.Registry{rootComponentType: newRootComponentFactory(g)}
	for kind, factory := range g.cfg.Settings.BlockComponents {
		registry[kind] = factory
	}
	for kind, factory := range g.cfg.Settings.ConnectionComponents {
		registry[kind] = factory
	}
	registry[defaultBlockComponent] = defaultBlockComponentFactory(g)
	registry[defaultConnComponent] = defaultConnectionComponentFactory(g)

	tree, err := kernel.NewTree(registry, rootComponentType, nil, g.onComponentError)
	if err != nil {
		return err
	}
	g.Tree = tree
	return nil
}

func (g *Graph) onComponentError(path []string, err error) {
	internal := &InternalError{Path: path, Err: err}
	g.reporter.ReportQuarantine(internal)
	g.Bus.Emit(EventInternalError, internal)
}

// wireSelectionOnTap implements the default click-to-select action: a tap
// that lands on a block or connection replaces the selection with it
// (shift-tap toggles it instead), and a tap on empty space clears it. Hosts
// that want different click semantics subscribe their own higher-priority
// "tap" handler and call prevent_default.
func (g *Graph) wireSelectionOnTap() {
	g.Bus.On(gesture.EventTap, func(payload any) bool {
		tap, ok := payload.(gesture.TapPayload)
		if !ok {
			return false
		}
		hits := g.hitTestPoint(tap.Pos)
		strategy := selection.Replace
		if tap.Modifiers.Shift {
			strategy = selection.Toggle
		}

		if len(hits) == 0 {
			if g.Selection.Select(EntityBlock, nil, false, selection.Replace, nil) {
				g.metrics.incSelectionChange()
				g.applySelectionToStore()
				g.Bus.Emit(EventSelectionChange, g.Selection.Selection())
			}
			return false
		}

		id := string(hits[0])
		entityType, entityID := classifyHit(id)
		if entityType == "" {
			return false
		}
		changed := g.Selection.Select(entityType, []string{entityID}, true, strategy, func(diff selection.Diff, apply selection.DefaultAction) bool {
			apply()
			return true
		})
		if changed {
			g.metrics.incSelectionChange()
			g.applySelectionToStore()
			g.Bus.Emit(EventSelectionChange, g.Selection.Selection())
		}
		return false
	})
}

func classifyHit(hitID string) (selection.EntityType, string) {
	const blockPrefix, connPrefix = "block:", "conn:"
	switch {
	case len(hitID) > len(blockPrefix) && hitID[:len(blockPrefix)] == blockPrefix:
		return EntityBlock, hitID[len(blockPrefix):]
	case len(hitID) > len(connPrefix) && hitID[:len(connPrefix)] == connPrefix:
		return EntityConnection, hitID[len(connPrefix):]
	default:
		return "", ""
	}
}

// applySelectionToStore mirrors the selection service's current block/
// connection id sets onto each entity's Selected field, which is what the
// default renderers read to pick the "selected" palette color.
func (g *Graph) applySelectionToStore() {
	selected := make(map[store.BlockID]bool)
	for _, id := range g.Selection.Bucket(EntityBlock).Current() {
		selected[store.BlockID(id)] = true
	}
	var partials []store.BlockPartial
	for _, b := range g.Store.Blocks.List() {
		want := selected[b.ID]
		if b.Selected != want {
			partials = append(partials, store.BlockPartial{ID: b.ID, Selected: &want})
		}
	}
	g.Store.Blocks.UpdateBlocks(partials)

	selectedConn := make(map[store.ConnectionID]bool)
	for _, id := range g.Selection.Bucket(EntityConnection).Current() {
		selectedConn[store.ConnectionID(id)] = true
	}
	var connPartials []store.ConnectionPartial
	for _, c := range g.Store.Connections.List() {
		want := selectedConn[c.ID]
		if c.Selected != want {
			connPartials = append(connPartials, store.ConnectionPartial{ID: c.ID, Selected: &want})
		}
	}
	g.Store.Connections.UpdateConnections(connPartials)
}

// RunFrame runs one scheduler frame: UpdatePhase, hit-index flush,
// RenderPhase, matching spec.md §5's per-frame ordering (input dispatch
// happens before RunFrame is called, driven by the host's event loop).
func (g *Graph) RunFrame() {
	start := time.Now()
	g.metrics.setDirtyComponents(g.Tree.CountNeedsUpdate())

	g.Scheduler.RequestFrame(scheduler.PriorityUpdate, false, g.Tree.UpdatePhase)
	g.Scheduler.RequestFrame(scheduler.PriorityUpdate, false, g.HitTest.Flush)
	g.Scheduler.RequestFrame(scheduler.PriorityRender, false, g.Tree.RenderPhase)
	g.Scheduler.RunFrame()

	g.metrics.observeFrame(time.Since(start).Seconds())
}

// hitTestPoint is the single entry point every point hit-test query goes
// through, so graphkit_hittest_query_seconds reflects real query latency
// regardless of caller (drag-start probe, tap selection, ...).
func (g *Graph) hitTestPoint(p geom.Point) []hittest.ID {
	start := time.Now()
	hits := g.HitTest.TestPoint(p)
	g.metrics.observeHitTest(time.Since(start).Seconds())
	return hits
}

// StartAnimation registers (or replaces) a named animation and returns it
// for the caller to Start/Stop/Update directly.
func (g *Graph) StartAnimation(name string, initial animation.Params, timing animation.Timing, infinite bool) *animation.Animation {
	a := animation.New(initial, timing, infinite)
	g.Animations[name] = a
	return a
}

// Animation returns the named animation, or nil if none was registered.
func (g *Graph) Animation(name string) *animation.Animation { return g.Animations[name] }

// Resize updates the camera's viewport and every attached layer's surface
// to match a new host window size.
func (g *Graph) Resize(width, height float64) {
	g.Camera.Resize(width, height)
	for _, l := range g.Layers {
		l.UpdateSize(int(width), int(height))
	}
}

// View renders the graph's primary scene surface to a string, or an empty
// string if it isn't a renderable surface (a host embedding its own
// presentation layer reads Graph.SceneSurface/Graph.Layers directly
// instead).
func (g *Graph) View() string {
	surface := g.SceneSurface()
	if renderer, ok := surface.(interface{ Render() string }); ok {
		return renderer.Render()
	}
	return ""
}
