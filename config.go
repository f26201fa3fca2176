package graphkit

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/blockgraph/graphkit/pkg/kernel"
	"github.com/blockgraph/graphkit/pkg/layers"
	"github.com/blockgraph/graphkit/pkg/store"
)

// GeometryPermission controls whether a user drag may mutate a block's x/y.
type GeometryPermission int

const (
	GeometryNone GeometryPermission = iota
	GeometryOnlyAnchor
	GeometryAll
)

// Palette is view_configuration.colors: the semantic color names broadcast
// through component context, mirroring the teacher's Theme/Provide/Inject
// machinery (pkg/bubbly/theme.go) rather than a hand-rolled styling layer.
type Palette struct {
	Block           lipgloss.Color
	BlockSelected   lipgloss.Color
	BlockBorder     lipgloss.Color
	Connection      lipgloss.Color
	ConnectionLabel lipgloss.Color
	Anchor          lipgloss.Color
	Background      lipgloss.Color
}

// DefaultPalette mirrors the teacher's DefaultTheme color choices, adapted
// to this domain's block/connection/anchor vocabulary.
var DefaultPalette = Palette{
	Block:           lipgloss.Color("236"),
	BlockSelected:   lipgloss.Color("99"),
	BlockBorder:     lipgloss.Color("240"),
	Connection:      lipgloss.Color("35"),
	ConnectionLabel: lipgloss.Color("220"),
	Anchor:          lipgloss.Color("196"),
	Background:      lipgloss.Color("0"),
}

// Constants is view_configuration.constants: spacing/size knobs broadcast
// the same way the palette is.
type Constants struct {
	GridSize       float64
	AnchorRadius   float64
	ArrowLength    float64
	ArrowWidth     float64
	HitTestCorridor float64
}

// DefaultConstants are the spacing defaults every graph starts from.
var DefaultConstants = Constants{
	GridSize:        1,
	AnchorRadius:    3,
	ArrowLength:     8,
	ArrowWidth:      6,
	HitTestCorridor: 2,
}

// ViewConfiguration holds a deep-partial override of the palette and
// constants. Zero-valued fields in Colors/Constants leave the
// corresponding default untouched; only fields a caller actually sets are
// merged in, matching spec.md §6's "deep-partial overrides".
type ViewConfiguration struct {
	Colors    PaletteOverride    `yaml:"colors"`
	Constants ConstantsOverride `yaml:"constants"`
}

// PaletteOverride names the same fields as Palette, as pointers so a
// caller can distinguish "not set" from "set to the zero value".
type PaletteOverride struct {
	Block           *string `yaml:"block,omitempty"`
	BlockSelected   *string `yaml:"blockSelected,omitempty"`
	BlockBorder     *string `yaml:"blockBorder,omitempty"`
	Connection      *string `yaml:"connection,omitempty"`
	ConnectionLabel *string `yaml:"connectionLabel,omitempty"`
	Anchor          *string `yaml:"anchor,omitempty"`
	Background      *string `yaml:"background,omitempty"`
}

// ConstantsOverride mirrors Constants as optional fields.
type ConstantsOverride struct {
	GridSize        *float64 `yaml:"gridSize,omitempty"`
	AnchorRadius    *float64 `yaml:"anchorRadius,omitempty"`
	ArrowLength     *float64 `yaml:"arrowLength,omitempty"`
	ArrowWidth      *float64 `yaml:"arrowWidth,omitempty"`
	HitTestCorridor *float64 `yaml:"hitTestCorridor,omitempty"`
}

// mergePalette applies override onto base, field by field.
func mergePalette(base Palette, override PaletteOverride) Palette {
	if override.Block != nil {
		base.Block = lipgloss.Color(*override.Block)
	}
	if override.BlockSelected != nil {
		base.BlockSelected = lipgloss.Color(*override.BlockSelected)
	}
	if override.BlockBorder != nil {
		base.BlockBorder = lipgloss.Color(*override.BlockBorder)
	}
	if override.Connection != nil {
		base.Connection = lipgloss.Color(*override.Connection)
	}
	if override.ConnectionLabel != nil {
		base.ConnectionLabel = lipgloss.Color(*override.ConnectionLabel)
	}
	if override.Anchor != nil {
		base.Anchor = lipgloss.Color(*override.Anchor)
	}
	if override.Background != nil {
		base.Background = lipgloss.Color(*override.Background)
	}
	return base
}

// mergeConstants applies override onto base, field by field.
func mergeConstants(base Constants, override ConstantsOverride) Constants {
	if override.GridSize != nil {
		base.GridSize = *override.GridSize
	}
	if override.AnchorRadius != nil {
		base.AnchorRadius = *override.AnchorRadius
	}
	if override.ArrowLength != nil {
		base.ArrowLength = *override.ArrowLength
	}
	if override.ArrowWidth != nil {
		base.ArrowWidth = *override.ArrowWidth
	}
	if override.HitTestCorridor != nil {
		base.HitTestCorridor = *override.HitTestCorridor
	}
	return base
}

// Settings is the graph's `settings` block (spec.md §6).
type Settings struct {
	CanChangeBlockGeometry  GeometryPermission
	UseBlocksAnchors        bool
	ShowConnectionArrows    bool
	ShowConnectionLabels    bool
	UseBezierConnections    bool
	CanCreateNewConnections bool
	CanDragCamera           bool
	CanZoomCamera           bool

	// BlockComponents / ConnectionComponents are the kind_tag -> ComponentType
	// dispatch tables, a registry of factory functions per SPEC_FULL.md §15
	// rather than a closed enum, since kind tags are caller-extensible.
	BlockComponents      kernel.Registry
	ConnectionComponents kernel.Registry
}

// DefaultSettings matches what a graph with no explicit settings behaves
// like: anchors and arrows shown, full drag permission, camera pan/zoom
// enabled, no new-connection authoring (an embedder opts in explicitly).
func DefaultSettings() Settings {
	return Settings{
		CanChangeBlockGeometry: GeometryAll,
		UseBlocksAnchors:       true,
		ShowConnectionArrows:   true,
		ShowConnectionLabels:   true,
		CanDragCamera:          true,
		CanZoomCamera:          true,
		BlockComponents:        kernel.Registry{},
		ConnectionComponents:   kernel.Registry{},
	}
}

// LayerSpec is one entry of the `layers` ordered constructor list.
type LayerSpec struct {
	Type  string
	Props layers.Props
}

// LayerFactory builds the concrete Layer a LayerSpec.Type names. Graph
// looks up LayerSpec.Type in a LayerRegistry at construction time.
type LayerFactory func(props layers.Props) *layers.Layer

// LayerRegistry maps a layer type tag to its constructor, the layers
// analogue of kernel.Registry.
type LayerRegistry map[string]LayerFactory

// GraphConfig is the full `configuration` a graph is created with
// (spec.md §6).
type GraphConfig struct {
	ConfigurationName string
	Blocks            []store.Block
	Connections       []store.Connection
	Anchors           []store.Anchor
	Settings          Settings
	Layers            []LayerSpec
	ViewConfiguration ViewConfiguration

	ViewportWidth, ViewportHeight float64
	ScaleMin, ScaleMax            float64
}

// GraphOption configures a GraphConfig, mirroring the teacher's
// Run(component, ...RunOption) functional-options pattern
// (pkg/bubbly/runner.go).
type GraphOption func(*GraphConfig)

func newGraphConfig() *GraphConfig {
	return &GraphConfig{
		Settings:       DefaultSettings(),
		ViewportWidth:  80,
		ViewportHeight: 24,
		ScaleMin:       0.1,
		ScaleMax:       4,
	}
}

// WithConfigurationName sets the informational graph instance identifier.
func WithConfigurationName(name string) GraphOption {
	return func(c *GraphConfig) { c.ConfigurationName = name }
}

// WithBlocks seeds the initial block table.
func WithBlocks(blocks ...store.Block) GraphOption {
	return func(c *GraphConfig) { c.Blocks = append(c.Blocks, blocks...) }
}

// WithConnections seeds the initial connection table.
func WithConnections(conns ...store.Connection) GraphOption {
	return func(c *GraphConfig) { c.Connections = append(c.Connections, conns...) }
}

// WithAnchors seeds the initial anchor table.
func WithAnchors(anchors ...store.Anchor) GraphOption {
	return func(c *GraphConfig) { c.Anchors = append(c.Anchors, anchors...) }
}

// WithViewport sets the initial camera viewport size, in the reference
// Layer's cell units.
func WithViewport(width, height float64) GraphOption {
	return func(c *GraphConfig) { c.ViewportWidth, c.ViewportHeight = width, height }
}

// WithScaleRange sets the camera's clamped zoom range.
func WithScaleRange(min, max float64) GraphOption {
	return func(c *GraphConfig) { c.ScaleMin, c.ScaleMax = min, max }
}

// WithSettings replaces the settings block wholesale.
func WithSettings(s Settings) GraphOption {
	return func(c *GraphConfig) { c.Settings = s }
}

// WithBlockComponent registers a factory for kind under the
// block_components dispatch table.
func WithBlockComponent(kind string, factory kernel.Factory) GraphOption {
	return func(c *GraphConfig) {
		if c.Settings.BlockComponents == nil {
			c.Settings.BlockComponents = kernel.Registry{}
		}
		c.Settings.BlockComponents[kind] = factory
	}
}

// WithConnectionComponent registers a factory for kind under the
// connection_components dispatch table.
func WithConnectionComponent(kind string, factory kernel.Factory) GraphOption {
	return func(c *GraphConfig) {
		if c.Settings.ConnectionComponents == nil {
			c.Settings.ConnectionComponents = kernel.Registry{}
		}
		c.Settings.ConnectionComponents[kind] = factory
	}
}

// WithLayers sets the ordered layer constructor list.
func WithLayers(specs ...LayerSpec) GraphOption {
	return func(c *GraphConfig) { c.Layers = append(c.Layers, specs...) }
}

// WithColors applies a palette deep-partial override.
func WithColors(override PaletteOverride) GraphOption {
	return func(c *GraphConfig) { c.ViewConfiguration.Colors = override }
}

// WithConstants applies a constants deep-partial override.
func WithConstants(override ConstantsOverride) GraphOption {
	return func(c *GraphConfig) { c.ViewConfiguration.Constants = override }
}

// yamlConfig is the wire shape LoadConfigYAML decodes into, the subset of
// GraphConfig spec.md §6 says is recognised from a declarative config
// (blocks/connections are still supplied as Go literals; YAML covers
// settings/layers/view_configuration for embedders that configure graphs
// declaratively).
type yamlConfig struct {
	ConfigurationName string `yaml:"configurationName"`
	Settings          struct {
		CanChangeBlockGeometry  string `yaml:"canChangeBlockGeometry"`
		UseBlocksAnchors        bool   `yaml:"useBlocksAnchors"`
		ShowConnectionArrows    bool   `yaml:"showConnectionArrows"`
		ShowConnectionLabels    bool   `yaml:"showConnectionLabels"`
		UseBezierConnections    bool   `yaml:"useBezierConnections"`
		CanCreateNewConnections bool   `yaml:"canCreateNewConnections"`
		CanDragCamera           bool   `yaml:"canDragCamera"`
		CanZoomCamera           bool   `yaml:"canZoomCamera"`
	} `yaml:"settings"`
	Layers []struct {
		Type  string         `yaml:"type"`
		Props map[string]any `yaml:"props"`
	} `yaml:"layers"`
	ViewConfiguration ViewConfiguration `yaml:"viewConfiguration"`
}

func parseGeometryPermission(s string) GeometryPermission {
	switch s {
	case "OnlyAnchor":
		return GeometryOnlyAnchor
	case "None":
		return GeometryNone
	default:
		return GeometryAll
	}
}

// LoadConfigYAML decodes settings/layers/view_configuration from r and
// returns the GraphOptions needed to apply them to New. Blocks/connections
// are not part of the YAML wire format; pass them via WithBlocks/
// WithConnections alongside the returned options.
func LoadConfigYAML(r io.Reader) ([]GraphOption, error) {
	var doc yamlConfig
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}

	settings := DefaultSettings()
	settings.CanChangeBlockGeometry = parseGeometryPermission(doc.Settings.CanChangeBlockGeometry)
	settings.UseBlocksAnchors = doc.Settings.UseBlocksAnchors
	settings.ShowConnectionArrows = doc.Settings.ShowConnectionArrows
	settings.ShowConnectionLabels = doc.Settings.ShowConnectionLabels
	settings.UseBezierConnections = doc.Settings.UseBezierConnections
	settings.CanCreateNewConnections = doc.Settings.CanCreateNewConnections
	settings.CanDragCamera = doc.Settings.CanDragCamera
	settings.CanZoomCamera = doc.Settings.CanZoomCamera

	opts := []GraphOption{
		WithConfigurationName(doc.ConfigurationName),
		WithSettings(settings),
		WithColors(doc.ViewConfiguration.Colors),
		WithConstants(doc.ViewConfiguration.Constants),
	}

	var specs []LayerSpec
	for _, l := range doc.Layers {
		props := make(layers.Props, len(l.Props))
		for k, v := range l.Props {
			props[k] = v
		}
		specs = append(specs, LayerSpec{Type: l.Type, Props: props})
	}
	if len(specs) > 0 {
		opts = append(opts, WithLayers(specs...))
	}
	return opts, nil
}
