package graphkit

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blockgraph/graphkit/pkg/kernel"
	"github.com/blockgraph/graphkit/pkg/store"
)

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }

func TestMergePaletteLeavesUnsetFieldsAlone(t *testing.T) {
	override := PaletteOverride{Block: strPtr("201")}
	merged := mergePalette(DefaultPalette, override)

	assert.Equal(t, lipgloss.Color("201"), merged.Block)
	assert.Equal(t, DefaultPalette.BlockSelected, merged.BlockSelected)
	assert.Equal(t, DefaultPalette.Anchor, merged.Anchor)
}

func TestMergeConstantsLeavesUnsetFieldsAlone(t *testing.T) {
	override := ConstantsOverride{GridSize: f64Ptr(10)}
	merged := mergeConstants(DefaultConstants, override)

	assert.Equal(t, 10.0, merged.GridSize)
	assert.Equal(t, DefaultConstants.ArrowLength, merged.ArrowLength)
}

func TestNewGraphConfigDefaults(t *testing.T) {
	cfg := newGraphConfig()
	assert.Equal(t, 80.0, cfg.ViewportWidth)
	assert.Equal(t, 24.0, cfg.ViewportHeight)
	assert.Equal(t, 0.1, cfg.ScaleMin)
	assert.Equal(t, 4.0, cfg.ScaleMax)
	assert.Equal(t, GeometryAll, cfg.Settings.CanChangeBlockGeometry)
}

func TestGraphOptionsApplyInOrder(t *testing.T) {
	cfg := newGraphConfig()
	blk := store.Block{ID: "b1", Name: "one"}
	opts := []GraphOption{
		WithConfigurationName("demo"),
		WithBlocks(blk),
		WithViewport(100, 50),
		WithScaleRange(0.25, 8),
		WithColors(PaletteOverride{Block: strPtr("5")}),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	assert.Equal(t, "demo", cfg.ConfigurationName)
	assert.Equal(t, []store.Block{blk}, cfg.Blocks)
	assert.Equal(t, 100.0, cfg.ViewportWidth)
	assert.Equal(t, 8.0, cfg.ScaleMax)
	assert.Equal(t, "5", *cfg.ViewConfiguration.Colors.Block)
}

type stubComponent struct{}

func (stubComponent) WillUpdate(ctx *kernel.Context)              {}
func (stubComponent) Children(ctx *kernel.Context) []kernel.ChildSpec { return nil }
func (stubComponent) DidIterate(ctx *kernel.Context)              {}
func (stubComponent) Render(ctx *kernel.RenderContext)            {}
func (stubComponent) Visible() bool                               { return true }

func TestWithBlockComponentInitializesRegistryLazily(t *testing.T) {
	cfg := &GraphConfig{Settings: Settings{}}
	opt := WithBlockComponent("note", func() kernel.Component { return stubComponent{} })
	opt(cfg)

	require.NotNil(t, cfg.Settings.BlockComponents)
	require.Contains(t, cfg.Settings.BlockComponents, "note")
	assert.IsType(t, stubComponent{}, cfg.Settings.BlockComponents["note"]())
}

func TestParseGeometryPermission(t *testing.T) {
	assert.Equal(t, GeometryNone, parseGeometryPermission("None"))
	assert.Equal(t, GeometryOnlyAnchor, parseGeometryPermission("OnlyAnchor"))
	assert.Equal(t, GeometryAll, parseGeometryPermission("All"))
	assert.Equal(t, GeometryAll, parseGeometryPermission(""))
}

func TestLoadConfigYAMLDecodesSettingsLayersAndColors(t *testing.T) {
	doc := `
configurationName: demo-graph
settings:
  canChangeBlockGeometry: OnlyAnchor
  useBlocksAnchors: true
  showConnectionArrows: false
layers:
  - type: scene
    props:
      opacity: 0.5
viewConfiguration:
  colors:
    block: "99"
  constants:
    gridSize: 20
`
	opts, err := LoadConfigYAML(strings.NewReader(doc))
	require.NoError(t, err)
	require.NotEmpty(t, opts)

	cfg := newGraphConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	assert.Equal(t, "demo-graph", cfg.ConfigurationName)
	assert.Equal(t, GeometryOnlyAnchor, cfg.Settings.CanChangeBlockGeometry)
	assert.True(t, cfg.Settings.UseBlocksAnchors)
	assert.False(t, cfg.Settings.ShowConnectionArrows)
	require.Len(t, cfg.Layers, 1)
	assert.Equal(t, "scene", cfg.Layers[0].Type)
	assert.Equal(t, "99", *cfg.ViewConfiguration.Colors.Block)
	assert.Equal(t, 20.0, *cfg.ViewConfiguration.Constants.GridSize)
}

func TestLoadConfigYAMLRejectsMalformedDocument(t *testing.T) {
	_, err := LoadConfigYAML(strings.NewReader(":\n  - not: [valid"))
	assert.Error(t, err)
}
