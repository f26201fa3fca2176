package layers

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestNewSurfaceStartsBlank(t *testing.T) {
	s := NewTextGridSurface(3, 2)
	assert.Equal(t, "   \n   ", s.Render())
}

func TestSetCellPaintsRune(t *testing.T) {
	s := NewTextGridSurface(3, 1)
	s.SetCell(1, 0, 'X', lipgloss.NewStyle())
	assert.Equal(t, " X ", s.Render())
}

func TestSetCellOutOfBoundsIsIgnored(t *testing.T) {
	s := NewTextGridSurface(2, 2)
	assert.NotPanics(t, func() { s.SetCell(-1, 0, 'X', lipgloss.NewStyle()) })
	assert.NotPanics(t, func() { s.SetCell(5, 5, 'X', lipgloss.NewStyle()) })
}

func TestClearResetsAllCells(t *testing.T) {
	s := NewTextGridSurface(2, 1)
	s.SetCell(0, 0, 'X', lipgloss.NewStyle())
	s.Clear()
	assert.Equal(t, "  ", s.Render())
}

func TestResizeDiscardsPriorContents(t *testing.T) {
	s := NewTextGridSurface(2, 1)
	s.SetCell(0, 0, 'X', lipgloss.NewStyle())
	s.Resize(3, 1)
	assert.Equal(t, 3, s.Width())
	assert.Equal(t, "   ", s.Render())
}
