package layers

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type cell struct {
	r     rune
	style lipgloss.Style
}

// TextGridSurface is the reference RasterSurface: a fixed-size grid of
// styled runes, addressed by integer screen cell coordinates. Render joins
// the grid into the string a terminal frame would display.
type TextGridSurface struct {
	width, height int
	rows          [][]cell
}

// NewTextGridSurface creates a surface of the given cell dimensions, every
// cell initialised to a blank space with the default style.
func NewTextGridSurface(width, height int) *TextGridSurface {
	s := &TextGridSurface{}
	s.Resize(width, height)
	return s
}

// Resize reallocates the grid, discarding prior contents.
func (s *TextGridSurface) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	s.width, s.height = width, height
	s.rows = make([][]cell, height)
	for y := range s.rows {
		s.rows[y] = make([]cell, width)
		for x := range s.rows[y] {
			s.rows[y][x] = cell{r: ' '}
		}
	}
}

// SetCell paints one grid cell. Out-of-bounds coordinates are ignored.
func (s *TextGridSurface) SetCell(x, y int, r rune, style lipgloss.Style) {
	if y < 0 || y >= s.height || x < 0 || x >= s.width {
		return
	}
	s.rows[y][x] = cell{r: r, style: style}
}

// Clear resets every cell to a blank space with the default style.
func (s *TextGridSurface) Clear() {
	for y := range s.rows {
		for x := range s.rows[y] {
			s.rows[y][x] = cell{r: ' '}
		}
	}
}

func (s *TextGridSurface) Width() int  { return s.width }
func (s *TextGridSurface) Height() int { return s.height }

// Render joins the grid into its displayable string, one styled rune at a
// time, rows separated by newlines.
func (s *TextGridSurface) Render() string {
	var b strings.Builder
	for y, row := range s.rows {
		if y > 0 {
			b.WriteByte('\n')
		}
		for _, c := range row {
			b.WriteString(c.style.Render(string(c.r)))
		}
	}
	return b.String()
}
