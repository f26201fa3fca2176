package gesture

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/stretchr/testify/assert"
)

func TestFromTeaMsgMapsMouseLeftToDown(t *testing.T) {
	now := time.Now()
	ev, ok := FromTeaMsg(tea.MouseMsg{Type: tea.MouseLeft, X: 10, Y: 20}, now)
	assert.True(t, ok)
	assert.Equal(t, Down, ev.Phase)
	assert.Equal(t, 10.0, ev.Pos.X)
	assert.Equal(t, 20.0, ev.Pos.Y)
}

func TestFromTeaMsgMapsMouseMotionToMove(t *testing.T) {
	ev, ok := FromTeaMsg(tea.MouseMsg{Type: tea.MouseMotion}, time.Now())
	assert.True(t, ok)
	assert.Equal(t, Move, ev.Phase)
}

func TestFromTeaMsgMapsMouseReleaseToUp(t *testing.T) {
	ev, ok := FromTeaMsg(tea.MouseMsg{Type: tea.MouseRelease}, time.Now())
	assert.True(t, ok)
	assert.Equal(t, Up, ev.Phase)
}

func TestFromTeaMsgRejectsKeyMsg(t *testing.T) {
	_, ok := FromTeaMsg(tea.KeyMsg{}, time.Now())
	assert.False(t, ok)
}

func TestFromTeaMsgCarriesModifiers(t *testing.T) {
	ev, ok := FromTeaMsg(tea.MouseMsg{Type: tea.MouseLeft, Shift: true, Ctrl: true}, time.Now())
	assert.True(t, ok)
	assert.True(t, ev.Modifiers.Shift)
	assert.True(t, ev.Modifiers.Ctrl)
}
