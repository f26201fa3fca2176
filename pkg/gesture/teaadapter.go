package gesture

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/blockgraph/graphkit/pkg/geom"
)

// FromTeaMsg translates a bubbletea message into a PointerEvent. It returns
// ok=false for message types the gesture controller doesn't consume (key
// presses, window resizes, and so on), so callers can try other mappers in
// sequence the way EventTranslator's MessageMapper chain does.
func FromTeaMsg(msg tea.Msg, now time.Time) (PointerEvent, bool) {
	m, ok := msg.(tea.MouseMsg)
	if !ok {
		return PointerEvent{}, false
	}

	ev := PointerEvent{
		ID:  MousePointer,
		Pos: geom.Point{X: float64(m.X), Y: float64(m.Y)},
		Modifiers: Modifiers{
			Shift: m.Shift,
			Ctrl:  m.Ctrl,
			Alt:   m.Alt,
		},
		Time: now,
	}

	switch m.Type {
	case tea.MouseLeft:
		ev.Phase = Down
	case tea.MouseMotion:
		ev.Phase = Move
	case tea.MouseRelease:
		ev.Phase = Up
	default:
		return PointerEvent{}, false
	}
	return ev, true
}
