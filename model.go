package graphkit

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/blockgraph/graphkit/pkg/gesture"
	"github.com/blockgraph/graphkit/pkg/scheduler"
)

// Model wraps a Graph as a tea.Model, translating Bubbletea's mouse and
// resize messages into the graph's gesture/camera APIs and driving one
// RunFrame per tick. It is the scheduler-aware analogue of the teacher's
// asyncWrapperModel (pkg/bubbly/runner.go): instead of forwarding every
// message to a wrapped component, it forwards the subset the graph engine
// understands and otherwise leaves View()/Update() to the host.
type Model struct {
	Graph *Graph

	interval time.Duration
}

// frameTickMsg drives Model.Update's per-frame RunFrame call. It is
// distinct from pkg/scheduler's own frameMsg because that type is
// unexported and Pump.Handle calls Scheduler.RunFrame directly, bypassing
// the UpdatePhase/Flush/RenderPhase ordering Graph.RunFrame enforces.
type frameTickMsg time.Time

// NewModel wraps g. The returned Model ticks at scheduler.DefaultFrameInterval.
func NewModel(g *Graph) *Model {
	return &Model{Graph: g, interval: scheduler.DefaultFrameInterval}
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return frameTickMsg(t) })
}

// Init starts the frame pump.
func (m *Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles window-resize and mouse messages by driving the graph's
// camera and gesture controller, and runs one graph frame per tick.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameTickMsg:
		m.Graph.RunFrame()
		return m, m.tick()

	case tea.WindowSizeMsg:
		m.Graph.Resize(float64(msg.Width), float64(msg.Height))
		return m, nil

	case tea.MouseMsg:
		if ev, ok := gesture.FromTeaMsg(msg, time.Now()); ok {
			m.Graph.Gesture.Handle(ev)
		}
		return m, nil
	}
	return m, nil
}

// View renders the graph's primary scene surface.
func (m *Model) View() string {
	return m.Graph.View()
}

// Run constructs a Model for g and runs it as a Bubbletea program,
// mirroring the teacher's top-level Run(component, ...RunOption) error
// entry point (pkg/bubbly/runner.go).
func Run(g *Graph, opts ...tea.ProgramOption) error {
	p := tea.NewProgram(NewModel(g), opts...)
	_, err := p.Run()
	return err
}
