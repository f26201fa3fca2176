package scheduler

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultFrameInterval approximates a 60Hz display refresh, the same raster
// tick the scene graph batches work onto.
const DefaultFrameInterval = time.Second / 60

// frameMsg is sent periodically to drive RunFrame, mirroring the teacher's
// tickMsg-driven async refresh (pkg/bubbly/runner.go).
type frameMsg time.Time

// Pump drives a Scheduler from Bubbletea's Elm-architecture message loop: it
// self-reschedules a tea.Tick every frame interval and calls RunFrame each
// time one arrives. Embed Pump's Init/Update into a tea.Model, or use
// NewPumpModel to wrap an existing model directly.
type Pump struct {
	Scheduler *Scheduler
	Interval  time.Duration
}

// NewPump creates a Pump with DefaultFrameInterval.
func NewPump(s *Scheduler) *Pump {
	return &Pump{Scheduler: s, Interval: DefaultFrameInterval}
}

// Tick returns the tea.Cmd that schedules the next frameMsg.
func (p *Pump) Tick() tea.Cmd {
	return tea.Tick(p.Interval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Handle processes msg: if it is a frameMsg, it runs one scheduler frame and
// returns a command for the next tick. Otherwise it returns (false, nil) so
// the caller can forward msg elsewhere.
func (p *Pump) Handle(msg tea.Msg) (handled bool, cmd tea.Cmd) {
	if _, ok := msg.(frameMsg); !ok {
		return false, nil
	}
	p.Scheduler.RunFrame()
	return true, p.Tick()
}

// PumpModel wraps a tea.Model, driving a Scheduler's frames alongside it.
// It is the scheduler-only analogue of the teacher's asyncWrapperModel.
type PumpModel struct {
	inner tea.Model
	pump  *Pump
}

// NewPumpModel wraps inner so that Scheduler receives one RunFrame call per
// pump.Interval for the lifetime of the Bubbletea program.
func NewPumpModel(inner tea.Model, pump *Pump) *PumpModel {
	return &PumpModel{inner: inner, pump: pump}
}

func (m *PumpModel) Init() tea.Cmd {
	return tea.Batch(m.inner.Init(), m.pump.Tick())
}

func (m *PumpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if handled, cmd := m.pump.Handle(msg); handled {
		return m, cmd
	}
	updated, cmd := m.inner.Update(msg)
	m.inner = updated
	return m, cmd
}

func (m *PumpModel) View() string {
	return m.inner.View()
}
