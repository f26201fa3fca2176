// Package animation implements the parameter-vector tween engine: named
// float64 parameters driven in lockstep toward a target record over a
// scheduler-ticked duration, with Linear/EaseIn/EaseOut/EaseInOut timing
// and an optional infinite ping-pong replay.
package animation

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Timing selects the interpolation curve, matching the teacher's own
// tween usage (gween/ease) rather than a hand-rolled curve.
type Timing int

const (
	Linear Timing = iota
	EaseIn
	EaseOut
	EaseInOut
)

func (t Timing) easeFunc() ease.TweenFunc {
	switch t {
	case EaseIn:
		return ease.InQuad
	case EaseOut:
		return ease.OutQuad
	case EaseInOut:
		return ease.InOutQuad
	default:
		return ease.Linear
	}
}

// State is the animation's life cycle position.
type State int

const (
	Idle State = iota
	Running
	Completed
	Cancelled
)

// Params is a named parameter-vector snapshot.
type Params map[string]float64

func clone(p Params) Params {
	c := make(Params, len(p))
	for k, v := range p {
		c[k] = v
	}
	return c
}

// Animation drives Params toward a target record over a fixed duration,
// one scheduler frame at a time. The zero value is not usable; use New.
type Animation struct {
	current  Params
	from     Params
	target   Params
	duration float32
	timing   Timing
	infinite bool
	state    State
	tweens   map[string]*gween.Tween
}

// New creates an Animation holding initial as its current parameter
// record, Idle until Start is called.
func New(initial Params, timing Timing, infinite bool) *Animation {
	return &Animation{current: clone(initial), timing: timing, infinite: infinite, state: Idle}
}

// Current returns a snapshot of the animation's current parameter values.
func (a *Animation) Current() Params { return clone(a.current) }

// State reports the animation's life-cycle state.
func (a *Animation) State() State { return a.state }

// Start snapshots the current values as the new "from", sets target as the
// destination, and begins running toward it over duration seconds.
// Parameters absent from target keep their current value unanimated.
func (a *Animation) Start(target Params, duration float32) {
	a.from = clone(a.current)
	a.target = clone(target)
	a.duration = duration
	a.tweens = make(map[string]*gween.Tween, len(target))
	for name, to := range target {
		from := a.current[name]
		a.tweens[name] = gween.New(float32(from), float32(to), duration, a.timing.easeFunc())
	}
	a.state = Running
}

// Stop halts the animation in place: current values are left exactly as
// they were on the frame Stop was called.
func (a *Animation) Stop() {
	if a.state == Running {
		a.state = Cancelled
	}
}

// Update advances the animation by dt seconds and returns its resulting
// state. Calling Update while Completed or Cancelled transitions silently
// to Idle, matching the {Completed|Cancelled} -> Idle edge; call Start
// again to re-enter Running.
func (a *Animation) Update(dt float32) State {
	switch a.state {
	case Completed, Cancelled:
		a.state = Idle
		return Idle
	case Idle:
		return Idle
	}

	allDone := true
	for name, tw := range a.tweens {
		val, finished := tw.Update(dt)
		a.current[name] = float64(val)
		if !finished {
			allDone = false
		}
	}

	if !allDone {
		return Running
	}

	if a.infinite {
		a.from, a.target = a.target, a.from
		for name := range a.tweens {
			a.tweens[name] = gween.New(float32(a.current[name]), float32(a.target[name]), a.duration, a.timing.easeFunc())
		}
		return Running
	}

	a.state = Completed
	return Completed
}
