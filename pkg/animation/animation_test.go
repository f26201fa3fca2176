package animation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartTransitionsToRunning(t *testing.T) {
	a := New(Params{"x": 0}, Linear, false)
	a.Start(Params{"x": 10}, 1)
	assert.Equal(t, Running, a.State())
}

func TestUpdateInterpolatesLinearly(t *testing.T) {
	a := New(Params{"x": 0}, Linear, false)
	a.Start(Params{"x": 10}, 1)
	a.Update(0.5)
	assert.InDelta(t, 5, a.Current()["x"], 1e-6)
}

func TestUpdateReachesCompletedAtDuration(t *testing.T) {
	a := New(Params{"x": 0}, Linear, false)
	a.Start(Params{"x": 10}, 1)
	a.Update(0.5)
	state := a.Update(0.5)
	require.Equal(t, Completed, state)
	assert.InDelta(t, 10, a.Current()["x"], 1e-6)
}

func TestUpdateAfterCompletedTransitionsToIdle(t *testing.T) {
	a := New(Params{"x": 0}, Linear, false)
	a.Start(Params{"x": 10}, 1)
	a.Update(1)
	state := a.Update(0.1)
	assert.Equal(t, Idle, state)
	assert.Equal(t, Idle, a.State())
}

func TestStopHaltsInPlace(t *testing.T) {
	a := New(Params{"x": 0}, Linear, false)
	a.Start(Params{"x": 10}, 1)
	a.Update(0.3)
	a.Stop()
	assert.Equal(t, Cancelled, a.State())
	before := a.Current()["x"]
	a.Update(0.3)

	assert.Equal(t, before, a.Current()["x"])
}

func TestCancelledTransitionsToIdleOnNextUpdate(t *testing.T) {
	a := New(Params{"x": 0}, Linear, false)
	a.Start(Params{"x": 10}, 1)
	a.Stop()
	state := a.Update(0)
	assert.Equal(t, Idle, state)
}

func TestInfiniteAnimationKeepsRunningPastDuration(t *testing.T) {
	a := New(Params{"x": 0}, Linear, true)
	a.Start(Params{"x": 10}, 1)
	a.Update(1)
	state := a.Update(0.1)
	assert.Equal(t, Running, state)
}

func TestInfiniteAnimationPingPongsDirection(t *testing.T) {
	a := New(Params{"x": 0}, Linear, true)
	a.Start(Params{"x": 10}, 1)
	a.Update(1) // reaches 10, flips
	a.Update(1) // should head back toward 0
	assert.InDelta(t, 0, a.Current()["x"], 1e-6)
}

func TestMultipleParametersAnimateInLockstep(t *testing.T) {
	a := New(Params{"x": 0, "y": 100}, Linear, false)
	a.Start(Params{"x": 10, "y": 0}, 1)
	a.Update(0.5)
	assert.InDelta(t, 5, a.Current()["x"], 1e-6)
	assert.InDelta(t, 50, a.Current()["y"], 1e-6)
}

func TestStartBeforeCompletionRestartsFromCurrentValues(t *testing.T) {
	a := New(Params{"x": 0}, Linear, false)
	a.Start(Params{"x": 10}, 1)
	a.Update(0.5)
	mid := a.Current()["x"]
	a.Start(Params{"x": 20}, 1)
	assert.Equal(t, Running, a.State())
	assert.Equal(t, mid, a.Current()["x"])
}
