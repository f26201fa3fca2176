package reactive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignalGetSet(t *testing.T) {
	s := New(1)
	assert.Equal(t, 1, s.Get())
	s.Set(2)
	assert.Equal(t, 2, s.Get())
}

func TestSignalSetEqualValueIsNoOp(t *testing.T) {
	s := New(5)
	calls := 0
	s.Subscribe(func(int) { calls++ })

	s.Set(5)

	assert.Equal(t, 0, calls, "setting the same value must not notify listeners")
}

func TestSignalSetDifferentValueNotifies(t *testing.T) {
	s := New("a")
	var got string
	s.Subscribe(func(v string) { got = v })

	s.Set("b")

	assert.Equal(t, "b", got)
}

func TestSignalUnsubscribeStopsNotifications(t *testing.T) {
	s := New(0)
	calls := 0
	unsub := s.Subscribe(func(int) { calls++ })
	unsub()

	s.Set(1)

	assert.Equal(t, 0, calls)
}

func TestSignalPeekDoesNotTrack(t *testing.T) {
	s := New(10)
	evals := 0
	c := NewComputed(func() int {
		evals++
		return s.Peek() * 2
	})

	assert.Equal(t, 20, c.Get())
	s.Set(99) // Peek-only dependency: must not invalidate c.
	assert.Equal(t, 20, c.Get())
	assert.Equal(t, 1, evals)
}

func TestSignalCustomEquality(t *testing.T) {
	type point struct{ x, y int }
	s := NewWithEqual(point{1, 1}, func(a, b point) bool { return a.x == b.x })
	calls := 0
	s.Subscribe(func(point) { calls++ })

	s.Set(point{1, 99}) // x unchanged -> considered equal -> no notify
	assert.Equal(t, 0, calls)

	s.Set(point{2, 99})
	assert.Equal(t, 1, calls)
}
