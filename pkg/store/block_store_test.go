package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetBlocksPopulatesTable(t *testing.T) {
	s := newBlockStore()
	s.SetBlocks([]Block{
		{ID: "b1", W: 10, H: 10},
		{ID: "b2", W: 20, H: 20},
	})

	b, ok := s.Get("b1")
	require.True(t, ok)
	assert.Equal(t, 10.0, b.W)
	assert.Len(t, s.List(), 2)
}

func TestSetBlocksNoopWhenSameIDSet(t *testing.T) {
	s := newBlockStore()
	s.SetBlocks([]Block{{ID: "b1"}, {ID: "b2"}})

	var idChanges int
	s.IDs().Subscribe(func([]BlockID) { idChanges++ })

	// Different field values, same id set: the ids signal must not fire,
	// even though the underlying rows changed.
	s.SetBlocks([]Block{{ID: "b2", Name: "renamed"}, {ID: "b1"}})
	assert.Equal(t, 0, idChanges)

	name, _ := s.Get("b2")
	assert.Equal(t, "renamed", name.Name)
}

func TestSetBlocksFiresOnMembershipChange(t *testing.T) {
	s := newBlockStore()
	s.SetBlocks([]Block{{ID: "b1"}})

	var idChanges int
	s.IDs().Subscribe(func([]BlockID) { idChanges++ })

	s.SetBlocks([]Block{{ID: "b1"}, {ID: "b2"}})
	assert.Equal(t, 1, idChanges)
}

func TestSetBlocksRemovesDroppedRows(t *testing.T) {
	s := newBlockStore()
	s.SetBlocks([]Block{{ID: "b1"}, {ID: "b2"}})
	s.SetBlocks([]Block{{ID: "b1"}})

	_, ok := s.Get("b2")
	assert.False(t, ok)
	assert.Nil(t, s.Entity("b2"))
}

func TestUpdateBlocksMergesOnlySetFields(t *testing.T) {
	s := newBlockStore()
	s.SetBlocks([]Block{{ID: "b1", X: 1, Y: 2, Name: "orig"}})

	x := 99.0
	s.UpdateBlocks([]BlockPartial{{ID: "b1", X: &x}})

	b, _ := s.Get("b1")
	assert.Equal(t, 99.0, b.X)
	assert.Equal(t, 2.0, b.Y)
	assert.Equal(t, "orig", b.Name)
}

func TestUpdateBlocksIgnoresUnknownID(t *testing.T) {
	s := newBlockStore()
	s.SetBlocks([]Block{{ID: "b1"}})

	x := 1.0
	assert.NotPanics(t, func() {
		s.UpdateBlocks([]BlockPartial{{ID: "ghost", X: &x}})
	})
}

func TestUpdateBlocksMergesUserMetaWithoutDroppingExistingKeys(t *testing.T) {
	s := newBlockStore()
	s.SetBlocks([]Block{{ID: "b1", UserMeta: map[string]any{"a": 1, "b": 2}}})

	s.UpdateBlocks([]BlockPartial{{ID: "b1", UserMeta: map[string]any{"b": 20, "c": 3}}})

	b, _ := s.Get("b1")
	assert.Equal(t, map[string]any{"a": 1, "b": 20, "c": 3}, b.UserMeta)
}

func TestSetXYWritesOnlyPosition(t *testing.T) {
	s := newBlockStore()
	s.SetBlocks([]Block{{ID: "b1", X: 0, Y: 0, Name: "keep"}})
	s.SetXY("b1", 5, 6)

	b, _ := s.Get("b1")
	assert.Equal(t, 5.0, b.X)
	assert.Equal(t, 6.0, b.Y)
	assert.Equal(t, "keep", b.Name)
}

func TestEntitySignalIdentityPreservedAcrossUnrelatedSet(t *testing.T) {
	s := newBlockStore()
	s.SetBlocks([]Block{{ID: "b1"}, {ID: "b2"}})
	sig := s.Entity("b1")

	s.SetBlocks([]Block{{ID: "b1", Name: "changed"}, {ID: "b2"}})

	assert.Same(t, sig, s.Entity("b1"), "existing rows keep their signal identity across Set")
}
