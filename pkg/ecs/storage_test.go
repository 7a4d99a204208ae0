package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageInsertGetRemove(t *testing.T) {
	s := NewStorage[int]()
	a := Entity{ID: 1}
	b := Entity{ID: 2}

	s.Insert(a, 10)
	s.Insert(b, 20)

	v, ok := s.Get(a)
	require.True(t, ok)
	assert.Equal(t, 10, v)

	s.Remove(a)
	_, ok = s.Get(a)
	assert.False(t, ok)

	v, ok = s.Get(b)
	require.True(t, ok)
	assert.Equal(t, 20, v, "swap-remove must not corrupt the surviving entity's value")
}

func TestStorageRemoveAbsentIsNoop(t *testing.T) {
	s := NewStorage[int]()
	assert.NotPanics(t, func() { s.Remove(Entity{ID: 42}) })
}

func TestStorageAllOrderedByEntityID(t *testing.T) {
	s := NewStorage[string]()
	// Insert out of id order to exercise the sort in All().
	s.Insert(Entity{ID: 5}, "five")
	s.Insert(Entity{ID: 1}, "one")
	s.Insert(Entity{ID: 3}, "three")

	pairs := s.All()
	require.Len(t, pairs, 3)
	assert.Equal(t, uint32(1), pairs[0].Entity.ID)
	assert.Equal(t, uint32(3), pairs[1].Entity.ID)
	assert.Equal(t, uint32(5), pairs[2].Entity.ID)
}

func TestStorageGetMutMutatesInPlace(t *testing.T) {
	s := NewStorage[int]()
	e := Entity{ID: 1}
	s.Insert(e, 1)
	*s.GetMut(e) += 41
	v, _ := s.Get(e)
	assert.Equal(t, 42, v)
}

func TestAllocatorRecyclesWithBumpedGeneration(t *testing.T) {
	a := NewAllocator()
	e1 := a.Alloc()
	a.Free(e1)
	e2 := a.Alloc()

	assert.Equal(t, e1.ID, e2.ID)
	assert.NotEqual(t, e1, e2, "a recycled id must carry a different generation")
}

func TestResourcesGetSet(t *testing.T) {
	type Dt float64
	r := NewResources()
	_, ok := Get[Dt](r)
	assert.False(t, ok)

	Set(r, Dt(0.25))
	v, ok := Get[Dt](r)
	require.True(t, ok)
	assert.Equal(t, Dt(0.25), v)
}

func TestEventBusMultipleReadersIndependent(t *testing.T) {
	bus := NewBus[int]()
	w := bus.Writer()
	r1 := bus.Reader()

	w.Send(1)
	w.Send(2)

	r2 := bus.Reader()
	w.Send(3)

	assert.Equal(t, []int{1, 2, 3}, r1.Drain())
	assert.Equal(t, []int{1, 2, 3}, r2.Drain())
	assert.Nil(t, r1.Drain())

	bus.Clear()
	assert.Equal(t, 0, bus.Len())
}
