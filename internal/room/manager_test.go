package room

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sovereign-game/sovereign-server/internal/cards"
)

func testManager(t *testing.T) *Manager {
	t.Helper()
	catalog, err := cards.Load("../../data/cards.json")
	require.NoError(t, err)
	m := NewManager(catalog, nil)
	m.SetSeedFunc(func() int64 { return 1 })
	return m
}

func TestCreateAndLookup(t *testing.T) {
	m := testManager(t)

	g := m.Create(nil)
	require.NotNil(t, g)
	assert.Len(t, g.ID(), 8)

	assert.Same(t, g, m.Get(g.ID()))
	assert.Nil(t, m.Get("missing"))
}

func TestRemove(t *testing.T) {
	m := testManager(t)

	g := m.Create(nil)
	m.Remove(g.ID())
	assert.Nil(t, m.Get(g.ID()))

	// Removing twice is harmless.
	m.Remove(g.ID())
}

func TestList(t *testing.T) {
	m := testManager(t)
	assert.Empty(t, m.List())

	a := m.Create(nil)
	b := m.Create([]string{"militia"})

	list := m.List()
	require.Len(t, list, 2)
	ids := []string{list[0].GameID, list[1].GameID}
	assert.ElementsMatch(t, []string{a.ID(), b.ID()}, ids)
	for _, s := range list {
		assert.False(t, s.Started)
	}
}

func TestRoomsAreIndependent(t *testing.T) {
	m := testManager(t)

	a := m.Create(nil)
	b := m.Create(nil)
	require.NotEqual(t, a.ID(), b.ID())

	_, err := a.AddPlayer("p1", "Alice")
	require.NoError(t, err)
	_, err = a.AddPlayer("p2", "Bob")
	require.NoError(t, err)
	require.NoError(t, a.Start())

	assert.True(t, a.Summary().Started)
	assert.False(t, b.Summary().Started)
}
