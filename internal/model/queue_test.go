package model

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueuePairsInOrder(t *testing.T) {
	q := NewQueue()
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, q.AddPlayer(Player{ID: id}))
	}
	assert.True(t, errors.Is(q.AddPlayer(Player{ID: "a"}), ErrAlreadyQueued))

	p1, p2, ok := q.GetNextPair()
	require.True(t, ok)
	assert.Equal(t, "a", p1.ID)
	assert.Equal(t, "b", p2.ID)

	_, _, ok = q.GetNextPair()
	assert.False(t, ok)
	assert.Equal(t, 1, q.Size())
}

func TestQueueRemove(t *testing.T) {
	q := NewQueue()
	require.NoError(t, q.AddPlayer(Player{ID: "a"}))
	require.NoError(t, q.AddPlayer(Player{ID: "b"}))

	q.Remove("a")
	q.Remove("missing")
	assert.Equal(t, 1, q.Size())

	require.NoError(t, q.AddPlayer(Player{ID: "a"}))
	p1, p2, ok := q.GetNextPair()
	require.True(t, ok)
	assert.Equal(t, "b", p1.ID)
	assert.Equal(t, "a", p2.ID)
}

func TestQueueNextReadyPairSkipsWaitingPlayers(t *testing.T) {
	q := NewQueue()
	for _, id := range []string{"a", "b", "c", "d"} {
		require.NoError(t, q.AddPlayer(Player{ID: id}))
	}
	ready := func(p Player) bool { return p.ID != "b" }

	p1, p2, ok := q.NextReadyPair(ready)
	require.True(t, ok)
	assert.Equal(t, "a", p1.ID)
	assert.Equal(t, "c", p2.ID)

	_, _, ok = q.NextReadyPair(ready)
	assert.False(t, ok)
	assert.Equal(t, 2, q.Size())

	p1, p2, ok = q.GetNextPair()
	require.True(t, ok)
	assert.Equal(t, "b", p1.ID)
	assert.Equal(t, "d", p2.ID)
}
