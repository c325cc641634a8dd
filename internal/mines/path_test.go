package mines

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShortestPath(t *testing.T) {
	b, err := NewBoard(3, 3, 0, Toroidal)
	require.NoError(t, err)
	f := NewPathFinder(b)

	path, err := f.ShortestPath(Pos(0, 0), Pos(2, 2))
	require.NoError(t, err)
	assert.Equal(t, []Position{Pos(0, 0), Pos(1, 1), Pos(2, 2)}, path)

	path, err = f.ShortestPath(Pos(1, 2), Pos(1, 2))
	require.NoError(t, err)
	assert.Equal(t, []Position{Pos(1, 2)}, path)

	_, err = f.ShortestPath(Pos(0, 0), Pos(3, 0))
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestRightDirectionNeighbors(t *testing.T) {
	b, err := NewBoard(5, 5, 0, Toroidal)
	require.NoError(t, err)
	f := NewPathFinder(b)

	assert.Equal(t,
		[]Position{Pos(0, 1), Pos(1, 0), Pos(1, 1)},
		f.RightDirectionNeighbors(Pos(0, 0), Pos(4, 4)),
		"steps across an edge are excluded",
	)
	assert.Equal(t,
		[]Position{Pos(1, 2), Pos(1, 3), Pos(2, 3)},
		f.RightDirectionNeighbors(Pos(2, 2), Pos(0, 4)),
	)
	assert.Equal(t,
		[]Position{Pos(1, 2)},
		f.RightDirectionNeighbors(Pos(2, 2), Pos(0, 2)),
	)
}

func TestShortestPathMonotonic(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	b, err := NewBoard(11, 8, 0, Toroidal)
	require.NoError(t, err)
	f := NewPathFinder(b)

	for range 200 {
		start := Pos(r.IntN(11), r.IntN(8))
		goal := Pos(r.IntN(11), r.IntN(8))
		path, err := f.ShortestPath(start, goal)
		require.NoError(t, err)
		require.NotEmpty(t, path)
		assert.Equal(t, start, path[0])
		assert.Equal(t, goal, path[len(path)-1])
		assert.Len(t, path, max(absDiff(start.Row, goal.Row), absDiff(start.Column, goal.Column))+1)

		for i := 1; i < len(path); i++ {
			prev, next := path[i-1], path[i]
			assert.LessOrEqual(t, absDiff(next.Row, goal.Row), absDiff(prev.Row, goal.Row))
			assert.LessOrEqual(t, absDiff(next.Column, goal.Column), absDiff(prev.Column, goal.Column))
			assert.LessOrEqual(t, absDiff(next.Row, prev.Row), 1)
			assert.LessOrEqual(t, absDiff(next.Column, prev.Column), 1)
		}
	}
}
