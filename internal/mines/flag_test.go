package mines

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTriFlagTransitions(t *testing.T) {
	// remaining after each flag press, starting from zero, for flag
	// counts 1, 2, 3, 0 and back around.
	tests := []struct {
		weight    int
		remaining []int
	}{
		{weight: 0, remaining: []int{0, 0, 0, 0}},
		{weight: 1, remaining: []int{-1, 0, 0, 0}},
		{weight: 2, remaining: []int{0, -1, 0, 0}},
		{weight: 3, remaining: []int{0, 0, -1, 0}},
	}
	unflagged := [][3]int{
		{9, 10, 10},
		{10, 9, 10},
		{10, 10, 9},
		{10, 10, 10},
	}

	for _, test := range tests {
		t.Run(fmt.Sprintf("weight %d", test.weight), func(t *testing.T) {
			b, err := NewBoard(1, 1, 1, Toroidal)
			require.NoError(t, err)
			b.cells[0].MineWeight = test.weight
			c := Counters{Unflagged: [3]int{10, 10, 10}}

			for round := range 2 {
				for step, want := range test.remaining {
					ok, err := c.Flag(b, Pursuit, Pos(0, 0))
					require.NoError(t, err)
					require.True(t, ok)
					assert.Equal(t, (step+1)%4, b.cells[0].Flags)
					assert.Equal(t, want, c.Remaining, "round %d step %d", round, step)
					assert.Equal(t, unflagged[step], c.Unflagged, "round %d step %d", round, step)
				}
			}
		})
	}
}

func TestSingleFlagToggle(t *testing.T) {
	for _, weight := range []int{0, 1} {
		b, err := NewBoard(1, 1, 1, Bounded)
		require.NoError(t, err)
		b.cells[0].MineWeight = weight
		c := Counters{Remaining: 1, Unflagged: [3]int{1}}

		_, err = c.Flag(b, Default, Pos(0, 0))
		require.NoError(t, err)
		assert.Equal(t, 1, b.cells[0].Flags)
		assert.Equal(t, 0, c.Unflagged[0])
		assert.Equal(t, 1-weight, c.Remaining)

		_, err = c.Flag(b, Default, Pos(0, 0))
		require.NoError(t, err)
		assert.Equal(t, 0, b.cells[0].Flags)
		assert.Equal(t, Counters{Remaining: 1, Unflagged: [3]int{1}}, c)
	}
}

func TestFlagRevealed(t *testing.T) {
	b, err := NewBoard(2, 2, 0, Bounded)
	require.NoError(t, err)
	b.at(Pos(1, 1)).Revealed = true
	c := newCounters(Default, 0)

	ok, err := c.Flag(b, Default, Pos(1, 1))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, b.at(Pos(1, 1)).Flags)

	_, err = c.Flag(b, Default, Pos(2, 0))
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestSplit(t *testing.T) {
	tests := []struct {
		mode  Mode
		mines int
		want  [3]int
	}{
		{Default, 12, [3]int{12, 0, 0}},
		{Pursuit, 12, [3]int{6, 3, 3}},
		{Pursuit, 40, [3]int{20, 10, 10}},
		{Pursuit, 100, [3]int{50, 25, 25}},
		{Pursuit, 7, [3]int{3, 1, 3}},
		{Pursuit, 1, [3]int{0, 0, 1}},
		{Pursuit, 0, [3]int{0, 0, 0}},
	}
	for _, test := range tests {
		ones, twos, threes := test.mode.Split(test.mines)
		assert.Equal(t, test.want, [3]int{ones, twos, threes}, "%s %d", test.mode, test.mines)
		weights := test.mode.Weights(test.mines)
		assert.Len(t, weights, test.mines)
		assert.IsNonDecreasing(t, weights)
	}
}
