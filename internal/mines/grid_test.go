package mines

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSymbolsWon(t *testing.T) {
	s, err := NewSession(Default, Params{Rows: 3, Columns: 3},
		WithMines(map[Position]int{Pos(0, 0): 1}))
	require.NoError(t, err)
	assert.Equal(t, " #", s.Symbol(Pos(1, 1)))

	_, err = s.ApplyReveal(Pos(2, 2))
	require.NoError(t, err)
	_, err = s.ApplyFlag(Pos(0, 0))
	require.NoError(t, err)
	require.Equal(t, Won, s.Status())

	assert.Equal(t, " F", s.Symbol(Pos(0, 0)))
	assert.Equal(t, " 1", s.Symbol(Pos(0, 1)))
	assert.Equal(t, " .", s.Symbol(Pos(2, 2)))
	assert.Equal(t,
		"     0  1  2\n"+
			" 0   F  1  .\n"+
			" 1   1  1  .\n"+
			" 2   .  .  .\n"+
			"won remaining=0 flags=0\n",
		s.String())
}

func TestSymbolsLostPursuit(t *testing.T) {
	s, err := NewSession(Pursuit, Params{Rows: 3, Columns: 3},
		WithMines(map[Position]int{Pos(0, 0): 2}))
	require.NoError(t, err)

	_, err = s.ApplyReveal(Pos(1, 1))
	require.NoError(t, err)
	assert.Equal(t, " @", s.Symbol(Pos(1, 1)))
	_, err = s.ApplyFlag(Pos(0, 1))
	require.NoError(t, err)
	assert.Equal(t, "F1", s.Symbol(Pos(0, 1)))
	assert.Contains(t, s.String(), "in_progress flags=-1/1/0\n")
	assert.NotContains(t, s.String(), "remaining")

	_, err = s.ApplyReveal(Pos(0, 0))
	require.NoError(t, err)
	require.Equal(t, Lost, s.Status())

	assert.Equal(t, " X", s.Symbol(Pos(0, 0)))
	assert.Equal(t, "x1", s.Symbol(Pos(0, 1)))
	assert.Equal(t, " 2", s.Symbol(Pos(1, 1)))
	assert.Equal(t, " #", s.Symbol(Pos(2, 2)))
	assert.Contains(t, s.String(), "lost remaining=1 flags=-1/1/0\n")
}
