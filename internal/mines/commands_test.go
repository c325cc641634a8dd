package mines

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line string
		want Command
		err  bool
	}{
		{line: "g", want: Command{Kind: CommandGet}},
		{line: " r 3 4 ", want: Command{Kind: CommandReveal, Position: Pos(3, 4)}},
		{line: "F 0 9", want: Command{Kind: CommandFlag, Position: Pos(0, 9)}},
		{line: "q", want: Command{Kind: CommandForfeit}},
		{line: "", err: true},
		{line: "o 1 1", err: true},
		{line: "r 1", err: true},
		{line: "g 1", err: true},
		{line: "r a 1", err: true},
		{line: "f 1 b", err: true},
	}
	for _, test := range tests {
		t.Run(test.line, func(t *testing.T) {
			got, err := ParseCommand(test.line)
			if test.err {
				assert.ErrorIs(t, err, ErrBadCommand)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.want, got)
		})
	}
}

func TestCommandApply(t *testing.T) {
	s, err := NewSession(Default, Params{Rows: 3, Columns: 3},
		WithMines(map[Position]int{Pos(0, 0): 1}))
	require.NoError(t, err)

	for _, line := range []string{"g", "r 2 2", "f 0 0"} {
		c, err := ParseCommand(line)
		require.NoError(t, err)
		_, err = c.Apply(s)
		require.NoError(t, err)
	}
	assert.Equal(t, Won, s.Status())

	c, err := ParseCommand("r 5 5")
	require.NoError(t, err)
	_, err = c.Apply(s)
	assert.ErrorIs(t, err, ErrOutOfBounds)
}
