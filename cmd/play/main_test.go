package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-pursuit/internal/mines"
)

func TestPlayWinRecordsHighscore(t *testing.T) {
	opts := options{
		mode:       mines.Default,
		difficulty: mines.Easy,
		name:       "carol",
		scores:     filepath.Join(t.TempDir(), "scores.db"),
	}
	layout := mines.WithMines(map[mines.Position]int{mines.Pos(0, 0): 1})

	var out bytes.Buffer
	err := play(context.Background(), strings.NewReader("r 9 9\nf 0 0\n"), &out, opts, layout)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "you won")
	assert.Contains(t, out.String(), "new highscore!")
	assert.Contains(t, out.String(), "1.  carol")
}

func TestPlayForfeit(t *testing.T) {
	var out bytes.Buffer
	err := play(context.Background(), strings.NewReader("hello\nr 99 0\nq\nr 1 1\n"), &out, options{
		mode: mines.Pursuit, difficulty: mines.Medium,
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "unknown command")
	assert.Contains(t, out.String(), "out of bounds")
	assert.Contains(t, out.String(), "you lost")
}

func TestPlayEndOfInput(t *testing.T) {
	var out bytes.Buffer
	err := play(context.Background(), strings.NewReader("g\n"), &out, options{})
	require.NoError(t, err)
	assert.NotContains(t, out.String(), "you")
}

func TestCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := newCommand()
	cmd.Reader = strings.NewReader("r 1 1\nq\n")
	cmd.Writer = &out
	err := cmd.Run(context.Background(), []string{"play", "--board", "4:5:3", "--seed", "7", "-m", "pursuit"})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "you lost")

	cmd = newCommand()
	cmd.Writer = &out
	err = cmd.Run(context.Background(), []string{"play", "--difficulty", "impossible"})
	assert.Error(t, err)
}
