package highscore

import (
	"context"
	"io"
	"slices"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-pursuit/internal/mines"
)

func names(entries []Entry) []string {
	ns := make([]string, len(entries))
	for i, e := range entries {
		ns[i] = e.Name
	}
	return ns
}

func TestTableAdd(t *testing.T) {
	table := NewTable(3)

	assert.True(t, table.Add(Entry{Name: "b", ElapsedMs: 200}))
	assert.True(t, table.Add(Entry{Name: "a", ElapsedMs: 100}))
	assert.True(t, table.Add(Entry{Name: "c", ElapsedMs: 300}))
	assert.Equal(t, []string{"a", "b", "c"}, names(table.Entries()))

	assert.False(t, table.Add(Entry{Name: "d", ElapsedMs: 400}), "slower than a full table")
	assert.False(t, table.Add(Entry{Name: "e", ElapsedMs: 300}), "ties keep the earlier entry")

	assert.True(t, table.Add(Entry{Name: "f", ElapsedMs: 150}))
	assert.Equal(t, []string{"a", "f", "b"}, names(table.Entries()))
	assert.Equal(t, 3, table.Len())
}

func TestTableEntriesCopy(t *testing.T) {
	table := NewTable(2, Entry{Name: "a", ElapsedMs: 1})
	entries := table.Entries()
	entries[0].Name = "z"
	assert.Equal(t, "a", table.Entries()[0].Name)
}

type memoryStore struct {
	entries []Entry
}

func (m *memoryStore) AddHighscore(_ context.Context, e Entry) error {
	m.entries = append(m.entries, e)
	return nil
}

func (m *memoryStore) Highscores(_ context.Context, f Filter) ([]Entry, error) {
	var out []Entry
	for _, e := range m.entries {
		if f.Mode != nil && e.Mode != *f.Mode {
			continue
		}
		if f.Difficulty != nil && e.Difficulty != *f.Difficulty {
			continue
		}
		out = append(out, e)
	}
	slices.SortStableFunc(out, func(a, b Entry) int {
		return int(a.ElapsedMs - b.ElapsedMs)
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestServiceSubmit(t *testing.T) {
	ctx := context.Background()
	store := &memoryStore{}
	svc := NewService(store, 2, quietLogger())

	placed, err := svc.Submit(ctx, Entry{Name: "a", Mode: mines.Pursuit, Difficulty: mines.Easy, ElapsedMs: 500})
	require.NoError(t, err)
	assert.True(t, placed)
	placed, err = svc.Submit(ctx, Entry{Name: "b", Mode: mines.Pursuit, Difficulty: mines.Easy, ElapsedMs: 900})
	require.NoError(t, err)
	assert.True(t, placed)
	placed, err = svc.Submit(ctx, Entry{Name: "c", Mode: mines.Pursuit, Difficulty: mines.Easy, ElapsedMs: 1000})
	require.NoError(t, err)
	assert.False(t, placed)

	placed, err = svc.Submit(ctx, Entry{Name: "d", Mode: mines.Default, Difficulty: mines.Easy, ElapsedMs: 1000})
	require.NoError(t, err)
	assert.True(t, placed, "tables are kept per mode")

	placed, err = svc.Submit(ctx, Entry{Name: "e", Mode: mines.Pursuit, Difficulty: mines.Easy, ElapsedMs: 100})
	require.NoError(t, err)
	assert.True(t, placed)

	top, err := svc.Top(ctx, mines.Pursuit, mines.Easy)
	require.NoError(t, err)
	assert.Equal(t, []string{"e", "a"}, names(top))

	_, err = svc.Submit(ctx, Entry{Mode: mines.Pursuit, ElapsedMs: 1})
	assert.ErrorIs(t, err, ErrInvalidEntry)
}

func TestServiceDefaultLimit(t *testing.T) {
	svc := NewService(&memoryStore{}, 0, quietLogger())
	assert.Equal(t, DefaultLimit, svc.Limit())
}
