package sessions

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-pursuit/internal/highscore"
	"github.com/vancomm/minesweeper-pursuit/internal/mines"
)

type memoryStore struct {
	mu      sync.Mutex
	entries []highscore.Entry
}

func (m *memoryStore) AddHighscore(_ context.Context, e highscore.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, e)
	return nil
}

func (m *memoryStore) Highscores(context.Context, highscore.Filter) ([]highscore.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]highscore.Entry(nil), m.entries...), nil
}

func newTestManager(t *testing.T) (*Manager, *memoryStore) {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	store := &memoryStore{}
	m := NewManager(highscore.NewService(store, 10, log), log)

	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	m.now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		clock = clock.Add(time.Second)
		return clock
	}
	return m, store
}

func TestCreateAndGet(t *testing.T) {
	m, _ := newTestManager(t)

	created, err := m.Create(mines.Pursuit, mines.Medium, "")
	require.NoError(t, err)
	assert.Equal(t, mines.AwaitingFirstReveal, created.Status)
	assert.Equal(t, 16, created.Rows)
	assert.Equal(t, 40, created.Mines)
	assert.Equal(t, []int{20, 10, 10}, created.Unflagged)
	assert.Nil(t, created.Pursuer)
	assert.Equal(t, 1, m.Len())

	fetched, err := m.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)

	_, err = m.Get("missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = m.Reveal(context.Background(), "missing", mines.Pos(0, 0))
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestWinSubmitsHighscore(t *testing.T) {
	m, store := newTestManager(t)
	ctx := context.Background()

	created, err := m.Create(mines.Default, mines.Easy, "alice",
		mines.WithMines(map[mines.Position]int{mines.Pos(0, 0): 1}))
	require.NoError(t, err)

	s, err := m.Reveal(ctx, created.ID, mines.Pos(9, 9))
	require.NoError(t, err)
	assert.Equal(t, mines.InProgress, s.Status)
	assert.Len(t, s.Changed, 99)
	require.NotNil(t, s.StartedAt)
	assert.Nil(t, s.EndedAt)
	assert.Equal(t, CellView{}, s.Grid[0][0], "covered mines stay hidden")
	assert.Equal(t, CellView{Revealed: true, Adjacent: 1}, s.Grid[1][1])

	s, err = m.Flag(ctx, created.ID, mines.Pos(0, 0))
	require.NoError(t, err)
	assert.Equal(t, mines.Won, s.Status)
	require.NotNil(t, s.EndedAt)
	assert.True(t, s.Highscore)
	assert.Equal(t, CellView{Flags: 1, Mine: 1}, s.Grid[0][0])

	require.Len(t, store.entries, 1)
	e := store.entries[0]
	assert.Equal(t, "alice", e.Name)
	assert.Equal(t, mines.Default, e.Mode)
	assert.Equal(t, mines.Easy, e.Difficulty)
	assert.Equal(t, int64(1000), e.ElapsedMs)

	s, err = m.Flag(ctx, created.ID, mines.Pos(0, 0))
	require.NoError(t, err)
	assert.Equal(t, mines.Won, s.Status, "finished games ignore actions")
	assert.Len(t, store.entries, 1)
}

func TestAnonymousWinIsNotRecorded(t *testing.T) {
	m, store := newTestManager(t)

	created, err := m.Create(mines.Default, mines.Easy, "",
		mines.WithMines(map[mines.Position]int{}))
	require.NoError(t, err)
	s, err := m.Reveal(context.Background(), created.ID, mines.Pos(4, 4))
	require.NoError(t, err)
	assert.Equal(t, mines.Won, s.Status)
	assert.False(t, s.Highscore)
	assert.Empty(t, store.entries)
}

func TestForfeitShowsMines(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	created, err := m.Create(mines.Pursuit, mines.Easy, "bob",
		mines.WithMines(map[mines.Position]int{mines.Pos(0, 0): 3, mines.Pos(5, 5): 2}))
	require.NoError(t, err)
	_, err = m.Reveal(ctx, created.ID, mines.Pos(1, 1))
	require.NoError(t, err)

	s, err := m.Forfeit(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, mines.Lost, s.Status)
	assert.ElementsMatch(t, []mines.Position{mines.Pos(0, 0), mines.Pos(5, 5)}, s.Changed)
	assert.Equal(t, 3, s.Grid[0][0].Mine)
	assert.Equal(t, 2, s.Grid[5][5].Mine)
	require.NotNil(t, s.Pursuer)
	assert.Equal(t, mines.Pos(1, 1), s.Pursuer.Current)
}

func TestInvalidPosition(t *testing.T) {
	m, _ := newTestManager(t)
	created, err := m.Create(mines.Default, mines.Easy, "")
	require.NoError(t, err)

	_, err = m.Reveal(context.Background(), created.ID, mines.Pos(10, 0))
	assert.ErrorIs(t, err, mines.ErrOutOfBounds)
}

func TestConcurrentActions(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()
	created, err := m.Create(mines.Pursuit, mines.Hard, "")
	require.NoError(t, err)
	_, err = m.Reveal(ctx, created.ID, mines.Pos(10, 10))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for w := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 50 {
				p := mines.Pos((w+i)%20, (w*3+i)%20)
				if _, err := m.Flag(ctx, created.ID, p); err != nil {
					t.Error(err)
					return
				}
				if _, err := m.Get(created.ID); err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestPrune(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	finished, err := m.Create(mines.Default, mines.Easy, "")
	require.NoError(t, err)
	_, err = m.Forfeit(ctx, finished.ID)
	require.NoError(t, err)
	running, err := m.Create(mines.Default, mines.Easy, "")
	require.NoError(t, err)

	now := time.Date(2024, 1, 1, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, m.Prune(now, now.Add(-time.Hour)))
	_, err = m.Get(finished.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = m.Get(running.ID)
	assert.NoError(t, err)

	assert.Equal(t, 1, m.Prune(now, now))
	assert.Equal(t, 0, m.Len())
}
