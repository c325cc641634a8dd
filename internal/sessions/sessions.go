package sessions

import (
	"context"
	"encoding/base64"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-pursuit/internal/highscore"
	"github.com/vancomm/minesweeper-pursuit/internal/mines"
)

var ErrSessionNotFound = errors.New("game session not found")

// Entry is one live game. Its Session is only touched with mu held.
type Entry struct {
	mu        sync.Mutex
	ID        string
	Username  string
	CreatedAt time.Time
	StartedAt *time.Time
	EndedAt   *time.Time
	highscore bool
	game      *mines.Session
}

// Manager owns every running game keyed by an opaque id.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Entry
	scores   *highscore.Service
	log      logrus.FieldLogger
	now      func() time.Time
}

func NewManager(scores *highscore.Service, log logrus.FieldLogger) *Manager {
	return &Manager{
		sessions: make(map[string]*Entry),
		scores:   scores,
		log:      log,
		now:      time.Now,
	}
}

func newID() string {
	id := uuid.New()
	return base64.RawURLEncoding.EncodeToString(id[:])
}

// Create starts a game. A win is submitted as a highscore under username
// when it is not empty.
func (m *Manager) Create(
	mode mines.Mode, difficulty mines.Difficulty, username string, opts ...mines.Option,
) (Snapshot, error) {
	e := &Entry{
		ID:        newID(),
		Username:  username,
		CreatedAt: m.now().UTC(),
	}
	log := m.log.WithField("game_session_id", e.ID)
	opts = append([]mines.Option{mines.WithListener(func(u mines.Update) {
		log.WithFields(logrus.Fields{
			"status":  u.Status,
			"changed": len(u.Changed),
		}).Debug("game updated")
	})}, opts...)

	game, err := mines.NewGame(mode, difficulty, opts...)
	if err != nil {
		return Snapshot{}, err
	}
	e.game = game
	snapshot := e.snapshot(mines.Update{Status: game.Status()})

	m.mu.Lock()
	m.sessions[e.ID] = e
	m.mu.Unlock()

	log.WithFields(logrus.Fields{
		"mode": mode, "difficulty": difficulty, "username": username,
	}).Info("game created")
	return snapshot, nil
}

func (m *Manager) get(id string) (*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return e, nil
}

func (m *Manager) Get(id string) (Snapshot, error) {
	e, err := m.get(id)
	if err != nil {
		return Snapshot{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot(mines.Update{Status: e.game.Status()}), nil
}

func (m *Manager) Reveal(ctx context.Context, id string, p mines.Position) (Snapshot, error) {
	return m.apply(ctx, id, func(g *mines.Session) (mines.Update, error) {
		return g.ApplyReveal(p)
	})
}

func (m *Manager) Flag(ctx context.Context, id string, p mines.Position) (Snapshot, error) {
	return m.apply(ctx, id, func(g *mines.Session) (mines.Update, error) {
		return g.ApplyFlag(p)
	})
}

func (m *Manager) Forfeit(ctx context.Context, id string) (Snapshot, error) {
	return m.apply(ctx, id, func(g *mines.Session) (mines.Update, error) {
		return g.Forfeit(), nil
	})
}

func (m *Manager) apply(
	ctx context.Context, id string, action func(*mines.Session) (mines.Update, error),
) (Snapshot, error) {
	e, err := m.get(id)
	if err != nil {
		return Snapshot{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	wasRunning := !e.game.Status().Terminal()
	u, err := action(e.game)
	if err != nil {
		return Snapshot{}, err
	}
	now := m.now().UTC()
	if e.StartedAt == nil && e.game.BoardGenerated() {
		e.StartedAt = &now
	}
	if wasRunning && e.game.Status().Terminal() {
		e.EndedAt = &now
		m.finish(ctx, e)
	}
	return e.snapshot(u), nil
}

// finish must be called with e.mu held.
func (m *Manager) finish(ctx context.Context, e *Entry) {
	log := m.log.WithFields(logrus.Fields{
		"game_session_id": e.ID,
		"status":          e.game.Status(),
	})
	log.Info("game over")
	if e.game.Status() != mines.Won || e.Username == "" || m.scores == nil {
		return
	}
	var elapsed time.Duration
	if e.StartedAt != nil {
		elapsed = e.EndedAt.Sub(*e.StartedAt)
	}
	placed, err := m.scores.Submit(ctx, highscore.Entry{
		Name:       e.Username,
		Mode:       e.game.Mode(),
		Difficulty: e.game.Difficulty(),
		ElapsedMs:  elapsed.Milliseconds(),
		AchievedAt: *e.EndedAt,
	})
	if err != nil {
		log.WithError(err).Error("unable to submit highscore")
		return
	}
	e.highscore = placed
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Prune drops finished games that ended before cutoff and games that were
// never finished and were created before idleCutoff.
func (m *Manager) Prune(cutoff, idleCutoff time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	pruned := 0
	for id, e := range m.sessions {
		e.mu.Lock()
		stale := e.EndedAt != nil && e.EndedAt.Before(cutoff) ||
			e.EndedAt == nil && e.CreatedAt.Before(idleCutoff)
		e.mu.Unlock()
		if stale {
			delete(m.sessions, id)
			pruned++
		}
	}
	return pruned
}

// RunPruner prunes every interval until ctx is done.
func (m *Manager) RunPruner(ctx context.Context, interval, keep time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			now := m.now()
			if n := m.Prune(now.Add(-keep), now.Add(-24*time.Hour)); n > 0 {
				m.log.WithField("count", n).Debug("pruned game sessions")
			}
		}
	}
}
