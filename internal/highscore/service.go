package highscore

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-pursuit/internal/mines"
)

// Service keeps one bounded table per mode and difficulty on top of a
// Store.
type Service struct {
	store Store
	limit int
	log   logrus.FieldLogger
}

func NewService(store Store, limit int, log logrus.FieldLogger) *Service {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Service{store: store, limit: limit, log: log}
}

func (s *Service) Limit() int {
	return s.limit
}

// Submit records e if it places in the table for its mode and difficulty.
func (s *Service) Submit(ctx context.Context, e Entry) (bool, error) {
	if err := e.Validate(); err != nil {
		return false, err
	}
	top, err := s.Top(ctx, e.Mode, e.Difficulty)
	if err != nil {
		return false, err
	}
	if !NewTable(s.limit, top...).Add(e) {
		s.log.WithField("elapsed_ms", e.ElapsedMs).Debug("highscore not placed")
		return false, nil
	}
	if err := s.store.AddHighscore(ctx, e); err != nil {
		return false, fmt.Errorf("unable to add highscore: %w", err)
	}
	s.log.WithFields(logrus.Fields{
		"name":       e.Name,
		"mode":       e.Mode,
		"difficulty": e.Difficulty,
		"elapsed_ms": e.ElapsedMs,
	}).Info("new highscore")
	return true, nil
}

func (s *Service) Top(
	ctx context.Context, mode mines.Mode, difficulty mines.Difficulty,
) ([]Entry, error) {
	entries, err := s.store.Highscores(ctx, Filter{
		Mode: &mode, Difficulty: &difficulty, Limit: s.limit,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to fetch highscores: %w", err)
	}
	return NewTable(s.limit, entries...).Entries(), nil
}

func (s *Service) Query(ctx context.Context, f Filter) ([]Entry, error) {
	if f.Limit <= 0 || f.Limit > s.limit {
		f.Limit = s.limit
	}
	return s.store.Highscores(ctx, f)
}
