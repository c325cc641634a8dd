package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/vancomm/minesweeper-pursuit/internal/highscore"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS player (
	player_id		INTEGER PRIMARY KEY AUTOINCREMENT,
	username		TEXT NOT NULL UNIQUE,
	password_hash	BLOB NOT NULL,
	created_at	INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS highscore (
	highscore_id	INTEGER PRIMARY KEY AUTOINCREMENT,
	name			TEXT NOT NULL,
	mode			TEXT NOT NULL,
	difficulty		TEXT NOT NULL,
	elapsed_ms		INTEGER NOT NULL,
	achieved_at	INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS highscore_board ON highscore (mode, difficulty, elapsed_ms);`

// SQLite is a single-file store for local play. Timestamps are kept as
// unix milliseconds.
type SQLite struct {
	mu sync.Mutex
	db *sql.DB
}

func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("unable to open sqlite db: %w", err)
	}
	s, err := NewSQLite(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewSQLite creates the tables it needs if they are missing.
func NewSQLite(db *sql.DB) (*SQLite, error) {
	if _, err := db.Exec(sqliteSchema); err != nil {
		return nil, fmt.Errorf("unable to create sqlite schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) CreatePlayer(
	ctx context.Context, username string, passwordHash []byte,
) (*Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO player (username, password_hash, created_at) VALUES (?, ?, ?);`,
		username, passwordHash, now.UnixMilli(),
	)
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return nil, ErrUsernameTaken
	}
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &Player{
		PlayerId:     id,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.UnixMilli(now.UnixMilli()).UTC(),
	}, nil
}

func (s *SQLite) FetchPlayer(ctx context.Context, username string) (*Player, error) {
	var (
		p         Player
		createdAt int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT player_id, username, password_hash, created_at
		FROM player WHERE username = ?;`,
		username,
	).Scan(&p.PlayerId, &p.Username, &p.PasswordHash, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	p.CreatedAt = time.UnixMilli(createdAt).UTC()
	return &p, nil
}

func (s *SQLite) AddHighscore(ctx context.Context, e highscore.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO highscore (name, mode, difficulty, elapsed_ms, achieved_at)
		VALUES (?, ?, ?, ?, ?);`,
		e.Name, e.Mode.String(), e.Difficulty.String(), e.ElapsedMs,
		e.AchievedAt.UnixMilli(),
	)
	return err
}

func (s *SQLite) Highscores(
	ctx context.Context, f highscore.Filter,
) ([]highscore.Entry, error) {
	query, named := highscoreQuery(f)
	args := make([]any, 0, len(named))
	for k, v := range named {
		args = append(args, sql.Named(k, v))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []highscore.Entry
	for rows.Next() {
		var (
			r          highscoreRow
			achievedAt int64
		)
		if err := rows.Scan(&r.Name, &r.Mode, &r.Difficulty, &r.ElapsedMs, &achievedAt); err != nil {
			return nil, err
		}
		r.AchievedAt = time.UnixMilli(achievedAt).UTC()
		e, err := r.entry()
		if err != nil {
			return nil, fmt.Errorf("malformed highscore row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
