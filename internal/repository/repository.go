package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/vancomm/minesweeper-pursuit/internal/highscore"
	"github.com/vancomm/minesweeper-pursuit/internal/mines"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrUsernameTaken = errors.New("username taken")
)

type Player struct {
	PlayerId     int64     `db:"player_id"`
	Username     string    `db:"username"`
	PasswordHash []byte    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

type highscoreRow struct {
	Name       string    `db:"name"`
	Mode       string    `db:"mode"`
	Difficulty string    `db:"difficulty"`
	ElapsedMs  int64     `db:"elapsed_ms"`
	AchievedAt time.Time `db:"achieved_at"`
}

func (r highscoreRow) entry() (highscore.Entry, error) {
	mode, err := mines.ParseMode(r.Mode)
	if err != nil {
		return highscore.Entry{}, err
	}
	difficulty, err := mines.ParseDifficulty(r.Difficulty)
	if err != nil {
		return highscore.Entry{}, err
	}
	return highscore.Entry{
		Name:       r.Name,
		Mode:       mode,
		Difficulty: difficulty,
		ElapsedMs:  r.ElapsedMs,
		AchievedAt: r.AchievedAt,
	}, nil
}

// whereClause renders f with @name placeholders understood by both
// drivers.
func whereClause(f highscore.Filter) (string, map[string]any) {
	clauses := make([]string, 0)
	args := make(map[string]any)
	if f.Mode != nil {
		clauses = append(clauses, "mode = @mode")
		args["mode"] = f.Mode.String()
	}
	if f.Difficulty != nil {
		clauses = append(clauses, "difficulty = @difficulty")
		args["difficulty"] = f.Difficulty.String()
	}
	if f.Name != nil {
		clauses = append(clauses, "name = @name")
		args["name"] = *f.Name
	}
	return strings.Join(clauses, " AND "), args
}

func highscoreQuery(f highscore.Filter) (string, map[string]any) {
	query := `
	SELECT name, mode, difficulty, elapsed_ms, achieved_at
	FROM highscore`

	where, args := whereClause(f)
	if where != "" {
		query += " WHERE " + where
	}
	query += " ORDER BY elapsed_ms, highscore_id"
	if f.Limit > 0 {
		query += " LIMIT @limit"
		args["limit"] = f.Limit
	}
	return query, args
}
