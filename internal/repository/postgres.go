package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vancomm/minesweeper-pursuit/internal/highscore"
)

type Postgres struct {
	db *pgxpool.Pool
}

func NewPostgres(db *pgxpool.Pool) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) Ping(ctx context.Context) error {
	return p.db.Ping(ctx)
}

func (p *Postgres) Close() error {
	p.db.Close()
	return nil
}

func (p *Postgres) CreatePlayer(
	ctx context.Context, username string, passwordHash []byte,
) (*Player, error) {
	rows, _ := p.db.Query(
		ctx,
		`INSERT INTO player (username, password_hash)
		VALUES (@username, @password_hash)
		RETURNING player_id, username, password_hash, created_at`,
		pgx.NamedArgs{"username": username, "password_hash": passwordHash},
	)
	player, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Player])
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return nil, ErrUsernameTaken
	}
	return player, err
}

func (p *Postgres) FetchPlayer(ctx context.Context, username string) (*Player, error) {
	rows, _ := p.db.Query(
		ctx,
		`SELECT player_id, username, password_hash, created_at
		FROM player WHERE username = $1`,
		username,
	)
	player, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Player])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return player, err
}

func (p *Postgres) AddHighscore(ctx context.Context, e highscore.Entry) error {
	_, err := p.db.Exec(
		ctx,
		`INSERT INTO highscore (name, mode, difficulty, elapsed_ms, achieved_at)
		VALUES (@name, @mode, @difficulty, @elapsed_ms, @achieved_at)`,
		pgx.NamedArgs{
			"name":        e.Name,
			"mode":        e.Mode.String(),
			"difficulty":  e.Difficulty.String(),
			"elapsed_ms":  e.ElapsedMs,
			"achieved_at": e.AchievedAt,
		},
	)
	return err
}

func (p *Postgres) Highscores(
	ctx context.Context, f highscore.Filter,
) ([]highscore.Entry, error) {
	query, args := highscoreQuery(f)
	rows, err := p.db.Query(ctx, query, pgx.NamedArgs(args))
	if err != nil {
		return nil, err
	}
	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[highscoreRow])
	if err != nil {
		return nil, err
	}
	entries := make([]highscore.Entry, 0, len(records))
	for _, r := range records {
		e, err := r.entry()
		if err != nil {
			return nil, fmt.Errorf("malformed highscore row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
