package highscore

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/vancomm/minesweeper-pursuit/internal/mines"
)

const DefaultLimit = 10

var ErrInvalidEntry = errors.New("invalid highscore entry")

type Entry struct {
	Name       string           `json:"name"`
	Mode       mines.Mode       `json:"mode"`
	Difficulty mines.Difficulty `json:"difficulty"`
	ElapsedMs  int64            `json:"elapsed_ms"`
	AchievedAt time.Time        `json:"achieved_at"`
}

func (e Entry) Elapsed() time.Duration {
	return time.Duration(e.ElapsedMs) * time.Millisecond
}

func (e Entry) Validate() error {
	if e.Name == "" || e.ElapsedMs < 0 {
		return ErrInvalidEntry
	}
	return nil
}

type Filter struct {
	Mode       *mines.Mode
	Difficulty *mines.Difficulty
	Name       *string
	Limit      int
}

// Store persists highscore entries. Highscores returns entries sorted by
// elapsed time, fastest first.
type Store interface {
	AddHighscore(ctx context.Context, e Entry) error
	Highscores(ctx context.Context, f Filter) ([]Entry, error)
}

// Table is a bounded list of entries kept in ascending elapsed order.
type Table struct {
	limit   int
	entries []Entry
}

func NewTable(limit int, entries ...Entry) *Table {
	t := &Table{limit: limit}
	for _, e := range entries {
		t.Add(e)
	}
	return t
}

// Add inserts e ahead of the first slower entry and drops whatever falls
// past the limit. It reports whether e made it into the table.
func (t *Table) Add(e Entry) bool {
	i := slices.IndexFunc(t.entries, func(other Entry) bool {
		return other.ElapsedMs > e.ElapsedMs
	})
	if i < 0 {
		if len(t.entries) >= t.limit {
			return false
		}
		t.entries = append(t.entries, e)
		return true
	}
	t.entries = slices.Insert(t.entries, i, e)
	if len(t.entries) > t.limit {
		t.entries = t.entries[:t.limit]
	}
	return true
}

func (t *Table) Entries() []Entry {
	return slices.Clone(t.entries)
}

func (t *Table) Len() int {
	return len(t.entries)
}
