package sessions

import (
	"time"

	"github.com/vancomm/minesweeper-pursuit/internal/mines"
)

// CellView is a cell as the player may see it. Mine weights and adjacency
// of covered cells stay hidden until the game is over.
type CellView struct {
	Revealed bool `json:"revealed,omitempty"`
	Flags    int  `json:"flags,omitempty"`
	Adjacent int  `json:"adjacent,omitempty"`
	Mine     int  `json:"mine,omitempty"`
}

type Snapshot struct {
	ID         string           `json:"game_session_id"`
	Mode       mines.Mode       `json:"mode"`
	Difficulty mines.Difficulty `json:"difficulty"`
	Status     mines.Status     `json:"status"`
	Rows       int              `json:"rows"`
	Columns    int              `json:"columns"`
	Mines      int              `json:"mines"`
	Grid       [][]CellView     `json:"grid"`
	Remaining  *int             `json:"remaining,omitempty"`
	Unflagged  []int            `json:"unflagged"`
	Pursuer    *mines.Pursuer   `json:"pursuer,omitempty"`
	Path       []mines.Position `json:"path,omitempty"`
	Changed    []mines.Position `json:"changed,omitempty"`
	Triggered  bool             `json:"triggered,omitempty"`
	Highscore  bool             `json:"highscore,omitempty"`
	Username   string           `json:"username,omitempty"`
	CreatedAt  int64            `json:"created_at"`
	StartedAt  *int64           `json:"started_at,omitempty"`
	EndedAt    *int64           `json:"ended_at,omitempty"`
}

func unixMilli(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	ms := t.UnixMilli()
	return &ms
}

// snapshot must be called with e.mu held.
func (e *Entry) snapshot(u mines.Update) Snapshot {
	g := e.game
	over := g.Status().Terminal()
	grid := make([][]CellView, g.Rows())
	for row := range grid {
		grid[row] = make([]CellView, g.Columns())
		for col := range grid[row] {
			c, _ := g.Cell(mines.Pos(row, col))
			view := CellView{Revealed: c.Revealed, Flags: c.Flags}
			if c.Revealed || over {
				view.Adjacent = c.AdjacentWeight
				view.Mine = c.MineWeight
			}
			grid[row][col] = view
		}
	}

	s := Snapshot{
		ID:         e.ID,
		Mode:       g.Mode(),
		Difficulty: g.Difficulty(),
		Status:     g.Status(),
		Rows:       g.Rows(),
		Columns:    g.Columns(),
		Mines:      g.Params().Mines,
		Grid:       grid,
		Unflagged:  g.UnflaggedCounts(),
		Changed:    u.Changed,
		Triggered:  u.Triggered,
		Highscore:  e.highscore,
		Username:   e.Username,
		CreatedAt:  e.CreatedAt.UnixMilli(),
		StartedAt:  unixMilli(e.StartedAt),
		EndedAt:    unixMilli(e.EndedAt),
	}
	// remaining only moves when a mine is flagged
	if over {
		remaining := g.RemainingMineWeight()
		s.Remaining = &remaining
	}
	if p, ok := g.Pursuer(); ok {
		s.Pursuer = &p
		s.Path = g.Path()
	}
	return s
}
