package mines

import (
	"fmt"
	"strings"
)

// Symbol renders a cell as two characters as seen by the player. Mines
// are shown once the game is over.
func (s *Session) Symbol(p Position) string {
	c := s.board.at(p)
	if s.pursuer != nil && s.pursuer.Current == p && !s.status.Terminal() {
		return " @"
	}
	switch {
	case c.Revealed && c.IsMine():
		return " X"
	case c.Revealed && c.AdjacentWeight == 0:
		return " ."
	case c.Revealed:
		return fmt.Sprintf("%2d", c.AdjacentWeight)
	case s.status.Terminal() && c.Flagged() && c.Flags != c.MineWeight:
		return fmt.Sprintf("x%d", c.Flags)
	case c.Flagged() && s.mode == Pursuit:
		return fmt.Sprintf("F%d", c.Flags)
	case c.Flagged():
		return " F"
	case s.status.Terminal() && c.IsMine():
		return fmt.Sprintf("*%d", c.MineWeight)
	default:
		return " #"
	}
}

// Session implements [fmt.Stringer]
func (s *Session) String() string {
	var b strings.Builder
	fmt.Fprint(&b, "   ")
	for col := range s.board.columns {
		fmt.Fprintf(&b, " %2d", col)
	}
	fmt.Fprint(&b, "\n")
	for row := range s.board.rows {
		fmt.Fprintf(&b, "%2d ", row)
		for col := range s.board.columns {
			fmt.Fprint(&b, " "+s.Symbol(Pos(row, col)))
		}
		fmt.Fprint(&b, "\n")
	}
	// remaining moves only for mined cells, so it stays hidden until the end
	fmt.Fprint(&b, s.status)
	if s.status.Terminal() {
		fmt.Fprintf(&b, " remaining=%d", s.counters.Remaining)
	}
	u := s.counters.Unflagged
	if s.mode == Pursuit {
		fmt.Fprintf(&b, " flags=%d/%d/%d", u[0], u[1], u[2])
	} else {
		fmt.Fprintf(&b, " flags=%d", u[0])
	}
	fmt.Fprint(&b, "\n")
	return b.String()
}
