package mines

import "fmt"

// Position is a (row, column) coordinate on a board. Positions are compared
// by value and are safe to use as map keys.
type Position struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

func Pos(row, column int) Position {
	return Position{Row: row, Column: column}
}

// Position implements [fmt.Stringer]
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Row, p.Column)
}

// Moore neighbourhood offsets, row-major.
var offsets = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

func (p Position) offset(d [2]int) Position {
	return Position{Row: p.Row + d[0], Column: p.Column + d[1]}
}
