package mines

// Cell is the state of a single square.
type Cell struct {
	MineWeight     int  `json:"mine_weight"`
	Revealed       bool `json:"revealed"`
	Flags          int  `json:"flags"`
	AdjacentWeight int  `json:"adjacent_weight"`
}

func (c Cell) IsMine() bool {
	return c.MineWeight > 0
}

func (c Cell) Flagged() bool {
	return c.Flags > 0
}

// Marked reports whether the flag count matches the mine weight exactly.
func (c Cell) Marked() bool {
	return c.IsMine() && c.Flags == c.MineWeight
}
