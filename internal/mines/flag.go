package mines

import "fmt"

// Counters tracks flagging progress. Remaining is the number of mined
// cells whose flag count does not yet equal their weight. Unflagged holds,
// per weight, how many flags of that level are still to be placed; only
// the first entry is meaningful in default mode.
type Counters struct {
	Remaining int    `json:"remaining"`
	Unflagged [3]int `json:"unflagged"`
}

func newCounters(mode Mode, mines int) Counters {
	ones, twos, threes := mode.Split(mines)
	return Counters{Remaining: mines, Unflagged: [3]int{ones, twos, threes}}
}

// Flag advances the flag count of the cell at p, cycling back to zero
// after the mode's maximum. Revealed cells are not touched.
func (c *Counters) Flag(b *Board, mode Mode, p Position) (bool, error) {
	if !b.InBounds(p) {
		return false, fmt.Errorf("%w: %s", ErrOutOfBounds, p)
	}
	cell := b.at(p)
	if cell.Revealed {
		return false, nil
	}
	before := cell.Flags
	cell.Flags = (before + 1) % (mode.MaxFlags() + 1)
	if mode == Pursuit {
		c.triFlag(*cell, before)
	} else {
		c.singleFlag(*cell)
	}
	return true, nil
}

func (c *Counters) singleFlag(cell Cell) {
	delta := 1
	if cell.Flags == 1 {
		delta = -1
	}
	c.Unflagged[0] += delta
	if cell.IsMine() {
		c.Remaining += delta
	}
}

func (c *Counters) triFlag(cell Cell, before int) {
	switch cell.Flags {
	case 1:
		c.Unflagged[0]--
	case 2:
		c.Unflagged[1]--
		c.Unflagged[0]++
	case 3:
		c.Unflagged[2]--
		c.Unflagged[1]++
	default:
		c.Unflagged[2]++
	}
	if !cell.IsMine() {
		return
	}
	switch {
	case cell.Flags == cell.MineWeight:
		c.Remaining--
	case before == cell.MineWeight:
		c.Remaining++
	}
}
