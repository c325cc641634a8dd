package mines

import (
	"fmt"

	"github.com/gammazero/deque"
	"github.com/zyedidia/generic/mapset"
)

type RevealResult struct {
	Changed       []Position
	MineTriggered bool
}

// Reveal opens the cell at p. Flagged and already open cells are left
// alone. A safe cell with no adjacent weight opens its neighbourhood,
// spreading through further empty cells and stopping at flags.
func (b *Board) Reveal(p Position) (RevealResult, error) {
	if !b.InBounds(p) {
		return RevealResult{}, fmt.Errorf("%w: %s", ErrOutOfBounds, p)
	}
	cell := b.at(p)
	if cell.Revealed || cell.Flagged() {
		return RevealResult{}, nil
	}
	cell.Revealed = true
	if cell.IsMine() {
		return RevealResult{Changed: []Position{p}, MineTriggered: true}, nil
	}

	changed := []Position{p}
	if cell.AdjacentWeight > 0 {
		return RevealResult{Changed: changed}, nil
	}

	var todo deque.Deque[Position]
	visited := mapset.New[Position]()
	todo.PushBack(p)
	visited.Put(p)
	for todo.Len() > 0 {
		current := todo.PopFront()
		for _, n := range b.neighbors(current) {
			if visited.Has(n) {
				continue
			}
			visited.Put(n)
			c := b.at(n)
			if c.Flagged() || c.Revealed || c.IsMine() {
				continue
			}
			c.Revealed = true
			changed = append(changed, n)
			if c.AdjacentWeight == 0 {
				todo.PushBack(n)
			}
		}
	}
	return RevealResult{Changed: changed}, nil
}
