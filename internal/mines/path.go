package mines

import (
	"fmt"
	"slices"

	"github.com/gammazero/deque"
	"github.com/zyedidia/generic/mapset"
)

// Pursuer walks the board towards a goal chosen by the player.
type Pursuer struct {
	Current Position `json:"current"`
	Goal    Position `json:"goal"`
}

type PathFinder struct {
	board *Board
}

func NewPathFinder(b *Board) PathFinder {
	return PathFinder{board: b}
}

// RightDirectionNeighbors returns the neighbours of p that do not move
// away from goal along either axis. Distance is measured inside the
// board, so a step across an edge never qualifies.
func (f PathFinder) RightDirectionNeighbors(p, goal Position) []Position {
	var ns []Position
	for _, d := range offsets {
		n := p.offset(d)
		if !f.board.InBounds(n) {
			continue
		}
		if absDiff(n.Row, goal.Row) <= absDiff(p.Row, goal.Row) &&
			absDiff(n.Column, goal.Column) <= absDiff(p.Column, goal.Column) {
			ns = append(ns, n)
		}
	}
	return ns
}

// ShortestPath runs a breadth-first search from start to goal over
// right-direction steps. The path includes both ends; it is empty when
// goal cannot be reached.
func (f PathFinder) ShortestPath(start, goal Position) ([]Position, error) {
	if !f.board.InBounds(start) {
		return nil, fmt.Errorf("%w: %s", ErrOutOfBounds, start)
	}
	if !f.board.InBounds(goal) {
		return nil, fmt.Errorf("%w: %s", ErrOutOfBounds, goal)
	}

	var queue deque.Deque[Position]
	visited := mapset.New[Position]()
	parent := make(map[Position]Position)
	queue.PushBack(start)
	visited.Put(start)
	for queue.Len() > 0 {
		current := queue.PopFront()
		if current == goal {
			return backtrack(parent, start, goal), nil
		}
		for _, next := range f.RightDirectionNeighbors(current, goal) {
			if visited.Has(next) {
				continue
			}
			visited.Put(next)
			parent[next] = current
			queue.PushBack(next)
		}
	}
	return []Position{}, nil
}

func backtrack(parent map[Position]Position, start, goal Position) []Position {
	path := []Position{goal}
	for p := goal; p != start; {
		p = parent[p]
		path = append(path, p)
	}
	slices.Reverse(path)
	return path
}
