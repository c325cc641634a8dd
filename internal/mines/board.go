package mines

import (
	"fmt"
	"math/rand/v2"

	"github.com/zyedidia/generic/mapset"
)

type Topology uint8

const (
	Bounded  Topology = iota // edges are walls
	Toroidal                 // edges wrap around
)

func (t Topology) String() string {
	if t == Toroidal {
		return "toroidal"
	}
	return "bounded"
}

// Board is a rectangular grid of cells stored row-major.
type Board struct {
	rows, columns int
	mines         int
	topology      Topology
	cells         []Cell
}

func NewBoard(rows, columns, mines int, topology Topology) (*Board, error) {
	if rows <= 0 || columns <= 0 || mines < 0 {
		return nil, fmt.Errorf(
			"%w: %dx%d with %d mines", ErrInvalidParams, rows, columns, mines,
		)
	}
	return &Board{
		rows:     rows,
		columns:  columns,
		mines:    mines,
		topology: topology,
		cells:    make([]Cell, rows*columns),
	}, nil
}

func (b *Board) Rows() int          { return b.rows }
func (b *Board) Columns() int       { return b.columns }
func (b *Board) Mines() int         { return b.mines }
func (b *Board) Topology() Topology { return b.topology }

func (b *Board) InBounds(p Position) bool {
	return 0 <= p.Row && p.Row < b.rows && 0 <= p.Column && p.Column < b.columns
}

func (b *Board) Cell(p Position) (Cell, error) {
	if !b.InBounds(p) {
		return Cell{}, fmt.Errorf("%w: %s", ErrOutOfBounds, p)
	}
	return *b.at(p), nil
}

func (b *Board) at(p Position) *Cell {
	return &b.cells[p.Row*b.columns+p.Column]
}

func (b *Board) position(i int) Position {
	return Position{Row: i / b.columns, Column: i % b.columns}
}

// NeighborsOf returns the Moore neighbourhood of p. On a toroidal board
// there are always eight entries, which may repeat when a dimension is
// shorter than three.
func (b *Board) NeighborsOf(p Position) ([]Position, error) {
	if !b.InBounds(p) {
		return nil, fmt.Errorf("%w: %s", ErrOutOfBounds, p)
	}
	return b.neighbors(p), nil
}

func (b *Board) neighbors(p Position) []Position {
	ns := make([]Position, 0, len(offsets))
	for _, d := range offsets {
		n := p.offset(d)
		if b.topology == Toroidal {
			n.Row = (n.Row + b.rows) % b.rows
			n.Column = (n.Column + b.columns) % b.columns
		} else if !b.InBounds(n) {
			continue
		}
		ns = append(ns, n)
	}
	return ns
}

// AvailableExcluding lists every cell except p and its neighbours.
func (b *Board) AvailableExcluding(p Position) ([]Position, error) {
	if !b.InBounds(p) {
		return nil, fmt.Errorf("%w: %s", ErrOutOfBounds, p)
	}
	excluded := mapset.New[Position]()
	excluded.Put(p)
	for _, n := range b.neighbors(p) {
		excluded.Put(n)
	}
	pool := make([]Position, 0, len(b.cells)-excluded.Size())
	for i := range b.cells {
		if q := b.position(i); !excluded.Has(q) {
			pool = append(pool, q)
		}
	}
	return pool, nil
}

// PlaceMines shuffles pool and mines its leading cells with the given
// weights. Adjacency is not recomputed.
func (b *Board) PlaceMines(pool []Position, weights []int, r *rand.Rand) error {
	if len(pool) < len(weights) {
		return fmt.Errorf(
			"%w: %d mines, %d free cells", ErrInsufficientCells, len(weights), len(pool),
		)
	}
	r.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	for i, w := range weights {
		if err := b.PlaceMine(pool[i], w); err != nil {
			return err
		}
	}
	return nil
}

func (b *Board) PlaceMine(p Position, weight int) error {
	if !b.InBounds(p) {
		return fmt.Errorf("%w: %s", ErrOutOfBounds, p)
	}
	if weight < 1 || weight > 3 {
		return AssertionError{fmt.Sprintf("mine weight %d at %s", weight, p)}
	}
	b.at(p).MineWeight = weight
	return nil
}

// ComputeAdjacency stores, for every safe cell, the summed weight of the
// mines around it.
func (b *Board) ComputeAdjacency() {
	for i := range b.cells {
		c := &b.cells[i]
		if c.IsMine() {
			c.AdjacentWeight = 0
			continue
		}
		sum := 0
		for _, n := range b.neighbors(b.position(i)) {
			sum += b.at(n).MineWeight
		}
		c.AdjacentWeight = sum
	}
}
