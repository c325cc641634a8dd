package mines

import (
	"fmt"
	"strings"
)

// Mode selects the board topology and the flagging discipline.
type Mode uint8

const (
	Default Mode = iota // bounded board, single flags
	Pursuit             // toroidal board, weighted mines, pursuer
)

func (m Mode) String() string {
	switch m {
	case Default:
		return "default"
	case Pursuit:
		return "pursuit"
	default:
		return fmt.Sprintf("Mode(%d)", m)
	}
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "default", "classic", "":
		return Default, nil
	case "pursuit", "rat":
		return Pursuit, nil
	}
	return 0, fmt.Errorf("%w: unknown mode %q", ErrInvalidParams, s)
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(text []byte) (err error) {
	*m, err = ParseMode(string(text))
	return
}

func (m Mode) Topology() Topology {
	if m == Pursuit {
		return Toroidal
	}
	return Bounded
}

// MaxFlags is the highest flag count a cell can hold before cycling to zero.
func (m Mode) MaxFlags() int {
	if m == Pursuit {
		return 3
	}
	return 1
}

// Split returns how many mined cells carry weight one, two and three.
func (m Mode) Split(mines int) (ones, twos, threes int) {
	if m != Pursuit {
		return mines, 0, 0
	}
	ones, twos = mines/2, mines/4
	return ones, twos, mines - ones - twos
}

// Weights lists the weight of every mined cell, lightest first.
func (m Mode) Weights(mines int) []int {
	ones, twos, threes := m.Split(mines)
	weights := make([]int, 0, mines)
	for w, n := range [3]int{ones, twos, threes} {
		for range n {
			weights = append(weights, w+1)
		}
	}
	return weights
}

type Difficulty uint8

const (
	Easy Difficulty = iota
	Medium
	Hard
)

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	default:
		return fmt.Sprintf("Difficulty(%d)", d)
	}
}

func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(s) {
	case "easy", "":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	}
	return 0, fmt.Errorf("%w: unknown difficulty %q", ErrInvalidParams, s)
}

func (d Difficulty) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Difficulty) UnmarshalText(text []byte) (err error) {
	*d, err = ParseDifficulty(string(text))
	return
}

func (d Difficulty) Params() Params {
	switch d {
	case Medium:
		return Params{Rows: 16, Columns: 16, Mines: 40}
	case Hard:
		return Params{Rows: 20, Columns: 20, Mines: 100}
	default:
		return Params{Rows: 10, Columns: 10, Mines: 12}
	}
}

type Params struct {
	Rows, Columns, Mines int
}

// Validate checks that the board can hold the mines while keeping the
// first revealed cell and its neighbourhood clear.
func (p Params) Validate() error {
	if p.Rows <= 0 || p.Columns <= 0 || p.Mines < 0 {
		return fmt.Errorf(
			"%w: %dx%d with %d mines", ErrInvalidParams, p.Rows, p.Columns, p.Mines,
		)
	}
	free := p.Rows*p.Columns - min(9, p.Rows*p.Columns)
	if free < p.Mines {
		return fmt.Errorf(
			"%w: %d mines, %d free cells", ErrInsufficientCells, p.Mines, free,
		)
	}
	return nil
}

func (p Params) Seed() string {
	return fmt.Sprintf("%d:%d:%d", p.Rows, p.Columns, p.Mines)
}

func ParseSeed(seed string) (Params, error) {
	var p Params
	n, err := fmt.Sscanf(
		strings.ReplaceAll(seed, ":", " "), "%d %d %d", &p.Rows, &p.Columns, &p.Mines,
	)
	if n != 3 || err != nil {
		return Params{}, fmt.Errorf(
			`%w: seed "%s" (n = %d, err = %v)`, ErrInvalidParams, seed, n, err,
		)
	}
	return p, nil
}
