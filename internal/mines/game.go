package mines

import (
	"fmt"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
)

type Status uint8

const (
	AwaitingFirstReveal Status = iota
	InProgress
	Won
	Lost
)

func (s Status) String() string {
	switch s {
	case AwaitingFirstReveal:
		return "awaiting_first_reveal"
	case InProgress:
		return "in_progress"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return fmt.Sprintf("Status(%d)", s)
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s Status) Terminal() bool {
	return s == Won || s == Lost
}

// Update describes the effect of one player action.
type Update struct {
	Changed   []Position `json:"changed"`
	Status    Status     `json:"status"`
	Triggered bool       `json:"triggered"`
}

type Option func(*Session)

func WithRand(r *rand.Rand) Option {
	return func(s *Session) { s.rand = r }
}

// WithMines fixes the mine layout instead of placing mines at random on
// the first reveal. The first revealed cell is not protected.
func WithMines(layout map[Position]int) Option {
	return func(s *Session) { s.layout = layout }
}

// WithListener registers fn to be called after every accepted action.
func WithListener(fn func(Update)) Option {
	return func(s *Session) { s.listener = fn }
}

// Session holds one game from the first reveal to a win or loss.
// A Session is not safe for concurrent use.
type Session struct {
	mode       Mode
	difficulty Difficulty
	params     Params
	board      *Board
	paths      PathFinder
	pursuer    *Pursuer
	path       []Position
	status     Status
	counters   Counters
	split      [3]int
	rand       *rand.Rand
	layout     map[Position]int
	listener   func(Update)
}

func NewGame(mode Mode, difficulty Difficulty, opts ...Option) (*Session, error) {
	s, err := NewSession(mode, difficulty.Params(), opts...)
	if err != nil {
		return nil, err
	}
	s.difficulty = difficulty
	return s, nil
}

func NewSession(mode Mode, params Params, opts ...Option) (*Session, error) {
	s := &Session{mode: mode, params: params, status: AwaitingFirstReveal}
	for _, opt := range opts {
		opt(s)
	}
	if s.rand == nil {
		s.rand = newRand()
	}
	if s.layout != nil {
		if err := s.checkLayout(); err != nil {
			return nil, err
		}
	} else if err := params.Validate(); err != nil {
		return nil, err
	}

	board, err := NewBoard(s.params.Rows, s.params.Columns, s.params.Mines, mode.Topology())
	if err != nil {
		return nil, err
	}
	s.board = board
	s.paths = NewPathFinder(board)
	s.counters = newCounters(mode, s.params.Mines)
	if s.layout != nil {
		s.counters.Unflagged = [3]int{}
		for _, w := range s.layout {
			s.counters.Unflagged[w-1]++
		}
	}
	s.split = s.counters.Unflagged
	return s, nil
}

func (s *Session) checkLayout() error {
	if s.params.Rows <= 0 || s.params.Columns <= 0 {
		return fmt.Errorf(
			"%w: %dx%d", ErrInvalidParams, s.params.Rows, s.params.Columns,
		)
	}
	for p, w := range s.layout {
		if p.Row < 0 || p.Row >= s.params.Rows || p.Column < 0 || p.Column >= s.params.Columns {
			return fmt.Errorf("%w: mine at %s", ErrOutOfBounds, p)
		}
		if w < 1 || w > s.mode.MaxFlags() {
			return fmt.Errorf("%w: mine weight %d at %s", ErrInvalidParams, w, p)
		}
	}
	s.params.Mines = len(s.layout)
	return nil
}

func (s *Session) Mode() Mode             { return s.mode }
func (s *Session) Difficulty() Difficulty { return s.difficulty }
func (s *Session) Params() Params         { return s.params }
func (s *Session) Status() Status         { return s.status }
func (s *Session) Rows() int              { return s.board.rows }
func (s *Session) Columns() int           { return s.board.columns }
func (s *Session) Counters() Counters     { return s.counters }

func (s *Session) BoardGenerated() bool {
	return s.status != AwaitingFirstReveal
}

func (s *Session) Cell(p Position) (Cell, error) {
	return s.board.Cell(p)
}

func (s *Session) RemainingMineWeight() int {
	return s.counters.Remaining
}

// UnflaggedCounts returns one counter in default mode and three, by
// weight, in pursuit mode.
func (s *Session) UnflaggedCounts() []int {
	counts := s.counters.Unflagged
	if s.mode == Pursuit {
		return counts[:]
	}
	return counts[:1]
}

func (s *Session) Pursuer() (Pursuer, bool) {
	if s.pursuer == nil {
		return Pursuer{}, false
	}
	return *s.pursuer, true
}

// Path returns the pursuer's remaining route, current position first.
func (s *Session) Path() []Position {
	path := make([]Position, len(s.path))
	copy(path, s.path)
	return path
}

// Audit recounts the counters from the board. Once mines are placed it
// must agree with [Session.Counters].
func (s *Session) Audit() Counters {
	audit := Counters{Unflagged: s.split}
	for _, c := range s.board.cells {
		if c.IsMine() && c.Flags != c.MineWeight {
			audit.Remaining++
		}
		if c.Flags > 0 {
			audit.Unflagged[c.Flags-1]--
		}
	}
	return audit
}

// ApplyReveal reveals p, placing mines first if nothing has been
// revealed yet. In pursuit mode the pursuer then takes one step.
func (s *Session) ApplyReveal(p Position) (Update, error) {
	if s.status.Terminal() {
		return Update{Status: s.status}, nil
	}
	if !s.board.InBounds(p) {
		return Update{Status: s.status}, fmt.Errorf("%w: %s", ErrOutOfBounds, p)
	}
	if s.status == AwaitingFirstReveal {
		if err := s.generate(p); err != nil {
			return Update{Status: s.status}, err
		}
	}

	res, err := s.board.Reveal(p)
	if err != nil {
		return Update{Status: s.status}, err
	}
	changed := res.Changed
	if res.MineTriggered {
		s.status = Lost
		Log.WithFields(logrus.Fields{
			"mode": s.mode, "position": p,
		}).Debug("mine triggered")
		changed = append(changed, s.Corrections()...)
		return s.notify(Update{Changed: changed, Status: s.status, Triggered: true}), nil
	}
	if s.mode == Pursuit {
		changed = append(changed, s.advancePursuer()...)
	}
	s.evaluate()
	return s.notify(Update{Changed: changed, Status: s.status}), nil
}

// ApplyFlag cycles the flag on an unrevealed cell. In pursuit mode,
// flagging a revealed cell makes it the pursuer's new goal.
func (s *Session) ApplyFlag(p Position) (Update, error) {
	if s.status.Terminal() {
		return Update{Status: s.status}, nil
	}
	if !s.board.InBounds(p) {
		return Update{Status: s.status}, fmt.Errorf("%w: %s", ErrOutOfBounds, p)
	}
	if s.status != InProgress {
		return Update{Status: s.status}, nil
	}

	var changed []Position
	if s.board.at(p).Revealed {
		if s.mode != Pursuit {
			return Update{Status: s.status}, nil
		}
		changed = s.setGoal(p)
	} else {
		if _, err := s.counters.Flag(s.board, s.mode, p); err != nil {
			return Update{Status: s.status}, err
		}
		changed = []Position{p}
	}
	s.evaluate()
	return s.notify(Update{Changed: changed, Status: s.status}), nil
}

// Forfeit ends the game as lost.
func (s *Session) Forfeit() Update {
	if s.status.Terminal() {
		return Update{Status: s.status}
	}
	s.status = Lost
	return s.notify(Update{Changed: s.Corrections(), Status: s.status})
}

// Corrections lists, once the game is lost, the mines that were never
// flagged and the cells whose flags do not match their weight.
func (s *Session) Corrections() []Position {
	if s.status != Lost {
		return nil
	}
	var ps []Position
	for i, c := range s.board.cells {
		switch {
		case c.Revealed:
		case c.IsMine() && !c.Flagged():
			ps = append(ps, s.board.position(i))
		case c.Flagged() && c.Flags != c.MineWeight:
			ps = append(ps, s.board.position(i))
		}
	}
	return ps
}

func (s *Session) generate(first Position) error {
	if s.layout != nil {
		for p, w := range s.layout {
			if err := s.board.PlaceMine(p, w); err != nil {
				return err
			}
		}
	} else {
		pool, err := s.board.AvailableExcluding(first)
		if err != nil {
			return err
		}
		err = s.board.PlaceMines(pool, s.mode.Weights(s.params.Mines), s.rand)
		if err != nil {
			return err
		}
	}
	s.board.ComputeAdjacency()
	s.status = InProgress

	if s.mode == Pursuit {
		s.pursuer = &Pursuer{Current: first, Goal: first}
		s.path = []Position{first}
	}
	Log.WithFields(logrus.Fields{
		"mode":  s.mode,
		"seed":  s.params.Seed(),
		"first": first,
	}).Debug("mines placed")
	return nil
}

func (s *Session) setGoal(goal Position) []Position {
	previous := s.pursuer.Goal
	s.pursuer.Goal = goal
	path, err := s.paths.ShortestPath(s.pursuer.Current, goal)
	if err != nil {
		Log.WithError(err).Warn("pursuer path")
		path = nil
	}
	s.path = path
	return []Position{previous, goal}
}

// advancePursuer moves the pursuer one step along its path. An unflagged
// mine it lands on is flagged to its weight; a covered safe cell is
// revealed. Flags the player placed are left as they are.
func (s *Session) advancePursuer() []Position {
	if s.pursuer == nil || len(s.path) < 2 {
		return nil
	}
	from := s.pursuer.Current
	s.path = s.path[1:]
	to := s.path[0]
	s.pursuer.Current = to
	changed := []Position{from, to}

	cell := s.board.at(to)
	switch {
	case cell.Flagged():
	case cell.IsMine():
		for cell.Flags != cell.MineWeight {
			if _, err := s.counters.Flag(s.board, s.mode, to); err != nil {
				Log.WithError(err).Warn("pursuer flag")
				break
			}
		}
	case !cell.Revealed:
		res, err := s.board.Reveal(to)
		if err != nil {
			Log.WithError(err).Warn("pursuer reveal")
		}
		changed = append(changed, res.Changed...)
	}
	return changed
}

func (s *Session) evaluate() {
	if s.status != InProgress || s.counters.Remaining != 0 {
		return
	}
	for _, c := range s.board.cells {
		if !c.Revealed && !c.Flagged() {
			return
		}
	}
	s.status = Won
}

func (s *Session) notify(u Update) Update {
	if s.listener != nil {
		s.listener(u)
	}
	return u
}
