package mines

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type CommandKind uint8

const (
	CommandGet CommandKind = iota
	CommandReveal
	CommandFlag
	CommandForfeit
)

var ErrBadCommand = errors.New("bad command")

// Command is one line of the text protocol: "g" fetches the game,
// "r ROW COL" reveals, "f ROW COL" flags and "q" forfeits.
type Command struct {
	Kind     CommandKind
	Position Position
}

// Maps known commands to number of arguments
var commandNargs = map[string]struct {
	kind  CommandKind
	nargs int
}{
	"g": {CommandGet, 0},
	"r": {CommandReveal, 2},
	"f": {CommandFlag, 2},
	"q": {CommandForfeit, 0},
}

func ParseCommand(line string) (Command, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return Command{}, fmt.Errorf("%w: empty", ErrBadCommand)
	}
	known, ok := commandNargs[strings.ToLower(parts[0])]
	if !ok {
		return Command{}, fmt.Errorf("%w: unknown command %q", ErrBadCommand, parts[0])
	}
	if known.nargs != len(parts)-1 {
		return Command{}, fmt.Errorf(
			"%w: %s takes %d arguments", ErrBadCommand, parts[0], known.nargs,
		)
	}
	c := Command{Kind: known.kind}
	if known.nargs == 2 {
		row, err := strconv.Atoi(parts[1])
		if err != nil {
			return Command{}, fmt.Errorf("%w: row must be an int", ErrBadCommand)
		}
		col, err := strconv.Atoi(parts[2])
		if err != nil {
			return Command{}, fmt.Errorf("%w: column must be an int", ErrBadCommand)
		}
		c.Position = Pos(row, col)
	}
	return c, nil
}

// Apply runs c against s. A get command changes nothing.
func (c Command) Apply(s *Session) (Update, error) {
	switch c.Kind {
	case CommandReveal:
		return s.ApplyReveal(c.Position)
	case CommandFlag:
		return s.ApplyFlag(c.Position)
	case CommandForfeit:
		return s.Forfeit(), nil
	default:
		return Update{Status: s.Status()}, nil
	}
}
