package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"text/tabwriter"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"

	"github.com/vancomm/minesweeper-pursuit/internal/highscore"
	"github.com/vancomm/minesweeper-pursuit/internal/mines"
	"github.com/vancomm/minesweeper-pursuit/internal/repository"
)

var log = logrus.New()

type options struct {
	mode       mines.Mode
	difficulty mines.Difficulty
	name       string
	scores     string

	// custom board, highscores are not recorded for it
	board *mines.Params
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "play",
		Usage: "play minesweeper in the terminal",
		Description: "Commands are read one per line:\n" +
			"  r ROW COL   reveal a cell\n" +
			"  f ROW COL   flag a cell (pursuit mode: flag a revealed cell to send the pursuer there)\n" +
			"  g           show the board\n" +
			"  q           give up",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "mode", Aliases: []string{"m"}, Value: "default", Usage: "default or pursuit"},
			&cli.StringFlag{Name: "difficulty", Aliases: []string{"d"}, Value: "easy", Usage: "easy, medium or hard"},
			&cli.StringFlag{Name: "board", Usage: "custom board as ROWS:COLUMNS:MINES"},
			&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "record wins under this name"},
			&cli.StringFlag{Name: "scores", Value: "highscores.db", Usage: "sqlite highscore file"},
			&cli.Uint64Flag{Name: "seed", Usage: "random seed for mine placement"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "log debug output"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Bool("verbose") {
				log.SetLevel(logrus.DebugLevel)
				mines.Log.SetLevel(logrus.DebugLevel)
			}

			var (
				opts options
				err  error
			)
			if opts.mode, err = mines.ParseMode(cmd.String("mode")); err != nil {
				return err
			}
			if opts.difficulty, err = mines.ParseDifficulty(cmd.String("difficulty")); err != nil {
				return err
			}
			if board := cmd.String("board"); board != "" {
				p, err := mines.ParseSeed(board)
				if err != nil {
					return err
				}
				opts.board = &p
			}
			opts.name = cmd.String("name")
			opts.scores = cmd.String("scores")

			var gameOpts []mines.Option
			if cmd.IsSet("seed") {
				seed := cmd.Uint64("seed")
				gameOpts = append(gameOpts, mines.WithRand(rand.New(rand.NewPCG(seed, seed))))
			}
			return play(ctx, cmd.Reader, cmd.Writer, opts, gameOpts...)
		},
	}
}

func newSession(opts options, gameOpts ...mines.Option) (*mines.Session, error) {
	if opts.board != nil {
		return mines.NewSession(opts.mode, *opts.board, gameOpts...)
	}
	return mines.NewGame(opts.mode, opts.difficulty, gameOpts...)
}

func play(
	ctx context.Context, in io.Reader, out io.Writer, opts options, gameOpts ...mines.Option,
) error {
	s, err := newSession(opts, gameOpts...)
	if err != nil {
		return err
	}

	var started time.Time
	scanner := bufio.NewScanner(in)
	fmt.Fprintln(out, s)
	for !s.Status().Terminal() {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		cmd, err := mines.ParseCommand(scanner.Text())
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		if !s.BoardGenerated() && cmd.Kind == mines.CommandReveal {
			started = time.Now()
		}
		if _, err := cmd.Apply(s); err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		fmt.Fprintln(out, s)
	}

	if s.Status() != mines.Won {
		fmt.Fprintln(out, "you lost")
		return nil
	}
	elapsed := time.Since(started)
	fmt.Fprintf(out, "you won in %s\n", elapsed.Round(time.Millisecond))
	if opts.name == "" || opts.board != nil {
		return nil
	}
	return record(ctx, out, opts, highscore.Entry{
		Name:       opts.name,
		Mode:       opts.mode,
		Difficulty: opts.difficulty,
		ElapsedMs:  elapsed.Milliseconds(),
		AchievedAt: time.Now(),
	})
}

// record submits e to the local highscore file and prints the table it
// competes in.
func record(ctx context.Context, out io.Writer, opts options, e highscore.Entry) error {
	store, err := repository.OpenSQLite(opts.scores)
	if err != nil {
		return err
	}
	defer store.Close()

	scores := highscore.NewService(store, highscore.DefaultLimit, log)
	placed, err := scores.Submit(ctx, e)
	if err != nil {
		return err
	}
	if placed {
		fmt.Fprintln(out, "new highscore!")
	}

	top, err := scores.Top(ctx, opts.mode, opts.difficulty)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\n%s %s\n", opts.mode, opts.difficulty)
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for i, entry := range top {
		fmt.Fprintf(tw, "%d.\t%s\t%s\n", i+1, entry.Name, entry.Elapsed().Round(time.Millisecond))
	}
	return tw.Flush()
}

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
