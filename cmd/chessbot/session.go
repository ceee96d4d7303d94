package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/hailam/chessbot/internal/board"
	"github.com/hailam/chessbot/internal/engine"
	"github.com/hailam/chessbot/internal/game"
	"github.com/hailam/chessbot/internal/storage"
)

// session reads commands and moves from the terminal and lets the engine
// answer.
type session struct {
	game *game.Game
	out  io.Writer
	quit bool
}

func newSession(g *game.Game, out io.Writer) *session {
	return &session{game: g, out: out}
}

func printHelp(out io.Writer) {
	fmt.Fprintln(out, `Enter moves as e2e4, "e2 e4" or as column/row pairs "4 6 4 4" (row 0 is rank 8).
Commands: d (show board), fen, eval, undo, perft N, help, quit`)
}

// run processes input until it ends, the game ends or quit is entered.
func (s *session) run(in io.Reader) {
	s.engineTurn()
	s.show()

	scanner := bufio.NewScanner(in)
	for !s.quit && !s.game.GameOver() {
		fmt.Fprintf(s.out, "%v> ", s.game.Position().SideToMove())
		if !scanner.Scan() {
			return
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		s.handle(line)
	}
}

func (s *session) handle(line string) {
	parts := strings.Fields(line)
	cmd := parts[0]
	args := parts[1:]

	switch cmd {
	case "quit", "exit":
		s.quit = true
	case "help":
		printHelp(s.out)
	case "d":
		s.show()
	case "fen":
		fmt.Fprintln(s.out, s.game.Position().ToFEN())
	case "eval":
		pos := s.game.Position()
		side := pos.SideToMove()
		fmt.Fprintf(s.out, "%v: eval %s, material %s\n", side,
			engine.ScoreToString(engine.Evaluate(pos, side)),
			engine.ScoreToString(engine.EvaluateMaterial(pos, side)))
	case "undo":
		s.undo()
	case "perft":
		s.perft(args)
	default:
		s.userMove(parts)
	}
}

// userMove plays the human's move and the engine's answer.
func (s *session) userMove(parts []string) {
	if s.game.IsEngineTurn() {
		fmt.Fprintln(s.out, "It is the engine's turn")
		return
	}

	from, to, err := parseMoveInput(parts)
	if err != nil {
		fmt.Fprintf(s.out, "Cannot read move: %v\n", err)
		return
	}

	if res := s.game.ApplyUserMove(from, to); res != board.Valid {
		fmt.Fprintf(s.out, "Invalid move: %v\n", res)
		return
	}

	s.engineTurn()
	s.show()
}

// engineTurn lets the engine move while it is its turn.
func (s *session) engineTurn() {
	for s.game.IsEngineTurn() && !s.game.GameOver() {
		move, ok := s.game.EngineMove()
		if !ok {
			return
		}
		fmt.Fprintf(s.out, "Engine plays %v\n", move)
	}
}

// undo takes back moves until it is the human's turn again.
func (s *session) undo() {
	if _, ok := s.game.Undo(); !ok {
		fmt.Fprintln(s.out, "Nothing to undo")
		return
	}
	if s.game.IsEngineTurn() {
		if _, ok := s.game.Undo(); !ok {
			s.engineTurn()
		}
	}
	s.show()
}

func (s *session) perft(args []string) {
	depth := 1
	if len(args) > 0 {
		d, err := strconv.Atoi(args[0])
		if err != nil || d < 1 {
			fmt.Fprintf(s.out, "Bad perft depth %q\n", args[0])
			return
		}
		depth = d
	}

	pos := s.game.Position().Copy()
	start := time.Now()
	nodes := pos.Perft(depth)
	fmt.Fprintf(s.out, "perft %d: %d nodes in %v\n", depth, nodes, time.Since(start))
}

func (s *session) show() {
	fmt.Fprintln(s.out, s.game.Position())
	if s.game.GameOver() {
		fmt.Fprintln(s.out, s.game.GameResult())
	} else if pos := s.game.Position(); pos.InCheck(pos.SideToMove()) {
		fmt.Fprintln(s.out, "Check")
	}
}

// result summarizes a finished game for the statistics.
func (s *session) result(maxDepth int, elapsed time.Duration) storage.GameResult {
	r := storage.GameResult{
		MaxDepth: maxDepth,
		Moves:    len(s.game.MoveHistory()),
		Duration: elapsed,
	}
	winner, ok := s.game.Winner()
	if !ok {
		r.Draw = true
	} else {
		r.Won = winner == s.game.PlayerSide()
	}
	return r
}

// parseMoveInput accepts "e2e4", "e2 e4" and "4 6 4 4" (column, row from
// the top, for both squares).
func parseMoveInput(parts []string) (from, to board.Square, err error) {
	switch len(parts) {
	case 1:
		m, err := board.ParseMove(parts[0])
		if err != nil {
			return board.NoSquare, board.NoSquare, err
		}
		return m.From, m.To, nil

	case 2:
		if from, err = board.ParseSquare(parts[0]); err != nil {
			return board.NoSquare, board.NoSquare, err
		}
		if to, err = board.ParseSquare(parts[1]); err != nil {
			return board.NoSquare, board.NoSquare, err
		}
		return from, to, nil

	case 4:
		var n [4]int
		for i, p := range parts {
			if n[i], err = strconv.Atoi(p); err != nil {
				return board.NoSquare, board.NoSquare, errors.Wrapf(err, "coordinate %d", i+1)
			}
			if n[i] < 0 || n[i] > 7 {
				return board.NoSquare, board.NoSquare, errors.Errorf("coordinate %d out of range: %d", i+1, n[i])
			}
		}
		return board.NewSquare(n[1], n[0]), board.NewSquare(n[3], n[2]), nil
	}

	return board.NoSquare, board.NoSquare, errors.Errorf("unrecognized input %q", strings.Join(parts, " "))
}
