// Package game drives one game between a human and the engine.
package game

import (
	"fmt"
	"log"

	"github.com/hailam/chessbot/internal/board"
	"github.com/hailam/chessbot/internal/engine"
)

// Status describes the state of the side to move.
type Status int

const (
	Ongoing Status = iota
	Checkmate
	Stalemate
)

func (s Status) String() string {
	switch s {
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	default:
		return "ongoing"
	}
}

// Game holds a position, the engine playing one side and the move history.
type Game struct {
	position    *board.Position
	engine      *engine.Engine
	playerSide  board.Side
	moveHistory []board.Move
	status      Status
	result      string
}

// New starts a game from the initial position.
func New(eng *engine.Engine, playerSide board.Side) *Game {
	g := &Game{
		position:   board.NewPosition(),
		engine:     eng,
		playerSide: playerSide,
	}
	g.checkGameEnd()
	return g
}

// NewFromFEN starts a game from a FEN position.
func NewFromFEN(eng *engine.Engine, playerSide board.Side, fen string) (*Game, error) {
	pos, err := board.ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	if err := pos.Validate(); err != nil {
		return nil, fmt.Errorf("invalid start position: %w", err)
	}
	g := &Game{position: pos, engine: eng, playerSide: playerSide}
	g.checkGameEnd()
	return g, nil
}

// ApplyUserMove checks a move of the side to move and plays it when legal.
// Geometry failures come from board.ValidateMove; a move of the opponent's
// piece returns WrongSide and a move leaving the own king attacked returns
// KingExposed.
func (g *Game) ApplyUserMove(from, to board.Square) board.ValidationResult {
	if res := g.position.ValidateMove(from, to); res != board.Valid {
		return res
	}

	side := g.position.SideToMove()
	if g.position.OccupantOf(from).Side() != side {
		return board.WrongSide
	}

	m := board.NewMove(from, to)
	g.position.Play(m)
	if g.position.InCheck(side) {
		g.position.Undo()
		return board.KingExposed
	}

	g.moveHistory = append(g.moveHistory, m)
	g.checkGameEnd()
	return board.Valid
}

// EngineMove lets the engine choose and play a move for the side to move.
// It returns false when that side has no legal move.
func (g *Game) EngineMove() (board.Move, bool) {
	side := g.position.SideToMove()
	move, score := g.engine.ChooseMove(g.position, side)
	if move == board.NoMove {
		g.checkGameEnd()
		return board.NoMove, false
	}

	g.position.Play(move)
	if g.position.InCheck(side) {
		// Only possible with lazy legality: the engine saw a pinned piece move
		log.Printf("[Game] Engine move %v leaves %v king attacked, replacing it", move, side)
		g.position.Undo()
		legal := g.position.LegalMoves(side)
		if len(legal) == 0 {
			g.checkGameEnd()
			return board.NoMove, false
		}
		move = legal[0]
		g.position.Play(move)
	}

	log.Printf("[Game] %v played %v (%s)", side, move, engine.ScoreToString(score))
	g.moveHistory = append(g.moveHistory, move)
	g.checkGameEnd()
	return move, true
}

// Undo takes back the last half-move.
func (g *Game) Undo() (board.Move, bool) {
	if len(g.moveHistory) == 0 {
		return board.NoMove, false
	}
	rec := g.position.Undo()
	g.moveHistory = g.moveHistory[:len(g.moveHistory)-1]
	g.checkGameEnd()
	return rec.Move, true
}

// checkGameEnd updates the status for the side to move.
func (g *Game) checkGameEnd() {
	side := g.position.SideToMove()
	switch {
	case g.position.IsCheckmate():
		g.status = Checkmate
		g.result = fmt.Sprintf("%v wins by checkmate", side.Other())
	case g.position.IsStalemate():
		g.status = Stalemate
		g.result = "Draw by stalemate"
	default:
		g.status = Ongoing
		g.result = ""
	}
}

// Status returns the state of the side to move.
func (g *Game) Status() Status {
	return g.status
}

// GameOver returns true if the game is over.
func (g *Game) GameOver() bool {
	return g.status != Ongoing
}

// GameResult returns the game result string.
func (g *Game) GameResult() string {
	return g.result
}

// Winner returns the winning side after a checkmate.
func (g *Game) Winner() (board.Side, bool) {
	if g.status != Checkmate {
		return board.Light, false
	}
	return g.position.SideToMove().Other(), true
}

// IsEngineTurn returns true if the engine is to move.
func (g *Game) IsEngineTurn() bool {
	return g.position.SideToMove() != g.playerSide
}

// PlayerSide returns the human's side.
func (g *Game) PlayerSide() board.Side {
	return g.playerSide
}

// Position returns the current position. Callers must not modify it.
func (g *Game) Position() *board.Position {
	return g.position
}

// MoveHistory returns the moves played so far.
func (g *Game) MoveHistory() []board.Move {
	return g.moveHistory
}
