package board

import "fmt"

// Move is a from/to pair of squares.
type Move struct {
	From Square
	To   Square
}

// NoMove represents an invalid or null move.
var NoMove = Move{From: NoSquare, To: NoSquare}

// NewMove creates a move.
func NewMove(from, to Square) Move {
	return Move{From: from, To: to}
}

// String returns the coordinate form of the move (e.g., "e2e4").
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	return m.From.String() + m.To.String()
}

// ParseMove parses a coordinate move string such as "e2e4".
func ParseMove(s string) (Move, error) {
	if len(s) != 4 {
		return NoMove, fmt.Errorf("invalid move string: %s", s)
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, err
	}

	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, err
	}

	return NewMove(from, to), nil
}

// MoveRecord stores what is needed to undo a move.
type MoveRecord struct {
	Move
	Piece    Tile // Tile that moved
	Captured Tile // Tile found on the destination, Empty if none
}

// IsCapture returns true if the move took a piece.
func (r MoveRecord) IsCapture() bool {
	return r.Captured != Empty
}
