// Package board implements the padded tile board, piece index, move
// generation and attack detection.
package board

import "fmt"

// Board geometry. Each row carries a sentinel column on both sides so that
// stepping by a fixed offset can never wrap onto the neighbouring row.
const (
	Width = 10
	Rows  = 8
	Area  = Width * Rows
)

// Square is an index into the padded board array.
// Row 0 is rank 8 (Dark's back rank), row 7 is rank 1 (Light's back rank).
type Square int

// NoSquare marks a missing square.
const NoSquare Square = -1

// NewSquare creates a square from row and file (0-indexed, file 0 = a).
func NewSquare(row, file int) Square {
	return Square(row*Width + file + 1)
}

// Row returns the row of the square (0 = rank 8).
func (sq Square) Row() int {
	return int(sq) / Width
}

// File returns the file of the square (0 = a). Sentinel columns yield -1 and 8.
func (sq Square) File() int {
	return int(sq)%Width - 1
}

// IsValid returns true if the square is a playable square.
func (sq Square) IsValid() bool {
	if sq < 0 || sq >= Area {
		return false
	}
	f := sq.File()
	return f >= 0 && f < 8
}

// String returns the algebraic notation for the square (e.g., "e4").
func (sq Square) String() string {
	if !sq.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+sq.File(), '8'-sq.Row())
}

// ParseSquare parses algebraic notation (e.g., "e4") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("invalid square: %s", s)
	}

	file := int(s[0] - 'a')
	rank := int(s[1] - '1')

	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare, fmt.Errorf("invalid square: %s", s)
	}

	return NewSquare(7-rank, file), nil
}

// Mirror returns the square mirrored vertically.
func (sq Square) Mirror() Square {
	return NewSquare(Rows-1-sq.Row(), sq.File())
}
