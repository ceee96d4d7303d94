package board

import "fmt"

// Side represents one of the two players.
type Side uint8

const (
	Light Side = iota
	Dark
)

// Other returns the opposite side.
func (s Side) Other() Side {
	return s ^ 1
}

// String returns the side name.
func (s Side) String() string {
	if s == Light {
		return "Light"
	}
	return "Dark"
}

// Forward returns the square offset of one step toward the opponent.
// Light starts on row 7 and moves up, Dark starts on row 0 and moves down.
func (s Side) Forward() Square {
	if s == Light {
		return -Width
	}
	return Width
}

// PawnRow returns the row a side's pawns start on.
func (s Side) PawnRow() int {
	if s == Light {
		return Rows - 2
	}
	return 1
}

// Shape represents the kind of a chess piece.
type Shape uint8

const (
	Pawn Shape = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoShape Shape = 6

	offBoardShape Shape = 7
)

// String returns the shape name.
func (sh Shape) String() string {
	switch sh {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "None"
	}
}

// Char returns the FEN character for the shape (lowercase).
func (sh Shape) Char() byte {
	if sh >= NoShape {
		return ' '
	}
	return "pnbrqk"[sh]
}

// MaxSlots is the capacity of one side/shape row of the piece index.
const MaxSlots = 16

// Tile is the content of one board square.
// Encoded as: shape | side<<3 | slot<<4
//
// Empty and OffBoard both carry side bit 0, which reads as Light. Callers
// must check IsPiece before asking a tile for its side or slot.
type Tile uint8

const (
	Empty    Tile = Tile(NoShape)
	OffBoard Tile = Tile(offBoardShape)
)

const (
	tileShapeMask = 0x7
	tileSideShift = 3
	tileSlotShift = 4
)

// NewTile encodes a piece.
func NewTile(side Side, shape Shape, slot int) Tile {
	if shape >= NoShape || slot < 0 || slot >= MaxSlots {
		panic(fmt.Sprintf("board: invalid tile %v/%v/%d", side, shape, slot))
	}
	return Tile(shape) | Tile(side&1)<<tileSideShift | Tile(slot)<<tileSlotShift
}

// IsPiece returns true if the tile holds a piece.
func (t Tile) IsPiece() bool {
	return Shape(t&tileShapeMask) < NoShape
}

// Shape returns the shape of the tile. Empty yields NoShape.
func (t Tile) Shape() Shape {
	return Shape(t & tileShapeMask)
}

// Side returns the owner of the piece. Panics on a non-piece tile.
func (t Tile) Side() Side {
	if !t.IsPiece() {
		panic("board: side of a non-piece tile")
	}
	return Side(t>>tileSideShift) & 1
}

// Slot returns the piece index slot of the piece. Panics on a non-piece tile.
func (t Tile) Slot() int {
	if !t.IsPiece() {
		panic("board: slot of a non-piece tile")
	}
	return int(t >> tileSlotShift)
}

// String returns the FEN character for the tile.
// Uppercase for light, lowercase for dark.
func (t Tile) String() string {
	switch {
	case t == Empty:
		return "."
	case !t.IsPiece():
		return "#"
	case t.Side() == Light:
		return string(t.Shape().Char() - 'a' + 'A')
	default:
		return string(t.Shape().Char())
	}
}

// shapeFromChar converts a FEN character to side and shape.
func shapeFromChar(c byte) (Side, Shape, bool) {
	side := Dark
	if c >= 'A' && c <= 'Z' {
		side = Light
		c += 'a' - 'A'
	}
	switch c {
	case 'p':
		return side, Pawn, true
	case 'n':
		return side, Knight, true
	case 'b':
		return side, Bishop, true
	case 'r':
		return side, Rook, true
	case 'q':
		return side, Queen, true
	case 'k':
		return side, King, true
	}
	return side, NoShape, false
}
