package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1"

// ParseFEN parses a FEN string and returns a Position.
// Castling, en passant and move clock fields are accepted and ignored.
func ParseFEN(fen string) (*Position, error) {
	parts := strings.Fields(fen)
	if len(parts) < 2 {
		return nil, fmt.Errorf("invalid FEN: need at least 2 fields, got %d", len(parts))
	}

	pos := NewEmptyPosition()

	// Parse piece placement (field 0)
	if err := parsePiecePlacement(pos, parts[0]); err != nil {
		return nil, err
	}

	// Parse side to move (field 1)
	switch parts[1] {
	case "w":
		pos.SetSideToMove(Light)
	case "b":
		pos.SetSideToMove(Dark)
	default:
		return nil, fmt.Errorf("invalid side to move: %s", parts[1])
	}

	return pos, nil
}

// parsePiecePlacement parses the piece placement section of a FEN string.
func parsePiecePlacement(pos *Position, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != Rows {
		return fmt.Errorf("invalid piece placement: need 8 ranks, got %d", len(ranks))
	}

	// FEN starts from rank 8, which is row 0
	for row, rankStr := range ranks {
		file := 0

		for _, c := range rankStr {
			if file > 7 {
				return fmt.Errorf("too many squares in rank %d", Rows-row)
			}

			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}

			side, shape, ok := shapeFromChar(byte(c))
			if !ok {
				return fmt.Errorf("invalid piece character: %c", c)
			}
			if err := pos.Put(side, shape, NewSquare(row, file)); err != nil {
				return err
			}
			file++
		}

		if file != 8 {
			return fmt.Errorf("invalid number of squares in rank %d: got %d", Rows-row, file)
		}
	}

	return nil
}

// ToFEN returns the FEN representation of the position.
func (p *Position) ToFEN() string {
	var sb strings.Builder

	for row := 0; row < Rows; row++ {
		empty := 0
		for file := 0; file < 8; file++ {
			t := p.tiles[NewSquare(row, file)]
			if t == Empty {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(t.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if row < Rows-1 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if p.toMove == Light {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteString(" - - 0 1")
	return sb.String()
}
