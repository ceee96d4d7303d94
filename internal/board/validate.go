package board

// ValidationResult is the outcome of checking a user move.
type ValidationResult int

const (
	Valid ValidationResult = iota
	IllegalShapeMove
	EmptySource
	OutOfBounds
	FriendlyFire
	BlockedPath
	WrongSide   // Source piece belongs to the opponent
	KingExposed // Move leaves the mover's king attacked
)

// String returns a short description of the result.
func (r ValidationResult) String() string {
	switch r {
	case Valid:
		return "valid"
	case IllegalShapeMove:
		return "piece cannot move that way"
	case EmptySource:
		return "no piece on the source square"
	case OutOfBounds:
		return "square is off the board"
	case FriendlyFire:
		return "destination holds an own piece"
	case BlockedPath:
		return "path is blocked"
	case WrongSide:
		return "piece belongs to the opponent"
	case KingExposed:
		return "move leaves the king attacked"
	default:
		return "unknown"
	}
}

// ValidateMove checks the movement geometry of a move independent of search:
// direction, path clearance, friendly fire and board bounds. It does not
// check whose turn it is or whether the own king ends up attacked.
func (p *Position) ValidateMove(from, to Square) ValidationResult {
	if !p.onBoard(from) || !p.onBoard(to) {
		return OutOfBounds
	}

	src := p.tiles[from]
	if src == Empty {
		return EmptySource
	}
	side, shape := src.Side(), src.Shape()

	dst := p.tiles[to]
	if dst != Empty {
		if dst.Side() == side {
			return FriendlyFire
		}
		if dst.Shape() == King {
			return IllegalShapeMove
		}
	}

	dRow, dFile := to.Row()-from.Row(), to.File()-from.File()
	ady, adx := abs(dRow), abs(dFile)

	switch shape {
	case King:
		if max(adx, ady) > 1 {
			return IllegalShapeMove
		}
	case Queen:
		if adx != 0 && ady != 0 && adx != ady {
			return IllegalShapeMove
		}
	case Rook:
		if adx != 0 && ady != 0 {
			return IllegalShapeMove
		}
	case Bishop:
		if adx != ady {
			return IllegalShapeMove
		}
	case Knight:
		if !(adx == 1 && ady == 2) && !(adx == 2 && ady == 1) {
			return IllegalShapeMove
		}
	case Pawn:
		// Forward in rows: -1 for Light, +1 for Dark
		if dRow*int(side.Forward()/Width) <= 0 {
			return IllegalShapeMove
		}
		if dst != Empty {
			if adx != 1 || ady != 1 {
				return IllegalShapeMove
			}
		} else {
			if adx != 0 || ady > 2 {
				return IllegalShapeMove
			}
			if ady == 2 && from.Row() != side.PawnRow() {
				return IllegalShapeMove
			}
		}
	}

	if shape != King && shape != Knight {
		step := Square(sign(dRow)*Width + sign(dFile))
		for sq := from + step; sq != to; sq += step {
			if p.tiles[sq] != Empty {
				return BlockedPath
			}
		}
	}

	return Valid
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
