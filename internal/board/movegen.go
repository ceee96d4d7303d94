package board

// Step offsets on the padded board.
const (
	up    Square = -Width
	down  Square = Width
	left  Square = -1
	right Square = 1
)

var (
	rookDirs   = [...]Square{up, down, left, right}
	bishopDirs = [...]Square{up + left, up + right, down + left, down + right}
	queenDirs  = [...]Square{up, down, left, right, up + left, up + right, down + left, down + right}

	kingSteps   = queenDirs
	knightSteps = [...]Square{
		2*up + left, 2*up + right,
		up + 2*left, up + 2*right,
		down + 2*left, down + 2*right,
		2*down + left, 2*down + right,
	}
)

// capturable returns true if sq holds an enemy of side that may be taken.
// Kings are never captured.
func (p *Position) capturable(side Side, sq Square) bool {
	if sq < 0 || sq >= Area {
		return false
	}
	t := p.tiles[sq]
	return t.IsPiece() && t.Side() != side && t.Shape() != King
}

// canLand returns true if a piece of side may step onto sq.
func (p *Position) canLand(side Side, sq Square) bool {
	return p.IsEmpty(sq) || p.capturable(side, sq)
}

// GenerateMoves returns the destination squares of the piece of the given
// side and shape standing on from. Moves that leave the own king attacked
// are not filtered out.
func (p *Position) GenerateMoves(side Side, shape Shape, from Square) []Square {
	return p.AppendMoves(nil, side, shape, from)
}

// AppendMoves appends the destinations of one piece to dst.
func (p *Position) AppendMoves(dst []Square, side Side, shape Shape, from Square) []Square {
	switch shape {
	case Pawn:
		return p.appendPawnMoves(dst, side, from)
	case Knight:
		return p.appendSteps(dst, side, from, knightSteps[:])
	case Bishop:
		return p.appendSlides(dst, side, from, bishopDirs[:])
	case Rook:
		return p.appendSlides(dst, side, from, rookDirs[:])
	case Queen:
		return p.appendSlides(dst, side, from, queenDirs[:])
	case King:
		return p.appendSteps(dst, side, from, kingSteps[:])
	}
	panic("board: move generation for " + shape.String())
}

func (p *Position) appendSteps(dst []Square, side Side, from Square, steps []Square) []Square {
	for _, d := range steps {
		if to := from + d; p.canLand(side, to) {
			dst = append(dst, to)
		}
	}
	return dst
}

func (p *Position) appendSlides(dst []Square, side Side, from Square, dirs []Square) []Square {
	for _, d := range dirs {
		to := from + d
		for p.IsEmpty(to) {
			dst = append(dst, to)
			to += d
		}
		if p.capturable(side, to) {
			dst = append(dst, to)
		}
	}
	return dst
}

func (p *Position) appendPawnMoves(dst []Square, side Side, from Square) []Square {
	// Rows 0 and 7 are promotion rows: no moves from there
	row := from.Row()
	if row == 0 || row == Rows-1 {
		return dst
	}

	fwd := side.Forward()
	ahead := from + fwd

	// Captures
	for _, d := range [2]Square{left, right} {
		if p.capturable(side, ahead+d) {
			dst = append(dst, ahead+d)
		}
	}

	// Pushes
	if p.IsEmpty(ahead) {
		dst = append(dst, ahead)
		if row == side.PawnRow() && p.IsEmpty(ahead+fwd) {
			dst = append(dst, ahead+fwd)
		}
	}

	return dst
}

// PseudoMoves returns every geometric move of side, enumerated through the
// piece index.
func (p *Position) PseudoMoves(side Side) []Move {
	moves := make([]Move, 0, 48)
	var dests []Square
	for shape := Pawn; shape <= King; shape++ {
		row := &p.index[side][shape]
		for slot := 0; slot < row.count; slot++ {
			pl := row.slots[slot]
			if !pl.Alive {
				continue
			}
			dests = p.AppendMoves(dests[:0], side, shape, pl.Square)
			for _, to := range dests {
				moves = append(moves, Move{From: pl.Square, To: to})
			}
		}
	}
	return moves
}

// LegalMoves returns the moves of side that do not leave its king attacked.
func (p *Position) LegalMoves(side Side) []Move {
	pseudo := p.PseudoMoves(side)
	legal := pseudo[:0]
	for _, m := range pseudo {
		p.Play(m)
		if !p.InCheck(side) {
			legal = append(legal, m)
		}
		p.Undo()
	}
	return legal
}

// HasLegalMoves returns true if side has at least one legal move.
func (p *Position) HasLegalMoves(side Side) bool {
	for _, m := range p.PseudoMoves(side) {
		p.Play(m)
		ok := !p.InCheck(side)
		p.Undo()
		if ok {
			return true
		}
	}
	return false
}

// IsCheckmate returns true if the side to move is mated.
func (p *Position) IsCheckmate() bool {
	return p.InCheck(p.toMove) && !p.HasLegalMoves(p.toMove)
}

// IsStalemate returns true if the side to move has no legal move and is not in check.
func (p *Position) IsStalemate() bool {
	return !p.InCheck(p.toMove) && !p.HasLegalMoves(p.toMove)
}

// Perft counts the leaf nodes of the legal move tree at the given depth,
// starting with the side to move.
func (p *Position) Perft(depth int) int64 {
	if depth == 0 {
		return 1
	}

	side := p.toMove
	moves := p.LegalMoves(side)
	if depth == 1 {
		return int64(len(moves))
	}

	var nodes int64
	for _, m := range moves {
		p.Play(m)
		nodes += p.Perft(depth - 1)
		p.Undo()
	}
	return nodes
}
