package board

// holds returns true if sq holds a piece of the given side and shape.
func (p *Position) holds(sq Square, side Side, shape Shape) bool {
	if sq < 0 || sq >= Area {
		return false
	}
	t := p.tiles[sq]
	return t.IsPiece() && t.Shape() == shape && t.Side() == side
}

// slideHits walks each direction from sq until the first non-empty square and
// reports whether that square holds a piece of the given side and shape.
func (p *Position) slideHits(sq Square, dirs []Square, side Side, shape Shape) bool {
	for _, d := range dirs {
		to := sq + d
		for p.IsEmpty(to) {
			to += d
		}
		if p.holds(to, side, shape) {
			return true
		}
	}
	return false
}

// IsAttacked returns true if any opponent of side threatens sq.
// Each attacker shape is probed by moving like that shape from sq and
// looking for an enemy of the same shape. Pawns are probed in side's
// forward direction, since enemy pawns capture toward side.
func (p *Position) IsAttacked(side Side, sq Square) bool {
	them := side.Other()

	// Pawns
	ahead := sq + side.Forward()
	if p.holds(ahead+left, them, Pawn) || p.holds(ahead+right, them, Pawn) {
		return true
	}

	// Knights
	for _, d := range knightSteps {
		if p.holds(sq+d, them, Knight) {
			return true
		}
	}

	if p.slideHits(sq, bishopDirs[:], them, Bishop) {
		return true
	}
	if p.slideHits(sq, rookDirs[:], them, Rook) {
		return true
	}
	if p.slideHits(sq, queenDirs[:], them, Queen) {
		return true
	}

	// King
	for _, d := range kingSteps {
		if p.holds(sq+d, them, King) {
			return true
		}
	}

	return false
}

// InCheck returns true if side's king is attacked. A side without a king is
// never in check.
func (p *Position) InCheck(side Side) bool {
	ksq := p.KingSquare(side)
	if ksq == NoSquare {
		return false
	}
	return p.IsAttacked(side, ksq)
}
