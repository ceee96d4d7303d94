// Package engine implements the chess AI search engine.
package engine

import (
	"github.com/hailam/chessbot/internal/board"
)

// Material worth in pawns, indexed by shape.
var materialWorth = [6]int{1, 3, 3, 5, 9, 0}

// maxNonPawnWorth is the non-pawn material of both sides at the start.
var maxNonPawnWorth int

// Piece-square bonuses, written from the owning side's back rank: the first
// row is the back rank and the last row is the far side of the board. The
// table is used as is for Dark and mirrored vertically for Light.

// Pawn PST - encourages central control and advancement
var pawnPST = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	5, 10, 10, -20, -20, 10, 10, 5,
	5, -5, -10, 0, 0, -10, -5, 5,
	0, 0, 0, 20, 20, 0, 0, 0,
	5, 5, 10, 25, 25, 10, 5, 5,
	10, 10, 20, 30, 30, 20, 10, 10,
	50, 50, 50, 50, 50, 50, 50, 50,
	0, 0, 0, 0, 0, 0, 0, 0,
}

// Knight PST - encourages central positioning
var knightPST = [64]int{
	-50, -40, -30, -30, -30, -30, -40, -50,
	-40, -20, 0, 5, 5, 0, -20, -40,
	-30, 5, 10, 15, 15, 10, 5, -30,
	-30, 0, 15, 20, 20, 15, 0, -30,
	-30, 5, 15, 20, 20, 15, 5, -30,
	-30, 0, 10, 15, 15, 10, 0, -30,
	-40, -20, 0, 0, 0, 0, -20, -40,
	-50, -40, -30, -30, -30, -30, -40, -50,
}

// Bishop PST - encourages central diagonals
var bishopPST = [64]int{
	-20, -10, -10, -10, -10, -10, -10, -20,
	-10, 5, 0, 0, 0, 0, 5, -10,
	-10, 10, 10, 10, 10, 10, 10, -10,
	-10, 0, 10, 10, 10, 10, 0, -10,
	-10, 5, 5, 10, 10, 5, 5, -10,
	-10, 0, 5, 10, 10, 5, 0, -10,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-20, -10, -10, -10, -10, -10, -10, -20,
}

// Rook PST - encourages the seventh row
var rookPST = [64]int{
	0, 0, 0, 5, 5, 0, 0, 0,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	5, 10, 10, 10, 10, 10, 10, 5,
	0, 0, 0, 0, 0, 0, 0, 0,
}

// Queen PST - slight central preference
var queenPST = [64]int{
	-20, -10, -10, -5, -5, -10, -10, -20,
	-10, 0, 5, 0, 0, 0, 0, -10,
	-10, 5, 5, 5, 5, 5, 0, -10,
	0, 0, 5, 5, 5, 5, 0, -5,
	-5, 0, 5, 5, 5, 5, 0, -5,
	-10, 0, 5, 5, 5, 5, 0, -10,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-20, -10, -10, -5, -5, -10, -10, -20,
}

// King PST (midgame) - stay behind the pawns
var kingMidgamePST = [64]int{
	20, 30, 10, 0, 0, 10, 30, 20,
	20, 20, 0, 0, 0, 0, 20, 20,
	-10, -20, -20, -20, -20, -20, -20, -10,
	-20, -30, -30, -40, -40, -30, -30, -20,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
}

// King PST (endgame) - king should be active
var kingEndgamePST = [64]int{
	-50, -30, -30, -30, -30, -30, -30, -50,
	-30, -30, 0, 0, 0, 0, -30, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -20, -10, 0, 0, -10, -20, -30,
	-50, -40, -30, -20, -20, -30, -40, -50,
}

var (
	midgamePSTs = [6]*[64]int{&pawnPST, &knightPST, &bishopPST, &rookPST, &queenPST, &kingMidgamePST}
	endgamePSTs = [6]*[64]int{&pawnPST, &knightPST, &bishopPST, &rookPST, &queenPST, &kingEndgamePST}
)

// Full per-square values: worth*100 + bonus.
var midgameTable, endgameTable [2][6][board.Area]int

func init() {
	for side := board.Light; side <= board.Dark; side++ {
		for shape := board.Pawn; shape <= board.King; shape++ {
			for row := 0; row < board.Rows; row++ {
				rel := row
				if side == board.Light {
					rel = board.Rows - 1 - row
				}
				for file := 0; file < 8; file++ {
					sq := board.NewSquare(row, file)
					base := materialWorth[shape] * 100
					midgameTable[side][shape][sq] = base + midgamePSTs[shape][rel*8+file]
					endgameTable[side][shape][sq] = base + endgamePSTs[shape][rel*8+file]
				}
			}
		}
	}

	start := board.NewPosition()
	for side := board.Light; side <= board.Dark; side++ {
		for shape := board.Knight; shape <= board.King; shape++ {
			maxNonPawnWorth += start.SlotCount(side, shape) * materialWorth[shape]
		}
	}
}

// phaseTerms sums the table values of all live non-pawn pieces from Light's
// point of view and the non-pawn material left on the board.
func phaseTerms(pos *board.Position) (mg, eg, remaining int) {
	for side := board.Light; side <= board.Dark; side++ {
		sign := 1
		if side == board.Dark {
			sign = -1
		}
		for shape := board.Knight; shape <= board.King; shape++ {
			for slot := 0; slot < pos.SlotCount(side, shape); slot++ {
				pl := pos.Placement(side, shape, slot)
				if !pl.Alive {
					continue
				}
				mg += sign * midgameTable[side][shape][pl.Square]
				eg += sign * endgameTable[side][shape][pl.Square]
				remaining += materialWorth[shape]
			}
		}
	}
	return mg, eg, remaining
}

// taper blends endgame and midgame scores by remaining material.
func taper(mg, eg, remaining int) int {
	return eg - remaining*(eg-mg)/maxNonPawnWorth
}

// Evaluate returns the tapered evaluation of the position for side.
// Pawns contribute neither to the score nor to the taper.
func Evaluate(pos *board.Position, side board.Side) int {
	mg, eg, remaining := phaseTerms(pos)
	if side == board.Dark {
		mg, eg = -mg, -eg
	}
	return taper(mg, eg, remaining)
}

// EvaluateMaterial returns the plain non-pawn material balance for side in
// centipawns.
func EvaluateMaterial(pos *board.Position, side board.Side) int {
	score := 0
	for shape := board.Knight; shape < board.King; shape++ {
		for slot := 0; slot < pos.SlotCount(side, shape); slot++ {
			if pos.Placement(side, shape, slot).Alive {
				score += materialWorth[shape] * 100
			}
		}
		for slot := 0; slot < pos.SlotCount(side.Other(), shape); slot++ {
			if pos.Placement(side.Other(), shape, slot).Alive {
				score -= materialWorth[shape] * 100
			}
		}
	}
	return score
}
