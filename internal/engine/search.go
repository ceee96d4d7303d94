package engine

import (
	"github.com/hailam/chessbot/internal/board"
)

// Search constants
const (
	Infinity  = 30000
	MateScore = 29000
	DrawScore = 0
	MaxPly    = 128
)

// Searcher performs depth-bounded alpha-beta search on one position.
// Scores are seen from the maximizer, the side the search was started for.
// A Searcher mutates its position in place and must not be shared between
// goroutines.
type Searcher struct {
	pos       *board.Position
	tt        *TranspositionTable // nil when disabled
	evalCache *EvalCache
	maxDepth  int
	lazy      bool
	maximizer board.Side
	nodes     uint64

	// Destination buffers, one per ply
	buffers [MaxPly][]board.Square
}

// NewSearcher creates a searcher. tt may be nil.
func NewSearcher(cfg Config, tt *TranspositionTable, evalCache *EvalCache) *Searcher {
	return &Searcher{
		tt:        tt,
		evalCache: evalCache,
		maxDepth:  cfg.MaxDepth,
		lazy:      cfg.LazyLegality,
	}
}

// Nodes returns the number of nodes visited since the last reset.
func (s *Searcher) Nodes() uint64 {
	return s.nodes
}

func (s *Searcher) reset(pos *board.Position, maximizer board.Side) {
	s.pos = pos
	s.maximizer = maximizer
	s.nodes = 0
}

// evaluate scores a leaf for the maximizer.
func (s *Searcher) evaluate(side board.Side) int {
	var score int
	if s.evalCache != nil {
		score = s.evalCache.Evaluate(s.pos, side)
	} else {
		score = Evaluate(s.pos, side)
	}
	if side != s.maximizer {
		score = -score
	}
	return score
}

// noMoveScore scores a node where side has no legal move.
func (s *Searcher) noMoveScore(side board.Side, inCheck bool, depth int) int {
	if !inCheck {
		return DrawScore
	}
	if side == s.maximizer {
		return -(MateScore - depth)
	}
	return MateScore - depth
}

// tryMove plays m and reports whether it may be searched. The move is
// undone again when it leaves the mover's king attacked.
func (s *Searcher) tryMove(side board.Side, m board.Move, inCheck bool) bool {
	s.pos.Play(m)
	if (inCheck || !s.lazy) && s.pos.InCheck(side) {
		s.pos.Undo()
		return false
	}
	return true
}

// forEachMove enumerates the pieces of side through the piece index and calls
// visit with every applied move. The move is undone after visit returns.
// Enumeration stops when visit returns false. It reports whether any move
// was applied.
func (s *Searcher) forEachMove(side board.Side, depth int, inCheck bool, visit func(m board.Move) bool) bool {
	applied := false
	for shape := board.Pawn; shape <= board.King; shape++ {
		for slot := 0; slot < s.pos.SlotCount(side, shape); slot++ {
			pl := s.pos.Placement(side, shape, slot)
			if !pl.Alive {
				continue
			}

			dests := s.pos.AppendMoves(s.buffers[depth][:0], side, shape, pl.Square)
			s.buffers[depth] = dests

			for _, to := range dests {
				m := board.NewMove(pl.Square, to)
				if !s.tryMove(side, m, inCheck) {
					continue
				}
				applied = true
				more := visit(m)
				s.pos.Undo()
				if !more {
					return true
				}
			}
		}
	}
	return applied
}

// search returns the alpha-beta score of the position with side to move,
// depth plies below the root.
func (s *Searcher) search(side board.Side, depth, alpha, beta int) int {
	s.nodes++
	hash := s.pos.Hash()

	if s.tt != nil {
		if score, ok := s.tt.Probe(hash); ok {
			return AdjustScoreFromTT(score, depth, s.maximizer)
		}
	}

	if depth > s.maxDepth {
		return s.evaluate(side)
	}

	inCheck := s.pos.InCheck(side)
	maximizing := side == s.maximizer

	applied := s.forEachMove(side, depth, inCheck, func(m board.Move) bool {
		score := s.search(side.Other(), depth+1, alpha, beta)
		if maximizing {
			alpha = max(alpha, score)
		} else {
			beta = min(beta, score)
		}
		// Cutoff
		return beta > alpha
	})

	if !applied {
		return s.noMoveScore(side, inCheck, depth)
	}

	result := beta
	if maximizing {
		result = alpha
	}
	if s.tt != nil {
		s.tt.Store(hash, AdjustScoreToTT(result, depth, s.maximizer))
	}
	return result
}

// Search returns the score of pos for side, from side's point of view.
// The position is restored before returning.
func (s *Searcher) Search(pos *board.Position, side board.Side) int {
	s.reset(pos, side)
	return s.search(side, 0, -Infinity, Infinity)
}

// ChooseMove searches every legal move of side one ply deep with a full
// window and no table store, and returns the first move with the best
// child score. It returns board.NoMove and the terminal score when side
// has no legal move.
func (s *Searcher) ChooseMove(pos *board.Position, side board.Side) (board.Move, int) {
	s.reset(pos, side)
	s.nodes++

	inCheck := pos.InCheck(side)
	best := board.NoMove
	bestScore := 0

	applied := s.forEachMove(side, 0, inCheck, func(m board.Move) bool {
		score := s.search(side.Other(), 1, -Infinity, Infinity)
		if best == board.NoMove || s.improves(side, score, bestScore) {
			best, bestScore = m, score
		}
		return true
	})

	if !applied {
		return board.NoMove, s.noMoveScore(side, inCheck, 0)
	}
	return best, bestScore
}

// improves reports whether score is strictly better than best for side.
func (s *Searcher) improves(side board.Side, score, best int) bool {
	if side == s.maximizer {
		return score > best
	}
	return score < best
}
