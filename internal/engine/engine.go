package engine

import (
	"fmt"
	"log"
	"time"

	"github.com/hailam/chessbot/internal/board"
)

// SearchInfo contains information about a finished search.
type SearchInfo struct {
	Side     board.Side
	Depth    int
	Move     board.Move
	Score    int
	Nodes    uint64
	Time     time.Duration
	HashFull int // Permille of hash table used
}

// Engine is the chess AI engine.
type Engine struct {
	cfg       Config
	searcher  *Searcher
	tt        *TranspositionTable
	evalCache *EvalCache

	// Callbacks
	OnInfo func(SearchInfo)
}

// NewEngine creates a new chess engine.
func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("engine config: %w", err)
	}

	e := &Engine{cfg: cfg, evalCache: NewEvalCache(1)}
	if !cfg.DisableTT {
		e.tt = NewTranspositionTable(cfg.HashMB)
	}
	e.searcher = NewSearcher(cfg, e.tt, e.evalCache)
	return e, nil
}

// Config returns the active configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// SetDifficulty sets the search depth from a difficulty level.
func (e *Engine) SetDifficulty(d Difficulty) {
	depth, ok := DifficultySettings[d]
	if !ok {
		log.Printf("[Engine] Unknown difficulty %d, keeping depth %d", d, e.cfg.MaxDepth)
		return
	}
	e.cfg.MaxDepth = depth
	e.searcher.maxDepth = depth
}

// ChooseMove returns the best move for side and its score from side's
// point of view. pos is not modified. The transposition table is cleared
// first so the result depends only on the position.
func (e *Engine) ChooseMove(pos *board.Position, side board.Side) (board.Move, int) {
	if e.tt != nil {
		e.tt.Clear()
	}

	start := time.Now()
	move, score := e.searcher.ChooseMove(pos.Copy(), side)
	elapsed := time.Since(start)

	info := SearchInfo{
		Side:  side,
		Depth: e.cfg.MaxDepth,
		Move:  move,
		Score: score,
		Nodes: e.searcher.Nodes(),
		Time:  elapsed,
	}
	if e.tt != nil {
		info.HashFull = e.tt.HashFull()
	}

	if move == board.NoMove {
		log.Printf("[Engine] %v has no legal move (score %s)", side, ScoreToString(score))
	} else {
		log.Printf("[Engine] %v plays %v score %s, %d nodes in %v", side, move, ScoreToString(score), info.Nodes, elapsed)
	}

	if e.OnInfo != nil {
		e.OnInfo(info)
	}
	return move, score
}

// Search returns the score of pos for side without choosing a move.
func (e *Engine) Search(pos *board.Position, side board.Side) int {
	if e.tt != nil {
		e.tt.Clear()
	}
	return e.searcher.Search(pos.Copy(), side)
}

// Evaluate returns the static evaluation of a position for side.
func (e *Engine) Evaluate(pos *board.Position, side board.Side) int {
	return Evaluate(pos, side)
}

// Clear clears the transposition table and other caches.
func (e *Engine) Clear() {
	if e.tt != nil {
		e.tt.Clear()
	}
	e.evalCache.Clear()
}

// HitRate returns the transposition table hit rate of the last search.
func (e *Engine) HitRate() float64 {
	if e.tt == nil {
		return 0
	}
	return e.tt.HitRate()
}

// ScoreToString converts a score to a human-readable string.
func ScoreToString(score int) string {
	if score > MateScore-MaxPly {
		mateIn := (MateScore - score + 1) / 2
		return fmt.Sprintf("Mate in %d", mateIn)
	}
	if score < -MateScore+MaxPly {
		mateIn := (MateScore + score + 1) / 2
		return fmt.Sprintf("Mated in %d", mateIn)
	}

	// Convert centipawns to pawns
	sign := ""
	if score < 0 {
		sign = "-"
		score = -score
	}
	return fmt.Sprintf("%s%d.%02d", sign, score/100, score%100)
}
