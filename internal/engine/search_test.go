package engine

import (
	"testing"

	"github.com/hailam/chessbot/internal/board"
)

// minimax is a plain, unpruned reference search with the same leaf, mate and
// stalemate scoring as Searcher.
func minimax(pos *board.Position, side, maximizer board.Side, depth, maxDepth int) int {
	if depth > maxDepth {
		score := Evaluate(pos, side)
		if side != maximizer {
			score = -score
		}
		return score
	}

	moves := pos.LegalMoves(side)
	if len(moves) == 0 {
		if !pos.InCheck(side) {
			return DrawScore
		}
		if side == maximizer {
			return -(MateScore - depth)
		}
		return MateScore - depth
	}

	best := Infinity
	if side == maximizer {
		best = -Infinity
	}
	for _, m := range moves {
		pos.Play(m)
		score := minimax(pos, side.Other(), maximizer, depth+1, maxDepth)
		pos.Undo()
		if side == maximizer {
			best = max(best, score)
		} else {
			best = min(best, score)
		}
	}
	return best
}

func mustFEN(t *testing.T, fen string) *board.Position {
	t.Helper()
	pos, err := board.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return pos
}

var searchPositions = []struct {
	name string
	fen  string
}{
	{"start", board.StartFEN},
	{"open middlegame", "r1bqkb1r/pppp1ppp/2n2n2/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w - - 0 1"},
	{"dark to move", "r1bqkb1r/pppp1ppp/2n2n2/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R b - - 0 1"},
	{"rook endgame", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"},
	{"mating net", "6k1/8/6K1/8/8/8/8/Q7 w - - 0 1"},
	{"in check", "4k3/8/8/8/1b6/8/8/R3K3 w - - 0 1"},
}

// TestAlphaBetaMatchesMinimax compares pruned and unpruned scores over the
// same tree. The table is disabled since its hits skip depth bookkeeping.
func TestAlphaBetaMatchesMinimax(t *testing.T) {
	for _, tc := range searchPositions {
		for maxDepth := 0; maxDepth <= 2; maxDepth++ {
			pos := mustFEN(t, tc.fen)
			side := pos.SideToMove()

			s := NewSearcher(Config{MaxDepth: maxDepth, DisableTT: true}, nil, nil)
			got := s.Search(pos, side)
			want := minimax(pos, side, side, 0, maxDepth)

			if got != want {
				t.Errorf("%s depth %d: alpha-beta %d, minimax %d", tc.name, maxDepth, got, want)
			}
			t.Logf("%s depth %d: score %d, %d nodes", tc.name, maxDepth, got, s.Nodes())
		}
	}
}

func TestChooseMoveMatchesSearch(t *testing.T) {
	for _, tc := range searchPositions {
		pos := mustFEN(t, tc.fen)
		side := pos.SideToMove()
		s := NewSearcher(Config{MaxDepth: 1}, nil, nil)

		move, score := s.ChooseMove(pos, side)
		if want := s.Search(pos, side); score != want {
			t.Errorf("%s: ChooseMove score %d, Search %d", tc.name, score, want)
		}

		legal := false
		for _, m := range pos.LegalMoves(side) {
			if m == move {
				legal = true
			}
		}
		if !legal {
			t.Errorf("%s: chose illegal move %v", tc.name, move)
		}
	}
}

func TestSearchRestoresPosition(t *testing.T) {
	pos := mustFEN(t, searchPositions[1].fen)
	before := pos.ToFEN()
	hash := pos.Hash()

	tt := NewTranspositionTable(1)
	s := NewSearcher(Config{MaxDepth: 2}, tt, NewEvalCache(1))
	s.ChooseMove(pos, board.Light)
	s.Search(pos, board.Dark)

	if pos.ToFEN() != before || pos.Hash() != hash || pos.Ply() != 0 {
		t.Errorf("search left position changed: %s", pos.ToFEN())
	}
	if err := pos.Verify(); err != nil {
		t.Fatal(err)
	}
}

func TestCheckmateScore(t *testing.T) {
	// Queen on a8 mates the h8 king, the g6 king covers the escape squares
	pos := mustFEN(t, "Q6k/8/6K1/8/8/8/8/8 b - - 0 1")

	for maxDepth := 0; maxDepth <= 3; maxDepth++ {
		s := NewSearcher(Config{MaxDepth: maxDepth}, NewTranspositionTable(1), nil)
		if got := s.Search(pos, board.Dark); got != -MateScore {
			t.Errorf("depth %d: mated side scores %d, want %d", maxDepth, got, -MateScore)
		}

		move, _ := s.ChooseMove(pos, board.Dark)
		if move != board.NoMove {
			t.Errorf("depth %d: mated side chose %v", maxDepth, move)
		}
	}
}

func TestStalemateIsDraw(t *testing.T) {
	pos := mustFEN(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	s := NewSearcher(Config{MaxDepth: 2}, nil, nil)

	if got := s.Search(pos, board.Dark); got != DrawScore {
		t.Errorf("stalemate scores %d, want %d", got, DrawScore)
	}
	if move, _ := s.ChooseMove(pos, board.Dark); move != board.NoMove {
		t.Errorf("stalemated side chose %v", move)
	}
}

func TestFindsMateInOne(t *testing.T) {
	for _, disableTT := range []bool{true, false} {
		pos := mustFEN(t, "6k1/8/6K1/8/8/8/8/Q7 w - - 0 1")
		var tt *TranspositionTable
		if !disableTT {
			tt = NewTranspositionTable(1)
		}
		s := NewSearcher(Config{MaxDepth: 1}, tt, nil)

		move, score := s.ChooseMove(pos, board.Light)
		if score != MateScore-1 {
			t.Errorf("tt=%v: score %d, want %d", !disableTT, score, MateScore-1)
		}

		pos.Play(move)
		if !pos.IsCheckmate() {
			t.Errorf("tt=%v: %v does not mate", !disableTT, move)
		}
		t.Logf("mate with %v (%s)", move, ScoreToString(score))
	}
}

func TestAvoidsHangingQueen(t *testing.T) {
	// The d4 queen is attacked by the e3 pawn and must move
	pos := mustFEN(t, "4k3/8/8/8/3q4/4P3/8/4K3 b - - 0 1")
	s := NewSearcher(Config{MaxDepth: 1}, NewTranspositionTable(1), nil)

	move, _ := s.ChooseMove(pos, board.Dark)
	pos.Play(move)

	queen := pos.Placement(board.Dark, board.Queen, 0)
	if !queen.Alive {
		t.Fatalf("queen lost after %v", move)
	}
	if pos.IsAttacked(board.Dark, queen.Square) {
		t.Errorf("queen left en prise on %v after %v", queen.Square, move)
	}
}

// TestLegalityModes pins the difference between the full legality check and
// the lazy one: a pinned knight may only move in lazy mode.
func TestLegalityModes(t *testing.T) {
	// The e2 knight is pinned against e1 by the e8 rook and can take the d4 queen
	const fen = "4r2k/8/8/8/3q4/8/4N3/4K3 w - - 0 1"

	full := NewSearcher(Config{MaxDepth: 0}, nil, nil)
	move, _ := full.ChooseMove(mustFEN(t, fen), board.Light)
	if move.From.String() == "e2" {
		t.Errorf("full legality: pinned knight moved %v", move)
	}

	lazy := NewSearcher(Config{MaxDepth: 0, LazyLegality: true}, nil, nil)
	move, _ = lazy.ChooseMove(mustFEN(t, fen), board.Light)
	if move.String() != "e2d4" {
		t.Errorf("lazy legality: chose %v, want e2d4", move)
	}
}

func TestLazyLegalityStillResolvesCheck(t *testing.T) {
	// Light is in check from the b4 bishop; every reply must resolve it
	pos := mustFEN(t, "4k3/8/8/8/1b6/8/8/R3K3 w - - 0 1")
	s := NewSearcher(Config{MaxDepth: 0, LazyLegality: true}, nil, nil)

	move, _ := s.ChooseMove(pos, board.Light)
	pos.Play(move)
	if pos.InCheck(board.Light) {
		t.Errorf("%v leaves the king in check", move)
	}
}

// TestTranspositionDeterminism runs independent searches with empty tables.
func TestTranspositionDeterminism(t *testing.T) {
	for _, tc := range searchPositions {
		pos := mustFEN(t, tc.fen)
		side := pos.SideToMove()

		a := NewSearcher(Config{MaxDepth: 2}, NewTranspositionTable(1), NewEvalCache(1))
		b := NewSearcher(Config{MaxDepth: 2}, NewTranspositionTable(1), nil)

		moveA, scoreA := a.ChooseMove(pos, side)
		moveB, scoreB := b.ChooseMove(pos, side)
		if moveA != moveB || scoreA != scoreB {
			t.Errorf("%s: %v/%d vs %v/%d", tc.name, moveA, scoreA, moveB, scoreB)
		}

		if sa, sb := a.Search(pos, side), b.Search(pos, side); sa != sb {
			t.Errorf("%s: search scores %d vs %d", tc.name, sa, sb)
		}
	}
}

func TestTableFindsTranspositions(t *testing.T) {
	pos := mustFEN(t, board.StartFEN)

	plain := NewSearcher(Config{MaxDepth: 3}, nil, nil)
	want := plain.Search(pos, board.Light)

	tt := NewTranspositionTable(4)
	cached := NewSearcher(Config{MaxDepth: 3}, tt, nil)
	got := cached.Search(pos, board.Light)

	if tt.HitRate() == 0 {
		t.Error("no transposition found in a four ply search")
	}
	t.Logf("score plain %d, with table %d; nodes plain %d, with table %d; hit rate %.2f%%",
		want, got, plain.Nodes(), cached.Nodes(), tt.HitRate())
}
