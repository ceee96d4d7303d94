package board

import (
	"math/rand"
	"testing"
)

// sq parses algebraic notation and panics on error.
func sq(s string) Square {
	square, err := ParseSquare(s)
	if err != nil {
		panic(err)
	}
	return square
}

// mustFEN parses a FEN string and fails the test on error.
func mustFEN(t *testing.T, fen string) *Position {
	t.Helper()
	pos, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return pos
}

// pawnOnLastRow returns true if a pawn stands on row 0 or 7.
func pawnOnLastRow(p *Position) bool {
	for s := Light; s <= Dark; s++ {
		for slot := 0; slot < p.SlotCount(s, Pawn); slot++ {
			pl := p.Placement(s, Pawn, slot)
			if pl.Alive && (pl.Square.Row() == 0 || pl.Square.Row() == Rows-1) {
				return true
			}
		}
	}
	return false
}

// walk plays random legal moves from the starting position and calls visit
// on every position reached. It stops early on mate, stalemate or a pawn
// reaching its last row.
func walk(seed int64, plies int, visit func(p *Position)) {
	rng := rand.New(rand.NewSource(seed))
	pos := NewPosition()
	for i := 0; i < plies; i++ {
		visit(pos)
		moves := pos.LegalMoves(pos.SideToMove())
		if len(moves) == 0 {
			return
		}
		pos.Play(moves[rng.Intn(len(moves))])
		if pawnOnLastRow(pos) {
			return
		}
	}
	visit(pos)
}

type snapshot struct {
	tiles  [Area]Tile
	index  [2][6]pieceRow
	hash   uint64
	toMove Side
}

func snap(p *Position) snapshot {
	return snapshot{tiles: p.tiles, index: p.index, hash: p.hash, toMove: p.toMove}
}

func TestStartingPosition(t *testing.T) {
	pos := NewPosition()

	if err := pos.Verify(); err != nil {
		t.Fatal(err)
	}
	if err := pos.Validate(); err != nil {
		t.Fatal(err)
	}
	if pos.SideToMove() != Light {
		t.Errorf("side to move = %v, want Light", pos.SideToMove())
	}
	if got := pos.KingSquare(Light); got != sq("e1") {
		t.Errorf("light king on %v, want e1", got)
	}
	if got := pos.KingSquare(Dark); got != sq("e8") {
		t.Errorf("dark king on %v, want e8", got)
	}
	if got := pos.SlotCount(Light, Pawn); got != 8 {
		t.Errorf("light pawns = %d, want 8", got)
	}

	// Sentinel columns
	for row := 0; row < Rows; row++ {
		if pos.TileAt(Square(row*Width)) != OffBoard || pos.TileAt(Square(row*Width+Width-1)) != OffBoard {
			t.Errorf("row %d: sentinel columns not off-board", row)
		}
	}

	t.Log(pos)
}

func TestMakeMoveInverse(t *testing.T) {
	for seed := int64(1); seed <= 12; seed++ {
		walk(seed, 60, func(pos *Position) {
			for _, side := range []Side{Light, Dark} {
				for _, m := range pos.PseudoMoves(side) {
					before := snap(pos)

					mover := pos.OccupantOf(m.From)
					captured := pos.MakeMove(mover.Side(), mover.Shape(), mover.Slot(), m.From, m.To, Empty)
					if err := pos.Verify(); err != nil {
						t.Fatalf("seed %d, after %v: %v", seed, m, err)
					}
					pos.MakeMove(mover.Side(), mover.Shape(), mover.Slot(), m.To, m.From, captured)

					if after := snap(pos); after != before {
						t.Fatalf("seed %d: make/unmake of %v did not restore the position", seed, m)
					}
				}
			}
		})
	}
}

func TestMakeMoveCaptureAndRestore(t *testing.T) {
	pos := mustFEN(t, "4k3/8/8/3p4/8/4N3/8/4K3 w - - 0 1")
	before := snap(pos)

	knight := pos.OccupantOf(sq("e3"))
	pawn := pos.OccupantOf(sq("d5"))

	captured := pos.MakeMove(Light, Knight, knight.Slot(), sq("e3"), sq("d5"), Empty)
	if captured != pawn {
		t.Fatalf("captured %v, want %v", captured, pawn)
	}
	if pl := pos.Placement(Dark, Pawn, pawn.Slot()); pl.Alive {
		t.Error("captured pawn still alive in the index")
	}
	if pos.TileAt(sq("e3")) != Empty || pos.TileAt(sq("d5")) != knight {
		t.Error("tiles not updated")
	}
	if pos.SideToMove() != Dark {
		t.Error("side to move not toggled")
	}
	if err := pos.Verify(); err != nil {
		t.Fatal(err)
	}

	pos.MakeMove(Light, Knight, knight.Slot(), sq("d5"), sq("e3"), captured)
	if snap(pos) != before {
		t.Error("undo did not restore the position")
	}
	if pl := pos.Placement(Dark, Pawn, pawn.Slot()); !pl.Alive || pl.Square != sq("d5") {
		t.Errorf("restored pawn entry = %+v", pl)
	}
}

func TestPlayUndoStack(t *testing.T) {
	pos := NewPosition()
	before := snap(pos)

	moves := []string{"e2e4", "d7d5", "e4d5", "d8d5", "b1c3"}
	for _, s := range moves {
		m, err := ParseMove(s)
		if err != nil {
			t.Fatal(err)
		}
		if res := pos.ValidateMove(m.From, m.To); res != Valid {
			t.Fatalf("%s: %v", s, res)
		}
		pos.Play(m)
	}

	if pos.Ply() != len(moves) {
		t.Fatalf("ply = %d, want %d", pos.Ply(), len(moves))
	}
	if rec, _ := pos.LastMove(); rec.Move.String() != "b1c3" {
		t.Errorf("last move = %v", rec.Move)
	}

	for range moves {
		rec := pos.Undo()
		if rec.Move.String() == "d8d5" && !rec.IsCapture() {
			t.Error("d8d5 should be recorded as a capture")
		}
	}
	if snap(pos) != before {
		t.Error("undoing all moves did not restore the start position")
	}
}

func TestZobristConsistency(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		walk(seed, 80, func(pos *Position) {
			if got, want := pos.Hash(), pos.ComputeHash(); got != want {
				t.Fatalf("seed %d, ply %d: incremental %016x, computed %016x", seed, pos.Ply(), got, want)
			}
		})
	}
}

func TestZobristSideToMove(t *testing.T) {
	light := mustFEN(t, "4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	dark := mustFEN(t, "4k3/8/8/8/8/8/8/4K3 b - - 0 1")

	if light.Hash()^dark.Hash() != ZobristSideToMove() {
		t.Error("positions differing only in side to move should differ by the side key")
	}
}

func TestCopyIsIndependent(t *testing.T) {
	pos := NewPosition()
	cp := pos.Copy()
	cp.Play(NewMove(sq("e2"), sq("e4")))

	if pos.TileAt(sq("e4")) != Empty || pos.Ply() != 0 {
		t.Error("playing on a copy changed the original")
	}
}

func TestTilePreconditions(t *testing.T) {
	mustPanic := func(name string, f func()) {
		t.Helper()
		defer func() {
			if recover() == nil {
				t.Errorf("%s: expected panic", name)
			}
		}()
		f()
	}

	pos := NewPosition()
	mustPanic("Empty.Side", func() { Empty.Side() })
	mustPanic("OffBoard.Slot", func() { OffBoard.Slot() })
	mustPanic("OccupantOf(empty)", func() { pos.OccupantOf(sq("e4")) })
	mustPanic("Undo(empty stack)", func() { pos.Undo() })

	tile := NewTile(Dark, Queen, 3)
	if tile.Side() != Dark || tile.Shape() != Queen || tile.Slot() != 3 {
		t.Errorf("tile fields = %v/%v/%d", tile.Side(), tile.Shape(), tile.Slot())
	}
	if Empty.IsPiece() || OffBoard.IsPiece() || Empty == OffBoard {
		t.Error("Empty and OffBoard must be distinct non-piece tiles")
	}
}

func TestSquareNotation(t *testing.T) {
	tests := []struct {
		name string
		row  int
		file int
	}{
		{"a8", 0, 0},
		{"h8", 0, 7},
		{"a1", 7, 0},
		{"e4", 4, 4},
	}

	for _, tc := range tests {
		got := sq(tc.name)
		if got != NewSquare(tc.row, tc.file) || got.String() != tc.name {
			t.Errorf("%s: got square %d (%s)", tc.name, got, got)
		}
	}

	for _, bad := range []string{"i1", "a9", "e", "e44"} {
		if _, err := ParseSquare(bad); err == nil {
			t.Errorf("ParseSquare(%q) should fail", bad)
		}
	}
}
