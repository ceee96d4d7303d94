package board

import (
	"fmt"
	"strings"
)

// Placement is one entry of the piece index.
// A captured piece keeps its slot and the square it was taken on.
type Placement struct {
	Square Square
	Alive  bool
}

// pieceRow is the piece index for one side and shape.
type pieceRow struct {
	slots [MaxSlots]Placement
	count int
}

// Position is a complete game state: tiles, piece index, fingerprint and
// side to move. Tiles and index are only changed together by MakeMove.
type Position struct {
	tiles  [Area]Tile
	index  [2][6]pieceRow
	hash   uint64
	toMove Side

	// Applied moves, most recent last
	history []MoveRecord
}

// NewPosition creates the starting position.
func NewPosition() *Position {
	pos, err := ParseFEN(StartFEN)
	if err != nil {
		panic(err)
	}
	return pos
}

// NewEmptyPosition creates a board with no pieces and Light to move.
func NewEmptyPosition() *Position {
	p := &Position{}
	p.Clear()
	return p
}

// Clear resets the position to an empty board.
func (p *Position) Clear() {
	*p = Position{}
	for sq := Square(0); sq < Area; sq++ {
		if sq.IsValid() {
			p.tiles[sq] = Empty
		} else {
			p.tiles[sq] = OffBoard
		}
	}
}

// Copy creates a deep copy of the position.
func (p *Position) Copy() *Position {
	newPos := *p
	newPos.history = append([]MoveRecord(nil), p.history...)
	return &newPos
}

// Put places a piece during setup, assigning it the next free slot.
func (p *Position) Put(side Side, shape Shape, sq Square) error {
	if !p.onBoard(sq) {
		return fmt.Errorf("square %d is off the board", sq)
	}
	if p.tiles[sq] != Empty {
		return fmt.Errorf("square %s is occupied", sq)
	}
	row := &p.index[side][shape]
	if row.count == MaxSlots {
		return fmt.Errorf("too many %s %ss", side, shape)
	}
	if shape == King && row.count == 1 {
		return fmt.Errorf("%s already has a king", side)
	}

	slot := row.count
	row.slots[slot] = Placement{Square: sq, Alive: true}
	row.count++
	p.tiles[sq] = NewTile(side, shape, slot)
	p.hash ^= zobristTile[sq][side][shape]
	return nil
}

// SetSideToMove sets the side to move during setup.
func (p *Position) SetSideToMove(side Side) {
	if p.toMove != side {
		p.toMove = side
		p.hash ^= zobristDark
	}
}

// TileAt returns the raw tile at a square index (Empty, OffBoard or a piece).
func (p *Position) TileAt(sq Square) Tile {
	if sq < 0 || sq >= Area {
		return OffBoard
	}
	return p.tiles[sq]
}

// OccupantOf returns the piece on a square. The square must hold a piece.
func (p *Position) OccupantOf(sq Square) Tile {
	t := p.TileAt(sq)
	if !t.IsPiece() {
		panic(fmt.Sprintf("board: no piece on square %d", sq))
	}
	return t
}

// IsEmpty returns true if the square is on the board and empty.
func (p *Position) IsEmpty(sq Square) bool {
	return sq >= 0 && sq < Area && p.tiles[sq] == Empty
}

// onBoard returns true for playable squares.
func (p *Position) onBoard(sq Square) bool {
	return sq >= 0 && sq < Area && p.tiles[sq] != OffBoard
}

// SlotCount returns the number of index slots used for a side and shape.
func (p *Position) SlotCount(side Side, shape Shape) int {
	return p.index[side][shape].count
}

// Placement returns an index entry.
func (p *Position) Placement(side Side, shape Shape, slot int) Placement {
	return p.index[side][shape].slots[slot]
}

// KingSquare returns the square of a side's king, or NoSquare if it has none.
func (p *Position) KingSquare(side Side) Square {
	row := &p.index[side][King]
	if row.count == 0 || !row.slots[0].Alive {
		return NoSquare
	}
	return row.slots[0].Square
}

// SideToMove returns the side whose turn it is.
func (p *Position) SideToMove() Side {
	return p.toMove
}

// Hash returns the incrementally maintained fingerprint.
func (p *Position) Hash() uint64 {
	return p.hash
}

// Ply returns the number of moves on the move stack.
func (p *Position) Ply() int {
	return len(p.history)
}

// LastMove returns the most recent move record, if any.
func (p *Position) LastMove() (MoveRecord, bool) {
	if len(p.history) == 0 {
		return MoveRecord{}, false
	}
	return p.history[len(p.history)-1], true
}

// MakeMove moves the piece (side, shape, slot) from one square to another and
// returns the tile found on the destination.
//
// When the destination is occupied, its piece is marked captured in the index.
// Otherwise a non-empty restore tile means this call undoes an earlier capture:
// that piece is revived and placed back on from. The same primitive applies a
// move (restore = Empty) and undoes it (from/to swapped, restore = captured).
func (p *Position) MakeMove(side Side, shape Shape, slot int, from, to Square, restore Tile) Tile {
	moving := p.tiles[from]
	captured := p.tiles[to]

	if captured != Empty {
		cs, csh := captured.Side(), captured.Shape()
		p.index[cs][csh].slots[captured.Slot()].Alive = false
		p.hash ^= zobristTile[to][cs][csh]
	} else if restore != Empty {
		rs, rsh := restore.Side(), restore.Shape()
		p.index[rs][rsh].slots[restore.Slot()] = Placement{Square: from, Alive: true}
		p.hash ^= zobristTile[from][rs][rsh]
	}

	p.tiles[to] = moving
	p.tiles[from] = restore
	p.index[side][shape].slots[slot].Square = to

	p.hash ^= zobristTile[from][side][shape] ^ zobristTile[to][side][shape]
	p.hash ^= zobristDark
	p.toMove = p.toMove.Other()

	return captured
}

// Play applies a move and pushes its record on the move stack.
func (p *Position) Play(m Move) MoveRecord {
	t := p.OccupantOf(m.From)
	captured := p.MakeMove(t.Side(), t.Shape(), t.Slot(), m.From, m.To, Empty)
	rec := MoveRecord{Move: m, Piece: t, Captured: captured}
	p.history = append(p.history, rec)
	return rec
}

// Undo takes back the most recent move. Panics if no move was played.
func (p *Position) Undo() MoveRecord {
	n := len(p.history)
	if n == 0 {
		panic("board: undo with empty move stack")
	}
	rec := p.history[n-1]
	p.history = p.history[:n-1]
	t := rec.Piece
	p.MakeMove(t.Side(), t.Shape(), t.Slot(), rec.To, rec.From, rec.Captured)
	return rec
}

// Verify checks that tiles, piece index and fingerprint agree.
func (p *Position) Verify() error {
	for sq := Square(0); sq < Area; sq++ {
		t := p.tiles[sq]
		if sq.IsValid() == (t == OffBoard) {
			return fmt.Errorf("square %d: sentinel mismatch", sq)
		}
		if !t.IsPiece() {
			continue
		}
		pl := p.index[t.Side()][t.Shape()].slots[t.Slot()]
		if !pl.Alive || pl.Square != sq {
			return fmt.Errorf("square %s: index entry %+v does not point back", sq, pl)
		}
	}

	for s := Light; s <= Dark; s++ {
		for sh := Pawn; sh <= King; sh++ {
			row := &p.index[s][sh]
			for slot := 0; slot < row.count; slot++ {
				pl := row.slots[slot]
				if pl.Alive && p.tiles[pl.Square] != NewTile(s, sh, slot) {
					return fmt.Errorf("%s %s slot %d: tile on %s does not match", s, sh, slot, pl.Square)
				}
			}
		}
	}

	if h := p.ComputeHash(); h != p.hash {
		return fmt.Errorf("hash mismatch: incremental %016x, computed %016x", p.hash, h)
	}
	return nil
}

// Validate checks that the position is playable.
func (p *Position) Validate() error {
	for s := Light; s <= Dark; s++ {
		if p.KingSquare(s) == NoSquare {
			return fmt.Errorf("%s must have exactly one king", s)
		}
	}
	if p.InCheck(p.toMove.Other()) {
		return fmt.Errorf("%s king is attacked while %s is to move", p.toMove.Other(), p.toMove)
	}
	return nil
}

// String returns a visual representation of the position.
func (p *Position) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	for row := 0; row < Rows; row++ {
		fmt.Fprintf(&sb, "%d  ", Rows-row)
		for file := 0; file < 8; file++ {
			sb.WriteString(p.tiles[NewSquare(row, file)].String())
			sb.WriteByte(' ')
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n   a b c d e f g h\n\n")
	fmt.Fprintf(&sb, "Side to move: %s\n", p.toMove)
	fmt.Fprintf(&sb, "Hash: %016x\n", p.hash)
	return sb.String()
}
