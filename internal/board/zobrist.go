package board

// Zobrist hash keys for position fingerprints.
// Uses PRNG with fixed seed for reproducibility.
var (
	zobristTile [Area][2][6]uint64 // [Square][Side][Shape], sentinel squares unused
	zobristDark uint64             // XOR when dark to move
)

func init() {
	initZobrist()
}

// Simple PRNG for reproducible Zobrist keys
type prng struct {
	state uint64
}

func newPRNG(seed uint64) *prng {
	return &prng{state: seed}
}

// xorshift64* algorithm
func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func initZobrist() {
	rng := newPRNG(0x98F107A2BEEF1234)

	for sq := Square(0); sq < Area; sq++ {
		if !sq.IsValid() {
			continue
		}
		for s := Light; s <= Dark; s++ {
			for sh := Pawn; sh <= King; sh++ {
				zobristTile[sq][s][sh] = rng.next()
			}
		}
	}

	zobristDark = rng.next()
}

// ZobristTile returns the Zobrist key for a piece on a square.
func ZobristTile(sq Square, s Side, sh Shape) uint64 {
	return zobristTile[sq][s][sh]
}

// ZobristSideToMove returns the Zobrist key XORed while Dark is to move.
func ZobristSideToMove() uint64 {
	return zobristDark
}

// ComputeHash computes the fingerprint from scratch from the tiles.
func (p *Position) ComputeHash() uint64 {
	var hash uint64
	for sq := Square(0); sq < Area; sq++ {
		t := p.tiles[sq]
		if t.IsPiece() {
			hash ^= zobristTile[sq][t.Side()][t.Shape()]
		}
	}
	if p.toMove == Dark {
		hash ^= zobristDark
	}
	return hash
}
