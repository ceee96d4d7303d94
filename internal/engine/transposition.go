package engine

import "github.com/hailam/chessbot/internal/board"

// TTEntry is one slot of the transposition table.
type TTEntry struct {
	Key    uint64 // Full 64-bit Zobrist hash for verification
	Score  int32  // From Light's point of view
	Filled bool
}

// TranspositionTable maps position fingerprints to search scores.
// Slots are indexed by key & mask and every store overwrites its slot.
type TranspositionTable struct {
	entries []TTEntry
	size    uint64
	mask    uint64

	// Statistics
	hits   uint64
	probes uint64
}

// NewTranspositionTable creates a transposition table with the given size in MB.
func NewTranspositionTable(sizeMB int) *TranspositionTable {
	if sizeMB < 1 {
		sizeMB = 1
	}

	entrySize := uint64(16)
	numEntries := (uint64(sizeMB) * 1024 * 1024) / entrySize

	// Round down to power of 2 for fast modulo
	numEntries = roundDownToPowerOf2(numEntries)

	return &TranspositionTable{
		entries: make([]TTEntry, numEntries),
		size:    numEntries,
		mask:    numEntries - 1,
	}
}

// roundDownToPowerOf2 rounds n down to the nearest power of 2.
func roundDownToPowerOf2(n uint64) uint64 {
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return (n + 1) >> 1
}

// Probe looks up a position. It only hits when the stored key equals hash.
func (tt *TranspositionTable) Probe(hash uint64) (int, bool) {
	tt.probes++

	entry := &tt.entries[hash&tt.mask]
	if entry.Filled && entry.Key == hash {
		tt.hits++
		return int(entry.Score), true
	}
	return 0, false
}

// Store saves a score, replacing whatever the slot held.
func (tt *TranspositionTable) Store(hash uint64, score int) {
	tt.entries[hash&tt.mask] = TTEntry{Key: hash, Score: int32(score), Filled: true}
}

// Clear clears the transposition table.
func (tt *TranspositionTable) Clear() {
	clear(tt.entries)
	tt.hits = 0
	tt.probes = 0
}

// HashFull returns the permille (parts per thousand) of the table that is used.
func (tt *TranspositionTable) HashFull() int {
	// Sample first 1000 entries
	used := 0
	sampleSize := 1000
	if uint64(sampleSize) > tt.size {
		sampleSize = int(tt.size)
	}

	for i := 0; i < sampleSize; i++ {
		if tt.entries[i].Filled {
			used++
		}
	}

	return (used * 1000) / sampleSize
}

// HitRate returns the cache hit rate as a percentage.
func (tt *TranspositionTable) HitRate() float64 {
	if tt.probes == 0 {
		return 0
	}
	return float64(tt.hits) / float64(tt.probes) * 100
}

// Size returns the number of entries in the table.
func (tt *TranspositionTable) Size() uint64 {
	return tt.size
}

// AdjustScoreToTT converts a score for storage: mate scores are made
// relative to the node at ply, and the result is seen from Light's side.
func AdjustScoreToTT(score, ply int, maximizer board.Side) int {
	if score > MateScore-MaxPly {
		score += ply
	} else if score < -MateScore+MaxPly {
		score -= ply
	}
	if maximizer == board.Dark {
		score = -score
	}
	return score
}

// AdjustScoreFromTT is the inverse of AdjustScoreToTT.
func AdjustScoreFromTT(score, ply int, maximizer board.Side) int {
	if maximizer == board.Dark {
		score = -score
	}
	if score > MateScore-MaxPly {
		return score - ply
	}
	if score < -MateScore+MaxPly {
		return score + ply
	}
	return score
}
