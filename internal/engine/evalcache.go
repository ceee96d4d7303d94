package engine

import "github.com/hailam/chessbot/internal/board"

// evalEntry stores the phase terms of one position from Light's side.
type evalEntry struct {
	key       uint64
	mg        int32
	eg        int32
	remaining int32
	filled    bool
}

// EvalCache is a hash table for caching leaf evaluations.
type EvalCache struct {
	entries []evalEntry
	mask    uint64
}

// NewEvalCache creates an evaluation cache with the given size in MB.
func NewEvalCache(sizeMB int) *EvalCache {
	entrySize := 24
	numEntries := (sizeMB * 1024 * 1024) / entrySize

	// Round down to power of 2
	size := 1
	for size*2 <= numEntries {
		size *= 2
	}

	return &EvalCache{
		entries: make([]evalEntry, size),
		mask:    uint64(size - 1),
	}
}

// Evaluate returns Evaluate(pos, side), computing the phase terms only on
// a cache miss.
func (c *EvalCache) Evaluate(pos *board.Position, side board.Side) int {
	key := pos.Hash()
	entry := &c.entries[key&c.mask]

	var mg, eg, remaining int
	if entry.filled && entry.key == key {
		mg, eg, remaining = int(entry.mg), int(entry.eg), int(entry.remaining)
	} else {
		mg, eg, remaining = phaseTerms(pos)
		*entry = evalEntry{key: key, mg: int32(mg), eg: int32(eg), remaining: int32(remaining), filled: true}
	}

	if side == board.Dark {
		mg, eg = -mg, -eg
	}
	return taper(mg, eg, remaining)
}

// Clear clears the evaluation cache.
func (c *EvalCache) Clear() {
	clear(c.entries)
}
