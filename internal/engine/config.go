package engine

import "fmt"

// Config controls a search.
type Config struct {
	// MaxDepth is the deepest ply that is expanded. Nodes below it are
	// scored by the evaluator, so the root move sees MaxDepth+1 plies.
	MaxDepth int

	// HashMB is the transposition table size in megabytes.
	HashMB int

	// LazyLegality only re-checks own-king safety after a move when the
	// mover started in check. Moves of pinned pieces may then be treated
	// as legal.
	LazyLegality bool

	// DisableTT turns off transposition table probes and stores.
	DisableTT bool
}

// DefaultConfig returns the Medium difficulty with a 16 MB table.
func DefaultConfig() Config {
	return Config{
		MaxDepth: DifficultySettings[Medium],
		HashMB:   16,
	}
}

// Validate reports configuration values the engine cannot run with.
func (c Config) Validate() error {
	if c.MaxDepth < 0 || c.MaxDepth >= MaxPly-1 {
		return fmt.Errorf("max depth %d out of range [0, %d)", c.MaxDepth, MaxPly-1)
	}
	if c.HashMB < 1 && !c.DisableTT {
		return fmt.Errorf("hash size must be at least 1 MB, got %d", c.HashMB)
	}
	return nil
}

// Difficulty represents the AI difficulty level.
type Difficulty int

const (
	Easy   Difficulty = iota // 2 ply
	Medium                   // 3 ply
	Hard                     // 4 ply
)

// DifficultySettings maps difficulty to MaxDepth.
var DifficultySettings = map[Difficulty]int{
	Easy:   1,
	Medium: 2,
	Hard:   3,
}

// String returns the difficulty name.
func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	}
	return fmt.Sprintf("difficulty(%d)", int(d))
}

// ParseDifficulty converts a name from String back to a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	for d := Easy; d <= Hard; d++ {
		if d.String() == s {
			return d, nil
		}
	}
	return Medium, fmt.Errorf("unknown difficulty %q", s)
}
