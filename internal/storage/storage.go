package storage

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"
)

// Storage keys
const (
	keySettings    = "settings"
	keyStats       = "stats"
	keyFirstLaunch = "first_launch"
)

// PlayerSide represents which side the human plays
type PlayerSide int

const (
	SideLight PlayerSide = iota
	SideDark
)

// Settings stores engine and player settings
type Settings struct {
	MaxDepth     int        `json:"max_depth"`
	HashMB       int        `json:"hash_mb"`
	PlayerSide   PlayerSide `json:"player_side"`
	LazyLegality bool       `json:"lazy_legality"`
	LastPlayed   time.Time  `json:"last_played"`
}

// DefaultSettings returns default settings
func DefaultSettings() *Settings {
	return &Settings{
		MaxDepth:   2,
		HashMB:     16,
		PlayerSide: SideLight,
	}
}

// GameStats stores game statistics
type GameStats struct {
	GamesPlayed    int            `json:"games_played"`
	Wins           int            `json:"wins"`
	Losses         int            `json:"losses"`
	Draws          int            `json:"draws"`
	WinsByDepth    map[string]int `json:"wins_by_depth"`
	TotalPlayTime  time.Duration  `json:"total_play_time"`
	TotalMoves     int            `json:"total_moves"`
	LongestWinStrk int            `json:"longest_win_streak"`
	CurrentStreak  int            `json:"current_streak"`
}

// NewGameStats returns empty game statistics
func NewGameStats() *GameStats {
	return &GameStats{
		WinsByDepth: make(map[string]int),
	}
}

// GameResult represents the result of a completed game
type GameResult struct {
	Won      bool
	Draw     bool
	MaxDepth int
	Moves    int
	Duration time.Duration
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db *badger.DB
}

// NewStorage opens the database in the platform data directory
func NewStorage() (*Storage, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dbDir)
}

// Open opens or creates a database in dir
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrapf(err, "open database in %s", dir)
	}
	return &Storage{db: db}, nil
}

// OpenInMemory opens a database that lives only as long as the process
func OpenInMemory() (*Storage, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrap(err, "open in-memory database")
	}
	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// IsFirstLaunch returns true if this is the first launch
func (s *Storage) IsFirstLaunch() (bool, error) {
	var firstLaunch bool = true

	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(keyFirstLaunch))
		if err == badger.ErrKeyNotFound {
			firstLaunch = true
			return nil
		}
		if err != nil {
			return err
		}
		firstLaunch = false
		return nil
	})

	return firstLaunch, errors.Wrap(err, "read first launch marker")
}

// MarkFirstLaunchComplete marks that first launch setup is complete
func (s *Storage) MarkFirstLaunchComplete() error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyFirstLaunch), []byte("done"))
	})
	return errors.Wrap(err, "write first launch marker")
}

// put JSON-encodes v under key
func (s *Storage) put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "encode %s", key)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
	return errors.Wrapf(err, "write %s", key)
}

// get decodes the value under key into v, leaving v untouched if missing
func (s *Storage) get(key string, v any) error {
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err == badger.ErrKeyNotFound {
			return nil // Use defaults
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, v)
		})
	})
	return errors.Wrapf(err, "read %s", key)
}

// SaveSettings saves settings
func (s *Storage) SaveSettings(settings *Settings) error {
	settings.LastPlayed = time.Now()
	return s.put(keySettings, settings)
}

// LoadSettings loads settings, returns defaults if not found
func (s *Storage) LoadSettings() (*Settings, error) {
	settings := DefaultSettings()
	err := s.get(keySettings, settings)
	return settings, err
}

// SaveStats saves game statistics
func (s *Storage) SaveStats(stats *GameStats) error {
	return s.put(keyStats, stats)
}

// LoadStats loads game statistics, returns empty stats if not found
func (s *Storage) LoadStats() (*GameStats, error) {
	stats := NewGameStats()
	err := s.get(keyStats, stats)
	if stats.WinsByDepth == nil {
		stats.WinsByDepth = make(map[string]int)
	}
	return stats, err
}

// RecordGame records a completed game and updates statistics
func (s *Storage) RecordGame(result GameResult) error {
	stats, err := s.LoadStats()
	if err != nil {
		return err
	}

	stats.GamesPlayed++
	stats.TotalPlayTime += result.Duration
	stats.TotalMoves += result.Moves

	if result.Draw {
		stats.Draws++
		stats.CurrentStreak = 0
	} else if result.Won {
		stats.Wins++
		stats.CurrentStreak++
		if stats.CurrentStreak > stats.LongestWinStrk {
			stats.LongestWinStrk = stats.CurrentStreak
		}
		stats.WinsByDepth[strconv.Itoa(result.MaxDepth)]++
	} else {
		stats.Losses++
		stats.CurrentStreak = 0
	}

	return s.SaveStats(stats)
}

// GetWinRate returns the win rate as a percentage (0-100)
func (s *GameStats) GetWinRate() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.GamesPlayed) * 100
}
