package main

import (
	"flag"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/pkg/errors"

	"github.com/hailam/chessbot/internal/board"
	"github.com/hailam/chessbot/internal/engine"
	"github.com/hailam/chessbot/internal/game"
	"github.com/hailam/chessbot/internal/storage"
)

var (
	depth      = flag.Int("depth", 2, "deepest expanded ply (the engine looks depth+1 plies ahead)")
	difficulty = flag.String("difficulty", "", "easy, medium or hard (overrides -depth)")
	hashMB     = flag.Int("hash", 16, "transposition table size in MB")
	side       = flag.String("side", "light", "side the human plays: light or dark")
	lazy       = flag.Bool("lazy", false, "only re-check king safety when the mover starts in check")
	fen        = flag.String("fen", "", "start from this FEN instead of the initial position")
	noStore    = flag.Bool("nostore", false, "do not load or save settings and statistics")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
)

func main() {
	flag.Parse()

	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", profilePath)
	}

	var store *storage.Storage
	if !*noStore {
		var err error
		store, err = storage.NewStorage()
		if err != nil {
			log.Printf("Warning: storage unavailable: %v (settings will not persist)", err)
		} else {
			defer store.Close()
		}
	}

	settings, err := loadSettings(store)
	if err != nil {
		log.Fatal(err)
	}

	cfg := engine.Config{
		MaxDepth:     settings.MaxDepth,
		HashMB:       settings.HashMB,
		LazyLegality: settings.LazyLegality,
	}
	eng, err := engine.NewEngine(cfg)
	if err != nil {
		log.Fatal(err)
	}

	playerSide := board.Light
	if settings.PlayerSide == storage.SideDark {
		playerSide = board.Dark
	}

	var g *game.Game
	if *fen != "" {
		g, err = game.NewFromFEN(eng, playerSide, *fen)
		if err != nil {
			log.Fatal(err)
		}
	} else {
		g = game.New(eng, playerSide)
	}

	if store != nil {
		if first, err := store.IsFirstLaunch(); err == nil && first {
			printHelp(os.Stdout)
			if err := store.MarkFirstLaunchComplete(); err != nil {
				log.Printf("Warning: %v", err)
			}
		}
		if err := store.SaveSettings(settings); err != nil {
			log.Printf("Warning: could not save settings: %v", err)
		}
	}

	start := time.Now()
	s := newSession(g, os.Stdout)
	s.run(os.Stdin)

	if store != nil && g.GameOver() {
		if err := store.RecordGame(s.result(settings.MaxDepth, time.Since(start))); err != nil {
			log.Printf("Warning: could not record game: %v", err)
		}
		if stats, err := store.LoadStats(); err == nil {
			log.Printf("Games: %d, won %d, lost %d, drawn %d (%.0f%%)",
				stats.GamesPlayed, stats.Wins, stats.Losses, stats.Draws, stats.GetWinRate())
		}
	}
}

// loadSettings reads stored settings and applies the flags given on the
// command line on top of them.
func loadSettings(store *storage.Storage) (*storage.Settings, error) {
	settings := storage.DefaultSettings()
	if store != nil {
		loaded, err := store.LoadSettings()
		if err != nil {
			log.Printf("Warning: %v (using defaults)", err)
		} else {
			settings = loaded
		}
	}

	var flagErr error
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "depth":
			settings.MaxDepth = *depth
		case "hash":
			settings.HashMB = *hashMB
		case "lazy":
			settings.LazyLegality = *lazy
		case "side":
			switch *side {
			case "light", "white", "w":
				settings.PlayerSide = storage.SideLight
			case "dark", "black", "b":
				settings.PlayerSide = storage.SideDark
			default:
				flagErr = errors.Errorf("unknown side %q", *side)
			}
		}
	})
	if flagErr != nil {
		return nil, flagErr
	}

	// Difficulty wins over -depth and stored depth
	if *difficulty != "" {
		d, err := engine.ParseDifficulty(*difficulty)
		if err != nil {
			return nil, err
		}
		settings.MaxDepth = engine.DifficultySettings[d]
	}
	return settings, nil
}
