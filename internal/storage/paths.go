// Package storage persists engine settings and game statistics.
package storage

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/pkg/errors"
)

const appName = "chessbot"

// HomeEnv overrides the data directory when set.
const HomeEnv = "CHESSBOT_HOME"

// GetDataDir returns the platform-specific data directory for the application.
// - $CHESSBOT_HOME if set
// - macOS: ~/Library/Application Support/chessbot/
// - Linux: ~/.local/share/chessbot/
// - Windows: %APPDATA%/chessbot/
func GetDataDir() (string, error) {
	var baseDir string

	if home := os.Getenv(HomeEnv); home != "" {
		if err := os.MkdirAll(home, 0755); err != nil {
			return "", errors.Wrapf(err, "create %s", home)
		}
		return home, nil
	}

	switch runtime.GOOS {
	case "darwin":
		// macOS: ~/Library/Application Support/
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		baseDir = filepath.Join(homeDir, "Library", "Application Support")

	case "windows":
		// Windows: %APPDATA%
		baseDir = os.Getenv("APPDATA")
		if baseDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			baseDir = filepath.Join(homeDir, "AppData", "Roaming")
		}

	default:
		// Linux and other Unix-like: ~/.local/share/
		// Check XDG_DATA_HOME first
		baseDir = os.Getenv("XDG_DATA_HOME")
		if baseDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			baseDir = filepath.Join(homeDir, ".local", "share")
		}
	}

	dataDir := filepath.Join(baseDir, appName)

	// Create directory if it doesn't exist
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", errors.Wrap(err, "create data directory")
	}

	return dataDir, nil
}

// GetDatabaseDir returns the directory for storing the BadgerDB database.
func GetDatabaseDir() (string, error) {
	dataDir, err := GetDataDir()
	if err != nil {
		return "", err
	}

	dbDir := filepath.Join(dataDir, "db")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return "", errors.Wrap(err, "create database directory")
	}

	return dbDir, nil
}
