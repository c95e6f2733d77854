// Package storage persists the game in progress, preferences and game
// statistics in a BadgerDB database.
package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const appName = "gomokuplay"

// GetDataDir returns the application data directory, creating it if needed.
// It follows the XDG base directory conventions, e.g. ~/.local/share/gomokuplay on
// Linux and ~/Library/Application Support/gomokuplay on macOS.
func GetDataDir() (string, error) {
	dataDir := filepath.Join(xdg.DataHome, appName)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", fmt.Errorf("create data dir: %w", err)
	}
	return dataDir, nil
}

// GetDatabaseDir returns the directory holding the BadgerDB files under
// dataDir. An empty dataDir means GetDataDir.
func GetDatabaseDir(dataDir string) (string, error) {
	if dataDir == "" {
		var err error
		if dataDir, err = GetDataDir(); err != nil {
			return "", err
		}
	}

	dbDir := filepath.Join(dataDir, "db")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return "", fmt.Errorf("create database dir: %w", err)
	}
	return dbDir, nil
}
