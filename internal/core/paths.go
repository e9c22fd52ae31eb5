package core

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

type Paths struct {
	HomeDir       string
	ConfigDir     string
	ConfigFile    string
	DataDir       string
	LogFile       string
	AnalyticsFile string
}

var (
	defaultPaths     *Paths
	defaultPathsErr  error
	defaultPathsOnce sync.Once
)

// NewPaths lays out the hintline files under homeDir.
func NewPaths(homeDir string) *Paths {
	configDir := filepath.Join(homeDir, ".config", "hintline")
	dataDir := filepath.Join(homeDir, ".local", "share", "hintline")
	return &Paths{
		HomeDir:       homeDir,
		ConfigDir:     configDir,
		ConfigFile:    filepath.Join(configDir, "config.yaml"),
		DataDir:       dataDir,
		LogFile:       filepath.Join(dataDir, "hintline.log"),
		AnalyticsFile: filepath.Join(dataDir, "analytics.db"),
	}
}

// EnsureDataDir creates the data directory if it doesn't exist.
func (p *Paths) EnsureDataDir() error {
	if err := os.MkdirAll(p.DataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return nil
}

// DefaultPaths returns the paths for the current user, creating the data
// directory on first use.
func DefaultPaths() (*Paths, error) {
	defaultPathsOnce.Do(func() {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			defaultPathsErr = fmt.Errorf("failed to get home directory: %w", err)
			return
		}

		paths := NewPaths(homeDir)
		if err := paths.EnsureDataDir(); err != nil {
			defaultPathsErr = err
			return
		}
		defaultPaths = paths
	})
	return defaultPaths, defaultPathsErr
}
