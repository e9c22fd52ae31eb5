package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPaths(t *testing.T) {
	paths := NewPaths("/home/user")

	assert.Equal(t, "/home/user", paths.HomeDir)
	assert.Equal(t, filepath.Join("/home/user", ".config", "hintline", "config.yaml"), paths.ConfigFile)
	assert.Equal(t, filepath.Join("/home/user", ".local", "share", "hintline"), paths.DataDir)
	assert.Equal(t, filepath.Join(paths.DataDir, "hintline.log"), paths.LogFile)
	assert.Equal(t, filepath.Join(paths.DataDir, "analytics.db"), paths.AnalyticsFile)
}

func TestEnsureDataDir(t *testing.T) {
	paths := NewPaths(t.TempDir())
	require.NoError(t, paths.EnsureDataDir())

	info, err := os.Stat(paths.DataDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// idempotent
	require.NoError(t, paths.EnsureDataDir())
}
