package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func noEnv(string) string { return "" }

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Run("no path", func(t *testing.T) {
		cfg, err := load("", false, noEnv)
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("optional file missing", func(t *testing.T) {
		cfg, err := load(filepath.Join(t.TempDir(), "config.yaml"), true, noEnv)
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("required file missing", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		_, err := load(path, false, noEnv)
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
		assert.Contains(t, err.Error(), path)
	})
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", `
prompt: "cmd> "
hint_color: "#888888"
validation_pattern: "[a-z -]"
single_row: true
hints:
  - start-server
  - stop-server
hints_file: hints.txt
analytics_file: /tmp/analytics.db
`)

	cfg, err := load(path, false, noEnv)
	require.NoError(t, err)

	assert.Equal(t, "cmd> ", cfg.Prompt)
	assert.Equal(t, "#888888", cfg.HintColor)
	assert.Equal(t, "[a-z -]", cfg.ValidationPattern)
	assert.True(t, cfg.SingleRow)
	assert.Equal(t, []string{"start-server", "stop-server"}, cfg.Hints)
	assert.Equal(t, filepath.Join(dir, "hints.txt"), cfg.HintsFile)
	assert.Equal(t, "/tmp/analytics.db", cfg.AnalyticsFile)
	// untouched keys keep their defaults
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yaml", "hints: [unterminated")

	_, err := load(path, true, noEnv)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
	assert.Contains(t, err.Error(), path)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yaml", "prompt: \"file> \"\nhint_color: \"4\"\n")
	env := map[string]string{
		EnvPrompt:   "env> ",
		EnvLogLevel: "debug",
	}

	cfg, err := load(path, false, func(key string) string { return env[key] })
	require.NoError(t, err)
	assert.Equal(t, "env> ", cfg.Prompt)
	assert.Equal(t, "4", cfg.HintColor)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestCorpus(t *testing.T) {
	dir := t.TempDir()
	hintsFile := writeFile(t, dir, "hints.txt", "# deployment\nstart-server\n\n  \nstop-server  \n  # indented comment\nstatus\r\n")

	tests := []struct {
		name     string
		cfg      Config
		expected []string
	}{
		{
			name:     "inline only",
			cfg:      Config{Hints: []string{"a", " ", "b"}},
			expected: []string{"a", "b"},
		},
		{
			name:     "file only",
			cfg:      Config{HintsFile: hintsFile},
			expected: []string{"start-server", "stop-server", "status"},
		},
		{
			name:     "inline first, duplicates kept",
			cfg:      Config{Hints: []string{"status"}, HintsFile: hintsFile},
			expected: []string{"status", "start-server", "stop-server", "status"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			corpus, err := tt.cfg.Corpus()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, corpus)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := Config{HintsFile: filepath.Join(dir, "missing.txt")}.Corpus()
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected zapcore.Level
		wantErr  bool
	}{
		{"debug", zapcore.DebugLevel, false},
		{"info", zapcore.InfoLevel, false},
		{"warn", zapcore.WarnLevel, false},
		{"error", zapcore.ErrorLevel, false},
		{"loud", zapcore.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			level, err := Config{LogLevel: tt.level}.Level()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expected, level)
		})
	}
}
