// Package config handles loading the hintline configuration file.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the file.
const (
	EnvPrompt    = "HINTLINE_PROMPT"
	EnvHintColor = "HINTLINE_HINT_COLOR"
	EnvLogLevel  = "HINTLINE_LOG_LEVEL"
)

// Config represents the application configuration.
type Config struct {
	Prompt      string `yaml:"prompt"`
	PromptColor string `yaml:"prompt_color,omitempty"`
	HintColor   string `yaml:"hint_color"`

	// ValidationPattern is matched against every typed character.
	ValidationPattern string `yaml:"validation_pattern"`
	SingleRow         bool   `yaml:"single_row"`

	Hints []string `yaml:"hints,omitempty"`
	// HintsFile holds one hint per line. Blank lines and lines starting with
	// '#' are skipped.
	HintsFile string `yaml:"hints_file,omitempty"`

	LogLevel      string `yaml:"log_level"`
	AnalyticsFile string `yaml:"analytics_file,omitempty"`
}

// Default returns a new Config with default values.
func Default() Config {
	return Config{
		Prompt:            "> ",
		HintColor:         "8",
		ValidationPattern: ".*",
		LogLevel:          "info",
	}
}

// Load reads the configuration at path on top of the defaults and applies
// environment overrides. A missing file is not an error when optional is
// true.
func Load(path string, optional bool) (Config, error) {
	return load(path, optional, os.Getenv)
}

func load(path string, optional bool, getenv func(string) string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist) && optional:
		case err != nil:
			return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
			if cfg.HintsFile != "" && !filepath.IsAbs(cfg.HintsFile) {
				cfg.HintsFile = filepath.Join(filepath.Dir(path), cfg.HintsFile)
			}
		}
	}

	cfg.applyEnv(getenv)
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	overrides := map[string]*string{
		EnvPrompt:    &c.Prompt,
		EnvHintColor: &c.HintColor,
		EnvLogLevel:  &c.LogLevel,
	}
	for name, field := range overrides {
		if value := getenv(name); value != "" {
			*field = value
		}
	}
}

// Corpus returns the inline hints followed by the ones from HintsFile, in
// order.
func (c Config) Corpus() ([]string, error) {
	hints := lo.Filter(c.Hints, func(hint string, _ int) bool {
		return strings.TrimSpace(hint) != ""
	})
	if c.HintsFile == "" {
		return hints, nil
	}

	fileHints, err := ReadHintsFile(c.HintsFile)
	if err != nil {
		return nil, err
	}
	return append(hints, fileHints...), nil
}

// ReadHintsFile reads one hint per line, skipping blank lines and comments.
func ReadHintsFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open hints file: %w", err)
	}
	defer file.Close()

	var hints []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		hints = append(hints, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read hints file %s: %w", path, err)
	}
	return hints, nil
}

// Level parses LogLevel.
func (c Config) Level() (zapcore.Level, error) {
	level, err := zap.ParseAtomicLevel(c.LogLevel)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return level.Level(), nil
}
