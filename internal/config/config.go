package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Config holds runtime settings for the storybook. Every field can be set
// from the environment; CLI flags take priority over the environment.
type Config struct {
	// DBPath is the SQLite file holding progress, answers and events.
	DBPath string `env:"STORYBOOK_DB"`

	// ContentDir overrides the embedded story pack with a directory on disk.
	ContentDir string `env:"STORYBOOK_CONTENT_DIR"`

	// AudioDir holds narration files (slideNN.mp3) and win.mp3.
	AudioDir string `env:"STORYBOOK_AUDIO_DIR"`

	// AudioPlayer is the external command used to play sound files.
	// Empty means auto-detect.
	AudioPlayer string `env:"STORYBOOK_AUDIO_PLAYER"`

	// Mute disables every sound.
	Mute bool `env:"STORYBOOK_MUTE" envDefault:"false"`

	// LogFile is where structured logs go. Empty disables logging.
	LogFile string `env:"STORYBOOK_LOG_FILE"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"STORYBOOK_LOG_LEVEL" envDefault:"info"`
}

// Load parses the environment into a Config and fills path defaults.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// ResolveDBPath returns the database path in priority order:
// 1. cfg.DBPath (flag or STORYBOOK_DB)
// 2. $XDG_DATA_HOME/storybook/storybook.db
// 3. ~/.local/share/storybook/storybook.db
// The parent directory is created if missing.
func (c Config) ResolveDBPath() (string, error) {
	if c.DBPath != "" {
		return c.DBPath, EnsureDir(c.DBPath)
	}
	dir, err := dataHome()
	if err != nil {
		return "", err
	}
	p := filepath.Join(dir, "storybook", "storybook.db")
	return p, EnsureDir(p)
}

// ResolveLogFile returns the configured log path, or the default state
// location when LogFile is "default".
func (c Config) ResolveLogFile() (string, error) {
	if c.LogFile != "default" {
		if c.LogFile != "" {
			return c.LogFile, EnsureDir(c.LogFile)
		}
		return "", nil
	}

	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	p := filepath.Join(stateHome, "storybook", "storybook.log")
	return p, EnsureDir(p)
}

func dataHome() (string, error) {
	if d := os.Getenv("XDG_DATA_HOME"); d != "" {
		return d, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".local", "share"), nil
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
