package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/storybook/internal/app"
	"github.com/abhisek/storybook/internal/audio"
	"github.com/abhisek/storybook/internal/config"
	"github.com/abhisek/storybook/internal/content"
	"github.com/abhisek/storybook/internal/logging"
	"github.com/abhisek/storybook/internal/slides"
	"github.com/abhisek/storybook/internal/store"
)

// runApp opens the store, builds dependencies, and launches the TUI.
// preview skips the splash. With watch set, the content directory is
// watched and the open page reloads when its file changes.
func runApp(cmd *cobra.Command, preview, watch bool) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := openLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	st, err := openReadingStore(cfg, logger)
	if err != nil {
		return err
	}
	defer st.Close()

	loader, fsys, err := content.Open(cfg.ContentDir)
	if err != nil {
		return err
	}
	manifest, err := content.LoadManifest(fsys, slides.Count)
	if err != nil {
		return err
	}

	player := openAudio(cfg, logger)
	defer player.Close()

	opts := app.Options{
		KV:         st.KVRepo(),
		Events:     st.EventRepo(),
		Loader:     loader,
		Manifest:   manifest,
		Audio:      player,
		Logger:     logger,
		SessionID:  uuid.New().String(),
		SkipSplash: preview,
	}

	if watch {
		if cfg.ContentDir == "" {
			return fmt.Errorf("--watch needs --content")
		}
		w, err := content.NewWatcher(cfg.ContentDir, logger.Named("watcher"))
		if err != nil {
			return fmt.Errorf("watch content: %w", err)
		}
		defer w.Close()
		opts.Watcher = w
	}

	logger.Info("storybook starting",
		zap.String("session", opts.SessionID),
		zap.String("title", manifest.Title),
		zap.String("content", cfg.ContentDir),
		zap.Bool("mute", cfg.Mute),
	)
	return app.Run(ctx, opts)
}

func openLogger(cfg config.Config) (*zap.Logger, error) {
	path, err := cfg.ResolveLogFile()
	if err != nil {
		return nil, fmt.Errorf("resolve log file: %w", err)
	}
	return logging.New(path, cfg.LogLevel)
}

func openStore(cfg config.Config) (*store.Store, error) {
	dbPath, err := cfg.ResolveDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// openReadingStore opens the configured database. When that fails the book
// still opens on an in-memory store, so nothing is saved past this run.
func openReadingStore(cfg config.Config, logger *zap.Logger) (*store.Store, error) {
	st, err := openStore(cfg)
	if err == nil {
		return st, nil
	}
	logger.Warn("progress storage unavailable, using memory", zap.Error(err))
	fmt.Fprintln(os.Stderr, "Progress storage unavailable:", err)
	fmt.Fprintln(os.Stderr, "Reading progress will not be saved.")

	st, merr := store.OpenMemory()
	if merr != nil {
		return nil, fmt.Errorf("open memory store: %w", merr)
	}
	return st, nil
}

// openAudio picks the sound player. Narration files default to the audio/
// directory of the content pack.
func openAudio(cfg config.Config, logger *zap.Logger) audio.Player {
	if cfg.Mute {
		return audio.Nop{}
	}
	dir := cfg.AudioDir
	if dir == "" && cfg.ContentDir != "" {
		dir = filepath.Join(cfg.ContentDir, "audio")
	}
	return audio.NewExecPlayer(dir, cfg.AudioPlayer, logger.Named("audio"))
}
