package cmd

import (
	"fmt"
	"io"
	"os"

	"screenmon/internal/config"
	"screenmon/internal/logging"
)

// buildLogger constructs the process logger from config. The console
// handler is built against stdout itself so format "auto" can detect a
// terminal; the log file, when configured, gets its own JSON sink with a
// size-based rotation check at startup. The returned closer owns the
// file handle.
func buildLogger(cfg *config.Config) (*logging.Logger, io.Closer, error) {
	lcfg := logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stdout,
	}

	if cfg.Log.File == "" {
		return logging.New(lcfg), nil, nil
	}

	f, err := logging.OpenFile(cfg.Log.File, cfg.Log.MaxSizeMB)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log sink: %w", err)
	}
	return logging.NewWithFile(lcfg, os.Stdout, f), f, nil
}
