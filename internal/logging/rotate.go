package logging

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultMaxSizeMB is the rotation threshold applied when the config
// does not set one.
const DefaultMaxSizeMB = 5

// OpenFile opens the log file for appending, rotating it first if it has
// grown past maxSizeMB. Rotation is a startup check, not a background
// process: a long-running monitor rotates at most once per restart.
// The previous file is kept as <path>.1, replacing any older backup.
func OpenFile(path string, maxSizeMB int) (*os.File, error) {
	if maxSizeMB <= 0 {
		maxSizeMB = DefaultMaxSizeMB
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}

	if info, err := os.Stat(path); err == nil {
		if info.Size() >= int64(maxSizeMB)*1024*1024 {
			if err := os.Rename(path, path+".1"); err != nil {
				return nil, fmt.Errorf("rotating log file: %w", err)
			}
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, nil
}
