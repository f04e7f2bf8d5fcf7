// Package alert appends remediation events to a history log shared by
// every monitored host. Each host writes its own file, named by its
// address, inside a common (typically network-mounted) directory.
// Append-only single-line writes are the only coordination between hosts.
package alert

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const fileSuffix = "_VISUAL_HISTORY.log"

// Writer appends timestamped records for one host.
type Writer struct {
	path string
	addr string
	now  func() time.Time
}

// NewWriter creates a writer for the host address under the share directory.
func NewWriter(sharePath, addr string) *Writer {
	return &Writer{
		path: filepath.Join(sharePath, addr+fileSuffix),
		addr: addr,
		now:  time.Now,
	}
}

// Path returns the full path of this host's history file.
func (w *Writer) Path() string {
	return w.path
}

// Append writes a single timestamped record. The file is opened and closed
// per record so a stalled share never holds a descriptor across loop
// iterations.
func (w *Writer) Append(message string) error {
	line := fmt.Sprintf("[%s] - ADDR: %s - %s\n",
		w.now().Format("2006-01-02 15:04:05"), w.addr, message)

	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening alert log: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("appending alert record: %w", err)
	}
	return nil
}
