package alert

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterPath(t *testing.T) {
	t.Parallel()
	w := NewWriter("/mnt/share", "192.168.1.20")
	assert.Equal(t, filepath.Join("/mnt/share", "192.168.1.20_VISUAL_HISTORY.log"), w.Path())
}

func TestAppendFormatsRecord(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	w := NewWriter(dir, "10.0.0.7")
	w.now = func() time.Time {
		return time.Date(2026, 3, 14, 9, 26, 53, 0, time.Local)
	}

	require.NoError(t, w.Append("host state anomalous, starting automatic remediation"))

	data, err := os.ReadFile(w.Path())
	require.NoError(t, err)
	assert.Equal(t,
		"[2026-03-14 09:26:53] - ADDR: 10.0.0.7 - host state anomalous, starting automatic remediation\n",
		string(data))
}

func TestAppendIsAppendOnly(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	w := NewWriter(dir, "10.0.0.7")

	require.NoError(t, w.Append("first"))
	require.NoError(t, w.Append("second"))

	data, err := os.ReadFile(w.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "first")
	assert.Contains(t, string(data), "second")
	assert.Less(t,
		strings.Index(string(data), "first"),
		strings.Index(string(data), "second"),
		"records keep arrival order")
}

func TestAppendMissingDirectory(t *testing.T) {
	t.Parallel()
	w := NewWriter(filepath.Join(t.TempDir(), "no-such-subdir"), "10.0.0.7")
	assert.Error(t, w.Append("anything"))
}
