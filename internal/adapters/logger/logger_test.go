package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderFiltersByLevel(t *testing.T) {
	r := NewRecorder()
	r.Info("loaded", "count", 3)
	r.Warn("skipped", "word", "123")
	r.Info("done")

	assert.Len(t, r.Entries(""), 3)
	infos := r.Entries("info")
	require.Len(t, infos, 2)
	assert.Equal(t, "loaded", infos[0].Msg)
	assert.Equal(t, []interface{}{"count", 3}, infos[0].KeysAndValues)
	assert.Len(t, r.Entries("warn"), 1)
	assert.NoError(t, r.Close())
}

func TestNopLogger(t *testing.T) {
	n := NewNopLogger()
	n.Debug("x")
	n.Error("y", "k", "v")
	assert.NoError(t, n.Close())
}

func TestWriterLoggerCloseKeepsOutputOpen(t *testing.T) {
	out, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer out.Close()

	lg, err := NewWriterLogger(out, true)
	require.NoError(t, err)
	lg.Info("hello", "k", "v")
	require.NoError(t, lg.Close())

	_, err = out.WriteString("after close\n")
	assert.NoError(t, err)
}

func TestFileLoggerWritesToPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")

	lg, err := NewFileLogger(path, false)
	require.NoError(t, err)
	lg.Info("hello")
	require.NoError(t, lg.Close())

	assert.FileExists(t, path)
}
