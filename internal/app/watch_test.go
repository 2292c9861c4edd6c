package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWatcher(t *testing.T) {
	w := NewWatcher("appi.yaml", 0)
	assert.Equal(t, DefaultDebounceInterval, w.debounceInterval)
	assert.True(t, filepath.IsAbs(w.path))
}

func TestWatcher_DebouncesChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "appi.yaml")
	require.NoError(t, os.WriteFile(path, []byte("components: []\n"), 0644))

	w := NewWatcher(path, 50*time.Millisecond)
	changes := make(chan struct{}, 1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx, changes))
	defer w.Stop()

	// other files in the directory are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1\n"), 0644))

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte("components: []\n"), 0644))
	}

	select {
	case <-changes:
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	select {
	case <-changes:
		t.Fatal("burst reported more than once")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "appi.yaml")
	require.NoError(t, os.WriteFile(path, []byte("components: []\n"), 0644))

	w := NewWatcher(path, 0)
	require.NoError(t, w.Start(context.Background(), make(chan struct{}, 1)))
	require.NoError(t, w.Start(context.Background(), make(chan struct{}, 1)))

	w.Stop()
	w.Stop()
}

func TestWatcher_MissingDirectory(t *testing.T) {
	w := NewWatcher(filepath.Join(t.TempDir(), "missing", "appi.yaml"), 0)
	assert.Error(t, w.Start(context.Background(), make(chan struct{}, 1)))
}
