package files

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(20 * time.Millisecond)
	}
	return cond()
}

func TestWatcherReloadsCleanBuffer(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.cpp")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0644))

	r := NewRegistry()
	r.Open(path, "v1")

	w, err := NewWatcher(r, dir)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	// Let the watcher settle before mutating.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("v2"), 0644))

	ok := waitFor(t, 3*time.Second, func() bool {
		f, _ := r.Get(path)
		return f.Content == "v2"
	})
	assert.True(t, ok, "buffer was not reloaded from disk")
}

func TestWatcherKeepsDirtyBuffer(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.cpp")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0644))

	r := NewRegistry()
	r.Open(path, "v1")
	r.Edit(path, "unsaved edits")

	w, err := NewWatcher(r, dir)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("v2"), 0644))
	time.Sleep(500 * time.Millisecond)

	f, _ := r.Get(path)
	assert.Equal(t, "unsaved edits", f.Content)
	assert.True(t, f.Dirty)
}
