package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"hotel_store/internal/adapters/watcher"
)

type recorder struct{ ids chan string }

func (r *recorder) Invalidate(_ context.Context, id string) { r.ids <- id }

func waitFor(t *testing.T, ids <-chan string, want string) {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case id := <-ids:
			if id == want {
				return
			}
		case <-deadline:
			t.Fatalf("no invalidation for %s", want)
		}
	}
}

func TestWatcher_InvalidatesEditedUnits(t *testing.T) {
	dir := t.TempDir()
	rec := &recorder{ids: make(chan string, 64)}
	w, err := watcher.New(dir, rec)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	// foreign files are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "h-1.json"), []byte(`{"id":"h-1"}`), 0o644))
	waitFor(t, rec.ids, "h-1")

	require.NoError(t, os.Remove(filepath.Join(dir, "h-1.json")))
	waitFor(t, rec.ids, "h-1")
}

func TestWatcher_MissingDir(t *testing.T) {
	_, err := watcher.New(filepath.Join(t.TempDir(), "nope"), &recorder{})
	require.Error(t, err)
}
