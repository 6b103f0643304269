package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"layoutlint/internal/config"
)

var errBatchSeen = errors.New("batch seen")

func TestWatcherBatches(t *testing.T) {
	root := writeTree(t, map[string]string{
		"src/a.ts":                "",
		"node_modules/m/index.js": "",
	})
	w, err := NewWatcher([]string{root}, config.Default(), 20*time.Millisecond)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	batches := make(chan []string, 4)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(_ context.Context, files []string) error {
			batches <- files
			return errBatchSeen
		})
	}()

	// watcher регистрируется синхронно в NewWatcher
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "node_modules", "m", "index.js"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "a.ts"), []byte("const a = 1\n"), 0o644))

	select {
	case files := <-batches:
		require.Equal(t, []string{filepath.Join(root, "src", "a.ts")}, files)
	case <-ctx.Done():
		t.Fatalf("no batch delivered")
	}
	require.ErrorIs(t, <-done, errBatchSeen)
}

func TestWatcherStopsOnCancel(t *testing.T) {
	root := writeTree(t, map[string]string{"a.js": ""})
	w, err := NewWatcher([]string{root}, config.Default(), 0)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, w.Run(ctx, func(context.Context, []string) error {
		t.Fatalf("unexpected batch")
		return nil
	}))
}
