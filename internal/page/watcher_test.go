package page

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatcherReportsEdits(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.md")
	require.NoError(t, os.WriteFile(path, []byte("## One\n"), 0644))

	w, err := NewWatcher(path, nil)
	require.NoError(t, err)
	w.debounce = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)
	defer w.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.md"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(path, []byte("## One\n## Two\n"), 0644))

	select {
	case <-w.Changes():
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
}
