package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNotifier_WakesOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "paper.tex")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0o644))

	n, err := NewNotifier(path)
	require.NoError(t, err)
	defer n.Close()

	// unrelated files in the same directory are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "paper.log"), []byte("log"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("b"), 0o644))

	select {
	case <-n.Wake():
	case <-time.After(5 * time.Second):
		t.Fatal("no wake-up after writing the watched file")
	}
}
