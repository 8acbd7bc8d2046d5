package watcher_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"actfilter/watcher"
)

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.conf")
	require.NoError(t, os.WriteFile(path, []byte("channel #x none\n"), 0o644))

	reloaded := make(chan struct{}, 1)
	w, err := watcher.New(path, func() error {
		select {
		case reloaded <- struct{}{}:
		default:
		}
		return nil
	}, zap.NewNop())
	require.NoError(t, err)
	defer w.Close()
	w.Start()

	require.NoError(t, os.WriteFile(path, []byte("channel #y none\n"), 0o644))

	select {
	case <-reloaded:
	case <-time.After(2 * time.Second):
		t.Fatal("reload was not triggered by a rule file write")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.conf")
	require.NoError(t, os.WriteFile(path, []byte("channel #x none\n"), 0o644))

	reloaded := make(chan struct{}, 1)
	w, err := watcher.New(path, func() error {
		reloaded <- struct{}{}
		return nil
	}, zap.NewNop())
	require.NoError(t, err)
	defer w.Close()
	w.Start()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644))

	select {
	case <-reloaded:
		t.Fatal("unrelated file triggered a reload")
	case <-time.After(300 * time.Millisecond):
	}
}
