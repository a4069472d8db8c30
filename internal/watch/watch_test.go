package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/retro/internal/logging"
)

func startWatcher(t *testing.T, paths []string, debounce time.Duration) *Watcher {
	t.Helper()
	w, err := New(paths, debounce, logging.NewTestLogger().Logger)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	t.Cleanup(w.Stop)
	return w
}

func waitChange(t *testing.T, w *Watcher) Change {
	t.Helper()
	select {
	case c := <-w.Changes():
		return c
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change")
		return Change{}
	}
}

func TestNew_RequiresFiles(t *testing.T) {
	_, err := New([]string{"", ""}, time.Millisecond, nil)
	assert.ErrorIs(t, err, ErrWatcherFailed)
}

func TestWatcher_ReportsWrites(t *testing.T) {
	dir := t.TempDir()
	tasks := filepath.Join(dir, "tasks.txt")
	require.NoError(t, os.WriteFile(tasks, []byte("===== ROCKS =====\n"), 0o600))

	w := startWatcher(t, []string{tasks}, 50*time.Millisecond)

	require.NoError(t, os.WriteFile(tasks, []byte("===== ROCKS =====\n✅ Went well - Ship it\n"), 0o600))

	c := waitChange(t, w)
	abs, err := filepath.Abs(tasks)
	require.NoError(t, err)
	assert.Equal(t, []string{abs}, c.Paths)
	assert.False(t, c.Time.IsZero())
}

func TestWatcher_DebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	tasks := filepath.Join(dir, "tasks.txt")
	cal := filepath.Join(dir, "calendar.txt")
	require.NoError(t, os.WriteFile(tasks, nil, 0o600))
	require.NoError(t, os.WriteFile(cal, nil, 0o600))

	w := startWatcher(t, []string{tasks, cal}, 200*time.Millisecond)

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(tasks, []byte{byte('a' + i)}, 0o600))
		require.NoError(t, os.WriteFile(cal, []byte{byte('a' + i)}, 0o600))
	}

	c := waitChange(t, w)
	assert.Len(t, c.Paths, 2)

	select {
	case extra := <-w.Changes():
		t.Fatalf("unexpected second change: %v", extra.Paths)
	case <-time.After(400 * time.Millisecond):
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	tasks := filepath.Join(dir, "tasks.txt")
	require.NoError(t, os.WriteFile(tasks, nil, 0o600))

	w := startWatcher(t, []string{tasks}, 20*time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600))

	select {
	case c := <-w.Changes():
		t.Fatalf("unexpected change: %v", c.Paths)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	tasks := filepath.Join(dir, "tasks.txt")
	require.NoError(t, os.WriteFile(tasks, nil, 0o600))

	w, err := New([]string{tasks}, time.Millisecond, nil)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))

	w.Stop()
	w.Stop()
}

func TestWatcher_LoggerFromContext(t *testing.T) {
	dir := t.TempDir()
	tasks := filepath.Join(dir, "tasks.txt")
	require.NoError(t, os.WriteFile(tasks, nil, 0o600))

	logs := logging.NewTestLogger()
	w, err := New([]string{tasks}, 20*time.Millisecond, nil)
	require.NoError(t, err)
	require.NoError(t, w.Start(logging.WithLogger(context.Background(), logs.Logger)))
	t.Cleanup(w.Stop)

	require.NoError(t, os.WriteFile(tasks, []byte("x"), 0o600))
	waitChange(t, w)

	assert.Positive(t, logs.FilterMessage("input file event").Len())
}
