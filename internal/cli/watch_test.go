package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/roach88/lels/internal/analysis"
)

func startWatcher(t *testing.T, paths ...string) (<-chan FileReport, context.CancelFunc, <-chan error) {
	t.Helper()
	w, err := NewWatcher(paths, analysis.Options{}, 0, zaptest.NewLogger(t))
	require.NoError(t, err)
	w.debounce = 20 * time.Millisecond

	reports := make(chan FileReport, 16)
	w.report = func(r FileReport) { reports <- r }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return reports, cancel, done
}

func nextReport(t *testing.T, reports <-chan FileReport) FileReport {
	t.Helper()
	select {
	case r := <-reports:
		return r
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a report")
		return FileReport{}
	}
}

func TestWatcher_RechecksOnWrite(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "menu.le")
	require.NoError(t, os.WriteFile(doc, []byte("templates:\n*a person* is hungry.\nknowledge base:\nfred is hungry.\n"), 0o644))

	reports, _, _ := startWatcher(t, dir)

	initial := nextReport(t, reports)
	assert.Equal(t, doc, initial.Path)
	assert.Empty(t, initial.Diagnostics)

	require.NoError(t, os.WriteFile(doc, []byte("templates:\n*a person* is hungry.\nknowledge base:\nfred is thirsty.\n"), 0o644))

	changed := nextReport(t, reports)
	assert.Equal(t, doc, changed.Path)
	require.Len(t, changed.Diagnostics, 1)
	assert.Equal(t, "W101", changed.Diagnostics[0].Code)
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	reports, _, _ := startWatcher(t, dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("fred is hungry.\n"), 0o644))
	doc := filepath.Join(dir, "new.le")
	require.NoError(t, os.WriteFile(doc, []byte("knowledge base:\nmonday is before tuesday.\n"), 0o644))

	r := nextReport(t, reports)
	assert.Equal(t, doc, r.Path)
	assert.Empty(t, r.Diagnostics)
}

func TestWatcher_WatchesNewSubdirectories(t *testing.T) {
	dir := t.TempDir()
	reports, _, _ := startWatcher(t, dir)

	sub := filepath.Join(dir, "later")
	require.NoError(t, os.Mkdir(sub, 0o755))
	doc := filepath.Join(sub, "late.le")
	require.NoError(t, os.WriteFile(doc, []byte("knowledge base:\nfred is thirsty.\n"), 0o644))

	r := nextReport(t, reports)
	assert.Equal(t, doc, r.Path)
	require.Len(t, r.Diagnostics, 1)
	assert.Equal(t, "W101", r.Diagnostics[0].Code)
}

func TestWatcher_StopsOnCancel(t *testing.T) {
	dir := t.TempDir()
	_, cancel, done := startWatcher(t, dir)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcher_Tracked(t *testing.T) {
	dir := t.TempDir()
	named := filepath.Join(dir, "named.txt")
	require.NoError(t, os.WriteFile(named, nil, 0o644))
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))

	w, err := NewWatcher([]string{named, sub}, analysis.Options{}, 0, nil)
	require.NoError(t, err)
	defer w.watcher.Close()

	assert.True(t, w.tracked(named))
	assert.True(t, w.tracked(filepath.Join(sub, "a.le")))
	assert.False(t, w.tracked(filepath.Join(sub, "a.txt")))
	assert.False(t, w.tracked(filepath.Join(dir, "other.le")))
}

func TestNewWatcher_MissingPath(t *testing.T) {
	_, err := NewWatcher([]string{filepath.Join(t.TempDir(), "absent")}, analysis.Options{}, 0, nil)
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, ErrCodeNotFound, loadErr.Code)
}
