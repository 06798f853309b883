package workspace

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileWatcherPicksUpChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.conf")
	writeFile(t, path, "a: 1")

	ws := New(dir)
	w := NewFileWatcher(ws)
	w.pollInterval = 10 * time.Millisecond
	w.Start()
	defer w.Stop()

	waitFor(t, func() bool { return ws.Lookup(path) != nil })

	writeFile(t, path, "a: 2")
	// Coarse filesystem timestamps can hide a quick rewrite, so push the
	// modification time forward.
	future := time.Now().Add(10 * time.Second)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatal(err)
	}

	waitFor(t, func() bool {
		doc := ws.Lookup(path)
		return doc != nil && doc.Text() == "a: 2"
	})
}

func TestFileWatcherDropsDeletedFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.conf")
	writeFile(t, path, "a: 1")

	ws := New(dir)
	w := NewFileWatcher(ws)
	w.pollInterval = 10 * time.Millisecond
	w.Start()
	defer w.Stop()

	waitFor(t, func() bool { return ws.Lookup(path) != nil })

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}

	waitFor(t, func() bool { return ws.Lookup(path) == nil })
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached before deadline")
}
