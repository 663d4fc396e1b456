package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// startWatcher runs a watcher over dir with a short debounce and returns a
// channel that receives one value per rebuild.
func startWatcher(t *testing.T, dir string) chan struct{} {
	t.Helper()
	fired := make(chan struct{}, 16)
	w, err := New([]string{dir}, 50*time.Millisecond, func() { fired <- struct{}{} })
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(w.Stop)
	return fired
}

func waitFired(t *testing.T, fired chan struct{}) {
	t.Helper()
	select {
	case <-fired:
	case <-time.After(3 * time.Second):
		t.Fatal("no rebuild fired within 3s")
	}
}

func TestWatcher_FiresOnWrite(t *testing.T) {
	dir := t.TempDir()
	fired := startWatcher(t, dir)

	if err := os.WriteFile(filepath.Join(dir, "item.md"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	waitFired(t, fired)
}

func TestWatcher_CoalescesBursts(t *testing.T) {
	dir := t.TempDir()
	fired := startWatcher(t, dir)

	for i := 0; i < 5; i++ {
		name := filepath.Join(dir, "item.md")
		if err := os.WriteFile(name, []byte{byte('a' + i)}, 0o644); err != nil {
			t.Fatalf("write %d: %v", i, err)
		}
		time.Sleep(5 * time.Millisecond)
	}

	waitFired(t, fired)

	// The burst settled once; no trailing rebuilds should arrive.
	select {
	case <-fired:
		t.Error("burst fired more than one rebuild")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_PicksUpNewSubdirectory(t *testing.T) {
	dir := t.TempDir()
	fired := startWatcher(t, dir)

	sub := filepath.Join(dir, "rugs")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	waitFired(t, fired) // the mkdir itself settles first

	if err := os.WriteFile(filepath.Join(sub, "new.md"), []byte("y"), 0o644); err != nil {
		t.Fatalf("write in subdir: %v", err)
	}
	waitFired(t, fired)
}

func TestWatcher_IgnoresHiddenFiles(t *testing.T) {
	dir := t.TempDir()
	fired := startWatcher(t, dir)

	if err := os.WriteFile(filepath.Join(dir, ".item.md.swp"), []byte("z"), 0o644); err != nil {
		t.Fatalf("write hidden: %v", err)
	}
	select {
	case <-fired:
		t.Error("hidden file fired a rebuild")
	case <-time.After(300 * time.Millisecond):
	}
}
