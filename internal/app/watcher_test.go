package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestWatcher(t *testing.T) *DirectoryWatcher {
	t.Helper()
	w, err := NewDirectoryWatcher(50)
	if err != nil {
		t.Skipf("fsnotify unavailable: %v", err)
	}
	t.Cleanup(func() { w.Close() })
	return w
}

func waitNotify(t *testing.T, w *DirectoryWatcher, want string) {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case dir := <-w.Notify():
			if dir == want {
				return
			}
		case <-timeout:
			t.Fatalf("no change notification for %s", want)
		}
	}
}

func TestWatchTree(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "2019", "summer")
	hidden := filepath.Join(root, ".thumbnails")
	for _, d := range []string{sub, hidden} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			t.Fatal(err)
		}
	}

	w := newTestWatcher(t)
	if err := w.WatchTree(root); err != nil {
		t.Fatal(err)
	}

	for _, d := range []string{root, filepath.Join(root, "2019"), sub} {
		if !w.Watching(d) {
			t.Errorf("expected %s to be watched", d)
		}
	}
	if w.Watching(hidden) {
		t.Error("hidden directories must not be watched")
	}

	w.UnwatchAll()
	if w.Watching(root) {
		t.Error("UnwatchAll left root watched")
	}
}

func TestWatcherNotifiesOnNewPicture(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "album")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	w := newTestWatcher(t)
	if err := w.WatchTree(root); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(filepath.Join(sub, "IMG_0001.jpg"), []byte("jpeg"), 0o644); err != nil {
		t.Fatal(err)
	}
	waitNotify(t, w, sub)
}

func TestWatcherCloseTwice(t *testing.T) {
	w, err := NewDirectoryWatcher(0)
	if err != nil {
		t.Skipf("fsnotify unavailable: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close returned %v", err)
	}
}
