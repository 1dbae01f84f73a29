package app

import (
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charlievieth/fastwalk"
	"github.com/fsnotify/fsnotify"

	"github.com/justyntemme/photominer/internal/debug"
	"github.com/justyntemme/photominer/internal/scan"
)

// DirectoryWatcher watches lookup directories and reports when pictures
// were added, removed or changed
type DirectoryWatcher struct {
	watcher    *fsnotify.Watcher
	mu         sync.Mutex
	watching   map[string]bool // Currently watched paths
	notify     chan string     // Directories with settled changes
	done       chan struct{}
	closeOnce  sync.Once
	debounceMs int
}

// NewDirectoryWatcher creates a watcher that reports a directory once no
// event arrived for debounceMs
func NewDirectoryWatcher(debounceMs int) (*DirectoryWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if debounceMs <= 0 {
		debounceMs = 500
	}

	dw := &DirectoryWatcher{
		watcher:    w,
		watching:   make(map[string]bool),
		notify:     make(chan string, 10),
		done:       make(chan struct{}),
		debounceMs: debounceMs,
	}

	go dw.run()
	return dw, nil
}

// relevant reports whether an event can change the scan result
func relevant(event fsnotify.Event, isWatchedDir bool) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) &&
		!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Write) {
		return false
	}
	if strings.HasPrefix(filepath.Base(event.Name), ".") {
		return false
	}
	// A new subdirectory may hold pictures; any other file must be one
	return isWatchedDir || scan.IsImage(event.Name) || event.Has(fsnotify.Create)
}

func (dw *DirectoryWatcher) run() {
	lastEvent := make(map[string]time.Time)
	ticker := time.NewTicker(time.Duration(dw.debounceMs) * time.Millisecond / 2)
	defer ticker.Stop()

	for {
		select {
		case <-dw.done:
			return

		case event, ok := <-dw.watcher.Events:
			if !ok {
				return
			}
			changedPath := event.Name
			parentDir := filepath.Dir(changedPath)

			dw.mu.Lock()
			switch {
			case dw.watching[changedPath] && relevant(event, true):
				// A watched directory itself was removed or renamed
				lastEvent[changedPath] = time.Now()
				debug.Log(debug.APP, "FSNotify event: %s on watched dir %s", event.Op, changedPath)
			case dw.watching[parentDir] && relevant(event, false):
				lastEvent[parentDir] = time.Now()
				debug.Log(debug.APP, "FSNotify event: %s on %s", event.Op, changedPath)
			}
			dw.mu.Unlock()

		case err, ok := <-dw.watcher.Errors:
			if !ok {
				return
			}
			debug.Log(debug.APP, "FSNotify error: %v", err)

		case <-ticker.C:
			now := time.Now()
			debounce := time.Duration(dw.debounceMs) * time.Millisecond
			for dir, last := range lastEvent {
				if now.Sub(last) < debounce {
					continue
				}
				select {
				case dw.notify <- dir:
					debug.Log(debug.APP, "Directory change notification: %s", dir)
				default:
					// A rescan is already queued
				}
				delete(lastEvent, dir)
			}
		}
	}
}

// Watch adds a single directory to the watch list
func (dw *DirectoryWatcher) Watch(path string) error {
	dw.mu.Lock()
	defer dw.mu.Unlock()

	if dw.watching[path] {
		return nil
	}
	if err := dw.watcher.Add(path); err != nil {
		return err
	}
	dw.watching[path] = true
	debug.Log(debug.APP, "Now watching directory: %s", path)
	return nil
}

// WatchTree watches root and every non-hidden directory below it.
// Directories that cannot be watched are skipped.
func (dw *DirectoryWatcher) WatchTree(root string) error {
	root = filepath.Clean(root)
	if err := dw.Watch(root); err != nil {
		return err
	}
	conf := fastwalk.Config{Follow: false}
	return fastwalk.Walk(&conf, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || path == root || !d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			return fastwalk.SkipDir
		}
		if err := dw.Watch(path); err != nil {
			debug.Log(debug.APP, "Cannot watch %s: %v", path, err)
		}
		return nil
	})
}

// Watching reports whether path is on the watch list
func (dw *DirectoryWatcher) Watching(path string) bool {
	dw.mu.Lock()
	defer dw.mu.Unlock()
	return dw.watching[path]
}

// UnwatchAll removes all directories from the watch list
func (dw *DirectoryWatcher) UnwatchAll() {
	dw.mu.Lock()
	defer dw.mu.Unlock()

	for path := range dw.watching {
		if err := dw.watcher.Remove(path); err != nil {
			// Path may already be gone
			debug.Log(debug.APP, "Error unwatching %s: %v", path, err)
		}
	}
	dw.watching = make(map[string]bool)
}

// Notify returns the channel that receives directory change notifications
func (dw *DirectoryWatcher) Notify() <-chan string {
	return dw.notify
}

// Close shuts down the watcher
func (dw *DirectoryWatcher) Close() error {
	var err error
	dw.closeOnce.Do(func() {
		close(dw.done)
		err = dw.watcher.Close()
	})
	return err
}
