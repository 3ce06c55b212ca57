package discovery

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

// Watcher monitors the fixture tree and reports changed test binaries.
// Events for the same path within the debounce window collapse into one.
type Watcher struct {
	watcher    *fsnotify.Watcher
	callback   func(path string)
	debounce   time.Duration
	lastChange map[string]time.Time
	mu         sync.Mutex
	done       chan struct{}
}

// DefaultDebounce is the minimum time between callbacks for one path.
// Linkers rewrite binaries with several events in quick succession.
const DefaultDebounce = 500 * time.Millisecond

// NewWatcher creates a watcher over the given directories. callback runs
// on the watcher goroutine for every settled change.
func NewWatcher(dirs []string, debounce time.Duration, callback func(path string)) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}

	w := &Watcher{
		watcher:    fsw,
		callback:   callback,
		debounce:   debounce,
		lastChange: make(map[string]time.Time),
		done:       make(chan struct{}),
	}

	for _, dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
		log.Debugf("watching %s", dir)
	}

	return w, nil
}

// Start begins watching for file changes
func (w *Watcher) Start() {
	go w.run()
}

// Stop stops watching for file changes
func (w *Watcher) Stop() {
	close(w.done)
	w.watcher.Close()
}

func (w *Watcher) run() {
	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			// Rebuilt binaries show up as writes, creates or chmods
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Chmod) == 0 {
				continue
			}
			if strings.HasPrefix(filepath.Base(event.Name), ".") {
				continue
			}

			w.mu.Lock()
			last := w.lastChange[event.Name]
			now := time.Now()
			if now.Sub(last) < w.debounce {
				w.mu.Unlock()
				continue
			}
			w.lastChange[event.Name] = now
			w.mu.Unlock()

			log.Debugf("binary changed: %s", event.Name)
			if w.callback != nil {
				w.callback(event.Name)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Debugf("watcher error: %v", err)
		}
	}
}
