package templates

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounce = 100 * time.Millisecond

// Watcher reports the names of components whose html files changed under a
// template directory.
type Watcher struct {
	Dir     string
	Changes <-chan string

	changes chan string
	quit    chan struct{}
	done    chan struct{}
	watcher *fsnotify.Watcher
}

// NewWatcher creates a watcher for dir. Call Start to begin.
func NewWatcher(dir string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	ch := make(chan string, 16)
	return &Watcher{
		Dir:     dir,
		Changes: ch,
		changes: ch,
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
		watcher: fw,
	}, nil
}

// Start watches dir and every component directory directly under it.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(w.Dir); err != nil {
		return err
	}
	entries, err := os.ReadDir(w.Dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() {
			if err := w.watcher.Add(filepath.Join(w.Dir, e.Name())); err != nil {
				return err
			}
		}
	}
	go w.loop()
	return nil
}

// Stop closes the watcher and the Changes channel.
func (w *Watcher) Stop() {
	close(w.quit)
	w.watcher.Close()
	<-w.done
	close(w.changes)
}

func (w *Watcher) loop() {
	defer close(w.done)

	pending := make(map[string]time.Time)
	ticker := time.NewTicker(debounce)
	defer ticker.Stop()

	for {
		select {
		case <-w.quit:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Create) {
				// New component directories need their own watch.
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() && filepath.Dir(event.Name) == filepath.Clean(w.Dir) {
					_ = w.watcher.Add(event.Name)
					continue
				}
			}
			name, ok := w.component(event.Name)
			if !ok {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				pending[name] = time.Now()
			}

		case now := <-ticker.C:
			for name, t := range pending {
				if now.Sub(t) < debounce {
					continue
				}
				delete(pending, name)
				select {
				case w.changes <- name:
				case <-w.quit:
					return
				}
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

// component maps <dir>/<name>/<file>.html to name.
func (w *Watcher) component(file string) (string, bool) {
	if !strings.HasSuffix(file, ".html") {
		return "", false
	}
	rel, err := filepath.Rel(w.Dir, file)
	if err != nil {
		return "", false
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	if len(parts) != 2 {
		return "", false
	}
	return parts[0], true
}
