package maplib

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a level file whenever it changes on disk. Fresh maps
// arrive on Maps; parse and watch failures arrive on Errors.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
	Maps    chan *TileMap
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

// loadByExt picks the parser from the file extension, defaulting to YAML
func loadByExt(path string) (*TileMap, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return LoadJSON(path)
	}
	return LoadLevel(path)
}

// WatchLevel starts watching the directory containing path and delivers a
// reparsed map after each write to the file, debounced.
func WatchLevel(path string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		_ = fw.Close()
		return nil, err
	}

	w := &Watcher{
		watcher: fw,
		path:    filepath.Clean(path),
		Maps:    make(chan *TileMap, 1),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Close stops the watcher. Maps and Errors stay open but go quiet; the
// delivery goroutine may still be mid-send when Close returns.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	var last time.Time
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			now := time.Now()
			if now.Sub(last) < 100*time.Millisecond {
				continue
			}
			last = now

			tm, err := loadByExt(w.path)
			if err != nil {
				select {
				case w.Errors <- err:
				default:
				}
				continue
			}
			// Drop a stale pending map so the newest always wins
			select {
			case <-w.Maps:
			default:
			}
			select {
			case w.Maps <- tm:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}
