package server

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/pagewright/pagewright/internal/logging"
)

// dbWatcher watches the database file for writes and fires a handler after a
// debounce window. SQLite in WAL mode touches the -wal and -shm companions,
// so the watch covers the containing directory filtered down to the
// database's file family.
type dbWatcher struct {
	watcher  *fsnotify.Watcher
	dbPath   string
	debounce time.Duration
	handler  func()
	logger   logging.Logger

	mutex sync.Mutex
	timer *time.Timer
}

func newDBWatcher(dbPath string, debounce time.Duration, handler func(), logger logging.Logger) (*dbWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(dbPath)); err != nil {
		watcher.Close()
		return nil, err
	}
	return &dbWatcher{
		watcher:  watcher,
		dbPath:   dbPath,
		debounce: debounce,
		handler:  handler,
		logger:   logger.WithComponent("watcher"),
	}, nil
}

// run consumes filesystem events until the context is cancelled.
func (w *dbWatcher) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.matches(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.schedule()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn(ctx, err, "watch error")
		}
	}
}

// matches accepts the database file and its WAL companions.
func (w *dbWatcher) matches(path string) bool {
	base := filepath.Base(w.dbPath)
	name := filepath.Base(path)
	return name == base || strings.HasPrefix(name, base+"-")
}

// schedule arms the debounce timer, coalescing bursts of writes into one
// handler call.
func (w *dbWatcher) schedule() {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.handler)
}

func (w *dbWatcher) close() error {
	w.mutex.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mutex.Unlock()
	return w.watcher.Close()
}
