// Package watch provides the filesystem watcher contract the mixer drains
// pattern reload signals from. The watcher's own OS integration is an
// external collaborator (see the purpose & scope non-goals); this package
// is the one concrete wiring of it a runnable build needs.
package watch

import (
	"io/fs"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/robmorgan/lumacue/logger"
)

// Watcher recursively watches a directory and forwards every filesystem
// event as a signal on Signal. It does not attempt to distinguish which
// file changed — the mixer's bulk-reload policy treats any event under
// patterns/ as "reload everything".
type Watcher struct {
	fsw    *fsnotify.Watcher
	Signal chan<- struct{}
	done   chan struct{}
}

// New starts watching dir and every subdirectory beneath it (fsnotify's own
// watch is not recursive, so New walks the tree once at startup and adds
// each directory found), forwarding every event onto signal. Signal should
// be the mixer's ReloadSignal channel.
func New(dir string, signal chan<- struct{}) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return fsw.Add(path)
		}
		return nil
	})
	if walkErr != nil {
		fsw.Close()
		return nil, walkErr
	}

	w := &Watcher{fsw: fsw, Signal: signal, done: make(chan struct{})}
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	log := logger.GetProjectLogger()
	defer close(w.done)

	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			log.WithField("event", event).Debug("pattern directory changed")
			select {
			case w.Signal <- struct{}{}:
			default:
				// Signal channel is already backed up; the mixer will
				// still see at least one pending reload next tick.
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.WithError(err).Warn("pattern directory watch error")
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
