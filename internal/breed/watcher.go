package breed

import (
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher triggers Provider.Reload when the breed map file changes on disk.
// It watches the containing directory so editors that replace the file
// (write-to-temp + rename) are still seen.
type Watcher struct {
	watcher  *fsnotify.Watcher
	provider Provider
	path     string
	done     chan struct{}
}

// NewWatcher starts watching path and reloading provider on changes
func NewWatcher(path string, provider Provider) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{
		watcher:  fw,
		provider: provider,
		path:     filepath.Clean(path),
		done:     make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	defer close(w.done)
	for {
		select {
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if err := w.provider.Reload(); err != nil {
				slog.Error("Breed map reload failed, keeping previous table", "error", err)
				continue
			}
			slog.Info("Breed map reloaded", "path", w.path)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("Breed map watcher error", "error", err)
		}
	}
}

// Close stops the watcher
func (w *Watcher) Close() error {
	err := w.watcher.Close()
	<-w.done
	return err
}
