// Package watch notices when images are added to or removed from the asset
// folder so open pages can re-enumerate their workers.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/grovetools/praise/errors"
	"github.com/grovetools/praise/logging"
	"github.com/grovetools/praise/pkg/workers"
)

// DefaultDebounce collapses bursts such as a multi-file copy into one change.
const DefaultDebounce = 200 * time.Millisecond

// Watcher reports changes to image files in one directory.
type Watcher struct {
	watcher    *fsnotify.Watcher
	dir        string
	extensions map[string]bool
	debounce   time.Duration
	logger     *logrus.Entry
	onChange   func(path string)
	// waiting is set when dir did not exist and its parent is watched instead.
	waiting bool
}

// New creates a watcher for dir. When dir does not exist yet its parent is
// watched until dir appears. onChange receives the last path touched in
// each debounced burst.
func New(dir string, extensions []string, debounce time.Duration, onChange func(string)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to create file watcher")
	}

	w := &Watcher{
		watcher:    fw,
		dir:        filepath.Clean(dir),
		extensions: make(map[string]bool),
		debounce:   debounce,
		logger:     logging.NewLogger("watch"),
		onChange:   onChange,
	}
	if w.debounce <= 0 {
		w.debounce = DefaultDebounce
	}
	if len(extensions) == 0 {
		extensions = workers.DefaultExtensions
	}
	for _, ext := range extensions {
		w.extensions[strings.ToLower(ext)] = true
	}

	if err := fw.Add(w.dir); err != nil {
		if !os.IsNotExist(err) {
			fw.Close()
			return nil, errors.AssetsUnreadable(w.dir, err)
		}
		parent := filepath.Dir(w.dir)
		if perr := fw.Add(parent); perr != nil {
			fw.Close()
			return nil, errors.AssetsUnreadable(w.dir, err)
		}
		w.waiting = true
		w.logger.Debugf("Asset folder %s missing, watching %s", w.dir, parent)
	}
	return w, nil
}

// Start processes events until ctx is cancelled, then closes the watcher.
func (w *Watcher) Start(ctx context.Context) {
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()
	defer w.watcher.Close()

	var pending string
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.logger.Debugf("fsnotify event: %s op=%v", event.Name, event.Op)
			if !w.relevant(event) {
				continue
			}
			pending = event.Name
			timer.Reset(w.debounce)
		case <-timer.C:
			w.logger.WithField("path", pending).Info("Workers changed")
			if w.onChange != nil {
				w.onChange(pending)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Errorf("Watcher error: %v", err)
		case <-ctx.Done():
			return
		}
	}
}

// Close stops the watcher without waiting for Start to return.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	name := filepath.Clean(event.Name)

	if w.waiting {
		if name != w.dir || !event.Has(fsnotify.Create) {
			return false
		}
		if err := w.watcher.Add(w.dir); err != nil {
			w.logger.WithError(err).Warnf("Failed to watch %s", w.dir)
			return false
		}
		_ = w.watcher.Remove(filepath.Dir(w.dir))
		w.waiting = false
		return true
	}

	if name == w.dir && (event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)) {
		return true
	}
	if filepath.Dir(name) != w.dir {
		return false
	}
	if !w.extensions[strings.ToLower(filepath.Ext(name))] {
		return false
	}
	return event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) || event.Has(fsnotify.Write)
}
