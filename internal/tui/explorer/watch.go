// ============================================================================
// minilang - Front end for a small imperative language
// ============================================================================
//
// Package:     explorer
// Description: File watcher that reloads the Explorer on save
// Author:      Mike Stoffels
// Created:     2025-12-08
// License:     MIT
// ============================================================================

package explorer

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	mdwerror "github.com/msto63/minilang/foundation/core/error"
	"github.com/msto63/minilang/pkg/core/logging"
)

// DebounceDelay suppresses repeated events of a single save
const DebounceDelay = 300 * time.Millisecond

// Watcher calls notify whenever the watched file is written or replaced
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	notify  func()
	logger  *logging.Logger
}

// NewWatcher watches path. The parent directory is watched so editors that
// save by renaming a temp file are still noticed.
func NewWatcher(path string, notify func(), logger *logging.Logger) (*Watcher, error) {
	if logger == nil {
		logger = logging.New("explorer-watch")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, mdwerror.Wrap(err, "resolve path").WithDetail("path", path)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to create watcher")
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, mdwerror.Wrap(err, "failed to watch directory").WithDetail("path", abs)
	}

	return &Watcher{path: abs, watcher: w, notify: notify, logger: logger}, nil
}

// Run handles events until ctx is cancelled and closes the watcher. notify
// fires once DebounceDelay has passed without a further change, so a burst
// of writes ends in a single reload of the final content.
func (w *Watcher) Run(ctx context.Context) {
	defer w.watcher.Close()

	timer := time.NewTimer(DebounceDelay)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			timer.Reset(DebounceDelay)

		case <-timer.C:
			w.logger.Debug("source changed", "path", w.path)
			w.notify()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", "error", err)
		}
	}
}
