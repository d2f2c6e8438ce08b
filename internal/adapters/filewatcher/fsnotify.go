// Package filewatcher provides file system monitoring adapters.
// Clean Architecture: Adapter implementing ports.FileWatcher.
package filewatcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/0xcro3dile/lecturesum-go/internal/domain/ports"
)

// FSNotifyWatcher implements ports.FileWatcher using fsnotify.
type FSNotifyWatcher struct {
	watcher    *fsnotify.Watcher
	extensions []string // lower-case, with leading dot
	logger     *zap.Logger
}

// NewFSNotifyWatcher creates a watcher for the given extensions, ".pdf" when none.
func NewFSNotifyWatcher(extensions []string, logger *zap.Logger) (*FSNotifyWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FSNotifyWatcher{
		watcher:    w,
		extensions: normalizeExtensions(extensions),
		logger:     logger,
	}, nil
}

func normalizeExtensions(exts []string) []string {
	if len(exts) == 0 {
		return []string{".pdf"}
	}
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	return out
}

// Watch creates dir if needed and starts monitoring it. Matching files already
// present are reported first as FileCreated, so a restart does not lose a backlog.
func (w *FSNotifyWatcher) Watch(ctx context.Context, dir string) (<-chan ports.FileEvent, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating watch directory: %w", err)
	}
	if err := w.watcher.Add(dir); err != nil {
		return nil, err
	}

	backlog, err := w.existing(dir)
	if err != nil {
		return nil, err
	}

	events := make(chan ports.FileEvent, 100)
	go w.loop(ctx, dir, backlog, events)
	return events, nil
}

func (w *FSNotifyWatcher) loop(ctx context.Context, dir string, backlog []string, events chan<- ports.FileEvent) {
	defer close(events)

	emit := func(ev ports.FileEvent) bool {
		select {
		case events <- ev:
			return true
		case <-ctx.Done():
			return false
		}
	}

	for _, path := range backlog {
		if !emit(ports.FileEvent{Path: path, Operation: ports.FileCreated}) {
			return
		}
	}

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
			op, ok := fileOperation(event.Op)
			if !ok {
				continue
			}
			w.logger.Debug("file event", zap.String("path", event.Name), zap.Stringer("op", op))
			if !emit(ports.FileEvent{Path: event.Name, Operation: op}) {
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("file watcher error", zap.String("dir", dir), zap.Error(err))
		}
	}
}

// fileOperation maps an fsnotify op. A rename reports the old name, so it counts
// as a removal; the new name arrives as a separate create.
func fileOperation(op fsnotify.Op) (ports.FileOperation, bool) {
	switch {
	case op.Has(fsnotify.Create):
		return ports.FileCreated, true
	case op.Has(fsnotify.Write):
		return ports.FileModified, true
	case op.Has(fsnotify.Remove), op.Has(fsnotify.Rename):
		return ports.FileDeleted, true
	default:
		return 0, false
	}
}

func (w *FSNotifyWatcher) existing(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.Type().IsRegular() && w.matches(e.Name()) {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	return paths, nil
}

// Stop stops the watcher.
func (w *FSNotifyWatcher) Stop() error {
	return w.watcher.Close()
}

func (w *FSNotifyWatcher) matches(path string) bool {
	return slices.Contains(w.extensions, strings.ToLower(filepath.Ext(path)))
}
