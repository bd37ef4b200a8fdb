package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/4ug-aug/Metabrain/internal/logger"
)

// WatchHandler receives vault change events from a Watcher. Both callbacks
// run on the watcher goroutine; slow handlers delay subsequent events.
type WatchHandler struct {
	// OnChange is called when a markdown file is created or written.
	OnChange func(ctx context.Context, path string)

	// OnRemove is called when a markdown file is removed or renamed away.
	OnRemove func(ctx context.Context, path string)
}

// Watcher observes a vault directory tree and dispatches markdown file
// changes to a handler. New subdirectories are watched as they appear.
type Watcher struct {
	fsw     *fsnotify.Watcher
	handler WatchHandler
}

// NewWatcher creates a watcher rooted at the given vault directory.
func NewWatcher(root string, handler WatchHandler) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	// Watch the whole tree; fsnotify watches are not recursive.
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return fsw.Add(path)
	})
	if err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch vault tree: %w", err)
	}

	return &Watcher{
		fsw:     fsw,
		handler: handler,
	}, nil
}

// Run dispatches events until the context is cancelled or the watcher is
// closed. It always returns nil on context cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.dispatch(ctx, event)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error: %v", err)
		}
	}
}

// dispatch routes one fsnotify event to the handler.
func (w *Watcher) dispatch(ctx context.Context, event fsnotify.Event) {
	switch {
	case event.Op.Has(fsnotify.Create):
		// A new directory needs its own watch before events inside it
		// can be seen.
		if isDir(event.Name) {
			if err := w.fsw.Add(event.Name); err != nil {
				logger.Warn("watch new directory %s: %v", event.Name, err)
			}
			return
		}
		if IsMarkdown(event.Name) && w.handler.OnChange != nil {
			logger.Debug("vault file created: %s", event.Name)
			w.handler.OnChange(ctx, event.Name)
		}

	case event.Op.Has(fsnotify.Write):
		if IsMarkdown(event.Name) && w.handler.OnChange != nil {
			logger.Debug("vault file changed: %s", event.Name)
			w.handler.OnChange(ctx, event.Name)
		}

	case event.Op.Has(fsnotify.Remove), event.Op.Has(fsnotify.Rename):
		// The path is gone, so only the extension can be checked.
		if IsMarkdown(event.Name) && w.handler.OnRemove != nil {
			logger.Debug("vault file removed: %s", event.Name)
			w.handler.OnRemove(ctx, event.Name)
		}
	}
}

// Close stops the watcher. Run returns once the event channels close.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
