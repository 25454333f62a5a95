package launch

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/gobwas/glob"
	"go.uber.org/zap"
)

// CrashReportPattern matches crash report file names
const CrashReportPattern = "crash-*.txt"

// CrashWatcher reports crash reports created in a directory
type CrashWatcher struct {
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// WatchCrashReports watches dir, creating it if needed, and calls onCrash
// for every new file matching CrashReportPattern. Existing files are
// ignored.
func WatchCrashReports(dir string, onCrash func(path string), logger *zap.Logger) (*CrashWatcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	match, err := glob.Compile(CrashReportPattern)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create crash reports dir: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	cw := &CrashWatcher{watcher: w, done: make(chan struct{})}
	go func() {
		defer close(cw.done)
		for {
			select {
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Create) {
					continue
				}
				if !match.Match(filepath.Base(event.Name)) {
					continue
				}
				logger.Warn("crash report detected", zap.String("path", event.Name))
				onCrash(event.Name)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Warn("crash watcher error", zap.Error(err))
			}
		}
	}()
	return cw, nil
}

// Close stops watching and waits for pending callbacks. It must not be
// called from onCrash.
func (c *CrashWatcher) Close() error {
	if c == nil {
		return nil
	}
	err := c.watcher.Close()
	<-c.done
	return err
}
