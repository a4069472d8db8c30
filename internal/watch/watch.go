// Package watch reports changes to the weekly input files so a report can be
// re-extracted while it is being edited.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/retro/internal/logging"
)

// ErrWatcherFailed indicates the filesystem watcher failed to initialize.
var ErrWatcherFailed = errors.New("failed to initialize filesystem watcher")

// Change is one debounced batch of modified input files.
type Change struct {
	Paths []string
	Time  time.Time
}

// Watcher watches a fixed set of files. Parent directories are watched so
// that editors which replace files on save are still seen.
type Watcher struct {
	files    map[string]bool
	dirs     []string
	debounce time.Duration
	watcher  *fsnotify.Watcher
	changes  chan Change
	stop     chan struct{}
	stopOnce sync.Once
	logger   *logging.Logger
}

// New creates a watcher for paths. Empty paths are ignored. A nil logger is
// taken from the context passed to Start.
func New(paths []string, debounce time.Duration, logger *logging.Logger) (*Watcher, error) {

	files := make(map[string]bool)
	dirSet := make(map[string]bool)
	for _, p := range paths {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", p, err)
		}
		files[abs] = true
		dirSet[filepath.Dir(abs)] = true
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no files to watch", ErrWatcherFailed)
	}

	dirs := make([]string, 0, len(dirSet))
	for d := range dirSet {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWatcherFailed, err)
	}

	return &Watcher{
		files:    files,
		dirs:     dirs,
		debounce: debounce,
		watcher:  fw,
		changes:  make(chan Change, 1),
		stop:     make(chan struct{}),
		logger:   logger,
	}, nil
}

// Start begins watching in a background goroutine. Call Stop to release
// resources.
func (w *Watcher) Start(ctx context.Context) error {
	if w.logger == nil {
		w.logger = logging.FromContext(ctx)
	}
	w.logger = w.logger.Named("watch")
	for _, d := range w.dirs {
		if err := w.watcher.Add(d); err != nil {
			return fmt.Errorf("watching %s: %w", d, err)
		}
	}
	go w.loop(ctx)
	return nil
}

// Changes returns the channel of debounced changes.
func (w *Watcher) Changes() <-chan Change {
	return w.changes
}

// Stop stops the watcher. It is safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stop)
		_ = w.watcher.Close()
	})
}

func (w *Watcher) loop(ctx context.Context) {
	var (
		timer   *time.Timer
		fire    <-chan time.Time
		pending = make(map[string]bool)
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.stop:
			return
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Trace(ctx, "input file event", zap.String("path", event.Name), zap.String("op", event.Op.String()))
			pending[filepath.Clean(event.Name)] = true
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			change := Change{Paths: sortedKeys(pending), Time: time.Now()}
			pending = make(map[string]bool)
			select {
			case w.changes <- change:
			case <-w.stop:
				return
			case <-ctx.Done():
				return
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn(ctx, "watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !w.files[filepath.Clean(event.Name)] {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
