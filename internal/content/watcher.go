package content

import (
	"context"
	"path/filepath"
	"regexp"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/abhisek/storybook/internal/logging"
)

// AllPages is sent on a Watcher's channel when the manifest changes.
const AllPages = -1

var pageFile = regexp.MustCompile(`^slide(\d{2})\.md$`)

// Watcher reports edits to a content directory as slide indices.
type Watcher struct {
	w        *fsnotify.Watcher
	dir      string
	logger   *zap.Logger
	debounce time.Duration

	changes chan int
	stopCh  chan struct{}
	doneCh  chan struct{}
	once    sync.Once
	started atomic.Bool
}

// NewWatcher watches dir and dir/pages.
func NewWatcher(dir string, logger *zap.Logger) (*Watcher, error) {
	logger = logging.OrNop(logger)
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, d := range []string{dir, filepath.Join(dir, "pages")} {
		if err := fw.Add(d); err != nil {
			fw.Close()
			return nil, err
		}
	}
	return &Watcher{
		w:        fw,
		dir:      dir,
		logger:   logger,
		debounce: 150 * time.Millisecond,
		changes:  make(chan int, 16),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Changes delivers changed slide indices, or AllPages.
func (w *Watcher) Changes() <-chan int { return w.changes }

// Start runs the event loop until ctx is done or Close is called.
func (w *Watcher) Start(ctx context.Context) {
	if w.started.CompareAndSwap(false, true) {
		go w.run(ctx)
	}
}

// Close stops the loop and releases the OS watcher.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.stopCh)
		err = w.w.Close()
	})
	if w.started.Load() {
		<-w.doneCh
	}
	return err
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)
	defer close(w.changes)

	pending := make(map[int]time.Time)
	tick := time.NewTicker(w.debounce / 3)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case ev, ok := <-w.w.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			if idx, ok := indexFor(ev.Name); ok {
				pending[idx] = time.Now()
			}
		case err, ok := <-w.w.Errors:
			if !ok {
				return
			}
			w.logger.Warn("content watcher error", zap.Error(err))
		case now := <-tick.C:
			for idx, at := range pending {
				if now.Sub(at) < w.debounce {
					continue
				}
				delete(pending, idx)
				select {
				case w.changes <- idx:
				case <-w.stopCh:
					return
				case <-ctx.Done():
					return
				}
			}
		}
	}
}

// indexFor maps a changed file name to a slide index.
func indexFor(name string) (int, bool) {
	base := filepath.Base(name)
	if base == ManifestFile {
		return AllPages, true
	}
	m := pageFile.FindStringSubmatch(base)
	if m == nil {
		return 0, false
	}
	n, _ := strconv.Atoi(m[1])
	if n < 1 {
		return 0, false
	}
	return n - 1, true
}
