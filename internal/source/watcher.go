package source

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is how long the watcher waits for changes to settle.
const DefaultDebounce = 2 * time.Second

// Reloader rebuilds the corpus from the watched folder.
type Reloader interface {
	ReloadSamples(ctx context.Context) (int, error)
}

// Watcher reloads the sample folder after its matching files change.
type Watcher struct {
	reloader Reloader
	folder   *Folder
	dir      string
	fsw      *fsnotify.Watcher
	log      *zap.Logger
	cancel   context.CancelFunc
	wg       sync.WaitGroup

	debounce time.Duration
}

// WatcherOption configures the watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets the settle delay.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the watcher logger.
func WithLogger(l *zap.Logger) WatcherOption {
	return func(w *Watcher) {
		if l != nil {
			w.log = l
		}
	}
}

// NewWatcher creates a watcher for dir.
func NewWatcher(dir string, folder *Folder, reloader Reloader, opts ...WatcherOption) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fs watcher: %w", err)
	}

	w := &Watcher{
		reloader: reloader,
		folder:   folder,
		dir:      dir,
		fsw:      fsw,
		log:      zap.NewNop(),
		debounce: DefaultDebounce,
	}
	for _, opt := range opts {
		opt(w)
	}

	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	return w, nil
}

// Start begins watching in a background goroutine.
func (w *Watcher) Start(ctx context.Context) {
	ctx, w.cancel = context.WithCancel(ctx)
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.loop(ctx)
	}()
}

// Stop cancels the watcher and waits for the goroutine to finish.
func (w *Watcher) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
	_ = w.fsw.Close()
}

func (w *Watcher) loop(ctx context.Context) {
	var timer *time.Timer

	reset := func() {
		if timer == nil {
			timer = time.NewTimer(w.debounce)
			return
		}
		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(w.debounce)
	}

	timerC := func() <-chan time.Time {
		if timer == nil {
			return nil
		}
		return timer.C
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.isRelevantEvent(ev) {
				continue
			}
			w.log.Debug("Sample folder changed", zap.String("file", ev.Name), zap.String("op", ev.Op.String()))
			reset()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("Sample folder watcher error", zap.Error(err))

		case <-timerC():
			timer = nil
			w.reload(ctx)
		}
	}
}

func (w *Watcher) reload(ctx context.Context) {
	n, err := w.reloader.ReloadSamples(ctx)
	if err != nil {
		w.log.Warn("Sample folder reload failed", zap.String("dir", w.dir), zap.Error(err))
		return
	}
	w.log.Info("Sample folder reloaded", zap.String("dir", w.dir), zap.Int("documents", n))
}

func (w *Watcher) isRelevantEvent(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}
	return w.folder.Matches(ev.Name)
}
