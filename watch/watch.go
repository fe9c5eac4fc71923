// Package watch re-lints documents as they change on disk. Write events
// are debounced per file (editors emit bursts of writes for one save) and
// additionally rate-limited per file so a runaway writer cannot peg the
// engine. Re-lints go through the incremental cache path, so a saved file
// with a small edit only reprocesses the changed lines.
package watch

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/quillcheck/quill/config"
	"github.com/quillcheck/quill/errors"
	"github.com/quillcheck/quill/lint"
	"github.com/quillcheck/quill/runner"
)

// ResultFunc receives each fresh Result produced by a re-lint.
type ResultFunc func(*lint.Result)

// Watcher drives re-lints from filesystem events.
type Watcher struct {
	runner     *runner.Runner
	cfg        config.WatchConfig
	extensions []string
	onResult   ResultFunc
	logger     *zap.SugaredLogger

	watcher *fsnotify.Watcher

	mu       sync.Mutex
	timers   map[string]*time.Timer
	limiters map[string]*rate.Limiter

	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// New creates a watcher over the given roots. Directories are watched
// recursively; directories created later are picked up from their create
// events.
func New(r *runner.Runner, cfg config.WatchConfig, extensions []string, roots []string, onResult ResultFunc, logger *zap.SugaredLogger) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	w := &Watcher{
		runner:     r,
		cfg:        cfg,
		extensions: extensions,
		onResult:   onResult,
		logger:     logger,
		watcher:    fsWatcher,
		timers:     make(map[string]*time.Timer),
		limiters:   make(map[string]*rate.Limiter),
		done:       make(chan struct{}),
	}

	for _, root := range roots {
		if err := w.addRecursive(root); err != nil {
			fsWatcher.Close()
			return nil, err
		}
	}
	return w, nil
}

func (w *Watcher) addRecursive(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return errors.Wrapf(err, "cannot watch %s", root)
	}
	if !info.IsDir() {
		return errors.Wrap(w.watcher.Add(filepath.Dir(root)), "failed to watch")
	}
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			if err := w.watcher.Add(path); err != nil {
				return errors.Wrapf(err, "failed to watch %s", path)
			}
		}
		return nil
	})
}

// Start runs the event loop until Close is called.
func (w *Watcher) Start() {
	w.wg.Add(1)
	go w.loop()
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warnw("watch error", "error", err)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addRecursive(event.Name); err != nil {
				w.logger.Warnw("failed to watch new directory", "path", event.Name, "error", err)
			}
			return
		}
	}
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return
	}
	if !w.lintable(event.Name) {
		return
	}
	w.debounce(event.Name)
}

func (w *Watcher) lintable(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, allowed := range w.extensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// debounce (re)arms the per-file timer; the file is linted once the burst
// of events for a single save settles.
func (w *Watcher) debounce(file string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.timers[file]; ok {
		timer.Stop()
	}
	delay := time.Duration(w.cfg.DebounceMS) * time.Millisecond
	w.timers[file] = time.AfterFunc(delay, func() {
		w.relint(file)
	})
}

func (w *Watcher) limiter(file string) *rate.Limiter {
	w.mu.Lock()
	defer w.mu.Unlock()
	limiter, ok := w.limiters[file]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(w.cfg.RatePerSecond), w.cfg.Burst)
		w.limiters[file] = limiter
	}
	return limiter
}

func (w *Watcher) relint(file string) {
	select {
	case <-w.done:
		return
	default:
	}
	if !w.limiter(file).Allow() {
		w.logger.Debugw("re-lint suppressed by rate limit", "file", file)
		return
	}

	result, err := w.runner.LintFile(file)
	if err != nil {
		w.logger.Errorw("re-lint failed", "file", file, "error", err)
		return
	}
	w.logger.Infow("re-linted", "file", file, "flagged", len(result.FlaggedLines))
	if w.onResult != nil {
		w.onResult(result)
	}
}

// Close stops the event loop and releases the filesystem watches. Safe to
// call more than once.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.watcher.Close()
		w.wg.Wait()

		w.mu.Lock()
		for _, timer := range w.timers {
			timer.Stop()
		}
		w.mu.Unlock()
	})
	return err
}
