// Package runner orchestrates a lint run: it reads files, consults the
// result cache, drives the engine, and persists fresh Results. Files are
// independent, so the runner fans out across them; the engine handles
// line-level parallelism within each file.
package runner

import (
	"encoding/json"
	"os"
	"runtime"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/quillcheck/quill/cache"
	"github.com/quillcheck/quill/config"
	"github.com/quillcheck/quill/errors"
	"github.com/quillcheck/quill/lint"
)

// Runner executes lint runs over sets of files.
type Runner struct {
	engine    *lint.Engine
	store     *cache.Store // nil when caching is disabled
	cfg       *config.Config
	configRaw json.RawMessage
	checks    []lint.Check
	noCache   bool
	logger    *zap.SugaredLogger
}

// New creates a Runner. store may be nil to disable persistence entirely;
// noCache keeps persistence but forces full recomputation of every file.
func New(engine *lint.Engine, store *cache.Store, cfg *config.Config, checks []lint.Check, noCache bool, logger *zap.SugaredLogger) (*Runner, error) {
	raw, err := cfg.Raw()
	if err != nil {
		return nil, err
	}
	return &Runner{
		engine:    engine,
		store:     store,
		cfg:       cfg,
		configRaw: raw,
		checks:    checks,
		noCache:   noCache,
		logger:    logger,
	}, nil
}

// LintFile lints a single file end to end: load the cached Result if any,
// compute, persist. Cache failures in either direction degrade to a slower
// run, never a failed one.
func (r *Runner) LintFile(file string) (*lint.Result, error) {
	content, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", file)
	}

	result, err := r.engine.ComputeForFile(lint.Request{
		File:         file,
		Lines:        lint.NumberLines(file, splitLines(content)),
		Content:      content,
		Config:       r.configRaw,
		Checks:       r.checks,
		OutputFormat: r.cfg.Output,
		Cached:       r.loadCached(file),
		NoCache:      r.noCache,
		Parallel:     r.cfg.Parallel,
	})
	if err != nil {
		return nil, err
	}

	if r.store != nil {
		if err := r.store.Save(file, result); err != nil {
			// The Result in memory stays valid; only the next run pays.
			r.logger.Warnw("failed to persist result", "file", file, "error", err)
		}
	}
	return result, nil
}

func (r *Runner) loadCached(file string) *lint.Result {
	if r.store == nil || r.noCache {
		return nil
	}
	cached, err := r.store.Load(file)
	if err != nil {
		if !errors.Is(err, errors.ErrNotFound) {
			r.logger.Debugw("cache load failed, treating as miss", "file", file, "error", err)
		}
		return nil
	}
	return cached
}

// LintFiles lints the files concurrently and returns their Results in the
// input order. A failing file does not abort the others; per-file errors
// are joined and returned alongside the successful Results.
func (r *Runner) LintFiles(files []string) ([]*lint.Result, error) {
	results := make([]*lint.Result, len(files))
	errs := make([]error, len(files))

	var wg sync.WaitGroup
	sem := make(chan struct{}, runtime.GOMAXPROCS(0))
	for i, file := range files {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, file string) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i], errs[i] = r.LintFile(file)
		}(i, file)
	}
	wg.Wait()

	kept := results[:0]
	var failures []error
	for i, result := range results {
		if errs[i] != nil {
			failures = append(failures, errors.Wrapf(errs[i], "%s", files[i]))
			continue
		}
		kept = append(kept, result)
	}
	if len(failures) > 0 {
		return kept, joinErrors(failures)
	}
	return kept, nil
}

func joinErrors(errs []error) error {
	err := errs[0]
	for _, next := range errs[1:] {
		err = errors.WithSecondaryError(err, next)
	}
	return err
}

// splitLines splits file content into lines, tolerating CRLF endings and a
// trailing newline without producing a phantom empty last line.
func splitLines(content []byte) []string {
	text := strings.ReplaceAll(string(content), "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
