package lint

import (
	"runtime"
	"sync"

	"go.uber.org/zap"
)

// Engine runs checks against lines. It holds no mutable state beyond the
// shared log sink, so one Engine serves any number of concurrent per-file
// runs.
type Engine struct {
	registry *Registry
	logger   *zap.SugaredLogger
}

// NewEngine creates an engine dispatching into the given registry.
func NewEngine(registry *Registry, logger *zap.SugaredLogger) *Engine {
	return &Engine{registry: registry, logger: logger}
}

// boundCheck is a check paired with its resolved handler. Resolution happens
// once per run, before any line is touched, so an unregistered kind aborts
// the run instead of silently skipping a rule mid-file.
type boundCheck struct {
	check   Check
	handler Handler
}

func (e *Engine) bind(checks []Check) ([]boundCheck, error) {
	bound := make([]boundCheck, len(checks))
	for i, check := range checks {
		handler, err := e.registry.Resolve(check.Kind)
		if err != nil {
			return nil, err
		}
		bound[i] = boundCheck{check: check, handler: handler}
	}
	return bound, nil
}

// safeApply invokes one handler with fault isolation: a panicking rule is
// logged with enough context to identify it and the line passes through
// unchanged, so one malfunctioning check cannot abort the rest of the batch.
func (e *Engine) safeApply(bc boundCheck, line Line) (out Line) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warnw("check handler failed, line left unchanged",
				"check", bc.check.Name,
				"kind", bc.check.Kind,
				"file", line.File,
				"line", line.Number,
				"panic", r,
			)
			out = line
		}
	}()
	return bc.handler(line, bc.check)
}

// applyAll folds the ordered check list onto one line: check i+1 receives
// the line as annotated by check i. The fold reads no state outside the
// line, which is what permits the parallel path below.
func (e *Engine) applyAll(bound []boundCheck, line Line) Line {
	for _, bc := range bound {
		line = e.safeApply(bc, line)
	}
	return line
}

// Process applies every check to every line and returns only the lines
// carrying at least one issue, in input order. Sequential and parallel
// modes produce identical content; the parallel path writes into an
// index-addressed slice so ordering is structural rather than re-sorted.
//
// Returns a configuration error, before processing any line, if a check
// kind has no registered handler.
func (e *Engine) Process(checks []Check, lines []Line, parallel bool) ([]Line, error) {
	bound, err := e.bind(checks)
	if err != nil {
		return nil, err
	}

	processed := make([]Line, len(lines))
	if parallel && len(lines) > 1 {
		var wg sync.WaitGroup
		sem := make(chan struct{}, runtime.GOMAXPROCS(0))
		for i, line := range lines {
			wg.Add(1)
			sem <- struct{}{}
			go func(i int, line Line) {
				defer wg.Done()
				defer func() { <-sem }()
				processed[i] = e.applyAll(bound, line)
			}(i, line)
		}
		wg.Wait()
	} else {
		for i, line := range lines {
			processed[i] = e.applyAll(bound, line)
		}
	}

	flagged := make([]Line, 0)
	for _, line := range processed {
		if line.HasIssue() {
			flagged = append(flagged, line)
		}
	}
	return flagged, nil
}
