package lint

import (
	"encoding/json"

	"github.com/quillcheck/quill/fingerprint"
)

// Request is the transient per-run bundle for one file. It is owned by the
// run that constructs it and discarded after producing a Result.
type Request struct {
	// File identifies the source file.
	File string

	// Lines is the current file state, numbered from 1, issue-free.
	Lines []Line

	// Content is the raw file bytes, fingerprinted into the Result.
	Content []byte

	// Config is the opaque configuration in effect; the engine only
	// fingerprints it.
	Config json.RawMessage

	// Checks is the ordered rule list. Order is semantically significant:
	// each check sees the line as annotated by its predecessors.
	Checks []Check

	// OutputFormat is carried into the Result untouched.
	OutputFormat string

	// Cached is the previously persisted Result for this file, if any.
	Cached *Result

	// NoCache bypasses both validity checks and forces full recomputation.
	NoCache bool

	// Parallel processes lines concurrently.
	Parallel bool
}

// ComputeForFile is the single entry point for linting one file.
//
// Decision order: with caching enabled and a cached Result present, a
// full fingerprint match returns the cached Result verbatim with zero
// reprocessing; a config+checks match triggers incremental recomputation
// of changed lines only; otherwise every line is recomputed and a brand-new
// Result is assembled with fresh fingerprints.
func (e *Engine) ComputeForFile(req Request) (*Result, error) {
	configFp, err := fingerprint.Value(req.Config)
	if err != nil {
		return nil, err
	}
	checksFp, err := fingerprint.Value(req.Checks)
	if err != nil {
		return nil, err
	}
	fps := resultFingerprints{
		lines:  fingerprint.Texts(Texts(req.Lines)),
		file:   fingerprint.Bytes(req.Content),
		config: configFp,
		checks: checksFp,
	}

	if !req.NoCache && req.Cached != nil {
		if req.Cached.IsFullyValid(fps.lines, fps.config, fps.checks) {
			e.logger.Debugw("cache full hit", "file", req.File)
			return req.Cached, nil
		}
		if req.Cached.IsIncrementallyValid(fps.config, fps.checks) {
			e.logger.Debugw("cache partial hit", "file", req.File)
			return e.computeChanged(req, fps)
		}
	}

	flagged, err := e.Process(req.Checks, req.Lines, req.Parallel)
	if err != nil {
		return nil, err
	}
	return newResult(req, fps, flagged), nil
}
