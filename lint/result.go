package lint

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/quillcheck/quill/fingerprint"
)

// Result is the cacheable artifact for one file: the full line snapshot as
// of the run that produced it (needed for later re-anchoring), the
// fingerprints validity checks compare against, and the flagged lines that
// consumers actually read. A Result is immutable once built; a new run
// produces a new Result.
type Result struct {
	File  string `json:"file"`
	RunID string `json:"run_id"`

	// Lines is the full ordered snapshot of the source file at creation
	// time, used for fingerprinting and line-identity resolution.
	Lines []Line `json:"lines"`

	// FlaggedLines is the subset of Lines with at least one issue.
	FlaggedLines []Line `json:"flagged_lines"`

	LinesFingerprint  fingerprint.Fingerprint `json:"lines_fingerprint"`
	FileFingerprint   fingerprint.Fingerprint `json:"file_fingerprint"`
	ConfigFingerprint fingerprint.Fingerprint `json:"config_fingerprint"`
	ChecksFingerprint fingerprint.Fingerprint `json:"checks_fingerprint"`

	// Config is the opaque configuration value in effect at creation.
	Config json.RawMessage `json:"config,omitempty"`

	// OutputFormat is the rendering mode requested when the Result was
	// produced. Opaque to the engine.
	OutputFormat string `json:"output_format"`

	CreatedAt time.Time `json:"created_at"`
}

// IsFullyValid reports whether the cached Result can be returned verbatim:
// config, check set, and line set are all unchanged. Pure and safe for
// concurrent callers.
func (r *Result) IsFullyValid(linesFp, configFp, checksFp fingerprint.Fingerprint) bool {
	return r.ConfigFingerprint.Equal(configFp) &&
		r.ChecksFingerprint.Equal(checksFp) &&
		r.LinesFingerprint.Equal(linesFp)
}

// IsIncrementallyValid reports whether the cached Result can seed an
// incremental run: config and check set unchanged, line content free to
// differ.
func (r *Result) IsIncrementallyValid(configFp, checksFp fingerprint.Fingerprint) bool {
	return r.ConfigFingerprint.Equal(configFp) &&
		r.ChecksFingerprint.Equal(checksFp)
}

// resultFingerprints bundles the four fingerprints computed for the current
// request so full and incremental assembly share them.
type resultFingerprints struct {
	lines  fingerprint.Fingerprint
	file   fingerprint.Fingerprint
	config fingerprint.Fingerprint
	checks fingerprint.Fingerprint
}

func newResult(req Request, fps resultFingerprints, flagged []Line) *Result {
	return &Result{
		File:              req.File,
		RunID:             uuid.NewString(),
		Lines:             req.Lines,
		FlaggedLines:      flagged,
		LinesFingerprint:  fps.lines,
		FileFingerprint:   fps.file,
		ConfigFingerprint: fps.config,
		ChecksFingerprint: fps.checks,
		Config:            req.Config,
		OutputFormat:      req.OutputFormat,
		CreatedAt:         time.Now().UTC(),
	}
}
