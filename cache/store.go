// Package cache persists lint Results between runs in a SQLite database.
//
// One row per file: the four fingerprints in their own columns for
// introspection, the full Result as a JSON payload. The engine treats any
// load failure as a cache miss, so a corrupt or unavailable cache can slow
// a run down but never break it.
package cache

import (
	"database/sql"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/quillcheck/quill/errors"
	"github.com/quillcheck/quill/lint"
)

// Query constants
const (
	resultUpsertQuery = `
		INSERT INTO results (file, run_id, lines_fp, file_fp, config_fp, checks_fp, output_format, payload, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(file) DO UPDATE SET
			run_id = excluded.run_id,
			lines_fp = excluded.lines_fp,
			file_fp = excluded.file_fp,
			config_fp = excluded.config_fp,
			checks_fp = excluded.checks_fp,
			output_format = excluded.output_format,
			payload = excluded.payload,
			created_at = excluded.created_at`

	resultSelectQuery = `SELECT payload FROM results WHERE file = ?`

	resultDeleteQuery = `DELETE FROM results WHERE file = ?`

	resultClearQuery = `DELETE FROM results`

	resultStatsQuery = `SELECT COUNT(*), COALESCE(MIN(created_at), ''), COALESCE(MAX(created_at), '') FROM results`
)

// Store reads and writes cached Results.
type Store struct {
	db     *sql.DB
	logger *zap.SugaredLogger
}

// NewStore creates a result store over an open cache database.
func NewStore(db *sql.DB, logger *zap.SugaredLogger) *Store {
	return &Store{db: db, logger: logger}
}

// Load retrieves the last persisted Result for a file. Returns
// errors.ErrNotFound (wrapped) when no Result has been persisted.
func (s *Store) Load(file string) (*lint.Result, error) {
	var payload string
	err := s.db.QueryRow(resultSelectQuery, file).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, errors.Wrapf(errors.ErrNotFound, "no cached result for %s", file)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load cached result for %s", file)
	}

	var result lint.Result
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		// A corrupt payload is a cache miss, not an error the caller
		// should have to distinguish.
		s.logger.Warnw("discarding corrupt cache payload", "file", file, "error", err)
		return nil, errors.Wrapf(errors.ErrNotFound, "corrupt cached result for %s", file)
	}
	return &result, nil
}

// Save persists a Result, replacing any previous row for the file. A save
// failure is reported to the caller but does not invalidate the Result
// already computed in memory.
func (s *Store) Save(file string, result *lint.Result) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal result for %s", file)
	}

	_, err = s.db.Exec(resultUpsertQuery,
		file,
		result.RunID,
		string(result.LinesFingerprint),
		string(result.FileFingerprint),
		string(result.ConfigFingerprint),
		string(result.ChecksFingerprint),
		result.OutputFormat,
		string(payload),
		result.CreatedAt,
	)
	if err != nil {
		return errors.Wrapf(err, "failed to persist result for %s", file)
	}
	return nil
}

// Delete removes the cached Result for one file.
func (s *Store) Delete(file string) error {
	if _, err := s.db.Exec(resultDeleteQuery, file); err != nil {
		return errors.Wrapf(err, "failed to delete cached result for %s", file)
	}
	return nil
}

// Clear removes every cached Result.
func (s *Store) Clear() error {
	if _, err := s.db.Exec(resultClearQuery); err != nil {
		return errors.Wrap(err, "failed to clear cache")
	}
	return nil
}

// Stats summarizes cache contents.
type Stats struct {
	Entries int       `json:"entries"`
	Oldest  time.Time `json:"oldest,omitempty"`
	Newest  time.Time `json:"newest,omitempty"`
}

// Stats reports how many Results are cached and their age range.
func (s *Store) Stats() (Stats, error) {
	var stats Stats
	var oldest, newest string
	err := s.db.QueryRow(resultStatsQuery).Scan(&stats.Entries, &oldest, &newest)
	if err != nil {
		return Stats{}, errors.Wrap(err, "failed to read cache stats")
	}
	if stats.Entries > 0 {
		stats.Oldest = parseTimestamp(oldest)
		stats.Newest = parseTimestamp(newest)
	}
	return stats, nil
}

func parseTimestamp(s string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05.999999999-07:00", "2006-01-02 15:04:05"} {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts
		}
	}
	return time.Time{}
}
