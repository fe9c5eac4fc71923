package cache

import (
	"database/sql"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/quillcheck/quill/errors"
)

const schema = `
CREATE TABLE IF NOT EXISTS results (
	file          TEXT PRIMARY KEY,
	run_id        TEXT NOT NULL,
	lines_fp      TEXT NOT NULL,
	file_fp       TEXT NOT NULL,
	config_fp     TEXT NOT NULL,
	checks_fp     TEXT NOT NULL,
	output_format TEXT NOT NULL,
	payload       TEXT NOT NULL,
	created_at    DATETIME NOT NULL
)`

// Open opens the cache database at the specified path with the pragmas a
// concurrently-read cache needs, creating the schema if absent. If logger
// is nil the database operates silently.
func Open(path string, logger *zap.SugaredLogger) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrap(err, "failed to create cache directory")
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open cache database")
	}

	// WAL allows readers to proceed during a save.
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to enable WAL mode")
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to set busy timeout")
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to create cache schema")
	}

	if logger != nil {
		logger.Debugw("cache database opened", "path", path, "wal_mode", true)
	}
	return db, nil
}
