package cache

import (
	"database/sql"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"go.uber.org/zap"

	"github.com/quillcheck/quill/errors"
	"github.com/quillcheck/quill/fingerprint"
	"github.com/quillcheck/quill/lint"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "cache.db"), nil)
	if err != nil {
		t.Fatalf("failed to open test cache: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewStore(db, zap.NewNop().Sugar())
}

func sampleResult(file string) *lint.Result {
	flagged := lint.Line{
		File: file, Number: 1, Text: "The the cat",
		Issues: []lint.Issue{{Check: "style.Repetition", Kind: "repetition", Message: "repeated word", Match: "the"}},
	}
	return &lint.Result{
		File:              file,
		RunID:             "run-1",
		Lines:             []lint.Line{{File: file, Number: 1, Text: "The the cat"}, {File: file, Number: 2, Text: "sat"}},
		FlaggedLines:      []lint.Line{flagged},
		LinesFingerprint:  fingerprint.Texts([]string{"The the cat", "sat"}),
		FileFingerprint:   fingerprint.Bytes([]byte("The the cat\nsat")),
		ConfigFingerprint: fingerprint.Bytes([]byte("config")),
		ChecksFingerprint: fingerprint.Bytes([]byte("checks")),
		Config:            json.RawMessage(`{"styles":["base"]}`),
		OutputFormat:      "table",
		CreatedAt:         time.Now().UTC(),
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	store := setupTestStore(t)
	want := sampleResult("docs/guide.md")

	if err := store.Save(want.File, want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.Load(want.File)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.RunID != want.RunID {
		t.Fatalf("run id mismatch: %s vs %s", got.RunID, want.RunID)
	}
	if !got.LinesFingerprint.Equal(want.LinesFingerprint) {
		t.Fatal("lines fingerprint did not survive the round trip")
	}
	if len(got.Lines) != 2 || len(got.FlaggedLines) != 1 {
		t.Fatalf("line snapshots did not survive: %d lines, %d flagged", len(got.Lines), len(got.FlaggedLines))
	}
	if got.FlaggedLines[0].Issues[0].Match != "the" {
		t.Fatal("issue detail did not survive the round trip")
	}
}

func TestLoadAbsentIsNotFound(t *testing.T) {
	store := setupTestStore(t)
	_, err := store.Load("never/linted.md")
	if !errors.Is(err, errors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSaveReplacesPreviousResult(t *testing.T) {
	store := setupTestStore(t)
	first := sampleResult("doc.md")
	if err := store.Save("doc.md", first); err != nil {
		t.Fatal(err)
	}

	second := sampleResult("doc.md")
	second.RunID = "run-2"
	second.FlaggedLines = nil
	if err := store.Save("doc.md", second); err != nil {
		t.Fatal(err)
	}

	got, err := store.Load("doc.md")
	if err != nil {
		t.Fatal(err)
	}
	if got.RunID != "run-2" {
		t.Fatalf("expected replacement, got run %s", got.RunID)
	}
	if len(got.FlaggedLines) != 0 {
		t.Fatal("old flagged lines must not leak into the replacement")
	}
}

func TestCorruptPayloadIsNotFound(t *testing.T) {
	store := setupTestStore(t)
	want := sampleResult("doc.md")
	if err := store.Save("doc.md", want); err != nil {
		t.Fatal(err)
	}
	if _, err := store.db.Exec(`UPDATE results SET payload = '{broken' WHERE file = ?`, "doc.md"); err != nil {
		t.Fatal(err)
	}

	_, err := store.Load("doc.md")
	if !errors.Is(err, errors.ErrNotFound) {
		t.Fatalf("corrupt payload must read as a cache miss, got %v", err)
	}
}

func TestDeleteAndClear(t *testing.T) {
	store := setupTestStore(t)
	for _, file := range []string{"a.md", "b.md"} {
		if err := store.Save(file, sampleResult(file)); err != nil {
			t.Fatal(err)
		}
	}

	if err := store.Delete("a.md"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Load("a.md"); !errors.Is(err, errors.ErrNotFound) {
		t.Fatal("deleted entry should be gone")
	}
	if _, err := store.Load("b.md"); err != nil {
		t.Fatal("delete must not touch other entries")
	}

	if err := store.Clear(); err != nil {
		t.Fatal(err)
	}
	stats, err := store.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.Entries != 0 {
		t.Fatalf("expected empty cache after Clear, got %d entries", stats.Entries)
	}
}

func TestStats(t *testing.T) {
	store := setupTestStore(t)
	if err := store.Save("a.md", sampleResult("a.md")); err != nil {
		t.Fatal(err)
	}
	if err := store.Save("b.md", sampleResult("b.md")); err != nil {
		t.Fatal(err)
	}

	stats, err := store.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.Entries != 2 {
		t.Fatalf("expected 2 entries, got %d", stats.Entries)
	}
	if stats.Oldest.IsZero() || stats.Newest.IsZero() {
		t.Fatal("age range should be populated")
	}
}

// Minimal sqlmock tests to verify the upsert shape without a real database.
func TestSaveQueryShape(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	store := NewStore(db, zap.NewNop().Sugar())
	result := sampleResult("doc.md")

	mock.ExpectExec("INSERT INTO results").
		WithArgs(
			"doc.md",
			result.RunID,
			string(result.LinesFingerprint),
			string(result.FileFingerprint),
			string(result.ConfigFingerprint),
			string(result.ChecksFingerprint),
			result.OutputFormat,
			sqlmock.AnyArg(), // payload
			result.CreatedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := store.Save("doc.md", result); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestLoadQueryFailureIsSurfaced(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT payload FROM results").
		WillReturnError(sql.ErrConnDone)

	store := NewStore(db, zap.NewNop().Sugar())
	if _, err := store.Load("doc.md"); err == nil {
		t.Fatal("driver failure must be surfaced (callers downgrade it to a miss)")
	}
}
