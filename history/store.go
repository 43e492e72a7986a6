// Package history persists generation records in SQLite so past runs
// survive restarts and the dashboard can show analytics. The store is
// injected into the pipeline rather than living as ambient session state.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"edu_video_generator/analyzer"
)

// ErrNotFound reports a lookup for an unknown record ID.
var ErrNotFound = errors.New("history: record not found")

// Store manages record persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

const schema = `
CREATE TABLE IF NOT EXISTS generation_records (
    id              TEXT PRIMARY KEY,
    topic           TEXT NOT NULL,
    pattern         TEXT NOT NULL,
    used_fallback   INTEGER NOT NULL DEFAULT 0,
    fallback_reason TEXT NOT NULL DEFAULT '',
    analysis        TEXT NOT NULL,
    script          TEXT NOT NULL,
    blueprint       TEXT NOT NULL,
    quality         TEXT NOT NULL,
    video_path      TEXT NOT NULL DEFAULT '',
    video_duration  REAL NOT NULL DEFAULT 0,
    export_path     TEXT NOT NULL DEFAULT '',
    created_at      TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_generation_records_created_at
    ON generation_records(created_at DESC);
`

// Open initializes or connects to the history database.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("ensure history dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Add inserts a fully assembled record. Records are written whole or not at
// all; there is no partial-update path.
func (s *Store) Add(ctx context.Context, rec *Record) error {
	if rec.ID == "" {
		return errors.New("history: record id is required")
	}

	analysisJSON, err := json.Marshal(rec.Analysis)
	if err != nil {
		return fmt.Errorf("marshal analysis: %w", err)
	}
	scriptJSON, err := json.Marshal(rec.Script)
	if err != nil {
		return fmt.Errorf("marshal script: %w", err)
	}
	blueprintJSON, err := json.Marshal(rec.Blueprint)
	if err != nil {
		return fmt.Errorf("marshal blueprint: %w", err)
	}
	qualityJSON, err := json.Marshal(rec.Quality)
	if err != nil {
		return fmt.Errorf("marshal quality: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO generation_records (
            id, topic, pattern, used_fallback, fallback_reason,
            analysis, script, blueprint, quality,
            video_path, video_duration, export_path, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.Topic,
		string(rec.Pattern),
		boolToInt(rec.UsedFallback),
		rec.FallbackReason,
		string(analysisJSON),
		string(scriptJSON),
		string(blueprintJSON),
		string(qualityJSON),
		rec.VideoPath,
		rec.VideoDuration,
		rec.ExportPath,
		rec.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert record: %w", err)
	}
	return nil
}

// Get returns one record by ID.
func (s *Store) Get(ctx context.Context, id string) (*Record, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return rec, err
}

// List returns all records, newest first.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+` ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

const selectColumns = `SELECT id, topic, pattern, used_fallback, fallback_reason,
    analysis, script, blueprint, quality,
    video_path, video_duration, export_path, created_at
    FROM generation_records`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*Record, error) {
	var (
		rec           Record
		pattern       string
		usedFallback  int
		analysisJSON  string
		scriptJSON    string
		blueprintJSON string
		qualityJSON   string
		createdAt     string
	)
	err := row.Scan(
		&rec.ID, &rec.Topic, &pattern, &usedFallback, &rec.FallbackReason,
		&analysisJSON, &scriptJSON, &blueprintJSON, &qualityJSON,
		&rec.VideoPath, &rec.VideoDuration, &rec.ExportPath, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	rec.Pattern = analyzer.Pattern(pattern)
	rec.UsedFallback = usedFallback != 0
	if err := json.Unmarshal([]byte(analysisJSON), &rec.Analysis); err != nil {
		return nil, fmt.Errorf("unmarshal analysis: %w", err)
	}
	if err := json.Unmarshal([]byte(scriptJSON), &rec.Script); err != nil {
		return nil, fmt.Errorf("unmarshal script: %w", err)
	}
	if err := json.Unmarshal([]byte(blueprintJSON), &rec.Blueprint); err != nil {
		return nil, fmt.Errorf("unmarshal blueprint: %w", err)
	}
	if err := json.Unmarshal([]byte(qualityJSON), &rec.Quality); err != nil {
		return nil, fmt.Errorf("unmarshal quality: %w", err)
	}
	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	rec.CreatedAt = ts
	return &rec, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
