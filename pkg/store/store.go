// Package store persists analysis records in SQLite, keyed by the
// opaque analysis id. The store makes no durability promise beyond the
// process lifetime; callers treat it as a key-value collaborator.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/logicgraphy/zeo/models"
)

// ErrNotFound is returned by Get and Update for unknown analysis ids.
var ErrNotFound = errors.New("analysis not found")

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;

CREATE TABLE IF NOT EXISTS analyses (
    analysis_id TEXT PRIMARY KEY,
    url TEXT NOT NULL,
    status TEXT NOT NULL,
    urls_found INTEGER NOT NULL DEFAULT 0,
    score INTEGER NOT NULL DEFAULT 0,
    summary TEXT NOT NULL DEFAULT '',
    result_json TEXT,
    report_json TEXT,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_analyses_url ON analyses(url);
CREATE INDEX IF NOT EXISTS idx_analyses_status ON analyses(status);
`

type Store struct {
	db *sql.DB
}

// Open opens or creates the analysis database at path. ":memory:"
// gives a process-private store, which is the default deployment mode.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put inserts a new analysis record. CreatedAt/UpdatedAt are stamped
// here if unset.
func (s *Store) Put(rec *models.AnalysisRecord) error {
	now := time.Now().UTC()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now

	resultJSON, err := marshalNullable(rec.Result)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	reportJSON, err := marshalNullable(rec.Report)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO analyses
		(analysis_id, url, status, urls_found, score, summary, result_json, report_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.URL, rec.Status, rec.URLsFound, rec.Score, rec.Summary,
		resultJSON, reportJSON, rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert analysis %s: %w", rec.ID, err)
	}
	return nil
}

// Get loads the record for id, or ErrNotFound.
func (s *Store) Get(id string) (*models.AnalysisRecord, error) {
	row := s.db.QueryRow(`
		SELECT analysis_id, url, status, urls_found, score, summary,
		       result_json, report_json, created_at, updated_at
		FROM analyses WHERE analysis_id = ?`, id)

	var rec models.AnalysisRecord
	var resultJSON, reportJSON sql.NullString
	err := row.Scan(&rec.ID, &rec.URL, &rec.Status, &rec.URLsFound, &rec.Score,
		&rec.Summary, &resultJSON, &reportJSON, &rec.CreatedAt, &rec.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load analysis %s: %w", id, err)
	}

	if resultJSON.Valid && resultJSON.String != "" {
		var result models.SiteResult
		if err := json.Unmarshal([]byte(resultJSON.String), &result); err != nil {
			return nil, fmt.Errorf("failed to decode result for %s: %w", id, err)
		}
		rec.Result = &result
	}
	if reportJSON.Valid && reportJSON.String != "" {
		var report models.Report
		if err := json.Unmarshal([]byte(reportJSON.String), &report); err != nil {
			return nil, fmt.Errorf("failed to decode report for %s: %w", id, err)
		}
		rec.Report = &report
	}
	return &rec, nil
}

// Fields carries a partial update; nil members are left untouched.
type Fields struct {
	Status    *string
	URLsFound *int
	Score     *int
	Summary   *string
	Result    *models.SiteResult
	Report    *models.Report
}

// Update applies the set members of fields to the record for id.
func (s *Store) Update(id string, fields Fields) error {
	var set []string
	var args []any

	if fields.Status != nil {
		set = append(set, "status = ?")
		args = append(args, *fields.Status)
	}
	if fields.URLsFound != nil {
		set = append(set, "urls_found = ?")
		args = append(args, *fields.URLsFound)
	}
	if fields.Score != nil {
		set = append(set, "score = ?")
		args = append(args, *fields.Score)
	}
	if fields.Summary != nil {
		set = append(set, "summary = ?")
		args = append(args, *fields.Summary)
	}
	if fields.Result != nil {
		data, err := json.Marshal(fields.Result)
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		set = append(set, "result_json = ?")
		args = append(args, string(data))
	}
	if fields.Report != nil {
		data, err := json.Marshal(fields.Report)
		if err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		set = append(set, "report_json = ?")
		args = append(args, string(data))
	}

	if len(set) == 0 {
		return nil
	}
	set = append(set, "updated_at = ?")
	args = append(args, time.Now().UTC())
	args = append(args, id)

	res, err := s.db.Exec(
		"UPDATE analyses SET "+strings.Join(set, ", ")+" WHERE analysis_id = ?", args...)
	if err != nil {
		return fmt.Errorf("failed to update analysis %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update of analysis %s: %w", id, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func marshalNullable[T any](v *T) (sql.NullString, error) {
	if v == nil {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

// String returns a pointer to s, for building Fields literals.
func String(s string) *string { return &s }

// Int returns a pointer to i, for building Fields literals.
func Int(i int) *int { return &i }
