// Package store persists workflow context snapshots in SQLite. The core's
// transition functions are pure; this is the caller-owned storage layer the
// core assumes, with an optimistic version check guarding racing writers.
package store

import (
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/cdimurro/trlgauge/internal/models"
	"github.com/cdimurro/trlgauge/internal/workflow"
)

//go:embed schema.sql
var schemaSQL string

// Errors returned by the store.
var (
	ErrNotFound        = errors.New("assessment not found")
	ErrVersionConflict = errors.New("context version conflict: snapshot is stale")
)

// Summary is a row of the assessment listing.
type Summary struct {
	AssessmentID string
	State        workflow.State
	Version      int64
	UpdatedAt    time.Time
}

// Store manages the SQLite database of assessment contexts.
type Store struct {
	db     *sql.DB
	dbPath string
}

// NewStore opens (creating if needed) the database at dbPath and applies
// the schema. ":memory:" is supported for tests.
func NewStore(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// busy_timeout first so the remaining pragmas wait on locks.
	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if err := execWithRetry(db, pragma, 5, 10*time.Millisecond); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// execWithRetry executes a statement with exponential backoff on
// "database is locked" errors, which can occur during concurrent
// initialization of the same file.
func execWithRetry(db *sql.DB, stmt string, maxRetries int, baseDelay time.Duration) error {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		_, err := db.Exec(stmt)
		if err == nil {
			return nil
		}
		if !strings.Contains(err.Error(), "database is locked") {
			return err
		}
		lastErr = err
		time.Sleep(baseDelay * time.Duration(1<<attempt))
	}
	return lastErr
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save commits a context snapshot. New assessments insert at version 1.
// Existing ones require the snapshot's version to match the stored row
// (optimistic concurrency); on success the returned context carries the
// bumped version. History entries are appended by id, so replays are safe.
func (s *Store) Save(ctx workflow.Context) (workflow.Context, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return ctx, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var current int64
	err = tx.QueryRow(`SELECT version FROM contexts WHERE assessment_id = ?`, ctx.AssessmentID).Scan(&current)
	switch {
	case err == sql.ErrNoRows:
		ctx.Version = 1
		data, merr := json.Marshal(ctx)
		if merr != nil {
			return ctx, fmt.Errorf("marshal context: %w", merr)
		}
		_, err = tx.Exec(
			`INSERT INTO contexts (assessment_id, state, version, data, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
			ctx.AssessmentID, string(ctx.State), ctx.Version, string(data), ctx.CreatedAt, ctx.UpdatedAt)
		if err != nil {
			return ctx, fmt.Errorf("insert context: %w", err)
		}
	case err != nil:
		return ctx, fmt.Errorf("query context version: %w", err)
	default:
		if ctx.Version != current {
			return ctx, fmt.Errorf("%w: have %d, stored %d", ErrVersionConflict, ctx.Version, current)
		}
		ctx.Version = current + 1
		data, merr := json.Marshal(ctx)
		if merr != nil {
			return ctx, fmt.Errorf("marshal context: %w", merr)
		}
		_, err = tx.Exec(
			`UPDATE contexts SET state = ?, version = ?, data = ?, updated_at = ? WHERE assessment_id = ? AND version = ?`,
			string(ctx.State), ctx.Version, string(data), ctx.UpdatedAt, ctx.AssessmentID, current)
		if err != nil {
			return ctx, fmt.Errorf("update context: %w", err)
		}
	}

	for _, h := range ctx.History {
		_, err = tx.Exec(
			`INSERT OR IGNORE INTO history (id, assessment_id, action, from_state, to_state, actor, timestamp, note) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			h.ID, ctx.AssessmentID, string(h.Action), string(h.FromState), string(h.ToState), h.Actor, h.Timestamp, h.Note)
		if err != nil {
			return ctx, fmt.Errorf("insert history entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return ctx, fmt.Errorf("commit: %w", err)
	}
	return ctx, nil
}

// Load retrieves the context snapshot for an assessment id.
func (s *Store) Load(assessmentID string) (workflow.Context, error) {
	var data string
	var version int64
	err := s.db.QueryRow(
		`SELECT data, version FROM contexts WHERE assessment_id = ?`, assessmentID).Scan(&data, &version)
	if err == sql.ErrNoRows {
		return workflow.Context{}, fmt.Errorf("%w: %s", ErrNotFound, assessmentID)
	}
	if err != nil {
		return workflow.Context{}, fmt.Errorf("query context: %w", err)
	}

	var ctx workflow.Context
	if err := json.Unmarshal([]byte(data), &ctx); err != nil {
		return workflow.Context{}, fmt.Errorf("unmarshal context: %w", err)
	}
	ctx.Version = version
	if ctx.Session.IndividualScores == nil {
		ctx.Session.IndividualScores = make(map[string]models.MaturityScore)
	}
	return ctx, nil
}

// List returns a summary row for every stored assessment, most recently
// updated first.
func (s *Store) List() ([]Summary, error) {
	rows, err := s.db.Query(
		`SELECT assessment_id, state, version, updated_at FROM contexts ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query contexts: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var sum Summary
		var state string
		if err := rows.Scan(&sum.AssessmentID, &state, &sum.Version, &sum.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		sum.State = workflow.State(state)
		out = append(out, sum)
	}
	return out, rows.Err()
}

// Delete removes an assessment and its history.
func (s *Store) Delete(assessmentID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM history WHERE assessment_id = ?`, assessmentID); err != nil {
		return fmt.Errorf("delete history: %w", err)
	}
	res, err := tx.Exec(`DELETE FROM contexts WHERE assessment_id = ?`, assessmentID)
	if err != nil {
		return fmt.Errorf("delete context: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, assessmentID)
	}
	return tx.Commit()
}
