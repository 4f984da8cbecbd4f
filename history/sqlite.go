package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore persists run records in a SQLite database file. Use the
// path ":memory:" for a volatile database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens the database and creates the runs table.
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("unable to open database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) initSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			question TEXT NOT NULL,
			answer TEXT NOT NULL,
			citations TEXT NOT NULL,
			steps TEXT NOT NULL,
			started_at TIMESTAMP NOT NULL,
			finished_at TIMESTAMP NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs (started_at DESC);
	`
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Save(ctx context.Context, record *RunRecord) error {
	citationsJSON, err := json.Marshal(record.Citations)
	if err != nil {
		return fmt.Errorf("failed to marshal citations: %w", err)
	}
	stepsJSON, err := json.Marshal(record.Steps)
	if err != nil {
		return fmt.Errorf("failed to marshal steps: %w", err)
	}

	query := `
		INSERT INTO runs (id, question, answer, citations, steps, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			question = excluded.question,
			answer = excluded.answer,
			citations = excluded.citations,
			steps = excluded.steps,
			started_at = excluded.started_at,
			finished_at = excluded.finished_at
	`
	_, err = s.db.ExecContext(ctx, query,
		record.ID, record.Question, record.Answer,
		string(citationsJSON), string(stepsJSON),
		record.StartedAt, record.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context, id string) (*RunRecord, error) {
	query := `
		SELECT id, question, answer, citations, steps, started_at, finished_at
		FROM runs WHERE id = ?
	`
	record, err := scanRun(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	return record, err
}

func (s *SQLiteStore) List(ctx context.Context, limit int) ([]*RunRecord, error) {
	query := `
		SELECT id, question, answer, citations, steps, started_at, finished_at
		FROM runs ORDER BY started_at DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var records []*RunRecord
	for rows.Next() {
		record, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*RunRecord, error) {
	var record RunRecord
	var citationsJSON, stepsJSON string
	var startedAt, finishedAt time.Time

	err := row.Scan(&record.ID, &record.Question, &record.Answer,
		&citationsJSON, &stepsJSON, &startedAt, &finishedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(citationsJSON), &record.Citations); err != nil {
		return nil, fmt.Errorf("failed to unmarshal citations: %w", err)
	}
	if err := json.Unmarshal([]byte(stepsJSON), &record.Steps); err != nil {
		return nil, fmt.Errorf("failed to unmarshal steps: %w", err)
	}
	record.StartedAt = startedAt
	record.FinishedAt = finishedAt
	return &record, nil
}
