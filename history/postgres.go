package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBPool is the connection pool surface the Postgres store uses. It is
// satisfied by pgxpool.Pool and by pgxmock in tests.
type DBPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresStore persists run records in PostgreSQL.
type PostgresStore struct {
	pool DBPool
}

// NewPostgresStore connects a pool and creates the runs table.
func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	store := &PostgresStore{pool: pool}
	if err := store.InitSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return store, nil
}

// NewPostgresStoreWithPool wraps an existing pool. Useful for testing
// with mocks.
func NewPostgresStoreWithPool(pool DBPool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// InitSchema creates the runs table if it does not exist.
func (s *PostgresStore) InitSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			question TEXT NOT NULL,
			answer TEXT NOT NULL,
			citations JSONB NOT NULL,
			steps JSONB NOT NULL,
			started_at TIMESTAMPTZ NOT NULL,
			finished_at TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs (started_at DESC);
	`
	if _, err := s.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Close closes the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

func (s *PostgresStore) Save(ctx context.Context, record *RunRecord) error {
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
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			question = EXCLUDED.question,
			answer = EXCLUDED.answer,
			citations = EXCLUDED.citations,
			steps = EXCLUDED.steps,
			started_at = EXCLUDED.started_at,
			finished_at = EXCLUDED.finished_at
	`
	_, err = s.pool.Exec(ctx, query,
		record.ID, record.Question, record.Answer,
		citationsJSON, stepsJSON,
		record.StartedAt, record.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	return nil
}

func (s *PostgresStore) Load(ctx context.Context, id string) (*RunRecord, error) {
	query := `
		SELECT id, question, answer, citations, steps, started_at, finished_at
		FROM runs WHERE id = $1
	`
	record, err := scanPgRun(s.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	return record, err
}

func (s *PostgresStore) List(ctx context.Context, limit int) ([]*RunRecord, error) {
	query := `
		SELECT id, question, answer, citations, steps, started_at, finished_at
		FROM runs ORDER BY started_at DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var records []*RunRecord
	for rows.Next() {
		record, err := scanPgRun(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, "DELETE FROM runs WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	return nil
}

func scanPgRun(row pgx.Row) (*RunRecord, error) {
	var record RunRecord
	var citationsJSON, stepsJSON []byte

	err := row.Scan(&record.ID, &record.Question, &record.Answer,
		&citationsJSON, &stepsJSON, &record.StartedAt, &record.FinishedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(citationsJSON, &record.Citations); err != nil {
		return nil, fmt.Errorf("failed to unmarshal citations: %w", err)
	}
	if err := json.Unmarshal(stepsJSON, &record.Steps); err != nil {
		return nil, fmt.Errorf("failed to unmarshal steps: %w", err)
	}
	return &record, nil
}
