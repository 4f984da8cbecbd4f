package history

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresStore_Save(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewPostgresStoreWithPool(mock)
	record := sampleRecord("run-1", time.Now())

	citationsJSON, _ := json.Marshal(record.Citations)
	stepsJSON, _ := json.Marshal(record.Steps)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO runs")).
		WithArgs(
			record.ID,
			record.Question,
			record.Answer,
			citationsJSON,
			stepsJSON,
			record.StartedAt,
			record.FinishedAt,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = store.Save(context.Background(), record)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Load(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewPostgresStoreWithPool(mock)
	record := sampleRecord("run-1", time.Now())

	citationsJSON, _ := json.Marshal(record.Citations)
	stepsJSON, _ := json.Marshal(record.Steps)

	rows := pgxmock.NewRows([]string{
		"id", "question", "answer", "citations", "steps", "started_at", "finished_at",
	}).AddRow(
		record.ID, record.Question, record.Answer,
		citationsJSON, stepsJSON, record.StartedAt, record.FinishedAt,
	)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, question, answer, citations, steps, started_at, finished_at")).
		WithArgs("run-1").
		WillReturnRows(rows)

	loaded, err := store.Load(context.Background(), "run-1")
	require.NoError(t, err)
	assert.Equal(t, record.Question, loaded.Question)
	assert.Equal(t, record.Citations, loaded.Citations)
	assert.Equal(t, record.Steps, loaded.Steps)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_LoadMissing(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewPostgresStoreWithPool(mock)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT")).
		WithArgs("absent").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "question", "answer", "citations", "steps", "started_at", "finished_at",
		}))

	_, err = store.Load(context.Background(), "absent")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestPostgresStore_List(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewPostgresStoreWithPool(mock)
	first := sampleRecord("run-1", time.Now())
	second := sampleRecord("run-2", time.Now().Add(-time.Hour))

	rows := pgxmock.NewRows([]string{
		"id", "question", "answer", "citations", "steps", "started_at", "finished_at",
	})
	for _, record := range []*RunRecord{first, second} {
		citationsJSON, _ := json.Marshal(record.Citations)
		stepsJSON, _ := json.Marshal(record.Steps)
		rows.AddRow(record.ID, record.Question, record.Answer,
			citationsJSON, stepsJSON, record.StartedAt, record.FinishedAt)
	}

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY started_at DESC")).
		WithArgs(2).
		WillReturnRows(rows)

	records, err := store.List(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "run-1", records[0].ID)
	assert.Equal(t, "run-2", records[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Delete(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewPostgresStoreWithPool(mock)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM runs")).
		WithArgs("run-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err = store.Delete(context.Background(), "run-1")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SaveError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewPostgresStoreWithPool(mock)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO runs")).
		WillReturnError(errors.New("connection lost"))

	err = store.Save(context.Background(), sampleRecord("run-1", time.Now()))
	assert.Error(t, err)
}
