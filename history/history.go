package history

import (
	"context"
	"errors"
	"time"

	"github.com/agrigraph/durag/workflow"
)

// ErrRunNotFound is returned when a run id has no stored record.
var ErrRunNotFound = errors.New("run not found")

// StepRecord captures one executed stage and how long it took.
type StepRecord struct {
	Name     string        `json:"name"`
	Duration time.Duration `json:"duration"`
}

// RunRecord is the persisted trace of one workflow run.
type RunRecord struct {
	ID         string              `json:"id"`
	Question   string              `json:"question"`
	Answer     string              `json:"answer"`
	Citations  []workflow.Citation `json:"citations"`
	Steps      []StepRecord        `json:"steps"`
	StartedAt  time.Time           `json:"started_at"`
	FinishedAt time.Time           `json:"finished_at"`
}

// Store persists run records.
type Store interface {
	// Save stores a record, replacing any record with the same id.
	Save(ctx context.Context, record *RunRecord) error

	// Load returns the record with the given id, or ErrRunNotFound.
	Load(ctx context.Context, id string) (*RunRecord, error)

	// List returns up to limit records, most recent first. A
	// non-positive limit returns all records.
	List(ctx context.Context, limit int) ([]*RunRecord, error)

	// Delete removes a record. Deleting a missing id is not an error.
	Delete(ctx context.Context, id string) error
}
