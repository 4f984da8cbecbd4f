package history

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/agrigraph/durag/graph"
	"github.com/agrigraph/durag/log"
	"github.com/agrigraph/durag/workflow"
)

// Streamer is the workflow surface the recorder consumes.
type Streamer interface {
	Stream(ctx context.Context, initial workflow.State) <-chan graph.Event[workflow.State]
}

// Recorder runs a workflow and persists a timed trace of each run.
type Recorder struct {
	workflow Streamer
	store    Store
	logger   log.Logger
}

// NewRecorder wires a workflow to a history store.
func NewRecorder(w Streamer, store Store, logger log.Logger) *Recorder {
	if logger == nil {
		logger = log.GetDefaultLogger()
	}
	return &Recorder{workflow: w, store: store, logger: logger}
}

// Run executes the workflow, timing each stage, and saves the resulting
// record. The record is returned even when saving fails, alongside the
// save error.
func (r *Recorder) Run(ctx context.Context, initial workflow.State) (*RunRecord, error) {
	record := &RunRecord{
		ID:        uuid.NewString(),
		Question:  initial.Question,
		StartedAt: time.Now(),
	}

	var final workflow.State
	stepStart := time.Now()
	for event := range r.workflow.Stream(ctx, initial) {
		if event.Err != nil {
			return record, event.Err
		}
		if event.Node == graph.END {
			final = event.State
			break
		}
		record.Steps = append(record.Steps, StepRecord{
			Name:     event.Node,
			Duration: time.Since(stepStart),
		})
		stepStart = time.Now()
	}

	record.FinishedAt = time.Now()
	result := final.Result()
	record.Answer = result.Answer
	record.Citations = result.Citations

	if err := r.store.Save(ctx, record); err != nil {
		r.logger.Warn("failed to save run %s: %v", record.ID, err)
		return record, err
	}
	r.logger.Info("run %s completed in %d steps", record.ID, len(record.Steps))
	return record, nil
}
