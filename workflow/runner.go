package workflow

import (
	"context"

	"github.com/agrigraph/durag/graph"
)

// Workflow is a compiled question-answering graph ready to run.
type Workflow struct {
	runnable *graph.Runnable[State]
	stages   *Stages
	opts     Options
}

// New builds a workflow from the given stage dependencies and options.
func New(st *Stages, opts Options) (*Workflow, error) {
	runnable, err := Build(st, opts)
	if err != nil {
		return nil, err
	}
	return &Workflow{runnable: runnable, stages: st, opts: opts}, nil
}

// Run answers a question and returns the final answer with its sources.
func (w *Workflow) Run(ctx context.Context, question string) (Result, error) {
	final, err := w.RunState(ctx, NewState(question))
	if err != nil {
		return Result{}, err
	}
	return final.Result(), nil
}

// RunState executes the workflow from an explicit initial state, which
// lets callers tune retrieval toggles and budgets per run.
func (w *Workflow) RunState(ctx context.Context, initial State) (State, error) {
	return w.runnable.Invoke(ctx, initial)
}

// Stream executes the workflow and emits an event after every stage.
// The terminal event carries the final state, or the error that stopped
// execution.
func (w *Workflow) Stream(ctx context.Context, initial State) <-chan graph.Event[State] {
	return w.runnable.Stream(ctx, initial)
}
