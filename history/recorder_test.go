package history

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrigraph/durag/graph"
	"github.com/agrigraph/durag/log"
	"github.com/agrigraph/durag/workflow"
)

// fakeStreamer replays a scripted event sequence.
type fakeStreamer struct {
	events []graph.Event[workflow.State]
}

func (f fakeStreamer) Stream(ctx context.Context, _ workflow.State) <-chan graph.Event[workflow.State] {
	out := make(chan graph.Event[workflow.State])
	go func() {
		defer close(out)
		for _, event := range f.events {
			select {
			case out <- event:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

func TestRecorderRun(t *testing.T) {
	var final workflow.State
	final.Generation = "Prune infected branches and apply copper fungicide."
	final.Citations = []workflow.Citation{{Title: "Durian Orchard Sanitation Manual"}}

	streamer := fakeStreamer{events: []graph.Event[workflow.State]{
		{Node: "route_question"},
		{Node: "knowledge_graph_retrieval"},
		{Node: "answer_generation"},
		{Node: graph.END, State: final},
	}}
	store := NewMemoryStore()
	recorder := NewRecorder(streamer, store, &log.NoOpLogger{})

	record, err := recorder.Run(context.Background(), workflow.NewState("how to treat stem canker?"))
	require.NoError(t, err)

	assert.NotEmpty(t, record.ID)
	assert.Equal(t, "how to treat stem canker?", record.Question)
	assert.Equal(t, "Prune infected branches and apply copper fungicide.", record.Answer)
	assert.Equal(t, final.Citations, record.Citations)
	require.Len(t, record.Steps, 3)
	assert.Equal(t, "route_question", record.Steps[0].Name)
	assert.Equal(t, "answer_generation", record.Steps[2].Name)
	assert.False(t, record.FinishedAt.Before(record.StartedAt))

	saved, err := store.Load(context.Background(), record.ID)
	require.NoError(t, err)
	assert.Equal(t, record.Answer, saved.Answer)
}

func TestRecorderPropagatesStreamError(t *testing.T) {
	streamer := fakeStreamer{events: []graph.Event[workflow.State]{
		{Node: "route_question"},
		{Node: graph.END, Err: errors.New("stage exploded")},
	}}
	store := NewMemoryStore()
	recorder := NewRecorder(streamer, store, &log.NoOpLogger{})

	_, err := recorder.Run(context.Background(), workflow.NewState("q"))
	assert.Error(t, err)

	records, listErr := store.List(context.Background(), 0)
	require.NoError(t, listErr)
	assert.Empty(t, records)
}

type failingStore struct {
	MemoryStore
}

func (f *failingStore) Save(context.Context, *RunRecord) error {
	return errors.New("disk full")
}

func TestRecorderReturnsRecordOnSaveFailure(t *testing.T) {
	streamer := fakeStreamer{events: []graph.Event[workflow.State]{
		{Node: graph.END},
	}}
	recorder := NewRecorder(streamer, &failingStore{}, &log.NoOpLogger{})

	record, err := recorder.Run(context.Background(), workflow.NewState("q"))
	assert.Error(t, err)
	assert.NotNil(t, record)
}
