package workflow

import (
	"context"

	"github.com/agrigraph/durag/chains"
	"github.com/agrigraph/durag/graph"
)

// The conditional-edge functions below never call external services.
// They read counters and evidence already recorded by the stage nodes,
// which keeps every branch decision deterministic and testable.

// decideRoute dispatches from the entry stage on the recorded route.
func (st *Stages) decideRoute(_ context.Context, s State) string {
	switch s.Route {
	case chains.RouteKGRetrieval:
		return StageKnowledgeGraphRetrieval
	case chains.RouteWebSearch:
		return StageWebSearch
	default:
		return StageAnswerGeneration
	}
}

// decideAfterGrading chooses the next stage once retrieved documents
// have been graded. Surviving graph evidence goes straight to
// generation. Empty graph evidence retries with a transformed query
// while budget remains, then falls back to web search. Only node and
// edge contents count here: web contents from an earlier pass are
// stale for the rewritten question and must not short-circuit the
// retry cycle.
func (st *Stages) decideAfterGrading(_ context.Context, s State) string {
	if len(s.NodeContents) > 0 || len(s.EdgeContents) > 0 {
		return StageAnswerGeneration
	}
	if s.QueryTransformationRetryCount < st.MaxQueryTransformationRetries {
		return StageQueryTransformation
	}
	return StageWebSearch
}

// decideAfterGrounding routes after the grounding check. An ungrounded
// generation regenerates while the hallucination budget allows;
// exhaustion ends the run with the last generation as a best effort.
// next is the stage that follows a grounded generation, either the
// quality check or END.
func (st *Stages) decideAfterGrounding(next string) func(context.Context, State) string {
	return func(_ context.Context, s State) string {
		if s.GenerationGrounded {
			return next
		}
		if s.HallucinationRetryCount < st.MaxHallucinationRetries {
			return StageAnswerGeneration
		}
		return graph.END
	}
}

// decideAfterQuality ends the run on a useful answer. An unhelpful one
// retries with a transformed query while budget remains.
func (st *Stages) decideAfterQuality(_ context.Context, s State) string {
	if s.AnswerUseful {
		return graph.END
	}
	if s.QueryTransformationRetryCount < st.MaxQueryTransformationRetries {
		return StageQueryTransformation
	}
	return graph.END
}
