package workflow

import (
	"github.com/agrigraph/durag/graph"
)

// Options selects which optional judging stages are spliced into the
// graph. Every combination compiles to a valid topology and every
// topology terminates under the retry budgets.
type Options struct {
	// EnableDocumentGrading filters retrieved documents for relevance
	// before generation and retries retrieval with a transformed query
	// when nothing survives.
	EnableDocumentGrading bool

	// EnableHallucinationChecking verifies the generation against the
	// retrieved context and regenerates when it is not grounded.
	EnableHallucinationChecking bool

	// EnableAnswerQualityChecking verifies the generation addresses the
	// question and retries with a transformed query when it does not.
	EnableAnswerQualityChecking bool
}

// Build assembles and compiles the workflow graph for the given options.
func Build(st *Stages, opts Options) (*graph.Runnable[State], error) {
	st.withDefaults()

	g := graph.NewStateGraph[State]()

	g.AddNode(StageRouteQuestion, "Route the question to a data source", st.routeQuestion)
	g.AddNode(StageKnowledgeGraphRetrieval, "Retrieve entities and relationships from the knowledge graph", st.knowledgeGraphRetrieval)
	g.AddNode(StageWebSearch, "Search the web for recent information", st.webSearch)
	g.AddNode(StageAnswerGeneration, "Generate the answer", st.answerGeneration)

	g.SetEntryPoint(StageRouteQuestion)
	g.AddConditionalEdge(StageRouteQuestion, st.decideRoute)
	g.AddEdge(StageWebSearch, StageAnswerGeneration)

	if opts.EnableDocumentGrading {
		g.AddNode(StageDocumentGrading, "Grade retrieved documents for relevance", st.documentGrading)
		g.AddEdge(StageKnowledgeGraphRetrieval, StageDocumentGrading)
		g.AddConditionalEdge(StageDocumentGrading, st.decideAfterGrading)
	} else {
		g.AddEdge(StageKnowledgeGraphRetrieval, StageAnswerGeneration)
	}

	if opts.EnableDocumentGrading || opts.EnableAnswerQualityChecking {
		g.AddNode(StageQueryTransformation, "Rewrite the question for better retrieval", st.queryTransformation)
		g.AddEdge(StageQueryTransformation, StageKnowledgeGraphRetrieval)
	}

	if opts.EnableAnswerQualityChecking {
		g.AddNode(StageQualityCheck, "Check whether the answer addresses the question", st.qualityCheck)
		g.AddConditionalEdge(StageQualityCheck, st.decideAfterQuality)
	}

	switch {
	case opts.EnableHallucinationChecking:
		g.AddNode(StageGroundingCheck, "Check the generation against the retrieved context", st.groundingCheck)
		g.AddEdge(StageAnswerGeneration, StageGroundingCheck)
		next := graph.END
		if opts.EnableAnswerQualityChecking {
			next = StageQualityCheck
		}
		g.AddConditionalEdge(StageGroundingCheck, st.decideAfterGrounding(next))
	case opts.EnableAnswerQualityChecking:
		g.AddEdge(StageAnswerGeneration, StageQualityCheck)
	default:
		g.AddEdge(StageAnswerGeneration, graph.END)
	}

	return g.Compile()
}
