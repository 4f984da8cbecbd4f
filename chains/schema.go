package chains

import "fmt"

// Route identifies the data source a question is dispatched to.
type Route string

const (
	// RouteKGRetrieval answers domain questions from the knowledge graph.
	RouteKGRetrieval Route = "kg_retrieval"

	// RouteWebSearch answers time-sensitive questions from the web.
	RouteWebSearch Route = "web_search"

	// RouteLLMInternal answers out-of-domain questions from model knowledge.
	RouteLLMInternal Route = "llm_internal"
)

// ParseRoute validates a raw routing decision.
func ParseRoute(s string) (Route, error) {
	switch Route(s) {
	case RouteKGRetrieval, RouteWebSearch, RouteLLMInternal:
		return Route(s), nil
	}
	return "", fmt.Errorf("unknown route %q", s)
}

// routeQuery is the structured output of the routing chain.
type routeQuery struct {
	DataSource string `json:"data_source"`
}

// binaryScore is the structured output shared by all grading chains.
type binaryScore struct {
	BinaryScore string `json:"binary_score"`
}

// queryRefinement is the structured output of the rewriting chain.
type queryRefinement struct {
	RefinedQuestion string `json:"refined_question"`
}

// generateAnswer is the structured output of the generation chains.
type generateAnswer struct {
	Answer string `json:"answer"`
}
