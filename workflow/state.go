package workflow

import "github.com/agrigraph/durag/chains"

// Citation is a provenance record for one piece of evidence. A citation
// with a URL came from web search; one without came from the knowledge
// graph. Field presence is the only discriminant.
type Citation struct {
	Title string `json:"title"`
	URL   string `json:"url,omitempty"`
}

// State is the single record threaded through every stage of a run.
type State struct {
	// Question is the current, possibly rewritten, query text.
	Question string

	// Generation is the latest generated answer.
	Generation string

	// Route is the routing decision recorded by the entry stage.
	Route chains.Route

	// Evidence snippets in provider order. Each contents slice stays
	// index-aligned with its citations slice through every mutation.
	NodeContents []string
	EdgeContents []string
	WebContents  []string

	NodeCitations []Citation
	EdgeCitations []Citation
	WebCitations  []Citation

	// Citations is the deduplicated union of all citation slices,
	// populated at generation time in node, edge, web order.
	Citations []Citation

	// Retrieval toggles and limits.
	NodeRetrieval       bool
	EdgeRetrieval       bool
	EpisodeRetrieval    bool
	CommunityRetrieval  bool
	NRetrievedDocuments int
	NWebSearches        int

	// Retry counters. Both start at zero and only ever grow.
	QueryTransformationRetryCount int
	HallucinationRetryCount       int

	// Verdicts recorded by the optional post-generation checks.
	GenerationGrounded bool
	AnswerUseful       bool
}

// Default retrieval limits and retry budgets.
const (
	DefaultRetrievedDocuments = 3
	DefaultWebSearches        = 3

	DefaultMaxQueryTransformationRetries = 3
	DefaultMaxHallucinationRetries       = 3
	DefaultMaxConcurrentGrades           = 4
)

// NewState creates the initial state for a question with node and edge
// retrieval enabled and default limits.
func NewState(question string) State {
	return State{
		Question:            question,
		NodeRetrieval:       true,
		EdgeRetrieval:       true,
		NRetrievedDocuments: DefaultRetrievedDocuments,
		NWebSearches:        DefaultWebSearches,
	}
}

// Result is the terminal shape handed back to callers.
type Result struct {
	Answer    string     `json:"answer"`
	Citations []Citation `json:"citations"`
}

// Result extracts the answer and citations from a terminal state.
func (s State) Result() Result {
	citations := s.Citations
	if citations == nil {
		citations = []Citation{}
	}
	return Result{
		Answer:    s.Generation,
		Citations: citations,
	}
}

// HasEvidence reports whether any evidence was collected.
func (s State) HasEvidence() bool {
	return len(s.NodeContents) > 0 || len(s.EdgeContents) > 0 || len(s.WebContents) > 0
}
