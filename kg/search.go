package kg

import "context"

// SearchOptions selects graph components and caps results per component.
type SearchOptions struct {
	// Limit caps results per component. Zero means DefaultLimit.
	Limit int

	// Nodes enables entity retrieval (pests, diseases, symptoms).
	Nodes bool

	// Edges enables relationship retrieval (causes, treats, hosts).
	Edges bool

	// Episodes enables source text chunk retrieval.
	Episodes bool

	// Communities enables clustered summary retrieval.
	Communities bool
}

// DefaultLimit is the per-component result cap when none is given.
const DefaultLimit = 10

// DefaultSearchOptions retrieves nodes and edges, the combination the
// answer workflow uses.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		Limit: DefaultLimit,
		Nodes: true,
		Edges: true,
	}
}

// NodeResult is a retrieved entity.
type NodeResult struct {
	// Name is the entity name, e.g. "Phytophthora palmivora".
	Name string

	// Summary describes the entity.
	Summary string

	// GroupID identifies the source document the entity came from.
	GroupID string
}

// EdgeResult is a retrieved relationship.
type EdgeResult struct {
	// Fact is the natural-language statement of the relationship.
	Fact string

	// GroupID identifies the source document the fact came from.
	GroupID string
}

// EpisodeResult is a retrieved source text chunk.
type EpisodeResult struct {
	Content string
	GroupID string
}

// CommunityResult is a retrieved cluster summary.
type CommunityResult struct {
	Summary string
	GroupID string
}

// SearchResults holds everything a search returned.
type SearchResults struct {
	Nodes       []NodeResult
	Edges       []EdgeResult
	Episodes    []EpisodeResult
	Communities []CommunityResult
}

// Searcher retrieves evidence from a knowledge graph.
type Searcher interface {
	Search(ctx context.Context, query string, opts SearchOptions) (SearchResults, error)
}
