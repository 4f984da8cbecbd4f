package kg

import (
	"context"
	"sort"
	"strings"
)

// MemorySearcher is an in-memory Searcher over a fixed corpus. It scores
// items by matched search terms, which is enough for tests and demos.
type MemorySearcher struct {
	nodes       []NodeResult
	edges       []EdgeResult
	episodes    []EpisodeResult
	communities []CommunityResult
}

var _ Searcher = (*MemorySearcher)(nil)

// NewMemorySearcher creates an empty in-memory searcher.
func NewMemorySearcher() *MemorySearcher {
	return &MemorySearcher{}
}

// AddNode adds an entity to the corpus.
func (m *MemorySearcher) AddNode(n NodeResult) {
	m.nodes = append(m.nodes, n)
}

// AddEdge adds a relationship to the corpus.
func (m *MemorySearcher) AddEdge(e EdgeResult) {
	m.edges = append(m.edges, e)
}

// AddEpisode adds a source chunk to the corpus.
func (m *MemorySearcher) AddEpisode(e EpisodeResult) {
	m.episodes = append(m.episodes, e)
}

// AddCommunity adds a cluster summary to the corpus.
func (m *MemorySearcher) AddCommunity(c CommunityResult) {
	m.communities = append(m.communities, c)
}

// Search matches query terms against the corpus and returns the
// best-scoring items per enabled component.
func (m *MemorySearcher) Search(_ context.Context, query string, opts SearchOptions) (SearchResults, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	terms := searchTerms(query)

	results := SearchResults{}
	if len(terms) == 0 {
		return results, nil
	}

	if opts.Nodes {
		results.Nodes = topBy(m.nodes, limit, func(n NodeResult) int {
			return score(terms, n.Name, n.Summary)
		})
	}
	if opts.Edges {
		results.Edges = topBy(m.edges, limit, func(e EdgeResult) int {
			return score(terms, e.Fact)
		})
	}
	if opts.Episodes {
		results.Episodes = topBy(m.episodes, limit, func(e EpisodeResult) int {
			return score(terms, e.Content)
		})
	}
	if opts.Communities {
		results.Communities = topBy(m.communities, limit, func(c CommunityResult) int {
			return score(terms, c.Summary)
		})
	}
	return results, nil
}

// score counts how many terms appear across the given texts.
func score(terms []string, texts ...string) int {
	joined := strings.ToLower(strings.Join(texts, " "))
	n := 0
	for _, term := range terms {
		if strings.Contains(joined, term) {
			n += strings.Count(joined, term)
		}
	}
	return n
}

// topBy returns up to limit items with a positive score, best first.
// The sort is stable so corpus order breaks ties.
func topBy[T any](items []T, limit int, scoreFn func(T) int) []T {
	type scored struct {
		item  T
		score int
	}
	var hits []scored
	for _, item := range items {
		if s := scoreFn(item); s > 0 {
			hits = append(hits, scored{item: item, score: s})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].score > hits[j].score
	})
	if len(hits) > limit {
		hits = hits[:limit]
	}
	out := make([]T, len(hits))
	for i, h := range hits {
		out[i] = h.item
	}
	return out
}
