package websearch

import "context"

// Result is one web search hit.
type Result struct {
	// Title is the page title.
	Title string

	// URL is the page address.
	URL string

	// Content is the snippet or extracted content.
	Content string
}

// Searcher retrieves web results for a query.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]Result, error)
}

// DefaultMaxResults caps a search when the caller passes no limit.
const DefaultMaxResults = 5
