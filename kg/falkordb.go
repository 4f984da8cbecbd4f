package kg

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/redis/go-redis/v9"
)

// FalkorDBSearcher implements Searcher against a FalkorDB graph reached
// over the redis protocol with GRAPH.QUERY.
type FalkorDBSearcher struct {
	client    redis.UniversalClient
	graphName string
}

var _ Searcher = (*FalkorDBSearcher)(nil)

// NewFalkorDBSearcher connects to a graph given a connection string of
// the form falkordb://host:port/graph_name.
func NewFalkorDBSearcher(connectionString string) (*FalkorDBSearcher, error) {
	u, err := url.Parse(connectionString)
	if err != nil {
		return nil, fmt.Errorf("invalid connection string: %w", err)
	}

	addr := u.Host
	if addr == "" {
		return nil, fmt.Errorf("invalid connection string: missing host")
	}
	graphName := strings.TrimPrefix(u.Path, "/")
	if graphName == "" {
		graphName = "durian"
	}

	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	return &FalkorDBSearcher{
		client:    client,
		graphName: graphName,
	}, nil
}

// NewFalkorDBSearcherWithClient wraps an existing redis client, which is
// what tests and pooled deployments use.
func NewFalkorDBSearcherWithClient(client redis.UniversalClient, graphName string) *FalkorDBSearcher {
	return &FalkorDBSearcher{
		client:    client,
		graphName: graphName,
	}
}

// Search performs keyword matching across the enabled graph components.
func (f *FalkorDBSearcher) Search(ctx context.Context, query string, opts SearchOptions) (SearchResults, error) {
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
		cypher := fmt.Sprintf(
			"MATCH (n:Entity) WHERE %s RETURN n.name, n.summary, n.group_id LIMIT %d",
			containsClause(terms, "n.name", "n.summary"), limit)
		rows, err := f.query(ctx, cypher)
		if err != nil {
			return SearchResults{}, fmt.Errorf("node search: %w", err)
		}
		for _, row := range rows {
			if len(row) < 3 {
				continue
			}
			results.Nodes = append(results.Nodes, NodeResult{
				Name:    asString(row[0]),
				Summary: asString(row[1]),
				GroupID: asString(row[2]),
			})
		}
	}

	if opts.Edges {
		cypher := fmt.Sprintf(
			"MATCH ()-[r]->() WHERE %s RETURN r.fact, r.group_id LIMIT %d",
			containsClause(terms, "r.fact"), limit)
		rows, err := f.query(ctx, cypher)
		if err != nil {
			return SearchResults{}, fmt.Errorf("edge search: %w", err)
		}
		for _, row := range rows {
			if len(row) < 2 {
				continue
			}
			results.Edges = append(results.Edges, EdgeResult{
				Fact:    asString(row[0]),
				GroupID: asString(row[1]),
			})
		}
	}

	if opts.Episodes {
		cypher := fmt.Sprintf(
			"MATCH (e:Episodic) WHERE %s RETURN e.content, e.group_id LIMIT %d",
			containsClause(terms, "e.content"), limit)
		rows, err := f.query(ctx, cypher)
		if err != nil {
			return SearchResults{}, fmt.Errorf("episode search: %w", err)
		}
		for _, row := range rows {
			if len(row) < 2 {
				continue
			}
			results.Episodes = append(results.Episodes, EpisodeResult{
				Content: asString(row[0]),
				GroupID: asString(row[1]),
			})
		}
	}

	if opts.Communities {
		cypher := fmt.Sprintf(
			"MATCH (c:Community) WHERE %s RETURN c.summary, c.group_id LIMIT %d",
			containsClause(terms, "c.summary"), limit)
		rows, err := f.query(ctx, cypher)
		if err != nil {
			return SearchResults{}, fmt.Errorf("community search: %w", err)
		}
		for _, row := range rows {
			if len(row) < 2 {
				continue
			}
			results.Communities = append(results.Communities, CommunityResult{
				Summary: asString(row[0]),
				GroupID: asString(row[1]),
			})
		}
	}

	return results, nil
}

// Close closes the underlying redis client.
func (f *FalkorDBSearcher) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}

// query runs a cypher statement and returns the result rows. The raw
// GRAPH.QUERY reply is [header, rows, statistics], with string values
// arriving as []byte.
func (f *FalkorDBSearcher) query(ctx context.Context, cypher string) ([][]interface{}, error) {
	res, err := f.client.Do(ctx, "GRAPH.QUERY", f.graphName, cypher).Result()
	if err != nil {
		return nil, err
	}

	reply, ok := res.([]interface{})
	if !ok {
		return nil, fmt.Errorf("unexpected response type: %T", res)
	}

	var rawRows interface{}
	switch len(reply) {
	case 3:
		rawRows = reply[1]
	case 2:
		rawRows = reply[0]
	default:
		return nil, fmt.Errorf("unexpected response length: %d", len(reply))
	}

	rows, ok := rawRows.([]interface{})
	if !ok {
		return nil, nil
	}

	out := make([][]interface{}, 0, len(rows))
	for _, row := range rows {
		if vals, ok := row.([]interface{}); ok {
			out = append(out, vals)
		}
	}
	return out, nil
}

// containsClause builds a case-insensitive CONTAINS disjunction over the
// given fields and terms.
func containsClause(terms []string, fields ...string) string {
	clauses := make([]string, 0, len(terms)*len(fields))
	for _, field := range fields {
		for _, term := range terms {
			clauses = append(clauses, fmt.Sprintf("toLower(%s) CONTAINS '%s'", field, escapeString(term)))
		}
	}
	return "(" + strings.Join(clauses, " OR ") + ")"
}

// escapeString makes a term safe inside a single-quoted cypher literal.
func escapeString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, "'", `\'`)
}

// asString coerces a redis reply value to a string. Missing properties
// come back as nil and map to "".
func asString(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	default:
		return fmt.Sprint(x)
	}
}

// searchTerms lowercases a question and strips filler words, leaving the
// terms worth matching against graph properties.
func searchTerms(query string) []string {
	fields := strings.FieldsFunc(strings.ToLower(query), func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	})

	terms := make([]string, 0, len(fields))
	seen := make(map[string]bool)
	for _, w := range fields {
		if len(w) < 3 || stopwords[w] || seen[w] {
			continue
		}
		seen[w] = true
		terms = append(terms, w)
	}
	return terms
}

var stopwords = map[string]bool{
	"the": true, "and": true, "are": true, "for": true, "with": true,
	"what": true, "when": true, "where": true, "which": true, "who": true,
	"how": true, "why": true, "can": true, "could": true, "should": true,
	"does": true, "that": true, "this": true, "there": true, "about": true,
	"have": true, "has": true, "will": true, "would": true, "from": true,
	"into": true, "onto": true, "them": true, "they": true,
}
