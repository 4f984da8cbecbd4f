// Package kg retrieves evidence from the durian pest and disease
// knowledge graph. The primary implementation talks to FalkorDB over the
// redis protocol; an in-memory searcher backs tests and offline use.
//
// A search fans across up to four graph components (entity nodes,
// relationship edges, source episodes and community summaries), each of
// which can be toggled independently.
package kg
