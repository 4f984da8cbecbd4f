// Package durag answers durian pest and disease questions with an
// adaptive retrieval workflow.
//
// A question is routed to the best evidence source: a FalkorDB
// knowledge graph of pests, diseases, symptoms and treatments; live web
// search for recent information; or the model's own knowledge for
// questions outside the indexed corpus. Optional judging stages grade
// retrieved documents for relevance, check the generated answer for
// grounding in the evidence, and check that it actually addresses the
// question. Failed checks retry with rewritten queries or regeneration
// under fixed budgets, so every run terminates.
//
// Packages:
//
//   - graph: the typed state-graph engine that drives the workflow
//   - workflow: the stages, decisions and graph topologies
//   - chains: LLM-backed routing, grading, rewriting and generation
//   - kg: FalkorDB knowledge graph retrieval
//   - websearch: Tavily and DuckDuckGo providers
//   - history: persisted run records with per-stage timings
//   - render: markdown and sanitized HTML reports
//   - config: file and environment configuration
//
// See examples/assistant for a complete command-line wiring.
package durag
