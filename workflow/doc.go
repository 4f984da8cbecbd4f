// Package workflow implements the adaptive retrieval-and-generation
// control loop for durian pest and disease question answering.
//
// A question is routed to the knowledge graph, web search, or straight to
// generation from model knowledge. Retrieved evidence is optionally graded
// for relevance, the generated answer optionally checked for groundedness
// and for whether it resolves the question, and the loop retries with a
// rewritten query or a regeneration until it succeeds or its retry
// budgets run out. Every path terminates: budget exhaustion is a defined
// transition to a best-effort answer, and failures of model calls or
// providers degrade the state instead of aborting the run.
package workflow
