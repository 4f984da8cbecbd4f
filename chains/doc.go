// Package chains implements the model-backed judgment functions of the
// workflow: question routing, document relevance grading, hallucination
// and answer-quality grading, query rewriting and answer generation.
//
// Every chain pairs a prompt with a structured JSON output contract and
// runs it through an Invoker. Two invokers ship with the package, one on
// langchaingo's llms.Model and one on the go-openai client, so any model
// either library can reach works here.
package chains
