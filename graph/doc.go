// Package graph provides a typed state-machine engine for building
// cyclic workflows. A StateGraph is assembled from named nodes, static
// edges and conditional edges, compiled into a Runnable, and then driven
// step by step from its entry point until it reaches END.
//
// The engine is deliberately sequential: exactly one node runs per step,
// and the state returned by that node is the state the next node sees.
// Cycles are first-class, so a step limit guards every invocation.
package graph
