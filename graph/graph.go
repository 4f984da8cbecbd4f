package graph

import "errors"

// END is a special constant used to represent the end node in the graph.
const END = "END"

// DefaultStepLimit bounds a single invocation. Cyclic graphs are expected
// here, so a runaway condition function must not spin forever.
const DefaultStepLimit = 50

var (
	// ErrEntryPointNotSet is returned when the entry point of the graph is not set.
	ErrEntryPointNotSet = errors.New("entry point not set")

	// ErrNodeNotFound is returned when a node is not found in the graph.
	ErrNodeNotFound = errors.New("node not found")

	// ErrNoOutgoingEdge is returned when no outgoing edge is found for a node.
	ErrNoOutgoingEdge = errors.New("no outgoing edge found for node")

	// ErrStepLimitExceeded is returned when an invocation runs more steps
	// than the configured limit.
	ErrStepLimitExceeded = errors.New("step limit exceeded")
)

// Edge represents a static edge in the graph.
type Edge struct {
	// From is the name of the node from which the edge originates.
	From string

	// To is the name of the node to which the edge points.
	To string
}
