package graph

import (
	"context"
	"fmt"
)

// StateGraph represents a state-based graph with compile-time type safety.
// The type parameter S represents the state type, which is typically a struct.
//
// Example usage:
//
//	type MyState struct {
//	    Count int
//	}
//
//	g := graph.NewStateGraph[MyState]()
//	g.AddNode("increment", "Increment counter", func(ctx context.Context, state MyState) (MyState, error) {
//	    state.Count++
//	    return state, nil
//	})
//	g.AddEdge("increment", graph.END)
//	g.SetEntryPoint("increment")
type StateGraph[S any] struct {
	// nodes is a map of node names to their corresponding Node objects
	nodes map[string]Node[S]

	// edges is a slice of Edge objects representing static transitions
	edges []Edge

	// conditionalEdges maps a "From" node to a condition deriving the "To" node
	conditionalEdges map[string]func(ctx context.Context, state S) string

	// entryPoint is the name of the entry point node in the graph
	entryPoint string

	// stepLimit bounds the number of node executions per invocation
	stepLimit int
}

// Node represents a typed node in the graph.
type Node[S any] struct {
	Name        string
	Description string
	Function    func(ctx context.Context, state S) (S, error)
}

// NewStateGraph creates a new instance of StateGraph with type safety.
func NewStateGraph[S any]() *StateGraph[S] {
	return &StateGraph[S]{
		nodes:            make(map[string]Node[S]),
		conditionalEdges: make(map[string]func(ctx context.Context, state S) string),
		stepLimit:        DefaultStepLimit,
	}
}

// AddNode adds a new node to the state graph with the given name, description and function.
func (g *StateGraph[S]) AddNode(name string, description string, fn func(ctx context.Context, state S) (S, error)) {
	g.nodes[name] = Node[S]{
		Name:        name,
		Description: description,
		Function:    fn,
	}
}

// AddEdge adds a static edge between the "from" and "to" nodes.
func (g *StateGraph[S]) AddEdge(from, to string) {
	g.edges = append(g.edges, Edge{
		From: from,
		To:   to,
	})
}

// AddConditionalEdge adds a conditional edge where the target node is determined at runtime.
// A conditional edge replaces any static edges originating from the same node.
func (g *StateGraph[S]) AddConditionalEdge(from string, condition func(ctx context.Context, state S) string) {
	g.conditionalEdges[from] = condition
}

// SetEntryPoint sets the entry point node name for the state graph.
func (g *StateGraph[S]) SetEntryPoint(name string) {
	g.entryPoint = name
}

// SetStepLimit overrides the per-invocation step limit. Zero or negative
// disables the limit.
func (g *StateGraph[S]) SetStepLimit(limit int) {
	g.stepLimit = limit
}

// Runnable represents a compiled state graph that can be invoked or streamed.
type Runnable[S any] struct {
	graph *StateGraph[S]
}

// Compile validates the graph topology and returns a Runnable instance.
// Every node must be reachable into a transition: it needs a conditional
// edge or at least one static edge, and static edge endpoints must name
// existing nodes (or END as a target).
func (g *StateGraph[S]) Compile() (*Runnable[S], error) {
	if g.entryPoint == "" {
		return nil, ErrEntryPointNotSet
	}
	if _, ok := g.nodes[g.entryPoint]; !ok {
		return nil, fmt.Errorf("%w: entry point %s", ErrNodeNotFound, g.entryPoint)
	}

	for _, edge := range g.edges {
		if _, ok := g.nodes[edge.From]; !ok {
			return nil, fmt.Errorf("%w: edge source %s", ErrNodeNotFound, edge.From)
		}
		if edge.To == END {
			continue
		}
		if _, ok := g.nodes[edge.To]; !ok {
			return nil, fmt.Errorf("%w: edge target %s", ErrNodeNotFound, edge.To)
		}
	}

	for name := range g.nodes {
		if _, ok := g.conditionalEdges[name]; ok {
			continue
		}
		found := false
		for _, edge := range g.edges {
			if edge.From == name {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: %s", ErrNoOutgoingEdge, name)
		}
	}

	for name := range g.conditionalEdges {
		if _, ok := g.nodes[name]; !ok {
			return nil, fmt.Errorf("%w: conditional edge source %s", ErrNodeNotFound, name)
		}
	}

	return &Runnable[S]{graph: g}, nil
}

// Invoke executes the compiled state graph with the given input state and
// returns the final state.
func (r *Runnable[S]) Invoke(ctx context.Context, initialState S) (S, error) {
	return r.run(ctx, initialState, nil)
}

// Event is emitted by Stream after each node execution. A terminal event
// carries either Node == END with the final state, or a non-nil Err.
type Event[S any] struct {
	// Node is the name of the node that just executed, or END on completion.
	Node string

	// State is the graph state after the node executed.
	State S

	// Err is set on the terminal event when execution failed.
	Err error
}

// Stream executes the graph and emits an Event after every node execution.
// The channel is closed after the terminal event.
//
// Events are unbuffered: the producer goroutine blocks until each event
// is received or ctx is done. A caller that stops receiving before the
// channel closes must cancel ctx, or the goroutine stays blocked on its
// next send.
func (r *Runnable[S]) Stream(ctx context.Context, initialState S) <-chan Event[S] {
	events := make(chan Event[S])
	go func() {
		defer close(events)
		final, err := r.run(ctx, initialState, func(node string, state S) {
			select {
			case events <- Event[S]{Node: node, State: state}:
			case <-ctx.Done():
			}
		})
		terminal := Event[S]{Node: END, State: final, Err: err}
		select {
		case events <- terminal:
		case <-ctx.Done():
		}
	}()
	return events
}

// run drives the graph from the entry point until END, invoking observe
// (when non-nil) after every node execution.
func (r *Runnable[S]) run(ctx context.Context, initialState S, observe func(node string, state S)) (S, error) {
	state := initialState
	current := r.graph.entryPoint
	steps := 0

	for current != END {
		if err := ctx.Err(); err != nil {
			return state, err
		}
		if r.graph.stepLimit > 0 && steps >= r.graph.stepLimit {
			return state, fmt.Errorf("%w: %d steps", ErrStepLimitExceeded, steps)
		}
		steps++

		node, ok := r.graph.nodes[current]
		if !ok {
			return state, fmt.Errorf("%w: %s", ErrNodeNotFound, current)
		}

		next, err := node.Function(ctx, state)
		if err != nil {
			return state, fmt.Errorf("error in node %s: %w", current, err)
		}
		state = next

		if observe != nil {
			observe(current, state)
		}

		current, err = r.nextNode(ctx, current, state)
		if err != nil {
			return state, err
		}
	}

	return state, nil
}

// nextNode resolves the successor of a node, preferring conditional edges.
func (r *Runnable[S]) nextNode(ctx context.Context, current string, state S) (string, error) {
	if condition, ok := r.graph.conditionalEdges[current]; ok {
		next := condition(ctx, state)
		if next == "" {
			return "", fmt.Errorf("conditional edge returned empty next node from %s", current)
		}
		if next != END {
			if _, ok := r.graph.nodes[next]; !ok {
				return "", fmt.Errorf("%w: %s", ErrNodeNotFound, next)
			}
		}
		return next, nil
	}

	for _, edge := range r.graph.edges {
		if edge.From == current {
			return edge.To, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNoOutgoingEdge, current)
}
