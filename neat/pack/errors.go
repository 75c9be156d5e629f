package pack

import (
	"errors"
	"fmt"
)

// Sentinel errors for packing. Every failure returned by Encode wraps one of them.
var (
	// ErrEmptyInput is returned when the population has no graphs or every graph is empty.
	ErrEmptyInput = errors.New("empty input")

	// ErrInvalidTopology is returned when an edge refers to a node outside its
	// graph or a node has more edges than the edge texture has layers.
	ErrInvalidTopology = errors.New("invalid topology")

	// ErrDimensionOverflow is returned when the field or a buffer is too large
	// to address.
	ErrDimensionOverflow = errors.New("dimension overflow")
)

// TopologyError locates an invalid edge or an over-full node.
type TopologyError struct {
	Graph  int    // Population index of the offending graph
	Node   int    // Node index within the graph
	Edge   int    // Edge slot, or -1 when the node as a whole is at fault
	Source int    // Source index of the edge, when Edge >= 0
	Reason string // Human-readable description
}

// Error returns a message naming the graph, node and edge.
func (e *TopologyError) Error() string {
	if e.Edge < 0 {
		return fmt.Sprintf("%s: graph %d node %d: %s", ErrInvalidTopology, e.Graph, e.Node, e.Reason)
	}
	return fmt.Sprintf("%s: graph %d node %d edge %d (source %d): %s",
		ErrInvalidTopology, e.Graph, e.Node, e.Edge, e.Source, e.Reason)
}

// Unwrap returns ErrInvalidTopology.
func (e *TopologyError) Unwrap() error { return ErrInvalidTopology }
