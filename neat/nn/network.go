package nn

import (
	"fmt"

	"github.com/baldhumanity/neatpack/neat"
)

// neuralNode represents a node during network activation.
type neuralNode struct {
	Activation neat.UAF
	Sources    []int     // Index of the node feeding each incoming edge
	Weights    []float32 // Weight of each incoming edge
}

// Network is a runnable, possibly recurrent, phenotype of one graph.
// Every Step updates all nodes at once from the previous state, which is the
// update a parallel executor performs per texel.
type Network struct {
	Nodes []neuralNode
}

// NewNetwork builds a network from a graph, rejecting out-of-range edge sources.
func NewNetwork(g *neat.Graph) (*Network, error) {
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("cannot build network: %w", err)
	}
	net := &Network{Nodes: make([]neuralNode, len(g.Nodes))}
	for i, n := range g.Nodes {
		node := neuralNode{
			Activation: n.Activation,
			Sources:    make([]int, len(n.Edges)),
			Weights:    make([]float32, len(n.Edges)),
		}
		for k, e := range n.Edges {
			node.Sources[k] = e.Source
			node.Weights[k] = e.Weight
		}
		net.Nodes[i] = node
	}
	return net, nil
}

// Step computes the next state from state. The input slice must hold one
// value per node.
func (net *Network) Step(state []float32) ([]float32, error) {
	if len(state) != len(net.Nodes) {
		return nil, fmt.Errorf("mismatch between state size (%d) and network nodes (%d)", len(state), len(net.Nodes))
	}
	next := make([]float32, len(net.Nodes))
	for i, node := range net.Nodes {
		var sum float32
		for k, src := range node.Sources {
			sum += node.Weights[k] * state[src]
		}
		next[i] = node.Activation.Evaluate(sum)
	}
	return next, nil
}

// Run applies Step n times.
func (net *Network) Run(state []float32, n int) ([]float32, error) {
	var err error
	for i := 0; i < n; i++ {
		if state, err = net.Step(state); err != nil {
			return nil, err
		}
	}
	return state, nil
}
