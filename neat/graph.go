package neat

import (
	"fmt"
)

// Edge is a weighted incoming connection of a node.
// Source is the index, within the same graph, of the node supplying the input.
type Edge struct {
	Weight float32
	Source int
}

// Node is one neuron of an agent: its activation coefficients plus its
// incoming edges. Edge order is significant, the k-th edge lands in the
// k-th edge layer of the packed textures.
type Node struct {
	Activation UAF
	Edges      []Edge
}

// Graph is one agent. A node's position in Nodes is its identity; edges refer
// to nodes by that index.
type Graph struct {
	Nodes []Node
}

// Population is an ordered list of agents.
//
// MaxEdgeCount is the declared number of edge layers. It is only consulted
// when the packer runs with a declared edge count policy, otherwise the
// maximum is derived with ScanMaxEdgeCount.
type Population struct {
	Graphs       []Graph
	MaxEdgeCount uint32
}

// MaxNodeCount returns the node count of the largest graph.
func (p *Population) MaxNodeCount() int {
	maxNodes := 0
	for _, g := range p.Graphs {
		if len(g.Nodes) > maxNodes {
			maxNodes = len(g.Nodes)
		}
	}
	return maxNodes
}

// ScanMaxEdgeCount returns the largest per-node edge count across every graph.
func (p *Population) ScanMaxEdgeCount() int {
	maxEdges := 0
	for _, g := range p.Graphs {
		for _, n := range g.Nodes {
			if len(n.Edges) > maxEdges {
				maxEdges = len(n.Edges)
			}
		}
	}
	return maxEdges
}

// NodeCount returns the total number of nodes in the population.
func (p *Population) NodeCount() int {
	total := 0
	for _, g := range p.Graphs {
		total += len(g.Nodes)
	}
	return total
}

// EdgeCount returns the total number of edges in the population.
func (p *Population) EdgeCount() int {
	total := 0
	for _, g := range p.Graphs {
		total += g.EdgeCount()
	}
	return total
}

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int {
	total := 0
	for _, n := range g.Nodes {
		total += len(n.Edges)
	}
	return total
}

// Validate checks that every edge of the graph refers to a node of the graph.
func (g *Graph) Validate() error {
	for i, n := range g.Nodes {
		for k, e := range n.Edges {
			if e.Source < 0 || e.Source >= len(g.Nodes) {
				return fmt.Errorf("node %d edge %d: source %d out of range [0, %d)", i, k, e.Source, len(g.Nodes))
			}
		}
	}
	return nil
}

// Validate checks every graph of the population. The declared MaxEdgeCount
// is left to the packer, which only consults it under a declared policy.
func (p *Population) Validate() error {
	for i := range p.Graphs {
		if err := p.Graphs[i].Validate(); err != nil {
			return fmt.Errorf("graph %d: %w", i, err)
		}
	}
	return nil
}

// PopulationStats summarises the shape of a population.
type PopulationStats struct {
	Graphs       int
	Nodes        int
	Edges        int
	MaxNodes     int
	MinNodes     int
	MeanNodes    float64
	MaxEdges     int     // Largest per-node edge count
	MeanFanIn    float64 // Mean edges per node
	EmptyGraphs  int
	DeclaredMax  uint32
	SelfEdges    int
	DisconnNodes int // Nodes with neither incoming nor outgoing edges
}

// Stats computes summary statistics for the population.
func (p *Population) Stats() PopulationStats {
	s := PopulationStats{
		Graphs:      len(p.Graphs),
		Nodes:       p.NodeCount(),
		Edges:       p.EdgeCount(),
		MaxEdges:    p.ScanMaxEdgeCount(),
		DeclaredMax: p.MaxEdgeCount,
	}
	sizes := make([]float64, 0, len(p.Graphs))
	for _, g := range p.Graphs {
		sizes = append(sizes, float64(len(g.Nodes)))
		if len(g.Nodes) == 0 {
			s.EmptyGraphs++
		}
		outgoing := make([]bool, len(g.Nodes))
		for i, n := range g.Nodes {
			for _, e := range n.Edges {
				if e.Source == i {
					s.SelfEdges++
				}
				if e.Source >= 0 && e.Source < len(outgoing) {
					outgoing[e.Source] = true
				}
			}
		}
		for i, n := range g.Nodes {
			if len(n.Edges) == 0 && !outgoing[i] {
				s.DisconnNodes++
			}
		}
	}
	if len(sizes) > 0 {
		s.MaxNodes = int(MaxFloat(sizes))
		s.MinNodes = int(MinFloat(sizes))
		s.MeanNodes = Mean(sizes)
	}
	if s.Nodes > 0 {
		s.MeanFanIn = float64(s.Edges) / float64(s.Nodes)
	}
	return s
}
