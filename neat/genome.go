package neat

import (
	"fmt"
	"math/rand"
	"sort"
)

// Genome represents an individual agent as NEAT genes.
// It consists of NodeGenes and ConnectionGenes keyed by node id, and is
// turned into a dense Graph for packing.
type Genome struct {
	Key         int                               // Unique identifier for this genome.
	Nodes       map[int]*NodeGene                 // Map node ID -> NodeGene
	Connections map[ConnectionKey]*ConnectionGene // Map connection key -> ConnectionGene
	FeedForward bool                              // Reject connections that would close a cycle
}

// NewGenome creates a new, empty Genome.
func NewGenome(key int) *Genome {
	return &Genome{
		Key:         key,
		Nodes:       make(map[int]*NodeGene),
		Connections: make(map[ConnectionKey]*ConnectionGene),
	}
}

// ConfigureNew initializes a new genome based on the configuration.
// It creates between min_nodes and max_nodes nodes and connects every ordered
// pair of nodes with probability conn_prob.
func (g *Genome) ConfigureNew(config *PopulationConfig, rng *rand.Rand) {
	g.FeedForward = config.FeedForward
	numNodes := config.MinNodes
	if config.MaxNodes > config.MinNodes {
		numNodes += rng.Intn(config.MaxNodes - config.MinNodes + 1)
	}
	for key := 0; key < numNodes; key++ {
		g.Nodes[key] = NewNodeGene(key, config, rng)
	}

	for out := 0; out < numNodes; out++ {
		for in := 0; in < numNodes; in++ {
			if in == out && (config.FeedForward || !config.AllowSelfConnections) {
				continue
			}
			// Keys ascend along every connection, so no cycle can form.
			if config.FeedForward && in > out {
				continue
			}
			if rng.Float64() >= config.ConnProb {
				continue
			}
			key := ConnectionKey{InNodeID: in, OutNodeID: out}
			g.Connections[key] = NewConnectionGene(key, config, rng)
		}
	}
}

// AddNode adds a node gene to the genome.
func (g *Genome) AddNode(key int, activation UAF) error {
	if _, exists := g.Nodes[key]; exists {
		return fmt.Errorf("genome %d: duplicate node key %d", g.Key, key)
	}
	g.Nodes[key] = &NodeGene{Key: key, Activation: activation}
	return nil
}

// AddConnection adds an enabled connection from inNode to outNode.
// Both nodes must exist; in feed-forward genomes the connection must not close a cycle.
func (g *Genome) AddConnection(inNode, outNode int, weight float64) error {
	if _, ok := g.Nodes[inNode]; !ok {
		return fmt.Errorf("genome %d: unknown input node %d", g.Key, inNode)
	}
	if _, ok := g.Nodes[outNode]; !ok {
		return fmt.Errorf("genome %d: unknown output node %d", g.Key, outNode)
	}
	key := ConnectionKey{InNodeID: inNode, OutNodeID: outNode}
	if _, exists := g.Connections[key]; exists {
		return fmt.Errorf("genome %d: duplicate connection %d->%d", g.Key, inNode, outNode)
	}
	if g.FeedForward && createsCycle(g, inNode, outNode) {
		return fmt.Errorf("genome %d: connection %d->%d creates a cycle", g.Key, inNode, outNode)
	}
	g.Connections[key] = &ConnectionGene{Key: key, Weight: weight, Enabled: true}
	return nil
}

// SortedNodeKeys returns the genome's node keys in ascending order.
func (g *Genome) SortedNodeKeys() []int {
	keys := make([]int, 0, len(g.Nodes))
	for k := range g.Nodes {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// Graph converts the genome into a dense graph.
// Nodes are indexed in ascending key order. Every enabled connection becomes an
// incoming edge of its output node; a node's edges are ordered by input key.
func (g *Genome) Graph() (Graph, error) {
	keys := g.SortedNodeKeys()
	index := make(map[int]int, len(keys))
	for i, k := range keys {
		index[k] = i
	}

	incoming := make([][]*ConnectionGene, len(keys))
	for ck, cg := range g.Connections {
		if !cg.Enabled {
			continue
		}
		out, ok := index[ck.OutNodeID]
		if !ok {
			return Graph{}, fmt.Errorf("genome %d: connection %d->%d targets unknown node", g.Key, ck.InNodeID, ck.OutNodeID)
		}
		if _, ok := index[ck.InNodeID]; !ok {
			return Graph{}, fmt.Errorf("genome %d: connection %d->%d starts at unknown node", g.Key, ck.InNodeID, ck.OutNodeID)
		}
		incoming[out] = append(incoming[out], cg)
	}

	graph := Graph{Nodes: make([]Node, len(keys))}
	for i, k := range keys {
		conns := incoming[i]
		sort.Slice(conns, func(a, b int) bool { return conns[a].Key.InNodeID < conns[b].Key.InNodeID })
		node := Node{Activation: g.Nodes[k].Activation}
		if len(conns) > 0 {
			node.Edges = make([]Edge, len(conns))
			for j, cg := range conns {
				node.Edges[j] = Edge{Weight: float32(cg.Weight), Source: index[cg.Key.InNodeID]}
			}
		}
		graph.Nodes[i] = node
	}
	return graph, nil
}

// createsCycle reports whether adding inNode->outNode would close a cycle
// through the genome's enabled connections.
func createsCycle(genome *Genome, inNode, outNode int) bool {
	// Simple case: direct cycle
	if inNode == outNode {
		return true
	}

	// Check if outNode can reach inNode through existing enabled connections.
	visited := make(map[int]bool)
	queue := []int{outNode}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if current == inNode {
			return true // Found a path back
		}

		if visited[current] {
			continue
		}
		visited[current] = true

		for connKey, conn := range genome.Connections {
			if conn.Enabled && connKey.InNodeID == current {
				queue = append(queue, connKey.OutNodeID)
			}
		}
	}

	return false
}
