package pack

import (
	"math/rand"

	"github.com/baldhumanity/neatpack/neat"
)

// randomPopulation builds a population with up to maxGraphs graphs of up to
// maxNodes nodes, each node with up to maxEdges valid edges. Some graphs may
// be empty, but at least one node is always present.
func randomPopulation(rng *rand.Rand, maxGraphs, maxNodes, maxEdges int) *neat.Population {
	pop := &neat.Population{Graphs: make([]neat.Graph, 1+rng.Intn(maxGraphs))}
	for gi := range pop.Graphs {
		n := rng.Intn(maxNodes + 1)
		if gi == 0 && n == 0 {
			n = 1
		}
		g := neat.Graph{Nodes: make([]neat.Node, n)}
		for ni := range g.Nodes {
			node := neat.Node{Activation: neat.UAF{
				A: rng.Float32(), B: rng.Float32(), C: rng.Float32(), D: rng.Float32(), E: rng.Float32(),
			}}
			for k := rng.Intn(maxEdges + 1); k > 0; k-- {
				node.Edges = append(node.Edges, neat.Edge{
					Weight: float32(rng.NormFloat64()),
					Source: rng.Intn(n),
				})
			}
			g.Nodes[ni] = node
		}
		pop.Graphs[gi] = g
	}
	return pop
}

// scenarioPopulation is two agents: four nodes fed 0<-1, 1<-1, 2<-2, 3<-3
// and two nodes fed 0<-0, 1<-0, every edge with weight 1.
func scenarioPopulation() *neat.Population {
	node := func(a, b, c, d float32, source int) neat.Node {
		return neat.Node{
			Activation: neat.UAF{A: a, B: b, C: c, D: d},
			Edges:      []neat.Edge{{Weight: 1.0, Source: source}},
		}
	}
	return &neat.Population{
		Graphs: []neat.Graph{
			{Nodes: []neat.Node{
				node(0.5, 0.0, 0.5, 1.0, 1),
				node(1.0, 0.0, 0.0, 1.0, 1),
				node(0.0, 1.0, 0.0, 1.0, 2),
				node(1.0, 1.0, 0.0, 1.0, 3),
			}},
			{Nodes: []neat.Node{
				node(0.0, 0.0, 1.0, 1.0, 0),
				node(1.0, 1.0, 1.0, 0.5, 0),
			}},
		},
		MaxEdgeCount: 1,
	}
}
