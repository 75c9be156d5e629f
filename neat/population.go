package neat

import (
	"fmt"
	"math/rand"
)

// GenerateGenomes creates pop_size random genomes with sequential keys starting at 1.
func GenerateGenomes(config *PopulationConfig, rng *rand.Rand) []*Genome {
	genomes := make([]*Genome, 0, config.PopSize)
	for i := 0; i < config.PopSize; i++ {
		g := NewGenome(i + 1)
		g.ConfigureNew(config, rng) // Initialize nodes and connections based on config
		genomes = append(genomes, g)
	}
	return genomes
}

// PopulationFromGenomes converts genomes into a packing population, preserving
// their order. The declared MaxEdgeCount is set to the scanned maximum.
func PopulationFromGenomes(genomes []*Genome) (Population, error) {
	pop := Population{Graphs: make([]Graph, 0, len(genomes))}
	for _, g := range genomes {
		graph, err := g.Graph()
		if err != nil {
			return Population{}, fmt.Errorf("failed to convert genome %d: %w", g.Key, err)
		}
		pop.Graphs = append(pop.Graphs, graph)
	}
	pop.MaxEdgeCount = uint32(pop.ScanMaxEdgeCount())
	return pop, nil
}

// NewRandomPopulation generates a random population from the config.
// When the pack section declares a max_edge_count it is carried into the
// population; generation never exceeds it because nodes with too many
// incoming connections are trimmed to the declared limit.
func NewRandomPopulation(config *Config, rng *rand.Rand) (Population, error) {
	genomes := GenerateGenomes(&config.Population, rng)
	if config.Pack.EdgeCountPolicy == "declare" && config.Pack.MaxEdgeCount > 0 {
		for _, g := range genomes {
			trimFanIn(g, int(config.Pack.MaxEdgeCount))
		}
	}
	pop, err := PopulationFromGenomes(genomes)
	if err != nil {
		return Population{}, err
	}
	if config.Pack.EdgeCountPolicy == "declare" && config.Pack.MaxEdgeCount > 0 {
		pop.MaxEdgeCount = config.Pack.MaxEdgeCount
	}
	return pop, nil
}

// trimFanIn disables the highest-keyed incoming connections of every node
// that has more than limit enabled inputs.
func trimFanIn(g *Genome, limit int) {
	keys := g.SortedNodeKeys()
	fanIn := make(map[int]int)
	for _, in := range keys {
		for _, out := range keys {
			cg, ok := g.Connections[ConnectionKey{InNodeID: in, OutNodeID: out}]
			if !ok || !cg.Enabled {
				continue
			}
			if fanIn[out] >= limit {
				cg.Enabled = false
				continue
			}
			fanIn[out]++
		}
	}
}
