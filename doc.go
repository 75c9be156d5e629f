// Package neatpack packs populations of NEAT agents into GPU-ready textures.
//
// Each agent is a small, possibly recurrent, graph whose nodes carry the five
// coefficients of a Universal Activation Function and a list of weighted
// incoming edges. The neat/pack package lays a whole population out as a
// handful of RGBA32F buffers so a compute shader can update every node of
// every agent in parallel, one texel per node.
//
// Packages:
//
//   - neat: the population data model, genome conversion, random
//     generation, ini configuration, TOML population files and snapshots.
//   - neat/pack: the grid packer, the address mapper and the encoder.
//   - neat/nn: CPU reference executors for a single graph and for a packed field.
//
// Basic usage:
//
//	// Load a population description
//	pop, err := neat.LoadPopulationFile("population.toml")
//	if err != nil {
//		log.Fatalf("Error loading population: %v", err)
//	}
//
//	// Pack it
//	tex, err := pack.Encode(pop)
//	if err != nil {
//		log.Fatalf("Error packing population: %v", err)
//	}
//
//	fmt.Printf("field %dx%d, %d edge layers\n", tex.Width, tex.Height, tex.MaxEdgeCount)
//
// The neatpack command wraps the same steps and writes the buffers to disk.
package neatpack
