// Package pack lays out a population of NEAT graphs as RGBA32F textures for
// a parallel executor.
//
// Packing happens in three steps:
//
//   - Pack2D sizes two near-square grids, one over the graphs of the
//     population and one over the nodes of its largest graph.
//   - Mapper tiles the field with one agent grid per graph and maps a
//     (graph, node) pair to a unique texel.
//   - Encoder writes node activations and incoming edges into flat buffers,
//     resolving every edge source through the same Mapper.
//
// Basic usage:
//
//	tex, err := pack.NewEncoder(pack.WithWorkers(4)).Encode(&population)
//	if err != nil {
//		if errors.Is(err, pack.ErrInvalidTopology) {
//			// repair or drop the population upstream
//		}
//		return err
//	}
//	upload(tex.Activations, tex.Edges, tex.Nodes, tex.Width, tex.Height, tex.MaxEdgeCount)
package pack
