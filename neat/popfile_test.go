package neat

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoAgents = `
max_edge_count = 1

[[graph]]
  [[graph.node]]
  activation = { a = 0.5, b = 0.0, c = 0.5, d = 1.0 }
  edges = [{ source = 1, weight = 1.0 }]

  [[graph.node]]
  preset = "identity"
  edges = [{ source = 1, weight = 1.0 }]

[[graph]]
  [[graph.node]]
  preset = "Softplus"
  edges = [{ source = 0, weight = -0.5 }]

  [[graph.node]]
`

func TestDecodePopulation(t *testing.T) {
	pop, err := DecodePopulation(strings.NewReader(twoAgents))
	require.NoError(t, err)

	assert.Equal(t, uint32(1), pop.MaxEdgeCount)
	require.Len(t, pop.Graphs, 2)
	require.Len(t, pop.Graphs[0].Nodes, 2)
	require.Len(t, pop.Graphs[1].Nodes, 2)

	assert.Equal(t, UAF{A: 0.5, C: 0.5, D: 1}, pop.Graphs[0].Nodes[0].Activation)
	assert.Equal(t, []Edge{{Weight: 1, Source: 1}}, pop.Graphs[0].Nodes[0].Edges)
	assert.Equal(t, PresetIdentity.UAF(), pop.Graphs[0].Nodes[1].Activation)
	assert.Equal(t, PresetSoftplus.UAF(), pop.Graphs[1].Nodes[0].Activation)
	assert.Equal(t, []Edge{{Weight: -0.5, Source: 0}}, pop.Graphs[1].Nodes[0].Edges)
	assert.Equal(t, Node{}, pop.Graphs[1].Nodes[1])
}

func TestDecodePopulationErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"syntax", "[[graph]\n", "parse"},
		{"unknown key", "[[graph]]\n[[graph.node]]\nbias = 1.0\n", "unknown keys"},
		{"unknown preset", "[[graph]]\n[[graph.node]]\npreset = \"tanh\"\n", "unknown activation preset"},
		{"both", "[[graph]]\n[[graph.node]]\npreset = \"zero\"\nactivation = { a = 1.0 }\n", "both preset and activation"},
		{"source", "[[graph]]\n[[graph.node]]\nedges = [{ source = 2, weight = 1.0 }]\n", "out of range"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodePopulation(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestEncodePopulationRoundTrip(t *testing.T) {
	pop := testPopulation()
	pop.Graphs[1].Nodes[2].Activation = UAF{A: 0.25, B: -1, C: 0, D: 2, E: 0.125}

	var buf bytes.Buffer
	require.NoError(t, EncodePopulation(pop, &buf))
	assert.Contains(t, buf.String(), `preset = "identity"`)

	got, err := DecodePopulation(&buf)
	require.NoError(t, err)
	assert.Equal(t, pop.MaxEdgeCount, got.MaxEdgeCount)
	require.Len(t, got.Graphs, len(pop.Graphs))
	for gi := range pop.Graphs {
		require.Len(t, got.Graphs[gi].Nodes, len(pop.Graphs[gi].Nodes), "graph %d", gi)
		for ni, n := range pop.Graphs[gi].Nodes {
			assert.Equal(t, n.Activation, got.Graphs[gi].Nodes[ni].Activation, "graph %d node %d", gi, ni)
			assert.Equal(t, len(n.Edges), len(got.Graphs[gi].Nodes[ni].Edges))
			for k, e := range n.Edges {
				assert.Equal(t, e, got.Graphs[gi].Nodes[ni].Edges[k])
			}
		}
	}
}

func TestPopulationFileOnDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "population.toml")
	pop := testPopulation()
	require.NoError(t, SavePopulationFile(pop, path))

	got, err := LoadPopulationFile(path)
	require.NoError(t, err)
	assert.Equal(t, pop.NodeCount(), got.NodeCount())
	assert.Equal(t, pop.EdgeCount(), got.EdgeCount())

	_, err = LoadPopulationFile(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}
