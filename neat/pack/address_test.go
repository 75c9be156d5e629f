package pack

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapperLocate(t *testing.T) {
	m := NewMapper(Grid{2, 1}, Grid{2, 2})
	assert.Equal(t, Grid{4, 2}, m.Field())

	tests := []struct {
		graph, node int
		want        Coord
	}{
		{0, 0, Coord{0, 0}},
		{0, 1, Coord{1, 0}},
		{0, 2, Coord{0, 1}},
		{0, 3, Coord{1, 1}},
		{1, 0, Coord{2, 0}},
		{1, 1, Coord{3, 0}},
		{1, 3, Coord{3, 1}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, m.Locate(tt.graph, tt.node), "graph %d node %d", tt.graph, tt.node)
	}
}

func TestMapperTileUsesAgentWidth(t *testing.T) {
	// Population and agent grids of different widths: tiles must advance by
	// the agent width, not the population width.
	m := NewMapper(Grid{3, 2}, Grid{2, 2})
	assert.Equal(t, Coord{0, 0}, m.Tile(0))
	assert.Equal(t, Coord{2, 0}, m.Tile(1))
	assert.Equal(t, Coord{4, 0}, m.Tile(2))
	assert.Equal(t, Coord{0, 2}, m.Tile(3))
	assert.Equal(t, Coord{4, 2}, m.Tile(5))
}

func TestMapperIndex(t *testing.T) {
	m := NewMapper(Grid{2, 1}, Grid{2, 2})
	assert.Equal(t, 0, m.Index(Coord{0, 0}))
	assert.Equal(t, 3, m.Index(Coord{3, 0}))
	assert.Equal(t, 4, m.Index(Coord{0, 1}))
	assert.Equal(t, 7, m.Index(Coord{3, 1}))
}

func TestMapperContains(t *testing.T) {
	m := NewMapper(Grid{2, 1}, Grid{2, 2})
	assert.True(t, m.Contains(1, 3))
	assert.False(t, m.Contains(2, 0))
	assert.False(t, m.Contains(0, 4))
	assert.False(t, m.Contains(-1, 0))
}

func TestMapperBijective(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 200; trial++ {
		pop := randomPopulation(rng, 40, 30, 0)
		popGrid, err := Pack2D(len(pop.Graphs))
		require.NoError(t, err)
		agentGrid, err := Pack2D(pop.MaxNodeCount())
		require.NoError(t, err)
		m := NewMapper(popGrid, agentGrid)
		field := m.Field()

		seen := make(map[Coord][2]int)
		for gi, g := range pop.Graphs {
			for ni := range g.Nodes {
				c := m.Locate(gi, ni)
				if c.X < 0 || c.X >= field.Width || c.Y < 0 || c.Y >= field.Height {
					t.Fatalf("trial %d: graph %d node %d at %s outside field %s", trial, gi, ni, c, field)
				}
				if prev, dup := seen[c]; dup {
					t.Fatalf("trial %d: graph %d node %d collides with graph %d node %d at %s",
						trial, gi, ni, prev[0], prev[1], c)
				}
				seen[c] = [2]int{gi, ni}

				// Recomputing a slot later must give the same answer.
				assert.Equal(t, c, m.Locate(gi, ni))
			}
		}
		assert.Equal(t, pop.NodeCount(), len(seen))
	}
}

func TestMapperFullGridIsPermutation(t *testing.T) {
	m := NewMapper(Grid{3, 2}, Grid{4, 3})
	field := m.Field()
	hits := make([]int, field.Area())
	for gi := 0; gi < m.Population.Area(); gi++ {
		for ni := 0; ni < m.Agent.Area(); ni++ {
			hits[m.Index(m.Locate(gi, ni))]++
		}
	}
	for i, n := range hits {
		assert.Equal(t, 1, n, "texel %d", i)
	}
}
