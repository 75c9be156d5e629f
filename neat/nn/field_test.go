package nn

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baldhumanity/neatpack/neat"
	"github.com/baldhumanity/neatpack/neat/pack"
)

func fieldPopulation(rng *rand.Rand) *neat.Population {
	pop := &neat.Population{Graphs: make([]neat.Graph, 1+rng.Intn(12))}
	for gi := range pop.Graphs {
		n := 1 + rng.Intn(9)
		g := neat.Graph{Nodes: make([]neat.Node, n)}
		for ni := range g.Nodes {
			node := neat.Node{Activation: neat.UAF{
				A: rng.Float32(), B: rng.Float32() - 0.5, C: -rng.Float32(), D: rng.Float32(), E: rng.Float32(),
			}}
			for k := rng.Intn(4); k > 0; k-- {
				node.Edges = append(node.Edges, neat.Edge{Weight: float32(rng.NormFloat64()), Source: rng.Intn(n)})
			}
			g.Nodes[ni] = node
		}
		pop.Graphs[gi] = g
	}
	return pop
}

// The packed field must step every agent exactly like its own network.
func TestFieldMatchesNetworks(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	for trial := 0; trial < 20; trial++ {
		pop := fieldPopulation(rng)
		tex, err := pack.NewEncoder(pack.WithBiasTexture()).Encode(pop)
		require.NoError(t, err)
		field, err := NewField(tex)
		require.NoError(t, err)

		m := tex.Mapper()
		w := int(tex.Width)
		state := make([]float32, field.Size())
		local := make([][]float32, len(pop.Graphs))
		for gi, g := range pop.Graphs {
			local[gi] = make([]float32, len(g.Nodes))
			for ni := range g.Nodes {
				v := rng.Float32()*2 - 1
				local[gi][ni] = v
				at := m.Locate(gi, ni)
				state[at.Y*w+at.X] = v
			}
		}

		next, err := field.Step(state)
		require.NoError(t, err)

		for gi := range pop.Graphs {
			net, err := NewNetwork(&pop.Graphs[gi])
			require.NoError(t, err)
			want, err := net.Step(local[gi])
			require.NoError(t, err)
			for ni := range want {
				at := m.Locate(gi, ni)
				assert.InDelta(t, want[ni], next[at.Y*w+at.X], 1e-4, "graph %d node %d", gi, ni)
			}
		}
	}
}

func TestFieldEmptySlotsStayZero(t *testing.T) {
	pop := &neat.Population{Graphs: []neat.Graph{
		{Nodes: []neat.Node{
			{Activation: neat.PresetIdentity.UAF()},
			{Activation: neat.PresetIdentity.UAF(), Edges: []neat.Edge{{Weight: 1, Source: 0}}},
		}},
		{Nodes: []neat.Node{{Activation: neat.PresetIdentity.UAF()}}},
	}}
	tex, err := pack.Encode(pop)
	require.NoError(t, err)
	field, err := NewField(tex)
	require.NoError(t, err)

	require.Equal(t, 4, field.Size())
	state := []float32{1, 1, 1, 1}
	next, err := field.Step(state)
	require.NoError(t, err)
	assert.InDelta(t, 0, next[0], 1e-6)
	assert.InDelta(t, 1, next[1], 1e-6)
	assert.InDelta(t, 0, next[2], 1e-6)
	assert.Equal(t, float32(0), next[3])
}

func TestFieldErrors(t *testing.T) {
	tex, err := pack.Encode(&neat.Population{Graphs: []neat.Graph{{Nodes: make([]neat.Node, 3)}}})
	require.NoError(t, err)

	field, err := NewField(tex)
	require.NoError(t, err)
	_, err = field.Step(make([]float32, field.Size()+1))
	assert.Error(t, err)

	bad := *tex
	bad.Activations = bad.Activations[:len(bad.Activations)-1]
	_, err = NewField(&bad)
	assert.Error(t, err)
}

func TestFieldNonFiniteStateStaysInItsAgent(t *testing.T) {
	id := neat.PresetIdentity.UAF()
	pop := &neat.Population{Graphs: []neat.Graph{
		{Nodes: []neat.Node{
			{Activation: id, Edges: []neat.Edge{{Weight: 1, Source: 0}, {Weight: 1, Source: 1}}},
			{Activation: id, Edges: []neat.Edge{{Weight: 1, Source: 1}}},
		}},
		{Nodes: []neat.Node{
			{Activation: id, Edges: []neat.Edge{{Weight: 2, Source: 0}}},
		}},
	}}
	tex, err := pack.Encode(pop)
	require.NoError(t, err)
	field, err := NewField(tex)
	require.NoError(t, err)

	m := tex.Mapper()
	origin := m.Locate(0, 0)
	require.Equal(t, pack.Coord{}, origin)

	state := make([]float32, field.Size())
	state[m.Index(origin)] = float32(math.Inf(1))
	state[m.Index(m.Locate(1, 0))] = 0.5

	next, err := field.Step(state)
	require.NoError(t, err)

	net, err := NewNetwork(&pop.Graphs[0])
	require.NoError(t, err)
	want, err := net.Step([]float32{float32(math.Inf(1)), 0})
	require.NoError(t, err)

	got1 := next[m.Index(m.Locate(0, 1))]
	assert.False(t, math.IsNaN(float64(got1)))
	assert.InDelta(t, want[1], got1, 1e-6)
	assert.InDelta(t, 1, next[m.Index(m.Locate(1, 0))], 1e-6)
	for i, v := range next {
		if i == m.Index(origin) {
			continue
		}
		assert.False(t, math.IsNaN(float64(v)) || math.IsInf(float64(v), 0), "texel %d = %v", i, v)
	}
}
