package pack

// Texture format shared by every packed buffer.
const (
	Format    = "rgba32float"
	ByteOrder = "little-endian"
)

// Textures is the packed form of a population.
//
// Activations, Nodes and Biases hold one RGBA32F texel per node slot of the
// Width x Height field, rows top to bottom. Edges holds MaxEdgeCount such
// layers back to back; layer k carries the k-th incoming edge of every node.
type Textures struct {
	Activations []byte // (a, b, c, d) per node
	Edges       []byte // (source_x, source_y, weight, weight) per node and edge slot
	Nodes       []byte // zero; reserved for runtime node state
	Biases      []byte // (e, 0, 0, 0) per node; nil unless requested

	Width        uint32
	Height       uint32
	MaxEdgeCount uint32

	PopulationGrid Grid // Agent tiles across and down the field
	AgentGrid      Grid // Node slots across and down one tile
}

// Mapper returns the address mapper the textures were packed with.
func (t *Textures) Mapper() Mapper {
	return NewMapper(t.PopulationGrid, t.AgentGrid)
}

// Activation returns the activation texel at c.
func (t *Textures) Activation(c Coord) Texel {
	return DecodeTexel(t.Activations, int(t.Width), int(t.Height), 0, c)
}

// Edge returns the texel of edge slot layer at c.
func (t *Textures) Edge(layer int, c Coord) Texel {
	return DecodeTexel(t.Edges, int(t.Width), int(t.Height), layer, c)
}

// Node returns the node state texel at c.
func (t *Textures) Node(c Coord) Texel {
	return DecodeTexel(t.Nodes, int(t.Width), int(t.Height), 0, c)
}

// Bias returns the bias texel at c. It panics if the bias texture was not requested.
func (t *Textures) Bias(c Coord) Texel {
	return DecodeTexel(t.Biases, int(t.Width), int(t.Height), 0, c)
}

// Manifest describes the textures for an external consumer.
type Manifest struct {
	Format         string            `toml:"format"`
	ByteOrder      string            `toml:"byte_order"`
	Width          uint32            `toml:"width"`
	Height         uint32            `toml:"height"`
	MaxEdgeCount   uint32            `toml:"max_edge_count"`
	PopulationGrid [2]int            `toml:"population_grid"`
	AgentGrid      [2]int            `toml:"agent_grid"`
	Textures       []TextureManifest `toml:"texture"`
}

// TextureManifest describes one packed buffer.
type TextureManifest struct {
	Name     string   `toml:"name"`
	File     string   `toml:"file"`
	Layers   uint32   `toml:"layers"`
	Bytes    int      `toml:"bytes"`
	Channels []string `toml:"channels"`
}

// Manifest returns the description of every non-nil buffer. File names are
// <name>.bin.
func (t *Textures) Manifest() Manifest {
	m := Manifest{
		Format:         Format,
		ByteOrder:      ByteOrder,
		Width:          t.Width,
		Height:         t.Height,
		MaxEdgeCount:   t.MaxEdgeCount,
		PopulationGrid: [2]int{t.PopulationGrid.Width, t.PopulationGrid.Height},
		AgentGrid:      [2]int{t.AgentGrid.Width, t.AgentGrid.Height},
	}
	for _, b := range t.Buffers() {
		m.Textures = append(m.Textures, TextureManifest{
			Name:     b.Name,
			File:     b.Name + ".bin",
			Layers:   b.Layers,
			Bytes:    len(b.Data),
			Channels: b.Channels,
		})
	}
	return m
}

// NamedBuffer pairs a packed buffer with its name and channel layout.
type NamedBuffer struct {
	Name     string
	Data     []byte
	Layers   uint32
	Channels []string
}

// Buffers lists the packed buffers in a fixed order: activations, edges,
// nodes, then biases when present.
func (t *Textures) Buffers() []NamedBuffer {
	bufs := []NamedBuffer{
		{Name: "activations", Data: t.Activations, Layers: 1, Channels: []string{"a", "b", "c", "d"}},
		{Name: "edges", Data: t.Edges, Layers: t.MaxEdgeCount, Channels: []string{"source_x", "source_y", "weight", "weight"}},
		{Name: "nodes", Data: t.Nodes, Layers: 1, Channels: []string{"state", "reserved", "reserved", "reserved"}},
	}
	if t.Biases != nil {
		bufs = append(bufs, NamedBuffer{Name: "biases", Data: t.Biases, Layers: 1, Channels: []string{"e", "reserved", "reserved", "reserved"}})
	}
	return bufs
}
