package pack

import (
	"fmt"
	"math"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/baldhumanity/neatpack/neat"
)

// MaxFieldDimension bounds the field width and height. Coordinates are stored
// as float32, which represents every integer below 2^24 exactly.
const MaxFieldDimension = 1 << 24

// DefaultMaxBufferBytes is the default size limit of a single packed buffer.
const DefaultMaxBufferBytes int64 = 4 << 30

// EdgeCountPolicy selects where the number of edge layers comes from.
type EdgeCountPolicy int

const (
	// DeriveEdgeCount scans every node and uses the largest edge count.
	DeriveEdgeCount EdgeCountPolicy = iota
	// DeclareEdgeCount uses Population.MaxEdgeCount and rejects nodes that exceed it.
	DeclareEdgeCount
)

// ParseEdgeCountPolicy parses "derive" or "declare".
func ParseEdgeCountPolicy(s string) (EdgeCountPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "derive", "":
		return DeriveEdgeCount, nil
	case "declare":
		return DeclareEdgeCount, nil
	default:
		return 0, fmt.Errorf("unknown edge count policy %q", s)
	}
}

// String returns the policy name.
func (p EdgeCountPolicy) String() string {
	if p == DeclareEdgeCount {
		return "declare"
	}
	return "derive"
}

// Option configures an Encoder.
type Option func(*Encoder)

// WithWorkers sets the number of goroutines filling the buffers.
// If n <= 0, GOMAXPROCS is used.
func WithWorkers(n int) Option {
	return func(e *Encoder) {
		e.workers = n
	}
}

// WithEdgeCountPolicy sets how the edge layer count is determined.
// The default is DeriveEdgeCount.
func WithEdgeCountPolicy(p EdgeCountPolicy) Option {
	return func(e *Encoder) {
		e.policy = p
	}
}

// WithMaxBufferBytes caps the encoded size of every packed buffer; Plan
// fails with ErrDimensionOverflow above it. If n <= 0, DefaultMaxBufferBytes is used.
func WithMaxBufferBytes(n int64) Option {
	return func(e *Encoder) {
		e.maxBytes = n
	}
}

// WithBiasTexture makes the encoder emit the e coefficient of every node as
// a fourth texture, (e, 0, 0, 0) per node slot.
func WithBiasTexture() Option {
	return func(e *Encoder) {
		e.bias = true
	}
}

// Encoder packs populations into textures. It holds no per-call state and is
// safe for concurrent use.
type Encoder struct {
	workers  int
	policy   EdgeCountPolicy
	bias     bool
	maxBytes int64
}

// NewEncoder creates an encoder with the given options.
func NewEncoder(opts ...Option) *Encoder {
	e := &Encoder{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Encode packs pop with a default encoder.
func Encode(pop *neat.Population) (*Textures, error) {
	return NewEncoder().Encode(pop)
}

// Layout is the placement computed for a population before any buffer is filled.
type Layout struct {
	Mapper       Mapper
	MaxEdgeCount int
}

// Plan computes the grids and edge layer count for pop and validates every
// node and edge against them. It allocates nothing.
func (e *Encoder) Plan(pop *neat.Population) (Layout, error) {
	if pop == nil || len(pop.Graphs) == 0 {
		return Layout{}, fmt.Errorf("%w: population has no graphs", ErrEmptyInput)
	}
	maxNodes := pop.MaxNodeCount()
	if maxNodes == 0 {
		return Layout{}, fmt.Errorf("%w: all %d graphs are empty", ErrEmptyInput, len(pop.Graphs))
	}

	popGrid, err := Pack2D(len(pop.Graphs))
	if err != nil {
		return Layout{}, fmt.Errorf("population grid: %w", err)
	}
	agentGrid, err := Pack2D(maxNodes)
	if err != nil {
		return Layout{}, fmt.Errorf("agent grid: %w", err)
	}
	mapper := NewMapper(popGrid, agentGrid)

	var layers int
	switch e.policy {
	case DeclareEdgeCount:
		if uint64(pop.MaxEdgeCount) > math.MaxInt {
			return Layout{}, fmt.Errorf("%w: %d declared edge layers", ErrDimensionOverflow, pop.MaxEdgeCount)
		}
		layers = int(pop.MaxEdgeCount)
	default:
		layers = pop.ScanMaxEdgeCount()
	}

	if err := validateTopology(pop, layers); err != nil {
		return Layout{}, err
	}

	// The width and height checks keep the byte length products below from
	// overflowing on 64-bit platforms; bufferBytes covers the rest.
	field := mapper.Field()
	if field.Width > MaxFieldDimension || field.Height > MaxFieldDimension {
		return Layout{}, fmt.Errorf("%w: field %s exceeds %d texels per side", ErrDimensionOverflow, field, MaxFieldDimension)
	}
	limit := e.maxBytes
	if limit <= 0 {
		limit = DefaultMaxBufferBytes
	}
	if n, ok := bufferBytes(field.Width, field.Height, 1); !ok || int64(n) > limit {
		return Layout{}, fmt.Errorf("%w: field %s exceeds the %d byte buffer limit", ErrDimensionOverflow, field, limit)
	}
	if n, ok := bufferBytes(field.Width, field.Height, layers); !ok || int64(n) > limit {
		return Layout{}, fmt.Errorf("%w: %d edge layers of %s exceed the %d byte buffer limit", ErrDimensionOverflow, layers, field, limit)
	}

	return Layout{Mapper: mapper, MaxEdgeCount: layers}, nil
}

func validateTopology(pop *neat.Population, layers int) error {
	for gi, g := range pop.Graphs {
		for ni, n := range g.Nodes {
			if len(n.Edges) > layers {
				return &TopologyError{
					Graph: gi, Node: ni, Edge: -1,
					Reason: fmt.Sprintf("%d edges exceed %d edge layers", len(n.Edges), layers),
				}
			}
			for k, edge := range n.Edges {
				if edge.Source < 0 || edge.Source >= len(g.Nodes) {
					return &TopologyError{
						Graph: gi, Node: ni, Edge: k, Source: edge.Source,
						Reason: fmt.Sprintf("source out of range [0, %d)", len(g.Nodes)),
					}
				}
			}
		}
	}
	return nil
}

// Encode packs pop into textures. Every error is reported before any buffer
// is written, so a non-nil error never comes with partial output.
func (e *Encoder) Encode(pop *neat.Population) (*Textures, error) {
	layout, err := e.Plan(pop)
	if err != nil {
		return nil, err
	}
	field := layout.Mapper.Field()

	bufs := buffers{
		activations: NewTexelBuffer(field.Width, field.Height, 1),
		nodes:       NewTexelBuffer(field.Width, field.Height, 1),
		edges:       NewTexelBuffer(field.Width, field.Height, layout.MaxEdgeCount),
	}
	if e.bias {
		bufs.biases = NewTexelBuffer(field.Width, field.Height, 1)
	}

	e.fill(pop, layout.Mapper, &bufs)

	tex := &Textures{
		Activations:    bufs.activations.Bytes(),
		Edges:          bufs.edges.Bytes(),
		Nodes:          bufs.nodes.Bytes(),
		Width:          uint32(field.Width),
		Height:         uint32(field.Height),
		MaxEdgeCount:   uint32(layout.MaxEdgeCount),
		PopulationGrid: layout.Mapper.Population,
		AgentGrid:      layout.Mapper.Agent,
	}
	if bufs.biases != nil {
		tex.Biases = bufs.biases.Bytes()
	}
	return tex, nil
}

type buffers struct {
	activations *TexelBuffer
	edges       *TexelBuffer
	nodes       *TexelBuffer // reserved for runtime state, left zero
	biases      *TexelBuffer
}

// fill writes every graph into bufs. Graphs are split into contiguous ranges,
// one per worker; tiles are disjoint, so workers never write the same texel.
func (e *Encoder) fill(pop *neat.Population, m Mapper, bufs *buffers) {
	workers := e.workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	n := len(pop.Graphs)
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		for gi := range pop.Graphs {
			encodeGraph(gi, &pop.Graphs[gi], m, bufs)
		}
		return
	}

	chunk := (n + workers - 1) / workers
	var g errgroup.Group
	for start := 0; start < n; start += chunk {
		start, end := start, min(start+chunk, n)
		g.Go(func() error {
			for gi := start; gi < end; gi++ {
				encodeGraph(gi, &pop.Graphs[gi], m, bufs)
			}
			return nil
		})
	}
	_ = g.Wait() // workers cannot fail; topology was validated in Plan
}

func encodeGraph(gi int, graph *neat.Graph, m Mapper, bufs *buffers) {
	for ni := range graph.Nodes {
		node := &graph.Nodes[ni]
		at := m.Locate(gi, ni)
		a := node.Activation
		bufs.activations.Set(0, at, Texel{a.A, a.B, a.C, a.D})
		if bufs.biases != nil {
			bufs.biases.Set(0, at, Texel{a.E})
		}
		for k, edge := range node.Edges {
			src := m.Locate(gi, edge.Source)
			bufs.edges.Set(k, at, Texel{float32(src.X), float32(src.Y), edge.Weight, edge.Weight})
		}
	}
}
