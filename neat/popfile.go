package neat

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Population description files are TOML documents:
//
//	max_edge_count = 1          # optional declared edge layers
//
//	[[graph]]
//	  [[graph.node]]
//	  preset = "identity"
//	  edges = [{ source = 1, weight = 1.0 }]
//
//	  [[graph.node]]
//	  activation = { a = 0.5, b = 0.0, c = 0.5, d = 1.0, e = 0.0 }
//	  edges = [{ source = 1, weight = 1.0 }]
//
// A node gives either a preset name or explicit coefficients, never both.
// A node with neither gets the zero activation.

type populationFile struct {
	MaxEdgeCount uint32      `toml:"max_edge_count,omitempty"`
	Graphs       []graphFile `toml:"graph"`
}

type graphFile struct {
	Nodes []nodeFile `toml:"node"`
}

type nodeFile struct {
	Preset     string          `toml:"preset,omitempty"`
	Activation *activationFile `toml:"activation,omitempty"`
	Edges      []edgeFile      `toml:"edges,omitempty"`
}

type activationFile struct {
	A float32 `toml:"a"`
	B float32 `toml:"b"`
	C float32 `toml:"c"`
	D float32 `toml:"d"`
	E float32 `toml:"e"`
}

type edgeFile struct {
	Source int     `toml:"source"`
	Weight float32 `toml:"weight"`
}

// LoadPopulationFile reads a TOML population description from disk.
func LoadPopulationFile(filePath string) (*Population, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open population file '%s': %w", filePath, err)
	}
	defer f.Close()
	pop, err := DecodePopulation(f)
	if err != nil {
		return nil, fmt.Errorf("population file '%s': %w", filePath, err)
	}
	return pop, nil
}

// DecodePopulation parses a TOML population description.
// Unknown keys, unknown presets and out-of-range edge sources are rejected.
func DecodePopulation(r io.Reader) (*Population, error) {
	var doc populationFile
	md, err := toml.NewDecoder(r).Decode(&doc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}

	pop := &Population{
		Graphs:       make([]Graph, len(doc.Graphs)),
		MaxEdgeCount: doc.MaxEdgeCount,
	}
	for gi, gf := range doc.Graphs {
		graph := Graph{Nodes: make([]Node, len(gf.Nodes))}
		for ni, nf := range gf.Nodes {
			node, err := nf.node()
			if err != nil {
				return nil, fmt.Errorf("graph %d node %d: %w", gi, ni, err)
			}
			graph.Nodes[ni] = node
		}
		pop.Graphs[gi] = graph
	}
	if err := pop.Validate(); err != nil {
		return nil, err
	}
	return pop, nil
}

func (nf nodeFile) node() (Node, error) {
	var node Node
	switch {
	case nf.Preset != "" && nf.Activation != nil:
		return Node{}, fmt.Errorf("both preset and activation given")
	case nf.Preset != "":
		p, err := GetPreset(nf.Preset)
		if err != nil {
			return Node{}, err
		}
		node.Activation = p.UAF()
	case nf.Activation != nil:
		a := nf.Activation
		node.Activation = UAF{A: a.A, B: a.B, C: a.C, D: a.D, E: a.E}
	}
	if len(nf.Edges) > 0 {
		node.Edges = make([]Edge, len(nf.Edges))
		for k, ef := range nf.Edges {
			node.Edges[k] = Edge{Weight: ef.Weight, Source: ef.Source}
		}
	}
	return node, nil
}

// SavePopulationFile writes pop as a TOML population description.
func SavePopulationFile(pop *Population, filePath string) error {
	f, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create population file '%s': %w", filePath, err)
	}
	if err := EncodePopulation(pop, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// EncodePopulation writes pop as TOML. Activations equal to a preset are
// written by name.
func EncodePopulation(pop *Population, w io.Writer) error {
	doc := populationFile{
		MaxEdgeCount: pop.MaxEdgeCount,
		Graphs:       make([]graphFile, len(pop.Graphs)),
	}
	for gi, g := range pop.Graphs {
		gf := graphFile{Nodes: make([]nodeFile, len(g.Nodes))}
		for ni, n := range g.Nodes {
			var nf nodeFile
			if p, ok := presetOf(n.Activation); ok {
				nf.Preset = p.String()
			} else {
				a := n.Activation
				nf.Activation = &activationFile{A: a.A, B: a.B, C: a.C, D: a.D, E: a.E}
			}
			for _, e := range n.Edges {
				nf.Edges = append(nf.Edges, edgeFile{Source: e.Source, Weight: e.Weight})
			}
			gf.Nodes[ni] = nf
		}
		doc.Graphs[gi] = gf
	}
	if err := toml.NewEncoder(w).Encode(doc); err != nil {
		return fmt.Errorf("failed to encode population as TOML: %w", err)
	}
	return nil
}

func presetOf(u UAF) (Preset, bool) {
	for _, name := range PresetNames() {
		p := ActivationPresets[name]
		if p.UAF() == u {
			return p, true
		}
	}
	return 0, false
}
