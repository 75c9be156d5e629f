package nn

import (
	"fmt"

	"github.com/baldhumanity/neatpack/neat"
	"github.com/baldhumanity/neatpack/neat/pack"
)

// Field steps every agent of a packed population at once, reading only the
// textures. It reproduces what a compute shader does per texel and serves as
// a CPU reference for consumers of the packed layout.
type Field struct {
	tex *pack.Textures
	m   pack.Mapper
}

// NewField wraps packed textures.
func NewField(tex *pack.Textures) (*Field, error) {
	want := int(tex.Width) * int(tex.Height) * pack.BytesPerTexel
	if len(tex.Activations) != want {
		return nil, fmt.Errorf("activations: got %d bytes, want %d", len(tex.Activations), want)
	}
	if len(tex.Edges) != want*int(tex.MaxEdgeCount) {
		return nil, fmt.Errorf("edges: got %d bytes, want %d", len(tex.Edges), want*int(tex.MaxEdgeCount))
	}
	if tex.Biases != nil && len(tex.Biases) != want {
		return nil, fmt.Errorf("biases: got %d bytes, want %d", len(tex.Biases), want)
	}
	return &Field{tex: tex, m: tex.Mapper()}, nil
}

// Size returns the number of texels in one field layer.
func (f *Field) Size() int { return int(f.tex.Width) * int(f.tex.Height) }

// Step computes the next field state. state holds one value per texel in
// row-major order. Empty slots carry zero coefficients and stay at zero.
// Zero-weight edges are skipped, so a non-finite state never reaches a node
// through a slot that contributes nothing.
func (f *Field) Step(state []float32) ([]float32, error) {
	if len(state) != f.Size() {
		return nil, fmt.Errorf("mismatch between state size (%d) and field size (%d)", len(state), f.Size())
	}
	w := int(f.tex.Width)
	next := make([]float32, len(state))
	for i := range next {
		at := pack.Coord{X: i % w, Y: i / w}
		a := f.tex.Activation(at)
		u := neat.UAF{A: a[0], B: a[1], C: a[2], D: a[3]}
		if f.tex.Biases != nil {
			u.E = f.tex.Bias(at)[0]
		}
		var sum float32
		for k := 0; k < int(f.tex.MaxEdgeCount); k++ {
			e := f.tex.Edge(k, at)
			if e[2] == 0 {
				// Unused slots point at (0, 0) with zero weight.
				continue
			}
			src := f.m.Index(pack.Coord{X: int(e[0]), Y: int(e[1])})
			sum += e[2] * state[src]
		}
		next[i] = u.Evaluate(sum)
	}
	return next, nil
}
