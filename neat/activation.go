package neat

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// UAF holds the five coefficients of a Universal Activation Function:
//
//	f(x) = ln(1 + e^(A(x+B) + Cx²)) - ln(1 + e^(D(x-B))) + E
//
// A single parametric family covers identity, softplus, ReLU-like and
// bump-shaped responses, which lets every node share one evaluation kernel.
type UAF struct {
	A float32
	B float32
	C float32
	D float32
	E float32
}

// Evaluate computes f(x) for the activation.
func (u UAF) Evaluate(x float32) float32 {
	xf := float64(x)
	b := float64(u.B)
	p := float64(u.A)*(xf+b) + float64(u.C)*xf*xf
	q := float64(u.D) * (xf - b)
	return float32(softplus(p) - softplus(q) + float64(u.E))
}

// String returns a string representation of the coefficients.
func (u UAF) String() string {
	return fmt.Sprintf("UAF(a=%.3f, b=%.3f, c=%.3f, d=%.3f, e=%.3f)", u.A, u.B, u.C, u.D, u.E)
}

// Preset names a fixed coefficient set.
type Preset int

const (
	PresetZero Preset = iota
	PresetIdentity
	PresetSoftplus
	PresetBump
)

// ActivationPresets maps preset names to presets.
// This allows configuration files and population files to refer to common
// activations by name instead of spelling out coefficients.
var ActivationPresets = map[string]Preset{
	"zero":     PresetZero,
	"identity": PresetIdentity,
	"linear":   PresetIdentity, // Alias for identity
	"softplus": PresetSoftplus,
	"bump":     PresetBump,
}

// GetPreset retrieves an activation preset by name.
func GetPreset(name string) (Preset, error) {
	if p, ok := ActivationPresets[strings.ToLower(strings.TrimSpace(name))]; ok {
		return p, nil
	}
	return 0, fmt.Errorf("unknown activation preset: %s", name)
}

// PresetNames returns the registered preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(ActivationPresets))
	for name := range ActivationPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// UAF returns the coefficients of the preset.
func (p Preset) UAF() UAF {
	switch p {
	case PresetIdentity:
		// softplus(x) - softplus(-x) == x
		return UAF{A: 1, D: -1}
	case PresetSoftplus:
		return UAF{A: 1, E: math.Ln2}
	case PresetBump:
		// peaks at ln2 for x = 0 and decays to 0
		return UAF{C: -1, E: math.Ln2}
	default:
		return UAF{}
	}
}

// String returns the canonical preset name.
func (p Preset) String() string {
	switch p {
	case PresetZero:
		return "zero"
	case PresetIdentity:
		return "identity"
	case PresetSoftplus:
		return "softplus"
	case PresetBump:
		return "bump"
	default:
		return fmt.Sprintf("Preset(%d)", int(p))
	}
}
