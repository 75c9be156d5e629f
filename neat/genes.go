package neat

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
)

// --------------------------- NodeGene ---------------------------

// NodeGene represents a node (neuron) in the genome.
type NodeGene struct {
	Key        int // Unique identifier for this node gene within its genome
	Activation UAF
}

// NewNodeGene creates a new NodeGene with an activation chosen according to the config.
func NewNodeGene(key int, config *PopulationConfig, rng *rand.Rand) *NodeGene {
	return &NodeGene{
		Key:        key,
		Activation: initActivation(config, rng),
	}
}

// String returns a string representation of the NodeGene.
func (ng *NodeGene) String() string {
	return fmt.Sprintf("NodeGene(Key: %d, %s)", ng.Key, ng.Activation)
}

// --------------------------- ConnectionGene ---------------------------

// ConnectionGene represents a connection between two nodes in the genome.
type ConnectionGene struct {
	Key     ConnectionKey // Represents the (in_node_id, out_node_id) pair
	Weight  float64
	Enabled bool
}

// ConnectionKey uniquely identifies a connection gene.
type ConnectionKey struct {
	InNodeID  int
	OutNodeID int
}

// NewConnectionGene creates a new ConnectionGene with attributes initialized according to the config.
func NewConnectionGene(key ConnectionKey, config *PopulationConfig, rng *rand.Rand) *ConnectionGene {
	return &ConnectionGene{
		Key:     key,
		Weight:  initFloatAttribute(rng, config.WeightInitMean, config.WeightInitStdev, config.WeightInitType, config.WeightMinValue, config.WeightMaxValue),
		Enabled: parseBoolAttribute(config.EnabledDefault),
	}
}

// String returns a string representation of the ConnectionGene.
func (cg *ConnectionGene) String() string {
	return fmt.Sprintf("ConnGene(Key: %d->%d, Weight: %.3f, Enabled: %t)",
		cg.Key.InNodeID, cg.Key.OutNodeID, cg.Weight, cg.Enabled)
}

// --------------------------- Attribute Helpers ---------------------------

func initFloatAttribute(rng *rand.Rand, mean, stdev float64, initType string, minVal, maxVal float64) float64 {
	var val float64
	switch strings.ToLower(initType) {
	case "uniform":
		// Estimate uniform range from mean/stdev assuming approx 2 std devs covers most range
		rangeMin := math.Max(minVal, mean-(2*stdev))
		rangeMax := math.Min(maxVal, mean+(2*stdev))
		if rangeMax < rangeMin {
			rangeMax = rangeMin
		}
		val = rng.Float64()*(rangeMax-rangeMin) + rangeMin
	default: // gaussian
		val = rng.NormFloat64()*stdev + mean
	}
	return clamp(val, minVal, maxVal)
}

// initActivation picks a preset according to activation_default and
// activation_options, then perturbs its coefficients by activation_jitter.
func initActivation(config *PopulationConfig, rng *rand.Rand) UAF {
	name := config.ActivationDefault
	switch strings.ToLower(name) {
	case "random", "none", "":
		name = config.ActivationOptions[rng.Intn(len(config.ActivationOptions))]
	}
	preset, err := GetPreset(name)
	if err != nil {
		// Validate rejects unknown names before generation starts.
		preset = PresetIdentity
	}
	u := preset.UAF()
	if j := config.ActivationJitter; j > 0 {
		u.A += float32(rng.NormFloat64() * j)
		u.B += float32(rng.NormFloat64() * j)
		u.C += float32(rng.NormFloat64() * j)
		u.D += float32(rng.NormFloat64() * j)
		u.E += float32(rng.NormFloat64() * j)
	}
	return u
}
