package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/baldhumanity/neatpack/neat"
	"github.com/baldhumanity/neatpack/neat/pack"
)

// populationFormat picks the file format from the extension.
func populationFormat(path string) (string, error) {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".toml"):
		return "toml", nil
	case strings.HasSuffix(lower, ".gob.gz"), strings.HasSuffix(lower, ".snap"):
		return "snapshot", nil
	default:
		return "", fmt.Errorf("unknown population format for %q (want .toml, .gob.gz or .snap)", filepath.Base(path))
	}
}

func loadPopulation(path string) (*neat.Population, error) {
	format, err := populationFormat(path)
	if err != nil {
		return nil, err
	}
	if format == "toml" {
		return neat.LoadPopulationFile(path)
	}
	return neat.LoadPopulation(path)
}

func savePopulation(pop *neat.Population, path string) error {
	format, err := populationFormat(path)
	if err != nil {
		return err
	}
	if format == "toml" {
		return neat.SavePopulationFile(pop, path)
	}
	return neat.SavePopulation(pop, path)
}

func loadConfig(path string) (*neat.Config, error) {
	if path == "" {
		return neat.DefaultConfig(), nil
	}
	return neat.LoadConfig(path)
}

// packFlags are the encoder settings shared by pack and inspect. Flags that
// were set on the command line override the [Pack] section of the config.
type packFlags struct {
	config  string
	workers int
	policy  string
	bias    bool
}

func (f *packFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.config, "config", "c", "", "ini configuration file")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "encoder goroutines (0 = GOMAXPROCS)")
	cmd.Flags().StringVar(&f.policy, "edge-count", "derive", "edge layer count policy: derive or declare")
	cmd.Flags().BoolVar(&f.bias, "bias", false, "emit the e coefficient as biases.bin")
}

func (f *packFlags) encoder(cmd *cobra.Command) (*pack.Encoder, *neat.Config, error) {
	cfg, err := loadConfig(f.config)
	if err != nil {
		return nil, nil, err
	}
	pc := cfg.Pack
	if cmd.Flags().Changed("workers") {
		pc.Workers = f.workers
	}
	if cmd.Flags().Changed("edge-count") {
		pc.EdgeCountPolicy = f.policy
	}
	if cmd.Flags().Changed("bias") {
		pc.BiasTexture = f.bias
	}
	policy, err := pack.ParseEdgeCountPolicy(pc.EdgeCountPolicy)
	if err != nil {
		return nil, nil, err
	}
	opts := []pack.Option{
		pack.WithWorkers(pc.Workers),
		pack.WithEdgeCountPolicy(policy),
		pack.WithMaxBufferBytes(pc.MaxBufferBytes),
	}
	if pc.BiasTexture {
		opts = append(opts, pack.WithBiasTexture())
	}
	cfg.Pack = pc
	return pack.NewEncoder(opts...), cfg, nil
}
