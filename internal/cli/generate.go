package cli

import (
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/baldhumanity/neatpack/neat"
)

func newGenerateCmd() *cobra.Command {
	var (
		configPath string
		outPath    string
		seed       int64
		size       int
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a random population",
		Long: `Generate a random population from the [Population] section of an ini
configuration. The output format follows the extension of --out: .toml for
a population description, .gob.gz or .snap for a compressed snapshot.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("size") {
				cfg.Population.PopSize = size
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			if !cmd.Flags().Changed("seed") {
				seed = time.Now().UnixNano()
			}
			logger.Debug("generating population", "seed", seed, "pop_size", cfg.Population.PopSize)

			pop, err := neat.NewRandomPopulation(cfg, rand.New(rand.NewSource(seed)))
			if err != nil {
				return err
			}
			if err := savePopulation(&pop, outPath); err != nil {
				return err
			}
			s := pop.Stats()
			logger.Info("wrote population", "file", outPath, "graphs", s.Graphs, "nodes", s.Nodes, "edges", s.Edges, "seed", seed)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "ini configuration file")
	cmd.Flags().StringVarP(&outPath, "out", "o", "population.toml", "output file (.toml, .gob.gz or .snap)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (default: current time)")
	cmd.Flags().IntVar(&size, "size", 0, "override pop_size")
	return cmd
}
