package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/baldhumanity/neatpack/neat/pack"
)

const manifestFile = "manifest.toml"

func newPackCmd() *cobra.Command {
	var (
		flags  packFlags
		outDir string
	)

	cmd := &cobra.Command{
		Use:   "pack <population>",
		Short: "Encode a population into texture buffers",
		Long: `Encode a population (.toml description or .gob.gz snapshot) into
activations.bin, edges.bin and nodes.bin plus a manifest.toml describing
dimensions and channel layout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			enc, cfg, err := flags.encoder(cmd)
			if err != nil {
				return err
			}
			pop, err := loadPopulation(args[0])
			if err != nil {
				return err
			}
			logger.Debug("loaded population", "file", args[0], "graphs", len(pop.Graphs), "nodes", pop.NodeCount())

			prog := newProgress(logger)
			tex, err := enc.Encode(pop)
			if err != nil {
				return fmt.Errorf("pack %s: %w", args[0], err)
			}
			prog.done("packed population",
				"field", fmt.Sprintf("%dx%d", tex.Width, tex.Height),
				"edge_layers", tex.MaxEdgeCount,
				"policy", cfg.Pack.EdgeCountPolicy)

			if err := writeTextures(tex, outDir); err != nil {
				return err
			}
			logger.Info("wrote textures", "dir", outDir)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&outDir, "out", "o", "textures", "output directory")
	return cmd
}

// writeTextures writes every buffer as <name>.bin and the manifest into dir.
func writeTextures(tex *pack.Textures, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	for _, b := range tex.Buffers() {
		path := filepath.Join(dir, b.Name+".bin")
		if err := os.WriteFile(path, b.Data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}

	f, err := os.Create(filepath.Join(dir, manifestFile))
	if err != nil {
		return fmt.Errorf("create manifest: %w", err)
	}
	if err := toml.NewEncoder(f).Encode(tex.Manifest()); err != nil {
		f.Close()
		return fmt.Errorf("write manifest: %w", err)
	}
	return f.Close()
}
