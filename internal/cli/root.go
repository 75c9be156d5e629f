// Package cli implements the neatpack command-line interface.
//
// The CLI is built using cobra and logs through charmbracelet/log. All
// commands support --verbose (-v) for debug-level logging; the logger is
// passed to commands through context.Context.
//
// Commands:
//   - pack: encode a population file into texture buffers plus a manifest
//   - generate: write a random population from an ini configuration
//   - inspect: report population statistics and the packed layout
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version.
// It is called by the main package with values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the neatpack CLI and returns an error if any command fails.
func Execute(ctx context.Context) error {
	return newRootCmd(os.Stderr).ExecuteContext(ctx)
}

// newRootCmd builds the command tree. Logs go to logOut.
func newRootCmd(logOut io.Writer) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          "neatpack",
		Short:        "neatpack packs NEAT populations into GPU textures",
		Long:         `neatpack lays out populations of small recurrent networks as RGBA32F texture buffers, one texel per node, ready for compute-shader execution.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(logOut, level)))
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("neatpack %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newPackCmd())
	root.AddCommand(newGenerateCmd())
	root.AddCommand(newInspectCmd())

	return root
}
