package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInspectCmd() *cobra.Command {
	var flags packFlags

	cmd := &cobra.Command{
		Use:   "inspect <population>",
		Short: "Report population statistics and the packed layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			enc, _, err := flags.encoder(cmd)
			if err != nil {
				return err
			}
			pop, err := loadPopulation(args[0])
			if err != nil {
				return err
			}

			s := pop.Stats()
			logger.Info("population",
				"graphs", s.Graphs,
				"nodes", s.Nodes,
				"edges", s.Edges,
				"empty_graphs", s.EmptyGraphs)
			logger.Info("graph size",
				"min", s.MinNodes,
				"max", s.MaxNodes,
				"mean", fmt.Sprintf("%.2f", s.MeanNodes))
			logger.Info("edges per node",
				"max", s.MaxEdges,
				"mean", fmt.Sprintf("%.2f", s.MeanFanIn),
				"declared", s.DeclaredMax,
				"self", s.SelfEdges,
				"isolated_nodes", s.DisconnNodes)

			layout, err := enc.Plan(pop)
			if err != nil {
				return fmt.Errorf("inspect %s: %w", args[0], err)
			}
			field := layout.Mapper.Field()
			logger.Info("layout",
				"population_grid", layout.Mapper.Population,
				"agent_grid", layout.Mapper.Agent,
				"field", field,
				"edge_layers", layout.MaxEdgeCount,
				"slots_used", fmt.Sprintf("%d/%d", s.Nodes, field.Area()))
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
