package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"zotsync/internal/services/logseq"
)

func newGraphsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "graphs",
		Short: "List the Logseq graphs the CLI can see",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			client, err := logseq.New(cfg.Logseq.Binary, cfg.Logseq.URLProperty, cfg.Logseq.QueryTimeout)
			if err != nil {
				return err
			}

			graphs, err := client.Graphs(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(graphs) == 0 {
				fmt.Fprintln(out, "No DB graphs found")
				return nil
			}
			for _, graph := range graphs {
				marker := " "
				if graph == cfg.Logseq.Graph {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %s\n", marker, graph)
			}
			return nil
		},
	}
}
