package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"zotsync/internal/journal"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent sync runs from the local journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if !cfg.Journal.Enabled {
				fmt.Fprintln(out, "Run journal is disabled in the configuration")
				return nil
			}

			store, err := journal.Open(cfg.Journal.Path)
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(out, "No runs recorded yet")
				return nil
			}

			headers := []string{"Finished", "Graph", "Tag", "Outcome", "Found", "Tagged", "Failed"}
			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, []string{
					entry.FinishedAt.Local().Format(time.DateTime),
					entry.Graph,
					entry.Tag,
					entry.Outcome,
					strconv.Itoa(entry.TotalFound),
					strconv.Itoa(entry.Succeeded),
					strconv.Itoa(entry.Failed),
				})
			}
			fmt.Fprintln(out, renderTable(headers, rows, 5, 6, 7))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show")
	return cmd
}
