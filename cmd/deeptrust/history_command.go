package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/execute-aditya/Deep-Trust/internal/report"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Browse past analyses",
	}

	historyCmd.AddCommand(newHistoryListCommand(ctx))
	historyCmd.AddCommand(newHistoryShowCommand(ctx))
	historyCmd.AddCommand(newHistoryPruneCommand(ctx))
	historyCmd.AddCommand(newHistoryStatsCommand(ctx))

	return historyCmd
}

func newHistoryListCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent analyses",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			records, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, records)
			}

			rows := make([][]string, 0, len(records))
			for _, record := range records {
				rows = append(rows, []string{
					shortID(record.ID),
					record.Filename,
					record.MediaType,
					record.Verdict,
					fmt.Sprintf("%.1f%%", record.Confidence*100),
					record.CreatedAt.Local().Format("2006-01-02 15:04"),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"ID", "File", "Type", "Verdict", "Confidence", "When"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of reports to show")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print records as JSON")
	return cmd
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show the full stored analysis for a report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			record, err := resolveRecord(cmd, store, args[0])
			if err != nil {
				return err
			}

			if record.ResponseJSON == "" {
				return writeJSON(cmd, record)
			}
			var doc any
			if err := json.Unmarshal([]byte(record.ResponseJSON), &doc); err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), record.ResponseJSON)
				return nil
			}
			return writeJSON(cmd, doc)
		},
	}
}

func newHistoryPruneCommand(ctx *commandContext) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Remove reports older than a retention window",
		RunE: func(cmd *cobra.Command, args []string) error {
			if days <= 0 {
				return fmt.Errorf("--days must be positive")
			}
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			cutoff := time.Now().UTC().AddDate(0, 0, -days)
			pruned, err := store.Prune(cmd.Context(), cutoff)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Pruned %d report(s) older than %d day(s)\n", pruned, days)
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 60, "Retention window in days")
	return cmd
}

func newHistoryStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show verdict counts across stored reports",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			stats, err := store.Stats(cmd.Context())
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(stats.Verdicts)+1)
			for _, verdict := range []string{"authentic", "uncertain", "suspicious", "manipulated"} {
				if count, ok := stats.Verdicts[verdict]; ok {
					rows = append(rows, []string{verdict, fmt.Sprintf("%d", count)})
				}
			}
			rows = append(rows, []string{"total", fmt.Sprintf("%d", stats.Total)})
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Verdict", "Count"},
				rows,
				[]columnAlignment{alignLeft, alignRight},
			))
			return nil
		},
	}
}

// resolveRecord accepts either a full report ID or an unambiguous prefix.
func resolveRecord(cmd *cobra.Command, store *report.Store, id string) (*report.Record, error) {
	exact, err := store.GetByID(cmd.Context(), id)
	if err != nil {
		return nil, err
	}
	if exact != nil {
		return exact, nil
	}

	records, err := store.List(cmd.Context(), 0)
	if err != nil {
		return nil, err
	}
	var match *report.Record
	for _, candidate := range records {
		if len(id) >= 4 && strings.HasPrefix(candidate.ID, id) {
			if match != nil {
				return nil, fmt.Errorf("report id prefix %q is ambiguous", id)
			}
			match = candidate
		}
	}
	if match == nil {
		return nil, fmt.Errorf("report %q not found", id)
	}
	return match, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
