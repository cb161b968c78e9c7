package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-ats-checker/internal/db"
	"github.com/jonathan/resume-ats-checker/internal/observability"
)

var historyCmd = &cobra.Command{
	Use:   "history [analysis-id]",
	Short: "List stored analyses or show one of them",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHistory,
}

var (
	historyLimit  int
	historyOffset int
	historyDelete bool
)

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", db.DefaultListLimit, "Maximum number of analyses to list")
	historyCmd.Flags().IntVar(&historyOffset, "offset", 0, "Number of analyses to skip")
	historyCmd.Flags().BoolVar(&historyDelete, "delete", false, "Delete the given analysis")
	historyCmd.Flags().BoolVar(&jsonOutput, "json-output", false, "Print as JSON")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	if historyDelete && len(args) == 0 {
		return fmt.Errorf("--delete requires an analysis id")
	}

	ctx := cmd.Context()
	a, err := newApp(ctx, true)
	if err != nil {
		return err
	}
	defer a.close()

	if a.store == nil {
		return fmt.Errorf("history requires database.url to be configured")
	}
	out := cmd.OutOrStdout()

	if historyDelete {
		deleted, err := a.store.DeleteAnalysis(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to delete analysis: %w", err)
		}
		if !deleted {
			return fmt.Errorf("analysis %s not found", args[0])
		}
		_, err = fmt.Fprintf(out, "Deleted analysis %s\n", args[0])
		return err
	}

	if len(args) == 1 {
		res, err := a.store.GetAnalysis(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to get analysis: %w", err)
		}
		if res == nil {
			return fmt.Errorf("analysis %s not found", args[0])
		}
		return writeResult(out, res, jsonOutput)
	}

	if historyOffset < 0 {
		return fmt.Errorf("--offset must be non-negative")
	}
	items, err := a.store.ListAnalyses(ctx, db.ClampLimit(historyLimit), historyOffset)
	if err != nil {
		return fmt.Errorf("failed to list analyses: %w", err)
	}

	if jsonOutput {
		if items == nil {
			items = []db.AnalysisSummary{}
		}
		data, err := json.MarshalIndent(items, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal history: %w", err)
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}
	observability.NewPrinter(out).PrintHistory(items)
	return nil
}
