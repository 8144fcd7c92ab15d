package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/grant-scout/internal/history"
	"github.com/jonathan/grant-scout/internal/observability"
	"github.com/jonathan/grant-scout/internal/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Analyze an organization's funding history",
	Long:  "Summarizes past awards into year-over-year totals, a trend direction, funder geography, and the repeat-funder rate.",
	RunE:  runHistory,
}

var (
	historyAwards string
	historyOutput string
)

func init() {
	historyCmd.Flags().StringVarP(&historyAwards, "awards", "a", "", "Path to past awards JSON file (required)")
	historyCmd.Flags().StringVarP(&historyOutput, "out", "o", "", "Path to output summary JSON file (optional)")

	if err := historyCmd.MarkFlagRequired("awards"); err != nil {
		panic(fmt.Sprintf("failed to mark awards flag as required: %v", err))
	}

	rootCmd.AddCommand(historyCmd)
}

func runHistory(_ *cobra.Command, _ []string) error {
	content, err := os.ReadFile(historyAwards)
	if err != nil {
		return fmt.Errorf("failed to read awards file %s: %w", historyAwards, err)
	}

	var awards []types.Award
	if err := json.Unmarshal(content, &awards); err != nil {
		return fmt.Errorf("failed to unmarshal awards JSON: %w", err)
	}

	summary := history.Analyze(awards)

	if historyOutput != "" {
		if err := writeJSON(historyOutput, summary); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Wrote funding history to %s\n", historyOutput)
	}

	observability.NewPrinter(os.Stdout).PrintFundingHistory(summary)

	return nil
}
