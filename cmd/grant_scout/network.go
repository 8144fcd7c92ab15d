package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/grant-scout/internal/network"
	"github.com/jonathan/grant-scout/internal/observability"
	"github.com/jonathan/grant-scout/internal/types"
)

var networkCmd = &cobra.Command{
	Use:   "network",
	Short: "Analyze a board relationship network",
	Long:  "Builds a relationship graph from board rosters and affiliations, computes member centrality and thematic clusters, and maps introduction pathways to a target funder.",
	RunE:  runNetwork,
}

var (
	networkRosters string
	networkOutput  string
)

func init() {
	networkCmd.Flags().StringVarP(&networkRosters, "rosters", "r", "", "Path to rosters JSON file (required)")
	networkCmd.Flags().StringVarP(&networkOutput, "out", "o", "", "Path to output report JSON file (optional)")

	if err := networkCmd.MarkFlagRequired("rosters"); err != nil {
		panic(fmt.Sprintf("failed to mark rosters flag as required: %v", err))
	}

	rootCmd.AddCommand(networkCmd)
}

func runNetwork(_ *cobra.Command, _ []string) error {
	content, err := os.ReadFile(networkRosters)
	if err != nil {
		return fmt.Errorf("failed to read rosters file %s: %w", networkRosters, err)
	}

	var rosters types.NetworkRosters
	if err := json.Unmarshal(content, &rosters); err != nil {
		return fmt.Errorf("failed to unmarshal rosters JSON: %w", err)
	}

	report, err := network.Analyze(&rosters)
	if err != nil {
		return err
	}

	if networkOutput != "" {
		if err := writeJSON(networkOutput, report); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Wrote network report to %s\n", networkOutput)
	}

	observability.NewPrinter(os.Stdout).PrintNetworkReport(report)

	return nil
}
