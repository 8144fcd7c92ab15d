package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/grant-scout/internal/grants"
	"github.com/jonathan/grant-scout/internal/observability"
	"github.com/jonathan/grant-scout/internal/schemas"
	"github.com/jonathan/grant-scout/internal/types"
)

var foundationCmd = &cobra.Command{
	Use:   "foundation",
	Short: "Analyze a foundation's grant-making pattern",
	Long:  "Analyzes one foundation's historical grant list into size tiers, purpose categories, geographic focus, and giving style, optionally matched against an organization profile.",
	RunE:  runFoundation,
}

var (
	foundationGrants  string
	foundationEIN     string
	foundationName    string
	foundationTaxYear int
	foundationProfile string
	foundationOutput  string
)

func init() {
	foundationCmd.Flags().StringVarP(&foundationGrants, "grants", "g", "", "Path to grant records JSON file (required)")
	foundationCmd.Flags().StringVar(&foundationEIN, "ein", "", "Foundation EIN (required)")
	foundationCmd.Flags().StringVar(&foundationName, "name", "", "Foundation name")
	foundationCmd.Flags().IntVar(&foundationTaxYear, "tax-year", 0, "Tax year of the grant list")
	foundationCmd.Flags().StringVarP(&foundationProfile, "profile", "p", "", "Path to organization profile JSON for match scoring (optional)")
	foundationCmd.Flags().StringVarP(&foundationOutput, "out", "o", "", "Path to output pattern JSON file (optional)")

	if err := foundationCmd.MarkFlagRequired("grants"); err != nil {
		panic(fmt.Sprintf("failed to mark grants flag as required: %v", err))
	}
	if err := foundationCmd.MarkFlagRequired("ein"); err != nil {
		panic(fmt.Sprintf("failed to mark ein flag as required: %v", err))
	}

	rootCmd.AddCommand(foundationCmd)
}

func runFoundation(_ *cobra.Command, _ []string) error {
	content, err := os.ReadFile(foundationGrants)
	if err != nil {
		return fmt.Errorf("failed to read grants file %s: %w", foundationGrants, err)
	}

	var records []types.GrantRecord
	if err := json.Unmarshal(content, &records); err != nil {
		return fmt.Errorf("failed to unmarshal grants JSON: %w", err)
	}

	var profile *types.Profile
	if foundationProfile != "" {
		profile, err = schemas.LoadProfile(foundationProfile)
		if err != nil {
			return err
		}
	}

	analyzer := grants.NewAnalyzer(10 * time.Minute)
	key := types.FoundationKey{EIN: foundationEIN, TaxYear: foundationTaxYear}
	pattern, err := analyzer.Analyze(key, foundationName, records, profile)
	if err != nil {
		return err
	}

	if foundationOutput != "" {
		if err := writeJSON(foundationOutput, pattern); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Wrote pattern analysis to %s\n", foundationOutput)
	}

	observability.NewPrinter(os.Stdout).PrintFoundationPattern(pattern)

	return nil
}
