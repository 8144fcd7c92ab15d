package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/grant-scout/internal/tiers"
)

var calibrateCmd = &cobra.Command{
	Use:   "calibrate",
	Short: "Recalibrate tier thresholds from a scored sample",
	Long:  "Recomputes the qualification tier cut-points from a reference sample of composite scores so thresholds track the live score distribution.",
	RunE:  runCalibrate,
}

var (
	calibrateScores        string
	calibrateOutput        string
	calibrateAutoQualified float64
	calibrateReview        float64
	calibrateConsider      float64
	calibrateMinScore      float64
)

func init() {
	calibrateCmd.Flags().StringVarP(&calibrateScores, "scores", "s", "", "Path to JSON array of composite scores (required)")
	calibrateCmd.Flags().StringVarP(&calibrateOutput, "out", "o", "", "Path to output thresholds JSON file (optional)")

	defaults := tiers.DefaultPercentiles()
	calibrateCmd.Flags().Float64Var(&calibrateAutoQualified, "auto-qualified-pct", defaults.AutoQualified, "Percentile for the auto_qualified cut-point")
	calibrateCmd.Flags().Float64Var(&calibrateReview, "review-pct", defaults.Review, "Percentile for the review cut-point")
	calibrateCmd.Flags().Float64Var(&calibrateConsider, "consider-pct", defaults.Consider, "Percentile for the consider cut-point")
	calibrateCmd.Flags().Float64Var(&calibrateMinScore, "min-score-pct", defaults.MinScore, "Percentile for the minimum qualifying cut-point")

	if err := calibrateCmd.MarkFlagRequired("scores"); err != nil {
		panic(fmt.Sprintf("failed to mark scores flag as required: %v", err))
	}

	rootCmd.AddCommand(calibrateCmd)
}

func runCalibrate(_ *cobra.Command, _ []string) error {
	content, err := os.ReadFile(calibrateScores)
	if err != nil {
		return fmt.Errorf("failed to read scores file %s: %w", calibrateScores, err)
	}

	var scores []float64
	if err := json.Unmarshal(content, &scores); err != nil {
		return fmt.Errorf("failed to unmarshal scores JSON: %w", err)
	}

	thresholds, err := tiers.Calibrate(scores, tiers.Percentiles{
		AutoQualified: calibrateAutoQualified,
		Review:        calibrateReview,
		Consider:      calibrateConsider,
		MinScore:      calibrateMinScore,
	})
	if err != nil {
		return err
	}

	if calibrateOutput != "" {
		if err := writeJSON(calibrateOutput, thresholds); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Wrote calibrated thresholds to %s\n", calibrateOutput)
		return nil
	}

	data, err := json.MarshalIndent(thresholds, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal thresholds: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(data))

	return nil
}
