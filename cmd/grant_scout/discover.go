package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/grant-scout/internal/bmf"
	"github.com/jonathan/grant-scout/internal/config"
	"github.com/jonathan/grant-scout/internal/db"
	"github.com/jonathan/grant-scout/internal/discovery"
	"github.com/jonathan/grant-scout/internal/logger"
	"github.com/jonathan/grant-scout/internal/observability"
	"github.com/jonathan/grant-scout/internal/schemas"
	"github.com/jonathan/grant-scout/internal/scoring"
	"github.com/jonathan/grant-scout/internal/tiers"
	"github.com/jonathan/grant-scout/internal/types"
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Discover and score funding candidates",
	Long: `Filters a bulk IRS exempt-organization extract into funding candidates for
an organization profile, scores each candidate at the given cultivation
stage, and ranks the results into qualification tiers.

Configuration can be loaded from a JSON file using --config. Command-line
arguments override config file values.`,
	RunE: runDiscover,
}

var (
	discoverConfigPath     string
	discoverDataset        string
	discoverProfile        string
	discoverEnrichment     string
	discoverStage          string
	discoverStates         []string
	discoverNTEE           []string
	discoverMajorGroups    []string
	discoverFoundationCode string
	discoverNameContains   string
	discoverMinRevenue     float64
	discoverMaxRevenue     float64
	discoverSortBy         string
	discoverLimit          int
	discoverWorkers        int
	discoverTimeout        int
	discoverOutput         string
	discoverDatabaseURL    string
	discoverJSONLogs       bool
	discoverVerbose        bool
)

func init() {
	discoverCmd.Flags().StringVar(&discoverConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	discoverCmd.Flags().StringVarP(&discoverDataset, "dataset", "d", "", "Path to the IRS BMF CSV extract")
	discoverCmd.Flags().StringVarP(&discoverProfile, "profile", "p", "", "Path to the organization profile JSON")
	discoverCmd.Flags().StringVarP(&discoverEnrichment, "enrichment", "e", "", "Path to enrichment bundles JSON (optional)")
	discoverCmd.Flags().StringVarP(&discoverStage, "stage", "s", "", "Cultivation stage: discover, plan, analyze, examine, or approach")

	discoverCmd.Flags().StringSliceVar(&discoverStates, "states", nil, "Two-letter state codes to include")
	discoverCmd.Flags().StringSliceVar(&discoverNTEE, "ntee", nil, "NTEE codes or prefixes to include")
	discoverCmd.Flags().StringSliceVar(&discoverMajorGroups, "major-groups", nil, "NTEE major group letters to include")
	discoverCmd.Flags().StringVar(&discoverFoundationCode, "foundation-code", "", "Foundation classification code to include")
	discoverCmd.Flags().StringVar(&discoverNameContains, "name-contains", "", "Case-insensitive name substring filter")
	discoverCmd.Flags().Float64Var(&discoverMinRevenue, "min-revenue", 0, "Minimum annual revenue")
	discoverCmd.Flags().Float64Var(&discoverMaxRevenue, "max-revenue", 0, "Maximum annual revenue")
	discoverCmd.Flags().StringVar(&discoverSortBy, "sort", "", "Result order before truncation: name, revenue, or assets")
	discoverCmd.Flags().IntVar(&discoverLimit, "limit", 0, "Maximum candidates returned")

	discoverCmd.Flags().IntVar(&discoverWorkers, "workers", 0, "Scoring worker pool size (0 = one per core)")
	discoverCmd.Flags().IntVar(&discoverTimeout, "timeout", 0, "Run time budget in seconds")
	discoverCmd.Flags().StringVarP(&discoverOutput, "out", "o", "", "Path to write the full result JSON (optional)")
	discoverCmd.Flags().StringVar(&discoverDatabaseURL, "db-url", "", "PostgreSQL connection URL for snapshot persistence (optional, defaults to DATABASE_URL env var)")
	discoverCmd.Flags().BoolVar(&discoverJSONLogs, "json-logs", false, "Emit logs as JSON instead of console text")
	discoverCmd.Flags().BoolVarP(&discoverVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(discoverCmd)
}

func runDiscover(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Step 1: Load config file if provided
	var cfg config.Config
	if discoverConfigPath != "" {
		loadedCfg, err := config.LoadConfig(discoverConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loadedCfg.Validate(); err != nil {
			return err
		}
		cfg = *loadedCfg
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	if cmd.Flags().Changed("dataset") {
		cfg.Dataset = discoverDataset
	}
	if cmd.Flags().Changed("profile") {
		cfg.Profile = discoverProfile
	}
	if cmd.Flags().Changed("stage") {
		cfg.Stage = discoverStage
	}
	if cmd.Flags().Changed("limit") {
		cfg.Limit = discoverLimit
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = discoverWorkers
	}
	if cmd.Flags().Changed("timeout") {
		cfg.TimeoutSeconds = discoverTimeout
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = discoverDatabaseURL
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = discoverVerbose
	}

	// Step 3: Apply defaults for unset values
	cfg = cfg.MergeWithDefaults(discoverDefaults())

	// Step 4: Validate required fields
	if cfg.Dataset == "" {
		return fmt.Errorf("--dataset is required (via flag or config)")
	}
	if cfg.Profile == "" {
		return fmt.Errorf("--profile is required (via flag or config)")
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	log, err := logger.New(discoverJSONLogs, cfg.Verbose)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	// Step 5: Load inputs
	dataset, err := bmf.LoadDataset(cfg.Dataset)
	if err != nil {
		return err
	}

	profile, err := schemas.LoadProfile(cfg.Profile)
	if err != nil {
		return err
	}

	var enrichment map[string]*types.Enrichment
	if discoverEnrichment != "" {
		enrichment, err = schemas.LoadEnrichment(discoverEnrichment)
		if err != nil {
			return err
		}
	}

	// Step 6: Assemble run options
	scoringCfg := scoring.DefaultConfig()
	for dim, weight := range cfg.Weights {
		scoringCfg.Weights[dim] = weight
	}
	if cfg.BoostFactor != 0 {
		scoringCfg.BoostFactor = cfg.BoostFactor
	}

	thresholds := tiers.DefaultThresholds()
	if cfg.AutoQualified != 0 {
		thresholds.AutoQualified = cfg.AutoQualified
	}
	if cfg.Review != 0 {
		thresholds.Review = cfg.Review
	}
	if cfg.Consider != 0 {
		thresholds.Consider = cfg.Consider
	}
	if cfg.MinScore != 0 {
		thresholds.MinScore = cfg.MinScore
	}

	criteria := &bmf.FilterCriteria{
		States:          discoverStates,
		NTEECodes:       discoverNTEE,
		NTEEMajorGroups: discoverMajorGroups,
		FoundationCode:  discoverFoundationCode,
		NameContains:    discoverNameContains,
		Limit:           cfg.Limit,
		SortBy:          discoverSortBy,
	}
	if cmd.Flags().Changed("min-revenue") {
		criteria.MinRevenue = &discoverMinRevenue
	}
	if cmd.Flags().Changed("max-revenue") {
		criteria.MaxRevenue = &discoverMaxRevenue
	}

	opts := discovery.Options{
		Criteria:   criteria,
		Profile:    profile,
		Stage:      types.Stage(cfg.Stage),
		Scoring:    scoringCfg,
		Thresholds: thresholds,
		Enrichment: enrichment,
		Workers:    cfg.Workers,
		Timeout:    time.Duration(cfg.TimeoutSeconds) * time.Second,
		AsOfYear:   time.Now().Year(),
		Logger:     log,
	}

	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer database.Close()
		opts.Snapshots = database
	}

	// Step 7: Run discovery
	result, err := discovery.Run(ctx, dataset, opts)
	if err != nil {
		return err
	}

	// Step 8: Emit results
	if discoverOutput != "" {
		if err := writeJSON(discoverOutput, result); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Wrote %d opportunities to %s\n", len(result.Opportunities), discoverOutput)
	}

	observability.NewPrinter(os.Stdout).PrintOpportunities(result)

	return nil
}

// discoverDefaults carries the fallback values applied after the config file
// and explicit flags have been merged.
func discoverDefaults() config.Config {
	return config.Config{
		Stage:          string(types.StageDiscover),
		TimeoutSeconds: 120,
	}
}

// writeJSON marshals v with indentation and writes it, creating the output
// directory when needed.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output JSON: %w", err)
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}
	return nil
}
