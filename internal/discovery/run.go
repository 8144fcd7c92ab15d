// Package discovery orchestrates a full opportunity discovery run: filter
// the bulk dataset once, score candidates concurrently, classify tiers, and
// account for every candidate in a structured summary.
package discovery

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/grant-scout/internal/bmf"
	"github.com/jonathan/grant-scout/internal/grants"
	"github.com/jonathan/grant-scout/internal/scoring"
	"github.com/jonathan/grant-scout/internal/tiers"
	"github.com/jonathan/grant-scout/internal/types"
)

// maxSampleErrors bounds how many per-candidate error messages the summary
// retains alongside the counts.
const maxSampleErrors = 5

// SnapshotStore persists scoring snapshots append-only. Implementations
// must never overwrite an earlier snapshot for the same pair.
type SnapshotStore interface {
	AppendSnapshot(ctx context.Context, snapshot *types.ScoreSnapshot) error
}

// Options configures one discovery run.
type Options struct {
	Criteria   *bmf.FilterCriteria
	Profile    *types.Profile
	Stage      types.Stage
	Scoring    scoring.Config
	Thresholds tiers.Thresholds

	// Enrichment maps candidate EINs to their pre-resolved bundles.
	// Missing entries simply score without boosts.
	Enrichment map[string]*types.Enrichment

	// Workers sizes the scoring pool; 0 means one per available core.
	Workers int
	// Timeout bounds the scoring phase; on expiry the run returns partial
	// results plus an unprocessed count instead of failing.
	Timeout time.Duration
	// AsOfYear anchors the timing dimension for the whole run.
	AsOfYear int

	Snapshots SnapshotStore
	Logger    *zap.Logger
}

// Opportunity is one ranked, tiered discovery result.
type Opportunity struct {
	Candidate types.Candidate      `json:"candidate"`
	Snapshot  *types.ScoreSnapshot `json:"snapshot"`
}

// RunSummary accounts for every candidate a run touched. Scored + Failed +
// Unprocessed always equals the number of filter matches.
type RunSummary struct {
	RunID        uuid.UUID     `json:"run_id"`
	Scored       int           `json:"scored"`
	Failed       int           `json:"failed"`
	Unprocessed  int           `json:"unprocessed"`
	SampleErrors []string      `json:"sample_errors,omitempty"`
	Elapsed      time.Duration `json:"elapsed"`
	TimedOut     bool          `json:"timed_out"`
}

// Result bundles the ranked opportunities with the filter stats and the
// skip/error summary. Candidates are never silently dropped.
type Result struct {
	Opportunities []Opportunity   `json:"opportunities"`
	FilterStats   bmf.FilterStats `json:"filter_stats"`
	Summary       RunSummary      `json:"summary"`
}

// Run executes one discovery request. Configuration errors abort before any
// candidate is processed; per-candidate failures are isolated and rolled
// into the summary; cancellation and timeout return partial results.
func Run(ctx context.Context, dataset *bmf.Dataset, opts Options) (*Result, error) {
	if err := validateOptions(&opts); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	start := time.Now()
	candidates, stats, err := dataset.Filter(opts.Criteria)
	if err != nil {
		return nil, err
	}
	logger.Info("candidate filter complete",
		zap.Int("rows_scanned", stats.RowsScanned),
		zap.Int("matches", stats.Matches),
		zap.Duration("elapsed", stats.Elapsed))

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	runID := uuid.New()
	analyzer := grants.NewAnalyzer(10 * time.Minute)
	collector := newCollector(len(candidates))

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(candidates) && len(candidates) > 0 {
		workers = len(candidates)
	}

	jobs := make(chan types.Candidate)
	group, groupCtx := errgroup.WithContext(ctx)
	for i := 0; i < workers; i++ {
		group.Go(func() error {
			for candidate := range jobs {
				// Cooperative cancellation between candidates.
				select {
				case <-groupCtx.Done():
					collector.unprocessed(1)
					continue
				default:
				}
				scoreOne(groupCtx, candidate, opts, analyzer, collector)
			}
			return nil
		})
	}

	fed := 0
feed:
	for _, candidate := range candidates {
		select {
		case jobs <- candidate:
			fed++
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	_ = group.Wait()

	// Candidates never handed to a worker are unprocessed, alongside any a
	// worker skipped after cancellation.
	if unfed := len(candidates) - fed; unfed > 0 {
		collector.unprocessed(unfed)
	}

	opportunities, summary := collector.finish()
	summary.RunID = runID
	summary.Elapsed = time.Since(start)
	summary.TimedOut = deadlineExceeded(ctx)

	sort.SliceStable(opportunities, func(i, j int) bool {
		if opportunities[i].Snapshot.Composite != opportunities[j].Snapshot.Composite {
			return opportunities[i].Snapshot.Composite > opportunities[j].Snapshot.Composite
		}
		return opportunities[i].Candidate.EIN < opportunities[j].Candidate.EIN
	})

	logger.Info("discovery run complete",
		zap.String("run_id", runID.String()),
		zap.Int("scored", summary.Scored),
		zap.Int("failed", summary.Failed),
		zap.Int("unprocessed", summary.Unprocessed),
		zap.Bool("timed_out", summary.TimedOut))

	return &Result{
		Opportunities: opportunities,
		FilterStats:   stats,
		Summary:       summary,
	}, nil
}

// validateOptions rejects configuration errors before the pool starts.
func validateOptions(opts *Options) error {
	if opts.Criteria == nil {
		return &bmf.CriteriaError{Message: "criteria are required"}
	}
	if opts.Profile == nil {
		return &scoring.ConfigError{Message: "profile is required"}
	}
	if !opts.Stage.Valid() {
		return &scoring.ConfigError{Message: fmt.Sprintf("unknown workflow stage %q", opts.Stage)}
	}
	if err := opts.Scoring.Validate(); err != nil {
		return err
	}
	if err := opts.Thresholds.Validate(); err != nil {
		return err
	}
	if opts.AsOfYear == 0 {
		opts.AsOfYear = time.Now().Year()
	}
	return nil
}

// scoreOne scores a single candidate, isolating its failure into the
// collector rather than failing the run.
func scoreOne(ctx context.Context, candidate types.Candidate, opts Options, analyzer *grants.Analyzer, collector *collector) {
	enrichment := opts.Enrichment[candidate.EIN]

	inputs := scoring.Inputs{
		Flags:    enrichment.Flags(),
		AsOfYear: opts.AsOfYear,
	}
	if enrichment != nil {
		inputs.DataYear = enrichment.DataYear
		if len(enrichment.Grants) > 0 {
			key := types.FoundationKey{EIN: candidate.EIN, TaxYear: enrichment.TaxYear}
			pattern, err := analyzer.Analyze(key, candidate.Name, enrichment.Grants, nil)
			if err != nil {
				collector.fail(candidate.EIN, err)
				return
			}
			inputs.TypicalGrantSize = pattern.MedianAmount
			inputs.GrantCount = pattern.TotalGrants
		}
	}

	snapshot, err := scoring.Score(&candidate, opts.Profile, opts.Stage, inputs, opts.Scoring)
	if err != nil {
		collector.fail(candidate.EIN, err)
		return
	}
	snapshot.ID = uuid.New()
	snapshot.CreatedAt = time.Now().UTC()
	snapshot.Tier = tiers.Classify(snapshot.Composite, opts.Thresholds)

	if opts.Snapshots != nil {
		if err := opts.Snapshots.AppendSnapshot(ctx, snapshot); err != nil {
			collector.fail(candidate.EIN, err)
			return
		}
	}
	collector.add(Opportunity{Candidate: candidate, Snapshot: snapshot})
}

// deadlineExceeded reports whether the context ended because the run hit
// its time budget, as opposed to a plain caller cancellation.
func deadlineExceeded(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return errors.Is(context.Cause(ctx), context.DeadlineExceeded)
	default:
		return false
	}
}

// collector accumulates results across workers behind one mutex.
type collector struct {
	mu            sync.Mutex
	opportunities []Opportunity
	failed        int
	notProcessed  int
	sampleErrors  []string
}

func newCollector(capacity int) *collector {
	return &collector{opportunities: make([]Opportunity, 0, capacity)}
}

func (c *collector) add(op Opportunity) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.opportunities = append(c.opportunities, op)
}

func (c *collector) fail(ein string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failed++
	if len(c.sampleErrors) < maxSampleErrors {
		c.sampleErrors = append(c.sampleErrors, fmt.Sprintf("%s: %v", ein, err))
	}
}

func (c *collector) unprocessed(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notProcessed += n
}

func (c *collector) finish() ([]Opportunity, RunSummary) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.opportunities, RunSummary{
		Scored:       len(c.opportunities),
		Failed:       c.failed,
		Unprocessed:  c.notProcessed,
		SampleErrors: c.sampleErrors,
	}
}
