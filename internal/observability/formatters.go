// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jonathan/grant-scout/internal/discovery"
	"github.com/jonathan/grant-scout/internal/grants"
	"github.com/jonathan/grant-scout/internal/history"
	"github.com/jonathan/grant-scout/internal/network"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintOpportunities outputs the top ranked funding opportunities from a
// discovery run, followed by the run accounting.
func (p *Printer) PrintOpportunities(result *discovery.Result) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Scanned %d rows, matched %d candidates\n\n",
		result.FilterStats.RowsScanned, result.FilterStats.Matches))

	count := min(len(result.Opportunities), maxItemsToShow)
	for i := 0; i < count; i++ {
		opp := result.Opportunities[i]
		sb.WriteString(fmt.Sprintf("#%d  %s (%s)\n", i+1, opp.Candidate.Name, opp.Candidate.EIN))
		if opp.Snapshot != nil {
			sb.WriteString(fmt.Sprintf("    Score: %.2f  Tier: %s  Confidence: %.2f\n",
				opp.Snapshot.Composite, opp.Snapshot.Tier, opp.Snapshot.Confidence))
			if len(opp.Snapshot.Strengths) > 0 {
				sb.WriteString(fmt.Sprintf("    + %s\n", opp.Snapshot.Strengths[0]))
			}
			if len(opp.Snapshot.Concerns) > 0 {
				sb.WriteString(fmt.Sprintf("    - %s\n", opp.Snapshot.Concerns[0]))
			}
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(result.Opportunities) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more opportunities", len(result.Opportunities)-maxItemsToShow))
	}

	p.printBox("FUNDING OPPORTUNITIES", strings.TrimSuffix(sb.String(), "\n"))
	p.PrintRunSummary(&result.Summary)
}

// PrintRunSummary outputs the per-run candidate accounting.
func (p *Printer) PrintRunSummary(summary *discovery.RunSummary) {
	if summary == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Run:         %s\n", summary.RunID))
	sb.WriteString(fmt.Sprintf("Scored:      %d\n", summary.Scored))
	sb.WriteString(fmt.Sprintf("Failed:      %d\n", summary.Failed))
	sb.WriteString(fmt.Sprintf("Unprocessed: %d\n", summary.Unprocessed))
	sb.WriteString(fmt.Sprintf("Elapsed:     %s", summary.Elapsed.Round(time.Millisecond)))
	if summary.TimedOut {
		sb.WriteString("\nRun hit its time budget; results are partial")
	}
	for _, sample := range summary.SampleErrors {
		sb.WriteString(fmt.Sprintf("\n  ! %s", sample))
	}

	p.printBox("RUN SUMMARY", sb.String())
}

// PrintFoundationPattern outputs a grant-making pattern analysis.
func (p *Printer) PrintFoundationPattern(pattern *grants.Pattern) {
	if pattern == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Foundation: %s\n", pattern.FoundationName))
	sb.WriteString(fmt.Sprintf("Tax year:   %d\n\n", pattern.TaxYear))
	sb.WriteString(fmt.Sprintf("Grants:  %d totaling $%.0f\n", pattern.TotalGrants, pattern.TotalAmount))
	sb.WriteString(fmt.Sprintf("Typical: $%.0f - $%.0f (median $%.0f)\n",
		pattern.TypicalLow, pattern.TypicalHigh, pattern.MedianAmount))
	sb.WriteString(fmt.Sprintf("Style:   %s", pattern.Style))
	if pattern.TopCategory != "" {
		sb.WriteString(fmt.Sprintf(", mostly %s", strings.ReplaceAll(pattern.TopCategory, "_", " ")))
	}
	sb.WriteString("\n")
	if len(pattern.GeographicFocus) > 0 {
		sb.WriteString(fmt.Sprintf("Focus:   %s\n", strings.Join(pattern.GeographicFocus, ", ")))
	}
	if pattern.LowConfidence {
		sb.WriteString("\nSmall sample; treat this analysis as low confidence\n")
	}

	if pattern.Match != nil {
		sb.WriteString(fmt.Sprintf("\nMatch score: %.2f", pattern.Match.Overall))
		if pattern.Match.SuggestedAsk > 0 {
			sb.WriteString(fmt.Sprintf("  Suggested ask: $%.0f", pattern.Match.SuggestedAsk))
		}
		sb.WriteString("\n")
		for _, note := range pattern.Match.Notes {
			sb.WriteString(fmt.Sprintf("  • %s\n", note))
		}
	}

	p.printBox("GRANT-MAKING PATTERN", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintFundingHistory outputs a historical funding summary.
func (p *Printer) PrintFundingHistory(summary *history.Summary) {
	if summary == nil || summary.TotalAwards == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Awards:  %d totaling $%.0f\n", summary.TotalAwards, summary.TotalAmount))
	sb.WriteString(fmt.Sprintf("Average: $%.0f\n", summary.AverageAward))
	sb.WriteString(fmt.Sprintf("Trend:   %s\n", summary.Trend))
	sb.WriteString(fmt.Sprintf("Repeat funder rate: %.0f%%\n", summary.RepeatFunderRate*100))
	if len(summary.TopFunderStates) > 0 {
		sb.WriteString(fmt.Sprintf("Top funder states:  %s\n", strings.Join(summary.TopFunderStates, ", ")))
	}
	if summary.LowConfidence {
		sb.WriteString("\nSparse history; treat this analysis as low confidence\n")
	}

	p.printBox("FUNDING HISTORY", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintNetworkReport outputs a board network analysis.
func (p *Printer) PrintNetworkReport(report *network.Report) {
	if report == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Organization: %s\n", report.OrgName))
	sb.WriteString(fmt.Sprintf("Network:      %d nodes, %d edges\n\n", report.NodeCount, report.EdgeCount))

	if len(report.Centrality) > 0 {
		sb.WriteString("Most connected:\n")
		count := min(len(report.Centrality), 3)
		for i := 0; i < count; i++ {
			c := report.Centrality[i]
			sb.WriteString(fmt.Sprintf("  %s (%s) %.2f\n", c.Name, c.Type, c.Overall))
		}
	}

	if report.Funder != nil {
		sb.WriteString(fmt.Sprintf("\nFunder: %s (%s)\n", report.Funder.FunderName, report.Funder.Strength))
		for _, direct := range report.Funder.DirectConnections {
			sb.WriteString(fmt.Sprintf("  %s via %s\n", direct.MemberName, direct.Via))
		}
		for _, rec := range report.Funder.Recommendations {
			sb.WriteString(fmt.Sprintf("  → %s\n", rec))
		}
	}

	if report.LowConfidence {
		sb.WriteString("\nSmall roster; treat this analysis as low confidence")
	}

	p.printBox("BOARD NETWORK", strings.TrimSuffix(sb.String(), "\n"))
}
