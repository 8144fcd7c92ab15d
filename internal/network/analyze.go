package network

import (
	"github.com/jonathan/grant-scout/internal/types"
)

// Analyze builds the relationship graph from the supplied rosters and
// computes the full network report: centrality table, thematic clusters,
// and the funder connection analysis when a target funder was given.
// Sparse rosters are analyzed anyway and flagged low-confidence.
func Analyze(rosters *types.NetworkRosters) (*Report, error) {
	g, err := BuildGraph(rosters)
	if err != nil {
		return nil, err
	}

	boardSize := 0
	for _, member := range rosters.Board {
		if member.Name != "" {
			boardSize++
		}
	}

	return &Report{
		OrgEIN:        rosters.OrgEIN,
		OrgName:       rosters.OrgName,
		NodeCount:     g.NodeCount(),
		EdgeCount:     g.EdgeCount(),
		Centrality:    g.Centrality(),
		Clusters:      g.Clusters(),
		Funder:        g.AnalyzeFunder(),
		LowConfidence: boardSize < minBoardForConfidence,
	}, nil
}
