package network

import (
	"github.com/jonathan/grant-scout/internal/types"
)

// BuildGraph constructs the relationship graph for one analysis invocation
// from the supplied rosters. Nodes are the organization, each board member,
// each distinct named affiliation, and the target funder when given.
func BuildGraph(rosters *types.NetworkRosters) (*Graph, error) {
	if rosters == nil || rosters.OrgName == "" {
		return nil, &AnalysisError{Message: "organization roster is required"}
	}

	g := newGraph()
	g.orgID = g.addNode(rosters.OrgName, NodeOrganization)

	for _, member := range rosters.Board {
		if member.Name == "" {
			continue
		}
		memberID := g.addNode(member.Name, NodePerson)
		g.node(memberID).OrgBoard = true
		g.addEdge(g.orgID, memberID, EdgeBoardMember)

		for _, affiliation := range splitAffiliations(member.Affiliations) {
			affID := g.addNode(affiliation, NodeAffiliation)
			g.addEdge(memberID, affID, EdgeAffiliation)
		}
	}

	if rosters.FunderName != "" {
		g.hasFunder = true
		g.funderID = g.addNode(rosters.FunderName, NodeFunder)
		for _, member := range rosters.FunderBoard {
			if member.Name == "" {
				continue
			}
			memberID := g.addNode(member.Name, NodePerson)
			g.node(memberID).FunderBoard = true
			g.addEdge(g.funderID, memberID, EdgeBoardMember)

			for _, affiliation := range splitAffiliations(member.Affiliations) {
				affID := g.addNode(affiliation, NodeAffiliation)
				g.addEdge(memberID, affID, EdgeAffiliation)
			}
		}
	}

	for _, donor := range rosters.Donors {
		if donor != "" {
			g.addEdge(g.orgID, g.addNode(donor, NodeAffiliation), EdgeDonor)
		}
	}
	for _, partner := range rosters.Partners {
		if partner != "" {
			g.addEdge(g.orgID, g.addNode(partner, NodeAffiliation), EdgePartner)
		}
	}
	for _, advisor := range rosters.Advisors {
		if advisor != "" {
			g.addEdge(g.orgID, g.addNode(advisor, NodePerson), EdgeAdvisor)
		}
	}

	return g, nil
}
