package network

import (
	"fmt"
	"sort"
)

// Pathway strength classifications, strongest first.
const (
	StrengthVeryStrong = "very_strong"
	StrengthStrong     = "strong"
	StrengthModerate   = "moderate"
	StrengthWeak       = "weak"
	StrengthMinimal    = "minimal"
)

// maxPathwayLength bounds indirect pathway search to paths of length <= 3.
const maxPathwayLength = 3

// DirectConnection is an org board member directly linked to the funder's
// board by name or shared affiliation.
type DirectConnection struct {
	MemberName string `json:"member_name"`
	Via        string `json:"via"`
}

// Pathway is one route from the organization's board to the target funder.
type Pathway struct {
	Steps         []string `json:"steps"`
	Length        int      `json:"length"`
	Corroboration int      `json:"corroboration"`
	Strength      string   `json:"strength"`
}

// FunderAnalysis summarizes how the organization can reach a target funder.
type FunderAnalysis struct {
	FunderName        string             `json:"funder_name"`
	DirectConnections []DirectConnection `json:"direct_connections"`
	Pathways          []Pathway          `json:"pathways,omitempty"`
	StrongestPathway  *Pathway           `json:"strongest_pathway,omitempty"`
	Strength          string             `json:"strength"`
	Recommendations   []string           `json:"recommendations,omitempty"`
}

// AnalyzeFunder finds direct connections and indirect pathways to the
// target funder. Returns nil when no funder was supplied.
func (g *Graph) AnalyzeFunder() *FunderAnalysis {
	if !g.hasFunder {
		return nil
	}

	analysis := &FunderAnalysis{
		FunderName: g.node(g.funderID).Name,
		Strength:   StrengthMinimal,
	}

	analysis.DirectConnections = g.directConnections()
	analysis.Pathways = g.indirectPathways()

	if len(analysis.Pathways) > 0 {
		analysis.StrongestPathway = &analysis.Pathways[0]
		analysis.Strength = analysis.Pathways[0].Strength
	}
	if len(analysis.DirectConnections) > 0 {
		// Direct board overlap beats any affiliation pathway.
		if len(analysis.DirectConnections) >= 2 {
			analysis.Strength = StrengthVeryStrong
		} else if strengthRank(analysis.Strength) > strengthRank(StrengthStrong) {
			analysis.Strength = StrengthStrong
		}
	}

	analysis.Recommendations = g.recommendations(analysis)
	return analysis
}

// directConnections lists org board members who sit on the funder's board
// or share a named affiliation with one of its members.
func (g *Graph) directConnections() []DirectConnection {
	var out []DirectConnection
	for _, node := range g.nodes {
		if !node.OrgBoard {
			continue
		}
		if node.FunderBoard {
			out = append(out, DirectConnection{
				MemberName: node.Name,
				Via:        "serves on both boards",
			})
			continue
		}
		if via, ok := g.sharedAffiliationVia(node.ID); ok {
			out = append(out, DirectConnection{MemberName: node.Name, Via: via})
		}
	}
	return out
}

// sharedAffiliationVia finds an affiliation of the given member that also
// connects to a funder board member.
func (g *Graph) sharedAffiliationVia(memberID int64) (string, bool) {
	for _, affID := range g.neighborsSorted(memberID) {
		if g.node(affID).Type != NodeAffiliation {
			continue
		}
		for _, otherID := range g.neighborsSorted(affID) {
			if otherID != memberID && g.node(otherID).FunderBoard {
				return fmt.Sprintf("shared affiliation: %s", g.node(affID).Name), true
			}
		}
	}
	return "", false
}

// indirectPathways searches breadth-first for paths of length up to 3 from
// each org board member to the funder node, classified by length and
// corroborating edge count, ranked strongest first.
func (g *Graph) indirectPathways() []Pathway {
	var pathways []Pathway
	for _, node := range g.nodes {
		if !node.OrgBoard {
			continue
		}
		if p := g.shortestPathTo(node.ID, g.funderID); p != nil {
			pathways = append(pathways, *p)
		}
	}
	sort.SliceStable(pathways, func(i, j int) bool {
		ri, rj := strengthRank(pathways[i].Strength), strengthRank(pathways[j].Strength)
		if ri != rj {
			return ri < rj
		}
		if pathways[i].Length != pathways[j].Length {
			return pathways[i].Length < pathways[j].Length
		}
		return pathways[i].Corroboration > pathways[j].Corroboration
	})
	return pathways
}

// shortestPathTo runs a BFS from start, bounded by maxPathwayLength edges,
// avoiding the trivial route through the organization node itself.
func (g *Graph) shortestPathTo(start, target int64) *Pathway {
	type state struct {
		id   int64
		path []int64
	}
	visited := map[int64]bool{start: true, g.orgID: true}
	queue := []state{{id: start, path: []int64{start}}}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if len(current.path)-1 >= maxPathwayLength {
			continue
		}
		for _, neighbor := range g.neighborsSorted(current.id) {
			if visited[neighbor] {
				continue
			}
			next := append(append([]int64{}, current.path...), neighbor)
			if neighbor == target {
				return g.buildPathway(next)
			}
			visited[neighbor] = true
			queue = append(queue, state{id: neighbor, path: next})
		}
	}
	return nil
}

// buildPathway converts a node-ID path into a classified pathway.
func (g *Graph) buildPathway(ids []int64) *Pathway {
	steps := make([]string, len(ids))
	corroboration := 0
	for i, id := range ids {
		steps[i] = g.node(id).Name
		if i > 0 {
			corroboration += g.corroboration(ids[i-1], id)
		}
	}
	p := &Pathway{
		Steps:         steps,
		Length:        len(ids) - 1,
		Corroboration: corroboration,
	}
	p.Strength = classifyPathway(p.Length, p.Corroboration)
	return p
}

// classifyPathway grades a pathway from its length and corroborating edge
// count: shorter, multiply-corroborated routes are stronger.
func classifyPathway(length, corroboration int) string {
	switch {
	case length <= 1 && corroboration >= 2:
		return StrengthVeryStrong
	case length <= 1:
		return StrengthStrong
	case length == 2 && corroboration >= 3:
		return StrengthStrong
	case length == 2:
		return StrengthModerate
	case length == 3:
		return StrengthWeak
	default:
		return StrengthMinimal
	}
}

// strengthRank orders strengths, strongest first.
func strengthRank(strength string) int {
	for i, s := range []string{StrengthVeryStrong, StrengthStrong, StrengthModerate, StrengthWeak, StrengthMinimal} {
		if s == strength {
			return i
		}
	}
	return 5
}

// recommendations ranks cultivation moves by member centrality and
// connection quality.
func (g *Graph) recommendations(analysis *FunderAnalysis) []string {
	var out []string
	for _, dc := range analysis.DirectConnections {
		out = append(out, fmt.Sprintf("Ask %s for a warm introduction (%s).", dc.MemberName, dc.Via))
	}
	if analysis.StrongestPathway != nil && len(analysis.StrongestPathway.Steps) > 1 {
		p := analysis.StrongestPathway
		if len(out) == 0 {
			out = append(out, fmt.Sprintf("Cultivate the %s pathway via %s (%d steps).",
				p.Strength, p.Steps[1], p.Length))
		}
	}
	if len(out) == 0 {
		out = append(out, "No existing pathways found; build relationships through shared-interest events before approaching.")
	}
	return out
}
