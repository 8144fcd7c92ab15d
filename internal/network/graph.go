// Package network builds relationship graphs from board rosters and
// computes centrality, clusters, and funder connection pathways. Graph
// construction and metrics are a pure function of the supplied rosters;
// nothing here performs network calls.
package network

import (
	"sort"
	"strings"

	"gonum.org/v1/gonum/graph/simple"
)

// Node types.
const (
	NodeOrganization = "organization"
	NodePerson       = "person"
	NodeAffiliation  = "affiliation"
	NodeFunder       = "funder"
)

// Edge relationship types.
const (
	EdgeBoardMember = "board_member"
	EdgeAffiliation = "affiliation"
	EdgeDonor       = "donor"
	EdgePartner     = "partner"
	EdgeAdvisor     = "advisor"
)

// edgeStrengths weights each relationship type for corroboration scoring.
var edgeStrengths = map[string]float64{
	EdgeBoardMember: 1.0,
	EdgeAffiliation: 0.7,
	EdgeDonor:       0.5,
	EdgePartner:     0.6,
	EdgeAdvisor:     0.5,
}

// Node is one entity in the relationship graph.
type Node struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
	// OrgBoard and FunderBoard mark which rosters a person sits on; a node
	// on both is itself a direct connection.
	OrgBoard    bool `json:"org_board,omitempty"`
	FunderBoard bool `json:"funder_board,omitempty"`
}

// Edge is one relationship between two entities.
type Edge struct {
	From     int64   `json:"from"`
	To       int64   `json:"to"`
	Type     string  `json:"type"`
	Strength float64 `json:"strength"`
}

// Graph is the relationship graph for one analysis invocation. It is built
// fresh per invocation and never persisted globally.
type Graph struct {
	nodes  []*Node
	edges  []Edge
	byKey  map[string]int64
	adj    map[int64][]int64
	simple *simple.UndirectedGraph

	orgID     int64
	funderID  int64
	hasFunder bool
}

// nodeKey normalizes an entity name for deduplication, so "Jane Smith" on
// two rosters becomes one node.
func nodeKey(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// splitAffiliations parses free-text affiliations into distinct named
// entities by splitting on common delimiters.
func splitAffiliations(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	for _, delim := range []string{";", "|", ","} {
		text = strings.ReplaceAll(text, delim, "\n")
	}
	text = strings.ReplaceAll(text, " and ", "\n")

	var out []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(text, "\n") {
		part = strings.TrimSpace(part)
		if part == "" || len(part) < 3 {
			continue
		}
		key := nodeKey(part)
		if !seen[key] {
			seen[key] = true
			out = append(out, part)
		}
	}
	return out
}

func newGraph() *Graph {
	return &Graph{
		byKey:  make(map[string]int64),
		adj:    make(map[int64][]int64),
		simple: simple.NewUndirectedGraph(),
	}
}

// addNode returns the node for a name, creating it when unseen. An existing
// node keeps its original type; roster markers accumulate.
func (g *Graph) addNode(name, nodeType string) int64 {
	key := nodeKey(name)
	if id, ok := g.byKey[key]; ok {
		return id
	}
	id := int64(len(g.nodes))
	g.nodes = append(g.nodes, &Node{ID: id, Name: strings.TrimSpace(name), Type: nodeType})
	g.byKey[key] = id
	g.simple.AddNode(simple.Node(id))
	return id
}

// addEdge records a typed relationship. Self-edges and duplicates are
// dropped; an edge between the same pair with a new type still counts as
// corroboration.
func (g *Graph) addEdge(from, to int64, edgeType string) {
	if from == to {
		return
	}
	for _, e := range g.edges {
		if e.Type == edgeType && ((e.From == from && e.To == to) || (e.From == to && e.To == from)) {
			return
		}
	}
	g.edges = append(g.edges, Edge{From: from, To: to, Type: edgeType, Strength: edgeStrengths[edgeType]})
	if !g.connected(from, to) {
		g.adj[from] = append(g.adj[from], to)
		g.adj[to] = append(g.adj[to], from)
		g.simple.SetEdge(simple.Edge{F: simple.Node(from), T: simple.Node(to)})
	}
}

func (g *Graph) connected(a, b int64) bool {
	for _, n := range g.adj[a] {
		if n == b {
			return true
		}
	}
	return false
}

// NodeCount returns the number of distinct entities in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of typed relationships.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// node returns the node by ID.
func (g *Graph) node(id int64) *Node { return g.nodes[id] }

// neighborsSorted returns a node's neighbors in stable order.
func (g *Graph) neighborsSorted(id int64) []int64 {
	out := make([]int64, len(g.adj[id]))
	copy(out, g.adj[id])
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// corroboration counts distinct typed edges between two nodes.
func (g *Graph) corroboration(a, b int64) int {
	count := 0
	for _, e := range g.edges {
		if (e.From == a && e.To == b) || (e.From == b && e.To == a) {
			count++
		}
	}
	return count
}
