package network

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/graph/network"
	"gonum.org/v1/gonum/graph/path"
)

// Overall centrality blend weights. Degree rewards direct reach,
// betweenness brokerage positions, closeness proximity to the whole
// network, and eigenvector connections to well-connected entities.
const (
	degreeShare      = 0.35
	betweennessShare = 0.30
	closenessShare   = 0.20
	eigenvectorShare = 0.15
)

// eigenvectorIterations bounds the power iteration; rosters are small so
// convergence is fast and a fixed count keeps the result deterministic.
const eigenvectorIterations = 100

// NodeCentrality holds the per-node metrics, each normalized to [0,1]
// within the graph.
type NodeCentrality struct {
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Degree      float64 `json:"degree"`
	Betweenness float64 `json:"betweenness"`
	Closeness   float64 `json:"closeness"`
	Eigenvector float64 `json:"eigenvector"`
	Overall     float64 `json:"overall"`
}

// Centrality computes degree, betweenness, closeness, and eigenvector
// centrality for every node, plus the blended overall score, sorted by
// overall descending with name ties stable.
func (g *Graph) Centrality() []NodeCentrality {
	n := len(g.nodes)
	if n == 0 {
		return nil
	}

	degree := make(map[int64]float64, n)
	for _, node := range g.nodes {
		if n > 1 {
			degree[node.ID] = float64(len(g.adj[node.ID])) / float64(n-1)
		}
	}

	betweenness := network.Betweenness(g.simple)
	allPaths := path.DijkstraAllPaths(g.simple)
	closeness := network.Closeness(g.simple, allPaths)
	eigenvector := g.eigenvectorCentrality()

	normalize(betweenness)
	normalize(closeness)
	normalize(eigenvector)

	// The library accumulates betweenness and closeness in node-set
	// iteration order, which can wobble the last ULP between runs.
	// Quantizing well above that noise keeps identical rosters producing
	// identical metrics and ordering.
	quantize(betweenness)
	quantize(closeness)
	quantize(eigenvector)

	out := make([]NodeCentrality, 0, n)
	for _, node := range g.nodes {
		c := NodeCentrality{
			Name:        node.Name,
			Type:        node.Type,
			Degree:      degree[node.ID],
			Betweenness: betweenness[node.ID],
			Closeness:   closeness[node.ID],
			Eigenvector: eigenvector[node.ID],
		}
		c.Overall = degreeShare*c.Degree +
			betweennessShare*c.Betweenness +
			closenessShare*c.Closeness +
			eigenvectorShare*c.Eigenvector
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Overall != out[j].Overall {
			return out[i].Overall > out[j].Overall
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// eigenvectorCentrality runs a fixed-count power iteration over the
// adjacency structure. Node IDs are dense, so the scores live in slices
// and every accumulation runs in fixed ID order; identical rosters always
// produce bit-identical values.
func (g *Graph) eigenvectorCentrality() map[int64]float64 {
	n := len(g.nodes)
	scores := make([]float64, n)
	for i := range scores {
		scores[i] = 1.0 / float64(n)
	}

	for iter := 0; iter < eigenvectorIterations; iter++ {
		next := make([]float64, n)
		for _, node := range g.nodes {
			sum := 0.0
			for _, neighbor := range g.adj[node.ID] {
				sum += scores[neighbor]
			}
			next[node.ID] = sum
		}
		norm := 0.0
		for _, v := range next {
			norm += v * v
		}
		norm = math.Sqrt(norm)
		if norm == 0 {
			break
		}
		for i := range next {
			next[i] /= norm
		}
		scores = next
	}

	out := make(map[int64]float64, n)
	for _, node := range g.nodes {
		out[node.ID] = scores[node.ID]
	}
	return out
}

// quantize rounds a normalized metric to 12 decimal places, far above
// float accumulation noise and far below any meaningful score difference.
func quantize(m map[int64]float64) {
	for id, v := range m {
		m[id] = math.Round(v*1e12) / 1e12
	}
}

// normalize rescales a metric map to [0,1] by its max. Infinities (from
// disconnected components in closeness) are zeroed first.
func normalize(m map[int64]float64) {
	max := 0.0
	for id, v := range m {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			m[id] = 0
			continue
		}
		if v > max {
			max = v
		}
	}
	if max == 0 {
		return
	}
	for id, v := range m {
		m[id] = v / max
	}
}
