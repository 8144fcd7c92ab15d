package network

import (
	"sort"
	"strings"

	"github.com/jonathan/grant-scout/internal/grants"
)

// labelSweeps bounds the label propagation passes. Roster graphs are small;
// labels stabilize in a handful of sweeps.
const labelSweeps = 10

// Cluster is one thematic group of related entities.
type Cluster struct {
	Theme   string   `json:"theme"`
	Members []string `json:"members"`
}

// Clusters groups nodes into thematic communities via deterministic label
// propagation: nodes are visited in fixed ID order and ties resolve to the
// smallest label, so identical rosters always produce identical clusters.
func (g *Graph) Clusters() []Cluster {
	n := len(g.nodes)
	if n == 0 {
		return nil
	}

	labels := make([]int64, n)
	for i := range labels {
		labels[i] = int64(i)
	}

	for sweep := 0; sweep < labelSweeps; sweep++ {
		changed := false
		for id := int64(0); id < int64(n); id++ {
			neighbors := g.neighborsSorted(id)
			if len(neighbors) == 0 {
				continue
			}
			counts := make(map[int64]int)
			for _, neighbor := range neighbors {
				counts[labels[neighbor]]++
			}
			best := labels[id]
			bestCount := 0
			// Smallest label wins ties for determinism.
			candidates := make([]int64, 0, len(counts))
			for label := range counts {
				candidates = append(candidates, label)
			}
			sort.Slice(candidates, func(i, j int) bool { return candidates[i] < candidates[j] })
			for _, label := range candidates {
				if counts[label] > bestCount {
					bestCount = counts[label]
					best = label
				}
			}
			if best != labels[id] {
				labels[id] = best
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	groups := make(map[int64][]string)
	for id, label := range labels {
		groups[label] = append(groups[label], g.nodes[id].Name)
	}

	labelsSorted := make([]int64, 0, len(groups))
	for label := range groups {
		labelsSorted = append(labelsSorted, label)
	}
	sort.Slice(labelsSorted, func(i, j int) bool { return labelsSorted[i] < labelsSorted[j] })

	clusters := make([]Cluster, 0, len(groups))
	for _, label := range labelsSorted {
		members := groups[label]
		sort.Strings(members)
		clusters = append(clusters, Cluster{
			Theme:   clusterTheme(members),
			Members: members,
		})
	}
	return clusters
}

// clusterTheme labels a cluster by the dominant category of its member
// names, falling back to "general" when nothing categorizes.
func clusterTheme(members []string) string {
	counts := make(map[string]int)
	for _, member := range members {
		if category := grants.CategorizePurpose(member); category != grants.CategoryOther {
			counts[category]++
		}
	}
	best, bestCount := "", 0
	categories := make([]string, 0, len(counts))
	for category := range counts {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	for _, category := range categories {
		if counts[category] > bestCount {
			bestCount = counts[category]
			best = category
		}
	}
	if best == "" {
		return "general"
	}
	return strings.ReplaceAll(best, "_", " ")
}
