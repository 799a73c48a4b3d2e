package coloring

import "math"

// SelectSpill implements the spill selector (spec.md §4.5): it scores
// every vertex by its conflict count scaled by weight^spillCostImportance,
// and spills the highest-scoring vertex in place. It reports whether a
// vertex was spilled.
//
// The caller iterates: after a spill, liveness and the interference graph
// change upstream, and Color must be re-invoked on the updated inputs
// until no spill is produced (spec.md §4.6).
func SelectSpill(g *Graph, s *Solution, weight []float64, spillCostImportance float64) bool {
	n := g.N()
	conflictCount := make([]int, n)
	for u := 0; u < n; u++ {
		for v := u + 1; v < n; v++ {
			if g.Has(u, v) && s.Colors[u] == s.Colors[v] && s.Colors[u] != Unassigned {
				conflictCount[u]++
				conflictCount[v]++
			}
		}
	}

	best := -1
	bestScore := 0.0
	for v := 0; v < n; v++ {
		if conflictCount[v] == 0 {
			continue
		}
		score := float64(conflictCount[v]) * math.Pow(weight[v], spillCostImportance)
		if score > bestScore {
			bestScore = score
			best = v
		}
	}

	if best < 0 || bestScore <= 0 {
		return false
	}
	s.Colors[best] = Unassigned
	s.ConflictingEdges -= conflictCount[best]
	return true
}
