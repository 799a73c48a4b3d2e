package coloring

import (
	"math"
	"time"

	"golang.org/x/exp/rand"
)

// tabuState is the reusable scratch space for one reactive-tabucol
// refinement: conflicts[c][v] is the number of v's neighbors holding color
// c, and tenure[v][c] is the last iteration at which (v,c) is still tabu
// (the pair may not be re-chosen while tenure[v][c] >= the iteration).
type tabuState struct {
	conflicts [][]int // [c][v]
	tenure    [][]int // [v][c]
}

func newTabuState(n, k int) *tabuState {
	conflicts := make([][]int, k)
	for c := range conflicts {
		conflicts[c] = make([]int, n)
	}
	tenure := make([][]int, n)
	for v := range tenure {
		row := make([]int, k)
		for c := range row {
			row[c] = -1
		}
		tenure[v] = row
	}
	return &tabuState{conflicts: conflicts, tenure: tenure}
}

func (t *tabuState) reset(n, k int) {
	for c := range t.conflicts {
		row := t.conflicts[c]
		for v := range row {
			row[v] = 0
		}
	}
	for v := range t.tenure {
		row := t.tenure[v]
		for c := range row {
			row[c] = -1
		}
	}
}

// buildConflicts fills t.conflicts from scratch in one O(N²) scan and
// returns the solution's undirected conflicting-edge count.
func buildConflicts(g *Graph, s Solution, t *tabuState) int {
	n := g.N()
	edges := 0
	for v := 0; v < n; v++ {
		for u := 0; u < n; u++ {
			if u == v || !g.Has(u, v) {
				continue
			}
			t.conflicts[s.Colors[u]][v]++
			if u < v && s.Colors[u] == s.Colors[v] {
				edges++
			}
		}
	}
	return edges
}

// refineTabu performs single-vertex reactive tabu local search to reduce
// s.ConflictingEdges (spec.md §4.3). s is mutated in place and returned.
func refineTabu(g *Graph, k int, allow [][]bool, s Solution, maxCycles int, maxSeconds float64, rng *rand.Rand, t *tabuState) Solution {
	n := g.N()
	t.reset(n, k)
	s.ConflictingEdges = buildConflicts(g, s, t)

	deadline := time.Duration(maxSeconds * float64(time.Second))
	start := time.Now()
	length := n / 10

	for iteration := 0; iteration < maxCycles; iteration++ {
		if maxSeconds > 0 && time.Since(start) >= deadline {
			break
		}

		v, c, delta, found := bestAllowedMove(s, k, allow, t, iteration)
		if !found {
			v, c = firstAllowedPair(allow, k)
			if v < 0 {
				break // no allowed assignment exists anywhere; nothing to do
			}
			delta = t.conflicts[c][v] - t.conflicts[s.Colors[v]][v]
		}

		applyMove(g, s, t, v, c, delta, iteration, length)

		vertexConflicts := countVertexConflicts(s, t)
		length = int(0.6*float64(vertexConflicts)) + rng.Intn(10)
	}
	return s
}

// bestAllowedMove scans every (v,c) with conflicts[v] > 0 and allow[v][c]
// true, skipping tabu pairs, and returns the move minimizing delta. Ties
// are broken in scan order.
func bestAllowedMove(s Solution, k int, allow [][]bool, t *tabuState, iteration int) (v, c, delta int, found bool) {
	best := math.MaxInt32
	for vv, color := range s.Colors {
		if t.conflicts[color][vv] <= 0 {
			continue
		}
		for cc := 0; cc < k; cc++ {
			if !allow[vv][cc] || t.tenure[vv][cc] >= iteration {
				continue
			}
			d := t.conflicts[cc][vv] - t.conflicts[color][vv]
			if d < best {
				best = d
				v, c, found = vv, cc, true
			}
		}
	}
	delta = best
	return
}

// firstAllowedPair is the all-tabu fallback: the lexicographically first
// (v,c) with allow[v][c] true, irrespective of the current coloring. This
// preserves a source oddity (spec.md §9) rather than "improving" it.
func firstAllowedPair(allow [][]bool, k int) (v, c int) {
	for vv, row := range allow {
		for cc := 0; cc < k; cc++ {
			if row[cc] {
				return vv, cc
			}
		}
	}
	return -1, -1
}

func applyMove(g *Graph, s Solution, t *tabuState, v, c, delta, iteration, length int) {
	old := s.Colors[v]
	s.Colors[v] = c
	s.ConflictingEdges += delta

	n := g.N()
	for u := 0; u < n; u++ {
		if g.Has(v, u) {
			t.conflicts[old][u]--
			t.conflicts[c][u]++
		}
	}
	t.tenure[v][c] = iteration + length
}

func countVertexConflicts(s Solution, t *tabuState) int {
	count := 0
	for v, color := range s.Colors {
		if t.conflicts[color][v] > 0 {
			count++
		}
	}
	return count
}
