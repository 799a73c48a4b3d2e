package coloring

import (
	"math"

	"golang.org/x/exp/rand"
)

const trailEpsilon = 1e-9

// antState is the scratch space a single ant's construction needs. It is
// reused across ants by the cycle controller to avoid an allocation burst
// per ant (spec.md §5: "implementation SHOULD reuse these across
// ants/cycles rather than reallocate").
type antState struct {
	neighborsByColor [][]int // [v][c]
	numWithColor     []int   // [c]
	trail            [][]float64
}

func newAntState(n, k int) *antState {
	neighborsByColor := make([][]int, n)
	for v := range neighborsByColor {
		neighborsByColor[v] = make([]int, k)
	}
	trail := make([][]float64, n)
	for u := range trail {
		trail[u] = make([]float64, k)
	}
	return &antState{
		neighborsByColor: neighborsByColor,
		numWithColor:     make([]int, k),
		trail:            trail,
	}
}

func (a *antState) reset() {
	for v := range a.neighborsByColor {
		row := a.neighborsByColor[v]
		for c := range row {
			row[c] = 0
		}
	}
	for c := range a.numWithColor {
		a.numWithColor[c] = 0
	}
	for u := range a.trail {
		row := a.trail[u]
		for c := range row {
			row[c] = 0
		}
	}
}

// saturation counts the distinct colors already used by v's colored
// neighbors. Left as a direct O(K) scan rather than maintained
// incrementally; revisit if profiling shows it's the bottleneck.
func saturation(neighborsByColor []int) int {
	sat := 0
	for _, count := range neighborsByColor {
		if count > 0 {
			sat++
		}
	}
	return sat
}

// constructAnt builds one feasible K-coloring using DSATUR vertex ordering
// and a pheromone/heuristic/allow-mask weighted color choice (spec.md §4.2).
func constructAnt(g *Graph, k int, allow [][]bool, pher *PheromoneMatrix, alpha, beta float64, rng *rand.Rand, st *antState) Solution {
	n := g.N()
	st.reset()
	s := NewSolution(n)

	weights := make([]float64, k)
	for numUncolored := n; numUncolored > 0; numUncolored-- {
		v := chooseVertex(s, st.neighborsByColor)
		c := chooseColor(v, k, allow, st, pher, alpha, beta, rng, weights)

		s.Colors[v] = c
		st.numWithColor[c]++
		nc := st.numWithColor[c]

		for u := 0; u < n; u++ {
			// Running mean of τ[u][·] over already-colored vertices of color c.
			st.trail[u][c] = st.trail[u][c]*float64(nc-1)/float64(nc) + (pher.At(u, v)+trailEpsilon)/float64(nc)

			if g.Has(u, v) {
				st.neighborsByColor[u][c]++
				if s.Colors[u] == c {
					s.ConflictingEdges++
				}
			}
		}
	}
	return s
}

// chooseVertex picks the uncolored vertex with the highest saturation,
// ties broken by lowest index.
func chooseVertex(s Solution, neighborsByColor [][]int) int {
	chosen := -1
	highest := -1
	for v, color := range s.Colors {
		if color != Unassigned {
			continue
		}
		sat := saturation(neighborsByColor[v])
		if sat > highest {
			highest = sat
			chosen = v
		}
	}
	return chosen
}

// chooseColor samples a color for v from the pheromone/heuristic/allow-mask
// weighted distribution, falling back to a uniform draw over allowed
// colors if every weight underflows to zero, and to color 0 if none are
// allowed at all (spec.md §4.2 step 2, §7 numerical underflow handling).
func chooseColor(v, k int, allow [][]bool, st *antState, pher *PheromoneMatrix, alpha, beta float64, rng *rand.Rand, weights []float64) int {
	sum := 0.0
	for c := 0; c < k; c++ {
		if !allow[v][c] {
			weights[c] = 0
			continue
		}
		w := assignmentWeight(st.trail[v][c], st.neighborsByColor[v][c], alpha, beta)
		if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
			w = 0
		}
		weights[c] = w
		sum += w
	}

	if sum > 0 {
		return sampleWeighted(weights, sum, rng)
	}
	if allowed := allowedColors(allow[v], k); len(allowed) > 0 {
		return allowed[rng.Intn(len(allowed))]
	}
	return 0
}

func allowedColors(row []bool, k int) []int {
	out := make([]int, 0, k)
	for c, ok := range row {
		if ok {
			out = append(out, c)
		}
	}
	return out
}

func sampleWeighted(weights []float64, sum float64, rng *rand.Rand) int {
	target := rng.Float64() * sum
	cumulative := 0.0
	for c, w := range weights {
		cumulative += w
		if target < cumulative {
			return c
		}
	}
	// Floating point rounding; return the last nonzero weight.
	for c := len(weights) - 1; c >= 0; c-- {
		if weights[c] > 0 {
			return c
		}
	}
	return 0
}

// assignmentWeight is w(v,c) = trail^alpha · (neighborsByColor+1)^(-beta).
// fastPow(a,b) = exp(b·log a) is used in place of math.Pow per spec.md §9;
// trail is clamped away from zero so log never sees a nonpositive input.
func assignmentWeight(trail float64, neighborsOfColor int, alpha, beta float64) float64 {
	a := trail
	if a <= 0 {
		a = trailEpsilon
	}
	pheromoneTerm := fastPow(a, alpha)
	heuristicTerm := fastPow(float64(neighborsOfColor+1), -beta)
	return pheromoneTerm * heuristicTerm
}

func fastPow(a, b float64) float64 {
	if a == 0 {
		if b == 0 {
			return 1
		}
		return 0
	}
	return math.Exp(b * math.Log(a))
}
