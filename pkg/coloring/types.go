// Package coloring implements the ACO graph-coloring core of Vantage's
// register allocator: a population of ants that construct feasible
// K-colorings of an interference graph under pheromone and heuristic
// bias, refined by a reactive tabu local search, fed back through a
// per-cycle pheromone update, and finished by a spill selector.
//
// The package knows nothing about the host compiler's IR, liveness
// analysis, or physical registers. It consumes an adjacency matrix, a
// color count, a per-vertex allow-mask, and per-vertex spill weights,
// and returns a coloring that may leave some vertices unassigned to
// signal "spill this vertex".
package coloring

import (
	"errors"
	"fmt"
)

// Unassigned is the sentinel color meaning "spilled" or "not yet colored".
const Unassigned = -1

// Graph is a symmetric, self-loop-free adjacency matrix over N vertices.
// It is consumed read-only by every component in this package.
type Graph struct {
	n   int
	adj [][]bool
}

// NewGraph allocates an edgeless graph over n vertices.
func NewGraph(n int) *Graph {
	adj := make([][]bool, n)
	for i := range adj {
		adj[i] = make([]bool, n)
	}
	return &Graph{n: n, adj: adj}
}

// N reports the vertex count.
func (g *Graph) N() int { return g.n }

// AddEdge marks u and v as interfering. Self-loops are ignored.
func (g *Graph) AddEdge(u, v int) {
	if u == v {
		return
	}
	g.adj[u][v] = true
	g.adj[v][u] = true
}

// Has reports whether u and v interfere.
func (g *Graph) Has(u, v int) bool { return g.adj[u][v] }

// Solution is an assignment of a color in [0,K) or Unassigned to every
// vertex, plus the running count of conflicting edges it carries.
type Solution struct {
	Colors           []int
	ConflictingEdges int
}

// NewSolution returns a solution with every vertex unassigned.
func NewSolution(n int) Solution {
	s := Solution{Colors: make([]int, n)}
	for i := range s.Colors {
		s.Colors[i] = Unassigned
	}
	return s
}

// Clone returns an independent deep copy.
func (s Solution) Clone() Solution {
	out := Solution{Colors: make([]int, len(s.Colors)), ConflictingEdges: s.ConflictingEdges}
	copy(out.Colors, s.Colors)
	return out
}

// assignFrom copies src into s's backing array in place, avoiding a fresh
// allocation on every antBest/colonyBest promotion (the Go analogue of the
// move-assignment the original C++ ant loop comments out and never performs).
func (s *Solution) assignFrom(src Solution) {
	if cap(s.Colors) < len(src.Colors) {
		s.Colors = make([]int, len(src.Colors))
	}
	s.Colors = s.Colors[:len(src.Colors)]
	copy(s.Colors, src.Colors)
	s.ConflictingEdges = src.ConflictingEdges
}

// ConflictingVertices returns the number of distinct vertices participating
// in at least one conflicting edge.
func (s Solution) ConflictingVertices(g *Graph) int {
	count := 0
	for v := 0; v < g.N(); v++ {
		if s.Colors[v] == Unassigned {
			continue
		}
		for u := 0; u < g.N(); u++ {
			if u != v && g.Has(u, v) && s.Colors[u] == s.Colors[v] {
				count++
				break
			}
		}
	}
	return count
}

// Parameters enumerates the engine's tunable configuration. Zero-value
// fields are not defaults; use DefaultParameters.
type Parameters struct {
	Alpha               float64 // pheromone exponent
	Beta                float64 // heuristic exponent
	Rho                 float64 // pheromone decay multiplier, in [0,1]
	MaxTimeSeconds      float64 // wall-clock cap for the outer cycle loop
	MaxTabucolSeconds   float64 // wall-clock cap for one tabucol refinement
	MaxCycles           int
	MaxTabucolCycles    int
	NumAnts             int
	Gap                 int // pheromone-source alternation period
	SpillCostImportance float64
	Parallel            bool // parallelize per-ant construction+refinement
	Seed                uint64
}

// DefaultParameters returns the parameter defaults from the register
// allocator's tuning table, with Gap set to SuggestedGap(MaxCycles).
func DefaultParameters() Parameters {
	p := Parameters{
		Alpha:               3.0,
		Beta:                16.0,
		Rho:                 0.7,
		MaxTimeSeconds:      100.0,
		MaxTabucolSeconds:   0.1,
		MaxCycles:           625,
		MaxTabucolCycles:    25,
		NumAnts:             80,
		SpillCostImportance: 0,
		Parallel:            false,
	}
	p.Gap = SuggestedGap(p.MaxCycles)
	return p
}

// SuggestedGap returns ⌈√maxCycles⌉, the paper's suggested pheromone-source
// alternation period, with a floor of 1.
func SuggestedGap(maxCycles int) int {
	if maxCycles <= 1 {
		return 1
	}
	g := 1
	for g*g < maxCycles {
		g++
	}
	return g
}

// Errors returned by Validate before any allocation happens.
var (
	ErrShapeMismatch = errors.New("coloring: input shape mismatch")
	ErrNegativeParam = errors.New("coloring: negative parameter")
)

// Validate checks the preconditions in spec.md §4.1: |G|=|M|=|W|=N, every
// row of M has length K, and no parameter is negative. It does not check
// symmetry of G (the Graph type is symmetric by construction).
func Validate(g *Graph, k int, allow [][]bool, weight []float64, p Parameters) error {
	n := g.N()
	if len(allow) != n {
		return fmt.Errorf("%w: allow-mask has %d rows, want %d", ErrShapeMismatch, len(allow), n)
	}
	for i, row := range allow {
		if len(row) != k {
			return fmt.Errorf("%w: allow-mask row %d has %d columns, want %d", ErrShapeMismatch, i, len(row), k)
		}
	}
	if len(weight) != n {
		return fmt.Errorf("%w: weight vector has %d entries, want %d", ErrShapeMismatch, len(weight), n)
	}
	for _, w := range weight {
		if w < 0 {
			return fmt.Errorf("%w: spill weight %v is negative", ErrNegativeParam, w)
		}
	}
	if p.Alpha < 0 || p.Beta < 0 || p.Rho < 0 || p.Rho > 1 || p.NumAnts < 1 || p.Gap < 1 || p.SpillCostImportance < 0 {
		return fmt.Errorf("%w: alpha=%v beta=%v rho=%v numAnts=%v gap=%v spillCostImportance=%v",
			ErrNegativeParam, p.Alpha, p.Beta, p.Rho, p.NumAnts, p.Gap, p.SpillCostImportance)
	}
	return nil
}

// trivial returns the all-unassigned coloring used for the K=0/N=0
// degenerate cases and as the colony-best's initial value.
func trivial(n int) Solution {
	return NewSolution(n)
}
