package coloring

import (
	"math"
	"testing"

	"golang.org/x/exp/rand"
)

func TestSaturation(t *testing.T) {
	cases := []struct {
		neighborsByColor []int
		want             int
	}{
		{[]int{0, 0, 0}, 0},
		{[]int{1, 0, 0}, 1},
		{[]int{2, 1, 0}, 2},
		{[]int{1, 1, 1}, 3},
	}
	for _, c := range cases {
		if got := saturation(c.neighborsByColor); got != c.want {
			t.Errorf("saturation(%v) = %d, want %d", c.neighborsByColor, got, c.want)
		}
	}
}

func TestFastPowMatchesMathPow(t *testing.T) {
	cases := []struct{ a, b float64 }{
		{2, 3}, {1, 16}, {0.5, -16}, {10, 0},
	}
	for _, c := range cases {
		got := fastPow(c.a, c.b)
		want := math.Pow(c.a, c.b)
		if math.Abs(got-want) > 1e-9*math.Max(1, math.Abs(want)) {
			t.Errorf("fastPow(%v, %v) = %v, want %v", c.a, c.b, got, want)
		}
	}
}

func TestFastPowZeroBase(t *testing.T) {
	if got := fastPow(0, 0); got != 1 {
		t.Fatalf("fastPow(0,0) = %v, want 1", got)
	}
	if got := fastPow(0, 5); got != 0 {
		t.Fatalf("fastPow(0,5) = %v, want 0", got)
	}
}

func TestChooseVertexPrefersHighestSaturationLowestIndex(t *testing.T) {
	s := NewSolution(4)
	neighborsByColor := [][]int{
		{1, 0},
		{1, 1},
		{0, 0},
		{1, 1},
	}
	if got := chooseVertex(s, neighborsByColor); got != 1 {
		t.Fatalf("chooseVertex = %d, want 1 (first of the tied-highest-saturation vertices)", got)
	}

	s.Colors[1] = 0
	if got := chooseVertex(s, neighborsByColor); got != 3 {
		t.Fatalf("chooseVertex = %d, want 3 once vertex 1 is colored", got)
	}
}

func TestSampleWeightedDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	weights := []float64{0, 0, 5}
	if got := sampleWeighted(weights, 5, rng); got != 2 {
		t.Fatalf("sampleWeighted should only ever pick the sole nonzero weight, got %d", got)
	}
}

func TestAllowedColors(t *testing.T) {
	row := []bool{true, false, true}
	got := allowedColors(row, 3)
	if len(got) != 2 || got[0] != 0 || got[1] != 2 {
		t.Fatalf("allowedColors = %v, want [0 2]", got)
	}
}

func TestConstructAntProducesCompleteAssignment(t *testing.T) {
	g := triangle()
	k := 3
	allow := allowAll(3, k)
	pher := NewPheromoneMatrix(g)
	rng := rand.New(rand.NewSource(42))
	st := newAntState(3, k)

	s := constructAnt(g, k, allow, pher, 3.0, 16.0, rng, st)
	for v, c := range s.Colors {
		if c == Unassigned {
			t.Fatalf("vertex %d left unassigned", v)
		}
	}
}

func TestConstructAntConflictBookkeepingMatchesGraph(t *testing.T) {
	g := NewGraph(4)
	g.AddEdge(0, 1)
	g.AddEdge(1, 2)
	g.AddEdge(2, 3)
	k := 2
	allow := allowAll(4, k)
	pher := NewPheromoneMatrix(g)
	rng := rand.New(rand.NewSource(7))
	st := newAntState(4, k)

	s := constructAnt(g, k, allow, pher, 3.0, 16.0, rng, st)

	want := 0
	for u := 0; u < 4; u++ {
		for v := u + 1; v < 4; v++ {
			if g.Has(u, v) && s.Colors[u] == s.Colors[v] {
				want++
			}
		}
	}
	if s.ConflictingEdges != want {
		t.Fatalf("ConflictingEdges = %d, want %d (recomputed from graph)", s.ConflictingEdges, want)
	}
}

func TestChooseColorFallsBackWhenOnlyOneColorAllowed(t *testing.T) {
	allow := [][]bool{{false, true, false}}
	st := newAntState(1, 3)
	pher := &PheromoneMatrix{n: 1, values: [][]float64{{0}}}
	rng := rand.New(rand.NewSource(1))
	weights := make([]float64, 3)

	c := chooseColor(0, 3, allow, st, pher, 3.0, 16.0, rng, weights)
	if c != 1 {
		t.Fatalf("chooseColor = %d, want the only allowed color 1", c)
	}
}
