package coloring

import "testing"

func triangle() *Graph {
	g := NewGraph(3)
	g.AddEdge(0, 1)
	g.AddEdge(1, 2)
	g.AddEdge(2, 0)
	return g
}

func allowAll(n, k int) [][]bool {
	allow := make([][]bool, n)
	for i := range allow {
		row := make([]bool, k)
		for c := range row {
			row[c] = true
		}
		allow[i] = row
	}
	return allow
}

func unitWeights(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 1
	}
	return w
}

func TestGraphSymmetricAndSelfLoopFree(t *testing.T) {
	g := triangle()
	if !g.Has(0, 1) || !g.Has(1, 0) {
		t.Fatal("AddEdge must be symmetric")
	}
	g.AddEdge(0, 0)
	if g.Has(0, 0) {
		t.Fatal("self-loops must be ignored")
	}
	if g.N() != 3 {
		t.Fatalf("N() = %d, want 3", g.N())
	}
}

func TestSolutionCloneIsIndependent(t *testing.T) {
	s := NewSolution(3)
	s.Colors[0] = 1
	clone := s.Clone()
	clone.Colors[0] = 2
	if s.Colors[0] != 1 {
		t.Fatal("Clone must not alias the source backing array")
	}
}

func TestSolutionAssignFromReusesBackingArray(t *testing.T) {
	s := NewSolution(3)
	backing := s.Colors
	src := NewSolution(3)
	src.Colors[0] = 1
	src.ConflictingEdges = 4
	s.assignFrom(src)
	if &s.Colors[0] != &backing[0] {
		t.Fatal("assignFrom should reuse the existing backing array when capacity allows")
	}
	if s.Colors[0] != 1 || s.ConflictingEdges != 4 {
		t.Fatal("assignFrom must copy colors and conflict count")
	}
}

func TestConflictingVertices(t *testing.T) {
	g := triangle()
	s := NewSolution(3)
	s.Colors[0], s.Colors[1], s.Colors[2] = 0, 0, 1
	if got := s.ConflictingVertices(g); got != 2 {
		t.Fatalf("ConflictingVertices = %d, want 2", got)
	}
}

func TestSuggestedGap(t *testing.T) {
	cases := []struct {
		maxCycles int
		want      int
	}{
		{0, 1},
		{1, 1},
		{625, 25},
		{24, 5},
		{26, 6},
	}
	for _, c := range cases {
		if got := SuggestedGap(c.maxCycles); got != c.want {
			t.Errorf("SuggestedGap(%d) = %d, want %d", c.maxCycles, got, c.want)
		}
	}
}

func TestDefaultParameters(t *testing.T) {
	p := DefaultParameters()
	if p.Alpha != 3.0 || p.Beta != 16.0 || p.Rho != 0.7 {
		t.Fatalf("unexpected alpha/beta/rho: %+v", p)
	}
	if p.MaxCycles != 625 || p.MaxTabucolCycles != 25 || p.NumAnts != 80 {
		t.Fatalf("unexpected cycle/ant counts: %+v", p)
	}
	if p.Gap != SuggestedGap(625) {
		t.Fatalf("Gap = %d, want SuggestedGap(625) = %d", p.Gap, SuggestedGap(625))
	}
}

func TestValidateShapeMismatch(t *testing.T) {
	g := triangle()
	p := DefaultParameters()

	if err := Validate(g, 2, allowAll(2, 2), unitWeights(3), p); err == nil {
		t.Fatal("expected error for wrong allow-mask row count")
	}
	if err := Validate(g, 2, allowAll(3, 1), unitWeights(3), p); err == nil {
		t.Fatal("expected error for wrong allow-mask column count")
	}
	if err := Validate(g, 2, allowAll(3, 2), unitWeights(2), p); err == nil {
		t.Fatal("expected error for wrong weight vector length")
	}
}

func TestValidateNegativeParams(t *testing.T) {
	g := triangle()
	allow := allowAll(3, 2)
	weight := unitWeights(3)

	bad := DefaultParameters()
	bad.Rho = 1.5
	if err := Validate(g, 2, allow, weight, bad); err == nil {
		t.Fatal("expected error for rho > 1")
	}

	bad = DefaultParameters()
	bad.NumAnts = 0
	if err := Validate(g, 2, allow, weight, bad); err == nil {
		t.Fatal("expected error for numAnts < 1")
	}

	weight[0] = -1
	if err := Validate(g, 2, allow, unitWeights(3), DefaultParameters()); err != nil {
		t.Fatalf("unexpected error on valid input: %v", err)
	}
	if err := Validate(g, 2, allow, weight, DefaultParameters()); err == nil {
		t.Fatal("expected error for negative spill weight")
	}
}

func TestValidateAccepts(t *testing.T) {
	g := triangle()
	if err := Validate(g, 3, allowAll(3, 3), unitWeights(3), DefaultParameters()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
