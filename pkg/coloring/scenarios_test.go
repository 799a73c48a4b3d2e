package coloring

import (
	"context"
	"testing"
)

// These mirror the five concrete scenarios in spec.md §8: a triangle
// needing 3 colors, K5 needing 5 colors, a bipartite 4-cycle needing only
// 2, a forced-color case where the allow-mask itself drives the outcome,
// and a spill tie broken by weight.

func TestScenarioTriangleNeedsThreeColors(t *testing.T) {
	g := triangle()
	p := smallParams(100, 20)

	s, err := Color(context.Background(), g, 2, allowAll(3, 2), unitWeights(3), p)
	if err != nil {
		t.Fatalf("Color error: %v", err)
	}
	spilled := 0
	for _, c := range s.Colors {
		if c == Unassigned {
			spilled++
		}
	}
	if spilled != 1 {
		t.Fatalf("a triangle is not 2-colorable; expected exactly one spilled vertex, colors=%v", s.Colors)
	}
	if s.ConflictingEdges != 0 {
		t.Fatalf("after the spill the remaining two vertices must differ; got %d conflicts", s.ConflictingEdges)
	}

	s, err = Color(context.Background(), g, 3, allowAll(3, 3), unitWeights(3), p)
	if err != nil {
		t.Fatalf("Color error: %v", err)
	}
	if s.ConflictingEdges != 0 {
		t.Fatalf("a triangle is 3-colorable; got %d conflicts", s.ConflictingEdges)
	}
}

func TestScenarioK5NeedsFiveColors(t *testing.T) {
	g := NewGraph(5)
	for u := 0; u < 5; u++ {
		for v := u + 1; v < 5; v++ {
			g.AddEdge(u, v)
		}
	}
	p := smallParams(100, 30)

	s, err := Color(context.Background(), g, 4, allowAll(5, 4), unitWeights(5), p)
	if err != nil {
		t.Fatalf("Color error: %v", err)
	}
	spilled := 0
	for _, c := range s.Colors {
		if c == Unassigned {
			spilled++
		}
	}
	if spilled != 1 {
		t.Fatalf("K5 is not 4-colorable; expected exactly one spilled vertex, colors=%v", s.Colors)
	}
	if s.ConflictingEdges != 0 {
		t.Fatalf("after the spill the remaining four vertices must all differ; got %d conflicts", s.ConflictingEdges)
	}

	s, err = Color(context.Background(), g, 5, allowAll(5, 5), unitWeights(5), p)
	if err != nil {
		t.Fatalf("Color error: %v", err)
	}
	if s.ConflictingEdges != 0 {
		t.Fatalf("K5 is 5-colorable; got %d conflicts", s.ConflictingEdges)
	}
	seen := make(map[int]bool)
	for _, c := range s.Colors {
		if seen[c] {
			t.Fatalf("K5 with 5 colors must assign every vertex a distinct color, got %v", s.Colors)
		}
		seen[c] = true
	}
}

func TestScenarioBipartiteC4NeedsOnlyTwoColors(t *testing.T) {
	g := NewGraph(4)
	g.AddEdge(0, 1)
	g.AddEdge(1, 2)
	g.AddEdge(2, 3)
	g.AddEdge(3, 0)
	p := smallParams(50, 10)

	s, err := Color(context.Background(), g, 2, allowAll(4, 2), unitWeights(4), p)
	if err != nil {
		t.Fatalf("Color error: %v", err)
	}
	if s.ConflictingEdges != 0 {
		t.Fatalf("a 4-cycle is bipartite and 2-colorable; got %d conflicts", s.ConflictingEdges)
	}
	if s.Colors[0] == s.Colors[1] || s.Colors[1] == s.Colors[2] {
		t.Fatalf("adjacent vertices must differ, got %v", s.Colors)
	}
}

func TestScenarioForcedColorViaAllowMask(t *testing.T) {
	// N=4 path 0-1-2-3. Vertex 0 is only allowed color 0; vertex 3 is only
	// allowed color 0 too. The two ends sit an odd distance apart, so no
	// 2-coloring honors the mask without one conflict; the spill selector
	// then removes an endpoint of that conflict, leaving none.
	g := NewGraph(4)
	g.AddEdge(0, 1)
	g.AddEdge(1, 2)
	g.AddEdge(2, 3)

	allow := allowAll(4, 2)
	allow[0] = []bool{true, false}
	allow[3] = []bool{true, false}

	p := smallParams(100, 20)
	s, err := Color(context.Background(), g, 2, allow, unitWeights(4), p)
	if err != nil {
		t.Fatalf("Color error: %v", err)
	}
	if s.Colors[0] != Unassigned && s.Colors[0] != 0 {
		t.Fatalf("vertex 0 may only take color 0, got %d", s.Colors[0])
	}
	if s.Colors[3] != Unassigned && s.Colors[3] != 0 {
		t.Fatalf("vertex 3 may only take color 0, got %d", s.Colors[3])
	}
	if s.ConflictingEdges != 0 {
		t.Fatalf("spill selection must leave no conflict; got %d conflicts", s.ConflictingEdges)
	}
}

func TestScenarioSpillTieBrokenByWeight(t *testing.T) {
	// Two vertices forced into the same single allowed color, with distinct
	// spill weights; the heavier one scores higher and is spilled, and the
	// lighter one keeps the color.
	g := NewGraph(2)
	g.AddEdge(0, 1)
	allow := [][]bool{{true}, {true}}
	weight := []float64{1, 50}

	p := smallParams(20, 5)
	p.SpillCostImportance = 1
	s, err := Color(context.Background(), g, 1, allow, weight, p)
	if err != nil {
		t.Fatalf("Color error: %v", err)
	}
	if s.Colors[1] != Unassigned {
		t.Fatalf("vertex 1 carries the larger spill weight and should be spilled, colors=%v", s.Colors)
	}
	if s.Colors[0] != 0 {
		t.Fatalf("vertex 0 should keep its only allowed color, got %d", s.Colors[0])
	}
}
