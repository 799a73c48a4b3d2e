package coloring

import (
	"context"
	"math"
	"sync"
	"time"

	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"

	"github.com/vantage-lang/vantagec/pkg/logger"
)

// Color runs the cycle controller to completion and returns the
// colony-best coloring after a single spill-selection pass (spec.md
// §4.1, §4.5). Callers that receive a coloring with an Unassigned entry
// must rebuild the interference graph, excluding the spilled vertex, and
// invoke Color again.
func Color(ctx context.Context, g *Graph, k int, allow [][]bool, weight []float64, p Parameters) (Solution, error) {
	if err := Validate(g, k, allow, weight, p); err != nil {
		return Solution{}, err
	}
	if k == 0 || g.N() == 0 {
		return trivial(g.N()), nil
	}

	best := RunCycles(ctx, g, k, allow, p)
	SelectSpill(g, &best, weight, p.SpillCostImportance)
	return best, nil
}

// RunCycles is the cycle controller (spec.md §4.4): it owns the pheromone
// matrix and the colony-best solution across cycles of ant
// construction+refinement, and returns the colony-best coloring with no
// spill selection applied.
func RunCycles(ctx context.Context, g *Graph, k int, allow [][]bool, p Parameters) Solution {
	n := g.N()
	pher := NewPheromoneMatrix(g)
	colonyBest := trivial(n)
	bestValue := math.MaxInt32

	rng := rand.New(rand.NewSource(p.Seed))
	deadline := time.Duration(p.MaxTimeSeconds * float64(time.Second))
	start := time.Now()

	cycles := 1 // starts at 1, matching the source this was distilled from
	pheroCounter := 0

	for cycles < p.MaxCycles && bestValue > 0 {
		select {
		case <-ctx.Done():
			return colonyBest
		default:
		}
		if p.MaxTimeSeconds > 0 && time.Since(start) >= deadline {
			return colonyBest
		}

		antBest, bestAntValue := runCycleAnts(g, k, allow, pher, p, rng)

		if bestAntValue < bestValue {
			colonyBest.assignFrom(antBest)
			bestValue = bestAntValue
		}

		if cycles%p.Gap == 0 {
			pheroCounter = cycles / p.Gap
		}
		source := antBest
		if pheroCounter > 0 {
			source = colonyBest
		}
		pher.update(g, source, p.Rho)

		logger.Debug("aco coloring cycle complete",
			"cycle", cycles, "bestAntValue", bestAntValue, "bestValue", bestValue)

		pheroCounter--
		cycles++
	}
	return colonyBest
}

// runCycleAnts runs p.NumAnts ants against a snapshot of pher, sequentially
// or in parallel per p.Parallel, and returns the cycle's best-of-ant
// solution and its conflict count.
func runCycleAnts(g *Graph, k int, allow [][]bool, pher *PheromoneMatrix, p Parameters, rng *rand.Rand) (Solution, int) {
	n := g.N()
	bestValue := math.MaxInt32
	var best Solution

	if !p.Parallel {
		ast := newAntState(n, k)
		tst := newTabuState(n, k)
		for ant := 0; ant < p.NumAnts; ant++ {
			s := constructAnt(g, k, allow, pher, p.Alpha, p.Beta, rng, ast)
			s = refineTabu(g, k, allow, s, p.MaxTabucolCycles, p.MaxTabucolSeconds, rng, tst)
			if s.ConflictingEdges < bestValue {
				bestValue = s.ConflictingEdges
				best = s
			}
		}
		return best, bestValue
	}

	var mu sync.Mutex
	var eg errgroup.Group
	for ant := 0; ant < p.NumAnts; ant++ {
		antSeed := rng.Uint64()
		eg.Go(func() error {
			antRNG := rand.New(rand.NewSource(antSeed))
			ast := newAntState(n, k)
			tst := newTabuState(n, k)
			s := constructAnt(g, k, allow, pher, p.Alpha, p.Beta, antRNG, ast)
			s = refineTabu(g, k, allow, s, p.MaxTabucolCycles, p.MaxTabucolSeconds, antRNG, tst)

			mu.Lock()
			defer mu.Unlock()
			if s.ConflictingEdges < bestValue {
				bestValue = s.ConflictingEdges
				best = s
			}
			return nil
		})
	}
	_ = eg.Wait() // ants never return an error; Wait only joins the goroutines
	return best, bestValue
}
