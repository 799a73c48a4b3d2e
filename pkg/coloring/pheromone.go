package coloring

// PheromoneMatrix is the N×N nonnegative pheromone trail shared by every
// ant within a cycle. Entries over interfering pairs are pinned to zero
// for the engine's lifetime; every other entry decays by Rho and may be
// reinforced once per cycle.
type PheromoneMatrix struct {
	n      int
	values [][]float64
}

// NewPheromoneMatrix initializes all entries to 1, then pins τ[u][v] to 0
// wherever g.Has(u,v).
func NewPheromoneMatrix(g *Graph) *PheromoneMatrix {
	n := g.N()
	values := make([][]float64, n)
	for u := range values {
		values[u] = make([]float64, n)
		for v := range values[u] {
			if g.Has(u, v) {
				values[u][v] = 0
			} else {
				values[u][v] = 1
			}
		}
	}
	return &PheromoneMatrix{n: n, values: values}
}

// At returns τ[u][v].
func (p *PheromoneMatrix) At(u, v int) float64 { return p.values[u][v] }

// update decays every entry by rho, then reinforces monochromatic
// non-edges of source by 1/source.ConflictingEdges (or 1 if source has no
// conflicts). Pinned entries (interfering pairs) never receive a deposit.
func (p *PheromoneMatrix) update(g *Graph, source Solution, rho float64) {
	var deposit float64
	if source.ConflictingEdges == 0 {
		deposit = 1
	} else {
		deposit = 1.0 / float64(source.ConflictingEdges)
	}
	for u := 0; u < p.n; u++ {
		row := p.values[u]
		for v := 0; v < p.n; v++ {
			row[v] *= rho
			if g.Has(u, v) {
				continue
			}
			if source.Colors[u] == source.Colors[v] && source.Colors[u] != Unassigned {
				row[v] += deposit
			}
		}
	}
}
