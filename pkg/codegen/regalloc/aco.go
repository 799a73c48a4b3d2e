// Package regalloc - ACO-driven register allocation
// Design: builds an interference graph from its own liveness pass, then
// delegates the actual coloring to pkg/coloring's ant colony engine.
package regalloc

import (
	"context"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/set"

	"github.com/vantage-lang/vantagec/pkg/coloring"
	"github.com/vantage-lang/vantagec/pkg/ir"
	"github.com/vantage-lang/vantagec/pkg/logger"
	"github.com/vantage-lang/vantagec/pkg/ssa"
)

// ACOAllocator performs register allocation by delegating graph coloring to
// an ant colony optimization engine (pkg/coloring), following RegAllocACO's
// adapter contract: build G/K/M/W from the host IR, invoke the core, handle
// forced and core-selected spills, and map colors back to physical registers.
type ACOAllocator struct {
	fn            *ssa.Function
	cfg           *Config
	params        coloring.Parameters
	interferenceG *InterferenceGraph
	regMap        map[ir.Value]string
	spillMap      map[ir.Value]int
	nextSpillSlot int
	colorToReg    map[int]string
	regToColor    map[string]int
}

// NewACOAllocator creates an ACO-backed allocator using the default
// coloring parameters (spec.md §6's tuning table).
func NewACOAllocator(fn *ssa.Function, cfg *Config) *ACOAllocator {
	return NewACOAllocatorWithParameters(fn, cfg, coloring.DefaultParameters())
}

// NewACOAllocatorWithParameters is NewACOAllocator with caller-supplied
// engine parameters, for callers that want to trade allocation quality
// against compile time.
func NewACOAllocatorWithParameters(fn *ssa.Function, cfg *Config, params coloring.Parameters) *ACOAllocator {
	aa := &ACOAllocator{
		fn:            fn,
		cfg:           cfg,
		params:        params,
		interferenceG: newInterferenceGraph(),
		regMap:        make(map[ir.Value]string),
		spillMap:      make(map[ir.Value]int),
		nextSpillSlot: 0,
	}
	aa.colorToReg, aa.regToColor = buildColorMapping(cfg.Available)
	return aa
}

// Allocate performs ACO-driven graph coloring register allocation.
func (aa *ACOAllocator) Allocate() error {
	logger.Debug("Starting ACO register allocation", "function", aa.fn.Name)

	if err := aa.buildInterferenceGraph(); err != nil {
		return err
	}

	values := aa.orderedValues()
	k := len(aa.colorToReg)
	weight := aa.spillWeights(values)

	forced := forcedSpills(values, k)
	remaining := make([]ir.Value, 0, len(values))
	for _, v := range values {
		if forced[v] {
			aa.markSpilled(v)
		} else {
			remaining = append(remaining, v)
		}
	}

	for len(remaining) > 0 {
		g, allow, w, index := aa.buildColoringProblem(remaining, weight, k)

		sol, err := coloring.Color(context.Background(), g, k, allow, w, aa.params)
		if err != nil {
			return fmt.Errorf("aco register allocation: %w", err)
		}

		spilled := -1
		for i, c := range sol.Colors {
			if c == coloring.Unassigned {
				spilled = i
				break
			}
		}

		if spilled < 0 {
			for i, v := range remaining {
				aa.assignColor(v, sol.Colors[i])
			}
			break
		}

		spilledValue := index[spilled]
		logger.Debug("ACO core selected a spill", "value", valStr(spilledValue))
		aa.markSpilled(spilledValue)
		remaining = removeValue(remaining, spilledValue)
	}

	logger.Debug("ACO register allocation complete",
		"allocated", len(aa.regMap),
		"spilled", len(aa.spillMap))

	return nil
}

// buildInterferenceGraph runs a liveness-driven interference pass over the
// function and populates this allocator's interference graph.
func (aa *ACOAllocator) buildInterferenceGraph() error {
	liveness := aa.computeLiveness()

	for _, block := range aa.fn.Blocks {
		for _, inst := range block.Insts {
			if def := getDef(inst); def != nil {
				aa.interferenceG.addNode(def)
			}
			for _, use := range getUses(inst) {
				if _, ok := use.(*ir.Const); !ok {
					aa.interferenceG.addNode(use)
				}
			}
		}
	}

	for _, block := range aa.fn.Blocks {
		liveOut := liveness[block]
		for i := len(block.Insts) - 1; i >= 0; i-- {
			inst := block.Insts[i]
			if def := getDef(inst); def != nil {
				for liveVal := range liveOut {
					if liveVal != def {
						aa.interferenceG.addEdge(def, liveVal)
					}
				}
				delete(liveOut, def)
			}
			for _, use := range getUses(inst) {
				if _, ok := use.(*ir.Const); !ok {
					liveOut[use] = true
				}
			}
		}
	}

	logger.Debug("Built ACO interference graph",
		"nodes", len(aa.interferenceG.nodes),
		"edges", aa.interferenceG.edgeCount())
	return nil
}

func (aa *ACOAllocator) computeLiveness() map[*ssa.Block]map[ir.Value]bool {
	liveness := make(map[*ssa.Block]map[ir.Value]bool)
	for _, block := range aa.fn.Blocks {
		liveness[block] = make(map[ir.Value]bool)
	}

	changed := true
	for changed {
		changed = false
		for i := len(aa.fn.Blocks) - 1; i >= 0; i-- {
			block := aa.fn.Blocks[i]
			oldSize := len(liveness[block])

			for _, succ := range block.Succs {
				for val := range liveness[succ] {
					liveness[block][val] = true
				}
			}
			for j := len(block.Insts) - 1; j >= 0; j-- {
				inst := block.Insts[j]
				if def := getDef(inst); def != nil {
					delete(liveness[block], def)
				}
				for _, use := range getUses(inst) {
					if _, ok := use.(*ir.Const); !ok {
						liveness[block][use] = true
					}
				}
			}
			if len(liveness[block]) != oldSize {
				changed = true
			}
		}
	}
	return liveness
}

// orderedValues returns the interference graph's vertices in a stable order,
// needed so a fixed Parameters.Seed reproduces the same coloring run over run
// (spec.md §5's "identical seeds reproduce identical results").
func (aa *ACOAllocator) orderedValues() []ir.Value {
	values := make([]ir.Value, 0, len(aa.interferenceG.nodes))
	for v := range aa.interferenceG.nodes {
		values = append(values, v)
	}
	sort.Slice(values, func(i, j int) bool {
		return valStr(values[i]) < valStr(values[j])
	})
	return values
}

// spillWeights uses live-range width (instruction count from first def or
// use to last use) as a cheap stand-in for true spill cost (SPEC_FULL §4).
func (aa *ACOAllocator) spillWeights(values []ir.Value) map[ir.Value]float64 {
	pos := 0
	first := make(map[ir.Value]int)
	last := make(map[ir.Value]int)
	for _, block := range aa.fn.Blocks {
		for _, inst := range block.Insts {
			if def := getDef(inst); def != nil {
				if _, ok := first[def]; !ok {
					first[def] = pos
				}
				last[def] = pos
			}
			for _, use := range getUses(inst) {
				if _, ok := first[use]; !ok {
					first[use] = pos
				}
				last[use] = pos
			}
			pos++
		}
	}

	weight := make(map[ir.Value]float64, len(values))
	for _, v := range values {
		width := last[v] - first[v] + 1
		if width < 1 {
			width = 1
		}
		weight[v] = float64(width)
	}
	return weight
}

// buildColoringProblem projects the subset of the interference graph over
// remaining into the coloring package's vertex-indexed representation.
func (aa *ACOAllocator) buildColoringProblem(remaining []ir.Value, weight map[ir.Value]float64, k int) (*coloring.Graph, [][]bool, []float64, []ir.Value) {
	n := len(remaining)
	index := make(map[ir.Value]int, n)
	for i, v := range remaining {
		index[v] = i
	}

	g := coloring.NewGraph(n)
	for u, vu := range remaining {
		node := aa.interferenceG.getNode(vu)
		if node == nil {
			continue
		}
		for neighbor := range node.neighbors {
			if v, ok := index[neighbor]; ok && v > u {
				g.AddEdge(u, v)
			}
		}
	}

	allow := make([][]bool, n)
	w := make([]float64, n)
	for i, v := range remaining {
		row := make([]bool, k)
		for c := range row {
			row[c] = true
		}
		allow[i] = row
		w[i] = weight[v]
	}

	return g, allow, w, remaining
}

func (aa *ACOAllocator) assignColor(v ir.Value, color int) {
	if reg, ok := aa.colorToReg[color]; ok {
		aa.regMap[v] = reg
	} else {
		aa.markSpilled(v)
	}
}

func (aa *ACOAllocator) markSpilled(v ir.Value) {
	if _, already := aa.spillMap[v]; already {
		return
	}
	aa.spillMap[v] = aa.nextSpillSlot
	aa.nextSpillSlot += 8
}

func (aa *ACOAllocator) GetRegister(val ir.Value) (string, bool) {
	reg, ok := aa.regMap[val]
	return reg, ok
}

func (aa *ACOAllocator) GetSpillSlot(val ir.Value) (int, bool) {
	slot, ok := aa.spillMap[val]
	return slot, ok
}

func (aa *ACOAllocator) GetStackSize() int {
	return aa.nextSpillSlot
}

func (aa *ACOAllocator) GetFunction() *ssa.Function {
	return aa.fn
}

// forcedSpills implements RegAllocACO's handleForcedSpills (spec.md §4.6f):
// any vertex with no legal color at all is spilled before the core ever
// runs, rather than handed to the engine with an all-false allow-mask row.
// With no available registers (k == 0) every vertex is forced.
func forcedSpills(values []ir.Value, k int) map[ir.Value]bool {
	forced := make(map[ir.Value]bool)
	if k > 0 {
		return forced
	}
	for _, v := range values {
		forced[v] = true
	}
	return forced
}

// buildColorMapping builds RegAllocACO's ColorMappings (colorsToRegs /
// regsToColors) from a disjoint-set union over register units. This host's
// Config carries no sub-register aliasing metadata, so every register forms
// its own singleton unit; the union-find still runs, and gives the adapter
// somewhere to plug in real register-unit aliasing if Config grows it.
func buildColorMapping(available []string) (map[int]string, map[string]int) {
	ds := set.NewDisjointSet()
	for _, reg := range available {
		ds.MakeSet(reg)
	}

	roots := make(map[*set.DisjointSetNode]int)
	colorToReg := make(map[int]string)
	regToColor := make(map[string]int)

	for _, reg := range available {
		root := ds.Find(reg)
		color, ok := roots[root]
		if !ok {
			color = len(roots)
			roots[root] = color
			colorToReg[color] = reg
		}
		regToColor[reg] = color
	}
	return colorToReg, regToColor
}

func removeValue(values []ir.Value, target ir.Value) []ir.Value {
	out := values[:0]
	for _, v := range values {
		if v != target {
			out = append(out, v)
		}
	}
	return out
}
