// Package ssa implements Static Single Assignment form construction.
//
// Design: Minimal SSA - phi nodes at block joins, dominance-based.
// Following the classic algorithm from Cytron et al.
package ssa

import "github.com/vantage-lang/vantagec/pkg/ir"

// Convert converts IR to SSA form
func Convert(prog *ir.Program) *Program {
	// TODO: Implement SSA conversion
	// 1. Insert phi nodes at dominance frontiers
	// 2. Rename variables to ensure single assignment
	// 3. Build def-use chains
	return &Program{}
}

// Program in SSA form
type Program struct {
	Functions []*Function
}

type Function struct {
	Name   string
	Blocks []*Block
}

type Block struct {
	Label string
	Phis  []*Phi
	Insts []ir.Inst
	Term  ir.Terminator
	Preds []*Block // Predecessors
	Succs []*Block // Successors
}

// Phi represents a φ node for SSA
type Phi struct {
	Dest   ir.Value
	Values []PhiValue
}

type PhiValue struct {
	Value ir.Value
	Block *Block
}

// Dominators computes the dominator tree
func (f *Function) Dominators() map[*Block]*Block {
	// TODO: Implement Lengauer-Tarjan algorithm
	return nil
}

// DominanceFrontiers computes dominance frontiers
func (f *Function) DominanceFrontiers() map[*Block][]*Block {
	// TODO: Implement dominance frontier computation
	return nil
}
