// Package regalloc maps program values onto physical registers over an
// interference graph built from liveness analysis.
//
// Design: register allocation is delegated to an ant colony optimization
// core (see ACOAllocator in aco.go); this file holds the architecture
// config and the def/use extraction shared by the interference-graph build.
package regalloc

import (
	"fmt"

	"github.com/vantage-lang/vantagec/pkg/ir"
)

// Config holds register allocation configuration for an architecture
type Config struct {
	Available   []string // Available registers for allocation
	Reserved    []string // Reserved registers (args, return, etc.)
	CalleeSaved []string // Callee-saved registers
	CallerSaved []string // Caller-saved registers
}

// Helper functions to extract uses and defs from instructions

func getUses(inst ir.Inst) []ir.Value {
	var uses []ir.Value
	switch i := inst.(type) {
	case *ir.BinOp:
		if i.L != nil {
			uses = append(uses, i.L)
		}
		if i.R != nil {
			uses = append(uses, i.R)
		}
	case *ir.Call:
		uses = append(uses, i.Args...)
	case *ir.Load:
		if i.Src != nil {
			uses = append(uses, i.Src)
		}
	case *ir.Store:
		if i.Src != nil {
			uses = append(uses, i.Src)
		}
		if i.Dest != nil {
			uses = append(uses, i.Dest)
		}
	case *ir.GetAttr:
		if i.Obj != nil {
			uses = append(uses, i.Obj)
		}
	case *ir.SetAttr:
		if i.Obj != nil {
			uses = append(uses, i.Obj)
		}
		if i.Value != nil {
			uses = append(uses, i.Value)
		}
	case *ir.GetItem:
		if i.Obj != nil {
			uses = append(uses, i.Obj)
		}
		if i.Index != nil {
			uses = append(uses, i.Index)
		}
	case *ir.SetItem:
		if i.Obj != nil {
			uses = append(uses, i.Obj)
		}
		if i.Index != nil {
			uses = append(uses, i.Index)
		}
		if i.Value != nil {
			uses = append(uses, i.Value)
		}
	case *ir.MethodCall:
		if i.Obj != nil {
			uses = append(uses, i.Obj)
		}
		uses = append(uses, i.Args...)
	case *ir.ClosureCall:
		if i.Closure != nil {
			uses = append(uses, i.Closure)
		}
		uses = append(uses, i.Args...)
	case *ir.MakeClosure:
		uses = append(uses, i.Captures...)
	}
	return uses
}

func getDef(inst ir.Inst) ir.Value {
	switch i := inst.(type) {
	case *ir.BinOp:
		return i.Dest
	case *ir.Call:
		return i.Dest
	case *ir.Load:
		return i.Dest
	case *ir.Alloc:
		return i.Dest
	case *ir.AllocObject:
		return i.Dest
	case *ir.GetAttr:
		return i.Dest
	case *ir.GetItem:
		return i.Dest
	case *ir.MethodCall:
		return i.Dest
	case *ir.ClosureCall:
		return i.Dest
	case *ir.MakeClosure:
		return i.Dest
	}
	return nil
}

func valStr(val ir.Value) string {
	switch v := val.(type) {
	case *ir.Temp:
		return fmt.Sprintf("t%d", v.ID)
	case *ir.Param:
		return v.Name
	case *ir.Const:
		return fmt.Sprintf("%d", v.Val)
	default:
		return fmt.Sprintf("%T", val)
	}
}
