package ast

import (
	"exprvm/internal/ir"
	"exprvm/internal/value"
)

// SlotExpr reads the current value of an externally-owned slot at run
// time. Unlike Const, its compile-time constraint is conservative: the
// slot's value can change between runs, so it is always treated as
// possibly Nothing.
type SlotExpr struct {
	Slot *value.Slot
}

// Slot builds a SlotExpr over an externally-owned slot.
func Slot(s *value.Slot) SlotExpr {
	return SlotExpr{Slot: s}
}

func (e SlotExpr) Optimize(self Expr) Expr {
	return self
}

func (e SlotExpr) Compile(ctx *Ctx) ir.CompilationResult {
	dst := ctx.NewTemp()
	return ir.CompilationResult{
		Result:       dst,
		Instructions: []ir.Instr{ir.LoadSlot{Dst: dst, Slot: e.Slot}},
	}
}
