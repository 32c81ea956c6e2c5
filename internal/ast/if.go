package ast

import "exprvm/internal/ir"

// IfExpr evaluates Cond; if Cond is Nothing the whole expression's value
// is that Nothing cell, if truthy the value is Then, otherwise Else.
type IfExpr struct {
	Cond Expr
	Then Expr
	Else Expr
}

// If builds an IfExpr.
func If(cond, then, els Expr) IfExpr {
	return IfExpr{Cond: cond, Then: then, Else: els}
}

func (e IfExpr) Optimize(self Expr) Expr {
	i := self.(IfExpr)
	i.Cond = Optimize(i.Cond)
	i.Then = Optimize(i.Then)
	i.Else = Optimize(i.Else)
	return i
}

// Compile lowers the condition once, then evaluates else before then so
// the fall-through path (no jump taken) is the "condition is falsey"
// case; a nothing condition jumps straight to the merge point. The merge
// order is (cond, else, then).
func (e IfExpr) Compile(ctx *Ctx) ir.CompilationResult {
	result := ir.CompilationResult{}

	cond := e.Cond.Compile(ctx)
	result.Append(cond)

	end := ctx.NewLabel()
	trueL := ctx.NewLabel()

	result.Emit(ir.Test{Kind: ir.TestNothingKind, Reg: cond.Result})
	result.Emit(ir.Jmp{Label: end})
	result.Emit(ir.Test{Kind: ir.TestTruthyKind, Reg: cond.Result})
	result.Emit(ir.Jmp{Label: trueL})

	els := e.Else.Compile(ctx)
	result.Append(els)
	result.Emit(ir.Jmp{Label: end})

	result.Emit(ir.Label{Name: trueL})
	then := e.Then.Compile(ctx)
	result.Append(then)

	result.Emit(ir.Label{Name: end})

	dst := ctx.NewTemp()
	result.Emit(ir.MovePhi{Dst: dst, Srcs: []ir.TempId{cond.Result, els.Result, then.Result}})
	result.Result = dst
	return result
}
