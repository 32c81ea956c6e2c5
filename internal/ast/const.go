package ast

import (
	"exprvm/internal/ir"
	"exprvm/internal/value"
)

// ConstExpr is a literal value cell.
type ConstExpr struct {
	Value value.Value
}

// Const builds a ConstExpr. It exists alongside the bare struct literal
// so callers can write ast.Const(value.Int(7)) at a call site.
func Const(v value.Value) ConstExpr {
	return ConstExpr{Value: v}
}

func (e ConstExpr) Optimize(self Expr) Expr {
	return self
}

func (e ConstExpr) Compile(ctx *Ctx) ir.CompilationResult {
	dst := ctx.NewTemp()
	return ir.CompilationResult{
		Result:       dst,
		Instructions: []ir.Instr{ir.LoadConst{Dst: dst, Value: e.Value}},
	}
}
