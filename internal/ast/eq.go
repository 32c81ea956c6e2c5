package ast

import "exprvm/internal/ir"

// EqExpr is a structural-equality comparison producing a Bool value.
// It is not in the distilled expression table, but a value-producing Eq
// already exists as a machine instruction; this gives it an AST source
// so If conditions and And chains can be built from equality checks.
// It always lowers to Eq; no expression lowers to TestEq.
type EqExpr struct {
	Left  Expr
	Right Expr
}

// Eq builds an EqExpr.
func Eq(left, right Expr) EqExpr {
	return EqExpr{Left: left, Right: right}
}

func (e EqExpr) Optimize(self Expr) Expr {
	eq := self.(EqExpr)
	eq.Left = Optimize(eq.Left)
	eq.Right = Optimize(eq.Right)
	return eq
}

func (e EqExpr) Compile(ctx *Ctx) ir.CompilationResult {
	l := e.Left.Compile(ctx)
	r := e.Right.Compile(ctx)
	result := ir.CompilationResult{}
	result.Append(l)
	result.Append(r)
	dst := ctx.NewTemp()
	result.Emit(ir.Eq{Dst: dst, Left: l.Result, Right: r.Result})
	result.Result = dst
	return result
}
