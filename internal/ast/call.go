package ast

import (
	"exprvm/internal/errors"
	"exprvm/internal/ir"
)

// CallExpr is a call to one of a small closed set of builtin functions.
// The only builtin today is "fillEmpty"; the variant stays call-shaped
// (a name plus an argument list) rather than a dedicated FillEmptyExpr
// because the lowering carries the same function-dispatch contract
// (unknown name, wrong arity) a second builtin would also need.
type CallExpr struct {
	Fn   string
	Args []Expr
}

// Call builds a CallExpr.
func Call(fn string, args ...Expr) CallExpr {
	return CallExpr{Fn: fn, Args: args}
}

// FillEmpty builds the fillEmpty(left, right) call.
func FillEmpty(left, right Expr) CallExpr {
	return Call("fillEmpty", left, right)
}

func (e CallExpr) Optimize(self Expr) Expr {
	c := self.(CallExpr)
	for i, a := range c.Args {
		c.Args[i] = Optimize(a)
	}
	return c
}

func (e CallExpr) Compile(ctx *Ctx) ir.CompilationResult {
	switch e.Fn {
	case "fillEmpty":
		if len(e.Args) != 2 {
			errors.Raise("lower", errors.FaultWrongArgCount, "fillEmpty takes 2 arguments, got %d", len(e.Args))
		}
		l := e.Args[0].Compile(ctx)
		r := e.Args[1].Compile(ctx)
		result := ir.CompilationResult{}
		result.Append(l)
		result.Append(r)
		dst := ctx.NewTemp()
		result.Emit(ir.FillEmpty{Dst: dst, Left: l.Result, Right: r.Result})
		result.Result = dst
		return result
	default:
		errors.Raise("lower", errors.FaultUnknownCall, "unknown call target %q", e.Fn)
		panic("unreachable")
	}
}
