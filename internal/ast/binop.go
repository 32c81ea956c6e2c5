package ast

import (
	"exprvm/internal/errors"
	"exprvm/internal/ir"
)

// BinOpType distinguishes the binary forms a BinOp/NOp node can take.
type BinOpType uint8

const (
	AddOp BinOpType = iota
	AndOp
)

func (t BinOpType) String() string {
	if t == AndOp {
		return "And"
	}
	return "Add"
}

// BinOpExpr is a two-operand Add or And. And never survives Optimize:
// it is always rewritten to an NOpExpr so a chain of Ands can flatten
// into a single short-circuit sequence.
type BinOpExpr struct {
	Op    BinOpType
	Left  Expr
	Right Expr
}

// Add builds a two-operand addition.
func Add(left, right Expr) BinOpExpr {
	return BinOpExpr{Op: AddOp, Left: left, Right: right}
}

// And builds a two-operand short-circuit conjunction. Optimize rewrites
// it to an NOpExpr before it ever reaches Compile.
func And(left, right Expr) BinOpExpr {
	return BinOpExpr{Op: AndOp, Left: left, Right: right}
}

func (e BinOpExpr) Optimize(self Expr) Expr {
	b := self.(BinOpExpr)
	b.Left = Optimize(b.Left)
	b.Right = Optimize(b.Right)
	if b.Op == AndOp {
		nop := NOpExpr{Op: AndOp, Operands: []Expr{b.Left, b.Right}}
		return nop.Optimize(nop)
	}
	return b
}

func (e BinOpExpr) Compile(ctx *Ctx) ir.CompilationResult {
	if e.Op != AddOp {
		errors.Raise("lower", errors.FaultUnoptimizedNode, "BinOp(And) reached lowering; Optimize must run first")
	}
	l := e.Left.Compile(ctx)
	r := e.Right.Compile(ctx)
	result := ir.CompilationResult{}
	result.Append(l)
	result.Append(r)
	dst := ctx.NewTemp()
	result.Emit(ir.Add{Dst: dst, Left: l.Result, Right: r.Result})
	result.Result = dst
	return result
}
