package ast

import "exprvm/internal/ir"

// NOpExpr is an n-ary Add or And produced by flattening nested BinOps
// of the same kind (or built directly by an embedder that already knows
// it wants a chain). And evaluates its operands left to right, stopping
// early the moment one is Nothing or falsey; the chain's value is
// whichever operand stopped it, or the last operand if none did.
type NOpExpr struct {
	Op       BinOpType
	Operands []Expr
}

// AddN builds an n-ary sum, the NOp(Add) half of the closed expression
// set's BinOp(Add|And)/NOp(Add|And) pairing. Unlike NOp(And), Add has
// no short-circuiting and so no chain-flattening rule: Optimize just
// recurses into each operand.
func AddN(operands ...Expr) NOpExpr {
	if len(operands) < 2 {
		panic("ast.AddN requires at least 2 operands")
	}
	return NOpExpr{Op: AddOp, Operands: operands}
}

func (e NOpExpr) Optimize(self Expr) Expr {
	n := self.(NOpExpr)
	flattened := make([]Expr, 0, len(n.Operands))
	for _, op := range n.Operands {
		optimized := Optimize(op)
		if n.Op == AndOp {
			if inner, ok := optimized.(NOpExpr); ok && inner.Op == AndOp {
				flattened = append(flattened, inner.Operands...)
				continue
			}
		}
		flattened = append(flattened, optimized)
	}
	n.Operands = flattened
	return n
}

func (e NOpExpr) Compile(ctx *Ctx) ir.CompilationResult {
	if e.Op == AndOp {
		return e.compileAnd(ctx)
	}
	return e.compileAdd(ctx)
}

// compileAnd lowers a short-circuit chain: every operand but the last is
// guarded by a nothing-test and a falsey-test, each jumping straight to
// the merge point; the final operand is evaluated unconditionally.
func (e NOpExpr) compileAnd(ctx *Ctx) ir.CompilationResult {
	result := ir.CompilationResult{}
	end := ctx.NewLabel()
	srcs := make([]ir.TempId, 0, len(e.Operands))

	for i, op := range e.Operands {
		r := op.Compile(ctx)
		result.Append(r)
		srcs = append(srcs, r.Result)
		if i < len(e.Operands)-1 {
			result.Emit(ir.Test{Kind: ir.TestNothingKind, Reg: r.Result})
			result.Emit(ir.Jmp{Label: end})
			result.Emit(ir.Test{Kind: ir.TestFalseyKind, Reg: r.Result})
			result.Emit(ir.Jmp{Label: end})
		}
	}

	result.Emit(ir.Label{Name: end})
	dst := ctx.NewTemp()
	result.Emit(ir.MovePhi{Dst: dst, Srcs: srcs})
	result.Result = dst
	return result
}

// compileAdd folds a chain of sums left to right. Nothing-propagation
// through Add already makes the fold short-circuit-free: any Nothing
// operand poisons every subsequent partial sum automatically.
func (e NOpExpr) compileAdd(ctx *Ctx) ir.CompilationResult {
	result := ir.CompilationResult{}
	first := e.Operands[0].Compile(ctx)
	result.Append(first)
	acc := first.Result

	for _, op := range e.Operands[1:] {
		r := op.Compile(ctx)
		result.Append(r)
		dst := ctx.NewTemp()
		result.Emit(ir.Add{Dst: dst, Left: acc, Right: r.Result})
		acc = dst
	}

	result.Result = acc
	return result
}
