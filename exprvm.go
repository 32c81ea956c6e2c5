// Package exprvm wires the full pipeline an embedder drives: structural
// AST optimization, lowering to IR, pre-SSA optimization, phi
// elimination, post-SSA optimization, assembly, and execution.
package exprvm

import (
	"exprvm/assemble"
	"exprvm/internal/ast"
	"exprvm/internal/ir"
	"exprvm/internal/value"
	"exprvm/vm"
)

// Compile runs every stage of the pipeline up to and including assembly,
// returning a runnable Program. It panics with an *errors.Fault on any
// contract violation encountered along the way (undefined variable,
// unknown call, a phi surviving elimination, register overflow, and so
// on); see the errors package for the full fault taxonomy.
func Compile(root ast.Expr) *assemble.Program {
	optimized := ast.Optimize(root)

	ctx := ast.NewCtx()
	result := optimized.Compile(ctx)

	ir.OptimizePreSSA(&result)
	ir.RemovePhi(&result)
	ir.BasicCopyProp(&result)

	return assemble.Assemble(&result)
}

// Eval compiles root and runs it to completion, returning the result
// value. It is the convenience entry point for a caller that has no
// need to inspect the assembled program in between (disassembly,
// caching, repeated runs against mutated slots).
func Eval(root ast.Expr) value.Value {
	return vm.Run(Compile(root))
}
