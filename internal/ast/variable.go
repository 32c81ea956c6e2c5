package ast

import (
	"exprvm/internal/errors"
	"exprvm/internal/ir"
)

// VariableExpr reads a name bound by an enclosing Let.
type VariableExpr struct {
	Name string
}

// Variable builds a VariableExpr.
func Variable(name string) VariableExpr {
	return VariableExpr{Name: name}
}

func (e VariableExpr) Optimize(self Expr) Expr {
	return self
}

// Compile emits nothing: a variable reference is just the temp it was
// bound to by the enclosing Let.
func (e VariableExpr) Compile(ctx *Ctx) ir.CompilationResult {
	t, ok := ctx.Lookup(e.Name)
	if !ok {
		errors.Raise("lower", errors.FaultUndefinedVariable, "variable %q referenced before it was bound", e.Name)
	}
	return ir.CompilationResult{Result: t}
}
