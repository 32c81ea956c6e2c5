package ast

import "exprvm/internal/ir"

// LetBind is one name/value pair in a Let's binding list.
type LetBind struct {
	Name  string
	Value Expr
}

// LetExpr evaluates each binding in order, installing it into scope
// before the next binding (and the body) is evaluated, then evaluates
// Body with all bindings visible.
type LetExpr struct {
	Binds []LetBind
	Body  Expr
}

// Let builds a LetExpr from name/value pairs and a body.
func Let(binds []LetBind, body Expr) LetExpr {
	return LetExpr{Binds: binds, Body: body}
}

func (e LetExpr) Optimize(self Expr) Expr {
	le := self.(LetExpr)
	for i, b := range le.Binds {
		le.Binds[i] = LetBind{Name: b.Name, Value: Optimize(b.Value)}
	}
	le.Body = Optimize(le.Body)
	return le
}

func (e LetExpr) Compile(ctx *Ctx) ir.CompilationResult {
	result := ir.CompilationResult{}

	type saved struct {
		name    string
		prev    ir.TempId
		hadPrev bool
	}
	restore := make([]saved, len(e.Binds))

	for i, b := range e.Binds {
		bound := b.Value.Compile(ctx)
		result.Append(bound)
		prev, hadPrev := ctx.Bind(b.Name, bound.Result)
		restore[i] = saved{name: b.Name, prev: prev, hadPrev: hadPrev}
	}

	body := e.Body.Compile(ctx)
	result.Append(body)
	result.Result = body.Result

	for i := len(restore) - 1; i >= 0; i-- {
		ctx.Unbind(restore[i].name, restore[i].prev, restore[i].hadPrev)
	}

	return result
}
