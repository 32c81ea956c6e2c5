// Package fixture parses the tiny s-expression DSL this package's tests
// write sample programs in, and converts the parsed
// tree into an internal/ast.Expr ready for exprvm.Compile. It sits
// outside the core pipeline: nothing under internal/ast, internal/ir,
// assemble, or vm imports it.
package fixture

import (
	"strconv"

	"exprvm/internal/ast"
	"exprvm/internal/errors"
	"exprvm/internal/value"
)

// Env supplies the slots a fixture's (slot "name") forms resolve
// against. Slots are passed in by name rather than spelled out in the
// DSL text because a *value.Slot is a live, mutable handle the caller
// needs to keep a reference to (to mutate it between runs), not a
// value the DSL text alone could construct.
type Env struct {
	Slots map[string]*value.Slot
}

// Parse parses source (one s-expression) and converts it to an
// ast.Expr. sourceName is used only for error position reporting.
func Parse(sourceName, source string, env Env) ast.Expr {
	node, err := parseNode(sourceName, source)
	if err != nil {
		errors.Raise("fixture", errors.FaultFixtureSyntax, "%s", err)
	}
	return convert(node, env)
}

func convert(n *Node, env Env) ast.Expr {
	if n.isAtom() {
		return convertAtom(n)
	}

	if len(n.List) == 0 {
		errors.Raise("fixture", errors.FaultFixtureUnknownForm, "empty s-expression at %s", n.Pos)
	}

	head := n.List[0]
	if head.Ident == nil {
		errors.Raise("fixture", errors.FaultFixtureUnknownForm, "s-expression at %s does not start with a symbol", n.Pos)
	}

	args := n.List[1:]
	switch *head.Ident {
	case "const":
		return convertAtom(args[0])
	case "var":
		return ast.Variable(*args[0].Ident)
	case "slot":
		name := unquote(*args[0].Str)
		s, ok := env.Slots[name]
		if !ok {
			errors.Raise("fixture", errors.FaultFixtureUnknownSlot, "no slot named %q in the fixture environment", name)
		}
		return ast.Slot(s)
	case "add":
		return convertAdd(args, env)
	case "eq":
		return ast.Eq(convert(args[0], env), convert(args[1], env))
	case "fillEmpty":
		return ast.FillEmpty(convert(args[0], env), convert(args[1], env))
	case "and":
		return convertAnd(args, env)
	case "if":
		return ast.If(convert(args[0], env), convert(args[1], env), convert(args[2], env))
	case "let":
		return convertLet(args, env)
	default:
		errors.Raise("fixture", errors.FaultFixtureUnknownForm, "unknown form %q at %s", *head.Ident, n.Pos)
		panic("unreachable")
	}
}

// convertAdd converts (add a b ...): exactly 2 operands produce a
// binary BinOp(Add), more than 2 produce the n-ary NOp(Add) variant
// directly via ast.AddN.
func convertAdd(args []*Node, env Env) ast.Expr {
	if len(args) < 2 {
		errors.Raise("fixture", errors.FaultFixtureUnknownForm, "add requires at least 2 operands, got %d", len(args))
	}
	operands := make([]ast.Expr, len(args))
	for i, a := range args {
		operands[i] = convert(a, env)
	}
	if len(operands) == 2 {
		return ast.Add(operands[0], operands[1])
	}
	return ast.AddN(operands...)
}

// convertAnd left-folds a variadic (and a b c ...) into nested binary
// And nodes; ast.Optimize flattens the chain back out before lowering,
// so the fold order here has no effect on the compiled result.
func convertAnd(args []*Node, env Env) ast.Expr {
	if len(args) < 2 {
		errors.Raise("fixture", errors.FaultFixtureUnknownForm, "and requires at least 2 operands, got %d", len(args))
	}
	acc := convert(args[0], env)
	for _, a := range args[1:] {
		acc = ast.And(acc, convert(a, env))
	}
	return acc
}

// convertLet handles (let ((name expr) (name expr) ...) body).
func convertLet(args []*Node, env Env) ast.Expr {
	bindList := args[0]
	body := args[1]

	binds := make([]ast.LetBind, 0, len(bindList.List))
	for _, b := range bindList.List {
		name := *b.List[0].Ident
		binds = append(binds, ast.LetBind{Name: name, Value: convert(b.List[1], env)})
	}
	return ast.Let(binds, convert(body, env))
}

func convertAtom(n *Node) ast.Expr {
	switch {
	case n.Int != nil:
		v, err := strconv.ParseInt(*n.Int, 10, 64)
		if err != nil {
			errors.Raise("fixture", errors.FaultFixtureSyntax, "malformed integer literal %q at %s", *n.Int, n.Pos)
		}
		return ast.Const(value.Int(v))
	case n.Ident != nil:
		switch *n.Ident {
		case "true":
			return ast.Const(value.Bool(true))
		case "false":
			return ast.Const(value.Bool(false))
		case "nothing":
			return ast.Const(value.Nothing())
		default:
			errors.Raise("fixture", errors.FaultFixtureUnknownForm, "unknown atom %q at %s", *n.Ident, n.Pos)
		}
	case n.Str != nil:
		errors.Raise("fixture", errors.FaultFixtureUnknownForm, "a bare string literal is not a valid expression at %s", n.Pos)
	}
	panic("unreachable")
}

func unquote(s string) string {
	return s[1 : len(s)-1]
}
