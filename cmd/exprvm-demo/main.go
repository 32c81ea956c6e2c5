// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"

	"github.com/fatih/color"

	"exprvm"
	"exprvm/assemble"
	"exprvm/internal/ast"
	"exprvm/internal/errors"
	"exprvm/internal/value"
	"exprvm/vm"
)

// scenario names one of the end-to-end sample programs this demo walks
// through, each chosen to exercise a different corner of the pipeline:
// a constant load, Nothing-propagation through Add, short-circuiting
// And, FillEmpty, a let-bound If, a slot read, equality, and a fault path.
type scenario struct {
	name string
	expr ast.Expr
}

func scenarios() []scenario {
	counter := value.NewSlot(value.Int(41))
	return []scenario{
		{"const", ast.Const(value.Int(7))},
		{"add", ast.Add(ast.Const(value.Int(3)), ast.Const(value.Int(4)))},
		{"add-with-nothing", ast.Add(ast.Const(value.Nothing()), ast.Const(value.Int(5)))},
		{"and-short-circuits-on-nothing", ast.And(ast.Const(value.Nothing()), ast.Const(value.Int(5)))},
		{"fill-empty", ast.FillEmpty(ast.Const(value.Nothing()), ast.Const(value.Int(99)))},
		{"let-and-if", ast.Let(
			[]ast.LetBind{{Name: "x", Value: ast.Const(value.Int(100))}},
			ast.If(
				ast.Variable("x"),
				ast.Add(ast.Variable("x"), ast.Const(value.Int(4))),
				ast.Const(value.Int(0)),
			),
		)},
		{"slot-read", ast.Add(ast.Slot(counter), ast.Const(value.Int(1)))},
		{"eq", ast.Eq(ast.Const(value.Int(5)), ast.Const(value.Int(5)))},
		{"undefined-variable-faults", ast.Variable("ghost")},
	}
}

func main() {
	reporter := errors.NewReporter()

	for _, s := range scenarios() {
		run(reporter, s)
	}
}

func run(reporter *errors.Reporter, s scenario) {
	defer func() {
		if rec := recover(); rec != nil {
			reporter.Recover(rec)
			fmt.Println()
		}
	}()

	color.New(color.FgGreen, color.Bold).Printf("== %s ==\n", s.name)

	program := exprvm.Compile(s.expr)
	fmt.Print(assemble.Disassemble(program))

	result := vm.Run(program)
	color.Cyan("=> %s\n\n", result)
}
