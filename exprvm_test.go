package exprvm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exprvm/internal/ast"
	"exprvm/internal/value"
	"exprvm/vm"
)

func TestEvalEndToEndScenarios(t *testing.T) {
	cases := []struct {
		name string
		expr ast.Expr
		want value.Value
	}{
		{"const", ast.Const(value.Int(7)), value.Int(7)},
		{"add", ast.Add(ast.Const(value.Int(3)), ast.Const(value.Int(4))), value.Int(7)},
		{"add-nothing", ast.Add(ast.Const(value.Nothing()), ast.Const(value.Int(5))), value.Nothing()},
		{"and-nothing", ast.And(ast.Const(value.Nothing()), ast.Const(value.Int(5))), value.Nothing()},
		{"fill-empty", ast.FillEmpty(ast.Const(value.Nothing()), ast.Const(value.Int(99))), value.Int(99)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Eval(c.expr)
			assert.True(t, got.Equal(c.want), "Eval(%s) = %s, want %s", c.name, got, c.want)
		})
	}
}

func TestCompileThenRunTwiceWithMutatedSlotRereads(t *testing.T) {
	slot := value.NewSlot(value.Int(1))
	program := Compile(ast.Add(ast.Slot(slot), ast.Const(value.Int(1))))

	require.Equal(t, value.Int(2), vm.Run(program))

	slot.Set(value.Int(41))
	require.Equal(t, value.Int(42), vm.Run(program))
}

func TestEvalAddNSumsAllOperands(t *testing.T) {
	expr := ast.AddN(ast.Const(value.Int(1)), ast.Const(value.Int(2)), ast.Const(value.Int(3)), ast.Const(value.Int(4)))
	got := Eval(expr)
	assert.True(t, got.Equal(value.Int(10)), "Eval(AddN(1,2,3,4)) = %s, want Int(10)", got)
}

func TestCompilePanicsOnUndefinedVariable(t *testing.T) {
	assert.Panics(t, func() {
		Compile(ast.Variable("ghost"))
	})
}
