package assemble

import (
	"testing"

	"exprvm/internal/ir"
	"exprvm/internal/value"
)

func TestRegAllocReusesDeadRegister(t *testing.T) {
	// t0 dies immediately (never read again); t1 should get t0's register.
	result := &ir.CompilationResult{
		Result: 2,
		Instructions: []ir.Instr{
			ir.LoadConst{Dst: 0, Value: value.Int(1)},
			ir.LoadConst{Dst: 1, Value: value.Int(2)},
			ir.LoadConst{Dst: 2, Value: value.Int(3)},
		},
	}
	a := newRegAlloc(result)
	a.assign(result)
	if a.regFor(0) != a.regFor(1) {
		t.Errorf("expected t1 to reuse t0's dead register: t0=R%d t1=R%d", a.regFor(0), a.regFor(1))
	}
	if a.regFor(2) != 0 {
		t.Errorf("result temp should be bound to register 0, got R%d", a.regFor(2))
	}
}

func TestRegAllocOverflowFaults(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic on register overflow")
		}
	}()

	instrs := make([]ir.Instr, 0, MaxRegisters+10)
	// Every temp stays live (used by a final NOpAdd-like chain) so none
	// can be reused, forcing the counter past MaxRegisters.
	for i := 0; i < MaxRegisters+5; i++ {
		instrs = append(instrs, ir.LoadConst{Dst: ir.TempId(i), Value: value.Int(int64(i))})
	}
	sumOperands := make([]ir.Instr, 0)
	var acc ir.TempId = 0
	for i := 1; i < MaxRegisters+5; i++ {
		dst := ir.TempId(1000 + i)
		sumOperands = append(sumOperands, ir.Add{Dst: dst, Left: acc, Right: ir.TempId(i)})
		acc = dst
	}
	instrs = append(instrs, sumOperands...)

	result := &ir.CompilationResult{Result: acc, Instructions: instrs}
	a := newRegAlloc(result)
	a.assign(result)
}
