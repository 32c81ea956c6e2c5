package assemble

import (
	"encoding/binary"
	"testing"

	"exprvm/internal/ir"
	"exprvm/internal/value"
)

func TestAssembleByteAlignment(t *testing.T) {
	result := &ir.CompilationResult{
		Result: 1,
		Instructions: []ir.Instr{
			ir.LoadConst{Dst: 0, Value: value.Int(3)},
			ir.LoadConst{Dst: 1, Value: value.Int(4)},
			ir.Add{Dst: 1, Left: 0, Right: 1},
		},
	}
	p := Assemble(result)
	if len(p.Instructions)%InstructionSize != 0 {
		t.Fatalf("instruction stream length %d is not a multiple of %d", len(p.Instructions), InstructionSize)
	}
}

func TestAssembleResultIsRegisterZero(t *testing.T) {
	result := &ir.CompilationResult{
		Result: 0,
		Instructions: []ir.Instr{
			ir.LoadConst{Dst: 0, Value: value.Int(7)},
		},
	}
	p := Assemble(result)
	// LoadConst R0, C(0): opcode, dst=0, idx16
	if p.Instructions[1] != 0 {
		t.Fatalf("expected result temp bound to register 0, got %d", p.Instructions[1])
	}
}

func TestAssembleForwardJumpFixUp(t *testing.T) {
	result := &ir.CompilationResult{
		Result: 0,
		Instructions: []ir.Instr{
			ir.LoadConst{Dst: 0, Value: value.Int(1)},
			ir.Jmp{Label: "end"},
			ir.LoadConst{Dst: 1, Value: value.Int(2)}, // skipped in practice; just bulk
			ir.Label{Name: "end"},
		},
	}
	p := Assemble(result)
	// Jmp is the second instruction (bytes 4..8); its offset operand is at 4+2=6,
	// and the offset is measured from the end of the Jmp (byte 8).
	jmpByteOffset := InstructionSize
	off16 := int16(binary.LittleEndian.Uint16(p.Instructions[jmpByteOffset+2 : jmpByteOffset+4]))
	labelByteOffset := 3 * InstructionSize
	wantDiff := labelByteOffset - (jmpByteOffset + InstructionSize)
	if int(off16) != wantDiff {
		t.Fatalf("jump offset = %d, want %d", off16, wantDiff)
	}
	if wantDiff < 0 {
		t.Fatal("forward jump produced a negative offset")
	}
}

func TestAssembleFaultsOnSurvivingMovePhi(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for a surviving MovePhi")
		}
	}()
	result := &ir.CompilationResult{
		Result: 0,
		Instructions: []ir.Instr{
			ir.LoadConst{Dst: 0, Value: value.Int(1)},
			ir.MovePhi{Dst: 0, Srcs: []ir.TempId{0}},
		},
	}
	Assemble(result)
}

func TestAssembleFaultsOnSurvivingTestNothing(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for a surviving TestNothing")
		}
	}()
	result := &ir.CompilationResult{
		Result: 0,
		Instructions: []ir.Instr{
			ir.LoadConst{Dst: 0, Value: value.Int(1)},
			ir.Test{Kind: ir.TestNothingKind, Reg: 0},
			ir.Jmp{Label: "end"},
			ir.Label{Name: "end"},
		},
	}
	Assemble(result)
}

func TestAssembleLoadSlotPopulatesSlotTable(t *testing.T) {
	s := value.NewSlot(value.Int(42))
	result := &ir.CompilationResult{
		Result: 0,
		Instructions: []ir.Instr{
			ir.LoadSlot{Dst: 0, Slot: s},
		},
	}
	p := Assemble(result)
	idx := binary.LittleEndian.Uint16(p.Instructions[2:4])
	if p.Slots[idx] != s {
		t.Fatalf("expected slot table entry %d to point at the slot", idx)
	}
	if !p.Constants[idx].Equal(value.FromSlotIndex(int(idx))) {
		t.Fatalf("expected constant pool entry to be a slot cell at its own index")
	}
}

func TestAssembleRegisterReuseAfterDeath(t *testing.T) {
	// The result temp t2 pre-owns R0; t0 and t1 get R1 and R2. t0 dies at the
	// first Add, so that Add's destination t3 can take over R1 instead of a
	// fresh R3, keeping the count at 3.
	result := &ir.CompilationResult{
		Result: 2,
		Instructions: []ir.Instr{
			ir.LoadConst{Dst: 0, Value: value.Int(1)}, // t0: last read by the first Add
			ir.LoadConst{Dst: 1, Value: value.Int(2)}, // t1: read by both Adds
			ir.Add{Dst: 3, Left: 0, Right: 1},         // t3 reuses t0's register
			ir.Add{Dst: 2, Left: 3, Right: 1},         // t2 is the result, pre-bound to R0
		},
	}
	p := Assemble(result)
	if p.NumRegisters > 3 {
		t.Fatalf("expected register reuse to keep the count small, got %d", p.NumRegisters)
	}
}
