// Package assemble turns an optimized, phi-free CompilationResult into a
// fixed-width bytecode program: a register allocation pass followed by
// byte emission with deferred jump fix-up.
package assemble

import "exprvm/internal/value"

// Opcode identifies a machine instruction. Values are stable within one
// assembled program but are not a wire format shared across programs.
type Opcode uint8

const (
	OpLoadConst Opcode = iota
	OpLoadSlot
	OpMove
	OpAdd
	OpEq
	OpFillEmpty
	OpTestEq
	OpTestTruthy
	OpTestFalsey
	OpJmp
)

func (o Opcode) String() string {
	switch o {
	case OpLoadConst:
		return "LoadConst"
	case OpLoadSlot:
		return "LoadSlot"
	case OpMove:
		return "Move"
	case OpAdd:
		return "Add"
	case OpEq:
		return "Eq"
	case OpFillEmpty:
		return "FillEmpty"
	case OpTestEq:
		return "TestEq"
	case OpTestTruthy:
		return "TestTruthy"
	case OpTestFalsey:
		return "TestFalsey"
	case OpJmp:
		return "Jmp"
	default:
		return "Unknown"
	}
}

// InstructionSize is the fixed width, in bytes, of every machine
// instruction: one opcode byte plus three operand bytes.
const InstructionSize = 4

// MaxRegisters is the hard ceiling on simultaneously allocated
// registers; exceeding it is a contract violation.
const MaxRegisters = 250

// Program is an assembled, runnable unit: the byte-coded instruction
// stream, the constant pool it indexes into, a parallel slot table for
// externally-owned inputs, and the register count the interpreter must
// reserve in its frame.
type Program struct {
	Instructions []byte
	Constants    []value.Value
	// Slots parallels Constants: Slots[i] is non-nil iff Constants[i] is
	// a Slot-tagged cell, in which case Constants[i] carries i as its
	// payload (value.FromSlotIndex(i)) and Slots[i] is the slot to
	// dereference at run time.
	Slots        []*value.Slot
	NumRegisters int
}
