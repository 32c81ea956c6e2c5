package assemble

import (
	"encoding/binary"

	"exprvm/internal/errors"
	"exprvm/internal/ir"
	"exprvm/internal/value"
)

type emitter struct {
	bytes     []byte
	constants []value.Value
	slots     []*value.Slot
	fixups    map[int]string // byte offset of a Jmp's uint16 operand -> target label
	labels    map[string]int // label name -> byte offset of the instruction it names
}

func newEmitter() *emitter {
	return &emitter{
		fixups: make(map[int]string),
		labels: make(map[string]int),
	}
}

func (e *emitter) appendConst(v value.Value) uint16 {
	e.constants = append(e.constants, v)
	e.slots = append(e.slots, nil)
	idx := len(e.constants) - 1
	if idx > 0xFFFF {
		errors.Raise("assemble", errors.FaultUnencodableInstr, "constant pool index %d overflows uint16", idx)
	}
	return uint16(idx)
}

func (e *emitter) appendSlot(s *value.Slot) uint16 {
	idx := len(e.constants)
	e.constants = append(e.constants, value.FromSlotIndex(idx))
	e.slots = append(e.slots, s)
	if idx > 0xFFFF {
		errors.Raise("assemble", errors.FaultUnencodableInstr, "constant pool index %d overflows uint16", idx)
	}
	return uint16(idx)
}

func (e *emitter) emit4(op Opcode, b1, b2, b3 byte) {
	e.bytes = append(e.bytes, byte(op), b1, b2, b3)
}

func (e *emitter) emit16(op Opcode, b1 byte, v uint16) {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	e.emit4(op, b1, buf[0], buf[1])
}

// emitJmpPlaceholder appends a Jmp with a zero offset and records a
// fix-up for it, returning nothing: the fix-up table carries everything
// needed to patch it once every label's byte offset is known.
func (e *emitter) emitJmpPlaceholder(label string) {
	offset := len(e.bytes) + 2 // where the uint16 operand will live
	e.emit16(OpJmp, 0, 0)
	e.fixups[offset] = label
}

func (e *emitter) patchJumps() {
	for offset, label := range e.fixups {
		target, ok := e.labels[label]
		if !ok {
			errors.Raise("assemble", errors.FaultUnencodableInstr, "jump targets undefined label %q", label)
		}
		diff := target - (offset + 2)
		if diff < 0 || diff > 0xFFFF {
			errors.Raise("assemble", errors.FaultJumpRangeOverflow, "jump from %d to %q does not fit in a uint16 (diff=%d)", offset, label, diff)
		}
		binary.LittleEndian.PutUint16(e.bytes[offset:offset+2], uint16(diff))
	}
}

// Assemble lowers a fully optimized, phi-free CompilationResult into a
// runnable Program. Any MovePhi, or a TestNothing that optimization
// failed to remove, is a contract violation: neither has a machine
// encoding.
func Assemble(result *ir.CompilationResult) *Program {
	regs := newRegAlloc(result)
	regs.assign(result)

	e := newEmitter()

	for idx, instr := range result.Instructions {
		switch i := instr.(type) {
		case ir.LoadConst:
			idx16 := e.appendConst(i.Value)
			e.emit16(OpLoadConst, regs.regFor(i.Dst), idx16)
		case ir.LoadSlot:
			idx16 := e.appendSlot(i.Slot)
			e.emit16(OpLoadSlot, regs.regFor(i.Dst), idx16)
		case ir.Move:
			e.emit4(OpMove, regs.regFor(i.Dst), regs.regFor(i.Src), 0)
		case ir.Add:
			e.emit4(OpAdd, regs.regFor(i.Dst), regs.regFor(i.Left), regs.regFor(i.Right))
		case ir.Eq:
			e.emit4(OpEq, regs.regFor(i.Dst), regs.regFor(i.Left), regs.regFor(i.Right))
		case ir.FillEmpty:
			e.emit4(OpFillEmpty, regs.regFor(i.Dst), regs.regFor(i.Left), regs.regFor(i.Right))
		case ir.TestEq:
			e.emit4(OpTestEq, regs.regFor(i.Left), regs.regFor(i.Right), 0)
		case ir.Test:
			switch i.Kind {
			case ir.TestTruthyKind:
				e.emit4(OpTestTruthy, regs.regFor(i.Reg), 0, 0)
			case ir.TestFalseyKind:
				e.emit4(OpTestFalsey, regs.regFor(i.Reg), 0, 0)
			default:
				errors.Raise("assemble", errors.FaultUnencodableInstr, "TestNothing survived optimization at instruction %d; it has no machine encoding", idx)
			}
		case ir.Jmp:
			e.emitJmpPlaceholder(i.Label)
		case ir.Label:
			e.labels[i.Name] = len(e.bytes)
		case ir.MovePhi:
			errors.Raise("assemble", errors.FaultPhiSurvivedElimination, "MovePhi survived phi elimination at instruction %d", idx)
		default:
			errors.Raise("assemble", errors.FaultUnencodableInstr, "instruction %d has no machine encoding: %s", idx, instr)
		}
	}

	e.patchJumps()

	if len(e.bytes)%InstructionSize != 0 {
		errors.Raise("assemble", errors.FaultMisalignedStream, "instruction stream length %d is not a multiple of %d", len(e.bytes), InstructionSize)
	}

	return &Program{
		Instructions: e.bytes,
		Constants:    e.constants,
		Slots:        e.slots,
		NumRegisters: regs.numRegisters(),
	}
}
