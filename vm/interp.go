// Package vm is the threaded fetch-decode-execute interpreter that runs
// an assembled Program against a register/stack frame.
package vm

import (
	"encoding/binary"

	"exprvm/assemble"
	"exprvm/internal/errors"
	"exprvm/internal/value"
)

// Run executes program to completion and returns the value left in
// register 0. It panics with an *errors.Fault on any contract violation
// (misaligned stream, unknown opcode, a Test not immediately followed
// by a Jmp) rather than returning an error: the bytecode is assumed to
// have come from this package's own assembler, so any such violation is
// a bug in the pipeline, not malformed external input.
func Run(program *assemble.Program) value.Value {
	if len(program.Instructions)%assemble.InstructionSize != 0 {
		errors.Raise("interpret", errors.FaultMisalignedStream, "instruction stream length %d is not a multiple of %d", len(program.Instructions), assemble.InstructionSize)
	}

	frame := make([]value.Value, len(program.Constants)+program.NumRegisters)
	copy(frame, program.Constants)
	base := len(program.Constants)
	reg := frame[base:]

	code := program.Instructions
	eip := -assemble.InstructionSize
	end := len(code)

	for {
		eip += assemble.InstructionSize
		if eip == end {
			break
		}
		op := assemble.Opcode(code[eip])
		switch op {
		case assemble.OpLoadConst:
			dst := code[eip+1]
			idx := binary.LittleEndian.Uint16(code[eip+2 : eip+4])
			reg[dst] = program.Constants[idx]
		case assemble.OpLoadSlot:
			dst := code[eip+1]
			idx := binary.LittleEndian.Uint16(code[eip+2 : eip+4])
			reg[dst] = program.Slots[idx].Get()
		case assemble.OpMove:
			dst, src := code[eip+1], code[eip+2]
			reg[dst] = reg[src]
		case assemble.OpAdd:
			dst, l, r := code[eip+1], code[eip+2], code[eip+3]
			if reg[l].IsNothing() || reg[r].IsNothing() {
				reg[dst] = value.Nothing()
			} else {
				// Tag is set explicitly to Int rather than left over
				// from whatever this register held before, since a
				// reused register could otherwise leave a stale tag.
				reg[dst] = value.Value{Val: reg[l].Val + reg[r].Val, Tag: value.TagInt}
			}
		case assemble.OpEq:
			dst, l, r := code[eip+1], code[eip+2], code[eip+3]
			reg[dst] = value.Bool(reg[l].Equal(reg[r]))
		case assemble.OpFillEmpty:
			dst, l, r := code[eip+1], code[eip+2], code[eip+3]
			if reg[l].IsNothing() {
				reg[dst] = reg[r]
			} else {
				reg[dst] = reg[l]
			}
		case assemble.OpTestTruthy:
			v := code[eip+1]
			eip = consumeFollowingJmp(code, eip, end, reg[v].Truthy())
		case assemble.OpTestFalsey:
			v := code[eip+1]
			eip = consumeFollowingJmp(code, eip, end, !reg[v].Truthy())
		case assemble.OpTestEq:
			l, r := code[eip+1], code[eip+2]
			eip = consumeFollowingJmp(code, eip, end, reg[l].Equal(reg[r]))
		case assemble.OpJmp:
			eip += int(binary.LittleEndian.Uint16(code[eip+2 : eip+4]))
		default:
			errors.Raise("interpret", errors.FaultUnknownOpcode, "fetched unknown opcode %d at byte %d", code[eip], eip)
		}
	}

	return reg[0]
}

// consumeFollowingJmp implements the Test+Jmp pairing: it advances past
// the Test to the Jmp that must immediately follow it, and if the test
// passed, applies that Jmp's offset right here. It returns the eip value
// to resume the main loop from (the loop's own +4 advances it the rest
// of the way in both the taken and not-taken case).
func consumeFollowingJmp(code []byte, eip, end int, testPasses bool) int {
	eip += assemble.InstructionSize
	if eip >= end || assemble.Opcode(code[eip]) != assemble.OpJmp {
		errors.Raise("interpret", errors.FaultDanglingTest, "Test at byte %d was not immediately followed by a Jmp", eip-assemble.InstructionSize)
	}
	if testPasses {
		eip += int(binary.LittleEndian.Uint16(code[eip+2 : eip+4]))
	}
	return eip
}
