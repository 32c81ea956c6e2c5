package assemble

import (
	"exprvm/internal/errors"
	"exprvm/internal/ir"
)

// regAlloc assigns machine registers to temporaries. Register 0 is
// reserved for the result temp and is pre-bound outside the reuse pool:
// it is never a candidate for eviction, matching the contract that the
// program's final value always lands in register 0.
type regAlloc struct {
	tempToReg map[ir.TempId]uint8
	// history maps a register still eligible for reuse to the most
	// recently assigned occupant. Register 0 is intentionally absent.
	history  map[uint8]ir.TempId
	order    []uint8 // registers in allocation order, for deterministic scanning
	nextFree uint8
}

func newRegAlloc(result *ir.CompilationResult) *regAlloc {
	a := &regAlloc{
		tempToReg: make(map[ir.TempId]uint8),
		history:   make(map[uint8]ir.TempId),
		nextFree:  1,
	}
	a.tempToReg[result.Result] = 0
	return a
}

// assign walks the instruction list once, giving every destination temp
// a register: a dying occupant's register is reused where possible,
// otherwise a fresh register is allocated.
func (a *regAlloc) assign(result *ir.CompilationResult) {
	for idx, instr := range result.Instructions {
		dst, ok := ir.GetDest(instr)
		if !ok {
			continue
		}
		if _, already := a.tempToReg[dst]; already {
			continue
		}
		a.choose(result, dst, idx)
	}
}

func (a *regAlloc) choose(result *ir.CompilationResult, t ir.TempId, idx int) {
	for _, reg := range a.order {
		occupant := a.history[reg]
		if !ir.IsTempLive(result, occupant, idx) {
			a.tempToReg[t] = reg
			a.history[reg] = t
			return
		}
	}
	if a.nextFree >= MaxRegisters {
		errors.Raise("assemble", errors.FaultRegisterOverflow, "register allocation exceeded %d registers", MaxRegisters)
	}
	reg := a.nextFree
	a.nextFree++
	a.tempToReg[t] = reg
	a.history[reg] = t
	a.order = append(a.order, reg)
}

func (a *regAlloc) regFor(t ir.TempId) uint8 {
	reg, ok := a.tempToReg[t]
	if !ok {
		errors.Raise("assemble", errors.FaultDanglingDefinition, "temp %s has no assigned register", t)
	}
	return reg
}

// numRegisters is the exclusive upper bound: registers 0..numRegisters-1
// are in use.
func (a *regAlloc) numRegisters() int {
	return int(a.nextFree)
}
