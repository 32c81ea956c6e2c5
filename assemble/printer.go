package assemble

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Disassemble renders a Program's instruction stream one instruction
// per line, colorized the way a terminal-facing demo wants it: opcodes
// in one color, registers in another.
func Disassemble(p *Program) string {
	opColor := color.New(color.FgCyan, color.Bold).SprintFunc()
	regColor := color.New(color.FgYellow).SprintFunc()

	var b strings.Builder
	for off := 0; off < len(p.Instructions); off += InstructionSize {
		ins := p.Instructions[off : off+InstructionSize]
		op := Opcode(ins[0])
		fmt.Fprintf(&b, "%4d: %s", off, opColor(op))
		switch op {
		case OpLoadConst, OpLoadSlot:
			idx := binary.LittleEndian.Uint16(ins[2:4])
			fmt.Fprintf(&b, " %s, C(%d)\n", regColor(regStr(ins[1])), idx)
		case OpMove:
			fmt.Fprintf(&b, " %s, %s\n", regColor(regStr(ins[1])), regColor(regStr(ins[2])))
		case OpAdd, OpEq, OpFillEmpty:
			fmt.Fprintf(&b, " %s, %s, %s\n", regColor(regStr(ins[1])), regColor(regStr(ins[2])), regColor(regStr(ins[3])))
		case OpTestEq:
			fmt.Fprintf(&b, " %s, %s\n", regColor(regStr(ins[1])), regColor(regStr(ins[2])))
		case OpTestTruthy, OpTestFalsey:
			fmt.Fprintf(&b, " %s\n", regColor(regStr(ins[1])))
		case OpJmp:
			off16 := binary.LittleEndian.Uint16(ins[2:4])
			fmt.Fprintf(&b, " +%d (-> %d)\n", off16, off+InstructionSize+int(off16))
		default:
			fmt.Fprintf(&b, " <unknown>\n")
		}
	}
	return b.String()
}

func regStr(r byte) string {
	return fmt.Sprintf("R%d", r)
}
