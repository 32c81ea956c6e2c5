package ir

import (
	"fmt"
	"strings"
)

// Print renders a CompilationResult as one instruction per line,
// prefixed with its index, for disassembly and test-failure output.
func Print(result *CompilationResult) string {
	var b strings.Builder
	for idx, instr := range result.Instructions {
		fmt.Fprintf(&b, "%3d: %s\n", idx, instr)
	}
	fmt.Fprintf(&b, "result: %s\n", result.Result)
	return b.String()
}
