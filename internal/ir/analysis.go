package ir

// FindDefinition returns the index of the unique instruction whose
// destination is t, or -1 if t is never defined in result.
func FindDefinition(result *CompilationResult, t TempId) int {
	for idx, instr := range result.Instructions {
		if dst, ok := GetDest(instr); ok && dst == t {
			return idx
		}
	}
	return -1
}

// IsTempRead reports whether any instruction at index >= startIdx
// mentions t as an input: a right-hand side operand, a test operand, a
// phi source, or a move source. Destinations never count as reads.
func IsTempRead(result *CompilationResult, t TempId, startIdx int) bool {
	for idx := startIdx; idx < len(result.Instructions); idx++ {
		if readsOperand(result.Instructions[idx], t) {
			return true
		}
	}
	return false
}

func readsOperand(instr Instr, t TempId) bool {
	switch i := instr.(type) {
	case Move:
		return i.Src == t
	case MovePhi:
		for _, s := range i.Srcs {
			if s == t {
				return true
			}
		}
		return false
	case Add:
		return i.Left == t || i.Right == t
	case FillEmpty:
		return i.Left == t || i.Right == t
	case Eq:
		return i.Left == t || i.Right == t
	case Test:
		return i.Reg == t
	case TestEq:
		return i.Left == t || i.Right == t
	default:
		return false
	}
}

// IsTempLive reports whether t is live immediately after idx: true iff
// some later instruction reads it. Sound because control flow here is
// forward-only, so any later read is reachable from idx.
func IsTempLive(result *CompilationResult, t TempId, idx int) bool {
	return IsTempRead(result, t, idx+1)
}

// TempConstraints is the per-temp fact computed by ComputeConstraints:
// whether the temp's value can ever be the Nothing value.
type TempConstraints struct {
	CanBeNothing bool
}

// ComputeConstraints runs one forward pass over result computing, for
// every defined temp, whether it can hold Nothing. The lattice join is
// OR: once a source of a phi can be nothing, the phi can be nothing.
func ComputeConstraints(result *CompilationResult) map[TempId]TempConstraints {
	constraints := make(map[TempId]TempConstraints, len(result.Instructions))
	for _, instr := range result.Instructions {
		switch i := instr.(type) {
		case LoadConst:
			constraints[i.Dst] = TempConstraints{CanBeNothing: i.Value.IsNothing()}
		case LoadSlot:
			// A slot's current value is unknown at compile time; treat
			// it conservatively as possibly nothing.
			constraints[i.Dst] = TempConstraints{CanBeNothing: true}
		case Add:
			constraints[i.Dst] = TempConstraints{CanBeNothing: true}
		case FillEmpty:
			constraints[i.Dst] = TempConstraints{CanBeNothing: constraints[i.Right].CanBeNothing}
		case Eq:
			// Equality is total over the value cell; it never yields
			// Nothing regardless of its operands' constraints.
			constraints[i.Dst] = TempConstraints{CanBeNothing: false}
		case Move:
			constraints[i.Dst] = constraints[i.Src]
		case MovePhi:
			can := false
			for _, s := range i.Srcs {
				if constraints[s].CanBeNothing {
					can = true
					break
				}
			}
			constraints[i.Dst] = TempConstraints{CanBeNothing: can}
		}
	}
	return constraints
}
