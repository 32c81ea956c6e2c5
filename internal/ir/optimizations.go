package ir

// Pass is a single pre-SSA optimization rule. Passes run exactly once
// each, in a fixed order, against a shared constraint map computed
// before the first pass runs; there is no fixed-point iteration.
type Pass interface {
	Name() string
	Apply(result *CompilationResult, constraints map[TempId]TempConstraints) bool
}

type removeRedundantNothingTest struct{}

func (removeRedundantNothingTest) Name() string { return "RemoveRedundantNothingTest" }

// Apply deletes every TestNothing/Jmp pair whose tested register cannot
// be Nothing: the branch it guards can never be taken.
func (removeRedundantNothingTest) Apply(result *CompilationResult, constraints map[TempId]TempConstraints) bool {
	changed := false
	kept := make([]Instr, 0, len(result.Instructions))
	for idx := 0; idx < len(result.Instructions); idx++ {
		instr := result.Instructions[idx]
		if t, ok := instr.(Test); ok && t.Kind == TestNothingKind && !constraints[t.Reg].CanBeNothing {
			// Skip this Test and the Jmp that must immediately follow it.
			idx++
			changed = true
			continue
		}
		kept = append(kept, instr)
	}
	result.Instructions = kept
	return changed
}

type foldFillEmpty struct{}

func (foldFillEmpty) Name() string { return "FoldFillEmpty" }

// Apply rewrites FillEmpty dst, l, r to Move dst, l whenever l can never
// be Nothing, since r can then never be selected.
func (foldFillEmpty) Apply(result *CompilationResult, constraints map[TempId]TempConstraints) bool {
	changed := false
	for idx, instr := range result.Instructions {
		fe, ok := instr.(FillEmpty)
		if !ok || constraints[fe.Left].CanBeNothing {
			continue
		}
		result.Instructions[idx] = Move{Dst: fe.Dst, Src: fe.Left}
		changed = true
	}
	return changed
}

type deadStore struct{}

func (deadStore) Name() string { return "DeadStore" }

// Apply removes any instruction whose destination is neither the
// result's overall output temp nor read anywhere after this point.
func (deadStore) Apply(result *CompilationResult, _ map[TempId]TempConstraints) bool {
	changed := false
	kept := make([]Instr, 0, len(result.Instructions))
	for idx, instr := range result.Instructions {
		if dst, ok := GetDest(instr); ok && dst != result.Result && !IsTempRead(result, dst, idx+1) {
			changed = true
			continue
		}
		kept = append(kept, instr)
	}
	result.Instructions = kept
	return changed
}

// OptimizePreSSA runs the pre-SSA pass pipeline once each, in the order
// dictated by their dependencies: nothing-test removal can expose dead
// stores, and fill-empty folding produces moves for post-SSA copy-prop
// to later remove.
func OptimizePreSSA(result *CompilationResult) {
	constraints := ComputeConstraints(result)
	passes := []Pass{removeRedundantNothingTest{}, foldFillEmpty{}, deadStore{}}
	for _, p := range passes {
		p.Apply(result, constraints)
	}
}

// RemovePhi eliminates every MovePhi by inserting a Move on each of its
// defining predecessor paths. The scan restarts from the beginning
// after handling a phi, since insertion shifts every later index.
func RemovePhi(result *CompilationResult) {
	for {
		progressed := false
		for idx, instr := range result.Instructions {
			phi, ok := instr.(MovePhi)
			if !ok {
				continue
			}
			rest := append([]Instr{}, result.Instructions[:idx]...)
			rest = append(rest, result.Instructions[idx+1:]...)
			result.Instructions = rest

			for _, src := range phi.Srcs {
				defIdx := FindDefinition(result, src)
				move := Move{Dst: phi.Dst, Src: src}
				if defIdx < 0 {
					// No reaching definition (e.g. src is itself the
					// merge point's own condition temp): place the move
					// where the phi used to live.
					result.Instructions = insertAt(result.Instructions, idx, move)
					continue
				}
				result.Instructions = insertAt(result.Instructions, defIdx+1, move)
			}
			progressed = true
			break
		}
		if !progressed {
			return
		}
	}
}

func insertAt(instrs []Instr, idx int, instr Instr) []Instr {
	out := make([]Instr, 0, len(instrs)+1)
	out = append(out, instrs[:idx]...)
	out = append(out, instr)
	out = append(out, instrs[idx:]...)
	return out
}

// BasicCopyProp is the single post-SSA pass: for each Move dst, src
// whose source definition is not separated from the move by a Jmp (a
// conservative stand-in for "same basic block"), every occurrence of
// src in the whole result is renamed to dst and the move is deleted.
func BasicCopyProp(result *CompilationResult) bool {
	changed := false
	for {
		progressedThisRound := false
		for idx, instr := range result.Instructions {
			mv, ok := instr.(Move)
			if !ok {
				continue
			}
			defIdx := FindDefinition(result, mv.Src)
			if defIdx < 0 || defIdx >= idx || jmpBetween(result, defIdx, idx) {
				continue
			}
			renameTemp(result, mv.Src, mv.Dst)
			result.Instructions = append(result.Instructions[:idx:idx], result.Instructions[idx+1:]...)
			changed = true
			progressedThisRound = true
			break
		}
		if !progressedThisRound {
			return changed
		}
	}
}

func jmpBetween(result *CompilationResult, from, to int) bool {
	for i := from + 1; i < to; i++ {
		if _, ok := result.Instructions[i].(Jmp); ok {
			return true
		}
	}
	return false
}

func renameTemp(result *CompilationResult, old, newT TempId) {
	if result.Result == old {
		result.Result = newT
	}
	for idx, instr := range result.Instructions {
		result.Instructions[idx] = replaceTempInInstr(instr, old, newT)
	}
}

func replaceTempInInstr(instr Instr, old, newT TempId) Instr {
	switch i := instr.(type) {
	case LoadConst:
		if i.Dst == old {
			i.Dst = newT
		}
		return i
	case LoadSlot:
		if i.Dst == old {
			i.Dst = newT
		}
		return i
	case Move:
		if i.Dst == old {
			i.Dst = newT
		}
		if i.Src == old {
			i.Src = newT
		}
		return i
	case MovePhi:
		if i.Dst == old {
			i.Dst = newT
		}
		for s := range i.Srcs {
			if i.Srcs[s] == old {
				i.Srcs[s] = newT
			}
		}
		return i
	case Add:
		if i.Dst == old {
			i.Dst = newT
		}
		if i.Left == old {
			i.Left = newT
		}
		if i.Right == old {
			i.Right = newT
		}
		return i
	case FillEmpty:
		if i.Dst == old {
			i.Dst = newT
		}
		if i.Left == old {
			i.Left = newT
		}
		if i.Right == old {
			i.Right = newT
		}
		return i
	case Eq:
		if i.Dst == old {
			i.Dst = newT
		}
		if i.Left == old {
			i.Left = newT
		}
		if i.Right == old {
			i.Right = newT
		}
		return i
	case Test:
		if i.Reg == old {
			i.Reg = newT
		}
		return i
	case TestEq:
		if i.Left == old {
			i.Left = newT
		}
		if i.Right == old {
			i.Right = newT
		}
		return i
	default:
		return instr
	}
}
