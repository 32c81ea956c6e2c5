// Package ir defines the three-address intermediate representation the
// ast package lowers into: a flat, forward-only instruction list over
// symbolic temporaries, plus the analyses and optimization passes that
// run on it before assembly.
package ir

import (
	"fmt"

	"exprvm/internal/value"
)

// TempId names an IR-level value. Temps are issued monotonically by a
// compile context and are single-assignment until phi elimination runs.
type TempId uint32

func (t TempId) String() string {
	return fmt.Sprintf("t%d", uint32(t))
}

// Instr is the tagged union of logical instructions. Each variant is a
// small struct; dispatch is by type switch, not by method table, since
// the set is closed and fixed by this package.
type Instr interface {
	fmt.Stringer
	isInstr()
}

// LoadConst materializes a constant cell into a fresh temp.
type LoadConst struct {
	Dst   TempId
	Value value.Value
}

// LoadSlot reads the current value of an externally-owned slot into dst.
// The slot itself is carried by reference through the IR and lowered to
// a constant-pool index only at assembly time, so nothing here needs to
// renumber indices when CompilationResults are concatenated.
type LoadSlot struct {
	Dst  TempId
	Slot *value.Slot
}

// Move copies Src into Dst.
type Move struct {
	Dst TempId
	Src TempId
}

// MovePhi selects among Srcs depending on which predecessor path reached
// the merge point. It exists only before phi elimination runs.
type MovePhi struct {
	Dst  TempId
	Srcs []TempId
}

// Add computes Dst = Left + Right with nothing-propagation: if either
// operand is Nothing, Dst is Nothing.
type Add struct {
	Dst   TempId
	Left  TempId
	Right TempId
}

// FillEmpty computes Dst = Left if Left is not Nothing, else Right.
type FillEmpty struct {
	Dst   TempId
	Left  TempId
	Right TempId
}

// Eq computes Dst = Bool(Left == Right), a value-producing structural
// comparison distinct from TestEq's implicit-condition form below.
type Eq struct {
	Dst   TempId
	Left  TempId
	Right TempId
}

// TestKind distinguishes the three Test variants, which all share the
// same shape (a single register operand) and the same contract: the
// test primes an implicit condition that the immediately following Jmp
// consumes.
type TestKind uint8

const (
	TestNothingKind TestKind = iota
	TestTruthyKind
	TestFalseyKind
)

func (k TestKind) String() string {
	switch k {
	case TestNothingKind:
		return "TestNothing"
	case TestTruthyKind:
		return "TestTruthy"
	case TestFalseyKind:
		return "TestFalsey"
	default:
		return fmt.Sprintf("TestKind(%d)", uint8(k))
	}
}

// Test primes the condition consumed by the Jmp that must immediately
// follow it in the instruction list.
type Test struct {
	Kind TestKind
	Reg  TempId
}

// TestEq primes a condition, like Test, but compares two registers for
// structural equality rather than testing one register's tag or payload.
type TestEq struct {
	Left  TempId
	Right TempId
}

// Jmp is a forward-only jump to a label in the same CompilationResult.
// When it immediately follows a Test/TestEq it is that test's branch;
// otherwise it is unconditional (If's lowering emits one to skip the
// then-branch after the else-branch).
type Jmp struct {
	Label string
}

// Label marks a jump destination. It is defined at most once per result.
type Label struct {
	Name string
}

func (LoadConst) isInstr() {}
func (LoadSlot) isInstr()  {}
func (Move) isInstr()      {}
func (MovePhi) isInstr()   {}
func (Add) isInstr()       {}
func (FillEmpty) isInstr() {}
func (Eq) isInstr()        {}
func (Test) isInstr()      {}
func (TestEq) isInstr()    {}
func (Jmp) isInstr()       {}
func (Label) isInstr()     {}

func (i LoadConst) String() string { return fmt.Sprintf("%s = LoadConst %s", i.Dst, i.Value) }
func (i LoadSlot) String() string  { return fmt.Sprintf("%s = LoadSlot %s", i.Dst, i.Slot.Get()) }
func (i Move) String() string      { return fmt.Sprintf("%s = Move %s", i.Dst, i.Src) }
func (i MovePhi) String() string   { return fmt.Sprintf("%s = MovePhi %v", i.Dst, i.Srcs) }
func (i Add) String() string       { return fmt.Sprintf("%s = Add %s, %s", i.Dst, i.Left, i.Right) }
func (i FillEmpty) String() string {
	return fmt.Sprintf("%s = FillEmpty %s, %s", i.Dst, i.Left, i.Right)
}
func (i Eq) String() string { return fmt.Sprintf("%s = Eq %s, %s", i.Dst, i.Left, i.Right) }
func (i Test) String() string   { return fmt.Sprintf("%s %s", i.Kind, i.Reg) }
func (i TestEq) String() string { return fmt.Sprintf("TestEq %s, %s", i.Left, i.Right) }
func (i Jmp) String() string    { return fmt.Sprintf("Jmp %s", i.Label) }
func (i Label) String() string  { return fmt.Sprintf("%s:", i.Name) }

// GetDest returns the instruction's destination temp, if it has one.
// Test, TestEq, Jmp, and Label have no destination.
func GetDest(instr Instr) (TempId, bool) {
	switch i := instr.(type) {
	case LoadConst:
		return i.Dst, true
	case LoadSlot:
		return i.Dst, true
	case Move:
		return i.Dst, true
	case MovePhi:
		return i.Dst, true
	case Add:
		return i.Dst, true
	case FillEmpty:
		return i.Dst, true
	case Eq:
		return i.Dst, true
	default:
		return 0, false
	}
}

// CompilationResult is the output of lowering one expression: the temp
// holding the expression's value and the flat instruction sequence that
// computes it.
type CompilationResult struct {
	Result       TempId
	Instructions []Instr
}

// Append concatenates another result's instructions onto this one. It
// does not touch Result; callers set that explicitly once the final
// defining instruction has been appended.
func (r *CompilationResult) Append(other CompilationResult) {
	r.Instructions = append(r.Instructions, other.Instructions...)
}

// Emit appends a single instruction.
func (r *CompilationResult) Emit(instr Instr) {
	r.Instructions = append(r.Instructions, instr)
}
