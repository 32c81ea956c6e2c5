package ir

import (
	"testing"

	"exprvm/internal/value"
)

func TestFindDefinition(t *testing.T) {
	result := &CompilationResult{Instructions: []Instr{
		LoadConst{Dst: 0, Value: value.Int(1)},
		LoadConst{Dst: 1, Value: value.Int(2)},
		Add{Dst: 2, Left: 0, Right: 1},
	}}
	if idx := FindDefinition(result, 1); idx != 1 {
		t.Errorf("FindDefinition(1) = %d, want 1", idx)
	}
	if idx := FindDefinition(result, 99); idx != -1 {
		t.Errorf("FindDefinition(99) = %d, want -1", idx)
	}
}

func TestIsTempReadAndLive(t *testing.T) {
	result := &CompilationResult{
		Result: 2,
		Instructions: []Instr{
			LoadConst{Dst: 0, Value: value.Int(1)}, // 0
			LoadConst{Dst: 1, Value: value.Int(2)}, // 1
			Add{Dst: 2, Left: 0, Right: 1},          // 2
		},
	}
	if !IsTempRead(result, 0, 0) {
		t.Error("temp 0 should be read by the Add")
	}
	if IsTempRead(result, 0, 3) {
		t.Error("temp 0 should not be read past the end")
	}
	if !IsTempLive(result, 1, 0) {
		t.Error("temp 1 should be live after instruction 0")
	}
	if IsTempLive(result, 1, 2) {
		t.Error("temp 1 should be dead after its only read")
	}
}

func TestComputeConstraints(t *testing.T) {
	result := &CompilationResult{Instructions: []Instr{
		LoadConst{Dst: 0, Value: value.Nothing()},
		LoadConst{Dst: 1, Value: value.Int(5)},
		Add{Dst: 2, Left: 0, Right: 1},
		FillEmpty{Dst: 3, Left: 1, Right: 0},
		Move{Dst: 4, Src: 1},
		MovePhi{Dst: 5, Srcs: []TempId{0, 1}},
	}}
	c := ComputeConstraints(result)
	if !c[0].CanBeNothing {
		t.Error("LoadConst Nothing should be canBeNothing")
	}
	if c[1].CanBeNothing {
		t.Error("LoadConst Int should not be canBeNothing")
	}
	if !c[2].CanBeNothing {
		t.Error("Add is always conservatively canBeNothing")
	}
	if !c[3].CanBeNothing {
		t.Error("FillEmpty(l=1, r=0) should take right's constraint, true")
	}
	if c[4].CanBeNothing {
		t.Error("Move should inherit source's constraint")
	}
	if !c[5].CanBeNothing {
		t.Error("MovePhi should OR all sources, and src 0 can be nothing")
	}
}
