package errors

import (
	"strings"
	"testing"
)

func TestRaisePanicsWithFault(t *testing.T) {
	defer func() {
		r := recover()
		f, ok := r.(*Fault)
		if !ok {
			t.Fatalf("expected *Fault, got %T", r)
		}
		if f.Code != FaultRegisterOverflow {
			t.Errorf("Code = %s, want %s", f.Code, FaultRegisterOverflow)
		}
		if f.Stage != "assemble" {
			t.Errorf("Stage = %s, want assemble", f.Stage)
		}
	}()
	Raise("assemble", FaultRegisterOverflow, "need %d registers", 300)
}

func TestReporterFormat(t *testing.T) {
	f := &Fault{Code: FaultUnknownCall, Stage: "lower", Message: "unknown function foo"}
	out := NewReporter().Format(f)
	if !strings.Contains(out, FaultUnknownCall) {
		t.Errorf("formatted output missing code: %s", out)
	}
	if !strings.Contains(out, "unknown function foo") {
		t.Errorf("formatted output missing message: %s", out)
	}
}

func TestReporterRecoverReturnsNilWhenNoPanic(t *testing.T) {
	if err := NewReporter().Recover(nil); err != nil {
		t.Errorf("Recover(nil) = %v, want nil", err)
	}
}

func TestReporterRecoverRepanicsNonFault(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected re-panic for non-Fault value")
		}
	}()
	NewReporter().Recover("not a fault")
}
