package value

import "testing"

func TestConstructors(t *testing.T) {
	if got := Int(7); got.Tag != TagInt || got.Val != 7 {
		t.Errorf("Int(7) = %+v", got)
	}
	if got := Bool(true); got.Tag != TagBool || got.Val != 1 {
		t.Errorf("Bool(true) = %+v", got)
	}
	if got := Bool(false); got.Tag != TagBool || got.Val != 0 {
		t.Errorf("Bool(false) = %+v", got)
	}
	if got := Nothing(); got.Tag != TagNothing || got.Val != 0 {
		t.Errorf("Nothing() = %+v", got)
	}
}

func TestTruthyAndNothing(t *testing.T) {
	if !Int(1).Truthy() {
		t.Error("Int(1) should be truthy")
	}
	if Int(0).Truthy() {
		t.Error("Int(0) should not be truthy")
	}
	if !Nothing().IsNothing() {
		t.Error("Nothing() should report IsNothing")
	}
	if Int(0).IsNothing() {
		t.Error("Int(0) should not report IsNothing")
	}
}

func TestEqualIsFieldwise(t *testing.T) {
	if !Int(5).Equal(Int(5)) {
		t.Error("Int(5) should equal Int(5)")
	}
	if Int(5).Equal(Bool(true)) {
		t.Error("Int(5) should not equal Bool(true) despite equal payload")
	}
	if Nothing().Equal(Int(0)) {
		t.Error("Nothing should not equal Int(0)")
	}
}

func TestSlot(t *testing.T) {
	s := NewSlot(Int(1))
	if s.Get() != Int(1) {
		t.Fatalf("unexpected initial slot value: %+v", s.Get())
	}
	s.Set(Int(2))
	if s.Get() != Int(2) {
		t.Fatalf("slot did not update: %+v", s.Get())
	}
}
