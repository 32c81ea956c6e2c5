// Package value implements the tagged dynamic value cell the rest of the
// pipeline operates on: integers, booleans, a distinguished "nothing"
// value, and externally-owned slots.
package value

import "fmt"

// Tag identifies which alternative a Value cell currently holds.
type Tag uint8

const (
	TagNothing Tag = iota
	TagInt
	TagBool
	TagSlot
)

func (t Tag) String() string {
	switch t {
	case TagNothing:
		return "Nothing"
	case TagInt:
		return "Int"
	case TagBool:
		return "Bool"
	case TagSlot:
		return "Slot"
	default:
		return fmt.Sprintf("Tag(%d)", uint8(t))
	}
}

// Value is the 16-byte (conceptually; Go does not pack it that tightly)
// tagged cell every register and constant-pool entry holds. It is
// trivially copyable: assignment duplicates the cell, never aliases it.
type Value struct {
	Val   uint64
	Tag   Tag
	Owned bool // reserved for future heap-owned values; always false today
}

// Int constructs an Int-tagged value from a signed payload.
func Int(v int64) Value {
	return Value{Val: uint64(v), Tag: TagInt}
}

// Bool constructs a Bool-tagged value.
func Bool(b bool) Value {
	var v uint64
	if b {
		v = 1
	}
	return Value{Val: v, Tag: TagBool}
}

// Nothing constructs the distinguished nothing value.
func Nothing() Value {
	return Value{Tag: TagNothing}
}

// FromSlotIndex constructs a Slot-tagged value pointing at slotIdx in a
// program's slot table. The payload is an index rather than a Go pointer
// value so it survives being copied through a constant pool like any
// other cell.
func FromSlotIndex(slotIdx int) Value {
	return Value{Val: uint64(slotIdx), Tag: TagSlot}
}

// Truthy reports whether the value is truthy: a nonzero payload. Callers
// are expected to have already ruled out TagNothing via IsNothing.
func (v Value) Truthy() bool {
	return v.Val != 0
}

// IsNothing reports whether v is the distinguished nothing value.
func (v Value) IsNothing() bool {
	return v.Tag == TagNothing
}

// Equal is field-wise structural equality on (Val, Tag, Owned).
func (v Value) Equal(o Value) bool {
	return v == o
}

func (v Value) String() string {
	if v.Tag == TagNothing {
		return "Nothing"
	}
	return fmt.Sprintf("%s(%d)", v.Tag, v.Val)
}

// Slot is an externally-owned holder of one value cell. The embedder
// creates slots, mutates them between runs, and is responsible for
// keeping a slot alive for at least as long as any program that
// references it.
type Slot struct {
	Data Value
}

// NewSlot creates a slot holding the given initial value.
func NewSlot(v Value) *Slot {
	return &Slot{Data: v}
}

// Set replaces the slot's current value.
func (s *Slot) Set(v Value) {
	s.Data = v
}

// Get returns the slot's current value.
func (s *Slot) Get() Value {
	return s.Data
}
