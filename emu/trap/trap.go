/*
   RV32 - Trap taxonomy.

   Copyright (c) 2025, Richard Cornwell

   Permission is hereby granted, free of charge, to any person obtaining a
   copy of this software and associated documentation files (the "Software"),
   to deal in the Software without restriction, including without limitation
   the rights to use, copy, modify, merge, publish, distribute, sublicense,
   and/or sell copies of the Software, and to permit persons to whom the
   Software is furnished to do so, subject to the following conditions:

   The above copyright notice and this permission notice shall be included in
   all copies or substantial portions of the Software.

   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.  IN NO EVENT SHALL
   RICHARD CORNWELL BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
   IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
   CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.

*/

// Package trap models the synchronous exceptions the CPU can raise.
// A trap is a flat tagged value carrying its mcause code and mtval
// payload, matching the hardware split rather than an error hierarchy.
package trap

import (
	"fmt"

	"github.com/rcornwell/RV32/emu/isa"
)

// Kind tags the trap variants.
type Kind uint8

const (
	KindIllegalInstruction Kind = iota
	KindLoadAccessFault
	KindStoreAccessFault
	KindEnvironmentCall
)

// mcause codes.
const (
	CauseIllegalInstruction uint32 = 2
	CauseLoadAccessFault    uint32 = 5
	CauseStoreAccessFault   uint32 = 7
	CauseEcallBase          uint32 = 8 // plus the numeric privilege mode
)

// Trap is one raised exception. The zero value is not a valid trap;
// use the constructors.
type Trap struct {
	kind  Kind
	value uint32
	mode  isa.PrivilegeMode
}

// IllegalInstruction traps on an unrecognized or malformed encoding.
// mtval carries the raw instruction word.
func IllegalInstruction(word uint32) *Trap {
	return &Trap{kind: KindIllegalInstruction, value: word}
}

// LoadAccessFault traps a failed load. mtval carries the faulting
// address.
func LoadAccessFault(addr uint32) *Trap {
	return &Trap{kind: KindLoadAccessFault, value: addr}
}

// StoreAccessFault traps a failed store. mtval carries the faulting
// address.
func StoreAccessFault(addr uint32) *Trap {
	return &Trap{kind: KindStoreAccessFault, value: addr}
}

// EnvironmentCall traps an ECALL from the given privilege mode.
// mtval is zero.
func EnvironmentCall(mode isa.PrivilegeMode) *Trap {
	return &Trap{kind: KindEnvironmentCall, mode: mode}
}

// Kind returns the trap tag.
func (t *Trap) Kind() Kind {
	return t.kind
}

// Cause returns the mcause code.
func (t *Trap) Cause() uint32 {
	switch t.kind {
	case KindIllegalInstruction:
		return CauseIllegalInstruction
	case KindLoadAccessFault:
		return CauseLoadAccessFault
	case KindStoreAccessFault:
		return CauseStoreAccessFault
	case KindEnvironmentCall:
		return CauseEcallBase + uint32(t.mode)
	}
	panic(fmt.Sprintf("trap: invalid kind %d", t.kind))
}

// Value returns the mtval payload.
func (t *Trap) Value() uint32 {
	if t.kind == KindEnvironmentCall {
		return 0
	}
	return t.value
}

func (t *Trap) String() string {
	switch t.kind {
	case KindIllegalInstruction:
		return fmt.Sprintf("illegal instruction %08x", t.value)
	case KindLoadAccessFault:
		return fmt.Sprintf("load access fault at %08x", t.value)
	case KindStoreAccessFault:
		return fmt.Sprintf("store access fault at %08x", t.value)
	case KindEnvironmentCall:
		return fmt.Sprintf("environment call from %v mode", t.mode)
	}
	return fmt.Sprintf("trap(%d)", t.kind)
}
