/*
   RV32 - Tests for instruction decoders.

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

package isa

import (
	"math/rand"
	"testing"
)

const testWords = 10000

// Reference immediate formulas built bit by bit from the canonical
// RISC-V layouts, independent of the shift tricks in the decoders.
func bit(word uint32, n uint) uint32 {
	return (word >> n) & 1
}

func refSignExtend(v uint32, signBit uint) int32 {
	if bit(v, signBit) != 0 {
		v |= ^uint32(0) << signBit
	}
	return int32(v)
}

func refImmI(word uint32) int32 {
	return refSignExtend((word>>20)&0xfff, 11)
}

func refImmS(word uint32) int32 {
	v := ((word>>25)&0x7f)<<5 | (word>>7)&0x1f
	return refSignExtend(v, 11)
}

func refImmB(word uint32) int32 {
	v := bit(word, 31)<<12 | bit(word, 7)<<11 |
		((word>>25)&0x3f)<<5 | ((word>>8)&0xf)<<1
	return refSignExtend(v, 12)
}

func refImmU(word uint32) int32 {
	return int32(word & 0xfffff000)
}

func refImmJ(word uint32) int32 {
	v := bit(word, 31)<<20 | ((word>>12)&0xff)<<12 |
		bit(word, 20)<<11 | ((word>>21)&0x3ff)<<1
	return refSignExtend(v, 20)
}

// Check field accessors against plain masks.
func TestFields(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	for range testWords {
		word := rnd.Uint32()
		i := Instr(word)
		if r := i.Opcode(); r != uint8(word&0x7f) {
			t.Errorf("Opcode of %08x not correct got: %02x expected: %02x", word, r, word&0x7f)
		}
		if r := i.Funct3(); r != uint8((word>>12)&0x7) {
			t.Errorf("Funct3 of %08x not correct got: %x expected: %x", word, r, (word>>12)&0x7)
		}
		if r := i.Funct7(); r != uint8((word>>25)&0x7f) {
			t.Errorf("Funct7 of %08x not correct got: %02x expected: %02x", word, r, (word>>25)&0x7f)
		}
		if r := i.Rd(); r != uint8((word>>7)&0x1f) {
			t.Errorf("Rd of %08x not correct got: %d expected: %d", word, r, (word>>7)&0x1f)
		}
		if r := i.Rs1(); r != uint8((word>>15)&0x1f) {
			t.Errorf("Rs1 of %08x not correct got: %d expected: %d", word, r, (word>>15)&0x1f)
		}
		if r := i.Rs2(); r != uint8((word>>20)&0x1f) {
			t.Errorf("Rs2 of %08x not correct got: %d expected: %d", word, r, (word>>20)&0x1f)
		}
		if r := i.Csr(); r != uint16((word>>20)&0xfff) {
			t.Errorf("Csr of %08x not correct got: %03x expected: %03x", word, r, (word>>20)&0xfff)
		}
	}
}

// Check immediate decoders against the reference formulas over random
// instruction words.
func TestImmediates(t *testing.T) {
	rnd := rand.New(rand.NewSource(2))
	for range testWords {
		word := rnd.Uint32()
		i := Instr(word)
		if r := i.ImmI(); r != refImmI(word) {
			t.Errorf("ImmI of %08x not correct got: %d expected: %d", word, r, refImmI(word))
		}
		if r := i.ImmS(); r != refImmS(word) {
			t.Errorf("ImmS of %08x not correct got: %d expected: %d", word, r, refImmS(word))
		}
		if r := i.ImmB(); r != refImmB(word) {
			t.Errorf("ImmB of %08x not correct got: %d expected: %d", word, r, refImmB(word))
		}
		if r := i.ImmU(); r != refImmU(word) {
			t.Errorf("ImmU of %08x not correct got: %d expected: %d", word, r, refImmU(word))
		}
		if r := i.ImmJ(); r != refImmJ(word) {
			t.Errorf("ImmJ of %08x not correct got: %d expected: %d", word, r, refImmJ(word))
		}
	}
}

// Known encodings from the architecture manual.
func TestImmediatesKnown(t *testing.T) {
	// addi a0, zero, 0
	i := Instr(0x00000513)
	if i.Opcode() != OpImm || i.Rd() != 10 || i.Rs1() != 0 || i.ImmI() != 0 {
		t.Errorf("decode of addi a0,zero,0 not correct: %+v", i)
	}
	// addi a1, a0, 16
	i = Instr(0x01050593)
	if i.Rd() != 11 || i.Rs1() != 10 || i.ImmI() != 16 {
		t.Errorf("decode of addi a1,a0,16 not correct: %+v", i)
	}
	// lw ra, -1(zero)
	i = Instr(0xFFF02083)
	if i.Opcode() != OpLoad || i.Rd() != 1 || i.ImmI() != -1 {
		t.Errorf("decode of lw ra,-1(zero) not correct: imm got: %d expected: -1", i.ImmI())
	}
	// jal ra, +8
	i = Instr(0x008000EF)
	if i.Opcode() != OpJal || i.Rd() != 1 || i.ImmJ() != 8 {
		t.Errorf("decode of jal ra,+8 not correct: imm got: %d expected: 8", i.ImmJ())
	}
	// beq a0, zero, +8
	i = Instr(0x00050463)
	if i.Opcode() != OpBranch || i.Rs1() != 10 || i.Rs2() != 0 || i.ImmB() != 8 {
		t.Errorf("decode of beq a0,zero,+8 not correct: imm got: %d expected: 8", i.ImmB())
	}
	// lui ra, 0xDEADC
	i = Instr(0xDEADC0B7)
	if i.Opcode() != OpLui || i.Rd() != 1 || uint32(i.ImmU()) != 0xDEADC000 {
		t.Errorf("decode of lui ra,0xDEADC not correct: imm got: %08x expected: %08x", uint32(i.ImmU()), uint32(0xDEADC000))
	}
}

// Encoding each format from random fields and re-decoding must yield
// the same fields for everything the format carries.
func TestEncodeRoundTrip(t *testing.T) {
	rnd := rand.New(rand.NewSource(3))
	for range testWords {
		rd := uint8(rnd.Intn(32))
		rs1 := uint8(rnd.Intn(32))
		rs2 := uint8(rnd.Intn(32))
		funct3 := uint8(rnd.Intn(8))
		funct7 := uint8(rnd.Intn(128))

		r := EncodeR(OpReg, funct3, funct7, rd, rs1, rs2)
		if r.Rd() != rd || r.Rs1() != rs1 || r.Rs2() != rs2 ||
			r.Funct3() != funct3 || r.Funct7() != funct7 {
			t.Errorf("R round trip failed for %08x", r.Word())
		}

		immI := int32(rnd.Intn(4096)) - 2048
		i := EncodeI(OpImm, funct3, rd, rs1, immI)
		if i.Rd() != rd || i.Rs1() != rs1 || i.ImmI() != immI {
			t.Errorf("I round trip failed: imm got: %d expected: %d", i.ImmI(), immI)
		}

		immS := int32(rnd.Intn(4096)) - 2048
		s := EncodeS(OpStore, funct3, rs1, rs2, immS)
		if s.Rs1() != rs1 || s.Rs2() != rs2 || s.ImmS() != immS {
			t.Errorf("S round trip failed: imm got: %d expected: %d", s.ImmS(), immS)
		}

		immB := (int32(rnd.Intn(8192)) - 4096) &^ 1
		b := EncodeB(OpBranch, funct3, rs1, rs2, immB)
		if b.Rs1() != rs1 || b.Rs2() != rs2 || b.ImmB() != immB {
			t.Errorf("B round trip failed: imm got: %d expected: %d", b.ImmB(), immB)
		}

		immU := rnd.Int31() &^ 0xfff
		u := EncodeU(OpLui, rd, immU)
		if u.Rd() != rd || u.ImmU() != immU {
			t.Errorf("U round trip failed: imm got: %d expected: %d", u.ImmU(), immU)
		}

		immJ := (int32(rnd.Intn(1<<21)) - (1 << 20)) &^ 1
		j := EncodeJ(OpJal, rd, immJ)
		if j.Rd() != rd || j.ImmJ() != immJ {
			t.Errorf("J round trip failed: imm got: %d expected: %d", j.ImmJ(), immJ)
		}
	}
}

func TestPrivilegeMode(t *testing.T) {
	if PrivilegeFromBits(0b00) != User {
		t.Error("PrivilegeFromBits(00) not User")
	}
	if PrivilegeFromBits(0b01) != Supervisor {
		t.Error("PrivilegeFromBits(01) not Supervisor")
	}
	if PrivilegeFromBits(0b11) != Machine {
		t.Error("PrivilegeFromBits(11) not Machine")
	}
	defer func() {
		if recover() == nil {
			t.Error("PrivilegeFromBits(10) did not panic")
		}
	}()
	PrivilegeFromBits(0b10)
}

func TestRegNames(t *testing.T) {
	names := map[uint8]string{0: "zero", 1: "ra", 2: "sp", 10: "a0", 31: "t6"}
	for idx, want := range names {
		if r := RegName(idx); r != want {
			t.Errorf("RegName(%d) not correct got: %s expected: %s", idx, r, want)
		}
	}
}
