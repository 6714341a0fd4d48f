/*
   RV32 - Instruction word and format decoders.

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

// Package isa holds the RV32I instruction encodings.
//
// Every RV32I instruction is a 32 bit word in one of six formats:
//
//	R: | funct7 | rs2 | rs1 | funct3 | rd | opcode |
//	I: |    imm[11:0]       | rs1 | funct3 | rd | opcode |
//	S: | imm[11:5] | rs2 | rs1 | funct3 | imm[4:0] | opcode |
//	B: | imm[12|10:5] | rs2 | rs1 | funct3 | imm[4:1|11] | opcode |
//	U: |           imm[31:12]             | rd | opcode |
//	J: | imm[20|10:1|11|19:12]            | rd | opcode |
//
// All immediates are sign extended except the U immediate, whose low
// twelve bits are zero. Decoding is pure bit manipulation; the signed
// results may be cast back to uint32 for address arithmetic.
package isa

// Size in bytes of every RV32I instruction.
const InstructionSize = 4

// Major opcodes (bits 6:0).
const (
	OpLoad   uint8 = 0b0000011
	OpImm    uint8 = 0b0010011
	OpAuipc  uint8 = 0b0010111
	OpStore  uint8 = 0b0100011
	OpReg    uint8 = 0b0110011
	OpLui    uint8 = 0b0110111
	OpBranch uint8 = 0b1100011
	OpJalr   uint8 = 0b1100111
	OpJal    uint8 = 0b1101111
	OpSystem uint8 = 0b1110011
)

// funct3 values for OP_IMM and OP_REG.
const (
	AluAdd  uint8 = 0b000 // ADDI, ADD/SUB
	AluSll  uint8 = 0b001
	AluSlt  uint8 = 0b010
	AluSltu uint8 = 0b011
	AluXor  uint8 = 0b100
	AluSrl  uint8 = 0b101 // SRLI/SRAI, SRL/SRA
	AluOr   uint8 = 0b110
	AluAnd  uint8 = 0b111
)

// funct3 values for BRANCH.
const (
	BranchEq  uint8 = 0b000
	BranchNe  uint8 = 0b001
	BranchLt  uint8 = 0b100
	BranchGe  uint8 = 0b101
	BranchLtu uint8 = 0b110
	BranchGeu uint8 = 0b111
)

// funct3 values for LOAD and STORE.
const (
	MemByte  uint8 = 0b000 // LB, SB
	MemHalf  uint8 = 0b001 // LH, SH
	MemWord  uint8 = 0b010 // LW, SW
	MemByteU uint8 = 0b100 // LBU
	MemHalfU uint8 = 0b101 // LHU
)

// funct3 values for SYSTEM.
const (
	SysPriv uint8 = 0b000 // ECALL, MRET
	SysCsrw uint8 = 0b001
	SysCsrs uint8 = 0b010
	SysCsrc uint8 = 0b011
)

// funct12 values for the privileged SYSTEM group.
const (
	PrivEcall uint32 = 0x000
	PrivMret  uint32 = 0x302
)

// funct7 selectors for the two-function ALU rows.
const (
	Funct7Base uint8 = 0x00 // ADD, SRL
	Funct7Alt  uint8 = 0x20 // SUB, SRA
)

// Instr is a raw 32 bit instruction word.
type Instr uint32

// Word returns the raw instruction word.
func (i Instr) Word() uint32 {
	return uint32(i)
}

// Opcode returns bits 6:0.
func (i Instr) Opcode() uint8 {
	return uint8(i & 0x7f)
}

// Funct3 returns bits 14:12.
func (i Instr) Funct3() uint8 {
	return uint8((i >> 12) & 0x07)
}

// Funct7 returns bits 31:25.
func (i Instr) Funct7() uint8 {
	return uint8((i >> 25) & 0x7f)
}

// Rd returns the destination register, bits 11:7.
func (i Instr) Rd() uint8 {
	return uint8((i >> 7) & 0x1f)
}

// Rs1 returns the first source register, bits 19:15.
func (i Instr) Rs1() uint8 {
	return uint8((i >> 15) & 0x1f)
}

// Rs2 returns the second source register, bits 24:20.
func (i Instr) Rs2() uint8 {
	return uint8((i >> 20) & 0x1f)
}

// ImmI returns the I format immediate, bits 31:20 sign extended.
func (i Instr) ImmI() int32 {
	return int32(i) >> 20
}

// ImmS returns the S format immediate, {bits 31:25, bits 11:7}
// sign extended from bit 11.
func (i Instr) ImmS() int32 {
	imm := uint32((i>>25)&0x7f)<<5 | uint32((i>>7)&0x1f)
	return (int32(imm) << 20) >> 20
}

// ImmB returns the B format immediate, {bit 31, bit 7, bits 30:25,
// bits 11:8, 0} sign extended from bit 12.
func (i Instr) ImmB() int32 {
	imm := uint32((i>>31)&0x1)<<12 |
		uint32((i>>7)&0x1)<<11 |
		uint32((i>>25)&0x3f)<<5 |
		uint32((i>>8)&0xf)<<1
	return (int32(imm) << 19) >> 19
}

// ImmU returns the U format immediate, bits 31:12 with the low twelve
// bits zero.
func (i Instr) ImmU() int32 {
	return int32(i) & ^int32(0xfff)
}

// ImmJ returns the J format immediate, {bit 31, bits 19:12, bit 20,
// bits 30:21, 0} sign extended from bit 20.
func (i Instr) ImmJ() int32 {
	imm := uint32((i>>31)&0x1)<<20 |
		uint32((i>>12)&0xff)<<12 |
		uint32((i>>20)&0x1)<<11 |
		uint32((i>>21)&0x3ff)<<1
	return (int32(imm) << 11) >> 11
}

// Csr returns the CSR address held in bits 31:20 of a Zicsr
// instruction, without sign extension.
func (i Instr) Csr() uint16 {
	return uint16((i >> 20) & 0xfff)
}
