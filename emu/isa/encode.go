/*
   RV32 - Instruction format encoders.

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

// Encoders for the six instruction formats. These are the inverse of the
// Imm* and field accessors and exist so tests and tools can construct
// programs without hand assembling bit patterns. Immediates are taken
// modulo the field width; register indexes modulo 32.

// EncodeR builds an R format instruction.
func EncodeR(opcode, funct3, funct7, rd, rs1, rs2 uint8) Instr {
	return Instr(uint32(opcode&0x7f) |
		uint32(rd&0x1f)<<7 |
		uint32(funct3&0x7)<<12 |
		uint32(rs1&0x1f)<<15 |
		uint32(rs2&0x1f)<<20 |
		uint32(funct7&0x7f)<<25)
}

// EncodeI builds an I format instruction.
func EncodeI(opcode, funct3, rd, rs1 uint8, imm int32) Instr {
	return Instr(uint32(opcode&0x7f) |
		uint32(rd&0x1f)<<7 |
		uint32(funct3&0x7)<<12 |
		uint32(rs1&0x1f)<<15 |
		(uint32(imm)&0xfff)<<20)
}

// EncodeS builds an S format instruction.
func EncodeS(opcode, funct3, rs1, rs2 uint8, imm int32) Instr {
	v := uint32(imm)
	return Instr(uint32(opcode&0x7f) |
		(v&0x1f)<<7 |
		uint32(funct3&0x7)<<12 |
		uint32(rs1&0x1f)<<15 |
		uint32(rs2&0x1f)<<20 |
		((v>>5)&0x7f)<<25)
}

// EncodeB builds a B format instruction. Bit 0 of the immediate is
// dropped, as the format cannot carry it.
func EncodeB(opcode, funct3, rs1, rs2 uint8, imm int32) Instr {
	v := uint32(imm)
	return Instr(uint32(opcode&0x7f) |
		((v>>11)&0x1)<<7 |
		((v>>1)&0xf)<<8 |
		uint32(funct3&0x7)<<12 |
		uint32(rs1&0x1f)<<15 |
		uint32(rs2&0x1f)<<20 |
		((v>>5)&0x3f)<<25 |
		((v>>12)&0x1)<<31)
}

// EncodeU builds a U format instruction. The low twelve immediate bits
// are dropped.
func EncodeU(opcode, rd uint8, imm int32) Instr {
	return Instr(uint32(opcode&0x7f) |
		uint32(rd&0x1f)<<7 |
		uint32(imm)&0xfffff000)
}

// EncodeJ builds a J format instruction. Bit 0 of the immediate is
// dropped.
func EncodeJ(opcode, rd uint8, imm int32) Instr {
	v := uint32(imm)
	return Instr(uint32(opcode&0x7f) |
		uint32(rd&0x1f)<<7 |
		((v>>12)&0xff)<<12 |
		((v>>11)&0x1)<<20 |
		((v>>1)&0x3ff)<<21 |
		((v>>20)&0x1)<<31)
}
