/*
   RV32 - Instruction disassembler.

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

// Package disassemble renders RV32I and Zicsr instruction words as
// one line of assembler, for the console and the trace log.
package disassemble

import (
	"fmt"

	"github.com/rcornwell/RV32/emu/isa"
)

var csrNames = map[uint16]string{
	0x300: "mstatus",
	0x301: "misa",
	0x304: "mie",
	0x305: "mtvec",
	0x340: "mscratch",
	0x341: "mepc",
	0x342: "mcause",
	0x343: "mtval",
	0x344: "mip",
	0x180: "satp",
	0xB00: "mcycle",
	0xB02: "minstret",
}

func csrName(addr uint16) string {
	if name, ok := csrNames[addr]; ok {
		return name
	}
	return fmt.Sprintf("0x%03x", addr)
}

// Disassemble renders one instruction word fetched from pc. Branch
// and jump targets are shown as absolute addresses. Unrecognized
// words render as .word with their hex value.
func Disassemble(word uint32, pc uint32) string {
	i := isa.Instr(word)
	rd := isa.RegName(i.Rd())
	rs1 := isa.RegName(i.Rs1())
	rs2 := isa.RegName(i.Rs2())

	switch i.Opcode() {
	case isa.OpImm:
		return disOpImm(i, rd, rs1)

	case isa.OpReg:
		return disOpReg(i, rd, rs1, rs2)

	case isa.OpLui:
		return fmt.Sprintf("lui %s, 0x%x", rd, uint32(i.ImmU())>>12)

	case isa.OpAuipc:
		return fmt.Sprintf("auipc %s, 0x%x", rd, uint32(i.ImmU())>>12)

	case isa.OpJal:
		if i.Rd() == 0 {
			return fmt.Sprintf("j 0x%08x", pc+uint32(i.ImmJ()))
		}
		return fmt.Sprintf("jal %s, 0x%08x", rd, pc+uint32(i.ImmJ()))

	case isa.OpJalr:
		return fmt.Sprintf("jalr %s, %d(%s)", rd, i.ImmI(), rs1)

	case isa.OpBranch:
		name := [8]string{"beq", "bne", "", "", "blt", "bge", "bltu", "bgeu"}[i.Funct3()]
		if name == "" {
			break
		}
		return fmt.Sprintf("%s %s, %s, 0x%08x", name, rs1, rs2, pc+uint32(i.ImmB()))

	case isa.OpLoad:
		name := [8]string{"lb", "lh", "lw", "", "lbu", "lhu", "", ""}[i.Funct3()]
		if name == "" {
			break
		}
		return fmt.Sprintf("%s %s, %d(%s)", name, rd, i.ImmI(), rs1)

	case isa.OpStore:
		name := [8]string{"sb", "sh", "sw", "", "", "", "", ""}[i.Funct3()]
		if name == "" {
			break
		}
		return fmt.Sprintf("%s %s, %d(%s)", name, rs2, i.ImmS(), rs1)

	case isa.OpSystem:
		return disSystem(i, rd, rs1)
	}
	return fmt.Sprintf(".word 0x%08x", word)
}

func disOpImm(i isa.Instr, rd, rs1 string) string {
	switch i.Funct3() {
	case isa.AluAdd:
		if i.Word() == 0x00000013 {
			return "nop"
		}
		return fmt.Sprintf("addi %s, %s, %d", rd, rs1, i.ImmI())
	case isa.AluSlt:
		return fmt.Sprintf("slti %s, %s, %d", rd, rs1, i.ImmI())
	case isa.AluSltu:
		return fmt.Sprintf("sltiu %s, %s, %d", rd, rs1, i.ImmI())
	case isa.AluXor:
		return fmt.Sprintf("xori %s, %s, %d", rd, rs1, i.ImmI())
	case isa.AluOr:
		return fmt.Sprintf("ori %s, %s, %d", rd, rs1, i.ImmI())
	case isa.AluAnd:
		return fmt.Sprintf("andi %s, %s, %d", rd, rs1, i.ImmI())
	case isa.AluSll:
		if i.Funct7() != isa.Funct7Base {
			break
		}
		return fmt.Sprintf("slli %s, %s, %d", rd, rs1, i.ImmI()&0x1f)
	case isa.AluSrl:
		switch i.Funct7() {
		case isa.Funct7Alt:
			return fmt.Sprintf("srai %s, %s, %d", rd, rs1, i.ImmI()&0x1f)
		case isa.Funct7Base:
			return fmt.Sprintf("srli %s, %s, %d", rd, rs1, i.ImmI()&0x1f)
		}
	}
	return fmt.Sprintf(".word 0x%08x", i.Word())
}

func disOpReg(i isa.Instr, rd, rs1, rs2 string) string {
	alt := i.Funct7() == isa.Funct7Alt
	if i.Funct7() != isa.Funct7Base && !(alt && (i.Funct3() == isa.AluAdd || i.Funct3() == isa.AluSrl)) {
		return fmt.Sprintf(".word 0x%08x", i.Word())
	}
	var name string
	switch i.Funct3() {
	case isa.AluAdd:
		name = "add"
		if alt {
			name = "sub"
		}
	case isa.AluSll:
		name = "sll"
	case isa.AluSlt:
		name = "slt"
	case isa.AluSltu:
		name = "sltu"
	case isa.AluXor:
		name = "xor"
	case isa.AluSrl:
		name = "srl"
		if alt {
			name = "sra"
		}
	case isa.AluOr:
		name = "or"
	case isa.AluAnd:
		name = "and"
	}
	return fmt.Sprintf("%s %s, %s, %s", name, rd, rs1, rs2)
}

func disSystem(i isa.Instr, rd, rs1 string) string {
	switch i.Funct3() {
	case isa.SysPriv:
		switch uint32(i.ImmI()) & 0xfff {
		case isa.PrivEcall:
			return "ecall"
		case isa.PrivMret:
			return "mret"
		}
	case isa.SysCsrw:
		return fmt.Sprintf("csrrw %s, %s, %s", rd, csrName(i.Csr()), rs1)
	case isa.SysCsrs:
		return fmt.Sprintf("csrrs %s, %s, %s", rd, csrName(i.Csr()), rs1)
	case isa.SysCsrc:
		return fmt.Sprintf("csrrc %s, %s, %s", rd, csrName(i.Csr()), rs1)
	}
	return fmt.Sprintf(".word 0x%08x", i.Word())
}
