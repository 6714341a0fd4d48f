/*
   CPU: instruction execution.

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

package cpu

import (
	"github.com/rcornwell/RV32/emu/isa"
	"github.com/rcornwell/RV32/emu/trap"
)

// execute dispatches one decoded instruction. Arithmetic wraps
// modulo 2^32 throughout; overflow is never a trap. Anything the
// dispatch does not recognize is an illegal instruction carrying the
// raw word.
func (c *CPU) execute(instr isa.Instr) *trap.Trap {
	switch instr.Opcode() {
	case isa.OpImm:
		return c.execOpImm(instr)

	case isa.OpReg:
		return c.execOpReg(instr)

	case isa.OpLui:
		c.regs.Write(instr.Rd(), uint32(instr.ImmU()))
		return nil

	case isa.OpAuipc:
		c.regs.Write(instr.Rd(), c.pc+uint32(instr.ImmU()))
		return nil

	case isa.OpJal:
		c.regs.Write(instr.Rd(), c.pc+isa.InstructionSize)
		c.nextPC = c.pc + uint32(instr.ImmJ())
		return nil

	case isa.OpJalr:
		// Read rs1 before the link write; rd and rs1 may be the
		// same register.
		target := (c.regs.Read(instr.Rs1()) + uint32(instr.ImmI())) &^ 1
		c.regs.Write(instr.Rd(), c.pc+isa.InstructionSize)
		c.nextPC = target
		return nil

	case isa.OpBranch:
		return c.execBranch(instr)

	case isa.OpLoad:
		return c.execLoad(instr)

	case isa.OpStore:
		return c.execStore(instr)

	case isa.OpSystem:
		return c.execSystem(instr)
	}
	return trap.IllegalInstruction(instr.Word())
}

// execOpImm handles register immediate ALU operations. The shift
// amount is the low five bits of the immediate; the funct7 field
// picks logical versus arithmetic right shifts.
func (c *CPU) execOpImm(instr isa.Instr) *trap.Trap {
	rs1 := c.regs.Read(instr.Rs1())
	imm := uint32(instr.ImmI())
	var res uint32

	switch instr.Funct3() {
	case isa.AluAdd:
		res = rs1 + imm
	case isa.AluSlt:
		if int32(rs1) < int32(imm) {
			res = 1
		}
	case isa.AluSltu:
		if rs1 < imm {
			res = 1
		}
	case isa.AluXor:
		res = rs1 ^ imm
	case isa.AluOr:
		res = rs1 | imm
	case isa.AluAnd:
		res = rs1 & imm
	case isa.AluSll:
		if instr.Funct7() != isa.Funct7Base {
			return trap.IllegalInstruction(instr.Word())
		}
		res = rs1 << (imm & 0x1f)
	case isa.AluSrl:
		switch instr.Funct7() {
		case isa.Funct7Base:
			res = rs1 >> (imm & 0x1f)
		case isa.Funct7Alt:
			res = uint32(int32(rs1) >> (imm & 0x1f))
		default:
			return trap.IllegalInstruction(instr.Word())
		}
	}
	c.regs.Write(instr.Rd(), res)
	return nil
}

// execOpReg handles register register ALU operations. funct7 selects
// ADD/SUB and SRL/SRA; every other row requires the base funct7, so
// multiply extension encodings fall through as illegal.
func (c *CPU) execOpReg(instr isa.Instr) *trap.Trap {
	rs1 := c.regs.Read(instr.Rs1())
	rs2 := c.regs.Read(instr.Rs2())
	funct7 := instr.Funct7()
	var res uint32

	switch instr.Funct3() {
	case isa.AluAdd:
		switch funct7 {
		case isa.Funct7Base:
			res = rs1 + rs2
		case isa.Funct7Alt:
			res = rs1 - rs2
		default:
			return trap.IllegalInstruction(instr.Word())
		}
	case isa.AluSll:
		if funct7 != isa.Funct7Base {
			return trap.IllegalInstruction(instr.Word())
		}
		res = rs1 << (rs2 & 0x1f)
	case isa.AluSlt:
		if funct7 != isa.Funct7Base {
			return trap.IllegalInstruction(instr.Word())
		}
		if int32(rs1) < int32(rs2) {
			res = 1
		}
	case isa.AluSltu:
		if funct7 != isa.Funct7Base {
			return trap.IllegalInstruction(instr.Word())
		}
		if rs1 < rs2 {
			res = 1
		}
	case isa.AluXor:
		if funct7 != isa.Funct7Base {
			return trap.IllegalInstruction(instr.Word())
		}
		res = rs1 ^ rs2
	case isa.AluSrl:
		switch funct7 {
		case isa.Funct7Base:
			res = rs1 >> (rs2 & 0x1f)
		case isa.Funct7Alt:
			res = uint32(int32(rs1) >> (rs2 & 0x1f))
		default:
			return trap.IllegalInstruction(instr.Word())
		}
	case isa.AluOr:
		if funct7 != isa.Funct7Base {
			return trap.IllegalInstruction(instr.Word())
		}
		res = rs1 | rs2
	case isa.AluAnd:
		if funct7 != isa.Funct7Base {
			return trap.IllegalInstruction(instr.Word())
		}
		res = rs1 & rs2
	}
	c.regs.Write(instr.Rd(), res)
	return nil
}

// execBranch handles conditional branches. Signed comparisons use the
// two's complement reading of the words, unsigned compare them raw.
func (c *CPU) execBranch(instr isa.Instr) *trap.Trap {
	rs1 := c.regs.Read(instr.Rs1())
	rs2 := c.regs.Read(instr.Rs2())
	var taken bool

	switch instr.Funct3() {
	case isa.BranchEq:
		taken = rs1 == rs2
	case isa.BranchNe:
		taken = rs1 != rs2
	case isa.BranchLt:
		taken = int32(rs1) < int32(rs2)
	case isa.BranchGe:
		taken = int32(rs1) >= int32(rs2)
	case isa.BranchLtu:
		taken = rs1 < rs2
	case isa.BranchGeu:
		taken = rs1 >= rs2
	default:
		return trap.IllegalInstruction(instr.Word())
	}
	if taken {
		c.nextPC = c.pc + uint32(instr.ImmB())
	}
	return nil
}

// execLoad handles LB, LH, LW, LBU and LHU. The effective address is
// translated, then the bus access runs at the chosen width; narrow
// loads sign or zero extend per the funct3 row.
func (c *CPU) execLoad(instr isa.Instr) *trap.Trap {
	ea := c.regs.Read(instr.Rs1()) + uint32(instr.ImmI())

	var size int
	var signed bool
	switch instr.Funct3() {
	case isa.MemByte:
		size, signed = 1, true
	case isa.MemHalf:
		size, signed = 2, true
	case isa.MemWord:
		size = 4
	case isa.MemByteU:
		size = 1
	case isa.MemHalfU:
		size = 2
	default:
		return trap.IllegalInstruction(instr.Word())
	}

	paddr, tr := c.translate(ea)
	if tr != nil {
		return tr
	}
	value, tr := c.bus.Load(paddr, size)
	if tr != nil {
		return tr
	}
	if signed {
		switch size {
		case 1:
			value = uint32(int32(int8(value)))
		case 2:
			value = uint32(int32(int16(value)))
		}
	}
	c.regs.Write(instr.Rd(), value)
	return nil
}

// execStore handles SB, SH and SW. Only the low size*8 bits of rs2
// reach memory.
func (c *CPU) execStore(instr isa.Instr) *trap.Trap {
	ea := c.regs.Read(instr.Rs1()) + uint32(instr.ImmS())

	var size int
	switch instr.Funct3() {
	case isa.MemByte:
		size = 1
	case isa.MemHalf:
		size = 2
	case isa.MemWord:
		size = 4
	default:
		return trap.IllegalInstruction(instr.Word())
	}

	paddr, tr := c.translate(ea)
	if tr != nil {
		return tr
	}
	return c.bus.Store(paddr, size, c.regs.Read(instr.Rs2()))
}

// execSystem handles the privileged group and the Zicsr register
// operations.
func (c *CPU) execSystem(instr isa.Instr) *trap.Trap {
	switch instr.Funct3() {
	case isa.SysPriv:
		funct12 := uint32(instr.ImmI()) & 0xfff
		switch funct12 {
		case isa.PrivEcall:
			return trap.EnvironmentCall(c.priv)
		case isa.PrivMret:
			c.priv = c.csrs.ReturnFromException()
			c.nextPC = c.csrs.Mepc()
			return nil
		}
		return trap.IllegalInstruction(instr.Word())

	case isa.SysCsrw, isa.SysCsrs, isa.SysCsrc:
		addr := instr.Csr()
		old, err := c.csrs.Read(addr)
		if err != nil {
			return trap.IllegalInstruction(instr.Word())
		}
		rs1 := c.regs.Read(instr.Rs1())
		var value uint32
		switch instr.Funct3() {
		case isa.SysCsrw:
			value = rs1
		case isa.SysCsrs:
			value = old | rs1
		case isa.SysCsrc:
			value = old &^ rs1
		}
		if err := c.csrs.Write(addr, value); err != nil {
			return trap.IllegalInstruction(instr.Word())
		}
		c.regs.Write(instr.Rd(), old)
		return nil
	}
	return trap.IllegalInstruction(instr.Word())
}
