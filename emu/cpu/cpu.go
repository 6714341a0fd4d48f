/*
   CPU: main CPU instruction fetch and execute.

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

/*
   RV32I with the Zicsr extension and a minimal machine mode
   privileged profile.

   The CPU interprets one instruction per step against a register
   file, a CSR file and the system bus. Each step is fetch, decode,
   execute, then either commit or take a trap; pc and next_pc are
   equal between steps. Every instruction fetch and data access runs
   through Sv32 translation, which collapses to the identity while
   satp has translation disabled.

   Traps never escape a step: bus errors, malformed encodings and
   environment calls all funnel into the machine mode trap protocol,
   which redirects the committed next_pc to the mtvec base.
*/

import (
	"github.com/rcornwell/RV32/emu/bus"
	"github.com/rcornwell/RV32/emu/csr"
	"github.com/rcornwell/RV32/emu/isa"
	"github.com/rcornwell/RV32/emu/regs"
	"github.com/rcornwell/RV32/emu/trap"
)

// DefaultResetVector is where execution begins unless the machine
// configuration says otherwise.
const DefaultResetVector uint32 = 0x8000_0000

// CPU is a single RV32I hart. It owns its register and CSR files and
// holds the bus for the lifetime of the machine.
type CPU struct {
	pc     uint32
	nextPC uint32
	regs   regs.RegFile
	csrs   *csr.File
	bus    *bus.Bus
	priv   isa.PrivilegeMode
}

// New returns a CPU in the reset state with pc at the default reset
// vector.
func New(b *bus.Bus) *CPU {
	return NewWithReset(b, DefaultResetVector)
}

// NewWithReset returns a CPU in the reset state with pc at
// resetVector. Privilege starts at Machine.
func NewWithReset(b *bus.Bus, resetVector uint32) *CPU {
	return &CPU{
		pc:     resetVector,
		nextPC: resetVector,
		csrs:   csr.NewFile(),
		bus:    b,
		priv:   isa.Machine,
	}
}

// Step executes one instruction. A trap inside the step runs the trap
// entry protocol instead of committing; either way pc advances to the
// committed next_pc and mcycle counts the step. minstret counts only
// committed instructions.
func (c *CPU) Step() {
	if tr := c.tryStep(); tr != nil {
		c.enterTrap(tr)
	} else {
		c.csrs.IncrementInstret()
	}
	c.pc = c.nextPC
	c.csrs.IncrementCycle()
}

// tryStep runs the trapping part of a step: translated fetch, then
// decode and execute. The first trap short circuits the rest.
func (c *CPU) tryStep() *trap.Trap {
	paddr, tr := c.translate(c.pc)
	if tr != nil {
		return tr
	}
	word, tr := c.bus.Load(paddr, isa.InstructionSize)
	if tr != nil {
		return tr
	}
	c.nextPC = c.pc + isa.InstructionSize
	return c.execute(isa.Instr(word))
}

// enterTrap runs the trap entry protocol: record the faulting pc,
// cause and value, stack the interrupt enable state in mstatus, raise
// to machine mode and redirect to the trap vector.
func (c *CPU) enterTrap(tr *trap.Trap) {
	c.csrs.SetExceptionPC(c.pc)
	c.csrs.SetCause(tr.Cause())
	c.csrs.SetMtval(tr.Value())
	c.csrs.EnterException(c.priv)
	c.priv = isa.Machine
	c.nextPC = c.csrs.MtvecBase()
}

// PC returns the current program counter.
func (c *CPU) PC() uint32 {
	return c.pc
}

// SetPC moves the program counter between steps.
func (c *CPU) SetPC(pc uint32) {
	c.pc = pc
	c.nextPC = pc
}

// Reg returns integer register idx.
func (c *CPU) Reg(idx uint8) uint32 {
	return c.regs.Read(idx)
}

// SetReg deposits a value in integer register idx.
func (c *CPU) SetReg(idx uint8, value uint32) {
	c.regs.Write(idx, value)
}

// CSR reads a control register by address.
func (c *CPU) CSR(addr uint16) (uint32, error) {
	return c.csrs.Read(addr)
}

// SetCSR writes a control register by address, applying its mask.
func (c *CPU) SetCSR(addr uint16, value uint32) error {
	return c.csrs.Write(addr, value)
}

// Priv returns the current privilege mode.
func (c *CPU) Priv() isa.PrivilegeMode {
	return c.priv
}

// Cycle returns the full mcycle counter.
func (c *CPU) Cycle() uint64 {
	return c.csrs.Cycle()
}

// Instret returns the full minstret counter.
func (c *CPU) Instret() uint64 {
	return c.csrs.Instret()
}

// RegDump lists the non zero registers for diagnostics.
func (c *CPU) RegDump() string {
	return c.regs.String()
}

// Peek reads memory through address translation without disturbing
// CPU state. Used by the console and the trace logger.
func (c *CPU) Peek(vaddr uint32, size int) (uint32, *trap.Trap) {
	paddr, tr := c.translate(vaddr)
	if tr != nil {
		return 0, tr
	}
	return c.bus.Load(paddr, size)
}
