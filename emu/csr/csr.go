/*
   RV32 - Machine mode control and status registers.

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

// Package csr models the machine mode CSR file: a small closed set of
// 12 bit addressed registers with per register write masks, plus the
// dedicated mutations the trap protocol performs on mstatus.
package csr

import (
	"errors"

	"github.com/rcornwell/RV32/emu/isa"
)

// CSR addresses.
const (
	MSTATUS  uint16 = 0x300
	MISA     uint16 = 0x301
	MIE      uint16 = 0x304
	MTVEC    uint16 = 0x305
	MSCRATCH uint16 = 0x340
	MEPC     uint16 = 0x341
	MCAUSE   uint16 = 0x342
	MTVAL    uint16 = 0x343
	MIP      uint16 = 0x344
	SATP     uint16 = 0x180
	MCYCLE   uint16 = 0xB00
	MINSTRET uint16 = 0xB02
)

const (
	// mstatus bits.
	mstatusMIE  uint32 = 1 << 3
	mstatusMPIE uint32 = 1 << 7
	mstatusMPP  uint32 = 0b11 << 11

	// Write masks.
	mstatusMask uint32 = 0x00001888 // MIE, MPIE, MPP; rest is WPRI
	mipMask     uint32 = 0x00000888 // MSIP, MTIP, MEIP

	// misa reset value: RV32I.
	misaReset uint32 = 0x40001100
)

// ErrUnknownCSR reports an access to an address outside the
// implemented set. The CPU turns it into an illegal instruction trap.
var ErrUnknownCSR = errors.New("csr: unknown register address")

// File holds the CSR state. NewFile returns the reset state.
type File struct {
	mstatus  uint32
	misa     uint32
	mie      uint32
	mtvec    uint32
	mscratch uint32
	mepc     uint32
	mcause   uint32
	mtval    uint32
	mip      uint32
	satp     uint32
	mcycle   uint64
	minstret uint64
}

// NewFile returns a CSR file in the architectural reset state.
func NewFile() *File {
	return &File{misa: misaReset}
}

// Read returns the value of the named CSR. The 64 bit counters expose
// their low half.
func (f *File) Read(addr uint16) (uint32, error) {
	switch addr {
	case MSTATUS:
		return f.mstatus, nil
	case MISA:
		return f.misa, nil
	case MIE:
		return f.mie, nil
	case MTVEC:
		return f.mtvec, nil
	case MSCRATCH:
		return f.mscratch, nil
	case MEPC:
		return f.mepc, nil
	case MCAUSE:
		return f.mcause, nil
	case MTVAL:
		return f.mtval, nil
	case MIP:
		return f.mip, nil
	case SATP:
		return f.satp, nil
	case MCYCLE:
		return uint32(f.mcycle), nil
	case MINSTRET:
		return uint32(f.minstret), nil
	}
	return 0, ErrUnknownCSR
}

// Write stores value into the named CSR, applying its write mask. The
// 64 bit counters take the value into their low half and keep the
// high half.
func (f *File) Write(addr uint16, value uint32) error {
	switch addr {
	case MSTATUS:
		f.mstatus = value & mstatusMask
	case MISA:
		f.misa = value
	case MIE:
		f.mie = value
	case MTVEC:
		f.mtvec = value
	case MSCRATCH:
		f.mscratch = value
	case MEPC:
		f.mepc = value &^ 0x3 // 4 byte aligned
	case MCAUSE:
		f.mcause = value
	case MTVAL:
		f.mtval = value
	case MIP:
		f.mip = value & mipMask
	case SATP:
		f.satp = value
	case MCYCLE:
		f.mcycle = (f.mcycle &^ 0xFFFF_FFFF) | uint64(value)
	case MINSTRET:
		f.minstret = (f.minstret &^ 0xFFFF_FFFF) | uint64(value)
	default:
		return ErrUnknownCSR
	}
	return nil
}

// SetExceptionPC records the faulting pc in mepc.
func (f *File) SetExceptionPC(pc uint32) {
	f.mepc = pc &^ 0x3
}

// SetCause records the trap cause code in mcause.
func (f *File) SetCause(cause uint32) {
	f.mcause = cause
}

// SetMtval records the trap value in mtval.
func (f *File) SetMtval(value uint32) {
	f.mtval = value
}

// MtvecBase returns the trap vector base with the low mode bits
// cleared.
func (f *File) MtvecBase() uint32 {
	return f.mtvec &^ 0b11
}

// Mepc returns the exception return address.
func (f *File) Mepc() uint32 {
	return f.mepc
}

// Satp returns the address translation control register.
func (f *File) Satp() uint32 {
	return f.satp
}

// Cycle returns the full 64 bit cycle counter.
func (f *File) Cycle() uint64 {
	return f.mcycle
}

// Instret returns the full 64 bit retired instruction counter.
func (f *File) Instret() uint64 {
	return f.minstret
}

// IncrementCycle advances mcycle by one, wrapping at 64 bits.
func (f *File) IncrementCycle() {
	f.mcycle++
}

// IncrementInstret advances minstret by one, wrapping at 64 bits.
func (f *File) IncrementInstret() {
	f.minstret++
}

// EnterException performs the mstatus side of trap entry: the current
// MIE is saved in MPIE, MIE is cleared, and the interrupted privilege
// mode is recorded in MPP.
func (f *File) EnterException(prev isa.PrivilegeMode) {
	if f.mstatus&mstatusMIE != 0 {
		f.mstatus |= mstatusMPIE
	} else {
		f.mstatus &^= mstatusMPIE
	}
	f.mstatus &^= mstatusMIE
	f.mstatus = (f.mstatus &^ mstatusMPP) | uint32(prev)<<11
}

// ReturnFromException performs the mstatus side of mret: MIE is
// restored from MPIE, MPIE is set, and the privilege mode held in MPP
// is returned. MPP is then set to Machine, the least privileged mode this
// implementation can run traps for; entry and return still round trip
// because EnterException rewrites MPP every time.
func (f *File) ReturnFromException() isa.PrivilegeMode {
	if f.mstatus&mstatusMPIE != 0 {
		f.mstatus |= mstatusMIE
	} else {
		f.mstatus &^= mstatusMIE
	}
	f.mstatus |= mstatusMPIE
	mode := isa.PrivilegeFromBits(uint8((f.mstatus & mstatusMPP) >> 11))
	f.mstatus |= mstatusMPP
	return mode
}
