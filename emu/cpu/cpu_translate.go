/*
   CPU: Sv32 address translation.

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

import "github.com/rcornwell/RV32/emu/trap"

// Sv32 field masks. Virtual addresses split into two 10 bit VPNs and
// a 12 bit page offset; each PTE carries a 22 bit PPN above its flag
// bits.
const (
	satpModeBit = uint32(1) << 31
	satpPPN     = uint32(0x003f_ffff)
	ptePPNShift = 10
	ptePPN      = uint32(0x003f_ffff)
	pageShift   = 12
	pageOffset  = uint32(0xfff)
	vpnMask     = uint32(0x3ff)
	pteSize     = 4
)

// translate maps a virtual address to a physical one under the
// current satp. With translation disabled addresses pass through
// unchanged. Each access walks both page table levels; a PTE fetch
// that misses the bus surfaces as a load access fault at the PTE
// address. Permission and validity bits are not checked in this
// profile.
func (c *CPU) translate(vaddr uint32) (uint32, *trap.Trap) {
	satp := c.csrs.Satp()
	if satp&satpModeBit == 0 {
		return vaddr, nil
	}

	root := (satp & satpPPN) << pageShift

	vpn1 := (vaddr >> 22) & vpnMask
	pte1, tr := c.bus.Load(root+vpn1*pteSize, pteSize)
	if tr != nil {
		return 0, tr
	}

	level1 := ((pte1 >> ptePPNShift) & ptePPN) << pageShift
	vpn0 := (vaddr >> pageShift) & vpnMask
	pte0, tr := c.bus.Load(level1+vpn0*pteSize, pteSize)
	if tr != nil {
		return 0, tr
	}

	return ((pte0>>ptePPNShift)&ptePPN)<<pageShift | vaddr&pageOffset, nil
}
