/*
   RV32 - Tests for the disassembler.

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

package disassemble

import "testing"

func TestDisassemble(t *testing.T) {
	tests := []struct {
		word uint32
		pc   uint32
		want string
	}{
		{0x00000013, 0x80000000, "nop"},
		{0x00000513, 0x80000000, "addi a0, zero, 0"},
		{0x01050593, 0x80000000, "addi a1, a0, 16"},
		{0x00b58633, 0x80000000, "add a2, a1, a1"},
		{0x40b50633, 0x80000000, "sub a2, a0, a1"},
		{0x008000EF, 0x80000000, "jal ra, 0x80000008"},
		{0x0080006F, 0x80000000, "j 0x80000008"},
		{0x00050463, 0x80000004, "beq a0, zero, 0x8000000c"},
		{0xDEADC0B7, 0x80000000, "lui ra, 0xdeadc"},
		{0xFFF02083, 0x80000000, "lw ra, -1(zero)"},
		{0x00A58523, 0x80000000, "sb a0, 10(a1)"},
		{0x00000073, 0x80000000, "ecall"},
		{0x30200073, 0x80000000, "mret"},
		{0x30029073, 0x80000000, "csrrw zero, mstatus, t0"},
		{0x300022F3, 0x80000000, "csrrs t0, mstatus, zero"},
		{0x0000A517, 0x80000000, "auipc a0, 0xa"},
		{0x4015D593, 0x80000000, "srai a1, a1, 1"},
		{0x00100073, 0x80000000, ".word 0x00100073"}, // ebreak, unsupported
		{0xFFFFFFFF, 0x80000000, ".word 0xffffffff"},
	}
	for _, tc := range tests {
		if r := Disassemble(tc.word, tc.pc); r != tc.want {
			t.Errorf("disassembly of %08x not correct got: %q expected: %q", tc.word, r, tc.want)
		}
	}
}
