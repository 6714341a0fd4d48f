/*
   RV32 - Integer register file.

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

package regs

import (
	"fmt"
	"strings"

	"github.com/rcornwell/RV32/emu/isa"
)

// NumRegs is the number of integer registers.
const NumRegs = 32

// RegFile holds the integer registers x0..x31. x0 is hardwired to
// zero. The zero value is a reset register file.
type RegFile struct {
	regs [NumRegs]uint32
}

// Read returns the value of register idx. Register 0 always reads as
// zero. An index above 31 is a decoder bug and panics via the bounds
// check.
func (r *RegFile) Read(idx uint8) uint32 {
	return r.regs[idx]
}

// Write sets register idx. Writes to register 0 are discarded.
func (r *RegFile) Write(idx uint8, value uint32) {
	if idx != 0 {
		r.regs[idx] = value
	}
}

// String lists the non zero registers with their ABI names.
func (r *RegFile) String() string {
	var parts []string
	for i, v := range r.regs {
		if v != 0 {
			parts = append(parts, fmt.Sprintf("%s:%08x", isa.RegName(uint8(i)), v))
		}
	}
	return strings.Join(parts, " ")
}
