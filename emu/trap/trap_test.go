/*
   RV32 - Tests for the trap taxonomy.

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

package trap

import (
	"testing"

	"github.com/rcornwell/RV32/emu/isa"
)

func TestCauseAndValue(t *testing.T) {
	tests := []struct {
		trap  *Trap
		cause uint32
		value uint32
	}{
		{IllegalInstruction(0xdeadbeef), 2, 0xdeadbeef},
		{LoadAccessFault(0xffffffff), 5, 0xffffffff},
		{StoreAccessFault(0x10000000), 7, 0x10000000},
		{EnvironmentCall(isa.User), 8, 0},
		{EnvironmentCall(isa.Supervisor), 9, 0},
		{EnvironmentCall(isa.Machine), 11, 0},
	}
	for _, tc := range tests {
		if r := tc.trap.Cause(); r != tc.cause {
			t.Errorf("Cause of %v not correct got: %d expected: %d", tc.trap, r, tc.cause)
		}
		if r := tc.trap.Value(); r != tc.value {
			t.Errorf("Value of %v not correct got: %08x expected: %08x", tc.trap, r, tc.value)
		}
	}
}
