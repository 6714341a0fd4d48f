/*
   RV32 - Privilege modes.

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

import "fmt"

// PrivilegeMode is the current execution privilege, using the numeric
// encoding of the mstatus MPP field.
type PrivilegeMode uint8

const (
	User       PrivilegeMode = 0b00
	Supervisor PrivilegeMode = 0b01
	Machine    PrivilegeMode = 0b11
)

// PrivilegeFromBits converts an MPP field value to a mode. A reserved
// encoding indicates corrupted CSR state and aborts.
func PrivilegeFromBits(bits uint8) PrivilegeMode {
	switch PrivilegeMode(bits) {
	case User, Supervisor, Machine:
		return PrivilegeMode(bits)
	}
	panic(fmt.Sprintf("isa: invalid privilege mode %02b", bits))
}

func (m PrivilegeMode) String() string {
	switch m {
	case User:
		return "User"
	case Supervisor:
		return "Supervisor"
	case Machine:
		return "Machine"
	}
	return fmt.Sprintf("PrivilegeMode(%02b)", uint8(m))
}
