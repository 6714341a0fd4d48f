/*
   RV32 - Memory mapped device interface.

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

package device

import "errors"

// ErrOutOfRange reports an access past the end of a device. The bus
// converts it to the matching access fault at the absolute address.
var ErrOutOfRange = errors.New("device: access out of range")

// Valid access widths in bytes. Any other width passed to a device is
// an implementation error, not a guest fault, and aborts.
const (
	SizeByte = 1
	SizeHalf = 2
	SizeWord = 4
)

// Device is the capability a memory mapped device exposes to the bus.
// Offsets are relative to the device base. Loads return a 32 bit
// value holding size bytes in little endian order; stores write the
// low size*8 bits of value.
type Device interface {
	Name() string
	Size() uint32
	Load(offset uint32, size int) (uint32, error)
	Store(offset uint32, size int, value uint32) error
}

// Memory is a Device that also accepts bulk image placement, used by
// the boot loader before the CPU starts. Flash fails if the image
// runs past the end of the device.
type Memory interface {
	Device
	Flash(offset uint32, data []byte) error
}
