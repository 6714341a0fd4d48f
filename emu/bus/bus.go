/*
   RV32 - System bus.

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

// Package bus routes 32 bit physical addresses to memory mapped
// devices. Mappings are probed in registration order; the first whose
// half open range [base, base+size) contains the address wins. An
// access that hits no mapping raises the matching access fault.
package bus

import (
	"fmt"

	dev "github.com/rcornwell/RV32/emu/device"
	"github.com/rcornwell/RV32/emu/trap"
)

type mapping struct {
	base   uint32
	device dev.Device
}

// Bus is the address space router. It owns the mapped devices for the
// lifetime of the machine.
type Bus struct {
	mappings []mapping
}

// New returns an empty bus.
func New() *Bus {
	return &Bus{}
}

// MapTo appends a device mapping at the given base address. Overlaps
// are not rejected; the earlier registration wins. A zero size device
// is a configuration bug and aborts.
func (b *Bus) MapTo(base uint32, device dev.Device) {
	if device.Size() == 0 {
		panic(fmt.Sprintf("bus: device %s has zero size", device.Name()))
	}
	b.mappings = append(b.mappings, mapping{base: base, device: device})
}

// Load reads size bytes at addr. A miss or device range error raises
// a load access fault at addr.
func (b *Bus) Load(addr uint32, size int) (uint32, *trap.Trap) {
	m := b.probe(addr)
	if m == nil {
		return 0, trap.LoadAccessFault(addr)
	}
	value, err := m.device.Load(addr-m.base, size)
	if err != nil {
		return 0, trap.LoadAccessFault(addr)
	}
	return value, nil
}

// Store writes the low size*8 bits of value at addr. A miss or device
// range error raises a store access fault at addr.
func (b *Bus) Store(addr uint32, size int, value uint32) *trap.Trap {
	m := b.probe(addr)
	if m == nil {
		return trap.StoreAccessFault(addr)
	}
	if err := m.device.Store(addr-m.base, size, value); err != nil {
		return trap.StoreAccessFault(addr)
	}
	return nil
}

// probe finds the first mapping containing addr.
func (b *Bus) probe(addr uint32) *mapping {
	for i := range b.mappings {
		m := &b.mappings[i]
		if addr >= m.base && addr-m.base < m.device.Size() {
			return m
		}
	}
	return nil
}
