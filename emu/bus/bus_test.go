/*
   RV32 - Tests for the system bus.

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

package bus

import (
	"testing"

	dev "github.com/rcornwell/RV32/emu/device"
	"github.com/rcornwell/RV32/emu/trap"
)

// testDev is a tiny RAM like device recording the last access.
type testDev struct {
	name    string
	mem     []byte
	lastOff uint32
}

func newTestDev(name string, size int) *testDev {
	return &testDev{name: name, mem: make([]byte, size)}
}

func (d *testDev) Name() string { return d.name }
func (d *testDev) Size() uint32 { return uint32(len(d.mem)) }

func (d *testDev) Load(offset uint32, size int) (uint32, error) {
	if uint64(offset)+uint64(size) > uint64(len(d.mem)) {
		return 0, dev.ErrOutOfRange
	}
	d.lastOff = offset
	return uint32(d.mem[offset]), nil
}

func (d *testDev) Store(offset uint32, size int, value uint32) error {
	if uint64(offset)+uint64(size) > uint64(len(d.mem)) {
		return dev.ErrOutOfRange
	}
	d.lastOff = offset
	d.mem[offset] = uint8(value)
	return nil
}

// Accesses are routed to the covering device with a relative offset.
func TestRouting(t *testing.T) {
	b := New()
	low := newTestDev("low", 0x100)
	high := newTestDev("high", 0x100)
	b.MapTo(0x1000, low)
	b.MapTo(0x2000, high)

	if tr := b.Store(0x1010, dev.SizeByte, 0xaa); tr != nil {
		t.Fatalf("store faulted: %v", tr)
	}
	if low.lastOff != 0x10 {
		t.Errorf("offset not relative got: %x expected: 10", low.lastOff)
	}
	v, tr := b.Load(0x1010, dev.SizeByte)
	if tr != nil {
		t.Fatalf("load faulted: %v", tr)
	}
	if v != 0xaa {
		t.Errorf("load not correct got: %02x expected: aa", v)
	}

	_ = b.Store(0x20ff, dev.SizeByte, 0x55)
	if high.lastOff != 0xff {
		t.Errorf("second device offset not correct got: %x expected: ff", high.lastOff)
	}
}

// The mapped range is half open: one past the end must miss.
func TestHalfOpenRange(t *testing.T) {
	b := New()
	b.MapTo(0x1000, newTestDev("dev", 0x100))

	if _, tr := b.Load(0x10ff, dev.SizeByte); tr != nil {
		t.Errorf("last byte of range faulted: %v", tr)
	}
	_, tr := b.Load(0x1100, dev.SizeByte)
	if tr == nil {
		t.Fatal("one past end did not fault")
	}
	if tr.Cause() != trap.CauseLoadAccessFault || tr.Value() != 0x1100 {
		t.Errorf("fault not correct got: cause %d value %08x", tr.Cause(), tr.Value())
	}
}

// Unmapped addresses fault with the access address in the trap value.
func TestUnmapped(t *testing.T) {
	b := New()
	b.MapTo(0x8000_0000, newTestDev("ram", 0x1000))

	_, tr := b.Load(0xffffffff, dev.SizeWord)
	if tr == nil {
		t.Fatal("load of unmapped address did not fault")
	}
	if tr.Cause() != trap.CauseLoadAccessFault || tr.Value() != 0xffffffff {
		t.Errorf("load fault not correct got: cause %d value %08x", tr.Cause(), tr.Value())
	}

	tr = b.Store(0x4000, dev.SizeWord, 0)
	if tr == nil {
		t.Fatal("store of unmapped address did not fault")
	}
	if tr.Cause() != trap.CauseStoreAccessFault || tr.Value() != 0x4000 {
		t.Errorf("store fault not correct got: cause %d value %08x", tr.Cause(), tr.Value())
	}
}

// A device error surfaces as a fault at the absolute address, not the
// device relative one.
func TestDeviceRangeError(t *testing.T) {
	b := New()
	b.MapTo(0x1000, newTestDev("dev", 0x100))

	// Straddles the device: inside the range at 0xff but two bytes long.
	_, tr := b.Load(0x10ff, dev.SizeHalf)
	if tr == nil {
		t.Fatal("straddling load did not fault")
	}
	if tr.Value() != 0x10ff {
		t.Errorf("fault address not absolute got: %08x expected: %08x", tr.Value(), uint32(0x10ff))
	}
}

// First registration wins on overlap.
func TestOverlapFirstWins(t *testing.T) {
	b := New()
	first := newTestDev("first", 0x100)
	second := newTestDev("second", 0x100)
	b.MapTo(0x1000, first)
	b.MapTo(0x1000, second)

	_ = b.Store(0x1000, dev.SizeByte, 0x11)
	if first.mem[0] != 0x11 {
		t.Error("first mapping did not receive the store")
	}
	if second.mem[0] != 0 {
		t.Error("second mapping received the store")
	}
}

func TestZeroSizeDevice(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("zero size device did not panic")
		}
	}()
	b := New()
	b.MapTo(0, newTestDev("empty", 0))
}
