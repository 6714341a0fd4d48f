/*
   RV32 - DRAM device.

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

package dram

import (
	"encoding/binary"
	"errors"
	"fmt"

	config "github.com/rcornwell/RV32/config/configparser"
	dev "github.com/rcornwell/RV32/emu/device"
)

// Dram is a byte addressed RAM device. Loads and stores are little
// endian in widths of 1, 2 or 4 bytes; accesses that straddle the end
// of memory fail rather than truncate.
type Dram struct {
	mem []byte
}

// New allocates size bytes of zeroed RAM. A zero size is a
// configuration bug and aborts.
func New(size uint32) *Dram {
	if size == 0 {
		panic("dram: zero size")
	}
	return &Dram{mem: make([]byte, size)}
}

// Flash bulk copies an image into RAM at offset. Used by the loader
// before the CPU starts.
func (d *Dram) Flash(offset uint32, data []byte) error {
	end := uint64(offset) + uint64(len(data))
	if end > uint64(len(d.mem)) {
		return fmt.Errorf("dram: flash of %d bytes at %08x past end of %d byte memory",
			len(data), offset, len(d.mem))
	}
	copy(d.mem[offset:end], data)
	return nil
}

func (d *Dram) Name() string {
	return "DRAM"
}

func (d *Dram) Size() uint32 {
	return uint32(len(d.mem))
}

func (d *Dram) Load(offset uint32, size int) (uint32, error) {
	end := uint64(offset) + uint64(size)
	if end > uint64(len(d.mem)) {
		return 0, dev.ErrOutOfRange
	}
	switch size {
	case dev.SizeByte:
		return uint32(d.mem[offset]), nil
	case dev.SizeHalf:
		return uint32(binary.LittleEndian.Uint16(d.mem[offset:])), nil
	case dev.SizeWord:
		return binary.LittleEndian.Uint32(d.mem[offset:]), nil
	}
	panic(fmt.Sprintf("dram: invalid access size %d", size))
}

func (d *Dram) Store(offset uint32, size int, value uint32) error {
	end := uint64(offset) + uint64(size)
	if end > uint64(len(d.mem)) {
		return dev.ErrOutOfRange
	}
	switch size {
	case dev.SizeByte:
		d.mem[offset] = uint8(value)
	case dev.SizeHalf:
		binary.LittleEndian.PutUint16(d.mem[offset:], uint16(value))
	case dev.SizeWord:
		binary.LittleEndian.PutUint32(d.mem[offset:], value)
	default:
		panic(fmt.Sprintf("dram: invalid access size %d", size))
	}
	return nil
}

// create builds a DRAM from a configuration line of the form
//
//	DRAM 80000000 size=64M
func create(sys *config.Setup, base uint32, options []config.Option) error {
	size := uint32(0)
	for _, option := range options {
		switch option.Name {
		case "SIZE":
			v, err := config.ParseSize(option.EqualOpt)
			if err != nil {
				return err
			}
			size = v
		default:
			return errors.New("DRAM invalid option: " + option.Name)
		}
	}
	if size == 0 {
		return errors.New("DRAM requires a size option")
	}
	ram := New(size)
	sys.Bus.MapTo(base, ram)
	if sys.RAM == nil {
		sys.RAM = ram
		sys.RAMBase = base
	}
	return nil
}

func init() {
	config.RegisterModel("DRAM", config.TypeModel, create)
}
