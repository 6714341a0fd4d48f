/*
   RV32 - Boot image loader.

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

// Package loader places boot images into RAM before the CPU starts.
// ELF executables have their loadable segments copied to their
// physical addresses; anything else is treated as a raw binary and
// placed at the base of RAM.
package loader

import (
	"bytes"
	"debug/elf"
	"fmt"
	"io"
	"log/slog"
	"os"

	dev "github.com/rcornwell/RV32/emu/device"
)

var elfMagic = []byte{0x7f, 'E', 'L', 'F'}

// Load reads the image at path into ram, which is mapped at ramBase.
// It returns the entry point: the ELF entry for ELF images, ramBase
// for raw binaries.
func Load(path string, ram dev.Memory, ramBase uint32) (uint32, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	if len(data) < len(elfMagic) || !bytes.Equal(data[:len(elfMagic)], elfMagic) {
		return loadRaw(path, data, ram, ramBase)
	}
	return loadELF(path, data, ram, ramBase)
}

func loadELF(path string, data []byte, ram dev.Memory, ramBase uint32) (uint32, error) {
	f, err := elf.NewFile(bytes.NewReader(data))
	if err != nil {
		return 0, fmt.Errorf("loader: %s: %w", path, err)
	}
	if f.Class != elf.ELFCLASS32 || f.Machine != elf.EM_RISCV {
		return 0, fmt.Errorf("loader: %s is not a 32 bit RISC-V executable", path)
	}
	loaded := 0
	for _, prog := range f.Progs {
		if prog.Type != elf.PT_LOAD || prog.Filesz == 0 {
			continue
		}
		seg := make([]byte, prog.Filesz)
		if _, err := io.ReadFull(prog.Open(), seg); err != nil {
			return 0, fmt.Errorf("loader: reading segment of %s: %w", path, err)
		}
		paddr := uint32(prog.Paddr)
		if paddr < ramBase {
			return 0, fmt.Errorf("loader: segment at %08x below RAM base %08x", paddr, ramBase)
		}
		if err := ram.Flash(paddr-ramBase, seg); err != nil {
			return 0, err
		}
		slog.Debug(fmt.Sprintf("loader: %d bytes at %08x", len(seg), paddr))
		loaded++
	}
	if loaded == 0 {
		return 0, fmt.Errorf("loader: %s has no loadable segments", path)
	}
	slog.Info(fmt.Sprintf("loader: %s entry %08x", path, uint32(f.Entry)))
	return uint32(f.Entry), nil
}

func loadRaw(path string, data []byte, ram dev.Memory, ramBase uint32) (uint32, error) {
	if err := ram.Flash(0, data); err != nil {
		return 0, err
	}
	slog.Info(fmt.Sprintf("loader: raw image %s, %d bytes at %08x", path, len(data), ramBase))
	return ramBase, nil
}
