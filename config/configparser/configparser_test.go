/*
 * RV32 - Configuration file parser tests
 *
 * Copyright 2025, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package configparser

import (
	"strings"
	"testing"
)

// Capture of the last test model creation.
type created struct {
	base    uint32
	options []Option
	count   int
}

func registerTestModel(t *testing.T, name string) *created {
	t.Helper()
	c := &created{}
	RegisterModel(name, TypeModel, func(sys *Setup, base uint32, options []Option) error {
		c.base = base
		c.options = options
		c.count++
		return nil
	})
	return c
}

func TestModelLine(t *testing.T) {
	c := registerTestModel(t, "TESTDEV")
	sys := NewSetup()
	err := LoadConfig(strings.NewReader("testdev 80000000 size=64M, fast\n"), sys)
	if err != nil {
		t.Fatal(err)
	}
	if c.count != 1 {
		t.Fatalf("create called %d times expected: 1", c.count)
	}
	if c.base != 0x80000000 {
		t.Errorf("base not correct got: %08x expected: %08x", c.base, uint32(0x80000000))
	}
	if len(c.options) != 1 || c.options[0].Name != "SIZE" || c.options[0].EqualOpt != "64M" {
		t.Errorf("options not correct got: %+v", c.options)
	}
	if len(c.options[0].Value) != 1 || c.options[0].Value[0] != "fast" {
		t.Errorf("comma options not correct got: %+v", c.options[0].Value)
	}
}

func TestCommentsAndBlank(t *testing.T) {
	c := registerTestModel(t, "TESTDEV2")
	sys := NewSetup()
	conf := "# a comment line\n\n   # indented comment\ntestdev2 1000\n"
	if err := LoadConfig(strings.NewReader(conf), sys); err != nil {
		t.Fatal(err)
	}
	if c.count != 1 {
		t.Errorf("create called %d times expected: 1", c.count)
	}
	if c.base != 0x1000 {
		t.Errorf("base not correct got: %08x expected: %08x", c.base, uint32(0x1000))
	}
}

func TestModelRequiresAddress(t *testing.T) {
	registerTestModel(t, "TESTDEV3")
	sys := NewSetup()
	if err := LoadConfig(strings.NewReader("testdev3 nothex\n"), sys); err == nil {
		t.Error("model without address did not fail")
	}
}

func TestUnknownModel(t *testing.T) {
	sys := NewSetup()
	if err := LoadConfig(strings.NewReader("bogus 1000\n"), sys); err == nil {
		t.Error("unknown model did not fail")
	}
}

func TestMachineOptions(t *testing.T) {
	sys := NewSetup()
	conf := "reset 80001000\nimage boot/kernel.elf\nlogfile rv32.log\ntrace\n"
	if err := LoadConfig(strings.NewReader(conf), sys); err != nil {
		t.Fatal(err)
	}
	if sys.ResetVector != 0x80001000 {
		t.Errorf("reset vector not correct got: %08x expected: %08x", sys.ResetVector, uint32(0x80001000))
	}
	if sys.Image != "boot/kernel.elf" {
		t.Errorf("image not correct got: %s expected: boot/kernel.elf", sys.Image)
	}
	if sys.LogFile != "rv32.log" {
		t.Errorf("logfile not correct got: %s expected: rv32.log", sys.LogFile)
	}
	if !sys.Trace {
		t.Error("trace switch not set")
	}
}

func TestDefaultResetVector(t *testing.T) {
	sys := NewSetup()
	if sys.ResetVector != 0x80000000 {
		t.Errorf("default reset vector not correct got: %08x expected: %08x", sys.ResetVector, uint32(0x80000000))
	}
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		in   string
		want uint32
		ok   bool
	}{
		{"1024", 1024, true},
		{"4K", 4096, true},
		{"64M", 64 * 1024 * 1024, true},
		{"16k", 16 * 1024, true},
		{"", 0, false},
		{"12Q", 0, false},
		{"8192M", 0, false},
	}
	for _, tc := range tests {
		v, err := ParseSize(tc.in)
		if tc.ok && err != nil {
			t.Errorf("ParseSize(%q) failed: %v", tc.in, err)
			continue
		}
		if !tc.ok {
			if err == nil {
				t.Errorf("ParseSize(%q) did not fail", tc.in)
			}
			continue
		}
		if v != tc.want {
			t.Errorf("ParseSize(%q) not correct got: %d expected: %d", tc.in, v, tc.want)
		}
	}
}
