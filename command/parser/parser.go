/*
 * RV32 - Console command parser.
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

package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rcornwell/RV32/emu/core"
	"github.com/rcornwell/RV32/emu/csr"
	dev "github.com/rcornwell/RV32/emu/device"
	"github.com/rcornwell/RV32/emu/disassemble"
	"github.com/rcornwell/RV32/emu/isa"
	"github.com/rcornwell/RV32/emu/loader"
)

// Context gives commands access to the machine.
type Context struct {
	Core    *core.Core
	RAM     dev.Memory // Boot RAM for the load command, may be nil.
	RAMBase uint32
}

type command struct {
	name string
	min  int // Shortest accepted abbreviation.
	help string
	proc func(ctx *Context, args []string) error
}

var commands = []command{
	{"step", 2, "step [count]        execute instructions one at a time", cmdStep},
	{"go", 1, "go                  start free running execution", cmdGo},
	{"stop", 2, "stop                halt execution", cmdStop},
	{"registers", 1, "registers           display integer registers", cmdRegisters},
	{"csr", 2, "csr                 display control registers", cmdCsr},
	{"memory", 1, "memory addr [len]   display memory words", cmdMemory},
	{"disassemble", 1, "disassemble addr [len]  disassemble memory", cmdDisassemble},
	{"load", 1, "load file           load a boot image into RAM", cmdLoad},
	{"ips", 2, "ips                 show instruction rate", cmdIps},
	{"help", 1, "help                this list", nil}, // proc set in init
	{"quit", 1, "quit                stop the emulator and exit", nil},
	{"exit", 2, "exit                same as quit", nil},
}

// ProcessCommand runs one console line. It reports true when the
// user asked to quit.
func ProcessCommand(line string, ctx *Context) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	name := strings.ToLower(fields[0])
	cmd := match(name)
	if cmd == nil {
		return false, errors.New("unknown command: " + name)
	}
	if cmd.proc == nil { // quit
		return true, nil
	}
	return false, cmd.proc(ctx, fields[1:])
}

// CompleteCmd returns the commands line could begin.
func CompleteCmd(line string) []string {
	var out []string
	for _, cmd := range commands {
		if strings.HasPrefix(cmd.name, strings.ToLower(line)) {
			out = append(out, cmd.name)
		}
	}
	return out
}

// match finds the first command in table order that name abbreviates
// with at least the command's minimum length.
func match(name string) *command {
	for i := range commands {
		cmd := &commands[i]
		if len(name) >= cmd.min && strings.HasPrefix(cmd.name, name) {
			return cmd
		}
	}
	return nil
}

// parseNumber accepts hex with or without an 0x prefix.
func parseNumber(value string) (uint32, error) {
	value = strings.TrimPrefix(strings.ToLower(value), "0x")
	v, err := strconv.ParseUint(value, 16, 32)
	if err != nil {
		return 0, errors.New("invalid hex number: " + value)
	}
	return uint32(v), nil
}

func cmdStep(ctx *Context, args []string) error {
	count := 1
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v < 1 {
			return errors.New("invalid step count")
		}
		count = v
	}
	ctx.Core.Halt()
	ctx.Core.StepN(count)
	c := ctx.Core.CPU()
	pc := c.PC()
	if word, tr := c.Peek(pc, 4); tr == nil {
		fmt.Printf("%08x: %s\n", pc, disassemble.Disassemble(word, pc))
	} else {
		fmt.Printf("%08x: <%v>\n", pc, tr)
	}
	return nil
}

func cmdGo(ctx *Context, args []string) error {
	ctx.Core.Run()
	return nil
}

func cmdStop(ctx *Context, args []string) error {
	ctx.Core.Halt()
	c := ctx.Core.CPU()
	fmt.Printf("stopped at %08x\n", c.PC())
	return nil
}

func cmdRegisters(ctx *Context, args []string) error {
	c := ctx.Core.CPU()
	for i := 0; i < 32; i += 4 {
		for j := i; j < i+4; j++ {
			fmt.Printf("%4s:%08x  ", isa.RegName(uint8(j)), c.Reg(uint8(j)))
		}
		fmt.Println()
	}
	fmt.Printf("pc:%08x  priv:%v  mcycle:%d  minstret:%d\n",
		c.PC(), c.Priv(), c.Cycle(), c.Instret())
	return nil
}

var csrList = []struct {
	name string
	addr uint16
}{
	{"mstatus", csr.MSTATUS},
	{"misa", csr.MISA},
	{"mie", csr.MIE},
	{"mtvec", csr.MTVEC},
	{"mscratch", csr.MSCRATCH},
	{"mepc", csr.MEPC},
	{"mcause", csr.MCAUSE},
	{"mtval", csr.MTVAL},
	{"mip", csr.MIP},
	{"satp", csr.SATP},
}

func cmdCsr(ctx *Context, args []string) error {
	c := ctx.Core.CPU()
	for i, reg := range csrList {
		v, err := c.CSR(reg.addr)
		if err != nil {
			continue
		}
		fmt.Printf("%8s:%08x  ", reg.name, v)
		if i%4 == 3 {
			fmt.Println()
		}
	}
	fmt.Println()
	return nil
}

func cmdMemory(ctx *Context, args []string) error {
	if len(args) == 0 {
		return errors.New("memory requires an address")
	}
	addr, err := parseNumber(args[0])
	if err != nil {
		return err
	}
	count := 8
	if len(args) > 1 {
		v, err := strconv.Atoi(args[1])
		if err != nil || v < 1 {
			return errors.New("invalid word count")
		}
		count = v
	}
	c := ctx.Core.CPU()
	for i := 0; i < count; i++ {
		a := addr + uint32(i)*4
		if i%4 == 0 {
			if i != 0 {
				fmt.Println()
			}
			fmt.Printf("%08x: ", a)
		}
		word, tr := c.Peek(a, 4)
		if tr != nil {
			fmt.Printf("<%v>", tr)
			break
		}
		fmt.Printf("%08x ", word)
	}
	fmt.Println()
	return nil
}

func cmdDisassemble(ctx *Context, args []string) error {
	if len(args) == 0 {
		return errors.New("disassemble requires an address")
	}
	addr, err := parseNumber(args[0])
	if err != nil {
		return err
	}
	count := 8
	if len(args) > 1 {
		v, err := strconv.Atoi(args[1])
		if err != nil || v < 1 {
			return errors.New("invalid instruction count")
		}
		count = v
	}
	c := ctx.Core.CPU()
	for i := 0; i < count; i++ {
		a := addr + uint32(i)*4
		word, tr := c.Peek(a, 4)
		if tr != nil {
			fmt.Printf("%08x: <%v>\n", a, tr)
			break
		}
		fmt.Printf("%08x: %s\n", a, disassemble.Disassemble(word, a))
	}
	return nil
}

func cmdLoad(ctx *Context, args []string) error {
	if len(args) == 0 {
		return errors.New("load requires a file name")
	}
	if ctx.RAM == nil {
		return errors.New("no RAM configured to load into")
	}
	ctx.Core.Halt()
	entry, err := loader.Load(args[0], ctx.RAM, ctx.RAMBase)
	if err != nil {
		return err
	}
	ctx.Core.CPU().SetPC(entry)
	fmt.Printf("loaded %s, pc set to %08x\n", args[0], entry)
	return nil
}

func cmdIps(ctx *Context, args []string) error {
	fmt.Printf("IPS: %.2f\n", ctx.Core.Rate())
	return nil
}

// cmdHelp reads the command table, so the table literal cannot name
// it without an initialization cycle; init attaches it instead.
func init() {
	for i := range commands {
		if commands[i].name == "help" {
			commands[i].proc = cmdHelp
		}
	}
}

func cmdHelp(ctx *Context, args []string) error {
	for _, cmd := range commands {
		fmt.Println("  " + cmd.help)
	}
	return nil
}
