/*
   Core RV32 emulator loop.

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

// Package core drives the CPU from its own goroutine. The console
// controls it through master packets; the CPU itself stays single
// threaded inside the loop.
package core

import (
	"fmt"
	"log/slog"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rcornwell/RV32/emu/cpu"
	"github.com/rcornwell/RV32/emu/disassemble"
	"github.com/rcornwell/RV32/emu/event"
	"github.com/rcornwell/RV32/emu/master"
	"github.com/rcornwell/RV32/util/ips"
)

// Cycles between instruction rate samples.
const ipsInterval = 1_000_000

// Core owns the CPU run loop.
type Core struct {
	wg      sync.WaitGroup
	done    chan struct{} // Signal to shutdown simulator.
	running bool          // Indicate when simulator should run or not.
	master  chan master.Packet
	cpu     *cpu.CPU
	events  event.Scheduler
	mon     *ips.Monitor
	rate    atomic.Uint64 // Last IPS rate, as float64 bits.
	trace   bool
}

// New wraps a CPU in a run loop controlled through masterChannel.
func New(c *cpu.CPU, masterChannel chan master.Packet, trace bool) *Core {
	return &Core{
		cpu:    c,
		master: masterChannel,
		done:   make(chan struct{}),
		trace:  trace,
	}
}

// Start runs the core loop until Stop. Call in its own goroutine.
func (core *Core) Start() {
	core.wg.Add(1)
	defer core.wg.Done()

	core.mon = ips.New(core.cpu.Cycle())
	core.events.Add(core.ipsSample, ipsInterval, 0)

	for {
		if core.running {
			core.step()
			select {
			case <-core.done:
				slog.Info("Shutdown CPU core")
				return
			case packet := <-core.master:
				core.processPacket(packet)
			default:
			}
		} else {
			select {
			case <-core.done:
				slog.Info("Shutdown CPU core")
				return
			case packet := <-core.master:
				core.processPacket(packet)
			}
		}
	}
}

// Stop a running core.
func (core *Core) Stop() {
	close(core.done)
	done := make(chan struct{})
	go func() {
		core.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return
	case <-time.After(time.Second):
		slog.Warn("Timed out waiting for CPU to finish.")
		return
	}
}

// CPU exposes the hart for console inspection. Only safe while the
// machine is halted.
func (core *Core) CPU() *cpu.CPU {
	return core.cpu
}

// Rate returns the last measured instructions per second.
func (core *Core) Rate() float64 {
	return math.Float64frombits(core.rate.Load())
}

// Run requests free running execution.
func (core *Core) Run() {
	core.master <- master.Packet{Msg: master.Start}
}

// Halt pauses execution and waits for the loop to acknowledge.
func (core *Core) Halt() {
	done := make(chan struct{})
	core.master <- master.Packet{Msg: master.Stop, Done: done}
	<-done
}

// StepN executes count instructions and waits for completion.
func (core *Core) StepN(count int) {
	done := make(chan struct{})
	core.master <- master.Packet{Msg: master.Step, Count: count, Done: done}
	<-done
}

// step runs one instruction and advances scheduled events.
func (core *Core) step() {
	if core.trace {
		if word, tr := core.cpu.Peek(core.cpu.PC(), 4); tr == nil {
			slog.Debug(fmt.Sprintf("%08x: %s", core.cpu.PC(),
				disassemble.Disassemble(word, core.cpu.PC())))
		}
	}
	core.cpu.Step()
	core.events.Advance(1)
}

// ipsSample logs the instruction rate and re-arms itself.
func (core *Core) ipsSample(int) {
	if rate, ok := core.mon.Update(core.cpu.Cycle()); ok {
		core.rate.Store(math.Float64bits(rate))
		slog.Info(fmt.Sprintf("IPS: %.2f", rate))
	}
	core.events.Add(core.ipsSample, ipsInterval, 0)
}

// Process a control packet.
func (core *Core) processPacket(packet master.Packet) {
	switch packet.Msg {
	case master.Start:
		core.mon = ips.New(core.cpu.Cycle())
		core.running = true
	case master.Stop:
		core.running = false
	case master.Step:
		count := packet.Count
		if count < 1 {
			count = 1
		}
		for range count {
			core.step()
		}
	}
	if packet.Done != nil {
		close(packet.Done)
	}
}
