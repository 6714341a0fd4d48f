/*
 * RV32 - Main process.
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

package main

import (
	"encoding/binary"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	getopt "github.com/pborman/getopt/v2"
	"github.com/rcornwell/RV32/command/parser"
	"github.com/rcornwell/RV32/command/reader"
	config "github.com/rcornwell/RV32/config/configparser"
	"github.com/rcornwell/RV32/emu/core"
	"github.com/rcornwell/RV32/emu/cpu"
	"github.com/rcornwell/RV32/emu/dram"
	"github.com/rcornwell/RV32/emu/loader"
	"github.com/rcornwell/RV32/emu/master"
	"github.com/rcornwell/RV32/emu/uart"
	logger "github.com/rcornwell/RV32/util/logger"
)

// Default machine when no configuration file names the devices.
const (
	defaultRAMBase  uint32 = 0x8000_0000
	defaultRAMSize  uint32 = 64 * 1024 * 1024
	defaultUARTBase uint32 = 0x1000_0000
)

// The built in demo program, run when no boot image is given.
var demoProgram = []uint32{
	0x00000513, // addi a0, zero, 0
	0x01050593, // addi a1, a0, 16
	0x0000006F, // j .
}

func main() {
	optConfig := getopt.StringLong("config", 'c', "rv32.cfg", "Configuration file")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optImage := getopt.StringLong("image", 'i', "", "Boot image, overrides configuration")
	optTrace := getopt.BoolLong("trace", 't', "Log every executed instruction")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	sys := config.NewSetup()
	if _, err := os.Stat(*optConfig); err == nil {
		if err := config.LoadConfigFile(*optConfig, sys); err != nil {
			slog.Error(err.Error())
			os.Exit(1)
		}
	}

	logName := sys.LogFile
	if *optLogFile != "" {
		logName = *optLogFile
	}
	var logWriter io.Writer
	if logName != "" {
		if file, err := os.Create(logName); err == nil {
			logWriter = file
		}
	}
	trace := *optTrace || sys.Trace
	programLevel := new(slog.LevelVar)
	programLevel.Set(slog.LevelDebug)
	Logger := slog.New(logger.NewHandler(logWriter, &slog.HandlerOptions{Level: programLevel}, trace))
	slog.SetDefault(Logger)

	Logger.Info("RV32 started")

	// Fall back to the default machine when the configuration did
	// not build one.
	if sys.RAM == nil {
		ram := dram.New(defaultRAMSize)
		sys.Bus.MapTo(defaultRAMBase, ram)
		sys.RAM = ram
		sys.RAMBase = defaultRAMBase
		sys.Bus.MapTo(defaultUARTBase, uart.New(nil))
	}
	if *optImage != "" {
		sys.Image = *optImage
	}

	c := cpu.NewWithReset(sys.Bus, sys.ResetVector)
	if sys.Image != "" {
		entry, err := loader.Load(sys.Image, sys.RAM, sys.RAMBase)
		if err != nil {
			Logger.Error(err.Error())
			os.Exit(1)
		}
		c.SetPC(entry)
	} else {
		program := make([]byte, 4*len(demoProgram))
		for i, w := range demoProgram {
			binary.LittleEndian.PutUint32(program[i*4:], w)
		}
		if err := sys.RAM.Flash(sys.ResetVector-sys.RAMBase, program); err != nil {
			Logger.Error(err.Error())
			os.Exit(1)
		}
		Logger.Info("No boot image, demo program loaded")
	}

	masterChannel := make(chan master.Packet)
	machine := core.New(c, masterChannel, trace)
	go machine.Start()

	// A SIGINT or SIGTERM outside the console prompt shuts down too.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		machine.Stop()
		os.Exit(0)
	}()

	reader.ConsoleReader(&parser.Context{
		Core:    machine,
		RAM:     sys.RAM,
		RAMBase: sys.RAMBase,
	})

	Logger.Info("Shutting down CPU")
	machine.Stop()
}
