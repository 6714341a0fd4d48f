/*
 * RV32 - Configuration file parser
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
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/rcornwell/RV32/emu/bus"
	dev "github.com/rcornwell/RV32/emu/device"
)

/* Configuration file format:
 *
 * '#' indicates comment, rest of line is ignored.
 * <line> := <model> <whitespace> <address> <whitespace> <options> |
 *            <option-name> <whitespace> <value>
 * <model> := <string>
 * <address> ::= <hexnumber>
 * <options> ::= *(<option> *(<whitespace>))
 * <option> ::= <name> [ '=' <quoteopt> ] *(',' <string>)
 * <quoteopt> ::= <string> | '"' *(<letter> | <whitespace>) '"'
 *
 * Model lines instantiate a device at a bus address:
 *
 *	DRAM 80000000 size=64M
 *	UART 10000000
 *
 * Option lines set machine parameters:
 *
 *	RESET 80000000
 *	IMAGE kernel.elf
 *	LOGFILE rv32.log
 */

// Setup carries the machine under construction through the create
// functions registered by the device packages.
type Setup struct {
	Bus         *bus.Bus   // System bus devices attach to.
	RAM         dev.Memory // First RAM device, target of the image loader.
	RAMBase     uint32     // Bus address of RAM.
	ResetVector uint32     // CPU reset vector.
	Image       string     // Boot image path, empty for none.
	LogFile     string     // Log file path, empty for none.
	Trace       bool       // Log each executed instruction.
}

// NewSetup returns a Setup with an empty bus and the default reset
// vector.
func NewSetup() *Setup {
	return &Setup{Bus: bus.New(), ResetVector: 0x80000000}
}

// List of options to pass to create routine.
type Option struct {
	Name     string   // Name of option.
	EqualOpt string   // Value of string after =.
	Value    []string // Comma list following the option.
}

// First token after the model name.
type firstOption struct {
	base   uint32 // Value of option if hex.
	isAddr bool   // Valid address in base.
	value  string // String value of option.
}

// Current option line being parsed.
type optionLine struct {
	line string // Current option line.
	pos  int    // Current position in line.
	sys  *Setup
}

const (
	TypeModel  = 1 + iota // Device attached to a bus address.
	TypeOption            // Option with a single parameter.
	TypeSwitch            // Option used only to set a flag.
)

// Model creation list.
type modelDef struct {
	create CreateFunc
	ty     int
}

// CreateFunc instantiates a registered model. base is the parsed bus
// address for TypeModel entries and the parsed value for TypeOption
// entries whose parameter is a hex number.
type CreateFunc func(sys *Setup, base uint32, options []Option) error

var models = map[string]modelDef{}

var lineNumber int

// Return type of model or 0 if no model.
func getModel(mod string) int {
	model, ok := models[mod]
	if !ok {
		return 0
	}
	return model.ty
}

// RegisterModel should be called from init functions of device
// packages.
func RegisterModel(mod string, ty int, fn CreateFunc) {
	mod = strings.ToUpper(mod)
	models[mod] = modelDef{create: fn, ty: ty}
}

// Create a device of type model.
func (line *optionLine) createModel(mod string, first *firstOption, options []Option) error {
	model := models[strings.ToUpper(mod)]
	return model.create(line.sys, first.base, options)
}

// Create a option with one parameter.
func (line *optionLine) createOption(mod string, first *firstOption) error {
	model := models[strings.ToUpper(mod)]
	return model.create(line.sys, first.base, []Option{{Name: "VALUE", EqualOpt: first.value}})
}

// Create switch option.
func (line *optionLine) createSwitch(mod string) error {
	model := models[strings.ToUpper(mod)]
	return model.create(line.sys, 0, nil)
}

// LoadConfigFile reads a configuration file and builds the machine
// described in it into sys.
func LoadConfigFile(name string, sys *Setup) error {
	file, err := os.Open(name)
	if err != nil {
		return err
	}
	defer file.Close()
	return LoadConfig(file, sys)
}

// LoadConfig parses configuration text from a reader.
func LoadConfig(in io.Reader, sys *Setup) error {
	lineNumber = 0
	reader := bufio.NewReader(in)
	for {
		var err error

		line := optionLine{sys: sys}
		line.line, err = reader.ReadString('\n')
		lineNumber++
		if len(line.line) == 0 && err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		if err := line.parseLine(); err != nil {
			return err
		}
	}
	return nil
}

// ParseSize converts a size string with an optional K or M suffix to
// bytes.
func ParseSize(value string) (uint32, error) {
	if value == "" {
		return 0, errors.New("empty size value")
	}
	mult := uint64(1)
	switch value[len(value)-1] {
	case 'K', 'k':
		mult = 1024
		value = value[:len(value)-1]
	case 'M', 'm':
		mult = 1024 * 1024
		value = value[:len(value)-1]
	}
	v, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return 0, errors.New("invalid size value: " + value)
	}
	v *= mult
	if v > 1<<32-1 {
		return 0, errors.New("size value too large: " + value)
	}
	return uint32(v), nil
}

// Parse one line from file.
func (line *optionLine) parseLine() error {
	model := line.parseModel()
	if model == "" {
		return nil
	}
	switch getModel(model) {
	case TypeModel:
		// Get device base address.
		first := line.parseFirst()
		if first == nil || !first.isAddr {
			return fmt.Errorf("device %s requires bus address, line: %d", model, lineNumber)
		}
		// Get any remaining options.
		options, err := line.parseOptions()
		if err != nil {
			return err
		}

		// Try and create the device.
		return line.createModel(model, first, options)

	case TypeOption:
		first := line.parseFirst()
		line.skipSpace()
		if !line.isEOL() || first == nil {
			return fmt.Errorf("option %s not followed by single value, line: %d", model, lineNumber)
		}
		return line.createOption(model, first)

	case TypeSwitch:
		line.skipSpace()
		if !line.isEOL() {
			return fmt.Errorf("switch option %s followed by options, line: %d", model, lineNumber)
		}
		return line.createSwitch(model)

	case 0:
		return fmt.Errorf("no model %s registered, line: %d", model, lineNumber)
	}
	return nil
}

// Skip forward over line until none whitespace character found.
func (line *optionLine) skipSpace() {
	for line.pos < len(line.line) {
		if !unicode.IsSpace(rune(line.line[line.pos])) {
			return
		}
		line.pos++
	}
}

// Check if at end of line.
func (line *optionLine) isEOL() bool {
	if line.pos >= len(line.line) {
		return true
	}
	return line.line[line.pos] == '#'
}

// Return next letter or digit in line. 0 if EOL or space.
func (line *optionLine) getNext(inQuote bool) byte {
	line.pos++
	if line.isEOL() {
		return 0
	}
	by := line.line[line.pos]
	if unicode.IsLetter(rune(by)) || unicode.IsNumber(rune(by)) || by == '.' || by == '/' || by == '_' || inQuote {
		return by
	}
	return 0
}

// Peek at next character.
func (line *optionLine) getPeek() byte {
	if (line.pos + 1) >= len(line.line) {
		return 0
	}
	return line.line[line.pos+1]
}

// Parse model name.
func (line *optionLine) parseModel() string {
	// Skip leading space
	line.skipSpace()
	// Check if end of line.
	if line.isEOL() {
		return ""
	}

	model := ""
	for !line.isEOL() {
		by := line.line[line.pos]
		if !unicode.IsLetter(rune(by)) && !unicode.IsNumber(rune(by)) {
			break
		}
		model += string(by)
		line.pos++
	}
	return strings.ToUpper(model)
}

// Parse first option parameter. File names and hex addresses both
// land here; the hex parse decides which it was.
func (line *optionLine) parseFirst() *firstOption {
	// Skip leading space
	line.skipSpace()
	// Check if end of line.
	if line.isEOL() {
		return nil
	}

	value := ""
	for !line.isEOL() {
		by := line.line[line.pos]
		if !unicode.IsLetter(rune(by)) && !unicode.IsNumber(rune(by)) && by != '.' && by != '/' && by != '_' && by != '-' {
			break
		}
		value += string(by)
		line.pos++
	}

	option := firstOption{value: value}

	base, err := strconv.ParseUint(value, 16, 32)
	if err == nil {
		option.base = uint32(base)
		option.isAddr = true
	}
	return &option
}

// Parse string that is "string" or just string.
func (line *optionLine) parseQuoteString() (string, bool) {
	inQuote := false
	value := ""

	// If quote, set we are in quoted string
	if line.getPeek() == '"' {
		inQuote = true
		_ = line.getNext(true)
	}

	for {
		by := line.getNext(inQuote)
		// If processing a quoted string "" gets replaced by single quote
		if by == '"' && inQuote {
			by = line.getNext(inQuote)
			if by != '"' {
				// Hit end of string.
				return value, true
			}
		}

		space := unicode.IsSpace(rune(by))
		// Space or comma terminates a non quoted string.
		if !inQuote && (space || by == 0 || by == ',') {
			return value, true
		}

		value += string(by)
		// If we hit end of line, stop processing.
		if line.isEOL() {
			return value, !inQuote
		}
	}
}

// Parse option name.
func (line *optionLine) getName() (string, error) {
	// Check if end of line.
	if line.isEOL() {
		return "", nil
	}

	// First character must be alphabetic.
	by := line.line[line.pos]
	if !unicode.IsLetter(rune(by)) {
		return "", fmt.Errorf("invalid option encountered line: %d [%d]", lineNumber, line.pos)
	}
	value := ""

	// Already verified that first character is letter,
	// so grab until not letter or number.
	for by != 0 {
		value += string(by)
		by = line.getNext(false)
	}

	return value, nil
}

// Parse one option for a line.
func (line *optionLine) parseOption() (*Option, error) {
	// Skip leading space
	line.skipSpace()

	// Grab option name
	value, err := line.getName()
	if value == "" {
		return nil, err
	}

	option := Option{Name: strings.ToUpper(value)}

	// If at end of line done.
	if line.isEOL() {
		return &option, nil
	}

	// Check if equals option.
	if line.line[line.pos] == '=' {
		v, ok := line.parseQuoteString()
		if !ok {
			return nil, fmt.Errorf("invalid quoted string line: %d [%d]", lineNumber, line.pos)
		}
		option.EqualOpt = v
	}

	// Skip any spaces.
	line.skipSpace()

	// Grab all , options
	for !line.isEOL() && line.line[line.pos] == ',' {
		line.pos++ // Skip comma
		// Skip space between , and next option
		line.skipSpace()
		v, err := line.getName()
		if err != nil {
			return nil, err
		}
		if v != "" {
			option.Value = append(option.Value, v)
		}
		// Skip any trailing spaces.
		line.skipSpace()
	}

	return &option, nil
}

// Collect all options for line.
func (line *optionLine) parseOptions() ([]Option, error) {
	options := []Option{}
	for {
		option, err := line.parseOption()
		if err != nil {
			return nil, err
		}
		if option == nil {
			break
		}
		options = append(options, *option)
	}
	return options, nil
}

// Machine level options.
func init() {
	RegisterModel("RESET", TypeOption, func(sys *Setup, base uint32, options []Option) error {
		v, err := strconv.ParseUint(options[0].EqualOpt, 16, 32)
		if err != nil {
			return errors.New("RESET requires a hex address: " + options[0].EqualOpt)
		}
		sys.ResetVector = uint32(v)
		return nil
	})
	RegisterModel("TRACE", TypeSwitch, func(sys *Setup, base uint32, options []Option) error {
		sys.Trace = true
		return nil
	})
	RegisterModel("IMAGE", TypeOption, func(sys *Setup, base uint32, options []Option) error {
		sys.Image = options[0].EqualOpt
		return nil
	})
	RegisterModel("LOGFILE", TypeOption, func(sys *Setup, base uint32, options []Option) error {
		sys.LogFile = options[0].EqualOpt
		return nil
	})
}
