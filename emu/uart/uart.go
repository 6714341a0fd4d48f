/*
   RV32 - Console UART device.

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

package uart

import (
	"io"
	"os"

	config "github.com/rcornwell/RV32/config/configparser"
)

// Window of address space the UART occupies.
const regionSize = 0x1000

// Uart is a write only console. Loads read as zero; each store sends
// the low 8 bits of the value to the host stream as one byte.
type Uart struct {
	out io.Writer
}

// New returns a UART writing to out, or to stdout when out is nil.
func New(out io.Writer) *Uart {
	if out == nil {
		out = os.Stdout
	}
	return &Uart{out: out}
}

func (u *Uart) Name() string {
	return "UART"
}

func (u *Uart) Size() uint32 {
	return regionSize
}

func (u *Uart) Load(offset uint32, size int) (uint32, error) {
	return 0, nil
}

func (u *Uart) Store(offset uint32, size int, value uint32) error {
	_, err := u.out.Write([]byte{uint8(value)})
	return err
}

// create builds a UART from a configuration line of the form
//
//	UART 10000000
func create(sys *config.Setup, base uint32, options []config.Option) error {
	sys.Bus.MapTo(base, New(nil))
	return nil
}

func init() {
	config.RegisterModel("UART", config.TypeModel, create)
}
