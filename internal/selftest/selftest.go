// Package selftest writes a byte, reads it back and reports the result
// as a short transcript, like the power-on check of the firmware.
package selftest

import (
	"fmt"
	"io"

	"github.com/cleetus-j/mwm"
)

// Defaults of the firmware's check.
const (
	DefaultAddr  mwm.Addr = 0x10
	DefaultValue byte     = 0xa5
)

// Cells is the part of *mwm.Device the check needs.
type Cells interface {
	WriteByte(a mwm.Addr, b byte) error
	ReadByte(a mwm.Addr) byte
}

// Run writes v to a, reads it back and writes the transcript to w. It
// reports whether the value survived. A write error ends the check as
// failed.
func Run(w io.Writer, c Cells, a mwm.Addr, v byte) (bool, error) {
	p := &printer{w: w}

	p.printf("EEPROM Test:\n")
	p.printf("Writing 0x%02X to address 0x%02X...\n", v, uint8(a))
	if err := c.WriteByte(a, v); err != nil {
		p.printf("Write failed: %v\n", err)
		p.printf("EEPROM test FAILED!\n")
		return false, p.err
	}

	p.printf("Reading address 0x%02X...\n", uint8(a))
	got := c.ReadByte(a)
	p.printf("Read value = 0x%02X\n", got)

	ok := got == v
	if ok {
		p.printf("EEPROM test OK!\n")
	} else {
		p.printf("EEPROM test FAILED!\n")
	}
	return ok, p.err
}

type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}
