// Copyright 2012 Michael Meier. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package mwm

const (
	AddrBits = 6
	NumCells = 1 << AddrBits

	addrMask = NumCells - 1
)

// Addr selects one byte cell of the device.
type Addr uint8

// Cell returns the address bits that go on the wire. Anything above
// bit 5 is dropped so it can never reach the opcode field.
func (a Addr) Cell() uint16 {
	return uint16(a) & addrMask
}

func (a Addr) Valid() bool {
	return a < NumCells
}
