// Copyright 2012 Michael Meier. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package mwm

import "fmt"

const (
	CommandBits = 1 + 2 + AddrBits // start, opcode, address
	DataBits    = 8
)

// 93C46 instruction set, 64 x 8 bit organisation. A command frame is
// the start bit, a two bit opcode and the address field. Opcode 00
// uses the top two address bits as an extended opcode.
const (
	startBit = 1 << (CommandBits - 1)

	opRead  = startBit | 0x2<<AddrBits
	opWrite = startBit | 0x1<<AddrBits
	opErase = startBit | 0x3<<AddrBits
	opExt   = startBit | 0x0<<AddrBits

	opEWEN = opExt | 0x3<<(AddrBits-2)
	opERAL = opExt | 0x2<<(AddrBits-2)
	opWRAL = opExt | 0x1<<(AddrBits-2)
	opEWDS = opExt | 0x0<<(AddrBits-2)
)

// Frame is a fixed width bit sequence sent MSB first.
type Frame struct {
	Value uint16
	Width uint
}

func (f Frame) String() string {
	return fmt.Sprintf("%0*b", int(f.Width), f.Value&(1<<f.Width-1))
}

func command(op uint16, a Addr) Frame {
	return Frame{op | a.Cell(), CommandBits}
}

func data(b byte) Frame {
	return Frame{uint16(b), DataBits}
}

func ReadFrame(a Addr) Frame  { return command(opRead, a) }
func WriteFrame(a Addr) Frame { return command(opWrite, a) }
func EraseFrame(a Addr) Frame { return command(opErase, a) }

var (
	EWENFrame = Frame{opEWEN, CommandBits}
	EWDSFrame = Frame{opEWDS, CommandBits}
	ERALFrame = Frame{opERAL, CommandBits}
	WRALFrame = Frame{opWRAL, CommandBits}
)
