// Copyright 2012 Michael Meier. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package mwm

// Direction of a single digital line.
type Direction uint8

const (
	Input Direction = iota
	Output
)

func (d Direction) String() string {
	if d == Output {
		return "output"
	}
	return "input"
}

// Directions holds one direction per signal role.
type Directions struct {
	DataIn  Direction // DI, host to device
	DataOut Direction // DO, device to host
	Clock   Direction // SK
	Select  Direction // CS
}

// BusDirections is the only configuration a MicroWire master uses.
var BusDirections = Directions{
	DataIn:  Output,
	DataOut: Input,
	Clock:   Output,
	Select:  Output,
}

// Lines is the four wire capability a platform supplies. The methods
// cannot fail: on a microcontroller they are single register writes.
// Backends that can fail keep the error themselves.
//
// SetSelect takes the logical state; mapping to an active-high or
// active-low pin is the backend's business.
type Lines interface {
	ConfigureDirections(d Directions)
	SetDataIn(high bool)
	ReadDataOut() bool
	SetClock(high bool)
	SetSelect(asserted bool)
}

// AnalogMux is implemented by Lines whose pins power up as analog
// inputs and must be switched to digital I/O once.
type AnalogMux interface {
	DisableAnalog()
}

// Interrupts masks and restores interrupts around an operation.
// Disable returns the previous state, which is handed back to Restore.
type Interrupts interface {
	Disable() uintptr
	Restore(state uintptr)
}
