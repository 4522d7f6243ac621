// Package sim models a 93C46 serial EEPROM (64 x 8 bit) at the pin
// level. An *EEPROM implements mwm.Lines, so a Device can be driven
// against it without hardware.
//
// The model is clocked by the master only. A write cycle lasts a fixed
// number of SK pulses given while CS is asserted, which makes busy-poll
// behaviour deterministic in tests.
package sim

import (
	"fmt"

	"github.com/cleetus-j/mwm"
)

type state int

const (
	stStatus  state = iota // CS up, waiting for a start bit; DO shows ready/busy
	stOpcode               // shifting in the two opcode bits
	stAddress              // shifting in the address field
	stData                 // shifting in the data frame of WRITE/WRAL
	stReadOut              // shifting out the addressed cell
	stDone                 // frame complete, ignoring SK until CS drops
)

const (
	opExt   = 0x0
	opWrite = 0x1
	opRead  = 0x2
	opErase = 0x3
)

// EEPROM is the device model. Mem may be preloaded; New fills it with
// 0xff like an erased part.
type EEPROM struct {
	Mem [mwm.NumCells]byte

	// WriteCycle is the number of SK pulses a write, erase or erase
	// all takes.
	WriteCycle int

	// Float is what DO reads while the device does not drive it.
	Float bool

	// Analog is true until DisableAnalog is called.
	Analog bool

	// Counters for tests.
	Pulses     int // rising SK edges with CS asserted
	BusyPulses int // rising SK edges spent in a write cycle
	Cycles     int // completed write cycles

	configured bool
	dirs       mwm.Directions

	cs, sk, di, do bool

	enabled bool
	busy    int
	commit  func()
	pending func()

	st    state
	shift uint16
	n     int
	op    uint16
	addr  uint16
	out   int
}

func New(writeCycle int) *EEPROM {
	e := &EEPROM{WriteCycle: writeCycle, Analog: true}
	for i := range e.Mem {
		e.Mem[i] = 0xff
	}
	return e
}

// WriteEnabled reports whether an EWEN was seen since the last EWDS.
func (e *EEPROM) WriteEnabled() bool {
	return e.enabled
}

// Busy reports whether a write cycle is running.
func (e *EEPROM) Busy() bool {
	return e.busy > 0
}

// Selected reports the logical CS level.
func (e *EEPROM) Selected() bool {
	return e.cs
}

func (e *EEPROM) Directions() mwm.Directions {
	return e.dirs
}

func (e *EEPROM) DisableAnalog() {
	e.Analog = false
}

func (e *EEPROM) ConfigureDirections(d mwm.Directions) {
	e.dirs = d
	e.configured = true
}

func (e *EEPROM) mustDrive(role string, dir mwm.Direction) {
	if !e.configured {
		panic(fmt.Sprintf("sim: %s used before line directions were configured", role))
	}
	if dir != mwm.Output {
		panic(fmt.Sprintf("sim: host drives %s, but it is configured as %v", role, dir))
	}
}

func (e *EEPROM) SetDataIn(high bool) {
	e.mustDrive("DI", e.dirs.DataIn)
	e.di = high
}

func (e *EEPROM) ReadDataOut() bool {
	if !e.configured || e.dirs.DataOut != mwm.Input {
		panic("sim: DO read while not configured as input")
	}
	if !e.cs {
		return e.Float
	}
	return e.do
}

func (e *EEPROM) SetClock(high bool) {
	e.mustDrive("SK", e.dirs.Clock)
	rising := high && !e.sk
	e.sk = high
	if rising && e.cs {
		e.Pulses++
		e.rise()
	}
}

func (e *EEPROM) SetSelect(asserted bool) {
	e.mustDrive("CS", e.dirs.Select)
	if asserted == e.cs {
		return
	}
	e.cs = asserted

	if !asserted {
		// a programming instruction starts on the falling CS edge
		if e.pending != nil && e.enabled {
			e.startCycle(e.pending)
		}
		e.pending = nil
		return
	}

	e.st = stStatus
	e.do = e.busy == 0
}

func (e *EEPROM) startCycle(commit func()) {
	if e.WriteCycle <= 0 {
		commit()
		e.Cycles++
		return
	}
	e.busy = e.WriteCycle
	e.commit = commit
}

func (e *EEPROM) rise() {
	bit := uint16(0)
	if e.di {
		bit = 1
	}

	switch e.st {
	case stStatus:
		if e.busy > 0 {
			e.BusyPulses++
			e.busy--
			if e.busy == 0 {
				e.commit()
				e.commit = nil
				e.Cycles++
				e.do = true
			}
			return
		}
		if bit == 1 {
			e.st = stOpcode
			e.shift, e.n = 0, 0
		}

	case stOpcode:
		e.shift = e.shift<<1 | bit
		e.n++
		if e.n == 2 {
			e.op = e.shift
			e.st = stAddress
			e.shift, e.n = 0, 0
		}

	case stAddress:
		e.shift = e.shift<<1 | bit
		e.n++
		if e.n == mwm.AddrBits {
			e.addr = e.shift
			e.decode()
		}

	case stData:
		e.shift = e.shift<<1 | bit
		e.n++
		if e.n == mwm.DataBits {
			e.latch(byte(e.shift))
			e.st = stDone
		}

	case stReadOut:
		e.do = e.Mem[e.addr]&(1<<uint(e.out)) != 0
		e.out--
		if e.out < 0 {
			e.st = stDone
		}
	}
}

// decode runs once the address field is complete.
func (e *EEPROM) decode() {
	e.shift, e.n = 0, 0
	e.st = stDone

	switch e.op {
	case opRead:
		e.do = false // dummy bit
		e.out = mwm.DataBits - 1
		e.st = stReadOut
	case opWrite:
		e.st = stData
	case opErase:
		a := e.addr
		e.pending = func() { e.Mem[a] = 0xff }
	case opExt:
		switch e.addr >> (mwm.AddrBits - 2) {
		case 0x3:
			e.enabled = true
		case 0x0:
			e.enabled = false
		case 0x2:
			e.pending = func() { e.fill(0xff) }
		case 0x1:
			e.st = stData
		}
	}
}

// latch takes the data frame of WRITE or WRAL.
func (e *EEPROM) latch(b byte) {
	if e.op == opWrite {
		a := e.addr
		e.pending = func() { e.Mem[a] = b }
		return
	}
	e.pending = func() { e.fill(b) }
}

func (e *EEPROM) fill(b byte) {
	for i := range e.Mem {
		e.Mem[i] = b
	}
}
