// Copyright 2012 Michael Meier. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package mwm

import (
	"fmt"
	"sync"
	"time"

	"golang.org/x/exp/slog"
)

// Device drives a MicroWire EEPROM over four bit-banged lines.
//
// Every exported method runs with the device lock held and, if an
// Interrupts capability was given, with interrupts masked. Methods
// must not be called from an interrupt handler.
type Device struct {
	mu     sync.Mutex
	lines  Lines
	conf   Config
	settle time.Duration
	clock  Clock
	irq    Interrupts
	log    *slog.Logger
}

// Option configures a Device.
type Option func(*Device)

// WithClock replaces the time source used for settle delays and
// write deadlines.
func WithClock(c Clock) Option {
	return func(d *Device) {
		d.clock = c
	}
}

// WithInterrupts masks interrupts for the duration of each operation.
func WithInterrupts(irq Interrupts) Option {
	return func(d *Device) {
		d.irq = irq
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(d *Device) {
		d.log = l
	}
}

// New binds a Device to l. Call Init before the first operation.
func New(l Lines, conf Config, options ...Option) (*Device, error) {
	settle, err := conf.settle()
	if err != nil {
		return nil, err
	}

	d := &Device{
		lines:  l,
		conf:   conf,
		settle: settle,
		clock:  SystemClock,
	}
	for _, option := range options {
		option(d)
	}
	if d.log == nil {
		d.log = slog.Default()
	}

	return d, nil
}

// Settle returns the time each clock phase is held.
func (d *Device) Settle() time.Duration {
	return d.settle
}

// enter takes the device for one operation. The returned func
// releases it.
func (d *Device) enter() func() {
	d.mu.Lock()
	if d.irq == nil {
		return d.mu.Unlock
	}
	state := d.irq.Disable()
	return func() {
		d.irq.Restore(state)
		d.mu.Unlock()
	}
}

// Init configures the line directions and drives the idle levels: DI
// and SK low, CS deasserted.
func (d *Device) Init() {
	defer d.enter()()

	if m, ok := d.lines.(AnalogMux); ok {
		m.DisableAnalog()
	}
	d.lines.ConfigureDirections(BusDirections)
	d.lines.SetDataIn(false)
	d.lines.SetClock(false)
	d.lines.SetSelect(false)
}

// pulse gives one clock cycle. The device latches DI on the rising
// edge and shifts DO after it.
func (d *Device) pulse() {
	d.lines.SetClock(true)
	d.clock.Sleep(d.settle)
	d.lines.SetClock(false)
	d.clock.Sleep(d.settle)
}

// sendBits puts bits width-1 down to 0 of v on DI, one pulse per bit.
func (d *Device) sendBits(v uint16, width uint) {
	for i := width; i > 0; i-- {
		d.lines.SetDataIn(v&(1<<(i-1)) != 0)
		d.pulse()
	}
}

// transact sends frames back to back inside one select bracket.
func (d *Device) transact(frames ...Frame) {
	d.lines.SetSelect(true)
	for _, f := range frames {
		d.sendBits(f.Value, f.Width)
	}
	d.lines.SetSelect(false)
	d.lines.SetDataIn(false)
}

// ReadByte returns the cell at a. There is no acknowledgement: a
// missing device reads as whatever level DO floats to.
func (d *Device) ReadByte(a Addr) byte {
	defer d.enter()()

	d.lines.SetSelect(true)
	d.sendBits(ReadFrame(a).Value, CommandBits)

	// the dummy zero after the address is shifted out by the first pulse
	var b byte
	for i := 0; i < DataBits; i++ {
		d.pulse()
		b <<= 1
		if d.lines.ReadDataOut() {
			b |= 1
		}
	}

	d.lines.SetSelect(false)
	d.lines.SetDataIn(false)
	return b
}

func (d *Device) WriteEnable() {
	defer d.enter()()
	d.transact(EWENFrame)
}

func (d *Device) WriteDisable() {
	defer d.enter()()
	d.transact(EWDSFrame)
}

// WriteByte programs b into cell a and waits for the write cycle to
// finish. With a zero Config.WriteTimeout it blocks until the device
// reports ready and always returns nil.
func (d *Device) WriteByte(a Addr, b byte) error {
	return d.WriteByteTimeout(a, b, d.conf.WriteTimeout)
}

// WriteByteTimeout is WriteByte with an explicit bound on the busy-poll.
// A zero limit waits forever. If the device is still busy after limit
// the returned error wraps ErrWriteTimeout.
func (d *Device) WriteByteTimeout(a Addr, b byte, limit time.Duration) error {
	defer d.enter()()
	return d.program(limit, WriteFrame(a), data(b))
}

// Erase sets cell a to 0xff.
func (d *Device) Erase(a Addr) error {
	defer d.enter()()
	return d.program(d.conf.WriteTimeout, EraseFrame(a))
}

// EraseAll sets every cell to 0xff.
func (d *Device) EraseAll() error {
	defer d.enter()()
	return d.program(d.conf.WriteTimeout, ERALFrame)
}

// WriteAll programs b into every cell.
func (d *Device) WriteAll(b byte) error {
	defer d.enter()()
	return d.program(d.conf.WriteTimeout, WRALFrame, data(b))
}

// program runs one programming instruction between EWEN and EWDS.
func (d *Device) program(limit time.Duration, frames ...Frame) error {
	d.transact(EWENFrame)
	defer d.transact(EWDSFrame)

	d.transact(frames...)
	if err := d.waitReady(limit); err != nil {
		d.log.Warn("write cycle timed out", "frame", frames[0].String(), "limit", limit)
		return fmt.Errorf("frame %v: %w", frames[0], err)
	}
	return nil
}

// waitReady polls DO with CS asserted. The device holds DO low while
// the write cycle runs and raises it when done.
func (d *Device) waitReady(limit time.Duration) error {
	// a high DI on a rising edge would be taken as a start bit
	d.lines.SetDataIn(false)
	d.lines.SetSelect(true)
	defer d.lines.SetSelect(false)

	start := d.clock.Now()
	polls := 0
	for !d.lines.ReadDataOut() {
		if limit > 0 && d.clock.Now().Sub(start) >= limit {
			return ErrWriteTimeout
		}
		d.pulse()
		polls++
	}

	d.log.Debug("write cycle done", "polls", polls, "elapsed", d.clock.Now().Sub(start))
	return nil
}
