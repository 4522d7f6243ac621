//go:build linux

// Package cdev drives the four MicroWire lines through the Linux GPIO
// character device.
package cdev

import (
	"github.com/warthog618/gpiod"

	"github.com/cleetus-j/mwm"
)

// Pins are line offsets on one chip.
type Pins struct {
	DataIn, DataOut, Clock, Select int

	// SelectActiveLow drives CS low when asserted.
	SelectActiveLow bool
}

// Lines implements mwm.Lines on requested gpiod lines. The Lines
// methods cannot return errors; the first one is kept and reported by
// Err.
type Lines struct {
	chip *gpiod.Chip
	di   *gpiod.Line
	do   *gpiod.Line
	sk   *gpiod.Line
	cs   *gpiod.Line
	err  error
}

var _ mwm.Lines = (*Lines)(nil)

// Open requests the lines as inputs. Directions are set by
// ConfigureDirections, i.e. by mwm.Device.Init.
func Open(chip string, p Pins) (*Lines, error) {
	c, err := gpiod.NewChip(chip, gpiod.WithConsumer("mwm"))
	if err != nil {
		return nil, err
	}

	l := &Lines{chip: c}
	defer func() {
		if err != nil {
			l.Close()
		}
	}()

	if l.di, err = c.RequestLine(p.DataIn, gpiod.AsInput); err != nil {
		return nil, err
	}
	if l.do, err = c.RequestLine(p.DataOut, gpiod.AsInput); err != nil {
		return nil, err
	}
	if l.sk, err = c.RequestLine(p.Clock, gpiod.AsInput); err != nil {
		return nil, err
	}
	if p.SelectActiveLow {
		l.cs, err = c.RequestLine(p.Select, gpiod.AsInput, gpiod.AsActiveLow)
	} else {
		l.cs, err = c.RequestLine(p.Select, gpiod.AsInput)
	}
	if err != nil {
		return nil, err
	}

	return l, nil
}

// Close releases the lines and the chip.
func (l *Lines) Close() error {
	for _, line := range []*gpiod.Line{l.di, l.do, l.sk, l.cs} {
		if line != nil {
			line.Close()
		}
	}
	return l.chip.Close()
}

// Err returns the first error seen on any line.
func (l *Lines) Err() error {
	return l.err
}

func (l *Lines) keep(err error) {
	if err != nil && l.err == nil {
		l.err = err
	}
}

func reconfigure(line *gpiod.Line, dir mwm.Direction) error {
	if dir == mwm.Output {
		return line.Reconfigure(gpiod.AsOutput(0))
	}
	return line.Reconfigure(gpiod.AsInput)
}

func (l *Lines) ConfigureDirections(d mwm.Directions) {
	l.keep(reconfigure(l.di, d.DataIn))
	l.keep(reconfigure(l.do, d.DataOut))
	l.keep(reconfigure(l.sk, d.Clock))
	l.keep(reconfigure(l.cs, d.Select))
}

func level(high bool) int {
	if high {
		return 1
	}
	return 0
}

func (l *Lines) SetDataIn(high bool) {
	l.keep(l.di.SetValue(level(high)))
}

func (l *Lines) ReadDataOut() bool {
	v, err := l.do.Value()
	l.keep(err)
	return v == 1
}

func (l *Lines) SetClock(high bool) {
	l.keep(l.sk.SetValue(level(high)))
}

func (l *Lines) SetSelect(asserted bool) {
	l.keep(l.cs.SetValue(level(asserted)))
}
