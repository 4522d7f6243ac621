// Copyright 2012 Michael Meier. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package mwm

import (
	"fmt"
	"time"
)

// Clock is the time source of a Device. Sleep is used for the clock
// settle time, Now for the write deadline.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type systemClock struct{}

func (systemClock) Now() time.Time        { return time.Now() }
func (systemClock) Sleep(d time.Duration) { time.Sleep(d) }

// SystemClock is backed by the time package.
var SystemClock Clock = systemClock{}

// DefaultSettle is the settle time of the reference firmware: 5µs per
// clock phase, i.e. a 100kHz SK.
const DefaultSettle = 5 * time.Microsecond

// Config holds the timing of a Device.
type Config struct {
	// ClockHz is the SK frequency. Each clock phase is held for half a
	// period. Ignored if Settle is set.
	ClockHz uint32

	// Settle is the time each clock phase is held. It must exceed the
	// device's data setup and hold times.
	Settle time.Duration

	// WriteTimeout bounds the busy-poll of WriteByte, Erase, EraseAll
	// and WriteAll. Zero waits forever.
	WriteTimeout time.Duration
}

var DefaultConfig = Config{ClockHz: 100_000}

// settle returns the per phase hold time for c.
func (c Config) settle() (time.Duration, error) {
	switch {
	case c.Settle < 0 || c.WriteTimeout < 0:
		return 0, fmt.Errorf("negative duration: %w", ErrInvalidConfig)
	case c.Settle > 0:
		return c.Settle, nil
	case c.ClockHz > 0:
		// half period, rounded up so the device never sees it short
		period := 2 * time.Duration(c.ClockHz)
		return (time.Second + period - 1) / period, nil
	}
	return DefaultSettle, nil
}
