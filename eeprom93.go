// Copyright 2012 Michael Meier. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package mwm

import (
	"errors"
	"io"
	"time"
)

type EEPROM93Config struct {
	Size         uint
	WriteTimeout time.Duration
}

// 64 byte cells; tWP is 10ms worst case over voltage.
var Conf_93C46 = EEPROM93Config{NumCells, 10 * time.Millisecond}

type ee93 struct {
	EEPROM93Config
	d *Device
	p uint // file pointer
}

// EEPROM93 gives file-like access to the cell array of a Device.
type EEPROM93 interface {
	io.Reader
	io.Seeker
	io.Writer
}

func NewEEPROM93(d *Device, conf EEPROM93Config) (EEPROM93, error) {
	if conf.Size == 0 || conf.Size > NumCells {
		return nil, errors.New("EEPROM93 size must be between 1 and 64 bytes")
	}

	return &ee93{EEPROM93Config: conf, d: d}, nil
}

func (e *ee93) Read(b []byte) (int, error) {
	if len(b) == 0 {
		return 0, nil
	}

	startpos := e.p
	endpos := startpos + uint(len(b))
	if endpos > e.Size {
		endpos = e.Size
	}

	if endpos <= startpos {
		return 0, io.EOF
	}

	n := 0
	for pos := startpos; pos < endpos; pos++ {
		b[n] = e.d.ReadByte(Addr(pos))
		n++
	}

	e.p += uint(n)

	return n, nil
}

func (e *ee93) Seek(offset int64, whence int) (int64, error) {
	P := int64(e.p)

	var nP int64
	switch whence {
	case io.SeekStart:
		nP = offset
	case io.SeekCurrent:
		nP = P + offset
	case io.SeekEnd:
		nP = int64(e.Size) + offset
	default:
		return P, errors.New("EEPROM93.Seek: invalid whence")
	}

	if nP < 0 {
		return P, errors.New("EEPROM93.Seek: negative position")
	}

	if nP > int64(e.Size) {
		return P, errors.New("EEPROM93.Seek: desired position beyond end of EEPROM array")
	}

	e.p = uint(nP)

	return nP, nil
}

func (e *ee93) Write(b []byte) (int, error) {
	origsize := len(b)

	for len(b) > 0 && e.p < e.Size {
		if err := e.d.WriteByteTimeout(Addr(e.p), b[0], e.WriteTimeout); err != nil {
			return origsize - len(b), err
		}

		e.p++
		b = b[1:]
	}

	if len(b) > 0 {
		// reached the end of the array
		return origsize - len(b), io.EOF
	}

	return origsize, nil
}
