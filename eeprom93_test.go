// Copyright 2012 Michael Meier. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package mwm_test

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/cleetus-j/mwm"
	"github.com/cleetus-j/mwm/sim"
)

func newEEPROM93(t *testing.T, writeCycle int, conf mwm.EEPROM93Config) (mwm.EEPROM93, *sim.EEPROM) {
	t.Helper()
	d, ee, _ := newSimDevice(t, writeCycle, mwm.Config{Settle: time.Microsecond})
	e, err := mwm.NewEEPROM93(d, conf)
	if err != nil {
		t.Fatalf("NewEEPROM93 should not fail in this context. it did with %T: %#v\n", err, err)
	}
	return e, ee
}

func TestEEPROM93Config(t *testing.T) {
	d, _, _ := newSimDevice(t, 0, mwm.DefaultConfig)
	for _, size := range []uint{0, 65} {
		if _, err := mwm.NewEEPROM93(d, mwm.EEPROM93Config{Size: size}); err == nil {
			t.Errorf("NewEEPROM93 accepted size %d", size)
		}
	}
}

func TestEEPROM93EOF(t *testing.T) {
	conf := mwm.Conf_93C46
	ee, _ := newEEPROM93(t, 2, conf)

	if _, err := ee.Seek(int64(conf.Size-3), io.SeekStart); err != nil {
		t.Fatalf("seek should not fail in this context. it did with %T: %#v\n", err, err)
	}

	rb := make([]byte, 16)
	n, err := ee.Read(rb)
	if n != 3 {
		t.Fatalf("expected to read 3 bytes, got %d\n", n)
	}
	if err != nil {
		t.Fatalf("expected no error with a partial read, got %T: %#v", err, err)
	}

	n, err = ee.Read(rb)
	if n != 0 {
		t.Fatalf("expected to read 0 bytes with the second shot, got %d\n", n)
	}
	if err != io.EOF {
		t.Fatalf("did not get back io.EOF even though EEPROM93 was asked twice, got: %T: %#v\n", err, err)
	}
}

func TestEEPROM93WriteRead(t *testing.T) {
	ee, dev := newEEPROM93(t, 3, mwm.Conf_93C46)

	msg := []byte("persist me")
	if _, err := ee.Seek(10, io.SeekStart); err != nil {
		t.Fatal(err)
	}
	n, err := ee.Write(msg)
	if n != len(msg) || err != nil {
		t.Fatalf("Write: n %d err %v", n, err)
	}

	if !bytes.Equal(dev.Mem[10:10+len(msg)], msg) {
		t.Fatalf("model holds %q", dev.Mem[10:10+len(msg)])
	}

	if pos, err := ee.Seek(-int64(len(msg)), io.SeekCurrent); err != nil || pos != 10 {
		t.Fatalf("Seek back: pos %d err %v", pos, err)
	}
	rb := make([]byte, len(msg))
	if _, err := io.ReadFull(ee, rb); err != nil {
		t.Fatalf("ReadFull: %v", err)
	}
	if diff := cmp.Diff(msg, rb); diff != "" {
		t.Fatalf("read back mismatch (-want +got):\n%s", diff)
	}
}

func TestEEPROM93WritePastEnd(t *testing.T) {
	ee, dev := newEEPROM93(t, 0, mwm.Conf_93C46)

	if _, err := ee.Seek(-2, io.SeekEnd); err != nil {
		t.Fatal(err)
	}
	n, err := ee.Write([]byte{1, 2, 3, 4})
	if n != 2 || err != io.EOF {
		t.Fatalf("expected 2 bytes and io.EOF, got %d %v", n, err)
	}
	if dev.Mem[62] != 1 || dev.Mem[63] != 2 {
		t.Fatalf("tail holds % x", dev.Mem[62:])
	}
}

func TestEEPROM93WriteTimeout(t *testing.T) {
	ee, _ := newEEPROM93(t, 1<<30, mwm.EEPROM93Config{Size: 64, WriteTimeout: 50 * time.Microsecond})

	n, err := ee.Write([]byte{1, 2})
	if n != 0 || !errors.Is(err, mwm.ErrWriteTimeout) {
		t.Fatalf("expected 0 bytes and ErrWriteTimeout, got %d %v", n, err)
	}
}

func TestEEPROM93Seek(t *testing.T) {
	ee, _ := newEEPROM93(t, 0, mwm.Conf_93C46)

	tests := []struct {
		offset int64
		whence int
		pos    int64
		fail   bool
	}{
		{0, io.SeekEnd, 64, false},
		{1, io.SeekEnd, 64, true},
		{-65, io.SeekEnd, 64, true},
		{-64, io.SeekCurrent, 0, false},
		{5, io.SeekCurrent, 5, false},
		{3, 42, 5, true},
	}

	for _, tt := range tests {
		pos, err := ee.Seek(tt.offset, tt.whence)
		if (err != nil) != tt.fail {
			t.Fatalf("Seek(%d, %d): unexpected error state %v", tt.offset, tt.whence, err)
		}
		if pos != tt.pos {
			t.Fatalf("Seek(%d, %d): pos %d, want %d", tt.offset, tt.whence, pos, tt.pos)
		}
	}
}
