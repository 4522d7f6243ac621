// Copyright 2012 Michael Meier. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package mwm

import (
	"fmt"
	"strings"
)

// Line recording shared by the package tests and the mwm_test tests.

const (
	t_DIR = iota
	t_DI
	t_DO
	t_SK
	t_CS
	t_ANALOG
)

type lineItem struct {
	typ    int
	v      bool
	masked bool
}

func (i lineItem) String() string {
	switch i.typ {
	case t_DIR:
		return "DIR"
	case t_DI:
		return fmt.Sprintf("DI=%v", b2i(i.v))
	case t_DO:
		return fmt.Sprintf("DO>%v", b2i(i.v))
	case t_SK:
		return fmt.Sprintf("SK=%v", b2i(i.v))
	case t_CS:
		return fmt.Sprintf("CS=%v", b2i(i.v))
	case t_ANALOG:
		return "ANALOG-OFF"
	}
	return "unknown lineItem typ"
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Recorder logs every line access before passing it on to m. A nil m
// reads DO from the DO func, or low.
type Recorder struct {
	m   Lines
	DO  func() bool
	log []lineItem

	// Masked is consulted for every access and stored with it.
	Masked func() bool
}

func NewRecorder(m Lines) *Recorder {
	return &Recorder{m: m}
}

func (r *Recorder) add(typ int, v bool) {
	masked := false
	if r.Masked != nil {
		masked = r.Masked()
	}
	r.log = append(r.log, lineItem{typ, v, masked})
}

func (r *Recorder) ConfigureDirections(d Directions) {
	r.add(t_DIR, false)
	if r.m != nil {
		r.m.ConfigureDirections(d)
	}
}

func (r *Recorder) SetDataIn(high bool) {
	r.add(t_DI, high)
	if r.m != nil {
		r.m.SetDataIn(high)
	}
}

func (r *Recorder) ReadDataOut() bool {
	var v bool
	switch {
	case r.m != nil:
		v = r.m.ReadDataOut()
	case r.DO != nil:
		v = r.DO()
	}
	r.add(t_DO, v)
	return v
}

func (r *Recorder) SetClock(high bool) {
	r.add(t_SK, high)
	if r.m != nil {
		r.m.SetClock(high)
	}
}

func (r *Recorder) SetSelect(asserted bool) {
	r.add(t_CS, asserted)
	if r.m != nil {
		r.m.SetSelect(asserted)
	}
}

func (r *Recorder) DisableAnalog() {
	r.add(t_ANALOG, true)
	if m, ok := r.m.(AnalogMux); ok {
		m.DisableAnalog()
	}
}

// Reset drops the log.
func (r *Recorder) Reset() {
	r.log = r.log[:0]
}

// Selected reports the last CS level written.
func (r *Recorder) Selected() bool {
	cs := false
	for _, i := range r.log {
		if i.typ == t_CS {
			cs = i.v
		}
	}
	return cs
}

// AllMasked reports whether every access happened with Masked true.
func (r *Recorder) AllMasked() bool {
	for _, i := range r.log {
		if !i.masked {
			return false
		}
	}
	return true
}

func (r *Recorder) String() string {
	s := make([]string, len(r.log))
	for n, i := range r.log {
		s[n] = i.String()
	}
	return strings.Join(s, " ")
}

// Segment is what happened inside one CS bracket.
type Segment struct {
	// Bits latched by the device: DI at every rising SK edge.
	Bits string
	// Pulses after the last DI change, i.e. clocks given while only
	// reading or polling.
	Trailing int
	// DO samples in order.
	Samples string
}

// Segments splits the log at CS edges.
func (r *Recorder) Segments() []Segment {
	var (
		segs   []Segment
		cur    Segment
		cs     bool
		sk, di bool
		diSet  bool
	)
	for _, i := range r.log {
		switch i.typ {
		case t_CS:
			if cs && !i.v {
				segs = append(segs, cur)
			}
			if !cs && i.v {
				cur = Segment{}
				diSet = false
			}
			cs = i.v
		case t_DI:
			di = i.v
			diSet = true
			if cs {
				cur.Trailing = 0
			}
		case t_SK:
			if cs && i.v && !sk {
				if diSet {
					cur.Bits += fmt.Sprint(b2i(di))
					diSet = false
				} else {
					cur.Trailing++
				}
			}
			sk = i.v
		case t_DO:
			if cs {
				cur.Samples += fmt.Sprint(b2i(i.v))
			}
		}
	}
	return segs
}
