// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tca9534

import (
	"errors"
	"testing"
)

var errBus = errors.New("fake: nack")

// fakeChip is a register-backed TCA9534 on a fake bus.
type fakeChip struct {
	t *testing.T

	regs [4]uint8
	// pins is the level applied externally to input pins.
	pins uint8
	// mirror makes InputPort reflect OutputPort for pins configured as
	// outputs, like the real chip.
	mirror bool

	ptr   uint8
	count int
	addrs []uint16
	// failAt makes the n-th transaction (1-based) fail.
	failAt int
	// frozen fails the test on any transaction.
	frozen bool
}

func (f *fakeChip) tx(addr uint16) error {
	f.count++
	f.addrs = append(f.addrs, addr)
	if f.frozen {
		f.t.Errorf("unexpected bus transaction #%d", f.count)
	}
	if f.failAt == f.count {
		return errBus
	}
	return nil
}

func (f *fakeChip) input() uint8 {
	in := f.pins
	if f.mirror {
		cfg := f.regs[Config]
		in = (f.regs[OutputPort] &^ cfg) | (f.pins & cfg)
	}
	return in ^ f.regs[Polarity]
}

func (f *fakeChip) get(reg uint8) uint8 {
	if Register(reg) == InputPort {
		return f.input()
	}
	return f.regs[reg&3]
}

func (f *fakeChip) Write(addr uint16, w []byte) error {
	if err := f.tx(addr); err != nil {
		return err
	}
	if len(w) == 0 {
		return nil
	}
	f.ptr = w[0]
	for _, b := range w[1:] {
		if Register(f.ptr).Writable() {
			f.regs[f.ptr&3] = b
		}
	}
	return nil
}

func (f *fakeChip) Read(addr uint16, r []byte) error {
	if err := f.tx(addr); err != nil {
		return err
	}
	for i := range r {
		r[i] = f.get(f.ptr)
	}
	return nil
}

func (f *fakeChip) WriteRead(addr uint16, w, r []byte) error {
	if err := f.tx(addr); err != nil {
		return err
	}
	if len(w) > 0 {
		f.ptr = w[0]
	}
	for i := range r {
		r[i] = f.get(f.ptr)
	}
	return nil
}

// newFake returns a Dev on a fresh fake chip, with the transaction counter
// cleared after the reset sequence.
func newFake(t *testing.T) (*Dev, *fakeChip) {
	f := &fakeChip{t: t}
	d, err := New(f, DefaultAddress)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = d.Close() })
	f.count = 0
	f.addrs = nil
	return d, f
}
