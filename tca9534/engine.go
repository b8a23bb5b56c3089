// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tca9534

import (
	"context"
	"strconv"
)

// engine holds the register access and bit algorithms shared by Dev and
// AsyncDev. Dev drives it through Async(t) with context.Background.
//
// The chip only has whole-byte registers, so every single pin mutation is a
// read immediately followed by a write of the same register. Nothing is
// cached: the read always reflects the chip.
type engine struct {
	t    ContextTransport
	addr uint16
}

func (e *engine) name() string {
	return "TCA9534_" + strconv.FormatUint(uint64(e.addr), 16)
}

func (e *engine) readRegister(ctx context.Context, reg Register) (uint8, error) {
	var rx [1]byte
	if err := e.t.WriteRead(ctx, e.addr, []byte{reg.Addr()}, rx[:]); err != nil {
		return 0, &BusError{Op: "read", Reg: reg, Addr: e.addr, Err: err}
	}
	return rx[0], nil
}

func (e *engine) writeRegister(ctx context.Context, reg Register, value uint8) error {
	if err := e.t.Write(ctx, e.addr, []byte{reg.Addr(), value}); err != nil {
		return &BusError{Op: "write", Reg: reg, Addr: e.addr, Err: err}
	}
	return nil
}

// reset puts the chip in its power-on state: all inputs, outputs low, normal
// polarity. The first failing write aborts the sequence.
func (e *engine) reset(ctx context.Context) error {
	for _, w := range resetSequence {
		if err := e.writeRegister(ctx, w.reg, w.value); err != nil {
			return err
		}
	}
	return nil
}

func (e *engine) getBit(ctx context.Context, reg Register, pin uint8) (bool, error) {
	if err := checkPin(pin); err != nil {
		return false, err
	}
	v, err := e.readRegister(ctx, reg)
	if err != nil {
		return false, err
	}
	return (v>>pin)&1 != 0, nil
}

func (e *engine) getAndSetBit(ctx context.Context, reg Register, pin uint8, value bool) error {
	if err := checkPin(pin); err != nil {
		return err
	}
	v, err := e.readRegister(ctx, reg)
	if err != nil {
		return err
	}
	if value {
		v |= 1 << pin
	} else {
		v &^= 1 << pin
	}
	return e.writeRegister(ctx, reg, v)
}

func (e *engine) toggleBit(ctx context.Context, reg Register, pin uint8) error {
	if err := checkPin(pin); err != nil {
		return err
	}
	v, err := e.readRegister(ctx, reg)
	if err != nil {
		return err
	}
	return e.writeRegister(ctx, reg, v^(1<<pin))
}

func (e *engine) readPinInput(ctx context.Context, pin uint8) (PinLevel, error) {
	b, err := e.getBit(ctx, InputPort, pin)
	if err != nil || !b {
		return Low, err
	}
	return High, nil
}

func (e *engine) setPinOutput(ctx context.Context, pin uint8, level PinLevel) error {
	return e.getAndSetBit(ctx, OutputPort, pin, level == High)
}

func (e *engine) setPinConfig(ctx context.Context, pin uint8, config PinConfig) error {
	return e.getAndSetBit(ctx, Config, pin, config == Input)
}

func (e *engine) setPinPolarity(ctx context.Context, pin uint8, polarity PinPolarity) error {
	return e.getAndSetBit(ctx, Polarity, pin, polarity == Inverted)
}

func (e *engine) dump(ctx context.Context) (RegisterDump, error) {
	var d RegisterDump
	for _, reg := range Registers {
		v, err := e.readRegister(ctx, reg)
		if err != nil {
			return d, err
		}
		d.set(reg, v)
	}
	return d, nil
}
