// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tca9534

import "context"

// AsyncDev is a TCA9534 driven through a ContextTransport.
//
// Every operation has the same semantics as its Dev counterpart. Operations
// issued by one owner complete in the order they were called; AsyncDev does
// not lock, so concurrent callers must serialize themselves.
type AsyncDev struct {
	e engine
}

// NewAsync returns an AsyncDev for the chip at addr and resets it.
func NewAsync(ctx context.Context, t ContextTransport, addr uint16) (*AsyncDev, error) {
	d := &AsyncDev{e: engine{t: t, addr: addr}}
	if err := d.e.reset(ctx); err != nil {
		return nil, err
	}
	return d, nil
}

// NewAsyncDefault is NewAsync at DefaultAddress.
func NewAsyncDefault(ctx context.Context, t ContextTransport) (*AsyncDev, error) {
	return NewAsync(ctx, t, DefaultAddress)
}

// SetAddress changes the address used by later operations. It does no bus
// I/O.
func (d *AsyncDev) SetAddress(addr uint16) {
	d.e.addr = addr
}

// Address returns the current device address.
func (d *AsyncDev) Address() uint16 {
	return d.e.addr
}

// ReadRegister reads one register.
func (d *AsyncDev) ReadRegister(ctx context.Context, reg Register) (uint8, error) {
	return d.e.readRegister(ctx, reg)
}

// WriteRegister writes one register. Writes to InputPort are sent but
// ignored by the chip.
func (d *AsyncDev) WriteRegister(ctx context.Context, reg Register, value uint8) error {
	return d.e.writeRegister(ctx, reg, value)
}

// ReadInputPort reads the level of all 8 pins at once.
func (d *AsyncDev) ReadInputPort(ctx context.Context) (uint8, error) {
	return d.e.readRegister(ctx, InputPort)
}

// ReadOutputPort reads back the output latches.
func (d *AsyncDev) ReadOutputPort(ctx context.Context) (uint8, error) {
	return d.e.readRegister(ctx, OutputPort)
}

// WriteOutputPort sets all 8 output latches at once.
func (d *AsyncDev) WriteOutputPort(ctx context.Context, value uint8) error {
	return d.e.writeRegister(ctx, OutputPort, value)
}

// ReadPortConfig reads the direction of all pins; 1 is input.
func (d *AsyncDev) ReadPortConfig(ctx context.Context) (uint8, error) {
	return d.e.readRegister(ctx, Config)
}

// SetPortConfig sets the direction of all pins; 1 is input.
func (d *AsyncDev) SetPortConfig(ctx context.Context, value uint8) error {
	return d.e.writeRegister(ctx, Config, value)
}

// ReadPortPolarity reads the polarity inversion of all pins.
func (d *AsyncDev) ReadPortPolarity(ctx context.Context) (uint8, error) {
	return d.e.readRegister(ctx, Polarity)
}

// SetPortPolarity sets the polarity inversion of all pins.
func (d *AsyncDev) SetPortPolarity(ctx context.Context, value uint8) error {
	return d.e.writeRegister(ctx, Polarity, value)
}

// ReadPinInput reads the level of one pin.
func (d *AsyncDev) ReadPinInput(ctx context.Context, pin uint8) (PinLevel, error) {
	return d.e.readPinInput(ctx, pin)
}

// SetPinOutput sets the output latch of one pin, leaving the others as read.
func (d *AsyncDev) SetPinOutput(ctx context.Context, pin uint8, level PinLevel) error {
	return d.e.setPinOutput(ctx, pin, level)
}

// TogglePinOutput inverts the output latch of one pin.
func (d *AsyncDev) TogglePinOutput(ctx context.Context, pin uint8) error {
	return d.e.toggleBit(ctx, OutputPort, pin)
}

// SetPinConfig sets the direction of one pin.
func (d *AsyncDev) SetPinConfig(ctx context.Context, pin uint8, config PinConfig) error {
	return d.e.setPinConfig(ctx, pin, config)
}

// SetPinPolarity sets the polarity inversion of one pin.
func (d *AsyncDev) SetPinPolarity(ctx context.Context, pin uint8, polarity PinPolarity) error {
	return d.e.setPinPolarity(ctx, pin, polarity)
}

// Dump reads the four registers in address order.
func (d *AsyncDev) Dump(ctx context.Context) (RegisterDump, error) {
	return d.e.dump(ctx)
}

func (d *AsyncDev) String() string {
	return d.e.name()
}
