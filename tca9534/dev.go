// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tca9534

import (
	"context"
	"sync"

	"periph.io/x/conn/v3"
)

// Dev is a TCA9534 driven through a blocking Transport.
type Dev struct {
	e    engine
	pins []Pin
	port *port

	// mu is only taken by the gpio.PinIO and conn.Conn views, which gpioreg
	// may hand to any goroutine.
	mu sync.Mutex
}

// New returns a Dev for the chip at addr and resets it to all inputs,
// outputs low, normal polarity.
//
// The error is the first failing register write of the reset sequence.
func New(t Transport, addr uint16) (*Dev, error) {
	d := &Dev{e: engine{t: Async(t), addr: addr}}
	if err := d.e.reset(context.Background()); err != nil {
		return nil, err
	}
	d.makePins()
	return d, nil
}

// NewDefault is New at DefaultAddress.
func NewDefault(t Transport) (*Dev, error) {
	return New(t, DefaultAddress)
}

func (d *Dev) String() string {
	return d.e.name()
}

// SetAddress changes the address used by later operations. It does no bus
// I/O. The pins are moved in gpioreg to names based on the new address.
func (d *Dev) SetAddress(addr uint16) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if addr == d.e.addr {
		return
	}
	_ = d.unregisterPins()
	d.e.addr = addr
	d.registerPins()
}

// Address returns the current device address.
func (d *Dev) Address() uint16 {
	return d.e.addr
}

// ReadRegister reads one register.
func (d *Dev) ReadRegister(reg Register) (uint8, error) {
	return d.e.readRegister(context.Background(), reg)
}

// WriteRegister writes one register.
func (d *Dev) WriteRegister(reg Register, value uint8) error {
	return d.e.writeRegister(context.Background(), reg, value)
}

// ReadInputPort reads the level of all 8 pins at once.
func (d *Dev) ReadInputPort() (uint8, error) {
	return d.ReadRegister(InputPort)
}

// ReadOutputPort reads back the output latch.
func (d *Dev) ReadOutputPort() (uint8, error) {
	return d.ReadRegister(OutputPort)
}

// WriteOutputPort sets the output latch of all 8 pins at once.
func (d *Dev) WriteOutputPort(value uint8) error {
	return d.WriteRegister(OutputPort, value)
}

// ReadPortConfig reads the direction of all pins; a set bit is an input.
func (d *Dev) ReadPortConfig() (uint8, error) {
	return d.ReadRegister(Config)
}

// SetPortConfig sets the direction of all pins at once.
func (d *Dev) SetPortConfig(value uint8) error {
	return d.WriteRegister(Config, value)
}

// ReadPortPolarity reads the polarity inversion of all pins.
func (d *Dev) ReadPortPolarity() (uint8, error) {
	return d.ReadRegister(Polarity)
}

// SetPortPolarity sets the polarity inversion of all pins at once.
func (d *Dev) SetPortPolarity(value uint8) error {
	return d.WriteRegister(Polarity, value)
}

// ReadPinInput reads the level of one pin.
func (d *Dev) ReadPinInput(pin uint8) (PinLevel, error) {
	return d.e.readPinInput(context.Background(), pin)
}

// SetPinOutput drives one pin, leaving the other output bits untouched.
func (d *Dev) SetPinOutput(pin uint8, level PinLevel) error {
	return d.e.setPinOutput(context.Background(), pin, level)
}

// TogglePinOutput inverts the output latch of one pin.
func (d *Dev) TogglePinOutput(pin uint8) error {
	return d.e.toggleBit(context.Background(), OutputPort, pin)
}

// SetPinConfig sets the direction of one pin.
func (d *Dev) SetPinConfig(pin uint8, config PinConfig) error {
	return d.e.setPinConfig(context.Background(), pin, config)
}

// SetPinPolarity sets the polarity inversion of one pin.
func (d *Dev) SetPinPolarity(pin uint8, polarity PinPolarity) error {
	return d.e.setPinPolarity(context.Background(), pin, polarity)
}

// Dump reads the four registers in address order.
func (d *Dev) Dump() (RegisterDump, error) {
	return d.e.dump(context.Background())
}

// Halt implements conn.Resource.
//
// To halt all drive, every pin is set to high-impedance input.
func (d *Dev) Halt() error {
	return d.SetPortConfig(AllInputs)
}

// Close unregisters the pins from gpioreg.
func (d *Dev) Close() error {
	return d.unregisterPins()
}

var _ conn.Resource = &Dev{}
