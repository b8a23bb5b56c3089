// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package capi is the flat, non-generic call surface of the TCA9534 driver
// for foreign callers.
//
// The bus is reached through an Ops table of callbacks and an opaque context
// pointer. Every function returns a Status; driver errors never cross the
// boundary. Each function checks its handle and output pointers for nil, and
// pin numbers for range, before touching the bus.
//
// cmd/libtca9534 exports these functions to C.
package capi

import (
	"errors"
	"unsafe"

	"github.com/GermanBionicSystems/tca9534/tca9534"
)

// Status is the integer result of every call.
type Status int32

const (
	Ok          Status = 0
	InvalidPin  Status = -1
	I2CWrite    Status = -2
	I2CRead     Status = -3
	NullPointer Status = -4
	InitFailed  Status = -5
)

func (s Status) String() string {
	switch s {
	case Ok:
		return "Ok"
	case InvalidPin:
		return "InvalidPin"
	case I2CWrite:
		return "I2CWrite"
	case I2CRead:
		return "I2CRead"
	case NullPointer:
		return "NullPointer"
	case InitFailed:
		return "InitFailed"
	default:
		return "Status(?)"
	}
}

// PinLevel, PinConfig and PinPolarity use the register bit values.
type (
	PinLevel    int32
	PinConfig   int32
	PinPolarity int32
)

const (
	Low  PinLevel = 0
	High PinLevel = 1

	Output PinConfig = 0
	Input  PinConfig = 1

	Normal   PinPolarity = 0
	Inverted PinPolarity = 1
)

// Handle is the state behind a foreign handle.
//
// Address, Ctx and Ops may be changed directly by the caller; they are read
// again on every call. A nil Ops, or one with a nil callback, makes the next
// call return NullPointer without invoking any callback.
type Handle struct {
	Address uint8
	Ctx     unsafe.Pointer
	Ops     *Ops

	dev *tca9534.Dev
}

// driver returns the initialized driver with the handle's current address.
func (h *Handle) driver() (*tca9534.Dev, Status) {
	if h.dev == nil {
		return nil, InitFailed
	}
	h.dev.SetAddress(uint16(h.Address))
	return h.dev, Ok
}

// status collapses a driver error into a Status. io is used for a bus
// failure whose phase is unknown.
func status(err error, io Status) Status {
	var busErr *tca9534.BusError
	switch {
	case err == nil:
		return Ok
	case errors.Is(err, tca9534.ErrInvalidPin), errors.Is(err, tca9534.ErrInvalidRegister):
		return InvalidPin
	case errors.Is(err, ErrNullCallback):
		return NullPointer
	case errors.As(err, &busErr):
		if busErr.Op == "read" {
			return I2CRead
		}
		return I2CWrite
	default:
		return io
	}
}

func checkPin(pin uint8) Status {
	if pin >= tca9534.NumPins {
		return InvalidPin
	}
	return Ok
}

// Init resets the device at address and binds it to h.
func Init(h *Handle, address uint8, ctx unsafe.Pointer, ops *Ops) Status {
	if h == nil || ops == nil {
		return NullPointer
	}
	if !ops.valid() {
		return NullPointer
	}
	if h.dev != nil {
		_ = h.dev.Close()
		h.dev = nil
	}
	h.Address = address
	h.Ctx = ctx
	h.Ops = ops
	dev, err := tca9534.New(&Transport{h: h}, uint16(address))
	if err != nil {
		return InitFailed
	}
	h.dev = dev
	return Ok
}

// InitDefault is Init at the default address 0x20.
func InitDefault(h *Handle, ctx unsafe.Pointer, ops *Ops) Status {
	return Init(h, uint8(tca9534.DefaultAddress), ctx, ops)
}

// Deinit releases the driver bound to h.
func Deinit(h *Handle) Status {
	if h == nil {
		return NullPointer
	}
	if h.dev != nil {
		_ = h.dev.Close()
		h.dev = nil
	}
	return Ok
}

// ReadRegister reads the register at regAddr. An address outside the
// register map is reported as InvalidPin.
func ReadRegister(h *Handle, regAddr uint8, value *uint8) Status {
	if h == nil || value == nil {
		return NullPointer
	}
	reg, err := tca9534.ParseRegister(regAddr)
	if err != nil {
		return InvalidPin
	}
	d, s := h.driver()
	if s != Ok {
		return s
	}
	v, err := d.ReadRegister(reg)
	if err != nil {
		return status(err, I2CRead)
	}
	*value = v
	return Ok
}

// WriteRegister writes value to the register at regAddr.
func WriteRegister(h *Handle, regAddr uint8, value uint8) Status {
	if h == nil {
		return NullPointer
	}
	reg, err := tca9534.ParseRegister(regAddr)
	if err != nil {
		return InvalidPin
	}
	d, s := h.driver()
	if s != Ok {
		return s
	}
	return status(d.WriteRegister(reg, value), I2CWrite)
}

func readPort(h *Handle, out *uint8, read func(d *tca9534.Dev) (uint8, error)) Status {
	if h == nil || out == nil {
		return NullPointer
	}
	d, s := h.driver()
	if s != Ok {
		return s
	}
	v, err := read(d)
	if err != nil {
		return status(err, I2CRead)
	}
	*out = v
	return Ok
}

func writePort(h *Handle, write func(d *tca9534.Dev) error) Status {
	if h == nil {
		return NullPointer
	}
	d, s := h.driver()
	if s != Ok {
		return s
	}
	return status(write(d), I2CWrite)
}

// ReadInputPort reads all 8 pins at once.
func ReadInputPort(h *Handle, value *uint8) Status {
	return readPort(h, value, (*tca9534.Dev).ReadInputPort)
}

// WriteOutputPort sets all 8 output latches at once.
func WriteOutputPort(h *Handle, value uint8) Status {
	return writePort(h, func(d *tca9534.Dev) error { return d.WriteOutputPort(value) })
}

// ReadOutputPort reads back the output latches.
func ReadOutputPort(h *Handle, value *uint8) Status {
	return readPort(h, value, (*tca9534.Dev).ReadOutputPort)
}

// SetPortConfig sets the direction of all pins.
func SetPortConfig(h *Handle, value uint8) Status {
	return writePort(h, func(d *tca9534.Dev) error { return d.SetPortConfig(value) })
}

// ReadPortConfig reads the direction of all pins.
func ReadPortConfig(h *Handle, value *uint8) Status {
	return readPort(h, value, (*tca9534.Dev).ReadPortConfig)
}

// SetPortPolarity sets the polarity inversion of all pins.
func SetPortPolarity(h *Handle, value uint8) Status {
	return writePort(h, func(d *tca9534.Dev) error { return d.SetPortPolarity(value) })
}

// ReadPortPolarity reads the polarity inversion of all pins.
func ReadPortPolarity(h *Handle, value *uint8) Status {
	return readPort(h, value, (*tca9534.Dev).ReadPortPolarity)
}

// ReadPinInput reads the level of one pin.
func ReadPinInput(h *Handle, pin uint8, level *PinLevel) Status {
	if h == nil || level == nil {
		return NullPointer
	}
	if s := checkPin(pin); s != Ok {
		return s
	}
	d, s := h.driver()
	if s != Ok {
		return s
	}
	l, err := d.ReadPinInput(pin)
	if err != nil {
		return status(err, I2CRead)
	}
	*level = PinLevel(l)
	return Ok
}

func writePin(h *Handle, pin uint8, write func(d *tca9534.Dev) error) Status {
	if h == nil {
		return NullPointer
	}
	if s := checkPin(pin); s != Ok {
		return s
	}
	d, s := h.driver()
	if s != Ok {
		return s
	}
	return status(write(d), I2CWrite)
}

// SetPinOutput drives one pin. A level other than Low or High is rejected
// with InvalidPin.
func SetPinOutput(h *Handle, pin uint8, level PinLevel) Status {
	if level != Low && level != High {
		if h == nil {
			return NullPointer
		}
		return InvalidPin
	}
	return writePin(h, pin, func(d *tca9534.Dev) error {
		return d.SetPinOutput(pin, tca9534.PinLevel(level))
	})
}

// TogglePinOutput inverts the output latch of one pin.
func TogglePinOutput(h *Handle, pin uint8) Status {
	return writePin(h, pin, func(d *tca9534.Dev) error { return d.TogglePinOutput(pin) })
}

// SetPinConfig sets the direction of one pin.
func SetPinConfig(h *Handle, pin uint8, config PinConfig) Status {
	if config != Input && config != Output {
		if h == nil {
			return NullPointer
		}
		return InvalidPin
	}
	return writePin(h, pin, func(d *tca9534.Dev) error {
		return d.SetPinConfig(pin, tca9534.PinConfig(config))
	})
}

// SetPinPolarity sets the polarity inversion of one pin.
func SetPinPolarity(h *Handle, pin uint8, polarity PinPolarity) Status {
	if polarity != Normal && polarity != Inverted {
		if h == nil {
			return NullPointer
		}
		return InvalidPin
	}
	return writePin(h, pin, func(d *tca9534.Dev) error {
		return d.SetPinPolarity(pin, tca9534.PinPolarity(polarity))
	})
}

// SetAddress changes the device address. A nil handle is ignored.
func SetAddress(h *Handle, address uint8) {
	if h != nil {
		h.Address = address
	}
}

// GetAddress returns the device address, or 0 for a nil handle.
func GetAddress(h *Handle) uint8 {
	if h == nil {
		return 0
	}
	return h.Address
}
