// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tca9534

import "strconv"

// Register is one of the four 8-bit registers of the TCA9534. Bit n of each
// register maps to pin n.
type Register uint8

const (
	// InputPort reflects the incoming logic level of every pin, regardless of
	// its direction. Read only.
	InputPort Register = 0x00
	// OutputPort holds the level driven on pins configured as outputs.
	OutputPort Register = 0x01
	// Polarity inverts the InputPort reading of a pin when its bit is set.
	Polarity Register = 0x02
	// Config sets the pin direction: 1 is input (reset state), 0 is output.
	Config Register = 0x03
)

// Registers lists the register map in address order.
var Registers = [...]Register{InputPort, OutputPort, Polarity, Config}

// ParseRegister maps a wire address back to a Register.
func ParseRegister(addr uint8) (Register, error) {
	if addr > uint8(Config) {
		return 0, ErrInvalidRegister
	}
	return Register(addr), nil
}

// Addr returns the register address sent on the bus.
func (r Register) Addr() uint8 {
	return uint8(r)
}

// Writable is false for InputPort; writes to it are ignored by the chip.
func (r Register) Writable() bool {
	return r != InputPort
}

func (r Register) String() string {
	switch r {
	case InputPort:
		return "InputPort"
	case OutputPort:
		return "OutputPort"
	case Polarity:
		return "Polarity"
	case Config:
		return "Config"
	default:
		return "Register(0x" + strconv.FormatUint(uint64(r), 16) + ")"
	}
}

// PinLevel is the logic level of a pin.
type PinLevel uint8

const (
	Low  PinLevel = 0
	High PinLevel = 1
)

// Bits returns the register bit value of the level.
func (l PinLevel) Bits() uint8 {
	return uint8(l)
}

func (l PinLevel) String() string {
	if l == High {
		return "High"
	}
	return "Low"
}

// PinConfig is the direction of a pin.
type PinConfig uint8

const (
	Output PinConfig = 0
	Input  PinConfig = 1
)

// Bits returns the Config register bit value.
func (c PinConfig) Bits() uint8 {
	return uint8(c)
}

func (c PinConfig) String() string {
	if c == Input {
		return "Input"
	}
	return "Output"
}

// PinPolarity selects whether the input reading of a pin is inverted.
type PinPolarity uint8

const (
	Normal   PinPolarity = 0
	Inverted PinPolarity = 1
)

// Bits returns the Polarity register bit value.
func (p PinPolarity) Bits() uint8 {
	return uint8(p)
}

func (p PinPolarity) String() string {
	if p == Inverted {
		return "Inverted"
	}
	return "Normal"
}

// NumPins is the number of I/O pins on the chip.
const NumPins = 8

// Addresses selected by the A2, A1 and A0 strap pins of a TCA9534. The
// TCA9534A uses the same straps from 0x38 upward.
const (
	Addr000 uint16 = 0x20
	Addr001 uint16 = 0x21
	Addr010 uint16 = 0x22
	Addr011 uint16 = 0x23
	Addr100 uint16 = 0x24
	Addr101 uint16 = 0x25
	Addr110 uint16 = 0x26
	Addr111 uint16 = 0x27

	// DefaultAddress is the address with all straps tied low.
	DefaultAddress = Addr000

	// AltBaseAddress is Addr000 for the TCA9534A.
	AltBaseAddress uint16 = 0x38
)

// Whole-port values.
const (
	AllInputs           uint8 = 0xFF
	AllOutputs          uint8 = 0x00
	AllNormalPolarity   uint8 = 0x00
	AllInvertedPolarity uint8 = 0xFF
	AllOutputsLow       uint8 = 0x00
	AllOutputsHigh      uint8 = 0xFF
)

// resetSequence is written by every constructor, in this order.
var resetSequence = [...]struct {
	reg   Register
	value uint8
}{
	{Config, AllInputs},
	{OutputPort, AllOutputsLow},
	{Polarity, AllNormalPolarity},
}

// RegisterDump is a snapshot of the whole register map.
type RegisterDump struct {
	InputPort  uint8
	OutputPort uint8
	Polarity   uint8
	Config     uint8
}

// Get returns the value held for reg.
func (d *RegisterDump) Get(reg Register) uint8 {
	switch reg {
	case InputPort:
		return d.InputPort
	case OutputPort:
		return d.OutputPort
	case Polarity:
		return d.Polarity
	default:
		return d.Config
	}
}

func (d *RegisterDump) set(reg Register, v uint8) {
	switch reg {
	case InputPort:
		d.InputPort = v
	case OutputPort:
		d.OutputPort = v
	case Polarity:
		d.Polarity = v
	default:
		d.Config = v
	}
}
